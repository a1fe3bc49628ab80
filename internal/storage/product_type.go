package storage

type ProductType struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Coefficient *float64 `json:"coefficient"`
}
