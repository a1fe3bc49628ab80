package storage

type MaterialType struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	LossPercentage *float64 `json:"loss_percentage"`
}
