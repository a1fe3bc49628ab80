package storage

type Workshop struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	WorkshopType *string `json:"workshop_type"`
	StaffCount   *int    `json:"staff_count"`
}
