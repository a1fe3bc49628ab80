package storage

// ProductWorkshop links a product to a workshop that takes part in making it.
// A (ProductID, WorkshopID) pair is unique.
type ProductWorkshop struct {
	ID                  int64    `json:"id"`
	ProductID           int64    `json:"product_id"`
	WorkshopID          int64    `json:"workshop_id"`
	ProductionTimeHours *float64 `json:"production_time_hours"`
}
