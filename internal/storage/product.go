package storage

type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	ProductTypeID *int64   `json:"product_type_id"`
	Article       *string  `json:"article"`
	MinPrice      *float64 `json:"min_price"`
	MainMaterial  *string  `json:"main_material"`
}
