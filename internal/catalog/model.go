package catalog

import "time"

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"category_name"`
	Description string    `json:"description,omitempty"`
	Items       []Item    `json:"items"`
	CreatedAt   time.Time `json:"created_at"`
}

type Item struct {
	ID          string `json:"id"`
	CategoryID  string `json:"-"`
	Name        string `json:"item_name"`
	Description string `json:"description,omitempty"`
	// Free-form merchant quantity (pack size, weight), distinct from stock.
	Quantity float64 `json:"quantity"`
	// We store price as a string to avoid rounding errors (NUMERIC in Postgres)
	Price          string    `json:"price"`
	StockAvailable int       `json:"stock_available"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateCategoryRequest payload of category creation.
// swagger:model CreateCategoryRequest
type CreateCategoryRequest struct {
	Name        string `json:"category_name" example:"Beverages"`
	Description string `json:"description"   example:"Cold and hot drinks"`
}

// DeleteCategoryRequest payload of category deletion.
// swagger:model DeleteCategoryRequest
type DeleteCategoryRequest struct {
	Name string `json:"category_name" example:"Beverages"`
}

// CreateItemRequest payload of item creation.
// swagger:model CreateItemRequest
type CreateItemRequest struct {
	CategoryName   string  `json:"category_name"   example:"Beverages"`
	Name           string  `json:"item_name"       example:"Cola"`
	Description    string  `json:"description"     example:"330ml can"`
	Quantity       float64 `json:"quantity"        example:"0.33"`
	Price          string  `json:"price"           example:"2.50"`
	StockAvailable int     `json:"stock_available" example:"10"`
}

// UpdateItemRequest payload of partial item update. Nil fields are left unchanged.
// swagger:model UpdateItemRequest
type UpdateItemRequest struct {
	CategoryName   string   `json:"category_name"`
	ItemID         string   `json:"item_id"`
	Name           *string  `json:"item_name"`
	Description    *string  `json:"description"`
	Quantity       *float64 `json:"quantity"`
	Price          *string  `json:"price"`
	StockAvailable *int     `json:"stock_available"`
}
