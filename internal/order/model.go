package order

import "time"

type Order struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	MobileNumber       string `json:"mobile_number"`
	Address            string `json:"address"`
	GoogleMapsLocation string `json:"google_maps_location,omitempty"`
	Items              []Line `json:"items"`
	// NUMERIC -> string
	TotalOrderValue string    `json:"total_order_value"`
	Status          string    `json:"status"`
	OrderedDate     time.Time `json:"ordered_date"`
}

// Line is a snapshot taken at validation time; later catalog price changes
// do not touch persisted orders.
type Line struct {
	ID           string `json:"id"`
	OrderID      string `json:"order_id"`
	CategoryName string `json:"category_name"`
	ItemName     string `json:"item_name"`
	Quantity     int    `json:"quantity"`
	PricePerUnit string `json:"price_per_unit"`
	TotalPrice   string `json:"total_price"`
}
