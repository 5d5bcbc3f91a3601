package order

// RequestLine payload of a requested line.
// swagger:model RequestLine
type RequestLine struct {
	CategoryName string `json:"category_name" example:"Beverages"`
	ItemName     string `json:"item_name"     example:"Cola"`
	Quantity     int    `json:"quantity"      example:"3"`
}

// CreateOrderRequest payload of order creation.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	Name               string        `json:"name"                 example:"Asha Rao"`
	MobileNumber       string        `json:"mobile_number"        example:"9876543210"`
	Address            string        `json:"address"              example:"12 Lake View Rd"`
	GoogleMapsLocation string        `json:"google_maps_location" example:"https://maps.app/abc"`
	Items              []RequestLine `json:"items"`
}

// UpdateStatusRequest payload of a status change.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"Shipped"`
}
