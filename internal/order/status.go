package order

const (
	StatusPlaced     = "Order Placed"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

// The status field is a flat set: any member may replace any other.
var allowedStatuses = map[string]struct{}{
	StatusPlaced:     {},
	StatusProcessing: {},
	StatusShipped:    {},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func ValidStatus(s string) bool {
	_, ok := allowedStatuses[s]
	return ok
}
