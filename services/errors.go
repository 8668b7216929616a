package services

import "errors"

// Validation errors surfaced by the stores. Controllers translate these
// into 400 responses; gorm.ErrRecordNotFound covers the 404 path.
var (
	// ErrUnknownItem means an order line references an item id that does
	// not exist. Order creation rejects the whole order before any write.
	ErrUnknownItem = errors.New("order line references an unknown item")

	// ErrInvalidStatus means a status string outside the recognized set
	// was supplied.
	ErrInvalidStatus = errors.New("unrecognized order status")

	// ErrNoOrderLines means an order was submitted without any line items.
	ErrNoOrderLines = errors.New("order must contain at least one line item")

	// ErrInvalidQuantity means an order line carries a zero or negative
	// quantity.
	ErrInvalidQuantity = errors.New("order line quantity must be positive")
)
