package models

import "fmt"

// ValidationError reports bad customer input. Nothing is mutated when
// one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DualWriteError reports that the admin-global copy of an order was
// written but the per-customer copy was not. The order exists; the
// customer's own history is missing it until reconciled.
type DualWriteError struct {
	OrderID string
	Err     error
}

func (e *DualWriteError) Error() string {
	return fmt.Sprintf("order %s saved, but writing the customer copy failed: %v", e.OrderID, e.Err)
}

func (e *DualWriteError) Unwrap() error {
	return e.Err
}
