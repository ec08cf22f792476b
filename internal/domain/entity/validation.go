package entity

// ValidationError describes a single invariant violation found by Validate.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
