package types

import "fmt"

// CustomError carries an HTTP status code alongside a user-facing message and
// a machine-readable error type. The global fiber error handler translates it
// into the standard JSON error envelope.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
