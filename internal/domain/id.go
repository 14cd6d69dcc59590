package domain

import "github.com/google/uuid"

// NewRunID creates the identifier attached to every log line of one
// start-to-end tracking run.
func NewRunID() string {
	return uuid.New().String()
}
