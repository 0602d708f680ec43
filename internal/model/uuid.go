package model

import "github.com/google/uuid"

// GenerateID creates a new id for locally stored Blinks.
func GenerateID() string {
	return uuid.New().String()
}
