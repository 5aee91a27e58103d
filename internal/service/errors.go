package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRequest is returned when request data is invalid or incomplete
	ErrInvalidRequest = errors.New("invalid request")

	// ErrCampaignNotFound is returned when a campaign cannot be found
	ErrCampaignNotFound = errors.New("campaign not found")

	// ErrCampaignExists is returned when a generated campaign code collides
	ErrCampaignExists = errors.New("campaign already exists")
)

// ReferenceNotFoundError is returned when external opaque codes (creator,
// prize items) cannot be resolved to internal identifiers. It names every
// missing code instead of failing on the first or resolving a subset.
type ReferenceNotFoundError struct {
	Kind  string
	Codes []string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s reference not found: %s", e.Kind, strings.Join(e.Codes, ", "))
}
