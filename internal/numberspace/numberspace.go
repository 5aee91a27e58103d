// Package numberspace defines the ticket id domain of a campaign: the
// contiguous integer range [0, total). Ids travel as zero-padded strings on
// the wire but are compared and allocated as integers everywhere else.
package numberspace

import (
	"fmt"
	"strconv"
)

// minWidth is the minimum zero-padded width of an externally visible ticket
// number. Wider campaigns widen automatically.
const minWidth = 6

// OutOfRangeError reports a ticket id outside the campaign's number space.
type OutOfRangeError struct {
	Number int
	Total  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("ticket number %d outside space [0, %d)", e.Number, e.Total)
}

// Space is the immutable id domain of a single campaign.
type Space struct {
	total int
	width int
}

// New creates a Space for total ticket numbers. total must be positive.
func New(total int) (Space, error) {
	if total <= 0 {
		return Space{}, fmt.Errorf("number space requires a positive total, got %d", total)
	}
	width := len(strconv.Itoa(total - 1))
	if width < minWidth {
		width = minWidth
	}
	return Space{total: total, width: width}, nil
}

// Capacity returns the size of the id domain.
func (s Space) Capacity() int {
	return s.total
}

// Contains reports whether n is a valid ticket id in this space.
func (s Space) Contains(n int) bool {
	return n >= 0 && n < s.total
}

// Check returns an OutOfRangeError when n is not a valid ticket id.
func (s Space) Check(n int) error {
	if !s.Contains(n) {
		return &OutOfRangeError{Number: n, Total: s.total}
	}
	return nil
}

// Format renders a ticket id in its canonical zero-padded form.
func (s Space) Format(n int) string {
	return fmt.Sprintf("%0*d", s.width, n)
}

// Parse converts a wire-format ticket number (zero-padded or not) back to an
// integer id, validating range membership.
func (s Space) Parse(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse ticket number %q: %w", raw, err)
	}
	if err := s.Check(n); err != nil {
		return 0, err
	}
	return n, nil
}
