package allocation

import (
	"errors"
	"fmt"
)

// ErrDuplicateAssignment is returned when the post-allocation audit finds a
// ticket number carrying two instant prizes. The shared exclusion set makes
// this structurally impossible, so seeing it means a normalizer or draw
// engine defect and the whole allocation is aborted.
var ErrDuplicateAssignment = errors.New("duplicate instant prize assignment")

// ErrInvalidPrizeEntry is returned when a prize entry is structurally
// unusable (e.g. a money entry without a quantity).
var ErrInvalidPrizeEntry = errors.New("invalid prize entry")

// DuplicateFixedNumberError reports the same fixed ticket number appearing
// in more than one item entry. This is a caller configuration bug and is
// fatal, unlike capacity shortfalls.
type DuplicateFixedNumberError struct {
	Number string
}

func (e *DuplicateFixedNumberError) Error() string {
	return fmt.Sprintf("fixed ticket number %s requested more than once", e.Number)
}
