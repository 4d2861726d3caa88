package federation

import (
	"errors"
	"fmt"

	"github.com/windvane/windvane/types"
)

// RejectionError reports that the federation reached consensus on rejecting
// a transaction. The rejection is terminal: the same transaction will never
// be accepted, though a caller may build and submit a fresh one.
type RejectionError struct {
	TxID   types.TxID
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("transaction %s rejected: %s", e.TxID, e.Reason)
}

// IsRejection reports whether err wraps a RejectionError, and returns it.
func IsRejection(err error) (*RejectionError, bool) {
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		return rejection, true
	}
	return nil, false
}
