package hierarchy

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/matzehuels/vamsha/pkg/errors"
)

// Reason classifies a structural failure.
type Reason int

const (
	ReasonEmpty Reason = iota
	ReasonNoRoot
	ReasonMultipleRoots
	ReasonDanglingParent
	ReasonDuplicateID
	ReasonCycle
)

func (r Reason) String() string {
	switch r {
	case ReasonEmpty:
		return "empty"
	case ReasonNoRoot:
		return "no root"
	case ReasonMultipleRoots:
		return "multiple roots"
	case ReasonDanglingParent:
		return "dangling parent"
	case ReasonDuplicateID:
		return "duplicate id"
	case ReasonCycle:
		return "cycle"
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// StructuralError reports why a member collection is not a tree.
// IDs lists the offending members in collection order.
type StructuralError struct {
	Reason Reason
	IDs    []string
}

func (e *StructuralError) Error() string {
	ids := strings.Join(e.IDs, ", ")
	switch e.Reason {
	case ReasonEmpty:
		return "no members"
	case ReasonNoRoot:
		return "no member without a parent"
	case ReasonMultipleRoots:
		return fmt.Sprintf("%d members without a parent: %s", len(e.IDs), ids)
	case ReasonDanglingParent:
		return fmt.Sprintf("parent not found for: %s", ids)
	case ReasonDuplicateID:
		return fmt.Sprintf("duplicate member id: %s", ids)
	case ReasonCycle:
		return fmt.Sprintf("parent references form a cycle: %s", ids)
	}
	return e.Reason.String()
}

func structural(reason Reason, ids ...string) error {
	se := &StructuralError{Reason: reason, IDs: ids}
	return errors.Wrap(errors.ErrCodeInvalidStructure, se, "invalid tree structure")
}

// AsStructural extracts the structural failure from err.
func AsStructural(err error) (*StructuralError, bool) {
	var se *StructuralError
	ok := stderrors.As(err, &se)
	return se, ok
}

// DiagnosticHeadline is shown in place of the diagram when the tree is broken.
const DiagnosticHeadline = "Invalid Tree Structure. Ensure only one root exists."

// Diagnostic returns the user-facing message for a failed build.
func Diagnostic(err error) string {
	if se, ok := AsStructural(err); ok {
		return DiagnosticHeadline + " (" + se.Error() + ")"
	}
	return DiagnosticHeadline
}
