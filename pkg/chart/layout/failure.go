package layout

import (
	"fmt"

	"github.com/matzehuels/stackbar/pkg/errors"
)

// Families of contained failures.
const (
	FamilySelector  = "selector"
	FamilyPrimary   = "primary"
	FamilySecondary = "secondary"
)

// Messages shown in the chart container.
const (
	MsgFatal           = "Fatal error: Unable to process the data! Check console for detail error message"
	MsgInvalidSelector = "Invalid selector"
	MsgPrimaryFailed   = "Unable to create primary growth labels"
	MsgSecondaryFailed = "Unable to create secondary growth labels"
)

// Failure is a contained problem: the chart is still drawn, without the
// failed family, and Message is shown in the container.
type Failure struct {
	Family  string
	Message string
	Err     error
}

func familyMessage(family string) string {
	switch family {
	case FamilyPrimary:
		return MsgPrimaryFailed
	case FamilySecondary:
		return MsgSecondaryFailed
	default:
		return MsgInvalidSelector
	}
}

// fail records a failure, once per family.
func (l *Layout) fail(family string, err error) {
	for _, f := range l.Failures {
		if f.Family == family {
			return
		}
	}
	l.Failures = append(l.Failures, Failure{Family: family, Message: familyMessage(family), Err: err})
}

// Failed reports whether family has a recorded failure.
func (l *Layout) Failed(family string) bool {
	for _, f := range l.Failures {
		if f.Family == family {
			return true
		}
	}
	return false
}

// contain runs fn and converts both a returned error and a panic into a
// failure of family.
func (l *Layout) contain(family string, fn func() error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			l.fail(family, errors.New(errors.ErrCodeInternal, "%s indicators: %v", family, r))
			ok = false
		}
	}()
	if err := fn(); err != nil {
		l.fail(family, err)
		return false
	}
	return true
}

func geometryError(what string, vals ...float64) error {
	return errors.New(errors.ErrCodeGeometry, "non-finite %s geometry %s", what, fmt.Sprint(vals))
}
