package job

import (
	"fmt"
	"strings"

	"optiroute/internal/pkg/errs"
)

// Status represents the lifecycle state of a job.
//
// State transitions:
//
//	Pending ──> Processing ──┬──> Completed
//	   │                     │
//	   └─────────────────────┴──> Failed
//
// Pending -> Failed only happens when the Processing write itself could not
// be committed and the failure is recorded on the freshly reloaded row.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Processing
	Completed
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		Processing: "PROCESSING",
		Completed:  "COMPLETED",
		Failed:     "FAILED",
	}
}

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Processing, Completed, Failed}
}

// ParseStatus maps the persisted upper-case name back to a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, status := range AllStatuses() {
		if status.String() == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s < Pending || s > Failed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Failed
}

// Start transitions Pending to Processing.
func (s Status) Start() (Status, error) {
	if s != Pending {
		return Unknown, invalidTransition(s, Processing)
	}
	return Processing, nil
}

// Complete transitions Processing to Completed.
func (s Status) Complete() (Status, error) {
	if s != Processing {
		return Unknown, invalidTransition(s, Completed)
	}
	return Completed, nil
}

// Fail transitions Pending or Processing to Failed.
func (s Status) Fail() (Status, error) {
	if s != Pending && s != Processing {
		return Unknown, invalidTransition(s, Failed)
	}
	return Failed, nil
}

func invalidTransition(from, to Status) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid status to move to %s", from, to),
	)
}
