package job

import (
	"fmt"

	"tolkbook/internal/pkg/errs"
)

// Status represents the lifecycle state of a booking.
//
// State transitions requested by administrators:
//
//	pending ───> assigned ───> started ───> completed
//	   │             │                          │
//	   │             ├──> withdrawbefore24      │
//	   │             ├──> withdrawafter24 ──┐   │
//	   └───────┬─────┴──> timedout <────────┴───┘
//	           │              │
//	           └──────────────┘ (reopen)
//
// Acceptance by a translator moves pending to assigned; a customer
// withdrawal classifies by the 24-hour threshold; timed-out bookings can be
// reopened back to pending. Status is a value object that validates itself
// and provides the string representations used for persistence.
type Status int

const (
	// Unknown represents an invalid or undefined status. The zero value
	// helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the booking is broadcast to eligible
	// translators and waiting for the first acceptor.
	Pending

	// Assigned indicates a translator holds the booking.
	Assigned

	// Started indicates the interpretation session is in progress.
	Started

	// Completed indicates the session ended normally.
	Completed

	// TimedOut indicates no translator accepted before the expiry instant.
	TimedOut

	// WithdrawBefore24 is a customer cancellation made 24 hours or more
	// ahead of the due time.
	WithdrawBefore24

	// WithdrawAfter24 is a customer cancellation made inside the 24-hour
	// window before the due time.
	WithdrawAfter24

	// NotCarriedOutCustomer indicates the translator showed up but the
	// customer never called or appeared.
	NotCarriedOutCustomer
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:               "unknown",
		Pending:               "pending",
		Assigned:              "assigned",
		Started:               "started",
		Completed:             "completed",
		TimedOut:              "timedout",
		WithdrawBefore24:      "withdrawbefore24",
		WithdrawAfter24:       "withdrawafter24",
		NotCarriedOutCustomer: "not_carried_out_customer",
	}
}

// StatusFromString maps the persisted representation back to a Status.
// Returns an error for strings outside the closed enum.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValidationErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the closed enum values.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s <= Unknown || s > NotCarriedOutCustomer {
		return errs.NewValidationErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status. It implements
// fmt.Stringer and is safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsWithdrawn reports whether the status is one of the customer
// withdrawal classifications.
func (s Status) IsWithdrawn() bool {
	return s == WithdrawBefore24 || s == WithdrawAfter24
}

// IsTerminal reports whether no further admin transition is expected
// from this status in the normal flow. Timed-out bookings are not
// terminal because they can be reopened.
func (s Status) IsTerminal() bool {
	return s == Completed || s == NotCarriedOutCustomer || s == WithdrawBefore24
}
