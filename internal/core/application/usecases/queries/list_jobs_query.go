package queries

import (
	"errors"
	"time"

	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/pkg/guard"
)

var ErrListJobsQueryIsNotConstructed = errors.New(
	"ListJobsQuery must be created via NewListJobsQuery constructor",
)

// ListJobsFilters narrows the admin booking listing. Zero-valued fields
// are ignored.
type ListJobsFilters struct {
	Statuses    []string
	LanguageIDs []kernel.UUID
	CustomerID  *kernel.UUID
	DueAfter    *time.Time
	DueBefore   *time.Time
	JobType     string
	Flagged     *bool
}

// ListJobsQuery retrieves bookings for the admin console. A superadmin
// sees every booking; a regular admin only sees bookings whose customer
// belongs to their consumer type.
type ListJobsQuery struct {
	superadmin   bool
	consumerType string
	filters      ListJobsFilters

	guard guard.ConstructorGuard
}

// NewListJobsQuery creates a listing query. consumerType pins the result
// set for non-superadmins and is ignored for superadmins.
func NewListJobsQuery(superadmin bool, consumerType string, filters ListJobsFilters) (ListJobsQuery, error) {
	if !superadmin && consumerType == "" {
		return ListJobsQuery{}, errors.New("consumer type required for non-superadmin listing")
	}
	return ListJobsQuery{
		superadmin:   superadmin,
		consumerType: consumerType,
		filters:      filters,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListJobsQuery) Validate() error {
	return q.guard.Validate(ErrListJobsQueryIsNotConstructed)
}

// Superadmin reports whether the requester sees all consumer types.
func (q ListJobsQuery) Superadmin() bool { return q.superadmin }

// ConsumerType returns the consumer-type pin for regular admins.
func (q ListJobsQuery) ConsumerType() string { return q.consumerType }

// Filters returns the optional narrowing filters.
func (q ListJobsQuery) Filters() ListJobsFilters { return q.filters }

// ListJobsQueryResponse is one row of the admin booking listing.
type ListJobsQueryResponse struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	Language        string
	Status          string
	Due             time.Time
	Duration        int
	Immediate       bool
	PhoneBooking    bool
	PhysicalBooking bool
	Town            string
	JobType         string
	Flagged         bool
	ManuallyHandled bool
	CreatedAt       time.Time
	WillExpireAt    time.Time
}
