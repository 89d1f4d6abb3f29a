// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/pkg/guard"
)

var ErrGetPotentialJobsQueryIsNotConstructed = errors.New(
	"GetPotentialJobsQuery must be created via NewGetPotentialJobsQuery constructor",
)

// GetPotentialJobsQuery retrieves the pending bookings a translator is
// eligible to accept right now. The result honors every eligibility rule:
// language, qualification tier, gender preference, town for physical
// bookings, blacklists and schedule overlap.
type GetPotentialJobsQuery struct {
	translatorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPotentialJobsQuery creates a query for one translator's job feed.
func NewGetPotentialJobsQuery(translatorID kernel.UUID) (GetPotentialJobsQuery, error) {
	if err := translatorID.Validate(); err != nil {
		return GetPotentialJobsQuery{}, err
	}
	return GetPotentialJobsQuery{
		translatorID: translatorID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPotentialJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetPotentialJobsQueryIsNotConstructed)
}

// TranslatorID returns the translator whose feed is requested.
func (q GetPotentialJobsQuery) TranslatorID() kernel.UUID {
	return q.translatorID
}

// GetPotentialJobsQueryResponse is one offer in a translator's feed.
type GetPotentialJobsQueryResponse struct {
	ID              kernel.UUID
	Language        string
	Due             time.Time
	Duration        int
	Immediate       bool
	PhoneBooking    bool
	PhysicalBooking bool
	Town            string
	JobType         string
}
