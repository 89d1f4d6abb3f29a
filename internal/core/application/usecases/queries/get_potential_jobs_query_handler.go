package queries

import (
	"context"

	"tolkbook/internal/core/domain/model/user"
	"tolkbook/internal/core/domain/services"
	"tolkbook/internal/core/ports"
)

// GetPotentialJobsQueryHandler builds a translator's eligible-job feed.
// Runs the same eligibility matching the broadcast path uses, so the feed
// never shows an offer the translator would not have been notified about.
type GetPotentialJobsQueryHandler struct {
	jobs      ports.JobRepository
	users     ports.UserRepository
	languages ports.LanguageCatalog
	matcher   services.EligibilityMatcher
}

// NewGetPotentialJobsQueryHandler creates a handler for the job feed query.
func NewGetPotentialJobsQueryHandler(
	jobs ports.JobRepository,
	users ports.UserRepository,
	languages ports.LanguageCatalog,
	matcher services.EligibilityMatcher,
) GetPotentialJobsQueryHandler {
	return GetPotentialJobsQueryHandler{
		jobs:      jobs,
		users:     users,
		languages: languages,
		matcher:   matcher,
	}
}

// Handle executes the query and returns the eligible pending bookings
// sorted the way the repository returns them (soonest due first).
func (h GetPotentialJobsQueryHandler) Handle(
	ctx context.Context,
	query GetPotentialJobsQuery,
) ([]GetPotentialJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	translator, err := h.users.Get(ctx, query.TranslatorID())
	if err != nil {
		return nil, err
	}
	pending, err := h.jobs.GetAllPending(ctx)
	if err != nil {
		return nil, err
	}
	busy, err := h.jobs.GetOpenAssignmentRanges(ctx)
	if err != nil {
		return nil, err
	}

	pool := []*user.User{translator}
	feed := make([]GetPotentialJobsQueryResponse, 0)
	for _, j := range pending {
		owner, ownerErr := h.users.Get(ctx, j.CustomerID())
		if ownerErr != nil {
			return nil, ownerErr
		}
		if len(h.matcher.Match(j, owner, pool, busy, nil)) == 0 {
			continue
		}
		language, langErr := h.languages.NameByID(ctx, j.LanguageID())
		if langErr != nil {
			return nil, langErr
		}
		feed = append(feed, GetPotentialJobsQueryResponse{
			ID:              j.ID(),
			Language:        language,
			Due:             j.Due(),
			Duration:        j.Duration(),
			Immediate:       j.Immediate(),
			PhoneBooking:    j.PhoneBooking(),
			PhysicalBooking: j.PhysicalBooking(),
			Town:            j.Town(),
			JobType:         string(j.JobType()),
		})
	}
	return feed, nil
}
