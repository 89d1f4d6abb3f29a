package ports

import (
	"context"
	"time"

	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/core/domain/services"
)

// JobRepository defines the persistence contract for job aggregates.
// Provides methods for storing, retrieving, and querying bookings along
// with their assignment history and audit entries.
type JobRepository interface {
	// Add persists a new job aggregate to storage.
	Add(ctx context.Context, aggregate *job.Job) error

	// Update persists changes to an existing job aggregate, including
	// new assignment rows and any audit entries recorded this session.
	Update(ctx context.Context, aggregate *job.Job) error

	// UpdateWithExpectedStatus persists the aggregate only if the stored
	// row still carries expected. Returns false without mutating state
	// when another writer moved the job first. Used to resolve accept
	// races to exactly one winner.
	UpdateWithExpectedStatus(ctx context.Context, aggregate *job.Job, expected job.Status) (bool, error)

	// Get retrieves a job aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// GetAllPending retrieves all jobs awaiting a translator.
	GetAllPending(ctx context.Context) ([]*job.Job, error)

	// GetExpiredPending retrieves pending jobs whose acceptance window
	// closed before the given instant. Used by the expiry sweeper.
	GetExpiredPending(ctx context.Context, before time.Time) ([]*job.Job, error)

	// GetOpenAssignmentRanges returns, per translator id, the session
	// intervals of every open assignment. Feeds the eligibility matcher's
	// double-booking rule.
	GetOpenAssignmentRanges(ctx context.Context) (map[string][]services.TimeRange, error)

	// IsTranslatorBookedAt reports whether the translator holds an open
	// assignment whose session overlaps [start, end).
	IsTranslatorBookedAt(ctx context.Context, translatorID kernel.UUID, start, end time.Time) (bool, error)
}
