package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tolkbook/internal/core/domain/model/kernel"
)

// ListJobsQueryHandler retrieves booking listings from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type ListJobsQueryHandler struct {
	db *gorm.DB
}

// NewListJobsQueryHandler creates a handler for the admin booking listing.
// Requires a GORM database connection for query execution.
func NewListJobsQueryHandler(db *gorm.DB) ListJobsQueryHandler {
	return ListJobsQueryHandler{db: db}
}

// Handle executes the listing query. Results are sorted by due time,
// soonest first.
func (h ListJobsQueryHandler) Handle(
	ctx context.Context,
	query ListJobsQuery,
) ([]ListJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).
		Table("jobs").
		Select(`jobs.id, jobs.customer_id, languages.name, jobs.status, jobs.due,
			jobs.duration, jobs.immediate, jobs.phone_booking, jobs.physical_booking,
			jobs.town, jobs.job_type, jobs.flagged, jobs.manually_handled,
			jobs.created_at, jobs.will_expire_at`).
		Joins("LEFT JOIN languages ON languages.id = jobs.language_id")

	if !query.Superadmin() {
		tx = tx.Joins("JOIN users ON users.id = jobs.customer_id").
			Where("users.consumer_type = ?", query.ConsumerType())
	}

	filters := query.Filters()
	if len(filters.Statuses) != 0 {
		tx = tx.Where("jobs.status IN ?", filters.Statuses)
	}
	if len(filters.LanguageIDs) != 0 {
		ids := make([]uuid.UUID, 0, len(filters.LanguageIDs))
		for _, id := range filters.LanguageIDs {
			ids = append(ids, id.Bytes())
		}
		tx = tx.Where("jobs.language_id IN ?", ids)
	}
	if filters.CustomerID != nil {
		tx = tx.Where("jobs.customer_id = ?", filters.CustomerID.Bytes())
	}
	if filters.DueAfter != nil {
		tx = tx.Where("jobs.due >= ?", *filters.DueAfter)
	}
	if filters.DueBefore != nil {
		tx = tx.Where("jobs.due <= ?", *filters.DueBefore)
	}
	if filters.JobType != "" {
		tx = tx.Where("jobs.job_type = ?", filters.JobType)
	}
	if filters.Flagged != nil {
		tx = tx.Where("jobs.flagged = ?", *filters.Flagged)
	}

	rows, err := tx.Order("jobs.due ASC").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listing := make([]ListJobsQueryResponse, 0)
	for rows.Next() {
		var row ListJobsQueryResponse
		var id, customerID uuid.UUID
		var language *string

		err = rows.Scan(
			&id,
			&customerID,
			&language,
			&row.Status,
			&row.Due,
			&row.Duration,
			&row.Immediate,
			&row.PhoneBooking,
			&row.PhysicalBooking,
			&row.Town,
			&row.JobType,
			&row.Flagged,
			&row.ManuallyHandled,
			&row.CreatedAt,
			&row.WillExpireAt,
		)
		if err != nil {
			return nil, err
		}

		jobID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		ownerID, idErr := kernel.UUIDFromBytes(customerID[:])
		if idErr != nil {
			return nil, idErr
		}
		row.ID = jobID
		row.CustomerID = ownerID
		if language != nil {
			row.Language = *language
		}
		listing = append(listing, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return listing, nil
}
