package jobrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/core/domain/services"
	"tolkbook/internal/pkg/errs"
)

// GormJobRepository implements JobRepository using GORM.
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GORM booking repository.
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// Add saves a new booking with its assignments and audit entries.
func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return r.appendAudit(ctx, aggregate)
}

// Update saves an existing booking. Assignment rows removed from the
// aggregate (a translator release) are deleted; the rest are upserted.
func (r *GormJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&JobDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("Assignments").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.syncAssignments(ctx, dto); err != nil {
		return err
	}
	return r.appendAudit(ctx, aggregate)
}

// UpdateWithExpectedStatus saves the booking only if the stored row still
// carries the expected status. The conditional write resolves concurrent
// accepts to exactly one winner.
func (r *GormJobRepository) UpdateWithExpectedStatus(
	ctx context.Context,
	aggregate *job.Job,
	expected job.Status,
) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&JobDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Select("*").Omit("Assignments").
		Updates(&dto)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	if err := r.syncAssignments(ctx, dto); err != nil {
		return false, err
	}
	if err := r.appendAudit(ctx, aggregate); err != nil {
		return false, err
	}
	return true, nil
}

// Get retrieves a booking by ID with its full assignment history.
func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	err := r.db.WithContext(ctx).Preload("Assignments").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves every booking still awaiting a translator,
// soonest due first.
func (r *GormJobRepository) GetAllPending(ctx context.Context) ([]*job.Job, error) {
	var dtos []JobDTO
	err := r.db.WithContext(ctx).Preload("Assignments").
		Order("due ASC").
		Find(&dtos, "status = ?", job.Pending.String()).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetExpiredPending retrieves pending bookings whose acceptance window
// closed before the given instant.
func (r *GormJobRepository) GetExpiredPending(ctx context.Context, before time.Time) ([]*job.Job, error) {
	var dtos []JobDTO
	err := r.db.WithContext(ctx).Preload("Assignments").
		Find(&dtos, "status = ? AND will_expire_at <= ?", job.Pending.String(), before).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetOpenAssignmentRanges returns the busy session intervals per
// translator, covering every open assignment on a live booking.
func (r *GormJobRepository) GetOpenAssignmentRanges(ctx context.Context) (map[string][]services.TimeRange, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			a.translator_id,
			j.due,
			j.duration
		FROM assignments a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.cancel_at IS NULL
		  AND a.completed_at IS NULL
		  AND j.status IN (?, ?)
	`, job.Assigned.String(), job.Started.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	busy := make(map[string][]services.TimeRange)
	for rows.Next() {
		var translatorID string
		var due time.Time
		var duration int

		if err = rows.Scan(&translatorID, &due, &duration); err != nil {
			return nil, err
		}
		busy[translatorID] = append(busy[translatorID], services.TimeRange{
			Start: due,
			End:   due.Add(time.Duration(duration) * time.Minute),
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return busy, nil
}

// IsTranslatorBookedAt reports whether the translator holds an open
// assignment whose session overlaps [start, end).
func (r *GormJobRepository) IsTranslatorBookedAt(
	ctx context.Context,
	translatorID kernel.UUID,
	start, end time.Time,
) (bool, error) {
	if err := translatorID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT count(*)
		FROM assignments a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.translator_id = ?
		  AND a.cancel_at IS NULL
		  AND a.completed_at IS NULL
		  AND j.status IN (?, ?)
		  AND j.due < ?
		  AND j.due + make_interval(mins => j.duration) > ?
	`, translatorID.Bytes(), job.Assigned.String(), job.Started.String(), end, start).
		Scan(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *GormJobRepository) syncAssignments(ctx context.Context, dto JobDTO) error {
	tx := r.db.WithContext(ctx).Where("job_id = ?", dto.ID)
	if len(dto.Assignments) != 0 {
		kept := make([]any, 0, len(dto.Assignments))
		for _, a := range dto.Assignments {
			kept = append(kept, a.ID)
		}
		tx = tx.Where("id NOT IN ?", kept)
	}
	if err := tx.Delete(&AssignmentDTO{}).Error; err != nil {
		return err
	}

	for _, a := range dto.Assignments {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&a).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *GormJobRepository) appendAudit(ctx context.Context, aggregate *job.Job) error {
	for _, entry := range aggregate.AuditTrail() {
		dto := auditFromDomain(aggregate.ID(), entry)
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&dto).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *GormJobRepository) toDomainAll(dtos []JobDTO) ([]*job.Job, error) {
	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, aggregate)
	}
	return jobs, nil
}
