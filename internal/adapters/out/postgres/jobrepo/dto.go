// Package jobrepo provides data transfer objects and mapping functions for
// booking persistence. This package implements the repository pattern for the
// job domain aggregate, handling the conversion between domain entities and
// database representations.
package jobrepo

import (
	"time"

	"github.com/google/uuid"

	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/domain/model/kernel"
)

// JobDTO represents the database structure for persisting booking aggregates.
// Indexed by status and expiry for the broadcast and sweeper queries.
type JobDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;index"`
	LanguageID uuid.UUID `gorm:"type:uuid;index"`
	Status     string    `gorm:"index"`

	Immediate       bool
	Due             time.Time `gorm:"index"`
	Duration        int
	Gender          string
	Certified       string
	JobType         string
	PhoneBooking    bool
	PhysicalBooking bool
	Town            string
	ByAdmin         bool

	AdminComments string
	Reference     string
	ContactEmail  string
	Address       string
	Instructions  string

	Flagged         bool
	ManuallyHandled bool
	EmailSent       bool

	CreatedAt    time.Time
	WillExpireAt time.Time `gorm:"index"`
	EndAt        *time.Time
	WithdrawAt   *time.Time
	SessionTime  string

	Assignments []AssignmentDTO `gorm:"foreignKey:JobID;references:ID"`
}

// TableName specifies the database table name for booking entities.
func (JobDTO) TableName() string {
	return "jobs"
}

// AssignmentDTO represents one translator assignment row. A booking keeps
// its full assignment history; at most one row per booking is open.
type AssignmentDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID        uuid.UUID `gorm:"type:uuid;index"`
	TranslatorID uuid.UUID `gorm:"type:uuid;index"`
	AssignedAt   time.Time
	CancelAt     *time.Time
	CompletedAt  *time.Time
	CompletedBy  *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for assignment entities.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// AuditDTO represents one recorded change on a booking. Rows are append
// only; the aggregate never reads them back.
type AuditDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID    uuid.UUID `gorm:"type:uuid;index"`
	Kind     string
	OldValue string
	NewValue string
	At       time.Time
}

// TableName specifies the database table name for audit entries.
func (AuditDTO) TableName() string {
	return "job_audit_entries"
}

func fromDomain(aggregate *job.Job) JobDTO {
	assignments := make([]AssignmentDTO, 0, len(aggregate.Assignments()))
	for _, a := range aggregate.Assignments() {
		assignments = append(assignments, assignmentFromDomain(aggregate.ID(), a))
	}

	return JobDTO{
		ID:              aggregate.ID().Bytes(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		LanguageID:      aggregate.LanguageID().Bytes(),
		Status:          aggregate.Status().String(),
		Immediate:       aggregate.Immediate(),
		Due:             aggregate.Due(),
		Duration:        aggregate.Duration(),
		Gender:          string(aggregate.Gender()),
		Certified:       string(aggregate.Certified()),
		JobType:         string(aggregate.JobType()),
		PhoneBooking:    aggregate.PhoneBooking(),
		PhysicalBooking: aggregate.PhysicalBooking(),
		Town:            aggregate.Town(),
		ByAdmin:         aggregate.ByAdmin(),
		AdminComments:   aggregate.AdminComments(),
		Reference:       aggregate.Reference(),
		ContactEmail:    aggregate.ContactEmail(),
		Address:         aggregate.Address(),
		Instructions:    aggregate.Instructions(),
		Flagged:         aggregate.Flagged(),
		ManuallyHandled: aggregate.ManuallyHandled(),
		EmailSent:       aggregate.EmailSent(),
		CreatedAt:       aggregate.CreatedAt(),
		WillExpireAt:    aggregate.WillExpireAt(),
		EndAt:           aggregate.EndAt(),
		WithdrawAt:      aggregate.WithdrawAt(),
		SessionTime:     aggregate.SessionTime(),
		Assignments:     assignments,
	}
}

func assignmentFromDomain(jobID kernel.UUID, a job.Assignment) AssignmentDTO {
	var completedBy *uuid.UUID
	if id := a.CompletedBy(); id != nil {
		raw := id.Bytes()
		completedBy = &raw
	}

	return AssignmentDTO{
		ID:           a.ID().Bytes(),
		JobID:        jobID.Bytes(),
		TranslatorID: a.TranslatorID().Bytes(),
		AssignedAt:   a.AssignedAt(),
		CancelAt:     a.CancelAt(),
		CompletedAt:  a.CompletedAt(),
		CompletedBy:  completedBy,
	}
}

func auditFromDomain(jobID kernel.UUID, e job.AuditEntry) AuditDTO {
	return AuditDTO{
		ID:       e.ID.Bytes(),
		JobID:    jobID.Bytes(),
		Kind:     string(e.Kind),
		OldValue: e.OldValue,
		NewValue: e.NewValue,
		At:       e.At,
	}
}

func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	languageID, err := kernel.UUIDFromBytes(dto.LanguageID[:])
	if err != nil {
		return nil, err
	}
	status, err := job.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	assignments := make([]job.Assignment, 0, len(dto.Assignments))
	for _, a := range dto.Assignments {
		restored, assignErr := assignmentToDomain(a)
		if assignErr != nil {
			return nil, assignErr
		}
		assignments = append(assignments, restored)
	}

	return job.RestoreJob(
		id, customerID, languageID,
		status,
		job.Details{
			Immediate:       dto.Immediate,
			Due:             dto.Due,
			Duration:        dto.Duration,
			Gender:          job.Gender(dto.Gender),
			Certified:       job.Certification(dto.Certified),
			JobType:         job.Type(dto.JobType),
			PhoneBooking:    dto.PhoneBooking,
			PhysicalBooking: dto.PhysicalBooking,
			Town:            dto.Town,
			ByAdmin:         dto.ByAdmin,
		},
		dto.AdminComments, dto.Reference, dto.ContactEmail, dto.Address, dto.Instructions,
		dto.Flagged, dto.ManuallyHandled, dto.EmailSent,
		dto.CreatedAt, dto.WillExpireAt,
		dto.EndAt, dto.WithdrawAt, dto.SessionTime,
		assignments,
	)
}

func assignmentToDomain(dto AssignmentDTO) (job.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return job.Assignment{}, err
	}
	translatorID, err := kernel.UUIDFromBytes(dto.TranslatorID[:])
	if err != nil {
		return job.Assignment{}, err
	}

	var completedBy *kernel.UUID
	if dto.CompletedBy != nil {
		restored, byErr := kernel.UUIDFromBytes((*dto.CompletedBy)[:])
		if byErr != nil {
			return job.Assignment{}, byErr
		}
		completedBy = &restored
	}

	return job.RestoreAssignment(id, translatorID, dto.AssignedAt, dto.CancelAt, dto.CompletedAt, completedBy), nil
}
