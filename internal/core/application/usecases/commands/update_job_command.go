package commands

import (
	"errors"
	"time"

	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/pkg/guard"
)

var ErrUpdateJobCommandIsNotConstructed = errors.New(
	"UpdateJobCommand must be created via NewUpdateJobCommand constructor",
)

// UpdateJobCommand represents an admin edit of a booking: any combination
// of a forced status, a translator change, a new due time, a new language,
// and updated comments. Nil optional fields leave that attribute untouched.
type UpdateJobCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID

	requestedStatus *job.Status
	translatorID    *kernel.UUID
	due             *time.Time
	languageID      *kernel.UUID
	adminComments   *string
	reference       *string
	sessionTime     string

	guard guard.ConstructorGuard
}

// UpdateJobChanges carries the optional attributes of an admin edit.
type UpdateJobChanges struct {
	RequestedStatus *job.Status
	TranslatorID    *kernel.UUID
	Due             *time.Time
	LanguageID      *kernel.UUID
	AdminComments   *string
	Reference       *string
	SessionTime     string
}

// NewUpdateJobCommand creates an admin edit command.
func NewUpdateJobCommand(jobID kernel.UUID, changes UpdateJobChanges) (UpdateJobCommand, error) {
	cmd := UpdateJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setJobID(jobID); err != nil {
		return UpdateJobCommand{}, err
	}
	if changes.RequestedStatus != nil {
		if err := changes.RequestedStatus.Validate(); err != nil {
			return UpdateJobCommand{}, err
		}
	}
	if changes.TranslatorID != nil {
		if err := changes.TranslatorID.Validate(); err != nil {
			return UpdateJobCommand{}, err
		}
	}
	if changes.LanguageID != nil {
		if err := changes.LanguageID.Validate(); err != nil {
			return UpdateJobCommand{}, err
		}
	}

	cmd.requestedStatus = changes.RequestedStatus
	cmd.translatorID = changes.TranslatorID
	cmd.due = changes.Due
	cmd.languageID = changes.LanguageID
	cmd.adminComments = changes.AdminComments
	cmd.reference = changes.Reference
	cmd.sessionTime = changes.SessionTime

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateJobCommand) Validate() error {
	return c.guard.Validate(ErrUpdateJobCommandIsNotConstructed)
}

// JobID returns the booking being edited.
func (c UpdateJobCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c *UpdateJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}
