package commands

import (
	"errors"
	"time"

	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/pkg/guard"
)

var ErrCreateJobCommandIsNotConstructed = errors.New(
	"CreateJobCommand must be created via NewCreateJobCommand constructor",
)

// CreateJobCommand represents a request to create a new interpretation
// booking. Field-level validation of the booking details themselves lives
// in the job aggregate; the command only guards the identifiers.
//
// Example:
//
//	jobID := kernel.NewUUID()
//	cmd, err := NewCreateJobCommand(jobID, customerID, details)
//	if err != nil {
//	    return fmt.Errorf("invalid booking data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type CreateJobCommand struct { //nolint:recvcheck //using for validation
	jobID      kernel.UUID
	customerID kernel.UUID

	languageID      kernel.UUID
	immediate       bool
	due             time.Time
	duration        int
	gender          job.Gender
	certified       job.Certification
	phoneBooking    bool
	physicalBooking bool
	town            string
	byAdmin         bool

	userEmail    string
	reference    string
	address      string
	instructions string

	guard guard.ConstructorGuard
}

// CreateJobDetails carries the booking attributes from the transport layer.
type CreateJobDetails struct {
	LanguageID      kernel.UUID
	Immediate       bool
	Due             time.Time
	Duration        int
	Gender          job.Gender
	Certified       job.Certification
	PhoneBooking    bool
	PhysicalBooking bool
	Town            string
	ByAdmin         bool
	UserEmail       string
	Reference       string
	Address         string
	Instructions    string
}

// NewCreateJobCommand creates a command to register a new booking.
func NewCreateJobCommand(jobID, customerID kernel.UUID, details CreateJobDetails) (CreateJobCommand, error) {
	cmd := CreateJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setCustomerID(customerID),
	); err != nil {
		return CreateJobCommand{}, err
	}

	cmd.languageID = details.LanguageID
	cmd.immediate = details.Immediate
	cmd.due = details.Due
	cmd.duration = details.Duration
	cmd.gender = details.Gender
	cmd.certified = details.Certified
	cmd.phoneBooking = details.PhoneBooking
	cmd.physicalBooking = details.PhysicalBooking
	cmd.town = details.Town
	cmd.byAdmin = details.ByAdmin
	cmd.userEmail = details.UserEmail
	cmd.reference = details.Reference
	cmd.address = details.Address
	cmd.instructions = details.Instructions

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobCommandIsNotConstructed)
}

// JobID returns the identifier the new booking will be created under.
func (c CreateJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// CustomerID returns the booking owner's identifier.
func (c CreateJobCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c *CreateJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *CreateJobCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}
