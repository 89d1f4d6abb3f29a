package commands

import (
	"errors"

	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/pkg/guard"
)

var ErrCustomerNotCallCommandIsNotConstructed = errors.New(
	"CustomerNotCallCommand must be created via NewCustomerNotCallCommand constructor",
)

// CustomerNotCallCommand marks a started session the customer never showed
// up for. The session closes in the translator's favor without the
// completion emails.
type CustomerNotCallCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCustomerNotCallCommand creates a command to flag a customer no-show.
func NewCustomerNotCallCommand(jobID kernel.UUID) (CustomerNotCallCommand, error) {
	cmd := CustomerNotCallCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setJobID(jobID); err != nil {
		return CustomerNotCallCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CustomerNotCallCommand) Validate() error {
	return c.guard.Validate(ErrCustomerNotCallCommandIsNotConstructed)
}

// JobID returns the booking being closed.
func (c CustomerNotCallCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c *CustomerNotCallCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}
