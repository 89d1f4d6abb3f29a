package commands

import (
	"context"

	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/core/domain/model/user"
	"tolkbook/internal/core/domain/services"
	"tolkbook/internal/core/ports"
)

// broadcaster offers a booking to its eligible translator pool. Shared by
// every handler that re-broadcasts: creation, reopening, translator release
// and admin-forced reopen transitions.
type broadcaster struct {
	uowFactory UoWFactory
	matcher    services.EligibilityMatcher
	notifier   Notifier
	languages  ports.LanguageCatalog
}

// broadcast computes eligibility in a read-only transaction and fans the
// offer out via push, plus SMS when asked. exclude omits the departing
// translator on reassignment broadcasts. Runs only after the triggering
// state change has been committed.
func (b broadcaster) broadcast(ctx context.Context, j *job.Job, exclude *kernel.UUID, withSMS bool) error {
	uow := b.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	owner, err := uow.UserRepository().Get(ctx, j.CustomerID())
	if err != nil {
		return err
	}
	pool, err := uow.UserRepository().GetAllActiveTranslators(ctx)
	if err != nil {
		return err
	}
	busy, err := uow.JobRepository().GetOpenAssignmentRanges(ctx)
	if err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	language, err := b.languages.NameByID(ctx, j.LanguageID())
	if err != nil {
		return err
	}

	eligible := b.matcher.Match(j, owner, pool, busy, exclude)
	b.notifier.BroadcastNewJob(ctx, j, language, eligible)
	if withSMS {
		b.notifier.SendSMS(ctx, j, townFor(j, owner), eligible)
	}
	return nil
}

// broadcastSMSOnly re-offers the booking over SMS without a push.
func (b broadcaster) broadcastSMSOnly(ctx context.Context, j *job.Job) error {
	uow := b.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	owner, err := uow.UserRepository().Get(ctx, j.CustomerID())
	if err != nil {
		return err
	}
	pool, err := uow.UserRepository().GetAllActiveTranslators(ctx)
	if err != nil {
		return err
	}
	busy, err := uow.JobRepository().GetOpenAssignmentRanges(ctx)
	if err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	eligible := b.matcher.Match(j, owner, pool, busy, nil)
	b.notifier.SendSMS(ctx, j, townFor(j, owner), eligible)
	return nil
}

// townFor falls back to the customer's city when the booking has no town.
func townFor(j *job.Job, owner *user.User) string {
	if j.Town() != "" {
		return j.Town()
	}
	return owner.Meta().City
}
