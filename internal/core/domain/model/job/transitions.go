package job

import (
	"time"

	"tolkbook/internal/core/domain/model/kernel"
)

// ChangeContext carries the parts of an admin update that transition
// validators depend on: whether the same update swapped the translator,
// the admin comment, and the admin-entered session duration ("H:MM:SS").
type ChangeContext struct {
	TranslatorChanged bool
	AdminComments     string
	SessionTime       string
	Now               time.Time
}

// Effect is a notification intent produced by an applied transition.
// The caller executes effects strictly after the state write has been
// persisted; a failed effect never rolls the transition back.
type Effect int

const (
	// EffectEmailReopened tells the customer their booking was reopened
	// and is being re-broadcast.
	EffectEmailReopened Effect = iota + 1

	// EffectRebroadcast re-runs the eligibility match and pushes the
	// booking to all suitable translators.
	EffectRebroadcast

	// EffectEmailAccepted confirms to the customer that a translator
	// accepted the booking.
	EffectEmailAccepted

	// EffectEmailNewTranslator notifies the incoming translator.
	EffectEmailNewTranslator

	// EffectEmailSessionEnded sends the session-ended email pair:
	// invoice context to the customer, payroll context to the translator.
	EffectEmailSessionEnded

	// EffectEmailPendingCancellation sends the cancellation template used
	// when a pending or assigned booking is called off.
	EffectEmailPendingCancellation

	// EffectEmailWithdrawCancellation notifies customer and current
	// translator about a withdrawal.
	EffectEmailWithdrawCancellation

	// EffectRemindSessionStart schedules session-start reminder pushes to
	// both parties, keyed off the due time.
	EffectRemindSessionStart
)

// Outcome is the typed result of a requested status change. A rejected
// outcome means the job was left untouched and the caller must treat the
// request as a silent no-op, not an error.
type Outcome struct {
	Applied bool
	Reason  string
	Effects []Effect
}

func applied(effects ...Effect) Outcome {
	return Outcome{Applied: true, Effects: effects}
}

func rejected(reason string) Outcome {
	return Outcome{Applied: false, Reason: reason}
}

// transitionFunc validates a requested status against the job's current
// state and applies it on success. Implementations mutate the job only on
// the applied path.
type transitionFunc func(j *Job, requested Status, ctx ChangeContext) Outcome

func transitionTable() map[Status]transitionFunc {
	return map[Status]transitionFunc{
		Pending:         fromPending,
		Assigned:        fromAssigned,
		Started:         fromStarted,
		Completed:       fromCompleted,
		TimedOut:        fromTimedOut,
		WithdrawAfter24: fromWithdrawAfter24,
	}
}

// ApplyStatusChange runs the transition table for the job's current status.
// On success the status is updated and an audit entry recorded; the returned
// effects must be executed by the caller after the job has been persisted.
// A request for the current status, an unknown pair, or a failed
// precondition all return a rejected outcome and leave the job unchanged.
func (j *Job) ApplyStatusChange(requested Status, ctx ChangeContext) Outcome {
	if err := requested.Validate(); err != nil {
		return rejected("requested status is invalid")
	}
	if requested == j.status {
		return rejected("status unchanged")
	}

	transition, ok := transitionTable()[j.status]
	if !ok {
		return rejected("no transitions from " + j.status.String())
	}

	oldStatus := j.status
	outcome := transition(j, requested, ctx)
	if outcome.Applied {
		j.appendAudit(AuditStatusChange, oldStatus.String(), j.status.String(), ctx.Now)
	}
	return outcome
}

func fromTimedOut(j *Job, requested Status, ctx ChangeContext) Outcome {
	if requested == Pending {
		j.status = Pending
		j.createdAt = ctx.Now
		j.emailSent = false
		j.willExpireAt = kernel.WillExpireAt(j.due, ctx.Now)
		return applied(EffectEmailReopened, EffectRebroadcast)
	}
	if ctx.TranslatorChanged {
		j.status = requested
		return applied(EffectEmailAccepted)
	}
	return rejected("translator unchanged")
}

func fromCompleted(j *Job, requested Status, ctx ChangeContext) Outcome {
	if requested != TimedOut {
		return rejected("completed bookings can only time out")
	}
	if ctx.AdminComments == "" {
		return rejected("admin comment required")
	}
	j.status = TimedOut
	return applied()
}

func fromStarted(j *Job, requested Status, ctx ChangeContext) Outcome {
	if ctx.AdminComments == "" {
		return rejected("admin comment required")
	}
	if requested == Completed {
		if ctx.SessionTime == "" {
			return rejected("session time required")
		}
		now := ctx.Now
		j.endAt = &now
		j.sessionTime = ctx.SessionTime
		j.status = Completed
		return applied(EffectEmailSessionEnded)
	}
	j.status = requested
	return applied()
}

func fromPending(j *Job, requested Status, ctx ChangeContext) Outcome {
	if requested == TimedOut && ctx.AdminComments == "" {
		return rejected("admin comment required")
	}
	if requested == Assigned && ctx.TranslatorChanged {
		j.status = Assigned
		return applied(EffectEmailAccepted, EffectEmailNewTranslator, EffectRemindSessionStart)
	}
	j.status = requested
	return applied(EffectEmailPendingCancellation)
}

func fromWithdrawAfter24(j *Job, requested Status, ctx ChangeContext) Outcome {
	if requested != TimedOut {
		return rejected("withdrawn bookings can only time out")
	}
	if ctx.AdminComments == "" {
		return rejected("admin comment required")
	}
	j.status = TimedOut
	return applied()
}

func fromAssigned(j *Job, requested Status, ctx ChangeContext) Outcome {
	switch requested {
	case WithdrawBefore24, WithdrawAfter24:
		j.status = requested
		return applied(EffectEmailWithdrawCancellation)
	case TimedOut:
		if ctx.AdminComments == "" {
			return rejected("admin comment required")
		}
		j.status = TimedOut
		return applied()
	default:
		return rejected("assigned bookings can only be withdrawn or time out")
	}
}
