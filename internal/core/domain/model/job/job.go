package job

import (
	"errors"
	"fmt"
	"time"

	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/pkg/errs"
)

var (
	// ErrJobIsNotConstructed is returned when a Job instance was not created
	// through NewJob or RestoreJob. This ensures all jobs carry validated state.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or RestoreJob")
)

// immediateLeadTime is how far ahead an immediate booking is due.
const immediateLeadTime = 5 * time.Minute

// withdrawThreshold separates the two customer withdrawal classifications.
const withdrawThreshold = 24 * time.Hour

// nullAuditValue marks the absent side of a change in an audit entry.
const nullAuditValue = "null"

// Details carries the booking attributes supplied at creation. Immediate
// bookings ignore Due and PhoneBooking: the due time becomes now plus a
// short lead and the phone option is forced on.
type Details struct {
	LanguageID      kernel.UUID
	Immediate       bool
	Due             time.Time
	Duration        int
	Gender          Gender
	Certified       Certification
	JobType         Type
	PhoneBooking    bool
	PhysicalBooking bool
	Town            string
	ByAdmin         bool
}

// Job is the aggregate root for one interpretation booking. It owns the
// lifecycle status, the ordered translator assignment history, and the audit
// entries recorded during the current mutation session.
//
// Invariants:
//   - The due time is strictly future at creation unless the booking is
//     immediate.
//   - The status is always one of the closed enum values.
//   - At most one assignment is open (neither cancelled nor completed).
//   - Can only be created through NewJob or RestoreJob.
type Job struct {
	id         kernel.UUID
	customerID kernel.UUID
	languageID kernel.UUID

	status    Status
	immediate bool
	due       time.Time
	duration  int
	gender    Gender
	certified Certification
	jobType   Type

	phoneBooking    bool
	physicalBooking bool
	town            string

	adminComments   string
	reference       string
	contactEmail    string
	address         string
	instructions    string
	flagged         bool
	manuallyHandled bool
	byAdmin         bool
	emailSent       bool

	createdAt    time.Time
	willExpireAt time.Time
	endAt        *time.Time
	withdrawAt   *time.Time
	sessionTime  string

	assignments []Assignment
	audit       []AuditEntry

	isConstructed bool
}

// NewJob creates a pending booking from validated details. For immediate
// bookings the due time is set to now plus a short lead and the phone option
// forced on; otherwise the due time must be strictly in the future and at
// least one of the phone/physical options chosen.
func NewJob(id, customerID kernel.UUID, d Details, now time.Time) (*Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	if err := d.LanguageID.Validate(); err != nil {
		return nil, errs.NewValidationError("from_language_id")
	}
	if d.Duration <= 0 {
		return nil, errs.NewValidationError("duration")
	}
	if err := errors.Join(
		d.Gender.Validate(),
		d.Certified.Validate(),
		d.JobType.Validate(),
	); err != nil {
		return nil, err
	}

	j := &Job{
		id:              id,
		customerID:      customerID,
		languageID:      d.LanguageID,
		status:          Pending,
		immediate:       d.Immediate,
		due:             d.Due,
		duration:        d.Duration,
		gender:          d.Gender,
		certified:       d.Certified,
		jobType:         d.JobType,
		phoneBooking:    d.PhoneBooking,
		physicalBooking: d.PhysicalBooking,
		town:            d.Town,
		byAdmin:         d.ByAdmin,
		createdAt:       now,
		isConstructed:   true,
	}

	if d.Immediate {
		j.due = now.Add(immediateLeadTime)
		j.phoneBooking = true
	} else {
		if d.Due.IsZero() {
			return nil, errs.NewValidationError("due_date")
		}
		if !d.Due.After(now) {
			return nil, errs.NewValidationErrorWithCause("due_date",
				fmt.Errorf("booking cannot be created in the past"))
		}
		if !d.PhoneBooking && !d.PhysicalBooking {
			return nil, errs.NewValidationError("customer_phone_type")
		}
	}

	j.willExpireAt = kernel.WillExpireAt(j.due, now)
	return j, nil
}

// RestoreJob reconstructs a booking from persistence. It validates the
// closed enums and the single-open-assignment invariant but performs no
// creation-time checks such as the future due time.
func RestoreJob(
	id, customerID, languageID kernel.UUID,
	status Status,
	d Details,
	adminComments, reference, contactEmail, address, instructions string,
	flagged, manuallyHandled, emailSent bool,
	createdAt, willExpireAt time.Time,
	endAt, withdrawAt *time.Time,
	sessionTime string,
	assignments []Assignment,
) (*Job, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		languageID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	open := 0
	for _, a := range assignments {
		if a.IsOpen() {
			open++
		}
	}
	if open > 1 {
		return nil, errs.NewConflictError("more than one open assignment")
	}

	return &Job{
		id:              id,
		customerID:      customerID,
		languageID:      languageID,
		status:          status,
		immediate:       d.Immediate,
		due:             d.Due,
		duration:        d.Duration,
		gender:          d.Gender,
		certified:       d.Certified,
		jobType:         d.JobType,
		phoneBooking:    d.PhoneBooking,
		physicalBooking: d.PhysicalBooking,
		town:            d.Town,
		byAdmin:         d.ByAdmin,
		adminComments:   adminComments,
		reference:       reference,
		contactEmail:    contactEmail,
		address:         address,
		instructions:    instructions,
		flagged:         flagged,
		manuallyHandled: manuallyHandled,
		emailSent:       emailSent,
		createdAt:       createdAt,
		willExpireAt:    willExpireAt,
		endAt:           endAt,
		withdrawAt:      withdrawAt,
		sessionTime:     sessionTime,
		assignments:     assignments,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Job was constructed through NewJob or RestoreJob.
func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}
	return nil
}

func (j *Job) ID() kernel.UUID           { return j.id }
func (j *Job) CustomerID() kernel.UUID   { return j.customerID }
func (j *Job) LanguageID() kernel.UUID   { return j.languageID }
func (j *Job) Status() Status            { return j.status }
func (j *Job) Immediate() bool           { return j.immediate }
func (j *Job) Due() time.Time            { return j.due }
func (j *Job) Duration() int             { return j.duration }
func (j *Job) Gender() Gender            { return j.gender }
func (j *Job) Certified() Certification  { return j.certified }
func (j *Job) JobType() Type             { return j.jobType }
func (j *Job) PhoneBooking() bool        { return j.phoneBooking }
func (j *Job) PhysicalBooking() bool     { return j.physicalBooking }
func (j *Job) Town() string              { return j.town }
func (j *Job) AdminComments() string     { return j.adminComments }
func (j *Job) Reference() string         { return j.reference }
func (j *Job) ContactEmail() string      { return j.contactEmail }
func (j *Job) Address() string           { return j.address }
func (j *Job) Instructions() string      { return j.instructions }
func (j *Job) Flagged() bool             { return j.flagged }
func (j *Job) ManuallyHandled() bool     { return j.manuallyHandled }
func (j *Job) ByAdmin() bool             { return j.byAdmin }
func (j *Job) EmailSent() bool           { return j.emailSent }
func (j *Job) CreatedAt() time.Time      { return j.createdAt }
func (j *Job) WillExpireAt() time.Time   { return j.willExpireAt }
func (j *Job) EndAt() *time.Time         { return j.endAt }
func (j *Job) WithdrawAt() *time.Time    { return j.withdrawAt }
func (j *Job) SessionTime() string       { return j.sessionTime }
func (j *Job) Assignments() []Assignment { return j.assignments }

// PhysicalOnly reports whether the booking must happen on site, which
// restricts eligibility to translators in the customer's town.
func (j *Job) PhysicalOnly() bool {
	return j.physicalBooking && !j.phoneBooking
}

// TimeRange returns the interval the session occupies, [due, due+duration).
// Used for double-booking checks.
func (j *Job) TimeRange() (start, end time.Time) {
	return j.due, j.due.Add(time.Duration(j.duration) * time.Minute)
}

// CurrentAssignment returns the single open assignment, or nil when the
// booking has no active translator.
func (j *Job) CurrentAssignment() *Assignment {
	for i := range j.assignments {
		if j.assignments[i].IsOpen() {
			return &j.assignments[i]
		}
	}
	return nil
}

// SetAdminComments overwrites the admin comment field.
func (j *Job) SetAdminComments(comments string) { j.adminComments = comments }

// SetReference overwrites the customer reference field.
func (j *Job) SetReference(reference string) { j.reference = reference }

// SetFlags overwrites the admin handling flags.
func (j *Job) SetFlags(flagged, manuallyHandled, byAdmin bool) {
	j.flagged = flagged
	j.manuallyHandled = manuallyHandled
	j.byAdmin = byAdmin
}

// SetContact records the booking's contact details, falling back to nothing:
// empty values are kept as given, callers substitute customer defaults.
func (j *Job) SetContact(email, address, instructions, town string) {
	j.contactEmail = email
	j.address = address
	j.instructions = instructions
	j.town = town
}

// MarkEmailSent records that the booking receipt email went out.
func (j *Job) MarkEmailSent() { j.emailSent = true }

// Accept opens an assignment for the translator and moves the booking to
// assigned. Fails with a conflict if the booking is not pending or already
// holds an active translator.
func (j *Job) Accept(translatorID kernel.UUID, now time.Time) error {
	if err := translatorID.Validate(); err != nil {
		return err
	}
	if j.status != Pending {
		return errs.NewConflictError("job is no longer pending")
	}
	if j.CurrentAssignment() != nil {
		return errs.NewConflictError("job already has an active translator")
	}

	j.assignments = append(j.assignments, newAssignment(translatorID, now))
	j.status = Assigned
	j.appendAudit(AuditStatusChange, Pending.String(), Assigned.String(), now)
	return nil
}

// TranslatorChange reports the outcome of a ChangeTranslator call.
type TranslatorChange struct {
	Changed       bool
	OldTranslator *kernel.UUID
	NewTranslator *kernel.UUID
}

// ChangeTranslator reconciles the assignment history with a requested
// translator. An active assignment with a different translator requested is
// closed and a new one opened; no active assignment with a translator
// requested opens one; anything else is no change. Every applied change is
// recorded as an independent audit entry.
func (j *Job) ChangeTranslator(requested *kernel.UUID, now time.Time) TranslatorChange {
	if requested == nil {
		return TranslatorChange{}
	}

	current := j.CurrentAssignment()
	if current != nil {
		if current.translatorID.IsEqual(*requested) {
			return TranslatorChange{}
		}
		oldID := current.translatorID
		current.cancelAt = &now
		j.assignments = append(j.assignments, newAssignment(*requested, now))
		j.appendAudit(AuditTranslatorChange, oldID.String(), requested.String(), now)
		return TranslatorChange{Changed: true, OldTranslator: &oldID, NewTranslator: requested}
	}

	j.assignments = append(j.assignments, newAssignment(*requested, now))
	j.appendAudit(AuditTranslatorChange, nullAuditValue, requested.String(), now)
	return TranslatorChange{Changed: true, NewTranslator: requested}
}

// ChangeDue moves the booking's due time, recording an audit entry.
// Returns the previous due time and whether anything changed.
func (j *Job) ChangeDue(newDue, now time.Time) (time.Time, bool) {
	if newDue.IsZero() || j.due.Equal(newDue) {
		return j.due, false
	}
	oldDue := j.due
	j.due = newDue
	j.appendAudit(AuditDueChange, oldDue.Format(time.RFC3339), newDue.Format(time.RFC3339), now)
	return oldDue, true
}

// ChangeLanguage swaps the booking's language, recording an audit entry.
// Returns the previous language id and whether anything changed.
func (j *Job) ChangeLanguage(newLanguage kernel.UUID, now time.Time) (kernel.UUID, bool) {
	if newLanguage.Validate() != nil || j.languageID.IsEqual(newLanguage) {
		return j.languageID, false
	}
	oldLanguage := j.languageID
	j.languageID = newLanguage
	j.appendAudit(AuditLanguageChange, oldLanguage.String(), newLanguage.String(), now)
	return oldLanguage, true
}

// WithdrawByCustomer cancels the booking on the customer's initiative.
// Twenty-four hours or more of notice classifies as withdrawbefore24, less
// as withdrawafter24; the boundary of exactly 24 hours counts as before.
func (j *Job) WithdrawByCustomer(now time.Time) Status {
	withdrawAt := now
	j.withdrawAt = &withdrawAt

	oldStatus := j.status
	if j.due.Sub(now) >= withdrawThreshold {
		j.status = WithdrawBefore24
	} else {
		j.status = WithdrawAfter24
	}
	j.appendAudit(AuditStatusChange, oldStatus.String(), j.status.String(), now)
	return j.status
}

// ReleaseByTranslator removes the current translator relation entirely and
// resets the booking to pending with a freshly computed expiry, ready for
// re-broadcast. Returns the departing translator's id.
func (j *Job) ReleaseByTranslator(now time.Time) (kernel.UUID, error) {
	current := j.CurrentAssignment()
	if current == nil {
		return kernel.UUID{}, errs.NewConflictError("no active translator to release")
	}

	departing := current.translatorID
	kept := make([]Assignment, 0, len(j.assignments)-1)
	for _, a := range j.assignments {
		if !a.id.IsEqual(current.id) {
			kept = append(kept, a)
		}
	}
	j.assignments = kept

	oldStatus := j.status
	j.status = Pending
	j.createdAt = now
	j.willExpireAt = kernel.WillExpireAt(j.due, now)
	j.appendAudit(AuditStatusChange, oldStatus.String(), Pending.String(), now)
	return departing, nil
}

// Start begins the interpretation session. Requires an assigned booking
// with an active translator.
func (j *Job) Start(now time.Time) error {
	if j.status != Assigned {
		return errs.NewConflictError("job is not assigned")
	}
	if j.CurrentAssignment() == nil {
		return errs.NewConflictError("no active translator")
	}
	j.status = Started
	j.appendAudit(AuditStatusChange, Assigned.String(), Started.String(), now)
	return nil
}

// EndResult reports a session completion: the elapsed session length in
// "H:MM:SS" form, its human label, the party completion was attributed to,
// and the translator who held the booking.
type EndResult struct {
	SessionTime  string
	SessionLabel string
	CompletedBy  kernel.UUID
	TranslatorID kernel.UUID
}

// End completes a started session. The session length is the elapsed time
// between the due instant and now. Completion is attributed to the
// counterparty of the caller: the customer ending the session credits the
// translator and the other way around.
func (j *Job) End(triggeredBy kernel.UUID, now time.Time) (EndResult, error) {
	if j.status != Started {
		return EndResult{}, errs.NewConflictError("job has not started")
	}
	current := j.CurrentAssignment()
	if current == nil {
		return EndResult{}, errs.NewConflictError("no active translator")
	}

	interval := formatSessionInterval(j.due, now)
	endAt := now
	j.endAt = &endAt
	j.sessionTime = interval

	oldStatus := j.status
	j.status = Completed
	j.appendAudit(AuditStatusChange, oldStatus.String(), Completed.String(), now)

	completedBy := current.translatorID
	if !triggeredBy.IsEqual(j.customerID) {
		completedBy = j.customerID
	}
	current.completedAt = &endAt
	current.completedBy = &completedBy

	return EndResult{
		SessionTime:  interval,
		SessionLabel: SessionLabel(interval),
		CompletedBy:  completedBy,
		TranslatorID: current.translatorID,
	}, nil
}

// MarkNotCarriedOut closes a started session the customer never showed up
// for. Completion is attributed to the translator.
func (j *Job) MarkNotCarriedOut(now time.Time) error {
	if j.status != Started {
		return errs.NewConflictError("job has not started")
	}
	current := j.CurrentAssignment()
	if current == nil {
		return errs.NewConflictError("no active translator")
	}

	endAt := now
	j.endAt = &endAt
	j.sessionTime = formatSessionInterval(j.due, now)

	oldStatus := j.status
	j.status = NotCarriedOutCustomer
	j.appendAudit(AuditStatusChange, oldStatus.String(), NotCarriedOutCustomer.String(), now)

	translatorID := current.translatorID
	current.completedAt = &endAt
	current.completedBy = &translatorID
	return nil
}

// ReopenInPlace resets the booking to pending with a fresh expiry. Any open
// assignment is closed, and a placeholder assignment already carrying the
// cancellation instant records who reopened the booking.
func (j *Job) ReopenInPlace(actorID kernel.UUID, now time.Time) {
	oldStatus := j.status
	j.status = Pending
	j.createdAt = now
	j.willExpireAt = kernel.WillExpireAt(j.due, now)
	j.emailSent = false
	j.appendAudit(AuditStatusChange, oldStatus.String(), Pending.String(), now)

	j.closeAssignmentsForReopen(actorID, now)
}

// CloneForReopen creates a fresh pending booking from a timed-out one,
// preserving the due date and details and recording a reference to the
// original in the admin comments. The original keeps its own history.
func (j *Job) CloneForReopen(newID kernel.UUID, now time.Time) (*Job, error) {
	if err := newID.Validate(); err != nil {
		return nil, err
	}

	clone := &Job{
		id:              newID,
		customerID:      j.customerID,
		languageID:      j.languageID,
		status:          Pending,
		immediate:       j.immediate,
		due:             j.due,
		duration:        j.duration,
		gender:          j.gender,
		certified:       j.certified,
		jobType:         j.jobType,
		phoneBooking:    j.phoneBooking,
		physicalBooking: j.physicalBooking,
		town:            j.town,
		reference:       j.reference,
		contactEmail:    j.contactEmail,
		address:         j.address,
		instructions:    j.instructions,
		flagged:         j.flagged,
		manuallyHandled: j.manuallyHandled,
		byAdmin:         j.byAdmin,
		adminComments:   fmt.Sprintf("This booking is a reopening of booking #%s", j.id),
		createdAt:       now,
		willExpireAt:    kernel.WillExpireAt(j.due, now),
		isConstructed:   true,
	}
	return clone, nil
}

// CloseAssignmentsForReopen closes any open assignment and records the
// placeholder entry for a reopened booking whose clone carries on.
func (j *Job) CloseAssignmentsForReopen(actorID kernel.UUID, now time.Time) {
	j.closeAssignmentsForReopen(actorID, now)
}

func (j *Job) closeAssignmentsForReopen(actorID kernel.UUID, now time.Time) {
	cancelAt := now
	for i := range j.assignments {
		if j.assignments[i].IsOpen() {
			j.assignments[i].cancelAt = &cancelAt
		}
	}
	placeholder := newAssignment(actorID, now)
	placeholder.cancelAt = &cancelAt
	j.assignments = append(j.assignments, placeholder)
}

// MarkTimedOut expires a pending booking whose acceptance window closed.
func (j *Job) MarkTimedOut(now time.Time) error {
	if j.status != Pending {
		return errs.NewConflictError("only pending jobs can time out")
	}
	j.status = TimedOut
	j.appendAudit(AuditStatusChange, Pending.String(), TimedOut.String(), now)
	return nil
}

// formatSessionInterval renders the elapsed time between the due instant and
// the completion instant as "H:MM:SS".
func formatSessionInterval(due, completedAt time.Time) string {
	elapsed := completedAt.Sub(due)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	hours := int(elapsed.Hours())
	minutes := int(elapsed.Minutes()) % 60
	seconds := int(elapsed.Seconds()) % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}

// SessionLabel renders an "H:MM:SS" interval as the human form used in the
// session-ended emails, e.g. "1 tim 30 min".
func SessionLabel(interval string) string {
	var hours, minutes, seconds int
	if _, err := fmt.Sscanf(interval, "%d:%d:%d", &hours, &minutes, &seconds); err != nil {
		return interval
	}
	return fmt.Sprintf("%d tim %02d min", hours, minutes)
}
