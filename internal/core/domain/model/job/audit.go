package job

import (
	"time"

	"tolkbook/internal/core/domain/model/kernel"
)

// AuditKind classifies what an audit entry records about a booking update.
type AuditKind string

const (
	AuditStatusChange     AuditKind = "status_change"
	AuditTranslatorChange AuditKind = "translator_change"
	AuditDueChange        AuditKind = "due_change"
	AuditLanguageChange   AuditKind = "language_change"
)

// AuditEntry is one recorded change on a booking. Translator, due-date, and
// language changes made within the same update call are logged as
// independent entries.
type AuditEntry struct {
	ID       kernel.UUID
	Kind     AuditKind
	OldValue string
	NewValue string
	At       time.Time
}

func (j *Job) appendAudit(kind AuditKind, oldValue, newValue string, at time.Time) {
	j.audit = append(j.audit, AuditEntry{
		ID:       kernel.NewUUID(),
		Kind:     kind,
		OldValue: oldValue,
		NewValue: newValue,
		At:       at,
	})
}

// AuditTrail returns the entries recorded on this aggregate since it was
// constructed or restored. The repository persists them on update.
func (j *Job) AuditTrail() []AuditEntry {
	return j.audit
}
