package services

import (
	"time"

	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/core/domain/model/user"
)

// TimeRange is a half-open interval [Start, End) occupied by an existing
// assignment's session.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two intervals intersect.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// EligibilityMatcher is a domain service that computes which translators are
// permitted to see and accept a booking.
//
// A translator qualifies only when all of the following hold:
//   - the account is active
//   - the translator type serves the booking type (paid bookings need
//     professionals, rws bookings need rws translators, unpaid bookings
//     need volunteers)
//   - the translator speaks the booking's language
//   - the translator's gender matches when the booking specifies one
//   - the translator's qualification tier satisfies the booking's
//     certification requirement
//   - the customer has not blacklisted the translator
//   - for physical-only bookings, the translator lives in the customer's town
//   - the translator holds no assignment whose session overlaps this booking
//   - the translator is not explicitly excluded (the departing translator on
//     a reassignment broadcast)
//
// Example usage:
//
//	matcher := services.NewEligibilityMatcher()
//	eligible := matcher.Match(j, owner, pool, busy, nil)
//	// eligible now holds every translator the booking may be offered to
type EligibilityMatcher struct{}

// NewEligibilityMatcher creates a new EligibilityMatcher instance.
func NewEligibilityMatcher() EligibilityMatcher {
	return EligibilityMatcher{}
}

// Match filters the translator pool down to those eligible for the booking.
// busy maps a translator id's string form to the session intervals of the
// assignments that translator currently holds. exclude, when non-nil, omits
// that translator regardless of eligibility.
func (m EligibilityMatcher) Match(
	j *job.Job,
	owner *user.User,
	pool []*user.User,
	busy map[string][]TimeRange,
	exclude *kernel.UUID,
) []*user.User {
	requiredType := translatorTypeFor(j.JobType())
	levels := acceptedLevels(j.Certified())
	start, end := j.TimeRange()
	jobRange := TimeRange{Start: start, End: end}

	eligible := make([]*user.User, 0, len(pool))
	for _, t := range pool {
		if t == nil || !t.Active() || !t.IsTranslator() {
			continue
		}
		if exclude != nil && t.ID().IsEqual(*exclude) {
			continue
		}
		if t.Meta().TranslatorType != requiredType {
			continue
		}
		if !t.SpeaksLanguage(j.LanguageID()) {
			continue
		}
		if j.Gender() != job.GenderUnspecified && string(j.Gender()) != t.Meta().Gender {
			continue
		}
		if levels != nil && !levels[t.Meta().TranslatorLevel] {
			continue
		}
		if owner != nil && owner.HasBlacklisted(t.ID()) {
			continue
		}
		if j.PhysicalOnly() && owner != nil && t.Meta().City != owner.Meta().City {
			continue
		}
		if overlapsAny(jobRange, busy[t.ID().String()]) {
			continue
		}
		eligible = append(eligible, t)
	}
	return eligible
}

func overlapsAny(jobRange TimeRange, held []TimeRange) bool {
	for _, r := range held {
		if jobRange.Overlaps(r) {
			return true
		}
	}
	return false
}

func translatorTypeFor(t job.Type) user.TranslatorType {
	switch t {
	case job.TypeRWS:
		return user.TranslatorTypeRWS
	case job.TypeUnpaid:
		return user.TranslatorTypeVolunteer
	default:
		return user.TranslatorTypeProfessional
	}
}

// acceptedLevels maps a booking's certification requirement to the
// qualification tiers that satisfy it. A nil map means no tier restriction.
func acceptedLevels(c job.Certification) map[user.TranslatorLevel]bool {
	switch c {
	case job.CertificationYes, job.CertificationBoth:
		return map[user.TranslatorLevel]bool{
			user.LevelCertified:       true,
			user.LevelCertifiedLaw:    true,
			user.LevelCertifiedHealth: true,
		}
	case job.CertificationLaw, job.CertificationNLaw:
		return map[user.TranslatorLevel]bool{
			user.LevelCertifiedLaw: true,
		}
	case job.CertificationHealth, job.CertificationNHealth:
		return map[user.TranslatorLevel]bool{
			user.LevelCertifiedHealth: true,
		}
	case job.CertificationNormal:
		return map[user.TranslatorLevel]bool{
			user.LevelLayman:      true,
			user.LevelReadCourses: true,
		}
	default:
		return nil
	}
}
