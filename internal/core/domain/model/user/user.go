// Package user contains the User aggregate shared by customers, translators
// and administrators. Translator-specific attributes (type, level, spoken
// languages) live in the same aggregate since a user holds exactly one role.
package user

import (
	"errors"
	"fmt"

	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/pkg/errs"
)

var (
	// ErrUserIsNotConstructed is returned when a User instance was not created
	// through NewUser or RestoreUser.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")
)

// Role classifies what a user can do in the system.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleTranslator Role = "translator"
	RoleAdmin      Role = "admin"
)

func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleTranslator, RoleAdmin:
		return nil
	}
	return errs.NewValidationErrorWithCause("role", fmt.Errorf("unknown role %q", string(r)))
}

// TranslatorType mirrors the booking types a translator may serve.
type TranslatorType string

const (
	TranslatorTypeNone         TranslatorType = ""
	TranslatorTypeProfessional TranslatorType = "professional"
	TranslatorTypeRWS          TranslatorType = "rwstranslator"
	TranslatorTypeVolunteer    TranslatorType = "volunteer"
)

func (t TranslatorType) Validate() error {
	switch t {
	case TranslatorTypeNone, TranslatorTypeProfessional, TranslatorTypeRWS, TranslatorTypeVolunteer:
		return nil
	}
	return errs.NewValidationErrorWithCause("translator_type", fmt.Errorf("unknown translator type %q", string(t)))
}

// TranslatorLevel is the qualification tier a translator holds.
type TranslatorLevel string

const (
	LevelNone            TranslatorLevel = ""
	LevelCertified       TranslatorLevel = "Certified"
	LevelCertifiedLaw    TranslatorLevel = "Certified with specialisation in law"
	LevelCertifiedHealth TranslatorLevel = "Certified with specialisation in health care"
	LevelLayman          TranslatorLevel = "Layman"
	LevelReadCourses     TranslatorLevel = "Read Translation courses"
)

func (l TranslatorLevel) Validate() error {
	switch l {
	case LevelNone, LevelCertified, LevelCertifiedLaw, LevelCertifiedHealth, LevelLayman, LevelReadCourses:
		return nil
	}
	return errs.NewValidationErrorWithCause("translator_level", fmt.Errorf("unknown translator level %q", string(l)))
}

// Meta holds the per-role profile attributes. Customer-only fields are
// empty on translators and vice versa.
type Meta struct {
	TranslatorType  TranslatorType
	TranslatorLevel TranslatorLevel
	Gender          string
	City            string
	ConsumerType    string
	OptOutAll       bool
	OptOutNightTime bool
	OptOutEmergency bool
}

// User is the aggregate root for any account: customer, translator or
// administrator.
//
// Invariants:
//   - Role is one of the closed enum values.
//   - Can only be created through NewUser or RestoreUser.
type User struct {
	id     kernel.UUID
	role   Role
	active bool

	name  string
	email string
	phone string

	meta      Meta
	languages []kernel.UUID
	blacklist []kernel.UUID

	isConstructed bool
}

// NewUser creates an active user with the given role and profile.
func NewUser(id kernel.UUID, role Role, name, email, phone string, meta Meta) (*User, error) {
	if err := errors.Join(
		id.Validate(),
		role.Validate(),
		meta.TranslatorType.Validate(),
		meta.TranslatorLevel.Validate(),
	); err != nil {
		return nil, err
	}

	return &User{
		id:            id,
		role:          role,
		active:        true,
		name:          name,
		email:         email,
		phone:         phone,
		meta:          meta,
		isConstructed: true,
	}, nil
}

// RestoreUser reconstructs a user from persistence.
func RestoreUser(
	id kernel.UUID,
	role Role,
	active bool,
	name, email, phone string,
	meta Meta,
	languages, blacklist []kernel.UUID,
) (*User, error) {
	if err := errors.Join(
		id.Validate(),
		role.Validate(),
	); err != nil {
		return nil, err
	}

	return &User{
		id:            id,
		role:          role,
		active:        active,
		name:          name,
		email:         email,
		phone:         phone,
		meta:          meta,
		languages:     languages,
		blacklist:     blacklist,
		isConstructed: true,
	}, nil
}

// Validate ensures the User was constructed through NewUser or RestoreUser.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID          { return u.id }
func (u *User) Role() Role               { return u.role }
func (u *User) Active() bool             { return u.active }
func (u *User) Name() string             { return u.name }
func (u *User) Email() string            { return u.email }
func (u *User) Phone() string            { return u.phone }
func (u *User) Meta() Meta               { return u.meta }
func (u *User) Languages() []kernel.UUID { return u.languages }
func (u *User) Blacklist() []kernel.UUID { return u.blacklist }

// IsTranslator reports whether the user can hold assignments.
func (u *User) IsTranslator() bool { return u.role == RoleTranslator }

// SpeaksLanguage reports whether the translator serves the language.
func (u *User) SpeaksLanguage(languageID kernel.UUID) bool {
	for _, l := range u.languages {
		if l.IsEqual(languageID) {
			return true
		}
	}
	return false
}

// HasBlacklisted reports whether the user has blocked the given translator.
func (u *User) HasBlacklisted(translatorID kernel.UUID) bool {
	for _, b := range u.blacklist {
		if b.IsEqual(translatorID) {
			return true
		}
	}
	return false
}

// SetLanguages replaces the translator's language set.
func (u *User) SetLanguages(languages []kernel.UUID) { u.languages = languages }

// SetBlacklist replaces the customer's blocked translator set.
func (u *User) SetBlacklist(blacklist []kernel.UUID) { u.blacklist = blacklist }

// Disable deactivates the account. Disabled translators are excluded from
// eligibility and notification fan-out.
func (u *User) Disable() { u.active = false }

// Enable reactivates the account.
func (u *User) Enable() { u.active = true }
