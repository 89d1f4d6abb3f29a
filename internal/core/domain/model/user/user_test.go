package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/pkg/errs"
)

func Test_NewUser(t *testing.T) {
	id := kernel.NewUUID()
	meta := Meta{TranslatorType: TranslatorTypeProfessional, TranslatorLevel: LevelCertified}

	u, err := NewUser(id, RoleTranslator, "Anna", "anna@example.com", "+46700000001", meta)
	require.NoError(t, err)

	assert.Equal(t, id, u.ID())
	assert.True(t, u.Active())
	assert.True(t, u.IsTranslator())
	assert.Equal(t, meta, u.Meta())
	assert.NoError(t, u.Validate())
}

func Test_NewUser_InvalidRole(t *testing.T) {
	_, err := NewUser(kernel.NewUUID(), Role("plumber"), "", "", "", Meta{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func Test_NewUser_InvalidLevel(t *testing.T) {
	meta := Meta{TranslatorLevel: TranslatorLevel("wizard")}
	_, err := NewUser(kernel.NewUUID(), RoleTranslator, "", "", "", meta)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func Test_User_Languages(t *testing.T) {
	u, err := NewUser(kernel.NewUUID(), RoleTranslator, "", "", "", Meta{})
	require.NoError(t, err)

	swedish := kernel.NewUUID()
	arabic := kernel.NewUUID()
	u.SetLanguages([]kernel.UUID{swedish})

	assert.True(t, u.SpeaksLanguage(swedish))
	assert.False(t, u.SpeaksLanguage(arabic))
}

func Test_User_Blacklist(t *testing.T) {
	u, err := NewUser(kernel.NewUUID(), RoleCustomer, "", "", "", Meta{})
	require.NoError(t, err)

	blocked := kernel.NewUUID()
	u.SetBlacklist([]kernel.UUID{blocked})

	assert.True(t, u.HasBlacklisted(blocked))
	assert.False(t, u.HasBlacklisted(kernel.NewUUID()))
}

func Test_User_DisableEnable(t *testing.T) {
	u, err := NewUser(kernel.NewUUID(), RoleTranslator, "", "", "", Meta{})
	require.NoError(t, err)

	u.Disable()
	assert.False(t, u.Active())
	u.Enable()
	assert.True(t, u.Active())
}

func Test_User_Validate(t *testing.T) {
	var u User
	assert.ErrorIs(t, u.Validate(), ErrUserIsNotConstructed)
}
