package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/core/domain/model/user"
)

var matcherNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type translatorOpts struct {
	translatorType user.TranslatorType
	level          user.TranslatorLevel
	gender         string
	city           string
	languages      []kernel.UUID
	inactive       bool
}

func makeTranslator(t *testing.T, opts translatorOpts) *user.User {
	t.Helper()
	if opts.translatorType == user.TranslatorTypeNone {
		opts.translatorType = user.TranslatorTypeProfessional
	}
	if opts.level == user.LevelNone {
		opts.level = user.LevelCertified
	}
	u, err := user.NewUser(kernel.NewUUID(), user.RoleTranslator, "", "", "", user.Meta{
		TranslatorType:  opts.translatorType,
		TranslatorLevel: opts.level,
		Gender:          opts.gender,
		City:            opts.city,
	})
	require.NoError(t, err)
	u.SetLanguages(opts.languages)
	if opts.inactive {
		u.Disable()
	}
	return u
}

func makeCustomer(t *testing.T, city string) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), user.RoleCustomer, "", "", "", user.Meta{City: city})
	require.NoError(t, err)
	return u
}

func makeJob(t *testing.T, mutate func(d *job.Details)) *job.Job {
	t.Helper()
	d := job.Details{
		LanguageID:   kernel.NewUUID(),
		Due:          matcherNow.Add(48 * time.Hour),
		Duration:     60,
		JobType:      job.TypePaid,
		PhoneBooking: true,
	}
	if mutate != nil {
		mutate(&d)
	}
	j, err := job.NewJob(kernel.NewUUID(), kernel.NewUUID(), d, matcherNow)
	require.NoError(t, err)
	return j
}

func Test_Match_TranslatorType(t *testing.T) {
	matcher := NewEligibilityMatcher()
	j := makeJob(t, func(d *job.Details) { d.JobType = job.TypeRWS })
	lang := []kernel.UUID{j.LanguageID()}

	rws := makeTranslator(t, translatorOpts{translatorType: user.TranslatorTypeRWS, languages: lang})
	pro := makeTranslator(t, translatorOpts{translatorType: user.TranslatorTypeProfessional, languages: lang})
	vol := makeTranslator(t, translatorOpts{translatorType: user.TranslatorTypeVolunteer, languages: lang})

	eligible := matcher.Match(j, nil, []*user.User{rws, pro, vol}, nil, nil)

	require.Len(t, eligible, 1)
	assert.Equal(t, rws.ID(), eligible[0].ID())
}

func Test_Match_Language(t *testing.T) {
	matcher := NewEligibilityMatcher()
	j := makeJob(t, nil)

	speaks := makeTranslator(t, translatorOpts{languages: []kernel.UUID{j.LanguageID()}})
	doesNot := makeTranslator(t, translatorOpts{languages: []kernel.UUID{kernel.NewUUID()}})

	eligible := matcher.Match(j, nil, []*user.User{speaks, doesNot}, nil, nil)

	require.Len(t, eligible, 1)
	assert.Equal(t, speaks.ID(), eligible[0].ID())
}

func Test_Match_Gender(t *testing.T) {
	matcher := NewEligibilityMatcher()
	j := makeJob(t, func(d *job.Details) { d.Gender = job.GenderFemale })
	lang := []kernel.UUID{j.LanguageID()}

	female := makeTranslator(t, translatorOpts{gender: "female", languages: lang})
	male := makeTranslator(t, translatorOpts{gender: "male", languages: lang})

	eligible := matcher.Match(j, nil, []*user.User{female, male}, nil, nil)

	require.Len(t, eligible, 1)
	assert.Equal(t, female.ID(), eligible[0].ID())
}

func Test_Match_CertificationLevels(t *testing.T) {
	tests := map[string]struct {
		certified job.Certification
		admitted  []user.TranslatorLevel
		rejectedL []user.TranslatorLevel
	}{
		"both admits all certified tiers": {
			certified: job.CertificationBoth,
			admitted:  []user.TranslatorLevel{user.LevelCertified, user.LevelCertifiedLaw, user.LevelCertifiedHealth},
			rejectedL: []user.TranslatorLevel{user.LevelLayman, user.LevelReadCourses},
		},
		"law admits only the law tier": {
			certified: job.CertificationLaw,
			admitted:  []user.TranslatorLevel{user.LevelCertifiedLaw},
			rejectedL: []user.TranslatorLevel{user.LevelCertified, user.LevelLayman},
		},
		"health admits only the health tier": {
			certified: job.CertificationNHealth,
			admitted:  []user.TranslatorLevel{user.LevelCertifiedHealth},
			rejectedL: []user.TranslatorLevel{user.LevelCertified},
		},
		"normal admits the uncertified tiers": {
			certified: job.CertificationNormal,
			admitted:  []user.TranslatorLevel{user.LevelLayman, user.LevelReadCourses},
			rejectedL: []user.TranslatorLevel{user.LevelCertified, user.LevelCertifiedLaw},
		},
		"no requirement admits everyone": {
			certified: job.CertificationNone,
			admitted:  []user.TranslatorLevel{user.LevelCertified, user.LevelLayman},
		},
	}

	matcher := NewEligibilityMatcher()
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			j := makeJob(t, func(d *job.Details) { d.Certified = test.certified })
			lang := []kernel.UUID{j.LanguageID()}

			for _, level := range test.admitted {
				tr := makeTranslator(t, translatorOpts{level: level, languages: lang})
				assert.Len(t, matcher.Match(j, nil, []*user.User{tr}, nil, nil), 1,
					"level %q should qualify", level)
			}
			for _, level := range test.rejectedL {
				tr := makeTranslator(t, translatorOpts{level: level, languages: lang})
				assert.Empty(t, matcher.Match(j, nil, []*user.User{tr}, nil, nil),
					"level %q should not qualify", level)
			}
		})
	}
}

func Test_Match_Blacklist(t *testing.T) {
	matcher := NewEligibilityMatcher()
	j := makeJob(t, nil)
	lang := []kernel.UUID{j.LanguageID()}

	blocked := makeTranslator(t, translatorOpts{languages: lang})
	allowed := makeTranslator(t, translatorOpts{languages: lang})
	owner := makeCustomer(t, "")
	owner.SetBlacklist([]kernel.UUID{blocked.ID()})

	eligible := matcher.Match(j, owner, []*user.User{blocked, allowed}, nil, nil)

	require.Len(t, eligible, 1)
	assert.Equal(t, allowed.ID(), eligible[0].ID())
}

func Test_Match_PhysicalOnlyTown(t *testing.T) {
	matcher := NewEligibilityMatcher()
	j := makeJob(t, func(d *job.Details) {
		d.PhoneBooking = false
		d.PhysicalBooking = true
		d.Town = "Stockholm"
	})
	lang := []kernel.UUID{j.LanguageID()}

	local := makeTranslator(t, translatorOpts{city: "Stockholm", languages: lang})
	remote := makeTranslator(t, translatorOpts{city: "Malmö", languages: lang})
	owner := makeCustomer(t, "Stockholm")

	eligible := matcher.Match(j, owner, []*user.User{local, remote}, nil, nil)

	require.Len(t, eligible, 1)
	assert.Equal(t, local.ID(), eligible[0].ID())
}

func Test_Match_PhoneBookingIgnoresTown(t *testing.T) {
	matcher := NewEligibilityMatcher()
	j := makeJob(t, func(d *job.Details) {
		d.PhoneBooking = true
		d.PhysicalBooking = true
	})
	lang := []kernel.UUID{j.LanguageID()}

	remote := makeTranslator(t, translatorOpts{city: "Malmö", languages: lang})
	owner := makeCustomer(t, "Stockholm")

	assert.Len(t, matcher.Match(j, owner, []*user.User{remote}, nil, nil), 1)
}

func Test_Match_OverlappingAssignment(t *testing.T) {
	matcher := NewEligibilityMatcher()
	j := makeJob(t, nil)
	lang := []kernel.UUID{j.LanguageID()}

	busyTr := makeTranslator(t, translatorOpts{languages: lang})
	freeTr := makeTranslator(t, translatorOpts{languages: lang})

	start, end := j.TimeRange()
	busy := map[string][]TimeRange{
		busyTr.ID().String(): {{Start: start.Add(-30 * time.Minute), End: start.Add(10 * time.Minute)}},
		freeTr.ID().String(): {{Start: end, End: end.Add(time.Hour)}},
	}

	eligible := matcher.Match(j, nil, []*user.User{busyTr, freeTr}, busy, nil)

	require.Len(t, eligible, 1)
	assert.Equal(t, freeTr.ID(), eligible[0].ID())
}

func Test_Match_ExcludesDepartingTranslator(t *testing.T) {
	matcher := NewEligibilityMatcher()
	j := makeJob(t, nil)
	lang := []kernel.UUID{j.LanguageID()}

	departing := makeTranslator(t, translatorOpts{languages: lang})
	other := makeTranslator(t, translatorOpts{languages: lang})
	departingID := departing.ID()

	eligible := matcher.Match(j, nil, []*user.User{departing, other}, nil, &departingID)

	require.Len(t, eligible, 1)
	assert.Equal(t, other.ID(), eligible[0].ID())
}

func Test_Match_SkipsInactive(t *testing.T) {
	matcher := NewEligibilityMatcher()
	j := makeJob(t, nil)

	inactive := makeTranslator(t, translatorOpts{languages: []kernel.UUID{j.LanguageID()}, inactive: true})

	assert.Empty(t, matcher.Match(j, nil, []*user.User{inactive}, nil, nil))
}

func Test_TimeRange_Overlaps(t *testing.T) {
	base := TimeRange{Start: matcherNow, End: matcherNow.Add(time.Hour)}

	assert.True(t, base.Overlaps(TimeRange{Start: matcherNow.Add(30 * time.Minute), End: matcherNow.Add(2 * time.Hour)}))
	assert.False(t, base.Overlaps(TimeRange{Start: matcherNow.Add(time.Hour), End: matcherNow.Add(2 * time.Hour)}),
		"half-open intervals touching at the boundary do not overlap")
}
