package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lctp-br/lctp-api/internal/domain"
)

var eventDate = time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

func competitor(id uint, age, handicap int, sex string) domain.Competitor {
	return domain.Competitor{
		ID:        id,
		Name:      "competitor",
		BirthDate: eventDate.AddDate(-age, 0, -1),
		Handicap:  handicap,
		Sex:       sex,
		Active:    true,
	}
}

func TestValidateSoma11(t *testing.T) {
	v := NewValidator(DefaultRuleBook())

	tests := []struct {
		name      string
		handicaps [3]int
		eligible  bool
	}{
		{name: "sum exactly 11 accepted", handicaps: [3]int{4, 4, 3}, eligible: true},
		{name: "sum 12 rejected", handicaps: [3]int{4, 4, 4}, eligible: false},
		{name: "sum below limit accepted", handicaps: [3]int{0, 1, 2}, eligible: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := competitor(1, 25, tt.handicaps[0], domain.SexMale)
			b := competitor(2, 30, tt.handicaps[1], domain.SexMale)
			c := competitor(3, 35, tt.handicaps[2], domain.SexFemale)

			verdict, err := v.Validate(domain.CategorySoma11, eventDate, a, b, c)
			require.NoError(t, err)
			assert.Equal(t, tt.eligible, verdict.Eligible)
			if !tt.eligible {
				assert.Contains(t, verdict.Reason, "combined handicap")
			}
		})
	}
}

func TestValidateFemininaRejectsMen(t *testing.T) {
	v := NewValidator(DefaultRuleBook())

	a := competitor(1, 25, 3, domain.SexFemale)
	b := competitor(2, 30, 4, domain.SexFemale)
	c := competitor(3, 35, 2, domain.SexMale)

	verdict, err := v.Validate(domain.CategoryFeminina, eventDate, a, b, c)
	require.NoError(t, err)
	assert.False(t, verdict.Eligible)
	assert.Contains(t, verdict.Reason, "women only")

	c.Sex = domain.SexFemale
	verdict, err = v.Validate(domain.CategoryFeminina, eventDate, a, b, c)
	require.NoError(t, err)
	assert.True(t, verdict.Eligible)
}

func TestValidateMirimCombinedAge(t *testing.T) {
	v := NewValidator(DefaultRuleBook())

	a := competitor(1, 10, 0, domain.SexMale)
	b := competitor(2, 12, 0, domain.SexMale)
	c := competitor(3, 14, 0, domain.SexFemale)

	verdict, err := v.Validate(domain.CategoryMirim, eventDate, a, b, c)
	require.NoError(t, err)
	assert.True(t, verdict.Eligible, "combined age 36 is within the limit")

	c = competitor(3, 15, 0, domain.SexFemale)
	verdict, err = v.Validate(domain.CategoryMirim, eventDate, a, b, c)
	require.NoError(t, err)
	assert.False(t, verdict.Eligible)
	assert.Contains(t, verdict.Reason, "combined age")
}

func TestValidateBabyAndKidsAgeBounds(t *testing.T) {
	v := NewValidator(DefaultRuleBook())

	tests := []struct {
		name     string
		category domain.CategoryType
		ages     [3]int
		eligible bool
	}{
		{name: "baby all twelve or under", category: domain.CategoryBaby, ages: [3]int{8, 10, 12}, eligible: true},
		{name: "baby rejects a thirteen year old", category: domain.CategoryBaby, ages: [3]int{8, 10, 13}, eligible: false},
		{name: "kids within 13 to 17", category: domain.CategoryKids, ages: [3]int{13, 15, 17}, eligible: true},
		{name: "kids rejects a twelve year old", category: domain.CategoryKids, ages: [3]int{12, 15, 17}, eligible: false},
		{name: "kids rejects an eighteen year old", category: domain.CategoryKids, ages: [3]int{13, 15, 18}, eligible: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := competitor(1, tt.ages[0], 1, domain.SexMale)
			b := competitor(2, tt.ages[1], 1, domain.SexFemale)
			c := competitor(3, tt.ages[2], 1, domain.SexMale)

			verdict, err := v.Validate(tt.category, eventDate, a, b, c)
			require.NoError(t, err)
			assert.Equal(t, tt.eligible, verdict.Eligible)
		})
	}
}

func TestValidateRejectsDuplicateMembers(t *testing.T) {
	v := NewValidator(DefaultRuleBook())

	a := competitor(1, 25, 3, domain.SexMale)
	b := competitor(2, 30, 4, domain.SexMale)

	verdict, err := v.Validate(domain.CategoryAberta, eventDate, a, b, a)
	require.NoError(t, err)
	assert.False(t, verdict.Eligible)
	assert.Contains(t, verdict.Reason, "distinct")
}

func TestValidateOrderIndependent(t *testing.T) {
	v := NewValidator(DefaultRuleBook())

	a := competitor(1, 25, 5, domain.SexMale)
	b := competitor(2, 30, 4, domain.SexFemale)
	c := competitor(3, 35, 2, domain.SexMale)

	perms := [][3]domain.Competitor{
		{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	}
	for _, p := range perms {
		verdict, err := v.Validate(domain.CategorySoma11, eventDate, p[0], p[1], p[2])
		require.NoError(t, err)
		assert.True(t, verdict.Eligible)
	}

	c.Handicap = 4
	for _, p := range [][3]domain.Competitor{
		{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	} {
		verdict, err := v.Validate(domain.CategorySoma11, eventDate, p[0], p[1], p[2])
		require.NoError(t, err)
		assert.False(t, verdict.Eligible)
	}
}

func TestValidateUnknownCategoryType(t *testing.T) {
	v := NewValidator(DefaultRuleBook())

	a := competitor(1, 25, 3, domain.SexMale)
	b := competitor(2, 30, 4, domain.SexMale)
	c := competitor(3, 35, 2, domain.SexMale)

	_, err := v.Validate("veterana", eventDate, a, b, c)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCategoryType)
}
