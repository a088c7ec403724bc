package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lctp-br/lctp-api/internal/domain"
)

func TestDefaultRuleBookCoversEveryType(t *testing.T) {
	book := DefaultRuleBook()

	for _, categoryType := range domain.CategoryTypes() {
		_, err := book.RulesFor(categoryType)
		assert.NoError(t, err, "missing rules for %s", categoryType)
	}
	assert.Equal(t, domain.CategoryTypes(), book.Types())
}

func TestRulesForUnknownType(t *testing.T) {
	book := DefaultRuleBook()

	_, err := book.RulesFor("veterana")
	assert.ErrorIs(t, err, ErrUnknownCategoryType)
}

func TestNewRuleBookRejectsUnknownType(t *testing.T) {
	_, err := NewRuleBook(RuleSet{Type: "veterana"})
	assert.ErrorIs(t, err, ErrUnknownCategoryType)
}

func TestDefaultRuleBookConstraints(t *testing.T) {
	book := DefaultRuleBook()

	soma11, err := book.RulesFor(domain.CategorySoma11)
	require.NoError(t, err)
	assert.Equal(t, 11, soma11.MaxCombinedHandicap)
	assert.False(t, soma11.HasAgeBound())

	mirim, err := book.RulesFor(domain.CategoryMirim)
	require.NoError(t, err)
	assert.Equal(t, 36, mirim.MaxCombinedAge)

	baby, err := book.RulesFor(domain.CategoryBaby)
	require.NoError(t, err)
	assert.Equal(t, 12, baby.MaxAge)
	assert.Equal(t, DrawFull, baby.Draw)

	aberta, err := book.RulesFor(domain.CategoryAberta)
	require.NoError(t, err)
	assert.False(t, aberta.HasAgeBound())
	assert.False(t, aberta.HasCombinedAge())
	assert.False(t, aberta.HasCombinedHandicap())
	assert.False(t, aberta.WomenOnly)
}
