package card

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fancards/fancards-go/internal/catalog"
	"github.com/fancards/fancards-go/internal/domain"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(&catalog.Config{
		Version: "1.1",
		Characters: map[domain.Rarity][]catalog.Character{
			domain.RarityCommon: {
				{Name: "Zara", Series: "Starfall"},
				{Name: "Troll", Series: "Classic", Troll: true},
			},
			domain.RarityUncommon: {
				{Name: "Finn", Series: "Starfall"},
			},
			domain.RarityRare: {
				{Name: "Wren", Series: "Hearthwood"},
			},
		},
	})
	require.NoError(t, err)
	return cat
}

// seqRnd returns a rnd func that replays the given samples in order,
// cycling when exhausted.
func seqRnd(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

func TestRollRarityPicksRarestCoveringThreshold(t *testing.T) {
	cat := testCatalog(t)

	// New-user thresholds: common 65, uncommon 20, rare 10, epic 5.
	tests := []struct {
		sample   float64
		expected domain.Rarity
	}{
		{0.04, domain.RarityEpic},     // 4: epic(5) is the rarest covering it
		{0.10, domain.RarityRare},     // 10: rare(10) covers exactly
		{0.15, domain.RarityUncommon}, // 15: uncommon(20) covers it
		{0.30, domain.RarityCommon},   // 30: only common(65) covers it
	}

	for _, tt := range tests {
		g := NewGenerator(cat, seqRnd(tt.sample))
		assert.Equal(t, tt.expected, g.RollRarity(domain.WeightProfileNewUser), "sample %v", tt.sample*100)
	}
}

func TestRollRarityFallsBackToGreatestThreshold(t *testing.T) {
	cat := testCatalog(t)

	// 90 is above every new-user threshold; common holds the greatest one.
	g := NewGenerator(cat, seqRnd(0.90))
	assert.Equal(t, domain.RarityCommon, g.RollRarity(domain.WeightProfileNewUser))

	// The premium table has no common entry, so uncommon is its fallback.
	g = NewGenerator(cat, seqRnd(0.90))
	assert.Equal(t, domain.RarityUncommon, g.RollRarity(domain.WeightProfilePremium))
}

func TestRollRarityNeverProducesExclusiveOrUnweighted(t *testing.T) {
	cat := testCatalog(t)
	g := NewGenerator(cat, nil)

	for i := 0; i < 2000; i++ {
		r := g.RollRarity(domain.WeightProfileNormal)
		assert.False(t, r.Exclusive(), "rolled exclusive rarity %s", r)
		assert.NotEqual(t, domain.RarityExotic, r)
		assert.NotEqual(t, domain.RarityNightmare, r)
	}
}

func TestRollCondition(t *testing.T) {
	cat := testCatalog(t)

	// Normal thresholds: damaged 10, poor 20, good 45, near mint 19,
	// mint 5, pristine 1.
	g := NewGenerator(cat, seqRnd(0.005))
	assert.Equal(t, domain.ConditionPristine, g.RollCondition(domain.WeightProfileNormal),
		"a tiny sample is covered by every threshold, so the best condition wins")

	g = NewGenerator(cat, seqRnd(0.30))
	assert.Equal(t, domain.ConditionGood, g.RollCondition(domain.WeightProfileNormal))

	// Above every threshold: good holds the greatest threshold.
	g = NewGenerator(cat, seqRnd(0.90))
	assert.Equal(t, domain.ConditionGood, g.RollCondition(domain.WeightProfileNormal))
}

func TestRollShiny(t *testing.T) {
	cat := testCatalog(t)

	t.Run("new users never roll shiny", func(t *testing.T) {
		g := NewGenerator(cat, seqRnd(0))
		assert.False(t, g.RollShiny(domain.WeightProfileNewUser, false))
		assert.False(t, g.RollShiny(domain.WeightProfileNewUser, true))
	})

	t.Run("normal threshold", func(t *testing.T) {
		g := NewGenerator(cat, seqRnd(0.0004, 0.001))
		assert.True(t, g.RollShiny(domain.WeightProfileNormal, false), "0.04 <= 0.05")
		assert.False(t, g.RollShiny(domain.WeightProfileNormal, false), "0.1 > 0.05")
	})

	t.Run("elevated doubles the threshold", func(t *testing.T) {
		g := NewGenerator(cat, seqRnd(0.001))
		assert.True(t, g.RollShiny(domain.WeightProfileNormal, true), "0.1 <= 0.05*2")
	})

	t.Run("premium threshold", func(t *testing.T) {
		g := NewGenerator(cat, seqRnd(0.0015, 0.0025))
		assert.True(t, g.RollShiny(domain.WeightProfilePremium, false), "0.15 <= 0.2")
		assert.False(t, g.RollShiny(domain.WeightProfilePremium, false), "0.25 > 0.2")
	})
}

func TestNewID(t *testing.T) {
	cat := testCatalog(t)
	g := NewGenerator(cat, nil)

	for i := 0; i < 100; i++ {
		id := g.NewID()
		assert.Len(t, id, domain.CardIDLength)
		for _, ch := range id {
			assert.True(t, strings.ContainsRune(domain.CardIDAlphabet, ch),
				"unexpected character %q in id %s", ch, id)
		}
	}
}

func TestGenerate(t *testing.T) {
	cat := testCatalog(t)

	t.Run("rolled card has all attributes", func(t *testing.T) {
		g := NewGenerator(cat, nil)
		tmpl, err := g.Generate(domain.WeightProfileNormal, false, Overrides{})
		require.NoError(t, err)

		assert.Len(t, tmpl.ID, domain.CardIDLength)
		assert.True(t, tmpl.Rarity.Valid())
		assert.True(t, tmpl.Condition.Valid())
		assert.NotEmpty(t, tmpl.CharacterName)
	})

	t.Run("character comes from the rolled rarity's bucket", func(t *testing.T) {
		// New-user sample 10 resolves rare; the rare bucket holds only Wren.
		g := NewGenerator(cat, seqRnd(0.10, 0.5))
		tmpl, err := g.Generate(domain.WeightProfileNewUser, false, Overrides{})
		require.NoError(t, err)

		assert.Equal(t, domain.RarityRare, tmpl.Rarity)
		assert.Equal(t, "Wren", tmpl.CharacterName)
	})

	t.Run("rarity override steers the character bucket", func(t *testing.T) {
		g := NewGenerator(cat, nil)
		rarity := domain.RarityUncommon

		for i := 0; i < 50; i++ {
			tmpl, err := g.Generate(domain.WeightProfileNormal, false, Overrides{Rarity: &rarity})
			require.NoError(t, err)
			assert.Equal(t, "Finn", tmpl.CharacterName)
		}
	})

	t.Run("unbucketed rarity falls back to the full catalog", func(t *testing.T) {
		g := NewGenerator(cat, nil)
		rarity := domain.RarityLegendary

		tmpl, err := g.Generate(domain.WeightProfileNormal, false, Overrides{Rarity: &rarity})
		require.NoError(t, err)
		assert.Contains(t, []string{"Finn", "Troll", "Wren", "Zara"}, tmpl.CharacterName)
	})

	t.Run("rejects unknown profile", func(t *testing.T) {
		g := NewGenerator(cat, nil)
		_, err := g.Generate(domain.WeightProfile("vip"), false, Overrides{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("overrides pin attributes", func(t *testing.T) {
		g := NewGenerator(cat, nil)
		rarity := domain.RarityLegendary
		condition := domain.ConditionPristine
		name := "Zara"
		shiny := true

		tmpl, err := g.Generate(domain.WeightProfileNormal, false, Overrides{
			Rarity:        &rarity,
			Condition:     &condition,
			CharacterName: &name,
			Shiny:         &shiny,
		})
		require.NoError(t, err)

		assert.Equal(t, domain.RarityLegendary, tmpl.Rarity)
		assert.Equal(t, domain.ConditionPristine, tmpl.Condition)
		assert.Equal(t, "Zara", tmpl.CharacterName)
		assert.True(t, tmpl.Shiny)
	})

	t.Run("rejects invalid rarity override", func(t *testing.T) {
		g := NewGenerator(cat, nil)
		bad := domain.Rarity("holo")
		_, err := g.Generate(domain.WeightProfileNormal, false, Overrides{Rarity: &bad})
		assert.ErrorIs(t, err, domain.ErrInvalidRarity)
	})

	t.Run("rejects unknown character override", func(t *testing.T) {
		g := NewGenerator(cat, nil)
		name := "nobody"
		_, err := g.Generate(domain.WeightProfileNormal, false, Overrides{CharacterName: &name})
		assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
	})

	t.Run("id override pins the identifier", func(t *testing.T) {
		g := NewGenerator(cat, nil)
		id := "zzz999"
		name := "Zara"

		tmpl, err := g.Generate(domain.WeightProfileNormal, false, Overrides{ID: &id, CharacterName: &name})
		require.NoError(t, err)
		assert.Equal(t, "zzz999", tmpl.ID)
	})

	t.Run("troll character forces the fixed id", func(t *testing.T) {
		g := NewGenerator(cat, nil)
		name := "Troll"
		tmpl, err := g.Generate(domain.WeightProfileNormal, false, Overrides{CharacterName: &name})
		require.NoError(t, err)

		assert.Equal(t, domain.TrollCardID, tmpl.ID)
		assert.True(t, tmpl.Troll)
	})

	t.Run("troll id wins over a caller-supplied id", func(t *testing.T) {
		g := NewGenerator(cat, nil)
		name := "Troll"
		id := "zzz999"

		tmpl, err := g.Generate(domain.WeightProfileNormal, false, Overrides{CharacterName: &name, ID: &id})
		require.NoError(t, err)
		assert.Equal(t, domain.TrollCardID, tmpl.ID)
	})
}

func TestGenerateBatch(t *testing.T) {
	cat := testCatalog(t)
	g := NewGenerator(cat, nil)

	templates, err := g.GenerateBatch(domain.WeightProfileNormal, false, domain.DropSize, Overrides{})
	require.NoError(t, err)
	assert.Len(t, templates, domain.DropSize)

	_, err = g.GenerateBatch(domain.WeightProfileNormal, false, 0, Overrides{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
