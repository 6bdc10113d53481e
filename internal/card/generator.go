package card

import (
	"fmt"
	"math/rand"

	"github.com/fancards/fancards-go/internal/catalog"
	"github.com/fancards/fancards-go/internal/domain"
)

// Generator rolls card templates from the static rarity and condition
// tables. The randomness source is injectable for deterministic tests.
type Generator struct {
	catalog *catalog.Catalog
	rnd     func() float64
}

// NewGenerator creates a Generator. A nil rnd falls back to math/rand.
func NewGenerator(cat *catalog.Catalog, rnd func() float64) *Generator {
	if rnd == nil {
		rnd = rand.Float64 //nolint:gosec // Game logic randomness, not security critical
	}
	return &Generator{catalog: cat, rnd: rnd}
}

// Overrides pins individual attributes instead of rolling them.
type Overrides struct {
	Rarity        *domain.Rarity
	Condition     *domain.Condition
	CharacterName *string
	Shiny         *bool
	ID            *string
}

// Generate rolls a single card template under the given weight profile.
// The rarity resolves first so the character can be drawn from its
// bucket.
func (g *Generator) Generate(profile domain.WeightProfile, elevated bool, ov Overrides) (domain.CardTemplate, error) {
	if !profile.Valid() {
		return domain.CardTemplate{}, fmt.Errorf("%w: unknown weight profile %q", domain.ErrInvalidInput, profile)
	}

	rarity := domain.Rarity("")
	if ov.Rarity != nil {
		if !ov.Rarity.Valid() {
			return domain.CardTemplate{}, fmt.Errorf("%w: %q", domain.ErrInvalidRarity, *ov.Rarity)
		}
		rarity = *ov.Rarity
	} else {
		rarity = g.RollRarity(profile)
	}

	var character catalog.Character
	if ov.CharacterName != nil {
		var err error
		character, err = g.catalog.Get(*ov.CharacterName)
		if err != nil {
			return domain.CardTemplate{}, err
		}
	} else {
		character = g.catalog.Pick(rarity, g.rnd())
	}

	condition := domain.Condition("")
	if ov.Condition != nil {
		if !ov.Condition.Valid() {
			return domain.CardTemplate{}, fmt.Errorf("%w: invalid condition %q", domain.ErrInvalidInput, *ov.Condition)
		}
		condition = *ov.Condition
	} else {
		condition = g.RollCondition(profile)
	}

	var shiny bool
	if ov.Shiny != nil {
		shiny = *ov.Shiny
	} else {
		shiny = g.RollShiny(profile, elevated)
	}

	id := g.NewID()
	if ov.ID != nil {
		id = *ov.ID
	}
	// Troll forcing wins over a caller-supplied ID.
	if character.Troll {
		id = domain.TrollCardID
	}

	return domain.CardTemplate{
		ID:            id,
		Rarity:        rarity,
		Condition:     condition,
		CharacterName: character.Name,
		Shiny:         shiny,
		Troll:         character.Troll,
	}, nil
}

// GenerateBatch rolls count independent card templates.
func (g *Generator) GenerateBatch(profile domain.WeightProfile, elevated bool, count int, ov Overrides) ([]domain.CardTemplate, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: batch count must be positive", domain.ErrInvalidInput)
	}

	templates := make([]domain.CardTemplate, 0, count)
	for i := 0; i < count; i++ {
		tmpl, err := g.Generate(profile, elevated, ov)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}

// RollRarity samples the rarity table under the given profile. Among
// entries whose threshold covers the sample, the rarest wins; when no
// threshold covers it, the entry with the greatest threshold is the
// fallback.
func (g *Generator) RollRarity(profile domain.WeightProfile) domain.Rarity {
	sample := g.rnd() * 100

	var chosen domain.Rarity
	chosenSet := false
	var fallback domain.Rarity
	fallbackThreshold := -1.0

	for _, r := range domain.NonExclusiveRarities() {
		threshold := r.Data().Weights.For(profile)
		if threshold == nil {
			continue
		}
		if *threshold > fallbackThreshold {
			fallback = r
			fallbackThreshold = *threshold
		}
		if *threshold >= sample {
			// Ascending rank iteration, so the last hit is the rarest.
			chosen = r
			chosenSet = true
		}
	}

	if chosenSet {
		return chosen
	}
	return fallback
}

// RollCondition samples the condition table under the given profile,
// using the same selection rule as RollRarity.
func (g *Generator) RollCondition(profile domain.WeightProfile) domain.Condition {
	sample := g.rnd() * 100

	var chosen domain.Condition
	chosenSet := false
	var fallback domain.Condition
	fallbackThreshold := -1.0

	for _, c := range domain.Conditions() {
		threshold := c.Data().Weights.For(profile)
		if threshold == nil {
			continue
		}
		if *threshold > fallbackThreshold {
			fallback = c
			fallbackThreshold = *threshold
		}
		if *threshold >= sample {
			chosen = c
			chosenSet = true
		}
	}

	if chosenSet {
		return chosen
	}
	return fallback
}

// RollShiny samples the shiny threshold for the profile. Elevated
// status doubles the threshold. The new-user threshold is negative, so
// new users can never roll shiny.
func (g *Generator) RollShiny(profile domain.WeightProfile, elevated bool) bool {
	var threshold float64
	switch profile {
	case domain.WeightProfileNewUser:
		threshold = domain.ShinyThresholdNewUser
	case domain.WeightProfilePremium:
		threshold = domain.ShinyThresholdPremium
	default:
		threshold = domain.ShinyThresholdNormal
	}

	if elevated {
		threshold *= domain.ShinyElevatedMultiplier
	}

	return g.rnd()*100 <= threshold
}

// NewID generates a card ID from the weighted alphabet. IDs are not
// checked for uniqueness.
func (g *Generator) NewID() string {
	b := make([]byte, domain.CardIDLength)
	for i := range b {
		idx := int(g.rnd() * float64(len(domain.CardIDAlphabet)))
		if idx >= len(domain.CardIDAlphabet) {
			idx = len(domain.CardIDAlphabet) - 1
		}
		b[i] = domain.CardIDAlphabet[idx]
	}
	return string(b)
}
