package domain

import "time"

// WeightProfile selects which roll thresholds apply when generating cards.
type WeightProfile string

const (
	WeightProfileNewUser WeightProfile = "new_user"
	WeightProfileNormal  WeightProfile = "normal"
	WeightProfilePremium WeightProfile = "premium"
)

// Valid reports whether the profile is one of the known profiles.
func (p WeightProfile) Valid() bool {
	switch p {
	case WeightProfileNewUser, WeightProfileNormal, WeightProfilePremium:
		return true
	}
	return false
}

// Weights holds per-profile roll thresholds in percent.
// A nil threshold means the outcome is never selectable under that profile.
type Weights struct {
	NewUser *float64
	Normal  *float64
	Premium *float64
}

// For returns the threshold for the given profile, or nil if undefined.
func (w *Weights) For(profile WeightProfile) *float64 {
	if w == nil {
		return nil
	}
	switch profile {
	case WeightProfileNewUser:
		return w.NewUser
	case WeightProfilePremium:
		return w.Premium
	default:
		return w.Normal
	}
}

// Rarity is the ranked scarcity category of a card.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityMythic    Rarity = "mythic"
	RarityLegendary Rarity = "legendary"
	RarityExotic    Rarity = "exotic"
	RarityNightmare Rarity = "nightmare"
	RarityIcicle    Rarity = "icicle"
)

// RarityData is the static per-rarity lookup table entry.
type RarityData struct {
	Rank      int
	Exclusive bool
	// SilverRange is the inclusive burn reward range. Nil means the rarity
	// is too valuable to burn for silver.
	SilverRange *SilverRange
	StarValue   *int
	Weights     *Weights
}

// SilverRange is an inclusive silver reward interval.
type SilverRange struct {
	Min int
	Max int
}

var rarityTable = map[Rarity]RarityData{
	RarityCommon: {
		Rank:        1,
		SilverRange: &SilverRange{Min: 10, Max: 40},
		StarValue:   intPtr(3),
		Weights:     &Weights{NewUser: floatPtr(65), Normal: floatPtr(46.5)},
	},
	RarityUncommon: {
		Rank:        2,
		SilverRange: &SilverRange{Min: 50, Max: 75},
		StarValue:   intPtr(12),
		Weights:     &Weights{NewUser: floatPtr(20), Normal: floatPtr(30), Premium: floatPtr(50)},
	},
	RarityRare: {
		Rank:        3,
		SilverRange: &SilverRange{Min: 100, Max: 350},
		StarValue:   intPtr(33),
		Weights:     &Weights{NewUser: floatPtr(10), Normal: floatPtr(16.1), Premium: floatPtr(30)},
	},
	RarityEpic: {
		Rank:        4,
		SilverRange: &SilverRange{Min: 500, Max: 750},
		StarValue:   intPtr(72),
		Weights:     &Weights{NewUser: floatPtr(5), Normal: floatPtr(6), Premium: floatPtr(16.5)},
	},
	RarityMythic: {
		Rank:        5,
		SilverRange: &SilverRange{Min: 1000, Max: 4750},
		StarValue:   intPtr(138),
		Weights:     &Weights{Normal: floatPtr(1.25), Premium: floatPtr(2.75)},
	},
	RarityLegendary: {
		Rank:        6,
		SilverRange: &SilverRange{Min: 5000, Max: 9750},
		StarValue:   intPtr(228),
		Weights:     &Weights{Normal: floatPtr(0.15), Premium: floatPtr(0.75)},
	},
	RarityExotic: {
		Rank:      7,
		StarValue: intPtr(486),
	},
	RarityNightmare: {
		Rank:      8,
		StarValue: intPtr(972),
	},
	RarityIcicle: {
		Rank:      101,
		Exclusive: true,
	},
}

// rarityOrder lists all rarities in ascending rank order.
var rarityOrder = []Rarity{
	RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityMythic,
	RarityLegendary, RarityExotic, RarityNightmare, RarityIcicle,
}

// Data returns the static lookup entry for the rarity.
func (r Rarity) Data() RarityData {
	return rarityTable[r]
}

// Rank returns the scarcity rank used for total ordering.
func (r Rarity) Rank() int {
	return rarityTable[r].Rank
}

// Exclusive reports whether the rarity is never produced by normal rolls.
func (r Rarity) Exclusive() bool {
	return rarityTable[r].Exclusive
}

// TooValuableToBurn reports whether the rarity has no burn reward defined.
func (r Rarity) TooValuableToBurn() bool {
	data := rarityTable[r]
	return data.SilverRange == nil || data.StarValue == nil
}

// Less orders rarities by scarcity rank.
func (r Rarity) Less(other Rarity) bool {
	return r.Rank() < other.Rank()
}

// Valid reports whether the rarity is part of the sealed set.
func (r Rarity) Valid() bool {
	_, ok := rarityTable[r]
	return ok
}

// Rarities returns all rarities in ascending rank order.
func Rarities() []Rarity {
	out := make([]Rarity, len(rarityOrder))
	copy(out, rarityOrder)
	return out
}

// NonExclusiveRarities returns the rarities eligible for drop rolls,
// in ascending rank order.
func NonExclusiveRarities() []Rarity {
	out := make([]Rarity, 0, len(rarityOrder))
	for _, r := range rarityOrder {
		if !r.Exclusive() {
			out = append(out, r)
		}
	}
	return out
}

// Condition is the ranked physical quality category of a card,
// independent of rarity.
type Condition string

const (
	ConditionDamaged  Condition = "damaged"
	ConditionPoor     Condition = "poor"
	ConditionGood     Condition = "good"
	ConditionNearMint Condition = "near mint"
	ConditionMint     Condition = "mint"
	ConditionPristine Condition = "pristine"
)

// ConditionData is the static per-condition lookup table entry.
type ConditionData struct {
	Rank      int
	StarValue int
	Weights   *Weights
}

var conditionTable = map[Condition]ConditionData{
	ConditionDamaged: {
		Rank:      1,
		StarValue: 3,
		Weights:   &Weights{NewUser: floatPtr(16), Normal: floatPtr(10), Premium: floatPtr(10)},
	},
	ConditionPoor: {
		Rank:      2,
		StarValue: 12,
		Weights:   &Weights{NewUser: floatPtr(45), Normal: floatPtr(20), Premium: floatPtr(20)},
	},
	ConditionGood: {
		Rank:      3,
		StarValue: 33,
		Weights:   &Weights{NewUser: floatPtr(25), Normal: floatPtr(45), Premium: floatPtr(45)},
	},
	ConditionNearMint: {
		Rank:      4,
		StarValue: 72,
		Weights:   &Weights{NewUser: floatPtr(10), Normal: floatPtr(19), Premium: floatPtr(18.5)},
	},
	ConditionMint: {
		Rank:      5,
		StarValue: 138,
		Weights:   &Weights{NewUser: floatPtr(3), Normal: floatPtr(5), Premium: floatPtr(5)},
	},
	ConditionPristine: {
		Rank:      6,
		StarValue: 228,
		Weights:   &Weights{NewUser: floatPtr(1), Normal: floatPtr(1), Premium: floatPtr(1.5)},
	},
}

var conditionOrder = []Condition{
	ConditionDamaged, ConditionPoor, ConditionGood,
	ConditionNearMint, ConditionMint, ConditionPristine,
}

// Data returns the static lookup entry for the condition.
func (c Condition) Data() ConditionData {
	return conditionTable[c]
}

// Rank returns the quality rank used for total ordering.
func (c Condition) Rank() int {
	return conditionTable[c].Rank
}

// StarValue returns the fixed star reward of the condition.
func (c Condition) StarValue() int {
	return conditionTable[c].StarValue
}

// Less orders conditions by quality rank.
func (c Condition) Less(other Condition) bool {
	return c.Rank() < other.Rank()
}

// Valid reports whether the condition is part of the sealed set.
func (c Condition) Valid() bool {
	_, ok := conditionTable[c]
	return ok
}

// Conditions returns all conditions in ascending rank order.
func Conditions() []Condition {
	out := make([]Condition, len(conditionOrder))
	copy(out, conditionOrder)
	return out
}

// Card is a persisted, owned card. Generated-but-unclaimed cards never
// reach this type; they exist only as drop slot templates.
type Card struct {
	ID            string    `json:"id"`
	PlayerID      string    `json:"player_id"`
	Rarity        Rarity    `json:"rarity"`
	Condition     Condition `json:"condition"`
	CharacterName string    `json:"character_name"`
	Shiny         bool      `json:"shiny"`
	Locked        bool      `json:"locked"`
	InSleeve      bool      `json:"in_sleeve"`
	CreatedAt     time.Time `json:"created_at"`
}

// CardTemplate is a generated card that has not been claimed yet. It
// carries no owner and is never persisted; claiming materializes it
// into a Card.
type CardTemplate struct {
	ID            string    `json:"id"`
	Rarity        Rarity    `json:"rarity"`
	Condition     Condition `json:"condition"`
	CharacterName string    `json:"character_name"`
	Shiny         bool      `json:"shiny"`
	Troll         bool      `json:"-"`
}

// Materialize turns the template into an owned card.
func (t CardTemplate) Materialize(playerID string, shiny bool, now time.Time) Card {
	return Card{
		ID:            t.ID,
		PlayerID:      playerID,
		Rarity:        t.Rarity,
		Condition:     t.Condition,
		CharacterName: t.CharacterName,
		Shiny:         shiny,
		CreatedAt:     now,
	}
}

// Value scores a card for collection ordering. Higher is more valuable.
func (c Card) Value() int {
	const (
		baseRarityValue       = 10000
		multiplierRarityValue = 5000
		baseConditionValue    = 500
		shinyValue            = 26000
	)
	value := baseRarityValue + multiplierRarityValue*(c.Rarity.Rank()-1)
	value += baseConditionValue * c.Condition.Rank()
	if c.Shiny {
		value += shinyValue
	}
	return value
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
