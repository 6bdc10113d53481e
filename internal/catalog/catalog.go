package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fancards/fancards-go/internal/domain"
	"github.com/fancards/fancards-go/internal/utils"
)

// Sentinel errors for the catalog loader
var (
	ErrDuplicateName = errors.New("duplicate character name")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Character is a single printable character definition. Rarity is the
// bucket the character was loaded from, not a per-card roll.
type Character struct {
	Name   string `json:"name"`
	Series string `json:"series"`
	Troll  bool   `json:"troll,omitempty"`

	Rarity domain.Rarity `json:"-"`
}

// Config represents the JSON configuration for the character catalog.
// Characters are grouped into buckets keyed by rarity.
type Config struct {
	Version     string                        `json:"version"`
	Description string                        `json:"description"`
	Characters  map[domain.Rarity][]Character `json:"characters"`
}

// Catalog is an immutable registry of characters cards can depict.
// It is built once at startup and safe for concurrent reads.
type Catalog struct {
	all      []Character
	byRarity map[domain.Rarity][]Character
	byName   map[string]Character
}

// Load reads, parses and validates a character catalog JSON file.
func Load(path string) (*Catalog, error) {
	var config Config
	if err := utils.LoadJSON(path, &config); err != nil {
		return nil, fmt.Errorf("failed to load catalog config: %w", err)
	}

	return New(&config)
}

// New builds a catalog from an already-parsed config.
func New(config *Config) (*Catalog, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if len(config.Characters) == 0 {
		return nil, fmt.Errorf("%w: no characters defined", ErrInvalidConfig)
	}

	byName := make(map[string]Character)
	byRarity := make(map[domain.Rarity][]Character, len(config.Characters))
	var all []Character

	for rarity, bucket := range config.Characters {
		if !rarity.Valid() {
			return nil, fmt.Errorf("%w: unknown rarity bucket %q", ErrInvalidConfig, rarity)
		}
		if rarity.Exclusive() {
			return nil, fmt.Errorf("%w: exclusive rarity %q cannot hold a bucket", ErrInvalidConfig, rarity)
		}
		if len(bucket) == 0 {
			return nil, fmt.Errorf("%w: rarity bucket %q is empty", ErrInvalidConfig, rarity)
		}

		for i, c := range bucket {
			if c.Name == "" {
				return nil, fmt.Errorf("%w: character at index %d of bucket %q has empty name", ErrInvalidConfig, i, rarity)
			}
			key := normalizeName(c.Name)
			if _, exists := byName[key]; exists {
				return nil, fmt.Errorf("%w: '%s'", ErrDuplicateName, c.Name)
			}
			c.Rarity = rarity
			byName[key] = c
			byRarity[rarity] = append(byRarity[rarity], c)
			all = append(all, c)
		}
	}

	// Deterministic iteration order regardless of config ordering.
	sortCharacters(all)
	for _, bucket := range byRarity {
		sortCharacters(bucket)
	}

	return &Catalog{all: all, byRarity: byRarity, byName: byName}, nil
}

// Get looks up a character by name, case-insensitively.
func (c *Catalog) Get(name string) (Character, error) {
	character, ok := c.byName[normalizeName(name)]
	if !ok {
		return Character{}, fmt.Errorf("%w: %s", domain.ErrCharacterNotFound, name)
	}
	return character, nil
}

// Pick returns the character at the given roll position within the
// rarity's bucket. An unspecified or exclusive rarity, or one without a
// bucket, falls back to the full catalog. The sample must be in [0, 1);
// callers supply their own randomness source.
func (c *Catalog) Pick(rarity domain.Rarity, sample float64) Character {
	pool := c.all
	if rarity != "" && !rarity.Exclusive() {
		if bucket, ok := c.byRarity[rarity]; ok {
			pool = bucket
		}
	}

	idx := int(sample * float64(len(pool)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(pool) {
		idx = len(pool) - 1
	}
	return pool[idx]
}

// Bucket returns the characters assigned to a rarity, in name order.
func (c *Catalog) Bucket(rarity domain.Rarity) []Character {
	bucket := c.byRarity[rarity]
	out := make([]Character, len(bucket))
	copy(out, bucket)
	return out
}

// All returns every character in name order.
func (c *Catalog) All() []Character {
	out := make([]Character, len(c.all))
	copy(out, c.all)
	return out
}

// Len returns the number of characters in the catalog.
func (c *Catalog) Len() int {
	return len(c.all)
}

func sortCharacters(characters []Character) {
	sort.Slice(characters, func(i, j int) bool {
		return characters[i].Name < characters[j].Name
	})
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
