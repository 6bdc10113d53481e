package drop

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fancards/fancards-go/internal/domain"
)

func testTemplates(n int) []domain.CardTemplate {
	templates := make([]domain.CardTemplate, n)
	for i := range templates {
		templates[i] = domain.CardTemplate{
			ID:            "card0" + string(rune('a'+i)),
			Rarity:        domain.RarityCommon,
			Condition:     domain.ConditionGood,
			CharacterName: "Hero",
		}
	}
	return templates
}

func TestSessionMarkSlot(t *testing.T) {
	start := time.Now()

	t.Run("claims an open slot", func(t *testing.T) {
		session := NewSession("drop-1", "owner", domain.WeightProfileNormal, testTemplates(3), start)

		tmpl, err := session.MarkSlot(1, "claimant", start)
		require.NoError(t, err)
		assert.Equal(t, "card0b", tmpl.ID)
	})

	t.Run("rejects an already claimed slot", func(t *testing.T) {
		session := NewSession("drop-1", "owner", domain.WeightProfileNormal, testTemplates(3), start)

		_, err := session.MarkSlot(0, "first", start)
		require.NoError(t, err)

		_, err = session.MarkSlot(0, "second", start)
		assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)
	})

	t.Run("rejects after expiry", func(t *testing.T) {
		session := NewSession("drop-1", "owner", domain.WeightProfileNormal, testTemplates(3), start)

		_, err := session.MarkSlot(0, "claimant", start.Add(domain.DropExpiryDuration))
		assert.ErrorIs(t, err, domain.ErrDropExpired)
	})

	t.Run("rejects out of range index", func(t *testing.T) {
		session := NewSession("drop-1", "owner", domain.WeightProfileNormal, testTemplates(3), start)

		_, err := session.MarkSlot(3, "claimant", start)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = session.MarkSlot(-1, "claimant", start)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("claimed slot survives expiry", func(t *testing.T) {
		session := NewSession("drop-1", "owner", domain.WeightProfileNormal, testTemplates(3), start)

		_, err := session.MarkSlot(0, "claimant", start)
		require.NoError(t, err)

		view := session.View(start.Add(domain.DropExpiryDuration))
		assert.Equal(t, SessionExpired, view.State)
		assert.Equal(t, SlotClaimed, view.Slots[0].State)
		assert.Equal(t, "claimant", view.Slots[0].ClaimedBy)
	})
}

// Many goroutines racing the same slot must produce exactly one winner.
func TestSessionMarkSlot_Concurrent(t *testing.T) {
	start := time.Now()
	session := NewSession("drop-1", "owner", domain.WeightProfileNormal, testTemplates(3), start)

	const attempts = 50
	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(n int) {
			defer wg.Done()
			_, err := session.MarkSlot(1, "claimant", start)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	successes, rejections := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			successes++
		default:
			assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)
			rejections++
		}
	}
	assert.Equal(t, 1, successes, "exactly one claim must win")
	assert.Equal(t, attempts-1, rejections)
}

func TestSessionView(t *testing.T) {
	start := time.Now()
	templates := testTemplates(3)
	templates[2].Shiny = true
	session := NewSession("drop-1", "owner", domain.WeightProfileNormal, templates, start)

	t.Run("unclaimed slots hide condition and ID", func(t *testing.T) {
		view := session.View(start)

		assert.Equal(t, SessionOpen, view.State)
		require.Len(t, view.Slots, 3)
		for _, slot := range view.Slots {
			assert.Equal(t, domain.RarityCommon, slot.Rarity)
			assert.Equal(t, "Hero", slot.CharacterName)
			assert.Empty(t, slot.CardID)
			assert.Empty(t, slot.Condition)
			assert.Nil(t, slot.Shiny)
		}
	})

	t.Run("claimed slot reveals everything", func(t *testing.T) {
		_, err := session.MarkSlot(2, "claimant", start)
		require.NoError(t, err)

		view := session.View(start)
		slot := view.Slots[2]
		assert.Equal(t, SlotClaimed, slot.State)
		assert.Equal(t, "card0c", slot.CardID)
		assert.Equal(t, domain.ConditionGood, slot.Condition)
		require.NotNil(t, slot.Shiny)
		assert.True(t, *slot.Shiny)
	})
}

func TestSessionCounters(t *testing.T) {
	start := time.Now()
	session := NewSession("drop-1", "owner", domain.WeightProfileNormal, testTemplates(2), start)

	assert.Equal(t, 2, session.UnclaimedCount())
	assert.False(t, session.FullyClaimed())

	_, err := session.MarkSlot(0, "a", start)
	require.NoError(t, err)
	_, err = session.MarkSlot(1, "b", start)
	require.NoError(t, err)

	assert.Equal(t, 0, session.UnclaimedCount())
	assert.True(t, session.FullyClaimed())
}

func TestRegistrySweep(t *testing.T) {
	start := time.Now()
	registry := NewRegistry()

	fresh := NewSession("fresh", "owner", domain.WeightProfileNormal, testTemplates(3), start)
	stale := NewSession("stale", "owner", domain.WeightProfileNormal, testTemplates(3), start.Add(-time.Hour))
	registry.Put(fresh)
	registry.Put(stale)
	require.Equal(t, 2, registry.Len())

	removed := registry.Sweep(start)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, registry.Len())

	_, ok := registry.Get("stale")
	assert.False(t, ok)
	_, ok = registry.Get("fresh")
	assert.True(t, ok)
}

func TestRegistrySweep_GracePeriod(t *testing.T) {
	start := time.Now()
	registry := NewRegistry()

	// Expired but still inside the grace period
	session := NewSession("drop-1", "owner", domain.WeightProfileNormal, testTemplates(3), start)
	registry.Put(session)

	removed := registry.Sweep(start.Add(domain.DropExpiryDuration + SweepGracePeriod/2))
	assert.Equal(t, 0, removed)

	removed = registry.Sweep(start.Add(domain.DropExpiryDuration + SweepGracePeriod + time.Second))
	assert.Equal(t, 1, removed)
}
