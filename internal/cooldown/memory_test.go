package cooldown_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fancards/fancards-go/internal/cooldown"
	"github.com/fancards/fancards-go/internal/domain"
)

// fakeClock is a manually-advanced time source for deterministic tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryService_EnforceCooldown(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	svc := cooldown.NewMemoryService(cooldown.Config{}, clock.Now)

	t.Run("first use is allowed", func(t *testing.T) {
		err := svc.EnforceCooldown(ctx, "player1", domain.ActionClaim, func() error { return nil })
		require.NoError(t, err)
	})

	t.Run("second use within window is rejected", func(t *testing.T) {
		err := svc.EnforceCooldown(ctx, "player1", domain.ActionClaim, func() error { return nil })
		require.Error(t, err)

		var cdErr cooldown.ErrOnCooldown
		require.ErrorAs(t, err, &cdErr)
		assert.Equal(t, domain.ActionClaim, cdErr.Action)
		assert.Equal(t, domain.ClaimCooldownDuration, cdErr.Remaining)
	})

	t.Run("other players are unaffected", func(t *testing.T) {
		err := svc.EnforceCooldown(ctx, "player2", domain.ActionClaim, func() error { return nil })
		assert.NoError(t, err)
	})

	t.Run("allowed again after the window passes", func(t *testing.T) {
		clock.Advance(domain.ClaimCooldownDuration)
		err := svc.EnforceCooldown(ctx, "player1", domain.ActionClaim, func() error { return nil })
		assert.NoError(t, err)
	})
}

func TestMemoryService_FailedActionDoesNotConsumeWindow(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	svc := cooldown.NewMemoryService(cooldown.Config{}, clock.Now)

	wantErr := errors.New("boom")
	err := svc.EnforceCooldown(ctx, "player1", domain.ActionClaim, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)

	// The failed attempt must not have started a cooldown.
	err = svc.EnforceCooldown(ctx, "player1", domain.ActionClaim, func() error { return nil })
	assert.NoError(t, err)
}

func TestMemoryService_ResetCooldown(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	svc := cooldown.NewMemoryService(cooldown.Config{}, clock.Now)

	require.NoError(t, svc.EnforceCooldown(ctx, "player1", domain.ActionClaim, func() error { return nil }))

	onCooldown, _, err := svc.CheckCooldown(ctx, "player1", domain.ActionClaim)
	require.NoError(t, err)
	require.True(t, onCooldown)

	require.NoError(t, svc.ResetCooldown(ctx, "player1", domain.ActionClaim))

	onCooldown, _, err = svc.CheckCooldown(ctx, "player1", domain.ActionClaim)
	require.NoError(t, err)
	assert.False(t, onCooldown)
}

func TestMemoryService_GetLastUsed(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	svc := cooldown.NewMemoryService(cooldown.Config{}, clock.Now)

	lastUsed, err := svc.GetLastUsed(ctx, "player1", domain.ActionClaim)
	require.NoError(t, err)
	assert.Nil(t, lastUsed)

	require.NoError(t, svc.EnforceCooldown(ctx, "player1", domain.ActionClaim, func() error { return nil }))

	lastUsed, err = svc.GetLastUsed(ctx, "player1", domain.ActionClaim)
	require.NoError(t, err)
	require.NotNil(t, lastUsed)
	assert.Equal(t, clock.Now(), *lastUsed)
}

func TestMemoryService_DevModeBypasses(t *testing.T) {
	ctx := context.Background()
	svc := cooldown.NewMemoryService(cooldown.Config{DevMode: true}, nil)

	for i := 0; i < 5; i++ {
		err := svc.EnforceCooldown(ctx, "player1", domain.ActionClaim, func() error { return nil })
		require.NoError(t, err)
	}
}

func TestMemoryService_ConcurrentEnforceAllowsExactlyOne(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	svc := cooldown.NewMemoryService(cooldown.Config{}, clock.Now)

	const goroutines = 50
	var successes atomic.Int32
	var cooldownErrs atomic.Int32

	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			err := svc.EnforceCooldown(ctx, "player1", domain.ActionClaim, func() error { return nil })
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, cooldown.ErrOnCooldown{}):
				cooldownErrs.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load(), "exactly one claim attempt should pass")
	assert.Equal(t, int32(goroutines-1), cooldownErrs.Load())
}
