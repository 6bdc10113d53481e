package cooldown_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fancards/fancards-go/internal/cooldown"
)

// TestErrOnCooldown_Error tests the error message formatting
func TestErrOnCooldown_Error(t *testing.T) {
	tests := []struct {
		name string
		err  cooldown.ErrOnCooldown
		want string
	}{
		{
			name: "minutes and seconds",
			err:  cooldown.ErrOnCooldown{Action: "drop", Remaining: 2*time.Minute + 30*time.Second},
			want: "action 'drop' on cooldown: 2m 30s remaining",
		},
		{
			name: "seconds only",
			err:  cooldown.ErrOnCooldown{Action: "claim", Remaining: 5 * time.Second},
			want: "action 'claim' on cooldown: 5s remaining",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

// TestErrOnCooldown_Is tests the errors.Is() compatibility
func TestErrOnCooldown_Is(t *testing.T) {
	err := cooldown.ErrOnCooldown{Action: "test", Remaining: time.Minute}

	// Should match another ErrOnCooldown
	assert.True(t, errors.Is(err, cooldown.ErrOnCooldown{}))

	// Should not match other errors
	assert.False(t, errors.Is(err, errors.New("other error")))
}

func TestErrOnCooldown_ZeroRemaining(t *testing.T) {
	err := cooldown.ErrOnCooldown{Action: "claim", Remaining: 0}
	assert.Equal(t, "action 'claim' on cooldown: 0s remaining", err.Error())
}
