package progression

import (
	"context"
	"fmt"

	"github.com/fancards/fancards-go/internal/domain"
	"github.com/fancards/fancards-go/internal/logger"
	"github.com/fancards/fancards-go/internal/metrics"
	"github.com/fancards/fancards-go/internal/repository"
)

// Service defines the leveling business logic
type Service interface {
	GetLevelState(ctx context.Context, playerID string) (*domain.LevelState, error)

	// AddXP applies XP to a player, carrying overflow across as many
	// level-ups as it covers. Elevated players earn double XP.
	AddXP(ctx context.Context, playerID string, amount int, elevated bool) (*domain.LevelChangeEvent, error)
}

type service struct {
	repo repository.Level
}

// NewService creates a new progression service
func NewService(repo repository.Level) Service {
	return &service{repo: repo}
}

func (s *service) GetLevelState(ctx context.Context, playerID string) (*domain.LevelState, error) {
	return s.repo.GetLevelState(ctx, playerID)
}

func (s *service) AddXP(ctx context.Context, playerID string, amount int, elevated bool) (*domain.LevelChangeEvent, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return nil, fmt.Errorf(ErrMsgInvalidXPAmountFmt, amount, domain.ErrInvalidInput)
	}
	if elevated {
		amount *= ElevatedXPMultiplier
	}

	state, err := s.repo.GetLevelState(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetLevelStateFailed, err)
	}

	event := Apply(state, amount)

	if err := s.repo.UpdateLevelState(ctx, state); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateLevelStateFailed, err)
	}

	if event.LeveledUp {
		metrics.LevelUps.Inc()
		log.Info(LogMsgPlayerLeveledUp,
			"playerID", playerID,
			"previousLevel", event.PreviousLevel,
			"newLevel", event.NewLevel)
	}

	return event, nil
}

// Apply mutates state with an XP award, carrying overflow across level-ups,
// and reports the outcome. The amount must already include any multipliers.
// At the cap the XP bar stays parked at full; further awards are
// acknowledged but not stored.
func Apply(state *domain.LevelState, amount int) *domain.LevelChangeEvent {
	event := &domain.LevelChangeEvent{
		PlayerID:      state.PlayerID,
		PreviousLevel: state.CurrentLevel,
		NewLevel:      state.CurrentLevel,
		XPGained:      amount,
	}

	if state.CurrentLevel >= domain.MaxPlayerLevel {
		return event
	}

	state.CurrentXP += amount
	for state.CurrentXP >= state.RequiredXP && state.CurrentLevel < domain.MaxPlayerLevel {
		state.CurrentXP -= state.RequiredXP
		state.CurrentLevel++
		state.RequiredXP = domain.RequiredXP(state.CurrentLevel)
	}
	if state.CurrentLevel >= domain.MaxPlayerLevel {
		state.CurrentXP = state.RequiredXP
		event.ReachedCap = true
	}

	event.NewLevel = state.CurrentLevel
	event.LeveledUp = event.NewLevel > event.PreviousLevel
	return event
}
