package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fancards/fancards-go/internal/domain"
	"github.com/fancards/fancards-go/internal/economy"
	"github.com/fancards/fancards-go/internal/logger"
	"github.com/fancards/fancards-go/internal/metrics"
	"github.com/fancards/fancards-go/internal/repository"
)

// CapacityStatus reports backpack usage. Capacity is nil when unlimited.
type CapacityStatus struct {
	BackpackLevel int  `json:"backpack_level"`
	Capacity      *int `json:"capacity"`
	Used          int  `json:"used"`
}

// Service defines the interface for player account operations
type Service interface {
	Register(ctx context.Context, discordID, username string) (*domain.Player, error)
	GetByDiscordID(ctx context.Context, discordID string) (*domain.Player, error)
	GetByID(ctx context.Context, playerID string) (*domain.Player, error)

	// AddBackpackLevel raises the backpack level by one and returns the
	// new level. Already at max is not an error.
	AddBackpackLevel(ctx context.Context, playerID string) (int, error)

	GetCapacity(ctx context.Context, playerID string) (*CapacityStatus, error)
	HasBackpackSpace(ctx context.Context, playerID string) (bool, error)

	// DetermineDropProfile picks the weight profile for a drop. One
	// premium drop item is consumed when held, selecting the premium
	// profile regardless of level; otherwise low-level players roll
	// new_user.
	DetermineDropProfile(ctx context.Context, player *domain.Player) (domain.WeightProfile, error)
}

type service struct {
	repo       repository.Player
	cardRepo   repository.Card
	levelRepo  repository.Level
	economySvc economy.Service
	cache      *playerCache
}

// NewService creates a new user service
func NewService(repo repository.Player, cardRepo repository.Card, levelRepo repository.Level, economySvc economy.Service) Service {
	return &service{
		repo:       repo,
		cardRepo:   cardRepo,
		levelRepo:  levelRepo,
		economySvc: economySvc,
		cache:      newPlayerCache(DefaultCacheSize, DefaultCacheTTL),
	}
}

func (s *service) Register(ctx context.Context, discordID, username string) (*domain.Player, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRegisterCalled, "discordID", discordID, "username", username)

	if discordID == "" || username == "" {
		return nil, fmt.Errorf("%w: discord id and username are required", domain.ErrInvalidInput)
	}

	player := &domain.Player{
		InternalID:    uuid.NewString(),
		DiscordID:     discordID,
		Username:      username,
		BackpackLevel: 1,
		RegisteredAt:  time.Now().UTC(),
	}

	if err := s.repo.RegisterPlayer(ctx, player); err != nil {
		if errors.Is(err, domain.ErrPlayerExists) {
			return nil, err
		}
		log.Error(LogErrRegisterFailed, "error", err, "discordID", discordID)
		return nil, fmt.Errorf(ErrMsgRegisterFailed, err)
	}

	s.cache.Set(discordID, player)
	metrics.PlayersRegistered.Inc()

	log.Info(LogMsgPlayerRegistered, "playerID", player.InternalID, "username", username)
	return player, nil
}

func (s *service) GetByDiscordID(ctx context.Context, discordID string) (*domain.Player, error) {
	log := logger.FromContext(ctx)

	if player, ok := s.cache.Get(discordID); ok {
		log.Debug(LogMsgPlayerCacheHit, "playerID", player.InternalID)
		return player, nil
	}

	player, err := s.repo.GetPlayerByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(discordID, player)
	return player, nil
}

func (s *service) GetByID(ctx context.Context, playerID string) (*domain.Player, error) {
	return s.repo.GetPlayerByID(ctx, playerID)
}

func (s *service) AddBackpackLevel(ctx context.Context, playerID string) (int, error) {
	player, err := s.repo.GetPlayerByID(ctx, playerID)
	if err != nil {
		return 0, err
	}

	if player.BackpackLevel >= domain.MaxBackpackLevel {
		return player.BackpackLevel, nil
	}

	newLevel := player.BackpackLevel + 1
	if err := s.repo.UpdateBackpackLevel(ctx, playerID, newLevel); err != nil {
		return 0, fmt.Errorf(ErrMsgUpdateBackpackFailed, err)
	}

	s.cache.Invalidate(player.DiscordID)
	logger.FromContext(ctx).Info(LogMsgBackpackUpgraded,
		"playerID", playerID, "backpackLevel", newLevel)
	return newLevel, nil
}

func (s *service) GetCapacity(ctx context.Context, playerID string) (*CapacityStatus, error) {
	player, err := s.repo.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	used, err := s.cardRepo.CountPlayerCards(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCountCardsFailed, err)
	}

	status := &CapacityStatus{BackpackLevel: player.BackpackLevel, Used: used}
	if player.BackpackLevel < domain.MaxBackpackLevel {
		capacity := player.BackpackLevel * domain.BackpackSlotsPerLevel
		status.Capacity = &capacity
	}
	return status, nil
}

func (s *service) HasBackpackSpace(ctx context.Context, playerID string) (bool, error) {
	status, err := s.GetCapacity(ctx, playerID)
	if err != nil {
		return false, err
	}
	if status.Capacity == nil {
		return true, nil
	}
	return status.Used < *status.Capacity, nil
}

func (s *service) DetermineDropProfile(ctx context.Context, player *domain.Player) (domain.WeightProfile, error) {
	// A held premium drop wins over the level check.
	err := s.economySvc.ConsumeItem(ctx, player.InternalID, domain.ItemPremiumDrop, 1)
	if err == nil {
		logger.FromContext(ctx).Info(LogMsgPremiumDropConsumed, "playerID", player.InternalID)
		return domain.WeightProfilePremium, nil
	}
	if !errors.Is(err, domain.ErrInsufficientQuantity) {
		return "", fmt.Errorf(ErrMsgConsumePremiumFailed, err)
	}

	state, err := s.levelRepo.GetLevelState(ctx, player.InternalID)
	if err != nil {
		return "", fmt.Errorf(ErrMsgGetLevelStateFailed, err)
	}
	if state.CurrentLevel < domain.NewUserLevelCeiling {
		return domain.WeightProfileNewUser, nil
	}
	return domain.WeightProfileNormal, nil
}
