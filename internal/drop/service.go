package drop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fancards/fancards-go/internal/card"
	"github.com/fancards/fancards-go/internal/cooldown"
	"github.com/fancards/fancards-go/internal/domain"
	"github.com/fancards/fancards-go/internal/logger"
	"github.com/fancards/fancards-go/internal/metrics"
	"github.com/fancards/fancards-go/internal/progression"
	"github.com/fancards/fancards-go/internal/repository"
	"github.com/fancards/fancards-go/internal/user"
	"github.com/fancards/fancards-go/internal/utils"
)

// ClaimResult is the structured outcome of a claim for the presentation layer
type ClaimResult struct {
	DropID      string                   `json:"drop_id"`
	SlotIndex   int                      `json:"slot_index"`
	Card        *domain.Card             `json:"card,omitempty"`
	Silver      int                      `json:"silver"`
	XP          int                      `json:"xp"`
	LevelChange *domain.LevelChangeEvent `json:"level_change,omitempty"`
	Stolen      bool                     `json:"stolen"`
	Trolled     bool                     `json:"trolled"`
	Flavor      string                   `json:"flavor,omitempty"`
}

// Service orchestrates drop sessions and claim arbitration
type Service interface {
	// StartDrop generates a new session of claimable cards for the player.
	StartDrop(ctx context.Context, discordID string) (*SessionView, error)

	// GetDrop returns the presentation view of a session.
	GetDrop(ctx context.Context, dropID string) (*SessionView, error)

	// Claim attempts to take ownership of one slot. Under concurrent
	// claims on the same slot exactly one caller wins.
	Claim(ctx context.Context, dropID string, slotIndex int, discordID string) (*ClaimResult, error)
}

// errTrollClaim routes a troll outcome out of the cooldown closure so
// the claimant's window is not consumed.
var errTrollClaim = errors.New("troll claim")

type service struct {
	registry  *Registry
	generator *card.Generator
	cooldowns cooldown.Service
	users     user.Service
	cardRepo  repository.Card
	levelRepo repository.Level

	randInt func(min, max int) int
	now     func() time.Time
}

// NewService creates a new drop service
func NewService(registry *Registry, generator *card.Generator, cooldowns cooldown.Service, users user.Service, cardRepo repository.Card, levelRepo repository.Level) Service {
	return &service{
		registry:  registry,
		generator: generator,
		cooldowns: cooldowns,
		users:     users,
		cardRepo:  cardRepo,
		levelRepo: levelRepo,
		randInt:   utils.RandomInt,
		now:       time.Now,
	}
}

func (s *service) StartDrop(ctx context.Context, discordID string) (*SessionView, error) {
	log := logger.FromContext(ctx)

	player, err := s.users.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}

	var view *SessionView
	var profile domain.WeightProfile
	err = s.cooldowns.EnforceCooldown(ctx, player.InternalID, domain.ActionDrop, func() error {
		profile, err = s.users.DetermineDropProfile(ctx, player)
		if err != nil {
			return err
		}

		templates, err := s.generator.GenerateBatch(profile, player.Elevated, domain.DropSize, card.Overrides{})
		if err != nil {
			return fmt.Errorf(ErrMsgGenerateFailed, err)
		}

		session := NewSession(uuid.NewString(), player.InternalID, profile, templates, s.now())
		s.registry.Put(session)

		metrics.DropsStarted.WithLabelValues(string(profile)).Inc()
		log.Info(LogMsgDropStarted,
			"dropID", session.ID, "playerID", player.InternalID, "profile", profile)

		v := session.View(s.now())
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}

	// A consumed premium drop already paid for the roll, so it does not
	// start a drop cooldown window.
	if profile == domain.WeightProfilePremium {
		if err := s.cooldowns.ResetCooldown(ctx, player.InternalID, domain.ActionDrop); err != nil {
			log.Warn(LogWarnCooldownResetFailed, "error", err, "playerID", player.InternalID)
		}
	}
	return view, nil
}

func (s *service) GetDrop(ctx context.Context, dropID string) (*SessionView, error) {
	session, ok := s.registry.Get(dropID)
	if !ok {
		return nil, domain.ErrDropNotFound
	}
	view := session.View(s.now())
	return &view, nil
}

func (s *service) Claim(ctx context.Context, dropID string, slotIndex int, discordID string) (*ClaimResult, error) {
	claimant, err := s.users.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}

	var result *ClaimResult
	err = s.cooldowns.EnforceCooldown(ctx, claimant.InternalID, domain.ActionClaim, func() error {
		var claimErr error
		result, claimErr = s.claim(ctx, dropID, slotIndex, claimant)
		return claimErr
	})
	if errors.Is(err, errTrollClaim) {
		// A troll outcome is a flavor result, not a failure, but it must
		// not charge the claimant's cooldown window.
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) claim(ctx context.Context, dropID string, slotIndex int, claimant *domain.Player) (*ClaimResult, error) {
	log := logger.FromContext(ctx)

	session, ok := s.registry.Get(dropID)
	if !ok {
		metrics.ClaimsRejected.WithLabelValues(RejectionNotFound).Inc()
		return nil, domain.ErrDropNotFound
	}

	// Atomic check-and-mark before any side effect. Everything after
	// this point runs with the slot already owned by the claimant.
	tmpl, err := session.MarkSlot(slotIndex, claimant.InternalID, s.now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDropExpired):
			metrics.ClaimsRejected.WithLabelValues(RejectionExpired).Inc()
		case errors.Is(err, domain.ErrAlreadyClaimed):
			metrics.ClaimsRejected.WithLabelValues(RejectionSlotClaimed).Inc()
		}
		return nil, err
	}

	hasSpace, err := s.users.HasBackpackSpace(ctx, claimant.InternalID)
	if err != nil {
		return nil, err
	}
	if !hasSpace {
		// The slot stays claimed with no card granted. Deliberate wasted
		// slot; it is not reopened for others.
		metrics.ClaimsRejected.WithLabelValues(RejectionCapacity).Inc()
		log.Info(LogMsgClaimWastedSlot, "dropID", dropID, "slotIndex", slotIndex, "playerID", claimant.InternalID)
		return nil, domain.ErrBackpackFull
	}

	result := &ClaimResult{
		DropID:    dropID,
		SlotIndex: slotIndex,
		Stolen:    claimant.InternalID != session.OwnerID,
	}

	if tmpl.Troll {
		metrics.ClaimsRejected.WithLabelValues(RejectionTroll).Inc()
		result.Trolled = true
		result.Flavor = TrollFlavorText
		log.Info(LogMsgClaimTrolled, "dropID", dropID, "playerID", claimant.InternalID)
		return result, errTrollClaim
	}

	// Shininess is re-rolled at claim time against the claimant's own
	// elevated status; the generation-time roll is discarded.
	shiny := s.generator.RollShiny(session.Profile, claimant.Elevated)
	session.RecordShiny(slotIndex, shiny)
	claimed := tmpl.Materialize(claimant.InternalID, shiny, s.now())

	silver := 0
	if silverRange := claimed.Rarity.Data().SilverRange; silverRange != nil {
		silver = s.randInt(silverRange.Min/ClaimSilverDivisor, silverRange.Max/ClaimSilverDivisor)
	}

	xp := s.randInt(ClaimXPMin, ClaimXPMax)
	if claimant.Elevated {
		xp *= progression.ElevatedXPMultiplier
	}

	state, err := s.levelRepo.GetLevelState(ctx, claimant.InternalID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetLevelStateFailed, err)
	}
	levelChange := progression.Apply(state, xp)

	if err := s.cardRepo.ClaimCardInTransaction(ctx, &claimed, silver, state); err != nil {
		// The slot is already spent; this is the documented inconsistency
		// window between mark and persist.
		log.Error(LogErrClaimPersistFailed, "error", err, "dropID", dropID, "cardID", claimed.ID)
		return nil, fmt.Errorf(ErrMsgPersistClaimFailed, err)
	}

	if levelChange.LeveledUp {
		metrics.LevelUps.Inc()
	}
	metrics.CardsClaimed.WithLabelValues(string(claimed.Rarity)).Inc()
	metrics.CurrencyGranted.WithLabelValues(string(domain.CurrencySilver)).Add(float64(silver))

	result.Card = &claimed
	result.Silver = silver
	result.XP = xp
	result.LevelChange = levelChange

	log.Info(LogMsgCardClaimed,
		"dropID", dropID,
		"slotIndex", slotIndex,
		"playerID", claimant.InternalID,
		"cardID", claimed.ID,
		"rarity", claimed.Rarity,
		"stolen", result.Stolen)
	return result, nil
}
