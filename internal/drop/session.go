package drop

import (
	"fmt"
	"sync"
	"time"

	"github.com/fancards/fancards-go/internal/domain"
)

// SlotState is the claim state of one slot
type SlotState string

const (
	SlotUnclaimed SlotState = "unclaimed"
	SlotClaimed   SlotState = "claimed"
)

// SessionState is the lifecycle state of a drop session
type SessionState string

const (
	SessionOpen    SessionState = "open"
	SessionExpired SessionState = "expired"
)

// Slot holds one generated card template and its claim state
type Slot struct {
	Template  domain.CardTemplate
	State     SlotState
	ClaimedBy string
	ClaimedAt time.Time
}

// Session is an ephemeral batch of claimable card templates. Expiry is a
// pure function of elapsed time; claimed slots never revert, and an
// expired session rejects every claim against a still-unclaimed slot.
type Session struct {
	ID        string
	OwnerID   string
	Profile   domain.WeightProfile
	CreatedAt time.Time
	ExpiresAt time.Time

	mu    sync.Mutex
	slots []Slot
}

// NewSession creates a session with one slot per template.
func NewSession(id, ownerID string, profile domain.WeightProfile, templates []domain.CardTemplate, createdAt time.Time) *Session {
	slots := make([]Slot, len(templates))
	for i, tmpl := range templates {
		slots[i] = Slot{Template: tmpl, State: SlotUnclaimed}
	}
	return &Session{
		ID:        id,
		OwnerID:   ownerID,
		Profile:   profile,
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(domain.DropExpiryDuration),
		slots:     slots,
	}
}

// Expired reports whether the session has passed its expiry time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// MarkSlot atomically claims a slot for the claimant and returns its
// template. Under concurrent calls for the same slot exactly one caller
// succeeds; the rest observe ErrAlreadyClaimed.
func (s *Session) MarkSlot(index int, claimantID string, now time.Time) (domain.CardTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.slots) {
		return domain.CardTemplate{}, fmt.Errorf("%w: slot index %d out of range", domain.ErrInvalidInput, index)
	}
	if s.Expired(now) {
		return domain.CardTemplate{}, domain.ErrDropExpired
	}

	slot := &s.slots[index]
	if slot.State == SlotClaimed {
		return domain.CardTemplate{}, domain.ErrAlreadyClaimed
	}

	slot.State = SlotClaimed
	slot.ClaimedBy = claimantID
	slot.ClaimedAt = now
	return slot.Template, nil
}

// RecordShiny stores the claim-time shininess re-roll so later views
// reflect the persisted card rather than the generation-time roll.
func (s *Session) RecordShiny(index int, shiny bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index >= 0 && index < len(s.slots) {
		s.slots[index].Template.Shiny = shiny
	}
}

// FullyClaimed reports whether every slot has been claimed.
func (s *Session) FullyClaimed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slots {
		if s.slots[i].State != SlotClaimed {
			return false
		}
	}
	return true
}

// UnclaimedCount returns the number of still-unclaimed slots.
func (s *Session) UnclaimedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for i := range s.slots {
		if s.slots[i].State == SlotUnclaimed {
			count++
		}
	}
	return count
}

// SlotView is the presentation shape of one slot. Condition and card ID
// stay hidden until the slot is claimed.
type SlotView struct {
	Index         int              `json:"index"`
	Rarity        domain.Rarity    `json:"rarity"`
	CharacterName string           `json:"character_name"`
	State         SlotState        `json:"state"`
	ClaimedBy     string           `json:"claimed_by,omitempty"`
	CardID        string           `json:"card_id,omitempty"`
	Condition     domain.Condition `json:"condition,omitempty"`
	Shiny         *bool            `json:"shiny,omitempty"`
}

// SessionView is the presentation shape of a session.
type SessionView struct {
	ID        string               `json:"id"`
	OwnerID   string               `json:"owner_id"`
	Profile   domain.WeightProfile `json:"profile"`
	State     SessionState         `json:"state"`
	ExpiresAt time.Time            `json:"expires_at"`
	Slots     []SlotView           `json:"slots"`
}

// View snapshots the session for presentation.
func (s *Session) View(now time.Time) SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := SessionOpen
	if s.Expired(now) {
		state = SessionExpired
	}

	slots := make([]SlotView, len(s.slots))
	for i := range s.slots {
		slot := &s.slots[i]
		view := SlotView{
			Index:         i,
			Rarity:        slot.Template.Rarity,
			CharacterName: slot.Template.CharacterName,
			State:         slot.State,
		}
		if slot.State == SlotClaimed {
			view.ClaimedBy = slot.ClaimedBy
			view.CardID = slot.Template.ID
			view.Condition = slot.Template.Condition
			shiny := slot.Template.Shiny
			view.Shiny = &shiny
		}
		slots[i] = view
	}

	return SessionView{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		Profile:   s.Profile,
		State:     state,
		ExpiresAt: s.ExpiresAt,
		Slots:     slots,
	}
}
