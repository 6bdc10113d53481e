package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/fancards/fancards-go/internal/burn"
	"github.com/fancards/fancards-go/internal/card"
	"github.com/fancards/fancards-go/internal/domain"
	"github.com/fancards/fancards-go/internal/drop"
	"github.com/fancards/fancards-go/internal/user"
)

// APIClient handles communication with the Fancards Core API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIKey: apiKey,
	}
}

// doRequest performs an HTTP request with retry logic. Only 5xx
// responses and transport errors are retried.
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	url := fmt.Sprintf("%s%s", c.BaseURL, path)

	maxRetries := 3
	retryDelay := 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, url, bytes.NewBuffer(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		if resp.StatusCode < 500 {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// apiError extracts the error message from a non-success response
func apiError(resp *http.Response) error {
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		return fmt.Errorf("API error: %s", errResp.Error)
	}
	return fmt.Errorf("API returned status: %d", resp.StatusCode)
}

// getJSON performs a GET and decodes the response into out
func (c *APIClient) getJSON(path string, out interface{}) error {
	resp, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// postJSON performs a POST and decodes the response into out (may be nil)
func (c *APIClient) postJSON(path string, body, out interface{}) error {
	resp, err := c.doRequest(http.MethodPost, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return apiError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// RegisterUser registers a player account
func (c *APIClient) RegisterUser(discordID, username string) (*domain.Player, error) {
	req := map[string]string{
		"discord_id": discordID,
		"username":   username,
	}

	var player domain.Player
	if err := c.postJSON("/api/v1/user/register", req, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// GetCapacity retrieves backpack usage for a player
func (c *APIClient) GetCapacity(discordID string) (*user.CapacityStatus, error) {
	params := url.Values{}
	params.Set("discord_id", discordID)

	var status user.CapacityStatus
	if err := c.getJSON("/api/v1/user/capacity?"+params.Encode(), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetLevel retrieves a player's level and XP progress
func (c *APIClient) GetLevel(discordID string) (*domain.LevelState, error) {
	params := url.Values{}
	params.Set("discord_id", discordID)

	var state domain.LevelState
	if err := c.getJSON("/api/v1/user/level?"+params.Encode(), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// StartDrop opens a new drop session for the player
func (c *APIClient) StartDrop(discordID string) (*drop.SessionView, error) {
	req := map[string]string{
		"discord_id": discordID,
	}

	var view drop.SessionView
	if err := c.postJSON("/api/v1/drop/start", req, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// GetDrop retrieves the current state of a drop session
func (c *APIClient) GetDrop(dropID string) (*drop.SessionView, error) {
	params := url.Values{}
	params.Set("id", dropID)

	var view drop.SessionView
	if err := c.getJSON("/api/v1/drop/get?"+params.Encode(), &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Claim attempts to claim one slot of a drop session
func (c *APIClient) Claim(dropID string, slotIndex int, discordID string) (*drop.ClaimResult, error) {
	req := map[string]interface{}{
		"discord_id": discordID,
		"slot_index": slotIndex,
	}

	params := url.Values{}
	params.Set("id", dropID)

	var result drop.ClaimResult
	if err := c.postJSON("/api/v1/drop/claim?"+params.Encode(), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetCollection retrieves a player's cards, optionally filtered by rarity
func (c *APIClient) GetCollection(discordID, rarity string) ([]domain.Card, error) {
	params := url.Values{}
	params.Set("discord_id", discordID)
	if rarity != "" {
		params.Set("rarity", rarity)
	}

	var collResp struct {
		Cards []domain.Card `json:"cards"`
		Count int           `json:"count"`
	}
	if err := c.getJSON("/api/v1/card/collection?"+params.Encode(), &collResp); err != nil {
		return nil, err
	}
	return collResp.Cards, nil
}

// ViewCard retrieves one card with owner and value attached. An empty
// cardID returns the player's most recently acquired card.
func (c *APIClient) ViewCard(discordID, cardID string) (*card.View, error) {
	params := url.Values{}
	params.Set("discord_id", discordID)
	if cardID != "" {
		params.Set("card_id", cardID)
	}

	var view card.View
	if err := c.getJSON("/api/v1/card/view?"+params.Encode(), &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// SetCardLock toggles a card's burn protection
func (c *APIClient) SetCardLock(discordID, cardID string, locked bool) (string, error) {
	req := map[string]interface{}{
		"discord_id": discordID,
		"card_id":    cardID,
		"locked":     &locked,
	}

	var lockResp struct {
		Message string `json:"message"`
	}
	if err := c.postJSON("/api/v1/card/lock", req, &lockResp); err != nil {
		return "", err
	}
	return lockResp.Message, nil
}

// BurnPreview computes burn rewards without destroying anything. An
// empty cardIDs slice previews burning the whole collection.
func (c *APIClient) BurnPreview(discordID string, cardIDs []string) (*burn.Preview, error) {
	req := map[string]interface{}{
		"discord_id": discordID,
		"card_ids":   cardIDs,
	}

	var preview burn.Preview
	if err := c.postJSON("/api/v1/card/burn/preview", req, &preview); err != nil {
		return nil, err
	}
	return &preview, nil
}

// BurnConfirm destroys the cards and credits the rewards
func (c *APIClient) BurnConfirm(discordID string, cardIDs []string) (*burn.Result, error) {
	req := map[string]interface{}{
		"discord_id": discordID,
		"card_ids":   cardIDs,
	}

	var result burn.Result
	if err := c.postJSON("/api/v1/card/burn/confirm", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetBalance retrieves a player's currency totals
func (c *APIClient) GetBalance(discordID string) (*domain.Balance, error) {
	params := url.Values{}
	params.Set("discord_id", discordID)

	var balance domain.Balance
	if err := c.getJSON("/api/v1/economy/balance?"+params.Encode(), &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}

// GetInventory retrieves a player's non-card items
func (c *APIClient) GetInventory(discordID string) ([]domain.InventoryItem, error) {
	params := url.Values{}
	params.Set("discord_id", discordID)

	var invResp struct {
		Items []domain.InventoryItem `json:"items"`
	}
	if err := c.getJSON("/api/v1/economy/inventory?"+params.Encode(), &invResp); err != nil {
		return nil, err
	}
	return invResp.Items, nil
}

// AddBackpackLevel raises a player's backpack level by one
func (c *APIClient) AddBackpackLevel(discordID string) (int, error) {
	req := map[string]string{
		"discord_id": discordID,
	}

	var levelResp struct {
		Message       string `json:"message"`
		BackpackLevel int    `json:"backpack_level"`
	}
	if err := c.postJSON("/api/v1/user/backpack", req, &levelResp); err != nil {
		return 0, err
	}
	return levelResp.BackpackLevel, nil
}
