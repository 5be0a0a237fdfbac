package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// videoView mirrors the daemon's video response shape.
type videoView struct {
	ID           string               `json:"id"`
	OwnerID      string               `json:"owner_id"`
	Prompt       string               `json:"prompt"`
	Status       string               `json:"status"`
	Progress     float64              `json:"progress"`
	CurrentStep  string               `json:"current_step"`
	StepStates   map[string]stepView  `json:"step_states"`
	ErrorMessage string               `json:"error_message"`
	Outputs      map[string]any       `json:"outputs"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

type stepView struct {
	Status      string     `json:"status"`
	Progress    float64    `json:"progress"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Error       string     `json:"error"`
}

type listView struct {
	Videos []videoView `json:"videos"`
}

type client struct {
	base  *string
	token *string
	http  *http.Client
}

func newClient(base, token *string) *client {
	return &client{
		base:  base,
		token: token,
		http:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *client) do(method, path string, body any, out any) error {
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	url := strings.TrimRight(*c.base, "/") + path
	req, err := http.NewRequest(method, url, &payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := strings.TrimSpace(*c.token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("reach daemon at %s: %w", *c.base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("daemon error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("daemon error: %s", resp.Status)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
