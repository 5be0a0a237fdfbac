package notifications

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"clipforge/internal/config"
)

const userAgent = "clipforge-notifier/1.0"

// Service delivers pipeline lifecycle notifications. Implementations must be
// safe for concurrent use; the orchestrator invokes them fire-and-forget.
type Service interface {
	GenerationStarted(ctx context.Context, ownerID, videoID, prompt string) error
	GenerationCompleted(ctx context.Context, ownerID, videoID, videoURL string) error
	GenerationFailed(ctx context.Context, ownerID, videoID, step, message string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service from configuration. When no ntfy
// topic is configured a no-op service is returned so callers never need to
// branch on whether notifications are enabled.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}
	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyService{
		topicURL:  topic,
		started:   cfg.Notifications.Started,
		completed: cfg.Notifications.Completed,
		errors:    cfg.Notifications.Errors,
		client:    &http.Client{Timeout: timeout},
	}
}

type ntfyService struct {
	topicURL  string
	started   bool
	completed bool
	errors    bool
	client    *http.Client
}

type message struct {
	title    string
	body     string
	tags     string
	priority string
}

func (s *ntfyService) GenerationStarted(ctx context.Context, ownerID, videoID, prompt string) error {
	if !s.started {
		return nil
	}
	return s.send(ctx, message{
		title: "Video generation started",
		body:  fmt.Sprintf("Generating %q for %s (video %s)", truncate(prompt, 120), ownerID, videoID),
		tags:  "clapper,hourglass_flowing_sand",
	})
}

func (s *ntfyService) GenerationCompleted(ctx context.Context, ownerID, videoID, videoURL string) error {
	if !s.completed {
		return nil
	}
	body := fmt.Sprintf("Video %s for %s is ready", videoID, ownerID)
	if videoURL != "" {
		body += "\n" + videoURL
	}
	return s.send(ctx, message{
		title: "Video generation complete",
		body:  body,
		tags:  "clapper,white_check_mark",
	})
}

func (s *ntfyService) GenerationFailed(ctx context.Context, ownerID, videoID, step, reason string) error {
	if !s.errors {
		return nil
	}
	return s.send(ctx, message{
		title:    "Video generation failed",
		body:     fmt.Sprintf("Video %s for %s failed at step %s: %s", videoID, ownerID, step, reason),
		tags:     "clapper,rotating_light",
		priority: "high",
	})
}

func (s *ntfyService) TestNotification(ctx context.Context) error {
	return s.send(ctx, message{
		title: "clipforge test notification",
		body:  "Notifications are configured correctly.",
		tags:  "clapper,bell",
	})
}

func (s *ntfyService) send(ctx context.Context, msg message) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.topicURL, bytes.NewBufferString(msg.body))
	if err != nil {
		return fmt.Errorf("create notification request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if msg.title != "" {
		req.Header.Set("Title", msg.title)
	}
	if msg.tags != "" {
		req.Header.Set("Tags", msg.tags)
	}
	if msg.priority != "" {
		req.Header.Set("Priority", msg.priority)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notification rejected: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

type noopService struct{}

func (noopService) GenerationStarted(context.Context, string, string, string) error { return nil }

func (noopService) GenerationCompleted(context.Context, string, string, string) error { return nil }

func (noopService) GenerationFailed(context.Context, string, string, string, string) error {
	return nil
}

func (noopService) TestNotification(context.Context) error {
	return fmt.Errorf("notifications are not configured (set notifications.ntfy_topic)")
}
