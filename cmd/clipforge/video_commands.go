package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newCreateCommand(c *client) *cobra.Command {
	var (
		owner         string
		duration      int
		aspect        string
		scenes        int
		voiceStyle    string
		visualStyle   string
		subtitleStyle string
		noSubtitles   bool
		providers     []string
	)

	cmd := &cobra.Command{
		Use:   "create <prompt>",
		Short: "Queue a new video generation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := parseProviderOverrides(providers)
			if err != nil {
				return err
			}
			body := map[string]any{
				"owner_id": owner,
				"prompt":   args[0],
			}
			if duration > 0 {
				body["target_duration_seconds"] = duration
			}
			if aspect != "" {
				body["aspect_ratio"] = aspect
			}
			if scenes > 0 {
				body["scene_count"] = scenes
			}
			if voiceStyle != "" {
				body["voice_style"] = voiceStyle
			}
			if visualStyle != "" {
				body["visual_style"] = visualStyle
			}
			if subtitleStyle != "" {
				body["subtitle_style"] = subtitleStyle
			}
			if noSubtitles {
				body["subtitles_enabled"] = false
			}
			if len(overrides) > 0 {
				body["provider_overrides"] = overrides
			}

			var created videoView
			if err := c.do(http.MethodPost, "/api/v1/videos", body, &created); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "queued video %s for %s\n", created.ID, created.OwnerID)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owning user id (required)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Target duration in seconds")
	cmd.Flags().StringVar(&aspect, "aspect", "", "Aspect ratio (9:16, 16:9, 1:1, 4:5)")
	cmd.Flags().IntVar(&scenes, "scenes", 0, "Number of script scenes")
	cmd.Flags().StringVar(&voiceStyle, "voice-style", "", "Narration voice style")
	cmd.Flags().StringVar(&visualStyle, "visual-style", "", "Visual style hint")
	cmd.Flags().StringVar(&subtitleStyle, "subtitle-style", "", "Burn-in subtitle style")
	cmd.Flags().BoolVar(&noSubtitles, "no-subtitles", false, "Disable subtitle generation")
	cmd.Flags().StringArrayVar(&providers, "provider", nil, "Per-step provider override, step=provider")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func newStatusCommand(c *client) *cobra.Command {
	return &cobra.Command{
		Use:   "status <video-id>",
		Short: "Show a video's run state, step by step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var video videoView
			if err := c.do(http.MethodGet, "/api/v1/videos/"+url.PathEscape(args[0]), nil, &video); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "video %s (%s)\n", video.ID, video.OwnerID)
			fmt.Fprintf(out, "prompt: %s\n", video.Prompt)
			fmt.Fprintf(out, "status: %s  progress: %s\n", video.Status, formatProgress(video.Progress))
			if video.ErrorMessage != "" {
				fmt.Fprintf(out, "error: %s\n", video.ErrorMessage)
			}
			if videoURL, ok := video.Outputs["video_url"].(string); ok && videoURL != "" {
				fmt.Fprintf(out, "output: %s\n", videoURL)
			}

			rows := make([][]string, 0, 5)
			for _, step := range []string{"script", "voice", "media", "video_ai", "assembly"} {
				state, ok := video.StepStates[step]
				if !ok {
					state = stepView{Status: "pending"}
				}
				rows = append(rows, []string{
					step,
					state.Status,
					formatProgress(state.Progress),
					formatTimestamp(state.StartedAt),
					formatTimestamp(state.CompletedAt),
					state.Error,
				})
			}
			fmt.Fprintln(out, renderRows(
				[]string{"STEP", "STATUS", "PROGRESS", "STARTED", "COMPLETED", "ERROR"},
				rows,
			))
			return nil
		},
	}
}

func newListCommand(c *client) *cobra.Command {
	var (
		owner  string
		status string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List videos known to the daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if owner != "" {
				query.Set("owner", owner)
			}
			if status != "" {
				query.Set("status", status)
			}
			path := "/api/v1/videos"
			if encoded := query.Encode(); encoded != "" {
				path += "?" + encoded
			}

			var listed listView
			if err := c.do(http.MethodGet, path, nil, &listed); err != nil {
				return err
			}
			if len(listed.Videos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no videos")
				return nil
			}

			rows := make([][]string, 0, len(listed.Videos))
			for _, video := range listed.Videos {
				rows = append(rows, []string{
					shortID(video.ID),
					video.OwnerID,
					video.Status,
					formatProgress(video.Progress),
					video.CurrentStep,
					video.CreatedAt.Local().Format("2006-01-02 15:04"),
					truncatePrompt(video.Prompt, 48),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRows(
				[]string{"ID", "OWNER", "STATUS", "PROGRESS", "STEP", "CREATED", "PROMPT"},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Filter by owning user id")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")

	return cmd
}

func newCancelCommand(c *client) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <video-id>",
		Short: "Cancel a pending or processing video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var video videoView
			if err := c.do(http.MethodPost, "/api/v1/videos/"+url.PathEscape(args[0])+"/cancel", nil, &video); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "video %s is now %s\n", video.ID, video.Status)
			return nil
		},
	}
}

func newRetryCommand(c *client) *cobra.Command {
	var providers []string

	cmd := &cobra.Command{
		Use:   "retry <video-id>",
		Short: "Requeue a failed or cancelled video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := parseProviderOverrides(providers)
			if err != nil {
				return err
			}
			var body any
			if len(overrides) > 0 {
				body = map[string]any{"provider_overrides": overrides}
			}
			var video videoView
			if err := c.do(http.MethodPost, "/api/v1/videos/"+url.PathEscape(args[0])+"/retry", body, &video); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "video %s requeued\n", video.ID)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&providers, "provider", nil, "Per-step provider override, step=provider")

	return cmd
}

func newDeleteCommand(c *client) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <video-id>",
		Short: "Delete a video and its durable state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.do(http.MethodDelete, "/api/v1/videos/"+url.PathEscape(args[0]), nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "video %s deleted\n", args[0])
			return nil
		},
	}
}

func parseProviderOverrides(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		step, provider, found := strings.Cut(pair, "=")
		step = strings.TrimSpace(step)
		provider = strings.TrimSpace(provider)
		if !found || step == "" || provider == "" {
			return nil, fmt.Errorf("invalid --provider value %q, expected step=provider", pair)
		}
		overrides[step] = provider
	}
	return overrides, nil
}

func formatTimestamp(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return ts.Local().Format("15:04:05")
}
