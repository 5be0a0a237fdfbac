package pipeline

import (
	"os"
	"path/filepath"

	"clipforge/internal/services"
	"clipforge/internal/stage"
	"clipforge/internal/timing"
	"clipforge/internal/videos"
)

// subtitleDimensions maps the run's aspect ratio to the ASS play resolution.
func subtitleDimensions(aspect string) (int, int) {
	switch aspect {
	case "16:9":
		return 1920, 1080
	case "1:1":
		return 1080, 1080
	case "4:5":
		return 1080, 1350
	default:
		return 1080, 1920
	}
}

// buildSubtitleSegments derives sentence cues from the voice step. Provider
// timing wins when present; otherwise cues are estimated from the narration
// text and total audio duration.
func buildSubtitleSegments(voice stage.VoiceOutput, units []timing.Unit, narration string) []timing.Segment {
	if len(units) > 0 {
		switch voice.TimingGranularity {
		case "character":
			return timing.FromCharacters(units)
		default:
			return timing.FromWords(units)
		}
	}
	return timing.Estimate(narration, voice.DurationMS)
}

// writeSubtitles renders and writes the ASS document into the run workspace,
// returning its path. An empty cue list yields no file and an empty path.
func writeSubtitles(workspaceDir string, cfg videos.PipelineConfig, segments []timing.Segment) (string, error) {
	if len(segments) == 0 {
		return "", nil
	}
	styleName, ok := timing.ParseStyleName(cfg.SubtitleStyle)
	if !ok {
		styleName = timing.StyleBoldCenter
	}
	width, height := subtitleDimensions(cfg.AspectRatio)
	doc, err := timing.RenderASS(segments, styleName, width, height)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, string(stage.Voice), "render subtitles", "", err)
	}

	path := filepath.Join(workspaceDir, "subtitles.ass")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", services.Wrap(services.ErrTransient, string(stage.Voice), "write subtitles", "", err)
	}
	return path, nil
}
