package pipeline

import (
	"strings"

	"clipforge/internal/services"
	"clipforge/internal/stage"
	"clipforge/internal/videos"
)

// Narration flattens a script into the text the voice step reads aloud:
// hook, then each scene's narration in order, then the call to action.
func Narration(script stage.ScriptOutput) string {
	parts := make([]string, 0, len(script.Scenes)+2)
	if hook := strings.TrimSpace(script.Hook); hook != "" {
		parts = append(parts, hook)
	}
	for _, scene := range script.Scenes {
		if narration := strings.TrimSpace(scene.Narration); narration != "" {
			parts = append(parts, narration)
		}
	}
	if cta := strings.TrimSpace(script.CallToAction); cta != "" {
		parts = append(parts, cta)
	}
	return strings.Join(parts, " ")
}

// stepOutputs accumulates the decoded outputs of completed steps so later
// steps can build their inputs. On resume it is hydrated from persisted step
// states instead of re-running earlier steps.
type stepOutputs struct {
	script   *stage.ScriptOutput
	voice    *stage.VoiceOutput
	media    *stage.MediaOutput
	clips    *stage.VideoAIOutput
	assembly *stage.AssemblyOutput
}

// hydrate decodes the stored result payloads of already-completed steps.
func (o *stepOutputs) hydrate(video *videos.Video) error {
	for _, c := range stage.Order() {
		state := video.StepState(c)
		if state.Status != videos.StepCompleted {
			continue
		}
		if err := o.record(c, state.Result); err != nil {
			return err
		}
	}
	return nil
}

// record decodes and stores one step's output payload.
func (o *stepOutputs) record(c stage.Category, data map[string]any) error {
	switch c {
	case stage.Script:
		out, err := stage.DecodeScriptOutput(data)
		if err != nil {
			return services.Wrap(services.ErrTransient, string(c), "decode stored result", "", err)
		}
		o.script = &out
	case stage.Voice:
		out, err := stage.DecodeVoiceOutput(data)
		if err != nil {
			return services.Wrap(services.ErrTransient, string(c), "decode stored result", "", err)
		}
		o.voice = &out
	case stage.Media:
		out, err := stage.DecodeMediaOutput(data)
		if err != nil {
			return services.Wrap(services.ErrTransient, string(c), "decode stored result", "", err)
		}
		o.media = &out
	case stage.VideoAI:
		out, err := stage.DecodeVideoAIOutput(data)
		if err != nil {
			return services.Wrap(services.ErrTransient, string(c), "decode stored result", "", err)
		}
		o.clips = &out
	case stage.Assembly:
		out, err := stage.DecodeAssemblyOutput(data)
		if err != nil {
			return services.Wrap(services.ErrTransient, string(c), "decode stored result", "", err)
		}
		o.assembly = &out
	}
	return nil
}

// inputFor builds the typed input for a step from the run config and the
// outputs accumulated so far. Missing prerequisites indicate state corruption
// and fail the run rather than calling an adapter with partial input.
func (o *stepOutputs) inputFor(c stage.Category, cfg videos.PipelineConfig, subtitleURL string) (stage.Input, error) {
	switch c {
	case stage.Script:
		return stage.ScriptInput{
			Prompt:                cfg.Prompt,
			TargetDurationSeconds: cfg.TargetDurationSeconds,
			SceneCount:            cfg.SceneCount,
			VisualStyle:           cfg.VisualStyle,
		}, nil
	case stage.Voice:
		if o.script == nil {
			return nil, services.Wrap(services.ErrTransient, string(c), "build input", "script output missing", nil)
		}
		return stage.VoiceInput{
			Narration:             Narration(*o.script),
			VoiceStyle:            cfg.VoiceStyle,
			TargetDurationSeconds: cfg.TargetDurationSeconds,
		}, nil
	case stage.Media:
		if o.script == nil {
			return nil, services.Wrap(services.ErrTransient, string(c), "build input", "script output missing", nil)
		}
		return stage.MediaInput{
			Scenes:      o.script.Scenes,
			AspectRatio: cfg.AspectRatio,
			VisualStyle: cfg.VisualStyle,
		}, nil
	case stage.VideoAI:
		if o.script == nil || o.media == nil {
			return nil, services.Wrap(services.ErrTransient, string(c), "build input", "earlier step output missing", nil)
		}
		return stage.VideoAIInput{
			Scenes:       o.script.Scenes,
			SourceAssets: o.media.Assets,
			AspectRatio:  cfg.AspectRatio,
			VisualStyle:  cfg.VisualStyle,
		}, nil
	case stage.Assembly:
		if o.voice == nil || o.media == nil {
			return nil, services.Wrap(services.ErrTransient, string(c), "build input", "earlier step output missing", nil)
		}
		input := stage.AssemblyInput{
			AudioURL:              o.voice.AudioURL,
			AudioDurationMS:       o.voice.DurationMS,
			Assets:                o.media.Assets,
			SubtitleURL:           subtitleURL,
			AspectRatio:           cfg.AspectRatio,
			TargetDurationSeconds: cfg.TargetDurationSeconds,
		}
		if o.clips != nil {
			input.Clips = o.clips.Clips
		}
		return input, nil
	}
	return nil, services.Wrap(services.ErrTransient, string(c), "build input", "unknown step", nil)
}
