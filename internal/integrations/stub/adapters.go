package stub

import (
	"context"
	"fmt"
	"strings"

	"clipforge/internal/stage"
	"clipforge/internal/timing"
)

// msPerWord approximates a 150 words-per-minute narration pace.
const msPerWord = 400

type scriptAdapter struct{}

func (scriptAdapter) Category() stage.Category { return stage.Script }
func (scriptAdapter) Provider() string         { return providerName }

func (scriptAdapter) Execute(ctx context.Context, input stage.Input) (stage.Result, error) {
	in, ok := input.(stage.ScriptInput)
	if !ok {
		return stage.Result{}, fmt.Errorf("script adapter: unexpected input %T", input)
	}
	if err := ctx.Err(); err != nil {
		return stage.Result{}, err
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return stage.Fail("prompt is empty", nil), nil
	}

	sceneCount := in.SceneCount
	if sceneCount <= 0 {
		sceneCount = 3
	}
	scenes := make([]stage.SceneLine, sceneCount)
	for i := range scenes {
		scenes[i] = stage.SceneLine{
			Narration:  fmt.Sprintf("Scene %d explores %s in more depth.", i+1, strings.TrimSpace(in.Prompt)),
			VisualDesc: fmt.Sprintf("%s visual for part %d of %s", in.VisualStyle, i+1, strings.TrimSpace(in.Prompt)),
		}
	}
	return stage.Succeed(stage.ScriptOutput{
		Title:        titleCase(in.Prompt),
		Hook:         fmt.Sprintf("Here is what nobody tells you about %s.", strings.TrimSpace(in.Prompt)),
		Scenes:       scenes,
		CallToAction: "Follow for more.",
	})
}

type voiceAdapter struct{}

func (voiceAdapter) Category() stage.Category { return stage.Voice }
func (voiceAdapter) Provider() string         { return providerName }

func (voiceAdapter) Execute(ctx context.Context, input stage.Input) (stage.Result, error) {
	in, ok := input.(stage.VoiceInput)
	if !ok {
		return stage.Result{}, fmt.Errorf("voice adapter: unexpected input %T", input)
	}
	if err := ctx.Err(); err != nil {
		return stage.Result{}, err
	}
	words := strings.Fields(in.Narration)
	if len(words) == 0 {
		return stage.Fail("narration is empty", nil), nil
	}

	units := make([]timing.Unit, len(words))
	var cursor int64
	for i, word := range words {
		units[i] = timing.Unit{Text: word, StartMS: cursor, EndMS: cursor + msPerWord}
		cursor += msPerWord
	}
	result, err := stage.Succeed(stage.VoiceOutput{
		AudioURL:          fmt.Sprintf("stub://voice/%s.mp3", fingerprint(in.Narration, in.VoiceStyle)),
		DurationMS:        cursor,
		Format:            "mp3",
		TimingGranularity: "word",
	})
	if err != nil {
		return stage.Result{}, err
	}
	result.TimingSegments = units
	return result, nil
}

type mediaAdapter struct{}

func (mediaAdapter) Category() stage.Category { return stage.Media }
func (mediaAdapter) Provider() string         { return providerName }

func (mediaAdapter) Execute(ctx context.Context, input stage.Input) (stage.Result, error) {
	in, ok := input.(stage.MediaInput)
	if !ok {
		return stage.Result{}, fmt.Errorf("media adapter: unexpected input %T", input)
	}
	if err := ctx.Err(); err != nil {
		return stage.Result{}, err
	}
	if len(in.Scenes) == 0 {
		return stage.Fail("no scenes to source media for", nil), nil
	}

	assets := make([]stage.MediaAsset, len(in.Scenes))
	for i, scene := range in.Scenes {
		assets[i] = stage.MediaAsset{
			SceneIndex: i,
			URL:        fmt.Sprintf("stub://media/%s-%d.jpg", fingerprint(scene.VisualDesc, in.VisualStyle), i),
			Kind:       "image",
		}
	}
	return stage.Succeed(stage.MediaOutput{Assets: assets})
}

type videoAIAdapter struct{}

func (videoAIAdapter) Category() stage.Category { return stage.VideoAI }
func (videoAIAdapter) Provider() string         { return providerName }

func (videoAIAdapter) Execute(ctx context.Context, input stage.Input) (stage.Result, error) {
	in, ok := input.(stage.VideoAIInput)
	if !ok {
		return stage.Result{}, fmt.Errorf("video_ai adapter: unexpected input %T", input)
	}
	if err := ctx.Err(); err != nil {
		return stage.Result{}, err
	}

	clips := make([]stage.MediaAsset, len(in.SourceAssets))
	for i, asset := range in.SourceAssets {
		clips[i] = stage.MediaAsset{
			SceneIndex: asset.SceneIndex,
			URL:        fmt.Sprintf("stub://clips/%s-%d.mp4", fingerprint(asset.URL), asset.SceneIndex),
			Kind:       "clip",
			DurationMS: 3000,
		}
	}
	return stage.Succeed(stage.VideoAIOutput{Clips: clips})
}

type assemblyAdapter struct{}

func (assemblyAdapter) Category() stage.Category { return stage.Assembly }
func (assemblyAdapter) Provider() string         { return providerName }

func (assemblyAdapter) Execute(ctx context.Context, input stage.Input) (stage.Result, error) {
	in, ok := input.(stage.AssemblyInput)
	if !ok {
		return stage.Result{}, fmt.Errorf("assembly adapter: unexpected input %T", input)
	}
	if err := ctx.Err(); err != nil {
		return stage.Result{}, err
	}
	if in.AudioURL == "" {
		return stage.Fail("assembly requires narration audio", nil), nil
	}
	if len(in.Assets) == 0 && len(in.Clips) == 0 {
		return stage.Fail("assembly requires visual assets", nil), nil
	}

	key := fingerprint(in.AudioURL, in.SubtitleURL, in.AspectRatio)
	return stage.Succeed(stage.AssemblyOutput{
		VideoURL:        fmt.Sprintf("stub://video/%s.mp4", key),
		ThumbnailURL:    fmt.Sprintf("stub://video/%s.jpg", key),
		DurationSeconds: float64(in.AudioDurationMS) / 1000,
		FileSizeBytes:   in.AudioDurationMS * 256,
		Resolution:      resolutionFor(in.AspectRatio),
	})
}

func resolutionFor(aspect string) string {
	switch aspect {
	case "16:9":
		return "1920x1080"
	case "1:1":
		return "1080x1080"
	case "4:5":
		return "1080x1350"
	default:
		return "1080x1920"
	}
}
