package stub_test

import (
	"context"
	"testing"

	"clipforge/internal/integrations"
	"clipforge/internal/integrations/stub"
	"clipforge/internal/stage"
)

func mustAdapter(t *testing.T, registry *integrations.Registry, category stage.Category) stage.Adapter {
	t.Helper()
	adapter, ok := registry.Lookup(category, "stub")
	if !ok {
		t.Fatalf("no stub adapter for %s", category)
	}
	return adapter
}

func TestFullStubChain(t *testing.T) {
	registry := integrations.NewRegistry()
	if err := stub.Register(registry); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	ctx := context.Background()

	scriptResult, err := mustAdapter(t, registry, stage.Script).Execute(ctx, stage.ScriptInput{
		Prompt:                "the history of coffee",
		TargetDurationSeconds: 45,
		SceneCount:            3,
		VisualStyle:           "cinematic",
	})
	if err != nil || !scriptResult.Success {
		t.Fatalf("script step failed: %v %#v", err, scriptResult)
	}
	script, err := stage.DecodeScriptOutput(scriptResult.Data)
	if err != nil {
		t.Fatalf("decode script output: %v", err)
	}
	if len(script.Scenes) != 3 || script.Hook == "" || script.Title == "" {
		t.Fatalf("unexpected script output: %#v", script)
	}

	voiceResult, err := mustAdapter(t, registry, stage.Voice).Execute(ctx, stage.VoiceInput{
		Narration:  script.Hook + " " + script.Scenes[0].Narration,
		VoiceStyle: "narrative",
	})
	if err != nil || !voiceResult.Success {
		t.Fatalf("voice step failed: %v %#v", err, voiceResult)
	}
	voice, err := stage.DecodeVoiceOutput(voiceResult.Data)
	if err != nil {
		t.Fatalf("decode voice output: %v", err)
	}
	if voice.TimingGranularity != "word" || len(voiceResult.TimingSegments) == 0 {
		t.Fatalf("expected word timing units, got %#v", voiceResult)
	}
	last := voiceResult.TimingSegments[len(voiceResult.TimingSegments)-1]
	if voice.DurationMS != last.EndMS {
		t.Fatalf("duration %d should match final unit end %d", voice.DurationMS, last.EndMS)
	}

	mediaResult, err := mustAdapter(t, registry, stage.Media).Execute(ctx, stage.MediaInput{
		Scenes:      script.Scenes,
		AspectRatio: "9:16",
		VisualStyle: "cinematic",
	})
	if err != nil || !mediaResult.Success {
		t.Fatalf("media step failed: %v %#v", err, mediaResult)
	}
	media, err := stage.DecodeMediaOutput(mediaResult.Data)
	if err != nil {
		t.Fatalf("decode media output: %v", err)
	}
	if len(media.Assets) != len(script.Scenes) {
		t.Fatalf("expected one asset per scene, got %d", len(media.Assets))
	}

	clipResult, err := mustAdapter(t, registry, stage.VideoAI).Execute(ctx, stage.VideoAIInput{
		Scenes:       script.Scenes,
		SourceAssets: media.Assets,
		AspectRatio:  "9:16",
	})
	if err != nil || !clipResult.Success {
		t.Fatalf("video_ai step failed: %v %#v", err, clipResult)
	}
	clips, err := stage.DecodeVideoAIOutput(clipResult.Data)
	if err != nil {
		t.Fatalf("decode video_ai output: %v", err)
	}

	assemblyResult, err := mustAdapter(t, registry, stage.Assembly).Execute(ctx, stage.AssemblyInput{
		AudioURL:        voice.AudioURL,
		AudioDurationMS: voice.DurationMS,
		Assets:          media.Assets,
		Clips:           clips.Clips,
		AspectRatio:     "9:16",
	})
	if err != nil || !assemblyResult.Success {
		t.Fatalf("assembly step failed: %v %#v", err, assemblyResult)
	}
	final, err := stage.DecodeAssemblyOutput(assemblyResult.Data)
	if err != nil {
		t.Fatalf("decode assembly output: %v", err)
	}
	if final.VideoURL == "" || final.Resolution != "1080x1920" {
		t.Fatalf("unexpected assembly output: %#v", final)
	}
}

func TestStubFailuresUseResultEnvelope(t *testing.T) {
	registry := integrations.NewRegistry()
	if err := stub.Register(registry); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	ctx := context.Background()

	result, err := mustAdapter(t, registry, stage.Script).Execute(ctx, stage.ScriptInput{})
	if err != nil {
		t.Fatalf("expected envelope failure, got transport error %v", err)
	}
	if result.Success || result.Error == "" {
		t.Fatalf("expected failed result with message, got %#v", result)
	}

	result, err = mustAdapter(t, registry, stage.Assembly).Execute(ctx, stage.AssemblyInput{AudioURL: "stub://a.mp3"})
	if err != nil {
		t.Fatalf("expected envelope failure, got transport error %v", err)
	}
	if result.Success {
		t.Fatal("expected assembly without assets to fail")
	}
}

func TestStubIsDeterministic(t *testing.T) {
	registry := integrations.NewRegistry()
	if err := stub.Register(registry); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	input := stage.VoiceInput{Narration: "One two three.", VoiceStyle: "calm"}

	first, err := mustAdapter(t, registry, stage.Voice).Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	second, err := mustAdapter(t, registry, stage.Voice).Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if first.Data["audio_url"] != second.Data["audio_url"] {
		t.Fatalf("expected stable audio URL, got %v and %v", first.Data["audio_url"], second.Data["audio_url"])
	}
}
