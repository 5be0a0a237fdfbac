package stage

// SceneLine is one scripted scene: what the narrator says over it and what
// the viewer should see.
type SceneLine struct {
	Narration  string `json:"narration"`
	VisualDesc string `json:"visual_desc"`
}

// MediaAsset references one generated or sourced visual asset.
type MediaAsset struct {
	SceneIndex int    `json:"scene_index"`
	URL        string `json:"url"`
	Kind       string `json:"kind"` // image or clip
	DurationMS int64  `json:"duration_ms,omitempty"`
}

// ScriptInput is supplied to script adapters.
type ScriptInput struct {
	Prompt                string `json:"prompt"`
	TargetDurationSeconds int    `json:"target_duration_seconds"`
	SceneCount            int    `json:"scene_count"`
	VisualStyle           string `json:"visual_style"`
}

// ScriptOutput is the payload a script adapter must return.
type ScriptOutput struct {
	Title        string      `json:"title"`
	Hook         string      `json:"hook"`
	Scenes       []SceneLine `json:"scenes"`
	CallToAction string      `json:"call_to_action"`
}

// VoiceInput is supplied to voice adapters.
type VoiceInput struct {
	Narration             string `json:"narration"`
	VoiceStyle            string `json:"voice_style"`
	TargetDurationSeconds int    `json:"target_duration_seconds"`
}

// VoiceOutput is the payload a voice adapter must return. Fine-grained
// timing, when available, travels in the Result envelope's TimingSegments;
// TimingGranularity says how to aggregate it.
type VoiceOutput struct {
	AudioURL          string `json:"audio_url"`
	DurationMS        int64  `json:"duration_ms"`
	Format            string `json:"format,omitempty"`
	TimingGranularity string `json:"timing_granularity,omitempty"` // word or character
}

// MediaInput is supplied to media adapters.
type MediaInput struct {
	Scenes      []SceneLine `json:"scenes"`
	AspectRatio string      `json:"aspect_ratio"`
	VisualStyle string      `json:"visual_style"`
}

// MediaOutput is the payload a media adapter must return.
type MediaOutput struct {
	Assets []MediaAsset `json:"assets"`
}

// VideoAIInput is supplied to the optional AI-video adapters.
type VideoAIInput struct {
	Scenes       []SceneLine  `json:"scenes"`
	SourceAssets []MediaAsset `json:"source_assets"`
	AspectRatio  string       `json:"aspect_ratio"`
	VisualStyle  string       `json:"visual_style"`
}

// VideoAIOutput is the payload an AI-video adapter must return.
type VideoAIOutput struct {
	Clips []MediaAsset `json:"clips"`
}

// AssemblyInput is supplied to assembly adapters: the accumulated scene,
// media, audio, and subtitle references of the run.
type AssemblyInput struct {
	AudioURL              string       `json:"audio_url"`
	AudioDurationMS       int64        `json:"audio_duration_ms"`
	Assets                []MediaAsset `json:"assets"`
	Clips                 []MediaAsset `json:"clips,omitempty"`
	SubtitleURL           string       `json:"subtitle_url,omitempty"`
	AspectRatio           string       `json:"aspect_ratio"`
	TargetDurationSeconds int          `json:"target_duration_seconds"`
}

// AssemblyOutput is the payload an assembly adapter must return.
type AssemblyOutput struct {
	VideoURL        string  `json:"video_url"`
	ThumbnailURL    string  `json:"thumbnail_url,omitempty"`
	DurationSeconds float64 `json:"duration_seconds"`
	FileSizeBytes   int64   `json:"file_size_bytes,omitempty"`
	Resolution      string  `json:"resolution,omitempty"`
}

// DecodeScriptOutput decodes a stored script result payload.
func DecodeScriptOutput(data map[string]any) (ScriptOutput, error) {
	var out ScriptOutput
	err := DecodeData(data, &out)
	return out, err
}

// DecodeVoiceOutput decodes a stored voice result payload.
func DecodeVoiceOutput(data map[string]any) (VoiceOutput, error) {
	var out VoiceOutput
	err := DecodeData(data, &out)
	return out, err
}

// DecodeMediaOutput decodes a stored media result payload.
func DecodeMediaOutput(data map[string]any) (MediaOutput, error) {
	var out MediaOutput
	err := DecodeData(data, &out)
	return out, err
}

// DecodeVideoAIOutput decodes a stored video_ai result payload.
func DecodeVideoAIOutput(data map[string]any) (VideoAIOutput, error) {
	var out VideoAIOutput
	err := DecodeData(data, &out)
	return out, err
}

// DecodeAssemblyOutput decodes a stored assembly result payload.
func DecodeAssemblyOutput(data map[string]any) (AssemblyOutput, error) {
	var out AssemblyOutput
	err := DecodeData(data, &out)
	return out, err
}
