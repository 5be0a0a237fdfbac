package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"clipforge/internal/stage"
	"clipforge/internal/timing"
	"clipforge/internal/videos"
)

const maxRequestBody = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type videoResponse struct {
	ID           string                `json:"id"`
	OwnerID      string                `json:"owner_id"`
	Prompt       string                `json:"prompt"`
	Status       videos.Status         `json:"status"`
	Progress     float64               `json:"progress"`
	CurrentStep  string                `json:"current_step,omitempty"`
	StepStates   videos.StepStates     `json:"step_states"`
	ErrorMessage string                `json:"error_message,omitempty"`
	Config       videos.PipelineConfig `json:"config"`
	Outputs      videos.Outputs        `json:"outputs"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

func toVideoResponse(video *videos.Video) videoResponse {
	states := video.StepStates
	if states == nil {
		states = videos.StepStates{}
	}
	return videoResponse{
		ID:           video.ID,
		OwnerID:      video.OwnerID,
		Prompt:       video.Prompt,
		Status:       video.Status,
		Progress:     video.Progress,
		CurrentStep:  video.CurrentStep,
		StepStates:   states,
		ErrorMessage: video.ErrorMessage,
		Config:       video.Config,
		Outputs:      video.Outputs,
		CreatedAt:    video.CreatedAt,
		UpdatedAt:    video.UpdatedAt,
	}
}

type createRequest struct {
	OwnerID               string            `json:"owner_id"`
	Prompt                string            `json:"prompt"`
	TargetDurationSeconds int               `json:"target_duration_seconds,omitempty"`
	AspectRatio           string            `json:"aspect_ratio,omitempty"`
	SceneCount            int               `json:"scene_count,omitempty"`
	VoiceStyle            string            `json:"voice_style,omitempty"`
	VisualStyle           string            `json:"visual_style,omitempty"`
	SubtitlesEnabled      *bool             `json:"subtitles_enabled,omitempty"`
	SubtitleStyle         string            `json:"subtitle_style,omitempty"`
	ProviderOverrides     map[string]string `json:"provider_overrides,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.OwnerID) == "" || strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "owner_id and prompt are required")
		return
	}

	cfg := s.runConfig(req)
	if message := validateRunConfig(cfg); message != "" {
		writeError(w, http.StatusBadRequest, message)
		return
	}

	video, err := s.store.Create(r.Context(), req.OwnerID, cfg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toVideoResponse(video))
}

// runConfig applies daemon defaults to every field the request left unset.
func (s *Server) runConfig(req createRequest) videos.PipelineConfig {
	defaults := s.cfg.Pipeline
	cfg := videos.PipelineConfig{
		Prompt:                strings.TrimSpace(req.Prompt),
		TargetDurationSeconds: req.TargetDurationSeconds,
		AspectRatio:           strings.TrimSpace(req.AspectRatio),
		SceneCount:            req.SceneCount,
		VoiceStyle:            strings.TrimSpace(req.VoiceStyle),
		VisualStyle:           strings.TrimSpace(req.VisualStyle),
		SubtitlesEnabled:      defaults.SubtitlesEnabled,
		SubtitleStyle:         strings.TrimSpace(req.SubtitleStyle),
		ProviderOverrides:     req.ProviderOverrides,
	}
	if cfg.TargetDurationSeconds <= 0 {
		cfg.TargetDurationSeconds = defaults.TargetDurationSeconds
	}
	if cfg.AspectRatio == "" {
		cfg.AspectRatio = defaults.AspectRatio
	}
	if cfg.SceneCount <= 0 {
		cfg.SceneCount = defaults.SceneCount
	}
	if cfg.VoiceStyle == "" {
		cfg.VoiceStyle = defaults.VoiceStyle
	}
	if cfg.VisualStyle == "" {
		cfg.VisualStyle = defaults.VisualStyle
	}
	if cfg.SubtitleStyle == "" {
		cfg.SubtitleStyle = defaults.SubtitleStyle
	}
	if req.SubtitlesEnabled != nil {
		cfg.SubtitlesEnabled = *req.SubtitlesEnabled
	}
	return cfg
}

func validateRunConfig(cfg videos.PipelineConfig) string {
	switch cfg.AspectRatio {
	case "9:16", "16:9", "1:1", "4:5":
	default:
		return "aspect_ratio must be one of 9:16, 16:9, 1:1, 4:5"
	}
	if cfg.SubtitlesEnabled {
		if _, ok := timing.ParseStyleName(cfg.SubtitleStyle); !ok {
			return "unknown subtitle_style " + cfg.SubtitleStyle
		}
	}
	for key := range cfg.ProviderOverrides {
		if _, ok := stage.ParseCategory(key); !ok {
			return "unknown step category in provider_overrides: " + key
		}
	}
	return ""
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	video, ok := s.loadVideo(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toVideoResponse(video))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		list []*videos.Video
		err  error
	)
	if owner := strings.TrimSpace(r.URL.Query().Get("owner")); owner != "" {
		list, err = s.store.ListByOwner(r.Context(), owner)
	} else if statusParam := strings.TrimSpace(r.URL.Query().Get("status")); statusParam != "" {
		status, ok := videos.ParseStatus(statusParam)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown status "+statusParam)
			return
		}
		list, err = s.store.List(r.Context(), status)
	} else {
		list, err = s.store.List(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	responses := make([]videoResponse, 0, len(list))
	for _, video := range list {
		responses = append(responses, toVideoResponse(video))
	}
	writeJSON(w, http.StatusOK, map[string]any{"videos": responses})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	counts := make(map[string]int, len(stats))
	for _, status := range videos.AllStatuses() {
		counts[string(status)] = stats[status]
	}
	writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	video, ok := s.loadVideo(w, r)
	if !ok {
		return
	}
	if video.Status.IsTerminal() {
		writeError(w, http.StatusConflict, "video is already "+string(video.Status))
		return
	}
	if err := s.state.CancelPipeline(r.Context(), video, "cancelled by owner"); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toVideoResponse(video))
}

type retryRequest struct {
	ProviderOverrides map[string]string `json:"provider_overrides,omitempty"`
}

// handleRetry requeues a failed video. Failed steps are reset to pending so
// the run resumes at the first unfinished step; completed steps keep their
// results. Provider overrides in the request replace the stored ones, which
// is how an operator retries a run against a different vendor.
func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	var req retryRequest
	if r.ContentLength != 0 {
		if !decodeJSON(w, r, &req) {
			return
		}
	}

	video, ok := s.loadVideo(w, r)
	if !ok {
		return
	}
	if video.Status != videos.StatusFailed && video.Status != videos.StatusCancelled {
		writeError(w, http.StatusConflict, "only failed or cancelled videos can be retried")
		return
	}

	for key := range req.ProviderOverrides {
		if _, valid := stage.ParseCategory(key); !valid {
			writeError(w, http.StatusBadRequest, "unknown step category in provider_overrides: "+key)
			return
		}
	}
	if req.ProviderOverrides != nil {
		video.Config.ProviderOverrides = req.ProviderOverrides
	}

	for _, c := range stage.Order() {
		state := video.StepState(c)
		if state.Status == videos.StepFailed || state.Status == videos.StepProcessing {
			video.SetStepState(c, videos.StepState{Status: videos.StepPending})
		}
	}
	video.Status = videos.StatusPending
	video.ErrorMessage = ""
	video.CurrentStep = ""

	if err := s.store.Update(r.Context(), video); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toVideoResponse(video))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "videoID")
	deleted, err := s.store.Delete(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "video "+id+" not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) loadVideo(w http.ResponseWriter, r *http.Request) (*videos.Video, bool) {
	id := chi.URLParam(r, "videoID")
	video, err := s.store.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if video == nil {
		writeError(w, http.StatusNotFound, "video "+id+" not found")
		return nil, false
	}
	return video, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, out any) bool {
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "request body is required")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
