package videos

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const videoColumns = "id, owner_id, prompt, status, progress, current_step, step_states, error_message, generation_started_at, last_step_updated_at, config_json, video_url, thumbnail_url, subtitle_url, duration, file_size, resolution, created_at, updated_at"

func scanVideo(scanner interface{ Scan(dest ...any) error }) (*Video, error) {
	var (
		id             string
		ownerID        string
		prompt         string
		statusStr      string
		progress       sql.NullFloat64
		currentStep    sql.NullString
		stepStates     sql.NullString
		errorMessage   sql.NullString
		startedRaw     sql.NullString
		lastStepRaw    sql.NullString
		configJSON     sql.NullString
		videoURL       sql.NullString
		thumbnailURL   sql.NullString
		subtitleURL    sql.NullString
		duration       sql.NullFloat64
		fileSize       sql.NullInt64
		resolution     sql.NullString
		createdRaw     sql.NullString
		updatedRaw     sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&ownerID,
		&prompt,
		&statusStr,
		&progress,
		&currentStep,
		&stepStates,
		&errorMessage,
		&startedRaw,
		&lastStepRaw,
		&configJSON,
		&videoURL,
		&thumbnailURL,
		&subtitleURL,
		&duration,
		&fileSize,
		&resolution,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	video := &Video{
		ID:           id,
		OwnerID:      ownerID,
		Prompt:       prompt,
		Status:       Status(statusStr),
		Progress:     progress.Float64,
		CurrentStep:  currentStep.String,
		ErrorMessage: errorMessage.String,
		Outputs: Outputs{
			VideoURL:        videoURL.String,
			ThumbnailURL:    thumbnailURL.String,
			SubtitleURL:     subtitleURL.String,
			DurationSeconds: duration.Float64,
			FileSizeBytes:   fileSize.Int64,
			Resolution:      resolution.String,
		},
	}

	states, err := DecodeStepStates(stepStates.String)
	if err != nil {
		return nil, err
	}
	video.StepStates = states

	if configJSON.Valid && configJSON.String != "" {
		if err := json.Unmarshal([]byte(configJSON.String), &video.Config); err != nil {
			return nil, fmt.Errorf("decode pipeline config: %w", err)
		}
	}

	if started, err := parseTimeString(startedRaw.String); err == nil {
		video.GenerationStartedAt = &started
	}
	if lastStep, err := parseTimeString(lastStepRaw.String); err == nil {
		video.LastStepUpdatedAt = &lastStep
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		video.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		video.UpdatedAt = updated
	}
	return video, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func nullableFloat(value float64) any {
	if value == 0 {
		return nil
	}
	return value
}

func nullableInt64(value int64) any {
	if value == 0 {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
