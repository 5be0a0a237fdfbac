package videos

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Create inserts a new pending video for the given owner and run config.
func (s *Store) Create(ctx context.Context, ownerID string, cfg PipelineConfig) (*Video, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, errors.New("owner id is required")
	}
	if strings.TrimSpace(cfg.Prompt) == "" {
		return nil, errors.New("prompt is required")
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	id := uuid.NewString()

	configJSON, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode pipeline config: %w", err)
	}
	stepStates, err := EncodeStepStates(nil)
	if err != nil {
		return nil, err
	}

	_, err = s.execWithRetry(
		ctx,
		`INSERT INTO videos (
            id, owner_id, prompt, status, progress, step_states, config_json,
            created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		ownerID,
		cfg.Prompt,
		StatusPending,
		0.0,
		stepStates,
		string(configJSON),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches a video by identifier. A missing row returns (nil, nil) so
// callers can distinguish deletion from storage failure.
func (s *Store) GetByID(ctx context.Context, id string) (*Video, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = ?`, id)
	video, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return video, nil
}

// Update persists changes to an existing video in one statement.
func (s *Store) Update(ctx context.Context, video *Video) error {
	if video == nil {
		return errors.New("video is nil")
	}
	video.UpdatedAt = time.Now().UTC()

	stepStates, err := EncodeStepStates(video.StepStates)
	if err != nil {
		return err
	}
	configJSON, err := json.Marshal(video.Config)
	if err != nil {
		return fmt.Errorf("encode pipeline config: %w", err)
	}

	res, err := s.execWithRetry(
		ctx,
		`UPDATE videos
         SET owner_id = ?, prompt = ?, status = ?, progress = ?, current_step = ?,
             step_states = ?, error_message = ?, generation_started_at = ?,
             last_step_updated_at = ?, config_json = ?, video_url = ?,
             thumbnail_url = ?, subtitle_url = ?, duration = ?, file_size = ?,
             resolution = ?, updated_at = ?
         WHERE id = ?`,
		video.OwnerID,
		video.Prompt,
		video.Status,
		video.Progress,
		nullableString(video.CurrentStep),
		stepStates,
		nullableString(video.ErrorMessage),
		nullableTime(video.GenerationStartedAt),
		nullableTime(video.LastStepUpdatedAt),
		string(configJSON),
		nullableString(video.Outputs.VideoURL),
		nullableString(video.Outputs.ThumbnailURL),
		nullableString(video.Outputs.SubtitleURL),
		nullableFloat(video.Outputs.DurationSeconds),
		nullableInt64(video.Outputs.FileSizeBytes),
		nullableString(video.Outputs.Resolution),
		video.UpdatedAt.Format(time.RFC3339Nano),
		video.ID,
	)
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("video %s no longer exists", video.ID)
	}
	return nil
}

// List returns videos filtered by status set (or all when none is given),
// newest first.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos`
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			placeholders[i] = "?"
			args = append(args, status)
		}
		query += ` WHERE status IN (` + strings.Join(placeholders, ",") + `)`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var results []*Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, video)
	}
	return results, rows.Err()
}

// ListByOwner returns an owner's videos, newest first.
func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]*Video, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+videoColumns+` FROM videos WHERE owner_id = ? ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list owner videos: %w", err)
	}
	defer rows.Close()

	var results []*Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, video)
	}
	return results, rows.Err()
}

// NextPending returns the oldest pending video, or nil when the queue is idle.
func (s *Store) NextPending(ctx context.Context) (*Video, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+videoColumns+` FROM videos WHERE status = ? ORDER BY created_at LIMIT 1`,
		StatusPending,
	)
	video, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("next pending video: %w", err)
	}
	return video, nil
}

// CountProcessingForOwner counts an owner's in-flight runs, excluding the
// identified video. The concurrency guard uses this before starting a fresh
// run.
func (s *Store) CountProcessingForOwner(ctx context.Context, ownerID, excludeID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM videos WHERE owner_id = ? AND status = ? AND id != ?`,
		ownerID,
		StatusProcessing,
		excludeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count processing videos: %w", err)
	}
	return count, nil
}

// Delete removes a video, returning whether a row was deleted.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM videos WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete video: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Stats reports per-status video counts.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM videos GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("video stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var (
			statusStr string
			count     int
		)
		if err := rows.Scan(&statusStr, &count); err != nil {
			return nil, err
		}
		stats[Status(statusStr)] = count
	}
	return stats, rows.Err()
}
