package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ishitzzz/playlist-forge/internal/engine"
)

func (s *Server) insertBuild(ctx context.Context, rec *BuildRecord) error {
	topicsJSON, err := json.Marshal(rec.Topics)
	if err != nil {
		return fmt.Errorf("marshal topics: %w", err)
	}
	prefsJSON, err := json.Marshal(rec.Preferences)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	gapsJSON, err := json.Marshal(rec.GapsFailed)
	if err != nil {
		return fmt.Errorf("marshal gaps: %w", err)
	}
	var anchorJSON []byte
	if rec.Anchor != nil {
		anchorJSON, err = json.Marshal(rec.Anchor)
		if err != nil {
			return fmt.Errorf("marshal anchor: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO builds (id, subject, topics, preferences, gaps_failed, anchor, total_duration_seconds, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, rec.ID, rec.Subject, topicsJSON, prefsJSON, gapsJSON, anchorJSON, rec.TotalDurationSeconds, rec.CreatedAt); err != nil {
		return err
	}

	for _, e := range rec.Entries {
		if _, err := tx.Exec(ctx, `
			INSERT INTO build_entries (build_id, position, item_id, title, channel_name, duration_seconds, duration_display, topic_matched, source)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`, rec.ID, e.Position, e.ItemID, e.Title, e.ChannelName, e.DurationSeconds, e.DurationDisplay, e.TopicMatched, e.Source); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// getBuild returns pgx.ErrNoRows unwrapped so handlers can map it to 404.
func (s *Server) getBuild(ctx context.Context, id string) (*BuildRecord, error) {
	var (
		rec        BuildRecord
		topicsJSON []byte
		prefsJSON  []byte
		gapsJSON   []byte
		anchorJSON []byte
	)
	err := s.db.QueryRow(ctx, `
		SELECT id, subject, topics, preferences, gaps_failed, anchor, total_duration_seconds, created_at
		FROM builds
		WHERE id = $1
	`, id).Scan(
		&rec.ID,
		&rec.Subject,
		&topicsJSON,
		&prefsJSON,
		&gapsJSON,
		&anchorJSON,
		&rec.TotalDurationSeconds,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(topicsJSON, &rec.Topics); err != nil {
		return nil, fmt.Errorf("unmarshal topics: %w", err)
	}
	if err := json.Unmarshal(prefsJSON, &rec.Preferences); err != nil {
		return nil, fmt.Errorf("unmarshal preferences: %w", err)
	}
	if err := json.Unmarshal(gapsJSON, &rec.GapsFailed); err != nil {
		return nil, fmt.Errorf("unmarshal gaps: %w", err)
	}
	if len(anchorJSON) > 0 {
		rec.Anchor = &engine.AnchorRef{}
		if err := json.Unmarshal(anchorJSON, rec.Anchor); err != nil {
			return nil, fmt.Errorf("unmarshal anchor: %w", err)
		}
	}

	rows, err := s.db.Query(ctx, `
		SELECT position, item_id, title, channel_name, duration_seconds, duration_display, topic_matched, source
		FROM build_entries
		WHERE build_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rec.Entries = []engine.PlaylistEntry{}
	for rows.Next() {
		var e engine.PlaylistEntry
		if err := rows.Scan(
			&e.Position,
			&e.ItemID,
			&e.Title,
			&e.ChannelName,
			&e.DurationSeconds,
			&e.DurationDisplay,
			&e.TopicMatched,
			&e.Source,
		); err != nil {
			return nil, err
		}
		rec.Entries = append(rec.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &rec, nil
}

func (s *Server) listBuilds(ctx context.Context, limit int) ([]BuildSummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT b.id, b.subject, b.total_duration_seconds, b.created_at,
		       (SELECT COUNT(*) FROM build_entries e WHERE e.build_id = b.id)
		FROM builds b
		ORDER BY b.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	builds := []BuildSummary{}
	for rows.Next() {
		var b BuildSummary
		if err := rows.Scan(&b.ID, &b.Subject, &b.TotalDurationSeconds, &b.CreatedAt, &b.EntryCount); err != nil {
			return nil, err
		}
		builds = append(builds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return builds, nil
}
