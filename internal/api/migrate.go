package api

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS builds (
          id                     uuid PRIMARY KEY,
          subject                TEXT NOT NULL,
          topics                 JSONB NOT NULL DEFAULT '[]',
          preferences            JSONB NOT NULL DEFAULT '{}',
          gaps_failed            JSONB NOT NULL DEFAULT '[]',
          anchor                 JSONB,
          total_duration_seconds INT NOT NULL DEFAULT 0,
          created_at             TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `); err != nil {
		log.Printf("playlist-forge: migrate builds: %v", err)
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS build_entries (
          build_id         uuid NOT NULL REFERENCES builds(id) ON DELETE CASCADE,
          position         INT NOT NULL,
          item_id          TEXT NOT NULL,
          title            TEXT NOT NULL,
          channel_name     TEXT NOT NULL DEFAULT '',
          duration_seconds INT NOT NULL DEFAULT 0,
          duration_display TEXT NOT NULL DEFAULT '',
          topic_matched    TEXT NOT NULL DEFAULT '',
          source           TEXT NOT NULL DEFAULT '',
          PRIMARY KEY (build_id, position)
      )
    `); err != nil {
		log.Printf("playlist-forge: migrate build_entries: %v", err)
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE INDEX IF NOT EXISTS idx_builds_created_at
      ON builds(created_at DESC)
    `); err != nil {
		return err
	}

	return nil
}
