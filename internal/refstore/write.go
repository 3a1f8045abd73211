package refstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/newsgate/internal/article"
	"github.com/roach88/newsgate/internal/classify"
)

// MergeDeliverable records the delivered article identities from a batch
// into the feed's reference set.
//
// Only the ids listed in deliverable are merged - blocked buckets are never
// persisted. For each merged article the title and the values of the given
// comparison fields are retained for duplicate detection. Writes are
// idempotent (ON CONFLICT DO NOTHING) and atomic per call.
//
// The delivery pipeline calls this after confirmed send, never before.
func (s *Store) MergeDeliverable(
	ctx context.Context,
	feedID string,
	batch []article.Article,
	deliverable []string,
	compareFields []string,
) error {
	if feedID == "" {
		return fmt.Errorf("merge deliverable: feed id is required")
	}
	if len(deliverable) == 0 {
		return nil
	}

	byID := make(map[string]article.Article, len(batch))
	for _, a := range batch {
		if id := a.ID(); id != "" {
			byID[id] = a
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("merge deliverable: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	seenAt := time.Now().UTC().Format(time.RFC3339)

	for _, id := range deliverable {
		a, ok := byID[id]
		if !ok {
			return fmt.Errorf("merge deliverable: id %q not present in batch", id)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO feed_articles (feed_id, article_id, title, seen_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT DO NOTHING
		`, feedID, id, a.Title(), seenAt); err != nil {
			return fmt.Errorf("merge deliverable: insert article %s: %w", id, err)
		}

		for _, field := range compareFields {
			v, ok := a.Field(field)
			if !ok {
				continue
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO feed_comparisons (feed_id, article_id, field, value)
				VALUES (?, ?, ?, ?)
				ON CONFLICT DO NOTHING
			`, feedID, id, field, v); err != nil {
				return fmt.Errorf("merge deliverable: insert comparison %s/%s: %w", id, field, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("merge deliverable: commit: %w", err)
	}

	return nil
}

// RecordRun appends an audit row for a classification run and returns the
// generated UUIDv7 run token.
func (s *Store) RecordRun(ctx context.Context, feedID string, result classify.Result) (string, error) {
	if feedID == "" {
		return "", fmt.Errorf("record run: feed id is required")
	}

	runID := uuid.Must(uuid.NewV7()).String()
	b := result.Buckets

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO classification_runs
		(id, feed_id, ran_at, batch_size,
		 old_count, blocked_title_count, blocked_date_count,
		 blocked_filter_count, deliverable_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		runID,
		feedID,
		time.Now().UTC().Format(time.RFC3339),
		len(result.Decisions),
		len(b.Old),
		len(b.BlockedByTitle),
		len(b.BlockedByDate),
		len(b.BlockedByFilter),
		len(b.Deliverable),
	)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}

	return runID, nil
}
