package refstore

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/roach88/newsgate/internal/article"
)

// RunSummary is one row from the classification-run audit log.
type RunSummary struct {
	ID              string `json:"id"`
	FeedID          string `json:"feed_id"`
	RanAt           string `json:"ran_at"`
	BatchSize       int    `json:"batch_size"`
	Old             int    `json:"old"`
	BlockedByTitle  int    `json:"blocked_by_title"`
	BlockedByDate   int    `json:"blocked_by_date"`
	BlockedByFilter int    `json:"blocked_by_filter"`
	Deliverable     int    `json:"deliverable"`
}

// Snapshot materializes the reference set for one feed.
//
// The result is a fresh, independent value: the engine treats it as an
// immutable snapshot for a single classification run, and concurrent runs
// for different feeds never share state.
func (s *Store) Snapshot(ctx context.Context, feedID string) (*article.ReferenceSet, error) {
	if feedID == "" {
		return nil, fmt.Errorf("snapshot: feed id is required")
	}

	ref := article.NewReferenceSet()

	query, args, err := sq.Select("article_id", "title").
		From("feed_articles").
		Where(sq.Eq{"feed_id": feedID}).
		OrderBy("article_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("snapshot: build article query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("snapshot: query articles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("snapshot: scan article: %w", err)
		}
		ref.Add(article.Article{article.FieldID: id, article.FieldTitle: title})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot: iterate articles: %w", err)
	}

	query, args, err = sq.Select("field", "value").
		From("feed_comparisons").
		Where(sq.Eq{"feed_id": feedID}).
		OrderBy("article_id", "field").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("snapshot: build comparison query: %w", err)
	}

	compRows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("snapshot: query comparisons: %w", err)
	}
	defer compRows.Close()

	for compRows.Next() {
		var field, value string
		if err := compRows.Scan(&field, &value); err != nil {
			return nil, fmt.Errorf("snapshot: scan comparison: %w", err)
		}
		ref.AddComparison(field, value)
	}
	if err := compRows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot: iterate comparisons: %w", err)
	}

	return ref, nil
}

// Runs returns the most recent classification-run audit rows for a feed,
// newest first. A limit of 0 means no limit.
func (s *Store) Runs(ctx context.Context, feedID string, limit int) ([]RunSummary, error) {
	builder := sq.Select(
		"id", "feed_id", "ran_at", "batch_size",
		"old_count", "blocked_title_count", "blocked_date_count",
		"blocked_filter_count", "deliverable_count",
	).
		From("classification_runs").
		Where(sq.Eq{"feed_id": feedID}).
		OrderBy("ran_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("runs: build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("runs: query: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(
			&r.ID, &r.FeedID, &r.RanAt, &r.BatchSize,
			&r.Old, &r.BlockedByTitle, &r.BlockedByDate,
			&r.BlockedByFilter, &r.Deliverable,
		); err != nil {
			return nil, fmt.Errorf("runs: scan: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("runs: iterate: %w", err)
	}

	return runs, nil
}
