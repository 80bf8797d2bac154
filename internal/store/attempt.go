package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// AttemptEvent is one graded lesson submission as seen by this client.
type AttemptEvent struct {
	ID             int
	CreatedAt      time.Time
	LessonID       int
	LessonTitle    string
	Score          float64
	RewardXP       int
	RewardCoins    int
	IdempotencyKey string
}

// AttemptRepo provides append and query access to attempt events.
type AttemptRepo interface {
	// Append records a graded submission.
	Append(ctx context.Context, ev AttemptEvent) error

	// Recent returns up to limit events, newest first.
	Recent(ctx context.Context, limit int) ([]AttemptEvent, error)
}

type attemptRepo struct {
	db *sql.DB
}

func (r *attemptRepo) Append(ctx context.Context, ev AttemptEvent) error {
	created := ev.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO attempt_events
			(created_at, lesson_id, lesson_title, score, reward_xp, reward_coins, idempotency_key)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		created, ev.LessonID, ev.LessonTitle, ev.Score, ev.RewardXP, ev.RewardCoins, ev.IdempotencyKey)
	if err != nil {
		return fmt.Errorf("append attempt event: %w", err)
	}
	return nil
}

func (r *attemptRepo) Recent(ctx context.Context, limit int) ([]AttemptEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at, lesson_id, lesson_title, score, reward_xp, reward_coins, idempotency_key
		 FROM attempt_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	defer rows.Close()

	var out []AttemptEvent
	for rows.Next() {
		var ev AttemptEvent
		if err := rows.Scan(&ev.ID, &ev.CreatedAt, &ev.LessonID, &ev.LessonTitle,
			&ev.Score, &ev.RewardXP, &ev.RewardCoins, &ev.IdempotencyKey); err != nil {
			return nil, fmt.Errorf("scan attempt event: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
