package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "investipet.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAttemptRepo_AppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	events := []AttemptEvent{
		{LessonID: 1, LessonTitle: "Budgeting Basics", Score: 80, RewardXP: 40, RewardCoins: 50, IdempotencyKey: "k1"},
		{LessonID: 2, LessonTitle: "What Is a Stock?", Score: 100, RewardXP: 60, RewardCoins: 75, IdempotencyKey: "k2"},
	}
	for _, ev := range events {
		if err := repo.Append(ctx, ev); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].LessonID != 2 {
		t.Errorf("order: got lesson %d first, want newest (2)", got[0].LessonID)
	}
	if got[1].Score != 80 || got[1].IdempotencyKey != "k1" {
		t.Errorf("row fields: got %+v", got[1])
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("created_at not populated")
	}
}

func TestAttemptRepo_RecentLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	for i := range 5 {
		ev := AttemptEvent{
			CreatedAt:      time.Now().UTC(),
			LessonID:       i + 1,
			LessonTitle:    "Lesson",
			Score:          float64(i * 20),
			IdempotencyKey: "k",
		}
		if err := repo.Append(ctx, ev); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := repo.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d events, want 3", len(got))
	}
}

func TestOpen_Reentrant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "investipet.db")
	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	s1.Close()

	// Re-opening an existing database must not fail on migration.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	s2.Close()
}
