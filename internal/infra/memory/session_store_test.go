package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"factcheck-quiz-service/internal/domain"
)

func sampleState(id string) *domain.SessionState {
	result := domain.ClassificationResult{
		Label:       domain.LabelFake,
		Confidence:  0.8,
		Explanation: "made up",
		Quiz: []domain.QuizQuestion{
			{Question: "Who said it?", Options: []string{"a", "b", "c"}, Answer: "b"},
		},
	}
	return &domain.SessionState{ID: id, Result: &result, Quiz: result.CloneQuiz(), Streak: 2, LastVisit: "2024-11-20"}
}

func TestSessionStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(time.Minute)

	if _, err := store.Get(ctx, "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Save(ctx, sampleState("s1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Streak != 2 || got.Result == nil || got.Result.Label != domain.LabelFake || len(got.Quiz) != 1 {
		t.Fatalf("unexpected state %+v", got)
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session removed, got %v", err)
	}
}

func TestSessionStoreDoesNotAlias(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(0)
	state := sampleState("s1")
	_ = store.Save(ctx, state)

	selected := "a"
	state.Quiz[0].Selected = &selected
	state.Score = 5

	got, _ := store.Get(ctx, "s1")
	if got.Score != 0 || got.Quiz[0].Selected != nil {
		t.Fatalf("saved state changed through caller copy: %+v", got)
	}

	got.Result.Quiz[0].Answer = "changed"
	again, _ := store.Get(ctx, "s1")
	if again.Result.Quiz[0].Answer != "b" {
		t.Fatalf("stored result changed through returned copy")
	}
}

func TestSessionStoreExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)
	store := NewSessionStoreWithClock(time.Hour, func() time.Time { return now })

	_ = store.Save(ctx, sampleState("s1"))
	now = now.Add(59 * time.Minute)
	if _, err := store.Get(ctx, "s1"); err != nil {
		t.Fatalf("expected live session, got %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired session evicted, have %d", store.Len())
	}
}

func TestSessionStoreSaveRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)
	store := NewSessionStoreWithClock(time.Hour, func() time.Time { return now })

	_ = store.Save(ctx, sampleState("s1"))
	_ = store.Save(ctx, sampleState("s2"))
	now = now.Add(50 * time.Minute)
	_ = store.Save(ctx, sampleState("s1"))
	now = now.Add(20 * time.Minute)

	if _, err := store.Get(ctx, "s1"); err != nil {
		t.Fatalf("expected refreshed session, got %v", err)
	}
	if _, err := store.Get(ctx, "s2"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected s2 expired, got %v", err)
	}
}
