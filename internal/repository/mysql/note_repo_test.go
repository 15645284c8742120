package mysql

import (
	"context"
	"testing"
	"time"

	"llmboard/internal/model"
)

func TestNotesOrderedByUpvotesThenRecency(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := &NoteRepository{DB: db}

	old := time.Now().Add(-time.Hour)
	mustCreate(t, db, &model.CommunityNote{BenchmarkID: 1, UserID: "u1", Content: "older high", Upvotes: 5, CreatedAt: old})
	mustCreate(t, db, &model.CommunityNote{BenchmarkID: 1, UserID: "u2", Content: "newer high", Upvotes: 5, CreatedAt: time.Now()})
	mustCreate(t, db, &model.CommunityNote{BenchmarkID: 1, UserID: "u3", Content: "low", Upvotes: 1, CreatedAt: time.Now()})
	mustCreate(t, db, &model.CommunityNote{BenchmarkID: 2, UserID: "u4", Content: "other benchmark", Upvotes: 99})

	notes, err := repo.ListByBenchmark(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("len = %d, want 3", len(notes))
	}
	if notes[0].Content != "newer high" || notes[1].Content != "older high" || notes[2].Content != "low" {
		t.Fatalf("bad order: %s, %s, %s", notes[0].Content, notes[1].Content, notes[2].Content)
	}
}
