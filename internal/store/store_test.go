// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"testing"
	"time"

	"github.com/pdiddy/blog-engine/pkg/types"
)

func openTestStore(t *testing.T, maxResults int) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{Dir: t.TempDir(), MaxResults: maxResults})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAssignsIDAndTimestamp(t *testing.T) {
	s := openTestStore(t, 0)

	rec, err := s.Record(context.Background(), types.RunRecord{
		Topic: "go generics", Title: "Understanding Go Generics",
		FilePath: "content/posts/2026-03-14-understanding-go-generics.md",
		WordCount: 1820, Duration: 92.5,
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if rec.ID == "" {
		t.Error("Record() should assign an ID")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("Record() should assign CreatedAt")
	}

	got, err := s.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("List() = %d runs, want 1", len(got))
	}
	if got[0].ID != rec.ID || got[0].Title != rec.Title || got[0].WordCount != 1820 {
		t.Errorf("List()[0] = %+v", got[0])
	}
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t, 0)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, topic := range []string{"first", "second", "third"} {
		_, err := s.Record(context.Background(), types.RunRecord{
			Topic: topic, Title: topic,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := s.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List() = %d runs, want 3", len(got))
	}
	if got[0].Topic != "third" || got[2].Topic != "first" {
		t.Errorf("order = %q, %q, %q, want newest first", got[0].Topic, got[1].Topic, got[2].Topic)
	}
}

func TestListRespectsConfiguredMax(t *testing.T) {
	s := openTestStore(t, 2)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := s.Record(context.Background(), types.RunRecord{
			Topic: "t", Title: "t", CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := s.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("List() = %d runs, want configured max 2", len(got))
	}

	got, err = s.List(context.Background(), 4)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 4 {
		t.Errorf("List(4) = %d runs, want 4", len(got))
	}
}

func TestByTopic(t *testing.T) {
	s := openTestStore(t, 0)

	topics := []string{"go generics deep dive", "rust lifetimes", "go testing"}
	for _, topic := range topics {
		if _, err := s.Record(context.Background(), types.RunRecord{Topic: topic, Title: topic}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := s.ByTopic(context.Background(), "go", 0)
	if err != nil {
		t.Fatalf("ByTopic() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ByTopic() = %d runs, want 2", len(got))
	}
}

func TestPruneKeepsNewest(t *testing.T) {
	s := openTestStore(t, 0)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := s.Record(context.Background(), types.RunRecord{
			Topic: "t", Title: "t", CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	removed, err := s.Prune(context.Background(), 2)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 3 {
		t.Errorf("Prune() removed %d runs, want 3", removed)
	}

	got, err := s.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List() after prune = %d runs, want 2", len(got))
	}
	if !got[0].CreatedAt.Equal(base.Add(4 * time.Minute)) {
		t.Errorf("newest surviving run = %v, want the latest", got[0].CreatedAt)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	s1, err := Open(types.StoreConfig{Dir: dir})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := s1.Record(context.Background(), types.RunRecord{Topic: "t", Title: "t"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	s1.Close()

	s2, err := Open(types.StoreConfig{Dir: dir})
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer s2.Close()

	got, err := s2.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("List() after reopen = %d runs, want 1", len(got))
	}
}
