package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T, now time.Time) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.now = func() time.Time { return now }
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_VisitsAndStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	s := openTestStore(t, now)
	ctx := context.Background()

	visits := []Visitor{
		{HashedIP: "aaa", Path: "/", Timestamp: now.Add(-time.Hour)},
		{HashedIP: "aaa", Path: "/work-content", Timestamp: now.Add(-2 * time.Hour)},
		{HashedIP: "bbb", Path: "/", Country: "EG", Timestamp: now.Add(-3 * 24 * time.Hour)},
		{HashedIP: "ccc", Path: "/", Timestamp: now.Add(-30 * 24 * time.Hour)},
	}
	for _, v := range visits {
		if err := s.RecordVisit(ctx, v); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}
	if err := s.RecordChat(ctx, Chat{HashedIP: "aaa", Query: "hi", Answered: true}); err != nil {
		t.Fatalf("RecordChat: %v", err)
	}
	if err := s.RecordChat(ctx, Chat{HashedIP: "bbb", Query: "hello?"}); err != nil {
		t.Fatalf("RecordChat: %v", err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	checks := []struct {
		name      string
		got, want int64
	}{
		{"total visitors", stats.TotalVisitors, 4},
		{"unique visitors", stats.UniqueVisitors, 3},
		{"visitors today", stats.VisitorsToday, 2},
		{"visitors this week", stats.VisitorsThisWeek, 3},
		{"total chats", stats.TotalChats, 2},
		{"unanswered chats", stats.UnansweredChats, 1},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	if len(stats.RecentVisitors) != 4 {
		t.Fatalf("recent visitors %d, want 4", len(stats.RecentVisitors))
	}
	if first := stats.RecentVisitors[0]; first.Path != "/" || !first.Timestamp.Equal(now.Add(-time.Hour)) {
		t.Errorf("most recent visitor %+v", first)
	}
	if len(stats.RecentChats) != 2 {
		t.Errorf("recent chats %d, want 2", len(stats.RecentChats))
	}
}

func TestStore_Cleanup(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	s := openTestStore(t, now)
	ctx := context.Background()

	s.RecordVisit(ctx, Visitor{HashedIP: "old", Timestamp: now.Add(-400 * 24 * time.Hour)})
	s.RecordVisit(ctx, Visitor{HashedIP: "new", Timestamp: now.Add(-24 * time.Hour)})
	s.RecordChat(ctx, Chat{HashedIP: "old", Query: "ancient", Timestamp: now.Add(-400 * 24 * time.Hour)})

	n, err := s.Cleanup(ctx, DefaultRetention)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if n != 2 {
		t.Errorf("removed %d rows, want 2", n)
	}

	visitors, err := s.RecentVisitors(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(visitors) != 1 || visitors[0].HashedIP != "new" {
		t.Errorf("remaining visitors %+v", visitors)
	}
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	s.RecordChat(context.Background(), Chat{HashedIP: "x", Query: "still here?"})
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	chats, err := s.RecentChats(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(chats) != 1 || chats[0].Query != "still here?" {
		t.Errorf("chats after reopen %+v", chats)
	}
}
