package store_test

import (
	"testing"

	"relstack/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestUploadLogLifecycle(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateUploadLog("sess-1", "demo.xlsx", 1024, "abc123")
	if err != nil {
		t.Fatalf("CreateUploadLog failed: %v", err)
	}
	if id <= 0 {
		t.Fatalf("id = %d, want > 0", id)
	}

	if err := s.UpdateUploadLog(id, 3, 12, 2, "success", ""); err != nil {
		t.Fatalf("UpdateUploadLog failed: %v", err)
	}

	logs, err := s.ListUploadLogs(10)
	if err != nil {
		t.Fatalf("ListUploadLogs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d logs, want 1", len(logs))
	}
	l := logs[0]
	if l.SessionID != "sess-1" || l.Filename != "demo.xlsx" || l.Status != "success" {
		t.Fatalf("log = %+v", l)
	}
	if l.FormulaCount != 12 || l.VersionCount != 2 {
		t.Fatalf("counts = %d/%d, want 12/2", l.FormulaCount, l.VersionCount)
	}

	n, err := s.CountUploads()
	if err != nil {
		t.Fatalf("CountUploads failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("CountUploads = %d, want 1", n)
	}
}

func TestStackLog(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreateStackLog("sess-1", "1.2.3", 5); err != nil {
		t.Fatalf("CreateStackLog failed: %v", err)
	}

	logs, err := s.ListStackLogs(10)
	if err != nil {
		t.Fatalf("ListStackLogs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d logs, want 1", len(logs))
	}
	if logs[0].ReleaseVersion != "1.2.3" || logs[0].ServiceCount != 5 {
		t.Fatalf("log = %+v", logs[0])
	}

	n, err := s.CountStacks()
	if err != nil {
		t.Fatalf("CountStacks failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("CountStacks = %d, want 1", n)
	}
}
