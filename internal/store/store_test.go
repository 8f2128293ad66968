package store

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	tests := []struct {
		name     string
		expected string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"},
		{"busy_timeout", "5000"},
		{"foreign_keys", "1"},
		{"user_version", "1"},
	}
	for _, tt := range tests {
		if err := s.verifyPragma(tt.name, tt.expected); err != nil {
			t.Error(err)
		}
	}
}

func TestOpen_RejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := s.db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("set user_version: %v", err)
	}
	s.Close()

	if _, err := Open(path); err == nil {
		t.Fatal("expected Open() to reject a newer schema")
	}
}

func TestClose_Nil(t *testing.T) {
	var s Store
	if err := s.Close(); err != nil {
		t.Errorf("Close() on empty store: %v", err)
	}
}

func TestBeginRun_Sequence(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	gen := NewFixedGenerator("run-1", "run-2")

	first, err := s.BeginRun(ctx, gen)
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}
	second, err := s.BeginRun(ctx, gen)
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}

	if first != (Run{ID: "run-1", Seq: 1}) {
		t.Errorf("first run = %+v", first)
	}
	if second != (Run{ID: "run-2", Seq: 2}) {
		t.Errorf("second run = %+v", second)
	}

	runs, err := s.ReadRuns(ctx)
	if err != nil {
		t.Fatalf("ReadRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0] != first || runs[1] != second {
		t.Errorf("ReadRuns() = %+v", runs)
	}
}

func TestBeginRun_DuplicateID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	gen := NewFixedGenerator("run-1", "run-1")

	if _, err := s.BeginRun(ctx, gen); err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}
	if _, err := s.BeginRun(ctx, gen); err == nil {
		t.Fatal("expected duplicate run id to fail")
	}
}

func TestUUIDv7Generator(t *testing.T) {
	re := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	var gen UUIDv7Generator
	a, b := gen.Generate(), gen.Generate()
	if !re.MatchString(a) {
		t.Errorf("not a UUIDv7: %s", a)
	}
	if a == b {
		t.Error("UUIDv7Generator returned the same id twice")
	}
}

func TestFixedGenerator_Exhausted(t *testing.T) {
	gen := NewFixedGenerator("only")
	gen.Generate()

	defer func() {
		if recover() == nil {
			t.Error("expected panic when ids are exhausted")
		}
	}()
	gen.Generate()
}
