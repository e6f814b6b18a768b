package storage

import (
	"errors"
	"os"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPreferences(t *testing.T) {
	s := openTemp(t)

	t.Run("Defaults", func(t *testing.T) {
		prefs, err := s.LoadPreferences()
		if err != nil {
			t.Fatalf("LoadPreferences failed: %v", err)
		}
		if prefs.Evaluation != "psqt" {
			t.Errorf("Expected psqt evaluation, got %q", prefs.Evaluation)
		}
		if prefs.DefaultDepth != 6 {
			t.Errorf("Expected default depth 6, got %d", prefs.DefaultDepth)
		}
		if prefs.SaveAnalysis {
			t.Error("Expected analysis saving off by default")
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		want := &Preferences{
			DefaultDepth:    9,
			DefaultMoveTime: 1500 * time.Millisecond,
			Evaluation:      "material",
			SaveAnalysis:    true,
		}
		if err := s.SavePreferences(want); err != nil {
			t.Fatalf("SavePreferences failed: %v", err)
		}
		got, err := s.LoadPreferences()
		if err != nil {
			t.Fatalf("LoadPreferences failed: %v", err)
		}
		if got.DefaultDepth != 9 || got.DefaultMoveTime != want.DefaultMoveTime ||
			got.Evaluation != "material" || !got.SaveAnalysis {
			t.Errorf("got %+v, want %+v", got, want)
		}
		if got.UpdatedAt.IsZero() {
			t.Error("UpdatedAt not set")
		}
	})
}

func TestAnalysisRecords(t *testing.T) {
	s := openTemp(t)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	recs := []AnalysisRecord{
		{Hash: 0x1, FEN: "a", Depth: 4, Score: 35, BestMove: "e2e4", PV: []string{"e2e4", "e7e5"}, CreatedAt: base},
		{Hash: 0x2, FEN: "b", Depth: 5, Score: -20, BestMove: "d7d5", CreatedAt: base.Add(time.Minute)},
		{Hash: 0xdeadbeefcafe, FEN: "c", Depth: 6, Score: 9997, BestMove: "h5f7", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, r := range recs {
		if err := s.SaveAnalysis(r); err != nil {
			t.Fatalf("SaveAnalysis(%x) failed: %v", r.Hash, err)
		}
	}

	got, err := s.LoadAnalysis(0x1)
	if err != nil {
		t.Fatalf("LoadAnalysis failed: %v", err)
	}
	if got.BestMove != "e2e4" || len(got.PV) != 2 || got.PV[1] != "e7e5" || got.Score != 35 {
		t.Errorf("loaded %+v", got)
	}

	if _, err := s.LoadAnalysis(0x99); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadAnalysis(missing) error = %v, want ErrNotFound", err)
	}

	list, err := s.ListAnalyses(2)
	if err != nil {
		t.Fatalf("ListAnalyses failed: %v", err)
	}
	if len(list) != 2 || list[0].Hash != 0xdeadbeefcafe || list[1].Hash != 0x2 {
		t.Errorf("ListAnalyses(2) returned %+v", list)
	}

	if err := s.DeleteAnalysis(0x2); err != nil {
		t.Fatalf("DeleteAnalysis failed: %v", err)
	}
	all, err := s.ListAnalyses(0)
	if err != nil {
		t.Fatalf("ListAnalyses failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 records after delete, got %d", len(all))
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.SaveAnalysis(AnalysisRecord{Hash: 42, BestMove: "g1f3"}); err != nil {
		t.Fatalf("SaveAnalysis failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	rec, err := s.LoadAnalysis(42)
	if err != nil {
		t.Fatalf("LoadAnalysis after reopen failed: %v", err)
	}
	if rec.BestMove != "g1f3" {
		t.Errorf("BestMove = %q, want g1f3", rec.BestMove)
	}
}

func TestParseHash(t *testing.T) {
	h, err := ParseHash("00000deadbeefcafe")
	if err != nil || h != 0xdeadbeefcafe {
		t.Errorf("ParseHash = %x, %v", h, err)
	}
}

func TestDataPaths(t *testing.T) {
	override := t.TempDir()
	t.Setenv(DataDirEnv, override)

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir != override {
		t.Errorf("GetDataDir = %q, want %q", dataDir, override)
	}
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	dbDir, err := GetDatabaseDir(t.TempDir())
	if err != nil {
		t.Fatalf("GetDatabaseDir failed: %v", err)
	}
	if _, err := os.Stat(dbDir); err != nil {
		t.Errorf("Database directory was not created: %v", err)
	}
}
