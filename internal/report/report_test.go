package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lumipallolabs/filesearch/internal/core"
	"github.com/lumipallolabs/filesearch/internal/model"
)

func testSet(finished time.Time, paths ...string) *core.ResultSet {
	set := &core.ResultSet{
		ID: uuid.New(),
		Query: model.ScanQuery{
			Target:  "report",
			Kind:    model.KindFile,
			Volumes: []model.Volume{{ID: "C", Path: `C:\`, Label: "C:"}},
		},
		State:    core.StateCompleted,
		Started:  finished.Add(-time.Minute),
		Finished: finished,
	}
	for i, p := range paths {
		set.Matches = append(set.Matches, model.Match{Path: p, Kind: model.KindFile, Size: int64(100 * (i + 1))})
	}
	return set
}

func TestSaveAndLoad(t *testing.T) {
	tmp := t.TempDir()
	s := New(filepath.Join(tmp, "reports"))

	set := testSet(time.Now(), `C:\report.pdf`, `C:\docs\Report-2.txt`)

	path, err := s.Save(set)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasSuffix(path, set.ID.String()+".gob.gz") {
		t.Errorf("unexpected file name %s", filepath.Base(path))
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.ID != set.ID {
		t.Errorf("expected ID %s, got %s", set.ID, loaded.ID)
	}
	if loaded.Len() != 2 || loaded.Matches[1].Path != `C:\docs\Report-2.txt` {
		t.Errorf("matches not preserved: %+v", loaded.Matches)
	}
	if loaded.Query.Volumes[0].ID != "C" {
		t.Errorf("query not preserved: %+v", loaded.Query)
	}
	if loaded.State != core.StateCompleted {
		t.Errorf("expected completed, got %s", loaded.State)
	}
}

func TestResolve(t *testing.T) {
	s := New(t.TempDir())

	older := testSet(time.Date(2024, 1, 2, 10, 0, 0, 0, time.Local), "/a")
	newer := testSet(time.Date(2024, 3, 4, 10, 0, 0, 0, time.Local), "/b")
	for _, set := range []*core.ResultSet{newer, older} {
		if _, err := s.Save(set); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	latestPath, err := s.Resolve("latest")
	if err != nil {
		t.Fatalf("Resolve latest failed: %v", err)
	}
	latest, err := Load(latestPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if latest.ID != newer.ID {
		t.Errorf("expected latest %s, got %s", newer.ID, latest.ID)
	}

	infos, err := s.List()
	if err != nil || len(infos) != 2 {
		t.Fatalf("List: %v, %d infos", err, len(infos))
	}
	if !infos[0].Saved.Before(infos[1].Saved) {
		t.Error("expected oldest first")
	}

	path, err := s.Resolve(older.ID.String()[:8])
	if err != nil {
		t.Fatalf("Resolve by prefix failed: %v", err)
	}
	if path != infos[0].Path {
		t.Errorf("resolved %s, want %s", path, infos[0].Path)
	}

	if latestPath != infos[1].Path {
		t.Errorf("Resolve latest = %s, want %s", latestPath, infos[1].Path)
	}
	if _, err := s.Resolve("ffffffff-dead"); err == nil {
		t.Error("expected error for unknown ref")
	}
}

func TestResolveEmptyStore(t *testing.T) {
	_, err := New(t.TempDir()).Resolve("latest")
	if !errors.Is(err, ErrNoReports) {
		t.Errorf("expected ErrNoReports, got %v", err)
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.gob.gz"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	infos, err := New(dir).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 0 {
		t.Errorf("expected no reports, got %d", len(infos))
	}
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.gob.gz")
	if err := os.WriteFile(path, []byte("not gzip"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for corrupt report")
	}
}
