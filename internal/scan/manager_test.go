package scan

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/handiism/pbrset/internal/config"
	"github.com/handiism/pbrset/internal/model"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

type eventLog struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (l *eventLog) add(e ProgressEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) count(level ProgressLevel) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.events {
		if e.Level == level {
			n++
		}
	}
	return n
}

func TestManager_DiscoverAndResolve(t *testing.T) {
	root := t.TempDir()
	wood4k := filepath.Join(root, "Wood", "4K")
	iron := filepath.Join(root, "Metals", "Iron")

	touch(t, filepath.Join(root, "Wood", "2K"),
		"Wood_COL_2K.jpg", "Wood_GLOSS_2K.jpg", "Wood_NRM_2K.jpg", "Wood_sphere.png")
	touch(t, wood4k, "Wood_COL_4K.jpg", "Wood_NRM_4K.jpg")
	touch(t, iron,
		"Iron_COL_2K_METALNESS.png", "Iron_METALNESS_2K_METALNESS.png",
		"Iron_NRM_2K_METALNESS.png", "Iron_ROUGHNESS_2K_METALNESS.png")
	touch(t, filepath.Join(root, ".cache"), "Junk_COL_2K.jpg")

	settings := config.DefaultSettings()
	settings.MaxConcurrentSets = 2

	log := &eventLog{}
	m := NewManager(settings, log.add)

	found, err := m.Discover(context.Background(), root)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if found != 3 {
		t.Fatalf("found %d sets, want 3: %v", found, m.SetPaths())
	}

	if err := m.ResolveAll(context.Background()); err != nil {
		t.Fatalf("ResolveAll() error = %v", err)
	}

	results := m.Results()
	var got []string
	for _, set := range results {
		got = append(got, set.SetName+":"+string(set.Workflow))
	}
	want := []string{
		"Iron_2K:METALNESS",
		"Wood_2K:DIELECTRIC",
		"Wood_4K:DIELECTRIC",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}

	set4k := results[2]
	if diff := cmp.Diff([]string{"Gloss"}, set4k.MissingCritical()); diff != "" {
		t.Errorf("Wood_4K missing mismatch (-want +got):\n%s", diff)
	}
	if set4k.Size != "4K" {
		t.Errorf("Wood_4K size = %q", set4k.Size)
	}
	if path := set4k.PassFile(model.PassColor); path != filepath.Join(wood4k, "Wood_COL_4K.jpg") {
		t.Errorf("Wood_4K COLOR = %q", path)
	}

	resolved, failed, total := m.GetProgress()
	if resolved != 3 || failed != 0 || total != 3 {
		t.Errorf("progress = %d/%d failed %d", resolved, total, failed)
	}
	if log.count(LevelWarning) != 1 {
		t.Errorf("expected one missing-pass warning, got %d", log.count(LevelWarning))
	}
	if log.count(LevelSuccess) != 1 {
		t.Errorf("expected one success summary, got %d", log.count(LevelSuccess))
	}
}

func TestManager_DiscoverTwiceDedupes(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "Brick_COL_2K.jpg", "Brick_NRM_2K.jpg")

	m := NewManager(config.DefaultSettings(), nil)
	if _, err := m.Discover(context.Background(), root); err != nil {
		t.Fatal(err)
	}
	found, err := m.Discover(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if found != 0 || len(m.SetPaths()) != 1 {
		t.Errorf("found = %d, set paths = %v", found, m.SetPaths())
	}
}

func TestManager_DiscoverMissingRoot(t *testing.T) {
	m := NewManager(config.DefaultSettings(), nil)
	if _, err := m.Discover(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestManager_ResolveAllCancelled(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "Brick_COL_2K.jpg")

	m := NewManager(config.DefaultSettings(), nil)
	if _, err := m.Discover(context.Background(), root); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.ResolveAll(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}
