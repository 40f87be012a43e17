package scan

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/handiism/pbrset/internal/config"
	"github.com/handiism/pbrset/internal/model"
	"github.com/handiism/pbrset/internal/naming"
	"github.com/handiism/pbrset/internal/resolve"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a scan progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger routes resolver diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Manager discovers material sets under a library root and resolves them.
type Manager struct {
	settings  *config.Settings
	logger    *zap.Logger
	discovery *naming.Discovery

	setPaths []string
	results  []*model.MaterialSet

	totalSets    int32
	resolvedSets int32
	failedSets   int32

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewManager creates a new scan Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent), opts ...Option) *Manager {
	m := &Manager{
		settings:   settings,
		logger:     zap.NewNop(),
		onProgress: onProgress,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.discovery = naming.NewDiscovery(m.logger)
	return m
}

// Discover walks root and collects the set paths of every directory.
// Hidden directories are skipped. It returns the number of sets found.
//
// Discover may be called for several roots before ResolveAll; set paths
// found twice are kept once.
func (m *Manager) Discover(ctx context.Context, root string) (int, error) {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Scanning %s", root), Level: LevelInfo})

	filesByDir := make(map[string][]string)
	var dirs []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		dir := filepath.Dir(path)
		if _, ok := filesByDir[dir]; !ok {
			dirs = append(dirs, dir)
		}
		filesByDir[dir] = append(filesByDir[dir], path)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan %s: %w", root, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	found := 0
	for _, dir := range dirs {
		for _, setPath := range m.discovery.SetsFromFiles(filesByDir[dir]) {
			if slices.Contains(m.setPaths, setPath) {
				continue
			}
			m.setPaths = append(m.setPaths, setPath)
			found++
			m.progress(ProgressEvent{Message: fmt.Sprintf("Found set: %s", filepath.Base(setPath)), Level: LevelVerbose})
		}
	}
	atomic.StoreInt32(&m.totalSets, int32(len(m.setPaths)))

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d material sets in %s", found, root), Level: LevelInfo})
	return found, nil
}

// ResolveAll resolves every discovered set concurrently, at most
// settings.MaxConcurrentSets at a time.
//
// A set that fails to resolve is reported through the progress callback
// and does not stop the others. The returned error is non-nil only when
// ctx is cancelled.
func (m *Manager) ResolveAll(ctx context.Context) error {
	opts := m.settings.ToResolveOptions(m.logger)

	m.mu.Lock()
	setPaths := slices.Clone(m.setPaths)
	m.results = nil
	m.mu.Unlock()
	atomic.StoreInt32(&m.resolvedSets, 0)
	atomic.StoreInt32(&m.failedSets, 0)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, m.settings.MaxConcurrentSets))

	for _, setPath := range setPaths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m.resolveSet(setPath, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	resolved, failed, total := m.GetProgress()
	if failed == 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Resolved %d/%d material sets", resolved, total), Level: LevelSuccess})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Resolved %d/%d material sets, %d failed", resolved, total, failed), Level: LevelWarning})
	}
	return nil
}

func (m *Manager) resolveSet(setPath string, opts resolve.Options) {
	set, err := resolve.Resolve(setPath, opts)
	if err != nil {
		atomic.AddInt32(&m.failedSets, 1)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error resolving %s: %v", setPath, err), Level: LevelError})
		return
	}

	m.mu.Lock()
	m.results = append(m.results, set)
	m.mu.Unlock()
	atomic.AddInt32(&m.resolvedSets, 1)

	if missing := set.MissingCritical(); len(missing) > 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("%s: missing %s", set.SetName, strings.Join(missing, ", ")), Level: LevelWarning})
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Resolved %s (%s, %s)", set.SetName, set.Workflow, set.Size), Level: LevelVerbose})
}

// Results returns the resolved sets sorted by set path.
func (m *Manager) Results() []*model.MaterialSet {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := slices.Clone(m.results)
	slices.SortFunc(results, func(a, b *model.MaterialSet) int {
		return strings.Compare(a.SetPath, b.SetPath)
	})
	return results
}

// SetPaths returns the discovered set paths in discovery order.
func (m *Manager) SetPaths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.setPaths)
}

// GetProgress returns current resolve progress.
func (m *Manager) GetProgress() (resolved, failed, total int32) {
	return atomic.LoadInt32(&m.resolvedSets), atomic.LoadInt32(&m.failedSets), atomic.LoadInt32(&m.totalSets)
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
