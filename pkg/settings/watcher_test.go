package settings

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/options"
)

// recordingTarget is a Reconfigurer that keeps every configuration it got.
type recordingTarget struct {
	mu      sync.Mutex
	configs []*options.Configuration
}

func (r *recordingTarget) Reconfigure(config *options.Configuration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs = append(r.configs, config)
}

func (r *recordingTarget) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.configs)
}

func (r *recordingTarget) last() *options.Configuration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.configs[len(r.configs)-1]
}

func TestWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "settings.yaml", "attributes:\n  urlPath: news\n")
	target := &recordingTarget{}
	watcher := NewWatcher(path, target)

	changed, err := watcher.Reload()
	if err != nil || !changed {
		t.Fatalf("first Reload() = %v, %v; want true, nil", changed, err)
	}
	if target.last().URLPath() != "news" {
		t.Errorf("URLPath() = %q, want news", target.last().URLPath())
	}

	writeFile(t, dir, "settings.yaml", "# reformatted\nattributes: {urlPath: news}\n")
	if changed, err := watcher.Reload(); err != nil || changed {
		t.Errorf("Reload() of identical attributes = %v, %v; want false, nil", changed, err)
	}

	writeFile(t, dir, "settings.yaml", "attributes:\n  ignoreRedirectRegex: \"[broken\"\n")
	if changed, err := watcher.Reload(); err == nil || changed {
		t.Errorf("Reload() of invalid settings = %v, %v; want false, error", changed, err)
	}

	writeFile(t, dir, "settings.yaml", "attributes:\n  urlPath: stories\n")
	if changed, err := watcher.Reload(); err != nil || !changed {
		t.Errorf("Reload() of new attributes = %v, %v; want true, nil", changed, err)
	}
	if target.count() != 2 || target.last().URLPath() != "stories" {
		t.Errorf("target got %d configurations, last URLPath %q", target.count(), target.last().URLPath())
	}
}

func TestWatcherWatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "settings.yaml", "attributes:\n  urlPath: news\n")
	target := &recordingTarget{}
	watcher := NewWatcher(path, target)
	if _, err := watcher.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	applied := make(chan *Settings, 8)
	watcher.SetOnChange(func(event string, settings *Settings) {
		applied <- settings
	})
	if err := watcher.Watch(); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer watcher.StopWatch()

	// Unrelated files in the directory are ignored.
	writeFile(t, dir, "other.yaml", "attributes:\n  urlPath: other\n")
	if err := os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte("attributes:\n  urlPath: stories\n"), 0o644); err != nil {
		t.Fatalf("rewriting settings: %v", err)
	}

	// A truncating write can be seen half done; wait for the final content.
	timeout := time.After(5 * time.Second)
	for done := false; !done; {
		select {
		case settings := <-applied:
			if settings.Attributes["urlPath"] == "other" {
				t.Fatal("unrelated file was applied")
			}
			done = settings.Attributes["urlPath"] == "stories"
		case <-timeout:
			t.Fatal("settings change was not picked up")
		}
	}
	if target.last().URLPath() != "stories" {
		t.Errorf("URLPath() = %q, want stories", target.last().URLPath())
	}
}

func TestStopWatchWithoutWatch(t *testing.T) {
	watcher := NewWatcher(filepath.Join(t.TempDir(), "settings.yaml"), &recordingTarget{})
	watcher.StopWatch()
}
