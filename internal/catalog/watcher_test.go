package catalog

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func TestWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stretches.yaml")
	writeCatalogFile(t, path, "exercises:\n  - name: A\n")

	w, err := NewWatcher(afero.NewOsFs(), path)
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond

	var mu sync.Mutex
	var got Catalog
	w.OnReload(func(c Catalog) {
		mu.Lock()
		got = c
		mu.Unlock()
	})
	w.Start()
	defer w.Stop()

	assert.Equal(t, []string{"A"}, w.Current().Names())

	writeCatalogFile(t, path, "exercises:\n  - name: A\n  - name: B\n    bilateral: true\n")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"A", "B"}, w.Current().Names())
}

func TestWatcher_KeepsPreviousCatalogOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stretches.yaml")
	writeCatalogFile(t, path, "exercises:\n  - name: A\n")

	w, err := NewWatcher(afero.NewOsFs(), path)
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond

	errCh := make(chan error, 4)
	w.OnError(func(err error) { errCh <- err })
	w.Start()
	defer w.Stop()

	writeCatalogFile(t, path, "exercises:\n  - name: A\n  - name: a\n")

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a reload error")
	}
	assert.Equal(t, []string{"A"}, w.Current().Names())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stretches.yaml")
	writeCatalogFile(t, path, "exercises:\n  - name: A\n")

	w, err := NewWatcher(afero.NewOsFs(), path)
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond

	reloaded := make(chan struct{}, 1)
	w.OnReload(func(Catalog) { reloaded <- struct{}{} })
	w.Start()
	defer w.Stop()

	writeCatalogFile(t, filepath.Join(dir, "other.yaml"), "junk")

	select {
	case <-reloaded:
		t.Fatal("unrelated file should not trigger a reload")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestNewWatcher_InvalidInitialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stretches.yaml")
	writeCatalogFile(t, path, "exercises: []\n")

	_, err := NewWatcher(afero.NewOsFs(), path)
	require.Error(t, err)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stretches.yaml")
	writeCatalogFile(t, path, "exercises:\n  - name: A\n")

	w, err := NewWatcher(afero.NewOsFs(), path)
	require.NoError(t, err)
	w.Start()
	w.Stop()
	w.Stop()
}
