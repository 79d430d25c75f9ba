package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part.gcode")
	require.NoError(t, os.WriteFile(path, []byte("G1 X0\n"), 0644))

	fw, err := NewFileWatcher(100*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	var calls atomic.Int32
	changed := make(chan string, 4)
	require.NoError(t, fw.Watch([]string{path}, func(p string) {
		calls.Add(1)
		changed <- p
	}))
	fw.Start()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("G1 X1\n"), 0644))
	}

	select {
	case got := <-changed:
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, got)
	case <-time.After(5 * time.Second):
		t.Fatal("callback not called")
	}

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part.gcode")
	require.NoError(t, os.WriteFile(path, []byte("G1 X0\n"), 0644))

	fw, err := NewFileWatcher(20*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	changed := make(chan string, 1)
	require.NoError(t, fw.Watch([]string{path}, func(p string) { changed <- p }))
	fw.Start()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.gcode"), []byte("G1\n"), 0644))

	select {
	case p := <-changed:
		t.Fatalf("unexpected callback for %s", p)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestSlowCallbackIsNotOverlapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.gcode")
	require.NoError(t, os.WriteFile(path, []byte("G1 X0\n"), 0644))
	abs, err := filepath.Abs(path)
	require.NoError(t, err)

	fw, err := NewFileWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	var calls, active, overlapped atomic.Int32
	started := make(chan struct{}, 4)
	release := make(chan struct{})
	require.NoError(t, fw.Watch([]string{path}, func(string) {
		if active.Add(1) > 1 {
			overlapped.Store(1)
		}
		defer active.Add(-1)
		if calls.Add(1) == 1 {
			started <- struct{}{}
			<-release
		}
	}))

	fw.handleFileChange(abs)
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("callback not called")
	}

	// Both timers fire while the first callback is still busy; only the
	// latest change is delivered once it returns.
	fw.handleFileChange(abs)
	time.Sleep(100 * time.Millisecond)
	fw.handleFileChange(abs)
	time.Sleep(100 * time.Millisecond)
	close(release)

	assert.Eventually(t, func() bool { return calls.Load() == 2 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, int32(0), overlapped.Load())
}

func TestCloseStopsLoop(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond, nil)
	require.NoError(t, err)
	fw.Start()
	require.NoError(t, fw.Close())

	select {
	case <-fw.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("event loop did not exit")
	}
}
