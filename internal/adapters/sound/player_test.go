package sound

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
)

type fakeSystem struct {
	mu    sync.Mutex
	runs  [][]string
	beeps int
}

func newTestPlayer(t *testing.T, path string, available map[string]bool) (*Player, *fakeSystem) {
	t.Helper()
	fs := &fakeSystem{}
	p := New(path, true, nil)
	p.lookPath = func(name string) (string, error) {
		if available[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
	p.run = func(name string, args ...string) error {
		fs.mu.Lock()
		defer fs.mu.Unlock()
		fs.runs = append(fs.runs, append([]string{name}, args...))
		return nil
	}
	p.beep = func() error {
		fs.mu.Lock()
		defer fs.mu.Unlock()
		fs.beeps++
		return nil
	}
	return p, fs
}

func TestPlayer_MissingFileBeeps(t *testing.T) {
	p, fs := newTestPlayer(t, filepath.Join(t.TempDir(), "complete.ogg"), map[string]bool{"paplay": true, "afplay": true})

	p.Play()
	p.Wait()

	if fs.beeps != 1 || len(fs.runs) != 0 {
		t.Errorf("beeps = %d, runs = %v; want one beep and no runs", fs.beeps, fs.runs)
	}
}

func TestPlayer_PlaysFile(t *testing.T) {
	if _, ok := players[runtime.GOOS]; !ok {
		t.Skip("no command line players on " + runtime.GOOS)
	}
	path := filepath.Join(t.TempDir(), "complete.ogg")
	if err := os.WriteFile(path, []byte("OggS"), 0o644); err != nil {
		t.Fatal(err)
	}
	available := map[string]bool{}
	for _, c := range players[runtime.GOOS] {
		available[c.name] = true
	}
	p, fs := newTestPlayer(t, path, available)

	p.Play()
	p.Play()
	p.Wait()

	if len(fs.runs) != 2 {
		t.Fatalf("runs = %v, want two overlapping playbacks", fs.runs)
	}
	first := players[runtime.GOOS][0]
	run := fs.runs[0]
	if run[0] != "/usr/bin/"+first.name || run[len(run)-1] != path {
		t.Errorf("run = %v, want %s ... %s", run, first.name, path)
	}
}

func TestPlayer_NoPlayerBeeps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complete.ogg")
	if err := os.WriteFile(path, []byte("OggS"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, fs := newTestPlayer(t, path, nil)

	p.Play()
	p.Wait()

	if fs.beeps != 1 {
		t.Errorf("beeps = %d, want 1", fs.beeps)
	}
}

func TestPlayer_Disabled(t *testing.T) {
	p, fs := newTestPlayer(t, "", nil)
	p.enabled = false

	p.Play()
	p.Wait()

	if fs.beeps != 0 || len(fs.runs) != 0 {
		t.Error("disabled player should do nothing")
	}
}

func TestPlayer_ReportsErrors(t *testing.T) {
	var got error
	p, _ := newTestPlayer(t, "", nil)
	p.onError = func(err error) { got = err }
	p.beep = func() error { return errors.New("no speaker") }

	p.Play()
	p.Wait()

	if got == nil {
		t.Error("onError should receive the beep failure")
	}
}
