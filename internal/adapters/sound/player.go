// Package sound plays the completion chime.
package sound

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/discipline-tracker/internal/ports"
)

type candidate struct {
	name string
	args []string
}

// Command line players tried in order. The sound file path is appended.
var players = map[string][]candidate{
	"linux": {
		{"pw-play", nil},
		{"paplay", nil},
		{"ogg123", []string{"-q"}},
		{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	},
	"darwin": {
		{"afplay", nil},
	},
}

// Player plays a sound file through the first available system player and
// falls back to a terminal beep. Every Play call starts an independent
// playback; overlapping completions overlap.
type Player struct {
	path    string
	enabled bool
	onError func(error)

	lookPath func(string) (string, error)
	run      func(name string, args ...string) error
	beep     func() error

	wg sync.WaitGroup
}

var _ ports.SoundPlayer = (*Player)(nil)

// New returns a player for the file at path. onError receives playback
// failures and may be nil.
func New(path string, enabled bool, onError func(error)) *Player {
	if onError == nil {
		onError = func(error) {}
	}
	return &Player{
		path:     path,
		enabled:  enabled,
		onError:  onError,
		lookPath: exec.LookPath,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
		beep: func() error {
			return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
		},
	}
}

// Play starts playback in the background and returns immediately.
func (p *Player) Play() {
	if !p.enabled {
		return
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.play(); err != nil {
			p.onError(err)
		}
	}()
}

// Wait blocks until every playback started so far has finished.
func (p *Player) Wait() {
	p.wg.Wait()
}

func (p *Player) play() error {
	if _, err := os.Stat(p.path); err != nil {
		return p.fallback()
	}
	name, args, ok := p.command()
	if !ok {
		return p.fallback()
	}
	if err := p.run(name, args...); err != nil {
		return fmt.Errorf("failed to play %s with %s: %w", p.path, name, err)
	}
	return nil
}

func (p *Player) fallback() error {
	if err := p.beep(); err != nil {
		return fmt.Errorf("failed to beep: %w", err)
	}
	return nil
}

func (p *Player) command() (string, []string, bool) {
	for _, c := range players[runtime.GOOS] {
		bin, err := p.lookPath(c.name)
		if err != nil {
			continue
		}
		args := append(append([]string(nil), c.args...), p.path)
		return bin, args, true
	}
	return "", nil, false
}
