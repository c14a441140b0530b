// Package playlist keeps the ordered list of presets the engine cycles through.
package playlist

import (
	"io/fs"
	"math/rand"
	"path"
	"slices"
	"time"
)

const historySize = 64

// Extensions lists the preset file suffixes accepted into the playlist.
var Extensions = []string{".milk", ".prjm"}

// IsPresetFile reports whether name carries one of the preset extensions.
func IsPresetFile(name string) bool {
	return slices.Contains(Extensions, path.Ext(name))
}

// SwitchedFunc is called after the current preset changed.
type SwitchedFunc func(hardCut bool, index int, preset string)

// Playlist is not safe for concurrent use; it belongs to the render loop
// thread.
type Playlist struct {
	items   []string
	pos     int
	shuffle bool
	history []int
	rng     *rand.Rand

	onSwitched SwitchedFunc
}

func New() *Playlist {
	return &Playlist{
		pos: -1,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (p *Playlist) Len() int { return len(p.items) }

// Items returns a copy of the playlist.
func (p *Playlist) Items() []string { return slices.Clone(p.items) }

// Position returns the index of the current preset, -1 when none is selected.
func (p *Playlist) Position() int { return p.pos }

// Current returns the current preset path.
func (p *Playlist) Current() (string, bool) {
	if p.pos < 0 || p.pos >= len(p.items) {
		return "", false
	}
	return p.items[p.pos], true
}

func (p *Playlist) Shuffle() bool { return p.shuffle }

func (p *Playlist) SetShuffle(on bool) { p.shuffle = on }

// SetPresetSwitchedCallback replaces the switch observer; nil removes it.
func (p *Playlist) SetPresetSwitchedCallback(fn SwitchedFunc) {
	p.onSwitched = fn
}

// Clear empties the playlist and forgets the current position.
func (p *Playlist) Clear() {
	p.items = nil
	p.history = nil
	p.pos = -1
}

// InsertPreset inserts preset at index, clamped to the playlist bounds.
// It returns false when allowDuplicates is unset and preset is already listed.
func (p *Playlist) InsertPreset(preset string, index int, allowDuplicates bool) bool {
	if !allowDuplicates && slices.Contains(p.items, preset) {
		return false
	}
	index = max(0, min(index, len(p.items)))
	p.items = slices.Insert(p.items, index, preset)

	if p.pos >= index {
		p.pos++
	}
	for i, h := range p.history {
		if h >= index {
			p.history[i] = h + 1
		}
	}
	return true
}

// InsertPath inserts every preset file found under dir in fsys, starting at
// index and keeping lexical order. Subdirectories are only searched when
// recurse is set. It returns the number of presets added.
func (p *Playlist) InsertPath(fsys fs.FS, dir string, index int, recurse, allowDuplicates bool) int {
	var found []string
	_ = fs.WalkDir(fsys, dir, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable entries are skipped, the rest of the tree still counts
			if d != nil && d.IsDir() && name != dir {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if name != dir && !recurse {
				return fs.SkipDir
			}
			return nil
		}
		if IsPresetFile(name) {
			found = append(found, name)
		}
		return nil
	})

	index = max(0, min(index, len(p.items)))
	added := 0
	for _, preset := range found {
		if p.InsertPreset(preset, index+added, allowDuplicates) {
			added++
		}
	}
	return added
}

// PlayNext advances to the following preset, or a random one when shuffling.
func (p *Playlist) PlayNext(hardCut bool) bool {
	if len(p.items) == 0 {
		return false
	}
	if p.shuffle {
		return p.PlayRandom(hardCut)
	}
	return p.play((p.pos+1)%len(p.items), hardCut, true)
}

// PlayPrevious moves back one preset. While shuffling it behaves like PlayLast.
func (p *Playlist) PlayPrevious(hardCut bool) bool {
	if len(p.items) == 0 {
		return false
	}
	if p.shuffle {
		return p.PlayLast(hardCut)
	}
	idx := p.pos - 1
	if idx < 0 {
		idx = len(p.items) - 1
	}
	return p.play(idx, hardCut, true)
}

// PlayLast returns to the preset played before the current one.
func (p *Playlist) PlayLast(hardCut bool) bool {
	for len(p.history) > 0 {
		idx := p.history[len(p.history)-1]
		p.history = p.history[:len(p.history)-1]
		if idx >= 0 && idx < len(p.items) {
			return p.play(idx, hardCut, false)
		}
	}
	return false
}

// PlayRandom jumps to a random preset other than the current one when
// there is a choice.
func (p *Playlist) PlayRandom(hardCut bool) bool {
	n := len(p.items)
	if n == 0 {
		return false
	}
	idx := p.rng.Intn(n)
	if n > 1 && idx == p.pos {
		idx = (idx + 1 + p.rng.Intn(n-1)) % n
	}
	return p.play(idx, hardCut, true)
}

// Play selects index directly.
func (p *Playlist) Play(index int, hardCut bool) bool {
	if index < 0 || index >= len(p.items) {
		return false
	}
	return p.play(index, hardCut, true)
}

func (p *Playlist) play(idx int, hardCut, remember bool) bool {
	if remember && p.pos >= 0 {
		p.history = append(p.history, p.pos)
		if len(p.history) > historySize {
			p.history = p.history[len(p.history)-historySize:]
		}
	}
	p.pos = idx
	if p.onSwitched != nil {
		p.onSwitched(hardCut, idx, p.items[idx])
	}
	return true
}
