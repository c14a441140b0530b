package renderloop

import (
	"fmt"
	"io/fs"

	"github.com/iburimskiy/preset-visualizer/internal/input"
	"github.com/iburimskiy/preset-visualizer/internal/notify"
	"github.com/iburimskiy/preset-visualizer/internal/playlist"
)

// dropEvent merges a dropped preset file or folder into the playlist.
func (l *Loop) dropEvent(ev input.Event) {
	skipToDropped, folderOverride := l.settings.DropSettings()

	// With shuffle on, the dropped preset would not be the next one played.
	// Shuffle stays on when not skipping since the current preset is unaffected.
	shuffle := l.playlist.Shuffle()
	if shuffle && skipToDropped {
		l.playlist.SetShuffle(false)
		defer l.playlist.SetShuffle(true)
	}

	index := l.playlist.Position() + 1

	exists, isDir := false, false
	if ev.FS != nil {
		if info, err := fs.Stat(ev.FS, ev.Path); err == nil {
			exists, isDir = true, info.IsDir()
		}
	}
	if !isDir {
		l.dropFile(ev, exists, index, skipToDropped)
		return
	}
	l.dropFolder(ev, index, skipToDropped, folderOverride)
}

func (l *Loop) dropFile(ev input.Event, exists bool, index int, skipToDropped bool) {
	if !exists || !playlist.IsPresetFile(ev.Path) {
		msg := "Invalid preset file: " + ev.Path
		l.notifier.PublishToast(notify.Toast{Text: msg})
		l.log.Info().Str("path", ev.Path).Msg("invalid preset file dropped")
		return
	}

	if !l.playlist.InsertPreset(ev.Path, index, true) {
		return
	}
	if skipToDropped {
		l.playlist.PlayNext(true)
	}
	// No toast for single presets, switching to it is feedback enough.
	l.log.Info().Str("path", ev.Path).Int("index", index).Msg("added preset")
}

func (l *Loop) dropFolder(ev input.Event, index int, skipToDropped, folderOverride bool) {
	// The playlist is cleared even if the folder turns out to hold no presets.
	if folderOverride {
		l.playlist.Clear()
		index = 0
	}

	added := l.playlist.InsertPath(ev.FS, ev.Path, index, true, true)
	if added == 0 {
		msg := "No presets found in: " + ev.Path
		l.notifier.PublishToast(notify.Toast{Text: msg})
		l.log.Info().Str("path", ev.Path).Msg("no presets found in dropped folder")
		return
	}

	msg := fmt.Sprintf("Added %d presets from %s", added, ev.Path)
	l.log.Info().Str("path", ev.Path).Int("count", added).Msg("added presets")
	if skipToDropped || folderOverride {
		l.playlist.PlayNext(true)
	}
	l.notifier.PublishToast(notify.Toast{Text: msg})
}
