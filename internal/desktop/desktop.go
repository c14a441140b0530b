// Package desktop talks to the native desktop shell: notification bubbles,
// folder pickers and error dialogs.
package desktop

import (
	"errors"
	"sync"

	"github.com/ncruces/zenity"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/preset-visualizer/internal/config"
	"github.com/iburimskiy/preset-visualizer/internal/notify"
)

const pending = 8

type ToastSource interface {
	OnToast(fn func(notify.Toast)) (remove func())
}

// Mirror repeats toasts as desktop notifications. zenity blocks while the
// bubble is shown, so notifications are sent from a worker goroutine and
// toasts arriving while it is busy are dropped.
type Mirror struct {
	log    zerolog.Logger
	notify func(text string) error

	ch     chan string
	remove func()
	done   chan struct{}
	once   sync.Once
}

func NewMirror(src ToastSource, logger zerolog.Logger) *Mirror {
	return newMirror(src, logger, func(text string) error {
		return zenity.Notify(text, zenity.Title(config.WindowTitle), zenity.InfoIcon)
	})
}

func newMirror(src ToastSource, logger zerolog.Logger, fn func(string) error) *Mirror {
	m := &Mirror{
		log:    logger.With().Str("component", "desktop").Logger(),
		notify: fn,
		ch:     make(chan string, pending),
		done:   make(chan struct{}),
	}
	go m.run()
	m.remove = src.OnToast(m.toast)
	return m
}

func (m *Mirror) toast(t notify.Toast) {
	select {
	case m.ch <- t.Text:
	default:
		m.log.Debug().Str("text", t.Text).Msg("notification dropped")
	}
}

func (m *Mirror) run() {
	defer close(m.done)
	for text := range m.ch {
		if err := m.notify(text); err != nil {
			m.log.Warn().Err(err).Msg("desktop notification")
		}
	}
}

// Close unsubscribes and waits for the notification in flight.
func (m *Mirror) Close() {
	m.once.Do(func() {
		m.remove()
		close(m.ch)
		<-m.done
	})
}

// PickFolder asks the user for a preset directory. ok is false when the
// dialog was cancelled.
func PickFolder() (dir string, ok bool, err error) {
	dir, err = zenity.SelectFile(
		zenity.Title("Choose Preset Folder"),
		zenity.Directory(),
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return dir, true, nil
}

// ShowError reports a fatal startup error in a dialog.
func ShowError(err error) {
	_ = zenity.Error(err.Error(), zenity.Title(config.WindowTitle), zenity.ErrorIcon)
}
