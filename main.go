package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iburimskiy/preset-visualizer/internal/audio"
	"github.com/iburimskiy/preset-visualizer/internal/config"
	"github.com/iburimskiy/preset-visualizer/internal/desktop"
	"github.com/iburimskiy/preset-visualizer/internal/notify"
	"github.com/iburimskiy/preset-visualizer/internal/overlay"
	"github.com/iburimskiy/preset-visualizer/internal/playlist"
	"github.com/iburimskiy/preset-visualizer/internal/remote"
	"github.com/iburimskiy/preset-visualizer/internal/renderloop"
	"github.com/iburimskiy/preset-visualizer/internal/viz"
	"github.com/iburimskiy/preset-visualizer/internal/window"
)

func main() {
	var (
		configPath = flag.String("config", "visualizer.yaml", "path to the settings file")
		fps        = flag.Int("fps", 0, "target frames per second, 0 keeps the configured value")
		presetDir  = flag.String("preset-dir", "", "additional preset directory")
		pick       = flag.Bool("pick", false, "choose a preset directory in a dialog")
		remoteAddr = flag.String("remote", "", "websocket control address, e.g. :8765")
		logLevel   = flag.String("log-level", "info", "debug | info | warn | error")
		debugDir   = flag.String("debug-dir", "", "directory for debug frame captures")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", *logLevel).Msg("unknown log level, using info")
	}

	cfg, ok, err := config.Load(*configPath)
	if err != nil {
		fatal(fmt.Errorf("load %s: %w", *configPath, err))
	}
	if !ok {
		log.Warn().Str("path", *configPath).Msg("settings file not found, using defaults")
	}
	// file contents, written back with the session settings on exit
	saved := *cfg
	if *remoteAddr != "" {
		cfg.RemoteAddr = *remoteAddr
	}
	if *presetDir != "" {
		cfg.PresetDirs = append(cfg.PresetDirs, *presetDir)
	}
	if *pick {
		dir, picked, err := desktop.PickFolder()
		if err != nil {
			log.Warn().Err(err).Msg("folder dialog")
		} else if picked {
			cfg.PresetDirs = append(cfg.PresetDirs, dir)
		}
	}

	session, err := run(cfg, *fps, *debugDir)
	if err != nil {
		fatal(err)
	}
	if session != saved.Session() {
		if err := config.Save(*configPath, saved.WithSession(session)); err != nil {
			log.Warn().Err(err).Str("path", *configPath).Msg("saving settings")
		}
	}
}

// run blocks until the visualizer exits and returns the settings the user
// changed during the session.
func run(cfg *config.UserConfig, fps int, debugDir string) (config.Session, error) {
	center := notify.NewCenter()

	win := window.New(window.Options{
		Title:  config.WindowTitle,
		Width:  config.WindowWidth,
		Height: config.WindowHeight,
		Logger: log.Logger,
	})

	presets := playlist.New()
	for _, dir := range cfg.PresetDirs {
		n := addPresetDir(presets, dir)
		log.Info().Str("dir", dir).Int("presets", n).Msg("preset directory loaded")
	}

	engine := viz.New(viz.Options{
		Playlist:  presets,
		Notifier:  center,
		Surface:   win,
		Clipboard: &viz.SystemClipboard{},
		Config:    cfg,
		Logger:    log.Logger,
		DebugDir:  debugDir,
	})
	defer engine.Close()
	if fps > 0 {
		engine.SetTargetFPS(fps)
	}

	capture := audio.New(audio.Options{
		Devices:  audio.DevicesFromSources(cfg.AudioSources),
		Output:   &audio.Speaker{},
		Sink:     engine,
		Notifier: center,
		Logger:   log.Logger,
	})
	if err := capture.Open(); err != nil {
		log.Warn().Err(err).Msg("no audio device available")
	}
	defer capture.Close()

	gui := overlay.New(overlay.Options{
		Status:   engine,
		Surface:  win,
		Notifier: center,
	})
	defer gui.Close()

	if cfg.DesktopNotifications {
		mirror := desktop.NewMirror(center, log.Logger)
		defer mirror.Close()
	}

	if cfg.RemoteAddr != "" {
		srv := remote.New(remote.Options{Addr: cfg.RemoteAddr, Queue: center, Logger: log.Logger})
		if err := srv.Start(); err != nil {
			return engine.Session(), err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	loop := renderloop.New(renderloop.Deps{
		Engine:   engine,
		Playlist: presets,
		Audio:    capture,
		Window:   win,
		GUI:      gui,
		Notifier: center,
		Settings: cfg,
		Logger:   log.Logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer win.Close()
		loop.Run(ctx)
	}()

	err := win.Run()
	loop.Quit()
	<-done
	return engine.Session(), err
}

// addPresetDir walks dir and appends its presets. Entries keep the
// directory name so presets from different folders stay distinguishable.
func addPresetDir(p *playlist.Playlist, dir string) int {
	abs, err := filepath.Abs(dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("preset directory")
		return 0
	}
	return p.InsertPath(os.DirFS(filepath.Dir(abs)), filepath.Base(abs), p.Len(), true, false)
}

func fatal(err error) {
	log.Error().Err(err).Msg("fatal")
	desktop.ShowError(err)
	os.Exit(1)
}
