package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// UserConfig is the user-editable settings file.
type UserConfig struct {
	// Dropping a preset or folder switches to it right away.
	SkipToDropped bool `yaml:"skip_to_dropped"`
	// Dropping a folder replaces the whole playlist.
	DroppedFolderOverride bool `yaml:"dropped_folder_override"`

	TargetFPS        int           `yaml:"target_fps"`
	PresetDuration   time.Duration `yaml:"preset_duration"`
	PresetDirs       []string      `yaml:"preset_dirs,omitempty"`
	Shuffle          bool          `yaml:"shuffle"`
	BeatSensitivity  float32       `yaml:"beat_sensitivity"`
	AspectCorrection bool          `yaml:"aspect_correction"`

	AudioSources []string `yaml:"audio_sources,omitempty"`

	// Toasts are repeated as desktop notifications.
	DesktopNotifications bool `yaml:"desktop_notifications"`

	// RemoteAddr enables the websocket control endpoint when set, e.g. ":8765".
	RemoteAddr string `yaml:"remote_addr,omitempty"`
}

func Default() *UserConfig {
	return &UserConfig{
		SkipToDropped:         true,
		DroppedFolderOverride: false,
		TargetFPS:             60,
		PresetDuration:        30 * time.Second,
		BeatSensitivity:       1.0,
		AspectCorrection:      true,
	}
}

// Load reads path over the defaults. A missing file is not an error; the
// defaults are returned with ok == false.
func Load(path string) (c *UserConfig, ok bool, err error) {
	c = Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, false, err
	}
	return c, true, nil
}

func Save(path string, c *UserConfig) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Session holds the settings the user can change while the visualizer runs.
type Session struct {
	Shuffle          bool
	BeatSensitivity  float32
	AspectCorrection bool
}

func (c *UserConfig) Session() Session {
	return Session{
		Shuffle:          c.Shuffle,
		BeatSensitivity:  c.BeatSensitivity,
		AspectCorrection: c.AspectCorrection,
	}
}

// WithSession returns a copy of c carrying the session settings s.
func (c *UserConfig) WithSession(s Session) *UserConfig {
	out := *c
	out.Shuffle = s.Shuffle
	out.BeatSensitivity = s.BeatSensitivity
	out.AspectCorrection = s.AspectCorrection
	return &out
}

// Settings read by the drop handler before every drop.
func (c *UserConfig) DropSettings() (skipToDropped, folderOverride bool) {
	return c.SkipToDropped, c.DroppedFolderOverride
}
