// Package config loads taskgrapher settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/lucasb-eyer/go-colorful"

	"taskgrapher/task"
)

// ErrInvalid is wrapped by every decoding or validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds taskgrapher configuration.
type Config struct {
	Graph  GraphConfig  `toml:"graph"`
	View   ViewConfig   `toml:"view"`
	Layout LayoutConfig `toml:"layout"`
	Theme  ThemeConfig  `toml:"theme"`
	Log    LogConfig    `toml:"log"`
	Seed   SeedTask     `toml:"seed"`
}

// GraphConfig sets the default adjacency caps for new tasks.
type GraphConfig struct {
	MaxChildren int `toml:"max_children" validate:"min=1,max=64"`
	MaxParents  int `toml:"max_parents" validate:"min=1,max=64"`
}

// ViewConfig controls the interactive view.
type ViewConfig struct {
	Width        float64 `toml:"width" validate:"gt=0"`
	Height       float64 `toml:"height" validate:"gt=0"`
	NodeRadius   float64 `toml:"node_radius" validate:"gt=0"`
	ZoomStep     float64 `toml:"zoom_step" validate:"gt=1"`
	Nearest      int     `toml:"nearest" validate:"min=1"`
	DeletePolicy string  `toml:"delete_policy" validate:"oneof=preserve-shared cascade"`
	CellWidth    float64 `toml:"cell_width" validate:"gt=0"`  // logical units per terminal column
	CellHeight   float64 `toml:"cell_height" validate:"gt=0"` // logical units per terminal row
}

// LayoutConfig picks and tunes the initial placement.
type LayoutConfig struct {
	Kind              string  `toml:"kind" validate:"oneof=polar vertical"`
	BaseDistance      float64 `toml:"base_distance" validate:"gt=0"`
	LevelFactor       float64 `toml:"level_factor" validate:"gt=0,lte=1"`
	AngleIncrementDeg float64 `toml:"angle_increment_deg"`
	SpiralStepDeg     float64 `toml:"spiral_step_deg"`
	SiblingSpacing    float64 `toml:"sibling_spacing" validate:"gt=0"`
	LevelSpacing      float64 `toml:"level_spacing" validate:"gt=0"`
}

// ThemeConfig holds hex colours for the terminal view.
type ThemeConfig struct {
	Marker   string `toml:"marker" validate:"hexcolor"`
	Label    string `toml:"label" validate:"hexcolor"`
	Edge     string `toml:"edge" validate:"hexcolor"`
	Selected string `toml:"selected" validate:"hexcolor"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" validate:"oneof=text json"`
	File   string `toml:"file"` // empty discards logs in the interactive view
}

// SeedTask describes the task tree shown when the view starts.
type SeedTask struct {
	Label    string     `toml:"label" validate:"required"`
	DueDate  string     `toml:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DueTime  string     `toml:"due_time,omitempty"`
	Children []SeedTask `toml:"children,omitempty" validate:"dive"`
}

// Palette is a parsed ThemeConfig.
type Palette struct {
	Marker, Label, Edge, Selected colorful.Color
}

var validate = validator.New()

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Graph: GraphConfig{MaxChildren: task.DefaultMaxChildren, MaxParents: task.DefaultMaxParents},
		View: ViewConfig{
			Width:        800,
			Height:       600,
			NodeRadius:   30,
			ZoomStep:     1.25,
			Nearest:      4,
			DeletePolicy: "preserve-shared",
			CellWidth:    10,
			CellHeight:   20,
		},
		Layout: LayoutConfig{
			Kind:              "polar",
			BaseDistance:      160,
			LevelFactor:       0.6,
			AngleIncrementDeg: 90,
			SpiralStepDeg:     30,
			SiblingSpacing:    100,
			LevelSpacing:      120,
		},
		Theme: ThemeConfig{
			Marker:   "#4682b4",
			Label:    "#ffffff",
			Edge:     "#808080",
			Selected: "#ffa500",
		},
		Log: LogConfig{Level: "info", Format: "text"},
		Seed: SeedTask{
			Label:    "Morning Routine",
			Children: []SeedTask{{Label: "Brush My Teeth"}},
		},
	}
}

// ConfigDir returns the taskgrapher config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "taskgrapher")
}

// DefaultPath returns the config file used when none is given.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file at path, or DefaultPath when path is empty.
// A missing file yields the defaults. Keys not present in the file keep
// their default values, except that a [seed] table replaces the default
// seed tree entirely.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: %s: unknown key %q", ErrInvalid, path, undecoded[0].String())
	}
	if md.IsDefined("seed") && !md.IsDefined("seed", "children") {
		cfg.Seed.Children = nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks field constraints and the seed's due values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.Seed.check(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.Theme.Palette(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Palette parses the theme colours.
func (t ThemeConfig) Palette() (Palette, error) {
	var p Palette
	var err error
	for _, f := range []struct {
		dst *colorful.Color
		hex string
	}{
		{&p.Marker, t.Marker},
		{&p.Label, t.Label},
		{&p.Edge, t.Edge},
		{&p.Selected, t.Selected},
	} {
		if *f.dst, err = colorful.Hex(f.hex); err != nil {
			return Palette{}, fmt.Errorf("theme colour %q: %w", f.hex, err)
		}
	}
	return p, nil
}

func (s SeedTask) check() error {
	if s.DueTime != "" {
		if _, err := task.ParseTimeOfDay(s.DueTime); err != nil {
			return fmt.Errorf("seed %q: %w", s.Label, err)
		}
	}
	for _, c := range s.Children {
		if err := c.check(); err != nil {
			return err
		}
	}
	return nil
}
