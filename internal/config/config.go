// Package config assembles the controller configuration from a preset, an
// optional YAML file and environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/subsumption/go-controller/internal/action"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/behavior"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/motion"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/sensor"
)

// #region types

// Preset names a stock robot build.
type Preset string

const (
	PresetGUI   Preset = "gui"   // editable hierarchy, two bumpers per bank
	PresetPlain Preset = "plain" // fixed hierarchy, three bumpers per bank
)

// Entry is one hierarchy row as written in a config file.
type Entry struct {
	Label   string `yaml:"label" json:"label"`
	Kind    string `yaml:"kind" json:"kind"`
	Enabled bool   `yaml:"enabled" json:"enabled"`
}

// Config is everything cmd/controller needs to build a robot.
type Config struct {
	Preset    Preset             `yaml:"preset"`
	Pins      sensor.PinMap      `yaml:"pins"`
	Polarity  sensor.Polarity    `yaml:"polarity"`
	Drive     motion.DriveConfig `yaml:"drive"`
	Tuning    action.Tuning      `yaml:"tuning"`
	Hierarchy []Entry            `yaml:"hierarchy"`
	Editor    bool               `yaml:"editor"`

	Seed        uint64  `yaml:"seed"`    // 0 picks a random seed
	TickHz      float64 `yaml:"tick_hz"` // 0 runs unpaced
	TraceDB     string  `yaml:"trace_db"`
	MetricsAddr string  `yaml:"metrics_addr"`
	LogPath     string  `yaml:"log_path"`
}

var (
	ErrUnknownPreset = errors.New("unknown preset")
	ErrTuningOrder   = errors.New("escape speed must exceed avoid speed, which must exceed approach speed")
)

// #endregion types

// #region presets

// DefaultConfig returns the GUI preset.
func DefaultConfig() Config {
	return GUI()
}

// GUI returns the editable robot: active-low bumpers on two corners per
// bank, photo threshold 150.
func GUI() Config {
	return Config{
		Preset:    PresetGUI,
		Pins:      sensor.GUIPins(),
		Polarity:  sensor.ActiveLow,
		Drive:     motion.DefaultDriveConfig(),
		Tuning:    action.DefaultTuning(),
		Hierarchy: Entries(behavior.GUIHierarchy()),
		Editor:    true,
		TickHz:    50,
		LogPath:   "controller.log",
	}
}

// Plain returns the fixed-hierarchy robot: active-high bumpers including a
// center contact, photo threshold 200.
func Plain() Config {
	cfg := GUI()
	cfg.Preset = PresetPlain
	cfg.Pins = sensor.PlainPins()
	cfg.Polarity = sensor.ActiveHigh
	cfg.Tuning.Thresholds.Photo = 200
	cfg.Tuning.SideAwareEscape = false
	cfg.Hierarchy = Entries(behavior.PlainHierarchy())
	cfg.Editor = false
	return cfg
}

// ForPreset returns the stock config named p.
func ForPreset(p Preset) (Config, error) {
	switch p {
	case PresetGUI, "":
		return GUI(), nil
	case PresetPlain:
		return Plain(), nil
	}
	return Config{}, fmt.Errorf("preset %q: %w", p, ErrUnknownPreset)
}

// Entries converts a hierarchy back to config rows.
func Entries(bs []behavior.Behavior) []Entry {
	out := make([]Entry, len(bs))
	for i, b := range bs {
		out[i] = Entry{Label: b.Label, Kind: b.Kind.String(), Enabled: b.Enabled}
	}
	return out
}

// #endregion presets

// #region load

// Resolve builds the config in precedence order: preset (ROBOT_PRESET), file
// (ROBOT_CONFIG), then the remaining environment overrides.
func Resolve(getenv func(string) string) (Config, error) {
	cfg, err := ForPreset(Preset(envOr(getenv, "ROBOT_PRESET", string(PresetGUI))))
	if err != nil {
		return Config{}, err
	}
	if path := getenv("ROBOT_CONFIG"); path != "" {
		if cfg, err = Load(path, cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load overlays the YAML file at path onto base. Keys missing from the file
// keep base's values; a hierarchy in the file replaces base's.
func Load(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := base
	cfg.Hierarchy = append([]Entry(nil), base.Hierarchy...)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides runtime settings from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	c.TraceDB = envOr(getenv, "ROBOT_TRACE_DB", c.TraceDB)
	c.MetricsAddr = envOr(getenv, "ROBOT_METRICS_ADDR", c.MetricsAddr)
	c.LogPath = envOr(getenv, "ROBOT_LOG", c.LogPath)
	if v := getenv("ROBOT_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse ROBOT_SEED: %w", err)
		}
		c.Seed = seed
	}
	if v := getenv("ROBOT_TICK_HZ"); v != "" {
		hz, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse ROBOT_TICK_HZ: %w", err)
		}
		c.TickHz = hz
	}
	return nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion load

// #region validate

// Validate rejects configs the controller cannot run with.
func (c Config) Validate() error {
	if !c.Polarity.Valid() {
		return fmt.Errorf("validate polarity %q: must be %s or %s", c.Polarity, sensor.ActiveHigh, sensor.ActiveLow)
	}
	if c.Drive.Native.Low == c.Drive.Native.High {
		return fmt.Errorf("validate drive native range: %w", motion.ErrDegenerateSpan)
	}
	if c.Drive.LeftChannel == c.Drive.RightChannel {
		return fmt.Errorf("validate drive: both wheels on channel %d", c.Drive.LeftChannel)
	}
	t := c.Tuning
	if !(t.EscapeSpeed > t.AvoidSpeed && t.AvoidSpeed > t.ApproachFast) {
		return fmt.Errorf("validate tuning: %w", ErrTuningOrder)
	}
	if t.EscapeSpeed > 1 || t.ApproachSlow < 0 {
		return fmt.Errorf("validate tuning: speeds must lie in [0, 1]")
	}
	speeds := t.Speeds()
	for _, name := range sortedKeys(speeds) {
		if v := speeds[name]; !finite(v) || v < -1 || v > 1 {
			return fmt.Errorf("validate tuning %s: %v outside [-1, 1]", name, v)
		}
	}
	durations := t.Durations()
	for _, name := range sortedKeys(durations) {
		if v := durations[name]; !finite(v) || v < 0 {
			return fmt.Errorf("validate tuning %s: %v is not a non-negative duration", name, v)
		}
	}
	if !finite(c.TickHz) || c.TickHz < 0 {
		return fmt.Errorf("validate tick_hz: %v is not a non-negative rate", c.TickHz)
	}
	if _, err := c.Behaviors(); err != nil {
		return err
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Behaviors converts the hierarchy entries for behavior.NewRegistry.
func (c Config) Behaviors() ([]behavior.Behavior, error) {
	return ParseHierarchy(c.Hierarchy)
}

// ParseHierarchy parses config rows into registry definitions.
func ParseHierarchy(es []Entry) ([]behavior.Behavior, error) {
	out := make([]behavior.Behavior, 0, len(es))
	for i, e := range es {
		k, err := behavior.ParseKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("hierarchy entry %d: %w", i, err)
		}
		out = append(out, behavior.Behavior{Label: e.Label, Kind: k, Enabled: e.Enabled})
	}
	return out, nil
}

// #endregion validate
