package action

import "github.com/danielpatrickdp/subsumption/go-controller/internal/trigger"

// #region tuning

// Tuning holds every response magnitude. Peak wheel speeds must keep
// Escape > Avoid > Approach.
type Tuning struct {
	Thresholds trigger.Thresholds `yaml:"thresholds"`

	// BrightnessInverted is true when a lower photo reading means more light.
	BrightnessInverted bool `yaml:"brightness_inverted"`

	// SideAwareEscape picks the escape arc from the struck corner. When false
	// any front contact backs off along one fixed arc and any back contact
	// drives straight ahead.
	SideAwareEscape bool `yaml:"side_aware_escape"`

	EscapeSpeed    float64 `yaml:"escape_speed"`
	EscapeBias     float64 `yaml:"escape_bias"` // slow wheel during a side escape
	EscapeSeconds  float64 `yaml:"escape_seconds"`
	BackoffBias    float64 `yaml:"backoff_bias"` // slow wheel of the fixed front backoff
	BackoffSeconds float64 `yaml:"backoff_seconds"`
	AvoidSpeed     float64 `yaml:"avoid_speed"`
	AvoidSeconds   float64 `yaml:"avoid_seconds"`
	ApproachFast   float64 `yaml:"approach_fast"`
	ApproachSlow   float64 `yaml:"approach_slow"`
	ApproachSecs   float64 `yaml:"approach_seconds"`
	SeekSpeed      float64 `yaml:"seek_speed"`
	SeekSeconds    float64 `yaml:"seek_seconds"`
	CruiseSpeed    float64 `yaml:"cruise_speed"`
	ArcLeft        float64 `yaml:"arc_left"`
	ArcRight       float64 `yaml:"arc_right"`
	CruiseSeconds  float64 `yaml:"cruise_seconds"`
	StopSeconds    float64 `yaml:"stop_seconds"`
	ResumeHoldSecs float64 `yaml:"resume_hold_seconds"`
}

// DefaultTuning returns the stock response table.
func DefaultTuning() Tuning {
	return Tuning{
		Thresholds:         trigger.DefaultThresholds(),
		BrightnessInverted: true,
		SideAwareEscape:    true,

		EscapeSpeed:    0.9,
		EscapeBias:     0.1,
		EscapeSeconds:  1.0,
		BackoffBias:    0.2,
		BackoffSeconds: 3.0,
		AvoidSpeed:     0.6,
		AvoidSeconds:   0.1,
		ApproachFast:   0.4,
		ApproachSlow:   0.1,
		ApproachSecs:   0.5,
		SeekSpeed:      0.2,
		SeekSeconds:    0.25,
		CruiseSpeed:    0.5,
		ArcLeft:        0.25,
		ArcRight:       0.4,
		CruiseSeconds:  0.5,
		StopSeconds:    0.25,
		ResumeHoldSecs: 2.0,
	}
}

// Speeds returns every signed wheel speed in the table, keyed by YAML name.
func (t Tuning) Speeds() map[string]float64 {
	return map[string]float64{
		"escape_speed":  t.EscapeSpeed,
		"escape_bias":   t.EscapeBias,
		"backoff_bias":  t.BackoffBias,
		"avoid_speed":   t.AvoidSpeed,
		"approach_fast": t.ApproachFast,
		"approach_slow": t.ApproachSlow,
		"seek_speed":    t.SeekSpeed,
		"cruise_speed":  t.CruiseSpeed,
		"arc_left":      t.ArcLeft,
		"arc_right":     t.ArcRight,
	}
}

// Durations returns every response duration in seconds, keyed by YAML name.
func (t Tuning) Durations() map[string]float64 {
	return map[string]float64{
		"escape_seconds":      t.EscapeSeconds,
		"backoff_seconds":     t.BackoffSeconds,
		"avoid_seconds":       t.AvoidSeconds,
		"approach_seconds":    t.ApproachSecs,
		"seek_seconds":        t.SeekSeconds,
		"cruise_seconds":      t.CruiseSeconds,
		"stop_seconds":        t.StopSeconds,
		"resume_hold_seconds": t.ResumeHoldSecs,
	}
}

// #endregion tuning
