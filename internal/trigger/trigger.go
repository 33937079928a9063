// Package trigger holds the predicates that gate each behavior. All of them
// are pure functions of a snapshot.
package trigger

import "github.com/danielpatrickdp/subsumption/go-controller/internal/sensor"

// #region thresholds

// Thresholds holds the process-wide trigger tunables.
type Thresholds struct {
	Avoid    int `yaml:"avoid"`    // range reading one side must exceed to avoid
	Approach int `yaml:"approach"` // range reading one side must exceed to approach
	Photo    int `yaml:"photo"`    // photo differential that triggers seeking
}

// DefaultThresholds returns the values used by the editable-hierarchy robot.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Avoid:    1600,
		Approach: 1600,
		Photo:    150,
	}
}

// AvoidTriggered reports whether exactly one range sensor is past the avoid threshold.
func (t Thresholds) AvoidTriggered(s sensor.Snapshot) bool {
	return RangeAboveExclusive(s, t.Avoid)
}

// ApproachTriggered reports whether exactly one range sensor is past the approach threshold.
func (t Thresholds) ApproachTriggered(s sensor.Snapshot) bool {
	return RangeAboveExclusive(s, t.Approach)
}

// PhotoTriggered reports whether the photo differential is past the threshold.
func (t Thresholds) PhotoTriggered(s sensor.Snapshot) bool {
	return PhotoDifferentialAbove(s, t.Photo)
}

// #endregion thresholds

// #region predicates

// PhotoDifferentialAbove is true iff |RightPhoto - LeftPhoto| > threshold.
func PhotoDifferentialAbove(s sensor.Snapshot, threshold int) bool {
	return abs(s.RightPhoto-s.LeftPhoto) > threshold
}

// RangeAboveExclusive is true iff exactly one range reading exceeds threshold.
// Both sides high is treated as ambiguous and does not trigger.
func RangeAboveExclusive(s sensor.Snapshot, threshold int) bool {
	return (s.LeftRange > threshold) != (s.RightRange > threshold)
}

// AnyFrontContact reports any triggered front bumper.
func AnyFrontContact(s sensor.Snapshot) bool {
	return s.Front.Any()
}

// AnyBackContact reports any triggered back bumper.
func AnyBackContact(s sensor.Snapshot) bool {
	return s.Back.Any()
}

// #endregion predicates

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
