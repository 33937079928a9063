package trigger

import (
	"testing"

	"github.com/danielpatrickdp/subsumption/go-controller/internal/sensor"
)

func TestRangeAboveExclusive(t *testing.T) {
	const threshold = 1600
	cases := []struct {
		name        string
		left, right int
		want        bool
	}{
		{"neither", 100, 200, false},
		{"both", 1700, 2000, false},
		{"left only", 1601, 1600, true},
		{"right only", 0, 4000, true},
		{"equal to threshold is not above", 1600, 1600, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := sensor.Snapshot{LeftRange: tc.left, RightRange: tc.right}
			if got := RangeAboveExclusive(s, threshold); got != tc.want {
				t.Fatalf("RangeAboveExclusive(%d, %d) = %v, want %v", tc.left, tc.right, got, tc.want)
			}
		})
	}
}

func TestRangeAboveExclusiveSweep(t *testing.T) {
	const threshold = 500
	for left := 0; left <= 1000; left += 50 {
		for right := 0; right <= 1000; right += 50 {
			s := sensor.Snapshot{LeftRange: left, RightRange: right}
			l, r := left > threshold, right > threshold
			got := RangeAboveExclusive(s, threshold)
			if l == r && got {
				t.Fatalf("(%d,%d): bilateral or silent reading triggered", left, right)
			}
			if l != r && !got {
				t.Fatalf("(%d,%d): one-sided reading did not trigger", left, right)
			}
		}
	}
}

func TestPhotoDifferentialAbove(t *testing.T) {
	s := sensor.Snapshot{LeftPhoto: 300, RightPhoto: 500}
	if !PhotoDifferentialAbove(s, 150) {
		t.Fatal("200 > 150 should trigger")
	}
	if PhotoDifferentialAbove(s, 200) {
		t.Fatal("200 is not strictly above 200")
	}
	s.LeftPhoto, s.RightPhoto = s.RightPhoto, s.LeftPhoto
	if !PhotoDifferentialAbove(s, 150) {
		t.Fatal("differential must be symmetric")
	}
}

func TestContacts(t *testing.T) {
	var s sensor.Snapshot
	if AnyFrontContact(s) || AnyBackContact(s) {
		t.Fatal("empty snapshot has no contacts")
	}
	s.Front.Center = true
	if !AnyFrontContact(s) || AnyBackContact(s) {
		t.Fatal("front center should only trigger front")
	}
	s.Back.Right = true
	if !AnyBackContact(s) {
		t.Fatal("back right should trigger back")
	}
}

func TestThresholdsBindPredicates(t *testing.T) {
	th := DefaultThresholds()
	th.Approach = 800
	s := sensor.Snapshot{LeftRange: 1000}
	if th.AvoidTriggered(s) {
		t.Fatal("1000 is below the avoid threshold")
	}
	if !th.ApproachTriggered(s) {
		t.Fatal("1000 is above the approach threshold")
	}
	s = sensor.Snapshot{LeftPhoto: 0, RightPhoto: 151}
	if !th.PhotoTriggered(s) {
		t.Fatal("151 differential exceeds default 150")
	}
	// Pure: repeated evaluation yields the same answer.
	for i := 0; i < 3; i++ {
		if !th.PhotoTriggered(s) {
			t.Fatal("predicate changed between calls")
		}
	}
}
