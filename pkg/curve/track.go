package curve

import (
	"math"
	"slices"
)

// Keyframe anchors a curve's value at a specific time.
type Keyframe struct {
	Time  float64
	Value Value
}

// keyframeTrack is an ascending time-ordered sequence of keyframes,
// homogeneous in kind. Bounds use +Inf/-Inf sentinels while empty.
type keyframeTrack struct {
	frames []Keyframe
	begin  float64
	end    float64
}

func newKeyframeTrack() keyframeTrack {
	return keyframeTrack{begin: math.Inf(1), end: math.Inf(-1)}
}

// insert places a keyframe keeping ascending time order. Equal-time entries
// go after all existing entries with the same time, so repeated insertions
// at one time preserve their relative order. Appending at or past the
// current maximum is the fast path.
func (t *keyframeTrack) insert(time float64, v Value) {
	t.begin = math.Min(time, t.begin)
	t.end = math.Max(time, t.end)

	kf := Keyframe{Time: time, Value: v}
	if len(t.frames) == 0 || time >= t.frames[len(t.frames)-1].Time {
		t.frames = append(t.frames, kf)
		return
	}
	for i := range t.frames {
		if time < t.frames[i].Time {
			t.frames = slices.Insert(t.frames, i, kf)
			return
		}
	}
}

// clear empties the track and resets the bounds to their empty sentinels.
func (t *keyframeTrack) clear() {
	t.frames = nil
	t.begin = math.Inf(1)
	t.end = math.Inf(-1)
}

func (t *keyframeTrack) len() int { return len(t.frames) }
