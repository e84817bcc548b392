package curve

import (
	"hash/fnv"
	"slices"
)

// EventFrame is a discrete timed marker on a curve's timeline, independent
// of value interpolation. Data carries arbitrary keyed payload for the
// handler that receives the event.
type EventFrame struct {
	Time    float64
	EventID uint32
	Data    map[string]any
}

// EventID hashes a semantic event name into the identifier stored on event
// frames and in persisted documents.
func EventID(name string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(name))
	return h.Sum32()
}

// eventTrack is an ascending time-ordered sequence of event frames. Unlike
// keyframes there is no kind constraint between entries.
type eventTrack struct {
	frames []EventFrame
}

// insert places an event frame with the same ordering and equal-time
// tie-break as keyframe insertion.
func (t *eventTrack) insert(f EventFrame) {
	if len(t.frames) == 0 || f.Time >= t.frames[len(t.frames)-1].Time {
		t.frames = append(t.frames, f)
		return
	}
	for i := range t.frames {
		if f.Time < t.frames[i].Time {
			t.frames = slices.Insert(t.frames, i, f)
			return
		}
	}
}

// queryRange returns every frame with begin <= time < end, in order. The
// scan stops at the first frame at or past end, which is sound because the
// sequence is sorted.
func (t *eventTrack) queryRange(begin, end float64) []EventFrame {
	var out []EventFrame
	for _, f := range t.frames {
		if f.Time >= end {
			break
		}
		if f.Time >= begin {
			out = append(out, f)
		}
	}
	return out
}
