// Package curve evaluates time-varying values that drive scalar, vector,
// rotation and color properties, and carries discrete timed event markers on
// the same timeline. A Curve holds one ordered keyframe track and one
// ordered event track; sampling interpolates between keyframes with either a
// piecewise-linear or a cubic Hermite spline method.
package curve

import (
	"errors"
	"log/slog"
)

// Method selects the interpolation algorithm used by Sample.
type Method uint8

const (
	MethodLinear Method = iota
	MethodSpline
)

func (m Method) String() string {
	if m == MethodSpline {
		return "spline"
	}
	return "linear"
}

// ParseMethod maps a method name, as used in persisted documents, back to a
// Method.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "linear":
		return MethodLinear, nil
	case "spline":
		return MethodSpline, nil
	}
	return MethodLinear, errors.New("unknown interpolation method " + name)
}

// ErrTypeMismatch is returned when a keyframe's value kind disagrees with
// the kind already fixed on the curve. The curve is left unchanged.
var ErrTypeMismatch = errors.New("keyframe value kind does not match curve kind")

// DefaultTension is the spline tension applied to new curves.
const DefaultTension = 0.5

// Curve owns a keyframe track, an event track and the spline tangent cache.
// A new curve has no kind; the first inserted keyframe fixes it.
//
// A Curve is not safe for concurrent mutation while sampling: the tangent
// cache is rebuilt in place on the first spline sample after an edit.
// Callers either alternate edit and sample phases or guard the curve with a
// single-writer lock.
type Curve struct {
	logger   *slog.Logger
	kind     Kind
	method   Method
	tension  float64
	keys     keyframeTrack
	events   eventTrack
	tangents tangentCache
}

// New creates an empty curve. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Curve {
	if logger == nil {
		logger = slog.Default()
	}
	return &Curve{
		logger:  logger,
		method:  MethodLinear,
		tension: DefaultTension,
		keys:    newKeyframeTrack(),
	}
}

// Kind returns the value kind fixed on the curve, or KindUnset.
func (c *Curve) Kind() Kind { return c.kind }

// Method returns the effective interpolation method.
func (c *Curve) Method() Method { return c.method }

// Tension returns the spline tension.
func (c *Curve) Tension() float64 { return c.tension }

// BeginTime returns the smallest keyframe time, or +Inf while empty.
func (c *Curve) BeginTime() float64 { return c.keys.begin }

// EndTime returns the largest keyframe time, or -Inf while empty.
func (c *Curve) EndTime() float64 { return c.keys.end }

// Len returns the number of keyframes.
func (c *Curve) Len() int { return c.keys.len() }

// SetKind fixes the curve's value kind. Changing to a different kind clears
// all keyframes, resets the time bounds and discards the tangent cache.
// Integer kinds force the method back to linear.
func (c *Curve) SetKind(k Kind) {
	if k == c.kind {
		return
	}
	c.kind = k
	if k.Integer() {
		c.method = MethodLinear
	}
	c.keys.clear()
	c.tangents.discard()
}

// SetMethod selects the interpolation method. Integer kinds are restricted
// to linear; a spline request on them is silently overridden.
func (c *Curve) SetMethod(m Method) {
	if c.kind.Integer() {
		m = MethodLinear
	}
	if m == c.method {
		return
	}
	c.method = m
	c.tangents.markDirty()
}

// SetTension sets the spline tension. The tangent cache is marked dirty and
// rebuilt lazily on the next spline sample.
func (c *Curve) SetTension(tension float64) {
	c.tension = tension
	c.tangents.markDirty()
}

// InsertKeyframe adds a (time, value) sample. The first successful insert on
// an unset curve fixes its kind from the value; afterwards a value of any
// other kind is rejected with ErrTypeMismatch, leaving the track, bounds and
// cache untouched.
func (c *Curve) InsertKeyframe(time float64, v Value) error {
	if v.IsEmpty() {
		return ErrTypeMismatch
	}
	if c.kind == KindUnset {
		c.SetKind(v.Kind())
	} else if v.Kind() != c.kind {
		return ErrTypeMismatch
	}
	c.keys.insert(time, v)
	c.tangents.markDirty()
	return nil
}

// InsertEvent adds a timed event marker. Event frames have no kind
// constraint and do not affect interpolation.
func (c *Curve) InsertEvent(time float64, eventID uint32, data map[string]any) {
	c.events.insert(EventFrame{Time: time, EventID: eventID, Data: data})
}

// IsValid reports whether the curve has enough keyframes for its method:
// two for linear, three for spline (interior points are needed for
// finite-difference tangents).
func (c *Curve) IsValid() bool {
	switch c.method {
	case MethodSpline:
		return c.keys.len() > 2
	default:
		return c.keys.len() > 1
	}
}

// QueryEvents returns every event frame with begin <= time < end, in
// ascending time order.
func (c *Curve) QueryEvents(begin, end float64) []EventFrame {
	return c.events.queryRange(begin, end)
}

// Keyframes returns a copy of the keyframe sequence in sorted order.
func (c *Curve) Keyframes() []Keyframe {
	out := make([]Keyframe, len(c.keys.frames))
	copy(out, c.keys.frames)
	return out
}

// Events returns a copy of the event sequence in sorted order.
func (c *Curve) Events() []EventFrame {
	out := make([]EventFrame, len(c.events.frames))
	copy(out, c.events.frames)
	return out
}
