// Package clip aggregates named animation curves and drives them against an
// attribute-application sink. A clip never owns the animated target; it only
// produces values and events for the sink supplied by the playback driver.
package clip

import (
	"log/slog"
	"math"
	"sort"

	"github.com/kboxsoft/animcurve/pkg/curve"
)

// Applier is the attribute-application sink. The driver invokes it once per
// successful sample; it mutates whatever target the driver owns.
type Applier interface {
	ApplyAttribute(name string, v curve.Value)
}

// ApplierFunc adapts a function to the Applier interface.
type ApplierFunc func(name string, v curve.Value)

func (f ApplierFunc) ApplyAttribute(name string, v curve.Value) { f(name, v) }

// EventHandler receives event frames crossed during playback, together with
// the attribute name of the curve that carries them.
type EventHandler func(attr string, frame curve.EventFrame)

// Clip is a named set of curves keyed by the attribute they drive.
type Clip struct {
	logger *slog.Logger
	name   string
	curves map[string]*curve.Curve
}

// New creates an empty clip. A nil logger falls back to slog.Default.
func New(name string, logger *slog.Logger) *Clip {
	if logger == nil {
		logger = slog.Default()
	}
	return &Clip{
		logger: logger,
		name:   name,
		curves: make(map[string]*curve.Curve),
	}
}

// Name returns the clip's identifier.
func (c *Clip) Name() string { return c.name }

// SetCurve associates a curve with an attribute name, replacing any
// previous association.
func (c *Clip) SetCurve(attr string, cu *curve.Curve) {
	c.curves[attr] = cu
}

// Curve returns the curve driving the named attribute, or nil.
func (c *Clip) Curve(attr string) *curve.Curve {
	return c.curves[attr]
}

// RemoveCurve drops the curve for the named attribute.
func (c *Clip) RemoveCurve(attr string) {
	delete(c.curves, attr)
}

// Attributes returns the attribute names in sorted order.
func (c *Clip) Attributes() []string {
	names := make([]string, 0, len(c.curves))
	for name := range c.curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply samples every valid curve at time t and hands the results to the
// sink, one call per attribute. Curves without enough keyframes for their
// method are skipped, as are empty sentinel samples. Returns the number of
// attributes applied.
func (c *Clip) Apply(t float64, sink Applier) int {
	applied := 0
	for _, attr := range c.Attributes() {
		cu := c.curves[attr]
		if !cu.IsValid() {
			c.logger.Debug("skipping curve without enough keyframes",
				"clip", c.name, "attribute", attr, "keyframes", cu.Len())
			continue
		}
		v := cu.Sample(t)
		if v.IsEmpty() {
			continue
		}
		sink.ApplyAttribute(attr, v)
		applied++
	}
	return applied
}

// EmitEvents dispatches every event frame with begin <= time < end across
// all curves to the handler, per curve in ascending time order. Returns the
// number of events emitted.
func (c *Clip) EmitEvents(begin, end float64, handler EventHandler) int {
	emitted := 0
	for _, attr := range c.Attributes() {
		for _, frame := range c.curves[attr].QueryEvents(begin, end) {
			handler(attr, frame)
			emitted++
		}
	}
	return emitted
}

// BeginTime returns the smallest keyframe time across all curves, or +Inf
// when the clip has no keyframes.
func (c *Clip) BeginTime() float64 {
	begin := math.Inf(1)
	for _, cu := range c.curves {
		if cu.BeginTime() < begin {
			begin = cu.BeginTime()
		}
	}
	return begin
}

// EndTime returns the largest keyframe time across all curves, or -Inf when
// the clip has no keyframes.
func (c *Clip) EndTime() float64 {
	end := math.Inf(-1)
	for _, cu := range c.curves {
		if cu.EndTime() > end {
			end = cu.EndTime()
		}
	}
	return end
}
