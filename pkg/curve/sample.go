package curve

// tangentCache holds one finite-difference tangent per keyframe, valid only
// while dirty is false. Any structural edit marks it dirty; the first spline
// sample afterwards rebuilds it in full.
type tangentCache struct {
	tangents []Value
	dirty    bool
}

func (tc *tangentCache) markDirty() { tc.dirty = true }

func (tc *tangentCache) discard() {
	tc.tangents = nil
	tc.dirty = true
}

// Sample evaluates the curve at time t, already mapped into the curve's own
// time domain by the playback driver. Outside the keyed range the boundary
// keyframe's value is returned unchanged. When the kind/method combination
// defines no interpolation arithmetic the condition is logged and the empty
// sentinel Value is returned; sinks must skip it.
//
// The bracket search is a forward scan, which is fine at authoring-scale
// keyframe counts.
func (c *Curve) Sample(t float64) Value {
	frames := c.keys.frames
	if len(frames) == 0 {
		return Value{}
	}
	if t < frames[0].Time {
		return frames[0].Value
	}

	index := 1
	for ; index < len(frames); index++ {
		if t < frames[index].Time {
			break
		}
	}
	if index >= len(frames) {
		return frames[index-1].Value
	}

	if c.method == MethodSpline {
		return c.splineSample(index-1, index, t)
	}
	return c.linearSample(index-1, index, t)
}

func (c *Curve) linearSample(i1, i2 int, t float64) Value {
	k1 := c.keys.frames[i1]
	k2 := c.keys.frames[i2]

	u := (t - k1.Time) / (k2.Time - k1.Time)
	v, ok := lerpValue(k1.Value, k2.Value, u)
	if !ok {
		c.logger.Error("invalid value kind for linear interpolation", "kind", c.kind)
		return Value{}
	}
	return v
}

func (c *Curve) splineSample(i1, i2 int, t float64) Value {
	if c.tangents.dirty {
		c.rebuildTangents()
	}
	if len(c.tangents.tangents) != c.keys.len() {
		c.logger.Error("spline sampling on a curve without enough keyframes", "keyframes", c.keys.len())
		return Value{}
	}

	k1 := c.keys.frames[i1]
	k2 := c.keys.frames[i2]

	u := (t - k1.Time) / (k2.Time - k1.Time)
	uu := u * u
	uuu := u * uu

	h1 := 2*uuu - 3*uu + 1
	h2 := -2*uuu + 3*uu
	h3 := uuu - 2*uu + u
	h4 := uuu - uu

	v, ok := hermiteValue(k1.Value, k2.Value, c.tangents.tangents[i1], c.tangents.tangents[i2], h1, h2, h3, h4)
	if !ok {
		c.logger.Error("invalid value kind for spline interpolation", "kind", c.kind)
		return Value{}
	}
	return v
}

// rebuildTangents recomputes the finite-difference tangents for every
// keyframe. Interior tangents are (k[i+1] - k[i-1]) * tension; both endpoint
// tangents are forced to exactly zero regardless of tension, which is
// visible in sampled output near the ends.
func (c *Curve) rebuildTangents() {
	c.tangents.tangents = nil
	if !c.IsValid() {
		return
	}

	frames := c.keys.frames
	n := len(frames)
	tangents := make([]Value, n)
	for i := 1; i < n-1; i++ {
		tangents[i], _ = subScaleValue(frames[i+1].Value, frames[i-1].Value, c.tension)
	}
	zero, _ := subScaleValue(frames[0].Value, frames[0].Value, c.tension)
	tangents[0] = zero
	tangents[n-1] = zero

	c.tangents.tangents = tangents
	c.tangents.dirty = false
}
