package curve

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInsertKeyframeKeepsSorted(t *testing.T) {
	sequences := [][]float64{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{1, 3, 0, 2},
		{2, 2, 1, 5, 0, 2},
	}

	for _, times := range sequences {
		c := New(quietLogger())
		for i, ts := range times {
			if err := c.InsertKeyframe(ts, FloatValue(float64(i))); err != nil {
				t.Fatalf("insert %v: %v", ts, err)
			}
		}

		frames := c.Keyframes()
		if len(frames) != len(times) {
			t.Fatalf("expected %d keyframes, got %d", len(times), len(frames))
		}
		for i := 1; i < len(frames); i++ {
			if frames[i].Time < frames[i-1].Time {
				t.Errorf("sequence %v: keyframes out of order at %d: %v", times, i, frames)
			}
		}

		minTime, maxTime := times[0], times[0]
		for _, ts := range times {
			minTime = math.Min(minTime, ts)
			maxTime = math.Max(maxTime, ts)
		}
		if c.BeginTime() != minTime || c.EndTime() != maxTime {
			t.Errorf("sequence %v: bounds [%v, %v], want [%v, %v]",
				times, c.BeginTime(), c.EndTime(), minTime, maxTime)
		}
	}
}

func TestInsertKeyframeEqualTimeTieBreak(t *testing.T) {
	c := New(quietLogger())
	c.InsertKeyframe(1.0, FloatValue(1))
	c.InsertKeyframe(0.5, FloatValue(2))
	c.InsertKeyframe(1.0, FloatValue(3))

	var got []float64
	for _, kf := range c.Keyframes() {
		got = append(got, kf.Value.Float())
	}
	// The new equal-time entry lands after the existing one.
	want := []float64{2, 1, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected value order %v, got %v", want, got)
		}
	}
}

func TestFirstInsertFixesKind(t *testing.T) {
	c := New(quietLogger())
	if c.Kind() != KindUnset {
		t.Fatalf("new curve should be unset, got %v", c.Kind())
	}
	if err := c.InsertKeyframe(0, Vector3Value(Vec3{1, 2, 3})); err != nil {
		t.Fatal(err)
	}
	if c.Kind() != KindVector3 {
		t.Errorf("expected kind vector3, got %v", c.Kind())
	}
}

func TestInsertKeyframeTypeMismatch(t *testing.T) {
	c := New(quietLogger())
	c.InsertKeyframe(0, FloatValue(0))
	c.InsertKeyframe(1, FloatValue(1))

	err := c.InsertKeyframe(0.5, Vector3Value(Vec3{}))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}

	if c.Len() != 2 {
		t.Errorf("rejected insert changed size: %d", c.Len())
	}
	if c.BeginTime() != 0 || c.EndTime() != 1 {
		t.Errorf("rejected insert changed bounds: [%v, %v]", c.BeginTime(), c.EndTime())
	}
	if c.Kind() != KindFloat {
		t.Errorf("rejected insert changed kind: %v", c.Kind())
	}
}

func TestInsertKeyframeEmptyValue(t *testing.T) {
	c := New(quietLogger())
	if err := c.InsertKeyframe(0, Value{}); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch for empty value, got %v", err)
	}
	if c.Kind() != KindUnset || c.Len() != 0 {
		t.Error("empty value insert must leave the curve untouched")
	}
}

func TestSetKindClearsKeyframes(t *testing.T) {
	c := New(quietLogger())
	c.InsertKeyframe(0, FloatValue(0))
	c.InsertKeyframe(2, FloatValue(4))

	c.SetKind(KindVector2)

	if c.Len() != 0 {
		t.Errorf("kind change kept %d keyframes", c.Len())
	}
	if !math.IsInf(c.BeginTime(), 1) || !math.IsInf(c.EndTime(), -1) {
		t.Errorf("bounds not reset to empty sentinels: [%v, %v]", c.BeginTime(), c.EndTime())
	}
}

func TestSetKindSameKindKeepsKeyframes(t *testing.T) {
	c := New(quietLogger())
	c.InsertKeyframe(0, FloatValue(0))
	c.SetKind(KindFloat)
	if c.Len() != 1 {
		t.Error("setting the same kind must not clear the track")
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name   string
		method Method
		count  int
		valid  bool
	}{
		{"linear one keyframe", MethodLinear, 1, false},
		{"linear two keyframes", MethodLinear, 2, true},
		{"spline two keyframes", MethodSpline, 2, false},
		{"spline three keyframes", MethodSpline, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(quietLogger())
			c.SetMethod(tt.method)
			for i := 0; i < tt.count; i++ {
				c.InsertKeyframe(float64(i), FloatValue(float64(i)))
			}
			if got := c.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestIntegerKindsForceLinear(t *testing.T) {
	c := New(quietLogger())
	c.InsertKeyframe(0, IntRectValue(IntRect{0, 0, 1, 1}))

	c.SetMethod(MethodSpline)
	if c.Method() != MethodLinear {
		t.Errorf("spline on intrect curve: method = %v, want linear", c.Method())
	}

	// Switching an already-spline curve to an integer kind drops it back
	// to linear as well.
	c2 := New(quietLogger())
	c2.SetMethod(MethodSpline)
	c2.SetKind(KindIntVector2)
	if c2.Method() != MethodLinear {
		t.Errorf("intvector2 kind on spline curve: method = %v, want linear", c2.Method())
	}
}

func TestParseMethod(t *testing.T) {
	if m, err := ParseMethod("spline"); err != nil || m != MethodSpline {
		t.Errorf("ParseMethod(spline) = %v, %v", m, err)
	}
	if m, err := ParseMethod("linear"); err != nil || m != MethodLinear {
		t.Errorf("ParseMethod(linear) = %v, %v", m, err)
	}
	if _, err := ParseMethod("cubic"); err == nil {
		t.Error("expected error for unknown method")
	}
}
