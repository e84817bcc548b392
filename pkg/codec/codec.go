// Package codec persists animation curves. A Document is the staged,
// format-agnostic model shared by the JSON and YAML round-trip codecs and
// the HCL authoring format; curves are only built after a document decodes
// in full, so a malformed file never leaves a half-loaded curve behind.
package codec

import (
	"fmt"
	"log/slog"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/kboxsoft/animcurve/pkg/clip"
	"github.com/kboxsoft/animcurve/pkg/curve"
)

// Document is the persisted representation of a set of curves, typically
// one clip's worth.
type Document struct {
	Curves []CurveDoc `json:"curves" yaml:"curves"`
}

// CurveDoc holds one curve: its ordered keyframe records, ordered event
// records, and interpolation metadata. Name is the attribute the curve
// drives.
type CurveDoc struct {
	Name      string        `json:"name" yaml:"name"`
	Method    string        `json:"method,omitempty" yaml:"method,omitempty"`
	Tension   *float64      `json:"tension,omitempty" yaml:"tension,omitempty"`
	Keyframes []KeyframeDoc `json:"keyframes" yaml:"keyframes"`
	Events    []EventDoc    `json:"events,omitempty" yaml:"events,omitempty"`
}

// KeyframeDoc is one (time, typed value) record. Value holds the loose
// decoded form: a number, an array of numbers, or a hex color string.
type KeyframeDoc struct {
	Time  float64 `json:"time" yaml:"time"`
	Kind  string  `json:"kind" yaml:"kind"`
	Value any     `json:"value" yaml:"value"`
}

// EventDoc is one (time, event, payload) record. Authored documents name
// the event; saved documents carry the hashed id, which loads back
// unchanged.
type EventDoc struct {
	Time    float64        `json:"time" yaml:"time"`
	Event   string         `json:"event,omitempty" yaml:"event,omitempty"`
	EventID uint32         `json:"eventid,omitempty" yaml:"eventid,omitempty"`
	Data    map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// DecodeValue converts a loose keyframe value into a typed curve value.
func DecodeValue(kindName string, raw any) (curve.Value, error) {
	kind, err := curve.ParseKind(kindName)
	if err != nil {
		return curve.Value{}, err
	}

	switch kind {
	case curve.KindFloat:
		f, err := toFloat(raw)
		if err != nil {
			return curve.Value{}, err
		}
		return curve.FloatValue(f), nil

	case curve.KindVector2:
		c, err := toFloats(raw, 2)
		if err != nil {
			return curve.Value{}, err
		}
		return curve.Vector2Value(curve.Vec2{X: c[0], Y: c[1]}), nil

	case curve.KindVector3:
		c, err := toFloats(raw, 3)
		if err != nil {
			return curve.Value{}, err
		}
		return curve.Vector3Value(curve.Vec3{X: c[0], Y: c[1], Z: c[2]}), nil

	case curve.KindVector4:
		c, err := toFloats(raw, 4)
		if err != nil {
			return curve.Value{}, err
		}
		return curve.Vector4Value(curve.Vec4{X: c[0], Y: c[1], Z: c[2], W: c[3]}), nil

	case curve.KindRotation:
		c, err := toFloats(raw, 4)
		if err != nil {
			return curve.Value{}, err
		}
		return curve.RotationValue(curve.Quat{W: c[0], X: c[1], Y: c[2], Z: c[3]}), nil

	case curve.KindColor:
		return decodeColor(raw)

	case curve.KindIntRect:
		c, err := toInts(raw, 4)
		if err != nil {
			return curve.Value{}, err
		}
		return curve.IntRectValue(curve.IntRect{Left: c[0], Top: c[1], Right: c[2], Bottom: c[3]}), nil

	case curve.KindIntVector2:
		c, err := toInts(raw, 2)
		if err != nil {
			return curve.Value{}, err
		}
		return curve.IntVector2Value(curve.IntVec2{X: c[0], Y: c[1]}), nil
	}
	return curve.Value{}, fmt.Errorf("unsupported value kind %q", kindName)
}

// EncodeValue converts a typed curve value into its loose persisted form
// and the kind name that accompanies it.
func EncodeValue(v curve.Value) (string, any, error) {
	switch v.Kind() {
	case curve.KindFloat:
		return v.Kind().String(), v.Float(), nil
	case curve.KindVector2:
		p := v.Vector2()
		return v.Kind().String(), []float64{p.X, p.Y}, nil
	case curve.KindVector3:
		p := v.Vector3()
		return v.Kind().String(), []float64{p.X, p.Y, p.Z}, nil
	case curve.KindVector4:
		p := v.Vector4()
		return v.Kind().String(), []float64{p.X, p.Y, p.Z, p.W}, nil
	case curve.KindRotation:
		q := v.Rotation()
		return v.Kind().String(), []float64{q.W, q.X, q.Y, q.Z}, nil
	case curve.KindColor:
		c := v.Color()
		if c.A == 1 && inUnitRange(c.R) && inUnitRange(c.G) && inUnitRange(c.B) {
			hex := colorful.Color{R: c.R, G: c.G, B: c.B}.Hex()
			return v.Kind().String(), hex, nil
		}
		return v.Kind().String(), []float64{c.R, c.G, c.B, c.A}, nil
	case curve.KindIntRect:
		r := v.IntRect()
		return v.Kind().String(), []int{r.Left, r.Top, r.Right, r.Bottom}, nil
	case curve.KindIntVector2:
		p := v.IntVector2()
		return v.Kind().String(), []int{p.X, p.Y}, nil
	}
	return "", nil, fmt.Errorf("cannot encode value of kind %v", v.Kind())
}

func decodeColor(raw any) (curve.Value, error) {
	if hex, ok := raw.(string); ok {
		c, err := colorful.Hex(hex)
		if err != nil {
			return curve.Value{}, fmt.Errorf("invalid color %q: %w", hex, err)
		}
		return curve.ColorValue(curve.Color{R: c.R, G: c.G, B: c.B, A: 1}), nil
	}
	comps, err := toFloats(raw, 0)
	if err != nil {
		return curve.Value{}, err
	}
	switch len(comps) {
	case 3:
		return curve.ColorValue(curve.Color{R: comps[0], G: comps[1], B: comps[2], A: 1}), nil
	case 4:
		return curve.ColorValue(curve.Color{R: comps[0], G: comps[1], B: comps[2], A: comps[3]}), nil
	}
	return curve.Value{}, fmt.Errorf("color needs a hex string or 3-4 components, got %d", len(comps))
}

func inUnitRange(f float64) bool { return f >= 0 && f <= 1 }

func toFloat(raw any) (float64, error) {
	switch n := raw.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("expected a number, got %T", raw)
}

// toFloats coerces a decoded array into float components. want == 0 accepts
// any length.
func toFloats(raw any, want int) ([]float64, error) {
	var items []any
	switch arr := raw.(type) {
	case []any:
		items = arr
	case []float64:
		if want != 0 && len(arr) != want {
			return nil, fmt.Errorf("expected %d components, got %d", want, len(arr))
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("expected an array of numbers, got %T", raw)
	}

	if want != 0 && len(items) != want {
		return nil, fmt.Errorf("expected %d components, got %d", want, len(items))
	}
	out := make([]float64, len(items))
	for i, item := range items {
		f, err := toFloat(item)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

func toInts(raw any, want int) ([]int, error) {
	if arr, ok := raw.([]int); ok {
		if len(arr) != want {
			return nil, fmt.Errorf("expected %d components, got %d", want, len(arr))
		}
		return arr, nil
	}
	floats, err := toFloats(raw, want)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(floats))
	for i, f := range floats {
		if f != float64(int(f)) {
			return nil, fmt.Errorf("component %d: expected an integer, got %v", i, f)
		}
		out[i] = int(f)
	}
	return out, nil
}

// BuildCurve converts one staged curve record into a live curve. The curve
// is built from scratch; on any malformed record the error propagates and
// no partial state escapes.
func BuildCurve(doc CurveDoc, logger *slog.Logger) (*curve.Curve, error) {
	c := curve.New(logger)

	if doc.Method != "" {
		m, err := curve.ParseMethod(doc.Method)
		if err != nil {
			return nil, fmt.Errorf("curve %q: %w", doc.Name, err)
		}
		c.SetMethod(m)
	}
	if doc.Tension != nil {
		c.SetTension(*doc.Tension)
	}

	for i, kf := range doc.Keyframes {
		v, err := DecodeValue(kf.Kind, kf.Value)
		if err != nil {
			return nil, fmt.Errorf("curve %q keyframe %d: %w", doc.Name, i, err)
		}
		if err := c.InsertKeyframe(kf.Time, v); err != nil {
			return nil, fmt.Errorf("curve %q keyframe %d: %w", doc.Name, i, err)
		}
	}

	for i, ev := range doc.Events {
		id := ev.EventID
		if ev.Event != "" {
			id = curve.EventID(ev.Event)
		}
		if id == 0 {
			return nil, fmt.Errorf("curve %q eventframe %d: needs an event name or id", doc.Name, i)
		}
		c.InsertEvent(ev.Time, id, ev.Data)
	}

	return c, nil
}

// CurveToDoc converts a live curve back into its persisted record. Records
// come out in the curve's current sorted order, so reloading them through
// the ordered-insert path reproduces the same sequences.
func CurveToDoc(name string, c *curve.Curve) (CurveDoc, error) {
	tension := c.Tension()
	doc := CurveDoc{
		Name:    name,
		Method:  c.Method().String(),
		Tension: &tension,
	}

	for _, kf := range c.Keyframes() {
		kind, raw, err := EncodeValue(kf.Value)
		if err != nil {
			return CurveDoc{}, fmt.Errorf("curve %q: %w", name, err)
		}
		doc.Keyframes = append(doc.Keyframes, KeyframeDoc{Time: kf.Time, Kind: kind, Value: raw})
	}
	for _, ev := range c.Events() {
		doc.Events = append(doc.Events, EventDoc{Time: ev.Time, EventID: ev.EventID, Data: ev.Data})
	}
	return doc, nil
}

// ToClip builds a clip from a staged document. Curve names become attribute
// names; duplicates are malformed.
func ToClip(doc *Document, name string, logger *slog.Logger) (*clip.Clip, error) {
	cl := clip.New(name, logger)
	for _, cd := range doc.Curves {
		if cd.Name == "" {
			return nil, fmt.Errorf("clip %q: curve without a name", name)
		}
		if cl.Curve(cd.Name) != nil {
			return nil, fmt.Errorf("clip %q: duplicate curve %q", name, cd.Name)
		}
		c, err := BuildCurve(cd, logger)
		if err != nil {
			return nil, err
		}
		cl.SetCurve(cd.Name, c)
	}
	return cl, nil
}

// FromClip converts a clip into a document, one curve record per attribute
// in sorted order.
func FromClip(cl *clip.Clip) (*Document, error) {
	doc := &Document{}
	for _, attr := range cl.Attributes() {
		cd, err := CurveToDoc(attr, cl.Curve(attr))
		if err != nil {
			return nil, err
		}
		doc.Curves = append(doc.Curves, cd)
	}
	return doc, nil
}
