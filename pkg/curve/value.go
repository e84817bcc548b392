package curve

import (
	"fmt"
	"math"
)

// Kind identifies the payload type carried by a Value.
type Kind uint8

const (
	KindUnset Kind = iota
	KindFloat
	KindVector2
	KindVector3
	KindVector4
	KindRotation
	KindColor
	KindIntRect
	KindIntVector2
)

var kindNames = map[Kind]string{
	KindUnset:      "unset",
	KindFloat:      "float",
	KindVector2:    "vector2",
	KindVector3:    "vector3",
	KindVector4:    "vector4",
	KindRotation:   "rotation",
	KindColor:      "color",
	KindIntRect:    "intrect",
	KindIntVector2: "intvector2",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a kind name, as used in persisted documents, back to a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name && k != KindUnset {
			return k, nil
		}
	}
	return KindUnset, fmt.Errorf("unknown value kind %q", name)
}

// Integer reports whether the kind holds integer components. Integer kinds
// only support linear interpolation.
func (k Kind) Integer() bool {
	return k == KindIntRect || k == KindIntVector2
}

// Vec2 is a 2-component float vector.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Lerp linearly interpolates between v and o.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return v.Add(o.Sub(v).Mul(t))
}

// Vec3 is a 3-component float vector.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Lerp linearly interpolates between v and o.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Add(o.Sub(v).Mul(t))
}

// Vec4 is a 4-component float vector.
type Vec4 struct {
	X, Y, Z, W float64
}

func (v Vec4) Add(o Vec4) Vec4 { return Vec4{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.W + o.W} }
func (v Vec4) Sub(o Vec4) Vec4 { return Vec4{v.X - o.X, v.Y - o.Y, v.Z - o.Z, v.W - o.W} }
func (v Vec4) Mul(s float64) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Lerp linearly interpolates between v and o.
func (v Vec4) Lerp(o Vec4, t float64) Vec4 {
	return v.Add(o.Sub(v).Mul(t))
}

// Quat is a rotation quaternion, W first.
type Quat struct {
	W, X, Y, Z float64
}

// QuatIdentity is the no-rotation quaternion.
var QuatIdentity = Quat{W: 1}

func (q Quat) Add(o Quat) Quat { return Quat{q.W + o.W, q.X + o.X, q.Y + o.Y, q.Z + o.Z} }
func (q Quat) Sub(o Quat) Quat { return Quat{q.W - o.W, q.X - o.X, q.Y - o.Y, q.Z - o.Z} }
func (q Quat) Mul(s float64) Quat {
	return Quat{q.W * s, q.X * s, q.Y * s, q.Z * s}
}

// Dot returns the 4D dot product of q and o.
func (q Quat) Dot(o Quat) float64 {
	return q.W*o.W + q.X*o.X + q.Y*o.Y + q.Z*o.Z
}

// Normalize returns q scaled to unit length. Returns the identity when q is
// degenerate.
func (q Quat) Normalize() Quat {
	n := math.Sqrt(q.Dot(q))
	if n == 0 {
		return QuatIdentity
	}
	return q.Mul(1 / n)
}

// Slerp spherically interpolates between q and o, taking the shortest arc.
func (q Quat) Slerp(o Quat, t float64) Quat {
	d := q.Dot(o)
	if d < 0 {
		o = o.Mul(-1)
		d = -d
	}
	// Nearly parallel rotations: fall back to normalized linear blend to
	// avoid dividing by a vanishing sine.
	if d > 0.9995 {
		return q.Add(o.Sub(q).Mul(t)).Normalize()
	}
	theta := math.Acos(d)
	sinTheta := math.Sin(theta)
	w1 := math.Sin((1-t)*theta) / sinTheta
	w2 := math.Sin(t*theta) / sinTheta
	return q.Mul(w1).Add(o.Mul(w2))
}

// Color is an RGBA color with float components.
type Color struct {
	R, G, B, A float64
}

func (c Color) Add(o Color) Color { return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A} }
func (c Color) Sub(o Color) Color { return Color{c.R - o.R, c.G - o.G, c.B - o.B, c.A - o.A} }
func (c Color) Mul(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Lerp linearly interpolates between c and o, including alpha.
func (c Color) Lerp(o Color, t float64) Color {
	return c.Add(o.Sub(c).Mul(t))
}

// IntRect is an integer rectangle.
type IntRect struct {
	Left, Top, Right, Bottom int
}

// Lerp blends r toward o at parameter t, truncating each component back to
// an integer.
func (r IntRect) Lerp(o IntRect, t float64) IntRect {
	s := 1 - t
	return IntRect{
		Left:   int(float64(r.Left)*s + float64(o.Left)*t),
		Top:    int(float64(r.Top)*s + float64(o.Top)*t),
		Right:  int(float64(r.Right)*s + float64(o.Right)*t),
		Bottom: int(float64(r.Bottom)*s + float64(o.Bottom)*t),
	}
}

// IntVec2 is a 2-component integer vector.
type IntVec2 struct {
	X, Y int
}

// Lerp blends v toward o at parameter t, truncating each component back to
// an integer.
func (v IntVec2) Lerp(o IntVec2, t float64) IntVec2 {
	s := 1 - t
	return IntVec2{
		X: int(float64(v.X)*s + float64(o.X)*t),
		Y: int(float64(v.Y)*s + float64(o.Y)*t),
	}
}

// Value is a kind-tagged union over the payload types a curve can animate.
// The zero Value has KindUnset and doubles as the "no result" sentinel
// returned when sampling fails.
type Value struct {
	kind Kind
	num  [4]float64
	i    [4]int
}

// FloatValue wraps a float payload.
func FloatValue(f float64) Value {
	return Value{kind: KindFloat, num: [4]float64{f}}
}

// Vector2Value wraps a Vec2 payload.
func Vector2Value(v Vec2) Value {
	return Value{kind: KindVector2, num: [4]float64{v.X, v.Y}}
}

// Vector3Value wraps a Vec3 payload.
func Vector3Value(v Vec3) Value {
	return Value{kind: KindVector3, num: [4]float64{v.X, v.Y, v.Z}}
}

// Vector4Value wraps a Vec4 payload.
func Vector4Value(v Vec4) Value {
	return Value{kind: KindVector4, num: [4]float64{v.X, v.Y, v.Z, v.W}}
}

// RotationValue wraps a quaternion payload.
func RotationValue(q Quat) Value {
	return Value{kind: KindRotation, num: [4]float64{q.W, q.X, q.Y, q.Z}}
}

// ColorValue wraps an RGBA color payload.
func ColorValue(c Color) Value {
	return Value{kind: KindColor, num: [4]float64{c.R, c.G, c.B, c.A}}
}

// IntRectValue wraps an integer rectangle payload.
func IntRectValue(r IntRect) Value {
	return Value{kind: KindIntRect, i: [4]int{r.Left, r.Top, r.Right, r.Bottom}}
}

// IntVector2Value wraps an integer vector payload.
func IntVector2Value(v IntVec2) Value {
	return Value{kind: KindIntVector2, i: [4]int{v.X, v.Y}}
}

// Kind returns the discriminant of the union.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether v is the unset sentinel. Sinks must treat an empty
// sampled value as "skip this update."
func (v Value) IsEmpty() bool { return v.kind == KindUnset }

// Float returns the float payload. Valid only for KindFloat.
func (v Value) Float() float64 { return v.num[0] }

// Vector2 returns the Vec2 payload. Valid only for KindVector2.
func (v Value) Vector2() Vec2 { return Vec2{v.num[0], v.num[1]} }

// Vector3 returns the Vec3 payload. Valid only for KindVector3.
func (v Value) Vector3() Vec3 { return Vec3{v.num[0], v.num[1], v.num[2]} }

// Vector4 returns the Vec4 payload. Valid only for KindVector4.
func (v Value) Vector4() Vec4 { return Vec4{v.num[0], v.num[1], v.num[2], v.num[3]} }

// Rotation returns the quaternion payload. Valid only for KindRotation.
func (v Value) Rotation() Quat { return Quat{v.num[0], v.num[1], v.num[2], v.num[3]} }

// Color returns the color payload. Valid only for KindColor.
func (v Value) Color() Color { return Color{v.num[0], v.num[1], v.num[2], v.num[3]} }

// IntRect returns the rectangle payload. Valid only for KindIntRect.
func (v Value) IntRect() IntRect { return IntRect{v.i[0], v.i[1], v.i[2], v.i[3]} }

// IntVector2 returns the integer vector payload. Valid only for
// KindIntVector2.
func (v Value) IntVector2() IntVec2 { return IntVec2{v.i[0], v.i[1]} }

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool { return v == o }

func (v Value) String() string {
	switch v.kind {
	case KindUnset:
		return "unset"
	case KindFloat:
		return fmt.Sprintf("%g", v.num[0])
	case KindVector2:
		return fmt.Sprintf("(%g, %g)", v.num[0], v.num[1])
	case KindVector3:
		return fmt.Sprintf("(%g, %g, %g)", v.num[0], v.num[1], v.num[2])
	case KindVector4, KindColor:
		return fmt.Sprintf("(%g, %g, %g, %g)", v.num[0], v.num[1], v.num[2], v.num[3])
	case KindRotation:
		return fmt.Sprintf("(w=%g, %g, %g, %g)", v.num[0], v.num[1], v.num[2], v.num[3])
	case KindIntRect:
		return fmt.Sprintf("(%d, %d, %d, %d)", v.i[0], v.i[1], v.i[2], v.i[3])
	case KindIntVector2:
		return fmt.Sprintf("(%d, %d)", v.i[0], v.i[1])
	}
	return "invalid"
}

// lerpValue blends two values of the same kind at parameter t. Rotations use
// spherical blending; integer kinds blend in float space and truncate. The
// second result is false when the kind defines no linear blend.
func lerpValue(a, b Value, t float64) (Value, bool) {
	switch a.kind {
	case KindFloat:
		return FloatValue(a.Float() + (b.Float()-a.Float())*t), true
	case KindVector2:
		return Vector2Value(a.Vector2().Lerp(b.Vector2(), t)), true
	case KindVector3:
		return Vector3Value(a.Vector3().Lerp(b.Vector3(), t)), true
	case KindVector4:
		return Vector4Value(a.Vector4().Lerp(b.Vector4(), t)), true
	case KindRotation:
		return RotationValue(a.Rotation().Slerp(b.Rotation(), t)), true
	case KindColor:
		return ColorValue(a.Color().Lerp(b.Color(), t)), true
	case KindIntRect:
		return IntRectValue(a.IntRect().Lerp(b.IntRect(), t)), true
	case KindIntVector2:
		return IntVector2Value(a.IntVector2().Lerp(b.IntVector2(), t)), true
	}
	return Value{}, false
}

// subScaleValue computes (a - b) * s componentwise. Used for tangent
// estimation; rotations are treated componentwise here, matching the
// finite-difference definition rather than any rotational arithmetic.
func subScaleValue(a, b Value, s float64) (Value, bool) {
	switch a.kind {
	case KindFloat:
		return FloatValue((a.Float() - b.Float()) * s), true
	case KindVector2:
		return Vector2Value(a.Vector2().Sub(b.Vector2()).Mul(s)), true
	case KindVector3:
		return Vector3Value(a.Vector3().Sub(b.Vector3()).Mul(s)), true
	case KindVector4:
		return Vector4Value(a.Vector4().Sub(b.Vector4()).Mul(s)), true
	case KindRotation:
		return RotationValue(a.Rotation().Sub(b.Rotation()).Mul(s)), true
	case KindColor:
		return ColorValue(a.Color().Sub(b.Color()).Mul(s)), true
	}
	return Value{}, false
}

// hermiteValue evaluates the cubic Hermite basis combination
// v1*h1 + v2*h2 + t1*h3 + t2*h4. Rotations and integer kinds define no
// spline arithmetic; the second result is false for those.
func hermiteValue(v1, v2, t1, t2 Value, h1, h2, h3, h4 float64) (Value, bool) {
	switch v1.kind {
	case KindFloat:
		return FloatValue(v1.Float()*h1 + v2.Float()*h2 + t1.Float()*h3 + t2.Float()*h4), true
	case KindVector2:
		return Vector2Value(v1.Vector2().Mul(h1).Add(v2.Vector2().Mul(h2)).Add(t1.Vector2().Mul(h3)).Add(t2.Vector2().Mul(h4))), true
	case KindVector3:
		return Vector3Value(v1.Vector3().Mul(h1).Add(v2.Vector3().Mul(h2)).Add(t1.Vector3().Mul(h3)).Add(t2.Vector3().Mul(h4))), true
	case KindVector4:
		return Vector4Value(v1.Vector4().Mul(h1).Add(v2.Vector4().Mul(h2)).Add(t1.Vector4().Mul(h3)).Add(t2.Vector4().Mul(h4))), true
	case KindColor:
		return ColorValue(v1.Color().Mul(h1).Add(v2.Color().Mul(h2)).Add(t1.Color().Mul(h3)).Add(t2.Color().Mul(h4))), true
	}
	return Value{}, false
}
