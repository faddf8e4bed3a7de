package box2d

import (
	"math"
)

///////////////////////////////////////////////////////////////////////////////
// Scalars
///////////////////////////////////////////////////////////////////////////////

/// Reports whether x is a finite number (not NaN, not infinite).
func B2IsValid(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func AbsInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

///////////////////////////////////////////////////////////////////////////////
/// A 2D column vector.
///////////////////////////////////////////////////////////////////////////////
type B2Vec2 struct {
	X, Y float64
}

func MakeB2Vec2(x, y float64) B2Vec2 {
	return B2Vec2{X: x, Y: y}
}

func NewB2Vec2(x, y float64) *B2Vec2 {
	return &B2Vec2{X: x, Y: y}
}

func (v *B2Vec2) SetZero() {
	v.X = 0.0
	v.Y = 0.0
}

func (v *B2Vec2) Set(x, y float64) {
	v.X = x
	v.Y = y
}

func (v B2Vec2) OperatorNegate() B2Vec2 {
	return B2Vec2{X: -v.X, Y: -v.Y}
}

/// Component by axis index: 0 is x, anything else is y.
func (v B2Vec2) OperatorIndexGet(i int) float64 {
	if i == 0 {
		return v.X
	}
	return v.Y
}

func (v *B2Vec2) OperatorIndexSet(i int, value float64) {
	if i == 0 {
		v.X = value
		return
	}
	v.Y = value
}

func (v *B2Vec2) OperatorPlusInplace(other B2Vec2) {
	v.X += other.X
	v.Y += other.Y
}

func (v *B2Vec2) OperatorMinusInplace(other B2Vec2) {
	v.X -= other.X
	v.Y -= other.Y
}

func (v *B2Vec2) OperatorScalarMulInplace(a float64) {
	v.X *= a
	v.Y *= a
}

func (v B2Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v B2Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

/// Convert this vector into a unit vector and return its previous length.
/// A vector shorter than B2_epsilon is left untouched and 0 is returned.
func (v *B2Vec2) Normalize() float64 {
	length := v.Length()
	if length < B2_epsilon {
		return 0.0
	}

	inv := 1.0 / length
	v.X *= inv
	v.Y *= inv

	return length
}

func (v B2Vec2) IsValid() bool {
	return B2IsValid(v.X) && B2IsValid(v.Y)
}

/// Skew vector such that dot(skew_vec, other) == cross(vec, other).
func (v B2Vec2) Skew() B2Vec2 {
	return B2Vec2{X: -v.Y, Y: v.X}
}

func (v B2Vec2) Clone() B2Vec2 {
	return v
}

var B2Vec2_zero = MakeB2Vec2(0, 0)

func B2Vec2Dot(a, b B2Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

/// 2D cross product, a scalar.
func B2Vec2Cross(a, b B2Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

/// Cross product of a vector and a scalar, a vector.
func B2Vec2CrossVectorScalar(a B2Vec2, s float64) B2Vec2 {
	return MakeB2Vec2(s*a.Y, -s*a.X)
}

/// Cross product of a scalar and a vector, a vector.
func B2Vec2CrossScalarVector(s float64, a B2Vec2) B2Vec2 {
	return MakeB2Vec2(-s*a.Y, s*a.X)
}

func B2Vec2Add(a, b B2Vec2) B2Vec2 {
	return MakeB2Vec2(a.X+b.X, a.Y+b.Y)
}

func B2Vec2Sub(a, b B2Vec2) B2Vec2 {
	return MakeB2Vec2(a.X-b.X, a.Y-b.Y)
}

func B2Vec2MulScalar(s float64, a B2Vec2) B2Vec2 {
	return MakeB2Vec2(s*a.X, s*a.Y)
}

func B2Vec2Equals(a, b B2Vec2) bool {
	return a.X == b.X && a.Y == b.Y
}

func B2Vec2NotEquals(a, b B2Vec2) bool {
	return !B2Vec2Equals(a, b)
}

func B2Vec2Distance(a, b B2Vec2) float64 {
	return B2Vec2Sub(a, b).Length()
}

func B2Vec2DistanceSquared(a, b B2Vec2) float64 {
	return B2Vec2Sub(a, b).LengthSquared()
}

func B2Vec2Abs(a B2Vec2) B2Vec2 {
	return MakeB2Vec2(math.Abs(a.X), math.Abs(a.Y))
}

func B2Vec2Min(a, b B2Vec2) B2Vec2 {
	return MakeB2Vec2(math.Min(a.X, b.X), math.Min(a.Y, b.Y))
}

func B2Vec2Max(a, b B2Vec2) B2Vec2 {
	return MakeB2Vec2(math.Max(a.X, b.X), math.Max(a.Y, b.Y))
}

///////////////////////////////////////////////////////////////////////////////
/// Rotation stored as sine and cosine. Always unit length: Set derives both
/// components from the angle.
///////////////////////////////////////////////////////////////////////////////
type B2Rot struct {
	S, C float64
}

/// The identity rotation.
func MakeB2Rot() B2Rot {
	return B2Rot{S: 0.0, C: 1.0}
}

func MakeB2RotFromAngle(angle float64) B2Rot {
	return B2Rot{S: math.Sin(angle), C: math.Cos(angle)}
}

func (r *B2Rot) Set(angle float64) {
	r.S = math.Sin(angle)
	r.C = math.Cos(angle)
}

func (r *B2Rot) SetIdentity() {
	r.S = 0.0
	r.C = 1.0
}

func (r B2Rot) GetAngle() float64 {
	return math.Atan2(r.S, r.C)
}

/// q * r
func B2RotMul(q, r B2Rot) B2Rot {
	return B2Rot{
		S: q.S*r.C + q.C*r.S,
		C: q.C*r.C - q.S*r.S,
	}
}

/// transpose(q) * r
func B2RotMulT(q, r B2Rot) B2Rot {
	return B2Rot{
		S: q.C*r.S - q.S*r.C,
		C: q.C*r.C + q.S*r.S,
	}
}

func B2RotVec2Mul(q B2Rot, v B2Vec2) B2Vec2 {
	return MakeB2Vec2(q.C*v.X-q.S*v.Y, q.S*v.X+q.C*v.Y)
}

func B2RotVec2MulT(q B2Rot, v B2Vec2) B2Vec2 {
	return MakeB2Vec2(q.C*v.X+q.S*v.Y, -q.S*v.X+q.C*v.Y)
}

///////////////////////////////////////////////////////////////////////////////
/// A transform contains translation and rotation. It is used to represent
/// the position and orientation of rigid frames.
///////////////////////////////////////////////////////////////////////////////
type B2Transform struct {
	P B2Vec2
	Q B2Rot
}

/// The identity transform.
func MakeB2Transform() B2Transform {
	return B2Transform{P: B2Vec2_zero, Q: MakeB2Rot()}
}

func MakeB2TransformByPositionAndRotation(position B2Vec2, rotation B2Rot) B2Transform {
	return B2Transform{P: position, Q: rotation}
}

func (t *B2Transform) SetIdentity() {
	t.P.SetZero()
	t.Q.SetIdentity()
}

func (t *B2Transform) Set(position B2Vec2, angle float64) {
	t.P = position
	t.Q.Set(angle)
}

func B2TransformVec2Mul(T B2Transform, v B2Vec2) B2Vec2 {
	return MakeB2Vec2(
		(T.Q.C*v.X-T.Q.S*v.Y)+T.P.X,
		(T.Q.S*v.X+T.Q.C*v.Y)+T.P.Y,
	)
}

func B2TransformVec2MulT(T B2Transform, v B2Vec2) B2Vec2 {
	px := v.X - T.P.X
	py := v.Y - T.P.Y
	return MakeB2Vec2(T.Q.C*px+T.Q.S*py, -T.Q.S*px+T.Q.C*py)
}

/// A * B
func B2TransformMul(A, B B2Transform) B2Transform {
	return B2Transform{
		P: B2Vec2Add(B2RotVec2Mul(A.Q, B.P), A.P),
		Q: B2RotMul(A.Q, B.Q),
	}
}

/// inverse(A) * B
func B2TransformMulT(A, B B2Transform) B2Transform {
	return B2Transform{
		P: B2RotVec2MulT(A.Q, B2Vec2Sub(B.P, A.P)),
		Q: B2RotMulT(A.Q, B.Q),
	}
}

///////////////////////////////////////////////////////////////////////////////
/// Motion of a body's center of mass over a step. Shapes are defined relative
/// to the body origin, which need not coincide with the center of mass, so
/// the center is what gets interpolated.
///////////////////////////////////////////////////////////////////////////////
type B2Sweep struct {
	LocalCenter B2Vec2  ///< local center of mass position
	C0, C       B2Vec2  ///< center world positions
	A0, A       float64 ///< world angles

	/// Fraction of the current time step in the range [0,1]
	/// c0 and a0 are the positions at alpha0.
	Alpha0 float64
}

/// Interpolated transform at beta in [0,1] between (C0, A0) and (C, A).
func (sweep B2Sweep) GetTransform(xf *B2Transform, beta float64) {
	xf.P = B2Vec2Add(
		B2Vec2MulScalar(1.0-beta, sweep.C0),
		B2Vec2MulScalar(beta, sweep.C),
	)
	xf.Q.Set((1.0-beta)*sweep.A0 + beta*sweep.A)

	// shift to origin
	xf.P.OperatorMinusInplace(B2RotVec2Mul(xf.Q, sweep.LocalCenter))
}

/// Move the start of the sweep forward to alpha.
func (sweep *B2Sweep) Advance(alpha float64) {
	B2Assert(sweep.Alpha0 < 1.0, "sweep already at end of step (alpha0=%v)", sweep.Alpha0)
	beta := (alpha - sweep.Alpha0) / (1.0 - sweep.Alpha0)
	sweep.C0.OperatorPlusInplace(B2Vec2MulScalar(beta, B2Vec2Sub(sweep.C, sweep.C0)))
	sweep.A0 += beta * (sweep.A - sweep.A0)
	sweep.Alpha0 = alpha
}

/// Wrap the angles so A0 lies in [0, 2π).
func (sweep *B2Sweep) Normalize() {
	twoPi := 2.0 * B2_pi
	d := twoPi * math.Floor(sweep.A0/twoPi)
	sweep.A0 -= d
	sweep.A -= d
}
