package box2d

import (
	"math"
)

/// A solid circle.
type B2CircleShape struct {
	B2Shape

	/// Center in body coordinates.
	M_p B2Vec2
}

func MakeB2CircleShape() B2CircleShape {
	return B2CircleShape{
		B2Shape: B2Shape{
			M_type:   B2Shape_Type.E_circle,
			M_radius: 0.0,
		},
	}
}

func NewB2CircleShape() *B2CircleShape {
	res := MakeB2CircleShape()
	return &res
}

/// Circle of the given radius centered at the body origin.
func NewB2CircleShapeWithRadius(radius float64) *B2CircleShape {
	res := NewB2CircleShape()
	res.M_radius = radius
	return res
}

func (shape *B2CircleShape) isB2Shape() {}

func (shape *B2CircleShape) Clone() B2ShapeInterface {
	clone := *shape
	return &clone
}

func (shape *B2CircleShape) GetChildCount() int {
	return 1
}

func (shape *B2CircleShape) TestPoint(xf B2Transform, p B2Vec2) bool {
	center := B2TransformVec2Mul(xf, shape.M_p)
	d := B2Vec2Sub(p, center)
	return B2Vec2Dot(d, d) <= shape.M_radius*shape.M_radius
}

func (shape *B2CircleShape) ComputeDistance(xf B2Transform, p B2Vec2, childIndex int) (float64, B2Vec2) {
	center := B2TransformVec2Mul(xf, shape.M_p)
	d := B2Vec2Sub(p, center)
	length := d.Normalize()
	return length - shape.M_radius, d
}

// Collision Detection in Interactive 3D Environments by Gino van den Bergen,
// section 3.1.2:
// x = s + a * r
// norm(x) = radius
func (shape *B2CircleShape) RayCast(output *B2RayCastOutput, input B2RayCastInput, xf B2Transform, childIndex int) bool {
	position := B2TransformVec2Mul(xf, shape.M_p)
	s := B2Vec2Sub(input.P1, position)
	b := B2Vec2Dot(s, s) - shape.M_radius*shape.M_radius

	r := B2Vec2Sub(input.P2, input.P1)
	c := B2Vec2Dot(s, r)
	rr := B2Vec2Dot(r, r)
	sigma := c*c - rr*b

	// negative discriminant or degenerate segment
	if sigma < 0.0 || rr < B2_epsilon {
		return false
	}

	// nearer root of the quadratic
	a := -(c + math.Sqrt(sigma))

	if 0.0 <= a && a <= input.MaxFraction*rr {
		a /= rr
		output.Fraction = a
		output.Normal = B2Vec2Add(s, B2Vec2MulScalar(a, r))
		output.Normal.Normalize()
		return true
	}

	return false
}

func (shape *B2CircleShape) ComputeAABB(aabb *B2AABB, xf B2Transform, childIndex int) {
	p := B2TransformVec2Mul(xf, shape.M_p)
	aabb.LowerBound.Set(p.X-shape.M_radius, p.Y-shape.M_radius)
	aabb.UpperBound.Set(p.X+shape.M_radius, p.Y+shape.M_radius)
}

func (shape *B2CircleShape) ComputeMass(massData *B2MassData, density float64) {
	rr := shape.M_radius * shape.M_radius
	massData.Mass = density * B2_pi * rr
	massData.Center = shape.M_p

	// inertia about the local origin
	massData.I = massData.Mass * (0.5*rr + B2Vec2Dot(shape.M_p, shape.M_p))
}

func (shape *B2CircleShape) SetupDistanceProxy(proxy *B2DistanceProxy, index int) {
	proxy.M_vertices = []B2Vec2{shape.M_p}
	proxy.M_radius = shape.M_radius
}

func (shape *B2CircleShape) ComputeSubmergedArea(normal B2Vec2, offset float64, xf B2Transform) (float64, B2Vec2) {
	p := B2TransformVec2Mul(xf, shape.M_p)
	r := shape.M_radius
	l := -(B2Vec2Dot(normal, p) - offset)

	if l < -r+B2_epsilon {
		return 0.0, B2Vec2_zero
	}

	if l > r {
		return B2_pi * r * r, p
	}

	// circular segment
	r2 := r * r
	l2 := l * l
	area := r2*(math.Asin(l/r)+B2_pi/2.0) + l*math.Sqrt(r2-l2)
	com := -2.0 / 3.0 * math.Pow(r2-l2, 1.5) / area

	return area, B2Vec2Add(p, B2Vec2MulScalar(com, normal))
}
