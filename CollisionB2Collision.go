package box2d

import (
	"math"
)

const B2_nullFeature uint8 = math.MaxUint8

var B2ContactFeature_Type = struct {
	E_vertex uint8
	E_face   uint8
}{
	E_vertex: 0,
	E_face:   1,
}

/// The features that intersect to form a contact point.
type B2ContactFeature struct {
	IndexA uint8 ///< Feature index on shapeA
	IndexB uint8 ///< Feature index on shapeB
	TypeA  uint8 ///< The feature type on shapeA
	TypeB  uint8 ///< The feature type on shapeB
}

/// Identifies a manifold point across steps so cached impulses survive.
type B2ContactID B2ContactFeature

func (v B2ContactID) Key() uint32 {
	return uint32(v.IndexA) |
		uint32(v.IndexB)<<8 |
		uint32(v.TypeA)<<16 |
		uint32(v.TypeB)<<24
}

func (v *B2ContactID) SetKey(key uint32) {
	v.IndexA = uint8(key)
	v.IndexB = uint8(key >> 8)
	v.TypeA = uint8(key >> 16)
	v.TypeB = uint8(key >> 24)
}

/// A contact point of a manifold. LocalPoint depends on the manifold type:
/// -e_circles: the local center of circleB
/// -e_faceA: the local center of circleB or the clip point of polygonB
/// -e_faceB: the clip point of polygonA
/// The impulses are only a cache for warm starting.
type B2ManifoldPoint struct {
	LocalPoint     B2Vec2
	NormalImpulse  float64
	TangentImpulse float64
	Id             B2ContactID
}

var B2Manifold_Type = struct {
	E_circles uint8
	E_faceA   uint8
	E_faceB   uint8
}{
	E_circles: 0,
	E_faceA:   1,
	E_faceB:   2,
}

/// Contact manifold for two touching convex shapes, in local coordinates.
/// LocalPoint:
/// -e_circles: the local center of circleA
/// -e_faceA: the center of faceA
/// -e_faceB: the center of faceB
/// LocalNormal:
/// -e_circles: not used
/// -e_faceA: the normal on polygonA
/// -e_faceB: the normal on polygonB
type B2Manifold struct {
	Points      [B2_maxManifoldPoints]B2ManifoldPoint
	LocalNormal B2Vec2
	LocalPoint  B2Vec2
	Type        uint8 // B2Manifold_Type
	PointCount  int
}

/// Manifold evaluated in world coordinates.
type B2WorldManifold struct {
	Normal      B2Vec2                        ///< world vector pointing from A to B
	Points      [B2_maxManifoldPoints]B2Vec2  ///< world contact point (point of intersection)
	Separations [B2_maxManifoldPoints]float64 ///< a negative value indicates overlap, in meters
}

var B2PointState = struct {
	B2_nullState    uint8 ///< point does not exist
	B2_addState     uint8 ///< point was added in the update
	B2_persistState uint8 ///< point persisted across the update
	B2_removeState  uint8 ///< point was removed in the update
}{
	B2_nullState:    0,
	B2_addState:     1,
	B2_persistState: 2,
	B2_removeState:  3,
}

/// Used for computing contact manifolds.
type B2ClipVertex struct {
	V  B2Vec2
	Id B2ContactID
}

/// Ray-cast input data. The ray extends from p1 to p1 + maxFraction * (p2 - p1).
type B2RayCastInput struct {
	P1, P2      B2Vec2
	MaxFraction float64
}

/// Ray-cast output data. The ray hits at p1 + fraction * (p2 - p1).
type B2RayCastOutput struct {
	Normal   B2Vec2
	Fraction float64
}

/// An axis aligned bounding box.
type B2AABB struct {
	LowerBound B2Vec2
	UpperBound B2Vec2
}

func MakeB2AABB() B2AABB {
	return B2AABB{}
}

func MakeB2AABBFromBounds(lower, upper B2Vec2) B2AABB {
	return B2AABB{LowerBound: lower, UpperBound: upper}
}

func (bb B2AABB) GetCenter() B2Vec2 {
	return B2Vec2MulScalar(0.5, B2Vec2Add(bb.LowerBound, bb.UpperBound))
}

/// Half-widths.
func (bb B2AABB) GetExtents() B2Vec2 {
	return B2Vec2MulScalar(0.5, B2Vec2Sub(bb.UpperBound, bb.LowerBound))
}

func (bb B2AABB) GetPerimeter() float64 {
	wx := bb.UpperBound.X - bb.LowerBound.X
	wy := bb.UpperBound.Y - bb.LowerBound.Y
	return 2.0 * (wx + wy)
}

func (bb *B2AABB) CombineTwoInPlace(aabb1, aabb2 B2AABB) {
	bb.LowerBound = B2Vec2Min(aabb1.LowerBound, aabb2.LowerBound)
	bb.UpperBound = B2Vec2Max(aabb1.UpperBound, aabb2.UpperBound)
}

func B2AABBCombine(a, b B2AABB) B2AABB {
	var res B2AABB
	res.CombineTwoInPlace(a, b)
	return res
}

/// Reports whether aabb lies entirely inside bb (shared edges count).
func (bb B2AABB) Contains(aabb B2AABB) bool {
	return bb.LowerBound.X <= aabb.LowerBound.X &&
		bb.LowerBound.Y <= aabb.LowerBound.Y &&
		aabb.UpperBound.X <= bb.UpperBound.X &&
		aabb.UpperBound.Y <= bb.UpperBound.Y
}

func (bb B2AABB) ContainsPoint(p B2Vec2) bool {
	return bb.LowerBound.X <= p.X && p.X <= bb.UpperBound.X &&
		bb.LowerBound.Y <= p.Y && p.Y <= bb.UpperBound.Y
}

func (bb B2AABB) IsValid() bool {
	d := B2Vec2Sub(bb.UpperBound, bb.LowerBound)
	return d.X >= 0.0 && d.Y >= 0.0 && bb.LowerBound.IsValid() && bb.UpperBound.IsValid()
}

func B2TestOverlapBoundingBoxes(a, b B2AABB) bool {
	d1 := B2Vec2Sub(b.LowerBound, a.UpperBound)
	d2 := B2Vec2Sub(a.LowerBound, b.UpperBound)

	if d1.X > 0.0 || d1.Y > 0.0 {
		return false
	}

	if d2.X > 0.0 || d2.Y > 0.0 {
		return false
	}

	return true
}

// Slab test, from Real-time Collision Detection, p179.
func (bb B2AABB) RayCast(output *B2RayCastOutput, input B2RayCastInput) bool {
	tmin := -B2_maxFloat
	tmax := B2_maxFloat

	p := input.P1
	d := B2Vec2Sub(input.P2, input.P1)
	absD := B2Vec2Abs(d)

	var normal B2Vec2

	for i := 0; i < 2; i++ {
		pi := p.OperatorIndexGet(i)
		lo := bb.LowerBound.OperatorIndexGet(i)
		hi := bb.UpperBound.OperatorIndexGet(i)

		if absD.OperatorIndexGet(i) < B2_epsilon {
			// parallel to this slab
			if pi < lo || hi < pi {
				return false
			}
			continue
		}

		invD := 1.0 / d.OperatorIndexGet(i)
		t1 := (lo - pi) * invD
		t2 := (hi - pi) * invD

		s := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1.0
		}

		if t1 > tmin {
			normal.SetZero()
			normal.OperatorIndexSet(i, s)
			tmin = t1
		}

		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return false
		}
	}

	// Starting inside the box or hitting beyond the max fraction is a miss.
	if tmin < 0.0 || input.MaxFraction < tmin {
		return false
	}

	output.Fraction = tmin
	output.Normal = normal
	return true
}

/// Evaluate the manifold with the given transforms and shape radii.
func (wm *B2WorldManifold) Initialize(manifold *B2Manifold, xfA B2Transform, radiusA float64, xfB B2Transform, radiusB float64) {
	if manifold.PointCount == 0 {
		return
	}

	switch manifold.Type {
	case B2Manifold_Type.E_circles:
		wm.Normal.Set(1.0, 0.0)
		pointA := B2TransformVec2Mul(xfA, manifold.LocalPoint)
		pointB := B2TransformVec2Mul(xfB, manifold.Points[0].LocalPoint)
		if B2Vec2DistanceSquared(pointA, pointB) > B2_epsilon*B2_epsilon {
			wm.Normal = B2Vec2Sub(pointB, pointA)
			wm.Normal.Normalize()
		}

		cA := B2Vec2Add(pointA, B2Vec2MulScalar(radiusA, wm.Normal))
		cB := B2Vec2Sub(pointB, B2Vec2MulScalar(radiusB, wm.Normal))
		wm.Points[0] = B2Vec2MulScalar(0.5, B2Vec2Add(cA, cB))
		wm.Separations[0] = B2Vec2Dot(B2Vec2Sub(cB, cA), wm.Normal)

	case B2Manifold_Type.E_faceA:
		wm.Normal = B2RotVec2Mul(xfA.Q, manifold.LocalNormal)
		planePoint := B2TransformVec2Mul(xfA, manifold.LocalPoint)

		for i := 0; i < manifold.PointCount; i++ {
			clipPoint := B2TransformVec2Mul(xfB, manifold.Points[i].LocalPoint)
			depth := radiusA - B2Vec2Dot(B2Vec2Sub(clipPoint, planePoint), wm.Normal)
			cA := B2Vec2Add(clipPoint, B2Vec2MulScalar(depth, wm.Normal))
			cB := B2Vec2Sub(clipPoint, B2Vec2MulScalar(radiusB, wm.Normal))
			wm.Points[i] = B2Vec2MulScalar(0.5, B2Vec2Add(cA, cB))
			wm.Separations[i] = B2Vec2Dot(B2Vec2Sub(cB, cA), wm.Normal)
		}

	case B2Manifold_Type.E_faceB:
		wm.Normal = B2RotVec2Mul(xfB.Q, manifold.LocalNormal)
		planePoint := B2TransformVec2Mul(xfB, manifold.LocalPoint)

		for i := 0; i < manifold.PointCount; i++ {
			clipPoint := B2TransformVec2Mul(xfA, manifold.Points[i].LocalPoint)
			depth := radiusB - B2Vec2Dot(B2Vec2Sub(clipPoint, planePoint), wm.Normal)
			cB := B2Vec2Add(clipPoint, B2Vec2MulScalar(depth, wm.Normal))
			cA := B2Vec2Sub(clipPoint, B2Vec2MulScalar(radiusA, wm.Normal))
			wm.Points[i] = B2Vec2MulScalar(0.5, B2Vec2Add(cA, cB))
			wm.Separations[i] = B2Vec2Dot(B2Vec2Sub(cA, cB), wm.Normal)
		}

		// normal points from A to B
		wm.Normal = wm.Normal.OperatorNegate()
	}
}

/// Classify the points of two successive manifolds of one contact as
/// added, persisted or removed.
func B2GetPointStates(state1, state2 *[B2_maxManifoldPoints]uint8, manifold1, manifold2 *B2Manifold) {
	for i := 0; i < B2_maxManifoldPoints; i++ {
		state1[i] = B2PointState.B2_nullState
		state2[i] = B2PointState.B2_nullState
	}

	for i := 0; i < manifold1.PointCount; i++ {
		key := manifold1.Points[i].Id.Key()
		state1[i] = B2PointState.B2_removeState
		for j := 0; j < manifold2.PointCount; j++ {
			if manifold2.Points[j].Id.Key() == key {
				state1[i] = B2PointState.B2_persistState
				break
			}
		}
	}

	for i := 0; i < manifold2.PointCount; i++ {
		key := manifold2.Points[i].Id.Key()
		state2[i] = B2PointState.B2_addState
		for j := 0; j < manifold1.PointCount; j++ {
			if manifold1.Points[j].Id.Key() == key {
				state2[i] = B2PointState.B2_persistState
				break
			}
		}
	}
}

// Sutherland-Hodgman clipping of a segment against a half plane.
func B2ClipSegmentToLine(vOut, vIn []B2ClipVertex, normal B2Vec2, offset float64, vertexIndexA int) int {
	numOut := 0

	distance0 := B2Vec2Dot(normal, vIn[0].V) - offset
	distance1 := B2Vec2Dot(normal, vIn[1].V) - offset

	if distance0 <= 0.0 {
		vOut[numOut] = vIn[0]
		numOut++
	}

	if distance1 <= 0.0 {
		vOut[numOut] = vIn[1]
		numOut++
	}

	if distance0*distance1 < 0.0 {
		interp := distance0 / (distance0 - distance1)
		vOut[numOut].V = B2Vec2Add(vIn[0].V, B2Vec2MulScalar(interp, B2Vec2Sub(vIn[1].V, vIn[0].V)))

		// vertex A is hitting edge B
		vOut[numOut].Id.IndexA = uint8(vertexIndexA)
		vOut[numOut].Id.IndexB = vIn[0].Id.IndexB
		vOut[numOut].Id.TypeA = B2ContactFeature_Type.E_vertex
		vOut[numOut].Id.TypeB = B2ContactFeature_Type.E_face
		numOut++
	}

	return numOut
}

/// Exact overlap test of two shape children, radii included, through GJK.
func B2TestOverlapShapes(shapeA B2ShapeInterface, indexA int, shapeB B2ShapeInterface, indexB int, xfA, xfB B2Transform) bool {
	input := B2DistanceInput{
		TransformA: xfA,
		TransformB: xfB,
		UseRadii:   true,
	}
	shapeA.SetupDistanceProxy(&input.ProxyA, indexA)
	shapeB.SetupDistanceProxy(&input.ProxyB, indexB)

	var cache B2SimplexCache
	var output B2DistanceOutput
	B2Distance(&output, &cache, &input)

	return output.Distance < 10.0*B2_epsilon
}
