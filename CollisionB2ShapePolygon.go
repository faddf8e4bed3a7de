package box2d

import (
	"math"
)

/// A convex polygon. The interior is to the left of each edge, so vertices
/// wind counter-clockwise. At most B2_maxPolygonVertices vertices.
type B2PolygonShape struct {
	B2Shape

	M_centroid B2Vec2
	M_vertices [B2_maxPolygonVertices]B2Vec2
	M_normals  [B2_maxPolygonVertices]B2Vec2
	M_count    int
}

func MakeB2PolygonShape() B2PolygonShape {
	return B2PolygonShape{
		B2Shape: B2Shape{
			M_type:   B2Shape_Type.E_polygon,
			M_radius: B2_polygonRadius,
		},
	}
}

func NewB2PolygonShape() *B2PolygonShape {
	res := MakeB2PolygonShape()
	return &res
}

/// Axis aligned box with the given half extents, centered on the origin.
func NewB2BoxShape(hx, hy float64) *B2PolygonShape {
	res := NewB2PolygonShape()
	res.SetAsBox(hx, hy)
	return res
}

func (poly *B2PolygonShape) isB2Shape() {}

func (poly *B2PolygonShape) GetVertex(index int) B2Vec2 {
	B2Assert(0 <= index && index < poly.M_count, "polygon vertex %d out of range [0,%d)", index, poly.M_count)
	return poly.M_vertices[index]
}

func (poly *B2PolygonShape) GetVertexCount() int {
	return poly.M_count
}

func (poly *B2PolygonShape) Clone() B2ShapeInterface {
	clone := *poly
	return &clone
}

func (poly *B2PolygonShape) GetChildCount() int {
	return 1
}

func (poly *B2PolygonShape) SetAsBox(hx, hy float64) {
	poly.M_count = 4
	poly.M_vertices[0].Set(-hx, -hy)
	poly.M_vertices[1].Set(hx, -hy)
	poly.M_vertices[2].Set(hx, hy)
	poly.M_vertices[3].Set(-hx, hy)
	poly.M_normals[0].Set(0.0, -1.0)
	poly.M_normals[1].Set(1.0, 0.0)
	poly.M_normals[2].Set(0.0, 1.0)
	poly.M_normals[3].Set(-1.0, 0.0)
	poly.M_centroid.SetZero()
}

/// Oriented box centered on center and rotated by angle, in body coordinates.
func (poly *B2PolygonShape) SetAsBoxFromCenterAndAngle(hx, hy float64, center B2Vec2, angle float64) {
	poly.SetAsBox(hx, hy)
	poly.M_centroid = center

	xf := MakeB2TransformByPositionAndRotation(center, MakeB2RotFromAngle(angle))
	for i := 0; i < poly.M_count; i++ {
		poly.M_vertices[i] = B2TransformVec2Mul(xf, poly.M_vertices[i])
		poly.M_normals[i] = B2RotVec2Mul(xf.Q, poly.M_normals[i])
	}
}

// Area weighted centroid of a counter-clockwise polygon, together with its
// area.
func b2ComputeCentroid(vs []B2Vec2) (B2Vec2, float64) {
	var c B2Vec2
	area := 0.0

	// Triangles are fanned out from the vertex average. Any reference
	// point gives the same result up to rounding.
	var pRef B2Vec2
	for _, v := range vs {
		pRef.OperatorPlusInplace(v)
	}
	pRef.OperatorScalarMulInplace(1.0 / float64(len(vs)))

	const inv3 = 1.0 / 3.0

	for i := range vs {
		p1 := pRef
		p2 := vs[i]
		p3 := vs[(i+1)%len(vs)]

		triangleArea := 0.5 * B2Vec2Cross(B2Vec2Sub(p2, p1), B2Vec2Sub(p3, p1))
		area += triangleArea

		c.OperatorPlusInplace(B2Vec2MulScalar(triangleArea*inv3, B2Vec2Add(B2Vec2Add(p1, p2), p3)))
	}

	if area <= B2_epsilon {
		return pRef, area
	}

	c.OperatorScalarMulInplace(1.0 / area)
	return c, area
}

/// Build the convex hull of vertices. Points closer than half the linear
/// slop are welded, and input past B2_maxPolygonVertices is dropped. Input
/// that does not span an area falls back to a 2x2 box and logs a warning.
func (poly *B2PolygonShape) Set(vertices []B2Vec2) {
	if len(vertices) < 3 {
		b2Logf("polygon: %d vertices, using default box", len(vertices))
		poly.SetAsBox(1.0, 1.0)
		return
	}

	n := len(vertices)
	if n > B2_maxPolygonVertices {
		b2Logf("polygon: %d vertices, keeping the first %d", n, B2_maxPolygonVertices)
		n = B2_maxPolygonVertices
	}

	// weld close points
	var ps [B2_maxPolygonVertices]B2Vec2
	tempCount := 0
	const weld = 0.5 * B2_linearSlop

	for _, v := range vertices[:n] {
		unique := true
		for j := 0; j < tempCount; j++ {
			if B2Vec2DistanceSquared(v, ps[j]) < weld*weld {
				unique = false
				break
			}
		}

		if unique {
			ps[tempCount] = v
			tempCount++
		}
	}

	n = tempCount
	if n < 3 {
		b2Logf("polygon: %d distinct vertices after welding, using default box", n)
		poly.SetAsBox(1.0, 1.0)
		return
	}

	// Gift wrapping, starting from the right most point (lowest y on ties).
	// http://en.wikipedia.org/wiki/Gift_wrapping_algorithm
	i0 := 0
	x0 := ps[0].X
	for i := 1; i < n; i++ {
		x := ps[i].X
		if x > x0 || (x == x0 && ps[i].Y < ps[i0].Y) {
			i0 = i
			x0 = x
		}
	}

	var hull [B2_maxPolygonVertices]int
	m := 0
	ih := i0

	for {
		B2Assert(m < B2_maxPolygonVertices, "hull has more than %d vertices", B2_maxPolygonVertices)
		hull[m] = ih

		ie := 0
		for j := 1; j < n; j++ {
			if ie == ih {
				ie = j
				continue
			}

			r := B2Vec2Sub(ps[ie], ps[hull[m]])
			v := B2Vec2Sub(ps[j], ps[hull[m]])
			c := B2Vec2Cross(r, v)
			if c < 0.0 {
				ie = j
			}

			// collinear: keep the farther point
			if c == 0.0 && v.LengthSquared() > r.LengthSquared() {
				ie = j
			}
		}

		m++
		ih = ie

		if ie == i0 {
			break
		}
	}

	if m < 3 {
		b2Logf("polygon: hull has %d vertices, using default box", m)
		poly.SetAsBox(1.0, 1.0)
		return
	}

	var hullVertices [B2_maxPolygonVertices]B2Vec2
	for i := 0; i < m; i++ {
		hullVertices[i] = ps[hull[i]]
	}

	centroid, area := b2ComputeCentroid(hullVertices[:m])
	if area <= B2_epsilon {
		b2Logf("polygon: hull area %g, using default box", area)
		poly.SetAsBox(1.0, 1.0)
		return
	}

	poly.M_count = m
	poly.M_vertices = hullVertices
	poly.M_centroid = centroid

	for i := 0; i < m; i++ {
		edge := B2Vec2Sub(poly.M_vertices[(i+1)%m], poly.M_vertices[i])
		B2Assert(edge.LengthSquared() > B2_epsilon*B2_epsilon, "polygon edge %d has zero length", i)
		poly.M_normals[i] = B2Vec2CrossVectorScalar(edge, 1.0)
		poly.M_normals[i].Normalize()
	}
}

func (poly *B2PolygonShape) TestPoint(xf B2Transform, p B2Vec2) bool {
	pLocal := B2TransformVec2MulT(xf, p)

	for i := 0; i < poly.M_count; i++ {
		if B2Vec2Dot(poly.M_normals[i], B2Vec2Sub(pLocal, poly.M_vertices[i])) > 0.0 {
			return false
		}
	}

	return true
}

func (poly *B2PolygonShape) ComputeDistance(xf B2Transform, p B2Vec2, childIndex int) (float64, B2Vec2) {
	pLocal := B2TransformVec2MulT(xf, p)
	maxDistance := -B2_maxFloat
	normalForMaxDistance := pLocal

	for i := 0; i < poly.M_count; i++ {
		dot := B2Vec2Dot(poly.M_normals[i], B2Vec2Sub(pLocal, poly.M_vertices[i]))
		if dot > maxDistance {
			maxDistance = dot
			normalForMaxDistance = poly.M_normals[i]
		}
	}

	if maxDistance <= 0.0 {
		// inside: distance to the closest face
		return maxDistance, B2RotVec2Mul(xf.Q, normalForMaxDistance)
	}

	// Outside: the closest feature is a face or a vertex. Compare the face
	// distance against every vertex.
	minDistance := normalForMaxDistance
	minDistance2 := maxDistance * maxDistance
	for i := 0; i < poly.M_count; i++ {
		distance := B2Vec2Sub(pLocal, poly.M_vertices[i])
		if distance2 := distance.LengthSquared(); minDistance2 > distance2 {
			minDistance = distance
			minDistance2 = distance2
		}
	}

	normal := B2RotVec2Mul(xf.Q, minDistance)
	normal.Normalize()
	return math.Sqrt(minDistance2), normal
}

func (poly *B2PolygonShape) RayCast(output *B2RayCastOutput, input B2RayCastInput, xf B2Transform, childIndex int) bool {
	// ray in the polygon frame
	p1 := B2TransformVec2MulT(xf, input.P1)
	p2 := B2TransformVec2MulT(xf, input.P2)
	d := B2Vec2Sub(p2, p1)

	lower := 0.0
	upper := input.MaxFraction

	index := -1

	for i := 0; i < poly.M_count; i++ {
		// p = p1 + a * d
		// dot(normal, p - v) = 0
		// dot(normal, p1 - v) + a * dot(normal, d) = 0
		numerator := B2Vec2Dot(poly.M_normals[i], B2Vec2Sub(poly.M_vertices[i], p1))
		denominator := B2Vec2Dot(poly.M_normals[i], d)

		if denominator == 0.0 {
			if numerator < 0.0 {
				return false
			}
		} else if denominator < 0.0 && numerator < lower*denominator {
			// lower < numerator / denominator without the division; the
			// segment enters this half-space
			lower = numerator / denominator
			index = i
		} else if denominator > 0.0 && numerator < upper*denominator {
			// the segment exits this half-space
			upper = numerator / denominator
		}

		if upper < lower {
			return false
		}
	}

	B2Assert(0.0 <= lower && lower <= input.MaxFraction, "ray fraction %v outside [0,%v]", lower, input.MaxFraction)

	if index < 0 {
		return false
	}

	output.Fraction = lower
	output.Normal = B2RotVec2Mul(xf.Q, poly.M_normals[index])
	return true
}

func (poly *B2PolygonShape) ComputeAABB(aabb *B2AABB, xf B2Transform, childIndex int) {
	lower := B2TransformVec2Mul(xf, poly.M_vertices[0])
	upper := lower

	for i := 1; i < poly.M_count; i++ {
		v := B2TransformVec2Mul(xf, poly.M_vertices[i])
		lower = B2Vec2Min(lower, v)
		upper = B2Vec2Max(upper, v)
	}

	r := MakeB2Vec2(poly.M_radius, poly.M_radius)
	aabb.LowerBound = B2Vec2Sub(lower, r)
	aabb.UpperBound = B2Vec2Add(upper, r)
}

// Mass, centroid and inertia follow from integrating over the triangles
// fanned out of the vertex average s. For one triangle with edges e1, e2
// from s and D = cross(e1, e2):
//
//	area     = D / 2
//	centroid = s + (e1 + e2) / 3
//	I_s      = D/12 * (e1x² + e1x*e2x + e2x² + e1y² + e1y*e2y + e2y²)
//
// The inertia about s is then moved to the centroid and on to the body
// origin with the parallel axis theorem.
func (poly *B2PolygonShape) ComputeMass(massData *B2MassData, density float64) {
	var center B2Vec2
	area := 0.0
	I := 0.0

	var s B2Vec2
	for i := 0; i < poly.M_count; i++ {
		s.OperatorPlusInplace(poly.M_vertices[i])
	}
	if poly.M_count > 0 {
		s.OperatorScalarMulInplace(1.0 / float64(poly.M_count))
	}

	const inv3 = 1.0 / 3.0

	for i := 0; i < poly.M_count; i++ {
		e1 := B2Vec2Sub(poly.M_vertices[i], s)
		e2 := B2Vec2Sub(poly.M_vertices[(i+1)%poly.M_count], s)

		D := B2Vec2Cross(e1, e2)

		triangleArea := 0.5 * D
		area += triangleArea

		center.OperatorPlusInplace(B2Vec2MulScalar(triangleArea*inv3, B2Vec2Add(e1, e2)))

		intx2 := e1.X*e1.X + e2.X*e1.X + e2.X*e2.X
		inty2 := e1.Y*e1.Y + e2.Y*e1.Y + e2.Y*e2.Y

		I += (0.25 * inv3 * D) * (intx2 + inty2)
	}

	if area <= B2_epsilon {
		massData.Mass = 0.0
		massData.Center = s
		massData.I = 0.0
		return
	}

	massData.Mass = density * area

	center.OperatorScalarMulInplace(1.0 / area)
	massData.Center = B2Vec2Add(center, s)

	// inertia about s, shifted to the center of mass and then to the origin
	massData.I = density * I
	massData.I += massData.Mass * (B2Vec2Dot(massData.Center, massData.Center) - B2Vec2Dot(center, center))
}

func (poly *B2PolygonShape) SetupDistanceProxy(proxy *B2DistanceProxy, index int) {
	proxy.M_vertices = poly.M_vertices[:poly.M_count]
	proxy.M_radius = poly.M_radius
}

func (poly *B2PolygonShape) ComputeSubmergedArea(normal B2Vec2, offset float64, xf B2Transform) (float64, B2Vec2) {
	// plane in the polygon frame
	normalL := B2RotVec2MulT(xf.Q, normal)
	offsetL := offset - B2Vec2Dot(normal, xf.P)

	var depths [B2_maxPolygonVertices]float64
	diveCount := 0
	intoIndex := -1
	outoIndex := -1

	lastSubmerged := false
	for i := 0; i < poly.M_count; i++ {
		depths[i] = B2Vec2Dot(normalL, poly.M_vertices[i]) - offsetL
		isSubmerged := depths[i] < -B2_epsilon
		if i > 0 {
			if isSubmerged && !lastSubmerged {
				intoIndex = i - 1
				diveCount++
			} else if !isSubmerged && lastSubmerged {
				outoIndex = i - 1
				diveCount++
			}
		}
		lastSubmerged = isSubmerged
	}

	switch diveCount {
	case 0:
		if !lastSubmerged {
			return 0.0, B2Vec2_zero
		}
		// completely submerged
		var md B2MassData
		poly.ComputeMass(&md, 1.0)
		return md.Mass, B2TransformVec2Mul(xf, md.Center)
	case 1:
		if intoIndex == -1 {
			intoIndex = poly.M_count - 1
		} else {
			outoIndex = poly.M_count - 1
		}
	}

	intoIndex2 := (intoIndex + 1) % poly.M_count
	outoIndex2 := (outoIndex + 1) % poly.M_count
	intoLambda := (0.0 - depths[intoIndex]) / (depths[intoIndex2] - depths[intoIndex])
	outoLambda := (0.0 - depths[outoIndex]) / (depths[outoIndex2] - depths[outoIndex])

	intoVec := B2Vec2Add(
		B2Vec2MulScalar(1.0-intoLambda, poly.M_vertices[intoIndex]),
		B2Vec2MulScalar(intoLambda, poly.M_vertices[intoIndex2]),
	)
	outoVec := B2Vec2Add(
		B2Vec2MulScalar(1.0-outoLambda, poly.M_vertices[outoIndex]),
		B2Vec2MulScalar(outoLambda, poly.M_vertices[outoIndex2]),
	)

	// fan the submerged part out of intoVec
	area := 0.0
	var center B2Vec2
	p2 := poly.M_vertices[intoIndex2]

	const inv3 = 1.0 / 3.0

	for i := intoIndex2; i != outoIndex2; {
		i = (i + 1) % poly.M_count
		p3 := poly.M_vertices[i]
		if i == outoIndex2 {
			p3 = outoVec
		}

		triangleArea := 0.5 * ((p2.X-intoVec.X)*(p3.Y-intoVec.Y) - (p2.Y-intoVec.Y)*(p3.X-intoVec.X))
		area += triangleArea
		center.OperatorPlusInplace(B2Vec2MulScalar(triangleArea*inv3, B2Vec2Add(B2Vec2Add(intoVec, p2), p3)))

		p2 = p3
	}

	if area <= B2_epsilon {
		return 0.0, B2Vec2_zero
	}

	center.OperatorScalarMulInplace(1.0 / area)
	return area, B2TransformVec2Mul(xf, center)
}

/// Reports whether the polygon is convex with consistent winding.
func (poly *B2PolygonShape) Validate() bool {
	for i := 0; i < poly.M_count; i++ {
		i1 := i
		i2 := (i + 1) % poly.M_count

		p := poly.M_vertices[i1]
		e := B2Vec2Sub(poly.M_vertices[i2], p)

		for j := 0; j < poly.M_count; j++ {
			if j == i1 || j == i2 {
				continue
			}

			if B2Vec2Cross(e, B2Vec2Sub(poly.M_vertices[j], p)) < 0.0 {
				return false
			}
		}
	}

	return true
}
