package box2d

/// Convex vertex cloud with a skin radius; what GJK sees of a shape child.
type B2DistanceProxy struct {
	M_vertices []B2Vec2
	M_radius   float64
}

func (p B2DistanceProxy) GetVertexCount() int {
	return len(p.M_vertices)
}

func (p B2DistanceProxy) GetVertex(index int) B2Vec2 {
	B2Assert(0 <= index && index < len(p.M_vertices), "distance proxy vertex %d out of range [0,%d)", index, len(p.M_vertices))
	return p.M_vertices[index]
}

/// Index of the vertex furthest along d.
func (p B2DistanceProxy) GetSupport(d B2Vec2) int {
	bestIndex := 0
	bestValue := B2Vec2Dot(p.M_vertices[0], d)
	for i := 1; i < len(p.M_vertices); i++ {
		if value := B2Vec2Dot(p.M_vertices[i], d); value > bestValue {
			bestIndex = i
			bestValue = value
		}
	}
	return bestIndex
}

func (p B2DistanceProxy) GetSupportVertex(d B2Vec2) B2Vec2 {
	return p.M_vertices[p.GetSupport(d)]
}

/// Warm start data for B2Distance. A zero value is an empty cache.
type B2SimplexCache struct {
	Metric float64 ///< length or area
	Count  int
	IndexA [3]int ///< vertices on shape A
	IndexB [3]int ///< vertices on shape B
}

type B2DistanceInput struct {
	ProxyA     B2DistanceProxy
	ProxyB     B2DistanceProxy
	TransformA B2Transform
	TransformB B2Transform
	UseRadii   bool
}

type B2DistanceOutput struct {
	PointA     B2Vec2 ///< closest point on shapeA
	PointB     B2Vec2 ///< closest point on shapeB
	Distance   float64
	Iterations int ///< number of GJK iterations used
}

const b2_gjkMaxIters = 20

type b2SimplexVertex struct {
	wA     B2Vec2  // support point in proxyA
	wB     B2Vec2  // support point in proxyB
	w      B2Vec2  // wB - wA
	a      float64 // barycentric coordinate for closest point
	indexA int
	indexB int
}

type b2Simplex struct {
	v     [3]b2SimplexVertex
	count int
}

func (s *b2Simplex) setVertex(i int, proxyA *B2DistanceProxy, xfA B2Transform, indexA int, proxyB *B2DistanceProxy, xfB B2Transform, indexB int) {
	v := &s.v[i]
	v.indexA = indexA
	v.indexB = indexB
	v.wA = B2TransformVec2Mul(xfA, proxyA.GetVertex(indexA))
	v.wB = B2TransformVec2Mul(xfB, proxyB.GetVertex(indexB))
	v.w = B2Vec2Sub(v.wB, v.wA)
}

func (s *b2Simplex) readCache(cache *B2SimplexCache, proxyA *B2DistanceProxy, xfA B2Transform, proxyB *B2DistanceProxy, xfB B2Transform) {
	B2Assert(cache.Count <= 3, "simplex cache count %d > 3", cache.Count)

	s.count = cache.Count
	for i := 0; i < s.count; i++ {
		s.setVertex(i, proxyA, xfA, cache.IndexA[i], proxyB, xfB, cache.IndexB[i])
		s.v[i].a = 0.0
	}

	// Flush the cached simplex when its metric drifted too far.
	if s.count > 1 {
		metric1 := cache.Metric
		metric2 := s.metric()
		if metric2 < 0.5*metric1 || 2.0*metric1 < metric2 || metric2 < B2_epsilon {
			s.count = 0
		}
	}

	if s.count == 0 {
		s.setVertex(0, proxyA, xfA, 0, proxyB, xfB, 0)
		s.v[0].a = 1.0
		s.count = 1
	}
}

func (s *b2Simplex) writeCache(cache *B2SimplexCache) {
	cache.Metric = s.metric()
	cache.Count = s.count
	for i := 0; i < s.count; i++ {
		cache.IndexA[i] = s.v[i].indexA
		cache.IndexB[i] = s.v[i].indexB
	}
}

func (s *b2Simplex) searchDirection() B2Vec2 {
	switch s.count {
	case 1:
		return s.v[0].w.OperatorNegate()
	case 2:
		e12 := B2Vec2Sub(s.v[1].w, s.v[0].w)
		if B2Vec2Cross(e12, s.v[0].w.OperatorNegate()) > 0.0 {
			// origin left of e12
			return B2Vec2CrossScalarVector(1.0, e12)
		}
		return B2Vec2CrossVectorScalar(e12, 1.0)
	}
	B2Assert(false, "search direction of a %d-simplex", s.count)
	return B2Vec2_zero
}

func (s *b2Simplex) witnessPoints() (pA, pB B2Vec2) {
	switch s.count {
	case 1:
		return s.v[0].wA, s.v[0].wB
	case 2:
		pA = B2Vec2Add(B2Vec2MulScalar(s.v[0].a, s.v[0].wA), B2Vec2MulScalar(s.v[1].a, s.v[1].wA))
		pB = B2Vec2Add(B2Vec2MulScalar(s.v[0].a, s.v[0].wB), B2Vec2MulScalar(s.v[1].a, s.v[1].wB))
		return pA, pB
	case 3:
		pA = B2Vec2Add(
			B2Vec2Add(B2Vec2MulScalar(s.v[0].a, s.v[0].wA), B2Vec2MulScalar(s.v[1].a, s.v[1].wA)),
			B2Vec2MulScalar(s.v[2].a, s.v[2].wA),
		)
		return pA, pA
	}
	B2Assert(false, "witness points of a %d-simplex", s.count)
	return B2Vec2_zero, B2Vec2_zero
}

func (s *b2Simplex) metric() float64 {
	switch s.count {
	case 1:
		return 0.0
	case 2:
		return B2Vec2Distance(s.v[0].w, s.v[1].w)
	case 3:
		return B2Vec2Cross(B2Vec2Sub(s.v[1].w, s.v[0].w), B2Vec2Sub(s.v[2].w, s.v[0].w))
	}
	B2Assert(false, "metric of a %d-simplex", s.count)
	return 0.0
}

// Closest point on a segment to the origin, in barycentric coordinates.
func (s *b2Simplex) solve2() {
	w1 := s.v[0].w
	w2 := s.v[1].w
	e12 := B2Vec2Sub(w2, w1)

	// w1 region
	d12_2 := -B2Vec2Dot(w1, e12)
	if d12_2 <= 0.0 {
		s.v[0].a = 1.0
		s.count = 1
		return
	}

	// w2 region
	d12_1 := B2Vec2Dot(w2, e12)
	if d12_1 <= 0.0 {
		s.v[1].a = 1.0
		s.count = 1
		s.v[0] = s.v[1]
		return
	}

	inv := 1.0 / (d12_1 + d12_2)
	s.v[0].a = d12_1 * inv
	s.v[1].a = d12_2 * inv
	s.count = 2
}

// Closest feature of a triangle to the origin: a vertex, an edge or the
// interior.
func (s *b2Simplex) solve3() {
	w1 := s.v[0].w
	w2 := s.v[1].w
	w3 := s.v[2].w

	e12 := B2Vec2Sub(w2, w1)
	d12_1 := B2Vec2Dot(w2, e12)
	d12_2 := -B2Vec2Dot(w1, e12)

	e13 := B2Vec2Sub(w3, w1)
	d13_1 := B2Vec2Dot(w3, e13)
	d13_2 := -B2Vec2Dot(w1, e13)

	e23 := B2Vec2Sub(w3, w2)
	d23_1 := B2Vec2Dot(w3, e23)
	d23_2 := -B2Vec2Dot(w2, e23)

	n123 := B2Vec2Cross(e12, e13)
	d123_1 := n123 * B2Vec2Cross(w2, w3)
	d123_2 := n123 * B2Vec2Cross(w3, w1)
	d123_3 := n123 * B2Vec2Cross(w1, w2)

	switch {
	case d12_2 <= 0.0 && d13_2 <= 0.0:
		s.v[0].a = 1.0
		s.count = 1

	case d12_1 > 0.0 && d12_2 > 0.0 && d123_3 <= 0.0:
		inv := 1.0 / (d12_1 + d12_2)
		s.v[0].a = d12_1 * inv
		s.v[1].a = d12_2 * inv
		s.count = 2

	case d13_1 > 0.0 && d13_2 > 0.0 && d123_2 <= 0.0:
		inv := 1.0 / (d13_1 + d13_2)
		s.v[0].a = d13_1 * inv
		s.v[2].a = d13_2 * inv
		s.count = 2
		s.v[1] = s.v[2]

	case d12_1 <= 0.0 && d23_2 <= 0.0:
		s.v[1].a = 1.0
		s.count = 1
		s.v[0] = s.v[1]

	case d13_1 <= 0.0 && d23_1 <= 0.0:
		s.v[2].a = 1.0
		s.count = 1
		s.v[0] = s.v[2]

	case d23_1 > 0.0 && d23_2 > 0.0 && d123_1 <= 0.0:
		inv := 1.0 / (d23_1 + d23_2)
		s.v[1].a = d23_1 * inv
		s.v[2].a = d23_2 * inv
		s.count = 2
		s.v[0] = s.v[2]

	default:
		inv := 1.0 / (d123_1 + d123_2 + d123_3)
		s.v[0].a = d123_1 * inv
		s.v[1].a = d123_2 * inv
		s.v[2].a = d123_3 * inv
		s.count = 3
	}
}

/// Closest points between two convex proxies (GJK with Voronoi regions and
/// barycentric coordinates). On the first call cache must be empty.
func B2Distance(output *B2DistanceOutput, cache *B2SimplexCache, input *B2DistanceInput) {
	proxyA := &input.ProxyA
	proxyB := &input.ProxyB
	xfA := input.TransformA
	xfB := input.TransformB

	var simplex b2Simplex
	simplex.readCache(cache, proxyA, xfA, proxyB, xfB)

	// vertices of the previous simplex, used to detect cycling
	var saveA, saveB [3]int

	iter := 0
	for iter < b2_gjkMaxIters {
		saveCount := simplex.count
		for i := 0; i < saveCount; i++ {
			saveA[i] = simplex.v[i].indexA
			saveB[i] = simplex.v[i].indexB
		}

		switch simplex.count {
		case 2:
			simplex.solve2()
		case 3:
			simplex.solve3()
		}

		// origin inside the triangle
		if simplex.count == 3 {
			break
		}

		d := simplex.searchDirection()

		// The origin is probably on the segment or triangle. We cannot
		// claim zero distance here, so just stop.
		if d.LengthSquared() < B2_epsilon*B2_epsilon {
			break
		}

		indexA := proxyA.GetSupport(B2RotVec2MulT(xfA.Q, d.OperatorNegate()))
		indexB := proxyB.GetSupport(B2RotVec2MulT(xfB.Q, d))
		simplex.setVertex(simplex.count, proxyA, xfA, indexA, proxyB, xfB, indexB)

		iter++

		duplicate := false
		for i := 0; i < saveCount; i++ {
			if indexA == saveA[i] && indexB == saveB[i] {
				duplicate = true
				break
			}
		}
		if duplicate {
			break
		}

		simplex.count++
	}

	output.PointA, output.PointB = simplex.witnessPoints()
	output.Distance = B2Vec2Distance(output.PointA, output.PointB)
	output.Iterations = iter

	simplex.writeCache(cache)

	if !input.UseRadii {
		return
	}

	rA := proxyA.M_radius
	rB := proxyB.M_radius

	if output.Distance > rA+rB && output.Distance > B2_epsilon {
		// separated: move the witness points to the surfaces
		output.Distance -= rA + rB
		normal := B2Vec2Sub(output.PointB, output.PointA)
		normal.Normalize()
		output.PointA.OperatorPlusInplace(B2Vec2MulScalar(rA, normal))
		output.PointB.OperatorMinusInplace(B2Vec2MulScalar(rB, normal))
		return
	}

	// overlapping once radii count: both witnesses go to the midpoint
	p := B2Vec2MulScalar(0.5, B2Vec2Add(output.PointA, output.PointB))
	output.PointA = p
	output.PointB = p
	output.Distance = 0.0
}
