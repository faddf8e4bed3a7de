package box2d

// Max separation between poly1 and poly2 along the edge normals of poly1,
// and the edge reaching it.
func b2FindMaxSeparation(poly1 *B2PolygonShape, xf1 B2Transform, poly2 *B2PolygonShape, xf2 B2Transform) (int, float64) {
	// poly1 expressed in the frame of poly2
	xf := B2TransformMulT(xf2, xf1)

	bestIndex := 0
	maxSeparation := -B2_maxFloat
	for i := 0; i < poly1.M_count; i++ {
		n := B2RotVec2Mul(xf.Q, poly1.M_normals[i])
		v1 := B2TransformVec2Mul(xf, poly1.M_vertices[i])

		// deepest point of poly2 along n
		si := B2_maxFloat
		for j := 0; j < poly2.M_count; j++ {
			if sij := B2Vec2Dot(n, B2Vec2Sub(poly2.M_vertices[j], v1)); sij < si {
				si = sij
			}
		}

		if si > maxSeparation {
			maxSeparation = si
			bestIndex = i
		}
	}

	return bestIndex, maxSeparation
}

// The edge of poly2 most anti-parallel to the reference edge, as two clip
// vertices in world coordinates.
func b2FindIncidentEdge(c *[2]B2ClipVertex, poly1 *B2PolygonShape, xf1 B2Transform, edge1 int, poly2 *B2PolygonShape, xf2 B2Transform) {
	B2Assert(0 <= edge1 && edge1 < poly1.M_count, "reference edge %d out of range", edge1)

	// reference normal in poly2's frame
	normal1 := B2RotVec2MulT(xf2.Q, B2RotVec2Mul(xf1.Q, poly1.M_normals[edge1]))

	index := 0
	minDot := B2_maxFloat
	for i := 0; i < poly2.M_count; i++ {
		if dot := B2Vec2Dot(normal1, poly2.M_normals[i]); dot < minDot {
			minDot = dot
			index = i
		}
	}

	i1 := index
	i2 := (index + 1) % poly2.M_count

	c[0] = B2ClipVertex{
		V: B2TransformVec2Mul(xf2, poly2.M_vertices[i1]),
		Id: B2ContactID{
			IndexA: uint8(edge1),
			IndexB: uint8(i1),
			TypeA:  B2ContactFeature_Type.E_face,
			TypeB:  B2ContactFeature_Type.E_vertex,
		},
	}
	c[1] = B2ClipVertex{
		V: B2TransformVec2Mul(xf2, poly2.M_vertices[i2]),
		Id: B2ContactID{
			IndexA: uint8(edge1),
			IndexB: uint8(i2),
			TypeA:  B2ContactFeature_Type.E_face,
			TypeB:  B2ContactFeature_Type.E_vertex,
		},
	}
}

/// Manifold of two convex polygons by the separating axis test and
/// clipping:
/// - max separation over the normals of A, then of B; stop on a separating axis
/// - the polygon with the larger separation (with a small bias towards A)
///   gives the reference face
/// - the incident edge is clipped against the side planes of the reference face
/// The manifold normal points from A to B.
func B2CollidePolygons(manifold *B2Manifold, polyA *B2PolygonShape, xfA B2Transform, polyB *B2PolygonShape, xfB B2Transform) {
	manifold.PointCount = 0
	totalRadius := polyA.M_radius + polyB.M_radius

	edgeA, separationA := b2FindMaxSeparation(polyA, xfA, polyB, xfB)
	if separationA > totalRadius {
		return
	}

	edgeB, separationB := b2FindMaxSeparation(polyB, xfB, polyA, xfA)
	if separationB > totalRadius {
		return
	}

	poly1, poly2 := polyA, polyB // reference, incident
	xf1, xf2 := xfA, xfB
	edge1 := edgeA
	flip := false
	manifold.Type = B2Manifold_Type.E_faceA

	const tol = 0.1 * B2_linearSlop
	if separationB > separationA+tol {
		poly1, poly2 = polyB, polyA
		xf1, xf2 = xfB, xfA
		edge1 = edgeB
		flip = true
		manifold.Type = B2Manifold_Type.E_faceB
	}

	var incidentEdge [2]B2ClipVertex
	b2FindIncidentEdge(&incidentEdge, poly1, xf1, edge1, poly2, xf2)

	iv1 := edge1
	iv2 := (edge1 + 1) % poly1.M_count

	v11 := poly1.M_vertices[iv1]
	v12 := poly1.M_vertices[iv2]

	localTangent := B2Vec2Sub(v12, v11)
	localTangent.Normalize()

	localNormal := B2Vec2CrossVectorScalar(localTangent, 1.0)
	planePoint := B2Vec2MulScalar(0.5, B2Vec2Add(v11, v12))

	tangent := B2RotVec2Mul(xf1.Q, localTangent)
	normal := B2Vec2CrossVectorScalar(tangent, 1.0)

	v11 = B2TransformVec2Mul(xf1, v11)
	v12 = B2TransformVec2Mul(xf1, v12)

	frontOffset := B2Vec2Dot(normal, v11)

	// side planes, pushed out by the skin thickness
	sideOffset1 := -B2Vec2Dot(tangent, v11) + totalRadius
	sideOffset2 := B2Vec2Dot(tangent, v12) + totalRadius

	var clipPoints1, clipPoints2 [2]B2ClipVertex

	if B2ClipSegmentToLine(clipPoints1[:], incidentEdge[:], tangent.OperatorNegate(), sideOffset1, iv1) < 2 {
		return
	}

	if B2ClipSegmentToLine(clipPoints2[:], clipPoints1[:], tangent, sideOffset2, iv2) < 2 {
		return
	}

	manifold.LocalNormal = localNormal
	manifold.LocalPoint = planePoint

	pointCount := 0
	for i := 0; i < B2_maxManifoldPoints; i++ {
		separation := B2Vec2Dot(normal, clipPoints2[i].V) - frontOffset
		if separation > totalRadius {
			continue
		}

		cp := &manifold.Points[pointCount]
		cp.LocalPoint = B2TransformVec2MulT(xf2, clipPoints2[i].V)
		cp.Id = clipPoints2[i].Id
		if flip {
			cf := cp.Id
			cp.Id.IndexA = cf.IndexB
			cp.Id.IndexB = cf.IndexA
			cp.Id.TypeA = cf.TypeB
			cp.Id.TypeB = cf.TypeA
		}
		pointCount++
	}

	manifold.PointCount = pointCount
}
