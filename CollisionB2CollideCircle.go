package box2d

// single point manifold on face A with the circle center as the point
func b2SetCircleManifold(manifold *B2Manifold, typ uint8, localNormal, localPoint, circleCenter B2Vec2) {
	manifold.Type = typ
	manifold.LocalNormal = localNormal
	manifold.LocalPoint = localPoint
	manifold.PointCount = 1
	manifold.Points[0].LocalPoint = circleCenter
	manifold.Points[0].Id.SetKey(0)
}

/// Manifold of two circles: one point when the centers are within the sum
/// of the radii, none otherwise.
func B2CollideCircles(manifold *B2Manifold, circleA *B2CircleShape, xfA B2Transform, circleB *B2CircleShape, xfB B2Transform) {
	manifold.PointCount = 0

	pA := B2TransformVec2Mul(xfA, circleA.M_p)
	pB := B2TransformVec2Mul(xfB, circleB.M_p)

	radius := circleA.M_radius + circleB.M_radius
	if B2Vec2DistanceSquared(pA, pB) > radius*radius {
		return
	}

	b2SetCircleManifold(manifold, B2Manifold_Type.E_circles, B2Vec2_zero, circleA.M_p, circleB.M_p)
}

/// Manifold of a polygon (A) and a circle (B).
func B2CollidePolygonAndCircle(manifold *B2Manifold, polygonA *B2PolygonShape, xfA B2Transform, circleB *B2CircleShape, xfB B2Transform) {
	manifold.PointCount = 0

	// circle center in the polygon frame
	cLocal := B2TransformVec2MulT(xfA, B2TransformVec2Mul(xfB, circleB.M_p))

	// find the face of minimum separation
	normalIndex := 0
	separation := -B2_maxFloat
	radius := polygonA.M_radius + circleB.M_radius
	count := polygonA.M_count
	vertices := &polygonA.M_vertices
	normals := &polygonA.M_normals

	for i := 0; i < count; i++ {
		s := B2Vec2Dot(normals[i], B2Vec2Sub(cLocal, vertices[i]))

		if s > radius {
			return
		}

		if s > separation {
			separation = s
			normalIndex = i
		}
	}

	// vertices of the reference face
	v1 := vertices[normalIndex]
	v2 := vertices[(normalIndex+1)%count]

	// center inside the polygon
	if separation < B2_epsilon {
		b2SetCircleManifold(manifold, B2Manifold_Type.E_faceA, normals[normalIndex], B2Vec2MulScalar(0.5, B2Vec2Add(v1, v2)), circleB.M_p)
		return
	}

	// barycentric coordinates along the face
	u1 := B2Vec2Dot(B2Vec2Sub(cLocal, v1), B2Vec2Sub(v2, v1))
	u2 := B2Vec2Dot(B2Vec2Sub(cLocal, v2), B2Vec2Sub(v1, v2))

	switch {
	case u1 <= 0.0:
		if B2Vec2DistanceSquared(cLocal, v1) > radius*radius {
			return
		}
		normal := B2Vec2Sub(cLocal, v1)
		normal.Normalize()
		b2SetCircleManifold(manifold, B2Manifold_Type.E_faceA, normal, v1, circleB.M_p)

	case u2 <= 0.0:
		if B2Vec2DistanceSquared(cLocal, v2) > radius*radius {
			return
		}
		normal := B2Vec2Sub(cLocal, v2)
		normal.Normalize()
		b2SetCircleManifold(manifold, B2Manifold_Type.E_faceA, normal, v2, circleB.M_p)

	default:
		faceCenter := B2Vec2MulScalar(0.5, B2Vec2Add(v1, v2))
		if B2Vec2Dot(B2Vec2Sub(cLocal, faceCenter), normals[normalIndex]) > radius {
			return
		}
		b2SetCircleManifold(manifold, B2Manifold_Type.E_faceA, normals[normalIndex], faceCenter, circleB.M_p)
	}
}
