package box2d

// Fixture A holds the polygon. The factory swaps circle/polygon pairs.
func b2PolygonAndCircleContactEvaluate(contact *B2Contact, manifold *B2Manifold, xfA, xfB B2Transform) {
	B2CollidePolygonAndCircle(
		manifold,
		contact.M_fixtureA.GetShape().(*B2PolygonShape), xfA,
		contact.M_fixtureB.GetShape().(*B2CircleShape), xfB,
	)
}
