package box2d

func b2PolygonContactEvaluate(contact *B2Contact, manifold *B2Manifold, xfA, xfB B2Transform) {
	B2CollidePolygons(
		manifold,
		contact.M_fixtureA.GetShape().(*B2PolygonShape), xfA,
		contact.M_fixtureB.GetShape().(*B2PolygonShape), xfB,
	)
}
