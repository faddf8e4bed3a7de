package box2d

func b2CircleContactEvaluate(contact *B2Contact, manifold *B2Manifold, xfA, xfB B2Transform) {
	B2CollideCircles(
		manifold,
		contact.M_fixtureA.GetShape().(*B2CircleShape), xfA,
		contact.M_fixtureB.GetShape().(*B2CircleShape), xfB,
	)
}
