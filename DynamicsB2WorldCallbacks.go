package box2d

/// Fixtures are destroyed when their associated body is
/// destroyed. Implement this listener so that you may nullify references
/// to these fixtures.
type B2DestructionListenerInterface interface {
	/// Called when any fixture is about to be destroyed due
	/// to the destruction of its parent body.
	SayGoodbyeToFixture(fixture *B2Fixture)
}

/// Implement this to provide collision filtering.
type B2ContactFilterInterface interface {
	/// Return true if contact calculations should be performed between these
	/// two fixtures. Only called when a contact is about to be created or
	/// has been flagged for filtering.
	ShouldCollide(fixtureA *B2Fixture, fixtureB *B2Fixture) bool
}

/// Implement this to get contact information. Contacts passed in are only
/// valid for the duration of the call; the world is locked meanwhile, so
/// bodies and fixtures cannot be created or destroyed from a callback.
type B2ContactListenerInterface interface {
	/// Called when two fixtures begin to touch.
	BeginContact(contact *B2Contact)

	/// Called when two fixtures cease to touch. Also called when a touching
	/// contact is destroyed.
	EndContact(contact *B2Contact)

	/// Called after a touching, non-sensor contact is updated. The contact
	/// may be disabled with SetEnabled. oldManifold is the manifold before
	/// the update.
	PreSolve(contact *B2Contact, oldManifold B2Manifold)
}

/// Embeddable no-op listener.
type B2ContactListener struct{}

func (B2ContactListener) BeginContact(contact *B2Contact)                     {}
func (B2ContactListener) EndContact(contact *B2Contact)                       {}
func (B2ContactListener) PreSolve(contact *B2Contact, oldManifold B2Manifold) {}

/// Default filter: group index first, then category and mask bits.
type B2ContactFilter struct{}

// Return true if contact calculations should be performed between these two shapes.
// If you implement your own collision filter you may want to build from this implementation.
func (cf *B2ContactFilter) ShouldCollide(fixtureA *B2Fixture, fixtureB *B2Fixture) bool {
	filterA := fixtureA.GetFilterData()
	filterB := fixtureB.GetFilterData()

	if filterA.GroupIndex == filterB.GroupIndex && filterA.GroupIndex != 0 {
		return filterA.GroupIndex > 0
	}

	return (filterA.MaskBits&filterB.CategoryBits) != 0 && (filterA.CategoryBits&filterB.MaskBits) != 0
}

/// Called for each fixture found in the query. Return false to stop.
type B2BroadPhaseQueryCallback func(fixture *B2Fixture) bool

/// Called for each fixture hit by a world ray cast. You control how the ray
/// cast proceeds by returning a float:
/// return -1: ignore this fixture and continue
/// return 0: terminate the ray cast
/// The world maps a negative value to the current max fraction before the
/// tree sees it, since the tree stops on anything <= 0.
/// return fraction: clip the ray to this point
/// return 1: don't clip the ray and continue
type B2RaycastCallback func(fixture *B2Fixture, point B2Vec2, normal B2Vec2, fraction float64) float64
