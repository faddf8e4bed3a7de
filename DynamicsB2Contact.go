package box2d

import (
	"math"
)

/// Friction mixing law. The idea is to allow either fixture to drive the friction to zero.
/// For example, anything slides on ice.
func B2MixFriction(friction1, friction2 float64) float64 {
	return math.Sqrt(friction1 * friction2)
}

/// Restitution mixing law. The idea is allow for anything to bounce off an inelastic surface.
/// For example, a superball bounces on anything.
func B2MixRestitution(restitution1, restitution2 float64) float64 {
	if restitution1 > restitution2 {
		return restitution1
	}

	return restitution2
}

/// Handle of a contact slot in the contact factory arena.
type B2ContactId int32

const B2_nullContact B2ContactId = -1

/// Handle of one side of a contact: 2*contact for the edge stored in body A's
/// list, 2*contact+1 for body B's.
type B2ContactEdgeId int32

const B2_nullContactEdge B2ContactEdgeId = -1

func b2MakeContactEdgeId(contact B2ContactId, side int) B2ContactEdgeId {
	return B2ContactEdgeId(int32(contact)*2 + int32(side))
}

func (id B2ContactEdgeId) contactId() B2ContactId {
	return B2ContactId(id / 2)
}

func (id B2ContactEdgeId) side() int {
	return int(id % 2)
}

/// A contact edge connects bodies and contacts in the contact graph, where
/// each body is a node and each contact is an edge. Each contact has two
/// edges, one in the doubly linked list of each attached body.
type B2ContactEdge struct {
	Other   *B2Body         ///< provides quick access to the other body attached.
	Contact B2ContactId     ///< the contact
	Prev    B2ContactEdgeId ///< the previous contact edge in the body's contact list
	Next    B2ContactEdgeId ///< the next contact edge in the body's contact list

	factory *B2ContactFactory
}

func (edge *B2ContactEdge) GetContact() *B2Contact {
	return edge.factory.Get(edge.Contact)
}

/// Next edge in the body's list, nil at the end.
func (edge *B2ContactEdge) GetNext() *B2ContactEdge {
	if edge.Next == B2_nullContactEdge {
		return nil
	}
	return edge.factory.Edge(edge.Next)
}

var B2Contact_Flag = struct {
	// Set when the shapes are touching.
	E_touchingFlag uint32

	// This contact can be disabled (by user)
	E_enabledFlag uint32

	// This contact needs filtering because a fixture filter was changed.
	E_filterFlag uint32
}{
	E_touchingFlag: 0x0002,
	E_enabledFlag:  0x0004,
	E_filterFlag:   0x0008,
}

// Computes the manifold of a contact for the shape pair it was created for.
type b2ContactEvaluateFcn func(contact *B2Contact, manifold *B2Manifold, xfA, xfB B2Transform)

/// The contact between two fixture children. A contact exists for each
/// overlapping pair of fat AABBs in the broad-phase (unless filtered), so a
/// contact may exist that has no contact points.
type B2Contact struct {
	M_id    B2ContactId
	M_flags uint32

	// global contact list
	M_prev B2ContactId
	M_next B2ContactId

	// edges for connecting bodies
	M_nodeA B2ContactEdge
	M_nodeB B2ContactEdge

	M_fixtureA *B2Fixture
	M_fixtureB *B2Fixture

	M_indexA int
	M_indexB int

	M_manifold B2Manifold

	M_friction     float64
	M_restitution  float64
	M_tangentSpeed float64

	m_evaluate b2ContactEvaluateFcn
	m_factory  *B2ContactFactory
	m_live     bool
}

func (contact *B2Contact) GetId() B2ContactId {
	return contact.M_id
}

func (contact *B2Contact) GetFlags() uint32 {
	return contact.M_flags
}

/// Next contact in the world contact list, nil at the end.
func (contact *B2Contact) GetNext() *B2Contact {
	if contact.M_next == B2_nullContact {
		return nil
	}
	return contact.m_factory.Get(contact.M_next)
}

func (contact *B2Contact) GetNodeA() *B2ContactEdge {
	return &contact.M_nodeA
}

func (contact *B2Contact) GetNodeB() *B2ContactEdge {
	return &contact.M_nodeB
}

func (contact *B2Contact) GetFixtureA() *B2Fixture {
	return contact.M_fixtureA
}

func (contact *B2Contact) GetFixtureB() *B2Fixture {
	return contact.M_fixtureB
}

func (contact *B2Contact) GetChildIndexA() int {
	return contact.M_indexA
}

func (contact *B2Contact) GetChildIndexB() int {
	return contact.M_indexB
}

/// The manifold in local coordinates. Use GetWorldManifold for world points.
func (contact *B2Contact) GetManifold() *B2Manifold {
	return &contact.M_manifold
}

func (contact *B2Contact) GetWorldManifold(worldManifold *B2WorldManifold) {
	bodyA := contact.M_fixtureA.GetBody()
	bodyB := contact.M_fixtureB.GetBody()
	shapeA := contact.M_fixtureA.GetShape()
	shapeB := contact.M_fixtureB.GetShape()

	worldManifold.Initialize(&contact.M_manifold, bodyA.GetTransform(), shapeA.GetRadius(), bodyB.GetTransform(), shapeB.GetRadius())
}

func (contact *B2Contact) GetFriction() float64 {
	return contact.M_friction
}

/// Override the mixed friction. Persists until ResetFriction.
func (contact *B2Contact) SetFriction(friction float64) {
	contact.M_friction = friction
}

func (contact *B2Contact) ResetFriction() {
	contact.M_friction = B2MixFriction(contact.M_fixtureA.M_friction, contact.M_fixtureB.M_friction)
}

func (contact *B2Contact) GetRestitution() float64 {
	return contact.M_restitution
}

func (contact *B2Contact) SetRestitution(restitution float64) {
	contact.M_restitution = restitution
}

func (contact *B2Contact) ResetRestitution() {
	contact.M_restitution = B2MixRestitution(contact.M_fixtureA.M_restitution, contact.M_fixtureB.M_restitution)
}

func (contact *B2Contact) GetTangentSpeed() float64 {
	return contact.M_tangentSpeed
}

func (contact *B2Contact) SetTangentSpeed(speed float64) {
	contact.M_tangentSpeed = speed
}

/// Disable the contact for the current step, from inside PreSolve.
func (contact *B2Contact) SetEnabled(flag bool) {
	if flag {
		contact.M_flags |= B2Contact_Flag.E_enabledFlag
	} else {
		contact.M_flags &^= B2Contact_Flag.E_enabledFlag
	}
}

func (contact *B2Contact) IsEnabled() bool {
	return contact.M_flags&B2Contact_Flag.E_enabledFlag == B2Contact_Flag.E_enabledFlag
}

func (contact *B2Contact) IsTouching() bool {
	return contact.M_flags&B2Contact_Flag.E_touchingFlag == B2Contact_Flag.E_touchingFlag
}

/// Re-run the collision filter on this contact during the next step.
func (contact *B2Contact) FlagForFiltering() {
	contact.M_flags |= B2Contact_Flag.E_filterFlag
}

/// Compute the manifold for the current transforms.
func (contact *B2Contact) Evaluate(manifold *B2Manifold, xfA, xfB B2Transform) {
	contact.m_evaluate(contact, manifold, xfA, xfB)
}

/// Update the manifold and touching status, and notify the listener.
/// The fixture AABBs may not overlap.
func (contact *B2Contact) Update(listener B2ContactListenerInterface) {
	oldManifold := contact.M_manifold

	// re-enable, PreSolve may disable again
	contact.M_flags |= B2Contact_Flag.E_enabledFlag

	touching := false
	wasTouching := contact.IsTouching()

	sensor := contact.M_fixtureA.IsSensor() || contact.M_fixtureB.IsSensor()

	bodyA := contact.M_fixtureA.GetBody()
	bodyB := contact.M_fixtureB.GetBody()
	xfA := bodyA.GetTransform()
	xfB := bodyB.GetTransform()

	if sensor {
		shapeA := contact.M_fixtureA.GetShape()
		shapeB := contact.M_fixtureB.GetShape()
		touching = B2TestOverlapShapes(shapeA, contact.M_indexA, shapeB, contact.M_indexB, xfA, xfB)

		// Sensors don't generate manifolds.
		contact.M_manifold.PointCount = 0
	} else {
		contact.Evaluate(&contact.M_manifold, xfA, xfB)
		touching = contact.M_manifold.PointCount > 0

		// Carry stored impulses over to matching feature ids.
		for i := 0; i < contact.M_manifold.PointCount; i++ {
			mp2 := &contact.M_manifold.Points[i]
			mp2.NormalImpulse = 0.0
			mp2.TangentImpulse = 0.0
			key := mp2.Id.Key()

			for j := 0; j < oldManifold.PointCount; j++ {
				mp1 := &oldManifold.Points[j]
				if mp1.Id.Key() == key {
					mp2.NormalImpulse = mp1.NormalImpulse
					mp2.TangentImpulse = mp1.TangentImpulse
					break
				}
			}
		}

		if touching != wasTouching {
			bodyA.SetAwake(true)
			bodyB.SetAwake(true)
		}
	}

	if touching {
		contact.M_flags |= B2Contact_Flag.E_touchingFlag
	} else {
		contact.M_flags &^= B2Contact_Flag.E_touchingFlag
	}

	if listener == nil {
		return
	}

	if !wasTouching && touching {
		listener.BeginContact(contact)
	}

	if wasTouching && !touching {
		listener.EndContact(contact)
	}

	if !sensor && touching {
		listener.PreSolve(contact, oldManifold)
	}
}
