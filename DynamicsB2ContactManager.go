package box2d

/// Delegate of B2World: owns the broad-phase and every contact, turns new
/// broad-phase pairs into contacts and runs the narrow phase each step.
type B2ContactManager struct {
	M_broadPhase      B2BroadPhase
	M_factory         B2ContactFactory
	M_contactList     B2ContactId
	M_contactCount    int
	M_contactFilter   B2ContactFilterInterface
	M_contactListener B2ContactListenerInterface
}

func NewB2ContactManager() *B2ContactManager {
	return &B2ContactManager{
		M_broadPhase:    MakeB2BroadPhase(),
		M_factory:       MakeB2ContactFactory(),
		M_contactList:   B2_nullContact,
		M_contactFilter: &B2ContactFilter{},
	}
}

/// First contact of the global list, nil when empty.
func (mgr *B2ContactManager) GetContactList() *B2Contact {
	if mgr.M_contactList == B2_nullContact {
		return nil
	}
	return mgr.M_factory.Get(mgr.M_contactList)
}

func (mgr *B2ContactManager) GetContactCount() int {
	return mgr.M_contactCount
}

func (mgr *B2ContactManager) edge(id B2ContactEdgeId) *B2ContactEdge {
	return mgr.M_factory.Edge(id)
}

// push edge at the head of a body's edge list
func (mgr *B2ContactManager) linkEdge(body *B2Body, id B2ContactEdgeId, other *B2Body) {
	node := mgr.edge(id)
	node.Other = other
	node.Prev = B2_nullContactEdge
	node.Next = body.M_contactList
	if body.M_contactList != B2_nullContactEdge {
		mgr.edge(body.M_contactList).Prev = id
	}
	body.M_contactList = id
}

func (mgr *B2ContactManager) unlinkEdge(body *B2Body, id B2ContactEdgeId) {
	node := mgr.edge(id)
	if node.Prev != B2_nullContactEdge {
		mgr.edge(node.Prev).Next = node.Next
	}
	if node.Next != B2_nullContactEdge {
		mgr.edge(node.Next).Prev = node.Prev
	}
	if body.M_contactList == id {
		body.M_contactList = node.Next
	}
	node.Prev = B2_nullContactEdge
	node.Next = B2_nullContactEdge
}

/// Destroy a contact: EndContact if it was touching, unlink it from the
/// world and both bodies, release its slot. Callers iterating a list must
/// read the next element before calling.
func (mgr *B2ContactManager) Destroy(c *B2Contact) {
	fixtureA := c.GetFixtureA()
	fixtureB := c.GetFixtureB()
	bodyA := fixtureA.GetBody()
	bodyB := fixtureB.GetBody()

	if mgr.M_contactListener != nil && c.IsTouching() {
		mgr.M_contactListener.EndContact(c)
	}

	// Remove from the world.
	if c.M_prev != B2_nullContact {
		mgr.M_factory.Get(c.M_prev).M_next = c.M_next
	}
	if c.M_next != B2_nullContact {
		mgr.M_factory.Get(c.M_next).M_prev = c.M_prev
	}
	if mgr.M_contactList == c.M_id {
		mgr.M_contactList = c.M_next
	}

	mgr.unlinkEdge(bodyA, b2MakeContactEdgeId(c.M_id, 0))
	mgr.unlinkEdge(bodyB, b2MakeContactEdgeId(c.M_id, 1))

	mgr.M_factory.Destroy(c)
	mgr.M_contactCount--
}

/// Top level collision call for the time step: the narrow phase over the
/// world contact list. Each contact goes through the filter flag, then the
/// activity check, then the fat AABB overlap, before its manifold update.
func (mgr *B2ContactManager) Collide() {
	c := mgr.GetContactList()

	for c != nil {
		fixtureA := c.GetFixtureA()
		fixtureB := c.GetFixtureB()
		indexA := c.GetChildIndexA()
		indexB := c.GetChildIndexB()
		bodyA := fixtureA.GetBody()
		bodyB := fixtureB.GetBody()

		if c.M_flags&B2Contact_Flag.E_filterFlag != 0 {
			if !bodyB.ShouldCollide(bodyA) {
				cNuke := c
				c = cNuke.GetNext()
				mgr.Destroy(cNuke)
				continue
			}

			if mgr.M_contactFilter != nil && !mgr.M_contactFilter.ShouldCollide(fixtureA, fixtureB) {
				cNuke := c
				c = cNuke.GetNext()
				mgr.Destroy(cNuke)
				continue
			}

			c.M_flags &^= B2Contact_Flag.E_filterFlag
		}

		activeA := bodyA.IsAwake() && bodyA.M_type != B2BodyType.B2_staticBody
		activeB := bodyB.IsAwake() && bodyB.M_type != B2BodyType.B2_staticBody

		// At least one body must be awake and it must be dynamic or kinematic.
		if !activeA && !activeB {
			c = c.GetNext()
			continue
		}

		proxyIdA := fixtureA.M_proxies[indexA].ProxyId
		proxyIdB := fixtureB.M_proxies[indexB].ProxyId

		// Contacts whose fat AABBs stop overlapping are destroyed.
		if !mgr.M_broadPhase.TestOverlap(proxyIdA, proxyIdB) {
			cNuke := c
			c = cNuke.GetNext()
			mgr.Destroy(cNuke)
			continue
		}

		c.Update(mgr.M_contactListener)
		c = c.GetNext()
	}
}

func (mgr *B2ContactManager) FindNewContacts() {
	mgr.M_broadPhase.UpdatePairs(mgr.AddPair)
}

/// Broad-phase callback. The user data are *B2FixtureProxy.
func (mgr *B2ContactManager) AddPair(proxyUserDataA interface{}, proxyUserDataB interface{}) {
	proxyA := proxyUserDataA.(*B2FixtureProxy)
	proxyB := proxyUserDataB.(*B2FixtureProxy)

	fixtureA := proxyA.Fixture
	fixtureB := proxyB.Fixture

	indexA := proxyA.ChildIndex
	indexB := proxyB.ChildIndex

	bodyA := fixtureA.GetBody()
	bodyB := fixtureB.GetBody()

	if bodyA == bodyB {
		return
	}

	// Does a contact already exist?
	for edge := bodyB.GetContactList(); edge != nil; edge = edge.GetNext() {
		if edge.Other != bodyA {
			continue
		}

		contact := edge.GetContact()
		fA := contact.GetFixtureA()
		fB := contact.GetFixtureB()
		iA := contact.GetChildIndexA()
		iB := contact.GetChildIndexB()

		if fA == fixtureA && fB == fixtureB && iA == indexA && iB == indexB {
			return
		}

		if fA == fixtureB && fB == fixtureA && iA == indexB && iB == indexA {
			return
		}
	}

	// Is at least one body dynamic?
	if !bodyB.ShouldCollide(bodyA) {
		return
	}

	if mgr.M_contactFilter != nil && !mgr.M_contactFilter.ShouldCollide(fixtureA, fixtureB) {
		return
	}

	c := mgr.M_factory.Create(fixtureA, indexA, fixtureB, indexB)
	if c == nil {
		return
	}

	// Contact creation may swap fixtures.
	fixtureA = c.GetFixtureA()
	fixtureB = c.GetFixtureB()
	bodyA = fixtureA.GetBody()
	bodyB = fixtureB.GetBody()

	// Insert into the world.
	c.M_prev = B2_nullContact
	c.M_next = mgr.M_contactList
	if mgr.M_contactList != B2_nullContact {
		mgr.M_factory.Get(mgr.M_contactList).M_prev = c.M_id
	}
	mgr.M_contactList = c.M_id

	// Connect to the bodies.
	mgr.linkEdge(bodyA, b2MakeContactEdgeId(c.M_id, 0), bodyB)
	mgr.linkEdge(bodyB, b2MakeContactEdgeId(c.M_id, 1), bodyA)

	if !fixtureA.IsSensor() && !fixtureB.IsSensor() {
		bodyA.SetAwake(true)
		bodyB.SetAwake(true)
	}

	mgr.M_contactCount++
}
