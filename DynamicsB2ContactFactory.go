package box2d

type b2ContactRegister struct {
	evaluate b2ContactEvaluateFcn
	primary  bool
}

// Indexed by [typeA][typeB]. A non-primary entry means the fixtures are
// swapped before the contact is built.
var b2ContactRegisters = b2InitializeContactRegisters()

func b2InitializeContactRegisters() [][]b2ContactRegister {
	registers := make([][]b2ContactRegister, B2Shape_Type.E_typeCount)
	for i := range registers {
		registers[i] = make([]b2ContactRegister, B2Shape_Type.E_typeCount)
	}

	addType := func(evaluate b2ContactEvaluateFcn, type1, type2 uint8) {
		registers[type1][type2] = b2ContactRegister{evaluate: evaluate, primary: true}
		if type1 != type2 {
			registers[type2][type1] = b2ContactRegister{evaluate: evaluate, primary: false}
		}
	}

	addType(b2CircleContactEvaluate, B2Shape_Type.E_circle, B2Shape_Type.E_circle)
	addType(b2PolygonAndCircleContactEvaluate, B2Shape_Type.E_polygon, B2Shape_Type.E_circle)
	addType(b2PolygonContactEvaluate, B2Shape_Type.E_polygon, B2Shape_Type.E_polygon)

	return registers
}

/// Owns every contact of a world. Contacts live in a slice addressed by
/// B2ContactId; destroyed slots are recycled most recent first.
type B2ContactFactory struct {
	M_contacts []*B2Contact
	M_freeList []B2ContactId
	M_count    int
}

func MakeB2ContactFactory() B2ContactFactory {
	return B2ContactFactory{
		M_contacts: make([]*B2Contact, 0, 16),
		M_freeList: make([]B2ContactId, 0, 16),
	}
}

/// Build the contact for a pair of fixture children, or nil when no routine
/// handles the shape pair. The returned contact may have A and B swapped.
/// It is not linked into any list yet.
func (factory *B2ContactFactory) Create(fixtureA *B2Fixture, indexA int, fixtureB *B2Fixture, indexB int) *B2Contact {
	type1 := fixtureA.GetType()
	type2 := fixtureB.GetType()

	B2Assert(type1 < B2Shape_Type.E_typeCount, "bad shape type %d", type1)
	B2Assert(type2 < B2Shape_Type.E_typeCount, "bad shape type %d", type2)

	register := b2ContactRegisters[type1][type2]
	if register.evaluate == nil {
		return nil
	}

	if !register.primary {
		fixtureA, fixtureB = fixtureB, fixtureA
		indexA, indexB = indexB, indexA
	}

	var id B2ContactId
	if n := len(factory.M_freeList); n > 0 {
		id = factory.M_freeList[n-1]
		factory.M_freeList = factory.M_freeList[:n-1]
	} else {
		id = B2ContactId(len(factory.M_contacts))
		factory.M_contacts = append(factory.M_contacts, nil)
	}

	// A fresh object per slot so stale pointers to a destroyed contact never
	// alias a new one.
	contact := &B2Contact{
		M_id:          id,
		M_flags:       B2Contact_Flag.E_enabledFlag,
		M_prev:        B2_nullContact,
		M_next:        B2_nullContact,
		M_fixtureA:    fixtureA,
		M_fixtureB:    fixtureB,
		M_indexA:      indexA,
		M_indexB:      indexB,
		M_friction:    B2MixFriction(fixtureA.M_friction, fixtureB.M_friction),
		M_restitution: B2MixRestitution(fixtureA.M_restitution, fixtureB.M_restitution),
		m_evaluate:    register.evaluate,
		m_factory:     factory,
		m_live:        true,
	}
	contact.M_nodeA = B2ContactEdge{Contact: id, Prev: B2_nullContactEdge, Next: B2_nullContactEdge, factory: factory}
	contact.M_nodeB = B2ContactEdge{Contact: id, Prev: B2_nullContactEdge, Next: B2_nullContactEdge, factory: factory}

	factory.M_contacts[id] = contact
	factory.M_count++

	return contact
}

/// Release a contact that has already been unlinked. Bodies that were
/// touching through a solid contact are woken.
func (factory *B2ContactFactory) Destroy(contact *B2Contact) {
	B2Assert(contact.m_live, "contact %d destroyed twice", contact.M_id)

	fixtureA := contact.M_fixtureA
	fixtureB := contact.M_fixtureB

	if contact.M_manifold.PointCount > 0 && !fixtureA.IsSensor() && !fixtureB.IsSensor() {
		fixtureA.GetBody().SetAwake(true)
		fixtureB.GetBody().SetAwake(true)
	}

	contact.m_live = false
	factory.M_contacts[contact.M_id] = nil
	factory.M_freeList = append(factory.M_freeList, contact.M_id)
	factory.M_count--
}

/// The live contact behind id. Panics on a freed or unknown id.
func (factory *B2ContactFactory) Get(id B2ContactId) *B2Contact {
	B2Assert(0 <= id && int(id) < len(factory.M_contacts), "contact id %d out of range", id)
	contact := factory.M_contacts[id]
	B2Assert(contact != nil, "contact id %d is free", id)
	return contact
}

func (factory *B2ContactFactory) Edge(id B2ContactEdgeId) *B2ContactEdge {
	contact := factory.Get(id.contactId())
	if id.side() == 0 {
		return &contact.M_nodeA
	}
	return &contact.M_nodeB
}

func (factory *B2ContactFactory) GetCount() int {
	return factory.M_count
}
