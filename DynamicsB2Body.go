package box2d

import (
	"fmt"
	"io"
)

/// The body type.
/// static: zero mass, zero velocity, may be manually moved
/// kinematic: zero mass, non-zero velocity set by user, moved by the world step
/// dynamic: positive mass, non-zero velocity determined by forces, moved by the world step
var B2BodyType = struct {
	B2_staticBody    uint8
	B2_kinematicBody uint8
	B2_dynamicBody   uint8
}{
	B2_staticBody:    0,
	B2_kinematicBody: 1,
	B2_dynamicBody:   2,
}

func b2BodyTypeName(t uint8) string {
	switch t {
	case B2BodyType.B2_staticBody:
		return "static"
	case B2BodyType.B2_kinematicBody:
		return "kinematic"
	case B2BodyType.B2_dynamicBody:
		return "dynamic"
	}
	return "unknown"
}

/// A body definition holds all the data needed to construct a rigid body.
/// You can safely re-use body definitions. Shapes are added to a body after construction.
type B2BodyDef struct {
	/// The body type: static, kinematic, or dynamic.
	/// Note: if a dynamic body would have zero mass, the mass is set to one.
	Type uint8

	/// The world position of the body. Avoid creating bodies at the origin
	/// since this can lead to many overlapping shapes.
	Position B2Vec2

	/// The world angle of the body in radians.
	Angle float64

	/// The linear velocity of the body's origin in world co-ordinates.
	LinearVelocity B2Vec2

	/// The angular velocity of the body.
	AngularVelocity float64

	/// Linear damping is use to reduce the linear velocity. The damping parameter
	/// can be larger than 1.0 but the damping effect becomes sensitive to the
	/// time step when the damping parameter is large.
	/// Units are 1/time
	LinearDamping float64

	/// Angular damping is use to reduce the angular velocity.
	/// Units are 1/time
	AngularDamping float64

	/// Set this flag to false if this body should never fall asleep.
	AllowSleep bool

	/// Is this body initially awake or sleeping?
	Awake bool

	/// Should this body be prevented from rotating? Useful for characters.
	FixedRotation bool

	/// Does this body start out active?
	Active bool

	/// Use this to store application specific body data.
	UserData interface{}

	/// Scale the gravity applied to this body.
	GravityScale float64
}

/// This constructor sets the body definition default values.
func MakeB2BodyDef() B2BodyDef {
	return B2BodyDef{
		Type:         B2BodyType.B2_staticBody,
		AllowSleep:   true,
		Awake:        true,
		Active:       true,
		GravityScale: 1.0,
	}
}

func NewB2BodyDef() *B2BodyDef {
	res := MakeB2BodyDef()
	return &res
}

var B2Body_Flags = struct {
	E_awakeFlag         uint32
	E_autoSleepFlag     uint32
	E_fixedRotationFlag uint32
	E_activeFlag        uint32
}{
	E_awakeFlag:         0x0002,
	E_autoSleepFlag:     0x0004,
	E_fixedRotationFlag: 0x0010,
	E_activeFlag:        0x0020,
}

type B2Body struct {
	M_type uint8

	M_flags uint32

	M_xf    B2Transform // the body origin transform
	M_sweep B2Sweep     // the swept motion between two steps

	M_linearVelocity  B2Vec2
	M_angularVelocity float64

	M_force  B2Vec2
	M_torque float64

	M_world *B2World
	M_prev  *B2Body
	M_next  *B2Body

	M_fixtureList  *B2Fixture // linked list
	M_fixtureCount int

	M_contactList B2ContactEdgeId // head of this body's edge list

	M_mass, M_invMass float64

	// Rotational inertia about the center of mass.
	M_I, M_invI float64

	M_linearDamping  float64
	M_angularDamping float64
	M_gravityScale   float64

	M_sleepTime float64

	M_userData interface{}
}

func newB2Body(bd *B2BodyDef, world *B2World) *B2Body {
	B2Assert(bd.Position.IsValid(), "invalid body position")
	B2Assert(bd.LinearVelocity.IsValid(), "invalid body linear velocity")
	B2Assert(B2IsValid(bd.Angle), "invalid body angle")
	B2Assert(B2IsValid(bd.AngularVelocity), "invalid body angular velocity")
	B2Assert(B2IsValid(bd.AngularDamping) && bd.AngularDamping >= 0.0, "invalid angular damping %v", bd.AngularDamping)
	B2Assert(B2IsValid(bd.LinearDamping) && bd.LinearDamping >= 0.0, "invalid linear damping %v", bd.LinearDamping)

	body := &B2Body{
		M_type:            bd.Type,
		M_world:           world,
		M_contactList:     B2_nullContactEdge,
		M_linearVelocity:  bd.LinearVelocity,
		M_angularVelocity: bd.AngularVelocity,
		M_linearDamping:   bd.LinearDamping,
		M_angularDamping:  bd.AngularDamping,
		M_gravityScale:    bd.GravityScale,
		M_userData:        bd.UserData,
	}

	if bd.FixedRotation {
		body.M_flags |= B2Body_Flags.E_fixedRotationFlag
	}
	if bd.AllowSleep {
		body.M_flags |= B2Body_Flags.E_autoSleepFlag
	}
	if bd.Awake {
		body.M_flags |= B2Body_Flags.E_awakeFlag
	}
	if bd.Active {
		body.M_flags |= B2Body_Flags.E_activeFlag
	}

	body.M_xf.P = bd.Position
	body.M_xf.Q.Set(bd.Angle)

	body.M_sweep.C0 = body.M_xf.P
	body.M_sweep.C = body.M_xf.P
	body.M_sweep.A0 = bd.Angle
	body.M_sweep.A = bd.Angle

	if body.M_type == B2BodyType.B2_dynamicBody {
		body.M_mass = 1.0
		body.M_invMass = 1.0
	}

	return body
}

func (body *B2Body) GetType() uint8 {
	return body.M_type
}

/// The body origin transform.
func (body *B2Body) GetTransform() B2Transform {
	return body.M_xf
}

/// The world position of the body origin.
func (body *B2Body) GetPosition() B2Vec2 {
	return body.M_xf.P
}

/// The current world rotation angle in radians.
func (body *B2Body) GetAngle() float64 {
	return body.M_sweep.A
}

func (body *B2Body) GetWorldCenter() B2Vec2 {
	return body.M_sweep.C
}

func (body *B2Body) GetLocalCenter() B2Vec2 {
	return body.M_sweep.LocalCenter
}

func (body *B2Body) SetLinearVelocity(v B2Vec2) {
	if body.M_type == B2BodyType.B2_staticBody {
		return
	}

	if B2Vec2Dot(v, v) > 0.0 {
		body.SetAwake(true)
	}

	body.M_linearVelocity = v
}

/// Linear velocity of the center of mass.
func (body *B2Body) GetLinearVelocity() B2Vec2 {
	return body.M_linearVelocity
}

func (body *B2Body) SetAngularVelocity(w float64) {
	if body.M_type == B2BodyType.B2_staticBody {
		return
	}

	if w*w > 0.0 {
		body.SetAwake(true)
	}

	body.M_angularVelocity = w
}

func (body *B2Body) GetAngularVelocity() float64 {
	return body.M_angularVelocity
}

func (body *B2Body) GetMass() float64 {
	return body.M_mass
}

/// Rotational inertia about the local origin.
func (body *B2Body) GetInertia() float64 {
	return body.M_I + body.M_mass*B2Vec2Dot(body.M_sweep.LocalCenter, body.M_sweep.LocalCenter)
}

/// Mass, local center of mass and inertia about the local origin.
func (body *B2Body) GetMassData(data *B2MassData) {
	data.Mass = body.M_mass
	data.I = body.GetInertia()
	data.Center = body.M_sweep.LocalCenter
}

func (body *B2Body) GetWorldPoint(localPoint B2Vec2) B2Vec2 {
	return B2TransformVec2Mul(body.M_xf, localPoint)
}

func (body *B2Body) GetWorldVector(localVector B2Vec2) B2Vec2 {
	return B2RotVec2Mul(body.M_xf.Q, localVector)
}

func (body *B2Body) GetLocalPoint(worldPoint B2Vec2) B2Vec2 {
	return B2TransformVec2MulT(body.M_xf, worldPoint)
}

func (body *B2Body) GetLocalVector(worldVector B2Vec2) B2Vec2 {
	return B2RotVec2MulT(body.M_xf.Q, worldVector)
}

func (body *B2Body) GetLinearVelocityFromWorldPoint(worldPoint B2Vec2) B2Vec2 {
	return B2Vec2Add(body.M_linearVelocity, B2Vec2CrossScalarVector(body.M_angularVelocity, B2Vec2Sub(worldPoint, body.M_sweep.C)))
}

func (body *B2Body) GetLinearVelocityFromLocalPoint(localPoint B2Vec2) B2Vec2 {
	return body.GetLinearVelocityFromWorldPoint(body.GetWorldPoint(localPoint))
}

func (body *B2Body) GetLinearDamping() float64 {
	return body.M_linearDamping
}

func (body *B2Body) SetLinearDamping(linearDamping float64) {
	body.M_linearDamping = linearDamping
}

func (body *B2Body) GetAngularDamping() float64 {
	return body.M_angularDamping
}

func (body *B2Body) SetAngularDamping(angularDamping float64) {
	body.M_angularDamping = angularDamping
}

func (body *B2Body) GetGravityScale() float64 {
	return body.M_gravityScale
}

func (body *B2Body) SetGravityScale(scale float64) {
	body.M_gravityScale = scale
}

/// Waking resets the sleep timer. Putting a body to sleep also zeroes its
/// velocities, force and torque.
func (body *B2Body) SetAwake(flag bool) {
	body.M_sleepTime = 0.0

	if flag {
		body.M_flags |= B2Body_Flags.E_awakeFlag
		return
	}

	body.M_flags &^= B2Body_Flags.E_awakeFlag
	body.M_linearVelocity.SetZero()
	body.M_angularVelocity = 0.0
	body.M_force.SetZero()
	body.M_torque = 0.0
}

func (body *B2Body) IsAwake() bool {
	return body.M_flags&B2Body_Flags.E_awakeFlag == B2Body_Flags.E_awakeFlag
}

func (body *B2Body) IsActive() bool {
	return body.M_flags&B2Body_Flags.E_activeFlag == B2Body_Flags.E_activeFlag
}

func (body *B2Body) IsFixedRotation() bool {
	return body.M_flags&B2Body_Flags.E_fixedRotationFlag == B2Body_Flags.E_fixedRotationFlag
}

func (body *B2Body) SetSleepingAllowed(flag bool) {
	if flag {
		body.M_flags |= B2Body_Flags.E_autoSleepFlag
	} else {
		body.M_flags &^= B2Body_Flags.E_autoSleepFlag
		body.SetAwake(true)
	}
}

func (body *B2Body) IsSleepingAllowed() bool {
	return body.M_flags&B2Body_Flags.E_autoSleepFlag == B2Body_Flags.E_autoSleepFlag
}

func (body *B2Body) GetFixtureList() *B2Fixture {
	return body.M_fixtureList
}

func (body *B2Body) GetFixtureCount() int {
	return body.M_fixtureCount
}

/// First edge of the body's contact list, nil when empty.
func (body *B2Body) GetContactList() *B2ContactEdge {
	if body.M_contactList == B2_nullContactEdge {
		return nil
	}
	return body.M_world.M_contactManager.edge(body.M_contactList)
}

/// Next body in the world body list.
func (body *B2Body) GetNext() *B2Body {
	return body.M_next
}

func (body *B2Body) SetUserData(data interface{}) {
	body.M_userData = data
}

func (body *B2Body) GetUserData() interface{} {
	return body.M_userData
}

func (body *B2Body) GetWorld() *B2World {
	return body.M_world
}

// wakes the body when asked, reports whether it is awake afterwards
func (body *B2Body) wakeFor(wake bool) bool {
	if wake && !body.IsAwake() {
		body.SetAwake(true)
	}
	return body.IsAwake()
}

/// Apply a force at a world point. Sleeping bodies do not accumulate force.
func (body *B2Body) ApplyForce(force B2Vec2, point B2Vec2, wake bool) {
	if body.M_type != B2BodyType.B2_dynamicBody || !body.wakeFor(wake) {
		return
	}

	body.M_force.OperatorPlusInplace(force)
	body.M_torque += B2Vec2Cross(B2Vec2Sub(point, body.M_sweep.C), force)
}

func (body *B2Body) ApplyForceToCenter(force B2Vec2, wake bool) {
	if body.M_type != B2BodyType.B2_dynamicBody || !body.wakeFor(wake) {
		return
	}

	body.M_force.OperatorPlusInplace(force)
}

func (body *B2Body) ApplyTorque(torque float64, wake bool) {
	if body.M_type != B2BodyType.B2_dynamicBody || !body.wakeFor(wake) {
		return
	}

	body.M_torque += torque
}

/// Apply an impulse at a world point. This immediately modifies the velocity.
func (body *B2Body) ApplyLinearImpulse(impulse B2Vec2, point B2Vec2, wake bool) {
	if body.M_type != B2BodyType.B2_dynamicBody || !body.wakeFor(wake) {
		return
	}

	body.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(body.M_invMass, impulse))
	body.M_angularVelocity += body.M_invI * B2Vec2Cross(B2Vec2Sub(point, body.M_sweep.C), impulse)
}

func (body *B2Body) ApplyLinearImpulseToCenter(impulse B2Vec2, wake bool) {
	if body.M_type != B2BodyType.B2_dynamicBody || !body.wakeFor(wake) {
		return
	}

	body.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(body.M_invMass, impulse))
}

func (body *B2Body) ApplyAngularImpulse(impulse float64, wake bool) {
	if body.M_type != B2BodyType.B2_dynamicBody || !body.wakeFor(wake) {
		return
	}

	body.M_angularVelocity += body.M_invI * impulse
}

func (body *B2Body) SynchronizeTransform() {
	body.M_xf.Q.Set(body.M_sweep.A)
	body.M_xf.P = B2Vec2Sub(body.M_sweep.C, B2RotVec2Mul(body.M_xf.Q, body.M_sweep.LocalCenter))
}

/// Move the sweep to time alpha and make that the current state. The
/// broad-phase is not synchronized.
func (body *B2Body) Advance(alpha float64) {
	body.M_sweep.Advance(alpha)
	body.M_sweep.C = body.M_sweep.C0
	body.M_sweep.A = body.M_sweep.A0
	body.SynchronizeTransform()
}

func (body *B2Body) broadPhase() *B2BroadPhase {
	return &body.M_world.M_contactManager.M_broadPhase
}

// destroy every contact on the body's edge list
func (body *B2Body) destroyContacts() {
	cm := body.M_world.M_contactManager
	edge := body.GetContactList()
	for edge != nil {
		next := edge.GetNext()
		cm.Destroy(edge.GetContact())
		edge = next
	}
	B2Assert(body.M_contactList == B2_nullContactEdge, "contact edges left after destroying contacts")
}

func (body *B2Body) touchProxies() {
	broadPhase := body.broadPhase()
	for f := body.M_fixtureList; f != nil; f = f.M_next {
		for i := 0; i < f.M_proxyCount; i++ {
			broadPhase.TouchProxy(f.M_proxies[i].ProxyId)
		}
	}
}

/// Change the body type. This resets the mass, wakes the body and drops its
/// contacts; the broad-phase pairs it again on the next step.
func (body *B2Body) SetType(bodyType uint8) error {
	if body.M_world.IsLocked() {
		return fmt.Errorf("box2d: set body type: %w", ErrWorldLocked)
	}

	if body.M_type == bodyType {
		return nil
	}

	body.M_type = bodyType

	body.ResetMassData()

	if body.M_type == B2BodyType.B2_staticBody {
		body.M_linearVelocity.SetZero()
		body.M_angularVelocity = 0.0
		body.M_sweep.A0 = body.M_sweep.A
		body.M_sweep.C0 = body.M_sweep.C
		body.SynchronizeFixtures()
	}

	body.SetAwake(true)

	body.M_force.SetZero()
	body.M_torque = 0.0

	body.destroyContacts()
	body.touchProxies()

	return nil
}

/// Create a fixture from a definition and attach it. The shape is cloned.
/// The mass is updated when the density is positive. Contacts for the new
/// fixture appear on the next step.
func (body *B2Body) CreateFixtureFromDef(def *B2FixtureDef) (*B2Fixture, error) {
	if body.M_world.IsLocked() {
		return nil, fmt.Errorf("box2d: create fixture: %w", ErrWorldLocked)
	}

	fixture := newB2Fixture(body, def)

	// Polygons take their skin from the world, not from the caller's shape.
	if poly, ok := fixture.M_shape.(*B2PolygonShape); ok {
		poly.M_radius = body.M_world.M_settings.PolygonRadius
	}

	if body.IsActive() {
		fixture.CreateProxies(body.broadPhase(), body.M_xf)
	}

	fixture.M_next = body.M_fixtureList
	body.M_fixtureList = fixture
	body.M_fixtureCount++

	if fixture.M_density > 0.0 {
		body.ResetMassData()
	}

	body.M_world.M_flags |= B2World_Flags.E_newFixture

	return fixture, nil
}

/// Shortcut for a fixture with default friction and filtering.
func (body *B2Body) CreateFixture(shape B2ShapeInterface, density float64) (*B2Fixture, error) {
	def := MakeB2FixtureDef()
	def.Shape = shape
	def.Density = density

	return body.CreateFixtureFromDef(&def)
}

/// Detach and destroy a fixture together with its contacts and proxies,
/// then reset the mass. Destroying a fixture of another body panics.
func (body *B2Body) DestroyFixture(fixture *B2Fixture) error {
	if fixture == nil {
		return nil
	}

	if body.M_world.IsLocked() {
		return fmt.Errorf("box2d: destroy fixture: %w", ErrWorldLocked)
	}

	B2Assert(fixture.M_body == body, "fixture belongs to another body")
	B2Assert(body.M_fixtureCount > 0, "body has no fixtures")

	node := &body.M_fixtureList
	found := false
	for *node != nil {
		if *node == fixture {
			*node = fixture.M_next
			found = true
			break
		}
		node = &(*node).M_next
	}

	B2Assert(found, "fixture not attached to its body")

	cm := body.M_world.M_contactManager
	edge := body.GetContactList()
	for edge != nil {
		next := edge.GetNext()
		c := edge.GetContact()
		if c.GetFixtureA() == fixture || c.GetFixtureB() == fixture {
			cm.Destroy(c)
		}
		edge = next
	}

	if body.IsActive() {
		fixture.DestroyProxies(body.broadPhase())
	}

	fixture.M_body = nil
	fixture.M_next = nil
	fixture.M_proxies = nil

	body.M_fixtureCount--

	body.ResetMassData()

	return nil
}

/// Recompute mass, center of mass and inertia from the fixtures with a
/// positive density. The velocity of the center of mass follows the new
/// center so linear momentum is preserved.
func (body *B2Body) ResetMassData() {
	body.M_mass = 0.0
	body.M_invMass = 0.0
	body.M_I = 0.0
	body.M_invI = 0.0
	body.M_sweep.LocalCenter.SetZero()

	// Static and kinematic bodies have zero mass.
	if body.M_type == B2BodyType.B2_staticBody || body.M_type == B2BodyType.B2_kinematicBody {
		body.M_sweep.C0 = body.M_xf.P
		body.M_sweep.C = body.M_xf.P
		body.M_sweep.A0 = body.M_sweep.A
		return
	}

	B2Assert(body.M_type == B2BodyType.B2_dynamicBody, "bad body type %d", body.M_type)

	localCenter := B2Vec2_zero
	for f := body.M_fixtureList; f != nil; f = f.M_next {
		if f.M_density == 0.0 {
			continue
		}

		var massData B2MassData
		f.GetMassData(&massData)
		body.M_mass += massData.Mass
		localCenter.OperatorPlusInplace(B2Vec2MulScalar(massData.Mass, massData.Center))
		body.M_I += massData.I
	}

	if body.M_mass > 0.0 {
		body.M_invMass = 1.0 / body.M_mass
		localCenter.OperatorScalarMulInplace(body.M_invMass)
	} else {
		// Force all dynamic bodies to have a positive mass.
		body.M_mass = 1.0
		body.M_invMass = 1.0
	}

	if body.M_I > 0.0 && !body.IsFixedRotation() {
		// Center the inertia about the center of mass.
		body.M_I -= body.M_mass * B2Vec2Dot(localCenter, localCenter)
		B2Assert(body.M_I > 0.0, "non-positive rotational inertia %v", body.M_I)
		body.M_invI = 1.0 / body.M_I
	} else {
		body.M_I = 0.0
		body.M_invI = 0.0
	}

	body.moveCenter(localCenter)
}

// Move the center of mass and keep the velocity of the body origin.
func (body *B2Body) moveCenter(localCenter B2Vec2) {
	oldCenter := body.M_sweep.C
	body.M_sweep.LocalCenter = localCenter
	body.M_sweep.C = B2TransformVec2Mul(body.M_xf, body.M_sweep.LocalCenter)
	body.M_sweep.C0 = body.M_sweep.C

	body.M_linearVelocity.OperatorPlusInplace(B2Vec2CrossScalarVector(
		body.M_angularVelocity,
		B2Vec2Sub(body.M_sweep.C, oldCenter),
	))
}

/// Override the mass properties. massData.I is about the local origin.
/// Ignored for non-dynamic bodies.
func (body *B2Body) SetMassData(massData *B2MassData) error {
	if body.M_world.IsLocked() {
		return fmt.Errorf("box2d: set mass data: %w", ErrWorldLocked)
	}

	if body.M_type != B2BodyType.B2_dynamicBody {
		return nil
	}

	body.M_invMass = 0.0
	body.M_I = 0.0
	body.M_invI = 0.0

	body.M_mass = massData.Mass
	if body.M_mass <= 0.0 {
		body.M_mass = 1.0
	}

	body.M_invMass = 1.0 / body.M_mass

	if massData.I > 0.0 && !body.IsFixedRotation() {
		body.M_I = massData.I - body.M_mass*B2Vec2Dot(massData.Center, massData.Center)
		B2Assert(body.M_I > 0.0, "non-positive rotational inertia %v", body.M_I)
		body.M_invI = 1.0 / body.M_I
	}

	body.moveCenter(massData.Center)

	return nil
}

/// At least one of the two bodies must be dynamic.
func (body *B2Body) ShouldCollide(other *B2Body) bool {
	return body.M_type == B2BodyType.B2_dynamicBody || other.M_type == B2BodyType.B2_dynamicBody
}

/// Teleport the body origin. Contacts are updated on the next step.
func (body *B2Body) SetTransform(position B2Vec2, angle float64) error {
	if body.M_world.IsLocked() {
		return fmt.Errorf("box2d: set transform: %w", ErrWorldLocked)
	}

	body.M_xf.Q.Set(angle)
	body.M_xf.P = position

	body.M_sweep.C = B2TransformVec2Mul(body.M_xf, body.M_sweep.LocalCenter)
	body.M_sweep.A = angle

	body.M_sweep.C0 = body.M_sweep.C
	body.M_sweep.A0 = angle

	broadPhase := body.broadPhase()
	for f := body.M_fixtureList; f != nil; f = f.M_next {
		f.Synchronize(broadPhase, body.M_xf, body.M_xf)
	}

	return nil
}

/// Move the fixture proxies to cover the motion from the sweep start to the
/// current transform.
func (body *B2Body) SynchronizeFixtures() {
	var xf1 B2Transform
	xf1.Q.Set(body.M_sweep.A0)
	xf1.P = B2Vec2Sub(body.M_sweep.C0, B2RotVec2Mul(xf1.Q, body.M_sweep.LocalCenter))

	broadPhase := body.broadPhase()
	for f := body.M_fixtureList; f != nil; f = f.M_next {
		f.Synchronize(broadPhase, xf1, body.M_xf)
	}
}

/// An inactive body keeps its fixtures but has no proxies and no contacts.
/// Reactivated bodies get their contacts on the next step.
func (body *B2Body) SetActive(flag bool) error {
	if body.M_world.IsLocked() {
		return fmt.Errorf("box2d: set active: %w", ErrWorldLocked)
	}

	if flag == body.IsActive() {
		return nil
	}

	broadPhase := body.broadPhase()

	if flag {
		body.M_flags |= B2Body_Flags.E_activeFlag

		for f := body.M_fixtureList; f != nil; f = f.M_next {
			f.CreateProxies(broadPhase, body.M_xf)
		}

		return nil
	}

	body.M_flags &^= B2Body_Flags.E_activeFlag

	for f := body.M_fixtureList; f != nil; f = f.M_next {
		f.DestroyProxies(broadPhase)
	}

	body.destroyContacts()

	return nil
}

func (body *B2Body) SetFixedRotation(flag bool) error {
	if body.M_world.IsLocked() {
		return fmt.Errorf("box2d: set fixed rotation: %w", ErrWorldLocked)
	}

	if body.IsFixedRotation() == flag {
		return nil
	}

	if flag {
		body.M_flags |= B2Body_Flags.E_fixedRotationFlag
	} else {
		body.M_flags &^= B2Body_Flags.E_fixedRotationFlag
	}

	body.M_angularVelocity = 0.0

	body.ResetMassData()

	return nil
}

func (body *B2Body) Dump(w io.Writer, bodyIndex int) {
	fmt.Fprintf(w, "  body %d type=%s\n", bodyIndex, b2BodyTypeName(body.M_type))
	fmt.Fprintf(w, "    position=(%.15e, %.15e) angle=%.15e\n", body.M_xf.P.X, body.M_xf.P.Y, body.M_sweep.A)
	fmt.Fprintf(w, "    linearVelocity=(%.15e, %.15e) angularVelocity=%.15e\n",
		body.M_linearVelocity.X, body.M_linearVelocity.Y, body.M_angularVelocity)
	fmt.Fprintf(w, "    linearDamping=%.15e angularDamping=%.15e gravityScale=%.15e\n",
		body.M_linearDamping, body.M_angularDamping, body.M_gravityScale)
	fmt.Fprintf(w, "    mass=%.15e inertia=%.15e\n", body.M_mass, body.GetInertia())
	fmt.Fprintf(w, "    allowSleep=%t awake=%t fixedRotation=%t active=%t\n",
		body.IsSleepingAllowed(), body.IsAwake(), body.IsFixedRotation(), body.IsActive())

	for f := body.M_fixtureList; f != nil; f = f.M_next {
		f.Dump(w, bodyIndex)
	}
}
