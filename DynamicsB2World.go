package box2d

import (
	"errors"
	"fmt"
	"io"
	"math"
)

/// Returned by mutating calls made while the world is inside Step, e.g.
/// from a contact listener.
var ErrWorldLocked = errors.New("world is locked")

var B2World_Flags = struct {
	E_newFixture  uint32
	E_locked      uint32
	E_clearForces uint32
}{
	E_newFixture:  0x0001,
	E_locked:      0x0002,
	E_clearForces: 0x0004,
}

/// The world class manages all physics entities, the step and the queries.
type B2World struct {
	M_flags uint32

	M_contactManager *B2ContactManager

	M_bodyList  *B2Body // linked list
	M_bodyCount int

	M_gravity    B2Vec2
	M_allowSleep bool

	M_settings B2Settings

	M_destructionListener B2DestructionListenerInterface

	// This is used to compute the time step ratio to
	// support a variable time step.
	M_inv_dt0 float64

	M_profile B2Profile

	// bodies integrated during the current step, reused between steps
	m_stepBodies []*B2Body
}

/// A world with the default settings.
func NewB2World(gravity B2Vec2) *B2World {
	world, err := NewB2WorldWithSettings(gravity, MakeB2Settings())
	B2Assert(err == nil, "default settings rejected: %v", err)
	return world
}

func NewB2WorldWithSettings(gravity B2Vec2, settings B2Settings) (*B2World, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("box2d: new world: %w", err)
	}

	world := &B2World{
		M_flags:          B2World_Flags.E_clearForces,
		M_contactManager: NewB2ContactManager(),
		M_gravity:        gravity,
	}
	world.applySettings(settings)

	return world, nil
}

func (world *B2World) applySettings(settings B2Settings) {
	world.M_settings = settings
	world.M_allowSleep = settings.SleepAllowed()
	world.M_contactManager.M_broadPhase.SetFattening(settings.AabbExtension, settings.AabbMultiplier)
	if !world.M_allowSleep {
		for b := world.M_bodyList; b != nil; b = b.M_next {
			b.SetAwake(true)
		}
	}
}

/// Replace the tuning values. Proxies pick up new fattening margins the next
/// time they move.
func (world *B2World) SetSettings(settings B2Settings) error {
	if world.IsLocked() {
		return fmt.Errorf("box2d: set settings: %w", ErrWorldLocked)
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("box2d: set settings: %w", err)
	}

	world.applySettings(settings)
	return nil
}

func (world *B2World) GetSettings() B2Settings {
	return world.M_settings
}

func (world *B2World) GetBodyList() *B2Body {
	return world.M_bodyList
}

func (world *B2World) GetContactList() *B2Contact {
	return world.M_contactManager.GetContactList()
}

func (world *B2World) GetBodyCount() int {
	return world.M_bodyCount
}

func (world *B2World) GetContactCount() int {
	return world.M_contactManager.M_contactCount
}

func (world *B2World) SetGravity(gravity B2Vec2) {
	world.M_gravity = gravity
}

func (world *B2World) GetGravity() B2Vec2 {
	return world.M_gravity
}

/// True while inside Step.
func (world *B2World) IsLocked() bool {
	return world.M_flags&B2World_Flags.E_locked == B2World_Flags.E_locked
}

func (world *B2World) SetAutoClearForces(flag bool) {
	if flag {
		world.M_flags |= B2World_Flags.E_clearForces
	} else {
		world.M_flags &^= B2World_Flags.E_clearForces
	}
}

/// Get the flag that controls automatic clearing of forces after each time step.
func (world *B2World) GetAutoClearForces() bool {
	return world.M_flags&B2World_Flags.E_clearForces == B2World_Flags.E_clearForces
}

func (world *B2World) GetContactManager() *B2ContactManager {
	return world.M_contactManager
}

func (world *B2World) GetProfile() B2Profile {
	return world.M_profile
}

func (world *B2World) SetDestructionListener(listener B2DestructionListenerInterface) {
	world.M_destructionListener = listener
}

/// Replace the contact filter. nil disables user filtering.
func (world *B2World) SetContactFilter(filter B2ContactFilterInterface) {
	world.M_contactManager.M_contactFilter = filter
}

func (world *B2World) SetContactListener(listener B2ContactListenerInterface) {
	world.M_contactManager.M_contactListener = listener
}

func (world *B2World) SetAllowSleeping(flag bool) {
	if flag == world.M_allowSleep {
		return
	}

	world.M_allowSleep = flag
	if !world.M_allowSleep {
		for b := world.M_bodyList; b != nil; b = b.M_next {
			b.SetAwake(true)
		}
	}
}

func (world *B2World) GetAllowSleeping() bool {
	return world.M_allowSleep
}

/// Create a rigid body. Fails while the world is locked.
func (world *B2World) CreateBody(def *B2BodyDef) (*B2Body, error) {
	if world.IsLocked() {
		return nil, fmt.Errorf("box2d: create body: %w", ErrWorldLocked)
	}

	b := newB2Body(def, world)

	// Add to world doubly linked list.
	b.M_prev = nil
	b.M_next = world.M_bodyList
	if world.M_bodyList != nil {
		world.M_bodyList.M_prev = b
	}
	world.M_bodyList = b
	world.M_bodyCount++

	return b, nil
}

/// Destroy a body with its contacts and fixtures. The destruction listener
/// hears about every fixture first.
func (world *B2World) DestroyBody(b *B2Body) error {
	if world.IsLocked() {
		return fmt.Errorf("box2d: destroy body: %w", ErrWorldLocked)
	}

	B2Assert(world.M_bodyCount > 0, "world has no bodies")
	B2Assert(b.M_world == world, "body belongs to another world")

	b.destroyContacts()

	broadPhase := &world.M_contactManager.M_broadPhase
	f := b.M_fixtureList
	for f != nil {
		f0 := f
		f = f.M_next

		if world.M_destructionListener != nil {
			world.M_destructionListener.SayGoodbyeToFixture(f0)
		}

		f0.DestroyProxies(broadPhase)
		f0.M_body = nil
		f0.M_next = nil
		f0.M_proxies = nil
	}

	b.M_fixtureList = nil
	b.M_fixtureCount = 0

	// Remove from the world body list.
	if b.M_prev != nil {
		b.M_prev.M_next = b.M_next
	}

	if b.M_next != nil {
		b.M_next.M_prev = b.M_prev
	}

	if b == world.M_bodyList {
		world.M_bodyList = b.M_next
	}

	b.M_prev = nil
	b.M_next = nil

	world.M_bodyCount--

	return nil
}

/// Take a time step: integrate the awake bodies, update sleep timers, move
/// their proxies, pair new contacts and run the narrow phase. The world is
/// locked meanwhile; listeners fire during the narrow phase. A listener
/// calling Step gets ErrWorldLocked and the outer step carries on.
func (world *B2World) Step(dt float64) error {
	if world.IsLocked() {
		return fmt.Errorf("box2d: step: %w", ErrWorldLocked)
	}

	stepTimer := MakeB2Timer()

	// If new fixtures were added, we need to find the new contacts.
	if world.M_flags&B2World_Flags.E_newFixture != 0 {
		world.M_contactManager.FindNewContacts()
		world.M_flags &^= B2World_Flags.E_newFixture
	}

	world.M_flags |= B2World_Flags.E_locked

	step := MakeB2TimeStep(dt, world.M_inv_dt0)

	if step.Dt > 0.0 {
		timer := MakeB2Timer()
		world.integrate(step)
		world.M_profile.Integrate = timer.GetMilliseconds()

		timer.Reset()
		world.updateSleep(step)
		world.M_profile.Sleep = timer.GetMilliseconds()

		timer.Reset()
		for _, b := range world.m_stepBodies {
			b.SynchronizeFixtures()
		}
		world.M_contactManager.FindNewContacts()
		world.M_profile.Broadphase = timer.GetMilliseconds()
	}

	{
		timer := MakeB2Timer()
		world.M_contactManager.Collide()
		world.M_profile.Collide = timer.GetMilliseconds()
	}

	if step.Dt > 0.0 {
		world.M_inv_dt0 = step.Inv_dt
	}

	if world.M_flags&B2World_Flags.E_clearForces != 0 {
		world.ClearForces()
	}

	world.M_flags &^= B2World_Flags.E_locked

	world.M_profile.Step = stepTimer.GetMilliseconds()

	return nil
}

// Semi-implicit Euler for every awake, active, non-static body. Velocities
// are damped, then clamped so a step never moves a body further than
// MaxTranslation or turns it more than MaxRotation.
func (world *B2World) integrate(step B2TimeStep) {
	h := step.Dt
	maxTranslation := world.M_settings.MaxTranslation
	maxRotation := world.M_settings.MaxRotation

	world.m_stepBodies = world.m_stepBodies[:0]

	for b := world.M_bodyList; b != nil; b = b.M_next {
		if b.M_type == B2BodyType.B2_staticBody || !b.IsAwake() || !b.IsActive() {
			continue
		}

		world.m_stepBodies = append(world.m_stepBodies, b)

		b.M_sweep.C0 = b.M_sweep.C
		b.M_sweep.A0 = b.M_sweep.A

		v := b.M_linearVelocity
		w := b.M_angularVelocity

		if b.M_type == B2BodyType.B2_dynamicBody {
			// Integrate velocities.
			v.OperatorPlusInplace(B2Vec2MulScalar(h, B2Vec2Add(
				B2Vec2MulScalar(b.M_gravityScale, world.M_gravity),
				B2Vec2MulScalar(b.M_invMass, b.M_force),
			)))
			w += h * b.M_invI * b.M_torque

			// Pade approximation of v2 = v1 * exp(-c * dt), stable for large c.
			v.OperatorScalarMulInplace(1.0 / (1.0 + h*b.M_linearDamping))
			w *= 1.0 / (1.0 + h*b.M_angularDamping)
		}

		translation := B2Vec2MulScalar(h, v)
		if B2Vec2Dot(translation, translation) > maxTranslation*maxTranslation {
			v.OperatorScalarMulInplace(maxTranslation / translation.Length())
		}

		rotation := h * w
		if rotation*rotation > maxRotation*maxRotation {
			w *= maxRotation / math.Abs(rotation)
		}

		b.M_sweep.C.OperatorPlusInplace(B2Vec2MulScalar(h, v))
		b.M_sweep.A += h * w
		b.M_linearVelocity = v
		b.M_angularVelocity = w

		b.SynchronizeTransform()
	}
}

// Per body sleep timers. A body resting below both tolerances for
// TimeToSleep seconds is put to sleep.
func (world *B2World) updateSleep(step B2TimeStep) {
	if !world.M_allowSleep {
		return
	}

	linTolSqr := world.M_settings.LinearSleepTolerance * world.M_settings.LinearSleepTolerance
	angTolSqr := world.M_settings.AngularSleepTolerance * world.M_settings.AngularSleepTolerance

	for _, b := range world.m_stepBodies {
		if !b.IsSleepingAllowed() ||
			b.M_angularVelocity*b.M_angularVelocity > angTolSqr ||
			B2Vec2Dot(b.M_linearVelocity, b.M_linearVelocity) > linTolSqr {
			b.M_sleepTime = 0.0
			continue
		}

		b.M_sleepTime += step.Dt
		if b.M_sleepTime >= world.M_settings.TimeToSleep {
			b.SetAwake(false)
		}
	}
}

/// Zero the force and torque of every body. Step does this itself unless
/// automatic clearing is disabled.
func (world *B2World) ClearForces() {
	for body := world.M_bodyList; body != nil; body = body.GetNext() {
		body.M_force.SetZero()
		body.M_torque = 0.0
	}
}

/// Call back for every fixture whose fat AABB overlaps aabb.
func (world *B2World) QueryAABB(callback B2BroadPhaseQueryCallback, aabb B2AABB) {
	broadPhase := &world.M_contactManager.M_broadPhase
	broadPhase.Query(func(proxyId B2TreeNodeId) bool {
		proxy := broadPhase.GetUserData(proxyId).(*B2FixtureProxy)
		return callback(proxy.Fixture)
	}, aabb)
}

/// Call back for every fixture containing point.
func (world *B2World) QueryPoint(callback B2BroadPhaseQueryCallback, point B2Vec2) {
	broadPhase := &world.M_contactManager.M_broadPhase
	broadPhase.QueryPoint(func(proxyId B2TreeNodeId) bool {
		proxy := broadPhase.GetUserData(proxyId).(*B2FixtureProxy)
		if !proxy.Fixture.TestPoint(point) {
			return true
		}
		return callback(proxy.Fixture)
	}, point)
}

/// Ray-cast the world for all fixtures in the path of the ray. The callback
/// controls whether you get the closest point, any point, or n-points. The
/// ray-cast ignores shapes that contain the starting point. Zero stops the
/// cast; a negative return skips the fixture and leaves the ray as it was.
func (world *B2World) RayCast(callback B2RaycastCallback, point1 B2Vec2, point2 B2Vec2) {
	broadPhase := &world.M_contactManager.M_broadPhase

	wrapper := func(input B2RayCastInput, proxyId B2TreeNodeId) float64 {
		proxy := broadPhase.GetUserData(proxyId).(*B2FixtureProxy)
		fixture := proxy.Fixture

		var output B2RayCastOutput
		if !fixture.RayCast(&output, input, proxy.ChildIndex) {
			return input.MaxFraction
		}

		fraction := output.Fraction
		point := B2Vec2Add(B2Vec2MulScalar(1.0-fraction, input.P1), B2Vec2MulScalar(fraction, input.P2))
		value := callback(fixture, point, output.Normal, fraction)
		if value < 0.0 {
			return input.MaxFraction
		}
		return value
	}

	broadPhase.RayCast(wrapper, B2RayCastInput{P1: point1, P2: point2, MaxFraction: 1.0})
}

func (world *B2World) GetProxyCount() int {
	return world.M_contactManager.M_broadPhase.GetProxyCount()
}

func (world *B2World) GetTreeHeight() int {
	return world.M_contactManager.M_broadPhase.GetTreeHeight()
}

func (world *B2World) GetTreeBalance() int {
	return world.M_contactManager.M_broadPhase.GetTreeBalance()
}

func (world *B2World) GetTreeQuality() float64 {
	return world.M_contactManager.M_broadPhase.GetTreeQuality()
}

/// Shift the world origin. Useful for large worlds.
func (world *B2World) ShiftOrigin(newOrigin B2Vec2) error {
	if world.IsLocked() {
		return fmt.Errorf("box2d: shift origin: %w", ErrWorldLocked)
	}

	for b := world.M_bodyList; b != nil; b = b.M_next {
		b.M_xf.P.OperatorMinusInplace(newOrigin)
		b.M_sweep.C0.OperatorMinusInplace(newOrigin)
		b.M_sweep.C.OperatorMinusInplace(newOrigin)
	}

	for b := world.M_bodyList; b != nil; b = b.M_next {
		for fixture := b.M_fixtureList; fixture != nil; fixture = fixture.M_next {
			for i := 0; i < fixture.M_proxyCount; i++ {
				aabb := &fixture.M_proxies[i].Aabb
				aabb.LowerBound.OperatorMinusInplace(newOrigin)
				aabb.UpperBound.OperatorMinusInplace(newOrigin)
			}
		}
	}

	world.M_contactManager.M_broadPhase.ShiftOrigin(newOrigin)

	return nil
}

/// Write a readable listing of the world. Nothing is written while locked.
func (world *B2World) Dump(w io.Writer) {
	if world.IsLocked() {
		return
	}

	fmt.Fprintf(w, "world gravity=(%.15e, %.15e) bodies=%d contacts=%d\n",
		world.M_gravity.X, world.M_gravity.Y, world.M_bodyCount, world.GetContactCount())

	i := 0
	for b := world.M_bodyList; b != nil; b = b.M_next {
		b.Dump(w, i)
		i++
	}
}
