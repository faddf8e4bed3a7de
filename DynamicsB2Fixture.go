package box2d

import (
	"fmt"
	"io"
)

/// This holds contact filtering data.
type B2Filter struct {
	/// The collision category bits. Normally you would just set one bit.
	CategoryBits uint16

	/// The collision mask bits. This states the categories that this
	/// shape would accept for collision.
	MaskBits uint16

	/// Collision groups allow a certain group of objects to never collide (negative)
	/// or always collide (positive). Zero means no collision group. Non-zero group
	/// filtering always wins against the mask bits.
	GroupIndex int16
}

func MakeB2Filter() B2Filter {
	return B2Filter{
		CategoryBits: 0x0001,
		MaskBits:     0xFFFF,
		GroupIndex:   0,
	}
}

/// A fixture definition is used to create a fixture. You can reuse fixture
/// definitions safely.
type B2FixtureDef struct {
	/// The shape, this must be set. The shape is cloned.
	Shape B2ShapeInterface

	/// Use this to store application specific fixture data.
	UserData interface{}

	/// The friction coefficient, usually in the range [0,1].
	Friction float64

	/// The restitution (elasticity) usually in the range [0,1].
	Restitution float64

	/// The density, usually in kg/m^2.
	Density float64

	/// A sensor shape collects contact information but never generates a collision
	/// response.
	IsSensor bool

	/// Contact filtering data.
	Filter B2Filter
}

/// The constructor sets the default fixture definition values.
func MakeB2FixtureDef() B2FixtureDef {
	return B2FixtureDef{
		Friction: 0.2,
		Filter:   MakeB2Filter(),
	}
}

/// Connects one child of a fixture's shape to a broad-phase leaf. The
/// broad-phase stores a pointer to the proxy as the leaf user data.
type B2FixtureProxy struct {
	Aabb       B2AABB
	Fixture    *B2Fixture
	ChildIndex int
	ProxyId    B2TreeNodeId
}

/// A fixture attaches a shape to a body for collision detection. It inherits
/// its transform from its parent and holds the non-geometric data (friction,
/// collision filter, sensor flag). Fixtures are created via
/// B2Body.CreateFixture and cannot be reused.
type B2Fixture struct {
	M_density float64

	M_next *B2Fixture
	M_body *B2Body

	M_shape B2ShapeInterface

	M_friction    float64
	M_restitution float64

	// one per shape child, allocated once so the broad-phase may keep pointers
	M_proxies    []B2FixtureProxy
	M_proxyCount int

	M_filter B2Filter

	M_isSensor bool

	M_userData interface{}
}

func newB2Fixture(body *B2Body, def *B2FixtureDef) *B2Fixture {
	B2Assert(def.Shape != nil, "fixture definition without a shape")
	B2Assert(B2IsValid(def.Density) && def.Density >= 0.0, "invalid density %v", def.Density)

	fix := &B2Fixture{
		M_body:        body,
		M_userData:    def.UserData,
		M_friction:    def.Friction,
		M_restitution: def.Restitution,
		M_filter:      def.Filter,
		M_isSensor:    def.IsSensor,
		M_shape:       def.Shape.Clone(),
		M_density:     def.Density,
	}

	childCount := fix.M_shape.GetChildCount()
	fix.M_proxies = make([]B2FixtureProxy, childCount)
	for i := range fix.M_proxies {
		fix.M_proxies[i].ProxyId = E_nullProxy
	}

	return fix
}

func (fix *B2Fixture) GetType() uint8 {
	return fix.M_shape.GetType()
}

/// The shape owned by this fixture. Changing it does not refresh the body
/// mass or the broad-phase.
func (fix *B2Fixture) GetShape() B2ShapeInterface {
	return fix.M_shape
}

func (fix *B2Fixture) IsSensor() bool {
	return fix.M_isSensor
}

/// Toggle the sensor flag. This wakes the body.
func (fix *B2Fixture) SetSensor(sensor bool) {
	if sensor != fix.M_isSensor {
		if fix.M_body != nil {
			fix.M_body.SetAwake(true)
		}
		fix.M_isSensor = sensor
	}
}

func (fix *B2Fixture) GetFilterData() B2Filter {
	return fix.M_filter
}

/// Set the contact filtering data. Existing contacts are re-filtered on the
/// next step and new pairs are looked for.
func (fix *B2Fixture) SetFilterData(filter B2Filter) {
	fix.M_filter = filter
	fix.Refilter()
}

/// Flag the fixture's contacts for filtering and touch its proxies so the
/// broad-phase re-pairs them.
func (fix *B2Fixture) Refilter() {
	if fix.M_body == nil {
		return
	}

	for edge := fix.M_body.GetContactList(); edge != nil; edge = edge.GetNext() {
		contact := edge.GetContact()
		if contact.GetFixtureA() == fix || contact.GetFixtureB() == fix {
			contact.FlagForFiltering()
		}
	}

	world := fix.M_body.GetWorld()
	if world == nil {
		return
	}

	broadPhase := &world.M_contactManager.M_broadPhase
	for i := 0; i < fix.M_proxyCount; i++ {
		broadPhase.TouchProxy(fix.M_proxies[i].ProxyId)
	}
}

func (fix *B2Fixture) GetUserData() interface{} {
	return fix.M_userData
}

func (fix *B2Fixture) SetUserData(data interface{}) {
	fix.M_userData = data
}

func (fix *B2Fixture) GetBody() *B2Body {
	return fix.M_body
}

/// Next fixture in the parent body's fixture list.
func (fix *B2Fixture) GetNext() *B2Fixture {
	return fix.M_next
}

/// Set the density. Call B2Body.ResetMassData to update the body mass.
func (fix *B2Fixture) SetDensity(density float64) {
	B2Assert(B2IsValid(density) && density >= 0.0, "invalid density %v", density)
	fix.M_density = density
}

func (fix *B2Fixture) GetDensity() float64 {
	return fix.M_density
}

func (fix *B2Fixture) GetFriction() float64 {
	return fix.M_friction
}

/// Existing contacts keep their mixed friction.
func (fix *B2Fixture) SetFriction(friction float64) {
	fix.M_friction = friction
}

func (fix *B2Fixture) GetRestitution() float64 {
	return fix.M_restitution
}

func (fix *B2Fixture) SetRestitution(restitution float64) {
	fix.M_restitution = restitution
}

/// Test a world point for containment in this fixture.
func (fix *B2Fixture) TestPoint(p B2Vec2) bool {
	return fix.M_shape.TestPoint(fix.M_body.GetTransform(), p)
}

/// Distance from a world point to the child shape, and the outward normal.
func (fix *B2Fixture) ComputeDistance(p B2Vec2, childIndex int) (float64, B2Vec2) {
	return fix.M_shape.ComputeDistance(fix.M_body.GetTransform(), p, childIndex)
}

func (fix *B2Fixture) RayCast(output *B2RayCastOutput, input B2RayCastInput, childIndex int) bool {
	return fix.M_shape.RayCast(output, input, fix.M_body.GetTransform(), childIndex)
}

/// Mass data of the shape at this fixture's density.
func (fix *B2Fixture) GetMassData(massData *B2MassData) {
	fix.M_shape.ComputeMass(massData, fix.M_density)
}

/// The AABB last synchronized into the broad-phase. It encloses the shape
/// over the previous step and may be stale otherwise.
func (fix *B2Fixture) GetAABB(childIndex int) B2AABB {
	B2Assert(0 <= childIndex && childIndex < fix.M_proxyCount, "child index %d out of range [0, %d)", childIndex, fix.M_proxyCount)
	return fix.M_proxies[childIndex].Aabb
}

func (fix *B2Fixture) GetProxyCount() int {
	return fix.M_proxyCount
}

func (fix *B2Fixture) CreateProxies(broadPhase *B2BroadPhase, xf B2Transform) {
	B2Assert(fix.M_proxyCount == 0, "fixture proxies already created")

	fix.M_proxyCount = fix.M_shape.GetChildCount()

	for i := 0; i < fix.M_proxyCount; i++ {
		proxy := &fix.M_proxies[i]
		fix.M_shape.ComputeAABB(&proxy.Aabb, xf, i)
		proxy.Fixture = fix
		proxy.ChildIndex = i
		proxy.ProxyId = broadPhase.CreateProxy(proxy.Aabb, proxy)
	}
}

func (fix *B2Fixture) DestroyProxies(broadPhase *B2BroadPhase) {
	for i := 0; i < fix.M_proxyCount; i++ {
		proxy := &fix.M_proxies[i]
		broadPhase.DestroyProxy(proxy.ProxyId)
		proxy.ProxyId = E_nullProxy
	}

	fix.M_proxyCount = 0
}

/// Move the proxies to an AABB covering the shape at both transforms.
func (fix *B2Fixture) Synchronize(broadPhase *B2BroadPhase, transform1, transform2 B2Transform) {
	if fix.M_proxyCount == 0 {
		return
	}

	displacement := B2Vec2Sub(transform2.P, transform1.P)

	for i := 0; i < fix.M_proxyCount; i++ {
		proxy := &fix.M_proxies[i]

		// may miss some rotation effect
		var aabb1, aabb2 B2AABB
		fix.M_shape.ComputeAABB(&aabb1, transform1, proxy.ChildIndex)
		fix.M_shape.ComputeAABB(&aabb2, transform2, proxy.ChildIndex)

		proxy.Aabb.CombineTwoInPlace(aabb1, aabb2)

		broadPhase.MoveProxy(proxy.ProxyId, proxy.Aabb, displacement)
	}
}

func (fix *B2Fixture) Dump(w io.Writer, bodyIndex int) {
	fmt.Fprintf(w, "    fixture body=%d shape=%s\n", bodyIndex, b2ShapeTypeName(fix.M_shape.GetType()))
	fmt.Fprintf(w, "      friction=%.15e restitution=%.15e density=%.15e sensor=%t\n",
		fix.M_friction, fix.M_restitution, fix.M_density, fix.M_isSensor)
	fmt.Fprintf(w, "      filter category=%#04x mask=%#04x group=%d\n",
		fix.M_filter.CategoryBits, fix.M_filter.MaskBits, fix.M_filter.GroupIndex)

	switch s := fix.M_shape.(type) {
	case *B2CircleShape:
		fmt.Fprintf(w, "      radius=%.15e center=(%.15e, %.15e)\n", s.M_radius, s.M_p.X, s.M_p.Y)
	case *B2PolygonShape:
		fmt.Fprintf(w, "      radius=%.15e count=%d\n", s.M_radius, s.M_count)
		for i := 0; i < s.M_count; i++ {
			fmt.Fprintf(w, "      vertex[%d]=(%.15e, %.15e)\n", i, s.M_vertices[i].X, s.M_vertices[i].Y)
		}
	}
}
