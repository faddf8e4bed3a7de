package box2d_test

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	box2d "github.com/Apollo97/MSEmulator-sub002"
)

const dt = 1.0 / 60.0

type recorder struct {
	box2d.B2ContactListener

	events    []string
	preSolves int

	onBegin    func(c *box2d.B2Contact)
	onPreSolve func(c *box2d.B2Contact)
}

func nameOf(body *box2d.B2Body) string {
	if name, ok := body.GetUserData().(string); ok {
		return name
	}
	return "?"
}

func pairName(c *box2d.B2Contact) string {
	names := []string{nameOf(c.GetFixtureA().GetBody()), nameOf(c.GetFixtureB().GetBody())}
	sort.Strings(names)
	return names[0] + "-" + names[1]
}

func (r *recorder) BeginContact(c *box2d.B2Contact) {
	r.events = append(r.events, "begin "+pairName(c))
	if r.onBegin != nil {
		r.onBegin(c)
	}
}

func (r *recorder) EndContact(c *box2d.B2Contact) {
	r.events = append(r.events, "end "+pairName(c))
}

func (r *recorder) PreSolve(c *box2d.B2Contact, oldManifold box2d.B2Manifold) {
	r.preSolves++
	if r.onPreSolve != nil {
		r.onPreSolve(c)
	}
}

func addCircle(t *testing.T, world *box2d.B2World, name string, bodyType uint8, pos box2d.B2Vec2, radius float64) (*box2d.B2Body, *box2d.B2Fixture) {
	t.Helper()

	bd := box2d.MakeB2BodyDef()
	bd.Type = bodyType
	bd.Position = pos
	bd.UserData = name

	body, err := world.CreateBody(&bd)
	if err != nil {
		t.Fatal(err)
	}

	fixture, err := body.CreateFixture(box2d.NewB2CircleShapeWithRadius(radius), 1)
	if err != nil {
		t.Fatal(err)
	}
	return body, fixture
}

func sameEvents(t *testing.T, got []string, want ...string) {
	t.Helper()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("events %q, want %q", got, want)
	}
}

func TestTwoCirclesTouchAfterOneStep(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	rec := &recorder{}
	world.SetContactListener(rec)

	ground, _ := addCircle(t, world, "ground", box2d.B2BodyType.B2_staticBody, v(0, 0), 1)
	ball, _ := addCircle(t, world, "ball", box2d.B2BodyType.B2_dynamicBody, v(1.5, 0), 1)

	if world.GetContactCount() != 0 {
		t.Fatalf("contacts before the first step: %d", world.GetContactCount())
	}

	world.Step(dt)

	if world.GetContactCount() != 1 {
		t.Fatalf("contact count %d, want 1", world.GetContactCount())
	}
	c := world.GetContactList()
	if !c.IsTouching() {
		t.Fatal("contact is not touching")
	}
	if c.GetManifold().PointCount != 1 {
		t.Fatalf("manifold has %d points", c.GetManifold().PointCount)
	}
	sameEvents(t, rec.events, "begin ball-ground")
	if rec.preSolves != 1 {
		t.Fatalf("PreSolve ran %d times", rec.preSolves)
	}

	var wm box2d.B2WorldManifold
	c.GetWorldManifold(&wm)
	if !nearVec(wm.Normal, v(1, 0)) && !nearVec(wm.Normal, v(-1, 0)) {
		t.Fatalf("world normal %v", wm.Normal)
	}

	// Both bodies see the contact through their edge lists.
	for _, body := range []*box2d.B2Body{ground, ball} {
		edge := body.GetContactList()
		if edge == nil {
			t.Fatalf("%s has no contact edge", nameOf(body))
		}
		if edge.GetContact() != c {
			t.Fatalf("%s edge points at another contact", nameOf(body))
		}
		if edge.GetNext() != nil {
			t.Fatalf("%s has more than one edge", nameOf(body))
		}
	}
	if ground.GetContactList().Other != ball || ball.GetContactList().Other != ground {
		t.Fatal("edge Other fields are crossed")
	}

	// More steps do not duplicate the contact.
	for i := 0; i < 10; i++ {
		world.Step(dt)
	}
	if world.GetContactCount() != 1 {
		t.Fatalf("contact count %d after more steps", world.GetContactCount())
	}
	sameEvents(t, rec.events, "begin ball-ground")
}

func TestCirclesSeparate(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	rec := &recorder{}
	world.SetContactListener(rec)

	addCircle(t, world, "ground", box2d.B2BodyType.B2_staticBody, v(0, 0), 1)
	ball, _ := addCircle(t, world, "ball", box2d.B2BodyType.B2_dynamicBody, v(1.5, 0), 1)
	ball.SetLinearVelocity(v(10, 0))

	for i := 0; i < 120; i++ {
		world.Step(dt)
	}

	sameEvents(t, rec.events, "begin ball-ground", "end ball-ground")
	if world.GetContactCount() != 0 {
		t.Fatalf("contact survived separation: %d", world.GetContactCount())
	}
	if ball.GetContactList() != nil {
		t.Fatal("ball still has contact edges")
	}
	if !near(ball.GetPosition().X, 1.5+10*120*dt) {
		t.Fatalf("ball at %v", ball.GetPosition())
	}
}

func TestTeleportApartEndsContact(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	rec := &recorder{}
	world.SetContactListener(rec)

	a, _ := addCircle(t, world, "a", box2d.B2BodyType.B2_dynamicBody, v(0, 0), 1)
	b, _ := addCircle(t, world, "b", box2d.B2BodyType.B2_dynamicBody, v(0, 1.5), 1)

	world.Step(dt)
	if world.GetContactCount() != 1 || !world.GetContactList().IsTouching() {
		t.Fatalf("want one touching contact, have %d", world.GetContactCount())
	}

	if err := b.SetTransform(v(0, 10), 0); err != nil {
		t.Fatal(err)
	}
	world.Step(dt)

	if world.GetContactCount() != 0 {
		t.Fatalf("contact count %d after teleport", world.GetContactCount())
	}
	if a.GetContactList() != nil || b.GetContactList() != nil {
		t.Fatal("edge lists not empty after teleport")
	}
	sameEvents(t, rec.events, "begin a-b", "end a-b")
}

func TestWorldLockedDuringCallbacks(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	_, groundFixture := addCircle(t, world, "ground", box2d.B2BodyType.B2_staticBody, v(0, 0), 1)
	ball, _ := addCircle(t, world, "ball", box2d.B2BodyType.B2_dynamicBody, v(1.5, 0), 1)

	var errs []error
	rec := &recorder{onBegin: func(c *box2d.B2Contact) {
		if !world.IsLocked() {
			t.Error("world not locked inside BeginContact")
		}

		errs = append(errs, world.Step(dt))
		if !world.IsLocked() {
			t.Error("nested Step unlocked the world")
		}

		bd := box2d.MakeB2BodyDef()
		_, err := world.CreateBody(&bd)
		errs = append(errs, err)
		errs = append(errs, world.DestroyBody(ball))
		errs = append(errs, groundFixture.GetBody().DestroyFixture(groundFixture))
		_, err = ball.CreateFixture(box2d.NewB2CircleShapeWithRadius(1), 1)
		errs = append(errs, err)
		errs = append(errs, ball.SetTransform(v(0, 0), 0))
		errs = append(errs, world.ShiftOrigin(v(1, 1)))
		errs = append(errs, world.SetSettings(box2d.MakeB2Settings()))
	}}
	world.SetContactListener(rec)

	if err := world.Step(dt); err != nil {
		t.Fatalf("Step: %v", err)
	}

	if len(errs) != 8 {
		t.Fatalf("BeginContact ran %d checks", len(errs))
	}
	for i, err := range errs {
		if !errors.Is(err, box2d.ErrWorldLocked) {
			t.Fatalf("call %d returned %v, want ErrWorldLocked", i, err)
		}
	}

	if world.IsLocked() {
		t.Fatal("world still locked after Step")
	}
	if world.GetBodyCount() != 2 {
		t.Fatalf("body count %d", world.GetBodyCount())
	}
	if _, err := ball.CreateFixture(box2d.NewB2CircleShapeWithRadius(0.5), 1); err != nil {
		t.Fatalf("create fixture after Step: %v", err)
	}
}

type goodbyes struct {
	fixtures []*box2d.B2Fixture
}

func (g *goodbyes) SayGoodbyeToFixture(fixture *box2d.B2Fixture) {
	g.fixtures = append(g.fixtures, fixture)
}

func TestDestroyBodyEndsContacts(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	rec := &recorder{}
	world.SetContactListener(rec)
	bye := &goodbyes{}
	world.SetDestructionListener(bye)

	ground, _ := addCircle(t, world, "ground", box2d.B2BodyType.B2_staticBody, v(0, 0), 1)
	ball, ballFixture := addCircle(t, world, "ball", box2d.B2BodyType.B2_dynamicBody, v(1.5, 0), 1)
	world.Step(dt)

	proxies := world.GetProxyCount()
	if err := world.DestroyBody(ball); err != nil {
		t.Fatal(err)
	}

	sameEvents(t, rec.events, "begin ball-ground", "end ball-ground")
	if world.GetContactCount() != 0 {
		t.Fatalf("contact count %d", world.GetContactCount())
	}
	if ground.GetContactList() != nil {
		t.Fatal("ground kept an edge to the destroyed body")
	}
	if len(bye.fixtures) != 1 || bye.fixtures[0] != ballFixture {
		t.Fatalf("destruction listener saw %v", bye.fixtures)
	}
	if world.GetProxyCount() != proxies-1 {
		t.Fatalf("proxy count %d, want %d", world.GetProxyCount(), proxies-1)
	}
	if world.GetBodyCount() != 1 || world.GetBodyList() != ground {
		t.Fatal("body list not updated")
	}
	if err := world.GetContactManager().M_broadPhase.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestDestroyFixtureEndsItsContacts(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	rec := &recorder{}
	world.SetContactListener(rec)

	addCircle(t, world, "ground", box2d.B2BodyType.B2_staticBody, v(0, 0), 1)
	ball, fixture := addCircle(t, world, "ball", box2d.B2BodyType.B2_dynamicBody, v(1.5, 0), 1)
	world.Step(dt)

	if err := ball.DestroyFixture(fixture); err != nil {
		t.Fatal(err)
	}

	sameEvents(t, rec.events, "begin ball-ground", "end ball-ground")
	if ball.GetFixtureCount() != 0 || ball.GetFixtureList() != nil {
		t.Fatal("fixture still attached")
	}
	if fixture.GetBody() != nil {
		t.Fatal("destroyed fixture keeps its body")
	}
	if ball.GetMass() != 1 {
		t.Fatalf("dynamic body without fixtures has mass %v, want 1", ball.GetMass())
	}
}

func TestStaticBodiesNeverPair(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	addCircle(t, world, "a", box2d.B2BodyType.B2_staticBody, v(0, 0), 1)
	addCircle(t, world, "b", box2d.B2BodyType.B2_staticBody, v(0.5, 0), 1)
	addCircle(t, world, "k1", box2d.B2BodyType.B2_kinematicBody, v(10, 0), 1)
	addCircle(t, world, "k2", box2d.B2BodyType.B2_kinematicBody, v(10.5, 0), 1)

	world.Step(dt)

	if world.GetContactCount() != 0 {
		t.Fatalf("contact count %d, want 0", world.GetContactCount())
	}
}

func TestSensorContact(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	rec := &recorder{}
	world.SetContactListener(rec)

	_, sensor := addCircle(t, world, "sensor", box2d.B2BodyType.B2_staticBody, v(0, 0), 1)
	sensor.SetSensor(true)
	addCircle(t, world, "ball", box2d.B2BodyType.B2_dynamicBody, v(1.5, 0), 1)

	world.Step(dt)

	sameEvents(t, rec.events, "begin ball-sensor")
	if rec.preSolves != 0 {
		t.Fatalf("PreSolve ran %d times for a sensor", rec.preSolves)
	}
	c := world.GetContactList()
	if !c.IsTouching() || c.GetManifold().PointCount != 0 {
		t.Fatalf("sensor contact touching=%t points=%d", c.IsTouching(), c.GetManifold().PointCount)
	}
}

func TestContactFilterGroups(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	rec := &recorder{}
	world.SetContactListener(rec)

	_, fa := addCircle(t, world, "a", box2d.B2BodyType.B2_dynamicBody, v(0, 0), 1)
	_, fb := addCircle(t, world, "b", box2d.B2BodyType.B2_dynamicBody, v(1.5, 0), 1)

	never := box2d.MakeB2Filter()
	never.GroupIndex = -1
	fa.SetFilterData(never)
	fb.SetFilterData(never)

	world.Step(dt)
	if world.GetContactCount() != 0 {
		t.Fatalf("negative group collided: %d contacts", world.GetContactCount())
	}

	fb.SetFilterData(box2d.MakeB2Filter())
	world.Step(dt)
	if world.GetContactCount() != 1 {
		t.Fatalf("refiltered pair has %d contacts, want 1", world.GetContactCount())
	}

	// Masking out an existing contact destroys it on the next step.
	masked := box2d.MakeB2Filter()
	masked.MaskBits = 0
	fa.SetFilterData(masked)
	world.Step(dt)
	if world.GetContactCount() != 0 {
		t.Fatalf("masked pair kept %d contacts", world.GetContactCount())
	}
	sameEvents(t, rec.events, "begin a-b", "end a-b")
}

type rejectAll struct{}

func (rejectAll) ShouldCollide(a, b *box2d.B2Fixture) bool { return false }

func TestCustomContactFilter(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	world.SetContactFilter(rejectAll{})

	addCircle(t, world, "a", box2d.B2BodyType.B2_dynamicBody, v(0, 0), 1)
	addCircle(t, world, "b", box2d.B2BodyType.B2_dynamicBody, v(1.5, 0), 1)
	world.Step(dt)

	if world.GetContactCount() != 0 {
		t.Fatalf("filter ignored: %d contacts", world.GetContactCount())
	}
}

func TestPreSolveCanDisableContact(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	rec := &recorder{onPreSolve: func(c *box2d.B2Contact) { c.SetEnabled(false) }}
	world.SetContactListener(rec)

	addCircle(t, world, "a", box2d.B2BodyType.B2_staticBody, v(0, 0), 1)
	addCircle(t, world, "b", box2d.B2BodyType.B2_dynamicBody, v(1.5, 0), 1)
	world.Step(dt)

	if world.GetContactList().IsEnabled() {
		t.Fatal("contact still enabled")
	}
}

func TestBodyTypeChangeDropsContacts(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	rec := &recorder{}
	world.SetContactListener(rec)

	addCircle(t, world, "ground", box2d.B2BodyType.B2_staticBody, v(0, 0), 1)
	ball, _ := addCircle(t, world, "ball", box2d.B2BodyType.B2_dynamicBody, v(1.5, 0), 1)
	world.Step(dt)

	if err := ball.SetType(box2d.B2BodyType.B2_staticBody); err != nil {
		t.Fatal(err)
	}
	if ball.GetMass() != 0 {
		t.Fatalf("static body mass %v", ball.GetMass())
	}
	world.Step(dt)

	sameEvents(t, rec.events, "begin ball-ground", "end ball-ground")
	if world.GetContactCount() != 0 {
		t.Fatalf("static pair kept %d contacts", world.GetContactCount())
	}

	if err := ball.SetType(box2d.B2BodyType.B2_dynamicBody); err != nil {
		t.Fatal(err)
	}
	world.Step(dt)
	if world.GetContactCount() != 1 {
		t.Fatalf("contact not restored: %d", world.GetContactCount())
	}
}

func TestSetActive(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	addCircle(t, world, "ground", box2d.B2BodyType.B2_staticBody, v(0, 0), 1)
	ball, fixture := addCircle(t, world, "ball", box2d.B2BodyType.B2_dynamicBody, v(1.5, 0), 1)
	world.Step(dt)

	if err := ball.SetActive(false); err != nil {
		t.Fatal(err)
	}
	if world.GetProxyCount() != 1 || fixture.GetProxyCount() != 0 {
		t.Fatalf("inactive body kept proxies: world %d fixture %d", world.GetProxyCount(), fixture.GetProxyCount())
	}
	if world.GetContactCount() != 0 {
		t.Fatalf("inactive body kept %d contacts", world.GetContactCount())
	}

	world.Step(dt)
	if world.GetContactCount() != 0 {
		t.Fatal("inactive body paired")
	}

	if err := ball.SetActive(true); err != nil {
		t.Fatal(err)
	}
	world.Step(dt)
	if world.GetContactCount() != 1 {
		t.Fatalf("reactivated body has %d contacts", world.GetContactCount())
	}
}

func TestGravityIntegration(t *testing.T) {
	world := box2d.NewB2World(v(0, -10))
	ball, _ := addCircle(t, world, "ball", box2d.B2BodyType.B2_dynamicBody, v(0, 0), 0.5)

	world.Step(dt)

	vy := -10 * dt
	if !near(ball.GetLinearVelocity().Y, vy) {
		t.Fatalf("velocity %v, want %v", ball.GetLinearVelocity(), vy)
	}
	if !near(ball.GetPosition().Y, vy*dt) {
		t.Fatalf("position %v, want %v", ball.GetPosition(), vy*dt)
	}

	// Zero gravity scale floats.
	float, _ := addCircle(t, world, "float", box2d.B2BodyType.B2_dynamicBody, v(5, 0), 0.5)
	float.SetGravityScale(0)
	world.Step(dt)
	if float.GetPosition() != v(5, 0) {
		t.Fatalf("body with zero gravity scale moved to %v", float.GetPosition())
	}
}

func TestForcesAreClearedAfterStep(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	ball, _ := addCircle(t, world, "ball", box2d.B2BodyType.B2_dynamicBody, v(0, 0), 1)

	ball.ApplyForceToCenter(v(ball.GetMass(), 0), true)
	world.Step(dt)
	if !near(ball.GetLinearVelocity().X, dt) {
		t.Fatalf("velocity %v after a unit acceleration", ball.GetLinearVelocity())
	}

	world.Step(dt)
	if !near(ball.GetLinearVelocity().X, dt) {
		t.Fatalf("force was applied twice: %v", ball.GetLinearVelocity())
	}

	world.SetAutoClearForces(false)
	ball.ApplyForceToCenter(v(ball.GetMass(), 0), true)
	world.Step(dt)
	world.Step(dt)
	if !near(ball.GetLinearVelocity().X, 3*dt) {
		t.Fatalf("kept force not applied twice: %v", ball.GetLinearVelocity())
	}
}

func TestMaxTranslationClamp(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	ball, _ := addCircle(t, world, "ball", box2d.B2BodyType.B2_dynamicBody, v(0, 0), 1)
	ball.SetLinearVelocity(v(1000, 0))

	world.Step(1)

	if !near(ball.GetPosition().X, box2d.B2_maxTranslation) {
		t.Fatalf("moved to %v in one step", ball.GetPosition())
	}
}

func TestBodiesFallAsleep(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	ball, _ := addCircle(t, world, "ball", box2d.B2BodyType.B2_dynamicBody, v(0, 0), 1)
	restless, _ := addCircle(t, world, "restless", box2d.B2BodyType.B2_dynamicBody, v(10, 0), 1)
	restless.SetSleepingAllowed(false)

	for i := 0; i < 40; i++ {
		world.Step(dt)
	}

	if ball.IsAwake() {
		t.Fatal("resting body is still awake")
	}
	if !restless.IsAwake() {
		t.Fatal("body that may not sleep fell asleep")
	}

	ball.ApplyLinearImpulseToCenter(v(1, 0), true)
	if !ball.IsAwake() {
		t.Fatal("impulse did not wake the body")
	}

	world.SetAllowSleeping(false)
	ball.SetLinearVelocity(v(0, 0))
	for i := 0; i < 40; i++ {
		world.Step(dt)
	}
	if !ball.IsAwake() {
		t.Fatal("body slept with sleeping disabled")
	}
}

func TestWorldQueries(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	_, circle := addCircle(t, world, "circle", box2d.B2BodyType.B2_staticBody, v(0, 0), 1)
	addCircle(t, world, "far", box2d.B2BodyType.B2_staticBody, v(20, 0), 1)

	var found []*box2d.B2Fixture
	world.QueryAABB(func(f *box2d.B2Fixture) bool {
		found = append(found, f)
		return true
	}, box(0, 0, 2, 2))
	if len(found) != 1 || found[0] != circle {
		t.Fatalf("QueryAABB found %d fixtures", len(found))
	}

	found = found[:0]
	world.QueryPoint(func(f *box2d.B2Fixture) bool {
		found = append(found, f)
		return true
	}, v(0.95, 0.95))
	if len(found) != 0 {
		t.Fatal("QueryPoint reported a point outside the circle")
	}
	world.QueryPoint(func(f *box2d.B2Fixture) bool {
		found = append(found, f)
		return true
	}, v(0.5, 0.5))
	if len(found) != 1 {
		t.Fatalf("QueryPoint found %d fixtures inside the circle", len(found))
	}

	var hit *box2d.B2Fixture
	var hitPoint, hitNormal box2d.B2Vec2
	world.RayCast(func(f *box2d.B2Fixture, point, normal box2d.B2Vec2, fraction float64) float64 {
		hit, hitPoint, hitNormal = f, point, normal
		return fraction
	}, v(-5, 0), v(30, 0))

	if hit != circle {
		t.Fatal("ray cast did not stop at the closest fixture")
	}
	if !nearVec(hitPoint, v(-1, 0)) || !nearVec(hitNormal, v(-1, 0)) {
		t.Fatalf("hit at %v normal %v", hitPoint, hitNormal)
	}
}

func TestWorldRayCastSkipsOnNegative(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	_, nearFixture := addCircle(t, world, "near", box2d.B2BodyType.B2_staticBody, v(5, 0), 1)
	_, farFixture := addCircle(t, world, "far", box2d.B2BodyType.B2_staticBody, v(15, 0), 1)
	world.Step(dt)

	var seen []*box2d.B2Fixture
	world.RayCast(func(f *box2d.B2Fixture, point, normal box2d.B2Vec2, fraction float64) float64 {
		seen = append(seen, f)
		if f == nearFixture {
			return -1
		}
		return fraction
	}, v(0, 0), v(30, 0))

	sawFar := false
	for _, f := range seen {
		sawFar = sawFar || f == farFixture
	}
	if !sawFar {
		t.Fatalf("ray cast did not continue past the skipped fixture: %d calls", len(seen))
	}
}

func TestShiftOrigin(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	body, fixture := addCircle(t, world, "ball", box2d.B2BodyType.B2_dynamicBody, v(100, 50), 1)
	world.Step(dt)

	if err := world.ShiftOrigin(v(100, 50)); err != nil {
		t.Fatal(err)
	}

	if !nearVec(body.GetPosition(), v(0, 0)) {
		t.Fatalf("position %v after shift", body.GetPosition())
	}
	aabb := fixture.GetAABB(0)
	if !nearVec(aabb.GetCenter(), v(0, 0)) {
		t.Fatalf("fixture aabb centered at %v", aabb.GetCenter())
	}

	found := 0
	world.QueryPoint(func(f *box2d.B2Fixture) bool {
		found++
		return true
	}, v(0, 0))
	if found != 1 {
		t.Fatalf("query after shift found %d fixtures", found)
	}
}

func TestWorldSettings(t *testing.T) {
	bad := box2d.MakeB2Settings()
	bad.AabbExtension = -1
	if _, err := box2d.NewB2WorldWithSettings(v(0, 0), bad); !errors.Is(err, box2d.ErrInvalidSettings) {
		t.Fatalf("err %v, want ErrInvalidSettings", err)
	}

	world := box2d.NewB2World(v(0, 0))
	if err := world.SetSettings(bad); !errors.Is(err, box2d.ErrInvalidSettings) {
		t.Fatalf("err %v, want ErrInvalidSettings", err)
	}

	wide := box2d.MakeB2Settings()
	wide.AabbExtension = 1
	if err := world.SetSettings(wide); err != nil {
		t.Fatal(err)
	}
	_, fixture := addCircle(t, world, "ball", box2d.B2BodyType.B2_staticBody, v(0, 0), 1)
	proxy := fixture.M_proxies[0].ProxyId
	fat := world.GetContactManager().M_broadPhase.GetFatAABB(proxy)
	if !near(fat.UpperBound.X, 2) {
		t.Fatalf("fat aabb %v with extension 1", fat)
	}

	off := false
	noSleep := box2d.MakeB2Settings()
	noSleep.AllowSleep = &off
	if err := world.SetSettings(noSleep); err != nil {
		t.Fatal(err)
	}
	if world.GetAllowSleeping() {
		t.Fatal("allow_sleep false not applied")
	}
}

func TestContactSlotsAreReused(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	addCircle(t, world, "ground", box2d.B2BodyType.B2_staticBody, v(0, 0), 1)
	ball, _ := addCircle(t, world, "ball", box2d.B2BodyType.B2_dynamicBody, v(1.5, 0), 1)
	world.Step(dt)

	first := world.GetContactList()
	id := first.GetId()

	if err := world.DestroyBody(ball); err != nil {
		t.Fatal(err)
	}
	addCircle(t, world, "ball2", box2d.B2BodyType.B2_dynamicBody, v(-1.5, 0), 1)
	world.Step(dt)

	second := world.GetContactList()
	if second.GetId() != id {
		t.Fatalf("new contact id %d, want recycled %d", second.GetId(), id)
	}
	if second == first {
		t.Fatal("recycled slot returned the destroyed contact object")
	}
	if world.GetContactManager().M_factory.GetCount() != 1 {
		t.Fatalf("factory count %d", world.GetContactManager().M_factory.GetCount())
	}
}

func TestManyBodiesKeepConsistentLists(t *testing.T) {
	world := box2d.NewB2World(v(0, -10))
	addCircle(t, world, "ground", box2d.B2BodyType.B2_staticBody, v(0, -100), 100)

	var bodies []*box2d.B2Body
	for i := 0; i < 30; i++ {
		b, _ := addCircle(t, world, fmt.Sprintf("b%02d", i), box2d.B2BodyType.B2_dynamicBody, v(float64(i%6)*0.8, float64(i/6)*0.8+1), 0.5)
		bodies = append(bodies, b)
	}

	for i := 0; i < 90; i++ {
		world.Step(dt)
		if i == 45 {
			for _, b := range bodies[:10] {
				if err := world.DestroyBody(b); err != nil {
					t.Fatal(err)
				}
			}
		}
	}

	// Every contact is reachable from both of its bodies.
	count := 0
	for c := world.GetContactList(); c != nil; c = c.GetNext() {
		count++
		for _, body := range []*box2d.B2Body{c.GetFixtureA().GetBody(), c.GetFixtureB().GetBody()} {
			found := false
			for e := body.GetContactList(); e != nil; e = e.GetNext() {
				if e.GetContact() == c {
					found = true
				}
			}
			if !found {
				t.Fatalf("contact %d missing from %s", c.GetId(), nameOf(body))
			}
		}
	}
	if count != world.GetContactCount() {
		t.Fatalf("list holds %d contacts, count says %d", count, world.GetContactCount())
	}
	if world.GetBodyCount() != 21 {
		t.Fatalf("body count %d", world.GetBodyCount())
	}
	if err := world.GetContactManager().M_broadPhase.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestWorldDump(t *testing.T) {
	world := box2d.NewB2World(v(0, -10))
	addCircle(t, world, "ball", box2d.B2BodyType.B2_dynamicBody, v(0, 0), 1)

	var buf bytes.Buffer
	world.Dump(&buf)

	out := buf.String()
	for _, want := range []string{"bodies=1", "body 0 type=dynamic", "shape=circle"} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump lacks %q:\n%s", want, out)
		}
	}
}

func TestPreSolvePointStates(t *testing.T) {
	world := box2d.NewB2World(v(0, 0))
	listener := &pointStateListener{}
	world.SetContactListener(listener)

	addCircle(t, world, "ground", box2d.B2BodyType.B2_staticBody, v(0, 0), 1)
	addCircle(t, world, "ball", box2d.B2BodyType.B2_dynamicBody, v(1.5, 0), 1)

	world.Step(dt)
	world.Step(dt)

	want := []uint8{box2d.B2PointState.B2_addState, box2d.B2PointState.B2_persistState}
	if len(listener.states) != len(want) {
		t.Fatalf("states %v, want %v", listener.states, want)
	}
	for i := range want {
		if listener.states[i] != want[i] {
			t.Fatalf("states %v, want %v", listener.states, want)
		}
	}
}

type pointStateListener struct {
	box2d.B2ContactListener
	states []uint8
}

func (l *pointStateListener) PreSolve(c *box2d.B2Contact, oldManifold box2d.B2Manifold) {
	var state1, state2 [box2d.B2_maxManifoldPoints]uint8
	box2d.B2GetPointStates(&state1, &state2, &oldManifold, c.GetManifold())
	l.states = append(l.states, state2[0])
}
