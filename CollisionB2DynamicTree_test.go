package box2d_test

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	box2d "github.com/Apollo97/MSEmulator-sub002"
)

const tol = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) <= tol
}

func nearVec(a, b box2d.B2Vec2) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

func box(x, y, hx, hy float64) box2d.B2AABB {
	return box2d.MakeB2AABBFromBounds(box2d.MakeB2Vec2(x-hx, y-hy), box2d.MakeB2Vec2(x+hx, y+hy))
}

func queryIds(tree *box2d.B2DynamicTree, aabb box2d.B2AABB) []box2d.B2TreeNodeId {
	var ids []box2d.B2TreeNodeId
	tree.Query(func(id box2d.B2TreeNodeId) bool {
		ids = append(ids, id)
		return true
	}, aabb)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func TestDynamicTreeEmpty(t *testing.T) {
	tree := box2d.MakeB2DynamicTree()

	if h := tree.GetHeight(); h != 0 {
		t.Fatalf("empty tree height %d", h)
	}
	if q := tree.GetAreaRatio(); q != 0 {
		t.Fatalf("empty tree area ratio %v", q)
	}
	if ids := queryIds(&tree, box(0, 0, 100, 100)); len(ids) != 0 {
		t.Fatalf("empty tree query returned %v", ids)
	}
	if err := tree.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestDynamicTreeFirstProxyIsZero(t *testing.T) {
	tree := box2d.MakeB2DynamicTree()

	id := tree.CreateProxy(box(0, 0, 1, 1), "a")
	if id != 0 {
		t.Fatalf("first proxy id %d, want 0", id)
	}
	if tree.GetUserData(id) != "a" {
		t.Fatalf("user data %v", tree.GetUserData(id))
	}

	fat := tree.GetFatAABB(id)
	want := box(0, 0, 1+box2d.B2_aabbExtension, 1+box2d.B2_aabbExtension)
	if !nearVec(fat.LowerBound, want.LowerBound) || !nearVec(fat.UpperBound, want.UpperBound) {
		t.Fatalf("fat aabb %v, want %v", fat, want)
	}
}

func TestDynamicTreeRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tree := box2d.MakeB2DynamicTree()

	type proxy struct {
		id   box2d.B2TreeNodeId
		aabb box2d.B2AABB
	}
	var live []proxy

	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(10); {
		case op < 5 || len(live) == 0:
			aabb := box(rng.Float64()*100, rng.Float64()*100, 0.1+rng.Float64()*2, 0.1+rng.Float64()*2)
			id := tree.CreateProxy(aabb, step)
			live = append(live, proxy{id, aabb})

		case op < 7:
			i := rng.Intn(len(live))
			tree.DestroyProxy(live[i].id)
			live[i] = live[len(live)-1]
			live = live[:len(live)-1]

		default:
			i := rng.Intn(len(live))
			d := box2d.MakeB2Vec2(rng.Float64()*4-2, rng.Float64()*4-2)
			aabb := live[i].aabb
			aabb.LowerBound.OperatorPlusInplace(d)
			aabb.UpperBound.OperatorPlusInplace(d)
			tree.MoveProxy(live[i].id, aabb, d)
			live[i].aabb = aabb

			if !tree.GetFatAABB(live[i].id).Contains(aabb) {
				t.Fatalf("step %d: fat aabb does not contain the moved aabb", step)
			}
		}

		if step%50 == 0 {
			if err := tree.Validate(); err != nil {
				t.Fatalf("step %d: %v", step, err)
			}
		}
	}

	if err := tree.Validate(); err != nil {
		t.Fatal(err)
	}
	if tree.GetProxyCount() != len(live) {
		t.Fatalf("proxy count %d, want %d", tree.GetProxyCount(), len(live))
	}
	if tree.GetHeight() != tree.ComputeTotalHeight() {
		t.Fatalf("stored height %d, computed %d", tree.GetHeight(), tree.ComputeTotalHeight())
	}
	if b := tree.GetMaxBalance(); b > 1 {
		t.Fatalf("max balance %d after random operations", b)
	}
	if len(live) > 0 && tree.GetNodeCount() != 2*len(live)-1 {
		t.Fatalf("node count %d for %d leaves", tree.GetNodeCount(), len(live))
	}

	// Every live proxy is found by a query over its own box.
	for _, p := range live {
		found := false
		for _, id := range queryIds(&tree, p.aabb) {
			if id == p.id {
				found = true
			}
		}
		if !found {
			t.Fatalf("proxy %d not found by its own aabb", p.id)
		}
	}
}

func TestDynamicTreeMoveProxyInsideFatBox(t *testing.T) {
	tree := box2d.MakeB2DynamicTree()
	id := tree.CreateProxy(box(0, 0, 1, 1), nil)
	before := tree.GetFatAABB(id)

	if tree.MoveProxy(id, box(0.05, 0, 1, 1), box2d.MakeB2Vec2(0.05, 0)) {
		t.Fatal("small move re-inserted the proxy")
	}
	if tree.GetFatAABB(id) != before {
		t.Fatal("fat aabb changed on a small move")
	}

	if !tree.MoveProxy(id, box(3, 0, 1, 1), box2d.MakeB2Vec2(3, 0)) {
		t.Fatal("large move was not reported")
	}

	// The margin is stretched along the displacement.
	fat := tree.GetFatAABB(id)
	wantUpper := 3 + 1 + box2d.B2_aabbExtension + box2d.B2_aabbMultiplier*3
	if !near(fat.UpperBound.X, wantUpper) {
		t.Fatalf("upper x %v, want %v", fat.UpperBound.X, wantUpper)
	}
	if !near(fat.LowerBound.X, 3-1-box2d.B2_aabbExtension) {
		t.Fatalf("lower x %v", fat.LowerBound.X)
	}
}

func TestDynamicTreeFreedNodeIsReused(t *testing.T) {
	tree := box2d.MakeB2DynamicTree()
	a := tree.CreateProxy(box(0, 0, 1, 1), nil)
	tree.CreateProxy(box(10, 0, 1, 1), nil)

	tree.DestroyProxy(a)
	c := tree.CreateProxy(box(20, 0, 1, 1), nil)

	if err := tree.Validate(); err != nil {
		t.Fatal(err)
	}
	if tree.GetNodeCount() != 3 {
		t.Fatalf("node count %d, want 3", tree.GetNodeCount())
	}
	if int(c) >= 3 {
		t.Fatalf("new proxy %d did not reuse a freed slot", c)
	}
}

func TestDynamicTreeFreedNodePanics(t *testing.T) {
	tree := box2d.MakeB2DynamicTree()
	a := tree.CreateProxy(box(0, 0, 1, 1), nil)
	tree.DestroyProxy(a)

	defer func() {
		if recover() == nil {
			t.Fatal("reading a freed node did not panic")
		}
	}()
	tree.GetUserData(a)
}

func TestDynamicTreeQueryStopsEarly(t *testing.T) {
	tree := box2d.MakeB2DynamicTree()
	for i := 0; i < 10; i++ {
		tree.CreateProxy(box(float64(i)*0.5, 0, 1, 1), i)
	}

	calls := 0
	tree.Query(func(id box2d.B2TreeNodeId) bool {
		calls++
		return false
	}, box(2, 0, 5, 5))

	if calls != 1 {
		t.Fatalf("callback ran %d times after returning false", calls)
	}
}

func TestDynamicTreeQueryPoint(t *testing.T) {
	tree := box2d.MakeB2DynamicTree()
	a := tree.CreateProxy(box(0, 0, 1, 1), nil)
	tree.CreateProxy(box(10, 0, 1, 1), nil)

	var hits []box2d.B2TreeNodeId
	tree.QueryPoint(func(id box2d.B2TreeNodeId) bool {
		hits = append(hits, id)
		return true
	}, box2d.MakeB2Vec2(0.5, 0.5))

	if len(hits) != 1 || hits[0] != a {
		t.Fatalf("hits %v, want [%d]", hits, a)
	}
}

func TestDynamicTreeRayCast(t *testing.T) {
	tree := box2d.MakeB2DynamicTree()
	nearId := tree.CreateProxy(box(5, 0, 1, 1), nil)
	farId := tree.CreateProxy(box(10, 0, 1, 1), nil)
	tree.CreateProxy(box(5, 10, 1, 1), nil)

	input := box2d.B2RayCastInput{P1: box2d.MakeB2Vec2(0, 0), P2: box2d.MakeB2Vec2(20, 0), MaxFraction: 1}

	var hits []box2d.B2TreeNodeId
	tree.RayCast(func(in box2d.B2RayCastInput, id box2d.B2TreeNodeId) float64 {
		hits = append(hits, id)
		return in.MaxFraction
	}, input)

	sort.Slice(hits, func(i, j int) bool { return hits[i] < hits[j] })
	if len(hits) != 2 || hits[0] != nearId || hits[1] != farId {
		t.Fatalf("hits %v, want [%d %d]", hits, nearId, farId)
	}

	// Clipping at the near box hides the far one.
	hits = hits[:0]
	tree.RayCast(func(in box2d.B2RayCastInput, id box2d.B2TreeNodeId) float64 {
		hits = append(hits, id)
		if id == nearId {
			return 0.2
		}
		return in.MaxFraction
	}, input)

	clipped := false
	for _, id := range hits {
		if id == farId && clipped {
			t.Fatalf("far proxy reported after the ray was clipped: %v", hits)
		}
		if id == nearId {
			clipped = true
		}
	}

	// A zero-length ray reports nothing.
	calls := 0
	tree.RayCast(func(in box2d.B2RayCastInput, id box2d.B2TreeNodeId) float64 {
		calls++
		return 1
	}, box2d.B2RayCastInput{P1: box2d.MakeB2Vec2(5, 0), P2: box2d.MakeB2Vec2(5, 0), MaxFraction: 1})
	if calls != 0 {
		t.Fatalf("zero-length ray reported %d hits", calls)
	}
}

func TestDynamicTreeRayCastStopsOnNegative(t *testing.T) {
	tree := box2d.MakeB2DynamicTree()
	for i := 0; i < 5; i++ {
		tree.CreateProxy(box(float64(3+4*i), 0, 1, 1), i)
	}

	input := box2d.B2RayCastInput{P1: box2d.MakeB2Vec2(0, 0), P2: box2d.MakeB2Vec2(30, 0), MaxFraction: 1}
	for _, ret := range []float64{-1, 0} {
		calls := 0
		tree.RayCast(func(in box2d.B2RayCastInput, id box2d.B2TreeNodeId) float64 {
			calls++
			return ret
		}, input)
		if calls != 1 {
			t.Fatalf("callback returning %v called %d times, want 1", ret, calls)
		}
	}
}

func TestDynamicTreeRebuildBottomUp(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	tree := box2d.MakeB2DynamicTree()
	for i := 0; i < 64; i++ {
		tree.CreateProxy(box(rng.Float64()*50, rng.Float64()*50, 0.5, 0.5), i)
	}

	all := box(25, 25, 100, 100)
	before := queryIds(&tree, all)

	tree.RebuildBottomUp()

	if err := tree.Validate(); err != nil {
		t.Fatal(err)
	}
	after := queryIds(&tree, all)
	if len(before) != len(after) {
		t.Fatalf("rebuild changed the leaf set: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("rebuild changed leaf ids: %v -> %v", before, after)
		}
	}
}

func TestDynamicTreeShiftOrigin(t *testing.T) {
	tree := box2d.MakeB2DynamicTree()
	id := tree.CreateProxy(box(10, 10, 1, 1), nil)
	tree.CreateProxy(box(-10, 10, 1, 1), nil)

	before := tree.GetFatAABB(id)
	tree.ShiftOrigin(box2d.MakeB2Vec2(10, 10))
	after := tree.GetFatAABB(id)

	if !near(after.LowerBound.X, before.LowerBound.X-10) || !near(after.UpperBound.Y, before.UpperBound.Y-10) {
		t.Fatalf("shifted aabb %v from %v", after, before)
	}
	if err := tree.Validate(); err != nil {
		t.Fatal(err)
	}
}
