package box2d_test

import (
	"bytes"
	"log"
	"math"
	"strings"
	"testing"

	box2d "github.com/Apollo97/MSEmulator-sub002"
)

func v(x, y float64) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(x, y)
}

func TestPolygonSetBuildsCounterClockwiseHull(t *testing.T) {
	poly := box2d.NewB2PolygonShape()
	poly.Set([]box2d.B2Vec2{
		v(-1, 1), v(1, -1), v(0, 0), v(1, 1), v(-1, -1), v(0.5, 0.2),
	})

	if poly.GetVertexCount() != 4 {
		t.Fatalf("hull has %d vertices, want 4", poly.GetVertexCount())
	}
	if !poly.Validate() {
		t.Fatal("hull is not convex")
	}

	// Counter-clockwise: every edge turns left.
	n := poly.GetVertexCount()
	for i := 0; i < n; i++ {
		a := poly.GetVertex(i)
		b := poly.GetVertex((i + 1) % n)
		c := poly.GetVertex((i + 2) % n)
		if box2d.B2Vec2Cross(box2d.B2Vec2Sub(b, a), box2d.B2Vec2Sub(c, b)) <= 0 {
			t.Fatalf("edge %d does not turn left", i)
		}
	}

	// Normals are unit length and point outwards.
	for i := 0; i < n; i++ {
		normal := poly.M_normals[i]
		if !near(normal.Length(), 1) {
			t.Fatalf("normal %d has length %v", i, normal.Length())
		}
		if box2d.B2Vec2Dot(normal, poly.GetVertex(i)) <= 0 {
			t.Fatalf("normal %d points inwards", i)
		}
	}

	if !nearVec(poly.M_centroid, v(0, 0)) {
		t.Fatalf("centroid %v", poly.M_centroid)
	}
}

func TestPolygonSetWeldsClosePoints(t *testing.T) {
	poly := box2d.NewB2PolygonShape()
	poly.Set([]box2d.B2Vec2{
		v(0, 0), v(0.0001, 0), v(2, 0), v(2, 2), v(0, 2),
	})

	if poly.GetVertexCount() != 4 {
		t.Fatalf("hull has %d vertices after welding, want 4", poly.GetVertexCount())
	}
}

func TestPolygonSetDegenerateFallsBackToBox(t *testing.T) {
	var buf bytes.Buffer
	box2d.B2SetLogger(log.New(&buf, "", 0))
	defer box2d.B2SetLogger(nil)

	cases := map[string][]box2d.B2Vec2{
		"too few":   {v(0, 0), v(1, 0)},
		"collinear": {v(0, 0), v(1, 0), v(2, 0), v(3, 0)},
		"welded":    {v(0, 0), v(0.0001, 0), v(0, 0.0001)},
	}

	for name, vertices := range cases {
		t.Run(name, func(t *testing.T) {
			buf.Reset()
			poly := box2d.NewB2PolygonShape()
			poly.Set(vertices)

			if poly.GetVertexCount() != 4 {
				t.Fatalf("fallback has %d vertices", poly.GetVertexCount())
			}
			if poly.GetVertex(2) != v(1, 1) {
				t.Fatalf("fallback is not the unit half-extent box: %v", poly.GetVertex(2))
			}
			if !strings.Contains(buf.String(), "default box") {
				t.Fatalf("no warning logged, got %q", buf.String())
			}
		})
	}
}

func TestPolygonSetDropsExtraVertices(t *testing.T) {
	var buf bytes.Buffer
	box2d.B2SetLogger(log.New(&buf, "", 0))
	defer box2d.B2SetLogger(nil)

	var vertices []box2d.B2Vec2
	for i := 0; i < 12; i++ {
		angle := 2 * math.Pi * float64(i) / 12
		vertices = append(vertices, v(math.Cos(angle), math.Sin(angle)))
	}

	poly := box2d.NewB2PolygonShape()
	poly.Set(vertices)

	if poly.GetVertexCount() > box2d.B2_maxPolygonVertices {
		t.Fatalf("%d vertices kept", poly.GetVertexCount())
	}
	if !poly.Validate() {
		t.Fatal("result is not convex")
	}
	if !strings.Contains(buf.String(), "keeping the first") {
		t.Fatalf("no warning logged, got %q", buf.String())
	}
}

func TestBoxMass(t *testing.T) {
	poly := box2d.NewB2BoxShape(1, 1)

	var md box2d.B2MassData
	poly.ComputeMass(&md, 1)

	if !near(md.Mass, 4) {
		t.Fatalf("mass %v, want 4", md.Mass)
	}
	if !nearVec(md.Center, v(0, 0)) {
		t.Fatalf("center %v", md.Center)
	}
	if !near(md.I, 8.0/3.0) {
		t.Fatalf("inertia %v, want 8/3", md.I)
	}

	// Moving the box adds m*d^2 about the origin.
	offset := box2d.NewB2PolygonShape()
	offset.SetAsBoxFromCenterAndAngle(1, 1, v(2, 0), 0)
	offset.ComputeMass(&md, 1)

	if !nearVec(md.Center, v(2, 0)) {
		t.Fatalf("center %v, want (2, 0)", md.Center)
	}
	if !near(md.I, 8.0/3.0+4*4) {
		t.Fatalf("inertia %v, want %v", md.I, 8.0/3.0+16)
	}
}

func TestCircleMass(t *testing.T) {
	circle := box2d.NewB2CircleShapeWithRadius(2)
	circle.M_p = v(1, 0)

	var md box2d.B2MassData
	circle.ComputeMass(&md, 0.5)

	mass := 0.5 * math.Pi * 4
	if !near(md.Mass, mass) {
		t.Fatalf("mass %v, want %v", md.Mass, mass)
	}
	if !near(md.I, mass*(0.5*4+1)) {
		t.Fatalf("inertia %v", md.I)
	}
}

func TestShapeTestPointAndRayCast(t *testing.T) {
	xf := box2d.MakeB2Transform()
	xf.Set(v(5, 0), 0)

	poly := box2d.NewB2BoxShape(1, 1)
	if !poly.TestPoint(xf, v(5.5, 0.5)) {
		t.Fatal("point inside the box not reported")
	}
	if poly.TestPoint(xf, v(7, 0)) {
		t.Fatal("point outside the box reported")
	}

	var out box2d.B2RayCastOutput
	in := box2d.B2RayCastInput{P1: v(0, 0), P2: v(10, 0), MaxFraction: 1}
	if !poly.RayCast(&out, in, xf, 0) {
		t.Fatal("ray missed the box")
	}
	if !near(out.Fraction, 0.4) || !nearVec(out.Normal, v(-1, 0)) {
		t.Fatalf("hit fraction %v normal %v", out.Fraction, out.Normal)
	}

	circle := box2d.NewB2CircleShapeWithRadius(1)
	if !circle.RayCast(&out, in, xf, 0) {
		t.Fatal("ray missed the circle")
	}
	if !near(out.Fraction, 0.4) || !nearVec(out.Normal, v(-1, 0)) {
		t.Fatalf("circle hit fraction %v normal %v", out.Fraction, out.Normal)
	}

	var aabb box2d.B2AABB
	circle.ComputeAABB(&aabb, xf, 0)
	if aabb.LowerBound != v(4, -1) || aabb.UpperBound != v(6, 1) {
		t.Fatalf("circle aabb %v", aabb)
	}
}

func TestShapeClone(t *testing.T) {
	poly := box2d.NewB2BoxShape(1, 2)
	clone := poly.Clone().(*box2d.B2PolygonShape)
	clone.M_vertices[0] = v(100, 100)

	if poly.M_vertices[0] == clone.M_vertices[0] {
		t.Fatal("clone shares vertex storage")
	}
}
