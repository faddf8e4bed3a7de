package box2d

/// This holds the mass data computed for a shape.
type B2MassData struct {
	/// The mass of the shape, usually in kilograms.
	Mass float64

	/// The position of the shape's centroid relative to the shape's origin.
	Center B2Vec2

	/// The rotational inertia of the shape about the local origin.
	I float64
}

var B2Shape_Type = struct {
	E_circle    uint8
	E_polygon   uint8
	E_typeCount uint8
}{
	E_circle:    0,
	E_polygon:   1,
	E_typeCount: 2,
}

/// Collision geometry attached to a fixture. The set of shapes is closed:
/// only *B2CircleShape and *B2PolygonShape implement it.
type B2ShapeInterface interface {
	/// Deep copy of the shape.
	Clone() B2ShapeInterface

	/// One of B2Shape_Type, used to pick the contact routine.
	GetType() uint8

	GetRadius() float64

	/// Number of child primitives, each with its own broad-phase proxy.
	GetChildCount() int

	/// Test a point, in world coordinates, for containment.
	TestPoint(xf B2Transform, p B2Vec2) bool

	/// Signed distance from a world point to the child's surface, and the
	/// outward world normal at the closest feature.
	ComputeDistance(xf B2Transform, p B2Vec2, childIndex int) (float64, B2Vec2)

	/// Cast a ray against a child shape.
	RayCast(output *B2RayCastOutput, input B2RayCastInput, xf B2Transform, childIndex int) bool

	/// World AABB of a child shape.
	ComputeAABB(aabb *B2AABB, xf B2Transform, childIndex int)

	/// Mass properties for the given density. The inertia is about the
	/// local origin.
	ComputeMass(massData *B2MassData, density float64)

	/// Fill a GJK proxy for a child shape.
	SetupDistanceProxy(proxy *B2DistanceProxy, index int)

	/// Area and world centroid of the part of the shape below the plane
	/// dot(normal, x) = offset.
	ComputeSubmergedArea(normal B2Vec2, offset float64, xf B2Transform) (float64, B2Vec2)

	isB2Shape()
}

type B2Shape struct {
	M_type uint8

	/// Radius of a shape. For polygonal shapes this is the skin radius,
	/// b2_polygonRadius by default.
	M_radius float64
}

func (shape B2Shape) GetType() uint8 {
	return shape.M_type
}

func (shape B2Shape) GetRadius() float64 {
	return shape.M_radius
}

func (shape *B2Shape) SetRadius(r float64) {
	shape.M_radius = r
}

func b2ShapeTypeName(t uint8) string {
	switch t {
	case B2Shape_Type.E_circle:
		return "circle"
	case B2Shape_Type.E_polygon:
		return "polygon"
	}
	return "unknown"
}
