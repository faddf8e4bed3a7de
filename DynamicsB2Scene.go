package box2d

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidScene = errors.New("invalid scene")

/// A point written as [x, y].
type B2SceneVec [2]float64

func (v B2SceneVec) Vec2() B2Vec2 {
	return MakeB2Vec2(v[0], v[1])
}

/// Omitted fields keep the MakeB2Filter defaults.
type B2SceneFilter struct {
	CategoryBits *uint16 `yaml:"category_bits"`
	MaskBits     *uint16 `yaml:"mask_bits"`
	GroupIndex   int16   `yaml:"group_index"`
}

func (spec *B2SceneFilter) filter() B2Filter {
	filter := MakeB2Filter()
	if spec == nil {
		return filter
	}
	if spec.CategoryBits != nil {
		filter.CategoryBits = *spec.CategoryBits
	}
	if spec.MaskBits != nil {
		filter.MaskBits = *spec.MaskBits
	}
	filter.GroupIndex = spec.GroupIndex
	return filter
}

type B2SceneFixture struct {
	Shape string `yaml:"shape"` // circle, polygon or box

	Radius     float64      `yaml:"radius"`
	Center     B2SceneVec   `yaml:"center"`
	Vertices   []B2SceneVec `yaml:"vertices"`
	HalfWidth  float64      `yaml:"half_width"`
	HalfHeight float64      `yaml:"half_height"`
	Angle      float64      `yaml:"angle"`

	Density     float64        `yaml:"density"`
	Friction    *float64       `yaml:"friction"`
	Restitution float64        `yaml:"restitution"`
	Sensor      bool           `yaml:"sensor"`
	Filter      *B2SceneFilter `yaml:"filter"`
}

type B2SceneBody struct {
	Name            string           `yaml:"name"`
	Type            string           `yaml:"type"` // static (default), kinematic or dynamic
	Position        B2SceneVec       `yaml:"position"`
	Angle           float64          `yaml:"angle"`
	LinearVelocity  B2SceneVec       `yaml:"linear_velocity"`
	AngularVelocity float64          `yaml:"angular_velocity"`
	LinearDamping   float64          `yaml:"linear_damping"`
	AngularDamping  float64          `yaml:"angular_damping"`
	GravityScale    *float64         `yaml:"gravity_scale"`
	FixedRotation   bool             `yaml:"fixed_rotation"`
	AllowSleep      *bool            `yaml:"allow_sleep"`
	Awake           *bool            `yaml:"awake"`
	Active          *bool            `yaml:"active"`
	Fixtures        []B2SceneFixture `yaml:"fixtures"`
}

/// A world described in YAML. Settings, when present, override the defaults
/// key by key.
type B2SceneSpec struct {
	Gravity  B2SceneVec    `yaml:"gravity"`
	Settings *yaml.Node    `yaml:"settings"`
	Bodies   []B2SceneBody `yaml:"bodies"`
}

func ParseB2SceneSpec(data []byte) (*B2SceneSpec, error) {
	var spec B2SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("box2d: unmarshal scene: %w", err)
	}
	return &spec, nil
}

func LoadB2SceneSpec(filename string) (*B2SceneSpec, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("box2d: load %s: %w", filename, err)
	}
	spec, err := ParseB2SceneSpec(data)
	if err != nil {
		return nil, fmt.Errorf("box2d: load %s: %w", filename, err)
	}
	return spec, nil
}

/// The scene settings decoded over MakeB2Settings.
func (spec *B2SceneSpec) BuildSettings() (B2Settings, error) {
	settings := MakeB2Settings()
	if spec.Settings != nil {
		if err := spec.Settings.Decode(&settings); err != nil {
			return B2Settings{}, fmt.Errorf("box2d: scene settings: %w", err)
		}
	}
	if err := settings.Validate(); err != nil {
		return B2Settings{}, fmt.Errorf("box2d: scene settings: %w", err)
	}
	return settings, nil
}

/// Create the world and its bodies in listing order. Named bodies are
/// returned by name and carry the name as user data.
func (spec *B2SceneSpec) Build() (*B2World, map[string]*B2Body, error) {
	settings, err := spec.BuildSettings()
	if err != nil {
		return nil, nil, err
	}

	world, err := NewB2WorldWithSettings(spec.Gravity.Vec2(), settings)
	if err != nil {
		return nil, nil, err
	}

	named := make(map[string]*B2Body)
	for i := range spec.Bodies {
		bs := &spec.Bodies[i]

		def, err := bs.bodyDef()
		if err != nil {
			return nil, nil, fmt.Errorf("box2d: scene body %d (%q): %w", i, bs.Name, err)
		}

		if bs.Name != "" {
			if _, dup := named[bs.Name]; dup {
				return nil, nil, fmt.Errorf("box2d: scene body %d: %w: duplicate name %q", i, ErrInvalidScene, bs.Name)
			}
		}

		body, err := world.CreateBody(def)
		if err != nil {
			return nil, nil, err
		}

		for j := range bs.Fixtures {
			fd, err := bs.Fixtures[j].fixtureDef(settings)
			if err != nil {
				return nil, nil, fmt.Errorf("box2d: scene body %d (%q) fixture %d: %w", i, bs.Name, j, err)
			}
			if _, err := body.CreateFixtureFromDef(fd); err != nil {
				return nil, nil, err
			}
		}

		if bs.Name != "" {
			named[bs.Name] = body
		}
	}

	return world, named, nil
}

func (bs *B2SceneBody) bodyDef() (*B2BodyDef, error) {
	def := NewB2BodyDef()

	switch bs.Type {
	case "", "static":
		def.Type = B2BodyType.B2_staticBody
	case "kinematic":
		def.Type = B2BodyType.B2_kinematicBody
	case "dynamic":
		def.Type = B2BodyType.B2_dynamicBody
	default:
		return nil, fmt.Errorf("%w: unknown body type %q", ErrInvalidScene, bs.Type)
	}

	if bs.LinearDamping < 0 || bs.AngularDamping < 0 {
		return nil, fmt.Errorf("%w: negative damping", ErrInvalidScene)
	}

	def.Position = bs.Position.Vec2()
	def.Angle = bs.Angle
	def.LinearVelocity = bs.LinearVelocity.Vec2()
	def.AngularVelocity = bs.AngularVelocity
	def.LinearDamping = bs.LinearDamping
	def.AngularDamping = bs.AngularDamping
	def.FixedRotation = bs.FixedRotation
	if bs.Name != "" {
		def.UserData = bs.Name
	}

	if bs.GravityScale != nil {
		def.GravityScale = *bs.GravityScale
	}
	if bs.AllowSleep != nil {
		def.AllowSleep = *bs.AllowSleep
	}
	if bs.Awake != nil {
		def.Awake = *bs.Awake
	}
	if bs.Active != nil {
		def.Active = *bs.Active
	}

	return def, nil
}

func (fs *B2SceneFixture) fixtureDef(settings B2Settings) (*B2FixtureDef, error) {
	def := MakeB2FixtureDef()

	switch fs.Shape {
	case "circle":
		if fs.Radius <= 0 {
			return nil, fmt.Errorf("%w: circle radius %v", ErrInvalidScene, fs.Radius)
		}
		circle := NewB2CircleShapeWithRadius(fs.Radius)
		circle.M_p = fs.Center.Vec2()
		def.Shape = circle

	case "polygon":
		if len(fs.Vertices) < 3 || len(fs.Vertices) > settings.MaxPolygonVertices {
			return nil, fmt.Errorf("%w: polygon with %d vertices, want 3 to %d", ErrInvalidScene, len(fs.Vertices), settings.MaxPolygonVertices)
		}
		vertices := make([]B2Vec2, len(fs.Vertices))
		for i, v := range fs.Vertices {
			vertices[i] = v.Vec2()
		}
		poly := NewB2PolygonShape()
		poly.Set(vertices)
		def.Shape = poly

	case "box":
		if fs.HalfWidth <= 0 || fs.HalfHeight <= 0 {
			return nil, fmt.Errorf("%w: box half extents %v x %v", ErrInvalidScene, fs.HalfWidth, fs.HalfHeight)
		}
		poly := NewB2PolygonShape()
		poly.SetAsBoxFromCenterAndAngle(fs.HalfWidth, fs.HalfHeight, fs.Center.Vec2(), fs.Angle)
		def.Shape = poly

	default:
		return nil, fmt.Errorf("%w: unknown shape %q", ErrInvalidScene, fs.Shape)
	}

	if fs.Density < 0 {
		return nil, fmt.Errorf("%w: negative density", ErrInvalidScene)
	}

	def.Density = fs.Density
	if fs.Friction != nil {
		def.Friction = *fs.Friction
	}
	def.Restitution = fs.Restitution
	def.IsSensor = fs.Sensor
	def.Filter = fs.Filter.filter()

	return &def, nil
}
