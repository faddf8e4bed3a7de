package box2d

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidSettings = errors.New("invalid settings")

/// Tuning values a world reads at run time. Keys missing from a YAML
/// document keep the defaults from MakeB2Settings. PolygonRadius is copied
/// onto every polygon fixture when it is created; fixtures that already
/// exist keep their radius after SetSettings.
type B2Settings struct {
	AabbExtension         float64 `yaml:"aabb_extension"`
	AabbMultiplier        float64 `yaml:"aabb_multiplier"`
	PolygonRadius         float64 `yaml:"polygon_radius"`
	MaxTranslation        float64 `yaml:"max_translation"`
	MaxRotation           float64 `yaml:"max_rotation"`
	TimeToSleep           float64 `yaml:"time_to_sleep"`
	LinearSleepTolerance  float64 `yaml:"linear_sleep_tolerance"`
	AngularSleepTolerance float64 `yaml:"angular_sleep_tolerance"`
	AllowSleep            *bool   `yaml:"allow_sleep,omitempty"`
	MaxPolygonVertices    int     `yaml:"max_polygon_vertices"`
}

func MakeB2Settings() B2Settings {
	allowSleep := true
	return B2Settings{
		AabbExtension:         B2_aabbExtension,
		AabbMultiplier:        B2_aabbMultiplier,
		PolygonRadius:         B2_polygonRadius,
		MaxTranslation:        B2_maxTranslation,
		MaxRotation:           B2_maxRotation,
		TimeToSleep:           B2_timeToSleep,
		LinearSleepTolerance:  B2_linearSleepTolerance,
		AngularSleepTolerance: B2_angularSleepTolerance,
		AllowSleep:            &allowSleep,
		MaxPolygonVertices:    B2_maxPolygonVertices,
	}
}

func (s B2Settings) SleepAllowed() bool {
	return s.AllowSleep == nil || *s.AllowSleep
}

func (s B2Settings) Validate() error {
	switch {
	case s.AabbExtension < 0:
		return fmt.Errorf("%w: aabb_extension %v < 0", ErrInvalidSettings, s.AabbExtension)
	case s.AabbMultiplier < 0:
		return fmt.Errorf("%w: aabb_multiplier %v < 0", ErrInvalidSettings, s.AabbMultiplier)
	case s.PolygonRadius < 0:
		return fmt.Errorf("%w: polygon_radius %v < 0", ErrInvalidSettings, s.PolygonRadius)
	case s.MaxTranslation <= 0 || s.MaxRotation <= 0:
		return fmt.Errorf("%w: max_translation and max_rotation must be positive", ErrInvalidSettings)
	case s.TimeToSleep < 0:
		return fmt.Errorf("%w: time_to_sleep %v < 0", ErrInvalidSettings, s.TimeToSleep)
	case s.MaxPolygonVertices < 3 || s.MaxPolygonVertices > B2_maxPolygonVertices:
		return fmt.Errorf("%w: max_polygon_vertices %d not in [3, %d]", ErrInvalidSettings, s.MaxPolygonVertices, B2_maxPolygonVertices)
	}
	return nil
}

/// Decode a YAML document over the defaults and validate the result.
func ParseB2Settings(data []byte) (B2Settings, error) {
	settings := MakeB2Settings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return B2Settings{}, fmt.Errorf("box2d: unmarshal settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return B2Settings{}, fmt.Errorf("box2d: settings: %w", err)
	}
	return settings, nil
}

func LoadB2Settings(filename string) (B2Settings, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return B2Settings{}, fmt.Errorf("box2d: load %s: %w", filename, err)
	}
	settings, err := ParseB2Settings(data)
	if err != nil {
		return B2Settings{}, fmt.Errorf("box2d: load %s: %w", filename, err)
	}
	return settings, nil
}
