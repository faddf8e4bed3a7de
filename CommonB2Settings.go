package box2d

import (
	"fmt"
	"log"
	"math"
	"os"
)

/// Panics with a formatted message when cond is false. Broken invariants
/// (freed tree nodes, bad child indices, non-leaf proxies) go through here.
func B2Assert(cond bool, msgAndArgs ...interface{}) {
	if cond {
		return
	}

	if len(msgAndArgs) == 0 {
		panic("B2Assert")
	}

	if format, ok := msgAndArgs[0].(string); ok {
		panic("B2Assert: " + fmt.Sprintf(format, msgAndArgs[1:]...))
	}

	panic(fmt.Sprint(append([]interface{}{"B2Assert: "}, msgAndArgs...)...))
}

var b2Logger = log.New(os.Stderr, "box2d: ", log.LstdFlags)

/// Replace the package logger. Passing nil restores the default stderr logger.
func B2SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(os.Stderr, "box2d: ", log.LstdFlags)
	}
	b2Logger = l
}

func b2Logf(format string, args ...interface{}) {
	b2Logger.Printf(format, args...)
}

const B2_maxFloat = math.MaxFloat64
const B2_epsilon = 2.220446049250313e-16
const B2_pi = math.Pi

/// @file
/// Global tuning constants based on meters-kilograms-seconds (MKS) units.
/// The tunable subset is mirrored in B2Settings.

// Collision

/// The maximum number of contact points between two convex shapes.
const B2_maxManifoldPoints = 2

/// The maximum number of vertices on a convex polygon.
const B2_maxPolygonVertices = 8

/// This is used to fatten AABBs in the dynamic tree. This allows proxies
/// to move by a small amount without triggering a tree adjustment.
/// This is in meters.
const B2_aabbExtension = 0.1

/// This is used to fatten AABBs in the dynamic tree. This is used to predict
/// the future position based on the current displacement.
/// This is a dimensionless multiplier.
const B2_aabbMultiplier = 2.0

/// A small length used as a collision tolerance. Usually it is
/// chosen to be numerically significant, but visually insignificant.
const B2_linearSlop = 0.005

/// A small angle used as a collision tolerance.
const B2_angularSlop = (2.0 / 180.0 * B2_pi)

/// The radius of the polygon skin.
const B2_polygonRadius = (2.0 * B2_linearSlop)

// Dynamics

/// The maximum linear displacement of a body in one step.
const B2_maxTranslation = 2.0
const B2_maxTranslationSquared = (B2_maxTranslation * B2_maxTranslation)

/// The maximum rotation of a body in one step.
const B2_maxRotation = (0.5 * B2_pi)
const B2_maxRotationSquared = (B2_maxRotation * B2_maxRotation)

// Sleep

/// The time that a body must be still before it will go to sleep.
const B2_timeToSleep = 0.5

/// A body cannot sleep if its linear velocity is above this tolerance.
const B2_linearSleepTolerance = 0.01

/// A body cannot sleep if its angular velocity is above this tolerance.
const B2_angularSleepTolerance = (2.0 / 180.0 * B2_pi)
