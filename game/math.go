package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var up = mgl64.Vec3{0, 1, 0}

// ClampFloat clamps num into [min, max].
func ClampFloat(num, min, max float64) float64 {
	if num < min {
		return min
	}
	if num > max {
		return max
	}
	return num
}

// Round64 will round a float64 to a given precision.
func Round64(val float64, precision int) float64 {
	pwr := math.Pow(10, float64(precision))
	return math.Round(val*pwr) / pwr
}

// RoundVec64 will round a 64-bit vector to a given precision.
func RoundVec64(v mgl64.Vec3, p int) mgl64.Vec3 {
	return mgl64.Vec3{Round64(v.X(), p), Round64(v.Y(), p), Round64(v.Z(), p)}
}

// Float64ApproxEq determines whether two floats are within 1e-5 of each other.
func Float64ApproxEq(a, b float64) bool {
	return math.Abs(a-b) <= 1e-5
}

// Vec3HzDistSqr returns the squared length of the vector on the horizontal plane.
func Vec3HzDistSqr(vec3 mgl64.Vec3) float64 {
	return vec3[0]*vec3[0] + vec3[2]*vec3[2]
}

// Vec3Hz drops the vertical component of the vector.
func Vec3Hz(vec3 mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{vec3[0], 0, vec3[2]}
}

// IsNearlyZero reports whether every component of the vector is within tolerance of zero.
func IsNearlyZero(vec3 mgl64.Vec3, tolerance float64) bool {
	return math.Abs(vec3[0]) <= tolerance && math.Abs(vec3[1]) <= tolerance && math.Abs(vec3[2]) <= tolerance
}

// SafeNormal returns the unit vector in the direction of vec3, or the zero
// vector if vec3 is too short to normalise.
func SafeNormal(vec3 mgl64.Vec3) mgl64.Vec3 {
	lenSqr := vec3.LenSqr()
	if lenSqr < 1e-8 {
		return mgl64.Vec3{}
	}
	return vec3.Mul(1 / math.Sqrt(lenSqr))
}

// SafeNormalHz is SafeNormal applied to the horizontal part of the vector.
func SafeNormalHz(vec3 mgl64.Vec3) mgl64.Vec3 {
	return SafeNormal(Vec3Hz(vec3))
}

// PlaneProject removes the component of vec3 along normal. normal must be unit length.
func PlaneProject(vec3, normal mgl64.Vec3) mgl64.Vec3 {
	return vec3.Sub(normal.Mul(vec3.Dot(normal)))
}

// ClampedToMaxSize scales vec3 down so its length does not exceed max.
func ClampedToMaxSize(vec3 mgl64.Vec3, max float64) mgl64.Vec3 {
	if max < 1e-4 {
		return mgl64.Vec3{}
	}
	lenSqr := vec3.LenSqr()
	if lenSqr > max*max {
		return vec3.Mul(max / math.Sqrt(lenSqr))
	}
	return vec3
}

// DirectionVector returns the horizontal facing direction for the given yaw.
// A yaw of 0 faces +Z and a yaw of -90 faces +X.
func DirectionVector(yaw float64) mgl64.Vec3 {
	yawRad := mgl64.DegToRad(yaw)
	return mgl64.Vec3{-math.Sin(yawRad), 0, math.Cos(yawRad)}
}

// RightVector returns the horizontal direction to the right of the given yaw.
func RightVector(yaw float64) mgl64.Vec3 {
	return DirectionVector(yaw).Cross(up)
}

// YawFromDirection is the inverse of DirectionVector for the horizontal part of dir.
func YawFromDirection(dir mgl64.Vec3) float64 {
	return mgl64.RadToDeg(math.Atan2(-dir[0], dir[2]))
}

// NormalizeAngle wraps an angle in degrees into (-180, 180].
func NormalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle > 180 {
		angle -= 360
	} else if angle <= -180 {
		angle += 360
	}
	return angle
}

// FixedTurn rotates current towards target by at most maxDelta degrees, taking
// the shortest way around.
func FixedTurn(current, target, maxDelta float64) float64 {
	diff := NormalizeAngle(target - current)
	if math.Abs(diff) <= maxDelta {
		return NormalizeAngle(target)
	}
	if diff > 0 {
		return NormalizeAngle(current + maxDelta)
	}
	return NormalizeAngle(current - maxDelta)
}
