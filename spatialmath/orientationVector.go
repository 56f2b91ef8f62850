package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// angleEpsilon is used to determine whether angles are equal.
const angleEpsilon = 0.01

// OrientationVector containing ox, oy, oz, theta represents an orientation vector
// Structured similarly to an angle axis, an orientation vector works differently. Rather than representing an orientation
// with an arbitrary axis and a rotation around it from an origin, an orientation vector represents orientation
// such that the ox/oy/oz components represent the point on the cartesian unit sphere at which your end effector is pointing
// from the origin, and that unit vector forms an axis around which theta rotates. This means that incrementing/decrementing
// theta will perform an in-line rotation of the end effector.
// Theta is defined as rotation between two planes: the plane defined by the origin, the point (0,0,1), and the rx,ry,rz
// point, and the plane defined by the origin, the rx,ry,rz point, and the new local Z axis. So if theta is kept at
// zero as the north/south pole is circled, the Roll will correct itself to remain in-line.
type OrientationVector struct {
	Theta float64
	OX    float64
	OY    float64
	OZ    float64
}

// NewOrientationVector Creates a zero-initialized OrientationVector.
func NewOrientationVector() *OrientationVector {
	return &OrientationVector{Theta: 0, OX: 0, OY: 0, OZ: 1}
}

// Quaternion returns orientation in quaternion representation.
func (ov *OrientationVector) Quaternion() quat.Number {
	return ov.ToQuat()
}

// OrientationVectorRadians returns orientation as an orientation vector (in radians).
func (ov *OrientationVector) OrientationVectorRadians() *OrientationVector {
	return ov
}

// AxisAngles returns the orientation in axis angle representation.
func (ov *OrientationVector) AxisAngles() *R4AA {
	return QuatToR4AA(ov.ToQuat())
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (ov *OrientationVector) RotationMatrix() *RotationMatrix {
	return QuatToRotationMatrix(ov.ToQuat())
}

// ToQuat converts an orientation vector to a quaternion.
func (ov *OrientationVector) ToQuat() quat.Number {
	ov.Normalize()

	// acos(rz) ranges from 0 (north pole) to pi (south pole)
	lat := math.Acos(ov.OZ)

	// If we're pointing at the Z axis then lon can be 0
	lon := 0.0
	theta := ov.Theta

	if 1-math.Abs(ov.OZ) > angleEpsilon {
		// If we are not at a pole, we need the longitude
		lon = math.Atan2(ov.OY, ov.OX)
	}

	var q quat.Number

	// Convert lat/lon/theta to a quaternion using the ZYZ euler angle convention
	s := []float64{math.Sin(lon / 2), math.Sin(lat / 2), math.Sin(theta / 2)}
	c := []float64{math.Cos(lon / 2), math.Cos(lat / 2), math.Cos(theta / 2)}

	q.Real = c[0]*c[1]*c[2] - s[0]*c[1]*s[2]
	q.Imag = c[0]*s[1]*s[2] - s[0]*s[1]*c[2]
	q.Jmag = c[0]*s[1]*c[2] + s[0]*s[1]*s[2]
	q.Kmag = s[0]*c[1]*c[2] + c[0]*c[1]*s[2]

	return q
}

// Normalize scales the x, y, and z components of an orientation vector to be on the unit sphere.
func (ov *OrientationVector) Normalize() {
	norm := math.Sqrt(ov.OX*ov.OX + ov.OY*ov.OY + ov.OZ*ov.OZ)
	if norm == 0 {
		panic("cannot normalize OrientationVector, divide by zero")
	}
	ov.OX /= norm
	ov.OY /= norm
	ov.OZ /= norm
}
