package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// R4AA is an axis angle orientation: a rotation of Theta radians about the axis (RX, RY, RZ).
// The axis is scaled onto the unit sphere whenever the rotation is converted or applied.
type R4AA struct {
	Theta float64
	RX    float64
	RY    float64
	RZ    float64
}

// NewR4AA returns the zero rotation, by convention about the +Z axis.
func NewR4AA() *R4AA {
	return &R4AA{Theta: 0, RX: 0, RY: 0, RZ: 1}
}

// ToQuat converts to a unit quaternion, normalizing the axis first.
func (r4 *R4AA) ToQuat() quat.Number {
	r4.Normalize()
	halfTheta := r4.Theta / 2
	sinHalf := math.Sin(halfTheta)
	return quat.Number{
		Real: math.Cos(halfTheta),
		Imag: r4.RX * sinHalf,
		Jmag: r4.RY * sinHalf,
		Kmag: r4.RZ * sinHalf,
	}
}

// Normalize scales the axis components onto the unit sphere.
func (r4 *R4AA) Normalize() {
	norm := math.Sqrt(r4.RX*r4.RX + r4.RY*r4.RY + r4.RZ*r4.RZ)
	if norm == 0.0 {
		panic("cannot normalize an R4AA with a zero axis")
	}
	r4.RX /= norm
	r4.RY /= norm
	r4.RZ /= norm
}

// AxisAngles returns the receiver itself.
func (r4 *R4AA) AxisAngles() *R4AA {
	return r4
}

// Quaternion returns the orientation in quaternion representation.
func (r4 *R4AA) Quaternion() quat.Number {
	return r4.ToQuat()
}

// OrientationVectorRadians returns the orientation as an orientation vector, in radians.
func (r4 *R4AA) OrientationVectorRadians() *OrientationVector {
	return QuatToOV(r4.ToQuat())
}

// RotationMatrix returns the rotation as a 3x3 matrix.
func (r4 *R4AA) RotationMatrix() *RotationMatrix {
	return QuatToRotationMatrix(r4.ToQuat())
}
