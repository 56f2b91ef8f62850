package spatialmath

import (
	"gonum.org/v1/gonum/num/quat"
)

// Orientation is satisfied by the parameterizations of a rigid rotation in 3D space.
// Every representation can convert itself to every other one.
type Orientation interface {
	OrientationVectorRadians() *OrientationVector
	AxisAngles() *R4AA
	Quaternion() quat.Number
	RotationMatrix() *RotationMatrix
}

// NewZeroOrientation returns the identity rotation.
func NewZeroOrientation() Orientation {
	return &quaternion{Real: 1}
}

// OrientationAlmostEqual reports whether two orientations represent nearly the same rotation.
func OrientationAlmostEqual(o1, o2 Orientation) bool {
	return QuaternionAlmostEqual(o1.Quaternion(), o2.Quaternion(), 1e-5)
}

// OrientationBetween returns the rotation that carries o1 onto o2.
func OrientationBetween(o1, o2 Orientation) Orientation {
	diff := quaternion(quat.Mul(o2.Quaternion(), quat.Conj(o1.Quaternion())))
	return &diff
}
