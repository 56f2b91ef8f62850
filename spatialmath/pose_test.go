package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestBasicPoseConstruction(t *testing.T) {
	p := NewZeroPose()
	// Should return an identity dual quat
	test.That(t, p.Orientation().OrientationVectorRadians(), test.ShouldResemble, NewOrientationVector())
	test.That(t, p.Point(), test.ShouldResemble, r3.Vector{})

	// point at +Y, rotated 90 degrees about X
	aa := &R4AA{Theta: math.Pi / 2, RX: 1, RY: 0, RZ: 0}
	pt := r3.Vector{X: 0, Y: 1, Z: 0}
	p = NewPose(pt, aa)
	test.That(t, R3VectorAlmostEqual(p.Point(), pt, 1e-8), test.ShouldBeTrue)
	test.That(t, OrientationAlmostEqual(p.Orientation(), aa), test.ShouldBeTrue)

	p = NewPoseFromPoint(pt)
	test.That(t, p.Point(), test.ShouldResemble, pt)
	test.That(t, OrientationAlmostEqual(p.Orientation(), NewZeroOrientation()), test.ShouldBeTrue)

	p = NewPoseFromOrientation(aa)
	test.That(t, p.Point(), test.ShouldResemble, r3.Vector{})
	test.That(t, OrientationAlmostEqual(p.Orientation(), aa), test.ShouldBeTrue)

	test.That(t, PoseAlmostEqual(NewPose(pt, nil), NewPoseFromPoint(pt)), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(NewPoseFromOrientation(nil), NewZeroPose()), test.ShouldBeTrue)
}

func TestCompose(t *testing.T) {
	translate := NewPoseFromPoint(r3.Vector{X: 1, Y: 0, Z: 0})
	rotate := NewPoseFromOrientation(&R4AA{Theta: math.Pi / 2, RX: 0, RY: 0, RZ: 1})

	// rotation then translation moves the origin to the translation
	p1 := Compose(translate, rotate)
	test.That(t, R3VectorAlmostEqual(p1.Point(), r3.Vector{X: 1, Y: 0, Z: 0}, 1e-8), test.ShouldBeTrue)

	// translation then rotation swings the translated origin around Z
	p2 := Compose(rotate, translate)
	test.That(t, R3VectorAlmostEqual(p2.Point(), r3.Vector{X: 0, Y: 1, Z: 0}, 1e-8), test.ShouldBeTrue)

	// composing either with the zero pose changes nothing
	test.That(t, PoseAlmostEqual(Compose(p1, NewZeroPose()), p1), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(Compose(NewZeroPose(), p1), p1), test.ShouldBeTrue)
}

func TestPoseBetween(t *testing.T) {
	a := NewPose(r3.Vector{X: 1, Y: 2, Z: 3}, &R4AA{Theta: math.Pi / 2, RX: 0, RY: 1, RZ: 0})
	b := NewPose(r3.Vector{X: -5, Y: 0, Z: 2}, &R4AA{Theta: math.Pi / 4, RX: 1, RY: 0, RZ: 0})

	c := PoseBetween(a, b)
	test.That(t, PoseAlmostEqual(Compose(a, c), b), test.ShouldBeTrue)

	test.That(t, PoseAlmostEqual(PoseBetween(a, a), NewZeroPose()), test.ShouldBeTrue)
}

func TestPoseInverse(t *testing.T) {
	p := NewPose(r3.Vector{X: 1, Y: 1, Z: 1}, &R4AA{Theta: math.Pi, RX: 0, RY: 1, RZ: 0})
	test.That(t, PoseAlmostEqual(Compose(p, PoseInverse(p)), NewZeroPose()), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(Compose(PoseInverse(p), p), NewZeroPose()), test.ShouldBeTrue)
}

func TestInterpolate(t *testing.T) {
	p1 := NewPose(r3.Vector{X: 1, Y: 2, Z: 3}, NewZeroOrientation())
	p2 := NewPose(r3.Vector{X: 3, Y: 6, Z: 9}, NewZeroOrientation())

	test.That(t, PoseAlmostEqual(Interpolate(p1, p2, 0), p1), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(Interpolate(p1, p2, 1), p2), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(Interpolate(p1, p2, 0.5), NewPose(r3.Vector{X: 2, Y: 4, Z: 6}, NewZeroOrientation())), test.ShouldBeTrue)

	// rotations interpolate along the shortest arc
	p3 := NewPose(r3.Vector{}, &R4AA{Theta: math.Pi / 2, RX: 1, RY: 0, RZ: 0})
	mid := Interpolate(NewZeroPose(), p3, 0.5)
	test.That(t, OrientationAlmostEqual(mid.Orientation(), &R4AA{Theta: math.Pi / 4, RX: 1, RY: 0, RZ: 0}), test.ShouldBeTrue)
}

func TestPoseAlmostCoincident(t *testing.T) {
	p1 := NewPoseFromPoint(r3.Vector{X: 1, Y: 2, Z: 3})
	p2 := NewPoseFromPoint(r3.Vector{X: 1, Y: 2, Z: 3.0001})
	test.That(t, PoseAlmostCoincident(p1, p1), test.ShouldBeTrue)
	test.That(t, PoseAlmostCoincident(p1, p2), test.ShouldBeFalse)
	test.That(t, PoseAlmostCoincidentEps(p1, p2, 1e-3), test.ShouldBeTrue)
}
