package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func unitTriangleMesh() *Mesh {
	return meshAt(r3.Vector{}, flatTriangle(0, 0, 0))
}

func TestNewMotion(t *testing.T) {
	m := NewMotion(NewPoseFromPoint(r3.Vector{X: 1, Y: 0, Z: 0}), NewPoseFromPoint(r3.Vector{X: 3, Y: 0, Z: 0}))
	test.That(t, m.linearVel, test.ShouldAlmostEqual, 2)
	test.That(t, m.angularVel, test.ShouldAlmostEqual, 0)

	spin := NewMotion(NewZeroPose(), NewPoseFromOrientation(&R4AA{Theta: math.Pi / 2, RX: 0, RY: 0, RZ: 1}))
	test.That(t, spin.linearVel, test.ShouldAlmostEqual, 0)
	test.That(t, spin.angularVel, test.ShouldAlmostEqual, math.Pi/2)

	test.That(t, R3VectorAlmostEqual(m.Pose(0).Point(), r3.Vector{X: 1, Y: 0, Z: 0}, 1e-8), test.ShouldBeTrue)
	test.That(t, R3VectorAlmostEqual(m.Pose(1).Point(), r3.Vector{X: 3, Y: 0, Z: 0}, 1e-8), test.ShouldBeTrue)
	test.That(t, R3VectorAlmostEqual(m.Pose(0.5).Point(), r3.Vector{X: 2, Y: 0, Z: 0}, 1e-8), test.ShouldBeTrue)
}

func TestConservativeAdvancement(t *testing.T) {
	still := NewMotion(NewZeroPose(), NewZeroPose())

	t.Run("static separated meshes", func(t *testing.T) {
		a := unitTriangleMesh()
		b := unitTriangleMesh().Transform(NewPoseFromPoint(r3.Vector{X: 5, Y: 0, Z: 0}))
		collides, collisionTime := ConservativeAdvancement(a, still, b, still, defaultCollisionBufferMM)
		test.That(t, collides, test.ShouldBeFalse)
		test.That(t, collisionTime, test.ShouldEqual, 1.0)
	})

	t.Run("in contact from the start", func(t *testing.T) {
		a := unitTriangleMesh()
		b := unitTriangleMesh()
		motion := NewMotion(NewZeroPose(), NewPoseFromPoint(r3.Vector{X: 10, Y: 0, Z: 0}))
		collides, collisionTime := ConservativeAdvancement(a, still, b, motion, defaultCollisionBufferMM)
		test.That(t, collides, test.ShouldBeTrue)
		test.That(t, collisionTime, test.ShouldEqual, 0.0)
	})

	t.Run("translation into contact", func(t *testing.T) {
		a := unitTriangleMesh()
		b := unitTriangleMesh()
		// b slides from x=3 to x=0, first touching a when its origin vertex reaches x=1 at t=2/3
		approach := NewMotion(NewPoseFromPoint(r3.Vector{X: 3, Y: 0, Z: 0}), NewZeroPose())
		collides, collisionTime := ConservativeAdvancement(a, still, b, approach, defaultCollisionBufferMM)
		test.That(t, collides, test.ShouldBeTrue)
		test.That(t, collisionTime, test.ShouldAlmostEqual, 2./3., 1e-3)
		test.That(t, collisionTime, test.ShouldBeLessThanOrEqualTo, 2./3.)

		// the advancement is symmetric in its arguments
		collides, swappedTime := ConservativeAdvancement(b, approach, a, still, defaultCollisionBufferMM)
		test.That(t, collides, test.ShouldBeTrue)
		test.That(t, swappedTime, test.ShouldAlmostEqual, collisionTime, 1e-3)
	})

	t.Run("translation passing clear", func(t *testing.T) {
		a := unitTriangleMesh()
		b := unitTriangleMesh().Transform(NewPoseFromPoint(r3.Vector{X: 0, Y: 0, Z: 3}))
		// b passes over a with 3 units of clearance
		pass := NewMotion(NewPoseFromPoint(r3.Vector{X: -2, Y: 0, Z: 0}), NewPoseFromPoint(r3.Vector{X: 2, Y: 0, Z: 0}))
		collides, collisionTime := ConservativeAdvancement(a, still, b, pass, defaultCollisionBufferMM)
		test.That(t, collides, test.ShouldBeFalse)
		test.That(t, collisionTime, test.ShouldEqual, 1.0)
	})

	t.Run("rotation into contact", func(t *testing.T) {
		// a long blade in the XY plane spinning a quarter turn about Z
		blade := meshAt(r3.Vector{}, NewTriangle(
			r3.Vector{X: 0, Y: -0.1, Z: 0},
			r3.Vector{X: 4, Y: -0.1, Z: 0},
			r3.Vector{X: 4, Y: 0.1, Z: 0},
		))
		spin := NewMotion(NewZeroPose(), NewPoseFromOrientation(&R4AA{Theta: math.Pi / 2, RX: 0, RY: 0, RZ: 1}))
		// directly in the path of the blade tip, a quarter turn is more than enough to reach it
		wall := unitTriangleMesh().Transform(NewPose(r3.Vector{X: 0, Y: 3.5, Z: 0}, &R4AA{Theta: math.Pi / 2, RX: 0, RY: 0, RZ: 1}))
		collides, collisionTime := ConservativeAdvancement(blade, spin, wall, still, defaultCollisionBufferMM)
		test.That(t, collides, test.ShouldBeTrue)
		test.That(t, collisionTime, test.ShouldBeGreaterThan, 0.0)
		test.That(t, collisionTime, test.ShouldBeLessThan, 1.0)
	})

	t.Run("empty mesh never collides", func(t *testing.T) {
		empty := meshAt(r3.Vector{})
		b := unitTriangleMesh()
		through := NewMotion(NewPoseFromPoint(r3.Vector{X: -5, Y: 0, Z: 0}), NewPoseFromPoint(r3.Vector{X: 5, Y: 0, Z: 0}))
		collides, collisionTime := ConservativeAdvancement(empty, still, b, through, defaultCollisionBufferMM)
		test.That(t, collides, test.ShouldBeFalse)
		test.That(t, collisionTime, test.ShouldEqual, 1.0)
	})
}
