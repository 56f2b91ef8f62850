package spatialmath

import (
	"math"
)

const (
	// maxAdvancementIterations caps the advancement loop for motions that approach contact asymptotically.
	maxAdvancementIterations = 64
	// minAdvancementStep is the smallest fraction of a motion the advancement loop will take in one iteration.
	minAdvancementStep = 1e-9
)

// Motion describes a rigid motion of a body frame from a start pose to a goal pose over a normalized time
// interval [0, 1]. Rotation is interpolated along the shortest arc and translation linearly, matching Interpolate.
type Motion struct {
	start Pose
	goal  Pose

	// linearVel is the distance the frame origin travels per unit time, angularVel the radians it rotates through.
	linearVel  float64
	angularVel float64
}

// NewMotion creates a Motion between two poses. A motion whose start and goal are the same pose describes a
// motionless body and may be used for static obstacles.
func NewMotion(start, goal Pose) *Motion {
	return &Motion{
		start:      start,
		goal:       goal,
		linearVel:  goal.Point().Sub(start.Point()).Norm(),
		angularVel: math.Abs(OrientationBetween(start.Orientation(), goal.Orientation()).AxisAngles().Theta),
	}
}

// Pose returns the pose of the body frame at a time in [0, 1].
func (m *Motion) Pose(t float64) Pose {
	return Interpolate(m.start, m.goal, t)
}

// maxPointSpeed bounds the speed of any point within radius of the body frame origin over the course of the motion.
func (m *Motion) maxPointSpeed(radius float64) float64 {
	return m.linearVel + m.angularVel*radius
}

// ConservativeAdvancement determines whether two meshes come within collisionBufferMM of each other at any time
// during their motions, where each motion gives the world placement of its mesh over time. Returns the time of
// first contact when they do, or 1.0 when the whole motion is clear. At each step the meshes' separation is
// measured and time advances by as much as the bodies' combined speed bound guarantees is safe, so a contact
// between measured times cannot be missed.
func ConservativeAdvancement(a *Mesh, motionA *Motion, b *Mesh, motionB *Motion, collisionBufferMM float64) (bool, float64) {
	// Points of each mesh lie within boundingSphereR of the mesh frame origin, which the mesh pose may itself
	// offset from the moving frame origin.
	bound := motionA.maxPointSpeed(a.pose.Point().Norm()+a.boundingSphereR) +
		motionB.maxPointSpeed(b.pose.Point().Norm()+b.boundingSphereR)

	t := 0.0
	for i := 0; i < maxAdvancementIterations; i++ {
		dist := a.Transform(motionA.Pose(t)).DistanceFrom(b.Transform(motionB.Pose(t)))
		if dist <= collisionBufferMM {
			return true, t
		}
		if bound <= 0 {
			// Neither body moves, so the separation cannot change.
			return false, 1.0
		}
		step := (dist - collisionBufferMM) / bound
		if step < minAdvancementStep {
			// Not enough clearance to safely advance; treat as contact.
			return true, t
		}
		t += step
		if t >= 1.0 {
			return false, 1.0
		}
	}
	// Out of iterations without clearing the motion; report contact at the furthest verified time.
	return true, t
}
