package collisioncheck

import "github.com/fieldmotion/collisioncheck/spatialmath"

// Backend runs the primitive collision and distance queries between two posed meshes. The engine
// composes every validity and clearance check out of these three queries, so swapping the backend
// swaps the narrow-phase geometry algorithms without touching the engine logic. Implementations must
// be safe for concurrent use.
type Backend interface {
	// Name identifies the backend in diagnostics.
	Name() string
	// Collides reports whether the meshes come within the backend's collision buffer of each other.
	Collides(a, b *spatialmath.Mesh) bool
	// Distance returns the minimum separation between the meshes. It is zero when they touch or
	// overlap and +Inf when either mesh has no triangles.
	Distance(a, b *spatialmath.Mesh) float64
	// CollidesMoving reports whether the meshes come within the collision buffer at any time while
	// each sweeps along its motion, and if so the earliest parameterized time of contact in [0, 1).
	// Motions that stay clear report a time of 1.0.
	CollidesMoving(a *spatialmath.Mesh, motionA *spatialmath.Motion, b *spatialmath.Mesh, motionB *spatialmath.Motion) (bool, float64)
}

// bvhBackend answers queries from the meshes' own triangle hierarchies.
type bvhBackend struct {
	collisionBufferMM float64
}

// NewBVHBackend returns the native backend, which traverses the bounding volume hierarchies the
// meshes were built with. Meshes within collisionBufferMM of each other count as colliding.
func NewBVHBackend(collisionBufferMM float64) Backend {
	return &bvhBackend{collisionBufferMM: collisionBufferMM}
}

func (b *bvhBackend) Name() string {
	return "bvh"
}

func (b *bvhBackend) Collides(meshA, meshB *spatialmath.Mesh) bool {
	return meshA.CollidesWith(meshB, b.collisionBufferMM)
}

func (b *bvhBackend) Distance(meshA, meshB *spatialmath.Mesh) float64 {
	return meshA.DistanceFrom(meshB)
}

func (b *bvhBackend) CollidesMoving(
	meshA *spatialmath.Mesh, motionA *spatialmath.Motion,
	meshB *spatialmath.Mesh, motionB *spatialmath.Motion,
) (bool, float64) {
	return spatialmath.ConservativeAdvancement(meshA, motionA, meshB, motionB, b.collisionBufferMM)
}
