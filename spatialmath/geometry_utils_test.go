package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestPlaneNormal(t *testing.T) {
	normal := PlaneNormal(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1})
	test.That(t, normal, test.ShouldResemble, r3.Vector{Z: 1})
}

func TestClosestPointSegmentPoint(t *testing.T) {
	// interior of the segment
	closest := ClosestPointSegmentPoint(r3.Vector{}, r3.Vector{X: 2}, r3.Vector{X: 1, Y: 1})
	test.That(t, closest, test.ShouldResemble, r3.Vector{X: 1})

	// clamped to an endpoint
	closest = ClosestPointSegmentPoint(r3.Vector{}, r3.Vector{X: 2}, r3.Vector{X: -1, Y: 1})
	test.That(t, closest, test.ShouldResemble, r3.Vector{})

	// degenerate segment
	closest = ClosestPointSegmentPoint(r3.Vector{X: 1}, r3.Vector{X: 1}, r3.Vector{Y: 5})
	test.That(t, closest, test.ShouldResemble, r3.Vector{X: 1})
}

func TestSegmentDistanceToSegment(t *testing.T) {
	// parallel segments
	dist := SegmentDistanceToSegment(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{X: 1, Y: 1})
	test.That(t, dist, test.ShouldEqual, 1)

	// skew segments crossing with a vertical gap
	dist = SegmentDistanceToSegment(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{X: 0.5, Y: -1, Z: 1}, r3.Vector{X: 0.5, Y: 1, Z: 1})
	test.That(t, dist, test.ShouldEqual, 1)

	// intersecting segments
	dist = SegmentDistanceToSegment(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{X: 0.5, Y: -1}, r3.Vector{X: 0.5, Y: 1})
	test.That(t, dist, test.ShouldEqual, 0)
}

func TestClosestPointsSegmentPlane(t *testing.T) {
	// segment crossing the plane
	segPt, coplanarPt := closestPointsSegmentPlane(r3.Vector{Z: 1}, r3.Vector{Z: -1}, r3.Vector{}, r3.Vector{Z: 1})
	test.That(t, segPt, test.ShouldResemble, r3.Vector{})
	test.That(t, coplanarPt, test.ShouldResemble, r3.Vector{})

	// segment parallel to the plane
	segPt, coplanarPt = closestPointsSegmentPlane(r3.Vector{Z: 1}, r3.Vector{X: 1, Z: 1}, r3.Vector{}, r3.Vector{Z: 1})
	test.That(t, segPt, test.ShouldResemble, r3.Vector{Z: 1})
	test.That(t, coplanarPt, test.ShouldResemble, r3.Vector{})

	// segment entirely on one side clamps to the near endpoint
	segPt, coplanarPt = closestPointsSegmentPlane(r3.Vector{Z: 1}, r3.Vector{Z: 2}, r3.Vector{}, r3.Vector{Z: 1})
	test.That(t, segPt, test.ShouldResemble, r3.Vector{Z: 1})
	test.That(t, coplanarPt, test.ShouldResemble, r3.Vector{})
}
