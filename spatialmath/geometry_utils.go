package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/fieldmotion/collisioncheck/utils"
)

// floatEpsilon is the tolerance below which float comparisons in this package consider values equal.
const floatEpsilon = 1e-6

// R3VectorAlmostEqual compares two r3.Vector objects and returns if all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}

// PlaneNormal returns the plane normal of the plane defined by the three given points.
func PlaneNormal(p0, p1, p2 r3.Vector) r3.Vector {
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

// ClosestPointSegmentPoint takes a line segment defined by pt1 and pt2, plus some query point, and returns the point on
// the segment which is closest to the query point.
func ClosestPointSegmentPoint(pt1, pt2, query r3.Vector) r3.Vector {
	ab := pt2.Sub(pt1)
	abLen := ab.Norm2()
	if abLen == 0 {
		// segment is a point
		return pt1
	}
	t := query.Sub(pt1).Dot(ab) / abLen
	if t <= 0 {
		return pt1
	} else if t >= 1 {
		return pt2
	}
	return pt1.Add(ab.Mul(t))
}

// SegmentDistanceToSegment returns the minimum distance between two line segments.
func SegmentDistanceToSegment(ap1, ap2, bp1, bp2 r3.Vector) float64 {
	bestA, bestB := closestPointsSegmentSegment(ap1, ap2, bp1, bp2)
	return bestA.Sub(bestB).Norm()
}

// closestPointsSegmentSegment computes the closest pair of points on two line segments.
// This is the clamped quadratic minimization given in Ericson, "Real-Time Collision Detection", 5.1.9.
func closestPointsSegmentSegment(ap1, ap2, bp1, bp2 r3.Vector) (r3.Vector, r3.Vector) {
	d1 := ap2.Sub(ap1)
	d2 := bp2.Sub(bp1)
	r := ap1.Sub(bp1)
	a := d1.Norm2()
	e := d2.Norm2()
	f := d2.Dot(r)

	var s, t float64
	switch {
	case a == 0 && e == 0:
		// both segments are points
		return ap1, bp1
	case a == 0:
		t = utils.Clamp(f/e, 0, 1)
	case e == 0:
		s = utils.Clamp(-d1.Dot(r)/a, 0, 1)
	default:
		c := d1.Dot(r)
		b := d1.Dot(d2)
		denom := a*e - b*b
		// denom is zero only when the segments are parallel
		if denom != 0 {
			s = utils.Clamp((b*f-c*e)/denom, 0, 1)
		}
		t = (b*s + f) / e
		if t < 0 {
			t = 0
			s = utils.Clamp(-c/a, 0, 1)
		} else if t > 1 {
			t = 1
			s = utils.Clamp((b-c)/a, 0, 1)
		}
	}
	return ap1.Add(d1.Mul(s)), bp1.Add(d2.Mul(t))
}

// closestPointsSegmentPlane takes a line segment and a plane defined by a point and its unit normal, and returns the
// point on the segment closest to the plane along with its projection onto the plane.
func closestPointsSegmentPlane(ap1, ap2, planePt, planeNormal r3.Vector) (segPt, coplanarPt r3.Vector) {
	segVec := ap2.Sub(ap1)
	d := planePt.Dot(planeNormal)
	denom := planeNormal.Dot(segVec)
	if math.Abs(denom) < floatEpsilon {
		// segment is parallel to the plane
		segPt = ap1
		return segPt, segPt.Sub(planeNormal.Mul(planeNormal.Dot(segPt.Sub(planePt))))
	}
	t := utils.Clamp((d-planeNormal.Dot(ap1))/denom, 0, 1)
	segPt = ap1.Add(segVec.Mul(t))
	return segPt, segPt.Sub(planeNormal.Mul(planeNormal.Dot(segPt.Sub(planePt))))
}
