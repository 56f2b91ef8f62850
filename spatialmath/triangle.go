package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Triangle is three points and a normal vector.
type Triangle struct {
	p0 r3.Vector
	p1 r3.Vector
	p2 r3.Vector

	normal r3.Vector
}

// NewTriangle creates a Triangle from three points. The normal direction follows the vertex winding.
func NewTriangle(p0, p1, p2 r3.Vector) *Triangle {
	return &Triangle{
		p0:     p0,
		p1:     p1,
		p2:     p2,
		normal: PlaneNormal(p0, p1, p2),
	}
}

// Points returns the three points associated with the triangle.
func (t *Triangle) Points() []r3.Vector {
	return []r3.Vector{t.p0, t.p1, t.p2}
}

// Normal returns the triangle's normal vector.
func (t *Triangle) Normal() r3.Vector {
	return t.normal
}

// Area calculates the area of the triangle.
func (t *Triangle) Area() float64 {
	// half the magnitude of the cross product of two edges
	return t.p1.Sub(t.p0).Cross(t.p2.Sub(t.p0)).Norm() / 2
}

// Centroid calculates the centroid of the triangle.
func (t *Triangle) Centroid() r3.Vector {
	return t.p0.Add(t.p1).Add(t.p2).Mul(1. / 3.)
}

// Transform premultiplies the triangle's points with a transform, allowing the triangle to be moved in space.
func (t *Triangle) Transform(toPremultiply Pose) *Triangle {
	return NewTriangle(
		Compose(toPremultiply, NewPoseFromPoint(t.p0)).Point(),
		Compose(toPremultiply, NewPoseFromPoint(t.p1)).Point(),
		Compose(toPremultiply, NewPoseFromPoint(t.p2)).Point(),
	)
}

// closestTriangleInsidePoint returns the point on the triangle nearest the query point, but only
// when the query point projects onto the triangle's interior. The second return reports whether it
// does; when false the true closest point lies on an edge and the returned point is not usable.
func closestTriangleInsidePoint(t *Triangle, point r3.Vector) (r3.Vector, bool) {
	// Write the projection as Q = p0 + u*e0 + v*e1 over the triangle's edge basis and minimize
	// the distance to the query point analytically. Q lands inside the triangle when u and v are
	// nonnegative and u + v does not exceed one.
	e0 := t.p1.Sub(t.p0)
	e1 := t.p2.Sub(t.p0)
	a := e0.Norm2()
	b := e0.Dot(e1)
	c := e1.Norm2()
	d := point.Sub(t.p0)
	// The determinant vanishes only for a degenerate triangle whose edges are parallel.
	det := (a*c - b*b)
	u := (c*e0.Dot(d) - b*e1.Dot(d)) / det
	v := (-b*e0.Dot(d) + a*e1.Dot(d)) / det
	inside := (0 <= u+floatEpsilon) && (u <= 1+floatEpsilon) && (0 <= v+floatEpsilon) && (v <= 1+floatEpsilon) && (u+v <= 1+floatEpsilon)
	return t.p0.Add(e0.Mul(u)).Add(e1.Mul(v)), inside
}

// closestPointTrianglePoint returns the point on the triangle nearest the given point.
func closestPointTrianglePoint(t *Triangle, point r3.Vector) r3.Vector {
	if closest, inside := closestTriangleInsidePoint(t, point); inside {
		return closest
	}

	// The projection falls outside the triangle, so the closest point is on one of the edges.
	best := ClosestPointSegmentPoint(t.p0, t.p1, point)
	bestDist := point.Sub(best).Norm2()
	for _, edge := range [][2]r3.Vector{{t.p1, t.p2}, {t.p2, t.p0}} {
		candidate := ClosestPointSegmentPoint(edge[0], edge[1], point)
		if dist := point.Sub(candidate).Norm2(); dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}
	return best
}

// closestPointsSegmentTriangle takes a line segment and a triangle, and returns the closest point on the segment to the
// triangle and the closest point on the triangle to the segment.
func closestPointsSegmentTriangle(ap1, ap2 r3.Vector, t *Triangle) (segPt, triPt r3.Vector) {
	// A segment point hovering over the face, or passing through it, beats every edge pair.
	// Clamp the segment to the triangle's plane and check where that point projects.
	planePt, _ := closestPointsSegmentPlane(ap1, ap2, t.p0, t.normal)
	if insidePt, inside := closestTriangleInsidePoint(t, planePt); inside {
		return planePt, insidePt
	}

	// Otherwise the closest triangle point is on one of the triangle's edges.
	bestSeg, bestTri := closestPointsSegmentSegment(ap1, ap2, t.p0, t.p1)
	bestDist := bestSeg.Sub(bestTri).Norm2()
	for _, edge := range [][2]r3.Vector{{t.p1, t.p2}, {t.p2, t.p0}} {
		segCand, triCand := closestPointsSegmentSegment(ap1, ap2, edge[0], edge[1])
		if dist := segCand.Sub(triCand).Norm2(); dist < bestDist {
			bestSeg, bestTri = segCand, triCand
			bestDist = dist
		}
	}
	return bestSeg, bestTri
}

// closestPointsTriangleTriangle finds the closest points between two triangles, returning a point on each.
// If the triangles intersect the returned points will be coincident.
func closestPointsTriangleTriangle(t1, t2 *Triangle) (t1Pt, t2Pt r3.Vector) {
	bestDist := math.Inf(1)
	p1 := t1.Points()
	p2 := t2.Points()

	// The closest pair of points is found on an edge of one triangle against the whole of the other.
	for i := 0; i < 3; i++ {
		segPt, triPt := closestPointsSegmentTriangle(p1[i], p1[(i+1)%3], t2)
		if dist := segPt.Sub(triPt).Norm2(); dist < bestDist {
			t1Pt, t2Pt = segPt, triPt
			bestDist = dist
		}
	}
	for i := 0; i < 3; i++ {
		segPt, triPt := closestPointsSegmentTriangle(p2[i], p2[(i+1)%3], t1)
		if dist := segPt.Sub(triPt).Norm2(); dist < bestDist {
			t1Pt, t2Pt = triPt, segPt
			bestDist = dist
		}
	}
	return t1Pt, t2Pt
}
