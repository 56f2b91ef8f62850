package spatialmath

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
)

// bvhLeafSize is the triangle count at or below which subdividing a node further is not worthwhile.
const bvhLeafSize = 4

// bvhNode is a node of a static bounding volume hierarchy over a mesh's triangles.
// Bounds are axis-aligned and stored in the mesh's local frame. Leaf nodes hold triangles, internal nodes hold children.
type bvhNode struct {
	min r3.Vector
	max r3.Vector

	left  *bvhNode
	right *bvhNode

	triangles []*Triangle
}

func (node *bvhNode) isLeaf() bool {
	return node.left == nil && node.right == nil
}

// buildBVH constructs a bounding volume hierarchy over the given triangles by recursively splitting them
// at the median centroid along the longest axis of their bounding box. Returns nil for an empty triangle list.
func buildBVH(triangles []*Triangle) *bvhNode {
	if len(triangles) == 0 {
		return nil
	}
	node := &bvhNode{}
	node.min, node.max = computeTrianglesAABB(triangles)
	if len(triangles) <= bvhLeafSize {
		node.triangles = triangles
		return node
	}

	sorted := make([]*Triangle, len(triangles))
	copy(sorted, triangles)
	extents := node.max.Sub(node.min)
	switch {
	case extents.X >= extents.Y && extents.X >= extents.Z:
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Centroid().X < sorted[j].Centroid().X })
	case extents.Y >= extents.Z:
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Centroid().Y < sorted[j].Centroid().Y })
	default:
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Centroid().Z < sorted[j].Centroid().Z })
	}

	mid := len(sorted) / 2
	node.left = buildBVH(sorted[:mid])
	node.right = buildBVH(sorted[mid:])
	return node
}

// computeTrianglesAABB returns the axis-aligned bounding box of the given triangles. The list must be nonempty.
func computeTrianglesAABB(triangles []*Triangle) (r3.Vector, r3.Vector) {
	min := r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, tri := range triangles {
		for _, pt := range tri.Points() {
			min.X = math.Min(min.X, pt.X)
			min.Y = math.Min(min.Y, pt.Y)
			min.Z = math.Min(min.Z, pt.Z)
			max.X = math.Max(max.X, pt.X)
			max.Y = math.Max(max.Y, pt.Y)
			max.Z = math.Max(max.Z, pt.Z)
		}
	}
	return min, max
}

// transformAABB returns a world-frame AABB guaranteed to contain the given local-frame AABB placed at the given pose.
// The returned box is the bounding box of the transformed corners, so it may be larger than the tightest fit.
func transformAABB(min, max r3.Vector, pose Pose) (r3.Vector, r3.Vector) {
	corners := []r3.Vector{
		{X: min.X, Y: min.Y, Z: min.Z},
		{X: min.X, Y: min.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: max.Y, Z: max.Z},
		{X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: max.Z},
	}
	newMin := r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	newMax := r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, corner := range corners {
		moved := Compose(pose, NewPoseFromPoint(corner)).Point()
		newMin.X = math.Min(newMin.X, moved.X)
		newMin.Y = math.Min(newMin.Y, moved.Y)
		newMin.Z = math.Min(newMin.Z, moved.Z)
		newMax.X = math.Max(newMax.X, moved.X)
		newMax.Y = math.Max(newMax.Y, moved.Y)
		newMax.Z = math.Max(newMax.Z, moved.Z)
	}
	return newMin, newMax
}

// aabbOverlap reports whether two AABBs overlap. Touching boxes are considered overlapping.
func aabbOverlap(min1, max1, min2, max2 r3.Vector) bool {
	return min1.X <= max2.X && min2.X <= max1.X &&
		min1.Y <= max2.Y && min2.Y <= max1.Y &&
		min1.Z <= max2.Z && min2.Z <= max1.Z
}

// aabbDistance returns the distance between the closest points of two AABBs, or zero if they overlap.
func aabbDistance(min1, max1, min2, max2 r3.Vector) float64 {
	if aabbOverlap(min1, max1, min2, max2) {
		return 0
	}
	dx := math.Max(0, math.Max(min2.X-max1.X, min1.X-max2.X))
	dy := math.Max(0, math.Max(min2.Y-max1.Y, min1.Y-max2.Y))
	dz := math.Max(0, math.Max(min2.Z-max1.Z, min1.Z-max2.Z))
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// bvhCollidesWithBVH reports whether any triangle of one hierarchy comes within collisionBufferMM of a triangle of the
// other, with each hierarchy placed at its given pose. The returned distance is exact between the closest triangles
// examined when no collision is found, and is otherwise a lower bound on the separation of the pruned subtrees.
func bvhCollidesWithBVH(node1 *bvhNode, pose1 Pose, node2 *bvhNode, pose2 Pose, collisionBufferMM float64) (bool, float64) {
	if node1 == nil || node2 == nil {
		return false, math.Inf(1)
	}

	min1, max1 := transformAABB(node1.min, node1.max, pose1)
	min2, max2 := transformAABB(node2.min, node2.max, pose2)
	if boxDist := aabbDistance(min1, max1, min2, max2); boxDist > collisionBufferMM {
		// The boxes bound the triangles, so the triangles are at least boxDist apart.
		return false, boxDist
	}

	if node1.isLeaf() && node2.isLeaf() {
		return leafCollidesWithLeaf(node1.triangles, pose1, node2.triangles, pose2, collisionBufferMM)
	}

	var collides bool
	var childDist float64
	dist := math.Inf(1)
	if !node1.isLeaf() {
		collides, childDist = bvhCollidesWithBVH(node1.left, pose1, node2, pose2, collisionBufferMM)
		if collides {
			return true, childDist
		}
		dist = math.Min(dist, childDist)
		collides, childDist = bvhCollidesWithBVH(node1.right, pose1, node2, pose2, collisionBufferMM)
		if collides {
			return true, childDist
		}
		return false, math.Min(dist, childDist)
	}
	collides, childDist = bvhCollidesWithBVH(node1, pose1, node2.left, pose2, collisionBufferMM)
	if collides {
		return true, childDist
	}
	dist = math.Min(dist, childDist)
	collides, childDist = bvhCollidesWithBVH(node1, pose1, node2.right, pose2, collisionBufferMM)
	if collides {
		return true, childDist
	}
	return false, math.Min(dist, childDist)
}

// leafCollidesWithLeaf does a pairwise collision check between the triangles of two leaves, placed at their poses.
// Returns the distance at which the check stopped, either the first collision found or the minimum over all pairs.
func leafCollidesWithLeaf(tris1 []*Triangle, pose1 Pose, tris2 []*Triangle, pose2 Pose, collisionBufferMM float64) (bool, float64) {
	world2 := make([]*Triangle, 0, len(tris2))
	for _, tri := range tris2 {
		world2 = append(world2, tri.Transform(pose2))
	}

	dist := math.Inf(1)
	for _, tri := range tris1 {
		world1 := tri.Transform(pose1)
		for _, other := range world2 {
			pt1, pt2 := closestPointsTriangleTriangle(world1, other)
			if pairDist := pt1.Sub(pt2).Norm(); pairDist < dist {
				dist = pairDist
				if dist <= collisionBufferMM {
					return true, dist
				}
			}
		}
	}
	return false, dist
}

// bvhDistanceFromBVH returns the minimum distance between the triangles of two hierarchies placed at their poses.
// Returns zero for hierarchies in collision and +Inf if either hierarchy is empty.
func bvhDistanceFromBVH(node1 *bvhNode, pose1 Pose, node2 *bvhNode, pose2 Pose) float64 {
	if node1 == nil || node2 == nil {
		return math.Inf(1)
	}
	return bvhDistanceBelow(node1, pose1, node2, pose2, math.Inf(1))
}

// bvhDistanceBelow is a branch and bound traversal. Subtree pairs whose bounding boxes are further apart than the best
// distance found so far cannot improve on it and are skipped.
func bvhDistanceBelow(node1 *bvhNode, pose1 Pose, node2 *bvhNode, pose2 Pose, best float64) float64 {
	min1, max1 := transformAABB(node1.min, node1.max, pose1)
	min2, max2 := transformAABB(node2.min, node2.max, pose2)
	if aabbDistance(min1, max1, min2, max2) >= best {
		return best
	}

	if node1.isLeaf() && node2.isLeaf() {
		return math.Min(best, leafDistanceFromLeaf(node1.triangles, pose1, node2.triangles, pose2))
	}

	if !node1.isLeaf() {
		best = bvhDistanceBelow(node1.left, pose1, node2, pose2, best)
		return bvhDistanceBelow(node1.right, pose1, node2, pose2, best)
	}
	best = bvhDistanceBelow(node1, pose1, node2.left, pose2, best)
	return bvhDistanceBelow(node1, pose1, node2.right, pose2, best)
}

// leafDistanceFromLeaf returns the minimum distance over all triangle pairs between two leaves placed at their poses.
func leafDistanceFromLeaf(tris1 []*Triangle, pose1 Pose, tris2 []*Triangle, pose2 Pose) float64 {
	world2 := make([]*Triangle, 0, len(tris2))
	for _, tri := range tris2 {
		world2 = append(world2, tri.Transform(pose2))
	}

	dist := math.Inf(1)
	for _, tri := range tris1 {
		world1 := tri.Transform(pose1)
		for _, other := range world2 {
			pt1, pt2 := closestPointsTriangleTriangle(world1, other)
			if pairDist := pt1.Sub(pt2).Norm(); pairDist < dist {
				dist = pairDist
			}
		}
	}
	return dist
}
