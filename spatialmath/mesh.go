package spatialmath

import (
	"math"
	"os"

	"github.com/chenzhekl/goply"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// defaultCollisionBufferMM is the distance at or below which two geometries are considered to be in collision.
const defaultCollisionBufferMM = 1e-8

// Mesh is a set of triangles at a pose. Triangle points are in the frame of the mesh, like the corners of a box.
// A Mesh is immutable once created. Transform returns a new Mesh sharing the underlying triangles and acceleration
// structure, so posed copies are cheap to create and any number of them may be queried concurrently.
type Mesh struct {
	pose      Pose
	triangles []*Triangle
	label     string

	bvh *bvhNode
	// boundingSphereR is the radius of a sphere centered at the mesh's frame origin containing all of its points.
	boundingSphereR float64
}

// NewMesh creates a mesh from the given triangles. The triangles are indexed for collision and distance checking
// at construction, after which they must not be modified.
func NewMesh(pose Pose, triangles []*Triangle, label string) *Mesh {
	radius := 0.
	for _, tri := range triangles {
		for _, pt := range tri.Points() {
			radius = math.Max(radius, pt.Norm())
		}
	}
	return &Mesh{
		pose:            pose,
		triangles:       triangles,
		label:           label,
		bvh:             buildBVH(triangles),
		boundingSphereR: radius,
	}
}

// NewMeshFromPLYFile creates a mesh at the zero pose from the contents of the PLY file at the given path.
// Vertex coordinates are expected to be in mm, and all faces must be triangles.
func NewMeshFromPLYFile(path string) (*Mesh, error) {
	//nolint:gosec
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(file.Close)

	ply := goply.New(file)
	vertices := make([]r3.Vector, 0, len(ply.Elements("vertex")))
	for i, vertex := range ply.Elements("vertex") {
		x, err := plyFloat(vertex["x"])
		if err != nil {
			return nil, errors.Wrapf(err, "reading x of vertex %d", i)
		}
		y, err := plyFloat(vertex["y"])
		if err != nil {
			return nil, errors.Wrapf(err, "reading y of vertex %d", i)
		}
		z, err := plyFloat(vertex["z"])
		if err != nil {
			return nil, errors.Wrapf(err, "reading z of vertex %d", i)
		}
		vertices = append(vertices, r3.Vector{X: x, Y: y, Z: z})
	}

	triangles := make([]*Triangle, 0, len(ply.Elements("face")))
	for i, face := range ply.Elements("face") {
		indices, ok := face["vertex_indices"].([]interface{})
		if !ok {
			return nil, errors.Errorf("face %d has no vertex_indices list", i)
		}
		if len(indices) != 3 {
			return nil, errors.Errorf("face %d has %d vertices, only triangular faces are supported", i, len(indices))
		}
		pts := make([]r3.Vector, 0, 3)
		for _, rawIndex := range indices {
			index, err := plyInt(rawIndex)
			if err != nil {
				return nil, errors.Wrapf(err, "reading vertex index of face %d", i)
			}
			if index < 0 || index >= len(vertices) {
				return nil, errors.Errorf("face %d refers to vertex %d, file has %d vertices", i, index, len(vertices))
			}
			pts = append(pts, vertices[index])
		}
		triangles = append(triangles, NewTriangle(pts[0], pts[1], pts[2]))
	}
	return NewMesh(NewZeroPose(), triangles, path), nil
}

// plyFloat converts a property value parsed from a PLY file into a float64. The parsed type depends on the
// type the file declared for the property.
func plyFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		return 0, errors.Errorf("expected a numeric property, got %T", value)
	}
}

func plyInt(value interface{}) (int, error) {
	parsed, err := plyFloat(value)
	if err != nil {
		return 0, err
	}
	return int(parsed), nil
}

// Label returns the mesh's label.
func (m *Mesh) Label() string {
	return m.label
}

// Pose returns the pose of the mesh.
func (m *Mesh) Pose() Pose {
	return m.pose
}

// Triangles returns the triangles associated with the mesh, in the frame of the mesh.
func (m *Mesh) Triangles() []*Triangle {
	return m.triangles
}

// Transform premultiplies the mesh's pose with a transform, allowing the mesh to be moved in space.
// The receiver is unchanged and the returned mesh shares its triangles and acceleration structure.
func (m *Mesh) Transform(pose Pose) *Mesh {
	// Triangle points are in the frame of the mesh, so no need to transform them
	return &Mesh{
		pose:            Compose(pose, m.pose),
		triangles:       m.triangles,
		label:           m.label,
		bvh:             m.bvh,
		boundingSphereR: m.boundingSphereR,
	}
}

// CollidesWith returns whether any triangle of this mesh comes within collisionBufferMM of a triangle of the other.
func (m *Mesh) CollidesWith(other *Mesh, collisionBufferMM float64) bool {
	return m.collidesWithMesh(other, collisionBufferMM)
}

// DistanceFrom returns the minimum distance between this mesh and the other. Meshes in collision have a distance
// of zero, and the distance from a mesh with no triangles is +Inf.
func (m *Mesh) DistanceFrom(other *Mesh) float64 {
	return m.distanceFromMesh(other)
}

// collidesWithMesh checks the triangle hierarchies of both meshes against each other at their current poses.
func (m *Mesh) collidesWithMesh(other *Mesh, collisionBufferMM float64) bool {
	collides, _ := bvhCollidesWithBVH(m.bvh, m.pose, other.bvh, other.pose, collisionBufferMM)
	return collides
}

func (m *Mesh) distanceFromMesh(other *Mesh) float64 {
	return bvhDistanceFromBVH(m.bvh, m.pose, other.bvh, other.pose)
}

// ToPoints converts a mesh to a slice of points in the world frame. As meshes have no volume, the resolution
// parameter is ignored and the vertices of the mesh's triangles plus their centroids are returned,
// with vertices shared between triangles appearing once.
func (m *Mesh) ToPoints(resolution float64) []r3.Vector {
	points := make([]r3.Vector, 0, len(m.triangles)*4)
	seen := make(map[r3.Vector]bool, len(m.triangles)*3)
	for _, tri := range m.triangles {
		world := tri.Transform(m.pose)
		for _, pt := range world.Points() {
			if !seen[pt] {
				seen[pt] = true
				points = append(points, pt)
			}
		}
		points = append(points, world.Centroid())
	}
	return points
}
