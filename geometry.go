package collisioncheck

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/fieldmotion/collisioncheck/spatialmath"
)

// MeshData is a triangle soup: a flat list of vertices where each consecutive triple forms one triangle.
type MeshData []r3.Vector

// triangles converts the mesh data into triangles, recentering every vertex by subtracting shift.
// The vertex count must be a multiple of 3.
func (md MeshData) triangles(shift r3.Vector) ([]*spatialmath.Triangle, error) {
	if len(md)%3 != 0 {
		return nil, errors.Errorf("mesh has %d points, want a multiple of 3", len(md))
	}
	triangles := make([]*spatialmath.Triangle, 0, len(md)/3)
	for i := 0; i < len(md); i += 3 {
		triangles = append(triangles, spatialmath.NewTriangle(
			md[i].Sub(shift),
			md[i+1].Sub(shift),
			md[i+2].Sub(shift),
		))
	}
	return triangles, nil
}

// GeometrySpecification bundles the mesh sources an engine is built from. It is consumed exactly once
// by NewChecker; triangle data is copied into the engine's models, so the caller may reuse the slices.
type GeometrySpecification struct {
	// Obstacles are merged into the single static environment model. Each source is recentered by the
	// shift at the same index of ObstacleShifts, when one is present.
	Obstacles      []MeshData
	ObstacleShifts []r3.Vector

	// Robot holds one mesh source per robot part, in part index order, recentered like the obstacles.
	Robot       []MeshData
	RobotShifts []r3.Vector
}

// shiftAt returns the shift at index i, or the zero vector when fewer shifts than sources were given.
func shiftAt(shifts []r3.Vector, i int) r3.Vector {
	if i < len(shifts) {
		return shifts[i]
	}
	return r3.Vector{}
}

// MeshDataFromMesh flattens a mesh into MeshData, with vertices posed into the world frame. It is the
// bridge from file loaders such as spatialmath.NewMeshFromPLYFile to a GeometrySpecification.
func MeshDataFromMesh(m *spatialmath.Mesh) MeshData {
	data := make(MeshData, 0, len(m.Triangles())*3)
	for _, tri := range m.Triangles() {
		data = append(data, tri.Transform(m.Pose()).Points()...)
	}
	return data
}
