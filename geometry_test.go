package collisioncheck

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/fieldmotion/collisioncheck/spatialmath"
	"github.com/fieldmotion/collisioncheck/utils"
)

func TestMeshDataFromMesh(t *testing.T) {
	triangle := spatialmath.NewTriangle(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1})
	mesh := spatialmath.NewMesh(spatialmath.NewPoseFromPoint(r3.Vector{X: 5}), []*spatialmath.Triangle{triangle}, "offset")

	data := MeshDataFromMesh(mesh)
	test.That(t, data, test.ShouldResemble, MeshData{{X: 5}, {X: 6}, {X: 5, Y: 1}})
}

func TestMeshDataFromPLYFile(t *testing.T) {
	mesh, err := spatialmath.NewMeshFromPLYFile(utils.ResolveFile("spatialmath/data/simple.ply"))
	test.That(t, err, test.ShouldBeNil)

	data := MeshDataFromMesh(mesh)
	test.That(t, data, test.ShouldResemble, MeshData{
		{}, {X: 1}, {Y: 1},
		{X: 1}, {X: 1, Y: 1}, {Y: 1},
	})

	// The flattened data round-trips through an engine as a one-part robot.
	checker := newTestChecker(t, GeometrySpecification{
		Obstacles: []MeshData{wallData(3)},
		Robot:     []MeshData{data},
	}, Config{})
	test.That(t, checker.Clearance(poseState(r3.Vector{})), test.ShouldAlmostEqual, 2.)
}
