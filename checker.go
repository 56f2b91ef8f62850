// Package collisioncheck answers the geometric feasibility queries beneath a sampling based motion
// planner. A Checker holds triangle mesh models of a multi-part robot and of its static environment.
// It reports whether a single state is collision free, whether the sweep between two states stays
// collision free along with the earliest time of contact when it does not, and the minimum distance
// from the robot to the environment. Queries never mutate the engine, so any number of goroutines
// may call them concurrently.
package collisioncheck

import (
	"context"
	"fmt"
	"math"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/fieldmotion/collisioncheck/spatialmath"
	"github.com/fieldmotion/collisioncheck/utils"
)

// DefaultCollisionBufferMM is the distance in millimeters below which two meshes count as colliding
// when Config.CollisionBuffer is left zero.
const DefaultCollisionBufferMM = 1e-8

// Config tunes a Checker. The zero value is valid: self-collision checking off, the default
// collision buffer, and the native BVH backend.
type Config struct {
	// SelfCollision enables checking robot parts against each other in addition to the environment.
	SelfCollision bool
	// CollisionBuffer is the distance in millimeters below which meshes count as colliding. Zero
	// selects DefaultCollisionBufferMM; negative values are rejected. Ignored when Backend is set.
	CollisionBuffer float64
	// Backend overrides the native BVH backend for primitive mesh queries.
	Backend Backend
}

// Checker is the collision oracle for one robot and one environment. All fields are immutable after
// NewChecker returns.
type Checker struct {
	environment   *spatialmath.Mesh
	parts         []*spatialmath.Mesh
	extractor     StateExtractor
	backend       Backend
	selfCollision bool
	logger        golog.Logger
}

// NewChecker builds the mesh models described by the geometry specification and returns an engine
// ready for queries. The specification is consumed once; part models are built in parallel. A nil
// logger falls back to the global logger.
func NewChecker(
	geometry GeometrySpecification,
	extractor StateExtractor,
	cfg Config,
	logger golog.Logger,
) (*Checker, error) {
	if extractor == nil {
		return nil, errors.New("state extractor is required")
	}
	if logger == nil {
		logger = golog.Global()
	}
	if cfg.CollisionBuffer < 0 {
		return nil, errors.New("collision buffer can't be negative")
	}
	backend := cfg.Backend
	if backend == nil {
		buffer := cfg.CollisionBuffer
		if buffer == 0 {
			buffer = DefaultCollisionBufferMM
		}
		backend = NewBVHBackend(buffer)
	}
	logger.Debugf("using %s collision backend", backend.Name())

	var envTriangles []*spatialmath.Triangle
	for i, source := range geometry.Obstacles {
		triangles, err := source.triangles(shiftAt(geometry.ObstacleShifts, i))
		if err != nil {
			return nil, errors.Wrapf(err, "building environment model from obstacle %d", i)
		}
		envTriangles = append(envTriangles, triangles...)
	}
	environment := spatialmath.NewMesh(spatialmath.NewZeroPose(), envTriangles, "environment")
	if len(environment.Triangles()) == 0 {
		logger.Info("Empty environment loaded")
	} else {
		logger.Infof("Loaded environment model with %d triangles.", len(environment.Triangles()))
	}

	parts := make([]*spatialmath.Mesh, len(geometry.Robot))
	buildFuncs := make([]utils.SimpleFunc, 0, len(geometry.Robot))
	for i, source := range geometry.Robot {
		buildFuncs = append(buildFuncs, func(ctx context.Context) error {
			triangles, err := source.triangles(shiftAt(geometry.RobotShifts, i))
			if err != nil {
				return errors.Wrapf(err, "building model for robot part %d", i)
			}
			parts[i] = spatialmath.NewMesh(spatialmath.NewZeroPose(), triangles, fmt.Sprintf("robot_part_%d", i))
			return nil
		})
	}
	if _, err := utils.RunInParallel(context.Background(), buildFuncs); err != nil {
		return nil, err
	}
	for _, part := range parts {
		logger.Infof("Robot piece with %d triangles loaded", len(part.Triangles()))
	}

	return &Checker{
		environment:   environment,
		parts:         parts,
		extractor:     extractor,
		backend:       backend,
		selfCollision: cfg.SelfCollision,
		logger:        logger,
	}, nil
}

// PartCount returns the number of robot part models.
func (c *Checker) PartCount() int {
	return len(c.parts)
}

// poseOf fetches the world pose of one part at the given state through the extractor.
func (c *Checker) poseOf(state State, part int) spatialmath.Pose {
	return c.extractor.PoseOf(c.extractor.Substate(state, part))
}

// posedParts returns views of every part model posed at the given state.
func (c *Checker) posedParts(state State) []*spatialmath.Mesh {
	posed := make([]*spatialmath.Mesh, len(c.parts))
	for i, part := range c.parts {
		posed[i] = part.Transform(c.poseOf(state, i))
	}
	return posed
}

// StateValid reports whether the state keeps every robot part clear of the environment and, when
// self-collision checking is enabled, clear of every other part.
func (c *Checker) StateValid(state State) bool {
	checkEnvironment := len(c.environment.Triangles()) > 0
	if !checkEnvironment && !c.selfCollision {
		return true
	}
	posed := c.posedParts(state)
	if checkEnvironment {
		for _, part := range posed {
			if c.backend.Collides(part, c.environment) {
				return false
			}
		}
	}
	if c.selfCollision {
		for i := 0; i < len(posed); i++ {
			for j := i + 1; j < len(posed); j++ {
				if c.backend.Collides(posed[i], posed[j]) {
					return false
				}
			}
		}
	}
	return true
}

// MotionValid reports whether every robot part stays collision free while moving from one state to
// the other, each part interpolating its poses as a rigid motion. Valid motions return a collision
// time of exactly 1.0. Invalid motions return the earliest time of contact across all tested pairs,
// in [0, 1).
func (c *Checker) MotionValid(from, to State) (bool, float64) {
	checkEnvironment := len(c.environment.Triangles()) > 0
	if !checkEnvironment && !c.selfCollision {
		return true, 1.0
	}
	motions := make([]*spatialmath.Motion, len(c.parts))
	for i := range c.parts {
		motions[i] = spatialmath.NewMotion(c.poseOf(from, i), c.poseOf(to, i))
	}

	valid := true
	collisionTime := 1.0
	if checkEnvironment {
		still := spatialmath.NewMotion(spatialmath.NewZeroPose(), spatialmath.NewZeroPose())
		for i, part := range c.parts {
			collides, t := c.backend.CollidesMoving(part, motions[i], c.environment, still)
			if collides {
				valid = false
				collisionTime = math.Min(collisionTime, t)
			}
		}
	}
	if c.selfCollision {
		for i := 0; i < len(c.parts); i++ {
			for j := i + 1; j < len(c.parts); j++ {
				collides, t := c.backend.CollidesMoving(c.parts[i], motions[i], c.parts[j], motions[j])
				if collides {
					valid = false
					collisionTime = math.Min(collisionTime, t)
				}
			}
		}
	}
	return valid, collisionTime
}

// Clearance returns the minimum distance from any robot part to the environment at the given state.
// It is +Inf when the environment has no triangles and zero when any part touches it.
func (c *Checker) Clearance(state State) float64 {
	if len(c.environment.Triangles()) == 0 {
		return math.Inf(1)
	}
	posed := c.posedParts(state)
	switch len(posed) {
	case 0:
		return math.Inf(1)
	case 1:
		return c.backend.Distance(posed[0], c.environment)
	}

	distFuncs := make([]utils.FloatFunc, 0, len(posed))
	for _, part := range posed {
		distFuncs = append(distFuncs, func(ctx context.Context) (float64, error) {
			return c.backend.Distance(part, c.environment), nil
		})
	}
	_, distances, err := utils.GetInParallel(context.Background(), distFuncs)
	if err != nil {
		c.logger.Errorw("clearance workers failed", "error", err)
	}
	clearance := math.Inf(1)
	for _, d := range distances {
		clearance = math.Min(clearance, d)
	}
	return clearance
}
