package collisioncheck

import "github.com/fieldmotion/collisioncheck/spatialmath"

// State is one full planner state. Its representation belongs to the planning application; the engine
// only ever hands it to the StateExtractor.
type State = any

// Substate is the portion of a State that determines the pose of a single robot part.
type Substate = any

// StateExtractor slices planner states into per-part substates and maps those to world frame poses.
// Implementations must not depend on or mutate engine state, as the engine calls them from any number
// of goroutines at once.
type StateExtractor interface {
	// Substate returns the portion of the given state that poses the given robot part.
	Substate(state State, part int) Substate
	// PoseOf returns the world frame pose of the part a substate describes.
	PoseOf(substate Substate) spatialmath.Pose
}

// PoseSliceExtractor reads states that are []spatialmath.Pose slices holding one world pose per robot
// part, the natural layout for free-flying rigid body planning.
type PoseSliceExtractor struct{}

// Substate returns the pose at the part's index within the state.
func (PoseSliceExtractor) Substate(state State, part int) Substate {
	return state.([]spatialmath.Pose)[part]
}

// PoseOf returns the substate itself, which already is the part's pose.
func (PoseSliceExtractor) PoseOf(substate Substate) spatialmath.Pose {
	return substate.(spatialmath.Pose)
}
