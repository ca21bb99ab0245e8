package service

import (
	"fmt"
	"slices"
)

// Measurement axes an exercise can carry.
const (
	MeasurementReps = "reps"
	MeasurementTime = "time"
	MeasurementSets = "sets"
)

// Goal kinds. Each kind is bound to one measurement axis, so invalid
// combinations (a max_time goal on pull ups) are rejected at creation.
const (
	GoalKindMaxReps       = "max_reps"
	GoalKindTotalReps     = "total_reps"
	GoalKindMaxTime       = "max_time"
	GoalKindTotalTime     = "total_time"
	GoalKindSetsCompleted = "sets_completed"
)

// ExerciseSpec describes one entry of the fixed exercise catalog.
type ExerciseSpec struct {
	Description  string
	Measurements []string
	ValidGoals   []string
}

// GoalKindSpec describes a goal kind and the axis it measures.
type GoalKindSpec struct {
	Description string
	Unit        string
	Measurement string
}

// FamilyMembers is the default roster shown in forms and filters. It does
// not restrict writes; the family can grow without a code change.
var FamilyMembers = []string{"Dad", "Mum", "Son"}

// ExerciseTypes is the fixed exercise catalog.
var ExerciseTypes = map[string]ExerciseSpec{
	"pull_ups": {
		Description:  "Full range of motion pull ups",
		Measurements: []string{MeasurementReps, MeasurementSets},
		ValidGoals:   []string{GoalKindMaxReps, GoalKindTotalReps, GoalKindSetsCompleted},
	},
	"push_ups": {
		Description:  "Standard push ups",
		Measurements: []string{MeasurementReps, MeasurementSets},
		ValidGoals:   []string{GoalKindMaxReps, GoalKindTotalReps, GoalKindSetsCompleted},
	},
	"dips": {
		Description:  "Full range dips",
		Measurements: []string{MeasurementReps, MeasurementSets},
		ValidGoals:   []string{GoalKindMaxReps, GoalKindTotalReps, GoalKindSetsCompleted},
	},
	"hangs": {
		Description:  "Dead hangs from pull up bar (seconds)",
		Measurements: []string{MeasurementTime, MeasurementSets},
		ValidGoals:   []string{GoalKindMaxTime, GoalKindTotalTime, GoalKindSetsCompleted},
	},
}

// GoalKinds maps every goal kind to its spec.
var GoalKinds = map[string]GoalKindSpec{
	GoalKindMaxReps:       {Description: "Maximum repetitions in a single set", Unit: "reps", Measurement: MeasurementReps},
	GoalKindTotalReps:     {Description: "Total repetitions in a session", Unit: "reps", Measurement: MeasurementReps},
	GoalKindMaxTime:       {Description: "Maximum time in a single set", Unit: "seconds", Measurement: MeasurementTime},
	GoalKindTotalTime:     {Description: "Total time in a session", Unit: "seconds", Measurement: MeasurementTime},
	GoalKindSetsCompleted: {Description: "Number of sets completed", Unit: "sets", Measurement: MeasurementSets},
}

// ExerciseTypeNames returns the catalog keys in stable order.
func ExerciseTypeNames() []string {
	names := make([]string, 0, len(ExerciseTypes))
	for name := range ExerciseTypes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func exerciseHasMeasurement(spec ExerciseSpec, measurement string) bool {
	return slices.Contains(spec.Measurements, measurement)
}

func validateExerciseType(exerciseType string) (ExerciseSpec, error) {
	spec, ok := ExerciseTypes[exerciseType]
	if !ok {
		return ExerciseSpec{}, fmt.Errorf("%w: %s", ErrUnknownExerciseType, exerciseType)
	}
	return spec, nil
}

func validateGoalKind(exerciseType, kind string) error {
	spec, err := validateExerciseType(exerciseType)
	if err != nil {
		return err
	}
	if _, ok := GoalKinds[kind]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidGoalKind, kind)
	}
	if !slices.Contains(spec.ValidGoals, kind) {
		return fmt.Errorf("%w: %s not valid for %s", ErrInvalidGoalKind, kind, exerciseType)
	}
	return nil
}
