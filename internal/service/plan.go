package service

import (
	"database/sql"
	"time"

	"github.com/saadjs/dietgoals/internal/logger"
	"github.com/saadjs/dietgoals/internal/model"
)

type ResolveRequest struct {
	// Date selects the body measurement in effect (YYYY-MM-DD, empty for today).
	Date string
	// Workout overrides the latest logged workout for meal sets.
	Workout *time.Duration
}

// GoalPlan is a stored goal set resolved against the body state for a date.
type GoalPlan struct {
	Set             model.GoalSet
	Diet            *model.GoalSet
	Body            model.BodyContext
	Estimate        *TDEEEstimate
	DietEnergy      *float64
	WorkoutDuration time.Duration
	Goals           []ResolvedGoal
}

// ResolveStoredGoalSet loads a goal set and resolves it. For meal sets the
// linked diet's energy and a workout duration are supplied when available.
func ResolveStoredGoalSet(db *sql.DB, ref string, req ResolveRequest) (GoalPlan, error) {
	set, err := mustGetGoalSet(db, ref)
	if err != nil {
		return GoalPlan{}, err
	}
	body, estimate, err := BuildBodyContext(db, req.Date)
	if err != nil {
		return GoalPlan{}, err
	}
	plan := GoalPlan{Set: *set, Body: body, Estimate: estimate}

	if set.Type == model.GoalSetMeal {
		diet, err := DietSetFor(db, *set)
		if err != nil {
			return GoalPlan{}, err
		}
		if diet != nil {
			plan.Diet = diet
			if energy, ok := ResolveEnergy(*diet, body, ResolveOptions{}); ok {
				plan.DietEnergy = &energy
			} else {
				logger.Debug("diet energy unresolved", "diet", diet.Name)
			}
		}
		if req.Workout != nil {
			plan.WorkoutDuration = *req.Workout
		} else {
			d, err := LatestWorkoutDuration(db, req.Date)
			if err != nil {
				return GoalPlan{}, err
			}
			plan.WorkoutDuration = d
		}
	}

	plan.Goals = ResolveGoalSet(*set, body, ResolveOptions{
		DietEnergy:      plan.DietEnergy,
		WorkoutDuration: plan.WorkoutDuration,
	})
	return plan, nil
}
