package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/dietgoals/internal/model"
)

type ResolvedGoal struct {
	Goal  model.Goal
	Lower *float64
	Upper *float64
}

// ResolveOptions carries inputs that only some goal sets need.
type ResolveOptions struct {
	// DietEnergy is the resolved energy of the parent diet, used by meal sets.
	DietEnergy *float64
	// WorkoutDuration is the planned or last workout length, used by meal sets.
	WorkoutDuration time.Duration
}

// ResolveGoalSet resolves every goal in the set: the energy goal first, then
// macros (carb, fat, protein) and micros in nutrient order.
func ResolveGoalSet(set model.GoalSet, body model.BodyContext, opts ResolveOptions) []ResolvedGoal {
	r := Resolver{
		Body:            body,
		EnergyGoal:      set.EnergyGoal(),
		DietEnergy:      opts.DietEnergy,
		WorkoutDuration: opts.WorkoutDuration,
	}
	ordered := make([]model.Goal, 0, len(set.Goals))
	if r.EnergyGoal != nil {
		ordered = append(ordered, *r.EnergyGoal)
	}
	ordered = append(ordered, set.MacroGoals()...)
	ordered = append(ordered, set.MicroGoals()...)

	out := make([]ResolvedGoal, 0, len(ordered))
	for _, g := range ordered {
		out = append(out, resolveGoal(r, g))
	}
	return out
}

// ResolveEnergy returns the set's energy figure the way macro goals see it:
// the lower bound if it resolves, otherwise the upper bound.
func ResolveEnergy(set model.GoalSet, body model.BodyContext, opts ResolveOptions) (float64, bool) {
	energyGoal := set.EnergyGoal()
	if energyGoal == nil {
		return 0, false
	}
	r := Resolver{Body: body, DietEnergy: opts.DietEnergy}
	if v, ok := r.Lower(*energyGoal); ok {
		return v, true
	}
	return r.Upper(*energyGoal)
}

func resolveGoal(r Resolver, g model.Goal) ResolvedGoal {
	out := ResolvedGoal{Goal: g}
	if v, ok := r.Lower(g); ok {
		out.Lower = &v
	}
	if v, ok := r.Upper(g); ok {
		out.Upper = &v
	}
	return out
}

// NewGoalSet builds a goal set, rejecting duplicate goal kinds and
// derivations that do not belong to the set type.
func NewGoalSet(name string, setType model.GoalSetType, goals []model.Goal) (model.GoalSet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.GoalSet{}, fmt.Errorf("goal set name is required")
	}
	if setType == "" {
		setType = model.GoalSetDiet
	}
	if setType != model.GoalSetDiet && setType != model.GoalSetMeal {
		return model.GoalSet{}, fmt.Errorf("invalid goal set type %q (use diet or meal)", setType)
	}
	seen := map[string]bool{}
	for _, g := range goals {
		if err := ValidateGoal(g, setType); err != nil {
			return model.GoalSet{}, err
		}
		id := g.Kind.Identity()
		if seen[id] {
			return model.GoalSet{}, fmt.Errorf("duplicate goal %q in set", id)
		}
		seen[id] = true
	}
	return model.GoalSet{Name: name, Type: setType, Goals: append([]model.Goal(nil), goals...)}, nil
}

// ValidateGoal checks the raw configuration of a goal. It does not require
// bounds to be set or ordered.
func ValidateGoal(g model.Goal, setType model.GoalSetType) error {
	if g.Kind == nil {
		return fmt.Errorf("goal kind is required")
	}
	if g.LowerBound != nil {
		if err := validateNonNegativeFloat("lower bound", *g.LowerBound); err != nil {
			return err
		}
	}
	if g.UpperBound != nil {
		if err := validateNonNegativeFloat("upper bound", *g.UpperBound); err != nil {
			return err
		}
	}
	switch k := g.Kind.(type) {
	case model.EnergyKind:
		if k.Derivation == nil {
			return fmt.Errorf("energy goal derivation is required")
		}
		_, mealOnly := k.Derivation.(model.PercentOfDietGoal)
		if mealOnly && setType != model.GoalSetMeal {
			return fmt.Errorf("percent of diet goal is only valid in meal goal sets")
		}
		if !mealOnly && setType == model.GoalSetMeal {
			if _, fixed := k.Derivation.(model.EnergyFixed); !fixed {
				return fmt.Errorf("meal energy goals must be fixed or a percent of the diet goal")
			}
		}
	case model.MacroKind:
		if k.Macro.SortOrder() == 0 {
			return fmt.Errorf("invalid macro %q", k.Macro)
		}
		return validateNutrientDerivation(k.Derivation, setType)
	case model.MicroKind:
		if _, ok := k.Nutrient.Info(); !ok {
			return fmt.Errorf("invalid nutrient id %d", k.Nutrient)
		}
		if k.Unit != "" && !NutrientSupportsUnit(k.Nutrient, k.Unit) {
			return fmt.Errorf("%s is not measured in %s", k.Nutrient.Key(), k.Unit)
		}
		return validateNutrientDerivation(k.Derivation, setType)
	}
	return nil
}

func validateNutrientDerivation(d model.NutrientDerivation, setType model.GoalSetType) error {
	switch d := d.(type) {
	case nil:
		return fmt.Errorf("nutrient goal derivation is required")
	case model.QuantityPerEnergy:
		if d.PerAmount <= 0 {
			return fmt.Errorf("per-energy amount must be > 0")
		}
	case model.QuantityPerWorkoutDuration:
		if setType != model.GoalSetMeal {
			return fmt.Errorf("quantity per workout duration is only valid in meal goal sets")
		}
	case model.QuantityPerBodyMass:
		if setType == model.GoalSetMeal {
			return fmt.Errorf("quantity per body mass is only valid in diet goal sets")
		}
	}
	return nil
}
