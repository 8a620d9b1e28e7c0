package model

import (
	"sort"
	"time"
)

// GoalKind is one of EnergyKind, MacroKind or MicroKind.
type GoalKind interface {
	// Identity is the key goals are deduplicated by within a set.
	Identity() string
	isGoalKind()
}

type EnergyKind struct {
	Derivation EnergyDerivation
}

type MacroKind struct {
	Derivation NutrientDerivation
	Macro      Macro
}

type MicroKind struct {
	Derivation NutrientDerivation
	Nutrient   Nutrient
	Unit       NutrientUnit
}

func (EnergyKind) Identity() string  { return "energy" }
func (k MacroKind) Identity() string { return "macro:" + string(k.Macro) }
func (k MicroKind) Identity() string { return "micro:" + k.Nutrient.Key() }

func (EnergyKind) isGoalKind() {}
func (MacroKind) isGoalKind()  {}
func (MicroKind) isGoalKind()  {}

type Delta string

const (
	Deficit Delta = "deficit"
	Surplus Delta = "surplus"
)

// EnergyDerivation is one of EnergyFixed, FromMaintenance,
// PercentFromMaintenance or PercentOfDietGoal.
type EnergyDerivation interface {
	isEnergyDerivation()
}

type EnergyFixed struct {
	Unit EnergyUnit
}

type FromMaintenance struct {
	Unit  EnergyUnit
	Delta Delta
}

type PercentFromMaintenance struct {
	Delta Delta
}

// PercentOfDietGoal is only valid in meal goal sets.
type PercentOfDietGoal struct{}

func (EnergyFixed) isEnergyDerivation()            {}
func (FromMaintenance) isEnergyDerivation()        {}
func (PercentFromMaintenance) isEnergyDerivation() {}
func (PercentOfDietGoal) isEnergyDerivation()      {}

type BodyMass string

const (
	BodyMassWeight   BodyMass = "weight"
	BodyMassLeanMass BodyMass = "lean_mass"
)

// NutrientDerivation is one of NutrientFixed, PercentageOfEnergy,
// QuantityPerBodyMass, QuantityPerEnergy or QuantityPerWorkoutDuration.
type NutrientDerivation interface {
	isNutrientDerivation()
}

type NutrientFixed struct{}

type PercentageOfEnergy struct{}

type QuantityPerBodyMass struct {
	BodyMass BodyMass
	Unit     WeightUnit
}

type QuantityPerEnergy struct {
	PerAmount float64
	Unit      EnergyUnit
}

// QuantityPerWorkoutDuration is only valid in meal goal sets.
type QuantityPerWorkoutDuration struct {
	Unit DurationUnit
}

func (NutrientFixed) isNutrientDerivation()              {}
func (PercentageOfEnergy) isNutrientDerivation()         {}
func (QuantityPerBodyMass) isNutrientDerivation()        {}
func (QuantityPerEnergy) isNutrientDerivation()          {}
func (QuantityPerWorkoutDuration) isNutrientDerivation() {}

// Goal is a user's raw goal configuration. Bounds are stored as entered and
// may be missing, equal or inverted.
type Goal struct {
	Kind            GoalKind
	LowerBound      *float64
	UpperBound      *float64
	IsAutoGenerated bool
}

func (g Goal) IsEnergy() bool {
	_, ok := g.Kind.(EnergyKind)
	return ok
}

func (g Goal) IsMacro() bool {
	_, ok := g.Kind.(MacroKind)
	return ok
}

func (g Goal) IsMicro() bool {
	_, ok := g.Kind.(MicroKind)
	return ok
}

type GoalSetType string

const (
	GoalSetDiet GoalSetType = "diet"
	GoalSetMeal GoalSetType = "meal"
)

type GoalSet struct {
	ID   string
	Name string
	Type GoalSetType
	// DietSetID links a meal set to the diet its percent-of-diet goals use.
	DietSetID string
	Goals     []Goal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EnergyGoal returns the first energy goal in the set, or nil.
func (s GoalSet) EnergyGoal() *Goal {
	for i := range s.Goals {
		if s.Goals[i].IsEnergy() {
			g := s.Goals[i]
			return &g
		}
	}
	return nil
}

// MacroGoals returns the macro goals ordered carb, fat, protein.
func (s GoalSet) MacroGoals() []Goal {
	out := make([]Goal, 0)
	for _, g := range s.Goals {
		if g.IsMacro() {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Kind.(MacroKind).Macro.SortOrder() < out[j].Kind.(MacroKind).Macro.SortOrder()
	})
	return out
}

// MicroGoals returns the micro goals ordered by nutrient id.
func (s GoalSet) MicroGoals() []Goal {
	out := make([]Goal, 0)
	for _, g := range s.Goals {
		if g.IsMicro() {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Kind.(MicroKind).Nutrient < out[j].Kind.(MicroKind).Nutrient
	})
	return out
}
