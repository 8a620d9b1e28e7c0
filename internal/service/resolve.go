package service

import (
	"time"

	"github.com/saadjs/dietgoals/internal/model"
)

// Resolver computes effective goal bounds. The zero value of every optional
// field means the input is unknown, and any goal that needs it resolves to
// (0, false).
type Resolver struct {
	Body model.BodyContext
	// EnergyGoal is the energy goal of the set a macro or micro goal belongs to.
	EnergyGoal *model.Goal
	// DietEnergy is the resolved energy of the diet a meal goal set belongs
	// to, in Body.EnergyUnit.
	DietEnergy *float64
	// WorkoutDuration feeds QuantityPerWorkoutDuration goals.
	WorkoutDuration time.Duration
}

// ResolveLower resolves a goal's lower bound against body, using energyGoal
// for goals that depend on energy.
func ResolveLower(g model.Goal, body model.BodyContext, energyGoal *model.Goal) (float64, bool) {
	return Resolver{Body: body, EnergyGoal: energyGoal}.Lower(g)
}

func ResolveUpper(g model.Goal, body model.BodyContext, energyGoal *model.Goal) (float64, bool) {
	return Resolver{Body: body, EnergyGoal: energyGoal}.Upper(g)
}

func (r Resolver) Lower(g model.Goal) (float64, bool) {
	switch k := g.Kind.(type) {
	case model.EnergyKind:
		if g.LowerBound == nil {
			return 0, false
		}
		deficitBound, ok := LargerBound(g)
		if !ok {
			return 0, false
		}
		return r.energyValue(k.Derivation, *g.LowerBound, deficitBound)
	case model.MacroKind:
		value, ok := TrueLower(g)
		if !ok {
			return 0, false
		}
		return r.macroValue(k, value, r.energyLowerOrUpper)
	case model.MicroKind:
		value, ok := TrueLower(g)
		if !ok {
			return 0, false
		}
		return r.microValue(k, value, r.energyLowerOrUpper)
	default:
		return 0, false
	}
}

func (r Resolver) Upper(g model.Goal) (float64, bool) {
	switch k := g.Kind.(type) {
	case model.EnergyKind:
		if g.UpperBound == nil {
			return 0, false
		}
		deficitBound, ok := SmallerBound(g)
		if !ok {
			return 0, false
		}
		return r.energyValue(k.Derivation, *g.UpperBound, deficitBound)
	case model.MacroKind:
		value, ok := TrueUpper(g)
		if !ok {
			return 0, false
		}
		return r.macroValue(k, value, r.energyUpperOrLower)
	case model.MicroKind:
		value, ok := TrueUpper(g)
		if !ok {
			return 0, false
		}
		return r.microValue(k, value, r.energyUpperOrLower)
	default:
		return 0, false
	}
}

// energyValue applies an energy derivation to a raw bound. Deficits subtract
// deficitBound (the larger raw bound when resolving the lower end) while
// surpluses add the bound's own value.
func (r Resolver) energyValue(d model.EnergyDerivation, value, deficitBound float64) (float64, bool) {
	switch d := d.(type) {
	case model.EnergyFixed:
		return value, true
	case model.FromMaintenance:
		tdee, ok := r.tdee()
		if !ok {
			return 0, false
		}
		if d.Delta == model.Deficit {
			return tdee - deficitBound, true
		}
		return tdee + value, true
	case model.PercentFromMaintenance:
		tdee, ok := r.tdee()
		if !ok {
			return 0, false
		}
		if d.Delta == model.Deficit {
			return tdee - (deficitBound/100)*tdee, true
		}
		return tdee + (value/100)*tdee, true
	case model.PercentOfDietGoal:
		if r.DietEnergy == nil {
			return 0, false
		}
		return value / 100 * *r.DietEnergy, true
	default:
		return 0, false
	}
}

func (r Resolver) tdee() (float64, bool) {
	if r.Body.TDEEKcal == nil {
		return 0, false
	}
	return ConvertEnergy(*r.Body.TDEEKcal, model.EnergyUnitKcal, r.bodyEnergyUnit()), true
}

func (r Resolver) bodyEnergyUnit() model.EnergyUnit {
	if r.Body.EnergyUnit == "" {
		return model.EnergyUnitKcal
	}
	return r.Body.EnergyUnit
}

// energyLowerOrUpper returns whichever bound of the energy goal resolves,
// preferring the lower one, in kcal.
func (r Resolver) energyLowerOrUpper() (float64, bool) {
	if r.EnergyGoal == nil || !r.EnergyGoal.IsEnergy() {
		return 0, false
	}
	energy, ok := r.Lower(*r.EnergyGoal)
	if !ok {
		energy, ok = r.Upper(*r.EnergyGoal)
	}
	if !ok {
		return 0, false
	}
	return r.energyGoalKcal(energy), true
}

func (r Resolver) energyUpperOrLower() (float64, bool) {
	if r.EnergyGoal == nil || !r.EnergyGoal.IsEnergy() {
		return 0, false
	}
	energy, ok := r.Upper(*r.EnergyGoal)
	if !ok {
		energy, ok = r.Lower(*r.EnergyGoal)
	}
	if !ok {
		return 0, false
	}
	return r.energyGoalKcal(energy), true
}

// energyGoalKcal converts a resolved energy goal value to kcal. Fixed goals
// carry their own unit; every other mode resolves in the body's unit.
func (r Resolver) energyGoalKcal(energy float64) float64 {
	unit := r.bodyEnergyUnit()
	if k, ok := r.EnergyGoal.Kind.(model.EnergyKind); ok {
		if d, ok := k.Derivation.(model.EnergyFixed); ok && d.Unit != "" {
			unit = d.Unit
		}
	}
	return ToKcal(energy, unit)
}

func (r Resolver) macroValue(k model.MacroKind, value float64, energyKcal func() (float64, bool)) (float64, bool) {
	if _, ok := k.Derivation.(model.PercentageOfEnergy); !ok {
		return r.nutrientValue(k.Derivation, value, energyKcal)
	}
	kcalPerGram, ok := MacroKcalPerGram(k.Macro)
	if !ok {
		return 0, false
	}
	energy, ok := energyKcal()
	if !ok {
		return 0, false
	}
	return GramsForPercentOfEnergy(value, energy, kcalPerGram)
}

func (r Resolver) microValue(k model.MicroKind, value float64, energyKcal func() (float64, bool)) (float64, bool) {
	if _, ok := k.Derivation.(model.PercentageOfEnergy); !ok {
		return r.nutrientValue(k.Derivation, value, energyKcal)
	}
	kcalPerGram, ok := NutrientKcalPerGram(k.Nutrient)
	if !ok {
		return 0, false
	}
	energy, ok := energyKcal()
	if !ok {
		return 0, false
	}
	grams, ok := GramsForPercentOfEnergy(value, energy, kcalPerGram)
	if !ok {
		return 0, false
	}
	unit := k.Unit
	if unit == "" {
		unit = model.NutrientUnitG
	}
	return ConvertNutrientMass(grams, model.NutrientUnitG, unit)
}

func (r Resolver) nutrientValue(d model.NutrientDerivation, value float64, energyKcal func() (float64, bool)) (float64, bool) {
	switch d := d.(type) {
	case model.NutrientFixed:
		return value, true
	case model.QuantityPerBodyMass:
		var massKg *float64
		switch d.BodyMass {
		case model.BodyMassWeight:
			massKg = r.Body.WeightKg
		case model.BodyMassLeanMass:
			massKg = r.Body.LeanMassKg
		}
		if massKg == nil {
			return 0, false
		}
		return value * WeightFromKg(*massKg, d.Unit), true
	case model.QuantityPerEnergy:
		perEnergyKcal := ToKcal(d.PerAmount, d.Unit)
		if perEnergyKcal == 0 {
			return 0, false
		}
		energy, ok := energyKcal()
		if !ok {
			return 0, false
		}
		return (value * energy) / perEnergyKcal, true
	case model.QuantityPerWorkoutDuration:
		if r.WorkoutDuration <= 0 {
			return 0, false
		}
		amount := r.WorkoutDuration.Minutes()
		if d.Unit == model.DurationUnitHr {
			amount = r.WorkoutDuration.Hours()
		}
		return value * amount, true
	default:
		return 0, false
	}
}
