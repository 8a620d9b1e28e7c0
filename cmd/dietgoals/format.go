package dietgoals

import (
	"fmt"

	"github.com/saadjs/dietgoals/internal/model"
)

var macroNames = map[model.Macro]string{
	model.MacroCarb:    "Carbohydrate",
	model.MacroFat:     "Fat",
	model.MacroProtein: "Protein",
}

func goalLabel(g model.Goal) string {
	switch k := g.Kind.(type) {
	case model.EnergyKind:
		return "Energy"
	case model.MacroKind:
		return macroNames[k.Macro]
	case model.MicroKind:
		if info, ok := k.Nutrient.Info(); ok {
			return info.Name
		}
	}
	return g.Kind.Identity()
}

// resolvedUnit is the unit a goal's resolved bounds are expressed in.
func resolvedUnit(g model.Goal, energyUnit model.EnergyUnit) string {
	switch k := g.Kind.(type) {
	case model.EnergyKind:
		return string(energyUnit)
	case model.MacroKind:
		return "g"
	case model.MicroKind:
		if k.Unit == "" {
			return string(k.Nutrient.DefaultUnit())
		}
		return string(k.Unit)
	}
	return ""
}

func describeDerivation(g model.Goal) string {
	switch k := g.Kind.(type) {
	case model.EnergyKind:
		switch d := k.Derivation.(type) {
		case model.EnergyFixed:
			return "fixed " + string(d.Unit)
		case model.FromMaintenance:
			return fmt.Sprintf("%s %s from maintenance", d.Unit, d.Delta)
		case model.PercentFromMaintenance:
			return fmt.Sprintf("%% %s from maintenance", d.Delta)
		case model.PercentOfDietGoal:
			return "% of diet energy"
		}
	case model.MacroKind:
		return describeNutrientDerivation(k.Derivation, "g")
	case model.MicroKind:
		return describeNutrientDerivation(k.Derivation, string(k.Unit))
	}
	return ""
}

func describeNutrientDerivation(d model.NutrientDerivation, unit string) string {
	switch d := d.(type) {
	case model.NutrientFixed:
		return "fixed " + unit
	case model.PercentageOfEnergy:
		return "% of energy"
	case model.QuantityPerBodyMass:
		mass := "body weight"
		if d.BodyMass == model.BodyMassLeanMass {
			mass = "lean mass"
		}
		return fmt.Sprintf("%s per %s of %s", unit, d.Unit, mass)
	case model.QuantityPerEnergy:
		return fmt.Sprintf("%s per %s %s", unit, formatNumber(d.PerAmount), d.Unit)
	case model.QuantityPerWorkoutDuration:
		return fmt.Sprintf("%s per %s of workout", unit, d.Unit)
	}
	return ""
}
