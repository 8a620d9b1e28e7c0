package service

import (
	"fmt"
	"strings"

	"github.com/saadjs/dietgoals/internal/model"
)

// EncodeGoal flattens a goal into its storable definition.
func EncodeGoal(g model.Goal) (model.GoalDefinition, error) {
	def := model.GoalDefinition{
		Lower:         g.LowerBound,
		Upper:         g.UpperBound,
		AutoGenerated: g.IsAutoGenerated,
	}
	switch k := g.Kind.(type) {
	case model.EnergyKind:
		def.Kind = model.KindEnergy
		switch d := k.Derivation.(type) {
		case model.EnergyFixed:
			def.Derivation = model.DerivationFixed
			def.Unit = string(d.Unit)
		case model.FromMaintenance:
			def.Derivation = model.DerivationFromMaintenance
			def.Unit = string(d.Unit)
			def.Delta = string(d.Delta)
		case model.PercentFromMaintenance:
			def.Derivation = model.DerivationPercentFromMaintenance
			def.Delta = string(d.Delta)
		case model.PercentOfDietGoal:
			def.Derivation = model.DerivationPercentOfDietGoal
		default:
			return model.GoalDefinition{}, fmt.Errorf("unsupported energy derivation %T", k.Derivation)
		}
		return def, nil
	case model.MacroKind:
		def.Kind = model.KindMacro
		def.Macro = string(k.Macro)
		return def, encodeNutrientDerivation(&def, k.Derivation)
	case model.MicroKind:
		def.Kind = model.KindMicro
		def.Nutrient = k.Nutrient.Key()
		def.Unit = string(k.Unit)
		return def, encodeNutrientDerivation(&def, k.Derivation)
	default:
		return model.GoalDefinition{}, fmt.Errorf("unsupported goal kind %T", g.Kind)
	}
}

func encodeNutrientDerivation(def *model.GoalDefinition, d model.NutrientDerivation) error {
	switch d := d.(type) {
	case model.NutrientFixed:
		def.Derivation = model.DerivationFixed
	case model.PercentageOfEnergy:
		def.Derivation = model.DerivationPercentageOfEnergy
	case model.QuantityPerBodyMass:
		def.Derivation = model.DerivationPerBodyMass
		def.BodyMass = string(d.BodyMass)
		def.PerUnit = string(d.Unit)
	case model.QuantityPerEnergy:
		def.Derivation = model.DerivationPerEnergy
		def.PerAmount = floatPtr(d.PerAmount)
		def.PerUnit = string(d.Unit)
	case model.QuantityPerWorkoutDuration:
		def.Derivation = model.DerivationPerWorkoutDuration
		def.PerUnit = string(d.Unit)
	default:
		return fmt.Errorf("unsupported nutrient derivation %T", d)
	}
	return nil
}

// DecodeGoal rebuilds a goal from its definition, normalizing unit spellings.
func DecodeGoal(def model.GoalDefinition) (model.Goal, error) {
	g := model.Goal{
		LowerBound:      def.Lower,
		UpperBound:      def.Upper,
		IsAutoGenerated: def.AutoGenerated,
	}
	derivation := normalizeName(def.Derivation)
	if derivation == "" {
		derivation = model.DerivationFixed
	}
	switch normalizeName(def.Kind) {
	case model.KindEnergy:
		d, err := decodeEnergyDerivation(derivation, def)
		if err != nil {
			return model.Goal{}, err
		}
		g.Kind = model.EnergyKind{Derivation: d}
	case model.KindMacro:
		macro, err := ParseMacro(def.Macro)
		if err != nil {
			return model.Goal{}, err
		}
		d, err := decodeNutrientDerivation(derivation, def)
		if err != nil {
			return model.Goal{}, err
		}
		g.Kind = model.MacroKind{Derivation: d, Macro: macro}
	case model.KindMicro:
		nutrient, err := ParseNutrient(def.Nutrient)
		if err != nil {
			return model.Goal{}, err
		}
		unit := nutrient.DefaultUnit()
		if strings.TrimSpace(def.Unit) != "" {
			parsed, err := ParseNutrientUnit(def.Unit)
			if err != nil {
				return model.Goal{}, err
			}
			unit = parsed
		}
		d, err := decodeNutrientDerivation(derivation, def)
		if err != nil {
			return model.Goal{}, err
		}
		g.Kind = model.MicroKind{Derivation: d, Nutrient: nutrient, Unit: unit}
	default:
		return model.Goal{}, fmt.Errorf("invalid goal kind %q (use energy, macro or micro)", def.Kind)
	}
	return g, nil
}

func decodeEnergyDerivation(derivation string, def model.GoalDefinition) (model.EnergyDerivation, error) {
	switch derivation {
	case model.DerivationFixed:
		unit, err := ParseEnergyUnit(def.Unit)
		if err != nil {
			return nil, err
		}
		return model.EnergyFixed{Unit: unit}, nil
	case model.DerivationFromMaintenance:
		unit, err := ParseEnergyUnit(def.Unit)
		if err != nil {
			return nil, err
		}
		delta, err := parseDelta(def.Delta)
		if err != nil {
			return nil, err
		}
		return model.FromMaintenance{Unit: unit, Delta: delta}, nil
	case model.DerivationPercentFromMaintenance:
		delta, err := parseDelta(def.Delta)
		if err != nil {
			return nil, err
		}
		return model.PercentFromMaintenance{Delta: delta}, nil
	case model.DerivationPercentOfDietGoal:
		return model.PercentOfDietGoal{}, nil
	default:
		return nil, fmt.Errorf("invalid energy derivation %q", derivation)
	}
}

func decodeNutrientDerivation(derivation string, def model.GoalDefinition) (model.NutrientDerivation, error) {
	switch derivation {
	case model.DerivationFixed:
		return model.NutrientFixed{}, nil
	case model.DerivationPercentageOfEnergy:
		return model.PercentageOfEnergy{}, nil
	case model.DerivationPerBodyMass:
		bodyMass := model.BodyMass(normalizeKey(def.BodyMass))
		if bodyMass == "" {
			bodyMass = model.BodyMassWeight
		}
		if bodyMass != model.BodyMassWeight && bodyMass != model.BodyMassLeanMass {
			return nil, fmt.Errorf("invalid body mass %q (use weight or lean_mass)", def.BodyMass)
		}
		unit, err := ParseWeightUnit(def.PerUnit)
		if err != nil {
			return nil, err
		}
		return model.QuantityPerBodyMass{BodyMass: bodyMass, Unit: unit}, nil
	case model.DerivationPerEnergy:
		if def.PerAmount == nil || *def.PerAmount <= 0 {
			return nil, fmt.Errorf("per-energy amount must be > 0")
		}
		unit, err := ParseEnergyUnit(def.PerUnit)
		if err != nil {
			return nil, err
		}
		return model.QuantityPerEnergy{PerAmount: *def.PerAmount, Unit: unit}, nil
	case model.DerivationPerWorkoutDuration:
		unit, err := ParseDurationUnit(def.PerUnit)
		if err != nil {
			return nil, err
		}
		return model.QuantityPerWorkoutDuration{Unit: unit}, nil
	default:
		return nil, fmt.Errorf("invalid nutrient derivation %q", derivation)
	}
}

func parseDelta(value string) (model.Delta, error) {
	switch normalizeName(value) {
	case "deficit", "below":
		return model.Deficit, nil
	case "surplus", "above":
		return model.Surplus, nil
	default:
		return "", fmt.Errorf("invalid delta %q (use deficit or surplus)", value)
	}
}
