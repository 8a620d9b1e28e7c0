package service

import (
	"fmt"
	"strings"

	"github.com/saadjs/dietgoals/internal/model"
)

const (
	KJPerKcal = 4.184
	LbPerKg   = 2.20462
)

func KcalToKJ(kcal float64) float64 { return kcal * KJPerKcal }
func KJToKcal(kj float64) float64   { return kj / KJPerKcal }
func KgToLb(kg float64) float64     { return kg * LbPerKg }
func LbToKg(lb float64) float64     { return lb / LbPerKg }

var macroKcalPerGram = map[model.Macro]float64{
	model.MacroCarb:    4,
	model.MacroProtein: 4,
	model.MacroFat:     9,
}

// Only nutrients that contribute energy have an entry.
var nutrientKcalPerGram = map[model.Nutrient]float64{
	model.NutrientSaturatedFat:       9,
	model.NutrientMonounsaturatedFat: 9,
	model.NutrientPolyunsaturatedFat: 9,
	model.NutrientTransFat:           9,
	model.NutrientSugars:             4,
	model.NutrientAddedSugars:        4,
	model.NutrientDietaryFiber:       2,
}

func MacroKcalPerGram(m model.Macro) (float64, bool) {
	v, ok := macroKcalPerGram[m]
	return v, ok
}

func NutrientKcalPerGram(n model.Nutrient) (float64, bool) {
	v, ok := nutrientKcalPerGram[n]
	return v, ok
}

// GramsForPercentOfEnergy returns the grams of a nutrient that supply
// percent% of energyKcal.
func GramsForPercentOfEnergy(percent, energyKcal, kcalPerGram float64) (float64, bool) {
	if kcalPerGram == 0 {
		return 0, false
	}
	return (percent / 100 * energyKcal) / kcalPerGram, true
}

func ConvertEnergy(value float64, from, to model.EnergyUnit) float64 {
	if from == to {
		return value
	}
	if from == model.EnergyUnitKJ {
		return KJToKcal(value)
	}
	return KcalToKJ(value)
}

// ToKcal converts an energy value expressed in unit to kilocalories.
func ToKcal(value float64, unit model.EnergyUnit) float64 {
	return ConvertEnergy(value, unit, model.EnergyUnitKcal)
}

func WeightFromKg(kg float64, unit model.WeightUnit) float64 {
	if unit == model.WeightUnitLb {
		return KgToLb(kg)
	}
	return kg
}

func WeightToKg(value float64, unit model.WeightUnit) float64 {
	if unit == model.WeightUnitLb {
		return LbToKg(value)
	}
	return value
}

// mass nutrient units relative to grams; IU has no fixed mass.
var nutrientUnitToGrams = map[model.NutrientUnit]float64{
	model.NutrientUnitG:   1,
	model.NutrientUnitMg:  0.001,
	model.NutrientUnitMcg: 0.000001,
}

func ConvertNutrientMass(value float64, from, to model.NutrientUnit) (float64, bool) {
	f, ok := nutrientUnitToGrams[from]
	if !ok {
		return 0, false
	}
	t, ok := nutrientUnitToGrams[to]
	if !ok {
		return 0, false
	}
	return value * f / t, true
}

func ParseEnergyUnit(value string) (model.EnergyUnit, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "kcal", "cal", "calories":
		return model.EnergyUnitKcal, nil
	case "kj", "kilojoules":
		return model.EnergyUnitKJ, nil
	default:
		return "", fmt.Errorf("invalid energy unit %q (use kcal or kj)", value)
	}
}

func ParseWeightUnit(value string) (model.WeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "kg":
		return model.WeightUnitKg, nil
	case "lb", "lbs":
		return model.WeightUnitLb, nil
	default:
		return "", fmt.Errorf("invalid weight unit %q (use kg or lb)", value)
	}
}

func ParseNutrientUnit(value string) (model.NutrientUnit, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "g":
		return model.NutrientUnitG, nil
	case "mg":
		return model.NutrientUnitMg, nil
	case "mcg", "ug", "µg":
		return model.NutrientUnitMcg, nil
	case "iu":
		return model.NutrientUnitIU, nil
	default:
		return "", fmt.Errorf("invalid nutrient unit %q (use g, mg, mcg or iu)", value)
	}
}

func ParseDurationUnit(value string) (model.DurationUnit, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "min", "mins", "minute", "minutes":
		return model.DurationUnitMin, nil
	case "hr", "h", "hour", "hours":
		return model.DurationUnitHr, nil
	default:
		return "", fmt.Errorf("invalid duration unit %q (use min or hr)", value)
	}
}
