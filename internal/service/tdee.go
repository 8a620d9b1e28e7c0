package service

import (
	"fmt"
	"time"

	"github.com/saadjs/dietgoals/internal/model"
)

// activityMultipliers maps activity levels to the factor applied to BMR.
// It is also the list of valid activity levels.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

const (
	EquationMifflinStJeor  = "mifflin_st_jeor"
	EquationKatchMcArdle   = "katch_mcardle"
	EquationHarrisBenedict = "harris_benedict"
)

func ValidActivityLevel(level string) bool {
	_, ok := activityMultipliers[level]
	return ok
}

func ValidEquation(eq string) bool {
	switch eq {
	case EquationMifflinStJeor, EquationKatchMcArdle, EquationHarrisBenedict:
		return true
	}
	return false
}

type TDEEInput struct {
	Sex        *model.Sex
	AgeYears   *int
	HeightCm   *float64
	WeightKg   *float64
	LeanMassKg *float64
	Equation   string
	// ActivityLevel scales BMR unless ActiveEnergyKcal is set, in which case
	// TDEE is BMR plus that measured active energy.
	ActivityLevel    string
	ActiveEnergyKcal *float64
}

type TDEEEstimate struct {
	BMRKcal  float64
	TDEEKcal float64
	Equation string
}

// EstimateTDEE computes resting energy with the chosen equation and scales
// it to a daily total. ok is false when an input the equation needs is
// missing or the activity level is unknown.
func EstimateTDEE(in TDEEInput) (TDEEEstimate, bool) {
	eq := in.Equation
	if eq == "" {
		eq = EquationMifflinStJeor
	}
	bmr, ok := restingEnergy(eq, in)
	if !ok {
		return TDEEEstimate{}, false
	}
	if in.ActiveEnergyKcal != nil {
		return TDEEEstimate{BMRKcal: bmr, TDEEKcal: bmr + *in.ActiveEnergyKcal, Equation: eq}, true
	}
	mult, found := activityMultipliers[in.ActivityLevel]
	if !found {
		return TDEEEstimate{}, false
	}
	return TDEEEstimate{BMRKcal: bmr, TDEEKcal: bmr * mult, Equation: eq}, true
}

func restingEnergy(eq string, in TDEEInput) (float64, bool) {
	switch eq {
	case EquationKatchMcArdle:
		if in.LeanMassKg == nil {
			return 0, false
		}
		return 370 + 21.6**in.LeanMassKg, true
	case EquationMifflinStJeor:
		if in.Sex == nil || in.AgeYears == nil || in.HeightCm == nil || in.WeightKg == nil {
			return 0, false
		}
		bmr := 10**in.WeightKg + 6.25**in.HeightCm - 5*float64(*in.AgeYears)
		if *in.Sex == model.SexMale {
			return bmr + 5, true
		}
		return bmr - 161, true
	case EquationHarrisBenedict:
		if in.Sex == nil || in.AgeYears == nil || in.HeightCm == nil || in.WeightKg == nil {
			return 0, false
		}
		age := float64(*in.AgeYears)
		if *in.Sex == model.SexMale {
			return 88.362 + 13.397**in.WeightKg + 4.799**in.HeightCm - 5.677*age, true
		}
		return 447.593 + 9.247**in.WeightKg + 3.098**in.HeightCm - 4.330*age, true
	default:
		return 0, false
	}
}

// AgeOn returns whole years between birth and on. Implausible ages are
// rejected.
func AgeOn(birth, on time.Time) (int, error) {
	age := on.Year() - birth.Year()
	if on.Before(birth.AddDate(age, 0, 0)) {
		age--
	}
	if age < 0 || age > 130 {
		return 0, fmt.Errorf("implausible age %d from birth date %s", age, birth.Format("2006-01-02"))
	}
	return age, nil
}

// LeanMassFromBodyFat returns lean mass for a body-fat percentage in [0, 100].
func LeanMassFromBodyFat(weightKg, bodyFatPct float64) (float64, bool) {
	if bodyFatPct < 0 || bodyFatPct > 100 {
		return 0, false
	}
	return weightKg * (1 - bodyFatPct/100), true
}

// LeanMassBoer estimates lean mass from sex, weight and height.
func LeanMassBoer(sex model.Sex, weightKg, heightCm float64) float64 {
	if sex == model.SexMale {
		return 0.407*weightKg + 0.267*heightCm - 19.2
	}
	return 0.252*weightKg + 0.473*heightCm - 48.3
}
