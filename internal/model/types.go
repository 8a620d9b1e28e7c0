package model

import "time"

type EnergyUnit string

const (
	EnergyUnitKcal EnergyUnit = "kcal"
	EnergyUnitKJ   EnergyUnit = "kj"
)

type WeightUnit string

const (
	WeightUnitKg WeightUnit = "kg"
	WeightUnitLb WeightUnit = "lb"
)

type NutrientUnit string

const (
	NutrientUnitG   NutrientUnit = "g"
	NutrientUnitMg  NutrientUnit = "mg"
	NutrientUnitMcg NutrientUnit = "mcg"
	NutrientUnitIU  NutrientUnit = "iu"
)

type DurationUnit string

const (
	DurationUnitMin DurationUnit = "min"
	DurationUnitHr  DurationUnit = "hr"
)

// BodyContext is the snapshot of body parameters a resolution pass reads.
// Weight and lean mass are stored in kilograms and TDEE in kilocalories;
// EnergyUnit is the unit energy goal values are expressed in.
type BodyContext struct {
	WeightKg   *float64
	LeanMassKg *float64
	EnergyUnit EnergyUnit
	TDEEKcal   *float64
}

type BodyMeasurement struct {
	ID         int64
	MeasuredAt time.Time
	WeightKg   float64
	BodyFatPct *float64
	Notes      string
}

type Workout struct {
	ID          int64
	Name        string
	DurationMin float64
	PerformedAt time.Time
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// BodyProfile holds the settings used to estimate maintenance energy.
// Any nil field means the user has not provided it.
type BodyProfile struct {
	Sex              *Sex
	BirthDate        *time.Time
	HeightCm         *float64
	ActivityLevel    string
	Equation         string
	EnergyUnit       EnergyUnit
	TDEEOverrideKcal *float64
	// ActiveEnergyKcal replaces the activity multiplier: TDEE is BMR plus
	// this measured daily active energy.
	ActiveEnergyKcal *float64
}
