package model

// GoalDefinition is the flat, storable form of a Goal. Kind and Derivation
// select the variant; the remaining fields carry that variant's parameters.
//
//	energy: fixed(unit) | from_maintenance(unit, delta) | percent_from_maintenance(delta) | percent_of_diet_goal
//	macro/micro: fixed | percentage_of_energy | per_body_mass(body_mass, per_unit)
//	             | per_energy(per_amount, per_unit) | per_workout_duration(per_unit)
//
// For micro goals Unit is the nutrient unit.
type GoalDefinition struct {
	Kind          string   `yaml:"kind" json:"kind"`
	Derivation    string   `yaml:"derivation" json:"derivation"`
	Macro         string   `yaml:"macro,omitempty" json:"macro,omitempty"`
	Nutrient      string   `yaml:"nutrient,omitempty" json:"nutrient,omitempty"`
	Unit          string   `yaml:"unit,omitempty" json:"unit,omitempty"`
	Delta         string   `yaml:"delta,omitempty" json:"delta,omitempty"`
	BodyMass      string   `yaml:"body_mass,omitempty" json:"body_mass,omitempty"`
	PerUnit       string   `yaml:"per_unit,omitempty" json:"per_unit,omitempty"`
	PerAmount     *float64 `yaml:"per_amount,omitempty" json:"per_amount,omitempty"`
	Lower         *float64 `yaml:"lower,omitempty" json:"lower,omitempty"`
	Upper         *float64 `yaml:"upper,omitempty" json:"upper,omitempty"`
	AutoGenerated bool     `yaml:"auto_generated,omitempty" json:"auto_generated,omitempty"`
}

const (
	KindEnergy = "energy"
	KindMacro  = "macro"
	KindMicro  = "micro"

	DerivationFixed                  = "fixed"
	DerivationFromMaintenance        = "from_maintenance"
	DerivationPercentFromMaintenance = "percent_from_maintenance"
	DerivationPercentOfDietGoal      = "percent_of_diet_goal"
	DerivationPercentageOfEnergy     = "percentage_of_energy"
	DerivationPerBodyMass            = "per_body_mass"
	DerivationPerEnergy              = "per_energy"
	DerivationPerWorkoutDuration     = "per_workout_duration"
)
