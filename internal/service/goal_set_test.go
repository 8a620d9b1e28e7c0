package service_test

import (
	"testing"

	"github.com/saadjs/dietgoals/internal/model"
	"github.com/saadjs/dietgoals/internal/service"
)

func TestNewGoalSetRejectsDuplicateKinds(t *testing.T) {
	t.Parallel()
	_, err := service.NewGoalSet("cut", model.GoalSetDiet, []model.Goal{
		{Kind: model.MacroKind{Derivation: model.NutrientFixed{}, Macro: model.MacroProtein}, LowerBound: floatPtr(150)},
		{Kind: model.MacroKind{Derivation: model.PercentageOfEnergy{}, Macro: model.MacroProtein}, LowerBound: floatPtr(30)},
	})
	if err == nil {
		t.Fatalf("expected duplicate protein goals to be rejected")
	}
	_, err = service.NewGoalSet("cut", model.GoalSetDiet, []model.Goal{
		*fixedEnergyGoal(floatPtr(1800), nil),
		*fixedEnergyGoal(floatPtr(2000), nil),
	})
	if err == nil {
		t.Fatalf("expected duplicate energy goals to be rejected")
	}
}

func TestNewGoalSetDefaultsToDiet(t *testing.T) {
	t.Parallel()
	set, err := service.NewGoalSet("  maintain ", "", nil)
	if err != nil {
		t.Fatalf("new goal set: %v", err)
	}
	if set.Name != "maintain" || set.Type != model.GoalSetDiet {
		t.Fatalf("expected diet set named maintain, got %+v", set)
	}
	if set.EnergyGoal() != nil {
		t.Fatalf("expected no energy goal")
	}
	if _, err := service.NewGoalSet(" ", model.GoalSetDiet, nil); err == nil {
		t.Fatalf("expected empty name to be rejected")
	}
}

func TestValidateGoalSetTypeRules(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		goal    model.Goal
		setType model.GoalSetType
		wantErr bool
	}{
		{name: "percent of diet in diet", goal: model.Goal{Kind: model.EnergyKind{Derivation: model.PercentOfDietGoal{}}}, setType: model.GoalSetDiet, wantErr: true},
		{name: "percent of diet in meal", goal: model.Goal{Kind: model.EnergyKind{Derivation: model.PercentOfDietGoal{}}}, setType: model.GoalSetMeal},
		{name: "maintenance in meal", goal: model.Goal{Kind: model.EnergyKind{Derivation: model.FromMaintenance{Delta: model.Deficit}}}, setType: model.GoalSetMeal, wantErr: true},
		{name: "workout in diet", goal: model.Goal{Kind: model.MacroKind{Derivation: model.QuantityPerWorkoutDuration{Unit: model.DurationUnitMin}, Macro: model.MacroCarb}}, setType: model.GoalSetDiet, wantErr: true},
		{name: "body mass in meal", goal: model.Goal{Kind: model.MacroKind{Derivation: model.QuantityPerBodyMass{BodyMass: model.BodyMassWeight, Unit: model.WeightUnitKg}, Macro: model.MacroProtein}}, setType: model.GoalSetMeal, wantErr: true},
		{name: "negative bound", goal: model.Goal{Kind: model.MacroKind{Derivation: model.NutrientFixed{}, Macro: model.MacroFat}, LowerBound: floatPtr(-1)}, setType: model.GoalSetDiet, wantErr: true},
		{name: "inverted bounds allowed", goal: model.Goal{Kind: model.MacroKind{Derivation: model.NutrientFixed{}, Macro: model.MacroFat}, LowerBound: floatPtr(90), UpperBound: floatPtr(60)}, setType: model.GoalSetDiet},
		{name: "unsupported micro unit", goal: model.Goal{Kind: model.MicroKind{Derivation: model.NutrientFixed{}, Nutrient: model.NutrientIron, Unit: model.NutrientUnitIU}}, setType: model.GoalSetDiet, wantErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := service.ValidateGoal(tc.goal, tc.setType)
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestGoalSetAccessorsSortKinds(t *testing.T) {
	t.Parallel()
	set := model.GoalSet{Goals: []model.Goal{
		{Kind: model.MicroKind{Derivation: model.NutrientFixed{}, Nutrient: model.NutrientCaffeine}},
		{Kind: model.MacroKind{Derivation: model.NutrientFixed{}, Macro: model.MacroProtein}},
		{Kind: model.MicroKind{Derivation: model.NutrientFixed{}, Nutrient: model.NutrientCholesterol}},
		{Kind: model.MacroKind{Derivation: model.NutrientFixed{}, Macro: model.MacroCarb}},
	}}
	macros := set.MacroGoals()
	if len(macros) != 2 || macros[0].Kind.(model.MacroKind).Macro != model.MacroCarb {
		t.Fatalf("expected carb first, got %+v", macros)
	}
	micros := set.MicroGoals()
	if len(micros) != 2 || micros[0].Kind.(model.MicroKind).Nutrient != model.NutrientCholesterol {
		t.Fatalf("expected cholesterol first, got %+v", micros)
	}
}
