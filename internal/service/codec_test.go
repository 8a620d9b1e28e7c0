package service_test

import (
	"testing"

	"github.com/saadjs/dietgoals/internal/model"
	"github.com/saadjs/dietgoals/internal/service"
)

func TestEncodeDecodeGoalVariants(t *testing.T) {
	t.Parallel()
	goals := []model.Goal{
		{Kind: model.EnergyKind{Derivation: model.FromMaintenance{Unit: model.EnergyUnitKJ, Delta: model.Deficit}}, LowerBound: floatPtr(1000), UpperBound: floatPtr(2000)},
		{Kind: model.EnergyKind{Derivation: model.PercentFromMaintenance{Delta: model.Surplus}}, UpperBound: floatPtr(10)},
		{Kind: model.MacroKind{Derivation: model.QuantityPerBodyMass{BodyMass: model.BodyMassLeanMass, Unit: model.WeightUnitLb}, Macro: model.MacroProtein}, LowerBound: floatPtr(1)},
		{Kind: model.MicroKind{Derivation: model.QuantityPerEnergy{PerAmount: 1000, Unit: model.EnergyUnitKcal}, Nutrient: model.NutrientDietaryFiber, Unit: model.NutrientUnitG}, LowerBound: floatPtr(14), IsAutoGenerated: true},
	}
	for _, g := range goals {
		def, err := service.EncodeGoal(g)
		if err != nil {
			t.Fatalf("encode %s: %v", g.Kind.Identity(), err)
		}
		back, err := service.DecodeGoal(def)
		if err != nil {
			t.Fatalf("decode %s: %v", g.Kind.Identity(), err)
		}
		if back.Kind != g.Kind {
			t.Fatalf("expected kind %+v, got %+v", g.Kind, back.Kind)
		}
		if back.IsAutoGenerated != g.IsAutoGenerated {
			t.Fatalf("expected auto-generated %v, got %v", g.IsAutoGenerated, back.IsAutoGenerated)
		}
	}
}

func TestDecodeGoalDefaultsAndSynonyms(t *testing.T) {
	t.Parallel()
	g, err := service.DecodeGoal(model.GoalDefinition{Kind: "micro", Nutrient: "Vitamin-C", Upper: floatPtr(90)})
	if err != nil {
		t.Fatalf("decode micro: %v", err)
	}
	k, ok := g.Kind.(model.MicroKind)
	if !ok || k.Nutrient != model.NutrientVitaminC || k.Unit != model.NutrientUnitMg {
		t.Fatalf("expected vitamin c in mg, got %+v", g.Kind)
	}
	if _, ok := k.Derivation.(model.NutrientFixed); !ok {
		t.Fatalf("expected default fixed derivation, got %T", k.Derivation)
	}

	g, err = service.DecodeGoal(model.GoalDefinition{Kind: "macro", Macro: "carbs", Derivation: "per_body_mass"})
	if err != nil {
		t.Fatalf("decode macro: %v", err)
	}
	mk := g.Kind.(model.MacroKind)
	if mk.Macro != model.MacroCarb {
		t.Fatalf("expected carb, got %s", mk.Macro)
	}
	if d := mk.Derivation.(model.QuantityPerBodyMass); d.BodyMass != model.BodyMassWeight || d.Unit != model.WeightUnitKg {
		t.Fatalf("expected per kg of weight, got %+v", d)
	}
}

func TestDecodeGoalRejectsInvalidDefinitions(t *testing.T) {
	t.Parallel()
	cases := map[string]model.GoalDefinition{
		"unknown kind":     {Kind: "water"},
		"unknown macro":    {Kind: "macro", Macro: "alcohol"},
		"unknown nutrient": {Kind: "micro", Nutrient: "unobtainium"},
		"missing delta":    {Kind: "energy", Derivation: "from_maintenance"},
		"zero per amount":  {Kind: "macro", Macro: "fat", Derivation: "per_energy", PerAmount: floatPtr(0)},
		"bad derivation":   {Kind: "energy", Derivation: "per_body_mass"},
	}
	for name, def := range cases {
		if _, err := service.DecodeGoal(def); err == nil {
			t.Fatalf("%s: expected decode error", name)
		}
	}
}
