package service_test

import (
	"testing"

	"github.com/saadjs/dietgoals/internal/model"
	"github.com/saadjs/dietgoals/internal/service"
)

func TestEnergyConversionRoundTrip(t *testing.T) {
	t.Parallel()
	for _, kcal := range []float64{0, 1, 250, 2000, 3517.25} {
		kj := service.ConvertEnergy(kcal, model.EnergyUnitKcal, model.EnergyUnitKJ)
		back := service.ConvertEnergy(kj, model.EnergyUnitKJ, model.EnergyUnitKcal)
		if !approxEqual(back, kcal) {
			t.Fatalf("expected %v kcal after round trip, got %v", kcal, back)
		}
	}
	if got := service.KcalToKJ(100); !approxEqual(got, 418.4) {
		t.Fatalf("expected 418.4 kJ, got %v", got)
	}
}

func TestWeightConversionRoundTrip(t *testing.T) {
	t.Parallel()
	for _, kg := range []float64{0, 1, 62.5, 80, 140.2} {
		lb := service.WeightFromKg(kg, model.WeightUnitLb)
		back := service.WeightToKg(lb, model.WeightUnitLb)
		if !approxEqual(back, kg) {
			t.Fatalf("expected %v kg after round trip, got %v", kg, back)
		}
	}
	if got := service.WeightFromKg(80, model.WeightUnitKg); got != 80 {
		t.Fatalf("expected kg passthrough, got %v", got)
	}
}

func TestGramsForPercentOfEnergy(t *testing.T) {
	t.Parallel()
	grams, ok := service.GramsForPercentOfEnergy(30, 2000, 4)
	if !ok || grams != 150 {
		t.Fatalf("expected 150 g, got %v %v", grams, ok)
	}
	if _, ok := service.GramsForPercentOfEnergy(30, 2000, 0); ok {
		t.Fatalf("expected zero energy density to be rejected")
	}
}

func TestKcalPerGramTables(t *testing.T) {
	t.Parallel()
	for macro, want := range map[model.Macro]float64{model.MacroCarb: 4, model.MacroFat: 9, model.MacroProtein: 4} {
		got, ok := service.MacroKcalPerGram(macro)
		if !ok || got != want {
			t.Fatalf("expected %s %v kcal/g, got %v %v", macro, want, got, ok)
		}
	}
	if _, ok := service.NutrientKcalPerGram(model.NutrientSodium); ok {
		t.Fatalf("expected sodium to have no energy density")
	}
	if got, ok := service.NutrientKcalPerGram(model.NutrientDietaryFiber); !ok || got != 2 {
		t.Fatalf("expected fiber 2 kcal/g, got %v %v", got, ok)
	}
}

func TestConvertNutrientMass(t *testing.T) {
	t.Parallel()
	mg, ok := service.ConvertNutrientMass(2.3, model.NutrientUnitG, model.NutrientUnitMg)
	if !ok || !approxEqual(mg, 2300) {
		t.Fatalf("expected 2300 mg, got %v %v", mg, ok)
	}
	if _, ok := service.ConvertNutrientMass(10, model.NutrientUnitIU, model.NutrientUnitMcg); ok {
		t.Fatalf("expected IU conversion to be rejected")
	}
}

func TestParseUnits(t *testing.T) {
	t.Parallel()
	if u, err := service.ParseEnergyUnit("kJ"); err != nil || u != model.EnergyUnitKJ {
		t.Fatalf("expected kj, got %q %v", u, err)
	}
	if u, err := service.ParseEnergyUnit(""); err != nil || u != model.EnergyUnitKcal {
		t.Fatalf("expected default kcal, got %q %v", u, err)
	}
	if _, err := service.ParseEnergyUnit("btu"); err == nil {
		t.Fatalf("expected invalid energy unit error")
	}
	if u, err := service.ParseWeightUnit("lbs"); err != nil || u != model.WeightUnitLb {
		t.Fatalf("expected lb, got %q %v", u, err)
	}
	if u, err := service.ParseNutrientUnit("µg"); err != nil || u != model.NutrientUnitMcg {
		t.Fatalf("expected mcg, got %q %v", u, err)
	}
	if u, err := service.ParseDurationUnit("hours"); err != nil || u != model.DurationUnitHr {
		t.Fatalf("expected hr, got %q %v", u, err)
	}
}
