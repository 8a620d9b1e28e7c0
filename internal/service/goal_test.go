package service_test

import (
	"testing"

	"github.com/saadjs/dietgoals/internal/model"
	"github.com/saadjs/dietgoals/internal/service"
)

func TestGoalSetPersistenceRoundTrip(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	created, err := service.CreateGoalSet(db, service.CreateGoalSetInput{
		Name: "cut",
		Type: model.GoalSetDiet,
		Goals: []model.Goal{
			{Kind: model.EnergyKind{Derivation: model.FromMaintenance{Unit: model.EnergyUnitKcal, Delta: model.Deficit}}, LowerBound: floatPtr(300), UpperBound: floatPtr(500)},
			{Kind: model.MacroKind{Derivation: model.QuantityPerBodyMass{BodyMass: model.BodyMassWeight, Unit: model.WeightUnitKg}, Macro: model.MacroProtein}, LowerBound: floatPtr(2)},
			{Kind: model.MicroKind{Derivation: model.NutrientFixed{}, Nutrient: model.NutrientSodium, Unit: model.NutrientUnitMg}, UpperBound: floatPtr(2300), IsAutoGenerated: true},
		},
	})
	if err != nil {
		t.Fatalf("create goal set: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}

	byName, err := service.GetGoalSet(db, "cut")
	if err != nil {
		t.Fatalf("get goal set: %v", err)
	}
	if byName == nil || byName.ID != created.ID || len(byName.Goals) != 3 {
		t.Fatalf("expected stored set with 3 goals, got %+v", byName)
	}
	energy := byName.EnergyGoal()
	if energy == nil || *energy.LowerBound != 300 || *energy.UpperBound != 500 {
		t.Fatalf("expected energy bounds 300/500, got %+v", energy)
	}
	if !byName.Goals[2].IsAutoGenerated {
		t.Fatalf("expected auto-generated flag to persist")
	}

	missing, err := service.GetGoalSet(db, "bulk")
	if err != nil {
		t.Fatalf("get missing goal set: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing set, got %+v", missing)
	}

	if _, err := service.CreateGoalSet(db, service.CreateGoalSetInput{Name: "cut"}); err == nil {
		t.Fatalf("expected duplicate set name to fail")
	}
}

func TestPutGoalReplacesByIdentity(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.CreateGoalSet(db, service.CreateGoalSetInput{
		Name: "maintain",
		Goals: []model.Goal{
			{Kind: model.MacroKind{Derivation: model.NutrientFixed{}, Macro: model.MacroProtein}, LowerBound: floatPtr(140)},
			{Kind: model.MacroKind{Derivation: model.NutrientFixed{}, Macro: model.MacroFat}, UpperBound: floatPtr(80)},
		},
	}); err != nil {
		t.Fatalf("create goal set: %v", err)
	}
	if err := service.PutGoal(db, "maintain", model.Goal{
		Kind:       model.MacroKind{Derivation: model.PercentageOfEnergy{}, Macro: model.MacroProtein},
		LowerBound: floatPtr(25),
	}); err != nil {
		t.Fatalf("put goal: %v", err)
	}
	set, err := service.GetGoalSet(db, "maintain")
	if err != nil {
		t.Fatalf("get goal set: %v", err)
	}
	if len(set.Goals) != 2 {
		t.Fatalf("expected 2 goals after replace, got %d", len(set.Goals))
	}
	k := set.Goals[0].Kind.(model.MacroKind)
	if k.Macro != model.MacroProtein {
		t.Fatalf("expected replaced protein goal to keep its position, got %s", k.Macro)
	}
	if _, ok := k.Derivation.(model.PercentageOfEnergy); !ok {
		t.Fatalf("expected percentage derivation, got %T", k.Derivation)
	}

	if err := service.RemoveGoal(db, "maintain", "macro:fat"); err != nil {
		t.Fatalf("remove goal: %v", err)
	}
	if err := service.RemoveGoal(db, "maintain", "macro:fat"); err == nil {
		t.Fatalf("expected removing a missing goal to fail")
	}
	if err := service.PutGoal(db, "maintain", model.Goal{Kind: model.EnergyKind{Derivation: model.PercentOfDietGoal{}}}); err == nil {
		t.Fatalf("expected meal-only goal to be rejected in diet set")
	}
}

func TestMealSetLinksToDiet(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	diet, err := service.CreateGoalSet(db, service.CreateGoalSetInput{Name: "cut", Type: model.GoalSetDiet})
	if err != nil {
		t.Fatalf("create diet: %v", err)
	}
	meal, err := service.CreateGoalSet(db, service.CreateGoalSetInput{
		Name:    "breakfast",
		Type:    model.GoalSetMeal,
		DietSet: "cut",
		Goals:   []model.Goal{{Kind: model.EnergyKind{Derivation: model.PercentOfDietGoal{}}, LowerBound: floatPtr(25)}},
	})
	if err != nil {
		t.Fatalf("create meal: %v", err)
	}
	if meal.DietSetID != diet.ID {
		t.Fatalf("expected meal linked to %s, got %s", diet.ID, meal.DietSetID)
	}
	if _, err := service.CreateGoalSet(db, service.CreateGoalSetInput{Name: "lunch", Type: model.GoalSetMeal, DietSet: "breakfast"}); err == nil {
		t.Fatalf("expected linking to a meal set to fail")
	}
	if _, err := service.CreateGoalSet(db, service.CreateGoalSetInput{Name: "other", Type: model.GoalSetDiet, DietSet: "cut"}); err == nil {
		t.Fatalf("expected diet set link to fail")
	}

	if err := service.DeleteGoalSet(db, "cut"); err != nil {
		t.Fatalf("delete diet: %v", err)
	}
	reloaded, err := service.GetGoalSet(db, "breakfast")
	if err != nil {
		t.Fatalf("get meal: %v", err)
	}
	if reloaded.DietSetID != "" {
		t.Fatalf("expected diet link cleared on delete, got %q", reloaded.DietSetID)
	}
}

func TestListAndRenameGoalSets(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	for _, in := range []service.CreateGoalSetInput{
		{Name: "snack", Type: model.GoalSetMeal},
		{Name: "bulk", Type: model.GoalSetDiet},
		{Name: "cut", Type: model.GoalSetDiet},
	} {
		if _, err := service.CreateGoalSet(db, in); err != nil {
			t.Fatalf("create %s: %v", in.Name, err)
		}
	}
	if err := service.RenameGoalSet(db, "bulk", "lean-bulk"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	sets, err := service.ListGoalSets(db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"cut", "lean-bulk", "snack"}
	if len(sets) != len(want) {
		t.Fatalf("expected %d sets, got %d", len(want), len(sets))
	}
	for i, name := range want {
		if sets[i].Name != name {
			t.Fatalf("expected set %d to be %s, got %s", i, name, sets[i].Name)
		}
	}
	if err := service.RenameGoalSet(db, "cut", "snack"); err == nil {
		t.Fatalf("expected rename collision to fail")
	}
}
