package service_test

import (
	"testing"

	"github.com/saadjs/dietgoals/internal/model"
	"github.com/saadjs/dietgoals/internal/service"
)

func TestRunDoctorReportsAndFixes(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	set, err := service.CreateGoalSet(db, service.CreateGoalSetInput{
		Name: "cut",
		Goals: []model.Goal{
			{Kind: model.MacroKind{Derivation: model.PercentageOfEnergy{}, Macro: model.MacroCarb}, LowerBound: floatPtr(30)},
			{Kind: model.MacroKind{Derivation: model.NutrientFixed{}, Macro: model.MacroProtein}, LowerBound: floatPtr(150), UpperBound: floatPtr(150)},
			{Kind: model.MacroKind{Derivation: model.NutrientFixed{}, Macro: model.MacroFat}},
		},
	})
	if err != nil {
		t.Fatalf("create goal set: %v", err)
	}
	if _, err := db.Exec(`
INSERT INTO goals(goal_set_id, position, identity, kind, derivation, nutrient, unit, per_unit, lower_bound)
VALUES(?, 9, 'micro:sodium', 'micro', 'per_workout_duration', 'sodium', 'mg', 'min', 10)
`, set.ID); err != nil {
		t.Fatalf("insert meal-only goal: %v", err)
	}

	report, err := service.RunDoctor(db, false)
	if err != nil {
		t.Fatalf("run doctor: %v", err)
	}
	if report.GoalSets != 1 || report.Goals != 4 {
		t.Fatalf("expected 1 set with 4 goals, got %+v", report)
	}
	problems := map[string]bool{}
	fixable := 0
	for _, issue := range report.Issues {
		problems[issue.Goal] = true
		if issue.Fixable {
			fixable++
		}
	}
	for _, goal := range []string{"macro:carb", "macro:protein", "macro:fat", "micro:sodium"} {
		if !problems[goal] {
			t.Fatalf("expected an issue for %s, got %+v", goal, report.Issues)
		}
	}
	if fixable != 1 {
		t.Fatalf("expected 1 fixable issue, got %d", fixable)
	}

	fixed, err := service.RunDoctor(db, true)
	if err != nil {
		t.Fatalf("run doctor fix: %v", err)
	}
	if fixed.Fixed != 1 {
		t.Fatalf("expected 1 fixed row, got %+v", fixed)
	}
	stored, err := service.GetGoalSet(db, "cut")
	if err != nil {
		t.Fatalf("get goal set: %v", err)
	}
	if len(stored.Goals) != 3 {
		t.Fatalf("expected meal-only goal removed, got %d goals", len(stored.Goals))
	}
}

func TestRunDoctorCleanDatabase(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.CreateGoalSet(db, service.CreateGoalSetInput{
		Name:  "maintain",
		Goals: []model.Goal{*fixedEnergyGoal(floatPtr(2000), floatPtr(2200))},
	}); err != nil {
		t.Fatalf("create goal set: %v", err)
	}
	report, err := service.RunDoctor(db, false)
	if err != nil {
		t.Fatalf("run doctor: %v", err)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("expected no issues, got %+v", report.Issues)
	}
}
