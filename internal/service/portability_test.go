package service_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/saadjs/dietgoals/internal/model"
	"github.com/saadjs/dietgoals/internal/service"
)

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	src := newTestDB(t)
	defer src.Close()

	if _, err := service.CreateGoalSet(src, service.CreateGoalSetInput{
		Name: "cut",
		Goals: []model.Goal{
			{Kind: model.EnergyKind{Derivation: model.FromMaintenance{Unit: model.EnergyUnitKcal, Delta: model.Deficit}}, LowerBound: floatPtr(300), UpperBound: floatPtr(500)},
			{Kind: model.MacroKind{Derivation: model.PercentageOfEnergy{}, Macro: model.MacroCarb}, LowerBound: floatPtr(30)},
		},
	}); err != nil {
		t.Fatalf("create diet: %v", err)
	}
	if _, err := service.CreateGoalSet(src, service.CreateGoalSetInput{
		Name:    "post-workout",
		Type:    model.GoalSetMeal,
		DietSet: "cut",
		Goals: []model.Goal{
			{Kind: model.EnergyKind{Derivation: model.PercentOfDietGoal{}}, LowerBound: floatPtr(30)},
			{Kind: model.MacroKind{Derivation: model.QuantityPerWorkoutDuration{Unit: model.DurationUnitHr}, Macro: model.MacroCarb}, LowerBound: floatPtr(40)},
		},
	}); err != nil {
		t.Fatalf("create meal: %v", err)
	}
	if _, err := service.AddBodyMeasurement(src, service.BodyMeasurementInput{Weight: 80, Unit: "kg", MeasuredAt: time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)}); err != nil {
		t.Fatalf("add body measurement: %v", err)
	}
	if err := service.SetConfig(src, service.ConfigActivityLevel, "moderate"); err != nil {
		t.Fatalf("set config: %v", err)
	}

	data, err := service.ExportGoalSets(src, nil, true)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var buf bytes.Buffer
	if err := service.WriteExport(&buf, data); err != nil {
		t.Fatalf("write export: %v", err)
	}
	if !strings.Contains(buf.String(), "diet_set: cut") {
		t.Fatalf("expected meal set to reference its diet by name:\n%s", buf.String())
	}

	parsed, err := service.ReadExport(&buf)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	dst := newTestDB(t)
	defer dst.Close()
	report, err := service.ImportData(dst, parsed, service.ImportOptions{Mode: service.ImportModeMerge})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Inserted != 3 || report.Updated != 1 {
		t.Fatalf("expected 3 inserted and 1 updated, got %+v", report)
	}

	diet, err := service.GetGoalSet(dst, "cut")
	if err != nil || diet == nil {
		t.Fatalf("expected imported diet, got %+v %v", diet, err)
	}
	meal, err := service.GetGoalSet(dst, "post-workout")
	if err != nil || meal == nil {
		t.Fatalf("expected imported meal, got %+v %v", meal, err)
	}
	if meal.DietSetID != diet.ID {
		t.Fatalf("expected meal linked to imported diet")
	}
	if len(meal.Goals) != 2 || meal.Type != model.GoalSetMeal {
		t.Fatalf("expected meal with 2 goals, got %+v", meal)
	}
	if v, ok, _ := service.GetConfig(dst, service.ConfigActivityLevel); !ok || v != "moderate" {
		t.Fatalf("expected imported activity level, got %q %v", v, ok)
	}
}

func TestImportModes(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	doc := `
version: 1
goal_sets:
  - name: cut
    type: diet
    goals:
      - kind: energy
        derivation: fixed
        lower: 1800
        upper: 2000
`
	parse := func() *service.ExportData {
		data, err := service.ReadExport(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("read export: %v", err)
		}
		return data
	}
	if _, err := service.ImportData(db, parse(), service.ImportOptions{Mode: service.ImportModeFail}); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if _, err := service.ImportData(db, parse(), service.ImportOptions{Mode: service.ImportModeFail}); err == nil {
		t.Fatalf("expected fail mode to reject an existing set")
	}
	report, err := service.ImportData(db, parse(), service.ImportOptions{Mode: service.ImportModeSkip})
	if err != nil {
		t.Fatalf("skip import: %v", err)
	}
	if report.Skipped != 1 {
		t.Fatalf("expected 1 skipped, got %+v", report)
	}
	report, err = service.ImportData(db, parse(), service.ImportOptions{Mode: service.ImportModeReplace, DryRun: true})
	if err != nil {
		t.Fatalf("dry run import: %v", err)
	}
	if report.Updated != 1 {
		t.Fatalf("expected dry run to report an update, got %+v", report)
	}
	sets, err := service.ListGoalSets(db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sets) != 1 {
		t.Fatalf("expected dry run to leave 1 set, got %d", len(sets))
	}
}

func TestReadExportRejectsBadDocuments(t *testing.T) {
	t.Parallel()
	if _, err := service.ReadExport(strings.NewReader("")); err == nil {
		t.Fatalf("expected empty document to fail")
	}
	if _, err := service.ReadExport(strings.NewReader("version: 1\ngoal_set: []\n")); err == nil {
		t.Fatalf("expected unknown field to fail")
	}
	if _, err := service.ReadExport(strings.NewReader("version: 99\n")); err == nil {
		t.Fatalf("expected future version to fail")
	}

	db := newTestDB(t)
	defer db.Close()
	data, err := service.ReadExport(strings.NewReader(`
goal_sets:
  - name: cut
    type: diet
    goals:
      - kind: energy
        derivation: percent_of_diet_goal
        lower: 20
`))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if _, err := service.ImportData(db, data, service.ImportOptions{}); err == nil {
		t.Fatalf("expected meal-only goal in diet set to be rejected")
	}
}

func TestMergeImportSkipsExistingHistory(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	at := time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)
	if _, err := service.AddBodyMeasurement(db, service.BodyMeasurementInput{Weight: 81.5, Unit: "kg", MeasuredAt: at}); err != nil {
		t.Fatalf("add body measurement: %v", err)
	}
	if _, err := service.AddWorkout(db, service.WorkoutInput{Name: "Run", Duration: 40, Unit: "min", PerformedAt: at}); err != nil {
		t.Fatalf("add workout: %v", err)
	}
	data, err := service.ExportGoalSets(db, nil, true)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	for i := 0; i < 2; i++ {
		report, err := service.ImportData(db, data, service.ImportOptions{Mode: service.ImportModeMerge})
		if err != nil {
			t.Fatalf("merge import %d: %v", i+1, err)
		}
		if report.Skipped != 2 || report.Inserted != 0 {
			t.Fatalf("merge import %d: expected 2 skipped and 0 inserted, got %+v", i+1, report)
		}
	}

	measurements, err := service.ListBodyMeasurements(db, service.BodyMeasurementFilter{})
	if err != nil {
		t.Fatalf("list body measurements: %v", err)
	}
	if len(measurements) != 1 {
		t.Fatalf("expected 1 body measurement after re-import, got %d", len(measurements))
	}
	workouts, err := service.ListWorkouts(db, service.ListWorkoutFilter{})
	if err != nil {
		t.Fatalf("list workouts: %v", err)
	}
	if len(workouts) != 1 {
		t.Fatalf("expected 1 workout after re-import, got %d", len(workouts))
	}
}
