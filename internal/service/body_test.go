package service_test

import (
	"testing"
	"time"

	"github.com/saadjs/dietgoals/internal/service"
)

func TestBodyMeasurementCRUDAndUnitConversion(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	id, err := service.AddBodyMeasurement(db, service.BodyMeasurementInput{
		Weight:     180,
		Unit:       "lb",
		BodyFatPct: floatPtr(22.5),
		MeasuredAt: time.Date(2026, 2, 20, 8, 0, 0, 0, time.Local),
	})
	if err != nil {
		t.Fatalf("add body measurement: %v", err)
	}

	items, err := service.ListBodyMeasurements(db, service.BodyMeasurementFilter{Date: "2026-02-20"})
	if err != nil {
		t.Fatalf("list body measurements: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 body measurement, got %d", len(items))
	}
	if items[0].ID != id {
		t.Fatalf("expected measurement id %d, got %d", id, items[0].ID)
	}
	if items[0].WeightKg < 81 || items[0].WeightKg > 82 {
		t.Fatalf("expected converted weight around 81.6kg, got %.4f", items[0].WeightKg)
	}

	if err := service.DeleteBodyMeasurement(db, id); err != nil {
		t.Fatalf("delete body measurement: %v", err)
	}
	if err := service.DeleteBodyMeasurement(db, id); err == nil {
		t.Fatalf("expected second delete to fail")
	}
}

func TestBodyMeasurementRejectsInvalidBodyFat(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	_, err := service.AddBodyMeasurement(db, service.BodyMeasurementInput{Weight: 80, Unit: "kg", BodyFatPct: floatPtr(101)})
	if err == nil {
		t.Fatalf("expected invalid body-fat to fail")
	}
}

func TestLatestBodyMeasurementUsesDate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	for _, m := range []service.BodyMeasurementInput{
		{Weight: 82, Unit: "kg", MeasuredAt: time.Date(2026, 3, 1, 7, 0, 0, 0, time.Local)},
		{Weight: 81, Unit: "kg", MeasuredAt: time.Date(2026, 3, 8, 7, 0, 0, 0, time.Local)},
	} {
		if _, err := service.AddBodyMeasurement(db, m); err != nil {
			t.Fatalf("add body measurement: %v", err)
		}
	}
	latest, err := service.LatestBodyMeasurement(db, "2026-03-05")
	if err != nil {
		t.Fatalf("latest body measurement: %v", err)
	}
	if latest == nil || latest.WeightKg != 82 {
		t.Fatalf("expected 82kg measurement, got %+v", latest)
	}
	none, err := service.LatestBodyMeasurement(db, "2026-02-01")
	if err != nil {
		t.Fatalf("latest body measurement: %v", err)
	}
	if none != nil {
		t.Fatalf("expected no measurement before march, got %+v", none)
	}
}

func TestBuildBodyContextEstimatesMaintenance(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.AddBodyMeasurement(db, service.BodyMeasurementInput{
		Weight:     80,
		Unit:       "kg",
		BodyFatPct: floatPtr(20),
		MeasuredAt: time.Date(2026, 3, 1, 7, 0, 0, 0, time.Local),
	}); err != nil {
		t.Fatalf("add body measurement: %v", err)
	}
	sex, birth, level := "male", "1996-01-15", "moderate"
	if err := service.SetBodyProfile(db, service.SetBodyProfileInput{
		Sex:           &sex,
		BirthDate:     &birth,
		Height:        floatPtr(180),
		ActivityLevel: &level,
	}); err != nil {
		t.Fatalf("set profile: %v", err)
	}

	body, estimate, err := service.BuildBodyContext(db, "2026-03-02")
	if err != nil {
		t.Fatalf("build body context: %v", err)
	}
	if body.WeightKg == nil || *body.WeightKg != 80 {
		t.Fatalf("expected weight 80, got %+v", body.WeightKg)
	}
	if body.LeanMassKg == nil || !approxEqual(*body.LeanMassKg, 64) {
		t.Fatalf("expected lean mass 64, got %+v", body.LeanMassKg)
	}
	// Mifflin-St Jeor, 30 years old: 800 + 1125 - 150 + 5.
	if estimate == nil || !approxEqual(estimate.BMRKcal, 1780) {
		t.Fatalf("expected bmr 1780, got %+v", estimate)
	}
	if body.TDEEKcal == nil || !approxEqual(*body.TDEEKcal, 1780*1.55) {
		t.Fatalf("expected tdee %v, got %+v", 1780*1.55, body.TDEEKcal)
	}
}

func TestBuildBodyContextAddsActiveEnergy(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.AddBodyMeasurement(db, service.BodyMeasurementInput{
		Weight:     80,
		Unit:       "kg",
		MeasuredAt: time.Date(2026, 3, 1, 7, 0, 0, 0, time.Local),
	}); err != nil {
		t.Fatalf("add body measurement: %v", err)
	}
	sex, birth, level := "male", "1996-01-15", "very_active"
	if err := service.SetBodyProfile(db, service.SetBodyProfileInput{
		Sex:              &sex,
		BirthDate:        &birth,
		Height:           floatPtr(180),
		ActivityLevel:    &level,
		ActiveEnergy:     floatPtr(500 * service.KJPerKcal),
		ActiveEnergyUnit: "kj",
	}); err != nil {
		t.Fatalf("set profile: %v", err)
	}

	body, estimate, err := service.BuildBodyContext(db, "2026-03-02")
	if err != nil {
		t.Fatalf("build body context: %v", err)
	}
	if estimate == nil || !approxEqual(estimate.BMRKcal, 1780) {
		t.Fatalf("expected bmr 1780, got %+v", estimate)
	}
	if body.TDEEKcal == nil || !approxEqual(*body.TDEEKcal, 1780+500) {
		t.Fatalf("expected tdee %v, got %+v", 1780+500, body.TDEEKcal)
	}

	if err := service.SetBodyProfile(db, service.SetBodyProfileInput{ClearActiveEnergy: true}); err != nil {
		t.Fatalf("clear active energy: %v", err)
	}
	body, _, err = service.BuildBodyContext(db, "2026-03-02")
	if err != nil {
		t.Fatalf("build body context after clear: %v", err)
	}
	if body.TDEEKcal == nil || !approxEqual(*body.TDEEKcal, 1780*1.9) {
		t.Fatalf("expected activity multiplier after clear, got %+v", body.TDEEKcal)
	}
}

func TestBuildBodyContextPrefersOverride(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetBodyProfile(db, service.SetBodyProfileInput{TDEE: floatPtr(10460), TDEEUnit: "kj"}); err != nil {
		t.Fatalf("set tdee override: %v", err)
	}
	body, estimate, err := service.BuildBodyContext(db, "")
	if err != nil {
		t.Fatalf("build body context: %v", err)
	}
	if estimate != nil {
		t.Fatalf("expected no estimate with an override, got %+v", estimate)
	}
	if body.TDEEKcal == nil || !approxEqual(*body.TDEEKcal, 10460/service.KJPerKcal) {
		t.Fatalf("expected override in kcal, got %+v", body.TDEEKcal)
	}
	if body.WeightKg != nil {
		t.Fatalf("expected no weight without measurements")
	}
}
