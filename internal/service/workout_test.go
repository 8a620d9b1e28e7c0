package service_test

import (
	"testing"
	"time"

	"github.com/saadjs/dietgoals/internal/service"
)

func TestWorkoutCRUDAndLatestDuration(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	firstID, err := service.AddWorkout(db, service.WorkoutInput{
		Name:        "Run",
		Duration:    45,
		PerformedAt: time.Date(2026, 2, 20, 7, 0, 0, 0, time.Local),
	})
	if err != nil {
		t.Fatalf("add workout: %v", err)
	}
	if _, err := service.AddWorkout(db, service.WorkoutInput{
		Name:        "Ride",
		Duration:    1.5,
		Unit:        "hr",
		PerformedAt: time.Date(2026, 2, 22, 18, 0, 0, 0, time.Local),
	}); err != nil {
		t.Fatalf("add second workout: %v", err)
	}

	items, err := service.ListWorkouts(db, service.ListWorkoutFilter{FromDate: "2026-02-19", ToDate: "2026-02-21"})
	if err != nil {
		t.Fatalf("list workouts: %v", err)
	}
	if len(items) != 1 || items[0].ID != firstID || items[0].DurationMin != 45 {
		t.Fatalf("expected only the run, got %+v", items)
	}

	d, err := service.LatestWorkoutDuration(db, "2026-02-23")
	if err != nil {
		t.Fatalf("latest workout duration: %v", err)
	}
	if d != 90*time.Minute {
		t.Fatalf("expected 90m, got %s", d)
	}
	d, err = service.LatestWorkoutDuration(db, "2026-02-01")
	if err != nil {
		t.Fatalf("latest workout duration: %v", err)
	}
	if d != 0 {
		t.Fatalf("expected no workout, got %s", d)
	}

	if err := service.DeleteWorkout(db, firstID); err != nil {
		t.Fatalf("delete workout: %v", err)
	}
	if err := service.DeleteWorkout(db, firstID); err == nil {
		t.Fatalf("expected deleting twice to fail")
	}
}

func TestAddWorkoutValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.AddWorkout(db, service.WorkoutInput{Name: " ", Duration: 30}); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if _, err := service.AddWorkout(db, service.WorkoutInput{Name: "Swim", Duration: 0}); err == nil {
		t.Fatalf("expected zero duration to fail")
	}
	if _, err := service.AddWorkout(db, service.WorkoutInput{Name: "Swim", Duration: 30, Unit: "fortnights"}); err == nil {
		t.Fatalf("expected invalid unit to fail")
	}
}

func TestParseWorkoutDuration(t *testing.T) {
	t.Parallel()
	d, err := service.ParseWorkoutDuration("1h15m")
	if err != nil || d != 75*time.Minute {
		t.Fatalf("expected 75m, got %s %v", d, err)
	}
	if _, err := service.ParseWorkoutDuration("-5m"); err == nil {
		t.Fatalf("expected negative duration to fail")
	}
	if _, err := service.ParseWorkoutDuration("soon"); err == nil {
		t.Fatalf("expected unparseable duration to fail")
	}
}
