package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/dietgoals/internal/model"
)

type WorkoutInput struct {
	Name        string
	Duration    float64
	Unit        string
	PerformedAt time.Time
	Notes       string
}

type ListWorkoutFilter struct {
	Date     string
	FromDate string
	ToDate   string
	Limit    int
}

func AddWorkout(db *sql.DB, in WorkoutInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return 0, fmt.Errorf("workout name is required")
	}
	minutes, err := durationToMinutes(in.Duration, in.Unit)
	if err != nil {
		return 0, err
	}
	if in.PerformedAt.IsZero() {
		in.PerformedAt = time.Now()
	}
	res, err := db.Exec(`
INSERT INTO workouts(name, duration_min, performed_at, notes)
VALUES(?, ?, ?, ?)
`, in.Name, minutes, in.PerformedAt.Format(time.RFC3339), nullableString(in.Notes))
	if err != nil {
		return 0, fmt.Errorf("add workout: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve workout id: %w", err)
	}
	return id, nil
}

func ListWorkouts(db *sql.DB, f ListWorkoutFilter) ([]model.Workout, error) {
	if strings.TrimSpace(f.Date) != "" && (strings.TrimSpace(f.FromDate) != "" || strings.TrimSpace(f.ToDate) != "") {
		return nil, fmt.Errorf("--date cannot be combined with --from or --to")
	}

	query := `SELECT id, name, duration_min, performed_at, IFNULL(notes, ''), created_at, updated_at FROM workouts WHERE 1=1`
	args := make([]any, 0)
	if strings.TrimSpace(f.Date) != "" {
		start, end, err := dayBounds(f.Date)
		if err != nil {
			return nil, err
		}
		query += ` AND performed_at >= ? AND performed_at < ?`
		args = append(args, start, end)
	}
	if strings.TrimSpace(f.FromDate) != "" {
		from, err := parseDateStart(f.FromDate)
		if err != nil {
			return nil, err
		}
		query += ` AND performed_at >= ?`
		args = append(args, from)
	}
	if strings.TrimSpace(f.ToDate) != "" {
		to, err := parseDateEndExclusive(f.ToDate)
		if err != nil {
			return nil, err
		}
		query += ` AND performed_at < ?`
		args = append(args, to)
	}

	query += ` ORDER BY performed_at DESC`
	if f.Limit <= 0 {
		f.Limit = 50
	}
	query += ` LIMIT ?`
	args = append(args, f.Limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	items := make([]model.Workout, 0)
	for rows.Next() {
		var item model.Workout
		var performedAtRaw string
		if err := rows.Scan(&item.ID, &item.Name, &item.DurationMin, &performedAtRaw, &item.Notes, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		performedAt, err := time.Parse(time.RFC3339, performedAtRaw)
		if err != nil {
			return nil, fmt.Errorf("parse performed_at: %w", err)
		}
		item.PerformedAt = performedAt
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workouts: %w", err)
	}
	return items, nil
}

func DeleteWorkout(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("workout id must be > 0")
	}
	res, err := db.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete workout %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("workout %d not found", id)
	}
	return nil
}

// LatestWorkoutDuration returns the length of the most recent workout on or
// before date, or zero if none was logged.
func LatestWorkoutDuration(db *sql.DB, date string) (time.Duration, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	to, err := parseDateEndExclusive(date)
	if err != nil {
		return 0, err
	}
	var minutes float64
	err = db.QueryRow(`
SELECT duration_min FROM workouts
WHERE performed_at < ?
ORDER BY performed_at DESC
LIMIT 1
`, to).Scan(&minutes)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("latest workout for %s: %w", date, err)
	}
	return time.Duration(minutes * float64(time.Minute)), nil
}

// ParseWorkoutDuration reads a duration such as "45m" or "1h30m".
func ParseWorkoutDuration(value string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid workout duration %q (e.g. 45m or 1h30m)", value)
	}
	if d <= 0 {
		return 0, fmt.Errorf("workout duration must be > 0")
	}
	return d, nil
}

func durationToMinutes(value float64, unit string) (float64, error) {
	if value <= 0 {
		return 0, fmt.Errorf("duration must be > 0")
	}
	u, err := ParseDurationUnit(unit)
	if err != nil {
		return 0, err
	}
	if u == model.DurationUnitHr {
		return value * 60, nil
	}
	return value, nil
}
