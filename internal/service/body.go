package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/dietgoals/internal/logger"
	"github.com/saadjs/dietgoals/internal/model"
)

type BodyMeasurementInput struct {
	Weight     float64
	Unit       string
	BodyFatPct *float64
	MeasuredAt time.Time
	Notes      string
}

type BodyMeasurementFilter struct {
	Date     string
	FromDate string
	ToDate   string
	Limit    int
}

func AddBodyMeasurement(db *sql.DB, in BodyMeasurementInput) (int64, error) {
	weightKg, err := convertWeightToKg(in.Weight, in.Unit)
	if err != nil {
		return 0, err
	}
	if in.BodyFatPct != nil {
		if *in.BodyFatPct < 0 || *in.BodyFatPct > 100 {
			return 0, fmt.Errorf("body-fat must be between 0 and 100")
		}
	}
	if in.MeasuredAt.IsZero() {
		in.MeasuredAt = time.Now()
	}
	res, err := db.Exec(`
INSERT INTO body_measurements(measured_at, weight_kg, body_fat_pct, notes)
VALUES(?, ?, ?, ?)
`, in.MeasuredAt.Format(time.RFC3339), weightKg, in.BodyFatPct, strings.TrimSpace(in.Notes))
	if err != nil {
		return 0, fmt.Errorf("add body measurement: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve body measurement id: %w", err)
	}
	return id, nil
}

func ListBodyMeasurements(db *sql.DB, f BodyMeasurementFilter) ([]model.BodyMeasurement, error) {
	if strings.TrimSpace(f.Date) != "" && (strings.TrimSpace(f.FromDate) != "" || strings.TrimSpace(f.ToDate) != "") {
		return nil, fmt.Errorf("--date cannot be combined with --from or --to")
	}
	query := `SELECT id, measured_at, weight_kg, body_fat_pct, IFNULL(notes, '') FROM body_measurements WHERE 1=1`
	args := make([]any, 0)

	if strings.TrimSpace(f.Date) != "" {
		start, end, err := dayBounds(f.Date)
		if err != nil {
			return nil, err
		}
		query += ` AND measured_at >= ? AND measured_at < ?`
		args = append(args, start, end)
	}
	if strings.TrimSpace(f.FromDate) != "" {
		from, err := parseDateStart(f.FromDate)
		if err != nil {
			return nil, err
		}
		query += ` AND measured_at >= ?`
		args = append(args, from)
	}
	if strings.TrimSpace(f.ToDate) != "" {
		to, err := parseDateEndExclusive(f.ToDate)
		if err != nil {
			return nil, err
		}
		query += ` AND measured_at < ?`
		args = append(args, to)
	}

	query += ` ORDER BY measured_at DESC`
	if f.Limit <= 0 {
		f.Limit = 50
	}
	query += ` LIMIT ?`
	args = append(args, f.Limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list body measurements: %w", err)
	}
	defer rows.Close()

	items := make([]model.BodyMeasurement, 0)
	for rows.Next() {
		var m model.BodyMeasurement
		var measuredAtRaw string
		var bodyFat sql.NullFloat64
		if err := rows.Scan(&m.ID, &measuredAtRaw, &m.WeightKg, &bodyFat, &m.Notes); err != nil {
			return nil, fmt.Errorf("scan body measurement: %w", err)
		}
		measured, err := time.Parse(time.RFC3339, measuredAtRaw)
		if err != nil {
			return nil, fmt.Errorf("parse measured_at: %w", err)
		}
		m.MeasuredAt = measured
		m.BodyFatPct = nullFloat(bodyFat)
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate body measurements: %w", err)
	}
	return items, nil
}

func DeleteBodyMeasurement(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("measurement id must be > 0")
	}
	res, err := db.Exec(`DELETE FROM body_measurements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete body measurement %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("body measurement %d not found", id)
	}
	return nil
}

// LatestBodyMeasurement returns the most recent measurement taken before the
// end of date, or nil if there is none. An empty date means today.
func LatestBodyMeasurement(db *sql.DB, date string) (*model.BodyMeasurement, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	to, err := parseDateEndExclusive(date)
	if err != nil {
		return nil, err
	}
	var m model.BodyMeasurement
	var measuredAtRaw string
	var bodyFat sql.NullFloat64
	err = db.QueryRow(`
SELECT id, measured_at, weight_kg, body_fat_pct, IFNULL(notes, '')
FROM body_measurements
WHERE measured_at < ?
ORDER BY measured_at DESC
LIMIT 1
`, to).Scan(&m.ID, &measuredAtRaw, &m.WeightKg, &bodyFat, &m.Notes)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("latest body measurement for %s: %w", date, err)
	}
	measured, err := time.Parse(time.RFC3339, measuredAtRaw)
	if err != nil {
		return nil, fmt.Errorf("parse measured_at: %w", err)
	}
	m.MeasuredAt = measured
	m.BodyFatPct = nullFloat(bodyFat)
	return &m, nil
}

// BuildBodyContext assembles the resolver's body snapshot for a date from
// the latest measurement and the stored profile. Missing inputs stay nil.
func BuildBodyContext(db *sql.DB, date string) (model.BodyContext, *TDEEEstimate, error) {
	profile, err := LoadBodyProfile(db)
	if err != nil {
		return model.BodyContext{}, nil, err
	}
	m, err := LatestBodyMeasurement(db, date)
	if err != nil {
		return model.BodyContext{}, nil, err
	}
	on := time.Now()
	if strings.TrimSpace(date) != "" {
		on, err = time.ParseInLocation("2006-01-02", strings.TrimSpace(date), time.Local)
		if err != nil {
			return model.BodyContext{}, nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
		}
	}
	body, estimate := bodyContextFrom(profile, m, on)
	if body.WeightKg == nil {
		logger.Debug("no body measurement available", "date", date)
	}
	if body.TDEEKcal == nil {
		logger.Debug("maintenance energy unavailable", "date", date)
	}
	return body, estimate, nil
}

func bodyContextFrom(profile model.BodyProfile, m *model.BodyMeasurement, on time.Time) (model.BodyContext, *TDEEEstimate) {
	body := model.BodyContext{EnergyUnit: profile.EnergyUnit}
	if body.EnergyUnit == "" {
		body.EnergyUnit = model.EnergyUnitKcal
	}
	if m != nil {
		body.WeightKg = floatPtr(m.WeightKg)
		if m.BodyFatPct != nil {
			if lbm, ok := LeanMassFromBodyFat(m.WeightKg, *m.BodyFatPct); ok {
				body.LeanMassKg = &lbm
			}
		} else if profile.Sex != nil && profile.HeightCm != nil {
			body.LeanMassKg = floatPtr(LeanMassBoer(*profile.Sex, m.WeightKg, *profile.HeightCm))
		}
	}

	if profile.TDEEOverrideKcal != nil {
		body.TDEEKcal = floatPtr(*profile.TDEEOverrideKcal)
		return body, nil
	}
	in := TDEEInput{
		Sex:              profile.Sex,
		HeightCm:         profile.HeightCm,
		WeightKg:         body.WeightKg,
		LeanMassKg:       body.LeanMassKg,
		Equation:         profile.Equation,
		ActivityLevel:    profile.ActivityLevel,
		ActiveEnergyKcal: profile.ActiveEnergyKcal,
	}
	if profile.BirthDate != nil {
		if age, err := AgeOn(*profile.BirthDate, on); err == nil {
			in.AgeYears = &age
		}
	}
	estimate, ok := EstimateTDEE(in)
	if !ok {
		return body, nil
	}
	body.TDEEKcal = floatPtr(estimate.TDEEKcal)
	return body, &estimate
}

func convertWeightToKg(value float64, unit string) (float64, error) {
	if value <= 0 {
		return 0, fmt.Errorf("weight must be > 0")
	}
	u, err := ParseWeightUnit(unit)
	if err != nil {
		return 0, err
	}
	return WeightToKg(value, u), nil
}
