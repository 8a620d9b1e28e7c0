package service

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/saadjs/dietgoals/internal/logger"
	"github.com/saadjs/dietgoals/internal/model"
)

const exportVersion = 1

type ExportGoalSet struct {
	Name    string                 `yaml:"name" json:"name"`
	Type    string                 `yaml:"type" json:"type"`
	DietSet string                 `yaml:"diet_set,omitempty" json:"diet_set,omitempty"`
	Goals   []model.GoalDefinition `yaml:"goals" json:"goals"`
}

type ExportBodyMeasurement struct {
	MeasuredAt string   `yaml:"measured_at" json:"measured_at"`
	WeightKg   float64  `yaml:"weight_kg" json:"weight_kg"`
	BodyFatPct *float64 `yaml:"body_fat_pct,omitempty" json:"body_fat_pct,omitempty"`
	Notes      string   `yaml:"notes,omitempty" json:"notes,omitempty"`
}

type ExportWorkout struct {
	Name        string  `yaml:"name" json:"name"`
	DurationMin float64 `yaml:"duration_min" json:"duration_min"`
	PerformedAt string  `yaml:"performed_at" json:"performed_at"`
	Notes       string  `yaml:"notes,omitempty" json:"notes,omitempty"`
}

type ExportData struct {
	Version          int                     `yaml:"version" json:"version"`
	GoalSets         []ExportGoalSet         `yaml:"goal_sets" json:"goal_sets"`
	BodyMeasurements []ExportBodyMeasurement `yaml:"body_measurements,omitempty" json:"body_measurements,omitempty"`
	Workouts         []ExportWorkout         `yaml:"workouts,omitempty" json:"workouts,omitempty"`
	Config           map[string]string       `yaml:"config,omitempty" json:"config,omitempty"`
}

type ImportMode string

const (
	ImportModeFail    ImportMode = "fail"
	ImportModeSkip    ImportMode = "skip"
	ImportModeMerge   ImportMode = "merge"
	ImportModeReplace ImportMode = "replace"
)

type ImportOptions struct {
	Mode   ImportMode
	DryRun bool
}

type ImportReport struct {
	Inserted  int      `yaml:"inserted" json:"inserted"`
	Updated   int      `yaml:"updated" json:"updated"`
	Skipped   int      `yaml:"skipped" json:"skipped"`
	Conflicts int      `yaml:"conflicts" json:"conflicts"`
	Warnings  []string `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

// ExportGoalSets snapshots the named goal sets, or every set when refs is
// empty. Body and workout history are included only with full.
func ExportGoalSets(db *sql.DB, refs []string, full bool) (*ExportData, error) {
	var sets []model.GoalSet
	if len(refs) == 0 {
		all, err := ListGoalSets(db)
		if err != nil {
			return nil, err
		}
		sets = all
	} else {
		for _, ref := range refs {
			set, err := mustGetGoalSet(db, ref)
			if err != nil {
				return nil, err
			}
			sets = append(sets, *set)
		}
	}

	names := map[string]string{}
	for _, s := range sets {
		names[s.ID] = s.Name
	}
	data := &ExportData{Version: exportVersion, GoalSets: make([]ExportGoalSet, 0, len(sets))}
	for _, s := range sets {
		out := ExportGoalSet{Name: s.Name, Type: string(s.Type), Goals: make([]model.GoalDefinition, 0, len(s.Goals))}
		if s.DietSetID != "" {
			name, ok := names[s.DietSetID]
			if !ok {
				diet, err := DietSetFor(db, s)
				if err != nil {
					return nil, err
				}
				if diet != nil {
					name = diet.Name
				}
			}
			out.DietSet = name
		}
		for _, g := range s.Goals {
			def, err := EncodeGoal(g)
			if err != nil {
				return nil, fmt.Errorf("export goal set %q: %w", s.Name, err)
			}
			out.Goals = append(out.Goals, def)
		}
		data.GoalSets = append(data.GoalSets, out)
	}
	if !full {
		return data, nil
	}

	measurements, err := ListBodyMeasurements(db, BodyMeasurementFilter{Limit: 100000})
	if err != nil {
		return nil, err
	}
	for i := len(measurements) - 1; i >= 0; i-- {
		m := measurements[i]
		data.BodyMeasurements = append(data.BodyMeasurements, ExportBodyMeasurement{
			MeasuredAt: m.MeasuredAt.Format(time.RFC3339),
			WeightKg:   m.WeightKg,
			BodyFatPct: m.BodyFatPct,
			Notes:      m.Notes,
		})
	}
	workouts, err := ListWorkouts(db, ListWorkoutFilter{Limit: 100000})
	if err != nil {
		return nil, err
	}
	for i := len(workouts) - 1; i >= 0; i-- {
		w := workouts[i]
		data.Workouts = append(data.Workouts, ExportWorkout{
			Name:        w.Name,
			DurationMin: w.DurationMin,
			PerformedAt: w.PerformedAt.Format(time.RFC3339),
			Notes:       w.Notes,
		})
	}
	cfg, err := ListConfig(db)
	if err != nil {
		return nil, err
	}
	if len(cfg) > 0 {
		data.Config = cfg
	}
	return data, nil
}

func WriteExport(w io.Writer, data *ExportData) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	return nil
}

// ReadExport decodes a YAML (or JSON) export document. Unknown fields are
// rejected.
func ReadExport(r io.Reader) (*ExportData, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var data ExportData
	if err := dec.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("import document is empty")
		}
		return nil, fmt.Errorf("decode import: %w", err)
	}
	if data.Version > exportVersion {
		return nil, fmt.Errorf("unsupported export version %d", data.Version)
	}
	return &data, nil
}

func ImportData(db *sql.DB, data *ExportData, opts ImportOptions) (ImportReport, error) {
	report := ImportReport{}
	mode := normalizeImportMode(opts.Mode)

	sets := make([]ExportGoalSet, len(data.GoalSets))
	copy(sets, data.GoalSets)
	// Diets first so meal sets can link to diets from the same document.
	sort.SliceStable(sets, func(i, j int) bool {
		return setTypeOrder(sets[i].Type) < setTypeOrder(sets[j].Type)
	})
	decoded := make([]model.GoalSet, 0, len(sets))
	for _, s := range sets {
		goals := make([]model.Goal, 0, len(s.Goals))
		for _, def := range s.Goals {
			g, err := DecodeGoal(def)
			if err != nil {
				return report, fmt.Errorf("import goal set %q: %w", s.Name, err)
			}
			goals = append(goals, g)
		}
		set, err := NewGoalSet(s.Name, model.GoalSetType(normalizeName(s.Type)), goals)
		if err != nil {
			return report, fmt.Errorf("import goal set %q: %w", s.Name, err)
		}
		if strings.TrimSpace(s.DietSet) != "" && set.Type != model.GoalSetMeal {
			return report, fmt.Errorf("import goal set %q: only meal goal sets can link to a diet", s.Name)
		}
		decoded = append(decoded, set)
	}

	tx, err := db.Begin()
	if err != nil {
		return report, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if mode == ImportModeReplace && !opts.DryRun {
		if err := clearUserData(tx); err != nil {
			return report, err
		}
	}

	for i, set := range decoded {
		existingID, err := goalSetIDTx(tx, set.Name)
		if err != nil {
			return report, err
		}
		if existingID != "" {
			switch mode {
			case ImportModeFail:
				report.Conflicts++
				return report, fmt.Errorf("goal set %q already exists", set.Name)
			case ImportModeSkip:
				report.Skipped++
				continue
			}
		}
		if opts.DryRun {
			if existingID != "" {
				report.Updated++
			} else {
				report.Inserted++
			}
			continue
		}

		var dietID any
		if name := strings.TrimSpace(sets[i].DietSet); name != "" {
			id, err := dietSetIDTx(tx, name)
			if err != nil {
				return report, err
			}
			if id == "" {
				report.Warnings = append(report.Warnings, fmt.Sprintf("goal set %q: diet set %q not found, left unlinked", set.Name, name))
			} else {
				dietID = id
			}
		}

		if existingID != "" {
			if _, err := tx.Exec(`DELETE FROM goals WHERE goal_set_id = ?`, existingID); err != nil {
				return report, fmt.Errorf("clear goals of %q: %w", set.Name, err)
			}
			if _, err := tx.Exec(`UPDATE goal_sets SET set_type = ?, diet_set_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, string(set.Type), dietID, existingID); err != nil {
				return report, fmt.Errorf("update goal set %q: %w", set.Name, err)
			}
			set.ID = existingID
			report.Updated++
		} else {
			set.ID = uuid.NewString()
			if _, err := tx.Exec(`INSERT INTO goal_sets(id, name, set_type, diet_set_id) VALUES(?, ?, ?, ?)`, set.ID, set.Name, string(set.Type), dietID); err != nil {
				return report, fmt.Errorf("import goal set %q: %w", set.Name, err)
			}
			report.Inserted++
		}
		for pos, g := range set.Goals {
			if err := insertGoal(tx, set.ID, pos, g); err != nil {
				return report, err
			}
		}
	}

	for _, b := range data.BodyMeasurements {
		measured, err := time.Parse(time.RFC3339, b.MeasuredAt)
		if err != nil {
			return report, fmt.Errorf("import body measurement %q: invalid measured_at", b.MeasuredAt)
		}
		exists, err := bodyMeasurementExistsTx(tx, measured, b.WeightKg)
		if err != nil {
			return report, err
		}
		if exists {
			report.Skipped++
			continue
		}
		if opts.DryRun {
			report.Inserted++
			continue
		}
		if _, err := tx.Exec(`INSERT INTO body_measurements(measured_at, weight_kg, body_fat_pct, notes) VALUES(?, ?, ?, ?)`, measured.Format(time.RFC3339), b.WeightKg, b.BodyFatPct, b.Notes); err != nil {
			return report, fmt.Errorf("import body measurement %s: %w", b.MeasuredAt, err)
		}
		report.Inserted++
	}
	for _, w := range data.Workouts {
		performed, err := time.Parse(time.RFC3339, w.PerformedAt)
		if err != nil {
			return report, fmt.Errorf("import workout %q: invalid performed_at", w.Name)
		}
		exists, err := workoutExistsTx(tx, performed, w.Name)
		if err != nil {
			return report, err
		}
		if exists {
			report.Skipped++
			continue
		}
		if opts.DryRun {
			report.Inserted++
			continue
		}
		if _, err := tx.Exec(`INSERT INTO workouts(name, duration_min, performed_at, notes) VALUES(?, ?, ?, ?)`, w.Name, w.DurationMin, performed.Format(time.RFC3339), nullableString(w.Notes)); err != nil {
			return report, fmt.Errorf("import workout %q: %w", w.Name, err)
		}
		report.Inserted++
	}
	keys := make([]string, 0, len(data.Config))
	for k := range data.Config {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if opts.DryRun {
			report.Updated++
			continue
		}
		if _, err := tx.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, normalizeName(k), strings.TrimSpace(data.Config[k])); err != nil {
			return report, fmt.Errorf("import config %q: %w", k, err)
		}
		report.Updated++
	}

	if opts.DryRun {
		return report, nil
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("commit import: %w", err)
	}
	logger.Info("imported data", "mode", string(mode), "inserted", report.Inserted, "updated", report.Updated, "skipped", report.Skipped)
	return report, nil
}

func normalizeImportMode(mode ImportMode) ImportMode {
	switch mode {
	case ImportModeFail, ImportModeSkip, ImportModeMerge, ImportModeReplace:
		return mode
	default:
		return ImportModeMerge
	}
}

func setTypeOrder(t string) int {
	if normalizeName(t) == string(model.GoalSetMeal) {
		return 1
	}
	return 0
}

func goalSetIDTx(tx *sql.Tx, name string) (string, error) {
	var id string
	err := tx.QueryRow(`SELECT id FROM goal_sets WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find goal set %q: %w", name, err)
	}
	return id, nil
}

func dietSetIDTx(tx *sql.Tx, name string) (string, error) {
	var id string
	err := tx.QueryRow(`SELECT id FROM goal_sets WHERE name = ? AND set_type = 'diet'`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find diet set %q: %w", name, err)
	}
	return id, nil
}

// Body and workout rows have no natural key; a row with the same timestamp
// and weight (or name) counts as already imported.
func bodyMeasurementExistsTx(tx *sql.Tx, measuredAt time.Time, weightKg float64) (bool, error) {
	var n int
	if err := tx.QueryRow(`SELECT COUNT(1) FROM body_measurements WHERE measured_at = ? AND weight_kg = ?`, measuredAt.Format(time.RFC3339), weightKg).Scan(&n); err != nil {
		return false, fmt.Errorf("check body measurement %s: %w", measuredAt.Format(time.RFC3339), err)
	}
	return n > 0, nil
}

func workoutExistsTx(tx *sql.Tx, performedAt time.Time, name string) (bool, error) {
	var n int
	if err := tx.QueryRow(`SELECT COUNT(1) FROM workouts WHERE performed_at = ? AND name = ?`, performedAt.Format(time.RFC3339), strings.TrimSpace(name)).Scan(&n); err != nil {
		return false, fmt.Errorf("check workout %q: %w", name, err)
	}
	return n > 0, nil
}

func clearUserData(tx *sql.Tx) error {
	for _, table := range []string{"goals", "goal_sets", "body_measurements", "workouts", "app_config"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
