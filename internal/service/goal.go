package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/saadjs/dietgoals/internal/logger"
	"github.com/saadjs/dietgoals/internal/model"
)

type CreateGoalSetInput struct {
	Name string
	Type model.GoalSetType
	// DietSet names or identifies the diet set a meal set draws from.
	DietSet string
	Goals   []model.Goal
}

func CreateGoalSet(db *sql.DB, in CreateGoalSetInput) (model.GoalSet, error) {
	set, err := NewGoalSet(in.Name, in.Type, in.Goals)
	if err != nil {
		return model.GoalSet{}, err
	}
	if strings.TrimSpace(in.DietSet) != "" {
		if set.Type != model.GoalSetMeal {
			return model.GoalSet{}, fmt.Errorf("only meal goal sets can link to a diet")
		}
		diet, err := GetGoalSet(db, in.DietSet)
		if err != nil {
			return model.GoalSet{}, err
		}
		if diet == nil {
			return model.GoalSet{}, fmt.Errorf("diet goal set %q does not exist", in.DietSet)
		}
		if diet.Type != model.GoalSetDiet {
			return model.GoalSet{}, fmt.Errorf("goal set %q is not a diet", diet.Name)
		}
		set.DietSetID = diet.ID
	}
	set.ID = uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return model.GoalSet{}, fmt.Errorf("begin goal set tx: %w", err)
	}
	if _, err := tx.Exec(`
INSERT INTO goal_sets(id, name, set_type, diet_set_id)
VALUES(?, ?, ?, ?)
`, set.ID, set.Name, string(set.Type), nullableString(set.DietSetID)); err != nil {
		_ = tx.Rollback()
		if strings.Contains(err.Error(), "UNIQUE") {
			return model.GoalSet{}, fmt.Errorf("goal set %q already exists", set.Name)
		}
		return model.GoalSet{}, fmt.Errorf("create goal set: %w", err)
	}
	for i, g := range set.Goals {
		if err := insertGoal(tx, set.ID, i, g); err != nil {
			_ = tx.Rollback()
			return model.GoalSet{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return model.GoalSet{}, fmt.Errorf("commit goal set: %w", err)
	}
	logger.Info("created goal set", "id", set.ID, "name", set.Name, "goals", len(set.Goals))

	created, err := GetGoalSet(db, set.ID)
	if err != nil {
		return model.GoalSet{}, err
	}
	return *created, nil
}

// GetGoalSet looks a set up by id or name. It returns nil when none matches.
func GetGoalSet(db *sql.DB, ref string) (*model.GoalSet, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("goal set name or id is required")
	}
	var set model.GoalSet
	var setType string
	var dietSetID sql.NullString
	err := db.QueryRow(`
SELECT id, name, set_type, diet_set_id, created_at, updated_at
FROM goal_sets
WHERE id = ? OR name = ?
LIMIT 1
`, ref, ref).Scan(&set.ID, &set.Name, &setType, &dietSetID, &set.CreatedAt, &set.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get goal set %q: %w", ref, err)
	}
	set.Type = model.GoalSetType(setType)
	if dietSetID.Valid {
		set.DietSetID = dietSetID.String
	}
	goals, err := listGoals(db, set.ID)
	if err != nil {
		return nil, err
	}
	set.Goals = goals
	return &set, nil
}

func mustGetGoalSet(db *sql.DB, ref string) (*model.GoalSet, error) {
	set, err := GetGoalSet(db, ref)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, fmt.Errorf("goal set %q not found", ref)
	}
	return set, nil
}

func ListGoalSets(db *sql.DB) ([]model.GoalSet, error) {
	rows, err := db.Query(`SELECT id FROM goal_sets ORDER BY set_type ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list goal sets: %w", err)
	}
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan goal set: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate goal sets: %w", err)
	}
	rows.Close()

	sets := make([]model.GoalSet, 0, len(ids))
	for _, id := range ids {
		set, err := mustGetGoalSet(db, id)
		if err != nil {
			return nil, err
		}
		sets = append(sets, *set)
	}
	return sets, nil
}

func RenameGoalSet(db *sql.DB, ref, name string) error {
	set, err := mustGetGoalSet(db, ref)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("goal set name is required")
	}
	if _, err := db.Exec(`UPDATE goal_sets SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, name, set.ID); err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return fmt.Errorf("goal set %q already exists", name)
		}
		return fmt.Errorf("rename goal set %q: %w", set.Name, err)
	}
	return nil
}

func DeleteGoalSet(db *sql.DB, ref string) error {
	set, err := mustGetGoalSet(db, ref)
	if err != nil {
		return err
	}
	if _, err := db.Exec(`DELETE FROM goal_sets WHERE id = ?`, set.ID); err != nil {
		return fmt.Errorf("delete goal set %q: %w", set.Name, err)
	}
	logger.Info("deleted goal set", "id", set.ID, "name", set.Name)
	return nil
}

// PutGoal adds a goal to a set, replacing any goal of the same kind identity
// in place.
func PutGoal(db *sql.DB, ref string, g model.Goal) error {
	set, err := mustGetGoalSet(db, ref)
	if err != nil {
		return err
	}
	if err := ValidateGoal(g, set.Type); err != nil {
		return err
	}
	position := len(set.Goals)
	for i, existing := range set.Goals {
		if existing.Kind.Identity() == g.Kind.Identity() {
			position = i
			break
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin goal tx: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM goals WHERE goal_set_id = ? AND identity = ?`, set.ID, g.Kind.Identity()); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("replace goal %q: %w", g.Kind.Identity(), err)
	}
	if err := insertGoal(tx, set.ID, position, g); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`UPDATE goal_sets SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, set.ID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("touch goal set %q: %w", set.Name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit goal: %w", err)
	}
	logger.Debug("stored goal", "set", set.Name, "goal", g.Kind.Identity())
	return nil
}

// RemoveGoal deletes the goal with the given kind identity, e.g. "energy",
// "macro:protein" or "micro:sodium".
func RemoveGoal(db *sql.DB, ref, identity string) error {
	set, err := mustGetGoalSet(db, ref)
	if err != nil {
		return err
	}
	res, err := db.Exec(`DELETE FROM goals WHERE goal_set_id = ? AND identity = ?`, set.ID, strings.TrimSpace(identity))
	if err != nil {
		return fmt.Errorf("remove goal %q: %w", identity, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("goal %q not found in set %q", identity, set.Name)
	}
	return nil
}

// DietSetFor returns the diet a meal set is linked to, or nil.
func DietSetFor(db *sql.DB, set model.GoalSet) (*model.GoalSet, error) {
	if set.DietSetID == "" {
		return nil, nil
	}
	return GetGoalSet(db, set.DietSetID)
}

func insertGoal(tx *sql.Tx, setID string, position int, g model.Goal) error {
	def, err := EncodeGoal(g)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`
INSERT INTO goals(goal_set_id, position, identity, kind, derivation, macro, nutrient, unit, delta, body_mass, per_unit, per_amount, lower_bound, upper_bound, auto_generated)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, setID, position, g.Kind.Identity(), def.Kind, def.Derivation,
		nullableString(def.Macro), nullableString(def.Nutrient), nullableString(def.Unit),
		nullableString(def.Delta), nullableString(def.BodyMass), nullableString(def.PerUnit),
		def.PerAmount, def.Lower, def.Upper, def.AutoGenerated)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return fmt.Errorf("duplicate goal %q in set", g.Kind.Identity())
		}
		return fmt.Errorf("insert goal %q: %w", g.Kind.Identity(), err)
	}
	return nil
}

func listGoals(db *sql.DB, setID string) ([]model.Goal, error) {
	stored, err := listStoredGoalRows(db, setID)
	if err != nil {
		return nil, err
	}
	goals := make([]model.Goal, 0, len(stored))
	for _, row := range stored {
		g, err := DecodeGoal(row.def)
		if err != nil {
			return nil, fmt.Errorf("decode stored goal %d: %w", row.id, err)
		}
		goals = append(goals, g)
	}
	return goals, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
