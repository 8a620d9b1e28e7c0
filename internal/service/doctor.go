package service

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/dietgoals/internal/logger"
	"github.com/saadjs/dietgoals/internal/model"
)

type DoctorIssue struct {
	GoalSet  string `json:"goal_set" yaml:"goal_set"`
	Goal     string `json:"goal,omitempty" yaml:"goal,omitempty"`
	Problem  string `json:"problem" yaml:"problem"`
	Fixable  bool   `json:"fixable" yaml:"fixable"`
	goalRow  int64
	setID    string
	unlinkID bool
}

type DoctorReport struct {
	GoalSets int           `json:"goal_sets" yaml:"goal_sets"`
	Goals    int           `json:"goals" yaml:"goals"`
	Issues   []DoctorIssue `json:"issues" yaml:"issues"`
	Fixed    int           `json:"fixed,omitempty" yaml:"fixed,omitempty"`
}

const (
	ProblemUndecodable      = "stored goal cannot be decoded"
	ProblemInvalidForSet    = "goal is not valid for this set type"
	ProblemUnconfigured     = "goal has no bounds"
	ProblemEqualBounds      = "lower and upper bounds are equal; the lower bound will not resolve"
	ProblemInvertedBounds   = "lower bound is above upper bound"
	ProblemDanglingDietLink = "linked diet set no longer exists"
	ProblemMissingDietLink  = "percent of diet goal without a linked diet set"
	ProblemMissingEnergy    = "percentage of energy goal without an energy goal"
)

type storedGoalRow struct {
	id  int64
	def model.GoalDefinition
}

// RunDoctor checks stored goal sets for goals that cannot resolve as
// configured. With fix, undecodable or misplaced goals are deleted and
// dangling diet links are cleared.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{Issues: make([]DoctorIssue, 0)}

	type setRow struct {
		id, name, setType string
		dietSetID         sql.NullString
		dietExists        bool
	}
	rows, err := db.Query(`
SELECT s.id, s.name, s.set_type, s.diet_set_id, d.id IS NOT NULL
FROM goal_sets s
LEFT JOIN goal_sets d ON d.id = s.diet_set_id
ORDER BY s.set_type ASC, s.name ASC
`)
	if err != nil {
		return report, fmt.Errorf("doctor goal set query: %w", err)
	}
	sets := make([]setRow, 0)
	for rows.Next() {
		var s setRow
		if err := rows.Scan(&s.id, &s.name, &s.setType, &s.dietSetID, &s.dietExists); err != nil {
			_ = rows.Close()
			return report, fmt.Errorf("doctor goal set scan: %w", err)
		}
		sets = append(sets, s)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return report, fmt.Errorf("doctor goal set iterate: %w", err)
	}
	_ = rows.Close()
	report.GoalSets = len(sets)

	for _, s := range sets {
		if s.dietSetID.Valid && !s.dietExists {
			report.Issues = append(report.Issues, DoctorIssue{GoalSet: s.name, Problem: ProblemDanglingDietLink, Fixable: true, setID: s.id, unlinkID: true})
		}
		stored, err := listStoredGoalRows(db, s.id)
		if err != nil {
			return report, err
		}
		report.Goals += len(stored)

		setType := model.GoalSetType(s.setType)
		hasEnergy := false
		decoded := make([]model.Goal, 0, len(stored))
		for _, row := range stored {
			g, err := DecodeGoal(row.def)
			if err != nil {
				report.Issues = append(report.Issues, DoctorIssue{GoalSet: s.name, Goal: row.def.Kind, Problem: ProblemUndecodable + ": " + err.Error(), Fixable: true, goalRow: row.id})
				continue
			}
			if err := ValidateGoal(g, setType); err != nil {
				report.Issues = append(report.Issues, DoctorIssue{GoalSet: s.name, Goal: g.Kind.Identity(), Problem: ProblemInvalidForSet + ": " + err.Error(), Fixable: true, goalRow: row.id})
				continue
			}
			if g.IsEnergy() {
				hasEnergy = true
			}
			decoded = append(decoded, g)
		}

		for _, g := range decoded {
			issue := DoctorIssue{GoalSet: s.name, Goal: g.Kind.Identity()}
			switch {
			case g.LowerBound == nil && g.UpperBound == nil:
				issue.Problem = ProblemUnconfigured
			case g.LowerBound != nil && g.UpperBound != nil && *g.LowerBound == *g.UpperBound:
				issue.Problem = ProblemEqualBounds
			case g.LowerBound != nil && g.UpperBound != nil && *g.LowerBound > *g.UpperBound:
				issue.Problem = ProblemInvertedBounds
			}
			if issue.Problem != "" {
				report.Issues = append(report.Issues, issue)
			}
			if k, ok := g.Kind.(model.EnergyKind); ok {
				if _, ok := k.Derivation.(model.PercentOfDietGoal); ok && !s.dietSetID.Valid {
					report.Issues = append(report.Issues, DoctorIssue{GoalSet: s.name, Goal: g.Kind.Identity(), Problem: ProblemMissingDietLink})
				}
			}
			if usesPercentOfEnergy(g) && !hasEnergy {
				report.Issues = append(report.Issues, DoctorIssue{GoalSet: s.name, Goal: g.Kind.Identity(), Problem: ProblemMissingEnergy})
			}
		}
	}

	for _, issue := range report.Issues {
		logger.Debug("doctor finding", "set", issue.GoalSet, "goal", issue.Goal, "problem", issue.Problem)
	}
	if fix {
		fixed, err := applyDoctorFixes(db, report.Issues)
		if err != nil {
			return report, err
		}
		report.Fixed = fixed
		if fixed > 0 {
			logger.Info("doctor fixed goal rows", "count", fixed)
		}
	}
	return report, nil
}

func usesPercentOfEnergy(g model.Goal) bool {
	switch k := g.Kind.(type) {
	case model.MacroKind:
		_, ok := k.Derivation.(model.PercentageOfEnergy)
		return ok
	case model.MicroKind:
		_, ok := k.Derivation.(model.PercentageOfEnergy)
		return ok
	}
	return false
}

func applyDoctorFixes(db *sql.DB, issues []DoctorIssue) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("doctor fix begin tx: %w", err)
	}
	fixed := 0
	for _, issue := range issues {
		if !issue.Fixable {
			continue
		}
		if issue.unlinkID {
			if _, err := tx.Exec(`UPDATE goal_sets SET diet_set_id = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, issue.setID); err != nil {
				_ = tx.Rollback()
				return 0, fmt.Errorf("doctor unlink diet for %q: %w", issue.GoalSet, err)
			}
		} else {
			if _, err := tx.Exec(`DELETE FROM goals WHERE id = ?`, issue.goalRow); err != nil {
				_ = tx.Rollback()
				return 0, fmt.Errorf("doctor delete goal row %d: %w", issue.goalRow, err)
			}
		}
		fixed++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("doctor fix commit: %w", err)
	}
	return fixed, nil
}

func listStoredGoalRows(db *sql.DB, setID string) ([]storedGoalRow, error) {
	rows, err := db.Query(`
SELECT id, kind, derivation, IFNULL(macro, ''), IFNULL(nutrient, ''), IFNULL(unit, ''), IFNULL(delta, ''),
       IFNULL(body_mass, ''), IFNULL(per_unit, ''), per_amount, lower_bound, upper_bound, auto_generated
FROM goals
WHERE goal_set_id = ?
ORDER BY position ASC, id ASC
`, setID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()
	out := make([]storedGoalRow, 0)
	for rows.Next() {
		var row storedGoalRow
		var perAmount, lower, upper sql.NullFloat64
		if err := rows.Scan(&row.id, &row.def.Kind, &row.def.Derivation, &row.def.Macro, &row.def.Nutrient, &row.def.Unit,
			&row.def.Delta, &row.def.BodyMass, &row.def.PerUnit, &perAmount, &lower, &upper, &row.def.AutoGenerated); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		row.def.PerAmount = nullFloat(perAmount)
		row.def.Lower = nullFloat(lower)
		row.def.Upper = nullFloat(upper)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return out, nil
}
