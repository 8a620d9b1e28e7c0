package dietgoals

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/dietgoals/internal/service"
	"github.com/spf13/cobra"
)

var (
	resolveDate    string
	resolveWorkout string
	resolveJSON    bool
)

type resolvedRow struct {
	Identity string   `json:"identity"`
	Label    string   `json:"label"`
	Unit     string   `json:"unit"`
	Lower    *float64 `json:"lower,omitempty"`
	Upper    *float64 `json:"upper,omitempty"`
}

type resolveReport struct {
	Set             string        `json:"set"`
	Type            string        `json:"type"`
	Date            string        `json:"date"`
	EnergyUnit      string        `json:"energy_unit"`
	WeightKg        *float64      `json:"weight_kg,omitempty"`
	LeanMassKg      *float64      `json:"lean_mass_kg,omitempty"`
	MaintenanceKcal *float64      `json:"maintenance_kcal,omitempty"`
	DietEnergy      *float64      `json:"diet_energy,omitempty"`
	WorkoutMinutes  float64       `json:"workout_minutes,omitempty"`
	Goals           []resolvedRow `json:"goals"`
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <set>",
	Short: "Resolve a goal set into concrete ranges for a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := service.ResolveRequest{Date: resolveDate}
		if strings.TrimSpace(resolveWorkout) != "" {
			d, err := service.ParseWorkoutDuration(resolveWorkout)
			if err != nil {
				return err
			}
			req.Workout = &d
		}
		return withDB(func(sqldb *sql.DB) error {
			plan, err := service.ResolveStoredGoalSet(sqldb, args[0], req)
			if err != nil {
				return err
			}
			report := resolveReport{
				Set:             plan.Set.Name,
				Type:            string(plan.Set.Type),
				Date:            resolveDate,
				EnergyUnit:      string(plan.Body.EnergyUnit),
				WeightKg:        plan.Body.WeightKg,
				LeanMassKg:      plan.Body.LeanMassKg,
				MaintenanceKcal: plan.Body.TDEEKcal,
				DietEnergy:      plan.DietEnergy,
				WorkoutMinutes:  plan.WorkoutDuration.Minutes(),
				Goals:           make([]resolvedRow, 0, len(plan.Goals)),
			}
			if report.Date == "" {
				report.Date = time.Now().Format("2006-01-02")
			}
			for _, rg := range plan.Goals {
				report.Goals = append(report.Goals, resolvedRow{
					Identity: rg.Goal.Kind.Identity(),
					Label:    goalLabel(rg.Goal),
					Unit:     resolvedUnit(rg.Goal, plan.Body.EnergyUnit),
					Lower:    rg.Lower,
					Upper:    rg.Upper,
				})
			}
			if resolveJSON {
				return printJSON(cmd, "resolve", report)
			}
			printResolveReport(cmd, report)
			return nil
		})
	},
}

func printResolveReport(cmd *cobra.Command, r resolveReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s) for %s\n", r.Set, r.Type, r.Date)
	fmt.Fprintf(out, "Weight: %s kg  Lean mass: %s kg  Maintenance: %s kcal\n",
		formatOptional(r.WeightKg, 1), formatOptional(r.LeanMassKg, 1), formatOptional(r.MaintenanceKcal, 0))
	if r.Type == "meal" {
		fmt.Fprintf(out, "Diet energy: %s %s  Workout: %s min\n", formatOptional(r.DietEnergy, 0), r.EnergyUnit, formatNumber(r.WorkoutMinutes))
	}
	fmt.Fprintln(out, "GOAL\tLOWER\tUPPER\tUNIT")
	for _, g := range r.Goals {
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", g.Label, formatOptional(g.Lower, 1), formatOptional(g.Upper, 1), g.Unit)
	}
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVar(&resolveDate, "date", "", "Date YYYY-MM-DD (default today)")
	resolveCmd.Flags().StringVar(&resolveWorkout, "workout", "", "Workout duration for meal sets, e.g. 45m (default: latest logged workout)")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Output as JSON")
}
