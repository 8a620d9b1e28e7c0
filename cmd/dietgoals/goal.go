package dietgoals

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/dietgoals/internal/model"
	"github.com/saadjs/dietgoals/internal/service"
	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Add, replace or remove goals in a goal set",
}

var (
	goalKind       string
	goalDerivation string
	goalMacro      string
	goalNutrient   string
	goalUnit       string
	goalDelta      string
	goalBodyMass   string
	goalPerUnit    string
	goalPerAmount  float64
	goalLower      float64
	goalUpper      float64
	goalAuto       bool
)

var goalAddCmd = &cobra.Command{
	Use:   "add <set>",
	Short: "Add a goal, replacing any goal of the same kind",
	Long: "Add a goal to a goal set. Energy derivations: fixed, from_maintenance, percent_from_maintenance,\n" +
		"percent_of_diet_goal (meal sets). Macro and micro derivations: fixed, percentage_of_energy,\n" +
		"per_body_mass (diet sets), per_energy, per_workout_duration (meal sets).",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def := model.GoalDefinition{
			Kind:          goalKind,
			Derivation:    goalDerivation,
			Macro:         goalMacro,
			Nutrient:      goalNutrient,
			Unit:          goalUnit,
			Delta:         goalDelta,
			BodyMass:      goalBodyMass,
			PerUnit:       goalPerUnit,
			PerAmount:     optionalFloat(cmd, "per-amount", goalPerAmount),
			Lower:         optionalFloat(cmd, "lower", goalLower),
			Upper:         optionalFloat(cmd, "upper", goalUpper),
			AutoGenerated: goalAuto,
		}
		g, err := service.DecodeGoal(def)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.PutGoal(sqldb, args[0], g); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s goal in %q\n", g.Kind.Identity(), args[0])
			return nil
		})
	},
}

var goalRemoveCmd = &cobra.Command{
	Use:   "remove <set> <goal>",
	Short: "Remove a goal by identity (energy, macro:<macro>, micro:<nutrient>)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.RemoveGoal(sqldb, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %q\n", args[1], args[0])
			return nil
		})
	},
}

var nutrientsCmd = &cobra.Command{
	Use:   "nutrients",
	Short: "List micronutrients available for micro goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "KEY\tNAME\tUNITS\tKCAL/G")
		for _, info := range model.Nutrients() {
			units := ""
			for i, u := range info.Units {
				if i > 0 {
					units += ","
				}
				units += string(u)
			}
			density := "-"
			if v, ok := service.NutrientKcalPerGram(info.Nutrient); ok {
				density = formatNumber(v)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", info.Key, info.Name, units, density)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(goalCmd, nutrientsCmd)
	goalCmd.AddCommand(goalAddCmd, goalRemoveCmd)

	f := goalAddCmd.Flags()
	f.StringVar(&goalKind, "kind", "", "Goal kind: energy, macro or micro")
	f.StringVar(&goalDerivation, "derivation", "fixed", "How the bounds are interpreted")
	f.StringVar(&goalMacro, "macro", "", "Macro: carb, fat or protein")
	f.StringVar(&goalNutrient, "nutrient", "", "Micronutrient key (see 'dietgoals nutrients')")
	f.StringVar(&goalUnit, "unit", "", "Energy unit (kcal, kj) or nutrient unit (g, mg, mcg, iu)")
	f.StringVar(&goalDelta, "delta", "", "deficit or surplus, for maintenance-based energy goals")
	f.StringVar(&goalBodyMass, "body-mass", "weight", "weight or lean_mass, for per_body_mass goals")
	f.StringVar(&goalPerUnit, "per-unit", "", "Unit of the divisor: kg/lb, kcal/kj or min/hr")
	f.Float64Var(&goalPerAmount, "per-amount", 0, "Energy amount for per_energy goals, e.g. 1000")
	f.Float64Var(&goalLower, "lower", 0, "Lower bound")
	f.Float64Var(&goalUpper, "upper", 0, "Upper bound")
	f.BoolVar(&goalAuto, "auto", false, "Mark the goal as auto-generated")
	_ = goalAddCmd.MarkFlagRequired("kind")
}
