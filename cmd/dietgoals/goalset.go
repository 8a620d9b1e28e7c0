package dietgoals

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/dietgoals/internal/model"
	"github.com/saadjs/dietgoals/internal/service"
	"github.com/spf13/cobra"
)

var goalsetCmd = &cobra.Command{
	Use:     "goalset",
	Aliases: []string{"set"},
	Short:   "Manage diet and meal goal sets",
}

var (
	goalsetType string
	goalsetDiet string
	goalsetJSON bool
)

var goalsetCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty goal set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			set, err := service.CreateGoalSet(sqldb, service.CreateGoalSetInput{
				Name:    args[0],
				Type:    model.GoalSetType(goalsetType),
				DietSet: goalsetDiet,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s goal set %q (%s)\n", set.Type, set.Name, set.ID)
			return nil
		})
	},
}

var goalsetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goal sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			sets, err := service.ListGoalSets(sqldb)
			if err != nil {
				return err
			}
			names := map[string]string{}
			for _, s := range sets {
				names[s.ID] = s.Name
			}
			fmt.Fprintln(cmd.OutOrStdout(), "NAME\tTYPE\tGOALS\tDIET\tUPDATED")
			for _, s := range sets {
				diet := names[s.DietSetID]
				if diet == "" {
					diet = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\t%s\n", s.Name, s.Type, len(s.Goals), diet, s.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

type goalRow struct {
	Identity      string   `json:"identity"`
	Label         string   `json:"label"`
	Derivation    string   `json:"derivation"`
	Lower         *float64 `json:"lower,omitempty"`
	Upper         *float64 `json:"upper,omitempty"`
	AutoGenerated bool     `json:"auto_generated,omitempty"`
}

var goalsetShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the raw goals of a goal set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			set, err := service.GetGoalSet(sqldb, args[0])
			if err != nil {
				return err
			}
			if set == nil {
				return fmt.Errorf("goal set %q not found", args[0])
			}
			rows := make([]goalRow, 0, len(set.Goals))
			for _, g := range set.Goals {
				rows = append(rows, goalRow{
					Identity:      g.Kind.Identity(),
					Label:         goalLabel(g),
					Derivation:    describeDerivation(g),
					Lower:         g.LowerBound,
					Upper:         g.UpperBound,
					AutoGenerated: g.IsAutoGenerated,
				})
			}
			if goalsetJSON {
				return printJSON(cmd, "goal set", map[string]any{"name": set.Name, "type": set.Type, "id": set.ID, "goals": rows})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", set.Name, set.Type)
			if diet, err := service.DietSetFor(sqldb, *set); err != nil {
				return err
			} else if diet != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Diet: %s\n", diet.Name)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "GOAL\tNAME\tMODE\tLOWER\tUPPER")
			for _, r := range rows {
				name := r.Label
				if r.AutoGenerated {
					name += " (auto)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n", r.Identity, name, r.Derivation, formatOptional(r.Lower, 2), formatOptional(r.Upper, 2))
			}
			return nil
		})
	},
}

var goalsetRenameCmd = &cobra.Command{
	Use:   "rename <name> <new-name>",
	Short: "Rename a goal set",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.RenameGoalSet(sqldb, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed goal set %q to %q\n", args[0], args[1])
			return nil
		})
	},
}

var goalsetDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a goal set and its goals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteGoalSet(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted goal set %q\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalsetCmd)
	goalsetCmd.AddCommand(goalsetCreateCmd, goalsetListCmd, goalsetShowCmd, goalsetRenameCmd, goalsetDeleteCmd)

	goalsetCreateCmd.Flags().StringVar(&goalsetType, "type", "diet", "Goal set type: diet or meal")
	goalsetCreateCmd.Flags().StringVar(&goalsetDiet, "diet", "", "Diet goal set a meal set draws from")
	goalsetShowCmd.Flags().BoolVar(&goalsetJSON, "json", false, "Output as JSON")
}
