package dietgoals

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/dietgoals/internal/service"
	"github.com/spf13/cobra"
)

var (
	doctorFix  bool
	doctorJSON bool
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check stored goal sets for goals that cannot resolve",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			fixed := report.Fixed
			if doctorFix && fixed > 0 {
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
				report.Fixed = fixed
			}
			if doctorJSON {
				if err := printJSON(cmd, "doctor report", report); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Goal sets: %d\n", report.GoalSets)
				fmt.Fprintf(out, "Goals: %d\n", report.Goals)
				if doctorFix {
					fmt.Fprintf(out, "Fixed: %d\n", fixed)
				}
				if len(report.Issues) > 0 {
					fmt.Fprintln(out, "SET\tGOAL\tPROBLEM\tFIXABLE")
					for _, issue := range report.Issues {
						goal := issue.Goal
						if goal == "" {
							goal = "-"
						}
						fmt.Fprintf(out, "%s\t%s\t%s\t%t\n", issue.GoalSet, goal, issue.Problem, issue.Fixable)
					}
				}
			}
			if len(report.Issues) > 0 {
				return fmt.Errorf("doctor found %d goal issue(s)", len(report.Issues))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Delete undecodable or misplaced goals and clear dangling diet links")
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "Output as JSON")
}
