package dietgoals

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/dietgoals/internal/service"
	"github.com/spf13/cobra"
)

var workoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Log workouts used by per-workout meal goals",
}

var (
	workoutName     string
	workoutDuration float64
	workoutUnit     string
	workoutDate     string
	workoutTime     string
	workoutNotes    string
)

var workoutAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		performedAt, err := parseDateTimeOrNow(workoutDate, workoutTime)
		if err != nil {
			return err
		}
		in := service.WorkoutInput{
			Name:        workoutName,
			Duration:    workoutDuration,
			Unit:        workoutUnit,
			PerformedAt: performedAt,
			Notes:       workoutNotes,
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.AddWorkout(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added workout %d\n", id)
			return nil
		})
	},
}

var (
	workoutListDate string
	workoutFrom     string
	workoutTo       string
	workoutLimit    int
)

var workoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := service.ListWorkoutFilter{Date: workoutListDate, FromDate: workoutFrom, ToDate: workoutTo, Limit: workoutLimit}
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListWorkouts(sqldb, filter)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tNAME\tMINUTES\tNOTES")
			for _, w := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\n", w.ID, w.PerformedAt.Local().Format("2006-01-02 15:04"), w.Name, formatNumber(w.DurationMin), w.Notes)
			}
			return nil
		})
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("workout id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteWorkout(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted workout %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(workoutCmd)
	workoutCmd.AddCommand(workoutAddCmd, workoutListCmd, workoutDeleteCmd)

	workoutAddCmd.Flags().StringVar(&workoutName, "name", "", "Workout name")
	workoutAddCmd.Flags().Float64Var(&workoutDuration, "duration", 0, "Workout duration")
	workoutAddCmd.Flags().StringVar(&workoutUnit, "unit", "min", "Duration unit: min or hr")
	workoutAddCmd.Flags().StringVar(&workoutDate, "date", "", "Date YYYY-MM-DD")
	workoutAddCmd.Flags().StringVar(&workoutTime, "time", "", "Time HH:MM")
	workoutAddCmd.Flags().StringVar(&workoutNotes, "notes", "", "Notes")
	_ = workoutAddCmd.MarkFlagRequired("name")
	_ = workoutAddCmd.MarkFlagRequired("duration")

	workoutListCmd.Flags().StringVar(&workoutListDate, "date", "", "Date YYYY-MM-DD")
	workoutListCmd.Flags().StringVar(&workoutFrom, "from", "", "From date YYYY-MM-DD")
	workoutListCmd.Flags().StringVar(&workoutTo, "to", "", "To date YYYY-MM-DD")
	workoutListCmd.Flags().IntVar(&workoutLimit, "limit", 0, "Max rows")
}
