package dietgoals

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/dietgoals/internal/model"
	"github.com/saadjs/dietgoals/internal/service"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the body profile used to estimate maintenance energy",
}

var (
	profileSex         string
	profileBirthDate   string
	profileHeight      float64
	profileHeightUnit  string
	profileActivity    string
	profileEquation    string
	profileEnergyUnit  string
	profileTDEE        float64
	profileTDEEUnit    string
	profileClearTDEE   bool
	profileActive      float64
	profileActiveUnit  string
	profileClearActive bool
	profileJSON        bool
	profileDate        string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set body profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.SetBodyProfileInput{
			Sex:           optionalString(cmd, "sex", profileSex),
			BirthDate:     optionalString(cmd, "birth-date", profileBirthDate),
			Height:        optionalFloat(cmd, "height", profileHeight),
			HeightUnit:    profileHeightUnit,
			ActivityLevel: optionalString(cmd, "activity", profileActivity),
			Equation:      optionalString(cmd, "equation", profileEquation),
			EnergyUnit:    optionalString(cmd, "energy-unit", profileEnergyUnit),
			TDEE:          optionalFloat(cmd, "tdee", profileTDEE),
			TDEEUnit:      profileTDEEUnit,
			ClearTDEE:     profileClearTDEE,

			ActiveEnergy:      optionalFloat(cmd, "active-energy", profileActive),
			ActiveEnergyUnit:  profileActiveUnit,
			ClearActiveEnergy: profileClearActive,
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetBodyProfile(sqldb, in); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated body profile")
			return nil
		})
	},
}

type profileView struct {
	Sex              string   `json:"sex,omitempty"`
	BirthDate        string   `json:"birth_date,omitempty"`
	HeightCm         *float64 `json:"height_cm,omitempty"`
	ActivityLevel    string   `json:"activity_level,omitempty"`
	Equation         string   `json:"equation,omitempty"`
	EnergyUnit       string   `json:"energy_unit"`
	TDEEOverrideKcal *float64 `json:"tdee_override_kcal,omitempty"`
	ActiveEnergyKcal *float64 `json:"active_energy_kcal,omitempty"`
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the body profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p, err := service.LoadBodyProfile(sqldb)
			if err != nil {
				return err
			}
			v := profileViewFrom(p)
			if profileJSON {
				return printJSON(cmd, "profile", v)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sex: %s\n", orDash(v.Sex))
			fmt.Fprintf(out, "Birth date: %s\n", orDash(v.BirthDate))
			fmt.Fprintf(out, "Height: %s cm\n", formatOptional(v.HeightCm, 1))
			fmt.Fprintf(out, "Activity: %s\n", orDash(v.ActivityLevel))
			fmt.Fprintf(out, "Equation: %s\n", orDash(v.Equation))
			fmt.Fprintf(out, "Energy unit: %s\n", v.EnergyUnit)
			fmt.Fprintf(out, "Maintenance override: %s kcal\n", formatOptional(v.TDEEOverrideKcal, 0))
			fmt.Fprintf(out, "Active energy: %s kcal\n", formatOptional(v.ActiveEnergyKcal, 0))
			return nil
		})
	},
}

var profileTDEECmd = &cobra.Command{
	Use:   "tdee",
	Short: "Show the maintenance energy used for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			body, estimate, err := service.BuildBodyContext(sqldb, profileDate)
			if err != nil {
				return err
			}
			if body.TDEEKcal == nil {
				return fmt.Errorf("maintenance energy unavailable: set a profile and log a body measurement, or use 'profile set --tdee'")
			}
			source := "override"
			if estimate != nil {
				source = estimate.Equation
			}
			if profileJSON {
				payload := map[string]any{
					"tdee_kcal": *body.TDEEKcal,
					"tdee":      service.ConvertEnergy(*body.TDEEKcal, model.EnergyUnitKcal, body.EnergyUnit),
					"unit":      body.EnergyUnit,
					"source":    source,
				}
				if estimate != nil {
					payload["bmr_kcal"] = estimate.BMRKcal
				}
				return printJSON(cmd, "tdee", payload)
			}
			out := cmd.OutOrStdout()
			if estimate != nil {
				fmt.Fprintf(out, "BMR: %.0f kcal (%s)\n", estimate.BMRKcal, estimate.Equation)
			}
			fmt.Fprintf(out, "Maintenance: %.0f %s (%s)\n", service.ConvertEnergy(*body.TDEEKcal, model.EnergyUnitKcal, body.EnergyUnit), body.EnergyUnit, source)
			return nil
		})
	},
}

func profileViewFrom(p model.BodyProfile) profileView {
	v := profileView{
		HeightCm:         p.HeightCm,
		ActivityLevel:    p.ActivityLevel,
		Equation:         p.Equation,
		EnergyUnit:       string(p.EnergyUnit),
		TDEEOverrideKcal: p.TDEEOverrideKcal,
		ActiveEnergyKcal: p.ActiveEnergyKcal,
	}
	if p.Sex != nil {
		v.Sex = string(*p.Sex)
	}
	if p.BirthDate != nil {
		v.BirthDate = p.BirthDate.Format("2006-01-02")
	}
	return v
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd, profileTDEECmd)

	f := profileSetCmd.Flags()
	f.StringVar(&profileSex, "sex", "", "male or female")
	f.StringVar(&profileBirthDate, "birth-date", "", "Birth date YYYY-MM-DD")
	f.Float64Var(&profileHeight, "height", 0, "Height")
	f.StringVar(&profileHeightUnit, "height-unit", "cm", "Height unit: cm or in")
	f.StringVar(&profileActivity, "activity", "", "Activity level: sedentary, light, moderate, active, very_active")
	f.StringVar(&profileEquation, "equation", "", "BMR equation: mifflin_st_jeor, katch_mcardle, harris_benedict")
	f.StringVar(&profileEnergyUnit, "energy-unit", "", "Energy unit for goals: kcal or kj")
	f.Float64Var(&profileTDEE, "tdee", 0, "Manual maintenance energy override")
	f.Float64Var(&profileActive, "active-energy", 0, "Daily active energy added to BMR in place of the activity level")
	f.StringVar(&profileActiveUnit, "active-energy-unit", "kcal", "Unit of --active-energy: kcal or kj")
	f.BoolVar(&profileClearActive, "clear-active-energy", false, "Clear the daily active energy")
	f.StringVar(&profileTDEEUnit, "tdee-unit", "kcal", "Unit of --tdee: kcal or kj")
	f.BoolVar(&profileClearTDEE, "clear-tdee", false, "Clear the maintenance energy override")

	profileShowCmd.Flags().BoolVar(&profileJSON, "json", false, "Output as JSON")
	profileTDEECmd.Flags().BoolVar(&profileJSON, "json", false, "Output as JSON")
	profileTDEECmd.Flags().StringVar(&profileDate, "date", "", "Date YYYY-MM-DD (default today)")
}
