package service

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/saadjs/dietgoals/internal/model"
)

const cmPerInch = 2.54

// SetBodyProfileInput updates only the fields that are non-nil.
type SetBodyProfileInput struct {
	Sex           *string
	BirthDate     *string
	Height        *float64
	HeightUnit    string
	ActivityLevel *string
	Equation      *string
	EnergyUnit    *string
	// TDEE is a manually entered maintenance energy in TDEEUnit. It takes
	// precedence over the estimate until cleared.
	TDEE      *float64
	TDEEUnit  string
	ClearTDEE bool
	// ActiveEnergy is a daily active energy figure in ActiveEnergyUnit. When
	// set, the estimate adds it to BMR instead of applying the activity level.
	ActiveEnergy      *float64
	ActiveEnergyUnit  string
	ClearActiveEnergy bool
}

func SetBodyProfile(db *sql.DB, in SetBodyProfileInput) error {
	updates := map[string]string{}
	if in.Sex != nil {
		sex := normalizeName(*in.Sex)
		if sex != string(model.SexMale) && sex != string(model.SexFemale) {
			return fmt.Errorf("invalid sex %q (use male or female)", *in.Sex)
		}
		updates[ConfigSex] = sex
	}
	if in.BirthDate != nil {
		birth, err := time.Parse("2006-01-02", strings.TrimSpace(*in.BirthDate))
		if err != nil {
			return fmt.Errorf("invalid birth date %q (expected YYYY-MM-DD)", *in.BirthDate)
		}
		if _, err := AgeOn(birth, time.Now()); err != nil {
			return err
		}
		updates[ConfigBirthDate] = birth.Format("2006-01-02")
	}
	if in.Height != nil {
		if *in.Height <= 0 {
			return fmt.Errorf("height must be > 0")
		}
		heightCm := *in.Height
		switch normalizeName(in.HeightUnit) {
		case "", "cm":
		case "in":
			heightCm = *in.Height * cmPerInch
		default:
			return fmt.Errorf("invalid height unit %q (use cm or in)", in.HeightUnit)
		}
		updates[ConfigHeightCm] = strconv.FormatFloat(heightCm, 'f', -1, 64)
	}
	if in.ActivityLevel != nil {
		level := normalizeKey(*in.ActivityLevel)
		if !ValidActivityLevel(level) {
			return fmt.Errorf("invalid activity level %q (use sedentary, light, moderate, active or very_active)", *in.ActivityLevel)
		}
		updates[ConfigActivityLevel] = level
	}
	if in.Equation != nil {
		eq := normalizeKey(*in.Equation)
		if !ValidEquation(eq) {
			return fmt.Errorf("invalid equation %q (use mifflin_st_jeor, katch_mcardle or harris_benedict)", *in.Equation)
		}
		updates[ConfigEquation] = eq
	}
	if in.EnergyUnit != nil {
		unit, err := ParseEnergyUnit(*in.EnergyUnit)
		if err != nil {
			return err
		}
		updates[ConfigEnergyUnit] = string(unit)
	}
	if in.TDEE != nil {
		if in.ClearTDEE {
			return fmt.Errorf("cannot set and clear the maintenance energy override together")
		}
		if *in.TDEE <= 0 {
			return fmt.Errorf("maintenance energy must be > 0")
		}
		unit, err := ParseEnergyUnit(in.TDEEUnit)
		if err != nil {
			return err
		}
		updates[ConfigTDEEOverrideKcal] = strconv.FormatFloat(ToKcal(*in.TDEE, unit), 'f', -1, 64)
	}
	if in.ActiveEnergy != nil {
		if in.ClearActiveEnergy {
			return fmt.Errorf("cannot set and clear the active energy together")
		}
		if err := validateNonNegativeFloat("active energy", *in.ActiveEnergy); err != nil {
			return err
		}
		unit, err := ParseEnergyUnit(in.ActiveEnergyUnit)
		if err != nil {
			return err
		}
		updates[ConfigActiveEnergyKcal] = strconv.FormatFloat(ToKcal(*in.ActiveEnergy, unit), 'f', -1, 64)
	}
	if len(updates) == 0 && !in.ClearTDEE && !in.ClearActiveEnergy {
		return fmt.Errorf("set at least one profile field")
	}

	for key, value := range updates {
		if err := SetConfig(db, key, value); err != nil {
			return err
		}
	}
	if in.ClearTDEE {
		if err := UnsetConfig(db, ConfigTDEEOverrideKcal); err != nil {
			return err
		}
	}
	if in.ClearActiveEnergy {
		return UnsetConfig(db, ConfigActiveEnergyKcal)
	}
	return nil
}

func LoadBodyProfile(db *sql.DB) (model.BodyProfile, error) {
	cfg, err := ListConfig(db)
	if err != nil {
		return model.BodyProfile{}, err
	}
	profile := model.BodyProfile{
		EnergyUnit:    model.EnergyUnitKcal,
		ActivityLevel: cfg[ConfigActivityLevel],
		Equation:      cfg[ConfigEquation],
	}
	if v, ok := cfg[ConfigEnergyUnit]; ok {
		unit, err := ParseEnergyUnit(v)
		if err != nil {
			return model.BodyProfile{}, fmt.Errorf("stored %s: %w", ConfigEnergyUnit, err)
		}
		profile.EnergyUnit = unit
	}
	if v, ok := cfg[ConfigSex]; ok {
		sex := model.Sex(v)
		profile.Sex = &sex
	}
	if v, ok := cfg[ConfigBirthDate]; ok {
		birth, err := time.Parse("2006-01-02", v)
		if err != nil {
			return model.BodyProfile{}, fmt.Errorf("stored %s: %w", ConfigBirthDate, err)
		}
		profile.BirthDate = &birth
	}
	if profile.HeightCm, err = configFloat(cfg, ConfigHeightCm); err != nil {
		return model.BodyProfile{}, err
	}
	if profile.TDEEOverrideKcal, err = configFloat(cfg, ConfigTDEEOverrideKcal); err != nil {
		return model.BodyProfile{}, err
	}
	if profile.ActiveEnergyKcal, err = configFloat(cfg, ConfigActiveEnergyKcal); err != nil {
		return model.BodyProfile{}, err
	}
	return profile, nil
}

func configFloat(cfg map[string]string, key string) (*float64, error) {
	v, ok := cfg[key]
	if !ok {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("stored %s: %w", key, err)
	}
	return &f, nil
}
