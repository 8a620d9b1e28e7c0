package service

import (
	"fmt"
	"regexp"

	"github.com/saadjs/dietgoals/internal/model"
)

var nutrientKeyPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// ParseNutrient accepts a catalog key in any common spelling,
// e.g. "Vitamin-C" or "vitamin c".
func ParseNutrient(value string) (model.Nutrient, error) {
	key := normalizeKey(value)
	if key == "" || !nutrientKeyPattern.MatchString(key) {
		return 0, fmt.Errorf("invalid nutrient key %q (expected lowercase snake_case)", value)
	}
	n, ok := model.NutrientByKey(key)
	if !ok {
		return 0, fmt.Errorf("unknown nutrient %q", value)
	}
	return n, nil
}

func ParseMacro(value string) (model.Macro, error) {
	switch normalizeName(value) {
	case "carb", "carbs", "carbohydrate", "carbohydrates":
		return model.MacroCarb, nil
	case "fat", "fats":
		return model.MacroFat, nil
	case "protein", "proteins":
		return model.MacroProtein, nil
	default:
		return "", fmt.Errorf("invalid macro %q (use carb, fat or protein)", value)
	}
}

// NutrientSupportsUnit reports whether unit is one the nutrient is measured in.
func NutrientSupportsUnit(n model.Nutrient, unit model.NutrientUnit) bool {
	info, ok := n.Info()
	if !ok {
		return false
	}
	for _, u := range info.Units {
		if u == unit {
			return true
		}
	}
	return false
}
