package model

type Macro string

const (
	MacroCarb    Macro = "carb"
	MacroFat     Macro = "fat"
	MacroProtein Macro = "protein"
)

func (m Macro) SortOrder() int {
	switch m {
	case MacroCarb:
		return 1
	case MacroFat:
		return 2
	case MacroProtein:
		return 3
	default:
		return 0
	}
}

// Nutrient identifies a micronutrient. Values are stable and define the
// display order of micro goals.
type Nutrient int

const (
	NutrientSaturatedFat Nutrient = iota + 1
	NutrientMonounsaturatedFat
	NutrientPolyunsaturatedFat
	NutrientTransFat
	NutrientCholesterol
	NutrientDietaryFiber
	NutrientSugars
	NutrientAddedSugars
	NutrientSodium
	NutrientPotassium
	NutrientCalcium
	NutrientIron
	NutrientMagnesium
	NutrientZinc
	NutrientVitaminA
	NutrientVitaminC
	NutrientVitaminD
	NutrientVitaminB12
	NutrientCaffeine
)

type NutrientInfo struct {
	Nutrient Nutrient
	Key      string
	Name     string
	Units    []NutrientUnit
}

var nutrientCatalog = []NutrientInfo{
	{NutrientSaturatedFat, "saturated_fat", "Saturated Fat", []NutrientUnit{NutrientUnitG}},
	{NutrientMonounsaturatedFat, "monounsaturated_fat", "Monounsaturated Fat", []NutrientUnit{NutrientUnitG}},
	{NutrientPolyunsaturatedFat, "polyunsaturated_fat", "Polyunsaturated Fat", []NutrientUnit{NutrientUnitG}},
	{NutrientTransFat, "trans_fat", "Trans Fat", []NutrientUnit{NutrientUnitG}},
	{NutrientCholesterol, "cholesterol", "Cholesterol", []NutrientUnit{NutrientUnitMg, NutrientUnitG}},
	{NutrientDietaryFiber, "dietary_fiber", "Dietary Fiber", []NutrientUnit{NutrientUnitG}},
	{NutrientSugars, "sugars", "Sugars", []NutrientUnit{NutrientUnitG}},
	{NutrientAddedSugars, "added_sugars", "Added Sugars", []NutrientUnit{NutrientUnitG}},
	{NutrientSodium, "sodium", "Sodium", []NutrientUnit{NutrientUnitMg, NutrientUnitG}},
	{NutrientPotassium, "potassium", "Potassium", []NutrientUnit{NutrientUnitMg, NutrientUnitG}},
	{NutrientCalcium, "calcium", "Calcium", []NutrientUnit{NutrientUnitMg, NutrientUnitG}},
	{NutrientIron, "iron", "Iron", []NutrientUnit{NutrientUnitMg}},
	{NutrientMagnesium, "magnesium", "Magnesium", []NutrientUnit{NutrientUnitMg}},
	{NutrientZinc, "zinc", "Zinc", []NutrientUnit{NutrientUnitMg}},
	{NutrientVitaminA, "vitamin_a", "Vitamin A", []NutrientUnit{NutrientUnitMcg, NutrientUnitIU}},
	{NutrientVitaminC, "vitamin_c", "Vitamin C", []NutrientUnit{NutrientUnitMg}},
	{NutrientVitaminD, "vitamin_d", "Vitamin D", []NutrientUnit{NutrientUnitMcg, NutrientUnitIU}},
	{NutrientVitaminB12, "vitamin_b12", "Vitamin B12", []NutrientUnit{NutrientUnitMcg}},
	{NutrientCaffeine, "caffeine", "Caffeine", []NutrientUnit{NutrientUnitMg}},
}

func Nutrients() []NutrientInfo {
	out := make([]NutrientInfo, len(nutrientCatalog))
	copy(out, nutrientCatalog)
	return out
}

func (n Nutrient) Info() (NutrientInfo, bool) {
	if n < 1 || int(n) > len(nutrientCatalog) {
		return NutrientInfo{}, false
	}
	return nutrientCatalog[n-1], true
}

func (n Nutrient) Key() string {
	info, ok := n.Info()
	if !ok {
		return ""
	}
	return info.Key
}

// DefaultUnit is the first unit the nutrient is commonly measured in.
func (n Nutrient) DefaultUnit() NutrientUnit {
	info, ok := n.Info()
	if !ok || len(info.Units) == 0 {
		return NutrientUnitG
	}
	return info.Units[0]
}

func NutrientByKey(key string) (Nutrient, bool) {
	for _, info := range nutrientCatalog {
		if info.Key == key {
			return info.Nutrient, true
		}
	}
	return 0, false
}
