package domain

import "fmt"

// Category is the closed set of equipment categories. The zero value is not
// a valid category.
type Category int

const (
	CategoryClothing Category = iota + 1
	CategoryGear
	CategoryFoodWater
	CategoryEmergency
	CategoryOther
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryClothing,
	CategoryGear,
	CategoryFoodWater,
	CategoryEmergency,
	CategoryOther,
}

func (c Category) String() string {
	switch c {
	case CategoryClothing:
		return "clothing"
	case CategoryGear:
		return "gear"
	case CategoryFoodWater:
		return "food-water"
	case CategoryEmergency:
		return "emergency"
	case CategoryOther:
		return "other"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Label is the Japanese label used in the fixture files and on screen.
func (c Category) Label() string {
	switch c {
	case CategoryClothing:
		return "服装"
	case CategoryGear:
		return "ギア"
	case CategoryFoodWater:
		return "食料・水"
	case CategoryEmergency:
		return "緊急用品"
	case CategoryOther:
		return "その他"
	default:
		return ""
	}
}

func (c Category) Icon() string {
	switch c {
	case CategoryClothing:
		return "👕"
	case CategoryGear:
		return "🧰"
	case CategoryFoodWater:
		return "🍙"
	case CategoryEmergency:
		return "🆘"
	case CategoryOther:
		return "📦"
	default:
		return ""
	}
}

// Rank is the position of c in the fixed display order, or len(Categories)
// for an invalid value.
func (c Category) Rank() int {
	switch c {
	case CategoryClothing:
		return 0
	case CategoryGear:
		return 1
	case CategoryFoodWater:
		return 2
	case CategoryEmergency:
		return 3
	case CategoryOther:
		return 4
	default:
		return len(Categories)
	}
}

func (c Category) Valid() bool {
	return c.Rank() < len(Categories)
}

// ParseCategory accepts either the English slug or the Japanese label.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "clothing", "服装":
		return CategoryClothing, nil
	case "gear", "ギア":
		return CategoryGear, nil
	case "food-water", "食料・水", "食料/水":
		return CategoryFoodWater, nil
	case "emergency", "緊急用品":
		return CategoryEmergency, nil
	case "other", "その他":
		return CategoryOther, nil
	default:
		return 0, fmt.Errorf("unknown equipment category %q", s)
	}
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid equipment category %d", int(c))
	}
	return []byte(c.Label()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// RequirementLevel drives the sort priority and badge of an equipment item.
type RequirementLevel int

const (
	LevelRequired RequirementLevel = iota + 1
	LevelRecommended
)

func (l RequirementLevel) String() string {
	switch l {
	case LevelRequired:
		return "required"
	case LevelRecommended:
		return "recommended"
	default:
		return fmt.Sprintf("RequirementLevel(%d)", int(l))
	}
}

func (l RequirementLevel) Label() string {
	switch l {
	case LevelRequired:
		return "必須"
	case LevelRecommended:
		return "あると便利"
	default:
		return ""
	}
}

// Rank orders required items before recommended ones.
func (l RequirementLevel) Rank() int {
	switch l {
	case LevelRequired:
		return 0
	case LevelRecommended:
		return 1
	default:
		return 2
	}
}

func (l RequirementLevel) Valid() bool {
	return l.Rank() < 2
}

func ParseRequirementLevel(s string) (RequirementLevel, error) {
	switch s {
	case "required", "必須":
		return LevelRequired, nil
	case "recommended", "あると便利":
		return LevelRecommended, nil
	default:
		return 0, fmt.Errorf("unknown requirement level %q", s)
	}
}

func (l RequirementLevel) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid requirement level %d", int(l))
	}
	return []byte(l.Label()), nil
}

func (l *RequirementLevel) UnmarshalText(b []byte) error {
	v, err := ParseRequirementLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

type TripType int

const (
	TripDay TripType = iota + 1
	TripHut
	TripTent
	TripWinter
)

func (t TripType) String() string {
	switch t {
	case TripDay:
		return "day-trip"
	case TripHut:
		return "hut-stay"
	case TripTent:
		return "tent-camp"
	case TripWinter:
		return "winter"
	default:
		return fmt.Sprintf("TripType(%d)", int(t))
	}
}

func (t TripType) Label() string {
	switch t {
	case TripDay:
		return "日帰り"
	case TripHut:
		return "小屋泊"
	case TripTent:
		return "テント泊"
	case TripWinter:
		return "冬山"
	default:
		return ""
	}
}

func ParseTripType(s string) (TripType, error) {
	switch s {
	case "day-trip", "日帰り":
		return TripDay, nil
	case "hut-stay", "小屋泊":
		return TripHut, nil
	case "tent-camp", "テント泊":
		return TripTent, nil
	case "winter", "冬山":
		return TripWinter, nil
	default:
		return 0, fmt.Errorf("unknown trip type %q", s)
	}
}

func (t TripType) MarshalText() ([]byte, error) {
	if t.Label() == "" {
		return nil, fmt.Errorf("invalid trip type %d", int(t))
	}
	return []byte(t.Label()), nil
}

func (t *TripType) UnmarshalText(b []byte) error {
	v, err := ParseTripType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type Difficulty int

const (
	DifficultyBeginner Difficulty = iota + 1
	DifficultyIntermediate
	DifficultyAdvanced
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyBeginner:
		return "beginner"
	case DifficultyIntermediate:
		return "intermediate"
	case DifficultyAdvanced:
		return "advanced"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

func (d Difficulty) Label() string {
	switch d {
	case DifficultyBeginner:
		return "初級"
	case DifficultyIntermediate:
		return "中級"
	case DifficultyAdvanced:
		return "上級"
	default:
		return ""
	}
}

// BadgeClass is the CSS class of the difficulty badge.
func (d Difficulty) BadgeClass() string {
	switch d {
	case DifficultyBeginner:
		return "badge-beginner"
	case DifficultyIntermediate:
		return "badge-intermediate"
	case DifficultyAdvanced:
		return "badge-advanced"
	default:
		return "badge"
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "beginner", "初級":
		return DifficultyBeginner, nil
	case "intermediate", "中級":
		return DifficultyIntermediate, nil
	case "advanced", "上級":
		return DifficultyAdvanced, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q", s)
	}
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if d.Label() == "" {
		return nil, fmt.Errorf("invalid difficulty %d", int(d))
	}
	return []byte(d.Label()), nil
}

func (d *Difficulty) UnmarshalText(b []byte) error {
	v, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
