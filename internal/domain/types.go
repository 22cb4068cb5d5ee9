package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the layout of Plan.Date in the fixture files.
const DateLayout = "2006-01-02"

type Mountain struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	NameKana     string     `json:"nameKana"`
	Elevation    int        `json:"elevation"`
	Location     string     `json:"location"`
	Difficulty   Difficulty `json:"difficulty"`
	CourseTime   string     `json:"courseTime"`
	BestSeason   []string   `json:"bestSeason"`
	Access       string     `json:"access"`
	AccessURL    string     `json:"accessUrl,omitempty"`
	Features     []string   `json:"features"`
	Description  string     `json:"description"`
	Notes        string     `json:"notes"`
	ReferenceURL string     `json:"referenceUrl,omitempty"`
	ImageURL     string     `json:"imageUrl,omitempty"`
}

type EquipmentItem struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Category         Category         `json:"category"`
	Description      string           `json:"description,omitempty"`
	RequirementLevel RequirementLevel `json:"requirementLevel"`
	ForWinter        bool             `json:"forWinter"`
}

func (e EquipmentItem) Required() bool {
	return e.RequirementLevel == LevelRequired
}

// UnmarshalJSON accepts both the requirementLevel form and the older
// "required": bool form. requirementLevel wins when both are present; an item
// with neither is recommended.
func (e *EquipmentItem) UnmarshalJSON(b []byte) error {
	type plain EquipmentItem
	var raw struct {
		plain
		RequirementLevel *RequirementLevel `json:"requirementLevel"`
		Required         *bool             `json:"required"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	item := EquipmentItem(raw.plain)
	switch {
	case raw.RequirementLevel != nil:
		item.RequirementLevel = *raw.RequirementLevel
	case raw.Required != nil && *raw.Required:
		item.RequirementLevel = LevelRequired
	default:
		item.RequirementLevel = LevelRecommended
	}
	if !item.Category.Valid() {
		return fmt.Errorf("equipment %q: missing category", item.ID)
	}
	*e = item
	return nil
}

type EquipmentTemplate struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	TripType TripType `json:"tripType"`
	Items    []string `json:"items"`
}

type ScheduleItem struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
	Location string `json:"location,omitempty"`
}

// AccessItem is one transport leg of the approach to the trailhead.
type AccessItem struct {
	Time         string `json:"time"`
	Activity     string `json:"activity"`
	Transport    string `json:"transport"`
	TransportURL string `json:"transportUrl,omitempty"`
	Cost         string `json:"cost,omitempty"`
}

type ReferenceLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type Plan struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	MountainID   string          `json:"mountainId"`
	Date         string          `json:"date"`
	Access       []AccessItem    `json:"access,omitempty"`
	Schedule     []ScheduleItem  `json:"schedule"`
	EquipmentIDs []string        `json:"equipmentIds"`
	Memo         string          `json:"memo"`
	Links        []ReferenceLink `json:"links,omitempty"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

// Day parses the plan date as a calendar day in loc. A full timestamp is
// accepted and truncated to its date part.
func (p Plan) Day(loc *time.Location) (time.Time, error) {
	date := p.Date
	if len(date) > len(DateLayout) && date[len(DateLayout)] == 'T' {
		date = date[:len(DateLayout)]
	}
	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("plan %q: invalid date %q: %w", p.ID, p.Date, err)
	}
	return d, nil
}
