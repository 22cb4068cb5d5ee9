package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquipmentItemUnmarshal_RequirementLevel(t *testing.T) {
	var item EquipmentItem
	err := json.Unmarshal([]byte(`{
		"id": "eq-headlamp",
		"name": "ヘッドランプ",
		"category": "ギア",
		"requirementLevel": "必須",
		"forWinter": false
	}`), &item)
	require.NoError(t, err)

	assert.Equal(t, "eq-headlamp", item.ID)
	assert.Equal(t, CategoryGear, item.Category)
	assert.Equal(t, LevelRequired, item.RequirementLevel)
	assert.True(t, item.Required())
}

func TestEquipmentItemUnmarshal_LegacyRequiredFlag(t *testing.T) {
	tests := []struct {
		name string
		body string
		want RequirementLevel
	}{
		{"required true", `{"id":"a","name":"A","category":"服装","required":true}`, LevelRequired},
		{"required false", `{"id":"a","name":"A","category":"服装","required":false}`, LevelRecommended},
		{"neither", `{"id":"a","name":"A","category":"服装"}`, LevelRecommended},
		{"level wins", `{"id":"a","name":"A","category":"服装","required":true,"requirementLevel":"あると便利"}`, LevelRecommended},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var item EquipmentItem
			require.NoError(t, json.Unmarshal([]byte(tt.body), &item))
			assert.Equal(t, tt.want, item.RequirementLevel)
		})
	}
}

func TestEquipmentItemUnmarshal_UnknownCategory(t *testing.T) {
	var item EquipmentItem
	err := json.Unmarshal([]byte(`{"id":"a","name":"A","category":"靴"}`), &item)
	assert.Error(t, err)
}

func TestEquipmentItemUnmarshal_MissingCategory(t *testing.T) {
	var item EquipmentItem
	err := json.Unmarshal([]byte(`{"id":"a","name":"A"}`), &item)
	assert.Error(t, err)
}

func TestEquipmentItemMarshal_UsesLabels(t *testing.T) {
	b, err := json.Marshal(EquipmentItem{
		ID:               "eq-water",
		Name:             "水",
		Category:         CategoryFoodWater,
		RequirementLevel: LevelRequired,
	})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"category":"食料・水"`)
	assert.Contains(t, string(b), `"requirementLevel":"必須"`)
}

func TestParseCategory_SlugAndLabel(t *testing.T) {
	for _, c := range Categories {
		fromSlug, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, fromSlug)

		fromLabel, err := ParseCategory(c.Label())
		require.NoError(t, err)
		assert.Equal(t, c, fromLabel)
	}
}

func TestCategoryRank_MatchesDisplayOrder(t *testing.T) {
	for i, c := range Categories {
		assert.Equal(t, i, c.Rank())
	}
	assert.False(t, Category(0).Valid())
}

func TestPlanDay(t *testing.T) {
	loc := time.FixedZone("JST", 9*60*60)
	p := Plan{ID: "plan-1", Date: "2026-07-15"}
	d, err := p.Day(loc)
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.July, d.Month())
	assert.Equal(t, 15, d.Day())

	_, err = Plan{ID: "plan-2", Date: "next week"}.Day(loc)
	assert.Error(t, err)
}

func TestMountainUnmarshal(t *testing.T) {
	var m Mountain
	err := json.Unmarshal([]byte(`{
		"id": "mt-takao",
		"name": "高尾山",
		"nameKana": "たかおさん",
		"elevation": 599,
		"location": "東京都",
		"difficulty": "初級",
		"courseTime": "3時間",
		"bestSeason": ["11月"],
		"features": ["ケーブルカー"]
	}`), &m)
	require.NoError(t, err)
	assert.Equal(t, DifficultyBeginner, m.Difficulty)
	assert.Equal(t, "badge-beginner", m.Difficulty.BadgeClass())
	assert.Equal(t, 599, m.Elevation)
}
