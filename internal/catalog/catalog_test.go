package catalog

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/trailplan/internal/domain"
)

func TestLoadTestdata(t *testing.T) {
	c, err := Load("testdata")
	require.NoError(t, err)

	assert.Len(t, c.Mountains(), 2)
	assert.Len(t, c.Equipment(), 8)
	assert.Len(t, c.Templates(), 2)
	assert.Len(t, c.Plans(), 2)

	m := c.Mountain("mt-takao")
	require.NotNil(t, m)
	assert.Equal(t, "高尾山", m.Name)
	assert.Equal(t, domain.DifficultyBeginner, m.Difficulty)

	// Legacy "required" flag in equipment.json.
	crampons := c.EquipmentItem("eq-crampons")
	require.NotNil(t, crampons)
	assert.Equal(t, domain.LevelRequired, crampons.RequirementLevel)
	assert.True(t, crampons.ForWinter)

	camera := c.EquipmentItem("eq-camera")
	require.NotNil(t, camera)
	assert.Equal(t, domain.LevelRecommended, camera.RequirementLevel)

	// Templates come from YAML.
	tpl := c.Template("tpl-winter")
	require.NotNil(t, tpl)
	assert.Equal(t, domain.TripWinter, tpl.TripType)
	assert.Equal(t, []string{"eq-base-layer", "eq-down", "eq-crampons", "eq-retired-item"}, tpl.Items)

	p := c.Plan("plan-takao-autumn")
	require.NotNil(t, p)
	assert.Len(t, p.Access, 2)
	assert.Equal(t, "430円", p.Access[0].Cost)
}

func TestLookupMisses(t *testing.T) {
	c, err := Load("testdata")
	require.NoError(t, err)

	assert.Nil(t, c.Mountain("mt-nope"))
	assert.Nil(t, c.EquipmentItem("eq-nope"))
	assert.Nil(t, c.Template("tpl-nope"))
	assert.Nil(t, c.Plan("plan-nope"))
}

func TestLookupReturnsCopy(t *testing.T) {
	c, err := Load("testdata")
	require.NoError(t, err)

	p := c.Plan("plan-takao-autumn")
	p.Title = "changed"
	assert.Equal(t, "高尾山 紅葉ハイク", c.Plan("plan-takao-autumn").Title)
}

func TestLoad_MissingFilesAreEmpty(t *testing.T) {
	c, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, c.Mountains())
	assert.Empty(t, c.Equipment())
	assert.Empty(t, c.Templates())
	assert.Empty(t, c.Plans())
}

func TestLoad_InvalidEnum(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "equipment.json", `[{"id":"eq-x","name":"X","category":"靴","requirementLevel":"必須"}]`)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "equipment.json")
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plans.json", `[{"id": "plan-1",`)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plans.json")
}

func TestLoad_DuplicateID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mountains.json", `[{"id":"mt-a","name":"A","difficulty":"初級"},{"id":"mt-a","name":"B","difficulty":"中級"}]`)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate mountain id "mt-a"`)
}

func TestLoad_JSONPreferredOverYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mountains.json", `[{"id":"mt-json","name":"J","difficulty":"初級"}]`)
	writeFile(t, dir, "mountains.yaml", "- id: mt-yaml\n  name: Y\n  difficulty: 初級\n")

	c, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, c.Mountains(), 1)
	assert.Equal(t, "mt-json", c.Mountains()[0].ID)
}

func TestIsFixture(t *testing.T) {
	assert.True(t, IsFixture("/data/plans.json"))
	assert.True(t, IsFixture("equipment-templates.yml"))
	assert.False(t, IsFixture("/data/plans.json.swp"))
	assert.False(t, IsFixture("/data/notes.json"))
	assert.False(t, IsFixture("README"))
}

func TestLiveReload_KeepsPreviousOnError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mountains.json", `[{"id":"mt-a","name":"A","difficulty":"初級"}]`)

	live, err := NewLive(dir, slog.Default())
	require.NoError(t, err)
	require.Len(t, live.Current().Mountains(), 1)

	loaded := live.Status().LoadedAt
	require.False(t, loaded.IsZero())

	writeFile(t, dir, "mountains.json", `not json`)
	assert.Error(t, live.Reload())
	assert.Len(t, live.Current().Mountains(), 1)

	st := live.Status()
	assert.Equal(t, dir, st.Dir)
	assert.Error(t, st.LastErr)
	assert.Equal(t, loaded, st.LoadedAt)
}

func TestLiveWatch_ReloadsOnWrite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping watcher test in short mode")
	}

	dir := t.TempDir()
	writeFile(t, dir, "plans.json", `[]`)

	live, err := NewLive(dir, slog.Default())
	require.NoError(t, err)
	live.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- live.Watch(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)
	writeFile(t, dir, "plans.json", `[{"id":"plan-new","title":"New","mountainId":"mt-a","date":"2026-12-01"}]`)

	assert.Eventually(t, func() bool {
		return live.Current().Plan("plan-new") != nil
	}, 5*time.Second, 20*time.Millisecond)
}

func TestStatic(t *testing.T) {
	c, err := New([]domain.Mountain{{ID: "mt-a"}}, nil, nil, nil)
	require.NoError(t, err)
	assert.Same(t, c, Static(c).Current())
}

func TestNew_MissingID(t *testing.T) {
	_, err := New(nil, []domain.EquipmentItem{{Name: "no id", Category: domain.CategoryGear}}, nil, nil)
	assert.Error(t, err)
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}
