package main

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/trailplan/internal/config"
	"github.com/vbonduro/trailplan/internal/kv"
	"github.com/vbonduro/trailplan/internal/service"
	"github.com/vbonduro/trailplan/internal/store"
)

const testdata = "../../internal/catalog/testdata"

type cli struct {
	t      *testing.T
	dbPath string
}

func newCLI(t *testing.T) *cli {
	return &cli{t: t, dbPath: filepath.Join(t.TempDir(), "trailplan.db")}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--db", c.dbPath, "--data", testdata, "--log-level", "error", "--no-color"}, args...))
	err := root.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, out)
	return out
}

func TestChecklistCommands(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("checklist")
	assert.Contains(t, out, "高尾山 紅葉ハイク")
	assert.Contains(t, out, "0/6 (0%)")
	assert.Contains(t, out, "[ ] 水 1.5L")

	out = c.mustRun("toggle", "eq-water")
	assert.Contains(t, out, "[x] 水 1.5L")
	assert.Contains(t, out, "1/6 (17%)")

	out = c.mustRun("check-all", "--template", "tpl-day")
	assert.Contains(t, out, "日帰り基本セット")
	assert.Contains(t, out, "5/5 (100%) 準備完了")

	out = c.mustRun("checklist", "--all", "--winter")
	assert.Contains(t, out, "ダウンジャケット")
	assert.NotContains(t, out, "水 1.5L")

	out = c.mustRun("clear")
	assert.Contains(t, out, `"cli"`)
	assert.Contains(t, c.mustRun("checklist"), "0/6 (0%)")
}

func TestChecklist_SessionFlag(t *testing.T) {
	c := newCLI(t)

	c.mustRun("--session", "browser-1", "toggle", "eq-water", "eq-headlamp")
	assert.Contains(t, c.mustRun("--session", "browser-1", "checklist"), "2/6")
	assert.Contains(t, c.mustRun("checklist"), "0/6")

	out := c.mustRun("sessions")
	assert.Contains(t, out, "browser-1\t2 checked")

	c.mustRun("forget", "browser-1")
	assert.NotContains(t, c.mustRun("sessions"), "browser-1")
}

func TestChecklist_Errors(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("checklist", "--plan", "plan-missing")
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = c.run("checklist", "--plan", "plan-takao-autumn", "--all")
	assert.Error(t, err)

	_, err = c.run("toggle")
	assert.Error(t, err)
}

func TestCostCommand(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("cost", "plan-tanigawa-summer")
	assert.Contains(t, out, "JR上越線")
	assert.Contains(t, out, "片道 3,810円 / 往復 7,620円")

	out = c.mustRun("cost", "plan-takao-autumn")
	assert.Contains(t, out, "片道 430円 / 往復 860円")
	// the walking leg has no fare
	assert.Contains(t, out, "(徒歩)  -")

	_, err := c.run("cost", "plan-missing")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPlansCommand(t *testing.T) {
	out := newCLI(t).mustRun("plans")
	assert.Contains(t, out, "これからの計画")
	assert.Contains(t, out, "plan-takao-autumn")
	assert.Contains(t, out, "plan-tanigawa-summer")
	assert.Contains(t, out, "[高尾山]")
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("TRAILPLAN_DATA_DIR", "/nonexistent")
	t.Setenv("TRAILPLAN_TIMEZONE", "UTC")

	a := &app{}
	defer a.close()
	root := newRootCmd(a)
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--data", testdata, "--db", filepath.Join(t.TempDir(), "x.db"), "--log-level", "error", "plans"})
	require.NoError(t, root.Execute())

	assert.Equal(t, testdata, a.cfg.DataDir)
	assert.Equal(t, "UTC", a.cfg.Timezone)
	assert.Equal(t, "error", a.cfg.LogLevel)
}

func TestOpenStates(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	a := &app{cfg: &config.Config{}, logger: logger}
	states, err := a.openStates()
	require.NoError(t, err)
	assert.IsType(t, &kv.Memory{}, states)

	a = &app{cfg: &config.Config{DBPath: filepath.Join(t.TempDir(), "s.db")}, logger: logger}
	defer a.close()
	states, err = a.openStates()
	require.NoError(t, err)
	assert.IsType(t, &store.KVStore{}, states)
}
