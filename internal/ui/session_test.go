package ui

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/piwi3910/timbercalc/internal/engine"
	"github.com/piwi3910/timbercalc/internal/export"
	"github.com/piwi3910/timbercalc/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, module model.Module, input string) (*Session, *engine.Workspace, *bytes.Buffer) {
	t.Helper()
	cfg := model.DefaultAppConfig()
	cfg.OutputDir = t.TempDir()
	ws := engine.NewWorkspace(module)
	var out bytes.Buffer
	s := NewSession(ws, cfg, export.NewExporter(cfg, nil), strings.NewReader(input), &out)
	s.Now = func() time.Time { return time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC) }
	return s, ws, &out
}

func TestSessionQuickAdd(t *testing.T) {
	s, ws, out := newTestSession(t, model.ModuleSawnWood, "l=10 w=12 t=2 q=5 r=100\n/quit\n")
	require.NoError(t, s.Run(context.Background()))

	entries := ws.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "833.33", entries[0].Amount.StringFixed(2))
	assert.Contains(t, out.String(), "Added #1")
	assert.Contains(t, out.String(), "amount 833.33")
	assert.Contains(t, out.String(), "Next: qty=1 rate=100")
}

func TestSessionPromptForm(t *testing.T) {
	input := "/add\nTeak plank\n10\n12\nabc\n2\n5\n\n"
	s, ws, out := newTestSession(t, model.ModuleSawnWood, input)
	ws.Rates().Remember(engine.RateKey{}, decimal.NewFromInt(100))
	s.form = ws.BlankForm()

	require.NoError(t, s.Run(context.Background()))

	entries := ws.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Teak plank", entries[0].Fields.Description)
	assert.Equal(t, "2", entries[0].Fields.ThicknessIn.String())
	assert.True(t, entries[0].Fields.Rate.Decimal.Equal(decimal.NewFromInt(100)))
	assert.Contains(t, out.String(), "Thickness (in) must be a number")
	assert.Contains(t, out.String(), "Rate [100]")
}

func TestSessionPromptFormCancel(t *testing.T) {
	s, ws, out := newTestSession(t, model.ModuleRoundLog, "/add\nLog\ncancel\n")
	require.NoError(t, s.Run(context.Background()))

	assert.Empty(t, ws.Entries())
	assert.Contains(t, out.String(), "Entry discarded.")
}

func TestSessionBeadingRecallsRateBySizeAndGrade(t *testing.T) {
	input := strings.Join([]string{
		`size=2x1 grade="1st Grade" l=12 q=3 b=2 r=5`,
		`size=1x1 l=10 q=1`,
		`size=2x1 grade="1st Grade" l=8 q=1`,
	}, "\n") + "\n"
	s, ws, _ := newTestSession(t, model.ModuleBeading, input)
	require.NoError(t, s.Run(context.Background()))

	entries := ws.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "72", entries[0].TotalMeasure.String())
	assert.False(t, entries[1].Priced(), "no rate remembered for 1x1 / 1st Grade")
	require.True(t, entries[2].Priced())
	assert.True(t, entries[2].Fields.Rate.Decimal.Equal(decimal.NewFromInt(5)))
}

func TestSessionEditValidationKeepsEditing(t *testing.T) {
	input := "l=10 g=40 q=1\n/edit 1 q=0\n"
	s, ws, out := newTestSession(t, model.ModuleRoundLog, input)
	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, engine.EditState{Editing: true, EntryID: 1}, ws.State())
	assert.Contains(t, out.String(), "Quantity must be a whole number greater than 0")
	assert.Contains(t, out.String(), "still editing #1")

	require.NoError(t, s.Dispatch(context.Background(), "/add l=1 g=1 q=1"))
	assert.Contains(t, out.String(), "Finish the edit of #1")

	require.NoError(t, s.Dispatch(context.Background(), "/edit 1 q=3"))
	assert.Equal(t, engine.EditState{}, ws.State())
	e, ok := ws.Entry(1)
	require.True(t, ok)
	assert.Equal(t, 3, e.Fields.Quantity)
	assert.Contains(t, out.String(), "Updated #1")
}

func TestSessionEditUnknownEntry(t *testing.T) {
	s, _, _ := newTestSession(t, model.ModuleRoundLog, "")
	err := s.Dispatch(context.Background(), "/edit 9 q=2")
	assert.ErrorIs(t, err, model.ErrItemNotFound)
}

func TestSessionRemoveUndoRedo(t *testing.T) {
	input := "l=10 g=40 q=1\nl=12 g=36 q=2\n/rm 1\n/rm 1\n/undo\n/redo\n/undo\n/list\n"
	s, ws, out := newTestSession(t, model.ModuleRoundLog, input)
	require.NoError(t, s.Run(context.Background()))

	require.Len(t, ws.Entries(), 2)
	text := out.String()
	assert.Contains(t, text, "Removed entry #1.")
	assert.Contains(t, text, "No entry #1.")
	assert.Contains(t, text, "Undid: Remove entry 1")
	assert.Contains(t, text, "Redid: Remove entry 1")
	assert.Contains(t, text, "ROUND LOG ENTRIES")
}

func TestSessionExportAndShareFallback(t *testing.T) {
	s, _, out := newTestSession(t, model.ModuleSawnWood, "")
	var exported []string
	s.OnExport = func(path string) { exported = append(exported, path) }
	ctx := context.Background()

	require.NoError(t, s.Dispatch(ctx, "l=10 w=12 t=2 q=5 r=100"))
	require.NoError(t, s.Dispatch(ctx, `/customer "Sharma Traders"`))
	require.NoError(t, s.Dispatch(ctx, "/export xlsx"))
	require.NoError(t, s.Dispatch(ctx, "/share"))

	require.Len(t, exported, 2)
	assert.Equal(t, "Sharma_Traders.xlsx", filepath.Base(exported[0]))
	assert.Equal(t, "Sharma_Traders.pdf", filepath.Base(exported[1]))
	for _, p := range exported {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
	assert.Contains(t, out.String(), "Share failed")
}

func TestSessionSummaryAndUnknownCommand(t *testing.T) {
	s, _, out := newTestSession(t, model.ModuleRoundLog, "")
	ctx := context.Background()

	require.NoError(t, s.Dispatch(ctx, "l=10 g=40 q=3"))
	require.NoError(t, s.Dispatch(ctx, "/summary"))
	require.NoError(t, s.Dispatch(ctx, "/frobnicate"))

	assert.Contains(t, out.String(), "Round Log: 1 entries, 3 pcs, 20.83 CFT, amount 0.00 (1 not priced)")
	assert.Contains(t, out.String(), `Unknown command "frobnicate"`)
}

func TestSessionStopsOnCancelledContext(t *testing.T) {
	s, _, _ := newTestSession(t, model.ModuleSawnWood, "/list\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
}

func TestPrintLanding(t *testing.T) {
	b := model.CalculateLandingPrice(model.LandingInput{
		Cost:       decimal.NewFromInt(1000),
		TaxPercent: decimal.NewFromInt(18),
		Freight:    decimal.NewFromInt(100),
		TopAmount:  decimal.NewFromInt(50),
		Quantity:   10,
	})
	var out bytes.Buffer
	PrintLanding(&out, b)

	text := out.String()
	assert.Contains(t, text, "1364.78")
	assert.Contains(t, text, "1193.22")
	assert.Contains(t, text, "Per unit landing (qty 10)")
	assert.Contains(t, text, "136.48")
}
