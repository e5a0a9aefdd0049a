package sqlite

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/measures/pkg/types"
)

// attachTestBackend attaches a backend to a fresh temp directory and
// detaches it on cleanup.
func attachTestBackend(t *testing.T) (*Backend, string) {
	t.Helper()

	dataDir := t.TempDir()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
	t.Cleanup(func() { b.Detach() })
	return b, dataDir
}

func sampleConversion(category string) types.Conversion {
	return types.Conversion{
		Mode:     types.ModeStandard,
		Category: category,
		FromUnit: "meter",
		ToUnit:   "mile",
		Amount:   1609.34,
		Result:   1,
	}
}

func TestBackend_Attach(t *testing.T) {
	b, dataDir := attachTestBackend(t)

	_, err := os.Stat(filepath.Join(dataDir, historyDB))
	assert.NoError(t, err, "history.db not created")

	info, err := os.Stat(filepath.Join(dataDir, historyJSONL))
	require.NoError(t, err, "history.jsonl not created")
	assert.Zero(t, info.Size())

	err = b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
	assert.Equal(t, dataDir, b.DataDir())
}

func TestBackend_AttachValidatesConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{Backend: "postgres", DataDir: t.TempDir()})
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestBackend_Detach(t *testing.T) {
	b, _ := attachTestBackend(t)

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "Detach must be idempotent")
	assert.Empty(t, b.DataDir())

	_, err := b.Record(sampleConversion("length"))
	assert.ErrorIs(t, err, types.ErrHistoryDetached)
	_, err = b.List(types.HistoryFilter{})
	assert.ErrorIs(t, err, types.ErrHistoryDetached)
	assert.ErrorIs(t, b.Clear(), types.ErrHistoryDetached)
}

func TestBackend_RecordGeneratesID(t *testing.T) {
	b, _ := attachTestBackend(t)

	id, err := b.Record(sampleConversion("length"))
	require.NoError(t, err)
	assert.Len(t, id, 36)

	got, err := b.List(types.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ConversionID)
	assert.Equal(t, "length", got[0].Category)
	assert.Equal(t, 1609.34, got[0].Amount)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestBackend_RecordKeepsProvidedID(t *testing.T) {
	b, _ := attachTestBackend(t)

	c := sampleConversion("length")
	c.ConversionID = "fixed-id"
	id, err := b.Record(c)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)

	_, err = b.Record(c)
	assert.Error(t, err, "duplicate IDs must be rejected")
}

func TestBackend_RecordRejectsInvalid(t *testing.T) {
	b, _ := attachTestBackend(t)

	c := sampleConversion("length")
	c.Mode = ""
	_, err := b.Record(c)
	assert.ErrorIs(t, err, types.ErrInvalidMode)
}

func TestBackend_RecordRejectsNonFiniteResult(t *testing.T) {
	b, _ := attachTestBackend(t)

	overflow := sampleConversion("storage")
	overflow.Result = math.Inf(1)
	_, err := b.Record(overflow)
	assert.ErrorIs(t, err, types.ErrInvalidRecord)

	_, err = b.Record(sampleConversion("length"))
	require.NoError(t, err)

	got, err := b.List(types.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "length", got[0].Category)
}

func TestBackend_RecordRollsBackWhenPersistFails(t *testing.T) {
	b, dataDir := attachTestBackend(t)

	// A non-empty directory in place of history.jsonl makes the rename fail.
	jsonlPath := filepath.Join(dataDir, historyJSONL)
	require.NoError(t, os.Remove(jsonlPath))
	require.NoError(t, os.MkdirAll(filepath.Join(jsonlPath, "blocker"), 0o755))

	_, err := b.Record(sampleConversion("length"))
	require.Error(t, err)

	got, err := b.List(types.HistoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, os.RemoveAll(jsonlPath))
	_, err = b.Record(sampleConversion("weight"))
	require.NoError(t, err)

	got, err = b.List(types.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "weight", got[0].Category)
}

func TestBackend_ListOrderFilterLimit(t *testing.T) {
	b, _ := attachTestBackend(t)

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i, cat := range []string{"length", "weight", "length", "time"} {
		c := sampleConversion(cat)
		c.CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
		c.Amount = float64(i)
		_, err := b.Record(c)
		require.NoError(t, err)
	}

	all, err := b.List(types.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []float64{3, 2, 1, 0}, []float64{all[0].Amount, all[1].Amount, all[2].Amount, all[3].Amount})

	lengths, err := b.List(types.HistoryFilter{Category: "length"})
	require.NoError(t, err)
	require.Len(t, lengths, 2)
	assert.Equal(t, 2.0, lengths[0].Amount)

	limited, err := b.List(types.HistoryFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "time", limited[0].Category)

	none, err := b.List(types.HistoryFilter{Category: "volume"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestBackend_Clear(t *testing.T) {
	b, dataDir := attachTestBackend(t)

	_, err := b.Record(sampleConversion("length"))
	require.NoError(t, err)
	require.NoError(t, b.Clear())

	got, err := b.List(types.HistoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)

	info, err := os.Stat(filepath.Join(dataDir, historyJSONL))
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestBackend_ReattachReloadsFromJSONL(t *testing.T) {
	dataDir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}

	b := NewBackend()
	require.NoError(t, b.Attach(cfg))
	smart := types.Conversion{
		Mode:       types.ModeSmart,
		Expression: "10 kilometer to mile",
		Category:   "length",
		FromUnit:   "kilometer",
		ToUnit:     "mile",
		Amount:     10,
		Result:     6.2137,
	}
	id, err := b.Record(smart)
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	b2 := NewBackend()
	require.NoError(t, b2.Attach(cfg))
	defer b2.Detach()

	got, err := b2.List(types.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ConversionID)
	assert.Equal(t, "10 kilometer to mile", got[0].Expression)
	assert.Equal(t, types.ModeSmart, got[0].Mode)
}
