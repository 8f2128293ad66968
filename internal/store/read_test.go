package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOutput(source, runID string) Output {
	return Output{
		Source:      source,
		Output:      source + ".go",
		Fingerprint: "fp-" + source,
		ConfigHash:  "cfg",
		CodeHash:    "code-" + source,
		RunID:       runID,
	}
}

func TestRecordOutput_ReadBack(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	run, err := s.BeginRun(ctx, NewFixedGenerator("run-1"))
	require.NoError(t, err)

	out := testOutput("moves.jump", run.ID)
	require.NoError(t, s.RecordOutput(ctx, out))

	got, ok, err := s.ReadOutput(ctx, "moves.jump")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, out, got)

	_, ok, err = s.ReadOutput(ctx, "other.jump")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordOutput_Replaces(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	gen := NewFixedGenerator("run-1", "run-2")
	first, err := s.BeginRun(ctx, gen)
	require.NoError(t, err)
	second, err := s.BeginRun(ctx, gen)
	require.NoError(t, err)

	require.NoError(t, s.RecordOutput(ctx, testOutput("a.jump", first.ID)))
	require.NoError(t, s.RecordOutput(ctx, testOutput("b.jump", first.ID)))

	updated := testOutput("a.jump", second.ID)
	updated.CodeHash = "new"
	require.NoError(t, s.RecordOutput(ctx, updated))

	outs, err := s.ReadRunOutputs(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, "b.jump", outs[0].Source)

	outs, err = s.ReadRunOutputs(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, []Output{updated}, outs)
}

func TestRecordOutput_UnknownRun(t *testing.T) {
	s := createTestStore(t)
	err := s.RecordOutput(context.Background(), testOutput("a.jump", "missing"))
	assert.Error(t, err)
}

func TestReadRunOutputs_Empty(t *testing.T) {
	s := createTestStore(t)
	outs, err := s.ReadRunOutputs(context.Background(), "none")
	require.NoError(t, err)
	assert.NotNil(t, outs)
	assert.Empty(t, outs)
}

func TestFresh(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	run, err := s.BeginRun(ctx, NewFixedGenerator("run-1"))
	require.NoError(t, err)

	out := testOutput("a.jump", run.ID)
	_, fresh, err := s.Fresh(ctx, out)
	require.NoError(t, err)
	assert.False(t, fresh, "unrecorded source")

	require.NoError(t, s.RecordOutput(ctx, out))

	probe := out
	probe.CodeHash = ""
	probe.RunID = ""
	rec, fresh, err := s.Fresh(ctx, probe)
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.Equal(t, out.CodeHash, rec.CodeHash)

	probe.Fingerprint = "changed"
	_, fresh, err = s.Fresh(ctx, probe)
	require.NoError(t, err)
	assert.False(t, fresh)
}
