package dataset

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const datasetDoc = `
path: /data/events.db
graph_definition:
  class_name: KNNGraph
  arguments:
    nb_nearest_neighbours: 8
pulsemaps: [SRTInIcePulses]
features: [dom_x, dom_y, dom_z, dom_time]
truth: [position_x, position_y, position_z]
index_column: event_no
truth_table: truth
seed: 42
selection:
  train: event_no % 5 > 1
  validation: event_no % 5 == 1
  test: event_no % 5 == 0
`

func parseTestSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := ParseSchema([]byte(datasetDoc))
	require.NoError(t, err)
	return s
}

func TestParseSchema(t *testing.T) {
	s := parseTestSchema(t)
	assert.Equal(t, "/data/events.db", s.Path)
	assert.Equal(t, "event_no", s.IndexColumn)
	assert.Equal(t, []string{"position_x", "position_y", "position_z"}, s.Truth)
	require.NotNil(t, s.GraphDefinition)
	assert.Equal(t, "KNNGraph", s.GraphDefinition.ClassName)
	assert.Len(t, s.Selection, 3)
}

func TestParseSchemaRejectsMissingFields(t *testing.T) {
	_, err := ParseSchema([]byte("path: /tmp/x.db\n"))
	require.Error(t, err)
}

func TestResolveSelectionIsDeterministic(t *testing.T) {
	s := parseTestSchema(t)

	first, err := ResolveSelection(s, s.Seed)
	require.NoError(t, err)
	second, err := ResolveSelection(s, s.Seed)
	require.NoError(t, err)
	require.Len(t, first, 3)

	for name := range first {
		for index := int64(0); index < 200; index++ {
			a, err := first[name].Contains(index)
			require.NoError(t, err)
			b, err := second[name].Contains(index)
			require.NoError(t, err)
			assert.Equal(t, a, b, "partition %s, index %d", name, index)
		}
	}
}

func TestVerifyPartitionsDisjoint(t *testing.T) {
	s := parseTestSchema(t)
	parts, err := ResolveSelection(s, s.Seed)
	require.NoError(t, err)

	assert.NoError(t, VerifyPartitions(context.Background(), parts, 500))
}

func TestVerifyPartitionsDetectsOverlap(t *testing.T) {
	s := parseTestSchema(t)
	s.Selection = map[string]string{
		"train": "event_no % 2 == 0",
		"test":  "event_no % 3 == 0",
	}
	parts, err := ResolveSelection(s, s.Seed)
	require.NoError(t, err)

	err = VerifyPartitions(context.Background(), parts, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not disjoint")
}

// spySource records whether the storage engine was ever touched.
type spySource struct {
	queried bool
	batch   *Batch
}

func (s *spySource) QueryTruth(ctx context.Context, table, indexColumn string, columns []string, indices []int64) (*Batch, error) {
	s.queried = true
	return s.batch, nil
}

func TestLoadTruthRejectsUnknownColumnBeforeQuerying(t *testing.T) {
	s := parseTestSchema(t)
	src := &spySource{}

	_, err := LoadTruth(context.Background(), src, s, []string{"position_x", "interaction_type"}, nil)
	require.Error(t, err)

	var unknown *UnknownColumnError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, []string{"interaction_type"}, unknown.Columns)
	assert.False(t, src.queried, "the storage engine must not be touched for unknown columns")
}

func TestLoadTruthDelegatesToSource(t *testing.T) {
	s := parseTestSchema(t)
	src := &spySource{batch: &Batch{
		Events:  []int64{1, 2},
		Columns: map[string][]float64{"position_x": {0.5, 1.5}},
	}}

	batch, err := LoadTruth(context.Background(), src, s, []string{"position_x"}, []int64{1, 2})
	require.NoError(t, err)
	assert.True(t, src.queried)

	col, ok := batch.Column("position_x")
	require.True(t, ok)
	assert.Equal(t, []float64{0.5, 1.5}, col)
}
