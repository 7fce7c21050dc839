package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"socialgraph/backend/internal/network"
	"go.uber.org/zap"
)

func TestRecorder_CountsGraphOperations(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)
	g := network.New(zap.NewNop(), network.WithRecorder(rec))

	require.NoError(t, g.AddPerson(ctx, "Alice", nil))
	require.NoError(t, g.AddPerson(ctx, "Bob", nil))
	_ = g.AddPerson(ctx, "Alice", nil)
	_ = g.AddPerson(ctx, "", nil)
	require.NoError(t, g.AddFriendship(ctx, "Alice", "Bob"))
	_ = g.UpdatePersonDetails(ctx, "Zed", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.mutationsTotal.WithLabelValues(network.OpAddPerson, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.mutationsTotal.WithLabelValues(network.OpAddPerson, "already_exists")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.mutationsTotal.WithLabelValues(network.OpAddPerson, "invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.mutationsTotal.WithLabelValues(network.OpAddFriendship, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.mutationsTotal.WithLabelValues(network.OpUpdatePerson, "not_found")))

	assert.Equal(t, 1, g.DegreeOfSeparation(ctx, "Alice", "Bob"))
	assert.Equal(t, -1, g.DegreeOfSeparation(ctx, "Alice", "Zed"))

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.separationsTotal.WithLabelValues("connected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.separationsTotal.WithLabelValues("not_found")))

	count, err := testutil.GatherAndCount(reg, "socialgraph_separation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
