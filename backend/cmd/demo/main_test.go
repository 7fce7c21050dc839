package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"socialgraph/backend/internal/network"
	"go.uber.org/zap"
)

func TestDemoReport(t *testing.T) {
	ctx := context.Background()
	g := network.New(zap.NewNop())
	require.NoError(t, buildExample(ctx, g))

	var out bytes.Buffer
	report(ctx, &out, g)

	assert.Equal(t, "Matthew -> David = 1\n"+
		"Alice -> David = 3\n"+
		"Alice -> Charlie = 2\n"+
		"Alice -> Alice = 0\n"+
		"Alice: age=30 occupation=Engineer\n", out.String())
}
