package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"version"}, &out, &out))
	assert.Equal(t, "tensorgrad "+version+"\n", out.String())
}

func TestRunUsage(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), nil, &out, &out))
	assert.Contains(t, out.String(), "Commands:")

	out.Reset()
	err := run(context.Background(), []string{"serve"}, &out, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "serve"`)
}

func TestTrainRecoversCoefficients(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"train", "-samples", "128", "-shards", "4", "-workers", "2", "-epochs", "300"}
	require.NoError(t, run(context.Background(), args, &stdout, &stderr))

	var fit string
	for _, line := range strings.Split(stdout.String(), "\n") {
		if strings.HasPrefix(line, "fit:") {
			fit = line
		}
	}
	require.NotEmpty(t, fit, stdout.String())

	var w0, w1, b, loss float64
	_, err := fmt.Sscanf(fit, "fit: y = %f*x0 + %f*x1 + %f (loss %f)", &w0, &w1, &b, &loss)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, w0, 0.05)
	assert.InDelta(t, -2.0, w1, 0.05)
	assert.InDelta(t, 0.5, b, 0.05)
	assert.Less(t, loss, 1e-3)
}

func TestTrainVerboseLogsWorkers(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"train", "-samples", "8", "-shards", "2", "-workers", "2", "-epochs", "1", "-v"}
	require.NoError(t, run(context.Background(), args, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "parallel: worker finished")
}

func TestTrainRejectsUnevenShards(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"train", "-samples", "10", "-shards", "3"}, &out, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple of shards")
}
