package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qecsim/fusionmatch/config"
)

func TestParseCodeConfig(t *testing.T) {
	require := require.New(t)

	cfg, err := config.Parse("d=5,rounds=7,p=0.001,flavor=xz")
	require.NoError(err)
	require.Equal(5, cfg.Distance)
	require.Equal(7, cfg.Rounds)
	require.InDelta(0.001, cfg.P, 1e-12)
	require.Equal("xz", cfg.Extra["flavor"])
}

func TestParseCodeConfigRejectsDuplicateKey(t *testing.T) {
	require := require.New(t)
	_, err := config.Parse("d=5,d=7")
	require.ErrorIs(err, config.ErrDuplicateKey)
}

func TestParsePartitionConfig(t *testing.T) {
	require := require.New(t)

	body := `{"VertexNum":4,"Partitions":[{"Start":0,"End":2},{"Start":2,"End":4}],"Fusions":[{"Left":0,"Right":1}]}`
	spec, err := config.ParsePartitionConfig([]byte(body))
	require.NoError(err)
	require.Equal(4, spec.VertexNum)
	require.Len(spec.Partitions, 2)
	require.Len(spec.Fusions, 1)
}
