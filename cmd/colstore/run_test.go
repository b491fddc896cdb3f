package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daviszhen/colstore/pkg/common"
	"github.com/daviszhen/colstore/pkg/util"
)

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	require.NoError(t, os.WriteFile(path, []byte("k;v\n2;b\n1;a\n3;c\n"), 0644))

	cfg := util.DefaultConfig()
	cfg.Data.Path = path
	cfg.Data.Separator = ";"
	cfg.Compute.MaxChunkCapacity = 2
	cfg.Debug.MaxOutputRowCount = 2
	cfg.Debug.PrintLayout = true
	assert.Equal(t, "csv", dataFormat(&cfg))

	tbl, err := loadTable(&cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(3), tbl.RowCount())

	var buf bytes.Buffer
	require.NoError(t, printTable(&buf, &cfg, tbl))
	out := buf.String()
	assert.Contains(t, out, "rows: 3")
	assert.Contains(t, out, "FLOAT length=3 chunks=2 maxCap=2")
	assert.Contains(t, out, "k(FLOAT)\tv(VARCHAR)\n2\tb\n1\ta\n")
}

func TestLoadTableFormat(t *testing.T) {
	cfg := util.DefaultConfig()
	_, err := loadTable(&cfg)
	assert.True(t, errors.Is(err, common.ErrNilArgument))

	cfg.Data.Path = "x.json"
	_, err = loadTable(&cfg)
	assert.True(t, errors.Is(err, common.ErrUnsupportedOperation))

	cfg.Data.Format = "PARQUET"
	assert.Equal(t, "parquet", dataFormat(&cfg))
}
