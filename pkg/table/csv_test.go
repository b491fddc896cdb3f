package table

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daviszhen/colstore/pkg/chunk"
	"github.com/daviszhen/colstore/pkg/common"
)

func openString(s string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(s)), nil
	}
}

func columnTypes(tbl *Table) []common.PhyType {
	ret := make([]common.PhyType, 0, tbl.ColumnCount())
	for _, col := range tbl.Columns() {
		ret = append(ret, col.Typ())
	}
	return ret
}

const testCsv = `vendor,rate,code,flag
CMT,1.5,1,true
VTS,2,2,false
CMT,,null,True
DDS,3.25,4,
`

func TestLoadCsv(t *testing.T) {
	tbl, err := LoadCsv(openString(testCsv), DefaultCsvOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor", "rate", "code", "flag"}, tbl.ColumnNames())
	assert.Equal(t, []common.PhyType{common.VARCHAR, common.FLOAT, common.FLOAT, common.BOOL}, columnTypes(tbl))
	assert.Equal(t, int64(4), tbl.RowCount())
	assert.Equal(t, []string{"CMT", "VTS", "CMT", "DDS"}, cells(t, tbl, "vendor"))
	assert.Equal(t, []string{"1.5", "2", "0", "3.25"}, cells(t, tbl, "rate"))
	assert.Equal(t, []string{"1", "2", "0", "4"}, cells(t, tbl, "code"))
	assert.Equal(t, []string{"true", "false", "true", "false"}, cells(t, tbl, "flag"))
}

func TestLoadCsvOptions(t *testing.T) {
	opts := DefaultCsvOptions()
	opts.Separator = ';'
	opts.Header = false
	opts.ColumnNames = []string{"a"}
	opts.DataTypes = []common.PhyType{common.INT16}
	opts.NumberOfRowsToRead = 2
	opts.AddIndexColumn = true
	opts.ChunkOptions = []chunk.Option{chunk.WithMaxCapacity(1)}

	tbl, err := LoadCsv(openString("7;x\n8;y\n9;z\n"), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{IndexColumnName, "a", "Column1"}, tbl.ColumnNames())
	assert.Equal(t, []common.PhyType{common.INT32, common.INT16, common.VARCHAR}, columnTypes(tbl))
	assert.Equal(t, []string{"0", "1"}, cells(t, tbl, IndexColumnName))
	assert.Equal(t, []string{"7", "8"}, cells(t, tbl, "a"))
	assert.Equal(t, []string{"x", "y"}, cells(t, tbl, "Column1"))
}

func TestLoadCsvGuessRows(t *testing.T) {
	data := "v\n1\n2\n3\nabc\n"
	opts := DefaultCsvOptions()
	opts.GuessRows = 3
	_, err := LoadCsv(openString(data), opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrParse))

	opts.GuessRows = 4
	tbl, err := LoadCsv(openString(data), opts)
	require.NoError(t, err)
	assert.Equal(t, []common.PhyType{common.VARCHAR}, columnTypes(tbl))
	assert.Equal(t, []string{"1", "2", "3", "abc"}, cells(t, tbl, "v"))

	opts.GuessRows = 0
	_, err = LoadCsv(openString(data), opts)
	assert.True(t, errors.Is(err, common.ErrNilArgument))
}

func TestLoadCsvErrors(t *testing.T) {
	_, err := LoadCsv(openString(""), DefaultCsvOptions())
	assert.True(t, errors.Is(err, common.ErrParse))

	_, err = LoadCsv(openString("a,b\n1,2\n3\n"), DefaultCsvOptions())
	assert.True(t, errors.Is(err, common.ErrParse))

	_, err = LoadCsv(nil, DefaultCsvOptions())
	assert.True(t, errors.Is(err, common.ErrNilArgument))

	_, err = LoadCsvFile(filepath.Join(t.TempDir(), "missing.csv"), DefaultCsvOptions())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCsvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCsv), 0644))
	tbl, err := LoadCsvFile(path, DefaultCsvOptions())
	require.NoError(t, err)
	assert.Equal(t, int64(4), tbl.RowCount())
}

func TestGuessKind(t *testing.T) {
	cases := []struct {
		cells []string
		want  common.PhyType
	}{
		{[]string{"true", "FALSE"}, common.BOOL},
		{[]string{"true", "1"}, common.FLOAT},
		{[]string{"1", "true"}, common.FLOAT},
		{[]string{"1.5", "x"}, common.VARCHAR},
		{[]string{"", "2"}, common.FLOAT},
		{[]string{"null", "NULL"}, common.VARCHAR},
		{[]string{"null", "false"}, common.BOOL},
		{[]string{""}, common.BOOL},
	}
	for _, c := range cases {
		lines := make([][]string, len(c.cells))
		for i, cell := range c.cells {
			lines[i] = []string{cell}
		}
		got, err := guessKind(0, lines)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%v", c.cells)
	}
	_, err := guessKind(1, [][]string{{"a"}})
	assert.True(t, errors.Is(err, common.ErrParse))
}
