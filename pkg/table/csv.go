// Copyright 2023-2024 daviszhen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/daviszhen/colstore/pkg/chunk"
	"github.com/daviszhen/colstore/pkg/column"
	"github.com/daviszhen/colstore/pkg/common"
	"github.com/daviszhen/colstore/pkg/util"
)

const (
	DefaultGuessRows = 10
	IndexColumnName  = "IndexColumn"
)

type CsvOptions struct {
	Separator rune
	Header    bool
	// ColumnNames override the header. Missing names become ColumnN.
	ColumnNames []string
	// DataTypes skip type guessing for the first len(DataTypes) columns.
	DataTypes []common.PhyType
	// NumberOfRowsToRead <= 0 reads every row.
	NumberOfRowsToRead int64
	GuessRows          int
	AddIndexColumn     bool
	ChunkOptions       []chunk.Option
}

func DefaultCsvOptions() CsvOptions {
	return CsvOptions{
		Separator: ',',
		Header:    true,
		GuessRows: DefaultGuessRows,
	}
}

func (opts *CsvOptions) newReader(rc io.Reader) *csv.Reader {
	reader := csv.NewReader(rc)
	if opts.Separator != 0 {
		reader.Comma = opts.Separator
	}
	reader.FieldsPerRecord = -1
	return reader
}

func (opts *CsvOptions) rowLimitReached(rows int64) bool {
	return opts.NumberOfRowsToRead > 0 && rows >= opts.NumberOfRowsToRead
}

// LoadCsvFile loads the csv file at path.
func LoadCsvFile(path string, opts CsvOptions) (*Table, error) {
	return LoadCsv(func() (io.ReadCloser, error) {
		return os.Open(path)
	}, opts)
}

// LoadCsv reads the stream twice. The first pass reads the header and
// GuessRows lines to pick column types, the second one appends the rows.
func LoadCsv(open func() (io.ReadCloser, error), opts CsvOptions) (*Table, error) {
	if open == nil {
		return nil, common.NilArgument("open")
	}
	if len(opts.DataTypes) == 0 && opts.GuessRows <= 0 {
		return nil, errors.Wrapf(common.ErrNilArgument, "either guess rows or data types is required")
	}
	start := time.Now()
	tbl, err := loadCsvSchema(open, &opts)
	if err != nil {
		return nil, err
	}
	rows, err := loadCsvRows(open, &opts, tbl)
	if err != nil {
		return nil, err
	}
	if opts.AddIndexColumn {
		idx := column.NewPrimitiveColumn[int32](IndexColumnName, opts.ChunkOptions...)
		for i := int64(0); i < rows; i++ {
			idx.Append(int32(i))
		}
		if err = tbl.InsertColumn(0, idx); err != nil {
			return nil, err
		}
	}
	util.Info("load csv",
		zap.Int("columns", tbl.ColumnCount()),
		zap.Int64("rows", tbl.RowCount()),
		zap.Duration("duration", time.Since(start)))
	return tbl, nil
}

func loadCsvSchema(open func() (io.ReadCloser, error), opts *CsvOptions) (*Table, error) {
	rc, err := open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	reader := opts.newReader(rc)

	var header []string
	lines := make([][]string, 0, opts.GuessRows)
	lineCount := 0
	for len(lines) < opts.GuessRows || (opts.Header && lineCount == 0) {
		if opts.rowLimitReached(int64(len(lines))) {
			break
		}
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(common.ErrParse, "line %d: %v", lineCount+1, err)
		}
		if opts.Header && lineCount == 0 {
			header = fields
		} else {
			lines = append(lines, fields)
		}
		lineCount++
	}
	if lineCount == 0 {
		return nil, errors.Wrapf(common.ErrParse, "empty csv")
	}

	colCount := max(len(opts.DataTypes), len(header))
	for _, line := range lines {
		colCount = max(colCount, len(line))
	}
	cols := make([]column.Column, colCount)
	for i := range cols {
		typ := common.INVALID
		if i < len(opts.DataTypes) {
			typ = opts.DataTypes[i]
		} else if typ, err = guessKind(i, lines); err != nil {
			return nil, err
		}
		if cols[i], err = column.New(columnName(i, opts.ColumnNames, header), typ, opts.ChunkOptions...); err != nil {
			return nil, err
		}
	}
	return NewTable(cols...)
}

func loadCsvRows(open func() (io.ReadCloser, error), opts *CsvOptions, tbl *Table) (int64, error) {
	rc, err := open()
	if err != nil {
		return 0, err
	}
	defer rc.Close()
	reader := opts.newReader(rc)

	colCount := tbl.ColumnCount()
	rows := int64(0)
	for line := 1; !opts.rowLimitReached(rows); line++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, errors.Wrapf(common.ErrParse, "line %d: %v", line, err)
		}
		if opts.Header && line == 1 {
			continue
		}
		if len(fields) < colCount {
			return 0, errors.Wrapf(common.ErrParse,
				"line %d has %d fields, expected %d", line, len(fields), colCount)
		}
		if err = tbl.AppendRow(fields[:colCount]); err != nil {
			return 0, errors.Wrapf(err, "line %d", line)
		}
		rows++
	}
	return rows, nil
}

func columnName(i int, names []string, header []string) string {
	if i < len(names) {
		return names[i]
	}
	if i < len(header) {
		return header[i]
	}
	return fmt.Sprintf("Column%d", i)
}

func isBoolCell(s string) bool {
	s = strings.TrimSpace(s)
	return strings.EqualFold(s, "true") || strings.EqualFold(s, "false")
}

func isFloatCell(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	return err == nil
}

// maxKind widens bool < float < string.
func maxKind(a, b common.PhyType) common.PhyType {
	if a == common.VARCHAR || b == common.VARCHAR {
		return common.VARCHAR
	}
	if a == common.FLOAT || b == common.FLOAT {
		return common.FLOAT
	}
	if a == common.BOOL || b == common.BOOL {
		return common.BOOL
	}
	return common.VARCHAR
}

// guessKind picks bool, float or string for column col. "null" cells are
// skipped. Empty cells suggest bool without counting as a typed line, so
// they never narrow the kind of a later line.
func guessKind(col int, lines [][]string) (common.PhyType, error) {
	res := common.VARCHAR
	typed := 0
	determine := func(suggested common.PhyType) {
		if typed == 0 {
			res = suggested
		} else {
			res = maxKind(suggested, res)
		}
	}
	for i, line := range lines {
		if col >= len(line) {
			return common.INVALID, errors.Wrapf(common.ErrParse,
				"line %d has fewer columns than expected", i+1)
		}
		val := line[col]
		switch {
		case strings.EqualFold(strings.TrimSpace(val), "null"):
			continue
		case isBoolCell(val):
			determine(common.BOOL)
			typed++
		case len(val) == 0:
			determine(common.BOOL)
		case isFloatCell(val):
			determine(common.FLOAT)
			typed++
		default:
			determine(common.VARCHAR)
			typed++
		}
	}
	return res, nil
}
