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
	"fmt"
	"io"
	"strings"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/cockroachdb/errors"
	"github.com/xlab/treeprint"

	"github.com/daviszhen/colstore/pkg/column"
	"github.com/daviszhen/colstore/pkg/common"
	"github.com/daviszhen/colstore/pkg/compute"
	"github.com/daviszhen/colstore/pkg/util"
)

// Table is an ordered list of uniquely named columns of equal length.
type Table struct {
	columns []column.Column
	names   map[string]int
}

func NewTable(cols ...column.Column) (*Table, error) {
	tbl := &Table{
		names: make(map[string]int),
	}
	for _, col := range cols {
		if err := tbl.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

func (tbl *Table) ColumnCount() int {
	return len(tbl.columns)
}

func (tbl *Table) RowCount() int64 {
	if len(tbl.columns) == 0 {
		return 0
	}
	return tbl.columns[0].Len()
}

func (tbl *Table) Columns() []column.Column {
	return tbl.columns
}

func (tbl *Table) ColumnNames() []string {
	ret := make([]string, len(tbl.columns))
	for i, col := range tbl.columns {
		ret[i] = col.Name()
	}
	return ret
}

func (tbl *Table) Column(name string) (column.Column, error) {
	idx, has := tbl.names[name]
	if !has {
		return nil, errors.Wrapf(common.ErrColumnNotFound, "%s", name)
	}
	return tbl.columns[idx], nil
}

func (tbl *Table) AddColumn(col column.Column) error {
	return tbl.InsertColumn(len(tbl.columns), col)
}

func (tbl *Table) InsertColumn(pos int, col column.Column) error {
	if col == nil {
		return common.NilArgument("column")
	}
	if pos < 0 || pos > len(tbl.columns) {
		return common.IndexOutOfRange(int64(pos), int64(len(tbl.columns)))
	}
	if _, has := tbl.names[col.Name()]; has {
		return errors.Wrapf(common.ErrDuplicateColumn, "%s", col.Name())
	}
	if len(tbl.columns) != 0 && col.Len() != tbl.RowCount() {
		return errors.Wrapf(common.ErrRowCountMismatch,
			"column %s has %d rows, table has %d", col.Name(), col.Len(), tbl.RowCount())
	}
	tbl.columns = append(tbl.columns, nil)
	copy(tbl.columns[pos+1:], tbl.columns[pos:])
	tbl.columns[pos] = col
	tbl.reindex()
	return nil
}

func (tbl *Table) RemoveColumn(name string) error {
	idx, has := tbl.names[name]
	if !has {
		return errors.Wrapf(common.ErrColumnNotFound, "%s", name)
	}
	tbl.columns = util.RemoveAt(tbl.columns, idx)
	tbl.reindex()
	return nil
}

func (tbl *Table) reindex() {
	clear(tbl.names)
	for i, col := range tbl.columns {
		tbl.names[col.Name()] = i
	}
}

// AppendRow parses one cell per column and appends the row. Nothing is
// appended when a cell fails to parse. Empty and "null" cells of non-string
// columns store the zero value.
func (tbl *Table) AppendRow(cells []string) error {
	if len(cells) != len(tbl.columns) {
		return errors.Wrapf(common.ErrLengthMismatch,
			"row has %d cells, table has %d columns", len(cells), len(tbl.columns))
	}
	vals := make([]*column.Value, len(cells))
	for i, cell := range cells {
		var (
			val *column.Value
			err error
		)
		typ := tbl.columns[i].Typ()
		switch {
		case typ == common.VARCHAR:
			val = column.StringValue(cell)
		case isNullCell(cell):
			val = column.ZeroValue(typ)
		default:
			val, err = column.ParseValue(typ, strings.TrimSpace(cell))
		}
		if err != nil {
			return errors.Wrapf(err, "column %s", tbl.columns[i].Name())
		}
		vals[i] = val
	}
	for i, val := range vals {
		if err := tbl.columns[i].AppendValue(val); err != nil {
			return err
		}
	}
	return nil
}

func isNullCell(cell string) bool {
	cell = strings.TrimSpace(cell)
	return len(cell) == 0 || strings.EqualFold(cell, "null")
}

// Sort reorders every column by the values of column name.
func (tbl *Table) Sort(name string, order compute.OrderType) (*Table, error) {
	key, err := tbl.Column(name)
	if err != nil {
		return nil, err
	}
	perm, err := key.SortIndices(order)
	if err != nil {
		return nil, err
	}
	cols := make([]column.Column, len(tbl.columns))
	for i, col := range tbl.columns {
		if cols[i], err = col.Take(perm); err != nil {
			return nil, err
		}
	}
	return NewTable(cols...)
}

// Filter keeps the rows where mask is true.
func (tbl *Table) Filter(mask *column.BoolColumn) (*Table, error) {
	if mask == nil {
		return nil, common.NilArgument("mask")
	}
	if mask.Len() != tbl.RowCount() {
		return nil, common.LengthMismatch(mask.Len(), tbl.RowCount())
	}
	return tbl.filter(mask.Selection())
}

func (tbl *Table) filter(sel *roaring64.Bitmap) (*Table, error) {
	var err error
	cols := make([]column.Column, len(tbl.columns))
	for i, col := range tbl.columns {
		if cols[i], err = col.Filter(sel); err != nil {
			return nil, err
		}
	}
	return NewTable(cols...)
}

// Head returns the first n rows.
func (tbl *Table) Head(n int64) (*Table, error) {
	sel := roaring64.New()
	if n = min(n, tbl.RowCount()); n > 0 {
		sel.AddRange(0, uint64(n))
	}
	return tbl.filter(sel)
}

// Print adds the chunk layout of every column to tree.
func (tbl *Table) Print(tree treeprint.Tree) {
	branch := tree.AddBranch(fmt.Sprintf("table columns=%d rows=%d", len(tbl.columns), tbl.RowCount()))
	for _, col := range tbl.columns {
		col.Print(branch)
	}
}

// Format writes the header and at most maxRows rows, tab separated.
// maxRows < 0 writes every row.
func (tbl *Table) Format(w io.Writer, maxRows int64) error {
	rows := tbl.RowCount()
	if maxRows >= 0 {
		rows = min(rows, maxRows)
	}
	var sb strings.Builder
	for j, col := range tbl.columns {
		if j > 0 {
			sb.WriteByte('\t')
		}
		sb.WriteString(fmt.Sprintf("%s(%s)", col.Name(), col.Typ()))
	}
	sb.WriteByte('\n')
	for i := int64(0); i < rows; i++ {
		for j, col := range tbl.columns {
			if j > 0 {
				sb.WriteByte('\t')
			}
			s, err := col.String(i)
			if err != nil {
				return err
			}
			sb.WriteString(s)
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
