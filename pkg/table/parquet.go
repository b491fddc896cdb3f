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
	"time"

	"github.com/cockroachdb/errors"
	pqLocal "github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	pqReader "github.com/xitongsys/parquet-go/reader"
	"go.uber.org/zap"

	"github.com/daviszhen/colstore/pkg/chunk"
	"github.com/daviszhen/colstore/pkg/column"
	"github.com/daviszhen/colstore/pkg/common"
	"github.com/daviszhen/colstore/pkg/util"
)

type ParquetOptions struct {
	// BatchSize is the number of values read per column per call.
	BatchSize    int64
	ChunkOptions []chunk.Option
}

func DefaultParquetOptions() ParquetOptions {
	return ParquetOptions{
		BatchSize: 8192,
	}
}

func parquetPhyType(elem *parquet.SchemaElement) (common.PhyType, error) {
	if elem.Type == nil {
		return common.INVALID, errors.Wrapf(common.ErrUnsupportedOperation, "nested parquet column %s", elem.Name)
	}
	switch *elem.Type {
	case parquet.Type_BOOLEAN:
		return common.BOOL, nil
	case parquet.Type_INT32:
		return common.INT32, nil
	case parquet.Type_INT64:
		return common.INT64, nil
	case parquet.Type_FLOAT:
		return common.FLOAT, nil
	case parquet.Type_DOUBLE:
		return common.DOUBLE, nil
	case parquet.Type_BYTE_ARRAY:
		return common.VARCHAR, nil
	default:
		return common.INVALID, errors.Wrapf(common.ErrUnsupportedOperation,
			"parquet column %s of type %s", elem.Name, elem.Type.String())
	}
}

func parquetFieldToValue(field any, typ common.PhyType) (*column.Value, error) {
	if field == nil {
		return column.ZeroValue(typ), nil
	}
	switch fVal := field.(type) {
	case bool:
		return column.BoolValue(fVal), nil
	case int32:
		return column.NumberValue(fVal), nil
	case int64:
		return column.NumberValue(fVal), nil
	case float32:
		return column.NumberValue(fVal), nil
	case float64:
		return column.NumberValue(fVal), nil
	case string:
		return column.StringValue(fVal), nil
	default:
		return nil, errors.Wrapf(common.ErrTypeMismatch, "parquet value %T into %s column", field, typ)
	}
}

// parquetColumnName returns the name written to the file. The reader
// renames the footer schema to Go identifiers.
func parquetColumnName(reader *pqReader.ParquetReader, idx int) string {
	infos := reader.SchemaHandler.Infos
	if idx < len(infos) && len(infos[idx].ExName) != 0 {
		return infos[idx].ExName
	}
	return reader.Footer.GetSchema()[idx].GetName()
}

// LoadParquet reads a flat parquet file column by column.
func LoadParquet(path string, opts ParquetOptions) (*Table, error) {
	start := time.Now()
	pqFile, err := pqLocal.NewLocalFileReader(path)
	if err != nil {
		return nil, err
	}
	defer pqFile.Close()

	reader, err := pqReader.NewParquetColumnReader(pqFile, 1)
	if err != nil {
		return nil, err
	}
	defer reader.ReadStop()

	batch := opts.BatchSize
	if batch <= 0 {
		batch = DefaultParquetOptions().BatchSize
	}
	numRows := reader.GetNumRows()
	schema := reader.Footer.GetSchema()
	cols := make([]column.Column, 0, len(schema))
	//skip the root element
	for idx, elem := range schema[1:] {
		if elem.GetNumChildren() > 0 {
			return nil, errors.Wrapf(common.ErrUnsupportedOperation, "nested parquet column %s", elem.Name)
		}
		typ, err := parquetPhyType(elem)
		if err != nil {
			return nil, err
		}
		col, err := column.New(parquetColumnName(reader, idx+1), typ, opts.ChunkOptions...)
		if err != nil {
			return nil, err
		}
		for read := int64(0); read < numRows; {
			values, _, _, err := reader.ReadColumnByIndex(int64(idx), min(batch, numRows-read))
			if err != nil {
				return nil, errors.Wrapf(err, "column %s", elem.Name)
			}
			if len(values) == 0 {
				break
			}
			for _, field := range values {
				val, err := parquetFieldToValue(field, typ)
				if err != nil {
					return nil, err
				}
				if err = col.AppendValue(val); err != nil {
					return nil, err
				}
			}
			read += int64(len(values))
		}
		cols = append(cols, col)
	}
	tbl, err := NewTable(cols...)
	if err != nil {
		return nil, err
	}
	util.Info("load parquet",
		zap.String("path", path),
		zap.Int("columns", tbl.ColumnCount()),
		zap.Int64("rows", tbl.RowCount()),
		zap.Duration("duration", time.Since(start)))
	return tbl, nil
}
