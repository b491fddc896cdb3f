package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xlab/treeprint"
	"go.uber.org/zap"

	"github.com/daviszhen/colstore/pkg/chunk"
	"github.com/daviszhen/colstore/pkg/common"
	"github.com/daviszhen/colstore/pkg/compute"
	"github.com/daviszhen/colstore/pkg/table"
	"github.com/daviszhen/colstore/pkg/util"
)

func applyConfig(cfg *util.Config) error {
	if err := util.SetLogLevel(cfg.Debug.LogLevel); err != nil {
		return err
	}
	compute.SetParallelism(cfg.Compute.Parallelism)
	return nil
}

func chunkOptions(cfg *util.Config) []chunk.Option {
	if cfg.Compute.MaxChunkCapacity <= 0 {
		return nil
	}
	return []chunk.Option{chunk.WithMaxCapacity(cfg.Compute.MaxChunkCapacity)}
}

func dataFormat(cfg *util.Config) string {
	if len(cfg.Data.Format) != 0 {
		return strings.ToLower(cfg.Data.Format)
	}
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(cfg.Data.Path)), ".")
}

func loadTable(cfg *util.Config) (*table.Table, error) {
	if len(cfg.Data.Path) == 0 {
		return nil, common.NilArgument("data path")
	}
	switch format := dataFormat(cfg); format {
	case "csv":
		opts := table.DefaultCsvOptions()
		if len(cfg.Data.Separator) != 0 {
			opts.Separator, _ = utf8.DecodeRuneInString(cfg.Data.Separator)
		}
		opts.Header = cfg.Data.Header
		if cfg.Data.GuessRows > 0 {
			opts.GuessRows = cfg.Data.GuessRows
		}
		opts.ChunkOptions = chunkOptions(cfg)
		return table.LoadCsvFile(cfg.Data.Path, opts)
	case "parquet":
		opts := table.DefaultParquetOptions()
		opts.ChunkOptions = chunkOptions(cfg)
		return table.LoadParquet(cfg.Data.Path, opts)
	default:
		return nil, errors.Wrapf(common.ErrUnsupportedOperation, "data format %q", format)
	}
}

func printTable(w io.Writer, cfg *util.Config, tbl *table.Table) error {
	fmt.Fprintf(w, "rows: %d\n", tbl.RowCount())
	if cfg.Debug.PrintLayout {
		printLayout(w, cfg, tbl)
	}
	return tbl.Format(w, int64(cfg.Debug.MaxOutputRowCount))
}

func printLayout(w io.Writer, cfg *util.Config, tbl *table.Table) {
	tree := treeprint.NewWithRoot(cfg.Data.Path)
	tbl.Print(tree)
	fmt.Fprint(w, tree.String())
}

//load cmd

var loadInfo = "load a data file and print its first rows"
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: loadInfo,
	Long:  loadInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		tbl, err := loadTable(&runCfg)
		if err != nil {
			return err
		}
		return printTable(cmd.OutOrStdout(), &runCfg, tbl)
	},
}

func initLoadCmd() {
	RootCmd.AddCommand(loadCmd)
	loadCmd.Flags().Bool("print_layout", false, "print the chunk layout of every column")
	viper.BindPFlag("debug.printLayout", loadCmd.Flags().Lookup("print_layout"))
}

//sort cmd

var sortInfo = "load a data file and print it sorted by one column"
var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: sortInfo,
	Long:  sortInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		tbl, err := loadTable(&runCfg)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("column")
		order := compute.OT_ASC
		if desc, _ := cmd.Flags().GetBool("desc"); desc {
			order = compute.OT_DESC
		}
		sorted, err := tbl.Sort(name, order)
		if err != nil {
			return err
		}
		util.Debug("sorted",
			zap.String("column", name),
			zap.String("order", order.String()),
			zap.Int64("rows", sorted.RowCount()))
		return printTable(cmd.OutOrStdout(), &runCfg, sorted)
	},
}

func initSortCmd() {
	RootCmd.AddCommand(sortCmd)
	sortCmd.Flags().String("column", "", "sort key column")
	sortCmd.Flags().Bool("desc", false, "sort descending")
	sortCmd.MarkFlagRequired("column")
}

//layout cmd

var layoutInfo = "print the chunk layout of every column"
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: layoutInfo,
	Long:  layoutInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		tbl, err := loadTable(&runCfg)
		if err != nil {
			return err
		}
		printLayout(cmd.OutOrStdout(), &runCfg, tbl)
		return nil
	},
}

func initLayoutCmd() {
	RootCmd.AddCommand(layoutCmd)
}
