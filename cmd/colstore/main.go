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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/daviszhen/colstore/pkg/util"
)

func init() {
	cobra.OnInitialize(loadConfig)
	initRootFlags()
	initLoadCmd()
	initSortCmd()
	initLayoutCmd()
}

var runCfg = util.DefaultConfig()

///root cmd

var info = "chunked in-memory column store"
var RootCmd = &cobra.Command{
	Use:          "colstore",
	Short:        info,
	Long:         info,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("use colstore --help or -h")
	},
}

func initRootFlags() {
	flags := RootCmd.PersistentFlags()
	flags.String("path", "", "data file path")
	flags.String("format", "", "data file format. csv, parquet. guessed from the extension if empty")
	flags.String("separator", ",", "csv separator")
	flags.Bool("header", true, "csv has a header line")
	flags.Int("guess_rows", 10, "csv lines used to guess column types")
	flags.Int("parallelism", 1, "goroutines used by chunk kernels")
	flags.Int("max_chunk_capacity", 0, "max elements per chunk. 0 means the type limit")
	flags.String("log_level", "info", "log level")
	flags.Int("max_output_rows", 10, "max rows printed")

	viper.BindPFlag("data.path", flags.Lookup("path"))
	viper.BindPFlag("data.format", flags.Lookup("format"))
	viper.BindPFlag("data.separator", flags.Lookup("separator"))
	viper.BindPFlag("data.header", flags.Lookup("header"))
	viper.BindPFlag("data.guessRows", flags.Lookup("guess_rows"))
	viper.BindPFlag("compute.parallelism", flags.Lookup("parallelism"))
	viper.BindPFlag("compute.maxChunkCapacity", flags.Lookup("max_chunk_capacity"))
	viper.BindPFlag("debug.logLevel", flags.Lookup("log_level"))
	viper.BindPFlag("debug.maxOutputRowCount", flags.Lookup("max_output_rows"))
}

// loadConfig reads colstore.toml into the viper defaults. Flags set on the
// command line take precedence over the file.
func loadConfig() {
	cfg, fpath, err := util.LoadConfig(util.DefCfgFilePaths)
	if err != nil {
		util.Error("load config failed",
			zap.String("fpath", fpath),
			zap.Error(err))
		os.Exit(1)
	}
	if len(fpath) != 0 {
		util.Debug("config loaded", zap.String("fpath", fpath))
	}
	viper.SetDefault("data.path", cfg.Data.Path)
	viper.SetDefault("data.format", cfg.Data.Format)
	viper.SetDefault("data.separator", cfg.Data.Separator)
	viper.SetDefault("data.header", cfg.Data.Header)
	viper.SetDefault("data.guessRows", cfg.Data.GuessRows)
	viper.SetDefault("compute.parallelism", cfg.Compute.Parallelism)
	viper.SetDefault("compute.maxChunkCapacity", cfg.Compute.MaxChunkCapacity)
	viper.SetDefault("debug.logLevel", cfg.Debug.LogLevel)
	viper.SetDefault("debug.printLayout", cfg.Debug.PrintLayout)
	viper.SetDefault("debug.maxOutputRowCount", cfg.Debug.MaxOutputRowCount)
}

func initConfig() error {
	runCfg.Data.Path = viper.GetString("data.path")
	runCfg.Data.Format = viper.GetString("data.format")
	runCfg.Data.Separator = viper.GetString("data.separator")
	runCfg.Data.Header = viper.GetBool("data.header")
	runCfg.Data.GuessRows = viper.GetInt("data.guessRows")
	runCfg.Compute.Parallelism = viper.GetInt("compute.parallelism")
	runCfg.Compute.MaxChunkCapacity = viper.GetInt("compute.maxChunkCapacity")
	runCfg.Debug.LogLevel = viper.GetString("debug.logLevel")
	runCfg.Debug.PrintLayout = viper.GetBool("debug.printLayout")
	runCfg.Debug.MaxOutputRowCount = viper.GetInt("debug.maxOutputRowCount")
	return applyConfig(&runCfg)
}

func main() {
	defer util.Sync()
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
