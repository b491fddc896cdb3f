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

package util

import (
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

type DataOptions struct {
	Path string `toml:"path"`
	// Format is csv or parquet. Empty means guessed from the path extension.
	Format    string `toml:"format"`
	Separator string `toml:"separator"`
	Header    bool   `toml:"header"`
	GuessRows int    `toml:"guessRows"`
}

type ComputeOptions struct {
	Parallelism      int `toml:"parallelism"`
	MaxChunkCapacity int `toml:"maxChunkCapacity"`
}

type DebugOptions struct {
	LogLevel          string `toml:"logLevel"`
	PrintLayout       bool   `toml:"printLayout"`
	MaxOutputRowCount int    `toml:"maxOutputRowCount"`
}

type Config struct {
	Data    DataOptions    `toml:"data"`
	Compute ComputeOptions `toml:"compute"`
	Debug   DebugOptions   `toml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Data: DataOptions{
			Separator: ",",
			Header:    true,
			GuessRows: 10,
		},
		Compute: ComputeOptions{
			Parallelism: 1,
		},
		Debug: DebugOptions{
			LogLevel:          "info",
			MaxOutputRowCount: 10,
		},
	}
}

var DefCfgFilePaths = []string{".", "etc"}

const CfgFileName = "colstore.toml"

// LoadConfig decodes the first valid config file found in dirs on top of
// the defaults. Missing files are not an error.
func LoadConfig(dirs []string) (Config, string, error) {
	cfg := DefaultConfig()
	for _, dirPath := range dirs {
		fpath := filepath.Join(dirPath, CfgFileName)
		if !FileIsValid(fpath) {
			continue
		}
		_, err := toml.DecodeFile(fpath, &cfg)
		if err != nil {
			Error("load config file failed",
				zap.String("fpath", fpath),
				zap.Error(err))
			return DefaultConfig(), fpath, err
		}
		return cfg, fpath, nil
	}
	return cfg, "", nil
}
