// Copyright (C) 2024 bullno1
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// bsdump renders bserial streams as indented text.
//
// Usage:
//
//	bsdump [-limits limits.toml] [-out file] [-verbose] <stream>...
//
// Files ending in .zst are decompressed transparently.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/bullno1/libs/core/data/bserial"
	"github.com/bullno1/libs/core/data/streams"
)

var (
	limitsPath = flag.String("limits", "", "a TOML file overriding the decode limits")
	out        = flag.String("out", "", "write the dump to this file instead of stdout")
	verbose    = flag.Bool("verbose", false, "log diagnostics while dumping")
)

// limits mirrors bserial.Config for the TOML override file:
//
//	max-symbol-len = 64
//	max-num-symbols = 256
//	max-record-fields = 32
//	max-depth = 16
type limits struct {
	MaxSymbolLen    uint32 `toml:"max-symbol-len"`
	MaxNumSymbols   uint32 `toml:"max-num-symbols"`
	MaxRecordFields uint32 `toml:"max-record-fields"`
	MaxDepth        uint32 `toml:"max-depth"`
}

var defaultLimits = limits{
	MaxSymbolLen:    64,
	MaxNumSymbols:   256,
	MaxRecordFields: 32,
	MaxDepth:        16,
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "bsdump:", err)
		os.Exit(1)
	}
}

func run() error {
	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("expected at least one input stream")
	}

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer l.Sync()
		logger = l
	}

	lim := defaultLimits
	if *limitsPath != "" {
		if _, err := toml.DecodeFile(*limitsPath, &lim); err != nil {
			return fmt.Errorf("load limits: %w", err)
		}
		logger.Info("loaded limits", zap.String("path", *limitsPath))
	}
	cfg := bserial.Config{
		MaxSymbolLen:    lim.MaxSymbolLen,
		MaxNumSymbols:   lim.MaxNumSymbols,
		MaxRecordFields: lim.MaxRecordFields,
		MaxDepth:        lim.MaxDepth,
	}
	logger.Info("decode limits",
		zap.Uint32("max-symbol-len", cfg.MaxSymbolLen),
		zap.Uint32("max-num-symbols", cfg.MaxNumSymbols),
		zap.Uint32("max-record-fields", cfg.MaxRecordFields),
		zap.Uint32("max-depth", cfg.MaxDepth),
		zap.Int("mem-size", cfg.MemSize()))

	output := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		output = f
	}
	w := bufio.NewWriter(output)

	for _, path := range args {
		logger.Info("dumping", zap.String("path", path))
		if err := dumpFile(cfg, path, w); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return w.Flush()
}

func dumpFile(cfg bserial.Config, path string, w *bufio.Writer) error {
	in, err := streams.OpenFile(path)
	if err != nil {
		return err
	}
	defer in.Close()
	return bserial.Dump(cfg, bufio.NewReader(in), w)
}
