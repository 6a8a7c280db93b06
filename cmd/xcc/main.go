// This file is part of xcc - https://github.com/db47h/xcc
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hashicorp/logutils"

	"github.com/db47h/xcc/diag"
	"github.com/db47h/xcc/lang/xcc"
	"github.com/db47h/xcc/lexer"
)

func main() {
	os.Exit(run())
}

func run() int {
	verbose := flag.Bool("v", false, "dump the AST to stderr after each pipeline stage")
	debug := flag.Bool("debug", false, "raise internal pipeline log verbosity to DEBUG")
	outFileName := flag.String("o", "", "output `filename` for the generated assembly")
	flag.Parse()

	if *outFileName == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: xcc [-v] [-debug] -o OUTPUT INPUT")
		return 1
	}
	inFileName := flag.Arg(0)

	diag.Colorize = isTerminal(os.Stderr)

	minLevel := logutils.LogLevel("INFO")
	if *debug {
		minLevel = "DEBUG"
	}
	logger := log.New(&logutils.LevelFilter{
		Levels:   []logutils.LogLevel{"DEBUG", "INFO", "WARN"},
		MinLevel: minLevel,
		Writer:   os.Stderr,
	}, "xcc: ", log.LstdFlags)

	src, err := lexer.ReadSourceFile(inFileName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	out, err := os.Create(*outFileName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer out.Close()

	cc := &xcc.Context{Output: out, Logger: logger}
	if *verbose {
		cc.Verbose = os.Stderr
	}

	if err := xcc.Compile(context.Background(), cc, inFileName, src); err != nil {
		return report(err)
	}
	return 0
}

// report renders a pipeline error to stderr and returns the process exit
// status it warrants: 2 for an internal assertion failure, 1 for an
// ordinary program or usage error.
func report(err error) int {
	d, ok := err.(*diag.Error)
	if !ok {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	diag.Render(os.Stderr, d)
	if d.Stage == "Internal" {
		return 2
	}
	return 1
}
