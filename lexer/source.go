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

package lexer

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/cznic/mathutil"
	"github.com/pkg/errors"
)

// ReadSource slurps r into a single byte buffer, rejecting embedded null
// bytes. It is the "source reader" component of the pipeline: a UTF-agnostic
// byte stream in, a single buffer out, with no notion of encoding.
func ReadSource(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(bufio.NewReader(r)); err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	b := buf.Bytes()
	if len(b) > mathutil.MaxInt-1 {
		return nil, errors.New("source file too large")
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return nil, errors.Errorf("null byte in source at offset %d", i)
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// ReadSourceFile opens fileName and reads it with ReadSource.
func ReadSourceFile(fileName string) ([]byte, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	return ReadSource(f)
}
