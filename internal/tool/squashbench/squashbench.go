// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package squashbench compares the squash codec's encode speed, decode
// speed, and compression ratio against a handful of reference compressors.
package squashbench

import (
	"bytes"
	"io"
	"io/ioutil"
	"runtime"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/ulikunitz/xz"

	"github.com/nwca/squash"
)

const (
	TestEncodeRate = iota
	TestDecodeRate
	TestCompressRatio
)

type Encoder func(io.Writer) io.WriteCloser
type Decoder func(io.Reader) io.ReadCloser

// Codecs is the registry of reference compressors squashbench compares
// against, keyed by name. "squash" is always present; the rest are whatever
// the corpus's own go.mod already pulled in as comparison points.
var Codecs = map[string]struct {
	Enc Encoder
	Dec Decoder
}{
	"squash": {
		Enc: func(w io.Writer) io.WriteCloser { return squash.NewWriter(w) },
		Dec: func(r io.Reader) io.ReadCloser { return ioutil.NopCloser(squash.NewReader(r)) },
	},
	"flate": {
		Enc: func(w io.Writer) io.WriteCloser {
			zw, err := flate.NewWriter(w, flate.DefaultCompression)
			if err != nil {
				panic(err)
			}
			return zw
		},
		Dec: func(r io.Reader) io.ReadCloser { return flate.NewReader(r) },
	},
	"xz": {
		Enc: func(w io.Writer) io.WriteCloser {
			zw, err := xz.NewWriter(w)
			if err != nil {
				panic(err)
			}
			return zw
		},
		Dec: func(r io.Reader) io.ReadCloser {
			zr, err := xz.NewReader(r)
			if err != nil {
				panic(err)
			}
			return ioutil.NopCloser(zr)
		},
	},
}

// Result mirrors a single benchmark cell: a raw rate (MB/s) or ratio
// (rawSize/compSize), and D, its delta relative to the suite's first codec.
type Result struct {
	R float64
	D float64
}

// BenchmarkEncodeRate reports the encoding throughput, in MB/s, of the named
// codec over input.
func BenchmarkEncodeRate(name string, input []byte) Result {
	enc := Codecs[name].Enc
	if enc == nil {
		return Result{}
	}
	res := testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			zw := enc(ioutil.Discard)
			if _, err := io.Copy(zw, bytes.NewReader(input)); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err := zw.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(input)))
		}
	})
	if res.N == 0 {
		return Result{}
	}
	us := (float64(res.T.Nanoseconds()) / 1e3) / float64(res.N)
	return Result{R: float64(res.Bytes) / us}
}

// BenchmarkDecodeRate reports the decoding throughput, in MB/s, of the named
// codec over input, which is first compressed with the codec's own encoder
// so every trial decodes a payload of consistent provenance.
func BenchmarkDecodeRate(name string, input []byte) Result {
	c, ok := Codecs[name]
	if !ok || c.Enc == nil || c.Dec == nil {
		return Result{}
	}
	var buf bytes.Buffer
	zw := c.Enc(&buf)
	if _, err := io.Copy(zw, bytes.NewReader(input)); err != nil {
		return Result{}
	}
	if zw.Close() != nil {
		return Result{}
	}
	compressed := buf.Bytes()

	res := testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			zr := c.Dec(bytes.NewReader(compressed))
			n, err := io.Copy(ioutil.Discard, zr)
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err := zr.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(n)
		}
	})
	if res.N == 0 {
		return Result{}
	}
	us := (float64(res.T.Nanoseconds()) / 1e3) / float64(res.N)
	return Result{R: float64(res.Bytes) / us}
}

// BenchmarkRatio reports the compression ratio (raw/compressed) of the named
// codec over input.
func BenchmarkRatio(name string, input []byte) Result {
	c, ok := Codecs[name]
	if !ok || c.Enc == nil {
		return Result{}
	}
	var buf bytes.Buffer
	zw := c.Enc(&buf)
	if _, err := io.Copy(zw, bytes.NewReader(input)); err != nil {
		return Result{}
	}
	if zw.Close() != nil {
		return Result{}
	}
	if buf.Len() == 0 {
		return Result{}
	}
	return Result{R: float64(len(input)) / float64(buf.Len())}
}

// Suite runs test (one of the Test* constants) for every named codec over
// input, and fills in each Result's delta relative to the first codec.
func Suite(test int, codecs []string, input []byte) []Result {
	results := make([]Result, len(codecs))
	for i, name := range codecs {
		switch test {
		case TestEncodeRate:
			results[i] = BenchmarkEncodeRate(name, input)
		case TestDecodeRate:
			results[i] = BenchmarkDecodeRate(name, input)
		case TestCompressRatio:
			results[i] = BenchmarkRatio(name, input)
		}
	}
	if len(results) > 0 && results[0].R != 0 {
		for i := range results {
			results[i].D = results[i].R / results[0].R
		}
	}
	return results
}

// ExpandFile stretches input to length n by repeating it, xor-ing each
// successive pass with an incrementing mask so the repeated copies don't
// compress away to nothing.
func ExpandFile(input []byte, n int) []byte {
	if n < 0 || len(input) == 0 {
		return input
	}
	if len(input) >= n {
		return input[:n]
	}
	var mask byte
	output := make([]byte, n)
	for i := range output {
		idx := i % len(input)
		output[i] = input[idx] ^ mask
		if idx == len(input)-1 {
			mask++
		}
	}
	return output
}
