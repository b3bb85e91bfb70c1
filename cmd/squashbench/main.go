// Command squashbench compares the squash codec against a handful of
// reference compressors for encode speed, decode speed, and ratio.
//
// Example usage:
//
//	squashbench -codecs squash,flate,xz -tests ratio,encRate,decRate -size 1e6
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dsnet/golib/strconv"
	"github.com/klauspost/cpuid"

	"github.com/nwca/squash/internal/tool/squashbench"
)

var testToEnum = map[string]int{
	"encRate": squashbench.TestEncodeRate,
	"decRate": squashbench.TestDecodeRate,
	"ratio":   squashbench.TestCompressRatio,
}

func defaultCodecs() string {
	var names []string
	for k := range squashbench.Codecs {
		names = append(names, k)
	}
	sort.Strings(names)
	// Keep "squash" first: it is the reference column every delta is
	// measured against.
	for i, n := range names {
		if n == "squash" {
			names = append(names[:i], names[i+1:]...)
			names = append([]string{"squash"}, names...)
			break
		}
	}
	return strings.Join(names, ",")
}

func main() {
	fCodecs := flag.String("codecs", defaultCodecs(), "comma-separated list of codecs to benchmark")
	fTests := flag.String("tests", "ratio,encRate,decRate", "comma-separated list of tests to run")
	fFile := flag.String("file", "", "input file to benchmark (random data if unset)")
	fSize := flag.String("size", "1e6", "size of input to benchmark, e.g. 1e6 or 1MiB")
	flag.Parse()

	size, err := parseSize(*fSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad -size: %v\n", err)
		os.Exit(1)
	}
	input, err := loadInput(*fFile, size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("CPU: %s (%d physical cores, %d logical cores)\n\n",
		cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores)

	codecs := strings.Split(*fCodecs, ",")
	ts := time.Now()
	for _, tname := range strings.Split(*fTests, ",") {
		test, ok := testToEnum[tname]
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown test: %s\n", tname)
			continue
		}
		fmt.Printf("BENCHMARK: %s (%d bytes)\n", tname, len(input))
		results := squashbench.Suite(test, codecs, input)
		printResults(codecs, results, unitFor(test))
		fmt.Println()
	}
	fmt.Printf("RUNTIME: %v\n", time.Since(ts))
}

func unitFor(test int) string {
	if test == squashbench.TestCompressRatio {
		return "x"
	}
	return "MB/s"
}

func parseSize(s string) (int, error) {
	f, err := strconv.ParsePrefix(s, strconv.AutoParse)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func loadInput(path string, size int) ([]byte, error) {
	if path == "" {
		x := uint32(2463534242)
		out := make([]byte, size)
		for i := range out {
			x ^= x << 13
			x ^= x >> 17
			x ^= x << 5
			out[i] = byte(x)
		}
		return out, nil
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return squashbench.ExpandFile(raw, size), nil
}

func printResults(codecs []string, results []squashbench.Result, unit string) {
	for i, c := range codecs {
		r := results[i]
		switch {
		case r.R == 0 || math.IsNaN(r.R) || math.IsInf(r.R, 0):
			fmt.Printf("\t%-8s   (no result)\n", c)
		case i == 0:
			fmt.Printf("\t%-8s %8.2f %s\n", c, r.R, unit)
		default:
			fmt.Printf("\t%-8s %8.2f %s  %5.2fx\n", c, r.R, unit, r.D)
		}
	}
}
