// Command squash compresses and decompresses files using the squash format.
//
// Usage:
//
//	squash enc <input> <output>
//	squash dec <input> <output>
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nwca/squash"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintf(os.Stderr, "usage: %s enc|dec <input> <output>\n", os.Args[0])
		os.Exit(1)
	}
	mode, inPath, outPath := os.Args[1], os.Args[2], os.Args[3]

	in, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	switch mode {
	case "enc":
		err = encode(in, out)
	case "dec":
		err = decode(in, out)
	default:
		fmt.Fprintf(os.Stderr, "usage: %s enc|dec <input> <output>\n", os.Args[0])
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func encode(in *os.File, out *os.File) error {
	zw := squash.NewWriter(out)
	if _, err := io.Copy(zw, in); err != nil {
		return err
	}
	return zw.Close()
}

func decode(in *os.File, out *os.File) error {
	zr := squash.NewReader(in)
	_, err := io.Copy(out, zr)
	return err
}
