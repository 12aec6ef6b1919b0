// Command rpeg compresses PPM images into rpeg codeword streams and back.
//
// Usage:
//
//	rpeg -c [image]   compress a PPM (or PNG/JPEG/GIF) to stdout
//	rpeg -d [stream]  decompress an rpeg stream to a P6 PPM on stdout
//
// With no file argument the input is read from stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cocosip/go-rpeg-codec/pnm"
	"github.com/cocosip/go-rpeg-codec/rpeg"
	"github.com/cocosip/go-rpeg-codec/rpeg/chroma"
	"github.com/cocosip/go-rpeg-codec/rpeg/stream"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("rpeg: ")

	compress := flag.Bool("c", false, "compress the input image")
	decompress := flag.Bool("d", false, "decompress the input stream")
	table := flag.String("chroma", "centered", "chroma table ("+strings.Join(chroma.Names(), "|")+")")
	denominator := flag.Uint("maxval", rpeg.DefaultDenominator, "maximum sample value of decompressed images")
	verbose := flag.Bool("v", false, "log image and stream sizes to stderr")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: rpeg -c|-d [flags] [file]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *compress == *decompress || flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *denominator == 0 || *denominator > 65535 {
		log.Fatalf("maxval must be in 1..65535, got %d", *denominator)
	}

	tbl, err := chroma.Lookup(*table)
	if err != nil {
		log.Fatal(err)
	}
	opts := &rpeg.Options{Table: tbl, Denominator: uint16(*denominator)}

	out := bufio.NewWriter(os.Stdout)
	if *compress {
		err = runCompress(out, flag.Arg(0), opts, *verbose)
	} else {
		err = runDecompress(out, flag.Arg(0), opts, *verbose)
	}
	if err != nil {
		log.Fatal(err)
	}
	if err := out.Flush(); err != nil {
		log.Fatalf("write failed: %v", err)
	}
}

func runCompress(out *bufio.Writer, path string, opts *rpeg.Options, verbose bool) error {
	img, err := pnm.Read(path)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	s, err := rpeg.Encode(img, opts)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}
	if verbose {
		log.Printf("%dx%d image (maxval %d) -> %dx%d, %d codewords",
			img.Width, img.Height, img.Denominator, s.Width, s.Height, len(s.Codewords))
	}
	return stream.Write(out, s)
}

func runDecompress(out *bufio.Writer, path string, opts *rpeg.Options, verbose bool) error {
	s, err := stream.Open(path)
	if err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	img, err := rpeg.Decode(s, opts)
	if err != nil {
		return fmt.Errorf("decompress: %w", err)
	}
	if verbose {
		log.Printf("%d codewords -> %dx%d image (maxval %d)",
			len(s.Codewords), img.Width, img.Height, img.Denominator)
	}
	return pnm.Encode(out, img)
}
