// Command deflatekit decompresses a single zlib-wrapped DEFLATE file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-forensics/deflate/capnslog"
	"github.com/go-forensics/deflate/digest"
	"github.com/go-forensics/deflate/flate"
	"github.com/go-forensics/deflate/progressutil"
)

var plog = capnslog.NewPackageLogger("github.com/go-forensics/deflate", "deflatekit")

func main() {
	inputFile := flag.String("i", "", "input file (zlib-wrapped DEFLATE)")
	outputFile := flag.String("o", "", "output file (defaults to stdout)")
	capacity := flag.Int("cap", 64<<20, "maximum decompressed size to allocate")
	strictTrailer := flag.Bool("strict-trailer", false, "fail if the Adler-32 trailer is short or absent")
	skipHeaderCheck := flag.Bool("skip-header-check", false, "skip the zlib header's multiple-of-31 check")
	trace := flag.Bool("trace", false, "log each block-decode stage transition")
	printDigest := flag.Bool("digest", false, "print a BLAKE2b-256 digest of the decompressed output to stderr")
	flag.Parse()

	if *inputFile == "" {
		flag.PrintDefaults()
		os.Exit(2)
	}

	if *trace {
		capnslog.SetFormatter(capnslog.NewStringFormatter(os.Stderr))
		capnslog.MustRepoLogger("github.com/go-forensics/deflate").SetRepoLogLevel(capnslog.TRACE)
	}

	in, err := os.Open(*inputFile)
	if err != nil {
		plog.Fatalf("open %s: %v", *inputFile, err)
	}
	defer in.Close()

	stat, err := in.Stat()
	if err != nil {
		plog.Fatalf("stat %s: %v", *inputFile, err)
	}

	reader := &progressutil.CountingReader{R: in, OnRead: func(total int64) {
		plog.Tracef("deflatekit: read %s of %s", progressutil.ByteUnitStr(total), progressutil.ByteUnitStr(stat.Size()))
	}}
	compressed := make([]byte, stat.Size())
	if _, err := io.ReadFull(reader, compressed); err != nil {
		plog.Fatalf("read %s: %v", *inputFile, err)
	}

	output := make([]byte, *capacity)
	n, err := flate.Decode(compressed, output, &flate.Options{
		Trace:           plog,
		StrictTrailer:   *strictTrailer,
		SkipHeaderCheck: *skipHeaderCheck,
	})
	if err != nil {
		plog.Fatalf("decode %s: %v", *inputFile, err)
	}
	result := output[:n]

	if *printDigest {
		fmt.Fprintf(os.Stderr, "blake2b-256: %s\n", digest.Sum256(result))
	}

	if *outputFile == "" {
		if _, err := os.Stdout.Write(result); err != nil {
			plog.Fatalf("write stdout: %v", err)
		}
		return
	}
	if err := os.WriteFile(*outputFile, result, 0o644); err != nil {
		plog.Fatalf("write %s: %v", *outputFile, err)
	}
}

