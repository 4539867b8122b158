// Command schema writes the JSON schema of newscrawl configuration file.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/umputun/newscrawl/pkg/config"
)

var opts struct {
	Output string `short:"o" long:"output" default:"pkg/config/schema.json" description:"schema file, - for stdout"`
}

func main() {
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	if opts.Output == "-" {
		if err := writeSchema(os.Stdout); err != nil {
			log.Fatalf("failed to write schema: %v", err)
		}
		return
	}

	fh, err := os.Create(opts.Output) //nolint:gosec // path comes from the command line
	if err != nil {
		log.Fatalf("failed to create %s: %v", opts.Output, err)
	}
	if err := writeSchema(fh); err != nil {
		_ = fh.Close()
		log.Fatalf("failed to write schema to %s: %v", opts.Output, err)
	}
	if err := fh.Close(); err != nil {
		log.Fatalf("failed to close %s: %v", opts.Output, err)
	}
	fmt.Printf("schema written to %s\n", opts.Output)
}

func writeSchema(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(config.GenerateSchema()); err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	return nil
}
