// Command castor computes projections from scenario files without a
// database. It prints the projection, or rewrites the file in the current
// format with its calculations attached.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/castor/internal/engine"
	"github.com/MrJamesThe3rd/castor/internal/http/projection"
	"github.com/MrJamesThe3rd/castor/internal/scenario"
)

func main() {
	_ = godotenv.Load()

	var (
		export = flag.Bool("export", false, "write the upgraded scenario file instead of the projection")
		out    = flag.String("o", "", "output file (default stdout)")
	)

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: castor [-export] [-o file] scenario.json\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	data, err := run(flag.Arg(0), *export)
	if err != nil {
		slog.Error("failed to process scenario", "file", flag.Arg(0), "error", err)
		os.Exit(1)
	}

	if *out == "" {
		_, err = os.Stdout.Write(data)
	} else {
		err = os.WriteFile(*out, data, 0o644)
	}

	if err != nil {
		slog.Error("failed to write output", "error", err)
		os.Exit(1)
	}
}

func run(path string, export bool) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := scenario.ReadDocument(f)
	if err != nil {
		return nil, err
	}

	if err := scenario.Validate(doc.Project); err != nil {
		return nil, err
	}

	proj, err := engine.Run(doc.Project)
	if err != nil {
		return nil, err
	}

	if export {
		return scenario.Encode(scenario.Document{
			Project:      doc.Project,
			Calculations: &proj.Results,
			Timeline:     &proj.Timeline,
		})
	}

	return json.MarshalIndent(projection.NewResponse(proj), "", "  ")
}
