// Command build-scan-cli is the external file-in/file-out wrapper around
// the buildscan decoder (spec.md §6, "CLI surface"). It is a thin adapter:
// read a capture envelope, pull out its base64 body, decode it, write the
// resulting report as pretty-printed JSON.
//
// Grounded on
// _examples/original_source/build-scan/cli/src/main.rs's run_parse, with
// clap/anyhow/serde_json replaced by stdlib flag/fmt/encoding-json per
// SPEC_FULL.md §2.4 (no CLI framework appears anywhere in the example
// corpus).
package main

import (
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/arloliu/buildscan-decoder/buildscan"
)

func main() {
	input := flag.String("input", "", "path to the input capture-envelope JSON file")
	output := flag.String("output", "", "path to write the parsed build scan JSON report")
	flag.Parse()

	if *input == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "build-scan-cli: -input and -output are required")
		os.Exit(1)
	}

	if err := run(*input, *output); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// envelope is the subset of the capture proxy's request envelope this CLI
// needs: a request body that, for a build-scan capture, is a JSON object
// carrying the raw payload under a "base64" key.
type envelope struct {
	Request struct {
		Body json.RawMessage `json:"body"`
	} `json:"request"`
}

// run reads input, decodes the build scan payload it carries, and writes
// the assembled report to output. On any error, output is left untouched —
// the write only happens after a full, successful decode.
func run(inputPath, outputPath string) error {
	contents, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(contents, &env); err != nil {
		return fmt.Errorf("read input: invalid capture envelope JSON: %w", err)
	}

	var body map[string]any
	if err := json.Unmarshal(env.Request.Body, &body); err != nil {
		return fmt.Errorf("base64 decode: request.body is not a JSON object containing a \"base64\" field: %w", err)
	}
	b64, ok := body["base64"].(string)
	if !ok {
		return fmt.Errorf("base64 decode: request.body does not contain a \"base64\" string field")
	}

	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return fmt.Errorf("base64 decode: %w", err)
	}

	report, err := buildscan.Decode(raw)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("write output: encode report: %w", err)
	}

	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Printf("Parsed build scan written to %s\n", outputPath)
	return nil
}
