package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/invopop/jsonschema"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/hnscope/pkg/config"
)

type opts struct {
	Args struct {
		Output string `positional-arg-name:"output" description:"schema file to write"`
	} `positional-args:"yes"`
	Debug bool `long:"dbg" env:"DEBUG" description:"debug mode"`
}

func main() {
	var o opts
	if _, err := flags.NewParser(&o, flags.Default).Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if o.Debug {
		lgr.Setup(lgr.Debug, lgr.LevelBraces)
	}

	out := o.Args.Output
	if out == "" {
		out = "schema.json"
	}
	if err := generate(out); err != nil {
		lgr.Fatalf("[ERROR] %v", err)
	}
	lgr.Printf("[INFO] hnscope config schema written to %s", out)
}

// generate reflects config.Config into a json schema file at path
func generate(path string) error {
	r := jsonschema.Reflector{
		// durations are written as "30s" in yaml, not as nanoseconds
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(time.Duration(0)) {
				return &jsonschema.Schema{Type: "string", Pattern: `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`}
			}
			return nil
		},
	}
	schema := r.Reflect(&config.Config{})
	schema.Title = "hnscope configuration"
	schema.Description = "Scraper, capture, cache, stream and LLM settings of hnscope"
	lgr.Printf("[DEBUG] reflected %d definitions", len(schema.Definitions))

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		return fmt.Errorf("write schema to %s: %w", path, err)
	}
	return nil
}
