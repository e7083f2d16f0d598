// Command rules-schema prints the JSON Schema of the analytics rule file, or
// with -defaults the built-in rule set as a ready-to-edit JSON document.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/duetdiary/duet-api/internal/rules"
	"github.com/invopop/jsonschema"
)

const schemaID = "https://duetdiary.app/schemas/rules.json"

func main() {
	out := flag.String("o", "", "write to this file instead of stdout")
	defaults := flag.Bool("defaults", false, "print the built-in rule set instead of the schema")
	flag.Parse()

	w := io.Writer(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rules-schema: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	write := writeSchema
	if *defaults {
		write = writeDefaults
	}
	if err := write(w); err != nil {
		fmt.Fprintf(os.Stderr, "rules-schema: %v\n", err)
		os.Exit(1)
	}
}

// ruleSchema reflects rules.Set. Every section is optional because missing
// sections fall back to the defaults.
func ruleSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	schema := r.Reflect(&rules.Set{})
	schema.ID = jsonschema.ID(schemaID)
	schema.Title = "Duet analytics rules"
	schema.Description = "Keyword and regular expression tables for tags, interactions, " +
		"anxiety clues, repair signals, conflict categories and love languages."
	return schema
}

func writeSchema(w io.Writer) error {
	return writeJSON(w, ruleSchema())
}

func writeDefaults(w io.Writer) error {
	return writeJSON(w, rules.Default())
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
