// Command gqlvalidate reads an SDL schema file and a query document file,
// parses and validates the query against the schema, and reports the result.
package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/spf13/pflag"

	"github.com/nilsbr/gqlcore/executor"
	"github.com/nilsbr/gqlcore/parser"
	"github.com/nilsbr/gqlcore/schema"
	"github.com/nilsbr/gqlcore/validator"
)

func Run(w io.Writer, args ...string) []error {
	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)

	schemaPath := flags.String("schema", "", "the path to the SDL schema file")
	queryPath := flags.StringP("query", "q", "", "the path to the query document file")
	operationName := flags.String("operation", "", "the operation to validate, if the document defines more than one")
	flags.Parse(args)

	if *schemaPath == "" {
		return []error{fmt.Errorf("the --schema flag is required")}
	}
	if *queryPath == "" {
		return []error{fmt.Errorf("the --query flag is required")}
	}

	schemaSrc, err := ioutil.ReadFile(*schemaPath)
	if err != nil {
		return []error{fmt.Errorf("error reading schema: %w", err)}
	}
	s, err := schema.BuildSchema(string(schemaSrc))
	if err != nil {
		return []error{fmt.Errorf("error building schema: %w", err)}
	}

	querySrc, err := ioutil.ReadFile(*queryPath)
	if err != nil {
		return []error{fmt.Errorf("error reading query: %w", err)}
	}

	doc, parseErrs := parser.ParseDocument(querySrc)
	if len(parseErrs) > 0 {
		errs := make([]error, len(parseErrs))
		for i, err := range parseErrs {
			errs[i] = fmt.Errorf("%v:%v: syntax error: %v", err.Line, err.Column, err.Error())
		}
		return errs
	}

	if validationErrs := validator.ValidateDocument(doc, s, nil); len(validationErrs) > 0 {
		errs := make([]error, len(validationErrs))
		for i, err := range validationErrs {
			if len(err.Nodes) > 0 && err.Nodes[0] != nil {
				pos := err.Nodes[0].Position()
				errs[i] = fmt.Errorf("%v:%v: %v", pos.Line, pos.Column, err.Message)
			} else {
				errs[i] = fmt.Errorf("%v", err.Message)
			}
		}
		return errs
	}

	if _, err := executor.GetOperation(doc, *operationName); err != nil {
		return []error{fmt.Errorf("%v", err.Message)}
	}

	fmt.Fprintln(w, "OK")
	return nil
}

func main() {
	if errs := Run(os.Stdout, os.Args[1:]...); len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		os.Exit(1)
	}
}
