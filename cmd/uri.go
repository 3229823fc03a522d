package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"urix/pkg/uri"

	"github.com/spf13/cobra"
)

// printJSON renders v as indented JSON on stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// parseCommand constructs the 'parse' subcommand that parses a single URI
// and prints its components as JSON.
func parseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <uri>",
		Short: "Parses a single URI into its components",
		Long:  uri.ParseUsage(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			normalize, _ := cmd.Flags().GetBool("normalize")
			decompose, _ := cmd.Flags().GetBool("query-pairs")

			parsed, err := uri.Parse(args[0], uri.ParseOptions{
				Normalize:      normalize,
				DecomposeQuery: decompose,
			})
			if err != nil {
				return fmt.Errorf("could not parse %q: %w", args[0], err)
			}

			return printJSON(parsed)
		},
	}

	cmd.Flags().Bool("normalize", false, "Lowercase scheme and host and drop default ports")
	cmd.Flags().Bool("query-pairs", false, "Decode the query string into ordered key/value pairs")

	return cmd
}

// extractCommand constructs the 'extract' subcommand that scans free text
// (from arguments or stdin) for URIs and prints the extraction as JSON.
func extractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [text]",
		Short: "Extracts all URIs from free text",
		Long:  uri.ExtractUsage(),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			normalize, _ := cmd.Flags().GetBool("normalize")
			schemes, _ := cmd.Flags().GetStringSlice("schemes")

			var text string
			if len(args) == 1 {
				text = args[0]
			} else {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("could not read stdin: %w", err)
				}
				text = string(raw)
			}

			return printJSON(uri.Extract(text, uri.ExtractOptions{
				Normalize: normalize,
				Schemes:   schemes,
			}))
		},
	}

	cmd.Flags().Bool("normalize", false, "Normalize the extracted component values")
	cmd.Flags().StringSlice("schemes", nil, "Scheme allow-list (defaults to common web schemes)")

	return cmd
}

// parseDomainCommand constructs the 'parse-domain' subcommand that splits a
// domain name into its labels.
func parseDomainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse-domain <domain>",
		Short: "Splits a domain name into its labels",
		Long:  uri.ParseDomainUsage(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(uri.ParseDomain(args[0]))
		},
	}
}
