package app

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"

	f "github.com/codeowner-tools/whose/pkg/functional"
)

type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatOneLine OutputFormat = "one-line"
	FormatJSON    OutputFormat = "json"
)

var allowedFormats = []string{string(FormatDefault), string(FormatOneLine), string(FormatJSON)}

// ValidateFormat checks a format flag value.
func ValidateFormat(format string) (OutputFormat, error) {
	if !slices.Contains(allowedFormats, format) {
		return "", fmt.Errorf("invalid format %s. Must be one of %s", format, strings.Join(allowedFormats, ", "))
	}
	return OutputFormat(format), nil
}

// RenderResolutions writes the owners answers in the requested format.
func RenderResolutions(w io.Writer, results []Resolution, format OutputFormat) error {
	switch format {
	case FormatJSON:
		data, err := json.Marshal(results)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatOneLine:
		for _, res := range results {
			if _, err := fmt.Fprintf(w, "%s: %s\n", res.Path, strings.Join(res.Owners, ", ")); err != nil {
				return err
			}
		}
		return nil
	default:
		first := true
		for _, res := range results {
			if !first {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			first = false
			if _, err := fmt.Fprintf(w, "%s:\n", res.Path); err != nil {
				return err
			}
			for _, owner := range res.Owners {
				if _, err := fmt.Fprintf(w, "  %s\n", owner); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

var effectiveColor = color.New(color.FgGreen)

// explainRecord is the TOML shape of one explain-trace match.
type explainRecord struct {
	Line      int      `toml:"line"`
	Rule      string   `toml:"rule"`
	Owners    []string `toml:"owners"`
	Effective bool     `toml:"effective"`
}

// RenderExplanations writes one TOML record per matching rule, with the
// effective rule highlighted.
func RenderExplanations(w io.Writer, explanations []Explanation) error {
	for _, explanation := range explanations {
		for _, match := range explanation.Matches {
			record := explainRecord{
				Line:      match.LineNumber,
				Rule:      match.Source,
				Owners:    match.Owners,
				Effective: match.Effective,
			}
			data, err := toml.Marshal(record)
			if err != nil {
				return err
			}
			block := fmt.Sprintf("[[%q]]\n%s\n", explanation.Path, data)
			if match.Effective {
				if _, err := effectiveColor.Fprint(w, block); err != nil {
					return err
				}
			} else {
				if _, err := fmt.Fprint(w, block); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// RenderUnowned writes a sorted file list.
func RenderUnowned(w io.Writer, unowned []string) error {
	sorted := slices.Clone(unowned)
	slices.Sort(sorted)
	_, err := fmt.Fprintln(w, strings.Join(sorted, "\n"))
	return err
}

// AllOwners returns the unique owners across results, in first-seen order.
func AllOwners(results []Resolution) []string {
	owners := make([]string, 0)
	for _, res := range results {
		owners = append(owners, res.Owners...)
	}
	return f.RemoveDuplicates(owners)
}
