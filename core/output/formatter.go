// Package output renders analysis reports for human and machine consumers.
// This package performs no analysis logic.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"stacksafe/core/engine"
	"stacksafe/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable terminal report
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Render writes the report in the requested format
func Render(w io.Writer, format Format, report *engine.Report) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, report)
	case FormatCLI:
		return renderCLI(w, report)
	default:
		return fmt.Errorf("unknown output format: %q", format)
	}
}

func renderJSON(w io.Writer, report *engine.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func renderCLI(w io.Writer, report *engine.Report) error {
	result := report.Result

	fmt.Fprintf(w, "Overall risk: %s\n", strings.ToUpper(result.OverallRiskLevel.String()))
	fmt.Fprintf(w, "Stack health score: %d/100\n", report.Score)
	fmt.Fprintf(w, "Knowledge base: %s\n\n", report.KBVersion)

	if len(result.Interactions) == 0 {
		fmt.Fprintln(w, "No interactions found.")
	} else {
		fmt.Fprintf(w, "Interactions (%d):\n", len(result.Interactions))
		for _, finding := range result.Interactions {
			fmt.Fprintf(w, "  [%s] %s\n", strings.ToUpper(finding.Rule.Severity.String()), triggerLine(finding.Matched))
			fmt.Fprintf(w, "      %s\n", finding.Rule.Mechanism)
			if finding.Rule.Management != "" {
				fmt.Fprintf(w, "      Management: %s\n", finding.Rule.Management)
			}
		}
	}
	fmt.Fprintln(w)

	if len(result.NutrientWarnings) == 0 {
		fmt.Fprintln(w, "No nutrient limits exceeded.")
	} else {
		fmt.Fprintf(w, "Nutrient warnings (%d):\n", len(result.NutrientWarnings))
		for _, warning := range result.NutrientWarnings {
			fmt.Fprintf(w, "  %s: %s %s of %s %s limit (%s%%)\n",
				warning.Nutrient,
				warning.CurrentTotal, warning.Unit,
				warning.UpperLimit, warning.Unit,
				warning.PercentOfLimit.Round(1))
			fmt.Fprintf(w, "      %s\n", warning.Recommendation)
		}
	}

	// "No interactions found" and "some items could not be analyzed" are
	// different answers; never let the second hide behind the first.
	if report.Incomplete() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Analysis incomplete:")
		for _, item := range report.Unresolved {
			fmt.Fprintf(w, "  unrecognized ingredient: %s (%s)\n", item.RawName, item.Role)
		}
		for _, nutrientErr := range report.NutrientErrors {
			fmt.Fprintf(w, "  %s not aggregated: %s (%s)\n", nutrientErr.Nutrient, nutrientErr.Message, nutrientErr.Item)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "This analysis is informational and is not medical advice.")
	fmt.Fprintln(w, "Consult a pharmacist or physician before changing your stack.")
	return nil
}

func triggerLine(matched []types.StackItem) string {
	names := make([]string, 0, len(matched))
	for _, item := range matched {
		names = append(names, item.RawName)
	}
	return strings.Join(names, " + ")
}
