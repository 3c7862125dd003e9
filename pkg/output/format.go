// Package output provides utilities for formatting and displaying valuation
// reports.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iwvelando/valuation-kernel/internal/valuation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(report valuation.Report) {
	PrettyTo(os.Stdout, report)
}

// PrettyTo writes the human-readable table to w.
func PrettyTo(w io.Writer, report valuation.Report) {
	p := message.NewPrinter(language.English)

	if len(report.Scenarios) > 0 {
		fmt.Fprintf(w, "--- Scenario valuations ---\n")
		fmt.Fprintf(w, "Scenario | Probability | PV Explicit   | PV Terminal   | Value         | IRR\n")
		fmt.Fprintf(w, "________ | ___________ | _____________ | _____________ | _____________ | ___\n")
		for _, sc := range report.Scenarios {
			_, _ = p.Fprintf(w, "%s | %.4f | $%.2f | $%.2f | $%.2f | %s\n",
				sc.Name, sc.Probability, sc.PVExplicit, sc.PVTerminal, sc.Value, formatIRR(sc))
		}
		_, _ = p.Fprintf(w, "Probability-weighted expected value: $%.2f\n", report.ExpectedValue)
	}

	if len(report.Bonds) > 0 {
		fmt.Fprintf(w, "--- Bond pricing ---\n")
		fmt.Fprintf(w, "Bond | Price         | Macaulay (yrs) | Modified (yrs)\n")
		fmt.Fprintf(w, "____ | _____________ | ______________ | ______________\n")
		for _, b := range report.Bonds {
			_, _ = p.Fprintf(w, "%s | $%.2f | %.4f | %.4f\n",
				b.Name, b.Price, b.MacaulayDuration, b.ModifiedDuration)
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(report valuation.Report) {
	CsvTo(os.Stdout, report)
}

// CsvTo writes the comma-separated form to w.
func CsvTo(w io.Writer, report valuation.Report) {
	if len(report.Scenarios) > 0 {
		fmt.Fprintf(w, `"scenario","probability","pv explicit","pv terminal","value","irr","irr phase"`)
		fmt.Fprintf(w, "\n")
		for _, sc := range report.Scenarios {
			fmt.Fprintf(w, `"%s","%.6f","%.2f","%.2f","%.2f","%s","%s"`,
				sc.Name, sc.Probability, sc.PVExplicit, sc.PVTerminal, sc.Value, formatIRR(sc), sc.IRRPhase)
			fmt.Fprintf(w, "\n")
		}
		fmt.Fprintf(w, `"expected value","","","","%.2f","",""`, report.ExpectedValue)
		fmt.Fprintf(w, "\n")
	}

	if len(report.Bonds) > 0 {
		fmt.Fprintf(w, `"bond","price","macaulay duration","modified duration"`)
		fmt.Fprintf(w, "\n")
		for _, b := range report.Bonds {
			fmt.Fprintf(w, `"%s","%.4f","%.6f","%.6f"`, b.Name, b.Price, b.MacaulayDuration, b.ModifiedDuration)
			fmt.Fprintf(w, "\n")
		}
	}
}

// CsvString renders the comma-separated form as a string, for embedding in
// API responses.
func CsvString(report valuation.Report) string {
	var sb strings.Builder
	CsvTo(&sb, report)
	return sb.String()
}

func formatIRR(sc valuation.ScenarioReport) string {
	if sc.IRR == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.6f", *sc.IRR)
}
