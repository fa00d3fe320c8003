package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dreamscape/testkit/internal/contract"
	"github.com/dreamscape/testkit/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeCoverageTable writes one row per service with its status and metric percentages.
func writeCoverageTable(w io.Writer, report *schema.CoverageReport, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Service", "Status", "Lines", "Statements", "Functions", "Branches"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, name := range report.ServiceNames() {
		d, ok := report.Details[name]
		if !ok {
			continue
		}
		row := []string{truncateName(name, nameWidth), contract.GetColorLabel(d.Status, cfg.UseColors)}
		for _, key := range schema.AllMetricKeys {
			if !d.HasData() {
				row = append(row, "-")
				continue
			}
			row = append(row, schema.FormatPercent(d.Metric(key).Pct)+"%")
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	s := report.Summary
	_, err := fmt.Fprintf(w, "Covered %s of %s lines across %d services\n",
		schema.FormatThousands(s.ServicesCoveredLines), schema.FormatThousands(s.ServicesTotalLines), s.TotalServices)
	return err
}

// writeTestTable writes one row per service with its suite status and test counts.
func writeTestTable(w io.Writer, report *schema.TestReport, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Service", "Status", "Coverage", "Unit", "Integration", "E2E"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, name := range report.ServiceNames() {
		s, ok := report.Services[name]
		if !ok {
			continue
		}
		data = append(data, []string{
			truncateName(name, nameWidth),
			contract.SuiteEmoji(s.Status) + " " + schema.Humanize(string(s.Status)),
			strconv.Itoa(s.Coverage) + "%",
			strconv.Itoa(s.Tests.Unit),
			strconv.Itoa(s.Tests.Integration),
			strconv.Itoa(s.Tests.E2E),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total tests: %d\n", report.Summary.TotalTests)
	return err
}

// truncateName shortens name to maxWidth runes, marking the cut with "...".
func truncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) <= maxWidth || maxWidth <= 3 {
		return name
	}
	return string(runes[:maxWidth-3]) + "..."
}
