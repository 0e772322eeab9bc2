package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Chanakan5591/carbonyx/internal/application/usecase/emission"
)

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle(title)
	return tbl
}

// renderRollup prints the headline figures followed by the yearly gross/net series.
func renderRollup(result *emission.RollupResult) string {
	m, y := result.Monthly, result.Yearly

	summary := newTable("Summary (tCO2e)")
	summary.AppendHeader(table.Row{"Figure", "Latest", "Previous"})
	summary.AppendRows([]table.Row{
		{"Monthly gross", m.LatestGrossEmissionsTonnes.String(), m.PreviousGrossEmissionsTonnes.String()},
		{"Monthly net", m.LatestNetEmissionsTonnes.String(), m.PreviousNetEmissionsTonnes.String()},
		{"Yearly gross", y.LatestGrossEmissionsTonnes.String(), y.PreviousGrossEmissionsTonnes.String()},
		{"Yearly net", y.LatestNetEmissionsTonnes.String(), y.PreviousNetEmissionsTonnes.String()},
		{"Offsets", y.LatestOffsetTonnes.String(), y.PreviousOffsetTonnes.String()},
	})

	yearly := newTable("Yearly emissions (kgCO2e)")
	yearly.AppendHeader(table.Row{"Year", "Gross", "Net"})
	for i, gross := range y.GrossEmissions {
		yearly.AppendRow(table.Row{gross.Period, gross.Emissions.StringFixed(2), y.NetEmissions[i].Emissions.StringFixed(2)})
	}
	yearly.AppendFooter(table.Row{"", fmt.Sprintf("%d categories", len(y.Series)), ""})

	return strings.Join([]string{summary.Render(), yearly.Render()}, "\n\n")
}

// renderFactors prints the factor catalogue as a table.
func renderFactors(outputs []emission.FactorOutput) string {
	tbl := newTable("Emission factors")
	tbl.AppendHeader(table.Row{"ID", "Name", "Category", "Unit", "kgCO2e per unit"})
	for _, output := range outputs {
		f := output.Factor
		tbl.AppendRow(table.Row{f.ID, f.Name, output.CategoryLabel, f.Unit, f.FactorValue.String()})
	}
	tbl.AppendFooter(table.Row{"", fmt.Sprintf("Total: %d factors", len(outputs))})
	return tbl.Render()
}
