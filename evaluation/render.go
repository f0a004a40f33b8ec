package evaluation

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

/*
Render writes the matrix to w as a table with a row per actual label
and a column per predicted label, followed by the row sums.
*/
func (cm *ConfusionMatrix) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	header := table.Row{"actual \\ predicted"}
	for _, l := range cm.labels.Labels() {
		header = append(header, l)
	}
	t.AppendHeader(append(header, "total"))
	for i, l := range cm.labels.Labels() {
		row := table.Row{l}
		for _, n := range cm.cells[i] {
			row = append(row, n)
		}
		t.AppendRow(append(row, cm.rowSum(i)))
	}
	footer := table.Row{"total"}
	for j := range cm.cells {
		footer = append(footer, cm.columnSum(j))
	}
	t.AppendFooter(append(footer, cm.total))
	t.Render()
}

/*
RenderReport writes to w a table with the true rate, precision and
prevalence of every label, followed by the accuracy. Undefined rates
are shown as n/a.
*/
func (cm *ConfusionMatrix) RenderReport(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"label", "samples", "true rate", "precision", "prevalence"})
	for i, l := range cm.labels.Labels() {
		tr, trErr := cm.TrueRate(l)
		p, pErr := cm.Precision(l)
		pv, pvErr := cm.Prevalence(l)
		t.AppendRow(table.Row{l, cm.rowSum(i), rate(tr, trErr), rate(p, pErr), rate(pv, pvErr)})
	}
	a, err := cm.Accuracy()
	t.AppendFooter(table.Row{"accuracy", cm.total, rate(a, err), "", ""})
	t.Render()
}

func rate(r float64, err error) string {
	if err != nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", r)
}
