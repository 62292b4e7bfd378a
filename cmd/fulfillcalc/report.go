package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"fulfillcalc/internal/pricing"
)

func writeDecision(w io.Writer, d pricing.Decision, chartWidth int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tVOLUME (L)\tSIZE\tPER ITEM\tPER SHIPMENT\tSELF-MANAGED")
	for _, q := range d.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t€%s\t€%s\t€%s\n",
			q.Index, q.Volume.StringFixed(3), q.Size,
			q.Fee.PerItem.StringFixed(2), q.Fee.PerShipment.StringFixed(2), q.SelfManaged.StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Logistics program total: €%s\n", d.LogisticsTotal.StringFixed(2))
	fmt.Fprintf(w, "%s total: €%s\n", capitalize(d.SelfManagedLabel), d.SelfManagedTotal.StringFixed(2))
	fmt.Fprintf(w, "Cheaper option: %s\n\n", d.Cheaper)

	return writeChart(w, []bar{
		{label: pricing.OptionLogistics, amount: d.LogisticsTotal},
		{label: d.SelfManagedLabel, amount: d.SelfManagedTotal},
	}, chartWidth)
}

type bar struct {
	label  string
	amount decimal.Decimal
}

// writeChart draws horizontal bars scaled so the largest fills width.
func writeChart(w io.Writer, bars []bar, width int) error {
	if width < 1 {
		width = 1
	}
	top := decimal.Zero
	labelWidth := 0
	for _, b := range bars {
		top = decimal.Max(top, b.amount)
		labelWidth = max(labelWidth, len(b.label))
	}
	for _, b := range bars {
		n := 0
		if top.IsPositive() {
			n = int(b.amount.Mul(decimal.NewFromInt(int64(width))).Div(top).Round(0).IntPart())
		}
		if _, err := fmt.Fprintf(w, "%-*s |%s €%s\n", labelWidth, b.label, strings.Repeat("#", n), b.amount.StringFixed(2)); err != nil {
			return err
		}
	}
	return nil
}

func writeFeeTable(w io.Writer) error {
	rows, surcharges := pricing.FeeTable()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SIZE\tUP TO (L)\tDESTINATION\tPER ITEM\tPER SHIPMENT")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t€%s\t€%s\n",
			r.Size, r.MaxLiters, r.Destination, r.PerItem.StringFixed(2), r.PerShipment.StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nSurcharges per item: special +€%s, labeling +€%s\n",
		surcharges.Special.StringFixed(2), surcharges.Labeling.StringFixed(2))
	return err
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
