package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/yatishb23/expense-tracker-frontend/internal/entity/expense"
	"github.com/yatishb23/expense-tracker-frontend/internal/model/ledger"
)

const (
	tableDateLayout = "2006-01-02"
	maxBarWidth     = 40
)

func renderTable(out io.Writer, records []expense.Record, symbol string) {
	if len(records) == 0 {
		fmt.Fprintln(out, "You have no expenses yet.")
		return
	}

	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DESCRIPTION\tDATE\tAMOUNT\tID")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s%s\t%s\n",
			rec.Description,
			rec.OccurredOn.Format(tableDateLayout),
			symbol, rec.Amount.StringFixed(2),
			rec.ID,
		)
	}
	_ = w.Flush()
}

func renderChart(out io.Writer, buckets []ledger.Bucket) {
	if len(buckets) == 0 {
		fmt.Fprintln(out, "Nothing to chart yet.")
		return
	}

	max := decimal.Zero
	for _, b := range buckets {
		if b.Total.GreaterThan(max) {
			max = b.Total
		}
	}

	for _, b := range buckets {
		fmt.Fprintf(out, "%-10s %s %s\n", b.Month, bar(b.Total, max), b.Total.StringFixed(2))
	}
}

func bar(total, max decimal.Decimal) string {
	if !max.IsPositive() {
		return ""
	}
	width := int(total.Div(max).Mul(decimal.NewFromInt(maxBarWidth)).IntPart())
	if width < 1 && total.IsPositive() {
		width = 1
	}
	return strings.Repeat("#", width)
}
