package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/mmynk/billpay/internal/admin"
	"github.com/mmynk/billpay/internal/billing"
	"github.com/mmynk/billpay/internal/models"
)

func renderDashboard(w io.Writer, v billing.ViewState) {
	fmt.Fprintf(w, "Welcome, %s\n\n", v.User.DisplayName())
	if v.Feedback != nil {
		fmt.Fprintf(w, "%s\n\n", v.Feedback.Text)
	}

	if len(v.Bills) == 0 {
		fmt.Fprintln(w, "No bills.")
	} else {
		now := time.Now()
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tUTILITY\tPROVIDER\tAMOUNT\tSTATUS\tDUE")
		for _, b := range v.Bills {
			due := "-"
			if b.IsPending() {
				due = billing.DueLabelFor(b, now).Text
			}
			fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\t%s\n",
				b.ID, b.Utility.Icon, b.Utility.Name, orDash(b.Provider), b.Amount.StringFixed(2), b.Status, due)
		}
		tw.Flush()
	}

	sum := v.Summary()
	fmt.Fprintf(w, "\nTotal due: %s (%d pending)\n", v.TotalDue.StringFixed(2), len(sum.Pending))

	if len(v.Reminders) > 0 {
		fmt.Fprintln(w, "\nReminders:")
		for _, r := range v.Reminders {
			fmt.Fprintf(w, "  %s  %s\n", r.Date, r.Message)
		}
	}
}

func renderConfirmation(w io.Writer, c models.Confirmation) {
	fmt.Fprintln(w, "Payment successful!")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PAYMENT\tBILL\tAMOUNT\tMETHOD\tSTATUS")
	for _, r := range c.Receipts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", orDash(r.PaymentID), r.BillID, r.Amount.StringFixed(2), orDash(r.Method), r.Status)
	}
	tw.Flush()
	fmt.Fprintf(w, "\nTotal paid: %s\n", c.TotalPaid.StringFixed(2))
}

func renderTables(w io.Writer, tables []admin.Table) {
	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s (%d) ==\n", t.Name, len(t.Rows))
		if len(t.Rows) == 0 {
			continue
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for j, col := range t.Columns {
			if j > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, admin.Header(col))
		}
		fmt.Fprintln(tw)
		for _, row := range t.Rows {
			for j, col := range t.Columns {
				if j > 0 {
					fmt.Fprint(tw, "\t")
				}
				fmt.Fprint(tw, admin.Cell(row, col))
			}
			fmt.Fprintln(tw)
		}
		tw.Flush()
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
