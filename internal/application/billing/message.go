package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/cohaus/backend/internal/domain/billing"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// amountPrinter formats whole currency amounts with thousand separators
var amountPrinter = message.NewPrinter(language.English)

// RenderInvoiceMessage builds the notification text for one unit's invoice.
// Rendering is the engine's responsibility; the transport behind
// NotificationSender only delivers the finished text.
func RenderInvoiceMessage(
	building *billing.Building,
	cycle *billing.BillingCycle,
	unit *billing.Unit,
	charge *billing.UnitCharge,
	dueDate time.Time,
) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s invoice for %s\n", building.Name, cycle.PeriodLabel(), unit.DisplayName)
	for _, line := range charge.Breakdown {
		fmt.Fprintf(&b, "- %s: %s\n", line.ItemName, amountPrinter.Sprintf("%d", line.Amount))
	}
	fmt.Fprintf(&b, "Total: %s\n", amountPrinter.Sprintf("%d", charge.AmountTotal))
	fmt.Fprintf(&b, "Due by %s", dueDate.Format("2006-01-02"))
	if charge.LateFeeAmount > 0 {
		fmt.Fprintf(&b, " (after due: %s)", amountPrinter.Sprintf("%d", charge.AmountAfterDue))
	}
	b.WriteString("\n")

	if building.BankAccount != "" {
		fmt.Fprintf(&b, "Transfer to %s %s", building.BankName, building.BankAccount)
		if building.AccountHolder != "" {
			fmt.Fprintf(&b, " (%s)", building.AccountHolder)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
