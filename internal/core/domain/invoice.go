package domain

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoicePending  InvoiceStatus = "pending"
	InvoicePaid     InvoiceStatus = "paid"
	InvoiceOverdue  InvoiceStatus = "overdue"
	InvoiceCanceled InvoiceStatus = "canceled"
)

// invoiceTransitions defines the allowed state machine transitions. The
// pending→overdue edge is time-driven and applied at read time, never
// written by a background process. paid and canceled are terminal.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoicePending: {InvoicePaid, InvoiceOverdue, InvoiceCanceled},
	InvoiceOverdue: {InvoiceCanceled},
}

// ValidInvoiceStatus reports whether s names a known invoice status.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoicePending, InvoicePaid, InvoiceOverdue, InvoiceCanceled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	for _, allowed := range invoiceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Invoice is a billing record against an order. OrderID is a weak reference.
type Invoice struct {
	ID            int           `json:"id"`
	OrderID       int           `json:"orderId"`
	InvoiceNumber string        `json:"invoiceNumber"`
	Amount        float64       `json:"amount"`
	Status        InvoiceStatus `json:"status"`
	IssueDate     Date          `json:"issueDate"`
	DueDate       Date          `json:"dueDate"`
	Notes         string        `json:"notes,omitempty"`
	PDFPath       string        `json:"pdfPath,omitempty"`
}

// EffectiveStatus returns the status as it should be presented on the given
// day: a pending invoice past its due date reads as overdue. The stored
// value is not changed.
func (i Invoice) EffectiveStatus(today Date) InvoiceStatus {
	if i.Status == InvoicePending && !i.DueDate.IsZero() && i.DueDate.Before(today) {
		return InvoiceOverdue
	}
	return i.Status
}
