package ports

import (
	"context"

	"github.com/agencyops/crm-system/internal/core/domain"
)

// InvoiceFilter narrows a listing. OrderID 0 means no filter.
type InvoiceFilter struct {
	OrderID int
}

// CreateInvoiceInput carries the fields for a new invoice. Status defaults
// to pending when empty; PDFPath is the stored retrieval path of an
// out-of-band uploaded document, if any.
type CreateInvoiceInput struct {
	OrderID       int
	InvoiceNumber string
	Amount        float64
	Status        domain.InvoiceStatus
	IssueDate     domain.Date
	DueDate       domain.Date
	Notes         string
	PDFPath       string
}

// UpdateInvoiceInput is a partial update: nil fields are preserved. Status
// changes must follow the invoice state machine.
type UpdateInvoiceInput struct {
	OrderID       *int
	InvoiceNumber *string
	Amount        *float64
	Status        *domain.InvoiceStatus
	IssueDate     *domain.Date
	DueDate       *domain.Date
	Notes         *string
	PDFPath       *string
}

// InvoiceRepository defines persistence for invoices.
type InvoiceRepository interface {
	Get(ctx context.Context, id int) (*domain.Invoice, error)
	// List returns invoices in insertion order, optionally filtered by order.
	List(ctx context.Context, filter InvoiceFilter) ([]*domain.Invoice, error)
	Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
	Update(ctx context.Context, id int, fields UpdateInvoiceInput) (*domain.Invoice, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// InvoiceService defines invoice use cases. Reads present the effective
// status (a pending invoice past its due date reads as overdue); writes
// operate on the stored status.
type InvoiceService interface {
	List(ctx context.Context, filter InvoiceFilter) ([]*domain.Invoice, error)
	Get(ctx context.Context, id int) (*domain.Invoice, error)
	Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error)
	Update(ctx context.Context, id int, input UpdateInvoiceInput) (*domain.Invoice, error)
	Delete(ctx context.Context, id int) error
}
