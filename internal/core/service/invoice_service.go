package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agencyops/crm-system/internal/core/domain"
	"github.com/agencyops/crm-system/internal/core/ports"
)

// InvoiceService implements invoice management. Reads present the effective
// status (pending past its due date reads as overdue); the stored status is
// only changed by explicit, state-machine-checked writes.
type InvoiceService struct {
	repo ports.InvoiceRepository
	log  zerolog.Logger
	// today is swapped in tests to pin the overdue computation.
	today func() domain.Date
}

func NewInvoiceService(repo ports.InvoiceRepository, log zerolog.Logger) *InvoiceService {
	return &InvoiceService{repo: repo, log: log, today: domain.Today}
}

func (s *InvoiceService) List(ctx context.Context, filter ports.InvoiceFilter) ([]*domain.Invoice, error) {
	invoices, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	today := s.today()
	out := make([]*domain.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, presented(inv, today))
	}
	return out, nil
}

func (s *InvoiceService) Get(ctx context.Context, id int) (*domain.Invoice, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return presented(inv, s.today()), nil
}

func (s *InvoiceService) Create(ctx context.Context, input ports.CreateInvoiceInput) (*domain.Invoice, error) {
	status := input.Status
	if status == "" {
		status = domain.InvoicePending
	}
	if !domain.ValidInvoiceStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, status)
	}
	if err := checkDates(input.IssueDate, input.DueDate); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Invoice{
		OrderID:       input.OrderID,
		InvoiceNumber: input.InvoiceNumber,
		Amount:        input.Amount,
		Status:        status,
		IssueDate:     input.IssueDate,
		DueDate:       input.DueDate,
		Notes:         input.Notes,
		PDFPath:       input.PDFPath,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("id", created.ID).Str("number", created.InvoiceNumber).Msg("invoice created")
	return created, nil
}

// Update applies a partial update. Status changes are validated against the
// stored status, so a pending invoice presented as overdue can still be
// marked paid. Date changes are validated against the merged record.
func (s *InvoiceService) Update(ctx context.Context, id int, input ports.UpdateInvoiceInput) (*domain.Invoice, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		next := *input.Status
		if next != current.Status && !current.Status.CanTransitionTo(next) {
			return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, current.Status, next)
		}
	}

	issue, due := current.IssueDate, current.DueDate
	if input.IssueDate != nil {
		issue = *input.IssueDate
	}
	if input.DueDate != nil {
		due = *input.DueDate
	}
	if err := checkDates(issue, due); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("id", id).Msg("invoice updated")
	return presented(updated, s.today()), nil
}

func (s *InvoiceService) Delete(ctx context.Context, id int) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvoiceNotFound
	}

	s.log.Info().Int("id", id).Msg("invoice deleted")
	return nil
}

func checkDates(issue, due domain.Date) error {
	if issue.IsZero() || due.IsZero() {
		return nil
	}
	if due.Before(issue) {
		return domain.ErrInvalidDateRange
	}
	return nil
}

func presented(inv *domain.Invoice, today domain.Date) *domain.Invoice {
	clone := *inv
	clone.Status = clone.EffectiveStatus(today)
	return &clone
}
