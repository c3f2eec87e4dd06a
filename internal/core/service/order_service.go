package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agencyops/crm-system/internal/core/domain"
	"github.com/agencyops/crm-system/internal/core/ports"
)

// UnknownClientName is the display fallback for orders whose client has been
// deleted. A dangling reference is a presentation concern, never an error.
const UnknownClientName = "Unknown Client"

// OrderService implements order management and enforces the order status
// state machine on updates.
type OrderService struct {
	repo    ports.OrderRepository
	clients ports.ClientRepository
	log     zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, clients ports.ClientRepository, log zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, clients: clients, log: log}
}

func (s *OrderService) List(ctx context.Context, filter ports.OrderFilter) ([]ports.OrderView, error) {
	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	names, err := s.clientNames(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ports.OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, ports.OrderView{Order: *o, ClientName: nameOrUnknown(names, o.ClientID)})
	}
	return views, nil
}

func (s *OrderService) Get(ctx context.Context, id int) (*ports.OrderView, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name := UnknownClientName
	client, err := s.clients.Get(ctx, order.ClientID)
	switch {
	case err == nil:
		name = client.Name
	case !errors.Is(err, domain.ErrClientNotFound):
		return nil, err
	}

	return &ports.OrderView{Order: *order, ClientName: name}, nil
}

func (s *OrderService) Create(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	status := input.Status
	if status == "" {
		status = domain.OrderPending
	}
	if !domain.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, status)
	}

	created, err := s.repo.Create(ctx, &domain.Order{
		ClientID:    input.ClientID,
		Title:       input.Title,
		Description: input.Description,
		TweetURL:    input.TweetURL,
		Status:      status,
		Value:       input.Value,
		OrderDate:   input.OrderDate,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("id", created.ID).Int("client_id", created.ClientID).Str("status", string(created.Status)).Msg("order created")
	return created, nil
}

// Update applies a partial update. A status change must be a valid
// transition from the currently stored status; writing the same status back
// is a no-op, not a transition.
func (s *OrderService) Update(ctx context.Context, id int, input ports.UpdateOrderInput) (*domain.Order, error) {
	if input.Status != nil {
		current, err := s.repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		next := *input.Status
		if next != current.Status && !current.Status.CanTransitionTo(next) {
			return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, current.Status, next)
		}
	}

	updated, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("id", id).Msg("order updated")
	return updated, nil
}

func (s *OrderService) Delete(ctx context.Context, id int) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrOrderNotFound
	}

	s.log.Info().Int("id", id).Msg("order deleted")
	return nil
}

func (s *OrderService) clientNames(ctx context.Context) (map[int]string, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}
	return names, nil
}

func nameOrUnknown(names map[int]string, clientID int) string {
	if name, ok := names[clientID]; ok {
		return name
	}
	return UnknownClientName
}
