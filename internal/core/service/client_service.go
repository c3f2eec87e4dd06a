package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agencyops/crm-system/internal/core/domain"
	"github.com/agencyops/crm-system/internal/core/ports"
)

// ClientService implements client management. Deletion never cascades to
// orders: the weak reference is simply left dangling.
type ClientService struct {
	repo ports.ClientRepository
	log  zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, log zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, log: log}
}

func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	return s.repo.List(ctx)
}

func (s *ClientService) Get(ctx context.Context, id int) (*domain.Client, error) {
	return s.repo.Get(ctx, id)
}

func (s *ClientService) Create(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	created, err := s.repo.Create(ctx, &domain.Client{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Agency:   input.Agency,
		Position: input.Position,
		Notes:    input.Notes,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("id", created.ID).Str("name", created.Name).Msg("client created")
	return created, nil
}

func (s *ClientService) Update(ctx context.Context, id int, input ports.UpdateClientInput) (*domain.Client, error) {
	updated, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("id", id).Msg("client updated")
	return updated, nil
}

func (s *ClientService) Delete(ctx context.Context, id int) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrClientNotFound
	}

	s.log.Info().Int("id", id).Msg("client deleted")
	return nil
}
