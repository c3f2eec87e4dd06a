package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/agencyops/crm-system/internal/core/domain"
	"github.com/agencyops/crm-system/internal/core/ports"
	"github.com/agencyops/crm-system/internal/core/rbac"
)

// UserService implements user management. Ownership rules live here: every
// check goes through rbac.IsAllowed, so the catalog is consulted in exactly
// one place for both route gates and the self-service carve-outs.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int) (*domain.User, error) {
	return s.repo.Get(ctx, id)
}

func (s *UserService) Create(ctx context.Context, actor *domain.User, input ports.CreateUserInput) (*domain.User, error) {
	if !rbac.IsAllowed(actor, rbac.ManageUsers) {
		return nil, domain.ErrForbidden
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		Name:         input.Name,
		Email:        input.Email,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("id", created.ID).Str("username", created.Username).Str("role", created.Role).Msg("user created")
	return created, nil
}

// Update applies a partial update. Admins (manage_users) may update anyone;
// everyone else may only touch their own record, may not change roles, and
// needs the edit_profile / change_password permissions for the respective
// fields.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id int, input ports.UpdateUserInput) (*domain.User, error) {
	if !rbac.IsAllowed(actor, rbac.ManageUsers) {
		if actor == nil || actor.ID != id {
			return nil, domain.ErrForbidden
		}
		if input.Role != nil {
			return nil, domain.ErrForbidden
		}
		profileEdit := input.Username != nil || input.Name != nil || input.Email != nil
		if profileEdit && !rbac.IsAllowed(actor, rbac.EditProfile) {
			return nil, domain.ErrForbidden
		}
		if input.Password != nil && !rbac.IsAllowed(actor, rbac.ChangePassword) {
			return nil, domain.ErrForbidden
		}
	}

	fields := ports.UpdateUserFields{
		Username: input.Username,
		Name:     input.Name,
		Email:    input.Email,
		Role:     input.Role,
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		fields.PasswordHash = &hashed
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("id", id).Msg("user updated")
	return updated, nil
}

// Delete removes a user. Self-deletion is forbidden so an admin cannot lock
// themselves out of the last account.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id int) error {
	if !rbac.IsAllowed(actor, rbac.ManageUsers) {
		return domain.ErrForbidden
	}
	if actor != nil && actor.ID == id {
		return domain.ErrSelfDelete
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUserNotFound
	}

	s.log.Info().Int("id", id).Msg("user deleted")
	return nil
}

// VerifyPassword reports whether the stored credential matches. Used by the
// settings flow that requires the current password before changing it.
func VerifyPassword(user *domain.User, password string) bool {
	if user == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
