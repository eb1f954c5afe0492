package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/greenbasket/farmmarket-backend/pkg/auth"
	"github.com/greenbasket/farmmarket-backend/pkg/config"
	"github.com/greenbasket/farmmarket-backend/pkg/db"
	"github.com/greenbasket/farmmarket-backend/pkg/db/models"
	"github.com/greenbasket/farmmarket-backend/pkg/enums"
	pkgerrors "github.com/greenbasket/farmmarket-backend/pkg/errors"
)

type service struct {
	repo   Repository
	jwtCfg config.JWTConfig
	now    func() time.Time
}

// NewService builds the identity service.
func NewService(repo Repository, jwtCfg config.JWTConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("identity repository required")
	}
	return &service{
		repo:   repo,
		jwtCfg: jwtCfg,
		now:    time.Now,
	}, nil
}

// Register opens an account. Passwords are stored exactly as supplied; the
// upstream login flow compares them byte for byte.
func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, email and password are required")
	}
	role, err := enums.ParseUserRole(input.Role)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role must be farmer or customer")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking existing user")
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: input.Password,
		Role:     role,
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		// The pre-check races with concurrent registration; the unique index
		// is the real guard.
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "user already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating user")
	}

	return &AuthResult{
		UserID: created.ID,
		Name:   created.Name,
		Role:   created.Role,
	}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading user")
	}
	if user.Password != input.Password {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	if role := strings.TrimSpace(input.Role); role != "" && string(user.Role) != role {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, fmt.Sprintf("please login as a %s", user.Role))
	}

	token, err := auth.MintAccessToken(s.jwtCfg, s.now(), auth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting session token")
	}

	return &AuthResult{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
		Token:  token,
	}, nil
}
