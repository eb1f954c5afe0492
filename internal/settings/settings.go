package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenbasket/farmmarket-backend/pkg/db/models"
	"github.com/greenbasket/farmmarket-backend/pkg/enums"
	pkgerrors "github.com/greenbasket/farmmarket-backend/pkg/errors"
)

// Patch carries a partial settings update; nil fields are left untouched.
type Patch struct {
	WeatherAlerts *bool
	CropAlerts    *bool
	Language      *string
	Theme         *string
}

// Repository defines persistence for per-user settings.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.Setting, error)
	Save(ctx context.Context, setting *models.Setting) (*models.Setting, error)
}

// Service exposes settings reads and upserts.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Setting, error)
	Upsert(ctx context.Context, userID uuid.UUID, patch Patch) (*models.Setting, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a settings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByUser(ctx context.Context, userID uuid.UUID) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *repository) Save(ctx context.Context, setting *models.Setting) (*models.Setting, error) {
	if err := r.db.WithContext(ctx).Save(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}

type service struct {
	repo Repository
}

// NewService builds the settings service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo}, nil
}

// Get returns the stored settings, or defaults when the user has never
// written any.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*models.Setting, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user is required")
	}

	setting, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return defaults(userID), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading settings")
	}
	return setting, nil
}

// Upsert applies the patch, creating the row on first write.
func (s *service) Upsert(ctx context.Context, userID uuid.UUID, patch Patch) (*models.Setting, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user is required")
	}

	setting, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading settings")
		}
		setting = defaults(userID)
		setting.ID = uuid.New()
	}

	if patch.WeatherAlerts != nil {
		setting.WeatherAlerts = *patch.WeatherAlerts
	}
	if patch.CropAlerts != nil {
		setting.CropAlerts = *patch.CropAlerts
	}
	if patch.Language != nil && *patch.Language != "" {
		setting.Language = *patch.Language
	}
	if patch.Theme != nil {
		theme, err := enums.ParseTheme(*patch.Theme)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "theme must be light or dark")
		}
		setting.Theme = theme
	}

	saved, err := s.repo.Save(ctx, setting)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving settings")
	}
	return saved, nil
}

func defaults(userID uuid.UUID) *models.Setting {
	return &models.Setting{
		UserID:   userID,
		Language: "en",
		Theme:    enums.ThemeLight,
	}
}
