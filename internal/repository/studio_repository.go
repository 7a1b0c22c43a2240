package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nbfilms/studio-api/internal/domain/studio"
	"github.com/nbfilms/studio-api/internal/platform/apperr"
)

// FounderModel is the GORM model for the founders table.
type FounderModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null;size:200"`
	Description string    `gorm:"type:text;not null"`
	Image       string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (FounderModel) TableName() string { return "founders" }

// ContactModel is the GORM model for the single-row contact_info table.
type ContactModel struct {
	ID       int16  `gorm:"primaryKey"`
	Phone    string `gorm:"size:50"`
	Email    string `gorm:"size:320"`
	Location string `gorm:"size:500"`
}

// TableName returns the table name for the GORM model.
func (ContactModel) TableName() string { return "contact_info" }

// contactRowID pins the contact record to one row.
const contactRowID int16 = 1

// AdminModel is the GORM model for the admin_accounts table.
type AdminModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null;size:320"`
	PasswordHash string    `gorm:"not null;size:100"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (AdminModel) TableName() string { return "admin_accounts" }

// GormFounderRepository is the GORM-based implementation of
// studio.FounderRepository.
type GormFounderRepository struct {
	db *gorm.DB
}

// NewGormFounderRepository creates a new GormFounderRepository.
func NewGormFounderRepository(db *gorm.DB) *GormFounderRepository {
	return &GormFounderRepository{db: db}
}

// Save persists a new founder.
func (r *GormFounderRepository) Save(ctx context.Context, f *studio.Founder) error {
	model := toFounderModel(f)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return apperr.NewStoreWriteError("create founder", err)
	}
	return nil
}

// Update persists changes to an existing founder.
func (r *GormFounderRepository) Update(ctx context.Context, f *studio.Founder) error {
	result := r.db.WithContext(ctx).
		Model(&FounderModel{}).
		Where("id = ?", f.ID).
		Updates(map[string]interface{}{
			"name":        f.Name,
			"description": f.Description,
			"image":       f.Image,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return apperr.NewStoreWriteError("update founder", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NewNotFoundError("founder", f.ID.String())
	}
	return nil
}

// Delete removes a founder.
func (r *GormFounderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&FounderModel{}).Error; err != nil {
		return apperr.NewStoreWriteError("delete founder", err)
	}
	return nil
}

// FindByID retrieves one founder.
func (r *GormFounderRepository) FindByID(ctx context.Context, id uuid.UUID) (*studio.Founder, error) {
	var model FounderModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("founder", id.String())
		}
		return nil, fmt.Errorf("failed to find founder: %w", err)
	}
	return toDomainFounder(&model), nil
}

// ListAll returns every founder, oldest first.
func (r *GormFounderRepository) ListAll(ctx context.Context) ([]*studio.Founder, error) {
	var models []FounderModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list founders: %w", err)
	}

	founders := make([]*studio.Founder, len(models))
	for i, m := range models {
		founders[i] = toDomainFounder(&m)
	}
	return founders, nil
}

// GormContactRepository stores the single contact info row.
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository.
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Get returns the contact record.
func (r *GormContactRepository) Get(ctx context.Context) (*studio.ContactInfo, error) {
	var model ContactModel
	if err := r.db.WithContext(ctx).Where("id = ?", contactRowID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("contact info", "singleton")
		}
		return nil, fmt.Errorf("failed to get contact info: %w", err)
	}
	return &studio.ContactInfo{Phone: model.Phone, Email: model.Email, Location: model.Location}, nil
}

// Put upserts the contact record.
func (r *GormContactRepository) Put(ctx context.Context, info studio.ContactInfo) error {
	model := ContactModel{
		ID:       contactRowID,
		Phone:    info.Phone,
		Email:    info.Email,
		Location: info.Location,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&model).Error
	if err != nil {
		return apperr.NewStoreWriteError("put contact info", err)
	}
	return nil
}

// Delete removes the contact record.
func (r *GormContactRepository) Delete(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("id = ?", contactRowID).Delete(&ContactModel{}).Error; err != nil {
		return apperr.NewStoreWriteError("delete contact info", err)
	}
	return nil
}

// GormAdminRepository looks up console accounts.
type GormAdminRepository struct {
	db *gorm.DB
}

// NewGormAdminRepository creates a new GormAdminRepository.
func NewGormAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// FindByEmail retrieves an admin account by email.
func (r *GormAdminRepository) FindByEmail(ctx context.Context, email string) (*studio.AdminAccount, error) {
	var model AdminModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("admin account", email)
		}
		return nil, fmt.Errorf("failed to find admin account: %w", err)
	}
	return &studio.AdminAccount{
		ID:           model.ID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
	}, nil
}

// --- Conversion helpers ---

func toFounderModel(f *studio.Founder) FounderModel {
	return FounderModel{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Image:       f.Image,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func toDomainFounder(m *FounderModel) *studio.Founder {
	return &studio.Founder{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Image:       m.Image,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
