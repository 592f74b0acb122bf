package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ai-docgen-be/internal/model"
	"ai-docgen-be/internal/repository/contract"
)

type TemplateRepositoryImpl struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) contract.TemplateRepository {
	return &TemplateRepositoryImpl{db: db}
}

func (r *TemplateRepositoryImpl) Create(ctx context.Context, record *model.TemplateRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *TemplateRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*model.TemplateRecord, error) {
	var m model.TemplateRecord
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *TemplateRepositoryImpl) FindAll(ctx context.Context) ([]model.TemplateRecord, error) {
	var records []model.TemplateRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *TemplateRepositoryImpl) Update(ctx context.Context, record *model.TemplateRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *TemplateRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.TemplateRecord{}, "id = ?", id).Error
}
