package repository

import (
	"context"
	"errors"

	"github.com/snnyvrz/library-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WriterRepository interface {
	Create(ctx context.Context, writer *model.Writer) error
	FindByID(ctx context.Context, id uint) (*model.Writer, error)
	List(ctx context.Context) ([]model.Writer, error)
	Update(ctx context.Context, writer *model.Writer) error
	Delete(ctx context.Context, id uint) error
	// GetOrCreateByName returns the writer with exactly this name, inserting
	// it first when absent. created reports whether this call inserted it.
	GetOrCreateByName(ctx context.Context, name string) (writer *model.Writer, created bool, err error)
}

type GormWriterRepository struct {
	db *gorm.DB
}

func NewWriterRepository(db *gorm.DB) *GormWriterRepository {
	return &GormWriterRepository{db: db}
}

func (r *GormWriterRepository) Create(ctx context.Context, writer *model.Writer) error {
	if err := writer.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(writer).Error
}

func (r *GormWriterRepository) FindByID(ctx context.Context, id uint) (*model.Writer, error) {
	var writer model.Writer
	if err := r.db.WithContext(ctx).First(&writer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &writer, nil
}

func (r *GormWriterRepository) List(ctx context.Context) ([]model.Writer, error) {
	var writers []model.Writer
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&writers).Error; err != nil {
		return nil, err
	}
	return writers, nil
}

func (r *GormWriterRepository) Update(ctx context.Context, writer *model.Writer) error {
	if err := writer.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&model.Writer{}).
		Where("id = ?", writer.ID).
		Updates(map[string]any{
			"name":       writer.Name,
			"birth_date": writer.BirthDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the writer together with its books in one transaction.
func (r *GormWriterRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("writer_id = ?", id).Delete(&model.Book{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Writer{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormWriterRepository) GetOrCreateByName(ctx context.Context, name string) (*model.Writer, bool, error) {
	candidate := model.Writer{Name: name}
	if err := candidate.Validate(); err != nil {
		return nil, false, err
	}

	db := r.db.WithContext(ctx)

	result := db.
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&candidate)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 1 && candidate.ID != 0 {
		return &candidate, true, nil
	}

	var existing model.Writer
	if err := db.Where("name = ?", name).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The conflicting row vanished between the insert and the read.
			return nil, false, ErrWriterVanished
		}
		return nil, false, err
	}
	return &existing, false, nil
}
