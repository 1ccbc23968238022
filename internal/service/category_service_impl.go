package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/google/uuid"
)

type categoryService struct {
	categories repository.CategoryRepo
	uow        db.UnitOfWork
}

func NewCategoryService(categories repository.CategoryRepo, uow db.UnitOfWork) CategoryService {
	return &categoryService{categories: categories, uow: uow}
}

func (s *categoryService) Create(ctx context.Context, c *domain.Category) error {
	if c.Color == "" {
		c.Color = domain.DefaultColor
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now().UTC()
	return s.categories.Create(ctx, c)
}

func (s *categoryService) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *categoryService) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	return s.categories.GetByName(ctx, name)
}

func (s *categoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *categoryService) Update(ctx context.Context, c *domain.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return s.categories.Update(ctx, c)
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRecords := repository.NewSQLiteSessionRecordRepo(tx)
		txCategories := repository.NewSQLiteCategoryRepo(tx)

		// Purge history first; the session_records FK on categories would
		// otherwise block the delete.
		if err := txRecords.DeleteByCategory(ctx, id); err != nil {
			return err
		}
		return txCategories.Delete(ctx, id)
	})
}
