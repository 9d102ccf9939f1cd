package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/ecommerce/internal/catalog/domain"
)

type BrandService struct {
	repo domain.BrandRepository
}

func NewBrandService(repo domain.BrandRepository) *BrandService {
	return &BrandService{repo: repo}
}

func (s *BrandService) ListBrands(ctx context.Context) ([]*domain.Brand, error) {
	return s.repo.List(ctx)
}

func (s *BrandService) GetBrand(ctx context.Context, id uint) (*domain.Brand, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BrandService) CreateBrand(ctx context.Context, name, description string) (*domain.Brand, error) {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("brand %q: %w", name, domain.ErrBrandExists)
	}

	brand := &domain.Brand{Name: name, Description: description}
	if err := s.repo.Create(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *BrandService) UpdateBrand(ctx context.Context, id uint, name, description string) (*domain.Brand, error) {
	brand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, fmt.Errorf("brand %d: %w", id, domain.ErrBrandNotFound)
	}

	brand.Name = name
	brand.Description = description
	if err := s.repo.Save(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *BrandService) DeleteBrand(ctx context.Context, id uint) error {
	brand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if brand == nil {
		return fmt.Errorf("brand %d: %w", id, domain.ErrBrandNotFound)
	}
	return s.repo.Delete(ctx, id)
}
