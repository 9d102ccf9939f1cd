package application_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/ecommerce/internal/stock/application"
	"github.com/wyfcoding/ecommerce/internal/stock/domain"
)

type fakeStockRepository struct {
	rows   []*domain.Stock
	nextID uint
}

func (f *fakeStockRepository) Create(_ context.Context, stock *domain.Stock) error {
	f.nextID++
	stock.ID = f.nextID
	f.rows = append(f.rows, stock)
	return nil
}

func (f *fakeStockRepository) Save(_ context.Context, _ *domain.Stock) error {
	return nil
}

func (f *fakeStockRepository) GetByID(_ context.Context, id uint) (*domain.Stock, error) {
	for _, s := range f.rows {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStockRepository) List(_ context.Context) ([]*domain.Stock, error) {
	return f.rows, nil
}

func (f *fakeStockRepository) ListByProduct(_ context.Context, productID uint) ([]*domain.Stock, error) {
	out := []*domain.Stock{}
	for _, s := range f.rows {
		if s.ProductID == productID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStockRepository) ListByProductForUpdate(ctx context.Context, productID uint) ([]*domain.Stock, error) {
	return f.ListByProduct(ctx, productID)
}

func (f *fakeStockRepository) GetByProductAndLocation(_ context.Context, productID uint, location string) (*domain.Stock, error) {
	for _, s := range f.rows {
		if s.ProductID == productID && s.Location == location {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStockRepository) Delete(_ context.Context, id uint) error {
	for i, s := range f.rows {
		if s.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestCreateAndListByProduct(t *testing.T) {
	repo := &fakeStockRepository{}
	service := application.NewStockService(repo)

	_, err := service.CreateStock(context.Background(), 10, "warehouse-a", 5)
	require.NoError(t, err)
	_, err = service.CreateStock(context.Background(), 10, "warehouse-b", 7)
	require.NoError(t, err)
	_, err = service.CreateStock(context.Background(), 11, "warehouse-a", 2)
	require.NoError(t, err)

	rows, err := service.ListByProduct(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "warehouse-a", rows[0].Location)
	assert.Equal(t, "warehouse-b", rows[1].Location)
}

func TestUpdateStockNotFound(t *testing.T) {
	service := application.NewStockService(&fakeStockRepository{})

	_, err := service.UpdateStock(context.Background(), 42, 10, "warehouse-a", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStockNotFound)
}

func TestUpdateQuantitySetsAbsoluteValue(t *testing.T) {
	repo := &fakeStockRepository{}
	service := application.NewStockService(repo)

	_, err := service.CreateStock(context.Background(), 10, "warehouse-a", 5)
	require.NoError(t, err)

	require.NoError(t, service.UpdateQuantity(context.Background(), 10, "warehouse-a", 12))

	row, err := service.GetByProductAndLocation(context.Background(), 10, "warehouse-a")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, 12, row.Quantity)
}

func TestUpdateQuantityMissingRow(t *testing.T) {
	service := application.NewStockService(&fakeStockRepository{})

	err := service.UpdateQuantity(context.Background(), 10, "nowhere", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStockNotFound)
}
