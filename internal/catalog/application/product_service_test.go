package application_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wyfcoding/ecommerce/internal/catalog/application"
	"github.com/wyfcoding/ecommerce/internal/catalog/domain"
)

type fakeProductRepository struct {
	products []*domain.Product
	nextID   uint
}

func (f *fakeProductRepository) Create(_ context.Context, product *domain.Product) error {
	f.nextID++
	product.ID = f.nextID
	f.products = append(f.products, product)
	return nil
}

func (f *fakeProductRepository) Save(_ context.Context, _ *domain.Product) error {
	return nil
}

func (f *fakeProductRepository) GetByID(_ context.Context, id uint) (*domain.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepository) GetByName(_ context.Context, name string) (*domain.Product, error) {
	for _, p := range f.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepository) List(_ context.Context) ([]*domain.Product, error) {
	return f.products, nil
}

func (f *fakeProductRepository) Search(_ context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range f.products {
		if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepository) Delete(_ context.Context, id uint) error {
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeProductCache 记录读写次数的内存缓存
type fakeProductCache struct {
	data map[string][]byte
	hits int
	sets int
}

func newFakeProductCache() *fakeProductCache {
	return &fakeProductCache{data: map[string][]byte{}}
}

func (f *fakeProductCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	f.hits++
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeProductCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.sets++
	f.data[key] = raw
	return nil
}

func (f *fakeProductCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func TestCreateProduct(t *testing.T) {
	repo := &fakeProductRepository{}
	service := application.NewProductService(repo, nil)

	product, err := service.CreateProduct(context.Background(), "widget", "a widget", decimal.RequireFromString("9.99"), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "widget", product.Name)
	assert.Equal(t, uint(1), product.BrandID)
	assert.Equal(t, uint(2), product.CategoryID)
}

func TestCreateProductDuplicateName(t *testing.T) {
	repo := &fakeProductRepository{}
	service := application.NewProductService(repo, nil)

	_, err := service.CreateProduct(context.Background(), "widget", "", decimal.RequireFromString("9.99"), 1, 2)
	require.NoError(t, err)

	_, err = service.CreateProduct(context.Background(), "widget", "", decimal.RequireFromString("19.99"), 1, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductExists)
}

func TestUpdateProductNotFound(t *testing.T) {
	service := application.NewProductService(&fakeProductRepository{}, nil)

	_, err := service.UpdateProduct(context.Background(), 42, "x", "", decimal.Zero, 1, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeleteProductNotFound(t *testing.T) {
	service := application.NewProductService(&fakeProductRepository{}, nil)

	err := service.DeleteProduct(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetProductUsesCache(t *testing.T) {
	repo := &fakeProductRepository{products: []*domain.Product{
		{Model: gorm.Model{ID: 1}, Name: "widget", Price: decimal.RequireFromString("9.99")},
	}, nextID: 1}
	cache := newFakeProductCache()
	service := application.NewProductService(repo, cache)

	first, err := service.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, cache.sets)

	second, err := service.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first.Name, second.Name)
}

func TestUpdateProductInvalidatesCache(t *testing.T) {
	repo := &fakeProductRepository{products: []*domain.Product{
		{Model: gorm.Model{ID: 1}, Name: "widget", Price: decimal.RequireFromString("9.99")},
	}, nextID: 1}
	cache := newFakeProductCache()
	service := application.NewProductService(repo, cache)

	_, err := service.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, cache.data, 1)

	_, err = service.UpdateProduct(context.Background(), 1, "widget-v2", "", decimal.RequireFromString("19.99"), 1, 1)
	require.NoError(t, err)
	assert.Empty(t, cache.data)
}

func TestSearchProductsEmptyFilterListsAll(t *testing.T) {
	repo := &fakeProductRepository{products: []*domain.Product{
		{Model: gorm.Model{ID: 1}, Name: "cheap", Price: decimal.RequireFromString("5.00")},
		{Model: gorm.Model{ID: 2}, Name: "dear", Price: decimal.RequireFromString("50.00")},
	}, nextID: 2}
	service := application.NewProductService(repo, nil)

	all, err := service.SearchProducts(context.Background(), domain.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	min := decimal.RequireFromString("10.00")
	expensive, err := service.SearchProducts(context.Background(), domain.ProductFilter{MinPrice: &min})
	require.NoError(t, err)
	require.Len(t, expensive, 1)
	assert.Equal(t, "dear", expensive[0].Name)
}
