package domain

import "context"

// ProductRepository 商品仓储接口
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Save(ctx context.Context, product *Product) error
	// GetByID 返回商品；不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id uint) (*Product, error)
	// GetByName 按名称精确查找；不存在时返回 (nil, nil)
	GetByName(ctx context.Context, name string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Search(ctx context.Context, filter ProductFilter) ([]*Product, error)
	Delete(ctx context.Context, id uint) error
}

// BrandRepository 品牌仓储接口
type BrandRepository interface {
	Create(ctx context.Context, brand *Brand) error
	Save(ctx context.Context, brand *Brand) error
	GetByID(ctx context.Context, id uint) (*Brand, error)
	GetByName(ctx context.Context, name string) (*Brand, error)
	List(ctx context.Context) ([]*Brand, error)
	Delete(ctx context.Context, id uint) error
}

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	Save(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id uint) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Delete(ctx context.Context, id uint) error
}
