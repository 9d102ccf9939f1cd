package domain

import "errors"

var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrBrandNotFound 品牌不存在
	ErrBrandNotFound = errors.New("brand not found")
	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = errors.New("category not found")

	// ErrProductExists 商品名称已存在
	ErrProductExists = errors.New("product already exists")
	// ErrBrandExists 品牌名称已存在
	ErrBrandExists = errors.New("brand already exists")
	// ErrCategoryExists 分类名称已存在
	ErrCategoryExists = errors.New("category already exists")
)
