// Package domain 包含商品目录（商品/品牌/分类）的领域模型。
package domain

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Brand 品牌实体
type Brand struct {
	gorm.Model
	Name        string `gorm:"column:name;type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
}

func (Brand) TableName() string { return "brands" }

// Category 分类实体
type Category struct {
	gorm.Model
	Name        string `gorm:"column:name;type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
}

func (Category) TableName() string { return "categories" }

// Product 商品实体
// 价格为时点价格，下单时快照到订单明细，后续改价不影响历史订单。
type Product struct {
	gorm.Model
	Name        string          `gorm:"column:name;type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	BrandID     uint            `gorm:"column:brand_id;index" json:"brand_id"`
	Brand       Brand           `json:"brand"`
	CategoryID  uint            `gorm:"column:category_id;index" json:"category_id"`
	Category    Category        `json:"category"`
}

func (Product) TableName() string { return "products" }

// ProductFilter 商品检索条件，全部条件以 AND 组合；空条件返回全部商品。
type ProductFilter struct {
	// 名称子串，不区分大小写
	Name string
	// 分类名精确匹配，不区分大小写
	CategoryName string
	// 价格下限（含）
	MinPrice *decimal.Decimal
	// 价格上限（含）
	MaxPrice *decimal.Decimal
}

// IsEmpty 是否未指定任何条件
func (f ProductFilter) IsEmpty() bool {
	return f.Name == "" && f.CategoryName == "" && f.MinPrice == nil && f.MaxPrice == nil
}
