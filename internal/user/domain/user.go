// Package domain 包含用户目录的领域模型。
package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// DefaultRoleName 注册时分配的默认角色
const DefaultRoleName = "ROLE_USER"

var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameExists 用户名已被占用
	ErrUsernameExists = errors.New("username already exists")
	// ErrEmailExists 邮箱已被占用
	ErrEmailExists = errors.New("email already exists")
	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Role 角色实体
type Role struct {
	gorm.Model
	Name string `gorm:"column:name;type:varchar(50);uniqueIndex;not null" json:"name"`
}

func (Role) TableName() string { return "roles" }

// User 用户实体
// Password 存放 bcrypt 哈希，永不序列化到响应。
type User struct {
	gorm.Model
	Username string `gorm:"column:username;type:varchar(100);uniqueIndex;not null" json:"username"`
	Password string `gorm:"column:password;type:varchar(100);not null" json:"-"`
	Email    string `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	Roles    []Role `gorm:"many2many:user_roles" json:"roles"`
}

func (User) TableName() string { return "users" }

// RoleNames 返回用户全部角色名
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// UserRepository 用户仓储接口
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	// GetByID 返回用户；不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id uint) (*User, error)
	// GetByUsername 返回用户（含角色）；不存在时返回 (nil, nil)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// GetByEmail 返回用户；不存在时返回 (nil, nil)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// RoleRepository 角色仓储接口
type RoleRepository interface {
	// GetByName 返回角色；不存在时返回 (nil, nil)
	GetByName(ctx context.Context, name string) (*Role, error)
	Create(ctx context.Context, role *Role) error
}
