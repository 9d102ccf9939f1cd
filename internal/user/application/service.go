// Package application 实现用户注册、登录与查询。
package application

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/wyfcoding/ecommerce/internal/user/domain"
	"github.com/wyfcoding/ecommerce/pkg/auth"
	"github.com/wyfcoding/ecommerce/pkg/logger"
)

// TxManager 在单个事务中执行 fn；fn 返回错误时整体回滚。
type TxManager interface {
	WithTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

// UserService 用户应用服务
type UserService struct {
	users  domain.UserRepository
	roles  domain.RoleRepository
	tx     TxManager
	tokens *auth.Manager
}

// NewUserService 创建用户应用服务
func NewUserService(users domain.UserRepository, roles domain.RoleRepository, tx TxManager, tokens *auth.Manager) *UserService {
	return &UserService{users: users, roles: roles, tx: tx, tokens: tokens}
}

// Register 注册新用户：校验用户名/邮箱唯一，哈希密码，
// 分配默认角色（角色记录不存在时按需创建）。
func (s *UserService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var user *domain.User
	err = s.tx.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.users.GetByUsername(txCtx, username)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("username %q: %w", username, domain.ErrUsernameExists)
		}

		existing, err = s.users.GetByEmail(txCtx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("email %q: %w", email, domain.ErrEmailExists)
		}

		role, err := s.roles.GetByName(txCtx, domain.DefaultRoleName)
		if err != nil {
			return err
		}
		if role == nil {
			role = &domain.Role{Name: domain.DefaultRoleName}
			if err := s.roles.Create(txCtx, role); err != nil {
				return err
			}
		}

		user = &domain.User{
			Username: username,
			Password: string(hash),
			Email:    email,
			Roles:    []domain.Role{*role},
		}
		return s.users.Create(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "User registered", "username", username)
	return user, nil
}

// Login 校验凭证并签发 JWT
func (s *UserService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", time.Time{}, err
	}
	if user == nil {
		return "", time.Time{}, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", time.Time{}, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.Username, user.RoleNames())
	if err != nil {
		return "", time.Time{}, err
	}

	logger.Info(ctx, "User logged in", "username", username)
	return token, expiresAt, nil
}

// FindByUsername 按用户名查找；不存在时返回 (nil, nil)
func (s *UserService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// FindByEmail 按邮箱查找；不存在时返回 (nil, nil)
func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}
