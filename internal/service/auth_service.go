package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/bloghub/internal/model"
	"github.com/d60-Lab/bloghub/internal/repository"
	"github.com/d60-Lab/bloghub/pkg/logger"
)

var validate = validator.New()

// RegisterInput 注册参数
type RegisterInput struct {
	Username        string `json:"username" validate:"required"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
}

// normalize 去掉首尾空白，email 转小写；密码保持原样
func (in *RegisterInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
}

// AuthService 凭证存储：注册与登录
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.Session, error)
	// Session 根据用户名还原会话身份（token 校验后使用）
	Session(ctx context.Context, username string) (*model.Session, error)
}

type authService struct {
	store *repository.Store
	inv   Invalidator
	cal   *Calendar
	cost  int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService cost <= 0 时使用 bcrypt.DefaultCost
func NewAuthService(store *repository.Store, cal *Calendar, inv Invalidator, cost int) AuthService {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &authService{store: store, inv: inv, cal: cal, cost: cost}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.normalize()
	if in.Password != in.PasswordConfirm {
		return nil, invalid("passwords do not match")
	}
	if err := validate.Struct(in); err != nil {
		return nil, invalid("all fields are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		CreatedAt:    s.cal.Now(),
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		users := tx.Users()
		// 同一事务内逐列预检，给出具体冲突字段；并发下由唯一约束兜底
		for _, f := range [...]struct{ column, value string }{
			{"username", u.Username},
			{"email", u.Email},
			{"phone", u.Phone},
		} {
			taken, err := users.ExistsBy(ctx, f.column, f.value)
			if err != nil {
				return err
			}
			if taken {
				return &DuplicateFieldError{Field: f.column}
			}
		}
		return users.Create(ctx, u)
	})
	if err != nil {
		if IsDuplicate(err) {
			return nil, err
		}
		if uv, ok := repository.AsUniqueViolation(err); ok {
			return nil, duplicateField(uv)
		}
		return nil, fmt.Errorf("register user: %w", err)
	}

	invalidate(ctx, s.inv)
	logger.Info("user registered", zap.String("username", u.Username))
	return u, nil
}

func duplicateField(uv *repository.UniqueViolation) error {
	switch uv.Column {
	case "username", "email", "phone":
		return &DuplicateFieldError{Field: uv.Column}
	}
	return &DuplicateFieldError{Field: duplicateFieldUnknown}
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (*model.Session, error) {
	username = strings.TrimSpace(username)
	u, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("load user: %w", err)
		}
		// 用户不存在时也做一次比较，避免按耗时区分用户名是否存在
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return sessionOf(u), nil
}

func (s *authService) Session(ctx context.Context, username string) (*model.Session, error) {
	u, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return sessionOf(u), nil
}

func (s *authService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("bloghub-timing-dummy"), s.cost)
	})
	return s.dummyHash
}

func sessionOf(u *model.User) *model.Session {
	return &model.Session{Username: u.Username, FirstName: u.FirstName, LastName: u.LastName}
}
