package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/socialgraph/internal/model"
	"github.com/d60-Lab/socialgraph/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrUsernameTaken      = errors.New("username already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("wrong password")
)

type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

type UpdateInput struct {
	Name            string
	Description     string
	SiteWeb         string
	CurrentPassword string
	NewPassword     string
}

// Claims token 内携带的账号摘要
type Claims struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AccountService 账号目录：注册、登录、查询、资料更新
type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	// Login 校验口令并签发 token
	Login(ctx context.Context, email, password string) (string, error)
	// Get id 与 username 二选一
	Get(ctx context.Context, id, username string) (*model.User, error)
	Search(ctx context.Context, q string) ([]*model.User, error)
	Update(ctx context.Context, actorID string, input UpdateInput) error
	// ParseToken 校验 token 并返回账号 ID
	ParseToken(tokenString string) (string, error)
}

type accountService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAccountService(userRepo repository.UserRepository, jwtSecret string, tokenTTL time.Duration) AccountService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &accountService{userRepo: userRepo, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

func (s *accountService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.ToLower(strings.TrimSpace(input.Username))

	if existing, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}
	if existing, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		ID:       uuid.New().String(),
		Name:     input.Name,
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *accountService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.userRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.signToken(u)
}

func (s *accountService) signToken(u *model.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:     u.Name,
		Email:    u.Email,
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *accountService) ParseToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

func (s *accountService) Get(ctx context.Context, id, username string) (*model.User, error) {
	var (
		u   *model.User
		err error
	)
	switch {
	case id != "":
		u, err = s.userRepo.GetByID(ctx, id)
	case username != "":
		u, err = s.userRepo.GetByUsername(ctx, username)
	default:
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *accountService) Search(ctx context.Context, q string) ([]*model.User, error) {
	return s.userRepo.SearchByName(ctx, q, 50)
}

func (s *accountService) Update(ctx context.Context, actorID string, input UpdateInput) error {
	if input.CurrentPassword != "" && input.NewPassword != "" {
		u, err := s.userRepo.GetByID(ctx, actorID)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrUserNotFound
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(input.CurrentPassword)); err != nil {
			return ErrWrongPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		return s.userRepo.Updates(ctx, actorID, map[string]any{"password": string(hash)})
	}

	fields := map[string]any{}
	if input.Name != "" {
		fields["name"] = input.Name
	}
	if input.Description != "" {
		fields["description"] = input.Description
	}
	if input.SiteWeb != "" {
		fields["site_web"] = input.SiteWeb
	}
	if len(fields) == 0 {
		return nil
	}
	return s.userRepo.Updates(ctx, actorID, fields)
}
