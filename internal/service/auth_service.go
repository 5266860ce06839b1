package service

import (
	"context"
	"errors"
	"time"

	"github.com/unstopDD/sklad-sub000/internal/config"
	"github.com/unstopDD/sklad-sub000/internal/dto"
	"github.com/unstopDD/sklad-sub000/internal/model"
	"github.com/unstopDD/sklad-sub000/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
}

type authService struct {
	repo repository.ProfileRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.ProfileRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("an account with this email already exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	profile := &model.Profile{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Plan:         model.PlanFree,
	}
	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return s.issueTokens(profile)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	profile, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}
	return s.issueTokens(profile)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("malformed token")
	}
	ownerIDStr, ok := claims["owner_id"].(string)
	if !ok {
		return nil, errors.New("malformed token")
	}
	ownerID, err := uuid.Parse(ownerIDStr)
	if err != nil {
		return nil, errors.New("malformed token")
	}

	profile, err := s.repo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, errors.New("account not found")
	}
	return s.issueTokens(profile)
}

func (s *authService) issueTokens(profile *model.Profile) (*dto.LoginResponse, error) {
	access, err := s.generateToken(profile, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(profile, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		Profile: dto.ProfileResponse{
			ID:    profile.ID.String(),
			Email: profile.Email,
			Name:  profile.Name,
			Plan:  profile.Plan,
		},
	}, nil
}

func (s *authService) generateToken(profile *model.Profile, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"owner_id": profile.ID.String(),
		"email":    profile.Email,
		"plan":     profile.Plan,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
