package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/repository"
	"github.com/foodgram/backend/internal/types"
)

const tokenIssuer = "foodgram"

type AuthService struct {
	store     *repository.Store
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(store *repository.Store, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		store:     store,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Register creates a user with a bcrypt hashed password
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.store.UserExists(ctx, email, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ConflictError("a user with that email or username already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hashedPassword),
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		return nil, err
	}
	log.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return &user, nil
}

// Login checks credentials and issues a token
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", UnauthorizedError("invalid credentials")
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", UnauthorizedError("invalid credentials")
	}
	return s.GenerateToken(user)
}

// GenerateToken signs an HS256 token for user
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, UnauthorizedError("invalid or expired token")
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, UnauthorizedError("invalid token claims")
	}
	return claims, nil
}

// CurrentViewer reloads the token's user so a revoked admin flag or a
// deleted account takes effect immediately
func (s *AuthService) CurrentViewer(ctx context.Context, claims *types.TokenClaims) (types.Viewer, error) {
	user, err := s.store.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return types.Viewer{}, UnauthorizedError("user no longer exists")
		}
		return types.Viewer{}, err
	}
	return types.Viewer{ID: user.ID, IsAdmin: user.IsAdmin}, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "user not found")
	}
	return user, nil
}
