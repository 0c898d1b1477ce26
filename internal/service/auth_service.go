package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"notely-be/internal/jwt"
	"notely-be/internal/models"
	"notely-be/internal/repository"
)

// DefaultCategories are seeded, in order, for every newly registered user
var DefaultCategories = []repository.CategorySeed{
	{Name: "Random Thoughts", Colour: "#EF9C66"},
	{Name: "School", Colour: "#FCDC94"},
	{Name: "Personal", Colour: "#78ABA8"},
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(req *models.RegisterRequest) (*models.RegisterResponse, error)
	Login(req *models.LoginRequest) (*models.TokenPair, error)
	Refresh(req *models.RefreshRequest) (*models.RefreshResponse, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user account together with its seed categories.
// The repository runs both in one transaction, so a failed seed rolls the
// registration back rather than leaving a half-seeded account.
func (s *authService) Register(req *models.RegisterRequest) (*models.RegisterResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Register(req.Email, string(hashedPassword), DefaultCategories)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, newValidationError("email", "A user with this email already exists.")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	access, refresh, err := s.jwtService.GeneratePair(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &models.RegisterResponse{
		Message: "User registered successfully",
		Email:   user.Email,
		Tokens: models.TokenPair{
			Refresh: refresh,
			Access:  access,
		},
	}, nil
}

// Login authenticates a user and returns a fresh token pair.
// An unknown email is a field error; a wrong password is ErrInvalidCredentials.
func (s *authService) Login(req *models.LoginRequest) (*models.TokenPair, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newValidationError("email", "No user found with this email address")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	access, refresh, err := s.jwtService.GeneratePair(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &models.TokenPair{Refresh: refresh, Access: access}, nil
}

// Refresh exchanges a valid refresh token for a new access token
func (s *authService) Refresh(req *models.RefreshRequest) (*models.RefreshResponse, error) {
	claims, err := s.jwtService.ValidateToken(req.Refresh, jwt.TypeRefresh)
	if err != nil {
		return nil, jwt.ErrInvalidToken
	}

	access, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &models.RefreshResponse{Access: access}, nil
}
