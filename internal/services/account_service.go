package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"voyage/internal/models/db_models"
	"voyage/internal/models/request_models"
	"voyage/internal/models/response_models"
	"voyage/internal/repositories"
	"voyage/pkg/utils"
)

// TokenCreator is satisfied by *utils.TokenIssuer.
type TokenCreator interface {
	CreateToken(userId uuid.UUID) (string, error)
}

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.AuthResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error)
	GoogleLogin(ctx context.Context, request request_models.GoogleLoginRequest) (*response_models.AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*response_models.UserResponse, error)
}

type AccountService struct {
	userRepo repositories.UserRepository
	tokens   TokenCreator
	google   GoogleVerifier
}

func NewAccountService(userRepo repositories.UserRepository, tokens TokenCreator, google GoogleVerifier) AccountServiceInterface {
	return &AccountService{
		userRepo: userRepo,
		tokens:   tokens,
		google:   google,
	}
}

func (a *AccountService) Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.AuthResponse, error) {
	email := normalizeEmail(request.Email)
	name := strings.TrimSpace(request.Name)
	if name == "" || email == "" || request.Password == "" {
		return nil, fmt.Errorf("%w: please include all fields", utils.ErrInvalidInput)
	}

	existing, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &db_models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		AuthProvider: db_models.AuthProviderLocal,
	}
	if err := a.insertUser(ctx, user); err != nil {
		return nil, err
	}

	return a.authResponse(user, true)
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error) {
	user, err := a.userRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return a.authResponse(user, false)
}

// GoogleLogin signs in the owner of a Google access token, registering them
// on first use. Federated users get an unguessable password hash.
func (a *AccountService) GoogleLogin(ctx context.Context, request request_models.GoogleLoginRequest) (*response_models.AuthResponse, error) {
	profile, err := a.google.Verify(ctx, request.Token)
	if err != nil {
		slog.WarnContext(ctx, "google token verification failed", "error", err)
		return nil, utils.ErrGoogleVerification
	}
	email := normalizeEmail(profile.Email)
	if email == "" || !profile.EmailVerified {
		return nil, utils.ErrGoogleVerification
	}

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if user != nil {
		return a.authResponse(user, false)
	}

	randomPassword, err := utils.GenerateSecureToken(16)
	if err != nil {
		return nil, fmt.Errorf("generate password: %w", err)
	}
	hashedPassword, err := utils.HashPassword(randomPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	name := strings.TrimSpace(profile.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	user = &db_models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		AuthProvider: db_models.AuthProviderGoogle,
	}
	if profile.Picture != "" {
		user.AvatarURL = &profile.Picture
	}
	if err := a.insertUser(ctx, user); err != nil {
		return nil, err
	}

	return a.authResponse(user, true)
}

func (a *AccountService) Me(ctx context.Context, userID uuid.UUID) (*response_models.UserResponse, error) {
	user, err := a.userRepo.FindById(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (a *AccountService) insertUser(ctx context.Context, user *db_models.User) error {
	if err := a.userRepo.Insert(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ErrEmailAlreadyExists
		}
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

func (a *AccountService) authResponse(user *db_models.User, created bool) (*response_models.AuthResponse, error) {
	token, err := a.tokens.CreateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	return &response_models.AuthResponse{
		UserResponse: toUserResponse(user),
		Token:        token,
		Created:      created,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
