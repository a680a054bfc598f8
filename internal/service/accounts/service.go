// Package accounts регистрация и вход пользователей и администраторов, автомобили пользователей
package accounts

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/auth"
	adminRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/admin"
	userRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/user"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-ParkingService/internal/service/accounts/models"
)

// Service сервис учетных записей
type Service struct {
	userRepo    UserRepository
	adminRepo   AdminRepository
	vehicleRepo VehicleRepository
	hasher      PasswordHasher
	tokens      TokenIssuer
	logger      Logger
}

// NewService создает новый экземпляр сервиса учетных записей
func NewService(
	userRepo UserRepository,
	adminRepo AdminRepository,
	vehicleRepo VehicleRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	logger Logger,
) *Service {
	return &Service{
		userRepo:    userRepo,
		adminRepo:   adminRepo,
		vehicleRepo: vehicleRepo,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger,
	}
}

// RegisterUser регистрирует пользователя
func (s *Service) RegisterUser(ctx context.Context, req *models.RegisterUserRequest) (*models.UserResponse, error) {
	name := strings.TrimSpace(req.Name)
	email, err := normalizeEmail(req.Email)
	if err != nil {
		s.logger.Warn("RegisterUser: %v", err)
		return nil, err
	}
	if name == "" {
		s.logger.Warn("RegisterUser: empty name for email=%s", email)
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := validatePassword(req.Password); err != nil {
		s.logger.Warn("RegisterUser: %v", err)
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("RegisterUser: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: RegisterUser - hash password: %v", ErrInternal, err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		ContactNo:    strings.TrimSpace(req.ContactNo),
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("RegisterUser: email=%s already registered", email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("RegisterUser: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: RegisterUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RegisterUser: registered user id=%d", user.ID)
	return models.FromDomainUser(user), nil
}

// LoginUser проверяет пароль пользователя и выдает токен
func (s *Service) LoginUser(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("LoginUser: unknown email=%s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("LoginUser: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: LoginUser - repository error: %v", ErrInternal, err)
	}

	if err := s.checkPassword(user.PasswordHash, req.Password); err != nil {
		s.logger.Warn("LoginUser: wrong password for user id=%d", user.ID)
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(domain.Principal{Kind: domain.PrincipalUser, ID: user.ID})
	if err != nil {
		s.logger.Error("LoginUser: failed to issue token for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: LoginUser - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("LoginUser: user id=%d logged in", user.ID)
	return &models.TokenResponse{Token: token, ExpiresAt: expiresAt, User: models.FromDomainUser(user)}, nil
}

// LoginAdmin проверяет пароль администратора и выдает токен с ролью
func (s *Service) LoginAdmin(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, adminRepo.ErrAdminNotFound) {
			s.logger.Warn("LoginAdmin: unknown email=%s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("LoginAdmin: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: LoginAdmin - repository error: %v", ErrInternal, err)
	}

	if err := s.checkPassword(admin.PasswordHash, req.Password); err != nil {
		s.logger.Warn("LoginAdmin: wrong password for admin id=%d", admin.ID)
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(domain.Principal{Kind: domain.PrincipalAdmin, ID: admin.ID, Role: admin.Role})
	if err != nil {
		s.logger.Error("LoginAdmin: failed to issue token for admin id=%d: %v", admin.ID, err)
		return nil, fmt.Errorf("%w: LoginAdmin - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("LoginAdmin: admin id=%d role=%s logged in", admin.ID, admin.Role)
	return &models.TokenResponse{Token: token, ExpiresAt: expiresAt, Admin: models.FromDomainAdmin(admin)}, nil
}

// CreateAdmin создает администратора (используется командой create-admin)
func (s *Service) CreateAdmin(ctx context.Context, req *models.CreateAdminRequest) (*models.AdminResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	role := domain.AdminRole(strings.ToUpper(strings.TrimSpace(req.Role)))
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateAdmin - hash password: %v", ErrInternal, err)
	}

	admin, err := s.adminRepo.Create(ctx, &domain.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, adminRepo.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("CreateAdmin: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: CreateAdmin - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateAdmin: created admin id=%d role=%s", admin.ID, admin.Role)
	return models.FromDomainAdmin(admin), nil
}

// RegisterVehicle регистрирует автомобиль пользователя
func (s *Service) RegisterVehicle(ctx context.Context, principal *domain.Principal, req *models.RegisterVehicleRequest) (*models.VehicleResponse, error) {
	if !principal.IsUser() {
		return nil, ErrForbidden
	}

	plate := strings.TrimSpace(req.PlateNumber)
	if plate == "" {
		return nil, fmt.Errorf("%w: plate number is required", ErrInvalidInput)
	}
	vehicleType, ok := domain.ParseVehicleType(req.Type)
	if !ok {
		s.logger.Warn("RegisterVehicle: invalid vehicle type=%q for user=%d", req.Type, principal.ID)
		return nil, fmt.Errorf("%w: unknown vehicle type %q", ErrInvalidInput, req.Type)
	}

	vehicle, err := s.vehicleRepo.Create(ctx, &domain.Vehicle{
		UserID:      principal.ID,
		PlateNumber: plate,
		Type:        vehicleType,
		Brand:       strings.TrimSpace(req.Brand),
		Model:       strings.TrimSpace(req.Model),
		Color:       strings.TrimSpace(req.Color),
	})
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrPlateTaken) {
			s.logger.Warn("RegisterVehicle: plate=%s already registered", plate)
			return nil, ErrPlateTaken
		}
		s.logger.Error("RegisterVehicle: repository error for user=%d: %v", principal.ID, err)
		return nil, fmt.Errorf("%w: RegisterVehicle - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RegisterVehicle: vehicle id=%d registered for user=%d", vehicle.ID, principal.ID)
	resp := models.FromDomainVehicle(vehicle)
	return &resp, nil
}

// ListVehicles возвращает автомобили пользователя
func (s *Service) ListVehicles(ctx context.Context, principal *domain.Principal) ([]models.VehicleResponse, error) {
	if !principal.IsUser() {
		return nil, ErrForbidden
	}

	vehicles, err := s.vehicleRepo.GetByUserID(ctx, principal.ID)
	if err != nil {
		s.logger.Error("ListVehicles: repository error for user=%d: %v", principal.ID, err)
		return nil, fmt.Errorf("%w: ListVehicles - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainVehicleList(vehicles), nil
}

func (s *Service) checkPassword(hash, password string) error {
	err := s.hasher.Compare(hash, password)
	if err == nil {
		return nil
	}
	if errors.Is(err, auth.ErrPasswordMismatch) {
		return ErrInvalidCredentials
	}
	return fmt.Errorf("%w: compare password: %v", ErrInternal, err)
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: invalid email %q", ErrInvalidInput, raw)
	}
	return email, nil
}

func validatePassword(password string) error {
	if len(password) < domain.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, domain.MinPasswordLength)
	}
	return nil
}
