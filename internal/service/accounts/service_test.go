package accounts

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/auth"
	adminRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/admin"
	userRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/user"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-ParkingService/internal/service/accounts/models"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/usecasetest"
)

type fakeUsers struct {
	byEmail map[string]*domain.User
}

func (f *fakeUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return nil, fmt.Errorf("%w: Create - email: %s", userRepo.ErrEmailTaken, user.Email)
	}
	user.ID = int64(len(f.byEmail) + 1)
	f.byEmail[user.Email] = user
	return user, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, userRepo.ErrUserNotFound
}

type fakeAdmins struct {
	byEmail map[string]*domain.Admin
}

func (f *fakeAdmins) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	if _, ok := f.byEmail[admin.Email]; ok {
		return nil, adminRepo.ErrEmailTaken
	}
	admin.ID = int64(len(f.byEmail) + 1)
	f.byEmail[admin.Email] = admin
	return admin, nil
}

func (f *fakeAdmins) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	if a, ok := f.byEmail[email]; ok {
		return a, nil
	}
	return nil, adminRepo.ErrAdminNotFound
}

type fakeVehicles struct {
	items []*domain.Vehicle
}

func (f *fakeVehicles) Create(_ context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	v.PlateNumber = strings.ToUpper(v.PlateNumber)
	for _, existing := range f.items {
		if existing.PlateNumber == v.PlateNumber {
			return nil, vehicleRepo.ErrPlateTaken
		}
	}
	v.ID = int64(len(f.items) + 1)
	f.items = append(f.items, v)
	return v, nil
}

func (f *fakeVehicles) GetByUserID(_ context.Context, userID int64) ([]*domain.Vehicle, error) {
	var out []*domain.Vehicle
	for _, v := range f.items {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

type fixture struct {
	svc      *Service
	users    *fakeUsers
	admins   *fakeAdmins
	vehicles *fakeVehicles
	tokens   *auth.TokenManager
}

func setup() *fixture {
	f := &fixture{
		users:    &fakeUsers{byEmail: map[string]*domain.User{}},
		admins:   &fakeAdmins{byEmail: map[string]*domain.Admin{}},
		vehicles: &fakeVehicles{},
		tokens:   auth.NewTokenManager("test-secret", "parking", time.Hour),
	}
	f.svc = NewService(f.users, f.admins, f.vehicles, auth.NewPasswordHasher(bcrypt.MinCost), f.tokens, &usecasetest.Logger{})
	return f
}

func TestRegisterAndLoginUser(t *testing.T) {
	f := setup()
	ctx := context.Background()

	user, err := f.svc.RegisterUser(ctx, &models.RegisterUserRequest{
		Name:      "Nimal Perera",
		Email:     " Nimal@Example.com ",
		Password:  "password1",
		ContactNo: "0771234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "nimal@example.com", user.Email)
	assert.NotEqual(t, "password1", f.users.byEmail["nimal@example.com"].PasswordHash)

	tok, err := f.svc.LoginUser(ctx, &models.LoginRequest{Email: "NIMAL@example.com", Password: "password1"})
	require.NoError(t, err)
	require.NotNil(t, tok.User)
	assert.Equal(t, user.ID, tok.User.ID)

	principal, err := f.tokens.Parse(tok.Token)
	require.NoError(t, err)
	assert.True(t, principal.IsUser())
	assert.Equal(t, user.ID, principal.ID)

	_, err = f.svc.LoginUser(ctx, &models.LoginRequest{Email: "nimal@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.LoginUser(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterUser_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.RegisterUserRequest
	}{
		{"empty name", models.RegisterUserRequest{Email: "a@b.lk", Password: "password1"}},
		{"bad email", models.RegisterUserRequest{Name: "A", Email: "not-an-email", Password: "password1"}},
		{"short password", models.RegisterUserRequest{Name: "A", Email: "a@b.lk", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup()
			_, err := f.svc.RegisterUser(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.users.byEmail)
		})
	}
}

func TestRegisterUser_EmailTaken(t *testing.T) {
	f := setup()
	req := &models.RegisterUserRequest{Name: "A", Email: "a@b.lk", Password: "password1"}

	_, err := f.svc.RegisterUser(context.Background(), req)
	require.NoError(t, err)

	_, err = f.svc.RegisterUser(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateAdminAndLogin(t *testing.T) {
	f := setup()
	ctx := context.Background()

	admin, err := f.svc.CreateAdmin(ctx, &models.CreateAdminRequest{
		Name:     "Ops",
		Email:    "ops@parqhub.lk",
		Password: "password1",
		Role:     "operations_manager",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOperationsManager, admin.Role)
	assert.Equal(t, []domain.Capability{domain.CapabilityOperations}, admin.Capabilities)

	tok, err := f.svc.LoginAdmin(ctx, &models.LoginRequest{Email: "ops@parqhub.lk", Password: "password1"})
	require.NoError(t, err)

	principal, err := f.tokens.Parse(tok.Token)
	require.NoError(t, err)
	assert.True(t, principal.IsAdmin())
	assert.Equal(t, domain.RoleOperationsManager, principal.Role)

	_, err = f.svc.LoginUser(ctx, &models.LoginRequest{Email: "ops@parqhub.lk", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateAdmin_UnknownRole(t *testing.T) {
	f := setup()

	_, err := f.svc.CreateAdmin(context.Background(), &models.CreateAdminRequest{
		Name:     "X",
		Email:    "x@parqhub.lk",
		Password: "password1",
		Role:     "JANITOR",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestVehicles(t *testing.T) {
	f := setup()
	ctx := context.Background()
	owner := &domain.Principal{Kind: domain.PrincipalUser, ID: 1}

	v, err := f.svc.RegisterVehicle(ctx, owner, &models.RegisterVehicleRequest{PlateNumber: "cab-1234", Type: "car", Brand: "Toyota"})
	require.NoError(t, err)
	assert.Equal(t, "CAB-1234", v.PlateNumber)
	assert.Equal(t, "Car", v.Type)

	_, err = f.svc.RegisterVehicle(ctx, owner, &models.RegisterVehicleRequest{PlateNumber: "CAB-1234", Type: "Car"})
	assert.ErrorIs(t, err, ErrPlateTaken)

	_, err = f.svc.RegisterVehicle(ctx, owner, &models.RegisterVehicleRequest{PlateNumber: "X-1", Type: "Spaceship"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.RegisterVehicle(ctx, &domain.Principal{Kind: domain.PrincipalAdmin, ID: 1, Role: domain.RoleSuperAdmin}, &models.RegisterVehicleRequest{PlateNumber: "X-2", Type: "Car"})
	assert.ErrorIs(t, err, ErrForbidden)

	list, err := f.svc.ListVehicles(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, v.ID, list[0].ID)

	other, err := f.svc.ListVehicles(ctx, &domain.Principal{Kind: domain.PrincipalUser, ID: 2})
	require.NoError(t, err)
	assert.Empty(t, other)
}
