package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/auth"
	adminRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/admin"
	userRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/user"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
	accountsService "github.com/m04kA/SMC-ParkingService/internal/service/accounts"
	accountsModels "github.com/m04kA/SMC-ParkingService/internal/service/accounts/models"
)

// Администраторы не регистрируются через API, только этой командой
var adminArgs accountsModels.CreateAdminRequest

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	Args:  cobra.NoArgs,
	RunE:  runCreateAdmin,
}

func init() {
	flags := createAdminCmd.Flags()
	flags.StringVar(&adminArgs.Name, "name", "", "administrator name")
	flags.StringVar(&adminArgs.Email, "email", "", "administrator email")
	flags.StringVar(&adminArgs.Password, "password", "", "administrator password")
	flags.StringVar(&adminArgs.Role, "role", string(domain.RoleSuperAdmin), "administrator role")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Close()

	db, err := openDB(cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := accountsService.NewService(
		userRepo.NewRepository(db),
		adminRepo.NewRepository(db),
		vehicleRepo.NewRepository(db),
		auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenDuration()),
		log,
	)

	admin, err := svc.CreateAdmin(context.Background(), &adminArgs)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "admin created: id=%d email=%s role=%s\n", admin.ID, admin.Email, admin.Role)
	return nil
}
