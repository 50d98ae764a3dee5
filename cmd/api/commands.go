// AngelaMos | 2026
// commands.go

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/user"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/migrations"
)

func migrate(ctx context.Context, configPath string) error {
	cfg, logger, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exits next

	applied, err := core.Migrate(ctx, db.DB, migrations.FS)
	if err != nil {
		return err
	}
	logger.Info("migrations complete", "applied", applied)
	return nil
}

func newCreateAdminCommand(configPath *string) *cobra.Command {
	var req user.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create the first admin account",
		Long: "Creates an admin user on an empty database. The password is read " +
			"from LAWCRM_ADMIN_PASSWORD when --password is not given.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Password == "" {
				req.Password = os.Getenv("LAWCRM_ADMIN_PASSWORD")
			}
			return createAdmin(cmd.Context(), *configPath, req)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Username, "username", "admin", "login name")
	flags.StringVar(&req.Email, "email", "", "email address")
	flags.StringVar(&req.Password, "password", "", "initial password")
	flags.StringVar(&req.FirstName, "first-name", "System", "first name")
	flags.StringVar(&req.LastName, "last-name", "Administrator", "last name")
	_ = cmd.MarkFlagRequired("email") //nolint:errcheck // flag is defined above

	return cmd
}

func createAdmin(ctx context.Context, configPath string, req user.CreateUserRequest) error {
	if err := core.Validate(req); err != nil {
		return fmt.Errorf("invalid admin details: %s", core.FormatValidationError(err))
	}

	cfg, logger, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exits next

	if cfg.Database.AutoMigrate {
		if _, err := core.Migrate(ctx, db.DB, migrations.FS); err != nil {
			return err
		}
	}

	admin, err := user.NewService(user.NewRepository(db.DB)).EnsureAdmin(ctx, req)
	if errors.Is(err, core.ErrConflict) {
		return errors.New("an account already exists; create further users through the API")
	}
	if err != nil {
		return err
	}

	logger.Info("admin created", "id", admin.ID, "username", admin.Username)
	return nil
}
