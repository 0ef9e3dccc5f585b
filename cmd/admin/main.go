// Package main provides operator utilities for Children.lk: admin accounts,
// password resets and schema migrations.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"childrenlk/internal/config"
	"childrenlk/internal/database"
	"childrenlk/internal/models"
	"childrenlk/internal/repository"
	"childrenlk/internal/service"
	"childrenlk/internal/validation"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Children.lk operator utilities",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(createAdminCmd(), listAdminsCmd(), resetPasswordCmd(), migrateCmd())
	return root
}

// connect loads configuration and opens the database without applying the
// schema, so migrate can manage it explicitly.
func connect() (*config.Config, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, db, nil
}

func createAdminCmd() *cobra.Command {
	var name, password string
	cmd := &cobra.Command{
		Use:   "create-admin <email>",
		Short: "Create an admin account, or promote an existing account to admin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := validation.NormalizeEmail(args[0])
			if err := validation.Struct(validation.ForgotPasswordInput{Email: email}); err != nil {
				return err
			}
			_, db, err := connect()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			ctx := cmd.Context()
			users := repository.NewUserRepository(db)
			existing, err := users.GetByEmail(ctx, email)
			if err != nil {
				return err
			}
			if existing != nil {
				if existing.Role == models.RoleAdmin {
					fmt.Printf("%s (ID: %d) is already an admin\n", existing.Email, existing.ID)
					return nil
				}
				existing.Role = models.RoleAdmin
				if err := users.Update(ctx, existing); err != nil {
					return err
				}
				fmt.Printf("Promoted %s (ID: %d) to admin\n", existing.Email, existing.ID)
				return nil
			}

			generated := password == ""
			if generated {
				if password, err = service.GeneratePassword(16); err != nil {
					return err
				}
			} else if err := validation.ValidatePassword(password); err != nil {
				return err
			}
			hash, err := service.HashPassword(password)
			if err != nil {
				return err
			}

			user := &models.User{Name: name, Email: email, Password: hash, Role: models.RoleAdmin}
			if user.Name == "" {
				user.Name = strings.SplitN(email, "@", 2)[0]
			}
			if err := users.Create(ctx, user); err != nil {
				return err
			}

			fmt.Printf("Created admin %s (ID: %d)\n", user.Email, user.ID)
			if generated {
				fmt.Printf("Generated password: %s\n", password)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "password (generated when empty)")
	return cmd
}

func listAdminsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-admins",
		Short: "List admin accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, db, err := connect()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			admins, err := repository.NewUserRepository(db).ListByRole(cmd.Context(), models.RoleAdmin, 1000, 0)
			if err != nil {
				return err
			}
			if len(admins) == 0 {
				fmt.Println("No admins found")
				return nil
			}
			for _, a := range admins {
				fmt.Printf("ID: %d | Name: %s | Email: %s\n", a.ID, a.Name, a.Email)
			}
			return nil
		},
	}
}

func resetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <email>",
		Short: "Replace a user's password with a generated one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := connect()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			ctx := cmd.Context()
			users := repository.NewUserRepository(db)
			user, err := users.GetByEmail(ctx, validation.NormalizeEmail(args[0]))
			if err != nil {
				return err
			}
			if user == nil {
				return fmt.Errorf("no user with email %s", args[0])
			}

			password, err := service.GeneratePassword(16)
			if err != nil {
				return err
			}
			if user.Password, err = service.HashPassword(password); err != nil {
				return err
			}
			if err := users.Update(ctx, user); err != nil {
				return err
			}
			fmt.Printf("New password for %s: %s\n", user.Email, password)
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending SQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(func(m *database.Migrator) error {
				if err := m.Up(cmd.Context()); err != nil {
					return fmt.Errorf("sql migrations failed: %w", err)
				}
				fmt.Println("sql migrations applied")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down <version>",
		Short: "Roll back one migration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			return withMigrator(func(m *database.Migrator) error {
				if err := m.Down(cmd.Context(), version); err != nil {
					return fmt.Errorf("rollback failed: %w", err)
				}
				fmt.Printf("rolled back migration %d\n", version)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the schema policy and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, db, err := connect()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			status, err := database.GetSchemaStatus(cmd.Context(), db, cfg)
			if err != nil {
				return fmt.Errorf("schema status failed: %w", err)
			}
			fmt.Printf("mode=%s env=%s run_sql=%t run_auto=%t applied=%d pending=%d\n",
				status.Mode, status.Environment, status.WillRunSQL, status.WillRunAutoMigrate,
				len(status.AppliedVersions), len(status.PendingMigrations))
			for _, m := range status.PendingMigrations {
				fmt.Printf("pending: %s\n", m)
			}
			return nil
		},
	})

	return cmd
}

func withMigrator(fn func(*database.Migrator) error) error {
	_, db, err := connect()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	m, err := database.NewMigrator(db)
	if err != nil {
		return err
	}
	return fn(m)
}
