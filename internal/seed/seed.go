package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/trainly/trainly/internal/app/models"
	appRepos "github.com/trainly/trainly/internal/app/repositories"
	"github.com/trainly/trainly/internal/db"
	pkgAuth "github.com/trainly/trainly/internal/pkg/auth"
)

type demoAccount struct {
	email     string
	password  string
	firstName string
	lastName  string
	role      appModels.Role
}

// Demo accounts for local development. The admin is the only account
// that cannot be self-registered.
var demoAccounts = []demoAccount{
	{"admin@trainly.com", "admin123", "System", "Admin", appModels.RoleAdmin},
	{"sara.ali@student.com", "student123", "Sara", "Ali", appModels.RoleStudent},
	{"mohamed.eissa@instructor.com", "instructor123", "Mohamed", "Eissa", appModels.RoleInstructor},
}

// CreateDefaultData creates the demo accounts if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	profileRepo := appRepos.NewProfileRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default accounts...")
	var finalErr error

	for _, account := range demoAccounts {
		exists, err := userRepo.EmailExists(ctx, account.email)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			continue
		}

		hashed, err := pkgAuth.HashPassword(account.password)
		if err != nil {
			finalErr = errors.Join(finalErr, fmt.Errorf("failed to hash seed password: %w", err))
			continue
		}

		user := &appModels.User{
			Email:     account.email,
			Password:  hashed,
			FirstName: account.firstName,
			LastName:  account.lastName,
			Role:      account.role,
			Status:    appModels.UserActive,
		}

		err = db.WithTransaction(ctx, dbPool, func(ctx context.Context, tx pgx.Tx) error {
			userID, err := userRepo.CreateUserTx(ctx, tx, user)
			if err != nil {
				return err
			}

			switch account.role {
			case appModels.RoleStudent:
				_, err = profileRepo.CreateStudentTx(ctx, tx, userID)
			case appModels.RoleInstructor:
				_, err = profileRepo.CreateFacultyTx(ctx, tx, userID, "Mr./Ms.", "Independent")
			case appModels.RoleAdmin:
				_, err = profileRepo.CreateAdminTx(ctx, tx, userID)
			}
			return err
		})
		if err != nil {
			lgr.Error().Err(err).Str("email", account.email).Msg("Error creating seed account")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		lgr.Info().Str("email", account.email).Str("role", string(account.role)).Msg("Seed account created")
	}

	return finalErr
}
