// Command recipectl is a small admin tool for the RecipeBook database.
// Its only subcommand today is "register", which creates a user account
// directly through the service layer, bypassing the public API.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mkurent/recipebook/internal/cli"
	"github.com/mkurent/recipebook/internal/server/config"
	"github.com/mkurent/recipebook/internal/server/repositories/repomanager"
	"github.com/mkurent/recipebook/internal/server/services"
)

func main() {
	if len(os.Args) < 2 || os.Args[1] != "register" {
		fmt.Println("usage: recipectl register [flags]")
		os.Exit(2)
	}

	// strip the subcommand so the config flag parsing sees only flags
	os.Args = append(os.Args[:1], os.Args[2:]...)

	cfg := config.LoadConfig()

	if err := register(context.Background(), cfg); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	fmt.Println("Success!")
}

func register(ctx context.Context, cfg *config.Config) error {

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("db migration error: %w", err)
	}

	us := services.NewUserService(db, rm, cfg.SecretKey, cfg.TokenValidityDuration)

	reader := bufio.NewReader(os.Stdin)

	name, err := cli.GetSimpleText(reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := cli.GetSimpleText(reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := cli.GetPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	confirm, err := cli.GetPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}

	user, err := us.Register(ctx, &services.RegisterUserInput{
		Name:            name,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created user %s (%s)\n", user.ID, user.Email)
	return nil
}
