// Command adminctl bootstraps an administrator account. There is no
// self-service route to the admin role, so the first (and any further)
// admin is created from the command line against the live database.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/nikonik/mediavault/internal/common"
	"github.com/nikonik/mediavault/internal/server/auth"
	"github.com/nikonik/mediavault/internal/server/config"
	"github.com/nikonik/mediavault/internal/server/repositories/repomanager"
	"github.com/nikonik/mediavault/internal/server/users"
)

func main() {
	cfg := config.LoadConfig()
	ctx := context.Background()

	repos, err := repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("error connecting to database: %v", err)
	}
	defer repos.Close()

	tokens := auth.NewTokenManager(cfg.SecretKey,
		cfg.AccessTokenValidityDuration, cfg.RefreshTokenValidityDuration)
	svc := users.NewService(repos.Users(), tokens, cfg)

	reader := bufio.NewReader(os.Stdin)

	username, err := prompt(reader, "Admin username: ")
	if err != nil {
		log.Fatalf("error reading username: %v", err)
	}

	email, err := prompt(reader, "Admin email: ")
	if err != nil {
		log.Fatalf("error reading email: %v", err)
	}

	password, err := promptPassword("Admin password: ")
	if err != nil {
		log.Fatalf("error reading password: %v", err)
	}

	admin, err := svc.CreateAdmin(ctx, username, email, password)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			fmt.Println("An account with this email already exists.")
			return
		}
		log.Fatalf("error creating admin: %v", err)
	}

	fmt.Printf("Admin account created: %s (%s)\n", admin.Email, admin.ID)
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	data, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(data), nil
}
