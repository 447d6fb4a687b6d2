// Package cli holds the administrative entrypoints that run instead of the
// HTTP server.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dorazhang07/ladle/internal/db"
	"github.com/dorazhang07/ladle/internal/services"
	"golang.org/x/term"
	"gorm.io/gorm"
)

// CreateSuperuser interactively creates a staff account with full
// privileges. Passwords are read without echo when stdin is a terminal.
func CreateSuperuser(database *gorm.DB, policy services.PasswordPolicy) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read email: %w", err)
	}
	email = strings.TrimSpace(email)

	password, err := promptPassword(reader, "Password: ")
	if err != nil {
		return err
	}
	confirmation, err := promptPassword(reader, "Password (again): ")
	if err != nil {
		return err
	}
	if password != confirmation {
		return errors.New("passwords do not match")
	}

	repositories := db.NewRepositories(database)
	service := services.NewAuthService(repositories.Users, repositories.Tokens, policy)

	user, err := service.RegisterSuperuser(email, password)
	if err != nil {
		return fmt.Errorf("create superuser: %w", err)
	}

	fmt.Printf("Superuser %s created.\n", user.Email)
	return nil
}

func promptPassword(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	// Piped input, e.g. in provisioning scripts.
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
