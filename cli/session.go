// ABOUTME: Session CLI commands
// ABOUTME: Login, logout, whoami, and profile updates
package cli

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"crmdeck/store"
)

// LoginCommand signs in. The password is prompted for but never checked; the
// user record is fabricated from the email address.
func LoginCommand(s *store.SessionStore, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Email address (required)")
	_ = fs.Parse(args)

	if *email == "" {
		return fmt.Errorf("--email is required")
	}

	fmt.Print("Password: ")
	var password string
	if term.IsTerminal(syscall.Stdin) {
		passwordBytes, err := term.ReadPassword(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = string(passwordBytes)
	} else {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	fmt.Println("Signing in...")
	user, err := s.Login(*email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Printf("✓ Signed in as %s <%s> (%s)\n", user.Name, user.Email, user.Role)
	return nil
}

// LogoutCommand clears the session.
func LogoutCommand(s *store.SessionStore, _ []string) error {
	if err := s.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	fmt.Println("✓ Signed out")
	return nil
}

// WhoamiCommand prints the current user.
func WhoamiCommand(s *store.SessionStore, _ []string) error {
	user := s.Current()
	if user == nil {
		fmt.Println("Not signed in")
		return nil
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	fmt.Printf("Role: %s\n", user.Role)
	fmt.Printf("ID: %s\n", user.ID)
	return nil
}

// UpdateProfileCommand merges partial fields into the current user.
func UpdateProfileCommand(s *store.SessionStore, args []string) error {
	fs := flag.NewFlagSet("update-profile", flag.ExitOnError)
	name := fs.String("name", "", "New display name")
	avatar := fs.String("avatar", "", "New avatar URL")
	_ = fs.Parse(args)

	patch := store.UserPatch{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "avatar":
			patch.Avatar = avatar
		}
	})

	if err := s.UpdateUser(patch); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	if user := s.Current(); user != nil {
		fmt.Printf("✓ Profile updated: %s\n", user.Name)
	} else {
		fmt.Println("Not signed in; nothing updated")
	}
	return nil
}
