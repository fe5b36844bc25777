package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/skilllink/skilllink/internal/client/models"
	"github.com/skilllink/skilllink/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts the user for an email, a password, and a username, then
// attempts to create a new account. The username travels as signup metadata
// so the backend can seed the profile row.
//
// Some projects require email confirmation before the first sign-in; in that
// case no session is returned and the user is told to check their inbox.
// The password byte slice is wiped before returning.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	var metadata map[string]any
	if username != "" {
		metadata = map[string]any{"username": username}
	}

	session, user, err := a.sessions.Signup(ctx, email, string(password), metadata)
	if err != nil {
		return err
	}

	if session == nil {
		fmt.Printf("Account created for %s. Check your inbox to confirm the address, then log in.\n", user.Email)
		return nil
	}

	a.email = user.Email
	fmt.Println("Success! You are now logged in.")
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
// On success the prompt switches to the logged-in state showing the email.
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.sessions.Login(ctx, email, string(password)); err != nil {
		return err
	}

	a.email = email
	fmt.Println("Login successful")
	return nil
}

// Logout revokes the current session and clears the prompt state.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}
	a.email = ""
	fmt.Println("Logged out")
	return nil
}

// Whoami prints the authenticated user's identity as the backend sees it.
func (a *App) Whoami(ctx context.Context) error {
	user, err := a.sessions.GetCurrentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("ID:    %s\nEmail: %s\n", user.ID, user.Email)
	if username, ok := user.Metadata["username"].(string); ok && username != "" {
		fmt.Printf("Name:  %s\n", username)
	}
	return nil
}

// ChangePassword sets a new password on the authenticated user's auth
// record. The password is wiped before returning.
func (a *App) ChangePassword(ctx context.Context) error {
	fmt.Println("Choose a new password.")
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.sessions.UpdateUser(ctx, models.UserUpdate{Password: string(password)}); err != nil {
		return err
	}
	fmt.Println("Password changed")
	return nil
}

// ResetPassword asks for an email and requests a password recovery mail.
// It works both logged in and logged out and never reveals whether the
// address exists.
func (a *App) ResetPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email for password recovery", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.sessions.RequestPasswordReset(ctx, email); err != nil {
		return err
	}
	fmt.Println("If the address is registered, a recovery link is on its way.")
	return nil
}
