package cli

import (
	"context"
	"fmt"

	"authd/internal/client/api"
	"authd/internal/common"
)

// Register prompts for profile fields and creates a new account.
//
// On success it prints the echoed profile and returns nil. The password
// byte slice is securely wiped before returning. Any I/O or API error is
// returned unchanged.
func (a *App) Register(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Enter login", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	isPublic, err := GetYesNo(a.reader, "Make profile public?", a.out)
	if err != nil {
		return err
	}

	phone, err := getSimpleText(a.reader, "Enter phone (optional)", a.out)
	if err != nil {
		return err
	}

	profile, err := a.api.Register(ctx, api.RegisterRequest{
		Login:    login,
		Email:    email,
		Password: string(password),
		IsPublic: isPublic,
		Phone:    phone,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered: %s <%s>\n", profile.Login, profile.Email)
	return nil
}

// Login prompts for credentials, signs in and stores the bearer token for
// the session. The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Enter login", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.SignIn(ctx, login, string(password))
	if err != nil {
		return err
	}

	a.token = token
	fmt.Fprintln(a.out, "Login successful")
	fmt.Fprintf(a.out, "Token: %s\n", token)
	return nil
}

// Logout invalidates every session of the current account and drops the
// stored token.
func (a *App) Logout(ctx context.Context) error {
	if a.token == "" {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	if err := a.api.SignOut(ctx, a.token); err != nil {
		return err
	}

	a.token = ""
	fmt.Fprintln(a.out, "Logged out everywhere")
	return nil
}

// Ping checks whether the server is reachable.
func (a *App) Ping(ctx context.Context) error {
	if err := a.api.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Server is up")
	return nil
}
