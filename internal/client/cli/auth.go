package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/furnistore/internal/common"
	"github.com/dmitrijs2005/furnistore/internal/session"
)

// Register prompts for name, email, phone and password and creates an
// account, which also signs it in. The password is wiped before returning.
func (a *App) Register(ctx context.Context, args []string) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone (optional)", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	_, err = a.stores.Register(ctx, session.Registration{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: string(password),
	})
	return err
}

// Login prompts for credentials. The outcome is reported through the
// notification queue.
func (a *App) Login(ctx context.Context, args []string) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Already signed in; logout first.")
		return nil
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

	_, err = a.stores.Login(ctx, session.Credentials{Email: email, Password: string(password)})
	return err
}

func (a *App) Logout(ctx context.Context, args []string) error {
	a.stores.Session.Logout(ctx)
	a.stores.Notices.Info("Signed out", "")
	return nil
}

func (a *App) Whoami(ctx context.Context, args []string) error {
	id, ok := a.stores.Session.Identity()
	if !ok {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	fmt.Fprintln(a.out, formatIdentity(id))
	return nil
}

// Profile updates one identity field: profile <name|email|phone> <value>.
func (a *App) Profile(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	value := strings.Join(args[1:], " ")

	var patch session.ProfilePatch
	switch args[0] {
	case "name":
		patch.Name = &value
	case "email":
		patch.Email = &value
	case "phone":
		patch.Phone = &value
	default:
		return errUsage
	}

	if !a.stores.Session.UpdateProfile(ctx, patch) {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	a.stores.Notices.Success("Profile updated", "")
	return nil
}
