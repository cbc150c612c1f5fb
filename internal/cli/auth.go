package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/polymap/internal/common"
	"github.com/dmitrijs2005/polymap/internal/session"
)

// Register prompts for the registration form and creates the account. It
// does not log the new account in. Rejections are printed; only input
// errors are returned. Both password buffers are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter e-mail", a.out)
	if err != nil {
		return err
	}
	taxID, err := getSimpleText(a.reader, "Enter CPF", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	err = a.auth.Register(ctx, session.RegisterRequest{
		Name:     name,
		Email:    email,
		TaxID:    taxID,
		Password: password,
		Confirm:  confirm,
	})
	if err != nil {
		fmt.Fprintln(a.out, session.Message(err))
		return nil
	}

	fmt.Fprintln(a.out, "Account created, you can log in now")
	return nil
}

// Login prompts for CPF and password, authenticates and opens the editor on
// the account. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	taxID, err := getSimpleText(a.reader, "Enter CPF", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, taxID, password); err != nil {
		fmt.Fprintln(a.out, session.Message(err))
		return nil
	}

	if !a.editor.Open(ctx) {
		fmt.Fprintln(a.out, session.Message(common.ErrInternal))
		return nil
	}
	fmt.Fprintf(a.out, "Welcome, %s\n", a.editor.Owner())
	return nil
}

// Logout ends the session. The editor is closed even when the logout could
// not be saved, so no draft survives it.
func (a *App) Logout(ctx context.Context) error {
	err := a.auth.Logout(ctx)
	a.editor.Close()
	if err != nil {
		fmt.Fprintln(a.out, session.Message(err))
		return nil
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	acc, ok := a.auth.CheckAuth(ctx)
	if !ok {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> CPF %s, %d polygon(s)\n", acc.Name, acc.Email, acc.TaxID, len(acc.Polygons))
	return nil
}
