package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/idolcode/internal/client/client"
	"github.com/dmitrijs2005/idolcode/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const authFallback = "An error occurred. Please try again."

// Login prompts for a handle and password and signs in. After a successful
// login the destination remembered by the navigation guard, if any, is
// opened.
func (a *App) Login(ctx context.Context) error {
	return a.authenticate(ctx, false)
}

// Register creates an account. It behaves like Login otherwise.
func (a *App) Register(ctx context.Context) error {
	return a.authenticate(ctx, true)
}

func (a *App) authenticate(ctx context.Context, register bool) error {
	handle, err := getSimpleText(a.reader, "Enter your Codeforces handle", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	call, failed, welcome := a.auth.Login, "Login failed", "Welcome back, %s!"
	if register {
		call, failed, welcome = a.auth.Register, "Registration failed", "Welcome to Idolcode, %s!"
	}

	user, err := call(ctx, handle, password)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			a.fail(common.UserMessage(err))
			return err
		}
		a.fail(fmt.Sprintf("%s: %s", failed, client.Detail(err, authFallback)))
		return err
	}

	a.success(fmt.Sprintf(welcome, user.Handle))
	a.dashboard = nil
	return a.resumeReturnTo(ctx)
}

// resumeReturnTo opens the destination the guard saved before sending the
// user to login.
func (a *App) resumeReturnTo(ctx context.Context) error {
	dest := a.returnTo
	a.returnTo = nil
	if dest == nil {
		return nil
	}
	return a.navigate(ctx, *dest)
}

// Logout forgets the user and the idol, in memory and on disk.
func (a *App) Logout(ctx context.Context) error {
	a.dashboard = nil
	a.returnTo = nil
	if th, ok := a.client.(tokenHolder); ok {
		th.SetToken("")
	}
	if err := a.session.Logout(ctx); err != nil {
		a.logger.Warn(ctx, "logout could not clear local storage", "error", err)
		a.notice("Logged out, but local data could not be cleared.")
		return err
	}
	a.success("Logged out")
	return nil
}

// WhoAmI prints the signed-in user and the selected idol.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		a.println(hintStyle.Render("Not logged in. Use 'login' or 'register'."))
	} else {
		a.println("Logged in as " + titleStyle.Render(u.Handle))
		if exp, ok := client.TokenExpiry(u.Token); ok {
			a.println(dimStyle.Render("Session valid until " + exp.Local().Format("Jan 2, 2006 15:04")))
		}
	}

	if i := a.session.Idol(); i != nil {
		a.println("Coding idol: " + titleStyle.Render(i.Handle) + " " + tierLabel(i.Rating))
	} else {
		a.println(hintStyle.Render("No coding idol selected. Use 'search' and 'pick'."))
	}
	return nil
}

// report prints err following the error taxonomy: validation errors
// inline, transient gateway errors as notices, the rest as failures.
func (a *App) report(err error, fallback string) {
	switch {
	case err == nil, errors.Is(err, context.Canceled):
	case errors.Is(err, common.ErrValidation):
		a.fail(common.UserMessage(err))
	case errors.Is(err, common.ErrBusy):
		a.notice("Still working on the previous request…")
	case errors.Is(err, client.ErrUnavailable):
		a.notice(client.Detail(err, fallback) + " Please try again.")
	default:
		a.fail(client.Detail(err, fallback))
	}
}
