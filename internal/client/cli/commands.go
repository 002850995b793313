package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/botofarm/internal/client/client"
	"github.com/dmitrijs2005/botofarm/internal/client/models"
	"github.com/dmitrijs2005/botofarm/internal/common"
)

const defaultListLimit = 100

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) report(err error) error {
	switch {
	case errors.Is(err, client.ErrDuplicateLogin):
		printlnFn("User with this login already exists")
	case errors.Is(err, client.ErrUnavailable):
		printlnFn("Server unavailable:", err.Error())
	default:
		printlnFn("Error:", err.Error())
	}
	return err
}

// Create prompts for the account fields and registers the account.
func (a *App) Create(ctx context.Context) error {
	login, err := GetSimpleText(a.reader, "Login (email)", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	projectID, err := GetSimpleText(a.reader, "Project ID (uuid)", a.out)
	if err != nil {
		return err
	}
	env, err := GetSimpleText(a.reader, "Env (prod, preprod, stage)", a.out)
	if err != nil {
		return err
	}
	domain, err := GetSimpleText(a.reader, "Domain (canary, regular; empty for regular)", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	acc, err := a.api.CreateAccount(ctx, models.NewAccount{
		Login:     login,
		Password:  string(password),
		ProjectID: projectID,
		Env:       env,
		Domain:    domain,
	})
	if err != nil {
		return a.report(err)
	}

	printlnFn("Created:", acc.String())
	return nil
}

// List prints a page of accounts. Optional args: skip, limit.
func (a *App) List(ctx context.Context, args []string) error {
	skip, limit := 0, defaultListLimit

	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			printlnFn("Usage: list [skip] [limit]")
			return fmt.Errorf("bad skip %q", args[0])
		}
		skip = v
	}
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 0 {
			printlnFn("Usage: list [skip] [limit]")
			return fmt.Errorf("bad limit %q", args[1])
		}
		limit = v
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	accounts, err := a.api.ListAccounts(ctx, skip, limit)
	if err != nil {
		return a.report(err)
	}

	if len(accounts) == 0 {
		printlnFn("No accounts")
		return nil
	}
	for _, acc := range accounts {
		printlnFn(acc.String())
	}
	return nil
}

func (a *App) Lock(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: lock <id>")
		return errors.New("missing id")
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	res, err := a.api.Lock(ctx, args[0])
	if err != nil {
		return a.report(err)
	}

	if res.Success && res.LockExpiryAt != nil {
		printlnFn(res.Message, "at", *res.LockExpiryAt)
	} else {
		printlnFn(res.Message)
	}
	return nil
}

func (a *App) Unlock(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: unlock <id>")
		return errors.New("missing id")
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	res, err := a.api.Unlock(ctx, args[0])
	if err != nil {
		return a.report(err)
	}

	printlnFn(res.Message)
	return nil
}

// Health checks liveness and readiness of the server.
func (a *App) Health(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.api.Health(ctx); err != nil {
		return a.report(err)
	}
	if err := a.api.Ready(ctx); err != nil {
		printlnFn("Server is up, database is not ready")
		return err
	}

	printlnFn("Server is healthy and ready")
	return nil
}
