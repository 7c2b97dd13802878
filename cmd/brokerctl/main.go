// brokerctl is an operator CLI for the identity broker. It exercises the
// brokerclient library: site status, user lookups, deactivation and a bulk
// export of users with their MFA and recovery-method state.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"go.uber.org/ratelimit"

	"github.com/identops/brokerclient"
)

func main() {
	parseFlags()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !verbose {
		log = log.Level(zerolog.InfoLevel)
	}

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("brokerctl")
	}
}

func run(log zerolog.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	client, err := brokerclient.New(ctx, brokerclient.Config{
		BaseURL:             cfg.BaseURL,
		AccessToken:         cfg.AccessToken,
		TrustedIPRanges:     cfg.TrustedIPRanges,
		InsecureSkipIPCheck: cfg.SkipIPCheck,
		Timeout:             cfg.Timeout,
	}, brokerclient.WithLogger(log))
	if err != nil {
		return err
	}

	switch cmd := pflag.Arg(0); cmd {
	case "status":
		status, err := client.SiteStatus(ctx)
		if err != nil {
			return err
		}
		fmt.Println(status)
		return nil
	case "get-user":
		return getUser(ctx, client, pflag.Arg(1))
	case "list-users":
		return listUsers(ctx, client)
	case "deactivate":
		if pflag.Arg(1) == "" {
			return fmt.Errorf("deactivate requires an employee id")
		}
		return client.DeactivateUser(ctx, pflag.Arg(1))
	case "export":
		return export(ctx, client, log, cfg.RateLim)
	default:
		return fmt.Errorf("unknown command %q, want status, get-user, list-users, deactivate or export", cmd)
	}
}

func getUser(ctx context.Context, client *brokerclient.Client, employeeID string) error {
	if employeeID == "" {
		return fmt.Errorf("get-user requires an employee id")
	}

	user, err := client.GetUser(ctx, employeeID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("no user with employee id %q", employeeID)
	}

	return json.NewEncoder(os.Stdout).Encode(user)
}

func listUsers(ctx context.Context, client *brokerclient.Client) error {
	users, err := client.ListUsers(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	for _, u := range users {
		if err := enc.Encode(u); err != nil {
			return err
		}
	}

	return nil
}

// export writes one JSON line per user, joined with the user's MFA and
// recovery-method state. The per-user lookups fan out across workers,
// throttled to cfg.RateLim requests per second.
func export(ctx context.Context, client *brokerclient.Client, log zerolog.Logger, rateLim int) error {
	users, err := client.ListUsers(ctx)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	enc := json.NewEncoder(os.Stdout)

	tasks := make([]func() error, 0, len(users))
	for _, u := range users {
		u := u
		tasks = append(tasks, func() error {
			id, _ := u["employee_id"].(string)
			if id == "" {
				return fmt.Errorf("user record without employee_id: %v", u)
			}

			mfa, err := client.MFAList(ctx, id)
			if err != nil {
				return err
			}

			methods, err := client.ListRecoveryMethods(ctx, id)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			return enc.Encode(map[string]any{
				"user":             u,
				"mfa":              mfa,
				"recovery_methods": methods,
			})
		})
	}

	errs := fanout(tasks, runtime.NumCPU(), ratelimit.New(rateLim))
	for _, err := range errs {
		log.Error().Err(err).Msg("export")
	}
	if len(errs) > 0 {
		return fmt.Errorf("export finished with %d failed users", len(errs))
	}

	return nil
}
