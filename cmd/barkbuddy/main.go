package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barkbuddy/internal/client/api"
	"barkbuddy/internal/client/profile"
	"barkbuddy/internal/client/store"
	"barkbuddy/internal/client/view"

	"github.com/spf13/cobra"
)

var (
	profilePath string
	apiURL      string
	token       string
	debugUser   string
	timeout     time.Duration
)

// app se arma en PersistentPreRunE y lo comparten todos los subcomandos.
type app struct {
	profile *profile.Profile
	client  *api.Client
	store   *store.Store
	view    *view.Renderer
}

var cli = &app{view: view.NewRenderer(os.Stdout, os.Stderr)}

var rootCmd = &cobra.Command{
	Use:   "barkbuddy",
	Short: "BarkBuddy - catalog the dogs you meet",
	Long: `barkbuddy talks to a BarkBuddy API server.

Authentication uses, in order: --token / BARKBUDDY_TOKEN, the OAuth client
credentials in the profile, or --user (only for servers in dev mode).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		p, err := profile.Load(profilePath)
		if err != nil {
			return err
		}
		if apiURL != "" {
			p.APIURL = apiURL
		}
		if token != "" {
			p.Token = token
		}
		if debugUser != "" {
			p.DebugUserID = debugUser
		}
		if timeout > 0 {
			p.Timeout = timeout.String()
		}

		opts := api.Options{
			BaseURL:     p.APIURL,
			Timeout:     p.HTTPTimeout(),
			Token:       p.Token,
			DebugUserID: p.DebugUserID,
		}
		if p.OAuth.Enabled() {
			opts.OAuth = &api.OAuthConfig{
				ClientID:     p.OAuth.ClientID,
				ClientSecret: p.OAuth.ClientSecret,
				TokenURL:     p.OAuth.TokenURL,
				Audience:     p.OAuth.Audience,
				Scopes:       p.OAuth.Scopes,
			}
		}
		c, err := api.New(cmd.Context(), opts)
		if err != nil {
			return err
		}

		cli.profile = p
		cli.client = c
		cli.store = store.New()
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the local profile",
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write the current settings (flags included) to the profile file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.profile.Save(profilePath); err != nil {
			return err
		}
		cli.view.Success("profile saved to " + profilePath)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", profile.DefaultPath(), "profile file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (overrides the profile)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "bearer token")
	rootCmd.PersistentFlags().StringVar(&debugUser, "user", "", "user id sent as X-Debug-User-ID (dev servers only)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "HTTP timeout")

	configCmd.AddCommand(configSaveCmd)
	rootCmd.AddCommand(configCmd, dogsCmd, sightingsCmd, breedsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cli.view.Error(err)
		stop()
		os.Exit(1)
	}
}

func requireArgs(n int, what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("expected %s", what)
		}
		return nil
	}
}
