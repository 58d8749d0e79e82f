package main

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/geobooks/library-system/pkg/geobooks"
)

// readPassword reads a password with terminal echo disabled.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(bytePassword)), nil
}

func (a *app) signupCmd() *cobra.Command {
	var name, roll string

	cmd := &cobra.Command{
		Use:   "signup <email>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword("Password (min 6 characters): ")
			if err != nil {
				return err
			}

			provider := geobooks.NewSessionProvider(cmd.Context(), a.client)
			defer provider.Close()

			identity, err := provider.SignUp(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}

			if err := saveSession(a.client.SessionCookie()); err != nil {
				return err
			}

			// A profile record makes the account borrowable by roll.
			if name != "" && roll != "" {
				if _, err := a.client.CreateUser(cmd.Context(), geobooks.ProfileForm{
					Name:  name,
					Roll:  roll,
					Email: identity.Email,
				}); err != nil {
					return err
				}
			}

			fmt.Printf("signed up as %s\n", identity.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name for the profile record")
	cmd.Flags().StringVar(&roll, "roll", "", "roll identifier for the profile record")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}

			provider := geobooks.NewSessionProvider(cmd.Context(), a.client)
			defer provider.Close()

			identity, err := provider.SignIn(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}

			if err := saveSession(a.client.SessionCookie()); err != nil {
				return err
			}

			fmt.Printf("signed in as %s\n", identity.Email)
			return nil
		},
	}
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Logout(cmd.Context()); err != nil {
				return err
			}
			clearSession()
			fmt.Println("signed out")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session and navigation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}

			state := geobooks.SessionState{User: identity, Loading: false}
			nav, err := geobooks.NewNavComposer(a.client).Compose(cmd.Context(), state)
			if err != nil {
				return err
			}

			fmt.Printf("signed in as %s\n", identity.Email)
			for _, link := range nav.Top {
				fmt.Printf("  %-12s %s\n", link.Label, link.Path)
			}
			for _, link := range nav.Dashboard {
				fmt.Printf("  %-12s %s\n", link.Label, link.Path)
			}
			return nil
		},
	}
}
