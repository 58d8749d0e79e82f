// Command geobooks is a terminal client for the GeoBooks library service,
// built on the pkg/geobooks data-access layer.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/geobooks/library-system/pkg/geobooks"
)

type cliConfig struct {
	APIURL      string `env:"GEOBOOKS_API_URL"`
	ImgbbAPIKey string `env:"IMGBB_API_KEY"`
}

type app struct {
	cfg    cliConfig
	client *geobooks.Client
}

func main() {
	ctx := context.Background()

	var cfg cliConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	a := &app{cfg: cfg}
	a.client = geobooks.New(cfg.APIURL, geobooks.WithToken(loadSession()))

	root := &cobra.Command{
		Use:           "geobooks",
		Short:         "GeoBooks library client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		a.signupCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.booksCmd(),
		a.borrowCmd(),
		a.returnCmd(),
		a.myBorrowsCmd(),
		a.openBorrowsCmd(),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

// renderError keeps the taxonomy visible at the terminal: field errors
// inline, backend errors with their category.
func renderError(err error) string {
	if fe, ok := geobooks.IsFormError(err); ok {
		out := "invalid input:"
		for field, msg := range fe.Fields {
			out += fmt.Sprintf("\n  %s %s", field, msg)
		}
		return out
	}
	switch {
	case geobooks.IsUnauthorized(err):
		return "not signed in (run `geobooks login`): " + err.Error()
	case geobooks.IsNotFound(err):
		return "not found: " + err.Error()
	case geobooks.IsPreconditionFailed(err):
		return "rejected: " + err.Error()
	}
	return err.Error()
}
