package main

import (
	"fmt"
	"os"
	"time"

	"homefinder-listings/internal/fixtures"
	"homefinder-listings/internal/repositories"
	"homefinder-listings/internal/services"
	"homefinder-listings/internal/transformers"
	"homefinder-listings/internal/validators"
	"homefinder-listings/pkg/config"
	"homefinder-listings/pkg/listings"
	"homefinder-listings/pkg/logger"

	"github.com/spf13/cobra"
)

const retryBackoff = 200 * time.Millisecond

var validFormats = []string{"text", "json"}

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	APIURL   string
	Format   string
	Timeout  time.Duration
	Retries  int
	Offline  bool
	Fixtures string
	Verbose  bool
}

func newRootCommand() *cobra.Command {
	defaults, err := config.LoadConfig("")
	if err != nil {
		defaults = config.Default()
	}
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "listings",
		Short: "Browse HomeFinder property listings",
		Long: `Query the HomeFinder listings API from the terminal.

Reads go to the API given by --api. When it cannot be reached the
bundled fixtures answer instead, so search keeps working offline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
			}
			level := "ERROR"
			if opts.Verbose {
				level = "DEBUG"
			}
			logger.InitLogger(os.Stderr, level)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.APIURL, "api", defaults.Client.APIURL, "base URL of the listings API")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.DurationVar(&opts.Timeout, "timeout", defaults.Client.Timeout, "per-request timeout")
	flags.IntVar(&opts.Retries, "retries", 1, "attempts for each read request")
	flags.BoolVar(&opts.Offline, "offline", false, "answer from the bundled fixtures without calling the API")
	flags.StringVar(&opts.Fixtures, "fixtures", defaults.Storage.FixturesPath, "property fixtures file used offline")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log requests and fallbacks to stderr")

	cmd.AddCommand(newSearchCommand(opts))
	cmd.AddCommand(newFeaturedCommand(opts))
	cmd.AddCommand(newShowCommand(opts))
	cmd.AddCommand(newContactsCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}

// client builds the read path: the remote API with the fixtures as
// fallback, or the fixtures alone when offline.
func (o *rootOptions) client() (*listings.Client, error) {
	local, err := o.localStore()
	if err != nil {
		return nil, err
	}
	if o.Offline {
		return listings.NewClient(local), nil
	}
	remote := listings.NewRemoteStore(o.APIURL, o.Timeout, listings.WithRetries(o.Retries, retryBackoff))
	return listings.NewClient(remote, listings.WithFallback(local)), nil
}

func (o *rootOptions) localStore() (*services.PropertyService, error) {
	props, err := fixtures.LoadProperties(o.Fixtures)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixtures: %w", err)
	}
	return services.NewPropertyService(
		repositories.NewMemoryPropertyRepository(props),
		validators.NewPropertyValidator(),
		transformers.NewPropertyTransformer(nil),
	), nil
}
