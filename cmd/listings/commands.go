package main

import (
	"fmt"
	"strconv"

	"homefinder-listings/internal/models"
	"homefinder-listings/pkg/listings"

	"github.com/spf13/cobra"
)

func newSearchCommand(root *rootOptions) *cobra.Command {
	var spec models.SearchSpec

	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search listings",
		Long: `Search listings by free text, location, price range, type and bedrooms.

Examples:
  listings search baner
  listings search --location 411057 --sort priceLow
  listings search --bedrooms 3+ --price-range 5000000-15000000 --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				spec.Search = args[0]
			}
			client, err := root.client()
			if err != nil {
				return err
			}
			page, err := client.Search(cmd.Context(), spec)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			return newOutput(cmd, root).page(page)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&spec.Location, "location", "", "city, state, zip or address fragment")
	flags.StringVar(&spec.PriceRange, "price-range", "", "price range as min-max or min+")
	flags.StringVar(&spec.PropertyType, "type", "", "property type, e.g. Apartment")
	flags.StringVar(&spec.Bedrooms, "bedrooms", "", "exact bedroom count or N+")
	flags.StringVar(&spec.SortBy, "sort", "", "newest, priceLow or priceHigh")
	flags.IntVar(&spec.Page, "page", 1, "page number")
	flags.IntVar(&spec.Limit, "limit", 0, "page size (default 9)")

	return cmd
}

func newFeaturedCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "Show featured listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.client()
			if err != nil {
				return err
			}
			props, err := client.Featured(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load featured listings: %w", err)
			}
			return newOutput(cmd, root).properties(props)
		},
	}
}

func newShowCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one listing in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid listing id %q", args[0])
			}
			client, err := root.client()
			if err != nil {
				return err
			}
			property, err := client.GetByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to load listing %d: %w", id, err)
			}
			return newOutput(cmd, root).detail(property)
		},
	}
}

// newContactsCommand lists leads. It signs in first since the contacts
// listing is restricted to administrators.
func newContactsCommand(root *rootOptions) *cobra.Command {
	var email, password string
	var page, limit int

	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List contact requests (requires admin login)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if root.Offline {
				return fmt.Errorf("contacts are only available from the API")
			}
			client, err := root.client()
			if err != nil {
				return err
			}
			session := listings.NewSession(listings.NewRemoteAuth(root.APIURL, root.Timeout), client)
			if _, err := session.Login(cmd.Context(), email, password); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			defer session.Logout(cmd.Context())

			contacts := listings.NewRemoteContacts(root.APIURL, root.Timeout, listings.WithTokenSource(session.Token))
			result, err := contacts.List(cmd.Context(), page, limit)
			if err != nil {
				return fmt.Errorf("failed to list contacts: %w", err)
			}
			return newOutput(cmd, root).contacts(result)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&email, "email", "", "admin email")
	flags.StringVar(&password, "password", "", "admin password")
	flags.IntVar(&page, "page", 1, "page number")
	flags.IntVar(&limit, "limit", 0, "page size (default 10)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
