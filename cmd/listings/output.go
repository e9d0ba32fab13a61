package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"homefinder-listings/internal/models"
	"homefinder-listings/pkg/listings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type output struct {
	w      io.Writer
	json   bool
	apiURL string
}

func newOutput(cmd *cobra.Command, root *rootOptions) *output {
	return &output{w: cmd.OutOrStdout(), json: root.Format == "json", apiURL: root.APIURL}
}

func (o *output) encode(v interface{}) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (o *output) page(page models.Page[models.Property]) error {
	if o.json {
		return o.encode(page)
	}
	if len(page.Data) == 0 {
		fmt.Fprintln(o.w, "No properties match your search.")
		return nil
	}
	for i := range page.Data {
		o.summary(&page.Data[i])
	}
	fmt.Fprintf(o.w, "Page %d of %d (%d properties)\n", page.Page, max(page.TotalPages, 1), page.Total)
	return nil
}

func (o *output) properties(props []models.Property) error {
	if o.json {
		return o.encode(props)
	}
	for i := range props {
		o.summary(&props[i])
	}
	return nil
}

func (o *output) summary(p *models.Property) {
	fmt.Fprintf(o.w, "#%d  %s  [%s]\n", p.ID, p.Title, statusLabel(p))
	fmt.Fprintf(o.w, "    %s, %s, %s %s\n", p.Address, p.City, p.State, p.Zip)
	fmt.Fprintf(o.w, "    %s | %d bd | %d ba | %d sq ft | %s\n",
		listings.FormatPrice(p.Price), p.Bedrooms, p.Bathrooms, p.SquareFootage, p.PropertyType)
}

func (o *output) detail(p *models.Property) error {
	if o.json {
		return o.encode(p)
	}
	o.summary(p)
	if p.Description != "" {
		fmt.Fprintf(o.w, "\n    %s\n", p.Description)
	}
	if p.VideoLink != "" {
		fmt.Fprintf(o.w, "\n    Video: %s\n", p.VideoLink)
	}
	if len(p.Images) > 0 {
		fmt.Fprintln(o.w, "\n    Images:")
		for _, ref := range p.Images {
			fmt.Fprintf(o.w, "      %s\n", listings.ResolveImageURL(o.apiURL, ref))
		}
	}
	return nil
}

func (o *output) contacts(page models.Page[models.Contact]) error {
	if o.json {
		return o.encode(page)
	}
	for _, c := range page.Data {
		fmt.Fprintf(o.w, "#%d  %s <%s>  [%s]  %s\n", c.ID, c.Name, c.Email, c.Status, c.CreatedAt.Format("2006-01-02"))
		if c.PropertyTitle != "" {
			fmt.Fprintf(o.w, "    Re: %s\n", c.PropertyTitle)
		}
		fmt.Fprintf(o.w, "    %s\n", strings.TrimSpace(c.Message))
	}
	fmt.Fprintf(o.w, "Page %d of %d (%d contacts)\n", page.Page, max(page.TotalPages, 1), page.Total)
	return nil
}

func statusLabel(p *models.Property) string {
	if p.IsAvailable() {
		return color.GreenString(string(models.StatusAvailable))
	}
	return color.RedString(string(p.Status))
}
