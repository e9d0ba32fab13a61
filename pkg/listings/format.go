package listings

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	lakh  = 100_000
	crore = 10_000_000
)

var inr = message.NewPrinter(language.MustParse("en-IN"))

// ResolveImageURL turns a stored image reference into a URL a browser can
// load. Empty references stay empty; data URLs and absolute http(s) URLs are
// returned unchanged; anything else is a file served by the API.
func ResolveImageURL(apiURL, ref string) string {
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "data:image/"), strings.HasPrefix(ref, "http"):
		return ref
	default:
		return strings.TrimRight(apiURL, "/") + "/files/" + ref
	}
}

// FormatPrice renders a rupee amount: plain digits below one lakh, then
// lakhs and crores with two decimals.
func FormatPrice(price float64) string {
	switch {
	case price < lakh:
		return "₹" + inr.Sprint(number.Decimal(price, number.MaxFractionDigits(0)))
	case price < crore:
		return fmt.Sprintf("₹%.2f Lakh", price/lakh)
	default:
		return fmt.Sprintf("₹%.2f Crore", price/crore)
	}
}
