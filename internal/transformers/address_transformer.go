package transformers

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type addressTransformer struct {
	title cases.Caser
}

func NewAddressTransformer() AddressTransformer {
	return &addressTransformer{title: cases.Title(language.English)}
}

// NormalizeAddressComponent trims the input and collapses inner runs of whitespace.
func (t *addressTransformer) NormalizeAddressComponent(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

// NormalizePlaceName title-cases a city or state name.
func (t *addressTransformer) NormalizePlaceName(input string) string {
	input = t.NormalizeAddressComponent(input)
	if input == "" {
		return ""
	}
	return t.title.String(input)
}

func (t *addressTransformer) NormalizeZip(input string) string {
	return strings.Join(strings.Fields(input), "")
}
