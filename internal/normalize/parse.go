// Package normalize converts decoded tabular rows into domain records.
// Cell values are parsed permissively: native spreadsheet values first,
// then invariant text layouts, then Polish ones.
package normalize

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/jpkgen/jpk_wb_app/internal/tabular"
)

var invariantDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
}

var polishDateLayouts = []string{
	"02.01.2006",
	"02.01.2006 15:04:05",
	"2.1.2006",
	"02-01-2006",
}

// serialDateEpoch is the workbook serial-date epoch. Day 1 is 1899-12-31,
// with the historical leap-year-1900 offset already folded in.
var serialDateEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ParseDate extracts a calendar date from a cell. It returns nil when the
// cell is empty or no known representation matches.
func ParseDate(c tabular.Cell) *time.Time {
	switch c.Kind {
	case tabular.KindDate:
		t := c.Time
		return &t
	case tabular.KindNumber:
		if c.Number <= 0 {
			return nil
		}
		t := serialDateEpoch.AddDate(0, 0, int(math.Floor(c.Number)))
		return &t
	}

	text := strings.TrimSpace(c.Text)
	if text == "" {
		return nil
	}
	for _, layout := range invariantDateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return &t
		}
	}
	for _, layout := range polishDateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return &t
		}
	}
	return nil
}

// invariantGroupedPattern matches amounts with comma thousand grouping and
// an optional dot decimal part, e.g. "1,234.56" or "1,234,567". A lone
// comma followed by fewer than three digits does not match and stays a
// candidate for the Polish decimal separator.
var invariantGroupedPattern = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)

// ParseDecimal extracts an exact decimal amount from a cell. Text values are
// tried with the invariant convention first (dot decimal separator, comma
// grouping), then with the Polish one (comma separator, dot or space
// grouping). Returns nil when the cell is empty or unparseable.
func ParseDecimal(c tabular.Cell) *decimal.Decimal {
	if c.Kind == tabular.KindNumber {
		if c.Raw != "" {
			if d, err := decimal.NewFromString(c.Raw); err == nil {
				return &d
			}
		}
		d := decimal.NewFromFloat(c.Number)
		return &d
	}

	text := strings.TrimSpace(c.Text)
	if text == "" {
		return nil
	}
	text = stripSpaces(text)

	if d, err := decimal.NewFromString(text); err == nil {
		return &d
	}
	if invariantGroupedPattern.MatchString(text) {
		if d, err := decimal.NewFromString(strings.ReplaceAll(text, ",", "")); err == nil {
			return &d
		}
	}
	if strings.Count(text, ",") == 1 {
		polish := strings.ReplaceAll(text, ".", "")
		polish = strings.ReplaceAll(polish, ",", ".")
		if d, err := decimal.NewFromString(polish); err == nil {
			return &d
		}
	}
	return nil
}

// stripSpaces removes every whitespace rune, including the non-breaking
// spaces bank exports use for digit grouping.
func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
