// Package fare totals the transport costs of a plan's access legs.
package fare

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/width"

	"github.com/vbonduro/trailplan/internal/domain"
)

var printer = message.NewPrinter(language.Japanese)

// Parse reads a cost such as "4,130円" or "¥500". Full-width digits are
// accepted. Text after the leading run of digits is ignored, so "1,200円（片道）"
// is 1200. A cost with no leading digits is 0.
func Parse(cost string) int {
	s := width.Narrow.String(strings.TrimSpace(cost))
	s = strings.TrimPrefix(s, "¥")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "円")

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// Sum adds the parsed costs.
func Sum(costs ...string) int {
	total := 0
	for _, c := range costs {
		total += Parse(c)
	}
	return total
}

// Total is the one-way cost of the legs. Legs without a cost count as 0.
func Total(legs []domain.AccessItem) int {
	total := 0
	for _, leg := range legs {
		total += Parse(leg.Cost)
	}
	return total
}

func RoundTrip(oneWay int) int {
	return oneWay * 2
}

// Format renders n yen with thousands separators, e.g. "4,630円".
func Format(n int) string {
	return printer.Sprintf("%d円", n)
}
