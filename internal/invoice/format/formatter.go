package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Amount renders a monetary value as a USD currency string with grouping
// and two-decimal precision, e.g. 1200 -> "$1,200.00".
//
// Every surface that shows or searches an amount goes through this
// function so that searching "1,200" matches what is on screen.
func Amount(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}

	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	lead := len(whole) % 3
	if lead > 0 {
		grouped.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if grouped.Len() > 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteString(whole[i : i+3])
	}

	return sign + "$" + grouped.String() + "." + frac
}

var seqPadRe = regexp.MustCompile(`\{SEQ(\d+)\}`)

// DefaultNumberTemplate matches the INV-YYYY-NNN shape of portal invoice
// numbers.
const DefaultNumberTemplate = "INV-{YYYY}-{SEQ3}"

// Number formats a human-readable invoice number from a template, issue
// time, and monotonic sequence. Deterministic, no side effects.
func Number(template string, issuedAt time.Time, seq int64) (string, error) {
	if template == "" {
		return "", fmt.Errorf("invoice number template is empty")
	}
	if seq <= 0 {
		return "", fmt.Errorf("invalid invoice sequence: %d", seq)
	}

	out := template

	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))

	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))

	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		if len(match) != 2 {
			return m
		}
		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}
		return fmt.Sprintf("%0*d", width, seq)
	})

	if strings.ContainsAny(out, "{}") {
		return "", fmt.Errorf("unresolved token in invoice number template: %s", out)
	}

	return out, nil
}
