package formula

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// placeholderRe matches {{ expression }} placeholders, non-greedily so
// multiple placeholders on one line stay separate.
var placeholderRe = regexp.MustCompile(`\{\{(.*?)\}\}`)

// Render substitutes every {{ expression }} placeholder in the template
// with its evaluated value. The first failing placeholder aborts the whole
// render: a partially substituted document must never reach a customer.
func Render(template string, vars Scalars) (string, error) {
	var renderErr error

	out := placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		if renderErr != nil {
			return match
		}
		expr := strings.TrimSpace(placeholderRe.FindStringSubmatch(match)[1])
		v, err := Eval(expr, vars)
		if err != nil {
			renderErr = fmt.Errorf("placeholder %q: %w", expr, err)
			return match
		}
		return FormatValue(v)
	})

	if renderErr != nil {
		return "", renderErr
	}
	return out, nil
}

// FormatValue renders a scalar the way it appears in documents: whole
// numbers without a decimal point, fractions with up to two places.
func FormatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
