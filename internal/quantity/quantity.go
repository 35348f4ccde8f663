package quantity

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MultiplicityUnit is the unit of the fallback marker used when quantities
// with different units have to be reported together, e.g. "3x servings".
const MultiplicityUnit = "x servings"

var (
	leadingNumber = regexp.MustCompile(`^(\d+(?:\.\d+)?)(?:\s*/\s*(\d+(?:\.\d+)?))?\s*(.*)$`)
	mixedNumber   = regexp.MustCompile(`^(\d+)\s+(\d+)\s*/\s*(\d+)\s*(.*)$`)
)

// Quantity is a structured amount parsed from free text such as "1/2 cup".
type Quantity struct {
	Value float64
	Unit  string
}

// String formats the quantity the way grocery items store it.
func (q Quantity) String() string {
	return format(q.Value, q.Unit)
}

// Parse reads a leading number (integer, decimal, a/b fraction or a mixed
// number like "1 1/2") and an
// optional trailing unit. When no number is found the whole string becomes
// the unit with a value of 1, so descriptors like "Salt to taste" survive.
func Parse(raw string) Quantity {
	q, _ := ParseStrict(raw)
	return q
}

// ParseStrict behaves like Parse but also reports whether a leading number
// was found.
func ParseStrict(raw string) (Quantity, bool) {
	trimmed := strings.TrimSpace(raw)
	if m := mixedNumber.FindStringSubmatch(trimmed); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		num, _ := strconv.ParseFloat(m[2], 64)
		denom, _ := strconv.ParseFloat(m[3], 64)
		if denom != 0 {
			return Quantity{Value: whole + num/denom, Unit: strings.TrimSpace(m[4])}, true
		}
	}

	m := leadingNumber.FindStringSubmatch(trimmed)
	if m == nil {
		return Quantity{Value: 1, Unit: trimmed}, false
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Quantity{Value: 1, Unit: trimmed}, false
	}
	if m[2] != "" {
		denom, err := strconv.ParseFloat(m[2], 64)
		if err != nil || denom == 0 {
			return Quantity{Value: 1, Unit: trimmed}, false
		}
		value /= denom
	}

	return Quantity{Value: value, Unit: strings.TrimSpace(m[3])}, true
}

func format(value float64, unit string) string {
	var num string
	if value == math.Trunc(value) {
		num = strconv.FormatFloat(value, 'f', 0, 64)
	} else {
		// Halves round away from zero: 0.25 formats as 0.3.
		num = strconv.FormatFloat(math.Round(value*10)/10, 'f', 1, 64)
	}

	switch unit {
	case "":
		return num
	case MultiplicityUnit:
		return num + unit
	default:
		return num + " " + unit
	}
}
