package quantity

// Combine folds the quantities contributed by several meals in one batch.
// A single quantity is returned unchanged. Quantities sharing one non-empty
// unit are summed; anything else degrades to a multiplicity marker so no
// contributor is silently dropped.
func Combine(quantities []string) string {
	switch len(quantities) {
	case 0:
		return ""
	case 1:
		return quantities[0]
	}

	parsed := make([]Quantity, len(quantities))
	for i, raw := range quantities {
		parsed[i] = Parse(raw)
	}

	unit := parsed[0].Unit
	sameUnit := unit != ""
	var total float64
	for _, q := range parsed {
		if q.Unit != unit {
			sameUnit = false
		}
		total += q.Value
	}
	if sameUnit {
		return format(total, unit)
	}

	return fallback(parsed...)
}

// Merge adds an incoming quantity to the one already on the grocery list.
func Merge(existing, incoming string) string {
	if existing == "" {
		return incoming
	}

	a, b := Parse(existing), Parse(incoming)
	if a.Unit == b.Unit {
		return format(a.Value+b.Value, a.Unit)
	}
	return fallback(a, b)
}

// Subtract removes toRemove from existing. The boolean is false when nothing
// is left and the item should be deleted. Quantities with different units
// cannot be reconciled and existing is returned unchanged.
func Subtract(existing, toRemove string) (string, bool) {
	if existing == "" {
		return "", false
	}

	a, b := Parse(existing), Parse(toRemove)
	if a.Unit != b.Unit {
		return existing, true
	}

	remaining := a.Value - b.Value
	if remaining <= 0 {
		return "", false
	}
	return format(remaining, a.Unit), true
}

// fallback counts contributors. A quantity that already is a multiplicity
// marker counts as its own value.
func fallback(quantities ...Quantity) string {
	var count float64
	for _, q := range quantities {
		if q.Unit == MultiplicityUnit {
			count += q.Value
			continue
		}
		count++
	}
	return format(count, MultiplicityUnit)
}
