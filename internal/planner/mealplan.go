package planner

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

const weekLayout = "2006-01-02"

var (
	ErrInvalidSlot = errors.New("invalid meal slot")
	ErrInvalidWeek = errors.New("invalid week")
)

// Day is a day of the planning week.
type Day string

const (
	Monday    Day = "Mon"
	Tuesday   Day = "Tue"
	Wednesday Day = "Wed"
	Thursday  Day = "Thu"
	Friday    Day = "Fri"
	Saturday  Day = "Sat"
	Sunday    Day = "Sun"
)

// Days lists the days in calendar order.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// MealType is one of the three daily meals.
type MealType string

const (
	Breakfast MealType = "Breakfast"
	Lunch     MealType = "Lunch"
	Dinner    MealType = "Dinner"
)

// MealTypes lists the meals in the order they are eaten.
var MealTypes = []MealType{Breakfast, Lunch, Dinner}

// SlotKey addresses one meal within a week. Its textual form is "Mon-Dinner".
type SlotKey struct {
	Day  Day
	Meal MealType
}

func (k SlotKey) String() string {
	return string(k.Day) + "-" + string(k.Meal)
}

// Valid reports whether both the day and the meal are known.
func (k SlotKey) Valid() bool {
	return indexOf(Days, k.Day) >= 0 && indexOf(MealTypes, k.Meal) >= 0
}

func (k SlotKey) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSlot, k.String())
	}
	return []byte(k.String()), nil
}

func (k *SlotKey) UnmarshalText(text []byte) error {
	parsed, err := ParseSlotKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseSlotKey parses "Mon-Dinner". Day and meal are matched case-insensitively.
func ParseSlotKey(s string) (SlotKey, error) {
	dayPart, mealPart, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return SlotKey{}, fmt.Errorf("%w: %q", ErrInvalidSlot, s)
	}

	var key SlotKey
	for _, d := range Days {
		if strings.EqualFold(string(d), dayPart) {
			key.Day = d
		}
	}
	for _, m := range MealTypes {
		if strings.EqualFold(string(m), mealPart) {
			key.Meal = m
		}
	}
	if !key.Valid() {
		return SlotKey{}, fmt.Errorf("%w: %q", ErrInvalidSlot, s)
	}
	return key, nil
}

// Less orders slots by day, then by meal.
func (k SlotKey) Less(other SlotKey) bool {
	di, dj := indexOf(Days, k.Day), indexOf(Days, other.Day)
	if di != dj {
		return di < dj
	}
	return indexOf(MealTypes, k.Meal) < indexOf(MealTypes, other.Meal)
}

// Week identifies a planning week by its Monday.
type Week struct {
	start time.Time
}

// WeekOf returns the week containing t.
func WeekOf(t time.Time) Week {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return Week{start: day.AddDate(0, 0, -offset)}
}

// ParseWeek accepts any date in the week, formatted as 2006-01-02.
func ParseWeek(s string) (Week, error) {
	t, err := time.Parse(weekLayout, strings.TrimSpace(s))
	if err != nil {
		return Week{}, fmt.Errorf("%w: %q", ErrInvalidWeek, s)
	}
	return WeekOf(t), nil
}

// Start returns the Monday of the week.
func (w Week) Start() time.Time { return w.start }

// Next returns the following week.
func (w Week) Next() Week { return Week{start: w.start.AddDate(0, 0, 7)} }

// IsZero reports whether w was never set.
func (w Week) IsZero() bool { return w.start.IsZero() }

func (w Week) String() string { return w.start.Format(weekLayout) }

func (w Week) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

func (w *Week) UnmarshalText(text []byte) error {
	parsed, err := ParseWeek(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// GetNextMonday returns the Monday after t, at midnight UTC.
func GetNextMonday(t time.Time) time.Time {
	return WeekOf(t).Next().Start()
}

// WeekPlan maps each assigned slot to a recipe name.
type WeekPlan map[SlotKey]string

// Slots returns the assigned slots in calendar order. Slots holding an empty
// recipe name count as unassigned.
func (p WeekPlan) Slots() []SlotKey {
	keys := make([]SlotKey, 0, len(p))
	for k, recipe := range p {
		if recipe == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Clone returns a copy without unassigned slots.
func (p WeekPlan) Clone() WeekPlan {
	out := make(WeekPlan, len(p))
	for k, recipe := range p {
		if recipe != "" {
			out[k] = recipe
		}
	}
	return out
}

// Equal compares two plans slot for slot.
func (p WeekPlan) Equal(other WeekPlan) bool {
	a, b := p.Clone(), other.Clone()
	if len(a) != len(b) {
		return false
	}
	for k, recipe := range a {
		if b[k] != recipe {
			return false
		}
	}
	return true
}

func indexOf[T comparable](list []T, v T) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return -1
}
