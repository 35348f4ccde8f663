package planner

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseSlotKey(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		key, err := ParseSlotKey("mon-dinner")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if key != (SlotKey{Day: Monday, Meal: Dinner}) {
			t.Errorf("Unexpected key %+v", key)
		}
		if key.String() != "Mon-Dinner" {
			t.Errorf("Expected 'Mon-Dinner', got '%s'", key.String())
		}
	})

	for _, raw := range []string{"", "Mon", "Funday-Lunch", "Mon-Brunch"} {
		t.Run("Invalid "+raw, func(t *testing.T) {
			_, err := ParseSlotKey(raw)
			if !errors.Is(err, ErrInvalidSlot) {
				t.Errorf("Expected ErrInvalidSlot for %q, got %v", raw, err)
			}
		})
	}
}

func TestWeekPlanJSON(t *testing.T) {
	plan := WeekPlan{
		{Day: Monday, Meal: Breakfast}: "Oatmeal with Berries",
		{Day: Friday, Meal: Dinner}:    "Tacos",
	}

	data, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded WeekPlan
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !decoded.Equal(plan) {
		t.Errorf("Expected %v, got %v", plan, decoded)
	}

	var raw map[string]string
	_ = json.Unmarshal(data, &raw)
	if raw["Mon-Breakfast"] != "Oatmeal with Berries" {
		t.Errorf("Expected slot keys to be encoded as text, got %s", data)
	}
}

func TestWeekPlanSlots(t *testing.T) {
	plan := WeekPlan{
		{Day: Sunday, Meal: Breakfast}: "Pancakes",
		{Day: Monday, Meal: Dinner}:    "Tacos",
		{Day: Monday, Meal: Breakfast}: "Oatmeal",
		{Day: Tuesday, Meal: Lunch}:    "",
	}

	got := plan.Slots()
	want := []SlotKey{
		{Day: Monday, Meal: Breakfast},
		{Day: Monday, Meal: Dinner},
		{Day: Sunday, Meal: Breakfast},
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d slots, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Slot %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestWeek(t *testing.T) {
	// 2026-10-22 is a Thursday.
	w := WeekOf(time.Date(2026, 10, 22, 18, 30, 0, 0, time.UTC))
	if w.String() != "2026-10-19" {
		t.Errorf("Expected week 2026-10-19, got %s", w)
	}
	if w.Next().String() != "2026-10-26" {
		t.Errorf("Expected next week 2026-10-26, got %s", w.Next())
	}

	sunday := WeekOf(time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC))
	if sunday != w {
		t.Errorf("Expected Sunday to belong to week %s, got %s", w, sunday)
	}

	parsed, err := ParseWeek("2026-10-21")
	if err != nil {
		t.Fatalf("ParseWeek failed: %v", err)
	}
	if parsed != w {
		t.Errorf("Expected %s, got %s", w, parsed)
	}

	if _, err := ParseWeek("next tuesday"); !errors.Is(err, ErrInvalidWeek) {
		t.Errorf("Expected ErrInvalidWeek, got %v", err)
	}

	next := GetNextMonday(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))
	if next.Format("2006-01-02") != "2026-10-26" {
		t.Errorf("Expected next Monday 2026-10-26, got %s", next.Format("2006-01-02"))
	}
}
