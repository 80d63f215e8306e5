package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "8:30", "08:30", "23:59"}
	invalid := []string{"24:00", "12:60", "1230", "--:--", "", "ab:cd"}
	for _, s := range valid {
		if !IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateAndMonth(t *testing.T) {
	_, ok := IsValidDate("2024-02-29")
	assert.True(t, ok)
	_, ok = IsValidDate("2023-02-29")
	assert.False(t, ok)
	assert.True(t, IsValidMonth("2024-12"))
	assert.False(t, IsValidMonth("2024-1"))
}

type shiftRequest struct {
	Name     string   `json:"name" validate:"required"`
	Start    string   `json:"start_time" validate:"required,clock"`
	Date     string   `json:"date" validate:"omitempty,date"`
	Kind     string   `json:"kind" validate:"oneof=bonus deduction"`
	Weekdays []string `json:"weekdays" validate:"max=7"`
}

func TestStruct(t *testing.T) {
	errs := Struct(shiftRequest{Name: "a", Start: "08:00", Kind: "bonus"})
	assert.Empty(t, errs)
	assert.NoError(t, errs.OrNil())

	errs = Struct(shiftRequest{Start: "8h", Date: "01/02/2024", Kind: "gift"})
	m := errs.ToMap()
	assert.Equal(t, "is required", m["name"])
	assert.Equal(t, "must be in HH:MM format", m["start_time"])
	assert.Equal(t, "must be in YYYY-MM-DD format", m["date"])
	assert.Equal(t, "must be one of: bonus deduction", m["kind"])
	assert.Error(t, errs.OrNil())
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; phone: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_Add(t *testing.T) {
	var errs ValidationErrors
	assert.Nil(t, errs.OrNil())
	errs.Add("amount", "must be positive")
	assert.Equal(t, map[string]string{"amount": "must be positive"}, errs.ToMap())
}

func TestIsInSlice(t *testing.T) {
	positions := []string{"Agent", "Team Lead"}
	assert.True(t, IsInSlice("Team Lead", positions))
	assert.False(t, IsInSlice("agent", positions))
	assert.False(t, IsInSlice("Agent", nil))
}
