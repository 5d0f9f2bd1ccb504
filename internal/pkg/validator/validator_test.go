package validator

import (
	"testing"
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

func TestIsValidDate(t *testing.T) {
	valid := []string{"2026-01-01", "2026-02-28", "1999-12-31"}
	invalid := []string{"2026-13-01", "2026-02-30", "01-02-2026", "2026/01/01", "not-a-date", ""}
	for _, date := range valid {
		if _, ok := IsValidDate(date); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", date)
		}
	}
	for _, date := range invalid {
		if _, ok := IsValidDate(date); ok {
			t.Errorf("IsValidDate(%q) = true, want false", date)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	cases := []struct {
		year, month int
		want        bool
	}{
		{2026, 1, true},
		{2026, 12, true},
		{2026, 0, false},
		{2026, 13, false},
		{1999, 6, false},
		{2101, 6, false},
	}
	for _, c := range cases {
		got := IsValidMonth(c.year, c.month)
		if got != c.want {
			t.Errorf("IsValidMonth(%d, %d) = %v, want %v", c.year, c.month, got, c.want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	if !IsNumeric("12345") {
		t.Error("IsNumeric(\"12345\") = false, want true")
	}
	for _, s := range []string{"", "12a", "-1", "1.5"} {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"FUEL", "MATERIAL", "OTHER"}
	if !IsInSlice("FUEL", slice) {
		t.Error("IsInSlice(\"FUEL\") = false, want true")
	}
	if IsInSlice("fuel", slice) {
		t.Error("IsInSlice(\"fuel\") = true, want false")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "is required"},
		{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"},
	}

	if got := errs.Error(); got != "name: is required; date: must be a valid date (YYYY-MM-DD)" {
		t.Errorf("Error() = %q", got)
	}

	m := errs.ToMap()
	if m["name"] != "is required" || m["date"] != "must be a valid date (YYYY-MM-DD)" {
		t.Errorf("ToMap() = %v", m)
	}
}
