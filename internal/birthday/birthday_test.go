package birthday

import (
	"errors"
	"testing"
)

func TestParsedValidate(t *testing.T) {
	year := 1998
	valid := Parsed{Name: "Anna", Day: 14, Month: 3, Year: &year}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid birthday rejected: %v", err)
	}

	noYear := Parsed{Name: "Anna", Day: 14, Month: 3}
	if err := noYear.Validate(); err != nil {
		t.Fatalf("year should be optional: %v", err)
	}

	bad := []Parsed{
		{Name: "", Day: 14, Month: 3},
		{Name: "Anna", Day: 0, Month: 3},
		{Name: "Anna", Day: 32, Month: 3},
		{Name: "Anna", Day: 14, Month: 0},
		{Name: "Anna", Day: 14, Month: 13},
	}
	for _, p := range bad {
		err := p.Validate()
		if err == nil {
			t.Errorf("expected rejection for %+v", p)
			continue
		}
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("error for %+v should wrap ErrInvalidDate, got %v", p, err)
		}
	}
}
