package libpostal

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	components := []Component{
		{Label: "house_number", Value: "25"},
		{Label: "road", Value: "rue de l'eglise"},
		{Label: "postcode", Value: "33380"},
	}

	if got, ok := Lookup(components, "postcode"); !ok || got != "33380" {
		t.Errorf("Lookup(postcode) = %q, %v", got, ok)
	}
	if _, ok := Lookup(components, "city"); ok {
		t.Error("Lookup(city) found a component that is not there")
	}
}

func TestParseMatchesAvailability(t *testing.T) {
	components, err := Parse("25 RUE DE L'EGLISE 33380 MIOS")
	if !Available() {
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("Parse() error = %v, want ErrUnavailable", err)
		}
		return
	}
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, ok := Lookup(components, "postcode"); !ok {
		t.Errorf("Parse() = %v, want a postcode component", components)
	}
}
