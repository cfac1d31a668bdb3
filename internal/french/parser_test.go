package french

import (
	"errors"
	"testing"

	"github.com/addrconv/internal/address"
)

func strOrNil(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func TestParseStreet(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantNumber string
		wantName   string
		wantErr    bool
	}{
		{name: "number and name", input: "25 RUE DE L'EGLISE", wantNumber: "25", wantName: "RUE DE L'EGLISE"},
		{name: "number with suffix", input: "2BIS AVENUE FOCH", wantNumber: "2BIS", wantName: "AVENUE FOCH"},
		{name: "no number", input: "LE VILLAGE", wantNumber: "<nil>", wantName: "LE VILLAGE"},
		{name: "extra spacing", input: "  56   RUE EMILE ZOLA ", wantNumber: "56", wantName: "RUE EMILE ZOLA"},
		{name: "digits inside name", input: "RUE DU 8 MAI 1945", wantNumber: "<nil>", wantName: "RUE DU 8 MAI 1945"},
		{name: "empty line", input: "", wantErr: true},
		{name: "blank line", input: "   ", wantErr: true},
		{name: "number only", input: "25", wantErr: true},
		{name: "suffixed number only", input: "2BIS ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStreet(tt.input)
			if tt.wantErr {
				if !errors.Is(err, address.ErrInvalidFormat) {
					t.Errorf("ParseStreet(%q) error = %v, want InvalidFormat", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStreet(%q) unexpected error: %v", tt.input, err)
			}
			if strOrNil(got.Number) != tt.wantNumber {
				t.Errorf("ParseStreet(%q) number = %v, want %v", tt.input, strOrNil(got.Number), tt.wantNumber)
			}
			if got.Name != tt.wantName {
				t.Errorf("ParseStreet(%q) name = %v, want %v", tt.input, got.Name, tt.wantName)
			}
		})
	}
}

func TestParsePostal(t *testing.T) {
	tests := []struct {
		input        string
		wantPostcode string
		wantTown     string
		wantErr      bool
	}{
		{input: "33380 MIOS", wantPostcode: "33380", wantTown: "MIOS"},
		{input: "34092 MONTPELLIER CEDEX 5", wantPostcode: "34092", wantTown: "MONTPELLIER CEDEX 5"},
		{input: "MIOS", wantErr: true},
		{input: "3338 MIOS", wantErr: true},
		{input: "333800 MIOS", wantErr: true},
		{input: "33380", wantErr: true},
		{input: "33380MIOS", wantErr: true},
		{input: "somewhere near Bordeaux", wantErr: true},
		{input: "", wantErr: true},
		{input: "33380  ", wantErr: true},
		{input: "33380 ", wantErr: true},
		{input: "33380    MIOS", wantErr: true},
		{input: "33380 MIOS  ", wantPostcode: "33380", wantTown: "MIOS"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePostal(tt.input)
			if tt.wantErr {
				if !errors.Is(err, address.ErrInvalidFormat) {
					t.Errorf("ParsePostal(%q) error = %v, want InvalidFormat", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePostal(%q) unexpected error: %v", tt.input, err)
			}
			if got.Postcode != tt.wantPostcode || got.Town != tt.wantTown {
				t.Errorf("ParsePostal(%q) = (%v, %v), want (%v, %v)", tt.input, got.Postcode, got.Town, tt.wantPostcode, tt.wantTown)
			}
			if got.TownLocation != nil {
				t.Errorf("ParsePostal(%q) town location = %v, want nil", tt.input, *got.TownLocation)
			}
		})
	}
}

func TestParseDistributionInfo(t *testing.T) {
	tests := []struct {
		input            string
		wantPostbox      string
		wantTownLocation string
	}{
		{input: "BP 90432 MONTFERRIER SUR LEZ", wantPostbox: "BP 90432", wantTownLocation: "MONTFERRIER SUR LEZ"},
		{input: "CS 1234", wantPostbox: "CS 1234", wantTownLocation: "<nil>"},
		{input: "CAUDOS", wantPostbox: "<nil>", wantTownLocation: "CAUDOS"},
		{input: "bp 90432 MIOS", wantPostbox: "<nil>", wantTownLocation: "bp 90432 MIOS"},
		{input: "MONTFERRIER BP 90432", wantPostbox: "<nil>", wantTownLocation: "MONTFERRIER BP 90432"},
		{input: "BPX 12 HAMEAU", wantPostbox: "<nil>", wantTownLocation: "BPX 12 HAMEAU"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			postbox, err := ParsePostbox(tt.input)
			if err != nil {
				t.Fatalf("ParsePostbox(%q) unexpected error: %v", tt.input, err)
			}
			if strOrNil(postbox) != tt.wantPostbox {
				t.Errorf("ParsePostbox(%q) = %v, want %v", tt.input, strOrNil(postbox), tt.wantPostbox)
			}

			location, err := ParseTownLocation(tt.input)
			if err != nil {
				t.Fatalf("ParseTownLocation(%q) unexpected error: %v", tt.input, err)
			}
			if strOrNil(location) != tt.wantTownLocation {
				t.Errorf("ParseTownLocation(%q) = %v, want %v", tt.input, strOrNil(location), tt.wantTownLocation)
			}
		})
	}
}

func TestParseDistributionInfoEmpty(t *testing.T) {
	if _, err := ParsePostbox(""); !errors.Is(err, address.ErrInvalidFormat) {
		t.Errorf("ParsePostbox(\"\") error = %v, want InvalidFormat", err)
	}
	if _, err := ParseTownLocation(" "); !errors.Is(err, address.ErrInvalidFormat) {
		t.Errorf("ParseTownLocation(\" \") error = %v, want InvalidFormat", err)
	}
}
