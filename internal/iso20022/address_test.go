package iso20022

import (
	"errors"
	"strings"
	"testing"

	"github.com/addrconv/internal/address"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind address.Kind
		wantErr  bool
	}{
		{
			name:     "individual",
			input:    `{"name": "Monsieur Jean DELHOURME", "postal_address": {"street_name": "RUE DE L'EGLISE", "postcode": "33380", "town_name": "MIOS", "country": "FR"}}`,
			wantKind: address.Individual,
		},
		{
			name:     "business",
			input:    `{"business_name": "Société DUPONT", "postal_address": {"department": "Mademoiselle Lucie MARTIN", "postcode": "34092", "town_name": "MONTPELLIER CEDEX 5", "country": "FR"}}`,
			wantKind: address.Business,
		},
		{
			name:     "explicit kind",
			input:    `{"kind": "individual", "name": "A", "business_name": "B", "postal_address": {"postcode": "33380", "town_name": "MIOS", "country": "FR"}}`,
			wantKind: address.Individual,
		},
		{
			name:    "ambiguous",
			input:   `{"name": "A", "business_name": "B", "postal_address": {"postcode": "33380", "town_name": "MIOS", "country": "FR"}}`,
			wantErr: true,
		},
		{
			name:    "no party name",
			input:   `{"postal_address": {"postcode": "33380", "town_name": "MIOS", "country": "FR"}}`,
			wantErr: true,
		},
		{
			name:    "not an object",
			input:   `[1, 2]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.input))
			if tt.wantErr {
				if !errors.Is(err, address.ErrInvalidFormat) {
					t.Errorf("Decode() error = %v, want InvalidFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() unexpected error: %v", err)
			}
			if got.Kind() != tt.wantKind {
				t.Errorf("Decode() kind = %v, want %v", got.Kind(), tt.wantKind)
			}
		})
	}
}

func TestMarshalXML(t *testing.T) {
	business := &Business{
		BusinessName: "Société DUPONT",
		PostalAddress: PostalAddress{
			StreetName:       address.StringPtr("RUE EMILE ZOLA"),
			BuildingNumber:   address.StringPtr("56"),
			Postbox:          address.StringPtr("BP 90432"),
			Department:       address.StringPtr("Mademoiselle Lucie MARTIN"),
			Postcode:         "34092",
			TownName:         "MONTPELLIER CEDEX 5",
			TownLocationName: address.StringPtr("MONTFERRIER SUR LEZ"),
			Country:          "FR",
		},
	}

	data, err := MarshalXML(business)
	if err != nil {
		t.Fatalf("MarshalXML() unexpected error: %v", err)
	}
	out := string(data)

	order := []string{
		"<Nm>Société DUPONT</Nm>",
		"<Dept>Mademoiselle Lucie MARTIN</Dept>",
		"<StrtNm>RUE EMILE ZOLA</StrtNm>",
		"<BldgNb>56</BldgNb>",
		"<PstBx>BP 90432</PstBx>",
		"<PstCd>34092</PstCd>",
		"<TwnNm>MONTPELLIER CEDEX 5</TwnNm>",
		"<TwnLctnNm>MONTFERRIER SUR LEZ</TwnLctnNm>",
		"<Ctry>FR</Ctry>",
	}
	last := -1
	for _, element := range order {
		idx := strings.Index(out, element)
		if idx < 0 {
			t.Fatalf("MarshalXML() missing %s in\n%s", element, out)
		}
		if idx < last {
			t.Errorf("MarshalXML() element %s out of order", element)
		}
		last = idx
	}

	for _, absent := range []string{"<Flr>", "<Room>"} {
		if strings.Contains(out, absent) {
			t.Errorf("MarshalXML() should omit %s", absent)
		}
	}
}
