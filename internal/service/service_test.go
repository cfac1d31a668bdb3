package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/addrconv/internal/address"
	"github.com/addrconv/internal/french"
	"github.com/addrconv/internal/iso20022"
	"github.com/addrconv/internal/metrics"
	"github.com/addrconv/internal/storage"
)

const frenchIndividual = `{
	"name": "Monsieur Jean DELHOURME",
	"street": "25 RUE DE L'EGLISE",
	"distribution_info": "CAUDOS",
	"postal": "33380 MIOS",
	"country": "FRANCE"
}`

const isoBusiness = `{
	"business_name": "Société DUPONT",
	"postal_address": {
		"street_name": "RUE EMILE ZOLA",
		"building_number": "56",
		"department": "Mademoiselle Lucie MARTIN",
		"postbox": "BP 90432",
		"town_location_name": "MONTFERRIER SUR LEZ",
		"postcode": "34092",
		"town_name": "MONTPELLIER CEDEX 5",
		"country": "FR"
	}
}`

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "french", want: French},
		{input: "FRENCH", want: French},
		{input: " iso20022 ", want: ISO20022},
		{input: "ISO20022", want: ISO20022},
		{input: "iso", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, address.ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type ServiceSuite struct {
	suite.Suite
	store   *storage.MemoryStore
	metrics *metrics.Metrics
	svc     *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = storage.NewMemoryStore()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.svc = New(s.store, WithMetrics(s.metrics))
}

func (s *ServiceSuite) TestDecodeFrenchToISO() {
	a, err := s.svc.Decode([]byte(frenchIndividual), French)
	s.Require().NoError(err)

	res, err := s.svc.Render(a, ISO20022)
	s.Require().NoError(err)

	ind, ok := res.ISO.(*iso20022.Individual)
	s.Require().True(ok)
	s.Equal("Monsieur Jean DELHOURME", ind.Name)
	s.Equal("RUE DE L'EGLISE", *ind.PostalAddress.StreetName)
	s.Equal("25", *ind.PostalAddress.BuildingNumber)
	s.Equal("CAUDOS", *ind.PostalAddress.Postbox)
	s.Equal("33380", ind.PostalAddress.Postcode)
	s.Equal("MIOS", ind.PostalAddress.TownName)
	s.Equal("FR", ind.PostalAddress.Country)
}

func (s *ServiceSuite) TestDecodeNormalisesWhitespace() {
	input := `{"name": "  Monsieur   Jean DELHOURME ", "street": " 25   RUE DE L'EGLISE", "postal": "  33380    MIOS ", "country": " FRANCE"}`

	normalising := New(s.store, WithNormalize(true))
	a, err := normalising.Decode([]byte(input), French)
	s.Require().NoError(err)
	s.Equal("MIOS", a.PostalDetails.Town)
	s.Equal("RUE DE L'EGLISE", a.Street.Name)

	_, err = s.svc.Decode([]byte(input), French)
	s.ErrorIs(err, address.ErrInvalidFormat)
}

func (s *ServiceSuite) TestDecodeRejectsBlankLines() {
	normalising := New(s.store, WithNormalize(true))

	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "blank street",
			input: `{"name": "A", "street": "   ", "postal": "33380 MIOS", "country": "FRANCE"}`,
		},
		{
			name:  "blank distribution info",
			input: `{"business_name": "ACME", "street": "RUE DU PORT", "distribution_info": "  ", "postal": "33380 MIOS", "country": "FRANCE"}`,
		},
		{
			name:  "padded postal line",
			input: `{"name": "A", "postal": "33380    MIOS", "country": "FRANCE"}`,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Decode([]byte(tt.input), French)
			s.ErrorIs(err, address.ErrInvalidFormat)
		})
	}

	for _, tt := range tests[:2] {
		s.Run(tt.name+" normalised", func() {
			_, err := normalising.Decode([]byte(tt.input), French)
			s.ErrorIs(err, address.ErrInvalidFormat)
		})
	}
}

func (s *ServiceSuite) TestConvertEnvelope() {
	s.Run("iso to french", func() {
		res, err := s.svc.Convert(s.ctx, []byte(`{"iso_address": `+isoBusiness+`}`), French, false)
		s.Require().NoError(err)

		biz, ok := res.French.(*french.Business)
		s.Require().True(ok)
		s.Equal("Mademoiselle Lucie MARTIN", *biz.Recipient)
		s.Equal("56 RUE EMILE ZOLA", biz.Street)
		s.Equal("BP 90432 MONTFERRIER SUR LEZ", *biz.DistributionInfo)
		s.Equal("34092 MONTPELLIER CEDEX 5", biz.Postal)
		s.Equal("FRANCE", biz.Country)

		_, err = s.store.Fetch(s.ctx, res.ID)
		s.ErrorIs(err, storage.ErrNotFound)
	})

	s.Run("save stores canonical address", func() {
		res, err := s.svc.Convert(s.ctx, []byte(`{"french_address": `+frenchIndividual+`}`), ISO20022, true)
		s.Require().NoError(err)

		stored, err := s.store.Fetch(s.ctx, res.ID)
		s.Require().NoError(err)
		s.Equal("MIOS", stored.PostalDetails.Town)
	})

	s.Run("rejects envelope without address", func() {
		_, err := s.svc.Convert(s.ctx, []byte(`{}`), French, false)
		s.ErrorIs(err, address.ErrInvalidFormat)
	})

	s.Run("rejects envelope with both addresses", func() {
		input := `{"french_address": ` + frenchIndividual + `, "iso_address": ` + isoBusiness + `}`
		_, err := s.svc.Convert(s.ctx, []byte(input), French, false)
		s.ErrorIs(err, address.ErrInvalidFormat)
	})

	s.Run("failed conversion saves nothing", func() {
		input := `{"french_address": {"name": "X", "postal": "MIOS", "country": "FRANCE"}}`
		_, err := s.svc.Convert(s.ctx, []byte(input), ISO20022, true)
		s.ErrorIs(err, address.ErrInvalidFormat)
	})
}

func (s *ServiceSuite) TestSaveFetchUpdateDelete() {
	id, err := s.svc.Save(s.ctx, []byte(frenchIndividual), French)
	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, id)

	before, err := s.svc.Fetch(s.ctx, id.String())
	s.Require().NoError(err)

	res, err := s.svc.FetchFormat(s.ctx, id.String(), ISO20022)
	s.Require().NoError(err)
	s.Equal("MIOS", res.ISO.Postal().TownName)

	s.Require().NoError(s.svc.Update(s.ctx, id.String(), []byte(isoBusiness), ISO20022))

	after, err := s.svc.Fetch(s.ctx, id.String())
	s.Require().NoError(err)
	s.Equal(id, after.ID)
	s.Equal(address.Business, after.Kind)
	s.False(after.UpdatedAt.Before(before.UpdatedAt))

	s.Require().NoError(s.svc.Delete(s.ctx, id.String()))
	_, err = s.svc.Fetch(s.ctx, id.String())
	s.ErrorIs(err, storage.ErrNotFound)
	s.Equal("not_found", ErrorKind(err))
}

func (s *ServiceSuite) TestUpdateUnknownID() {
	err := s.svc.Update(s.ctx, uuid.NewString(), []byte(frenchIndividual), French)
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *ServiceSuite) TestInvalidID() {
	_, err := s.svc.Fetch(s.ctx, "not-a-uuid")
	s.ErrorIs(err, address.ErrInvalidFormat)
	s.ErrorIs(s.svc.Delete(s.ctx, "42"), address.ErrInvalidFormat)
}

func (s *ServiceSuite) TestSaveRejectsMissingName() {
	_, err := s.svc.Save(s.ctx, []byte(`{"name": "", "postal": "33380 MIOS", "country": "FRANCE"}`), French)
	s.ErrorIs(err, address.ErrMissingField)
	s.Equal("missing_field", ErrorKind(err))
}

func (s *ServiceSuite) TestMetricsCountOutcomes() {
	_, err := s.svc.Save(s.ctx, []byte(frenchIndividual), French)
	s.Require().NoError(err)
	_, err = s.svc.Save(s.ctx, []byte(`{"name": "X", "postal": "bad", "country": "FRANCE"}`), French)
	s.Require().Error(err)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.Conversions.WithLabelValues("from_french", metrics.OutcomeSuccess)))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Conversions.WithLabelValues("from_french", metrics.OutcomeFailure)))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.StorageOperations.WithLabelValues("save", metrics.OutcomeSuccess)))
}

func TestResultEncoding(t *testing.T) {
	svc := New(storage.NewMemoryStore())
	a, err := svc.Decode([]byte(isoBusiness), ISO20022)
	require.NoError(t, err)

	t.Run("json renders the address only", func(t *testing.T) {
		res, err := svc.Render(a, French)
		require.NoError(t, err)

		data, err := json.Marshal(res)
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(data, &fields))
		assert.Equal(t, "Société DUPONT", fields["business_name"])
		assert.NotContains(t, fields, "ID")
	})

	t.Run("xml for iso20022", func(t *testing.T) {
		res, err := svc.Render(a, ISO20022)
		require.NoError(t, err)

		data, err := res.XML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "<Nm>Société DUPONT</Nm>")
		assert.Contains(t, string(data), "<Dept>Mademoiselle Lucie MARTIN</Dept>")
	})

	t.Run("xml unavailable for french", func(t *testing.T) {
		res, err := svc.Render(a, French)
		require.NoError(t, err)

		_, err = res.XML()
		assert.ErrorIs(t, err, address.ErrInvalidFormat)
	})

	t.Run("envelope lines for french", func(t *testing.T) {
		res, err := svc.Render(a, French)
		require.NoError(t, err)

		lines, err := res.Lines()
		require.NoError(t, err)
		require.NotEmpty(t, lines)
		assert.Equal(t, "Société DUPONT", lines[0])
		assert.Contains(t, lines, "Mademoiselle Lucie MARTIN")
		assert.Equal(t, "FRANCE", lines[len(lines)-1])
	})

	t.Run("envelope lines unavailable for iso20022", func(t *testing.T) {
		res, err := svc.Render(a, ISO20022)
		require.NoError(t, err)

		_, err = res.Lines()
		assert.ErrorIs(t, err, address.ErrInvalidFormat)
	})
}
