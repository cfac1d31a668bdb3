// Package service ties decoding, conversion and storage together for the
// CLI and the HTTP API.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/addrconv/internal/address"
	"github.com/addrconv/internal/convert"
	"github.com/addrconv/internal/french"
	"github.com/addrconv/internal/iso20022"
	"github.com/addrconv/internal/logger"
	"github.com/addrconv/internal/metrics"
	"github.com/addrconv/internal/normalize"
	"github.com/addrconv/internal/storage"
)

// Service is safe for concurrent use when its Repository is.
type Service struct {
	repo      storage.Repository
	log       zerolog.Logger
	metrics   *metrics.Metrics
	normalize bool
	now       func() time.Time
}

type Option func(*Service)

func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithNormalize enables whitespace normalisation of input lines. It is off
// by default so malformed lines reach the parser as typed.
func WithNormalize(enabled bool) Option {
	return func(s *Service) { s.normalize = enabled }
}

func New(repo storage.Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		log:  logger.Nop(),
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Decode reads input in the given format and converts it to a canonical
// address with a fresh id.
func (s *Service) Decode(input []byte, from Format) (address.Address, error) {
	switch from {
	case French:
		fa, err := french.Decode(input)
		if err != nil {
			return address.Address{}, err
		}
		return s.fromFrench(fa)
	case ISO20022:
		ia, err := iso20022.Decode(input)
		if err != nil {
			return address.Address{}, err
		}
		return s.fromISO(ia)
	default:
		return address.Address{}, address.InvalidFormat("unknown source format")
	}
}

// DecodeEnvelope reads {"french_address": {...}} or {"iso_address": {...}}.
func (s *Service) DecodeEnvelope(input []byte) (address.Address, error) {
	var env struct {
		French json.RawMessage `json:"french_address"`
		ISO    json.RawMessage `json:"iso_address"`
	}
	if err := json.Unmarshal(input, &env); err != nil {
		return address.Address{}, address.InvalidFormat("malformed request JSON: %v", err)
	}

	hasFrench := len(env.French) > 0 && string(env.French) != "null"
	hasISO := len(env.ISO) > 0 && string(env.ISO) != "null"
	switch {
	case hasFrench && !hasISO:
		return s.Decode(env.French, French)
	case hasISO && !hasFrench:
		return s.Decode(env.ISO, ISO20022)
	default:
		return address.Address{}, address.InvalidFormat("either iso_address or french_address must be provided")
	}
}

// Render converts a canonical address to the target format.
func (s *Service) Render(a address.Address, to Format) (Result, error) {
	result := Result{ID: a.ID, Format: to}
	var err error
	switch to {
	case French:
		result.French, err = convert.ToFrench(a)
		s.metrics.ObserveConversion("to_french", err)
	case ISO20022:
		result.ISO, err = convert.ToISO20022(a)
		s.metrics.ObserveConversion("to_iso20022", err)
	default:
		err = address.InvalidFormat("unknown target format")
	}
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

// Convert decodes an envelope and renders it in the target format. The
// canonical address is stored only when save is set and rendering succeeded.
func (s *Service) Convert(ctx context.Context, input []byte, to Format, save bool) (Result, error) {
	defer logger.Timing(s.log, "convert")()

	a, err := s.DecodeEnvelope(input)
	if err != nil {
		s.warn(err, "convert: decode failed")
		return Result{}, err
	}
	result, err := s.Render(a, to)
	if err != nil {
		s.warn(err, "convert: render failed")
		return Result{}, err
	}

	if save {
		err := s.repo.Save(ctx, a)
		s.metrics.ObserveStorage("save", err)
		if err != nil {
			return Result{}, fmt.Errorf("save address: %w", err)
		}
		s.log.Debug().Str("id", a.ID.String()).Msg("converted address saved")
	}
	return result, nil
}

// Save decodes input and stores the canonical address, returning its id.
func (s *Service) Save(ctx context.Context, input []byte, from Format) (uuid.UUID, error) {
	defer logger.Timing(s.log, "save")()

	a, err := s.Decode(input, from)
	if err != nil {
		s.warn(err, "save: decode failed")
		return uuid.Nil, err
	}
	err = s.repo.Save(ctx, a)
	s.metrics.ObserveStorage("save", err)
	if err != nil {
		s.warn(err, "save: storage failed")
		return uuid.Nil, fmt.Errorf("save address: %w", err)
	}

	s.log.Debug().Str("id", a.ID.String()).Str("format", from.String()).Msg("address saved")
	return a.ID, nil
}

// Update replaces the address stored under id. The new value keeps the id
// and gets a fresh update time.
func (s *Service) Update(ctx context.Context, id string, input []byte, from Format) error {
	defer logger.Timing(s.log, "update")()

	uid, err := parseID(id)
	if err != nil {
		return err
	}
	a, err := s.Decode(input, from)
	if err != nil {
		s.warn(err, "update: decode failed")
		return err
	}
	a.ID = uid
	a.UpdatedAt = s.now()

	err = s.repo.Update(ctx, a)
	s.metrics.ObserveStorage("update", err)
	if err != nil {
		s.warn(err, "update: storage failed")
		return fmt.Errorf("update address: %w", err)
	}

	s.log.Debug().Str("id", id).Msg("address updated")
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	err = s.repo.Delete(ctx, uid)
	s.metrics.ObserveStorage("delete", err)
	if err != nil {
		s.warn(err, "delete failed")
		return fmt.Errorf("delete address: %w", err)
	}

	s.log.Debug().Str("id", id).Msg("address deleted")
	return nil
}

func (s *Service) Fetch(ctx context.Context, id string) (address.Address, error) {
	uid, err := parseID(id)
	if err != nil {
		return address.Address{}, err
	}
	a, err := s.repo.Fetch(ctx, uid)
	s.metrics.ObserveStorage("fetch", err)
	if err != nil {
		s.warn(err, "fetch failed")
		return address.Address{}, fmt.Errorf("fetch address: %w", err)
	}
	return a, nil
}

// FetchFormat loads the address stored under id and renders it.
func (s *Service) FetchFormat(ctx context.Context, id string, to Format) (Result, error) {
	a, err := s.Fetch(ctx, id)
	if err != nil {
		return Result{}, err
	}
	return s.Render(a, to)
}

func (s *Service) fromFrench(fa french.Address) (address.Address, error) {
	if s.normalize {
		fa = normalize.French(fa)
	}
	a, err := convert.FromFrench(fa)
	s.metrics.ObserveConversion("from_french", err)
	if err == nil {
		s.log.Debug().Stringer("kind", fa.Kind()).Msg("french address parsed")
	}
	return a, err
}

func (s *Service) fromISO(ia iso20022.Address) (address.Address, error) {
	if s.normalize {
		ia = normalize.ISO20022(ia)
	}
	a, err := convert.FromISO20022(ia)
	s.metrics.ObserveConversion("from_iso20022", err)
	if err == nil {
		s.log.Debug().Stringer("kind", ia.Kind()).Msg("iso20022 address parsed")
	}
	return a, err
}

func (s *Service) warn(err error, msg string) {
	s.log.Warn().Err(err).Str("kind", ErrorKind(err)).Msg(msg)
}

func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, address.InvalidFormat("invalid address id %q", id)
	}
	return uid, nil
}

// ErrorKind names the category of err for logs and API responses.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, address.ErrMissingField):
		return "missing_field"
	case errors.Is(err, address.ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, storage.ErrNotFound):
		return "not_found"
	case errors.Is(err, storage.ErrAlreadyExists):
		return "already_exists"
	default:
		return "internal"
	}
}
