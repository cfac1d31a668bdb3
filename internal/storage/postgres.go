package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/addrconv/internal/address"
)

// uniqueViolation is the PostgreSQL SQLSTATE for duplicate keys.
const uniqueViolation = "23505"

// PostgresStore keeps addresses in the addresses table created by db.Migrate.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const addressColumns = `id, updated_at, kind, name, company_name, contact,
	has_delivery_point, external_delivery, internal_delivery, postbox,
	has_street, street_number, street_name, postcode, town, town_location, country`

func (s *PostgresStore) Save(ctx context.Context, addr address.Address) error {
	r, err := NewRecord(addr)
	if err != nil {
		return err
	}

	query := `INSERT INTO addresses (` + addressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err = s.db.ExecContext(ctx, query,
		r.ID, r.UpdatedAt, r.Kind, r.Name, r.CompanyName, r.Contact,
		r.HasDelivery, r.External, r.Internal, r.Postbox,
		r.HasStreet, r.StreetNumber, r.StreetName, r.Postcode, r.Town, r.TownLocation, r.Country)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, addr.ID)
		}
		return fmt.Errorf("failed to insert address %s: %w", addr.ID, err)
	}
	return nil
}

func (s *PostgresStore) Fetch(ctx context.Context, id uuid.UUID) (address.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`

	var r Record
	var external, internal, postbox, contact, number, location sql.NullString
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&r.ID, &r.UpdatedAt, &r.Kind, &r.Name, &r.CompanyName, &contact,
		&r.HasDelivery, &external, &internal, &postbox,
		&r.HasStreet, &number, &r.StreetName, &r.Postcode, &r.Town, &location, &r.Country)
	if errors.Is(err, sql.ErrNoRows) {
		return address.Address{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return address.Address{}, fmt.Errorf("failed to query address %s: %w", id, err)
	}

	r.Contact = nullable(contact)
	r.External = nullable(external)
	r.Internal = nullable(internal)
	r.Postbox = nullable(postbox)
	r.StreetNumber = nullable(number)
	r.TownLocation = nullable(location)
	r.UpdatedAt = r.UpdatedAt.UTC()
	return r.Address()
}

func (s *PostgresStore) Update(ctx context.Context, addr address.Address) error {
	r, err := NewRecord(addr)
	if err != nil {
		return err
	}

	query := `UPDATE addresses SET
		updated_at = $2, kind = $3, name = $4, company_name = $5, contact = $6,
		has_delivery_point = $7, external_delivery = $8, internal_delivery = $9, postbox = $10,
		has_street = $11, street_number = $12, street_name = $13,
		postcode = $14, town = $15, town_location = $16, country = $17
		WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query,
		r.ID, r.UpdatedAt, r.Kind, r.Name, r.CompanyName, r.Contact,
		r.HasDelivery, r.External, r.Internal, r.Postbox,
		r.HasStreet, r.StreetNumber, r.StreetName, r.Postcode, r.Town, r.TownLocation, r.Country)
	if err != nil {
		return fmt.Errorf("failed to update address %s: %w", addr.ID, err)
	}
	return expectOneRow(result, addr.ID)
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete address %s: %w", id, err)
	}
	return expectOneRow(result, id)
}

func expectOneRow(result sql.Result, id uuid.UUID) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func nullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
