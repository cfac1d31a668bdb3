package address

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind selects the conversion branch applied to an address.
type Kind int

const (
	Individual Kind = iota + 1
	Business
)

func (k Kind) String() string {
	switch k {
	case Individual:
		return "individual"
	case Business:
		return "business"
	default:
		return "unknown"
	}
}

// ParseKind resolves "individual" or "business", ignoring case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "individual":
		return Individual, nil
	case "business":
		return Business, nil
	default:
		return 0, InvalidFormat("unknown address kind %q: must be 'individual' or 'business'", s)
	}
}

// Recipient is either an IndividualRecipient or a BusinessRecipient.
type Recipient interface {
	// Denomination is the display name used on recipient lines: the
	// individual's name, or the business contact (never the company name).
	Denomination() *string
	isRecipient()
}

// IndividualRecipient is a person (Monsieur Jean DELHOURME).
type IndividualRecipient struct {
	Name string
}

func (r IndividualRecipient) Denomination() *string {
	name := r.Name
	return &name
}

func (IndividualRecipient) isRecipient() {}

// BusinessRecipient carries the company name and an optional contact or
// service line (Mademoiselle Lucie MARTIN, Service achat).
type BusinessRecipient struct {
	CompanyName string
	Contact     *string
}

func (r BusinessRecipient) Denomination() *string {
	return CloneString(r.Contact)
}

func (BusinessRecipient) isRecipient() {}

// DeliveryPoint holds ancillary routing detail.
type DeliveryPoint struct {
	External *string // building, residence, entrance
	Internal *string // apartment, staircase, floor
	Postbox  *string // BP 90432
}

// Street is a route number and label.
type Street struct {
	Number *string // 25, 2BIS
	Name   string  // RUE DE L'EGLISE, LE VILLAGE
}

// PostalDetails holds the postcode, town and optional secondary locality.
type PostalDetails struct {
	Postcode     string
	Town         string
	TownLocation *string
}

// Address is the canonical model every conversion pivots through.
// Values are never mutated in place; updates produce a new Address.
type Address struct {
	ID            uuid.UUID
	UpdatedAt     time.Time
	Kind          Kind
	Recipient     Recipient
	DeliveryPoint *DeliveryPoint
	Street        *Street
	PostalDetails PostalDetails
	Country       Country
}

// New builds an Address with a fresh identifier and timestamp.
func New(kind Kind, recipient Recipient, deliveryPoint *DeliveryPoint, street *Street, postal PostalDetails, country Country) Address {
	return Address{
		ID:            uuid.New(),
		UpdatedAt:     time.Now().UTC(),
		Kind:          kind,
		Recipient:     recipient,
		DeliveryPoint: deliveryPoint,
		Street:        street,
		PostalDetails: postal,
		Country:       country,
	}
}

// Clone returns a deep copy sharing no pointers with a.
func (a Address) Clone() Address {
	out := a

	switch r := a.Recipient.(type) {
	case BusinessRecipient:
		out.Recipient = BusinessRecipient{CompanyName: r.CompanyName, Contact: CloneString(r.Contact)}
	case *BusinessRecipient:
		out.Recipient = BusinessRecipient{CompanyName: r.CompanyName, Contact: CloneString(r.Contact)}
	case *IndividualRecipient:
		out.Recipient = IndividualRecipient{Name: r.Name}
	}

	if a.DeliveryPoint != nil {
		out.DeliveryPoint = &DeliveryPoint{
			External: CloneString(a.DeliveryPoint.External),
			Internal: CloneString(a.DeliveryPoint.Internal),
			Postbox:  CloneString(a.DeliveryPoint.Postbox),
		}
	}
	if a.Street != nil {
		out.Street = &Street{Number: CloneString(a.Street.Number), Name: a.Street.Name}
	}
	out.PostalDetails.TownLocation = CloneString(a.PostalDetails.TownLocation)

	return out
}

// CloneString copies an optional string so the result does not alias s.
func CloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}
