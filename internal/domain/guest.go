package domain

import "strings"

type Guest struct {
	name    string
	address string // optional
}

func NewGuest(name, address string) (Guest, error) {
	if strings.TrimSpace(name) == "" {
		return Guest{}, invalid("name", "guest name required")
	}
	return Guest{name: name, address: address}, nil
}

func (g Guest) Name() string { return g.name }

// Address returns the address details and whether any were given.
func (g Guest) Address() (string, bool) { return g.address, g.address != "" }

type RoomKind string

const (
	RoomSingle RoomKind = "SINGLE"
	RoomDouble RoomKind = "DOUBLE"
	RoomSuite  RoomKind = "SUITE"
)

// ParseRoomKind accepts any casing of the three known kinds.
func ParseRoomKind(s string) (RoomKind, error) {
	k := RoomKind(strings.ToUpper(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", invalid("kind", "unknown room kind "+s)
	}
	return k, nil
}

func (k RoomKind) Valid() bool {
	switch k {
	case RoomSingle, RoomDouble, RoomSuite:
		return true
	}
	return false
}

func (k RoomKind) String() string { return string(k) }

type RoomCategory struct {
	kind RoomKind
	cost MonetaryAmount
}

func NewRoomCategory(kind RoomKind, cost MonetaryAmount) (RoomCategory, error) {
	if !kind.Valid() || cost.IsZero() {
		return RoomCategory{}, invalid("room category", "kind and cost are required")
	}
	return RoomCategory{kind: kind, cost: cost}, nil
}

func (c RoomCategory) Kind() RoomKind       { return c.kind }
func (c RoomCategory) Cost() MonetaryAmount { return c.cost }
func (c RoomCategory) IsZero() bool         { return c.kind == "" }

// PayerIdentity identifies whoever pays for a reservation.
type PayerIdentity struct{ id IdentityToken }

func NewPayerIdentity(id IdentityToken) (PayerIdentity, error) {
	if id.IsZero() {
		return PayerIdentity{}, invalid("payer", "identity required")
	}
	return PayerIdentity{id: id}, nil
}

func (p PayerIdentity) ID() IdentityToken { return p.id }
