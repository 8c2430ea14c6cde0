package domain_test

import (
	"errors"
	"math"
	"testing"

	"hotel_booking/internal/domain"
)

func TestMonetaryAmount(t *testing.T) {
	for _, v := range []float64{0.01, 1, 99.5, 1e9} {
		m, err := domain.NewMonetaryAmount(v)
		if err != nil {
			t.Fatalf("amount %v: unexpected err: %v", v, err)
		}
		if m.Value() != v {
			t.Fatalf("amount %v: stored %v", v, m.Value())
		}
	}
	for _, v := range []float64{0, -0.01, -100, math.NaN(), math.Inf(1)} {
		_, err := domain.NewMonetaryAmount(v)
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("amount %v: expected validation error, got %v", v, err)
		}
	}
}

func TestIdentityToken(t *testing.T) {
	tok, err := domain.NewIdentityToken("payer-7")
	if err != nil || tok.String() != "payer-7" {
		t.Fatalf("unexpected token %q err %v", tok.String(), err)
	}
	for _, s := range []string{"", " ", "\t\n"} {
		var ve *domain.ValidationError
		if _, err := domain.NewIdentityToken(s); !errors.As(err, &ve) {
			t.Fatalf("token %q: expected *ValidationError, got %v", s, err)
		}
	}
}

func TestGuest(t *testing.T) {
	g, err := domain.NewGuest("Ali", "Lahore")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if addr, ok := g.Address(); g.Name() != "Ali" || !ok || addr != "Lahore" {
		t.Fatalf("unexpected guest: %+v", g)
	}
	noAddr, err := domain.NewGuest("Sara", "")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if _, ok := noAddr.Address(); ok {
		t.Fatalf("expected no address")
	}
	if _, err := domain.NewGuest("  ", "x"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}

func TestRoomCategory(t *testing.T) {
	cost, _ := domain.NewMonetaryAmount(120)
	c, err := domain.NewRoomCategory(domain.RoomSuite, cost)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if c.Kind() != domain.RoomSuite || c.Cost().Value() != 120 {
		t.Fatalf("unexpected category: %+v", c)
	}
	if _, err := domain.NewRoomCategory("", cost); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing kind: got %v", err)
	}
	if _, err := domain.NewRoomCategory(domain.RoomSingle, domain.MonetaryAmount{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing cost: got %v", err)
	}
	if k, err := domain.ParseRoomKind("double"); err != nil || k != domain.RoomDouble {
		t.Fatalf("parse double: %v %v", k, err)
	}
	if _, err := domain.ParseRoomKind("penthouse"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestPayerIdentity(t *testing.T) {
	tok, _ := domain.NewIdentityToken("card-1")
	p, err := domain.NewPayerIdentity(tok)
	if err != nil || p.ID().String() != "card-1" {
		t.Fatalf("unexpected payer %+v err %v", p, err)
	}
	if _, err := domain.NewPayerIdentity(domain.IdentityToken{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
