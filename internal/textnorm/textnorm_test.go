package textnorm_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/johnwards/vitrine/internal/textnorm"
)

func TestFold(t *testing.T) {
	tests := map[string]string{
		"Tênis":               "tenis",
		"CALÇÃO":              "calcao",
		"Boné Aba Reta":       "bone aba reta",
		"already plain":       "already plain",
		"Jaqueta Corta-Vento": "jaqueta corta-vento",
	}
	for in, want := range tests {
		if got := textnorm.Fold(in); got != want {
			t.Errorf("Fold(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTokens(t *testing.T) {
	got := textnorm.Tokens("Tênis de Corrida para corrida, Nike Air-Max 90")
	want := []string{"tenis", "corrida", "nike", "air", "max", "90"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokens (-want +got):\n%s", diff)
	}

	if got := textnorm.Tokens("  de  da  "); got != nil {
		t.Errorf("Tokens(stopwords) = %v, want nil", got)
	}
}

func TestSearchable(t *testing.T) {
	if got, want := textnorm.Searchable("Camiseta Dry-Fit"), " camiseta dry fit "; got != want {
		t.Errorf("Searchable() = %q, want %q", got, want)
	}
}

func TestMoney(t *testing.T) {
	tests := map[float64]string{
		49.9:    "R$ 49,90",
		100:     "R$ 100,00",
		1199.99: "R$ 1.199,99",
	}
	for in, want := range tests {
		if got := textnorm.Money(in); got != want {
			t.Errorf("Money(%v) = %q, want %q", in, got, want)
		}
	}
}
