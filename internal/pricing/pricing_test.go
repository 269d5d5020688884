package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"jamjam-delivery/internal/apperr"
	"jamjam-delivery/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTotal_Options(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		base      string
		option    domain.DeliveryOption
		insurance string
		want      string
	}{
		{"express doubles", "10.00", domain.OptionExpress, "0", "20.00"},
		{"standard keeps base", "10.00", domain.OptionStandard, "0", "10.00"},
		{"economy halves", "10.00", domain.OptionEconomy, "0", "5.00"},
		{"economy with insurance", "10.00", domain.OptionEconomy, "2.50", "7.50"},
		{"express with insurance", "8.50", domain.OptionExpress, "1.25", "18.25"},
		{"odd cents stay exact", "7.75", domain.OptionEconomy, "0", "3.88"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Total(dec(tc.base), tc.option, dec(tc.insurance))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if Display(got) != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, Display(got))
			}
		})
	}
}

func TestTotal_ExactInternally(t *testing.T) {
	t.Parallel()

	// 7.75 * 0.5 = 3.875: internal value must keep the third decimal,
	// only Display rounds.
	got, err := Total(dec("7.75"), domain.OptionEconomy, decimal.Zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "3.875" {
		t.Fatalf("internal arithmetic must be exact, got %s", got)
	}
}

func TestTotal_Rejects(t *testing.T) {
	t.Parallel()

	if _, err := Total(dec("10"), domain.DeliveryOption("overnight"), decimal.Zero); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("unknown option must fail validation, got %v", err)
	}
	if _, err := Total(dec("-1"), domain.OptionStandard, decimal.Zero); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("negative base must fail validation, got %v", err)
	}
	if _, err := Total(dec("10"), domain.OptionStandard, dec("-0.01")); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("negative insurance must fail validation, got %v", err)
	}
}

func TestBaseFromAssignments(t *testing.T) {
	t.Parallel()

	assignments := []domain.RiderAssignment{
		{Rider: domain.Rider{PricePerSegment: dec("8.50")}},
		{Rider: domain.Rider{PricePerSegment: dec("9.00")}},
		{Rider: domain.Rider{PricePerSegment: dec("7.75")}},
	}
	got := BaseFromAssignments(assignments)
	if Display(got) != "25.25" {
		t.Fatalf("expected 25.25, got %s", Display(got))
	}
	if !BaseFromAssignments(nil).IsZero() {
		t.Fatalf("no assignments must sum to zero")
	}
}
