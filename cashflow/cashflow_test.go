package cashflow_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"

	"github.com/meenmo/fincalc/cashflow"
	"github.com/meenmo/fincalc/num"
	"github.com/meenmo/fincalc/solver"
)

func d(s string) decimal.Decimal { return num.MustParse(s) }

func flows(amounts ...string) []cashflow.Entry {
	out := make([]cashflow.Entry, len(amounts))
	for i, a := range amounts {
		out[i] = cashflow.Entry{Amount: d(a)}
	}
	return out
}

func TestExpand(t *testing.T) {
	t.Parallel()

	got, err := cashflow.Expand([]cashflow.Entry{
		{Amount: d("-500")},
		{Amount: d("100"), Count: 3},
		{Amount: d("50"), Count: 1},
	})
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	want := []string{"-500", "100", "100", "100", "50"}
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(d(want[i])) {
			t.Fatalf("flow %d mismatch: got %s want %s", i, got[i], want[i])
		}
	}

	if _, err := cashflow.Expand([]cashflow.Entry{{Amount: d("1"), Count: -1}}); !errors.Is(err, num.ErrInvalidInput) {
		t.Fatalf("negative count: expected ErrInvalidInput, got %v", err)
	}
	if _, err := cashflow.Expand([]cashflow.Entry{{Amount: d("1"), Count: cashflow.MaxPeriods + 1}}); !errors.Is(err, num.ErrInvalidInput) {
		t.Fatalf("oversized series: expected ErrInvalidInput, got %v", err)
	}
}

func TestNPV(t *testing.T) {
	t.Parallel()
	ctx := num.DefaultContext()

	cases := []struct {
		name    string
		entries []cashflow.Entry
		rate    string
		want    string
	}{
		{"growing inflows at 10%", flows("-1000", "300", "400", "500", "600"), "0.1", "388.771258793798237825285158"},
		{"growing inflows at 21.86%", flows("-1000", "300", "400", "500", "600"), "0.2186", "63.936748373865786038333972"},
		{"grouped entries", []cashflow.Entry{{Amount: d("-500")}, {Amount: d("100"), Count: 5}, {Amount: d("50")}}, "0.05", "-29.741563105086681021752167"},
		{"zero rate sums", []cashflow.Entry{{Amount: d("-500")}, {Amount: d("100"), Count: 5}, {Amount: d("50")}}, "0", "50"},
		{"single flow is undiscounted", flows("-250"), "0.07", "-250"},
		{"empty series", nil, "0.07", "0"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := cashflow.NPV(ctx, tc.entries, d(tc.rate))
			if err != nil {
				t.Fatalf("NPV error: %v", err)
			}
			if got.Sub(d(tc.want)).Abs().GreaterThan(d("1e-20")) {
				t.Fatalf("NPV mismatch: got %s want %s", got, tc.want)
			}
		})
	}
}

func TestNPV_ZeroDiscountBase(t *testing.T) {
	t.Parallel()

	_, err := cashflow.NPV(num.DefaultContext(), flows("-100", "50"), d("-1"))
	if !errors.Is(err, num.ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestNFV(t *testing.T) {
	t.Parallel()

	got, err := cashflow.NFV(num.DefaultContext(), flows("-1000", "300", "400", "500", "600"), d("0.1"))
	if err != nil {
		t.Fatalf("NFV error: %v", err)
	}
	if got.Sub(d("569.2")).Abs().GreaterThan(d("1e-20")) {
		t.Fatalf("NFV mismatch: got %s want 569.2", got)
	}
}

func TestIRR(t *testing.T) {
	t.Parallel()
	ctx := num.DefaultContext()
	s := solver.DefaultSettings()

	cases := []struct {
		name    string
		entries []cashflow.Entry
		want    string
	}{
		{"growing inflows", flows("-1000", "300", "400", "500", "600"), "0.248883356621305556572757606"},
		{"loss-making series", []cashflow.Entry{{Amount: d("-500")}, {Amount: d("100"), Count: 3}}, "-0.217627217308563895167620689"},
		{"balloon at the end", []cashflow.Entry{{Amount: d("-1000")}, {Amount: d("100"), Count: 11}, {Amount: d("2000")}}, "0.134197814055717955417429462"},
		{"inflow first", flows("100", "-50"), "-0.5"},
		{"inflows short of the outlay", flows("-1000", "300", "300", "300"), "-0.050885441372620606014699728"},
		{"deep loss", flows("-1000", "100", "100"), "-0.629843788128357565675589116"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := cashflow.IRR(ctx, tc.entries, s)
			if err != nil {
				t.Fatalf("IRR error: %v", err)
			}
			if got.Sub(d(tc.want)).Abs().GreaterThan(d("1e-9")) {
				t.Fatalf("IRR mismatch: got %s want %s", got, tc.want)
			}

			npv, err := cashflow.NPV(ctx, tc.entries, got)
			if err != nil {
				t.Fatalf("NPV error: %v", err)
			}
			if npv.Abs().GreaterThanOrEqual(s.Tolerance) {
				t.Fatalf("NPV at IRR is %s, want |NPV| < %s", npv, s.Tolerance)
			}
		})
	}
}

func TestIRR_Errors(t *testing.T) {
	t.Parallel()
	ctx := num.DefaultContext()
	s := solver.DefaultSettings()

	cases := []struct {
		name    string
		entries []cashflow.Entry
		want    error
	}{
		{"single period", flows("-1000"), num.ErrInvalidInput},
		{"no periods", nil, num.ErrInvalidInput},
		{"all outflows", flows("-100", "-50", "-20"), num.ErrConvergence},
		{"no real root", flows("-100", "300", "-250"), num.ErrConvergence},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := cashflow.IRR(ctx, tc.entries, s)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestProperty_NPVAtIRRIsZero(t *testing.T) {
	ctx := num.DefaultContext()
	s := solver.DefaultSettings()

	rapid.Check(t, func(t *rapid.T) {
		inflows := rapid.SliceOfN(rapid.Int64Range(1, 100_000), 1, 30).Draw(t, "inflows")
		var sum int64
		for _, v := range inflows {
			sum += v
		}
		// One sign change, so a single root; outlays above the inflows put it below zero.
		pct := rapid.Int64Range(10, 300).Draw(t, "outlay_pct")
		outlay := decimal.NewFromInt(sum).Mul(decimal.NewFromInt(pct)).Div(num.Hundred).Round(2)

		entries := []cashflow.Entry{{Amount: outlay.Neg()}}
		for _, v := range inflows {
			entries = append(entries, cashflow.Entry{Amount: decimal.NewFromInt(v)})
		}

		irr, err := cashflow.IRR(ctx, entries, s)
		if err != nil {
			t.Fatalf("IRR: %v", err)
		}
		npv, err := cashflow.NPV(ctx, entries, irr)
		if err != nil {
			t.Fatalf("NPV: %v", err)
		}
		if npv.Abs().GreaterThanOrEqual(s.Tolerance) {
			t.Fatalf("NPV at IRR %s is %s", irr, npv)
		}
	})
}
