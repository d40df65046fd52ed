package amort_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fincalc/amort"
	"github.com/meenmo/fincalc/num"
)

var (
	loan    = num.MustParse("200000")
	rate    = num.MustParse("0.005")
	payment = num.MustParse("1199.101050305504789182922487")
)

func near(got, want decimal.Decimal, tol string) bool {
	return got.Sub(want).Abs().LessThanOrEqual(num.MustParse(tol))
}

func TestSchedule_FullTerm(t *testing.T) {
	t.Parallel()
	ctx := num.DefaultContext()

	rows, err := amort.Schedule(ctx, 360, rate, loan, payment, 1, 360)
	if err != nil {
		t.Fatalf("Schedule error: %v", err)
	}
	if len(rows) != 360 {
		t.Fatalf("row count mismatch: got %d want 360", len(rows))
	}

	first := rows[0]
	if first.Period != 1 || !first.Interest.Equal(num.MustParse("1000")) {
		t.Fatalf("first row mismatch: got period %d interest %s", first.Period, first.Interest)
	}
	if !near(first.Principal, num.MustParse("199.101050305504789182922487"), "1e-20") {
		t.Fatalf("first principal mismatch: got %s", first.Principal)
	}

	last := rows[len(rows)-1]
	if !near(last.Balance, decimal.Zero, "1e-12") {
		t.Fatalf("final balance mismatch: got %s want 0", last.Balance)
	}
	if !near(last.CumulativePrincipal, loan, "1e-12") {
		t.Fatalf("cumulative principal mismatch: got %s want %s", last.CumulativePrincipal, loan)
	}
	if !near(last.CumulativeInterest, num.MustParse("231676.378109981724105852095690"), "1e-12") {
		t.Fatalf("cumulative interest mismatch: got %s", last.CumulativeInterest)
	}

	// every payment splits exactly into interest and principal
	for _, r := range rows {
		if !r.Interest.Add(r.Principal).Equal(payment) {
			t.Fatalf("period %d: interest %s + principal %s != payment", r.Period, r.Interest, r.Principal)
		}
	}
}

func TestSchedule_RangeMatchesFullSchedule(t *testing.T) {
	t.Parallel()
	ctx := num.DefaultContext()

	full, err := amort.Schedule(ctx, 360, rate, loan, payment, 1, 360)
	if err != nil {
		t.Fatalf("Schedule error: %v", err)
	}
	part, err := amort.Schedule(ctx, 360, rate, loan, payment, 13, 24)
	if err != nil {
		t.Fatalf("Schedule error: %v", err)
	}
	if len(part) != 12 {
		t.Fatalf("row count mismatch: got %d want 12", len(part))
	}
	for i, r := range part {
		want := full[12+i]
		if r.Period != want.Period || !r.Balance.Equal(want.Balance) || !r.CumulativeInterest.Equal(want.CumulativeInterest) {
			t.Fatalf("period %d mismatch: got %+v want %+v", r.Period, r, want)
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	ctx := num.DefaultContext()

	rows, err := amort.Schedule(ctx, 360, rate, loan, payment, 1, 12)
	if err != nil {
		t.Fatalf("Schedule error: %v", err)
	}
	s := amort.Summarize(rows)
	if s.Start != 1 || s.End != 12 {
		t.Fatalf("range mismatch: got [%d, %d] want [1, 12]", s.Start, s.End)
	}
	if !near(s.Interest, num.MustParse("11933.189179112619713893887461"), "1e-18") {
		t.Fatalf("year-one interest mismatch: got %s", s.Interest)
	}
	if !near(s.Balance, num.MustParse("197543.976575446562243698817617"), "1e-18") {
		t.Fatalf("balance mismatch: got %s", s.Balance)
	}
	if !s.Interest.Add(s.Principal).Equal(payment.Mul(decimal.NewFromInt(12))) {
		t.Fatalf("interest + principal != 12 payments: %s + %s", s.Interest, s.Principal)
	}

	if zero := amort.Summarize(nil); zero.Start != 0 || !zero.Interest.IsZero() {
		t.Fatalf("empty summary mismatch: got %+v", zero)
	}
}

func TestSchedule_ZeroRate(t *testing.T) {
	t.Parallel()

	rows, err := amort.Schedule(num.DefaultContext(), 4, decimal.Zero, num.MustParse("1000"), num.MustParse("250"), 1, 4)
	if err != nil {
		t.Fatalf("Schedule error: %v", err)
	}
	for i, want := range []string{"750", "500", "250", "0"} {
		if !rows[i].Balance.Equal(num.MustParse(want)) || !rows[i].Interest.IsZero() {
			t.Fatalf("period %d mismatch: got balance %s interest %s", i+1, rows[i].Balance, rows[i].Interest)
		}
	}
}

func TestSchedule_InvalidRange(t *testing.T) {
	t.Parallel()
	ctx := num.DefaultContext()

	cases := []struct {
		name          string
		n, start, end int
	}{
		{"zero periods", 0, 1, 1},
		{"start below one", 12, 0, 5},
		{"start after end", 12, 6, 5},
		{"end beyond term", 12, 1, 13},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := amort.Schedule(ctx, tc.n, rate, loan, payment, tc.start, tc.end)
			if !errors.Is(err, num.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
