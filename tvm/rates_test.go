package tvm_test

import (
	"errors"
	"testing"

	"github.com/meenmo/fincalc/num"
	"github.com/meenmo/fincalc/tvm"
)

func TestNominalEffective(t *testing.T) {
	t.Parallel()
	ctx := num.DefaultContext()

	eff, err := tvm.NominalToEffective(ctx, d("0.12"), 12)
	if err != nil {
		t.Fatalf("NominalToEffective error: %v", err)
	}
	if !eff.Equal(d("0.126825030131969720661201")) {
		t.Fatalf("EFF mismatch: got %s want 0.126825030131969720661201", eff)
	}

	nom, err := tvm.EffectiveToNominal(ctx, eff, 12)
	if err != nil {
		t.Fatalf("EffectiveToNominal error: %v", err)
	}
	assertNear(t, "NOM", nom, d("0.12"), "1e-20")

	if _, err := tvm.NominalToEffective(ctx, d("0.12"), 0); !errors.Is(err, num.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := tvm.EffectiveToNominal(ctx, d("0.12"), -4); !errors.Is(err, num.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPeriodConversions(t *testing.T) {
	t.Parallel()
	ctx := num.DefaultContext()

	r, err := tvm.PeriodicRate(ctx, d("6"), 12)
	if err != nil {
		t.Fatalf("PeriodicRate error: %v", err)
	}
	if !r.Equal(d("0.005")) {
		t.Fatalf("periodic rate mismatch: got %s want 0.005", r)
	}
	if got := tvm.AnnualPercent(r, 12); !got.Equal(d("6")) {
		t.Fatalf("I/YR mismatch: got %s want 6", got)
	}
	if got := tvm.TotalPeriods(d("30"), 12); !got.Equal(d("360")) {
		t.Fatalf("N mismatch: got %s want 360", got)
	}
	if _, err := tvm.PeriodicRate(ctx, d("6"), 0); !errors.Is(err, num.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
