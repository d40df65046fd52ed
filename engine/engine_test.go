package engine_test

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/fincalc/cashflow"
	"github.com/meenmo/fincalc/config"
	"github.com/meenmo/fincalc/depreciation"
	"github.com/meenmo/fincalc/engine"
	"github.com/meenmo/fincalc/num"
	"github.com/meenmo/fincalc/tvm"
)

func d(s string) decimal.Decimal { return num.MustParse(s) }

var mortgage = tvm.Params{N: d("360"), Rate: d("0.005"), PV: d("-200000")}

func TestEngine_SolveTVM(t *testing.T) {
	t.Parallel()
	e := engine.Default()

	pmt, err := e.SolveTVM(mortgage, tvm.TargetPMT)
	require.NoError(t, err)
	assert.Equal(t, "1199.10", e.Format(pmt))
}

func TestEngine_LowPrecisionKeepsDisplay(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Precision = num.MinScale
	cfg.DisplayPlaces = 4
	e, err := engine.New(cfg)
	require.NoError(t, err)

	pmt, err := e.SolveTVM(mortgage, tvm.TargetPMT)
	require.NoError(t, err)
	assert.Equal(t, "1199.1011", e.Format(pmt))
}

func TestEngine_ComputeIRR(t *testing.T) {
	t.Parallel()
	e := engine.Default()

	entries := []cashflow.Entry{
		{Amount: d("-1000")}, {Amount: d("300")}, {Amount: d("400")}, {Amount: d("500")}, {Amount: d("600")},
	}
	irr, err := e.ComputeIRR(entries)
	require.NoError(t, err)
	assert.Equal(t, "24.89", e.Format(irr))

	npv, err := e.ComputeNPV(entries, irr.Div(num.Hundred))
	require.NoError(t, err)
	assert.True(t, npv.Abs().LessThan(e.Settings().Tolerance), "NPV at IRR = %s", npv)

	_, err = e.ComputeIRR(entries[:1])
	assert.ErrorIs(t, err, num.ErrInvalidInput)
}

func TestEngine_RateConversion(t *testing.T) {
	t.Parallel()
	e := engine.Default()

	eff, err := e.EffectiveRate(d("12"), 12)
	require.NoError(t, err)
	assert.Equal(t, "12.68", e.Format(eff))

	nom, err := e.NominalRate(eff, 12)
	require.NoError(t, err)
	assert.True(t, nom.Sub(d("12")).Abs().LessThan(d("1e-18")), "nominal %s", nom)
}

func TestEngine_Depreciation(t *testing.T) {
	t.Parallel()
	e := engine.Default()

	r, err := e.Depreciation(depreciation.StraightLine, depreciation.Params{
		Cost: d("10000"), Salvage: d("1000"), Life: 5, Period: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "1800.00", e.Format(r.Amount))
	assert.Equal(t, "5400.00", e.Format(r.Accumulated))
	assert.Equal(t, "4600.00", e.Format(r.BookValue))
}

func TestEngine_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Solver.MaxIterations = 0
	_, err := engine.New(cfg)
	assert.ErrorIs(t, err, num.ErrInvalidInput)
}

func TestEngine_ConcurrentCallsAgree(t *testing.T) {
	t.Parallel()
	e := engine.Default()

	want, err := e.SolveTVM(tvm.Params{N: d("360"), PV: d("200000"), PMT: d("-1199.10")}, tvm.TargetRate)
	require.NoError(t, err)

	const workers = 16
	results := make([]decimal.Decimal, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = e.SolveTVM(tvm.Params{N: d("360"), PV: d("200000"), PMT: d("-1199.10")}, tvm.TargetRate)
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.True(t, want.Equal(results[i]), "worker %d: got %s want %s", i, results[i], want)
	}
}
