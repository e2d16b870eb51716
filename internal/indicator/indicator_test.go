package indicator

import (
	"math"
	"math/rand/v2"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func assertSeries(t *testing.T, name string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: expected length %d, got %d", name, len(want), len(got))
	}
	for i := range want {
		if math.IsNaN(want[i]) {
			if !math.IsNaN(got[i]) {
				t.Errorf("%s[%d]: expected NaN, got %v", name, i, got[i])
			}
			continue
		}
		if !approx(got[i], want[i]) {
			t.Errorf("%s[%d]: expected %v, got %v", name, i, want[i], got[i])
		}
	}
}

var nan = math.NaN()

func TestSMA(t *testing.T) {
	got := SMA([]float64{1, 2, 3, 4, 5}, 3)
	assertSeries(t, "sma", got, []float64{nan, nan, 2, 3, 4})
}

func TestSMA_TenCloses(t *testing.T) {
	closes := []float64{10, 11, 12, 11, 10, 9, 10, 11, 12, 13}
	got := SMA(closes, 3)
	assertSeries(t, "sma", got, []float64{nan, nan, 11, 34.0 / 3, 11, 10, 29.0 / 3, 10, 11, 12})
}

func TestSMA_WindowOne(t *testing.T) {
	in := []float64{4, 5, 6}
	assertSeries(t, "sma", SMA(in, 1), in)
}

func TestSMA_WindowLongerThanSeries(t *testing.T) {
	assertSeries(t, "sma", SMA([]float64{1, 2}, 5), []float64{nan, nan})
}

func TestEMA(t *testing.T) {
	got := EMA([]float64{1, 2, 3}, 3)
	assertSeries(t, "ema", got, []float64{1, 1.5, 2.25})
}

func TestEMA_SeededWithFirstClose(t *testing.T) {
	values := randomWalk(300)
	for _, span := range []int{5, 20, 50, 200} {
		got := EMA(values, span)
		if got[0] != values[0] {
			t.Fatalf("span %d: expected ema[0] = %v, got %v", span, values[0], got[0])
		}
		alpha := 2.0 / (float64(span) + 1)
		for i := 1; i < len(values); i++ {
			want := alpha*values[i] + (1-alpha)*got[i-1]
			if !approx(got[i], want) {
				t.Fatalf("span %d: ema[%d] = %v, want %v", span, i, got[i], want)
			}
		}
	}
}

func TestEMA_ConstantSeries(t *testing.T) {
	got := EMA([]float64{7, 7, 7, 7}, 50)
	assertSeries(t, "ema", got, []float64{7, 7, 7, 7})
}

func TestBollinger(t *testing.T) {
	b := Bollinger([]float64{1, 2, 3, 4}, 3, DefaultBandWidth)
	assertSeries(t, "mid", b.Mid, []float64{nan, nan, 2, 3})
	// Sample std of {1,2,3} is 1.
	assertSeries(t, "upper", b.Upper, []float64{nan, nan, 4, 5})
	assertSeries(t, "lower", b.Lower, []float64{nan, nan, 0, 1})
}

func TestBollinger_BandsOrdered(t *testing.T) {
	values := randomWalk(300)
	b := Bollinger(values, 20, DefaultBandWidth)
	for i := range values {
		if i < 19 {
			if !math.IsNaN(b.Mid[i]) || !math.IsNaN(b.Upper[i]) || !math.IsNaN(b.Lower[i]) {
				t.Fatalf("expected NaN warm-up at %d", i)
			}
			continue
		}
		if !(b.Lower[i] <= b.Mid[i] && b.Mid[i] <= b.Upper[i]) {
			t.Fatalf("bands out of order at %d: %v %v %v", i, b.Lower[i], b.Mid[i], b.Upper[i])
		}
		if !approx(b.Upper[i]-b.Mid[i], b.Mid[i]-b.Lower[i]) {
			t.Fatalf("bands not symmetric at %d", i)
		}
	}
}

func TestRSI_HandComputed(t *testing.T) {
	// period 2: alpha 0.5. t1: gain only -> 100.
	// t2: up=(0+0.5*1)/1.5=1/3, down=(1+0)/1.5=2/3, RS=0.5 -> 100/3.
	got := RSI([]float64{1, 2, 1}, 2)
	assertSeries(t, "rsi", got, []float64{nan, 100, 100.0 / 3})
}

func TestRSI_MonotonicRiseIs100(t *testing.T) {
	got := RSI([]float64{1, 2, 3, 4, 5, 6}, DefaultRSIPeriod)
	assertSeries(t, "rsi", got, []float64{nan, 100, 100, 100, 100, 100})
}

func TestRSI_MonotonicFallIs0(t *testing.T) {
	got := RSI([]float64{6, 5, 4, 3}, DefaultRSIPeriod)
	assertSeries(t, "rsi", got, []float64{nan, 0, 0, 0})
}

func TestRSI_Bounded(t *testing.T) {
	values := randomWalk(500)
	for i, v := range RSI(values, DefaultRSIPeriod) {
		if i == 0 {
			if !math.IsNaN(v) {
				t.Fatalf("expected NaN at 0, got %v", v)
			}
			continue
		}
		if v < 0 || v > 100 {
			t.Fatalf("rsi[%d] = %v out of [0,100]", i, v)
		}
	}
}

func TestInvalidWindowsYieldNaN(t *testing.T) {
	in := []float64{1, 2, 3}
	for name, got := range map[string][]float64{
		"sma":   SMA(in, 0),
		"ema":   EMA(in, -1),
		"bb":    Bollinger(in, 0, 2).Upper,
		"rsi":   RSI(in, 0),
		"bbone": Bollinger(in, 1, 2).Upper,
	} {
		assertSeries(t, name, got, []float64{nan, nan, nan})
	}
}

func TestEmptyInput(t *testing.T) {
	if len(SMA(nil, 3)) != 0 || len(EMA(nil, 3)) != 0 || len(RSI(nil, 3)) != 0 {
		t.Error("expected empty results for empty input")
	}
	if len(Bollinger(nil, 3, 2).Mid) != 0 {
		t.Error("expected empty bands for empty input")
	}
}

func randomWalk(n int) []float64 {
	r := rand.New(rand.NewPCG(1, 2))
	out := make([]float64, n)
	price := 100.0
	for i := range out {
		price += r.NormFloat64()
		out[i] = price
	}
	return out
}
