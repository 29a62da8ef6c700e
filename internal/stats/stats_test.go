package stats

import (
	"math"
	"testing"
	"time"
)

func TestBetaUpdate_PosteriorMean(t *testing.T) {
	// (1+3) / (1+1+3+1) = 0.667
	posterior := BetaUpdate(1, 1, 3, 1)
	if math.Abs(posterior.Probability-4.0/6.0) > 1e-9 {
		t.Errorf("expected probability 0.667, got %f", posterior.Probability)
	}
	if posterior.Alpha != 4 || posterior.Beta != 2 {
		t.Errorf("unexpected posterior parameters: alpha=%f beta=%f", posterior.Alpha, posterior.Beta)
	}
}

func TestForecastBinary_SyntheticCounts(t *testing.T) {
	// 5 evidence items: pos=2, neg=3 -> (1+2)/(2+5) = 3/7.
	posterior := ForecastBinary(5)
	if math.Abs(posterior.Probability-3.0/7.0) > 1e-9 {
		t.Errorf("expected 3/7, got %f", posterior.Probability)
	}
}

func TestForecastBinary_NoEvidence(t *testing.T) {
	posterior := ForecastBinary(0)
	if posterior.Probability != 0.5 {
		t.Errorf("expected uniform prior mean 0.5, got %f", posterior.Probability)
	}
}

func TestDirichletUpdate_SumsToOne(t *testing.T) {
	for _, k := range []int{1, 3, 7} {
		dist := DirichletUpdate(k, 1.0)
		if len(dist) != k {
			t.Fatalf("k=%d: expected %d weights, got %d", k, k, len(dist))
		}
		var sum float64
		for _, v := range dist {
			sum += v
		}
		if math.Abs(sum-1.0) > 1e-6 {
			t.Errorf("k=%d: distribution sums to %f", k, sum)
		}
	}
}

func TestDirichletUpdate_FloorsAtOneCategory(t *testing.T) {
	dist := DirichletUpdate(0, 1.0)
	if len(dist) != 1 || dist[0] != 1.0 {
		t.Errorf("expected single-point distribution, got %v", dist)
	}
}

func TestForecastNumeric_SortsInput(t *testing.T) {
	qs := ForecastNumeric([]float64{0.3, 0.9, 0.5})
	if qs.P10 != 0.3 || qs.P50 != 0.5 || qs.P90 != 0.9 {
		t.Errorf("expected sorted quantiles, got %+v", qs)
	}
}

func TestForecastNumeric_Defaults(t *testing.T) {
	qs := ForecastNumeric(nil)
	if qs.P10 != 0.2 || qs.P50 != 0.5 || qs.P90 != 0.8 {
		t.Errorf("unexpected default quantiles: %+v", qs)
	}
}

func TestForecastNumeric_DoesNotMutateInput(t *testing.T) {
	values := []float64{0.9, 0.1}
	ForecastNumeric(values)
	if values[0] != 0.9 {
		t.Error("input slice was mutated")
	}
}

func TestForecastDate_CenterAndSpread(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	dq := ForecastDate(now, 30)

	p10, _ := time.Parse(time.RFC3339, dq.P10)
	p50, _ := time.Parse(time.RFC3339, dq.P50)
	p90, _ := time.Parse(time.RFC3339, dq.P90)

	if !p50.Equal(now.AddDate(0, 0, 30)) {
		t.Errorf("expected center 30 days out, got %v", p50)
	}
	if !p10.Equal(p50.AddDate(0, 0, -10)) || !p90.Equal(p50.AddDate(0, 0, 10)) {
		t.Errorf("expected ±10 day spread, got %v / %v", p10, p90)
	}
}

func TestBrier(t *testing.T) {
	if got := Brier(0.8, 1); math.Abs(got-0.04) > 1e-9 {
		t.Errorf("expected 0.04, got %f", got)
	}
	if got := Brier(0.8, 0); math.Abs(got-0.64) > 1e-9 {
		t.Errorf("expected 0.64, got %f", got)
	}
}

func TestLogScore_FiniteAtExtremes(t *testing.T) {
	if got := LogScore(1.0, 0); math.IsInf(got, 0) || math.IsNaN(got) {
		t.Errorf("expected finite score, got %f", got)
	}
	if got := LogScore(0.0, 1); math.IsInf(got, 0) || math.IsNaN(got) {
		t.Errorf("expected finite score, got %f", got)
	}
}

func TestCalibrateProbability_Clamps(t *testing.T) {
	if got := CalibrateProbability(1.5, 0.01, 0.99); got != 0.99 {
		t.Errorf("expected 0.99, got %f", got)
	}
	if got := CalibrateProbability(-2, 0.01, 0.99); got != 0.01 {
		t.Errorf("expected 0.01, got %f", got)
	}
	if got := CalibrateProbability(0.4, 0.01, 0.99); got != 0.4 {
		t.Errorf("expected passthrough, got %f", got)
	}
}

func TestFitDistribution(t *testing.T) {
	m := FitDistribution([]float64{0.2, 0.4, 0.6})
	if math.Abs(m.Mean-0.4) > 1e-9 {
		t.Errorf("expected mean 0.4, got %f", m.Mean)
	}
	if m.Std <= 0 {
		t.Errorf("expected positive std, got %f", m.Std)
	}

	empty := FitDistribution(nil)
	if empty.Mean != 0.5 || empty.Std != 0 {
		t.Errorf("unexpected empty-set moments: %+v", empty)
	}
}
