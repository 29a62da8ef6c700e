package forecast

import (
	"math"
	"testing"
	"time"

	"metacbot/internal/question"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", value, err)
	}
	return parsed
}

func TestValidate_ClampsBinaryHigh(t *testing.T) {
	f := Validate(question.TypeBinary, Forecast{Kind: KindBinary, Probability: 2}, 0.01, 0.99)
	if f.Probability != 0.99 {
		t.Errorf("expected 0.99, got %f", f.Probability)
	}
}

func TestValidate_ClampsBinaryLow(t *testing.T) {
	f := Validate(question.TypeBinary, Forecast{Kind: KindBinary, Probability: -5}, 0.01, 0.99)
	if f.Probability != 0.01 {
		t.Errorf("expected 0.01, got %f", f.Probability)
	}
}

func TestValidate_RenormalizesDistribution(t *testing.T) {
	in := Forecast{Kind: KindDistribution, Distribution: []float64{2, 1, 1}}
	f := Validate(question.TypeMultipleChoice, in, 0.01, 0.99)
	var sum float64
	for _, v := range f.Distribution {
		sum += v
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("distribution should sum to 1, got %f", sum)
	}
	if math.Abs(f.Distribution[0]-0.5) > 1e-9 {
		t.Errorf("expected first weight 0.5, got %f", f.Distribution[0])
	}
}

func TestValidate_FloorsNegativeWeights(t *testing.T) {
	in := Forecast{Kind: KindDistribution, Distribution: []float64{-1, 1}}
	f := Validate(question.TypeMultipleChoice, in, 0.01, 0.99)
	if f.Distribution[0] != 0 || f.Distribution[1] != 1 {
		t.Errorf("expected [0 1], got %v", f.Distribution)
	}
}

func TestValidate_ZeroTotalDistribution(t *testing.T) {
	in := Forecast{Kind: KindDistribution, Distribution: []float64{0, 0}}
	f := Validate(question.TypeMultipleChoice, in, 0.01, 0.99)
	if f.Distribution[0] != 0 || f.Distribution[1] != 0 {
		t.Errorf("zero-weight distribution should stay zero after divide by 1, got %v", f.Distribution)
	}
}

func TestValidate_SortsQuantiles(t *testing.T) {
	in := Forecast{Kind: KindQuantiles, P10: 0.9, P50: 0.3, P90: 0.5}
	f := Validate(question.TypeNumeric, in, 0.01, 0.99)
	if f.P10 != 0.3 || f.P50 != 0.5 || f.P90 != 0.9 {
		t.Errorf("expected sorted quantiles 0.3/0.5/0.9, got %f/%f/%f", f.P10, f.P50, f.P90)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	cases := []struct {
		name  string
		qtype question.Type
		in    Forecast
	}{
		{"binary", question.TypeBinary, Forecast{Kind: KindBinary, Probability: 1.7}},
		{"choice", question.TypeMultipleChoice, Forecast{Kind: KindDistribution, Distribution: []float64{3, 1}}},
		{"quantiles", question.TypeNumeric, Forecast{Kind: KindQuantiles, P10: 0.8, P50: 0.1, P90: 0.4}},
	}
	for _, tc := range cases {
		once := Validate(tc.qtype, tc.in, 0.01, 0.99)
		twice := Validate(tc.qtype, once, 0.01, 0.99)
		if once.Probability != twice.Probability ||
			once.P10 != twice.P10 || once.P50 != twice.P50 || once.P90 != twice.P90 {
			t.Errorf("%s: validate not idempotent: %+v vs %+v", tc.name, once, twice)
		}
		for i := range once.Distribution {
			if once.Distribution[i] != twice.Distribution[i] {
				t.Errorf("%s: distribution changed on re-validate", tc.name)
			}
		}
	}
}

func TestBaseline_PerType(t *testing.T) {
	bin := Baseline(question.Question{Type: question.TypeBinary})
	if bin.Probability == nil || *bin.Probability != 0.5 {
		t.Errorf("binary baseline should be 0.5, got %v", bin.Probability)
	}

	choice := Baseline(question.Question{Type: question.TypeMultipleChoice, Options: []string{"a", "b", "c", "d"}})
	if len(choice.Distribution) != 4 || choice.Distribution[0] != 0.25 {
		t.Errorf("choice baseline should be uniform over options, got %v", choice.Distribution)
	}

	empty := Baseline(question.Question{Type: question.TypeMultipleChoice})
	if len(empty.Distribution) != 1 || empty.Distribution[0] != 1.0 {
		t.Errorf("optionless choice baseline should be [1.0], got %v", empty.Distribution)
	}

	num := Baseline(question.Question{Type: question.TypeNumeric})
	if num.P10 == nil || *num.P10 != 0.1 || *num.P50 != 0.5 || *num.P90 != 0.9 {
		t.Errorf("numeric baseline quantiles wrong: %+v", num)
	}
}

func TestStats_DateCarriesDateQuantiles(t *testing.T) {
	now := mustTime(t, "2026-03-01T00:00:00Z")
	e := Stats(question.Question{Type: question.TypeDate}, 0, now)
	if e.DateQuantiles == nil {
		t.Fatal("date stats should carry date quantiles")
	}
	if e.DateQuantiles.P50 != "2026-03-31T00:00:00Z" {
		t.Errorf("expected p50 a month out, got %s", e.DateQuantiles.P50)
	}
}

func TestExtractFeatures(t *testing.T) {
	q := question.Question{Type: question.TypeBinary, PredictionEndTime: "2026-01-01T00:00:00Z"}
	feats := ExtractFeatures(q, 4)
	if feats.EvidenceCount != 4 || !feats.HasCloseTime {
		t.Errorf("unexpected features: %+v", feats)
	}
}
