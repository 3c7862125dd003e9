package discount

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/valuation-kernel/pkg/validate"
)

func TestPresentValue(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		rate      float64
		periods   float64
		want      float64
		tolerance float64
		wantError bool
	}{
		{
			name:      "One period at 10%",
			amount:    110.0,
			rate:      0.10,
			periods:   1,
			want:      100.0,
			tolerance: 1e-9,
		},
		{
			name:      "Zero periods returns amount",
			amount:    250.0,
			rate:      0.05,
			periods:   0,
			want:      250.0,
			tolerance: 1e-9,
		},
		{
			name:      "Fractional periods",
			amount:    100.0,
			rate:      0.08,
			periods:   2.5,
			want:      100.0 / math.Pow(1.08, 2.5),
			tolerance: 1e-9,
		},
		{
			name:      "Negative rate above floor",
			amount:    100.0,
			rate:      -0.5,
			periods:   2,
			want:      400.0,
			tolerance: 1e-9,
		},
		{
			name:      "Rate at floor fails",
			amount:    100.0,
			rate:      -1.0,
			periods:   1,
			wantError: true,
		},
		{
			name:      "Negative periods fail",
			amount:    100.0,
			rate:      0.05,
			periods:   -1,
			wantError: true,
		},
		{
			name:      "Non-finite amount fails",
			amount:    math.NaN(),
			rate:      0.05,
			periods:   1,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PresentValue(tt.amount, tt.rate, tt.periods)
			if tt.wantError {
				if err == nil {
					t.Errorf("PresentValue() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("PresentValue() error = %v", err)
				return
			}
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("PresentValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Compounding a discounted amount must recover the original value.
func TestPresentValueCompoundRoundTrip(t *testing.T) {
	amounts := []float64{1.0, 100.0, 12345.67, 1e9}
	rates := []float64{0.01, 0.05, 0.10, 0.35, 1.5}
	periods := []float64{1, 2, 5, 10, 30}

	for _, amount := range amounts {
		for _, rate := range rates {
			for _, per := range periods {
				pv, err := PresentValue(amount, rate, per)
				if err != nil {
					t.Fatalf("PresentValue(%v, %v, %v) error = %v", amount, rate, per, err)
				}
				fv, err := Compound(pv, rate, per)
				if err != nil {
					t.Fatalf("Compound(%v, %v, %v) error = %v", pv, rate, per, err)
				}
				if math.Abs(fv-amount) > 1e-6*amount {
					t.Errorf("round trip of %v at rate %v over %v periods = %v", amount, rate, per, fv)
				}
			}
		}
	}
}

func TestNetPresentValue(t *testing.T) {
	tests := []struct {
		name      string
		rate      float64
		cashFlows []float64
		want      float64
		tolerance float64
		wantError bool
		wantIs    error
	}{
		{
			name:      "Outlay plus two inflows at 10%",
			rate:      0.10,
			cashFlows: []float64{-100, 60, 60},
			want:      -100 + 60/1.1 + 60/1.21,
			tolerance: 1e-9,
		},
		{
			name:      "Zero rate sums the flows",
			rate:      0.0,
			cashFlows: []float64{-100, 40, 70},
			want:      10.0,
			tolerance: 1e-9,
		},
		{
			name:      "Position zero is undiscounted",
			rate:      0.25,
			cashFlows: []float64{-500},
			want:      -500,
			tolerance: 1e-9,
		},
		{
			name:      "Empty series fails with domain error",
			rate:      0.10,
			cashFlows: []float64{},
			wantError: true,
			wantIs:    validate.ErrDomain,
		},
		{
			name:      "Rate at floor fails with domain error",
			rate:      -1.0,
			cashFlows: []float64{-100, 60},
			wantError: true,
			wantIs:    validate.ErrDomain,
		},
		{
			name:      "NaN element fails with invalid input",
			rate:      0.10,
			cashFlows: []float64{-100, math.NaN()},
			wantError: true,
			wantIs:    validate.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NetPresentValue(tt.rate, tt.cashFlows)
			if tt.wantError {
				if err == nil {
					t.Errorf("NetPresentValue() expected error but got none")
					return
				}
				if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
					t.Errorf("NetPresentValue() error = %v, want %v", err, tt.wantIs)
				}
				return
			}
			if err != nil {
				t.Errorf("NetPresentValue() error = %v", err)
				return
			}
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("NetPresentValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

// NPV of an all-positive series must be strictly decreasing in rate.
func TestNetPresentValueMonotonicity(t *testing.T) {
	cashFlows := []float64{100, 120, 140, 160}
	rates := []float64{0.0, 0.02, 0.05, 0.10, 0.25, 0.50, 1.0}

	previous := math.Inf(1)
	for _, rate := range rates {
		npv, err := NetPresentValue(rate, cashFlows)
		if err != nil {
			t.Fatalf("NetPresentValue(%v) error = %v", rate, err)
		}
		if npv >= previous {
			t.Errorf("NetPresentValue not strictly decreasing: %v at rate %v, previous %v", npv, rate, previous)
		}
		previous = npv
	}
}

func TestNetPresentValueDerivative(t *testing.T) {
	cashFlows := []float64{-500, 120, 150, 180, 210, 240}
	rate := 0.10
	h := 1e-7

	analytic, err := NetPresentValueDerivative(rate, cashFlows)
	if err != nil {
		t.Fatalf("NetPresentValueDerivative() error = %v", err)
	}

	upper, err := NetPresentValue(rate+h, cashFlows)
	if err != nil {
		t.Fatalf("NetPresentValue() error = %v", err)
	}
	lower, err := NetPresentValue(rate-h, cashFlows)
	if err != nil {
		t.Fatalf("NetPresentValue() error = %v", err)
	}
	numeric := (upper - lower) / (2 * h)

	if math.Abs(analytic-numeric) > 1e-3 {
		t.Errorf("analytic derivative %v differs from central difference %v", analytic, numeric)
	}
}

func TestFactor(t *testing.T) {
	got, err := Factor(0.10, 2)
	if err != nil {
		t.Fatalf("Factor() error = %v", err)
	}
	want := 1.0 / 1.21
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Factor(0.10, 2) = %v, want %v", got, want)
	}

	if _, err := Factor(-1.0, 1); err == nil {
		t.Errorf("Factor(-1.0, 1) expected error but got none")
	}
}
