// Package bond prices fixed-coupon instruments and computes duration
// statistics over the kernel's discounting primitives.
package bond

import (
	"fmt"

	"github.com/iwvelando/valuation-kernel/pkg/discount"
	"github.com/iwvelando/valuation-kernel/pkg/mathutil"
	"github.com/iwvelando/valuation-kernel/pkg/validate"
)

// Spec describes a fixed-coupon bond.
type Spec struct {
	// Face is the par value repaid at maturity, > 0.
	Face float64

	// CouponRate is the annual coupon rate in decimal form, >= 0.
	CouponRate float64

	// Yield is the annual yield to maturity in decimal form, > -1.
	Yield float64

	// Years is the whole number of years to maturity, > 0.
	Years int

	// Frequency is the number of coupon payments per year, > 0.
	Frequency int
}

// validate applies the shared guards to every field.
func (s Spec) validate() error {
	if err := validate.Positive("face value", s.Face); err != nil {
		return err
	}
	if err := validate.NonNegative("coupon rate", s.CouponRate); err != nil {
		return err
	}
	if err := validate.RateFloor("yield", s.Yield); err != nil {
		return err
	}
	if err := validate.PositiveInt("years to maturity", s.Years); err != nil {
		return err
	}
	return validate.PositiveInt("coupon frequency", s.Frequency)
}

// periodRate is the per-period discount rate, yield/frequency.
func (s Spec) periodRate() float64 {
	return s.Yield / float64(s.Frequency)
}

// coupon is the per-period coupon payment, face*couponRate/frequency.
func (s Spec) coupon() float64 {
	return s.Face * s.CouponRate / float64(s.Frequency)
}

// Price returns the present value of all coupon payments plus the face value
// at maturity, discounted at the per-period rate yield/frequency. When yield
// equals the coupon rate the price equals face (par pricing identity).
func Price(s Spec) (float64, error) {
	if err := s.validate(); err != nil {
		return 0, err
	}

	rate := s.periodRate()
	coupon := s.coupon()
	periods := s.Years * s.Frequency

	price := 0.0
	for t := 1; t <= periods; t++ {
		pv, err := discount.PresentValue(coupon, rate, float64(t))
		if err != nil {
			return 0, err
		}
		price += pv
	}
	facePV, err := discount.PresentValue(s.Face, rate, float64(periods))
	if err != nil {
		return 0, err
	}
	return price + facePV, nil
}

// MacaulayDuration returns the value-weighted average time to receipt of the
// bond's cash flows, in years. The final period's cash flow includes both the
// coupon and the face value. Fails when the computed price is effectively
// zero, where duration is undefined.
func MacaulayDuration(s Spec) (float64, error) {
	price, err := Price(s)
	if err != nil {
		return 0, err
	}
	if mathutil.IsZero(price) {
		return 0, fmt.Errorf("%w: bond price %v is effectively zero, duration undefined", validate.ErrDomain, price)
	}

	rate := s.periodRate()
	coupon := s.coupon()
	periods := s.Years * s.Frequency

	weighted := 0.0
	for t := 1; t <= periods; t++ {
		cf := coupon
		if t == periods {
			cf += s.Face
		}
		pv, err := discount.PresentValue(cf, rate, float64(t))
		if err != nil {
			return 0, err
		}
		years := float64(t) / float64(s.Frequency)
		weighted += years * pv
	}
	return weighted / price, nil
}

// ModifiedDuration is the Macaulay duration scaled by 1/(1 + yield/frequency),
// the price sensitivity to yield. It is a direct derived value with no
// separate validation beyond MacaulayDuration's.
func ModifiedDuration(s Spec) (float64, error) {
	mac, err := MacaulayDuration(s)
	if err != nil {
		return 0, err
	}
	return mac / (1.0 + s.periodRate()), nil
}
