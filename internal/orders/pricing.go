package orders

import "math"

// PriceBreakdown is the money side of one order
type PriceBreakdown struct {
	ListPrices []float64
	NetPrices  []float64
	Subtotal   float64
	Discount   float64
	ServiceFee float64
	Total      float64
}

// PriceOrder prices seats at basePrice x multiplier, applies discount clamped to
// the subtotal and spreads it over the tickets in proportion to their price.
// The last ticket absorbs rounding so ticket prices always add up.
func PriceOrder(basePrice float64, multipliers []float64, discount, serviceFeeRate float64) PriceBreakdown {
	breakdown := PriceBreakdown{
		ListPrices: make([]float64, len(multipliers)),
		NetPrices:  make([]float64, len(multipliers)),
	}

	for i, multiplier := range multipliers {
		breakdown.ListPrices[i] = round2(basePrice * multiplier)
		breakdown.Subtotal += breakdown.ListPrices[i]
	}
	breakdown.Subtotal = round2(breakdown.Subtotal)

	discount = math.Max(0, math.Min(discount, breakdown.Subtotal))
	breakdown.Discount = round2(discount)

	remaining := breakdown.Discount
	for i, price := range breakdown.ListPrices {
		share := remaining
		if i < len(breakdown.ListPrices)-1 && breakdown.Subtotal > 0 {
			share = round2(breakdown.Discount * price / breakdown.Subtotal)
		}
		if share > price {
			share = price
		}
		remaining = round2(remaining - share)
		breakdown.NetPrices[i] = round2(price - share)
	}

	net := breakdown.Subtotal - breakdown.Discount
	breakdown.ServiceFee = round2(net * serviceFeeRate)
	breakdown.Total = round2(net + breakdown.ServiceFee)
	return breakdown
}

func round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
