package pricing

import "github.com/shopspring/decimal"

// AggregateCart prices every line independently and sums the results.
// The composed discount is per-unit and scales by quantity exactly
// once here. The cart total is not floored at zero.
func AggregateCart(items []CartItem) CartTotals {
	totals := CartTotals{
		Subtotal:      decimal.Zero,
		TotalDiscount: decimal.Zero,
		Breakdown:     make([]ItemBreakdown, 0, len(items)),
	}

	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		itemSubtotal := item.Price.Mul(qty)

		applied := ComposeApplicable(item.Price, item.Quantity, item.Discount, item.Deal)

		itemDiscount := decimal.Zero
		if applied != nil {
			itemDiscount = applied.Value.Mul(qty)
		}

		totals.Subtotal = totals.Subtotal.Add(itemSubtotal)
		totals.TotalDiscount = totals.TotalDiscount.Add(itemDiscount)

		totals.Breakdown = append(totals.Breakdown, ItemBreakdown{
			ProductID:    item.ProductID,
			ItemPrice:    itemSubtotal,
			ItemDiscount: itemDiscount,
			ItemTotal:    itemSubtotal.Sub(itemDiscount),
			Applied:      applied,
		})
	}

	totals.Total = totals.Subtotal.Sub(totals.TotalDiscount)
	return totals
}
