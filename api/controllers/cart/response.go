package cart

import (
	cartdto "github.com/mobicorp/spaceplanner-backend/api/controllers/cart/dto"
	cartsvc "github.com/mobicorp/spaceplanner-backend/internal/cart"
)

func newCart(cartID string, lines []cartsvc.Line) cartdto.Cart {
	items := make([]cartdto.CartLine, 0, len(lines))
	for _, l := range lines {
		items = append(items, cartdto.CartLine{ProductID: l.ProductID, Qty: l.Qty})
	}
	return cartdto.Cart{
		CartID:     cartID,
		Items:      items,
		TotalItems: cartsvc.TotalItems(lines),
	}
}

func newDetailedCart(cartID string, detailed []cartsvc.DetailedLine) cartdto.Cart {
	items := make([]cartdto.CartLine, 0, len(detailed))
	total := 0
	for _, d := range detailed {
		product := d.Product
		items = append(items, cartdto.CartLine{ProductID: product.ID, Qty: d.Qty, Product: &product})
		total += d.Qty
	}
	return cartdto.Cart{
		CartID:     cartID,
		Items:      items,
		TotalItems: total,
	}
}

func newOrderSummary(cartID string, summary cartsvc.OrderSummary) cartdto.OrderSummary {
	return cartdto.OrderSummary{
		CartID:     cartID,
		Text:       summary.Text,
		URL:        summary.URL,
		TotalItems: summary.TotalItems,
	}
}
