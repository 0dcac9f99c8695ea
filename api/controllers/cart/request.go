package cart

import (
	cartdto "github.com/mobicorp/spaceplanner-backend/api/controllers/cart/dto"
	cartsvc "github.com/mobicorp/spaceplanner-backend/internal/cart"
)

func toLines(payload cartdto.ReplaceCartRequest) []cartsvc.Line {
	lines := make([]cartsvc.Line, 0, len(payload.Items))
	for _, item := range payload.Items {
		lines = append(lines, cartsvc.Line{ProductID: item.ProductID, Qty: item.Qty})
	}
	return lines
}
