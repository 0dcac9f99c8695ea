package cart

import "strings"

// Line is one persisted cart entry. A cart holds at most one line per product and
// every line has Qty >= 1.
type Line struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// normalize merges duplicate products, drops blank ids and non-positive quantities,
// and keeps first-seen order.
func normalize(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	pos := make(map[string]int, len(lines))
	for _, l := range lines {
		id := strings.TrimSpace(l.ProductID)
		if id == "" || l.Qty <= 0 {
			continue
		}
		if i, ok := pos[id]; ok {
			out[i].Qty += l.Qty
			continue
		}
		pos[id] = len(out)
		out = append(out, Line{ProductID: id, Qty: l.Qty})
	}
	return out
}

// TotalItems sums the quantities of lines.
func TotalItems(lines []Line) int {
	total := 0
	for _, l := range lines {
		total += l.Qty
	}
	return total
}
