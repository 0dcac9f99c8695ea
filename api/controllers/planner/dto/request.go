package plannerdto

import (
	"encoding/json"
	"strings"

	"github.com/mobicorp/spaceplanner-backend/internal/planner"
	"github.com/mobicorp/spaceplanner-backend/pkg/enums"
	"github.com/mobicorp/spaceplanner-backend/pkg/types"
)

// PlanningRequest is the body of POST /api/space-planner. Every field is optional and
// scalar fields accept strings or numbers.
type PlanningRequest struct {
	Width      types.FlexString `json:"width"`
	Length     types.FlexString `json:"length"`
	Height     types.FlexString `json:"height"`
	Seats      types.FlexString `json:"seats"`
	SpaceType  types.FlexString `json:"spaceType"`
	Style      types.FlexString `json:"style"`
	Priority   types.FlexString `json:"priority"`
	Budget     types.FlexString `json:"budget"`
	ExtraNotes types.FlexString `json:"extraNotes"`
	Cart       CartLines        `json:"cart"`
	CartID     types.FlexString `json:"cartId"`
}

type CartLine struct {
	ProductID types.FlexString `json:"productId"`
	Name      types.FlexString `json:"name"`
	Category  types.FlexString `json:"category"`
	Line      types.FlexString `json:"line"`
	Qty       types.FlexString `json:"qty"`
}

// CartLines decodes leniently: a non-array value is an empty cart and entries that
// are not objects are skipped.
type CartLines []CartLine

func (c *CartLines) UnmarshalJSON(data []byte) error {
	*c = nil
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for _, item := range raw {
		var line CartLine
		if err := json.Unmarshal(item, &line); err != nil {
			continue
		}
		*c = append(*c, line)
	}
	return nil
}

func (p PlanningRequest) ToPlanningRequest() planner.PlanningRequest {
	cart := make([]planner.CartLine, 0, len(p.Cart))
	for _, line := range p.Cart {
		qty := strings.TrimSpace(line.Qty.Text)
		if qty == "" {
			qty = "1"
		}
		cart = append(cart, planner.CartLine{
			ProductID: strings.TrimSpace(line.ProductID.Text),
			Name:      line.Name.Text,
			Category:  line.Category.Text,
			Line:      line.Line.Text,
			Qty:       qty,
		})
	}
	return planner.PlanningRequest{
		Width:      p.Width,
		Length:     p.Length,
		Height:     p.Height,
		Seats:      p.Seats,
		SpaceType:  p.SpaceType.Text,
		Style:      enums.StyleTag(strings.TrimSpace(p.Style.Text)),
		Priority:   p.Priority.Text,
		Budget:     p.Budget.Text,
		ExtraNotes: p.ExtraNotes.Text,
		Cart:       cart,
	}
}
