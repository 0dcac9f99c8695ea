package planner

import (
	"github.com/mobicorp/spaceplanner-backend/pkg/enums"
	"github.com/mobicorp/spaceplanner-backend/pkg/types"
)

// CartLine is one selected product as the planner form sends it.
type CartLine struct {
	ProductID string
	Name      string
	Category  string
	Line      string
	Qty       string
}

// PlanningRequest carries the room data for one advisory call. Every field is optional.
type PlanningRequest struct {
	Width      types.FlexString
	Length     types.FlexString
	Height     types.FlexString
	Seats      types.FlexString
	SpaceType  string
	Style      enums.StyleTag
	Priority   string
	Budget     string
	ExtraNotes string
	Cart       []CartLine
}

// AdvisoryResponse is the single answer produced per request. SuggestionText is never empty.
type AdvisoryResponse struct {
	Error          string `json:"error,omitempty"`
	SuggestionText string `json:"suggestionText"`
}
