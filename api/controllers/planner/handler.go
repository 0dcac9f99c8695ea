package planner

import (
	"net/http"
	"strconv"
	"strings"

	plannerdto "github.com/mobicorp/spaceplanner-backend/api/controllers/planner/dto"
	"github.com/mobicorp/spaceplanner-backend/api/responses"
	"github.com/mobicorp/spaceplanner-backend/api/validators"
	cartsvc "github.com/mobicorp/spaceplanner-backend/internal/cart"
	plannersvc "github.com/mobicorp/spaceplanner-backend/internal/planner"
	pkgerrors "github.com/mobicorp/spaceplanner-backend/pkg/errors"
	"github.com/mobicorp/spaceplanner-backend/pkg/logger"
)

const invalidBodyTag = "Solicitud inválida"

// SpacePlanner answers POST /api/space-planner with a flat {suggestionText} body. When the
// request names a cartId and carries no cart lines, the stored cart is used instead.
func SpacePlanner(svc plannersvc.Service, carts cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			writeFailure(w, http.StatusInternalServerError, plannersvc.FailureTag)
			return
		}

		var payload plannerdto.PlanningRequest
		if err := validators.DecodeOptionalJSONBody(r, &payload); err != nil {
			logg.Warn(ctx, "planner.invalid_body")
			writeFailure(w, http.StatusBadRequest, invalidBodyTag)
			return
		}

		req := payload.ToPlanningRequest()
		if cartID := strings.TrimSpace(payload.CartID.Text); cartID != "" && len(req.Cart) == 0 && carts != nil {
			detailed, err := carts.Detailed(ctx, cartID)
			if err != nil {
				logg.Warn(logg.WithCartID(ctx, cartID), "planner.stored_cart_unavailable")
			} else {
				req.Cart = plannerLines(detailed)
			}
		}

		resp, err := svc.Advise(ctx, req)
		if err != nil {
			dump := pkgerrors.Dump(err)
			fields := map[string]any{"retryable": dump.Retryable}
			if dump.UpstreamStatus != 0 {
				fields["upstream_status"] = dump.UpstreamStatus
				fields["upstream_body"] = dump.UpstreamBody
			}
			logg.Error(logg.WithFields(ctx, fields), "planner.generation_failed", err)
			responses.WriteJSON(w, http.StatusInternalServerError, resp)
			return
		}
		responses.WriteJSON(w, http.StatusOK, resp)
	}
}

// PanicFallback keeps the flat advisory contract when the handler chain panics.
func PanicFallback(w http.ResponseWriter, _ *http.Request, _ error) {
	writeFailure(w, http.StatusInternalServerError, plannersvc.FailureTag)
}

func writeFailure(w http.ResponseWriter, status int, tag string) {
	responses.WriteJSON(w, status, plannersvc.AdvisoryResponse{
		Error:          tag,
		SuggestionText: plannersvc.FailureFallback,
	})
}

func plannerLines(detailed []cartsvc.DetailedLine) []plannersvc.CartLine {
	out := make([]plannersvc.CartLine, 0, len(detailed))
	for _, d := range detailed {
		out = append(out, plannersvc.CartLine{
			ProductID: d.Product.ID,
			Name:      d.Product.Name,
			Category:  d.Product.Category,
			Line:      d.Product.Line,
			Qty:       strconv.Itoa(d.Qty),
		})
	}
	return out
}
