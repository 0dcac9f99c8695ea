package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	cartdto "github.com/mobicorp/spaceplanner-backend/api/controllers/cart/dto"
	"github.com/mobicorp/spaceplanner-backend/api/middleware"
	"github.com/mobicorp/spaceplanner-backend/api/responses"
	"github.com/mobicorp/spaceplanner-backend/api/validators"
	cartsvc "github.com/mobicorp/spaceplanner-backend/internal/cart"
	pkgerrors "github.com/mobicorp/spaceplanner-backend/pkg/errors"
	"github.com/mobicorp/spaceplanner-backend/pkg/logger"
)

// CartFetch returns the stored cart. With ?detailed=true each line carries its
// catalog product and unknown products are left out.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, ok := requireCart(w, r, svc, logg)
		if !ok {
			return
		}

		detailed, err := validators.ParseQueryBool(r, "detailed", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if detailed {
			lines, err := svc.Detailed(r.Context(), cartID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, newDetailedCart(cartID, lines))
			return
		}

		lines, err := svc.Load(r.Context(), cartID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCart(cartID, lines))
	}
}

// CartReplace overwrites the whole cart.
func CartReplace(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, ok := requireCart(w, r, svc, logg)
		if !ok {
			return
		}

		var payload cartdto.ReplaceCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, err := svc.Save(r.Context(), cartID, toLines(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCart(cartID, lines))
	}
}

// CartAddItem adds one unit of a product.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, ok := requireCart(w, r, svc, logg)
		if !ok {
			return
		}

		var payload cartdto.AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, err := svc.Add(r.Context(), cartID, payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCart(cartID, lines))
	}
}

// CartSetQuantity sets a line quantity; zero or less removes the line.
func CartSetQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, ok := requireCart(w, r, svc, logg)
		if !ok {
			return
		}

		var payload cartdto.SetQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, err := svc.SetQuantity(r.Context(), cartID, chi.URLParam(r, "productId"), *payload.Qty)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCart(cartID, lines))
	}
}

func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, ok := requireCart(w, r, svc, logg)
		if !ok {
			return
		}

		lines, err := svc.Remove(r.Context(), cartID, chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCart(cartID, lines))
	}
}

func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, ok := requireCart(w, r, svc, logg)
		if !ok {
			return
		}

		if err := svc.Clear(r.Context(), cartID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCart(cartID, nil))
	}
}

// CartOrderSummary renders the WhatsApp quote request. ?mobile=true selects the app link.
func CartOrderSummary(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, ok := requireCart(w, r, svc, logg)
		if !ok {
			return
		}

		mobile, err := validators.ParseQueryBool(r, "mobile", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.OrderSummary(r.Context(), cartID, mobile)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderSummary(cartID, summary))
	}
}

func requireCart(w http.ResponseWriter, r *http.Request, svc cartsvc.Service, logg *logger.Logger) (string, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
		return "", false
	}
	cartID := middleware.CartIDFromContext(r.Context())
	if cartID == "" {
		cartID = chi.URLParam(r, "cartId")
	}
	if cartID == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart id missing"))
		return "", false
	}
	return cartID, true
}
