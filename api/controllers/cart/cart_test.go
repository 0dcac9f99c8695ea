package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	cartdto "github.com/mobicorp/spaceplanner-backend/api/controllers/cart/dto"
	"github.com/mobicorp/spaceplanner-backend/api/middleware"
	cartsvc "github.com/mobicorp/spaceplanner-backend/internal/cart"
	"github.com/mobicorp/spaceplanner-backend/internal/inventory"
)

type stubCatalog struct{}

func (stubCatalog) ListProducts(context.Context) ([]inventory.Product, error) {
	width := 60.0
	return []inventory.Product{
		{ID: "12", Name: "Silla Ergo", Category: "Operativa", Line: "Mobi", WidthCm: &width},
		{ID: "14", Name: "Escritorio Nova", Category: "Gerencial", Line: "Exec"},
	}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, err := cartsvc.NewService(cartsvc.ServiceParams{Store: cartsvc.NewMemoryStore(), Catalog: stubCatalog{}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	r := chi.NewRouter()
	r.Route("/api/carts/{cartId}", func(r chi.Router) {
		r.Use(middleware.CartScope(nil))
		r.Get("/", CartFetch(svc, nil))
		r.Put("/", CartReplace(svc, nil))
		r.Delete("/", CartClear(svc, nil))
		r.Get("/summary", CartOrderSummary(svc, nil))
		r.Post("/items", CartAddItem(svc, nil))
		r.Patch("/items/{productId}", CartSetQuantity(svc, nil))
		r.Delete("/items/{productId}", CartRemoveItem(svc, nil))
	})
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func decodeCart(t *testing.T, resp *httptest.ResponseRecorder) cartdto.Cart {
	t.Helper()
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data cartdto.Cart `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestCartLifecycle(t *testing.T) {
	h := newTestRouter(t)

	decodeCart(t, do(t, h, http.MethodPost, "/api/carts/abc/items", `{"productId":"12"}`))
	decodeCart(t, do(t, h, http.MethodPost, "/api/carts/abc/items", `{"productId":"14"}`))
	cart := decodeCart(t, do(t, h, http.MethodPost, "/api/carts/abc/items", `{"productId":"12"}`))
	if cart.CartID != "abc" || len(cart.Items) != 2 || cart.Items[0].Qty != 2 || cart.TotalItems != 3 {
		t.Fatalf("unexpected cart after adds: %+v", cart)
	}

	cart = decodeCart(t, do(t, h, http.MethodPatch, "/api/carts/abc/items/14", `{"qty":5}`))
	if cart.Items[1].Qty != 5 {
		t.Fatalf("expected qty 5, got %+v", cart.Items)
	}

	cart = decodeCart(t, do(t, h, http.MethodPatch, "/api/carts/abc/items/12", `{"qty":0}`))
	if len(cart.Items) != 1 || cart.Items[0].ProductID != "14" {
		t.Fatalf("qty 0 should remove the line: %+v", cart.Items)
	}

	cart = decodeCart(t, do(t, h, http.MethodGet, "/api/carts/abc", ""))
	if len(cart.Items) != 1 || cart.Items[0].Product != nil {
		t.Fatalf("unexpected fetched cart %+v", cart)
	}

	cart = decodeCart(t, do(t, h, http.MethodDelete, "/api/carts/abc/items/14", ""))
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart.Items)
	}
}

func TestCartReplaceAndDetailedFetch(t *testing.T) {
	h := newTestRouter(t)

	cart := decodeCart(t, do(t, h, http.MethodPut, "/api/carts/abc", `{"items":[{"productId":"12","qty":1},{"productId":"99","qty":2},{"productId":"12","qty":1}]}`))
	if len(cart.Items) != 2 || cart.Items[0].Qty != 2 {
		t.Fatalf("replace should merge duplicates: %+v", cart.Items)
	}

	detailed := decodeCart(t, do(t, h, http.MethodGet, "/api/carts/abc?detailed=true", ""))
	if len(detailed.Items) != 1 || detailed.Items[0].Product == nil || detailed.Items[0].Product.Name != "Silla Ergo" {
		t.Fatalf("unexpected detailed cart %+v", detailed.Items)
	}

	cleared := decodeCart(t, do(t, h, http.MethodDelete, "/api/carts/abc", ""))
	if len(cleared.Items) != 0 || cleared.TotalItems != 0 {
		t.Fatalf("expected cleared cart, got %+v", cleared)
	}
}

func TestCartOrderSummary(t *testing.T) {
	h := newTestRouter(t)
	decodeCart(t, do(t, h, http.MethodPost, "/api/carts/abc/items", `{"productId":"12"}`))

	resp := do(t, h, http.MethodGet, "/api/carts/abc/summary?mobile=true", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data cartdto.OrderSummary `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(envelope.Data.URL, "https://wa.me/59169780623?text=") {
		t.Fatalf("unexpected url %s", envelope.Data.URL)
	}
	if !strings.Contains(envelope.Data.Text, "- 1 x Silla Ergo [Operativa · Línea Mobi · 60×? cm]") {
		t.Fatalf("unexpected text %q", envelope.Data.Text)
	}
}

func TestCartValidationErrors(t *testing.T) {
	h := newTestRouter(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{name: "missing product", method: http.MethodPost, path: "/api/carts/abc/items", body: `{}`, status: http.StatusBadRequest},
		{name: "unknown field", method: http.MethodPost, path: "/api/carts/abc/items", body: `{"productId":"1","x":1}`, status: http.StatusBadRequest},
		{name: "missing qty", method: http.MethodPatch, path: "/api/carts/abc/items/12", body: `{}`, status: http.StatusBadRequest},
		{name: "negative replace qty", method: http.MethodPut, path: "/api/carts/abc", body: `{"items":[{"productId":"1","qty":-1}]}`, status: http.StatusBadRequest},
		{name: "bad cart id", method: http.MethodGet, path: "/api/carts/bad.id", status: http.StatusBadRequest},
		{name: "bad mobile flag", method: http.MethodGet, path: "/api/carts/abc/summary?mobile=maybe", status: http.StatusBadRequest},
		{name: "empty cart summary", method: http.MethodGet, path: "/api/carts/abc/summary", status: http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(t, h, tc.method, tc.path, tc.body)
			if resp.Code != tc.status {
				t.Fatalf("expected %d got %d: %s", tc.status, resp.Code, resp.Body.String())
			}
			if !strings.Contains(resp.Body.String(), `"VALIDATION_ERROR"`) {
				t.Fatalf("expected validation envelope, got %s", resp.Body.String())
			}
		})
	}
}
