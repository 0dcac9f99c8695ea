package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartsvc "github.com/mobicorp/spaceplanner-backend/internal/cart"
	"github.com/mobicorp/spaceplanner-backend/internal/generation"
	"github.com/mobicorp/spaceplanner-backend/internal/inventory"
	plannersvc "github.com/mobicorp/spaceplanner-backend/internal/planner"
	pkgerrors "github.com/mobicorp/spaceplanner-backend/pkg/errors"
	"github.com/mobicorp/spaceplanner-backend/pkg/logger"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
	last  generation.Request
}

func (s *stubGenerator) Generate(_ context.Context, req generation.Request) (string, error) {
	s.calls++
	s.last = req
	return s.text, s.err
}

type stubCatalog struct {
	products []inventory.Product
}

func (s stubCatalog) ListProducts(context.Context) ([]inventory.Product, error) {
	return s.products, nil
}

func newHandler(t *testing.T, gen *stubGenerator, carts cartsvc.Service) http.HandlerFunc {
	t.Helper()
	svc, err := plannersvc.NewService(plannersvc.ServiceParams{Generator: gen, Model: "gpt-4o-mini"})
	require.NoError(t, err)
	return SpacePlanner(svc, carts, logger.Nop())
}

func post(handler http.HandlerFunc, body string) (*httptest.ResponseRecorder, plannersvc.AdvisoryResponse) {
	req := httptest.NewRequest(http.MethodPost, "/api/space-planner", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler(resp, req)

	var decoded plannersvc.AdvisoryResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &decoded)
	return resp, decoded
}

func TestSpacePlannerSuccess(t *testing.T) {
	gen := &stubGenerator{text: "Propuesta lista."}
	resp, body := post(newHandler(t, gen, nil), `{"width":"4","length":"5","seats":8,"style":"colaborativo","promptHint":"ignored"}`)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Propuesta lista.", body.SuggestionText)
	assert.Empty(t, body.Error)
	assert.NotContains(t, resp.Body.String(), `"error"`)
	assert.Contains(t, gen.last.User, "de aproximadamente 4m x 5m (20.0 m²)")
	assert.Contains(t, gen.last.User, "8 puestos de trabajo")
	assert.Contains(t, gen.last.User, "colaborativo tipo cowork")
}

func TestSpacePlannerEmptyCartAndEmptyAnswer(t *testing.T) {
	gen := &stubGenerator{text: ""}
	resp, body := post(newHandler(t, gen, nil), `{"cart":[]}`)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, plannersvc.EmptyFallback, body.SuggestionText)
	assert.Contains(t, gen.last.User, "No se han seleccionado modelos específicos aún.")
}

func TestSpacePlannerGenerationFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream 500")}
	resp, body := post(newHandler(t, gen, nil), `{}`)

	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, plannersvc.FailureTag, body.Error)
	assert.Equal(t, plannersvc.FailureFallback, body.SuggestionText)
	assert.Equal(t, 1, gen.calls)
}

func TestSpacePlannerGenerationFailureLogsUpstream(t *testing.T) {
	var logs bytes.Buffer
	gen := &stubGenerator{err: &pkgerrors.UpstreamError{Service: "openai", Status: http.StatusTooManyRequests, Body: "rate limited"}}
	svc, err := plannersvc.NewService(plannersvc.ServiceParams{Generator: gen, Model: "gpt-4o-mini"})
	require.NoError(t, err)
	handler := SpacePlanner(svc, nil, logger.New(logger.Options{ServiceName: "test", Output: &logs}))

	resp, body := post(handler, `{}`)

	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, plannersvc.FailureFallback, body.SuggestionText)
	assert.NotContains(t, resp.Body.String(), "rate limited")
	assert.Contains(t, logs.String(), `"upstream_status":429`)
	assert.Contains(t, logs.String(), `"retryable":true`)
}

func TestSpacePlannerEmptyBody(t *testing.T) {
	gen := &stubGenerator{text: "Ok."}
	resp, body := post(newHandler(t, gen, nil), "")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Ok.", body.SuggestionText)
	assert.Contains(t, gen.last.User, "con dimensiones aún por definir")
}

func TestSpacePlannerMalformedBody(t *testing.T) {
	gen := &stubGenerator{text: "Ok."}
	resp, body := post(newHandler(t, gen, nil), `{"width":`)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, plannersvc.FailureFallback, body.SuggestionText)
	assert.NotEmpty(t, body.Error)
	assert.Zero(t, gen.calls)
}

func TestSpacePlannerToleratesOddShapes(t *testing.T) {
	gen := &stubGenerator{text: "Ok."}
	resp, _ := post(newHandler(t, gen, nil), `{"width":{"a":1},"cart":"not-a-list","seats":null}`)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, gen.last.User, "con dimensiones aún por definir")
	assert.Contains(t, gen.last.User, "un número de puestos todavía flexible")
	assert.Contains(t, gen.last.User, "No se han seleccionado modelos específicos aún.")
}

func TestSpacePlannerCartLines(t *testing.T) {
	gen := &stubGenerator{text: "Ok."}
	body := `{"cart":[{"productId":12,"name":"Silla Ergo","category":"Operativa","line":"Mobi","qty":2}, 5, {"name":"Mesa","category":"Gerencial","line":"Exec"}]}`
	resp, _ := post(newHandler(t, gen, nil), body)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, gen.last.User, "- Silla Ergo (Operativa, línea Mobi) x2\n- Mesa (Gerencial, línea Exec) x1")
}

func TestSpacePlannerUsesStoredCart(t *testing.T) {
	carts, err := cartsvc.NewService(cartsvc.ServiceParams{
		Store: cartsvc.NewMemoryStore(),
		Catalog: stubCatalog{products: []inventory.Product{
			{ID: "12", Name: "Silla Ergo", Category: "Operativa", Line: "Mobi"},
		}},
	})
	require.NoError(t, err)
	_, err = carts.Save(context.Background(), "abc", []cartsvc.Line{{ProductID: "12", Qty: 3}})
	require.NoError(t, err)

	gen := &stubGenerator{text: "Ok."}
	resp, _ := post(newHandler(t, gen, carts), `{"cartId":"abc"}`)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, gen.last.User, "- Silla Ergo (Operativa, línea Mobi) x3")
}
