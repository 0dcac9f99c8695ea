package cart

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobicorp/spaceplanner-backend/internal/inventory"
	pkgerrors "github.com/mobicorp/spaceplanner-backend/pkg/errors"
)

type stubCatalog struct {
	products []inventory.Product
	err      error
	calls    int
}

func (s *stubCatalog) ListProducts(context.Context) ([]inventory.Product, error) {
	s.calls++
	return s.products, s.err
}

type failingStore struct{}

func (failingStore) Load(context.Context, string) ([]Line, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) Save(context.Context, string, []Line) error {
	return errors.New("connection refused")
}

func floatPtr(v float64) *float64 {
	return &v
}

func testCatalog() *stubCatalog {
	return &stubCatalog{products: []inventory.Product{
		{ID: "12", Name: "Silla Ergo", Category: "Operativa", Line: "Mobi", WidthCm: floatPtr(60), HeightCm: floatPtr(110)},
		{ID: "14", Name: "Escritorio Nova", Category: "Gerencial", Line: "Exec"},
		{ID: "20", Name: "Sofá Lounge", Category: "Lounge", Line: "Relax", WidthCm: floatPtr(180)},
	}}
}

func newTestService(t *testing.T, catalog inventory.Catalog) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Store: NewMemoryStore(), Catalog: catalog})
	require.NoError(t, err)
	return svc
}

func TestAddMergesDuplicateProducts(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, testCatalog())

	_, err := svc.Add(ctx, "abc", "12")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "abc", "14")
	require.NoError(t, err)
	lines, err := svc.Add(ctx, "abc", "12")
	require.NoError(t, err)

	assert.Equal(t, []Line{{ProductID: "12", Qty: 2}, {ProductID: "14", Qty: 1}}, lines)

	loaded, err := svc.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, lines, loaded)
	assert.Equal(t, 3, TotalItems(loaded))
}

func TestAddRequiresProductID(t *testing.T) {
	_, err := newTestService(t, testCatalog()).Add(context.Background(), "abc", "  ")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, testCatalog())
	_, err := svc.Save(ctx, "abc", []Line{{ProductID: "12", Qty: 1}, {ProductID: "14", Qty: 1}})
	require.NoError(t, err)

	lines, err := svc.SetQuantity(ctx, "abc", "12", 5)
	require.NoError(t, err)
	assert.Equal(t, []Line{{ProductID: "12", Qty: 5}, {ProductID: "14", Qty: 1}}, lines)

	lines, err = svc.SetQuantity(ctx, "abc", "99", 3)
	require.NoError(t, err)
	assert.Equal(t, []Line{{ProductID: "12", Qty: 5}, {ProductID: "14", Qty: 1}}, lines, "unknown product leaves the cart unchanged")

	lines, err = svc.SetQuantity(ctx, "abc", "12", 0)
	require.NoError(t, err)
	assert.Equal(t, []Line{{ProductID: "14", Qty: 1}}, lines)

	lines, err = svc.SetQuantity(ctx, "abc", "14", -2)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartInvariantsHoldAfterAnySequence(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, testCatalog())

	ops := []func() ([]Line, error){
		func() ([]Line, error) { return svc.Add(ctx, "abc", "12") },
		func() ([]Line, error) { return svc.Add(ctx, "abc", "14") },
		func() ([]Line, error) { return svc.SetQuantity(ctx, "abc", "14", 4) },
		func() ([]Line, error) { return svc.Add(ctx, "abc", "12") },
		func() ([]Line, error) { return svc.Save(ctx, "abc", []Line{{ProductID: "20", Qty: 1}, {ProductID: "20", Qty: 2}, {ProductID: "12", Qty: -1}}) },
		func() ([]Line, error) { return svc.Add(ctx, "abc", "20") },
		func() ([]Line, error) { return svc.Remove(ctx, "abc", "20") },
		func() ([]Line, error) { return svc.Add(ctx, "abc", "14") },
	}

	for i, op := range ops {
		lines, err := op()
		require.NoError(t, err, "op %d", i)
		seen := map[string]bool{}
		for _, l := range lines {
			assert.GreaterOrEqual(t, l.Qty, 1, "op %d", i)
			assert.False(t, seen[l.ProductID], "duplicate product after op %d", i)
			seen[l.ProductID] = true
		}
	}
}

func TestSaveNormalizesLines(t *testing.T) {
	lines, err := newTestService(t, testCatalog()).Save(context.Background(), "abc", []Line{
		{ProductID: "20", Qty: 1},
		{ProductID: " 20 ", Qty: 2},
		{ProductID: "12", Qty: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, []Line{{ProductID: "20", Qty: 3}}, lines)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, testCatalog())
	_, err := svc.Add(ctx, "abc", "12")
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "abc"))
	lines, err := svc.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestInvalidCartID(t *testing.T) {
	svc := newTestService(t, testCatalog())
	for _, id := range []string{"", "has space", "slash/inside", strings.Repeat("a", 65)} {
		_, err := svc.Load(context.Background(), id)
		require.Error(t, err, id)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	}
}

func TestStoreFailureIsDependencyError(t *testing.T) {
	svc, err := NewService(ServiceParams{Store: failingStore{}, Catalog: testCatalog()})
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), "abc", "12")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestDetailedSkipsUnknownProducts(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog()
	svc := newTestService(t, catalog)

	empty, err := svc.Detailed(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.Zero(t, catalog.calls, "empty cart should not hit the catalog")

	_, err = svc.Save(ctx, "abc", []Line{{ProductID: "99", Qty: 1}, {ProductID: "14", Qty: 2}, {ProductID: "12", Qty: 1}})
	require.NoError(t, err)

	detailed, err := svc.Detailed(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, detailed, 2)
	assert.Equal(t, "Escritorio Nova", detailed[0].Product.Name)
	assert.Equal(t, 2, detailed[0].Qty)
	assert.Equal(t, "Silla Ergo", detailed[1].Product.Name)
}

func TestDetailedPropagatesCatalogErrors(t *testing.T) {
	ctx := context.Background()
	catalog := &stubCatalog{err: pkgerrors.New(pkgerrors.CodeDependency, "Respuesta vacía del backend")}
	svc := newTestService(t, catalog)
	_, err := svc.Add(ctx, "abc", "12")
	require.NoError(t, err)

	_, err = svc.Detailed(ctx, "abc")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestOrderSummary(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, testCatalog())
	_, err := svc.Save(ctx, "abc", []Line{
		{ProductID: "12", Qty: 2},
		{ProductID: "14", Qty: 1},
		{ProductID: "20", Qty: 1},
		{ProductID: "99", Qty: 4},
	})
	require.NoError(t, err)

	summary, err := svc.OrderSummary(ctx, "abc", true)
	require.NoError(t, err)

	wantText := "Resumen del pedido desde la web de Mobicorp:\n\n" +
		"- 2 x Silla Ergo [Operativa · Línea Mobi · 60×110 cm]\n" +
		"- 1 x Escritorio Nova [Gerencial · Línea Exec]\n" +
		"- 1 x Sofá Lounge [Lounge · Línea Relax · 180×? cm]\n\n" +
		"Por favor enviarme la cotización y opciones de configuración."
	assert.Equal(t, wantText, summary.Text)
	assert.Equal(t, 4, summary.TotalItems)

	require.True(t, strings.HasPrefix(summary.URL, "https://wa.me/59169780623?text="))
	encoded := strings.TrimPrefix(summary.URL, "https://wa.me/59169780623?text=")
	assert.NotContains(t, encoded, "+")
	decoded, err := url.QueryUnescape(encoded)
	require.NoError(t, err)
	assert.Equal(t, wantText, decoded)

	desktop, err := svc.OrderSummary(ctx, "abc", false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(desktop.URL, "https://web.whatsapp.com/send?phone=59169780623&text="))
}

func TestOrderSummaryEmptyCart(t *testing.T) {
	_, err := newTestService(t, testCatalog()).OrderSummary(context.Background(), "abc", false)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestNewServiceValidatesParams(t *testing.T) {
	_, err := NewService(ServiceParams{Catalog: testCatalog()})
	require.Error(t, err)
	_, err = NewService(ServiceParams{Store: NewMemoryStore()})
	require.Error(t, err)
}
