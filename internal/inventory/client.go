package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	pkgerrors "github.com/mobicorp/spaceplanner-backend/pkg/errors"
	"github.com/mobicorp/spaceplanner-backend/pkg/logger"
	"github.com/mobicorp/spaceplanner-backend/pkg/metrics"
)

const (
	productsPath    = "/api/entities/productos/?format=json"
	maxBodyBytes    = 8 << 20
	bodySnippetSize = 300
	defaultTimeout  = 10 * time.Second
)

// Catalog is the read surface consumers of the inventory depend on.
type Catalog interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

// Config wires an inventory Client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logger.Logger
	Metrics    *metrics.PlannerMetrics
}

// Client reads the product catalog from the external entities API. Concurrent calls
// share a single upstream request.
type Client struct {
	baseURL string
	http    *http.Client
	logg    *logger.Logger
	metrics *metrics.PlannerMetrics
	group   singleflight.Group
}

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logg := cfg.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		http:    httpClient,
		logg:    logg,
		metrics: cfg.Metrics,
	}
}

// ProductsURL is the endpoint the client reads from.
func (c *Client) ProductsURL() string {
	return c.baseURL + productsPath
}

// ListProducts returns the active products, in upstream order.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	if c.baseURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "inventory base url not configured")
	}
	// The shared fetch outlives any single caller; the http client timeout bounds it.
	ch := c.group.DoChan("products", func() (any, error) {
		return c.fetch(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, ctx.Err(), "No pudimos conectar con el catálogo")
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]Product)), nil
	}
}

func (c *Client) fetch(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ProductsURL(), nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build inventory request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("ngrok-skip-browser-warning", "1")

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.IncInventoryFailure("transport")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "No pudimos conectar con el catálogo")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.metrics.IncInventoryFailure("read_body")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "No pudimos leer la respuesta del catálogo")
	}
	trimmed := bytes.TrimSpace(body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.IncInventoryFailure("status")
		return nil, pkgerrors.Upstream("inventory", resp.StatusCode, snippet(trimmed),
			fmt.Sprintf("No pudimos cargar los productos (HTTP %d)", resp.StatusCode))
	}
	if len(trimmed) == 0 {
		c.metrics.IncInventoryFailure("empty_body")
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "Respuesta vacía del backend")
	}
	if trimmed[0] == '<' || isHTML(resp.Header.Get("Content-Type")) {
		c.metrics.IncInventoryFailure("html_body")
		c.logg.Warn(c.logg.WithField(ctx, "body_snippet", snippet(trimmed)), "inventory.html_response")
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "La URL de catálogo está devolviendo HTML, no JSON. Verifica el túnel.")
	}

	var records []apiProduct
	if err := json.Unmarshal(trimmed, &records); err != nil {
		c.metrics.IncInventoryFailure("bad_json")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "La respuesta del backend no es JSON válido.")
	}

	products := make([]Product, 0, len(records))
	for _, record := range records {
		if !record.active() {
			continue
		}
		products = append(products, record.toProduct(c.baseURL))
	}
	c.logg.Debug(c.logg.WithField(ctx, "products", len(products)), "inventory.loaded")
	return products, nil
}

func isHTML(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "text/html")
}

func snippet(body []byte) string {
	if len(body) > bodySnippetSize {
		body = body[:bodySnippetSize]
	}
	return string(body)
}
