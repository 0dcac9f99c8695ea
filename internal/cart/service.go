package cart

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/mobicorp/spaceplanner-backend/internal/inventory"
	pkgerrors "github.com/mobicorp/spaceplanner-backend/pkg/errors"
	"github.com/mobicorp/spaceplanner-backend/pkg/logger"
	"github.com/mobicorp/spaceplanner-backend/pkg/metrics"
)

const (
	DefaultWhatsAppNumber = "59169780623"

	summaryHeader = "Resumen del pedido desde la web de Mobicorp:"
	summaryFooter = "Por favor enviarme la cotización y opciones de configuración."
)

var cartIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// DetailedLine is a cart line joined with its catalog product.
type DetailedLine struct {
	Product inventory.Product `json:"product"`
	Qty     int               `json:"qty"`
}

// OrderSummary is the quote request handed to WhatsApp.
type OrderSummary struct {
	Text       string `json:"text"`
	URL        string `json:"url"`
	TotalItems int    `json:"totalItems"`
}

// Service exposes cart operations. Mutations return the cart as stored afterwards.
type Service interface {
	Load(ctx context.Context, cartID string) ([]Line, error)
	Save(ctx context.Context, cartID string, lines []Line) ([]Line, error)
	Add(ctx context.Context, cartID, productID string) ([]Line, error)
	SetQuantity(ctx context.Context, cartID, productID string, qty int) ([]Line, error)
	Remove(ctx context.Context, cartID, productID string) ([]Line, error)
	Clear(ctx context.Context, cartID string) error
	Detailed(ctx context.Context, cartID string) ([]DetailedLine, error)
	OrderSummary(ctx context.Context, cartID string, mobile bool) (OrderSummary, error)
}

type ServiceParams struct {
	Store          Store
	Catalog        inventory.Catalog
	WhatsAppNumber string
	Logger         *logger.Logger
	Metrics        *metrics.PlannerMetrics
}

type service struct {
	store    Store
	catalog  inventory.Catalog
	whatsapp string
	logg     *logger.Logger
	metrics  *metrics.PlannerMetrics

	// serializes read-modify-write within this process
	mu sync.Mutex
}

func NewService(p ServiceParams) (Service, error) {
	if p.Store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if p.Catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	number := strings.TrimSpace(p.WhatsAppNumber)
	if number == "" {
		number = DefaultWhatsAppNumber
	}
	logg := p.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		store:    p.Store,
		catalog:  p.Catalog,
		whatsapp: number,
		logg:     logg,
		metrics:  p.Metrics,
	}, nil
}

func (s *service) Load(ctx context.Context, cartID string) ([]Line, error) {
	if err := validateCartID(cartID); err != nil {
		return nil, err
	}
	lines, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart store unavailable")
	}
	return normalize(lines), nil
}

// Save replaces the whole cart.
func (s *service) Save(ctx context.Context, cartID string, lines []Line) ([]Line, error) {
	if err := validateCartID(cartID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx, cartID, "save", normalize(lines))
}

// Add puts one unit of productID in the cart, merging with an existing line.
func (s *service) Add(ctx context.Context, cartID, productID string) ([]Line, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "productId is required")
	}
	return s.mutate(ctx, cartID, "add", func(lines []Line) []Line {
		for i := range lines {
			if lines[i].ProductID == productID {
				lines[i].Qty++
				return lines
			}
		}
		return append(lines, Line{ProductID: productID, Qty: 1})
	})
}

// SetQuantity sets the quantity of a line already in the cart. A quantity of zero or
// less removes the line; unknown products leave the cart unchanged.
func (s *service) SetQuantity(ctx context.Context, cartID, productID string, qty int) ([]Line, error) {
	if qty <= 0 {
		return s.Remove(ctx, cartID, productID)
	}
	productID = strings.TrimSpace(productID)
	return s.mutate(ctx, cartID, "set_qty", func(lines []Line) []Line {
		for i := range lines {
			if lines[i].ProductID == productID {
				lines[i].Qty = qty
			}
		}
		return lines
	})
}

func (s *service) Remove(ctx context.Context, cartID, productID string) ([]Line, error) {
	productID = strings.TrimSpace(productID)
	return s.mutate(ctx, cartID, "remove", func(lines []Line) []Line {
		out := lines[:0]
		for _, l := range lines {
			if l.ProductID != productID {
				out = append(out, l)
			}
		}
		return out
	})
}

func (s *service) Clear(ctx context.Context, cartID string) error {
	if err := validateCartID(cartID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.persist(ctx, cartID, "clear", nil)
	return err
}

// Detailed joins the cart with the catalog. Lines whose product is not in the catalog
// are skipped.
func (s *service) Detailed(ctx context.Context, cartID string) ([]DetailedLine, error) {
	lines, err := s.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return []DetailedLine{}, nil
	}
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return Join(lines, products), nil
}

// OrderSummary renders the quote message for the cart and the WhatsApp link that
// carries it. mobile selects the app link over WhatsApp Web.
func (s *service) OrderSummary(ctx context.Context, cartID string, mobile bool) (OrderSummary, error) {
	detailed, err := s.Detailed(ctx, cartID)
	if err != nil {
		return OrderSummary{}, err
	}
	if len(detailed) == 0 {
		return OrderSummary{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	text := SummaryText(detailed)
	total := 0
	for _, d := range detailed {
		total += d.Qty
	}
	return OrderSummary{
		Text:       text,
		URL:        WhatsAppURL(s.whatsapp, text, mobile),
		TotalItems: total,
	}, nil
}

func (s *service) mutate(ctx context.Context, cartID, op string, fn func([]Line) []Line) ([]Line, error) {
	if err := validateCartID(cartID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart store unavailable")
	}
	return s.persist(ctx, cartID, op, normalize(fn(normalize(current))))
}

func (s *service) persist(ctx context.Context, cartID, op string, lines []Line) ([]Line, error) {
	if err := s.store.Save(ctx, cartID, lines); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart store unavailable")
	}
	s.metrics.IncCartOp(op)
	s.logg.Debug(s.logg.WithCartID(ctx, cartID), "cart."+op)
	if lines == nil {
		lines = []Line{}
	}
	return lines, nil
}

// Join pairs lines with products by id, in cart order.
func Join(lines []Line, products []inventory.Product) []DetailedLine {
	byID := inventory.Index(products)
	out := make([]DetailedLine, 0, len(lines))
	for _, l := range lines {
		p, ok := byID[l.ProductID]
		if !ok {
			continue
		}
		out = append(out, DetailedLine{Product: p, Qty: l.Qty})
	}
	return out
}

// SummaryText renders the quote request, one "- qty x name [category · Línea line]" row
// per line, with "WxH cm" when the product has measurements.
func SummaryText(detailed []DetailedLine) string {
	rows := make([]string, 0, len(detailed))
	for _, d := range detailed {
		p := d.Product
		dims := ""
		if p.WidthCm != nil || p.HeightCm != nil {
			dims = fmt.Sprintf(" · %s×%s cm", inventory.FormatCm(p.WidthCm), inventory.FormatCm(p.HeightCm))
		}
		rows = append(rows, fmt.Sprintf("- %d x %s [%s · Línea %s%s]", d.Qty, p.Name, p.Category, p.Line, dims))
	}
	return summaryHeader + "\n\n" + strings.Join(rows, "\n") + "\n\n" + summaryFooter
}

// WhatsAppURL builds the chat link carrying text.
func WhatsAppURL(number, text string, mobile bool) string {
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	if mobile {
		return "https://wa.me/" + number + "?text=" + encoded
	}
	return "https://web.whatsapp.com/send?phone=" + number + "&text=" + encoded
}

func validateCartID(cartID string) error {
	if !cartIDPattern.MatchString(cartID) {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid cart id")
	}
	return nil
}
