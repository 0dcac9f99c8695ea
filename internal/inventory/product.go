package inventory

import (
	"strconv"
	"strings"

	"github.com/mobicorp/spaceplanner-backend/pkg/types"
)

// CategoryAll selects every product when filtering.
const CategoryAll = "todos"

// Product is a catalog entry as served to the storefront.
type Product struct {
	ID        string   `json:"id"`
	SKU       string   `json:"sku,omitempty"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Line      string   `json:"line"`
	MainImage string   `json:"mainImage"`
	Images    []string `json:"images"`
	WidthCm   *float64 `json:"widthCm,omitempty"`
	HeightCm  *float64 `json:"heightCm,omitempty"`
	Features  []string `json:"features,omitempty"`
	Finishes  []string `json:"finishes,omitempty"`
}

// apiProduct mirrors one record of the entities API.
type apiProduct struct {
	ID        types.FlexString `json:"idProducto"`
	SKU       string           `json:"skuInterno"`
	Name      string           `json:"nombre"`
	Category  string           `json:"categoria"`
	Brand     string           `json:"marca"`
	WidthCm   types.FlexString `json:"anchoCm"`
	HeightCm  types.FlexString `json:"altoCm"`
	Features  []string         `json:"caracteristicas"`
	Finishes  []string         `json:"acabados"`
	Active    *bool            `json:"activo"`
	CreatedAt string           `json:"fechaCreacion"`
	ImageURL  *string          `json:"imageUrl"`
	ImageURLs []string         `json:"imageUrls"`
}

func (p apiProduct) active() bool {
	return p.Active == nil || *p.Active
}

func (p apiProduct) toProduct(baseURL string) Product {
	gallery := make([]string, 0, len(p.ImageURLs))
	for _, raw := range p.ImageURLs {
		if u := normalizeImageURL(baseURL, raw); u != "" {
			gallery = append(gallery, u)
		}
	}
	if len(gallery) == 0 && p.ImageURL != nil {
		if u := normalizeImageURL(baseURL, *p.ImageURL); u != "" {
			gallery = append(gallery, u)
		}
	}

	var main string
	if len(gallery) > 0 {
		main = gallery[0]
	}

	return Product{
		ID:        strings.TrimSpace(p.ID.Text),
		SKU:       p.SKU,
		Name:      p.Name,
		Category:  p.Category,
		Line:      p.Brand,
		MainImage: main,
		Images:    gallery,
		WidthCm:   measurement(p.WidthCm),
		HeightCm:  measurement(p.HeightCm),
		Features:  capitalizeLabels(p.Features),
		Finishes:  capitalizeLabels(p.Finishes),
	}
}

func measurement(v types.FlexString) *float64 {
	d, ok := v.Decimal()
	if !ok {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

// FormatCm renders a measurement the way the storefront shows it: "?" when unknown.
func FormatCm(v *float64) string {
	if v == nil {
		return "?"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// FilterByCategory returns the products of one category; empty or "todos" keeps all.
func FilterByCategory(products []Product, category string) []Product {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, CategoryAll) {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Index maps products by id.
func Index(products []Product) map[string]Product {
	out := make(map[string]Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out
}
