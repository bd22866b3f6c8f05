package http

import (
	"net/http"
	"strconv"

	"github.com/RuneterraShadow/site-encomendas-patos/internal/domain"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/money"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/viewport"
)

// Catalog is the read-only slice of the catalog store the handlers use.
type Catalog interface {
	Products() []domain.Product
	Product(id string) (domain.Product, bool)
}

type ProductHandler struct {
	catalog Catalog
	money   money.Formatter
}

func NewProductHandler(catalog Catalog, money money.Formatter) *ProductHandler {
	return &ProductHandler{catalog: catalog, money: money}
}

type ProductDTO struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	PriceText      string        `json:"price_text"`
	PromoPriceText string        `json:"promo_price_text,omitempty"`
	OnPromo        bool          `json:"on_promo"`
	Stock          *int          `json:"stock"`
	Category       string        `json:"category"`
	Featured       bool          `json:"featured"`
	ImageURL       string        `json:"image_url"`
	View           viewport.View `json:"view"`
}

type ProductListDTO struct {
	Products []ProductDTO `json:"products"`
	Count    int          `json:"count"`
}

// GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products := h.catalog.Products()

	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dto := ProductDTO{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			PriceText:   h.money.Format(p.Price),
			OnPromo:     p.OnPromo(),
			Stock:       p.Stock,
			Category:    p.Category,
			Featured:    p.Featured,
			ImageURL:    p.ImageURL,
			// Same transform the admin preview evaluates: what the
			// editor saw is what the shopper gets.
			View: viewport.Compute(p.ImagePosX, p.ImagePosY, p.ImageZoom),
		}
		if dto.OnPromo {
			dto.PromoPriceText = h.money.Format(*p.PromoPrice)
		}
		dtos = append(dtos, dto)
	}

	respondJSON(w, http.StatusOK, ProductListDTO{Products: dtos, Count: len(dtos)})
}

// GET /api/v1/admin/preview?x=&y=&zoom=
//
// The editing surface previews crops through the exact function the
// shopper listing uses; missing or unparsable parameters fall back to
// the neutral view.
func (h *ProductHandler) Preview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x := parseFloatOr(q.Get("x"), viewport.DefaultPos)
	y := parseFloatOr(q.Get("y"), viewport.DefaultPos)
	zoom := parseFloatOr(q.Get("zoom"), viewport.DefaultZoom)

	respondJSON(w, http.StatusOK, viewport.Compute(x, y, zoom))
}

func parseFloatOr(s string, fallback float64) float64 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}
