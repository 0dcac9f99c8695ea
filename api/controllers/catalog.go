package controllers

import (
	"net/http"

	"github.com/mobicorp/spaceplanner-backend/api/responses"
	"github.com/mobicorp/spaceplanner-backend/api/validators"
	"github.com/mobicorp/spaceplanner-backend/internal/inventory"
	pkgerrors "github.com/mobicorp/spaceplanner-backend/pkg/errors"
	"github.com/mobicorp/spaceplanner-backend/pkg/logger"
)

// CatalogList returns the active products, optionally narrowed by ?category=.
func CatalogList(catalog inventory.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		category := validators.SanitizeString(r.URL.Query().Get("category"), 64)

		products, err := catalog.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, inventory.FilterByCategory(products, category))
	}
}
