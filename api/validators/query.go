package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/mobicorp/spaceplanner-backend/pkg/errors"
)

// ParseQueryBool reads a boolean query parameter; absent means defaultVal.
func ParseQueryBool(r *http.Request, key string, defaultVal bool) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a boolean").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}
