package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/online-store/internal/models"
)

// maxBodyBytes bounds product payloads
const maxBodyBytes = 1 << 20

var errInvalidBody = errors.New(msgInvalidBody)

// decodeFields reads a JSON object or an urlencoded form into raw product fields.
// An empty body yields an empty map.
func decodeFields(w http.ResponseWriter, r *http.Request) (models.ProductFields, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return nil, errInvalidBody
		}
		return formFields(r.PostForm), nil
	}

	fields := models.ProductFields{}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return models.ProductFields{}, nil
		}
		return nil, errInvalidBody
	}
	if fields == nil {
		// literal null
		fields = models.ProductFields{}
	}
	return fields, nil
}

func formFields(values url.Values) models.ProductFields {
	fields := make(models.ProductFields, len(values))
	for key, v := range values {
		if len(v) > 0 {
			fields[key] = v[0]
		}
	}
	return fields
}

// parseFilter builds a product filter from the listing query string
func parseFilter(q url.Values) (models.ProductFilter, error) {
	filter := models.ProductFilter{
		Category: strings.TrimSpace(q.Get("category")),
	}

	var err error
	if filter.MinPrice, err = parseBound(q, "minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = parseBound(q, "maxPrice"); err != nil {
		return filter, err
	}

	if inStock, err := strconv.ParseBool(strings.TrimSpace(q.Get("inStock"))); err == nil {
		filter.InStock = inStock
	}

	return filter, nil
}

func parseBound(q url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	return &v, nil
}
