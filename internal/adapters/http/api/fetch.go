package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/okian/trailfeed/internal/domain/dataset"
	"github.com/okian/trailfeed/pkg/logger"
)

const typeParam = "type"

// FetchHandler serves dataset files selected by the type query parameter.
type FetchHandler struct {
	deps   Dependencies
	strict bool
	logger logger.Logger
}

// NewFetchHandler creates a new fetch handler. In strict mode errors carry
// 4xx/5xx codes, otherwise every response is 200. logger may be nil.
func NewFetchHandler(deps Dependencies, strict bool, l logger.Logger) *FetchHandler {
	return &FetchHandler{deps: deps, strict: strict, logger: l}
}

// HandleFetch handles /fetch_data?type=races|runners. Any method is accepted.
func (h *FetchHandler) HandleFetch(w http.ResponseWriter, r *http.Request) {
	const op = "api.fetch_data"

	raw, present := queryParam(r, typeParam)
	kind, data, err := h.deps.ResolveParam(r.Context(), raw, present)
	if err != nil {
		if h.logger != nil {
			h.logger.Debug(r.Context(), "dataset not served",
				logger.String("type", raw),
				logger.Bool("type_present", present),
				logger.String("request_id", RequestIDFrom(r.Context())),
				logger.Error(Wrap(op, err)),
			)
		}
		writeError(w, h.errorStatus(err), dataset.ErrorMessage(err))
		return
	}

	if h.logger != nil {
		h.logger.Debug(r.Context(), "dataset served",
			logger.String("dataset", kind.String()),
			logger.Int("bytes", len(data)),
			logger.String("request_id", RequestIDFrom(r.Context())),
		)
	}
	writeRaw(w, http.StatusOK, data)
}

func (h *FetchHandler) errorStatus(err error) int {
	if !h.strict {
		return http.StatusOK
	}
	switch {
	case errors.Is(err, dataset.ErrInvalidType):
		return http.StatusBadRequest
	case errors.Is(err, dataset.ErrFileNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// queryParam returns the last value of key in the raw query string and
// whether the key was present at all. Pairs are split on '&' only, and a
// key or value that fails to unescape is kept as sent, so a malformed
// value still counts as present.
func queryParam(r *http.Request, key string) (string, bool) {
	var (
		value   string
		present bool
	)
	for _, pair := range strings.Split(r.URL.RawQuery, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		if unescapeQuery(k) != key {
			continue
		}
		value, present = unescapeQuery(v), true
	}
	return value, present
}

func unescapeQuery(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}
