package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the REST surface. The literal /countries/{image,refresh}
// patterns win over the /countries/{name} wildcard.
func NewRouter(h *CountryHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /countries/refresh", h.Refresh)
	mux.HandleFunc("GET /countries", h.List)
	mux.HandleFunc("GET /countries/image", h.Image)
	mux.HandleFunc("GET /countries/{name}", h.Get)
	mux.HandleFunc("DELETE /countries/{name}", h.Delete)
	mux.HandleFunc("GET /status", h.Status)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return mux
}
