package http

import (
	"net/http"
	"time"

	"album-service/internal/metrics"

	"github.com/gorilla/mux"
	httputils "github.com/twitsprout/tools/http"
)

// route is one entry of a resource's route table.
type route struct {
	name    string
	method  string
	path    string
	handler http.HandlerFunc
}

// Handler mounts all the handlers at the appropriate routes and adds any required middleware.
func (h *Handler) Handler() http.Handler {
	r := mux.NewRouter()

	r.Use(httputils.TimeoutMiddleware(1 * time.Minute))
	r.Use(httputils.RequestIDMiddleware)
	r.Use(httputils.RealIPMiddleware)
	r.Use(httputils.LimitReaderMiddleware(1 << 20))
	r.Use(httputils.LoggingMiddleware(h.Logger))
	r.Use(httputils.StatsRouteMiddleware(h.stats(), metrics.HTTPRequestDuration, routeName))
	r.Use(httputils.RecoverMiddleware(h.Logger, httputils.InternalServerErrorHandler(h.Logger)))
	r.Use(httputils.MaxConnectionsMiddleware(5000, httputils.ServiceUnavailableHandler(h.Logger)))
	r.Use(httputils.ConcurrentLimitMiddleware(250, httputils.ServiceUnavailableHandler(h.Logger)))

	r.MethodNotAllowedHandler = httputils.MethodNotAllowedHandler(h.Logger)
	r.NotFoundHandler = httputils.NotFoundHandler(h.Logger)

	versionHandler := httputils.VersionHandler(h.AppName, h.Version, h.Logger)
	r.Methods("GET").Path("/").Name("root").Handler(versionHandler)
	r.Methods("GET").Path("/version").Name("version").Handler(versionHandler)
	r.Methods("GET").Path("/metrics").Name("metrics").Handler(h.stats().Handler())
	if lh := h.Logger.Handler(); lh != nil {
		r.Methods("GET", "PUT").Path("/log_level").Name("log_level").Handler(lh)
	}

	api := r.NewRoute().Subrouter()
	api.Use(h.authenticate)
	if h.RateLimit > 0 {
		api.Use(newRateLimiter(h.RateLimit, h.RateBurst).middleware(h))
	}
	for _, rt := range h.routes() {
		api.Methods(rt.method).Path(rt.path).Name(rt.name).HandlerFunc(rt.handler)
	}

	h.router = r
	return r
}

// routes composes the route tables of every resource.
func (h *Handler) routes() []route {
	var rs []route
	rs = append(rs, h.albumRoutes()...)
	rs = append(rs, h.photoRoutes()...)
	return rs
}

func routeName(r *http.Request) string {
	if rt := mux.CurrentRoute(r); rt != nil && rt.GetName() != "" {
		return rt.GetName()
	}
	return "unknown"
}
