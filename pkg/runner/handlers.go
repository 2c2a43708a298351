// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/telekom/icmpdiag/internal/logger"
	"github.com/telekom/icmpdiag/pkg/api"
	"gopkg.in/yaml.v3"
)

type encoder interface {
	Encode(v any) error
}

const (
	urlParamCheckName = "checkName"
	headerContentType = "Content-Type"
	headerAccept      = "Accept"
	contentTypeJSON   = "application/json"
	contentTypeYAML   = "text/yaml"
)

// startupAPI registers the routes of the runner and starts the api server
func (r *Runner) startupAPI(ctx context.Context) error {
	routes := []api.Route{
		{Path: "/openapi", Method: http.MethodGet, Handler: r.handleOpenAPI},
		{Path: fmt.Sprintf("/v1/metrics/{%s}", urlParamCheckName), Method: http.MethodGet, Handler: r.handleCheckMetrics},
		{
			Path: "/metrics", Method: http.MethodGet,
			Handler: func(w http.ResponseWriter, req *http.Request) {
				promhttp.HandlerFor(
					r.metrics.GetRegistry(),
					promhttp.HandlerOpts{Registry: r.metrics.GetRegistry()},
				).ServeHTTP(w, req)
			},
		},
	}

	if err := r.api.RegisterRoutes(ctx, routes...); err != nil {
		logger.FromContext(ctx).ErrorContext(ctx, "Error while registering routes", "error", err)
		return err
	}
	return r.api.Run(ctx)
}

func (r *Runner) handleOpenAPI(w http.ResponseWriter, req *http.Request) {
	log := logger.FromContext(req.Context())
	doc, err := r.controller.GenerateCheckSpecs(req.Context())
	if err != nil {
		log.Error("Failed to create openapi document", "error", err)
		http.Error(w, "failed to create openapi document", http.StatusInternalServerError)
		return
	}

	mime := req.Header.Get(headerAccept)
	var enc encoder
	switch mime {
	case contentTypeJSON:
		w.Header().Add(headerContentType, contentTypeJSON)
		enc = json.NewEncoder(w)
	default:
		w.Header().Add(headerContentType, contentTypeYAML)
		enc = yaml.NewEncoder(w)
	}

	if err := enc.Encode(&doc); err != nil {
		log.Error("Failed to encode openapi document", "error", err)
		http.Error(w, "failed to encode openapi document", http.StatusInternalServerError)
		return
	}
}

func (r *Runner) handleCheckMetrics(w http.ResponseWriter, req *http.Request) {
	log := logger.FromContext(req.Context())
	name := chi.URLParam(req, urlParamCheckName)
	if name == "" {
		http.Error(w, "missing check name", http.StatusBadRequest)
		return
	}

	res, ok := r.db.Get(name)
	if !ok {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	w.Header().Add(headerContentType, contentTypeJSON)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Error("Failed to encode response", "check", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}
