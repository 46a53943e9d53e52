package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/rewrite"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/settings"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the provider over HTTP",
		Long: `Serve the provider over HTTP for a host or a test harness.

Endpoints (all take ?page=<id>):
  GET /friendly?path=<raw path>     rewrite a raw module path
  GET /resolve?path=<friendly path> resolve a friendly path
  GET /redirect?url=<request url>   check a legacy URL
  GET /metrics                      Prometheus metrics

The settings file is watched and reapplied when it changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if a.settingsPath != "" {
				watcher := settings.NewWatcher(a.settingsPath, a.provider, settings.WithLogger(a.logger))
				if _, err := watcher.Reload(); err != nil {
					return err
				}
				if err := watcher.Watch(); err != nil {
					return err
				}
				defer watcher.StopWatch()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().String("listen", ":8080", "Address to listen on")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	server := &http.Server{
		Addr:              a.config.Listen,
		Handler:           a.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.logger.Info("listening", zap.String("addr", server.Addr), zap.String("site", a.config.Site))
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	}
}

func (a *app) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /friendly", a.handleFriendly)
	mux.HandleFunc("GET /resolve", a.handleResolve)
	mux.HandleFunc("GET /redirect", a.handleRedirect)
	mux.Handle("GET /metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	return mux
}

func (a *app) handleFriendly(w http.ResponseWriter, r *http.Request) {
	page, ok := a.pageParam(w, r)
	if !ok {
		return
	}
	result := a.provider.ChangeFriendlyURL(r.Context(), rewrite.FriendlyURLRequest{
		PageID:   page,
		PortalID: a.portal,
		Path:     r.URL.Query().Get("path"),
		Options:  a.config.friendlyOptions(),
	})
	a.writeJSON(w, http.StatusOK, result)
}

func (a *app) handleResolve(w http.ResponseWriter, r *http.Request) {
	page, ok := a.pageParam(w, r)
	if !ok {
		return
	}
	result := a.provider.TransformFriendlyURLToQueryString(r.Context(), rewrite.QueryStringRequest{
		Segments: strings.Split(strings.Trim(r.URL.Query().Get("path"), "/"), "/"),
		PageID:   page,
		PortalID: a.portal,
		Options:  a.config.friendlyOptions(),
		Alias:    a.alias(r),
	})
	a.writeJSON(w, result.Status, result)
}

func (a *app) handleRedirect(w http.ResponseWriter, r *http.Request) {
	page, ok := a.pageParam(w, r)
	if !ok {
		return
	}
	requestURL, err := url.Parse(r.URL.Query().Get("url"))
	if err != nil {
		a.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid url"})
		return
	}
	alias := a.alias(r)
	if requestURL.Host != "" {
		alias = requestURL.Host
	}
	result := a.provider.CheckForRedirect(r.Context(), rewrite.RedirectRequest{
		PageID:     page,
		PortalID:   a.portal,
		Alias:      alias,
		RequestURL: requestURL,
		Options:    a.config.friendlyOptions(),
	})
	a.writeJSON(w, http.StatusOK, result)
}

func (a *app) pageParam(w http.ResponseWriter, r *http.Request) (types.PageID, bool) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return types.NoPagePath, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		a.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "page must be an integer"})
		return 0, false
	}
	return types.PageID(page), true
}

func (a *app) alias(r *http.Request) string {
	if r.Host != "" {
		return r.Host
	}
	return a.config.Alias
}

func (a *app) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Warn("writing response", zap.Error(err))
	}
}
