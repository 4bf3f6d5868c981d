// Package server contains HomeKit bridge host.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/plugins/platform"
	"github.com/go-home-io/sip-bridge/providers"
	"github.com/go-home-io/sip-bridge/systems"
	"github.com/go-home-io/sip-bridge/systems/api"
	"github.com/go-home-io/sip-bridge/systems/bridge"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Logger system representation.
	logSystem = "server"
	// HTTP server shutdown timeout.
	shutdownTimeout = 5 * time.Second
)

// SIPBridgeServer describes bridge host.
type SIPBridgeServer struct {
	Settings providers.ISettingsProvider
	Logger   common.ILoggerProvider

	api        providers.IHostAPIProvider
	bridge     providers.IBridgeProvider
	registry   *prometheus.Registry
	state      *serverState
	platforms  []*knownPlatform
	wsSettings websocket.Upgrader
}

// NewServer constructs a new bridge host.
func NewServer(settings providers.ISettingsProvider) (*SIPBridgeServer, error) {
	registry := prometheus.NewRegistry()
	gauge := api.NewAccessoriesGauge()
	err := registry.Register(gauge)
	if err == nil {
		err = registry.Register(collectors.NewGoCollector())
	}

	if err != nil {
		return nil, errors.Wrap(err, "register metrics")
	}

	apiCtor := &api.ConstructAPI{
		Logger: settings.PluginLogger(systems.SysAPI, "host"),
		Cache:  settings.Cache(),
		FanOut: settings.FanOut(),
		Gauge:  gauge,
	}

	bridgeCtor := &bridge.ConstructBridge{
		Logger:      settings.PluginLogger(systems.SysHAP, "brutella"),
		Settings:    settings.BridgeSettings(),
		StoragePath: settings.StoragePath(),
	}

	server := SIPBridgeServer{
		Settings: settings,
		Logger:   settings.SystemLogger(),

		api:       api.NewAPIProvider(apiCtor),
		bridge:    bridge.NewBridgeProvider(bridgeCtor),
		registry:  registry,
		state:     newServerState(settings.SystemLogger(), settings.FanOut()),
		platforms: make([]*knownPlatform, 0),
		wsSettings: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	return &server, nil
}

// Init loads platforms, restores cached accessories and
// notifies platforms that launch is finished.
func (s *SIPBridgeServer) Init() error {
	s.loadPlatforms()
	if err := s.restore(); err != nil {
		return err
	}

	s.state.start()
	s.api.Emit(platform.EventDidFinishLaunching)
	return nil
}

// Start launches HAP bridge and HTTP API, blocks until stop signal.
func (s *SIPBridgeServer) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := s.bridge.Publish(ctx, s.published()); err != nil {
			s.Logger.Error("HomeKit bridge stopped", err, common.LogSystemToken, logSystem)
		}
	}()

	port := s.Settings.BridgeSettings().APIPort
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.handler(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Logger.Fatal("Failed to start server", err, common.LogSystemToken, logSystem)
		}
	}()

	s.Logger.Info(fmt.Sprintf("Started server on port %d", port), common.LogSystemToken, logSystem)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	s.Logger.Info("Received stop command, exiting", common.LogSystemToken, logSystem)
	cancel()

	sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer scancel()
	if err := srv.Shutdown(sctx); err != nil {
		s.Logger.Warn("Failed to stop HTTP server", common.LogSystemToken, logSystem,
			common.LogErrorToken, err.Error())
	}

	s.Stop()
}

// Stop notifies platforms and flushes the cache.
func (s *SIPBridgeServer) Stop() {
	s.api.Emit(platform.EventShutdown)
	if err := s.Settings.Cache().Save(); err != nil {
		s.Logger.Error("Failed to save accessory cache", err, common.LogSystemToken, logSystem)
	}

	s.Settings.Cron().Stop()

	s.state.close()
	if nil != s.Settings.FanOut() {
		s.Settings.FanOut().Stop()
	}
}

// HTTP API with CORS.
func (s *SIPBridgeServer) handler() http.Handler {
	router := mux.NewRouter()
	s.registerAPI(router)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
	)(router)
}

// All API registration.
func (s *SIPBridgeServer) registerAPI(router *mux.Router) {
	router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	publicRouter := router.PathPrefix(routePublic).Subrouter()
	publicRouter.HandleFunc("/ping", s.ping).Methods(http.MethodGet)

	apiRouter := router.PathPrefix(routeAPI).Subrouter()
	apiRouter.HandleFunc("/accessory", s.getAccessories).Methods(http.MethodGet)
	apiRouter.HandleFunc(fmt.Sprintf("/accessory/{%s}", urlAccessoryID), s.getAccessory).Methods(http.MethodGet)
	apiRouter.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)
	apiRouter.Use(s.logMiddleware)
}
