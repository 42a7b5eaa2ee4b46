package grpcservice

import (
	"fmt"
	"net/http"
	"net/http/pprof"
	"strings"
	"sync/atomic"

	"github.com/arkade-os/offerd/internal/config"
	interfaces "github.com/arkade-os/offerd/internal/interface"
	"github.com/arkade-os/offerd/internal/interface/grpc/handlers"
	"github.com/arkade-os/offerd/internal/interface/grpc/interceptors"
	"github.com/arkade-os/offerd/pkg/api"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpchealth "google.golang.org/grpc/health/grpc_health_v1"
)

type service struct {
	version       string
	config        Config
	appConfig     *config.Config
	server        *http.Server
	adminServer   *http.Server
	grpcServer    *grpc.Server
	adminGrpcSrvr *grpc.Server
	healthSvc     *health.Server
	readinessSvc  *interceptors.ReadinessService
	appSvcStarted atomic.Bool
}

// NewService expects an already validated app config.
func NewService(
	version string, svcConfig Config, appConfig *config.Config,
) (interfaces.Service, error) {
	if err := svcConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid service config: %s", err)
	}
	if err := appConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid app config: %s", err)
	}

	return &service{
		version:      version,
		config:       svcConfig,
		appConfig:    appConfig,
		readinessSvc: interceptors.NewReadinessService(),
		healthSvc:    health.NewServer(),
	}, nil
}

func (s *service) Start() error {
	if err := s.newServer(s.config.EnablePprof); err != nil {
		return err
	}

	// nolint:all
	go s.server.ListenAndServe()
	log.Infof("started listening at %s", s.config.address())

	if s.adminServer != nil {
		// nolint:all
		go s.adminServer.ListenAndServe()
		log.Infof("started admin listening at %s", s.config.adminAddress())
	}

	return s.startAppServices()
}

func (s *service) Stop() {
	s.healthSvc.Shutdown()

	if s.server != nil {
		_ = s.server.Close()
	}
	if s.adminServer != nil {
		_ = s.adminServer.Close()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.adminGrpcSrvr != nil {
		s.adminGrpcSrvr.Stop()
	}

	// The app service owns the datastore, it's closed once no call can
	// reach it anymore.
	if s.appSvcStarted.CompareAndSwap(true, false) {
		s.readinessSvc.MarkAppServiceStopped()
		appSvc, _ := s.appConfig.AppService()
		if appSvc != nil {
			appSvc.Stop()
		}
	}
	log.Info("shutdown service")
}

func (s *service) startAppServices() error {
	if !s.appSvcStarted.CompareAndSwap(false, true) {
		return nil
	}

	appSvc, err := s.appConfig.AppService()
	if err != nil {
		s.appSvcStarted.Store(false)
		return fmt.Errorf("failed to create app service: %w", err)
	}
	if err := appSvc.Start(); err != nil {
		s.appSvcStarted.Store(false)
		return fmt.Errorf("failed to start app service: %w", err)
	}
	log.Info("started app service")

	s.readinessSvc.MarkAppServiceStarted()
	s.healthSvc.SetServingStatus("", grpchealth.HealthCheckResponse_SERVING)

	log.Info("market and admin services are now ready")
	return nil
}

func (s *service) newServer(withPprof bool) error {
	appSvc, err := s.appConfig.AppService()
	if err != nil {
		return fmt.Errorf("failed to create app service: %w", err)
	}

	s.healthSvc.SetServingStatus("", grpchealth.HealthCheckResponse_NOT_SERVING)

	grpcConfig := []grpc.ServerOption{
		interceptors.UnaryInterceptor(s.readinessSvc),
		interceptors.StreamInterceptor(s.readinessSvc),
	}
	restInterceptor := interceptors.UnaryChain(s.readinessSvc)

	marketHandler := handlers.NewMarketHandler(s.version, appSvc)
	adminHandler := handlers.NewAdminHandler(s.appConfig.AdminService())

	grpcServer := grpc.NewServer(grpcConfig...)
	api.RegisterMarketServiceServer(grpcServer, marketHandler)
	grpchealth.RegisterHealthServer(grpcServer, s.healthSvc)

	var restHandler http.Handler
	if s.config.hasAdminPort() {
		restHandler = handlers.NewRestHandler(marketHandler, nil, restInterceptor)
	} else {
		api.RegisterAdminServiceServer(grpcServer, adminHandler)
		restHandler = handlers.NewRestHandler(marketHandler, adminHandler, restInterceptor)
	}

	mux := http.NewServeMux()
	mux.Handle("/", router(grpcServer, restHandler))
	if withPprof && !s.config.hasAdminPort() {
		registerPprof(mux)
	}

	s.grpcServer = grpcServer
	s.server = &http.Server{
		Addr:    s.config.address(),
		Handler: h2c.NewHandler(mux, &http2.Server{}),
	}

	if !s.config.hasAdminPort() {
		return nil
	}

	adminGrpcServer := grpc.NewServer(grpcConfig...)
	api.RegisterAdminServiceServer(adminGrpcServer, adminHandler)
	grpchealth.RegisterHealthServer(adminGrpcServer, s.healthSvc)

	adminRestHandler := handlers.NewRestHandler(nil, adminHandler, restInterceptor)
	adminMux := http.NewServeMux()
	if withPprof {
		registerPprof(adminMux)
	}
	adminMux.Handle("/", router(adminGrpcServer, adminRestHandler))

	s.adminGrpcSrvr = adminGrpcServer
	s.adminServer = &http.Server{
		Addr:    s.config.adminAddress(),
		Handler: h2c.NewHandler(adminMux, &http2.Server{}),
	}
	return nil
}

func registerPprof(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	log.Info("pprof enabled at /debug/pprof/")
}

// router serves plain http calls with the rest handler, everything else
// is handed to the grpc server.
func router(grpcServer *grpc.Server, restHandler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isOptionRequest(r) {
			setCorsHeaders(w)
			return
		}

		if isHttpRequest(r) {
			setCorsHeaders(w)
			restHandler.ServeHTTP(w, r)
			return
		}
		grpcServer.ServeHTTP(w, r)
	})
}

func setCorsHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "*")
	w.Header().Add("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
}

func isOptionRequest(req *http.Request) bool {
	return req.Method == http.MethodOptions
}

func isHttpRequest(req *http.Request) bool {
	return req.Method == http.MethodGet ||
		strings.Contains(req.Header.Get("Content-Type"), "application/json")
}
