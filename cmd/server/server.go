package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/onemillion/internal/errors"
	"github.com/KirkDiggler/onemillion/internal/handlers/battle/v1alpha1"
	"github.com/KirkDiggler/onemillion/internal/presentation/board"
	"github.com/KirkDiggler/onemillion/internal/presentation/render"
)

// healthService is the name the game API reports under in the health service
const healthService = "onemillion.battle.v1alpha1"

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP game API and gRPC health server",
	Long:  `Start the game API over HTTP and a gRPC health and reflection endpoint on a separate port.`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	views := board.New()
	service, cleanup, err := buildGame(cfg, views)
	defer cleanup()
	if err != nil {
		return err
	}

	renderer, err := render.New(&render.Config{AssetDir: cfg.AssetDir})
	if err != nil {
		return fmt.Errorf("failed to create board renderer: %w", err)
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		GameService: service,
		Views:       views,
		Renderer:    renderer,
	})
	if err != nil {
		return fmt.Errorf("failed to create battle handler: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	handler.RegisterRoutes(router)

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	grpcSrv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
			errorInterceptor,
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcSrv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(healthService, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(grpcSrv)

	errChan := make(chan error, 2)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.GRPCPort)
		if err := grpcSrv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve grpc: %w", err)
		}
	}()
	go func() {
		slog.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve http: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errChan:
		cancel()
		shutdown(httpSrv, grpcSrv, healthServer)
		return err
	}

	shutdown(httpSrv, grpcSrv, healthServer)
	return nil
}

func shutdown(httpSrv *http.Server, grpcSrv *grpc.Server, healthServer *health.Server) {
	slog.Info("Shutting down servers...")
	healthServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown failed", "error", err)
	}

	stopped := make(chan struct{})
	go func() {
		grpcSrv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
		grpcSrv.Stop()
	case <-stopped:
		slog.Info("Servers stopped gracefully")
	}
}

// errorInterceptor converts internal errors into gRPC status errors
func errorInterceptor(
	ctx context.Context,
	req any,
	_ *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	resp, err := handler(ctx, req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}

// requestLogger logs every HTTP request at debug level, and failures at warn
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelDebug
		if c.Writer.Status() >= http.StatusBadRequest {
			level = slog.LevelWarn
		}
		slog.Log(c.Request.Context(), level, "HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
