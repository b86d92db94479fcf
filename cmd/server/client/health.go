package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/health/grpc_health_v1"
)

var healthService string

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the server's gRPC health endpoint",
	RunE:  checkHealth,
}

func init() {
	healthCmd.Flags().StringVar(&healthService, "service", "", "service name to check (empty checks the server)")
}

func checkHealth(cmd *cobra.Command, args []string) error {
	conn, err := createConnection()
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{
		Service: healthService,
	})
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Status: %s\n", resp.GetStatus())
	return nil
}
