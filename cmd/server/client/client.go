// Package client provides commands that exercise a running One Million server
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var (
	// Connection flags
	serverAddr string
	apiAddr    string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the One Million server",
	Long:  `Client commands check the gRPC health endpoint and play through the HTTP game API.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().StringVar(&apiAddr, "api", "http://localhost:8080", "HTTP API base URL")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(healthCmd)
	ClientCmd.AddCommand(startCmd)
	ClientCmd.AddCommand(getCmd)
	ClientCmd.AddCommand(actCmd)
	ClientCmd.AddCommand(advanceCmd)
	ClientCmd.AddCommand(endCmd)
	ClientCmd.AddCommand(highScoreCmd)
	ClientCmd.AddCommand(watchCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// apiError is the body the API returns on failure
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// callAPI sends body as JSON and returns the response body. Non-2xx
// responses become errors carrying the API's code and message.
func callAPI(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(apiAddr, "/")+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, responseError(method, path, resp.StatusCode, data)
	}

	return data, nil
}

// responseError turns a failed response into an error carrying the API's
// code and message when the body has them
func responseError(method, path string, status int, data []byte) error {
	var apiErr apiError
	if err := json.Unmarshal(data, &apiErr); err != nil || apiErr.Code == "" {
		return fmt.Errorf("%s %s: HTTP %d", method, path, status)
	}
	return fmt.Errorf("%s: %s", apiErr.Code, apiErr.Message)
}

// printJSON writes an indented copy of data
func printJSON(w io.Writer, data []byte) error {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	_, err := fmt.Fprintln(w, out.String())
	return err
}
