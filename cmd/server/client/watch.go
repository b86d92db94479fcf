package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

var watchCount int

var watchCmd = &cobra.Command{
	Use:   "watch [game-id]",
	Short: "Print the board every time it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		return watchBoard(ctx, args[0], watchCount, cmd.OutOrStdout())
	},
}

func init() {
	watchCmd.Flags().IntVar(&watchCount, "count", 0, "stop after this many views (0 watches until interrupted)")
}

// watchBoard prints views from the board stream until count views were
// printed, ctx is done or the server closes the stream
func watchBoard(ctx context.Context, gameID string, count int, out io.Writer) error {
	path := gamePath(gameID, "/stream")
	u, err := url.Parse(strings.TrimRight(apiAddr, "/") + path)
	if err != nil {
		return fmt.Errorf("invalid api address: %w", err)
	}
	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			data, _ := io.ReadAll(resp.Body)
			return responseError(http.MethodGet, path, resp.StatusCode, data)
		}
		return fmt.Errorf("failed to open board stream: %w", err)
	}
	defer func() { _ = conn.Close() }()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	for n := 0; count == 0 || n < count; n++ {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("board stream ended: %w", err)
		}
		if err := printJSON(out, data); err != nil {
			return err
		}
	}
	return nil
}
