package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start [difficulty]",
	Short: "Start a new run",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]string{}
		if len(args) == 1 {
			body["difficulty"] = args[0]
		}
		return run(cmd, http.MethodPost, "/v1alpha1/games", body)
	},
}

var getCmd = &cobra.Command{
	Use:   "get [game-id]",
	Short: "Show a run and its board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, http.MethodGet, gamePath(args[0], ""), nil)
	},
}

var actCmd = &cobra.Command{
	Use:   "act [game-id] [attack|defend|upgrade] [slot]",
	Short: "Play a party turn",
	Long: `Play a party turn. Examples:

  act game_123 attack hero
  act game_123 defend knight
  act game_123 upgrade scholar`,
	Args: cobra.ExactArgs(3),
	RunE: act,
}

var advanceCmd = &cobra.Command{
	Use:   "advance [game-id]",
	Short: "Run the pending boss turn, round start, announcement or reset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, http.MethodPost, gamePath(args[0], "/advance"), nil)
	},
}

var endCmd = &cobra.Command{
	Use:   "end [game-id]",
	Short: "Remove a run for good",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, http.MethodPost, gamePath(args[0], "/end"), nil)
	},
}

var highScoreCmd = &cobra.Command{
	Use:   "high-score",
	Short: "Show the last high score",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, http.MethodGet, "/v1alpha1/high-score", nil)
	},
}

func act(cmd *cobra.Command, args []string) error {
	gameID, action, slot := args[0], args[1], args[2]

	switch action {
	case "attack", "defend":
		return run(cmd, http.MethodPost, gamePath(gameID, "/"+action), map[string]string{"slot": slot})
	case "upgrade":
		return run(cmd, http.MethodPost, gamePath(gameID, "/upgrade"), map[string]string{"target": slot})
	default:
		return fmt.Errorf("unknown action %q: use attack, defend or upgrade", action)
	}
}

func run(cmd *cobra.Command, method, path string, body interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	data, err := callAPI(ctx, method, path, body)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), data)
}

func gamePath(gameID, suffix string) string {
	return "/v1alpha1/games/" + url.PathEscape(gameID) + suffix
}
