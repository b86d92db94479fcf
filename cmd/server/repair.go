package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/onemillion/internal/errors"
	"github.com/KirkDiggler/onemillion/internal/pkg/clock"
	"github.com/KirkDiggler/onemillion/internal/redis"
	"github.com/KirkDiggler/onemillion/internal/repositories/highscore"
)

var (
	repairRedisAddr string
	repairYes       bool
)

var repairCmd = &cobra.Command{
	Use:   "repair-high-score",
	Short: "Check the stored high score and delete it if it is corrupted",
	RunE:  runRepair,
}

func init() {
	repairCmd.Flags().StringVar(&repairRedisAddr, "redis-addr", "localhost:6379", "Redis address")
	repairCmd.Flags().BoolVar(&repairYes, "yes", false, "delete a corrupted entry without asking")
}

func runRepair(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := redis.Connect(ctx, &redis.Config{Addr: repairRedisAddr})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	}()
	fmt.Fprintln(cmd.OutOrStdout(), "Connected to Redis:", repairRedisAddr)

	return repairHighScore(ctx, client, cmd.InOrStdin(), cmd.OutOrStdout(), repairYes)
}

// repairHighScore deletes the high score key when its value no longer
// decodes. Without assumeYes it asks on in first.
func repairHighScore(ctx context.Context, client redis.Client, in io.Reader, out io.Writer, assumeYes bool) error {
	repo, err := highscore.NewRedisRepository(&highscore.Config{Client: client, Clock: clock.New()})
	if err != nil {
		return err
	}

	got, err := repo.Get(ctx)
	switch {
	case err == nil:
		fmt.Fprintf(out, "High score %d from game %s is intact\n", got.Score.Value, got.Score.GameID)
		return nil
	case errors.IsNotFound(err):
		fmt.Fprintln(out, "No high score stored")
		return nil
	case !errors.IsInternal(err):
		return err
	}

	fmt.Fprintf(out, "✗ Corrupted high score in %s: %v\n", highscore.Key, err)

	if !assumeYes {
		fmt.Fprint(out, "Do you want to DELETE it? (yes/no): ")
		answer, _ := bufio.NewReader(in).ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			fmt.Fprintln(out, "Aborted - no changes made")
			return nil
		}
	}

	if err := client.Del(ctx, highscore.Key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", highscore.Key, err)
	}
	fmt.Fprintf(out, "Deleted %s\n", highscore.Key)
	return nil
}
