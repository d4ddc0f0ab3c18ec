package commands

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/unmute-ai/signplay/live"
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Run the engine fed by a WebSocket live frame stream",
	Args:  cobra.NoArgs,
	RunE:  runLive,
}

func init() {
	rootCmd.AddCommand(liveCmd)
}

func runLive(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	feed := live.NewFeed(a.skeleton, live.WithScheduler(a.scheduler))
	go func() {
		if err := feed.ListenAndServe(a.cfg.Live.Addr); err != nil && err != http.ErrServerClosed {
			log.Printf("live feed server: %v", err)
			a.engine.Quit()
		}
	}()
	fmt.Println(styleLabel.Render("listening on ws://" + a.cfg.Live.Addr + "/live"))

	a.run()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return feed.Shutdown(ctx)
}
