package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/loomui/loom/pkg/loom"
)

func followCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "follow",
		Short: "Stream hook-tree updates as they happen",
		Long: `Connect to the introspection server's live stream and reprint the
hook tree after every completed rebuild pass.

Press Ctrl+C to stop.

Examples:
  loomtap follow
  loomtap follow --addr localhost:6061`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFollow(addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "localhost:6061", "Introspection server address")

	return cmd
}

func runFollow(addr string) error {
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/live", nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer conn.Close()

	// Close the connection on Ctrl+C so ReadJSON unblocks.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	interrupted := make(chan struct{})
	done := make(chan struct{})
	go func() {
		select {
		case <-sig:
			close(interrupted)
			conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	fmt.Printf("following %s (Ctrl+C to stop)\n\n", addr)

	for frame := 0; ; frame++ {
		var snaps []loom.OwnerSnapshot
		if err := conn.ReadJSON(&snaps); err != nil {
			select {
			case <-interrupted:
				return nil
			default:
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("reading stream: %w", err)
		}

		if frame > 0 {
			fmt.Println("---")
		}
		printTree(os.Stdout, snaps)
	}
}
