package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/loomui/loom/pkg/loom"
)

func snapshotCmd() *cobra.Command {
	var (
		addr    string
		rawJSON bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print a one-shot view of the hook tree",
		Long: `Fetch the current hook tree from a running introspection server
and print it once.

Examples:
  loomtap snapshot
  loomtap snapshot --addr localhost:6061
  loomtap snapshot --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snaps, err := fetchSnapshot(addr)
			if err != nil {
				return err
			}
			if rawJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(snaps)
			}
			printTree(os.Stdout, snaps)
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "localhost:6061", "Introspection server address")
	cmd.Flags().BoolVar(&rawJSON, "json", false, "Print raw JSON instead of a tree")

	return cmd
}

func fetchSnapshot(addr string) ([]loom.OwnerSnapshot, error) {
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get("http://" + addr + "/snapshot")
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	var snaps []loom.OwnerSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snaps); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return snaps, nil
}

// printTree renders owners and their slots with two-space indentation per
// nesting level.
func printTree(w io.Writer, snaps []loom.OwnerSnapshot) {
	if len(snaps) == 0 {
		fmt.Fprintln(w, "(no mounted owners)")
		return
	}
	for _, snap := range snaps {
		printOwner(w, snap, 0)
	}
}

func printOwner(w io.Writer, snap loom.OwnerSnapshot, depth int) {
	indent := strings.Repeat("  ", depth)

	status := ""
	if snap.Unmounted {
		status = " (unmounted)"
	}
	fmt.Fprintf(w, "%sowner %d  passes=%d  slots=%d%s\n", indent, snap.ID, snap.Passes, len(snap.Slots), status)

	for _, slot := range snap.Slots {
		marks := make([]string, 0, 2)
		if slot.FirstPass {
			marks = append(marks, "pending")
		}
		if slot.HasCleanup {
			marks = append(marks, "cleanup")
		}
		suffix := ""
		if len(marks) > 0 {
			suffix = "  [" + strings.Join(marks, ",") + "]"
		}
		fmt.Fprintf(w, "%s  [%d] %s%s\n", indent, slot.Index, slot.Label, suffix)
	}

	for _, child := range snap.Children {
		printOwner(w, child, depth+1)
	}
}
