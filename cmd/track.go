package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/portfolio"
	"github.com/Zachkp/folio/internal/section"
	"github.com/Zachkp/folio/internal/store"
)

var trackCmd = &cobra.Command{
	Use:   "track <scrollY>...",
	Short: "Replay scroll positions through the section tracker",
	Long: `Replays scroll positions against a set of section offsets and prints
the active section after each one, marking the positions that change it.

  folio track --offset hero=0 --offset about=800 --offset skills=1600 750 650`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().StringArray("offset", nil, "section offset as id=px (repeatable)")
	trackCmd.Flags().Float64("threshold", section.DefaultThreshold, "lookahead in pixels")
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetStringArray("offset")
	threshold, _ := cmd.Flags().GetFloat64("threshold")

	offsets, err := parseOffsets(raw)
	if err != nil {
		return err
	}

	registry, err := section.NewRegistry(section.Defaults()...)
	if err != nil {
		return err
	}
	st := store.New(portfolio.Content{}, store.WithActiveSection(registry.First().ID))
	tracker := section.NewTracker(registry, st, threshold, nil)

	out := cmd.OutOrStdout()
	for _, a := range args {
		y, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("invalid scroll position %q: %w", a, err)
		}
		id, changed := tracker.Observe(y, offsets)
		mark := " "
		if changed {
			mark = "*"
		}
		fmt.Fprintf(out, "%s %8.1f  %s\n", mark, y, id)
	}
	return nil
}

func parseOffsets(raw []string) (map[string]float64, error) {
	offsets := make(map[string]float64, len(raw))
	for _, r := range raw {
		id, px, ok := strings.Cut(r, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid offset %q: want id=px", r)
		}
		v, err := strconv.ParseFloat(px, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid offset %q: %w", r, err)
		}
		offsets[id] = v
	}
	return offsets, nil
}
