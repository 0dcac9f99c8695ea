package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	plannerdto "github.com/mobicorp/spaceplanner-backend/api/controllers/planner/dto"
	"github.com/mobicorp/spaceplanner-backend/internal/planner"
	"github.com/mobicorp/spaceplanner-backend/pkg/types"
)

const maxAdviceBytes = 1 << 20

type adviseOptions struct {
	url        string
	timeout    time.Duration
	width      string
	length     string
	height     string
	seats      string
	spaceType  string
	style      string
	priority   string
	budget     string
	notes      string
	cartID     string
	verboseErr bool
}

func (o adviseOptions) request() plannerdto.PlanningRequest {
	return plannerdto.PlanningRequest{
		Width:      types.NewFlexString(o.width),
		Length:     types.NewFlexString(o.length),
		Height:     types.NewFlexString(o.height),
		Seats:      types.NewFlexString(o.seats),
		SpaceType:  types.NewFlexString(o.spaceType),
		Style:      types.NewFlexString(o.style),
		Priority:   types.NewFlexString(o.priority),
		Budget:     types.NewFlexString(o.budget),
		ExtraNotes: types.NewFlexString(o.notes),
		CartID:     types.NewFlexString(o.cartID),
	}
}

func newAdviseCmd(a *app) *cobra.Command {
	opts := adviseOptions{}
	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Request a space-planning suggestion",
		Long: `Send a planning request to the advisory endpoint and print the suggestion.

The endpoint defaults to SPACE_PLANNER_URL, then VITE_SPACE_PLANNER_URL, then the
local server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.url == "" {
				opts.url = a.cfg.CLI.AdvisoryURL
			}
			return runAdvise(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.url, "url", "", "advisory endpoint URL")
	f.DurationVar(&opts.timeout, "timeout", 60*time.Second, "request timeout")
	f.StringVar(&opts.width, "width", "", "room width in meters")
	f.StringVar(&opts.length, "length", "", "room length in meters")
	f.StringVar(&opts.height, "height", "", "ceiling height in meters")
	f.StringVar(&opts.seats, "seats", "", "number of workstations")
	f.StringVar(&opts.spaceType, "space-type", "", "kind of space, e.g. oficina abierta")
	f.StringVar(&opts.style, "style", "", "moderno | ejecutivo | colaborativo | clasico")
	f.StringVar(&opts.priority, "priority", "", "main priority of the layout")
	f.StringVar(&opts.budget, "budget", "", "budget range")
	f.StringVar(&opts.notes, "notes", "", "extra notes")
	f.StringVar(&opts.cartID, "cart-id", "", "use the products stored in this cart")
	f.BoolVar(&opts.verboseErr, "show-error", false, "print the error tag of failed responses")
	return cmd
}

func runAdvise(cmd *cobra.Command, opts adviseOptions) error {
	body, err := json.Marshal(opts.request())
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	ctx := cmd.Context()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	client := &http.Client{Timeout: opts.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", opts.url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxAdviceBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var advice planner.AdvisoryResponse
	if err := json.Unmarshal(raw, &advice); err != nil {
		return fmt.Errorf("decode response (HTTP %d): %w", resp.StatusCode, err)
	}
	if strings.TrimSpace(advice.SuggestionText) == "" {
		return fmt.Errorf("empty suggestion (HTTP %d)", resp.StatusCode)
	}

	out := cmd.OutOrStdout()
	if advice.Error != "" && opts.verboseErr {
		fmt.Fprintf(out, "[%s]\n", advice.Error)
	}
	fmt.Fprintln(out, advice.SuggestionText)
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("advisory endpoint answered HTTP %d", resp.StatusCode)
	}
	return nil
}
