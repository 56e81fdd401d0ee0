package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/shadowplay-lint/shadowplay/internal/diag"
)

// jsonReport is the --format=json envelope: every diagnostic from this run
// alongside a stable per-run correlation id, so a log aggregator can tie
// together the diagnostics one invocation produced without relying on
// process start time or PID.
type jsonReport struct {
	RunID       string           `json:"run_id"`
	Diagnostics diag.Diagnostics `json:"diagnostics"`
}

func newRunID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// reportAndExit renders diagnostics in the configured format and exits with
// a non-zero status if any are present.
func reportAndExit(diags diag.Diagnostics) error {
	diags.SortByLocation()
	switch formatFlag {
	case "json":
		report := jsonReport{RunID: newRunID(), Diagnostics: diags}
		out, err := json.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		var sb strings.Builder
		diags.RenderOneLine(&sb)
		if sb.Len() > 0 {
			fmt.Println(sb.String())
		}
	}
	if diags.HasErrors() {
		os.Exit(1)
	}
	return nil
}
