// Package track provides the runner that summarizes mood tracking.
package track

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"tableflip.dev/diary/pkg/analytics"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/gateway"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/timeutil"
)

// Source is the part of the API the summary needs.
type Source interface {
	analytics.Source
	ListEntries(ctx context.Context, q gateway.ListQuery) ([]entry.Entry, error)
}

// Report is the structured form of the summary.
type Report struct {
	AllTime   analytics.Summary `json:"allTime"`
	ThisMonth analytics.Summary `json:"thisMonth"`
}

// Track prints the all-time mood distribution next to the current month's.
type Track struct {
	Gateway Source
	Now     func() time.Time
	// Structured selects JSON, or YAML when YAML is also set.
	Structured bool
	YAML       bool
	Out        io.Writer
}

// Do fetches both summaries concurrently.
func (n *Track) Do(ctx context.Context) error {
	if n.Gateway == nil {
		return errors.New("can not get, no gateway")
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}

	var r Report
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := analytics.Load(gctx, n.Gateway)
		r.AllTime = s
		return err
	})
	g.Go(func() error {
		start, end := timeutil.MonthBounds(now())
		es, err := n.Gateway.ListEntries(gctx, gateway.ListQuery{StartDate: start, EndDate: end, Sort: entry.Newest})
		if err != nil {
			return fmt.Errorf("load this month: %w", err)
		}
		r.ThisMonth = analytics.Summarize(analytics.FromEntries(es))
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if n.Structured {
		return printers.Encode(n.Out, r, n.YAML)
	}

	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Stats(r.AllTime)
	pp.NewLine()
	pp.Title(now().Format("January 2006"))
	pp.Stats(r.ThisMonth)
	return nil
}
