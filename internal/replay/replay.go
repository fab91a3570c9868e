// Package replay posts recorded bid requests to a running bidder and checks
// the responses for conformance.
package replay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"geo-bidder/internal/core/port"
)

// Options configures a replay run.
type Options struct {
	BaseURL     string
	Concurrency int
	Timeout     time.Duration
}

// Failure is a request whose response broke the protocol.
type Failure struct {
	RequestID string
	Reason    string
}

// Report summarises a replay run. Latencies are measured by the client and
// include the network round trip.
type Report struct {
	Total    int
	Bids     int
	NoBids   int
	Failures []Failure
	P50      time.Duration
	P95      time.Duration
	P99      time.Duration
	Max      time.Duration
	// Spend is the sum of bid prices, in catalog currency.
	Spend float64
}

// Conformant reports whether every request got a valid answer.
func (r *Report) Conformant() bool {
	return len(r.Failures) == 0
}

type outcome struct {
	latency  time.Duration
	response port.BidResponsePayload
	failure  string
}

// Client replays requests against one bidder.
type Client struct {
	http *http.Client
	opts Options
}

// NewClient returns a client for opts. A nil httpClient uses a client with
// opts.Timeout.
func NewClient(opts Options, httpClient *http.Client) *Client {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Client{http: httpClient, opts: opts}
}

// Run posts every request to /bid with at most Concurrency requests in
// flight. Requests without an id get a fresh uuid. Transport and protocol
// errors are reported as failures; only a cancelled ctx aborts the run.
func (c *Client) Run(ctx context.Context, requests []port.BidRequestPayload) (*Report, error) {
	for i := range requests {
		if requests[i].RequestID == "" {
			requests[i].RequestID = uuid.NewString()
		}
	}

	outcomes := make([]outcome, len(requests))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)
	for i := range requests {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcomes[i] = c.post(gctx, &requests[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return summarise(requests, outcomes), nil
}

func (c *Client) post(ctx context.Context, req *port.BidRequestPayload) outcome {
	body, err := json.Marshal(req)
	if err != nil {
		return outcome{failure: fmt.Sprintf("encode request: %v", err)}
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/bid", bytes.NewReader(body))
	if err != nil {
		return outcome{failure: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return outcome{latency: time.Since(start), failure: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	out := outcome{latency: time.Since(start)}
	switch {
	case err != nil:
		out.failure = fmt.Sprintf("read body: %v", err)
	case resp.StatusCode != http.StatusOK:
		out.failure = fmt.Sprintf("HTTP %d", resp.StatusCode)
	default:
		out.failure = check(req.RequestID, data, &out.response)
	}
	return out
}

// check validates one response body and returns a failure description, or
// the empty string for a conformant response.
func check(requestID string, data []byte, resp *port.BidResponsePayload) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Sprintf("invalid JSON: %v", err)
	}
	for _, f := range []string{"request_id", "decision", "latency_ms"} {
		if _, ok := fields[f]; !ok {
			return "missing field: " + f
		}
	}
	if err := json.Unmarshal(data, resp); err != nil {
		return fmt.Sprintf("invalid response: %v", err)
	}
	if resp.RequestID != requestID {
		return "request_id mismatch"
	}
	switch resp.Decision {
	case "bid":
		if resp.CampaignID == "" || resp.BidPrice == nil {
			return "bid response missing campaign_id or bid_price"
		}
	case "no_bid":
	default:
		return "invalid decision: " + resp.Decision
	}
	return ""
}

func summarise(requests []port.BidRequestPayload, outcomes []outcome) *Report {
	r := &Report{Total: len(outcomes)}
	latencies := make([]time.Duration, 0, len(outcomes))
	for i, o := range outcomes {
		latencies = append(latencies, o.latency)
		if o.failure != "" {
			r.Failures = append(r.Failures, Failure{RequestID: requests[i].RequestID, Reason: o.failure})
			continue
		}
		if o.response.Decision == "bid" {
			r.Bids++
			r.Spend += *o.response.BidPrice
		} else {
			r.NoBids++
		}
	}

	slices.Sort(latencies)
	r.P50 = percentile(latencies, 50)
	r.P95 = percentile(latencies, 95)
	r.P99 = percentile(latencies, 99)
	if n := len(latencies); n > 0 {
		r.Max = latencies[n-1]
	}
	return r
}

// percentile returns the nearest-rank percentile of sorted.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}
