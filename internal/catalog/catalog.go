// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/apex/log"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"

	"github.com/staranto/heroctl/internal/hero"
	"github.com/staranto/heroctl/internal/version"
)

// Client fetches the superhero catalog once, keeps it in memory and serves
// random picks from it. It is safe for concurrent use.
type Client struct {
	url     string
	timeout time.Duration
	doer    Doer

	rngMu sync.Mutex
	rng   *rand.Rand

	group singleflight.Group
	seq   atomic.Uint64

	mu     sync.RWMutex
	heroes []hero.Record
	gen    uint64
}

// NewClient validates the source URL and returns a Client with an empty
// catalog. A bad URL is a configuration error and is reported here, before any
// request is attempted.
func NewClient(opts ...Option) (*Client, error) {
	o := options{
		url:     DefaultURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateURL(o.url); err != nil {
		return nil, err
	}

	if o.doer == nil {
		o.doer = cleanhttp.DefaultPooledClient()
	}

	return &Client{
		url:     o.url,
		timeout: o.timeout,
		doer:    o.doer,
		rng:     o.rng,
	}, nil
}

// URL returns the catalog source.
func (c *Client) URL() string {
	return c.url
}

// Timeout returns the per-request timeout. Zero means none.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// FetchAll issues one request for the catalog and, on success, replaces the
// cached catalog as a whole. On failure the cache is left untouched. A fetch
// that finishes after a newer fetch has already stored its result does not
// overwrite it.
func (c *Client) FetchAll(ctx context.Context) ([]hero.Record, error) {
	seq := c.seq.Add(1)

	heroes, err := c.fetch(ctx)
	if err != nil {
		log.WithError(err).Debugf("catalog fetch #%d failed", seq)
		return nil, err
	}

	c.store(seq, heroes)
	return slices.Clone(heroes), nil
}

// Random returns one record chosen uniformly at random. The catalog is fetched
// first if it has not been loaded, or if the last fetch returned no records.
func (c *Client) Random(ctx context.Context) (hero.Record, error) {
	heroes, err := c.ensure(ctx)
	if err != nil {
		return hero.Record{}, err
	}
	if len(heroes) == 0 {
		return hero.Record{}, ErrNoData
	}
	return heroes[c.intN(len(heroes))], nil
}

// Catalog returns a copy of the catalog, loading it first if needed.
func (c *Client) Catalog(ctx context.Context) ([]hero.Record, error) {
	heroes, err := c.ensure(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(heroes), nil
}

// Loaded reports whether a non-empty catalog is cached.
func (c *Client) Loaded() bool {
	return c.Len() > 0
}

// Len returns the number of cached records.
func (c *Client) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.heroes)
}

// ensure returns the cached catalog, fetching it when empty. Concurrent callers
// share a single in-flight fetch. The shared fetch is detached from any one
// caller's cancellation (it is still bounded by the client timeout); each
// waiter honors its own context.
func (c *Client) ensure(ctx context.Context) ([]hero.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, &RequestError{Cause: err}
	}
	if heroes := c.cached(); len(heroes) > 0 {
		return heroes, nil
	}

	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan("catalog", func() (interface{}, error) {
		// Another flight may have stored while we were queueing.
		if heroes := c.cached(); len(heroes) > 0 {
			return heroes, nil
		}
		log.Debugf("catalog not loaded, fetching %s", c.url)
		if _, err := c.FetchAll(flightCtx); err != nil {
			return nil, err
		}
		return c.cached(), nil
	})

	select {
	case <-ctx.Done():
		return nil, &RequestError{Cause: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			log.Debug("joined in-flight catalog fetch")
		}
		heroes, _ := res.Val.([]hero.Record)
		return heroes, nil
	}
}

// cached returns the current snapshot. The slice is never mutated after it is
// stored so it can be shared read-only.
func (c *Client) cached() []hero.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.heroes
}

func (c *Client) store(seq uint64, heroes []hero.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq < c.gen {
		log.Debugf("discarding catalog fetch #%d, #%d already stored", seq, c.gen)
		return
	}
	c.heroes = heroes
	c.gen = seq
	log.Debugf("cached %d heroes from fetch #%d", len(heroes), seq)
}

func (c *Client) fetch(ctx context.Context) ([]hero.Record, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, &RequestError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &RequestError{Cause: &StatusError{Code: resp.StatusCode, Status: resp.Status}}
	}

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, &RequestError{Cause: err}
	}

	return decode(doc.Bytes())
}

// decode parses the catalog document. Diagnostics go to the debug log only;
// callers just see ErrDecoding.
func decode(body []byte) ([]hero.Record, error) {
	if !gjson.ValidBytes(body) {
		log.Debugf("catalog body is not valid JSON (%d bytes)", len(body))
		return nil, ErrDecoding
	}
	if doc := gjson.ParseBytes(body); !doc.IsArray() {
		log.Debugf("catalog body is a JSON %s, not an array", doc.Type)
		return nil, ErrDecoding
	}

	var heroes []hero.Record
	if err := json.Unmarshal(body, &heroes); err != nil {
		log.WithError(err).Debug("catalog body does not match the hero schema")
		return nil, ErrDecoding
	}
	return heroes, nil
}

func (c *Client) intN(n int) int {
	if c.rng == nil {
		return rand.IntN(n)
	}
	c.rngMu.Lock()
	defer c.rngMu.Unlock()
	return c.rng.IntN(n)
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return nil
}
