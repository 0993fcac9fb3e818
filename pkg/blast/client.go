// Package blast searches protein sequences against NCBI with the BLAST URL
// API: submit (CMD=Put), poll SearchInfo until READY, fetch XML (CMD=Get).
//
// Raw XML results can be cached on disk, keyed by program, database and a
// seqhash of the query, so repeated runs over the same plasmids do not hit
// NCBI again.
package blast

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bebop/poly/seqhash"

	"github.com/liserjrqlxue/pichia/pkg/plasmid"
)

const (
	DefaultURL      = "https://blast.ncbi.nlm.nih.gov/Blast.cgi"
	DefaultProgram  = "blastp"
	DefaultDatabase = "swissprot"
	DefaultTool     = "pichia"
)

var (
	ErrSearchFailed = errors.New("blast search failed")
	ErrUnknownRID   = errors.New("blast request id expired or unknown")

	ridRE    = regexp.MustCompile(`RID = (\S+)`)
	rtoeRE   = regexp.MustCompile(`RTOE = (\d+)`)
	statusRE = regexp.MustCompile(`Status=(\w+)`)
)

type Client struct {
	URL         string
	Program     string
	Database    string
	HitlistSize int
	Email       string
	Tool        string
	APIKey      string
	// PollInterval between SearchInfo requests
	PollInterval time.Duration
	// Timeout bounds one Search, 0 for none
	Timeout  time.Duration
	CacheDir string
	HTTP     *http.Client
	Logger   *slog.Logger
}

// NewClient returns a client with NCBI defaults.
func NewClient() *Client {
	return &Client{
		URL:          DefaultURL,
		Program:      DefaultProgram,
		Database:     DefaultDatabase,
		HitlistSize:  10,
		Tool:         DefaultTool,
		PollInterval: time.Minute,
		Timeout:      15 * time.Minute,
		HTTP:         &http.Client{Timeout: time.Minute},
	}
}

func (c *Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// Search runs one BLAST search for a protein query.
func (c *Client) Search(ctx context.Context, query string) ([]plasmid.Homolog, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	payload, err := c.withCache(query, func() ([]byte, error) {
		rid, rtoe, err := c.put(ctx, query)
		if err != nil {
			return nil, err
		}
		c.logger().Info("blast submitted", "rid", rid, "rtoe", rtoe)
		hits, err := c.wait(ctx, rid, rtoe)
		if err != nil {
			return nil, err
		}
		if !hits {
			return emptyOutput, nil
		}
		return c.get(ctx, url.Values{
			"CMD":         {"Get"},
			"FORMAT_TYPE": {"XML"},
			"RID":         {rid},
		})
	})
	if err != nil {
		return nil, err
	}
	return ParseXML(bytes.NewReader(payload))
}

var emptyOutput = []byte("<BlastOutput></BlastOutput>")

func (c *Client) put(ctx context.Context, query string) (rid string, rtoe time.Duration, err error) {
	form := url.Values{
		"CMD":      {"Put"},
		"PROGRAM":  {c.Program},
		"DATABASE": {c.Database},
		"QUERY":    {query},
		"TOOL":     {c.Tool},
	}
	if c.HitlistSize > 0 {
		form.Set("HITLIST_SIZE", strconv.Itoa(c.HitlistSize))
	}
	if c.Email != "" {
		form.Set("EMAIL", c.Email)
	}
	if c.APIKey != "" {
		form.Set("API_KEY", c.APIKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	body, err := c.do(req)
	if err != nil {
		return "", 0, err
	}
	m := ridRE.FindSubmatch(body)
	if m == nil {
		return "", 0, fmt.Errorf("%w: no RID in submit response", ErrSearchFailed)
	}
	rid = string(m[1])
	if m := rtoeRE.FindSubmatch(body); m != nil {
		sec, _ := strconv.Atoi(string(m[1]))
		rtoe = time.Duration(sec) * time.Second
	}
	return rid, rtoe, nil
}

// wait polls until the search is READY and reports whether it has hits.
func (c *Client) wait(ctx context.Context, rid string, rtoe time.Duration) (bool, error) {
	delay := rtoe
	if delay <= 0 {
		delay = c.PollInterval
	}
	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(delay):
		}
		delay = c.PollInterval

		body, err := c.get(ctx, url.Values{
			"CMD":           {"Get"},
			"FORMAT_OBJECT": {"SearchInfo"},
			"RID":           {rid},
		})
		if err != nil {
			return false, err
		}
		m := statusRE.FindSubmatch(body)
		if m == nil {
			return false, fmt.Errorf("%w: no status for %s", ErrSearchFailed, rid)
		}
		switch status := string(m[1]); status {
		case "WAITING":
			c.logger().Debug("blast waiting", "rid", rid)
		case "READY":
			return bytes.Contains(body, []byte("ThereAreHits=yes")), nil
		case "UNKNOWN":
			return false, fmt.Errorf("%w: %s", ErrUnknownRID, rid)
		default:
			return false, fmt.Errorf("%w: %s status %s", ErrSearchFailed, rid, status)
		}
	}
}

func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: http status %d", ErrSearchFailed, resp.StatusCode)
	}
	return io.ReadAll(bufio.NewReader(resp.Body))
}

type cacheEntry struct {
	FetchedAt time.Time `json:"fetched_at"`
	Query     string    `json:"query"`
	Payload   []byte    `json:"payload"`
}

func (c *Client) withCache(query string, fetch func() ([]byte, error)) ([]byte, error) {
	if c.CacheDir == "" {
		return fetch()
	}
	path, err := c.cachePath(query)
	if err != nil {
		return fetch()
	}
	if payload, ok := readCache(path); ok {
		c.logger().Debug("blast cache hit", "path", path)
		return payload, nil
	}
	payload, err := fetch()
	if err != nil {
		return nil, err
	}
	if err := writeCache(path, query, payload); err != nil {
		c.logger().Warn("blast cache", "path", path, "err", err)
	}
	return payload, nil
}

func (c *Client) cachePath(query string) (string, error) {
	hash, err := seqhash.Hash(query, "PROTEIN", false, false)
	if err != nil {
		return "", err
	}
	return filepath.Join(c.CacheDir, c.Program, c.Database, hash+".json"), nil
}

func readCache(path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	return entry.Payload, true
}

func writeCache(path, query string, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cacheEntry{FetchedAt: time.Now(), Query: query, Payload: payload}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
