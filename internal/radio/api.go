package radio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultBaseURL  = "https://all.api.radio-browser.info"
	requestTimeout  = 12 * time.Second
	defaultPageSize = 50
	refreshParallel = 4
)

type Client struct {
	baseURL   string
	userAgent string
	pageSize  int
	http      *http.Client
}

type serverInfo struct {
	Name string `json:"name"`
}

// NewClient creates a radio-browser API client. The user agent is mandatory;
// the directory operators ask every client to identify itself.
func NewClient(userAgent string, pageSize int) (*Client, error) {
	if strings.TrimSpace(userAgent) == "" {
		return nil, errors.New("user agent is required")
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &Client{
		baseURL:   defaultBaseURL,
		userAgent: userAgent,
		pageSize:  pageSize,
		http:      &http.Client{Timeout: requestTimeout},
	}, nil
}

// DiscoverServer queries the directory's server list and switches the client
// to a randomly chosen mirror. On failure the client keeps the round-robin
// default, which is always valid.
func (c *Client) DiscoverServer(ctx context.Context) error {
	baseURL, err := c.pickRandomServer(ctx)
	if err != nil {
		return err
	}
	c.baseURL = baseURL
	return nil
}

// PageSize returns the number of stations requested per page.
func (c *Client) PageSize() int { return c.pageSize }

// Search fetches one page of stations matching the criteria. pageIndex is
// zero-based. A page with exactly PageSize stations is assumed to have a
// successor; a short page is the last one.
func (c *Client) Search(ctx context.Context, criteria SearchCriteria, pageIndex int) (Page, error) {
	if pageIndex < 0 {
		pageIndex = 0
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(c.pageSize))
	query.Set("offset", strconv.Itoa(pageIndex*c.pageSize))
	query.Set("hidebroken", "true")
	query.Set("order", "clickcount")
	query.Set("reverse", "true")
	if criteria.Name != "" {
		query.Set("name", criteria.Name)
	}
	if criteria.Tags != "" {
		query.Set("tagList", criteria.Tags)
	}
	if criteria.CountryCode != "" {
		query.Set("countrycode", criteria.CountryCode)
	}
	if criteria.Language != "" {
		query.Set("language", criteria.Language)
	}

	reqURL := c.baseURL + "/json/stations/search?" + query.Encode()
	var stations []Station
	if err := c.doJSON(ctx, reqURL, &stations); err != nil {
		return Page{}, err
	}

	return Page{
		Stations: stations,
		Index:    pageIndex,
		HasMore:  len(stations) == c.pageSize,
	}, nil
}

// StationsByUUIDs looks up stations one uuid at a time with bounded
// parallelism. Lookup failures do not abort the batch; uuids that could not
// be refreshed are returned separately so callers can fall back to cached
// data.
func (c *Client) StationsByUUIDs(ctx context.Context, uuids []string) ([]Station, []string) {
	results := make([]*Station, len(uuids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshParallel)
	for i, uuid := range uuids {
		i, uuid := i, uuid
		g.Go(func() error {
			station, err := c.stationByUUID(ctx, uuid)
			if err == nil {
				results[i] = &station
			}
			return nil
		})
	}
	_ = g.Wait()

	var stations []Station
	var failed []string
	for i, station := range results {
		if station == nil {
			failed = append(failed, uuids[i])
			continue
		}
		stations = append(stations, *station)
	}
	return stations, failed
}

func (c *Client) stationByUUID(ctx context.Context, uuid string) (Station, error) {
	uuid = strings.TrimSpace(uuid)
	if uuid == "" {
		return Station{}, errors.New("station uuid is required")
	}

	reqURL := c.baseURL + "/json/stations/byuuid/" + url.PathEscape(uuid)
	var stations []Station
	if err := c.doJSON(ctx, reqURL, &stations); err != nil {
		return Station{}, err
	}
	if len(stations) == 0 {
		return Station{}, newFetchError(FetchDecode, fmt.Errorf("no station for uuid %s", uuid))
	}
	return stations[0], nil
}

func (c *Client) doJSON(ctx context.Context, reqURL string, target any) error {
	data, err := c.getBytes(ctx, reqURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return newFetchError(FetchDecode, err)
	}
	return nil
}

func (c *Client) getBytes(ctx context.Context, reqURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, newFetchError(FetchNetwork, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, newFetchError(FetchNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newFetchError(FetchServer, fmt.Errorf("request failed: %s", resp.Status))
	}

	// Limit response size to 10MB to prevent OOM on malformed responses
	data, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return nil, newFetchError(FetchNetwork, err)
	}
	return data, nil
}

func (c *Client) pickRandomServer(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	reqURL := c.baseURL + "/json/servers"
	var servers []serverInfo
	if err := c.doJSON(ctx, reqURL, &servers); err != nil {
		return "", err
	}
	if len(servers) == 0 {
		return "", errors.New("no api servers returned")
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	choice := servers[r.Intn(len(servers))].Name
	if strings.TrimSpace(choice) == "" {
		return "", errors.New("empty server name")
	}
	return "https://" + choice, nil
}
