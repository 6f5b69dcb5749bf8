// Package catalog implements the engine's search boundary on the YouTube
// Data API v3, with an optional redis cache in front of every lookup.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ishitzzz/playlist-forge/internal/cache"
	"github.com/ishitzzz/playlist-forge/internal/engine"
)

const (
	DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

	searchLimit       = 10
	playlistItemLimit = 50
)

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	cache   *cache.Cache
}

// NewClient builds a YouTube client. A nil cache disables caching.
func NewClient(apiKey, baseURL string, c *cache.Cache) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: c,
	}
}

// Search finds videos for a query and enriches them with duration, view
// count, and full description from the videos endpoint.
func (c *Client) Search(ctx context.Context, query string) ([]engine.CandidateItem, error) {
	key := cache.Key("yt:search", query)
	var cached []engine.CandidateItem
	if c.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	val := url.Values{}
	val.Set("part", "snippet")
	val.Set("type", "video")
	val.Set("maxResults", strconv.Itoa(searchLimit))
	val.Set("q", query)
	val.Set("key", c.apiKey)

	var body ytSearchResponse
	if err := c.get(ctx, "/search", val, &body); err != nil {
		return nil, err
	}

	out := make([]engine.CandidateItem, 0, len(body.Items))
	var ids []string
	for _, it := range body.Items {
		if it.ID.VideoID == "" {
			continue
		}
		out = append(out, engine.CandidateItem{
			ID:          it.ID.VideoID,
			Title:       it.Snippet.Title,
			Description: it.Snippet.Description,
			AuthorName:  it.Snippet.ChannelTitle,
		})
		ids = append(ids, it.ID.VideoID)
	}

	if len(ids) > 0 {
		details, err := c.fetchVideoDetails(ctx, ids)
		if err != nil {
			// Return results without enrichment rather than failing the search.
			log.Printf("playlist-forge: catalog: video details: %v", err)
		} else {
			for i := range out {
				if d, ok := details[out[i].ID]; ok {
					out[i].DurationSeconds = d.durationSeconds
					out[i].ViewCount = d.viewCount
					if d.description != "" {
						out[i].Description = d.description
					}
				}
			}
		}
	}

	c.cache.SetJSON(ctx, key, out)
	return out, nil
}

// SearchSequences finds hosted playlists for a query.
func (c *Client) SearchSequences(ctx context.Context, query string) ([]engine.SequenceHit, error) {
	key := cache.Key("yt:playlists", query)
	var cached []engine.SequenceHit
	if c.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	val := url.Values{}
	val.Set("part", "snippet")
	val.Set("type", "playlist")
	val.Set("maxResults", strconv.Itoa(searchLimit))
	val.Set("q", query)
	val.Set("key", c.apiKey)

	var body ytSearchResponse
	if err := c.get(ctx, "/search", val, &body); err != nil {
		return nil, err
	}

	out := make([]engine.SequenceHit, 0, len(body.Items))
	for _, it := range body.Items {
		if it.ID.PlaylistID == "" {
			continue
		}
		out = append(out, engine.SequenceHit{
			ID:        it.ID.PlaylistID,
			Title:     it.Snippet.Title,
			OwnerName: it.Snippet.ChannelTitle,
		})
	}

	c.cache.SetJSON(ctx, key, out)
	return out, nil
}

// FetchSequenceItems lists a playlist's items in playlist order, with
// durations filled in from the videos endpoint where available.
func (c *Client) FetchSequenceItems(ctx context.Context, sequenceID string) ([]engine.AnchorItem, error) {
	key := cache.Key("yt:playlist-items", sequenceID)
	var cached []engine.AnchorItem
	if c.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	val := url.Values{}
	val.Set("part", "snippet,contentDetails")
	val.Set("playlistId", sequenceID)
	val.Set("maxResults", strconv.Itoa(playlistItemLimit))
	val.Set("key", c.apiKey)

	var body ytPlaylistItemsResponse
	if err := c.get(ctx, "/playlistItems", val, &body); err != nil {
		return nil, err
	}

	out := make([]engine.AnchorItem, 0, len(body.Items))
	var ids []string
	for _, it := range body.Items {
		if it.ContentDetails.VideoID == "" {
			continue
		}
		out = append(out, engine.AnchorItem{
			ID:       it.ContentDetails.VideoID,
			Title:    it.Snippet.Title,
			Position: it.Snippet.Position,
		})
		ids = append(ids, it.ContentDetails.VideoID)
	}

	if len(ids) > 0 {
		details, err := c.fetchVideoDetails(ctx, ids)
		if err != nil {
			log.Printf("playlist-forge: catalog: playlist item details: %v", err)
		} else {
			for i := range out {
				if d, ok := details[out[i].ID]; ok {
					out[i].DurationSeconds = d.durationSeconds
				}
			}
		}
	}

	c.cache.SetJSON(ctx, key, out)
	return out, nil
}

type videoDetail struct {
	durationSeconds int
	viewCount       int64
	description     string
}

func (c *Client) fetchVideoDetails(ctx context.Context, ids []string) (map[string]videoDetail, error) {
	val := url.Values{}
	val.Set("part", "contentDetails,statistics,snippet")
	val.Set("id", strings.Join(ids, ","))
	val.Set("key", c.apiKey)

	var body ytVideosResponse
	if err := c.get(ctx, "/videos", val, &body); err != nil {
		return nil, err
	}

	details := make(map[string]videoDetail, len(body.Items))
	for _, it := range body.Items {
		views, _ := strconv.ParseInt(it.Statistics.ViewCount, 10, 64)
		details[it.ID] = videoDetail{
			durationSeconds: parseISO8601Duration(it.ContentDetails.Duration),
			viewCount:       views,
			description:     it.Snippet.Description,
		}
	}
	return details, nil
}

func (c *Client) get(ctx context.Context, path string, val url.Values, out any) error {
	reqURL := c.baseURL + path + "?" + val.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("youtube %s status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var isoDurationRe = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// parseISO8601Duration turns PT#H#M#S into seconds. Unparseable input is 0.
func parseISO8601Duration(duration string) int {
	matches := isoDurationRe.FindStringSubmatch(duration)
	if len(matches) < 4 {
		return 0
	}

	var h, m, s int
	fmt.Sscanf(matches[1], "%d", &h)
	fmt.Sscanf(matches[2], "%d", &m)
	fmt.Sscanf(matches[3], "%d", &s)

	return h*3600 + m*60 + s
}
