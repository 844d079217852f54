package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Client queries the YouTube Data API v3 for playlist items and per-video
// statistics. baseURL is configurable so tests can point at a local server.
type Client struct {
	apiKey      string
	baseURL     string
	titleSuffix string
	httpClient  *http.Client
}

// NewClient creates an episode source client.
func NewClient(apiKey, baseURL, titleSuffix string) *Client {
	return &Client{
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		titleSuffix: titleSuffix,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type playlistItemsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet struct {
			Title      string `json:"title"`
			ResourceID struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID         string `json:"id"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
			LikeCount string `json:"likeCount"`
		} `json:"statistics"`
		LiveStreamingDetails struct {
			ActualStartTime string `json:"actualStartTime"`
		} `json:"liveStreamingDetails"`
	} `json:"items"`
}

// Episodes loads all episodes across the given playlists, merged and sorted
// most-recent-first. Playlists fan out concurrently; pages within one
// playlist are fetched sequentially because each page's token depends on
// the previous response. Any failure aborts the whole aggregation so a
// partial list is never returned.
func (c *Client) Episodes(ctx context.Context, playlistIDs []string) ([]Episode, error) {
	g, ctx := errgroup.WithContext(ctx)
	perPlaylist := make([][]Episode, len(playlistIDs))
	for i, playlistID := range playlistIDs {
		g.Go(func() error {
			episodes, err := c.playlist(ctx, playlistID)
			if err != nil {
				return fmt.Errorf("playlist %s: %w", playlistID, err)
			}
			perPlaylist[i] = episodes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []Episode
	for _, episodes := range perPlaylist {
		merged = append(merged, episodes...)
	}
	SortEpisodes(merged)
	return merged, nil
}

// playlist walks one playlist's pages sequentially, fanning out the batched
// statistics lookup for each page as it arrives.
func (c *Client) playlist(ctx context.Context, playlistID string) ([]Episode, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var episodes []Episode

	pageToken := ""
	for {
		page, err := c.playlistPage(ctx, playlistID, pageToken)
		if err != nil {
			return nil, err
		}

		titles := make(map[string]string, len(page.Items))
		ids := make([]string, 0, len(page.Items))
		for _, item := range page.Items {
			videoID := item.Snippet.ResourceID.VideoID
			if videoID == "" {
				continue
			}
			titles[videoID] = item.Snippet.Title
			ids = append(ids, videoID)
		}
		if len(ids) > 0 {
			g.Go(func() error {
				batch, err := c.videoDetails(ctx, ids, titles)
				if err != nil {
					return err
				}
				mu.Lock()
				episodes = append(episodes, batch...)
				mu.Unlock()
				return nil
			})
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return episodes, nil
}

// playlistPage fetches one page of playlist items.
func (c *Client) playlistPage(ctx context.Context, playlistID, pageToken string) (*playlistItemsResponse, error) {
	params := url.Values{
		"key":        {c.apiKey},
		"part":       {"snippet"},
		"maxResults": {"50"},
		"playlistId": {playlistID},
	}
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var page playlistItemsResponse
	if err := c.getJSON(ctx, "/youtube/v3/playlistItems", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// videoDetails performs the batched lookup of statistics and live-stream
// metadata for one page's worth of video ids.
func (c *Client) videoDetails(ctx context.Context, ids []string, titles map[string]string) ([]Episode, error) {
	params := url.Values{
		"key":  {c.apiKey},
		"part": {"statistics,liveStreamingDetails"},
		"id":   {strings.Join(ids, ",")},
	}

	var details videosResponse
	if err := c.getJSON(ctx, "/youtube/v3/videos", params, &details); err != nil {
		return nil, err
	}

	episodes := make([]Episode, 0, len(details.Items))
	for _, item := range details.Items {
		episodes = append(episodes, Episode{
			VideoID:   item.ID,
			Title:     CleanTitle(titles[item.ID], c.titleSuffix),
			StartTime: item.LiveStreamingDetails.ActualStartTime,
			Views:     parseCount(item.Statistics.ViewCount),
			Likes:     parseCount(item.Statistics.LikeCount),
		})
	}
	return episodes, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("episode source: %s - %s", resp.Status, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseCount parses the API's string-encoded counters, tolerating absence.
func parseCount(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
