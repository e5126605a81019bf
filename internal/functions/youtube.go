// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package functions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xwalt19/webblog-sub001/internal/store"
	"github.com/xwalt19/webblog-sub001/internal/util"
)

// YouTubeBaseURL is the production YouTube Data API endpoint.
const YouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

// maxImportPages caps channel imports; at 50 items per page this bounds an
// import to 250 videos so a huge channel cannot exhaust the API quota.
const maxImportPages = 5

// VideoDetails is the fetch-youtube-video-details response payload.
type VideoDetails struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	VideoURL     string `json:"videoUrl"`
	PublishedAt  string `json:"publishedAt"`
}

// YouTubeClient queries the YouTube Data API.
type YouTubeClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewYouTubeClient creates a client against the production endpoint.
func NewYouTubeClient(apiKey string) *YouTubeClient {
	return &YouTubeClient{
		APIKey:     apiKey,
		BaseURL:    YouTubeBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// get performs one API request and decodes the response into dst.
func (c *YouTubeClient) get(ctx context.Context, path string, query url.Values, dst any) error {
	query.Set("key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("youtube request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("youtube API error: %s", apiErr.Error.Message)
		}
		return fmt.Errorf("youtube API returned status %d", resp.StatusCode)
	}
	return json.Unmarshal(body, dst)
}

type videoSnippet struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishedAt string `json:"publishedAt"`
	Thumbnails  struct {
		High struct {
			URL string `json:"url"`
		} `json:"high"`
		Medium struct {
			URL string `json:"url"`
		} `json:"medium"`
	} `json:"thumbnails"`
	ResourceID struct {
		VideoID string `json:"videoId"`
	} `json:"resourceId"`
}

func (s videoSnippet) thumbnail(videoID string) string {
	if s.Thumbnails.High.URL != "" {
		return s.Thumbnails.High.URL
	}
	if s.Thumbnails.Medium.URL != "" {
		return s.Thumbnails.Medium.URL
	}
	return util.YouTubeThumbnailURL(videoID)
}

// FetchVideoDetails looks up one video. A missing video returns (nil, nil).
func (c *YouTubeClient) FetchVideoDetails(ctx context.Context, videoID string) (*VideoDetails, error) {
	var parsed struct {
		Items []struct {
			ID      string       `json:"id"`
			Snippet videoSnippet `json:"snippet"`
		} `json:"items"`
	}
	query := url.Values{"part": {"snippet"}, "id": {videoID}}
	if err := c.get(ctx, "/videos", query, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Items) == 0 {
		return nil, nil
	}

	item := parsed.Items[0]
	return &VideoDetails{
		VideoID:      item.ID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		ThumbnailURL: item.Snippet.thumbnail(item.ID),
		VideoURL:     util.YouTubeWatchURL(item.ID),
		PublishedAt:  item.Snippet.PublishedAt,
	}, nil
}

// FetchChannelUploads pages through a channel's uploads playlist up to the
// page cap and returns the videos newest-first as the API delivers them.
func (c *YouTubeClient) FetchChannelUploads(ctx context.Context, channelHandle string) ([]VideoDetails, error) {
	handle := strings.TrimPrefix(channelHandle, "@")

	var channels struct {
		Items []struct {
			ContentDetails struct {
				RelatedPlaylists struct {
					Uploads string `json:"uploads"`
				} `json:"relatedPlaylists"`
			} `json:"contentDetails"`
		} `json:"items"`
	}
	query := url.Values{"part": {"contentDetails"}, "forHandle": {"@" + handle}}
	if err := c.get(ctx, "/channels", query, &channels); err != nil {
		return nil, err
	}
	if len(channels.Items) == 0 {
		return nil, fmt.Errorf("channel %q not found", channelHandle)
	}
	playlistID := channels.Items[0].ContentDetails.RelatedPlaylists.Uploads

	var videos []VideoDetails
	pageToken := ""
	for page := 0; page < maxImportPages; page++ {
		var items struct {
			Items []struct {
				Snippet videoSnippet `json:"snippet"`
			} `json:"items"`
			NextPageToken string `json:"nextPageToken"`
		}
		query := url.Values{
			"part":       {"snippet"},
			"playlistId": {playlistID},
			"maxResults": {"50"},
		}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}
		if err := c.get(ctx, "/playlistItems", query, &items); err != nil {
			return nil, err
		}

		for _, item := range items.Items {
			videoID := item.Snippet.ResourceID.VideoID
			if videoID == "" {
				continue
			}
			videos = append(videos, VideoDetails{
				VideoID:      videoID,
				Title:        item.Snippet.Title,
				Description:  item.Snippet.Description,
				ThumbnailURL: item.Snippet.thumbnail(videoID),
				VideoURL:     util.YouTubeWatchURL(videoID),
				PublishedAt:  item.Snippet.PublishedAt,
			})
		}

		pageToken = items.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return videos, nil
}

// FetchVideoDetailsRequest is the body of POST /functions/fetch-youtube-video-details.
type FetchVideoDetailsRequest struct {
	VideoURL string `json:"videoUrl"`
}

// FetchYouTubeVideoDetails returns the video lookup handler.
func FetchYouTubeVideoDetails(client *YouTubeClient) http.HandlerFunc {
	return withCORS(func(w http.ResponseWriter, r *http.Request) {
		var req FetchVideoDetailsRequest
		if !decodeFnJSON(w, r, &req) {
			return
		}
		if req.VideoURL == "" {
			writeFnError(w, http.StatusBadRequest, "videoUrl is required")
			return
		}
		videoID := util.ExtractYouTubeID(req.VideoURL)
		if videoID == "" {
			writeFnError(w, http.StatusBadRequest, "not a YouTube video URL")
			return
		}

		if client == nil {
			slog.Error("video lookup requested but no API key configured", "category", "function")
			writeFnError(w, http.StatusInternalServerError, "youtube service is not configured")
			return
		}

		details, err := client.FetchVideoDetails(r.Context(), videoID)
		if err != nil {
			slog.Error("video lookup failed", "category", "function", "error", err, "video_id", videoID)
			writeFnError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if details == nil {
			writeFnError(w, http.StatusNotFound, "video not found")
			return
		}

		writeFnJSON(w, http.StatusOK, details)
	})
}

// ImportChannelRequest is the body of POST /functions/import-youtube-channel.
type ImportChannelRequest struct {
	ChannelHandle string `json:"channelHandle"`
}

// ImportedVideo is one videos[] entry of the import response. Unlike the
// lookup payload this one is snake_case, matching what the gallery stores.
type ImportedVideo struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
	VideoURL     string `json:"video_url"`
	PublishedAt  string `json:"published_at"`
}

// ImportYouTubeChannel returns the channel import handler. defaultHandle is
// used when the request omits the channel. Fetched videos are upserted into
// the gallery when queries is non-nil, so re-importing a channel refreshes
// instead of duplicating.
func ImportYouTubeChannel(client *YouTubeClient, queries *store.Queries, defaultHandle string) http.HandlerFunc {
	return withCORS(func(w http.ResponseWriter, r *http.Request) {
		var req ImportChannelRequest
		if !decodeFnJSON(w, r, &req) {
			return
		}
		if req.ChannelHandle == "" {
			req.ChannelHandle = defaultHandle
		}
		if req.ChannelHandle == "" {
			writeFnError(w, http.StatusBadRequest, "channelHandle is required")
			return
		}

		if client == nil {
			slog.Error("channel import requested but no API key configured", "category", "function")
			writeFnError(w, http.StatusInternalServerError, "youtube service is not configured")
			return
		}

		videos, err := client.FetchChannelUploads(r.Context(), req.ChannelHandle)
		if err != nil {
			slog.Error("channel import failed", "category", "function", "error", err, "channel", req.ChannelHandle)
			writeFnError(w, http.StatusInternalServerError, err.Error())
			return
		}

		imported := 0
		entries := make([]ImportedVideo, 0, len(videos))
		now := time.Now().UTC()
		for _, v := range videos {
			entries = append(entries, ImportedVideo{
				Title:        v.Title,
				Description:  v.Description,
				ThumbnailURL: v.ThumbnailURL,
				VideoURL:     v.VideoURL,
				PublishedAt:  v.PublishedAt,
			})
			if queries == nil {
				continue
			}
			publishedAt := now
			if t, err := time.Parse(time.RFC3339, v.PublishedAt); err == nil {
				publishedAt = t
			}
			if _, err := queries.UpsertVideo(r.Context(), store.UpsertVideoParams{
				Title:        v.Title,
				Description:  v.Description,
				ThumbnailURL: v.ThumbnailURL,
				VideoURL:     v.VideoURL,
				PublishedAt:  publishedAt,
				CreatedAt:    now,
			}); err != nil {
				slog.Error("failed to save imported video", "category", "function", "error", err, "video_id", v.VideoID)
				continue
			}
			imported++
		}

		writeFnJSON(w, http.StatusOK, map[string]any{
			"videos":   entries,
			"imported": imported,
		})
	})
}
