// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"regexp"
)

// youtubeIDRegex extracts the 11-character video identifier from the URL
// forms YouTube serves: watch?v=, youtu.be/, embed/, shorts/ and live/.
var youtubeIDRegex = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|embed/|shorts/|live/)|youtu\.be/)([A-Za-z0-9_-]{11})`)

// ExtractYouTubeID returns the video identifier embedded in url, or "" when
// the URL does not reference a YouTube video.
func ExtractYouTubeID(url string) string {
	m := youtubeIDRegex.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// YouTubeThumbnailURL builds the high-quality thumbnail URL for a video ID.
func YouTubeThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoID)
}

// YouTubeEmbedURL builds the embeddable player URL for a video ID.
func YouTubeEmbedURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/embed/%s", videoID)
}

// YouTubeWatchURL builds the canonical watch URL for a video ID.
func YouTubeWatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}
