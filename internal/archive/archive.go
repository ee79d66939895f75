// Package archive reads tweets out of a locally exported Twitter archive.
// The export stores tweets in data/tweet.js as a JavaScript assignment
// wrapping a JSON array; this package strips the assignment prefix, decodes
// the array and normalizes each record into a Post.
package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tweetwipe/tweetwipe/internal/logger"
)

// payloadPrefix is the JavaScript assignment the export wraps the JSON in.
const payloadPrefix = "window.YTD.tweet.part0 = "

// createdAtLayout is Twitter's legacy timestamp format, e.g.
// "Wed Oct 10 20:19:24 +0000 2018".
const createdAtLayout = "Mon Jan 02 15:04:05 -0700 2006"

// Post is one tweet from the archive. Immutable after parsing.
type Post struct {
	ID                string
	CreatedAt         time.Time
	InReplyToStatusID string
}

// IsReply reports whether the post is a reply to another status.
func (p Post) IsReply() bool {
	return p.InReplyToStatusID != ""
}

type wrappedTweet struct {
	Tweet rawTweet `json:"tweet"`
}

type rawTweet struct {
	ID                string `json:"id"`
	InReplyToStatusID string `json:"in_reply_to_status_id"`
	CreatedAt         string `json:"created_at"`
}

// Load reads <dir>/data/tweet.js and returns the parsed posts.
// Records with a missing ID or an unparsable timestamp are skipped with a
// warning; only a missing file or a malformed envelope is an error.
func Load(dir string, log *logger.Logger) ([]Post, error) {
	path := filepath.Join(dir, "data", "tweet.js")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}

	payload, ok := strings.CutPrefix(strings.TrimLeft(string(data), "\uFEFF \t\r\n"), payloadPrefix)
	if !ok {
		return nil, fmt.Errorf("unexpected archive format: %s does not start with %q", path, payloadPrefix)
	}

	var wrapped []wrappedTweet
	if err := json.Unmarshal([]byte(payload), &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse archive: %w", err)
	}

	posts := make([]Post, 0, len(wrapped))
	for i, w := range wrapped {
		if w.Tweet.ID == "" {
			log.Warn("skipping archive record without id",
				logger.Field{Key: "index", Value: i})
			continue
		}

		createdAt, err := time.Parse(createdAtLayout, w.Tweet.CreatedAt)
		if err != nil {
			log.Warn("skipping archive record with bad timestamp",
				logger.Field{Key: "tweet_id", Value: w.Tweet.ID},
				logger.Field{Key: "created_at", Value: w.Tweet.CreatedAt})
			continue
		}

		posts = append(posts, Post{
			ID:                w.Tweet.ID,
			CreatedAt:         createdAt,
			InReplyToStatusID: w.Tweet.InReplyToStatusID,
		})
	}

	return posts, nil
}
