// Package domain defines the core types flowing through the analysis pipeline.
package domain

import (
	"errors"
	"time"
)

// ErrMalformedPost indicates a raw post is missing required fields.
// Malformed posts are skipped with a logged reason; they never abort a batch.
var ErrMalformedPost = errors.New("malformed post")

// RawPost represents a post as delivered by the fetch collaborator.
// It is immutable once constructed.
type RawPost struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Language  string    `json:"language"`
	IsRetweet bool      `json:"is_retweet"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks that the required fields are present.
func (p *RawPost) Validate() error {
	if p.ID == "" || p.Text == "" {
		return ErrMalformedPost
	}
	return nil
}

// NormalizedPost is a RawPost plus its cleaned text. Derived, never mutated.
type NormalizedPost struct {
	RawPost

	// CleanText is the post text with URLs removed and whitespace collapsed.
	CleanText string `json:"clean_text"`
}

// Classification records the opinion/news judgment for a post.
// Computed once per post and attached to its NormalizedPost.
type Classification struct {
	HasOpinion bool `json:"has_opinion"`
	IsNews     bool `json:"is_news"`
}

// RejectReason identifies why the quality filter dropped a post.
type RejectReason string

// Reject reasons, in filter evaluation order.
const (
	ReasonDuplicate RejectReason = "duplicate"
	ReasonLanguage  RejectReason = "language"
	ReasonNews      RejectReason = "news"
	ReasonTooShort  RejectReason = "too-short"
	// ReasonMalformed is produced before filtering, for posts missing
	// required fields.
	ReasonMalformed RejectReason = "malformed"
)

// Rejection is a quality filter decision to drop a post.
type Rejection struct {
	Reason RejectReason `json:"reason"`
}
