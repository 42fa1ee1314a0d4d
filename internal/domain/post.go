package domain

import (
	"math"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

type State string

const (
	StateDraft     State = "draft"
	StatePublished State = "published"
)

func (s State) Valid() bool {
	return s == StateDraft || s == StatePublished
}

const wordsPerMinute = 200

type Post struct {
	ID          string
	AuthorID    string
	Title       string
	Slug        string
	Description string
	Body        string
	Tags        []string
	State       State
	ReadCount   int64
	ReadingTime int // minutes
	CreatedAt   time.Time

	// Author is populated by listing and retrieval queries that join users.
	Author *Author
}

type Author struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

func (p *Post) OwnedBy(userID string) bool {
	return p.AuthorID == userID
}

// NewPost fills the derived fields of a post about to be created.
func NewPost(authorID, title, description, body string, tags []string, state State) *Post {
	if state == "" {
		state = StateDraft
	}
	if tags == nil {
		tags = []string{}
	}
	return &Post{
		AuthorID:    authorID,
		Title:       title,
		Slug:        slug.Make(title),
		Description: description,
		Body:        body,
		Tags:        tags,
		State:       state,
		ReadingTime: ReadingTime(body),
	}
}

// PostPatch holds the optional fields of an update. Nil means "leave as is".
type PostPatch struct {
	Title       *string
	Slug        *string
	Description *string
	Body        *string
	Tags        *[]string
	State       *State
	ReadingTime *int
}

// Derive recomputes slug and reading time for the fields being replaced.
func (p *PostPatch) Derive() {
	if p.Title != nil {
		s := slug.Make(*p.Title)
		p.Slug = &s
	}
	if p.Body != nil {
		rt := ReadingTime(*p.Body)
		p.ReadingTime = &rt
	}
}

// Validate reports the first field value an update may not set.
func (p *PostPatch) Validate() error {
	switch {
	case p.Title != nil && *p.Title == "":
		return Validation("Title must be at least 1 characters")
	case p.Body != nil && *p.Body == "":
		return Validation("Body must be at least 1 characters")
	case p.State != nil && !p.State.Valid():
		return Validation("State must be one of: draft published")
	}
	return nil
}

func (p *PostPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Body == nil && p.Tags == nil && p.State == nil
}

// Apply mutates post with the patch fields that are set.
func (p *PostPatch) Apply(post *Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Slug != nil {
		post.Slug = *p.Slug
	}
	if p.Description != nil {
		post.Description = *p.Description
	}
	if p.Body != nil {
		post.Body = *p.Body
	}
	if p.Tags != nil {
		post.Tags = append([]string{}, (*p.Tags)...)
	}
	if p.State != nil {
		post.State = *p.State
	}
	if p.ReadingTime != nil {
		post.ReadingTime = *p.ReadingTime
	}
}

// ReadingTime estimates minutes to read body at 200 words per minute, never below one.
func ReadingTime(body string) int {
	words := len(strings.Fields(body))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
