package model

import "time"

const (
	CategoryAnnouncement = "ANNOUNCEMENT"
	CategoryEvent        = "EVENT"
	CategoryLostFound    = "LOST_FOUND"
	CategoryHelp         = "HELP"
)

// Categories lists every accepted post category.
var Categories = []string{CategoryAnnouncement, CategoryEvent, CategoryLostFound, CategoryHelp}

// Post is a bulletin entry owned by its author
type Post struct {
	ID        int         `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Category  string      `json:"category"`
	AuthorID  int         `json:"authorId"`
	ImageURL  *string     `json:"imageUrl"`
	Location  *string     `json:"location"`
	ExpiresAt *time.Time  `json:"expiresAt"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Author    *PostAuthor `json:"author,omitempty"` // Filled on reads only
}

// PostAuthor is the slice of the author exposed alongside a post
type PostAuthor struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// CreatePostRequest is used for creating a new post.
// The author always comes from the caller, never from the body.
type CreatePostRequest struct {
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Category  string     `json:"category"`
	ImageURL  *string    `json:"imageUrl"`
	Location  *string    `json:"location"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// UpdatePostRequest is a partial update; every field is optional.
// The optional post attributes can be cleared with an explicit null.
type UpdatePostRequest struct {
	Title     *string             `json:"title"`
	Content   *string             `json:"content"`
	Category  *string             `json:"category"`
	ImageURL  Nullable[string]    `json:"imageUrl"`
	Location  Nullable[string]    `json:"location"`
	ExpiresAt Nullable[time.Time] `json:"expiresAt"`
}

// IsEmpty reports whether the request changes nothing.
func (r UpdatePostRequest) IsEmpty() bool {
	return r.Title == nil && r.Content == nil && r.Category == nil &&
		!r.ImageURL.Set && !r.Location.Set && !r.ExpiresAt.Set
}

// Apply copies the set fields of r onto p.
func (r UpdatePostRequest) Apply(p *Post) {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Content != nil {
		p.Content = *r.Content
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.ImageURL.Set {
		p.ImageURL = r.ImageURL.Value
	}
	if r.Location.Set {
		p.Location = r.Location.Value
	}
	if r.ExpiresAt.Set {
		p.ExpiresAt = r.ExpiresAt.Value
	}
}
