package models

import "time"

// Article represents a blog article
//
// Author is the creating user's username, set by the service on creation and
// immutable afterwards. It is never accepted from client input.
type Article struct {
	ID        int       `json:"id"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ArticlePatch carries the client-settable article fields for create and
// partial update. Pointer fields distinguish "absent" from "present but
// empty": an absent field leaves the stored value unchanged.
type ArticlePatch struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
}

// HasFields reports whether the patch carries at least one field
func (p *ArticlePatch) HasFields() bool {
	return p.Title != nil || p.Body != nil
}
