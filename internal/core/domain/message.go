package domain

import "time"

// Message is a board post. Messages are immutable once stored.
type Message struct {
	ID        string
	Title     string
	Content   string
	AuthorID  string
	CreatedAt time.Time
}

// AuthorName is the part of the author's profile the store join resolves.
type AuthorName struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AuthoredMessage pairs a message with its resolved author. Author is nil
// when the store could not resolve it.
type AuthoredMessage struct {
	Message
	Author *AuthorName
}

// FeedMode tags whether the store managed to join author data.
type FeedMode int

const (
	FeedWithAuthor FeedMode = iota
	FeedWithoutAuthor
)

func (m FeedMode) String() string {
	if m == FeedWithAuthor {
		return "with_author"
	}
	return "without_author"
}

// MessageFeed is what the message store returns for a listing, newest first.
// In FeedWithoutAuthor mode no entry carries an Author.
type MessageFeed struct {
	Mode    FeedMode
	Entries []AuthoredMessage
}

// MessageView is the projection of a message handed to a viewer. Author is
// only set for members; there is deliberately no author id field.
type MessageView struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	Author    *AuthorName `json:"author,omitempty"`
}
