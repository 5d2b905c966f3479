// Package policy holds the two decisions the board owns itself: which fields
// of a message a viewer may see, and whether a passcode unlocks membership.
package policy

import "github.com/thehex/board/internal/core/domain"

// Project returns the view of entry for a viewer. Authorship is copied only
// for members and only when the store resolved it; the author id never
// leaves this function.
func Project(entry domain.AuthoredMessage, viewerIsMember bool) domain.MessageView {
	view := domain.MessageView{
		ID:        entry.ID,
		Title:     entry.Title,
		Content:   entry.Content,
		CreatedAt: entry.CreatedAt,
	}
	if viewerIsMember && entry.Author != nil {
		author := *entry.Author
		view.Author = &author
	}
	return view
}

// ProjectFeed applies Project to every entry. A degraded feed is projected
// as author-less whatever the viewer's status.
func ProjectFeed(feed domain.MessageFeed, viewerIsMember bool) []domain.MessageView {
	showAuthor := viewerIsMember && feed.Mode == domain.FeedWithAuthor

	views := make([]domain.MessageView, len(feed.Entries))
	for i, entry := range feed.Entries {
		views[i] = Project(entry, showAuthor)
	}
	return views
}
