package mongo

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/thehex/board/internal/core/domain"
)

const messagesNS = "members_board.messages"

var (
	olderPost = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	newerPost = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
)

func messageBSON(id, authorID primitive.ObjectID, title string, at time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "content", Value: title + " body"},
		{Key: "author_id", Value: authorID},
		{Key: "created_at", Value: at},
	}
}

func withAuthor(doc bson.D, first, last string) bson.D {
	return append(doc, bson.E{Key: "author", Value: bson.D{
		{Key: "first_name", Value: first},
		{Key: "last_name", Value: last},
	}})
}

func commandError(msg string) bson.D {
	return mtest.CreateCommandErrorResponse(mtest.CommandError{
		Code:    2,
		Name:    "BadValue",
		Message: msg,
	})
}

func TestMessageRepository_ListWithAuthors(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	alice := primitive.NewObjectID()
	ghost := primitive.NewObjectID()
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	mt.Run("joined with author", func(mt *mtest.T) {
		repo := NewMessageRepository(mt.DB, zerolog.Nop())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, messagesNS, mtest.FirstBatch,
			withAuthor(messageBSON(second, alice, "Second", newerPost), "Alice", "Liddell"),
			withAuthor(messageBSON(first, alice, "First", olderPost), "Alice", "Liddell"),
		))

		feed, err := repo.ListWithAuthors(context.Background())
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if feed.Mode != domain.FeedWithAuthor {
			mt.Errorf("expected mode %q, got %q", domain.FeedWithAuthor, feed.Mode)
		}
		if len(feed.Entries) != 2 {
			mt.Fatalf("expected 2 entries, got %d", len(feed.Entries))
		}

		got := feed.Entries[0]
		if got.ID != second.Hex() || got.Title != "Second" || got.AuthorID != alice.Hex() {
			mt.Errorf("unexpected first entry: %+v", got.Message)
		}
		if !got.CreatedAt.Equal(newerPost) {
			mt.Errorf("expected created_at %v, got %v", newerPost, got.CreatedAt)
		}
		if got.Author == nil || got.Author.FirstName != "Alice" || got.Author.LastName != "Liddell" {
			mt.Errorf("expected author Alice Liddell, got %+v", got.Author)
		}
		if feed.Entries[1].ID != first.Hex() {
			mt.Errorf("expected order to follow the cursor, got %s second", feed.Entries[1].ID)
		}

		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "aggregate" {
			mt.Fatalf("expected an aggregate command, got %+v", started)
		}
	})

	mt.Run("joined without author", func(mt *mtest.T) {
		repo := NewMessageRepository(mt.DB, zerolog.Nop())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, messagesNS, mtest.FirstBatch,
			messageBSON(first, ghost, "Orphan", olderPost),
		))

		feed, err := repo.ListWithAuthors(context.Background())
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if feed.Mode != domain.FeedWithAuthor {
			mt.Errorf("expected mode %q, got %q", domain.FeedWithAuthor, feed.Mode)
		}
		if len(feed.Entries) != 1 {
			mt.Fatalf("expected 1 entry, got %d", len(feed.Entries))
		}
		if feed.Entries[0].Author != nil {
			mt.Errorf("missing author must stay nil, got %+v", feed.Entries[0].Author)
		}
		if feed.Entries[0].AuthorID != ghost.Hex() {
			mt.Errorf("expected author id %s, got %s", ghost.Hex(), feed.Entries[0].AuthorID)
		}
	})

	mt.Run("join fails and plain listing succeeds", func(mt *mtest.T) {
		var logs bytes.Buffer
		repo := NewMessageRepository(mt.DB, zerolog.New(&logs))
		mt.AddMockResponses(
			commandError("$lookup is not allowed"),
			mtest.CreateCursorResponse(0, messagesNS, mtest.FirstBatch,
				messageBSON(second, alice, "Second", newerPost),
				messageBSON(first, alice, "First", olderPost),
			),
		)

		feed, err := repo.ListWithAuthors(context.Background())
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if feed.Mode != domain.FeedWithoutAuthor {
			mt.Errorf("expected mode %q, got %q", domain.FeedWithoutAuthor, feed.Mode)
		}
		if len(feed.Entries) != 2 {
			mt.Fatalf("expected 2 entries, got %d", len(feed.Entries))
		}
		for _, e := range feed.Entries {
			if e.Author != nil {
				mt.Errorf("plain listing must not carry authors, got %+v", e.Author)
			}
		}
		if feed.Entries[0].Title != "Second" {
			mt.Errorf("expected newest first, got %q", feed.Entries[0].Title)
		}
		if !strings.Contains(logs.String(), "falling back") {
			mt.Errorf("expected a fallback warning, got %q", logs.String())
		}

		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "aggregate" {
			mt.Fatalf("expected aggregate first, got %+v", started)
		}
		started = mt.GetStartedEvent()
		if started == nil || started.CommandName != "find" {
			mt.Fatalf("expected find after the failed join, got %+v", started)
		}
	})

	mt.Run("join and plain listing both fail", func(mt *mtest.T) {
		repo := NewMessageRepository(mt.DB, zerolog.Nop())
		mt.AddMockResponses(
			commandError("$lookup is not allowed"),
			commandError("collection unavailable"),
		)

		feed, err := repo.ListWithAuthors(context.Background())
		if feed != nil {
			mt.Errorf("expected no feed, got %+v", feed)
		}
		if !errors.Is(err, domain.ErrCollaborator) {
			mt.Fatalf("expected a collaborator failure, got %v", err)
		}
		if !strings.Contains(err.Error(), "list messages") {
			mt.Errorf("expected the operation in the error, got %q", err.Error())
		}
	})
}
