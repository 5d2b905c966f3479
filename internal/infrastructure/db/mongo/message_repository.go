package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thehex/board/internal/core/domain"
)

const messagesCollection = "messages"

// MessageRepository stores board messages and lists them joined with the
// author's name from the accounts collection.
type MessageRepository struct {
	col *mongo.Collection
	log zerolog.Logger
}

func NewMessageRepository(db *mongo.Database, log zerolog.Logger) *MessageRepository {
	return &MessageRepository{col: db.Collection(messagesCollection), log: log}
}

type messageDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	AuthorID  primitive.ObjectID `bson:"author_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

type authorDoc struct {
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
}

type joinedMessageDoc struct {
	messageDoc `bson:",inline"`
	Author     *authorDoc `bson:"author,omitempty"`
}

func (d *messageDoc) toDomain() domain.Message {
	return domain.Message{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		AuthorID:  d.AuthorID.Hex(),
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// Insert stores m and returns it with its generated id.
func (r *MessageRepository) Insert(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	authorID, err := primitive.ObjectIDFromHex(m.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("insert message: invalid author id %q: %w", m.AuthorID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := messageDoc{
		Title:     m.Title,
		Content:   m.Content,
		AuthorID:  authorID,
		CreatedAt: m.CreatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, domain.Collaborator("insert message", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}

	out := doc.toDomain()
	return &out, nil
}

// ListWithAuthors runs the $lookup join and falls back to a plain query when
// the join fails.
func (r *MessageRepository) ListWithAuthors(ctx context.Context) (*domain.MessageFeed, error) {
	entries, joinErr := r.listJoined(ctx)
	if joinErr == nil {
		return &domain.MessageFeed{Mode: domain.FeedWithAuthor, Entries: entries}, nil
	}

	r.log.Warn().Err(joinErr).Msg("message author join failed, falling back to plain listing")

	entries, err := r.listPlain(ctx)
	if err != nil {
		return nil, domain.Collaborator("list messages", err)
	}
	return &domain.MessageFeed{Mode: domain.FeedWithoutAuthor, Entries: entries}, nil
}

func (r *MessageRepository) listJoined(ctx context.Context) ([]domain.AuthoredMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: accountsCollection},
			{Key: "localField", Value: "author_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$author"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "title", Value: 1},
			{Key: "content", Value: 1},
			{Key: "author_id", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "author.first_name", Value: 1},
			{Key: "author.last_name", Value: 1},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var docs []joinedMessageDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.AuthoredMessage, len(docs))
	for i := range docs {
		out[i] = domain.AuthoredMessage{Message: docs[i].toDomain()}
		if a := docs[i].Author; a != nil {
			out[i].Author = &domain.AuthorName{FirstName: a.FirstName, LastName: a.LastName}
		}
	}
	return out, nil
}

func (r *MessageRepository) listPlain(ctx context.Context) ([]domain.AuthoredMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []messageDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.AuthoredMessage, len(docs))
	for i := range docs {
		out[i] = domain.AuthoredMessage{Message: docs[i].toDomain()}
	}
	return out, nil
}

// EnsureIndexes creates the indexes used by the feed query.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
