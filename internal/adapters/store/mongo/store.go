// Package mongo implements the quote store on MongoDB.
//
// Quotes live in a single collection whose documents use the camelCase field
// names of the public API (createdAt, isActive) and ObjectID identifiers.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

const storeName = "mongo"

// Config holds the connection settings for the MongoDB store.
type Config struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// document is the stored form of a quote.
type document struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"text"`
	Author    string             `bson:"author"`
	Category  string             `bson:"category"`
	Tags      []string           `bson:"tags"`
	IsActive  bool               `bson:"isActive"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// categoryGroup is one row of the category aggregation.
type categoryGroup struct {
	Category string `bson:"_id"`
	Count    int64  `bson:"count"`
}

// Store is a MongoDB-backed quote store.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
	timeout    time.Duration
	logger     *slog.Logger
}

// Open connects to MongoDB, verifies the connection and ensures indexes exist.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.Timeout).
		SetServerSelectionTimeout(cfg.Timeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	s := &Store{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		timeout:    cfg.Timeout,
		logger:     logger,
	}

	if err := s.Check(ctx); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, err
	}

	logger.InfoContext(ctx, "mongo store ready",
		slog.String("database", cfg.Database),
		slog.String("collection", cfg.Collection),
	)

	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "isActive", Value: 1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("creating quote indexes: %w", err)
	}

	return nil
}

// Find returns matching quotes newest first, ties broken by descending ObjectID.
func (s *Store) Find(ctx context.Context, filter domain.QuoteFilter, skip, limit int) ([]*domain.Quote, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(max(skip, 0)))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.collection.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, s.translate("find", err)
	}

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, s.translate("find", err)
	}

	quotes := make([]*domain.Quote, 0, len(docs))
	for i := range docs {
		quotes = append(quotes, docs[i].toDomain())
	}

	return quotes, nil
}

// Count returns the number of matching quotes.
func (s *Store) Count(ctx context.Context, filter domain.QuoteFilter) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	n, err := s.collection.CountDocuments(ctx, buildFilter(filter))
	if err != nil {
		return 0, s.translate("count", err)
	}

	return n, nil
}

// GetByID returns the quote with the given hex ObjectID.
func (s *Store) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewInvalidIDError("quote", id)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var doc document
	if err := s.collection.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFoundError("quote", id)
		}

		return nil, s.translate("get", err)
	}

	return doc.toDomain(), nil
}

// Insert stores q under a fresh ObjectID and assigns q.ID.
func (s *Store) Insert(ctx context.Context, q *domain.Quote) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	doc := fromDomain(q)
	doc.ID = primitive.NewObjectID()

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.NewConflictErrorWithDetails("quote", "duplicate id", doc.ID.Hex())
		}

		return s.translate("insert", err)
	}

	q.ID = doc.ID.Hex()
	q.CreatedAt = doc.CreatedAt
	q.UpdatedAt = doc.UpdatedAt

	return nil
}

// CountByCategory aggregates active quotes per category.
func (s *Store) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "isActive", Value: true}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, s.translate("aggregate", err)
	}

	var groups []categoryGroup
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, s.translate("aggregate", err)
	}

	counts := make([]domain.CategoryCount, 0, len(groups))
	for _, g := range groups {
		counts = append(counts, domain.CategoryCount{Category: domain.Category(g.Category), Count: g.Count})
	}

	return counts, nil
}

// ValidID reports whether id is a 24-character hex ObjectID.
func (s *Store) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// DeleteAll removes every document in the collection.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, s.translate("delete", err)
	}

	return res.DeletedCount, nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return storeName
}

// Check pings the primary.
func (s *Store) Check(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.timeout)
}

// translate maps driver failures onto domain errors. Connectivity problems
// become UnavailableError so the HTTP layer answers 503.
func (s *Store) translate(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, context.DeadlineExceeded) {
		s.logger.Warn("mongo unavailable", slog.String("operation", op), slog.Any("error", err))
		return fmt.Errorf("%w: %w", domain.NewUnavailableError(storeName, op), err)
	}

	return fmt.Errorf("mongo %s: %w", op, err)
}

// buildFilter turns a domain filter into a query document. Author matching
// is a case-insensitive literal substring.
func buildFilter(filter domain.QuoteFilter) bson.D {
	query := bson.D{}

	if filter.ActiveOnly {
		query = append(query, bson.E{Key: "isActive", Value: true})
	}

	if filter.Category != "" {
		query = append(query, bson.E{Key: "category", Value: string(filter.Category)})
	}

	if filter.Author != "" {
		query = append(query, bson.E{Key: "author", Value: primitive.Regex{
			Pattern: regexp.QuoteMeta(filter.Author),
			Options: "i",
		}})
	}

	return query
}

func fromDomain(q *domain.Quote) document {
	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}

	// BSON dates carry millisecond precision.
	return document{
		Text:      q.Text,
		Author:    q.Author,
		Category:  string(q.Category),
		Tags:      tags,
		IsActive:  q.IsActive,
		CreatedAt: q.CreatedAt.UTC().Truncate(time.Millisecond),
		UpdatedAt: q.UpdatedAt.UTC().Truncate(time.Millisecond),
	}
}

func (d *document) toDomain() *domain.Quote {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}

	return &domain.Quote{
		ID:        d.ID.Hex(),
		Text:      d.Text,
		Author:    d.Author,
		Category:  domain.Category(d.Category),
		Tags:      tags,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}
