// Package mongo implements the store ports on MongoDB, the document-store
// backend the finance data originally lived in.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"duit/internal/core"
	"duit/internal/store"
)

const (
	categoriesCollection   = "categories"
	transactionsCollection = "transactions"

	connectTimeout = 10 * time.Second
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes and pings a MongoDB connection and returns a Store
// over the given database.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	slog.InfoContext(ctx, "Connected to MongoDB", "database", database)

	return &Store{
		client: client,
		db:     client.Database(database),
	}, nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

type categoryDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Kind      string             `bson:"kind"`
	Icon      string             `bson:"icon"`
	Color     string             `bson:"color"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type transactionDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	CategoryID  string             `bson:"categoryId"`
	Amount      int64              `bson:"amount"`
	Kind        string             `bson:"kind"`
	Description string             `bson:"description"`
	Date        time.Time          `bson:"date"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d categoryDoc) toCore() core.Category {
	return core.Category{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Kind:      core.Kind(d.Kind),
		Icon:      d.Icon,
		Color:     d.Color,
		CreatedAt: d.CreatedAt,
	}
}

func (d transactionDoc) toCore() core.Transaction {
	return core.Transaction{
		ID:          d.ID.Hex(),
		CategoryID:  d.CategoryID,
		Amount:      d.Amount,
		Kind:        core.Kind(d.Kind),
		Description: d.Description,
		Date:        d.Date,
		CreatedAt:   d.CreatedAt,
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, store.ErrNotFound
	}
	return oid, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]core.Category, error) {
	cur, err := s.db.Collection(categoriesCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	defer cur.Close(ctx)

	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	out := make([]core.Category, len(docs))
	for i, d := range docs {
		out[i] = d.toCore()
	}
	return out, nil
}

func (s *Store) GetCategory(ctx context.Context, id string) (*core.Category, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc categoryDoc
	err = s.db.Collection(categoriesCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}

	c := doc.toCore()
	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, fields store.CategoryFields) (*core.Category, error) {
	c := core.Category{
		Name:      fields.Name,
		Kind:      fields.Kind,
		Icon:      fields.Icon,
		Color:     fields.Color,
		CreatedAt: time.Now(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	doc := categoryDoc{
		Name:      c.Name,
		Kind:      string(c.Kind),
		Icon:      c.Icon,
		Color:     c.Color,
		CreatedAt: c.CreatedAt,
	}
	res, err := s.db.Collection(categoriesCollection).InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}

	c.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &c, nil
}

func (s *Store) UpdateCategory(ctx context.Context, id string, update store.CategoryUpdate) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Kind != nil {
		set["kind"] = string(*update.Kind)
	}
	if update.Icon != nil {
		set["icon"] = *update.Icon
	}
	if update.Color != nil {
		set["color"] = *update.Color
	}
	if len(set) == 0 {
		return nil
	}

	res, err := s.db.Collection(categoriesCollection).UpdateOne(ctx,
		bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := s.db.Collection(categoriesCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	cur, err := s.db.Collection(transactionsCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	defer cur.Close(ctx)

	var docs []transactionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}

	out := make([]core.Transaction, len(docs))
	for i, d := range docs {
		out[i] = d.toCore()
	}
	return out, nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (*core.Transaction, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc transactionDoc
	err = s.db.Collection(transactionsCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}

	t := doc.toCore()
	return &t, nil
}

func (s *Store) CreateTransaction(ctx context.Context, fields store.TransactionFields) (*core.Transaction, error) {
	t := core.Transaction{
		CategoryID:  fields.CategoryID,
		Amount:      fields.Amount,
		Kind:        fields.Kind,
		Description: fields.Description,
		Date:        fields.Date,
		CreatedAt:   time.Now(),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	doc := transactionDoc{
		CategoryID:  t.CategoryID,
		Amount:      t.Amount,
		Kind:        string(t.Kind),
		Description: t.Description,
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
	}
	res, err := s.db.Collection(transactionsCollection).InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	t.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &t, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, id string, update store.TransactionUpdate) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	// The derived Category association never reaches the document.
	set := bson.M{}
	if update.CategoryID != nil {
		set["categoryId"] = *update.CategoryID
	}
	if update.Amount != nil {
		set["amount"] = *update.Amount
	}
	if update.Kind != nil {
		set["kind"] = string(*update.Kind)
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Date != nil {
		set["date"] = *update.Date
	}
	if len(set) == 0 {
		return nil
	}

	res, err := s.db.Collection(transactionsCollection).UpdateOne(ctx,
		bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := s.db.Collection(transactionsCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
