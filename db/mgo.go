// Package db
package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/tokenfolio/marketcap-backend/types"
)

const (
	cTokens = "Tokens"
)

type mongoDB struct {
	logger *zap.Logger
	client *mongo.Client
	db     *mongo.Database
}

func newMongoDB(cfg Config) (*mongoDB, error) {
	ctx := context.Background()
	mgoOptions := options.Client()
	mgoOptions.ApplyURI(cfg.URL)
	mgoOptions.SetMinPoolSize(uint64(cfg.MinConn))
	mgoOptions.SetMaxPoolSize(uint64(cfg.MaxConn))
	mgoClient, err := mongo.NewClient(mgoOptions)
	if err != nil {
		return nil, err
	}
	if err := mgoClient.Connect(ctx); err != nil {
		return nil, err
	}

	dbClient := &mongoDB{
		logger: cfg.Logger,
		client: mgoClient,
		db:     mgoClient.Database(cfg.DbName),
	}
	if cfg.FlushDB {
		cfg.Logger.Info("Start flush database")
		if err := dbClient.dropDatabase(ctx); err != nil {
			return nil, err
		}
	}
	if err := dbClient.createIndexes(ctx); err != nil {
		return nil, err
	}
	return dbClient, nil
}

func (m *mongoDB) createIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys:    bson.M{"id": 1},
		Options: options.Index().SetUnique(true),
	}
	_, err := m.db.Collection(cTokens).Indexes().CreateOne(ctx, model)
	return err
}

func (m *mongoDB) ping() error {
	return m.client.Ping(context.Background(), nil)
}

func (m *mongoDB) dropDatabase(ctx context.Context) error {
	return m.db.Drop(ctx)
}

func (m *mongoDB) Tokens(ctx context.Context) ([]types.Token, error) {
	lgr := m.logger.With(zap.String("method", "Tokens"))
	opts := options.Find().SetSort(bson.M{"symbol": 1})
	cursor, err := m.db.Collection(cTokens).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			lgr.Warn("cannot close cursor", zap.Error(err))
		}
	}()
	var tokens []types.Token
	for cursor.Next(ctx) {
		var t types.Token
		if err := cursor.Decode(&t); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

func (m *mongoDB) TokenByID(ctx context.Context, id string) (*types.Token, error) {
	var token types.Token
	err := m.db.Collection(cTokens).FindOne(ctx, bson.M{"id": id}).Decode(&token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, types.ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (m *mongoDB) UpsertToken(ctx context.Context, token types.Token) error {
	filter := bson.M{"id": token.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.db.Collection(cTokens).ReplaceOne(ctx, filter, token, opts); err != nil {
		return err
	}
	return nil
}

func (m *mongoDB) RemoveToken(ctx context.Context, id string) error {
	result, err := m.db.Collection(cTokens).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return types.ErrTokenNotFound
	}
	return nil
}

func (m *mongoDB) UpdateTokenEnabled(ctx context.Context, id string, enabled bool) error {
	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"enabled": enabled}}
	result, err := m.db.Collection(cTokens).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return types.ErrTokenNotFound
	}
	return nil
}
