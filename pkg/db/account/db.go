package account

import (
	"context"
	"log/slog"
	"time"

	"github.com/0himanshu3/CiviK-Link/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	COLLECTION_NAME_ACCOUNTS = "accounts"
)

type AccountDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
}

func NewAccountDBService(configs db.DBConfig) (*AccountDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()
	if err != nil {
		return nil, err
	}

	adbSc := &AccountDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
	}

	if configs.RunIndexCreation {
		adbSc.CreateDefaultIndexes()
	}
	return adbSc, nil
}

func (dbService *AccountDBService) getDBName() string {
	return dbService.DBNamePrefix + "civiklink"
}

func (dbService *AccountDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *AccountDBService) collectionAccounts() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_ACCOUNTS)
}

func (dbService *AccountDBService) CreateDefaultIndexes() {
	if err := dbService.CreateIndexForAccounts(); err != nil {
		slog.Error("failed to create indexes for accounts", slog.String("error", err.Error()))
	}
}

func (dbService *AccountDBService) CreateIndexForAccounts() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionAccounts().Indexes().CreateMany(
		ctx, []mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: "email", Value: 1},
					{Key: "accountVerified", Value: 1},
				},
			},
			{
				Keys: bson.D{
					{Key: "pendingReset.tokenHash", Value: 1},
				},
				Options: options.Index().SetSparse(true),
			},
			{
				Keys: bson.D{
					{Key: "timestamps.createdAt", Value: 1},
				},
			},
			{
				Keys: bson.D{
					{Key: "role", Value: 1},
				},
			},
		},
	)
	return err
}
