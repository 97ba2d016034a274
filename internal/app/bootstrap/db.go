// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/projectrefind/refind/internal/app/aggregate"
	profilestore "github.com/projectrefind/refind/internal/app/store/profiles"
	reportstore "github.com/projectrefind/refind/internal/app/store/reports"
	userstore "github.com/projectrefind/refind/internal/app/store/users"
	"github.com/projectrefind/refind/internal/app/system/indexes"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection and builds the stores
// and aggregator the rest of the app works against.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	db := client.Database(appCfg.MongoDatabase)
	reports := reportstore.NewMongo(db)

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		Reports:       reports,
		Users:         userstore.NewMongo(db),
		Profiles:      profilestore.NewMongo(db),
		Agg:           aggregate.New(reports, logger),
	}, nil
}

// EnsureSchema reconciles the index set on every collection.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return indexes.EnsureAll(ctx, deps.MongoDatabase)
}
