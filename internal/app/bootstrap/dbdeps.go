// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/projectrefind/refind/internal/app/aggregate"
	profilestore "github.com/projectrefind/refind/internal/app/store/profiles"
	reportstore "github.com/projectrefind/refind/internal/app/store/reports"
	userstore "github.com/projectrefind/refind/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app. Stores are
// interfaces so handler construction in BuildHandler is the same
// whether they are Mongo-backed or in-memory.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Reports  reportstore.Store
	Users    userstore.Store
	Profiles profilestore.Store

	Agg *aggregate.Aggregator
}
