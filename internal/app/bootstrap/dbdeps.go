// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/sakuramc/craftport/internal/app/store/ledger"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Ledger is the spreadsheet-backed company/application store.
	Ledger ledger.Ledger
}
