// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/sakuramc/craftport/internal/app/store/ledger"
	livestatusstore "github.com/sakuramc/craftport/internal/app/store/livestatus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the backend connections: MongoDB for live status
// and the Sheets ledger for the recruitment workflow.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(appCfg.MongoURI))
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return DBDeps{}, fmt.Errorf("ping mongo: %w", err)
	}
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	led, err := ledger.NewSheetsLedger(ctx, appCfg.SheetsSpreadsheetID, appCfg.SheetsCredentialsFile)
	if err != nil {
		return DBDeps{}, fmt.Errorf("open sheets ledger: %w", err)
	}
	logger.Info("opened sheets ledger", zap.String("spreadsheet_id", appCfg.SheetsSpreadsheetID))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
		Ledger:        led,
	}, nil
}

// EnsureSchema sets up indexes as needed.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := livestatusstore.New(deps.MongoDatabase).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("live status indexes: %w", err)
	}
	return nil
}
