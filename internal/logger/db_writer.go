package logger

import (
	"context"
	"fmt"
	"time"

	"go-storefront/internal/config"
	"go-storefront/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to our worker
type LogEntry struct {
	Level     zapcore.Level
	Message   string
	Caller    string
	Function  string
	RequestID string
	UserID    string
	Fields    map[string]interface{}
}

// DBLogWriter handles the async writing
type DBLogWriter struct {
	collection *mongo.Collection
	logChan    chan LogEntry
	appId      string
}

// NewDBLogWriter initializes the background worker
func NewDBLogWriter(mongodb *database.MongodbDB, cfg *config.Config) *DBLogWriter {
	writer := &DBLogWriter{
		collection: mongodb.DB.Collection("logs"),
		logChan:    make(chan LogEntry, 1000),
		appId:      cfg.AppId,
	}

	go writer.processLogs()

	return writer
}

// AddLog is called by our Zap hook. Never blocks the request path: when the
// buffer is full the entry is dropped and noted on stderr.
func (w *DBLogWriter) AddLog(entry LogEntry) {
	select {
	case w.logChan <- entry:
	default:
		fmt.Println("DB Log Channel Full! Dropping log:", entry.Message)
	}
}

func (w *DBLogWriter) processLogs() {
	for entry := range w.logChan {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		doc := map[string]interface{}{
			"app_id":     w.appId,
			"level":      entry.Level.String(),
			"message":    entry.Message,
			"caller":     entry.Caller,
			"function":   entry.Function,
			"created_at": time.Now(),
		}
		if entry.RequestID != "" {
			doc["request_id"] = entry.RequestID
		}
		if entry.UserID != "" {
			doc["user_id"] = entry.UserID
		}
		if len(entry.Fields) > 0 {
			doc["fields"] = entry.Fields
		}

		if _, err := w.collection.InsertOne(ctx, doc); err != nil {
			fmt.Println("Failed to persist log entry:", err)
		}
		cancel()
	}
}
