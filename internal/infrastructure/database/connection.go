package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	applogger "nodal/internal/shared/logger"
)

// Connect opens the GORM connection for dsn. A "sqlite://" prefix (used by
// integration tests) routes to the sqlite driver; anything else is treated
// as a MySQL DSN.
func Connect(dsn string) (*gorm.DB, error) {
	glog := gormlogger.New(&filteredLogger{}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})

	if path, ok := strings.CutPrefix(dsn, "sqlite://"); ok {
		gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: glog})
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return gdb, nil
	}

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       dsn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: glog, PrepareStmt: true})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}

	return gdb, nil
}

// filteredLogger routes GORM's query log into the application's slog logger
// and drops schema-introspection noise.
type filteredLogger struct{}

func (l *filteredLogger) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "information_schema") || strings.Contains(lower, "select version()") {
		return
	}
	switch {
	case strings.Contains(msg, "[error]"):
		applogger.Get().Error("database error", "details", msg)
	case strings.Contains(strings.ToLower(msg), "slow sql"):
		applogger.Get().Warn("slow query", "details", msg)
	default:
		applogger.Get().Debug("database query", "details", msg)
	}
}
