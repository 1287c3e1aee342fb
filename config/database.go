package config

import (
	"plants/models"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Dialector 依照設定選擇資料庫驅動
func (d DatabaseConfig) Dialector() (gorm.Dialector, error) {
	switch d.Driver {
	case DriverSQLite:
		return sqlite.Open(d.Path), nil
	case DriverMySQL:
		return mysql.Open(d.DSN()), nil
	default:
		return nil, errors.Errorf("unsupported database driver %q", d.Driver)
	}
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// SetupDatabaseConnection 開啟資料庫連線並建立資料表，SQL日誌寫入zerolog
func SetupDatabaseConnection(d DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	dialector, err := d.Dialector()
	if err != nil {
		return nil, err
	}

	sqlLog := log.With().Str("component", "gorm").Logger()
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(&sqlLog, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogLevel(d.LogLevel),
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", d.Driver)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	//SQLite同時只允許一個寫入者
	if d.Driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(d.MaxOpenConns)
		sqlDB.SetMaxIdleConns(d.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(d.ConnMaxLifetime)

	err = db.AutoMigrate(
		&models.Plant{},
	)
	if err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "migrate plants table")
	}

	return db, nil
}
