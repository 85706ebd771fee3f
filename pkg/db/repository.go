// pkg/db/repository.go
package db

import (
	"strconv"

	"github.com/smith3v/tg-phrase-reminder/pkg/config"
	"github.com/smith3v/tg-phrase-reminder/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Export DB variable
var DB *gorm.DB

func InitDB(cfg config.DatabaseConfig, logging config.LoggingConfig) error {
	var err error
	dsn := "host=" + cfg.Host +
		" user=" + cfg.User +
		" password=" + cfg.Password +
		" dbname=" + cfg.DBName +
		" port=" + strconv.Itoa(cfg.Port) +
		" sslmode=" + cfg.SSLMode
	gormLogger, gormErr := newGormLogger(logging.GormLevel)
	if gormErr != nil {
		logger.Error("invalid gorm log level", "value", logging.GormLevel, "error", gormErr)
	}
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return err
	}
	if err := Migrate(DB); err != nil {
		logger.Error("failed to auto-migrate database", "error", err)
		return err
	}
	return nil
}

func Migrate(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	return gdb.AutoMigrate(Models()...)
}
