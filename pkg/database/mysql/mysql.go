package mysql

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

type Config struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// dsn builds the driver connection string. clientFoundRows makes UPDATE report
// matched rows instead of changed rows, so zero affected rows reliably means
// the row does not exist rather than "the update was a no-op".
func dsn(cfg *Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&clientFoundRows=true",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)
}

// NewMySQL opens a bounded connection pool and verifies it with a ping.
func NewMySQL(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", dsn(cfg))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}
