// Package clicklog persists component interactions so the dashboard and the
// scheduled digest can report on them.
package clicklog

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Click is one recorded component interaction.
type Click struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	CustomID  string `gorm:"size:100;not null;index"`
	Kind      string `gorm:"size:16;not null"`
	UserID    string `gorm:"size:32;not null;index"`
	GuildID   string `gorm:"size:32"`
	ChannelID string `gorm:"size:32"`
	Values    string `gorm:"size:512"`
	CreatedAt time.Time
}

// Kind values for recorded clicks.
const (
	KindButton = "button"
	KindMenu   = "menu"
)

// CustomIDCount is a per-custom_id click tally.
type CustomIDCount struct {
	CustomID string
	Count    int64
}

// Store wraps the click-log database.
type Store struct {
	db *gorm.DB
}

// MySQLDSN builds a DSN for the mysql driver.
func MySQLDSN(host string, port int, database string) string {
	return fmt.Sprintf("root@tcp(%s:%d)/%s?parseTime=true", host, port, database)
}

// OpenMySQL opens a click-log store on a MySQL database and migrates the
// schema.
func OpenMySQL(host string, port int, database string) (*Store, error) {
	db, err := gorm.Open(mysql.Open(MySQLDSN(host, port, database)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("clicklog: connect to %s:%d/%s: %w", host, port, database, err)
	}
	return newStore(db)
}

// OpenSQLite opens a click-log store on a SQLite file (":memory:" for tests)
// and migrates the schema.
func OpenSQLite(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("clicklog: open %s: %w", path, err)
	}
	return newStore(db)
}

func newStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Click{}); err != nil {
		return nil, fmt.Errorf("clicklog: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Record persists one click.
func (s *Store) Record(click *Click) error {
	if err := s.db.Create(click).Error; err != nil {
		return fmt.Errorf("clicklog: record: %w", err)
	}
	return nil
}

// Recent returns the most recent clicks, newest first.
func (s *Store) Recent(limit int) ([]Click, error) {
	if limit <= 0 {
		limit = 20
	}
	var clicks []Click
	if err := s.db.Order("created_at DESC, id DESC").Limit(limit).Find(&clicks).Error; err != nil {
		return nil, fmt.Errorf("clicklog: recent: %w", err)
	}
	return clicks, nil
}

// TotalSince counts all clicks recorded at or after since.
func (s *Store) TotalSince(since time.Time) (int64, error) {
	var count int64
	if err := s.db.Model(&Click{}).Where("created_at >= ?", since).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("clicklog: total since: %w", err)
	}
	return count, nil
}

// CountsSince tallies clicks per custom_id recorded at or after since, most
// clicked first.
func (s *Store) CountsSince(since time.Time) ([]CustomIDCount, error) {
	var counts []CustomIDCount
	if err := s.db.Model(&Click{}).
		Where("created_at >= ?", since).
		Select("custom_id, COUNT(*) as count").
		Group("custom_id").
		Order("count DESC, custom_id ASC").
		Find(&counts).Error; err != nil {
		return nil, fmt.Errorf("clicklog: counts since: %w", err)
	}
	return counts, nil
}

// UniqueUsersSince counts distinct clicking users at or after since.
func (s *Store) UniqueUsersSince(since time.Time) (int64, error) {
	var count int64
	if err := s.db.Model(&Click{}).
		Where("created_at >= ?", since).
		Distinct("user_id").
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("clicklog: unique users since: %w", err)
	}
	return count, nil
}
