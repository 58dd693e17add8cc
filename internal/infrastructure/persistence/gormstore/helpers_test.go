package gormstore

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/bookbridge/internal/infrastructure/config"
)

// newTestDB 每个测试独立的内存SQLite数据库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:      "sqlite",
			Path:        fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
			AutoMigrate: true,
		},
	}
	db, err := NewDB(cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// bookSeed 测试图书,零值字段使用默认值
type bookSeed struct {
	ID          uint
	Title       string
	Author      string
	Publisher   string
	Description string
	TypeID      uint
	BookstoreID uint
	Price       int64
	Quantity    int
	Inactive    bool
	Rating      *float64
	Ratings     *int
	Published   *time.Time
}

func seedBooks(t *testing.T, db *gorm.DB, seeds ...bookSeed) {
	t.Helper()
	for _, s := range seeds {
		storeID := s.BookstoreID
		if storeID == 0 {
			storeID = 1
		}
		model := &BookModel{
			ID:            s.ID,
			ISBN:          fmt.Sprintf("978-%d", s.ID),
			Title:         s.Title,
			Author:        s.Author,
			Publisher:     s.Publisher,
			Description:   s.Description,
			TypeID:        s.TypeID,
			BookstoreID:   storeID,
			Price:         decimal.NewFromInt(s.Price),
			Quantity:      s.Quantity,
			IsActive:      true,
			AverageRating: s.Rating,
			RatingsCount:  s.Ratings,
			PublishedDate: s.Published,
		}
		require.NoError(t, db.Create(model).Error)
		if s.Inactive {
			require.NoError(t, db.Model(model).Update("is_active", false).Error)
		}
	}
}

func seedTypes(t *testing.T, db *gorm.DB, types ...BookTypeModel) {
	t.Helper()
	for i := range types {
		types[i].IsActive = true
		require.NoError(t, db.Create(&types[i]).Error)
	}
}

func ptrFloat(v float64) *float64 { return &v }

func ptrInt(v int) *int { return &v }

func ptrTime(year int) *time.Time {
	t := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	return &t
}
