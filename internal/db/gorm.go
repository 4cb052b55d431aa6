package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Slice is one persisted top-level state slice
type Slice struct {
	Name      string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for the Slice model
func (Slice) TableName() string {
	return "slices"
}

// GormDB is a pure-Go slice store (no CGO required)
type GormDB struct {
	gdb *gorm.DB
}

// OpenGorm opens path with glebarez/sqlite and migrates the slices table.
// Pass ":memory:" for an ephemeral store.
func OpenGorm(path string) (*GormDB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	g := &GormDB{gdb: gdb}
	if err := gdb.AutoMigrate(&Slice{}); err != nil {
		g.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return g, nil
}

// Save implements Backend.Save
func (g *GormDB) Save(name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	row := Slice{Name: name, Value: string(data), UpdatedAt: time.Now()}
	if err := g.gdb.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// Load implements Backend.Load
func (g *GormDB) Load(name string, dst any) error {
	var row Slice
	err := g.gdb.First(&row, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		log.Printf("warning: failed to read slice %s: %v", name, err)
		return ErrNotFound
	}
	if err := json.Unmarshal([]byte(row.Value), dst); err != nil {
		log.Printf("warning: failed to parse slice %s: %v", name, err)
		return ErrNotFound
	}
	return nil
}

// Names implements Backend.Names
func (g *GormDB) Names() ([]string, error) {
	var names []string
	err := g.gdb.Model(&Slice{}).Order("name").Pluck("name", &names).Error
	return names, err
}

// Raw implements Backend.Raw
func (g *GormDB) Raw(name string) (json.RawMessage, error) {
	var row Slice
	err := g.gdb.First(&row, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(row.Value), nil
}

// Close releases the underlying connection
func (g *GormDB) Close() error {
	sqlDB, err := g.gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
