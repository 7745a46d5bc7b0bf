package specification

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByID filters by ID
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// BySourceFile filters chunks belonging to one uploaded file
type BySourceFile struct {
	SourceFile string
}

func (s BySourceFile) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_file = ?", s.SourceFile)
}

// ByPageNumber filters chunks extracted from one logical page
type ByPageNumber struct {
	PageNumber int
}

func (s ByPageNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("page_number = ?", s.PageNumber)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}
