// Package repo is the persistence gateway. All state lives behind it;
// services never cache rows across calls.
package repo

import "gorm.io/gorm"

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo { return &GormRepo{DB: db} }
