package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/primestore/backend/internal/events"
	"github.com/primestore/backend/internal/hash"
	"github.com/primestore/backend/internal/models"
	"github.com/primestore/backend/internal/repo"
	"github.com/primestore/backend/internal/tokens"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err, "open in-memory db")

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}))
	return db
}

type testEnv struct {
	DB      *gorm.DB
	Repo    *repo.GormRepo
	Auth    *AuthService
	Product *ProductService
	Cart    *CartService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := initTestDB(t)
	r := repo.New(db)
	producer := events.NewProducer(nil)

	return &testEnv{
		DB:   db,
		Repo: r,
		Auth: &AuthService{
			Repo:     r,
			Hasher:   hash.New(bcrypt.MinCost),
			Issuer:   &tokens.Issuer{Secret: []byte("test-jwt-secret"), TTL: time.Hour},
			Producer: producer,
		},
		Product: &ProductService{Repo: r, Producer: producer},
		Cart:    &CartService{Repo: r, Producer: producer},
	}
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func intPtr(v int) *int { return &v }

func seedProduct(t *testing.T, db *gorm.DB, p models.Product) models.Product {
	t.Helper()
	require.NoError(t, db.Create(&p).Error)
	return p
}
