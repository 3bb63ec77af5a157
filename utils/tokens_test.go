package utils

import (
	"os"
	"testing"

	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/models"
	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/storage"

	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

func setupTokenTest(t *testing.T) {
	t.Helper()
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	os.Setenv("REFRESH_TOKEN_SECRET", "testsecret2")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrapping test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	storage.DB = db
	// Allow-list writes are fire-and-forget; a client with no server behind
	// it is enough here.
	storage.Redis = redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}

// No user row means no token pair: an access token without a role could only
// ever be denied downstream.
func TestCreateTokenPairUnknownUser(t *testing.T) {
	setupTokenTest(t)

	if _, err := CreateTokenPair(999); err == nil {
		t.Fatal("expected an error for an unknown user id")
	}
}

func TestCreateTokenPairEmbedsRole(t *testing.T) {
	setupTokenTest(t)

	user := models.User{FirstName: "Ana", Email: "ana@example.com", Password: "x", Role: "moderator"}
	if err := storage.DB.Create(&user).Error; err != nil {
		t.Fatalf("seeding user: %v", err)
	}

	pair, err := CreateTokenPair(user.ID)
	if err != nil {
		t.Fatalf("CreateTokenPair: %v", err)
	}
	if len(pair.AccessToken) == 0 || len(pair.RefreshToken) == 0 {
		t.Fatal("expected both tokens to be minted")
	}
}
