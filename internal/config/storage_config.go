package config

import (
	"fmt"
	"strings"
)

// Store backends
const (
	StoreMemory    = "memory"
	StoreSQLite    = "sqlite"
	StoreFirestore = "firestore"
	StoreRedis     = "redis"
)

type StorageConfig interface {
	GetUserStore() string
	GetSessionStore() string
	GetSQLitePath() string
	GetFirestoreProjectID() string
	GetFirestoreDatabase() string
	GetFirestoreCollection() string
	GetRedisURL() string
	GetRedisKeyPrefix() string
}

type Storage struct {
	UserStore           string `env:"USER_STORE" envDefault:"memory"`
	SessionStore        string `env:"SESSION_STORE" envDefault:"memory"`
	SQLitePath          string `env:"SQLITE_PATH" envDefault:"./data/users.db"`
	FirestoreProjectID  string `env:"FIRESTORE_PROJECT_ID"`
	FirestoreDatabase   string `env:"FIRESTORE_DATABASE"`
	FirestoreCollection string `env:"FIRESTORE_COLLECTION" envDefault:"users"`
	RedisURL            string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisKeyPrefix      string `env:"REDIS_KEY_PREFIX" envDefault:"session:"`
}

var _ StorageConfig = Storage{}

func (s Storage) GetUserStore() string {
	return strings.ToLower(s.UserStore)
}

func (s Storage) GetSessionStore() string {
	return strings.ToLower(s.SessionStore)
}

func (s Storage) GetSQLitePath() string {
	return s.SQLitePath
}

func (s Storage) GetFirestoreProjectID() string {
	return s.FirestoreProjectID
}

func (s Storage) GetFirestoreDatabase() string {
	return s.FirestoreDatabase
}

func (s Storage) GetFirestoreCollection() string {
	return s.FirestoreCollection
}

func (s Storage) GetRedisURL() string {
	return s.RedisURL
}

func (s Storage) GetRedisKeyPrefix() string {
	return s.RedisKeyPrefix
}

func (s Storage) validate() error {
	switch s.GetUserStore() {
	case StoreMemory, StoreSQLite:
	case StoreFirestore:
		if s.FirestoreProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required when USER_STORE=firestore")
		}
	default:
		return fmt.Errorf("unknown USER_STORE %q", s.UserStore)
	}

	switch s.GetSessionStore() {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", s.SessionStore)
	}
	return nil
}
