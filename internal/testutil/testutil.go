// Package testutil builds throwaway databases and fixtures for tests.
package testutil

import (
	"fmt"
	"lexi_backend/internal/config"
	"lexi_backend/internal/model"
	"lexi_backend/internal/util"
	"lexi_backend/pkg/database"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	Secret   = "test-secret-0123456789-0123456789-abcdef"
	Password = "secret123"
)

var dbSeq atomic.Int64

// Config returns a configuration for an in-memory sqlite database in gin test mode.
func Config() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Server.Port = "0"
	cfg.Database.Driver = util.DriverSQLite
	cfg.JWT.Secret = Secret
	cfg.JWT.ExpireHours = 1
	cfg.JWT.ExpireTime = time.Hour
	cfg.Session.CookieName = "lexi.session-token"
	cfg.Redis.LeaderboardTTL = time.Minute
	return cfg
}

// NewDB opens a private in-memory sqlite database with the full schema.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := &config.DatabaseConfig{
		Driver: util.DriverSQLite,
		Path:   fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1)),
	}

	db, err := database.InitDB(cfg, false)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user whose password is Password.
func CreateUser(t testing.TB, db *gorm.DB, name, email string, role model.UserRole) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{Name: name, Email: email, Password: string(hash), Role: role}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

// Q describes one question for CreateQuiz; Correct is the index of the right choice.
type Q struct {
	Prompt  string
	Choices []string
	Correct int
}

// CreateQuiz inserts a quiz with questions ordered as given (order 1..n).
func CreateQuiz(t testing.TB, db *gorm.DB, authorID uint, title string, published bool, questions ...Q) *model.Quiz {
	t.Helper()

	quiz := &model.Quiz{Title: title, Published: published, AuthorID: authorID}
	for i, q := range questions {
		question := model.Question{Prompt: q.Prompt, Order: i + 1}
		for j, text := range q.Choices {
			question.Choices = append(question.Choices, model.Choice{Text: text, IsCorrect: j == q.Correct})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("create quiz %q: %v", title, err)
	}
	return quiz
}

// AnimalBasics is the single-question sample quiz: "Asu?" with Anjing correct.
func AnimalBasics(t testing.TB, db *gorm.DB, authorID uint) *model.Quiz {
	return CreateQuiz(t, db, authorID, "Animal Basics", true, Q{
		Prompt:  "Asu?",
		Choices: []string{"Anjing", "Ayam", "Lebah", "Buaya"},
		Correct: 0,
	})
}

// Token signs a session token for user.
func Token(t testing.TB, user *model.User) string {
	t.Helper()
	token, err := util.GenerateJWT(user, Secret, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}
