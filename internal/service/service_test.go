package service

import (
	"lexi_backend/internal/config"
	"lexi_backend/internal/model"
	"lexi_backend/internal/repository"
	"lexi_backend/internal/testutil"
	"testing"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type fixture struct {
	db          *gorm.DB
	cfg         *config.Config
	admin       *model.User
	auth        *AuthService
	categories  *CategoryService
	materials   *MaterialService
	quizzes     *QuizService
	play        *QuizPlayService
	leaderboard *LeaderboardService
	dashboard   *DashboardService
	seed        *SeedService
	attempts    *repository.AttemptRepository
}

// newFixture wires every service over a fresh database. rdb may be nil.
func newFixture(t *testing.T, rdb *redis.Client) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	cfg := testutil.Config()

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)

	f := &fixture{db: db, cfg: cfg, attempts: attemptRepo}
	f.leaderboard = NewLeaderboardService(attemptRepo, rdb, cfg.Redis.LeaderboardTTL)
	f.auth = NewAuthService(userRepo, cfg)
	f.categories = NewCategoryService(categoryRepo)
	f.materials = NewMaterialService(materialRepo, categoryRepo)
	f.quizzes = NewQuizService(quizRepo, categoryRepo, attemptRepo, f.leaderboard)
	f.play = NewQuizPlayService(quizRepo, attemptRepo, f.leaderboard)
	f.dashboard = NewDashboardService(userRepo, materialRepo, quizRepo, attemptRepo)
	f.seed = NewSeedService(f.auth, f.categories, f.materials, f.quizzes)

	f.admin = testutil.CreateUser(t, db, "Admin", "admin@example.com", model.RoleAdmin)
	return f
}

func (f *fixture) learner(t *testing.T, name string) *model.User {
	t.Helper()
	return testutil.CreateUser(t, f.db, name, name+"@example.com", model.RoleUser)
}

func (f *fixture) count(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func uintPtr(v uint) *uint { return &v }

func boolPtr(v bool) *bool { return &v }

// quizWithTitle publishes a one-question quiz owned by the fixture admin.
func (f *fixture) quizWithTitle(t *testing.T, title string) *model.Quiz {
	t.Helper()
	return testutil.CreateQuiz(t, f.db, f.admin.ID, title, true, testutil.Q{
		Prompt:  "Asu?",
		Choices: []string{"Anjing", "Ayam"},
		Correct: 0,
	})
}
