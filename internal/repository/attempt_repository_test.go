package repository

import (
	"lexi_backend/internal/model"
	"lexi_backend/internal/testutil"
	"testing"
)

func countAttempts(t *testing.T, repo *AttemptRepository) int64 {
	t.Helper()
	var n int64
	if err := repo.DB.Model(&model.QuizAttempt{}).Count(&n).Error; err != nil {
		t.Fatalf("count attempts: %v", err)
	}
	return n
}

func TestCreateWithAnswersRollsBackOnAnswerFailure(t *testing.T) {
	db := testutil.NewDB(t)
	admin := testutil.CreateUser(t, db, "Admin", "admin@example.com", model.RoleAdmin)
	learner := testutil.CreateUser(t, db, "Ani", "ani@example.com", model.RoleUser)
	quiz := testutil.AnimalBasics(t, db, admin.ID)
	repo := NewAttemptRepository(db)

	attempt := &model.QuizAttempt{UserID: learner.ID, QuizID: quiz.ID, Score: 0, Total: 1}
	err := repo.CreateWithAnswers(attempt, []model.QuizAnswer{{QuestionID: 999999}})
	if err == nil {
		t.Fatal("expected the unknown question to fail the insert")
	}
	if n := countAttempts(t, repo); n != 0 {
		t.Fatalf("attempt row survived the failed answers: %d rows", n)
	}

	// the pair is still free after the rollback
	retry := &model.QuizAttempt{UserID: learner.ID, QuizID: quiz.ID, Score: 1, Total: 1}
	correct := quiz.Questions[0].CorrectChoiceID()
	answers := []model.QuizAnswer{{QuestionID: quiz.Questions[0].ID, ChoiceID: &correct, IsCorrect: true}}
	if err := repo.CreateWithAnswers(retry, answers); err != nil {
		t.Fatalf("retry: %v", err)
	}
	stored, err := repo.FindAnswers(retry.ID)
	if err != nil {
		t.Fatalf("find answers: %v", err)
	}
	if len(stored) != 1 || !stored[0].IsCorrect {
		t.Fatalf("unexpected answers %+v", stored)
	}
}

func TestLeaderboardNeverFallsBackToEmail(t *testing.T) {
	db := testutil.NewDB(t)
	admin := testutil.CreateUser(t, db, "Admin", "admin@example.com", model.RoleAdmin)
	blank := testutil.CreateUser(t, db, "  ", "hidden@example.com", model.RoleUser)
	quiz := testutil.AnimalBasics(t, db, admin.ID)
	repo := NewAttemptRepository(db)

	attempt := &model.QuizAttempt{UserID: blank.ID, QuizID: quiz.ID, Score: 1, Total: 1}
	if err := repo.CreateWithAnswers(attempt, nil); err != nil {
		t.Fatalf("create attempt: %v", err)
	}

	rows, err := repo.Leaderboard(10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(rows) != 1 || rows[0].UserName != "Anonymous" {
		t.Fatalf("expected the anonymous label, got %+v", rows)
	}
}
