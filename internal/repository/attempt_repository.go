package repository

import (
	"lexi_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// LeaderboardRow is public and must not carry contact details.
type LeaderboardRow struct {
	AttemptID       uint      `json:"attemptId"`
	Score           int       `json:"score"`
	Total           int       `json:"total"`
	DurationSeconds int       `json:"durationSeconds"`
	CreatedAt       time.Time `json:"createdAt"`
	UserName        string    `json:"userName"`
	QuizTitle       string    `json:"quizTitle"`
}

type UserAttemptRow struct {
	AttemptID       uint      `json:"attemptId"`
	QuizID          uint      `json:"quizId"`
	QuizTitle       string    `json:"quizTitle"`
	Score           int       `json:"score"`
	Total           int       `json:"total"`
	DurationSeconds int       `json:"durationSeconds"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (r *AttemptRepository) Exists(userID, quizID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error
	return count > 0, err
}

// CreateWithAnswers writes the attempt and all its answers atomically.
// A second attempt for the same (user, quiz) fails on the unique index.
func (r *AttemptRepository) CreateWithAnswers(attempt *model.QuizAttempt, answers []model.QuizAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Answers", "User", "Quiz").Create(attempt).Error; err != nil {
			return err
		}
		if len(answers) == 0 {
			return nil
		}
		for i := range answers {
			answers[i].AttemptID = attempt.ID
		}
		if err := tx.Omit("Question", "Choice").Create(&answers).Error; err != nil {
			return err
		}
		attempt.Answers = answers
		return nil
	})
}

func (r *AttemptRepository) FindAnswers(attemptID uint) ([]model.QuizAnswer, error) {
	var answers []model.QuizAnswer
	err := r.DB.Where("attempt_id = ?", attemptID).Order("id asc").Find(&answers).Error
	return answers, err
}

// Leaderboard orders by score desc, duration asc, newest first; id breaks exact ties.
func (r *AttemptRepository) Leaderboard(limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	err := r.DB.Table("quiz_attempts").
		Select("quiz_attempts.id AS attempt_id, quiz_attempts.score, quiz_attempts.total, " +
			"quiz_attempts.duration_s AS duration_seconds, quiz_attempts.created_at, " +
			"COALESCE(NULLIF(TRIM(users.name), ''), 'Anonymous') AS user_name, quizzes.title AS quiz_title").
		Joins("JOIN users ON users.id = quiz_attempts.user_id").
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Order("quiz_attempts.score DESC, quiz_attempts.duration_s ASC, quiz_attempts.created_at DESC, quiz_attempts.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *AttemptRepository) ListByUser(userID uint) ([]UserAttemptRow, error) {
	var rows []UserAttemptRow
	err := r.DB.Table("quiz_attempts").
		Select("quiz_attempts.id AS attempt_id, quiz_attempts.quiz_id, quizzes.title AS quiz_title, " +
			"quiz_attempts.score, quiz_attempts.total, quiz_attempts.duration_s AS duration_seconds, quiz_attempts.created_at").
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Where("quiz_attempts.user_id = ?", userID).
		Order("quiz_attempts.created_at DESC, quiz_attempts.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *AttemptRepository) AttemptedQuizIDs(userID uint) (map[uint]bool, error) {
	var ids []uint
	if err := r.DB.Model(&model.QuizAttempt{}).Where("user_id = ?", userID).Pluck("quiz_id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
