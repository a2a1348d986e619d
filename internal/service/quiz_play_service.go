package service

import (
	"context"
	"errors"
	"fmt"
	"lexi_backend/internal/model"
	"lexi_backend/internal/repository"
	"lexi_backend/internal/util"
	"lexi_backend/pkg/logger"
	"lexi_backend/pkg/monitoring"
	"math/rand"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizPlayService struct {
	QuizRepo    *repository.QuizRepository
	AttemptRepo *repository.AttemptRepository
	Cache       CacheInvalidator
	shuffle     func(n int, swap func(i, j int))
}

func NewQuizPlayService(quizRepo *repository.QuizRepository, attemptRepo *repository.AttemptRepository, cache CacheInvalidator) *QuizPlayService {
	return &QuizPlayService{
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
		Cache:       cache,
		shuffle:     rand.Shuffle,
	}
}

// PlayChoice is what a learner sees of a choice: no correctness flag.
type PlayChoice struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type PlayQuestion struct {
	ID      uint         `json:"id"`
	Prompt  string       `json:"prompt"`
	Choices []PlayChoice `json:"choices"`
}

type PlayQuiz struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type StartResult struct {
	Quiz             PlayQuiz       `json:"quiz"`
	Questions        []PlayQuestion `json:"questions"`
	AlreadyAttempted bool           `json:"alreadyAttempted"`
}

type SubmittedAnswer struct {
	QuestionID uint  `json:"questionId" binding:"required"`
	ChoiceID   *uint `json:"choiceId"`
}

type SubmitInput struct {
	QuizID          uint              `json:"quizId" binding:"required"`
	Answers         []SubmittedAnswer `json:"answers" binding:"required,min=1,dive"`
	DurationSeconds int               `json:"durationSeconds" binding:"min=0,max=86400"`
}

type SubmitResult struct {
	AttemptID uint `json:"attemptId"`
	Score     int  `json:"score"`
	Total     int  `json:"total"`
}

func (s *QuizPlayService) loadPublished(quizID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindPublishedByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

// Start returns the published quiz with questions in stored order and the
// choices of each question shuffled independently.
func (s *QuizPlayService) Start(userID, quizID uint) (*StartResult, error) {
	quiz, err := s.loadPublished(quizID)
	if err != nil {
		return nil, err
	}

	result := &StartResult{
		Quiz: PlayQuiz{
			ID:          quiz.ID,
			Title:       quiz.Title,
			Description: quiz.Description,
		},
		Questions: make([]PlayQuestion, 0, len(quiz.Questions)),
	}

	for _, q := range quiz.Questions {
		choices := make([]PlayChoice, 0, len(q.Choices))
		for _, c := range q.Choices {
			choices = append(choices, PlayChoice{ID: c.ID, Text: c.Text})
		}
		s.shuffle(len(choices), func(i, j int) {
			choices[i], choices[j] = choices[j], choices[i]
		})
		result.Questions = append(result.Questions, PlayQuestion{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Choices: choices,
		})
	}

	if userID != 0 {
		attempted, err := s.AttemptRepo.Exists(userID, quiz.ID)
		if err != nil {
			return nil, err
		}
		result.AlreadyAttempted = attempted
	}

	return result, nil
}

// Submit scores the answers against the stored answer key and records the
// attempt with one answer row per question of the quiz.
func (s *QuizPlayService) Submit(ctx context.Context, userID uint, in *SubmitInput) (*SubmitResult, error) {
	if in.QuizID == 0 {
		return nil, fmt.Errorf("%w: quizId must be a positive integer", util.ErrInvalidAnswer)
	}
	if len(in.Answers) == 0 {
		return nil, fmt.Errorf("%w: at least one answer is required", util.ErrInvalidAnswer)
	}
	if in.DurationSeconds < 0 || in.DurationSeconds > util.MaxDurationSeconds {
		return nil, fmt.Errorf("%w: durationSeconds must be between 0 and %d", util.ErrInvalidAnswer, util.MaxDurationSeconds)
	}

	quiz, err := s.loadPublished(in.QuizID)
	if err != nil {
		return nil, err
	}

	questions := make(map[uint]*model.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		questions[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	submitted := make(map[uint]*uint, len(in.Answers))
	for _, a := range in.Answers {
		if _, ok := questions[a.QuestionID]; !ok {
			return nil, fmt.Errorf("%w: question %d is not part of quiz %d", util.ErrInvalidAnswer, a.QuestionID, quiz.ID)
		}
		if _, dup := submitted[a.QuestionID]; dup {
			return nil, fmt.Errorf("%w: question %d answered more than once", util.ErrInvalidAnswer, a.QuestionID)
		}
		submitted[a.QuestionID] = a.ChoiceID
	}

	attempted, err := s.AttemptRepo.Exists(userID, quiz.ID)
	if err != nil {
		return nil, err
	}
	if attempted {
		return nil, util.ErrAlreadyAttempted
	}

	score := 0
	answers := make([]model.QuizAnswer, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		answer := model.QuizAnswer{QuestionID: q.ID}

		if choiceID := submitted[q.ID]; choiceID != nil && belongsTo(q, *choiceID) {
			id := *choiceID
			answer.ChoiceID = &id
			correct := q.CorrectChoiceID()
			answer.IsCorrect = correct != 0 && correct == id
		}
		if answer.IsCorrect {
			score++
		}
		answers = append(answers, answer)
	}

	attempt := &model.QuizAttempt{
		UserID:          userID,
		QuizID:          quiz.ID,
		Score:           score,
		Total:           len(quiz.Questions),
		DurationSeconds: in.DurationSeconds,
	}
	if err := s.AttemptRepo.CreateWithAnswers(attempt, answers); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyAttempted
		}
		return nil, err
	}

	monitoring.QuizSubmissions.Inc()
	if s.Cache != nil {
		s.Cache.Invalidate(ctx)
	}
	logger.Log.Info("quiz submitted",
		zap.Uint("user_id", userID),
		zap.Uint("quiz_id", quiz.ID),
		zap.Uint("attempt_id", attempt.ID),
		zap.Int("score", score),
		zap.Int("total", attempt.Total),
	)

	return &SubmitResult{
		AttemptID: attempt.ID,
		Score:     score,
		Total:     attempt.Total,
	}, nil
}

func belongsTo(q *model.Question, choiceID uint) bool {
	for _, c := range q.Choices {
		if c.ID == choiceID {
			return true
		}
	}
	return false
}
