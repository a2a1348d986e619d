package service

import (
	"context"
	"errors"
	"fmt"
	"lexi_backend/internal/model"
	"lexi_backend/internal/repository"
	"lexi_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

// CacheInvalidator drops cached views that depend on quiz or attempt rows.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

type QuizService struct {
	Repo         *repository.QuizRepository
	CategoryRepo *repository.CategoryRepository
	AttemptRepo  *repository.AttemptRepository
	Cache        CacheInvalidator
}

func NewQuizService(repo *repository.QuizRepository, categoryRepo *repository.CategoryRepository, attemptRepo *repository.AttemptRepository, cache CacheInvalidator) *QuizService {
	return &QuizService{
		Repo:         repo,
		CategoryRepo: categoryRepo,
		AttemptRepo:  attemptRepo,
		Cache:        cache,
	}
}

type ChoiceInput struct {
	ID        uint   `json:"id"`
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionInput struct {
	ID          uint          `json:"id"`
	Prompt      string        `json:"prompt" binding:"required"`
	Explanation string        `json:"explanation"`
	Order       int           `json:"order" binding:"min=1"`
	Choices     []ChoiceInput `json:"choices" binding:"required,min=2,dive"`
}

type QuizInput struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	CategoryID  *uint           `json:"categoryId"`
	Published   *bool           `json:"published"`
	Questions   []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

// PublishedQuiz is the learner listing entry. Attempted is only set for signed-in users.
type PublishedQuiz struct {
	repository.QuizListRow
	Attempted *bool `json:"attempted,omitempty"`
}

// ValidateQuiz enforces the authoring rules: at least one question, every question
// with an order >= 1, two or more choices and exactly one correct choice.
func ValidateQuiz(in *QuizInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", util.ErrInvalidQuiz)
	}
	if len(in.Questions) == 0 {
		return fmt.Errorf("%w: at least one question is required", util.ErrInvalidQuiz)
	}
	for i, q := range in.Questions {
		n := i + 1
		if strings.TrimSpace(q.Prompt) == "" {
			return fmt.Errorf("%w: question %d has an empty prompt", util.ErrInvalidQuiz, n)
		}
		if q.Order < 1 {
			return fmt.Errorf("%w: question %d order must be at least 1", util.ErrInvalidQuiz, n)
		}
		if len(q.Choices) < 2 {
			return fmt.Errorf("%w: question %d needs at least two choices", util.ErrInvalidQuiz, n)
		}
		correct := 0
		for _, c := range q.Choices {
			if strings.TrimSpace(c.Text) == "" {
				return fmt.Errorf("%w: question %d has an empty choice", util.ErrInvalidQuiz, n)
			}
			if c.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Errorf("%w: question %d must have exactly one correct choice, got %d", util.ErrInvalidQuiz, n, correct)
		}
	}
	return nil
}

func buildQuestions(in []QuestionInput) []model.Question {
	questions := make([]model.Question, 0, len(in))
	for _, q := range in {
		choices := make([]model.Choice, 0, len(q.Choices))
		for _, c := range q.Choices {
			choice := model.Choice{Text: strings.TrimSpace(c.Text), IsCorrect: c.IsCorrect}
			choice.ID = c.ID
			choices = append(choices, choice)
		}
		question := model.Question{
			Prompt:      strings.TrimSpace(q.Prompt),
			Explanation: strings.TrimSpace(q.Explanation),
			Order:       q.Order,
			Choices:     choices,
		}
		question.ID = q.ID
		questions = append(questions, question)
	}
	return questions
}

func (s *QuizService) List() ([]repository.QuizListRow, error) {
	return s.Repo.List(false)
}

// ListPublished flags quizzes the user already attempted when userID is not zero.
func (s *QuizService) ListPublished(userID uint) ([]PublishedQuiz, error) {
	rows, err := s.Repo.List(true)
	if err != nil {
		return nil, err
	}

	var attempted map[uint]bool
	if userID != 0 {
		attempted, err = s.AttemptRepo.AttemptedQuizIDs(userID)
		if err != nil {
			return nil, err
		}
	}

	quizzes := make([]PublishedQuiz, 0, len(rows))
	for _, row := range rows {
		item := PublishedQuiz{QuizListRow: row}
		if attempted != nil {
			done := attempted[row.ID]
			item.Attempted = &done
		}
		quizzes = append(quizzes, item)
	}
	return quizzes, nil
}

func (s *QuizService) Get(id uint) (*model.Quiz, error) {
	quiz, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Create(authorID uint, in *QuizInput) (*model.Quiz, error) {
	if err := ValidateQuiz(in); err != nil {
		return nil, err
	}
	if err := resolveCategory(s.CategoryRepo, in.CategoryID); err != nil {
		return nil, err
	}

	questions := buildQuestions(in.Questions)
	// new rows only; ids in the payload are meaningless on create
	for i := range questions {
		questions[i].ID = 0
		for j := range questions[i].Choices {
			questions[i].Choices[j].ID = 0
		}
	}

	published := true
	if in.Published != nil {
		published = *in.Published
	}

	quiz := &model.Quiz{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Published:   published,
		CategoryID:  in.CategoryID,
		AuthorID:    authorID,
		Questions:   questions,
	}
	if err := s.Repo.Create(quiz); err != nil {
		return nil, err
	}
	return s.Get(quiz.ID)
}

// Update rewrites the quiz. Questions and choices are matched by id; unmatched
// existing rows are removed together with the answers that point at them.
func (s *QuizService) Update(ctx context.Context, id uint, in *QuizInput) (*model.Quiz, error) {
	if err := ValidateQuiz(in); err != nil {
		return nil, err
	}
	if err := resolveCategory(s.CategoryRepo, in.CategoryID); err != nil {
		return nil, err
	}

	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	published := existing.Published
	if in.Published != nil {
		published = *in.Published
	}

	quiz := &model.Quiz{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Published:   published,
		CategoryID:  in.CategoryID,
		Questions:   buildQuestions(in.Questions),
	}
	quiz.ID = id

	if err := s.Repo.Replace(quiz); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		if errors.Is(err, util.ErrInvalidQuiz) {
			return nil, fmt.Errorf("%w: question or choice id does not belong to quiz %d", util.ErrInvalidQuiz, id)
		}
		return nil, err
	}
	s.invalidate(ctx)
	return s.Get(id)
}

func (s *QuizService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *QuizService) invalidate(ctx context.Context) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx)
	}
}
