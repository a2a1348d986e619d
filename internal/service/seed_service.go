package service

import (
	"errors"
	"fmt"
	"lexi_backend/internal/repository"
	"lexi_backend/internal/util"
	"lexi_backend/pkg/logger"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type SeedFixture struct {
	Admin struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
	Categories []struct {
		Name string `yaml:"name"`
	} `yaml:"categories"`
	Materials []SeedMaterial `yaml:"materials"`
	Quizzes   []SeedQuiz     `yaml:"quizzes"`
}

type SeedMaterial struct {
	Title     string `yaml:"title"`
	Slug      string `yaml:"slug"`
	Category  string `yaml:"category"`
	Published *bool  `yaml:"published"`
	Content   string `yaml:"content"`
}

type SeedQuiz struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Published   *bool  `yaml:"published"`
	Questions   []struct {
		Prompt      string `yaml:"prompt"`
		Explanation string `yaml:"explanation"`
		Order       int    `yaml:"order"`
		Choices     []struct {
			Text    string `yaml:"text"`
			Correct bool   `yaml:"correct"`
		} `yaml:"choices"`
	} `yaml:"questions"`
}

// SeedReport counts the rows created by one Apply run.
type SeedReport struct {
	Admins     int
	Categories int
	Materials  int
	Quizzes    int
}

type SeedService struct {
	Auth         *AuthService
	Categories   *CategoryService
	Materials    *MaterialService
	Quizzes      *QuizService
	CategoryRepo *repository.CategoryRepository
	UserRepo     *repository.UserRepository
}

func NewSeedService(auth *AuthService, categories *CategoryService, materials *MaterialService, quizzes *QuizService) *SeedService {
	return &SeedService{
		Auth:         auth,
		Categories:   categories,
		Materials:    materials,
		Quizzes:      quizzes,
		CategoryRepo: categories.Repo,
		UserRepo:     auth.UserRepo,
	}
}

func LoadSeedFile(path string) (*SeedFixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var fixture SeedFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &fixture, nil
}

// Apply inserts the fixture. Rows whose email, slug or title already exist are skipped,
// so running it twice is harmless.
func (s *SeedService) Apply(f *SeedFixture) (*SeedReport, error) {
	report := &SeedReport{}

	if f.Admin.Email == "" {
		return nil, fmt.Errorf("%w: seed admin email is required", util.ErrInvalidInput)
	}
	created, err := s.Auth.EnsureAdmin(f.Admin.Name, f.Admin.Email, f.Admin.Password)
	if err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	if created {
		report.Admins++
	}
	admin, err := s.UserRepo.FindByEmail(normalizeEmail(f.Admin.Email))
	if err != nil {
		return nil, fmt.Errorf("load seed admin: %w", err)
	}

	for _, c := range f.Categories {
		_, err := s.Categories.Create(c.Name)
		switch {
		case err == nil:
			report.Categories++
		case errors.Is(err, util.ErrCategoryExists):
		default:
			return nil, fmt.Errorf("seed category %q: %w", c.Name, err)
		}
	}

	for _, m := range f.Materials {
		categoryID, err := s.categoryID(m.Category)
		if err != nil {
			return nil, err
		}
		_, err = s.Materials.Create(admin.ID, MaterialInput{
			Title:      m.Title,
			Slug:       m.Slug,
			ContentMD:  m.Content,
			CategoryID: categoryID,
			Published:  m.Published,
		})
		switch {
		case err == nil:
			report.Materials++
		case errors.Is(err, util.ErrMaterialExists):
		default:
			return nil, fmt.Errorf("seed material %q: %w", m.Title, err)
		}
	}

	for _, q := range f.Quizzes {
		exists, err := s.Quizzes.Repo.ExistsByTitle(q.Title)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}
		categoryID, err := s.categoryID(q.Category)
		if err != nil {
			return nil, err
		}

		in := &QuizInput{
			Title:       q.Title,
			Description: q.Description,
			CategoryID:  categoryID,
			Published:   q.Published,
		}
		for _, question := range q.Questions {
			qi := QuestionInput{
				Prompt:      question.Prompt,
				Explanation: question.Explanation,
				Order:       question.Order,
			}
			for _, c := range question.Choices {
				qi.Choices = append(qi.Choices, ChoiceInput{Text: c.Text, IsCorrect: c.Correct})
			}
			in.Questions = append(in.Questions, qi)
		}

		if _, err := s.Quizzes.Create(admin.ID, in); err != nil {
			return nil, fmt.Errorf("seed quiz %q: %w", q.Title, err)
		}
		report.Quizzes++
	}

	logger.Log.Info("seed applied",
		zap.Int("admins", report.Admins),
		zap.Int("categories", report.Categories),
		zap.Int("materials", report.Materials),
		zap.Int("quizzes", report.Quizzes),
	)
	return report, nil
}

func (s *SeedService) categoryID(slug string) (*uint, error) {
	if slug == "" {
		return nil, nil
	}
	category, err := s.CategoryRepo.FindBySlug(util.ToSlug(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown category %q", util.ErrInvalidInput, slug)
		}
		return nil, err
	}
	id := category.ID
	return &id, nil
}
