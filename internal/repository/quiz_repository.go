package repository

import (
	"lexi_backend/internal/model"
	"lexi_backend/internal/util"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

type QuizListRow struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Published     bool   `json:"published"`
	CategoryID    *uint  `json:"categoryId"`
	QuestionCount int    `json:"questionCount"`
}

func withQuestions(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_idx asc, id asc")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		})
}

// Create inserts the quiz with its questions and choices in one transaction.
func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Category", "Author").Create(quiz).Error
	})
}

// FindByID loads the quiz with questions (stored order) and choices.
func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := withQuestions(r.DB).First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) FindPublishedByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := withQuestions(r.DB).
		Where("published = ?", true).
		First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) List(publishedOnly bool) ([]QuizListRow, error) {
	var rows []QuizListRow
	query := r.DB.Table("quizzes q").
		Select("q.id, q.title, q.description, q.published, q.category_id, " +
			"(SELECT COUNT(*) FROM questions qs WHERE qs.quiz_id = q.id) AS question_count")
	if publishedOnly {
		query = query.Where("q.published = ?", true)
	}
	err := query.Order("q.created_at desc, q.id desc").Scan(&rows).Error
	return rows, err
}

// Replace rewrites quiz metadata and syncs questions/choices by id:
// rows present in quiz are updated, rows without id are created, missing rows are deleted.
// Ids that do not belong to this quiz yield util.ErrInvalidQuiz.
func (r *QuizRepository) Replace(quiz *model.Quiz) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Quiz{}).Where("id = ?", quiz.ID).Updates(map[string]interface{}{
			"title":       quiz.Title,
			"description": quiz.Description,
			"published":   quiz.Published,
			"category_id": quiz.CategoryID,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var existing []model.Question
		if err := tx.Preload("Choices").Where("quiz_id = ?", quiz.ID).Find(&existing).Error; err != nil {
			return err
		}
		existingMap := make(map[uint]*model.Question, len(existing))
		for i := range existing {
			existingMap[existing[i].ID] = &existing[i]
		}

		kept := make(map[uint]bool)
		for i := range quiz.Questions {
			q := &quiz.Questions[i]
			q.QuizID = quiz.ID

			if q.ID == 0 {
				for j := range q.Choices {
					q.Choices[j].ID = 0
				}
				if err := tx.Create(q).Error; err != nil {
					return err
				}
				continue
			}

			old, ok := existingMap[q.ID]
			if !ok || kept[q.ID] {
				return util.ErrInvalidQuiz
			}
			kept[q.ID] = true

			if err := tx.Model(&model.Question{}).Where("id = ?", q.ID).Updates(map[string]interface{}{
				"prompt":      q.Prompt,
				"explanation": q.Explanation,
				"order_idx":   q.Order,
			}).Error; err != nil {
				return err
			}
			if err := syncChoices(tx, old, q); err != nil {
				return err
			}
		}

		for id := range existingMap {
			if !kept[id] {
				if err := tx.Delete(&model.Question{}, id).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func syncChoices(tx *gorm.DB, old, q *model.Question) error {
	existing := make(map[uint]bool, len(old.Choices))
	for _, c := range old.Choices {
		existing[c.ID] = true
	}

	kept := make(map[uint]bool)
	for i := range q.Choices {
		c := &q.Choices[i]
		c.QuestionID = q.ID
		if c.ID == 0 {
			if err := tx.Create(c).Error; err != nil {
				return err
			}
			continue
		}
		if !existing[c.ID] || kept[c.ID] {
			return util.ErrInvalidQuiz
		}
		kept[c.ID] = true
		if err := tx.Model(&model.Choice{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
			"text":       c.Text,
			"is_correct": c.IsCorrect,
		}).Error; err != nil {
			return err
		}
	}

	for id := range existing {
		if !kept[id] {
			if err := tx.Delete(&model.Choice{}, id).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// Delete removes the quiz; questions, choices and attempts go with it via ON DELETE CASCADE.
func (r *QuizRepository) Delete(id uint) error {
	result := r.DB.Delete(&model.Quiz{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *QuizRepository) CountPublished() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).Where("published = ?", true).Count(&count).Error
	return count, err
}

func (r *QuizRepository) ExistsByTitle(title string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).Where("title = ?", title).Count(&count).Error
	return count > 0, err
}
