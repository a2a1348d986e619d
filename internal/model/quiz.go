package model

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title       string     `gorm:"size:180;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Published   bool       `gorm:"not null" json:"published"`
	CategoryID  *uint      `gorm:"index" json:"categoryId"`
	Category    *Category  `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	AuthorID    uint       `gorm:"index;not null" json:"authorId"`
	Author      *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Questions   []Question `gorm:"constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Question order is 1-based and unique within a quiz by convention only.
type Question struct {
	BaseModel
	QuizID      uint     `gorm:"index;not null" json:"quizId"`
	Prompt      string   `gorm:"type:text;not null" json:"prompt"`
	Explanation string   `gorm:"type:text" json:"explanation,omitempty"`
	Order       int      `gorm:"column:order_idx;not null" json:"order"`
	Choices     []Choice `gorm:"constraint:OnDelete:CASCADE" json:"choices,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// Choice carries the answer key and must never be sent to learners as-is.
type Choice struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"isCorrect"`
}

func (Choice) TableName() string {
	return "choices"
}

// CorrectChoiceID returns the id of the single correct choice, or 0 when the
// question does not have exactly one.
func (q *Question) CorrectChoiceID() uint {
	var id uint
	for _, c := range q.Choices {
		if c.IsCorrect {
			if id != 0 {
				return 0
			}
			id = c.ID
		}
	}
	return id
}
