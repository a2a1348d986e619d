package model

// QuizAttempt is written once per submission and never updated.
// (user_id, quiz_id) is unique: one attempt per user per quiz.
type QuizAttempt struct {
	BaseModel
	UserID          uint         `gorm:"not null;uniqueIndex:idx_quiz_attempts_user_quiz,priority:1" json:"userId"`
	User            *User        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	QuizID          uint         `gorm:"not null;index;uniqueIndex:idx_quiz_attempts_user_quiz,priority:2" json:"quizId"`
	Quiz            *Quiz        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Score           int          `gorm:"not null" json:"score"`
	Total           int          `gorm:"not null" json:"total"`
	DurationSeconds int          `gorm:"column:duration_s;not null;default:0" json:"durationSeconds"`
	Answers         []QuizAnswer `gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// QuizAnswer.IsCorrect is a copy of the choice's correctness at submission time.
// ChoiceID is nil when the question was skipped or the choice was foreign to it.
type QuizAnswer struct {
	BaseModel
	AttemptID  uint      `gorm:"index;not null" json:"attemptId"`
	QuestionID uint      `gorm:"index;not null" json:"questionId"`
	Question   *Question `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ChoiceID   *uint     `gorm:"index" json:"choiceId"`
	Choice     *Choice   `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"isCorrect"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}
