package model

import (
	"time"
)

// swagger:model
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AllModels lists every table for AutoMigrate, parents first.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Material{},
		&Quiz{},
		&Question{},
		&Choice{},
		&QuizAttempt{},
		&QuizAnswer{},
	}
}
