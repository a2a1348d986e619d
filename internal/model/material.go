package model

// Material is a markdown article. Deleting its category keeps the article.
// swagger:model Material
type Material struct {
	BaseModel
	Title      string    `gorm:"size:180;not null" json:"title"`
	Slug       string    `gorm:"size:180;uniqueIndex;not null" json:"slug"`
	ContentMD  string    `gorm:"column:content_md;type:text;not null" json:"contentMd"`
	Published  bool      `gorm:"not null" json:"published"`
	CategoryID *uint     `gorm:"index" json:"categoryId"`
	Category   *Category `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	AuthorID   uint      `gorm:"index;not null" json:"authorId"`
	Author     *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Material) TableName() string {
	return "materials"
}
