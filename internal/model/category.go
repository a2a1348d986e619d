package model

// swagger:model Category
type Category struct {
	BaseModel
	Name string `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Slug string `gorm:"size:140;uniqueIndex;not null" json:"slug"`
}

func (Category) TableName() string {
	return "categories"
}
