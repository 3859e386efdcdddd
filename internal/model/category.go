package model

// Category groups products. Products reference a category without
// owning its lifecycle.
type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
}

func (c *Category) TableName() string {
	return "categories"
}
