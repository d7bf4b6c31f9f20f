package models

// Tag is admin-managed reference data attached to recipes.
type Tag struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Color string `gorm:"size:7;not null" json:"color"`
	Slug  string `gorm:"size:200;uniqueIndex;not null" json:"slug"`
}
