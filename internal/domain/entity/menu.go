package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuCategory groups menu items. Names are unique per account.
type MenuCategory struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	AccountID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_menu_categories_account_name" json:"-"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_menu_categories_account_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *MenuCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuCategory model
func (MenuCategory) TableName() string {
	return "menu_categories"
}

// MenuItem is a priced dish or drink on an account's menu
type MenuItem struct {
	ID         uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	AccountID  uuid.UUID       `gorm:"type:char(36);not null;index" json:"-"`
	CategoryID uuid.UUID       `gorm:"type:char(36);not null;index" json:"category_id"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CreatedAt  time.Time       `json:"created_at"`

	// CategoryName is filled from the preloaded Category
	CategoryName string `gorm:"-" json:"category"`

	// Relationships
	Category *MenuCategory `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new item
func (i *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}

// AfterFind copies the preloaded category name onto the item
func (i *MenuItem) AfterFind(tx *gorm.DB) error {
	i.SetCategory(i.Category)
	return nil
}

// SetCategory attaches the item's category and its name
func (i *MenuItem) SetCategory(c *MenuCategory) {
	i.Category = c
	if c != nil {
		i.CategoryName = c.Name
	}
}
