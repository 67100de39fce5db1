package store

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Records mirror the relational tables one to one. Association fields exist only
// so AutoMigrate emits foreign keys; they are never preloaded.

type userRecord struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	FirstName    *string   `gorm:"size:64"`
	LastName     *string   `gorm:"size:64"`
	BirthDate    time.Time `gorm:"not null"`
	Role         string    `gorm:"size:16;not null;default:customer"`
}

func (userRecord) TableName() string { return "users" }

type categoryRecord struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description *string
	Preview     []byte
}

func (categoryRecord) TableName() string { return "categories" }

type foodRecord struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description *string
	Preview     []byte
	CategoryID  uint            `gorm:"not null;index"`
	Category    categoryRecord  `gorm:"constraint:OnDelete:CASCADE"`
	Count       int             `gorm:"not null"`
	IsAlcohol   bool            `gorm:"not null;default:false"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (foodRecord) TableName() string { return "food" }

type addressRecord struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"not null;index"`
	User      userRecord `gorm:"constraint:OnDelete:CASCADE"`
	Locality  string     `gorm:"not null"`
	Street    string     `gorm:"not null"`
	House     int        `gorm:"not null"`
	Corps     *string    `gorm:"size:16"`
	Apartment *string    `gorm:"size:16"`
}

func (addressRecord) TableName() string { return "addresses" }

type cartItemRecord struct {
	ID      uint       `gorm:"primaryKey"`
	UserID  uint       `gorm:"not null;uniqueIndex:idx_cart_user_food"`
	User    userRecord `gorm:"constraint:OnDelete:CASCADE"`
	FoodID  uint       `gorm:"not null;uniqueIndex:idx_cart_user_food"`
	Food    foodRecord `gorm:"constraint:OnDelete:CASCADE"`
	Count   int        `gorm:"not null"`
	AddTime time.Time  `gorm:"not null"`
}

func (cartItemRecord) TableName() string { return "cart_items" }

type favoriteRecord struct {
	ID      uint       `gorm:"primaryKey"`
	UserID  uint       `gorm:"not null;uniqueIndex:idx_favorite_user_food"`
	User    userRecord `gorm:"constraint:OnDelete:CASCADE"`
	FoodID  uint       `gorm:"not null;uniqueIndex:idx_favorite_user_food"`
	Food    foodRecord `gorm:"constraint:OnDelete:CASCADE"`
	AddTime time.Time  `gorm:"not null"`
}

func (favoriteRecord) TableName() string { return "favorites" }

type orderRecord struct {
	ID            uint          `gorm:"primaryKey"`
	CustomerID    uint          `gorm:"not null;index"`
	Customer      userRecord    `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	AddressID     uint          `gorm:"not null"`
	Address       addressRecord `gorm:"constraint:OnDelete:RESTRICT"`
	CreateTime    time.Time     `gorm:"not null"`
	RiderID       *uint         `gorm:"index"`
	Rider         *userRecord   `gorm:"foreignKey:RiderID;constraint:OnDelete:SET NULL"`
	CompletedTime *time.Time
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"not null;uniqueIndex:idx_order_food"`
	Order     orderRecord     `gorm:"constraint:OnDelete:CASCADE"`
	FoodID    uint            `gorm:"not null;uniqueIndex:idx_order_food"`
	Food      foodRecord      `gorm:"constraint:OnDelete:RESTRICT"`
	Count     int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (orderItemRecord) TableName() string { return "order_items" }

type feedbackRecord struct {
	ID      uint        `gorm:"primaryKey"`
	OrderID uint        `gorm:"not null;uniqueIndex"`
	Order   orderRecord `gorm:"constraint:OnDelete:CASCADE"`
	Rating  *int16
	Comment *string
}

func (feedbackRecord) TableName() string { return "feedback" }

type notificationRecord struct {
	ID          uint       `gorm:"primaryKey"`
	UserID      uint       `gorm:"not null;index"`
	User        userRecord `gorm:"constraint:OnDelete:CASCADE"`
	Title       string     `gorm:"not null"`
	Description *string
	SentTime    time.Time `gorm:"not null"`
}

func (notificationRecord) TableName() string { return "notifications" }

// Migrate creates or updates every table the store reads.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userRecord{},
		&categoryRecord{},
		&foodRecord{},
		&addressRecord{},
		&cartItemRecord{},
		&favoriteRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&feedbackRecord{},
		&notificationRecord{},
	)
}
