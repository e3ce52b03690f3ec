package model

import "time"

type User struct {
	ID           string `gorm:"primaryKey;size:64;not null"`
	Name         string `gorm:"size:128;not null"`
	Email        string `gorm:"size:128;uniqueIndex;not null"`
	Password     string `gorm:"size:128"` // bcrypt hash, empty for google users
	IsGoogleUser bool   `gorm:"not null;default:false"`
	GoogleID     string `gorm:"size:64;index"`
	IsVerified   bool   `gorm:"not null;default:false"`

	VerifyToken        string `gorm:"size:64;index"`
	VerifyTokenExpires *time.Time
	ResetToken         string `gorm:"size:64;index"`
	ResetTokenExpires  *time.Time

	CartItems []CartItem `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Admin is a separate credential store from User: a flat list with no role
// hierarchy, distinguished only by the admin claim on its tokens.
type Admin struct {
	ID       string `gorm:"primaryKey;size:64;not null"`
	Name     string `gorm:"size:128;not null"`
	Email    string `gorm:"size:128;uniqueIndex;not null"`
	Password string `gorm:"size:128;not null"`

	ResetToken        string `gorm:"size:64;index"`
	ResetTokenExpires *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartItem struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:64;uniqueIndex:idx_cart_user_product;not null"`
	ProductID string `gorm:"size:64;uniqueIndex:idx_cart_user_product;not null"`
	Quantity  int    `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Product struct {
	ID            string         `gorm:"primaryKey;size:64;not null"`
	Name          string         `gorm:"size:128;not null"`
	Description   string         `gorm:"type:text"`
	Images        []ProductImage `gorm:"foreignKey:ProductID"`
	Price         float64        `gorm:"not null"`
	OriginalPrice *float64
	Category      string `gorm:"size:48;index;not null"`
	InStock       int    `gorm:"not null"`

	IsOrganic    bool `gorm:"not null;default:false"`
	IsFeatured   bool `gorm:"not null;default:false"`
	IsBestSeller bool `gorm:"not null;default:false"`
	IsNewArrival bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID string `gorm:"size:64;index;not null"`
	URL       string `gorm:"size:512;not null"`
}

// ProductCategories is the closed set a product may belong to. The Category
// table is a separate display list and does not widen this set.
var ProductCategories = []string{
	"fruits", "vegetables", "dairy", "bakery", "beverages", "snacks", "pantry", "meat",
}

func ValidProductCategory(category string) bool {
	for _, c := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Review struct {
	ID        string `gorm:"primaryKey;size:64;not null"`
	ProductID string `gorm:"size:64;index;not null"`
	UserID    string `gorm:"size:64;index;not null"`
	UserName  string `gorm:"size:128"`
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"type:text"`
	// true only when the author had a shipped/delivered order containing the
	// product at submission time
	Verified bool `gorm:"not null;default:false"`

	CreatedAt time.Time
}

type Category struct {
	ID   string `gorm:"primaryKey;size:64;not null"`
	Name string `gorm:"size:64;uniqueIndex;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type FAQ struct {
	ID       string `gorm:"primaryKey;size:64;not null"`
	Question string `gorm:"size:512;not null"`
	Answer   string `gorm:"type:text;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
