package models

type Role struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description"`

	// Relations
	Users []User `gorm:"many2many:user_roles" json:"users,omitempty"`
}
