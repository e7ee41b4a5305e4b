package db_models

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	Role         string `gorm:"default:user"` // "user" | "admin"

	Tasks []Task `gorm:"foreignKey:OwnerID"`
}
