package models

// BuildingResident 表示公寓的居住人（非业主）
// (user_id, apartment_id) 唯一索引作为并发写入时的兜底约束
type BuildingResident struct {
	BaseModel
	ApartmentID uint `gorm:"not null;uniqueIndex:idx_resident_user_apartment" json:"apartment_id"`
	UserID      uint `gorm:"not null;uniqueIndex:idx_resident_user_apartment" json:"user_id"`

	// 关联关系
	Apartment *Apartment `gorm:"foreignKey:ApartmentID" json:"apartment,omitempty"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
