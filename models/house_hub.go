package models

// HouseHub 表示一个受管理的社区单元（物业组）
// 管理权完全由Role表记录表达，Hub本身不保存所属用户
type HouseHub struct {
	BaseModel
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Location    string  `gorm:"type:varchar(255)" json:"location"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`

	// 关联关系
	Buildings     []Building     `gorm:"foreignKey:HouseHubID;constraint:OnDelete:CASCADE" json:"buildings,omitempty"`
	Roles         []Role         `gorm:"foreignKey:HouseHubID;constraint:OnDelete:CASCADE" json:"roles,omitempty"`
	Announcements []Announcement `gorm:"foreignKey:HouseHubID;constraint:OnDelete:CASCADE" json:"announcements,omitempty"`
}
