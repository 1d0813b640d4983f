package models

// Apartment 表示楼内的一套公寓，归属于唯一的业主用户
// 约束 1 <= Floor <= Building.FloorsCount 在写入时由服务层校验，不依赖数据库约束
type Apartment struct {
	BaseModel
	BuildingID uint   `gorm:"not null;index" json:"building_id"`
	UserID     uint   `gorm:"not null;index" json:"user_id"` // 业主
	Name       string `gorm:"type:varchar(255);not null" json:"name"`
	Floor      int    `gorm:"not null" json:"floor"`

	// 关联关系
	Building  *Building          `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
	User      *User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Residents []BuildingResident `gorm:"foreignKey:ApartmentID;constraint:OnDelete:CASCADE" json:"residents,omitempty"`
}
