package models

// Building 表示Hub下的一栋楼
type Building struct {
	BaseModel
	HouseHubID      uint   `gorm:"not null;index" json:"house_hub_id"`
	Name            string `gorm:"type:varchar(255);not null" json:"name"`
	Address         string `gorm:"type:varchar(255);not null" json:"address"`
	FloorsCount     int    `gorm:"not null" json:"floors_count"`     // 楼层数，公寓floor的上界
	ApartmentsCount int    `gorm:"not null" json:"apartments_count"` // 计划公寓数，仅供参考，不与实际行数校验

	// 关联关系
	HouseHub   *HouseHub   `gorm:"foreignKey:HouseHubID" json:"house_hub,omitempty"`
	Apartments []Apartment `gorm:"foreignKey:BuildingID;constraint:OnDelete:CASCADE" json:"apartments,omitempty"`
}
