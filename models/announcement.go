package models

// Announcement 表示Hub范围内的公告，创建后不可修改
type Announcement struct {
	BaseModel
	HouseHubID uint   `gorm:"not null;index" json:"house_hub_id"`
	UserID     uint   `gorm:"not null;index" json:"user_id"` // 作者
	Title      string `gorm:"type:varchar(255);not null" json:"title"`
	Body       string `gorm:"type:text;not null" json:"body"`

	// 关联关系
	HouseHub *HouseHub `gorm:"foreignKey:HouseHubID" json:"house_hub,omitempty"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// AnnouncementAuthor 公告列表返回的作者投影，仅暴露id和name
type AnnouncementAuthor struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// AnnouncementView 公告的列表视图
type AnnouncementView struct {
	ID        uint               `json:"id"`
	Title     string             `json:"title"`
	Body      string             `json:"body"`
	CreatedAt string             `json:"created_at"`
	User      AnnouncementAuthor `json:"user"`
}
