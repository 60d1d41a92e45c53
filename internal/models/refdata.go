package models

// Reference data for group localities. Read-only after seeding; the social
// core only ever looks localities up, it never writes them.

type Region struct {
	ID   uint8  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
}

func (Region) TableName() string {
	return "regions"
}

type Locality struct {
	ID       uint16 `json:"id" gorm:"primaryKey"`
	RegionID uint8  `json:"regionID" gorm:"not null;index"`
	Name     string `json:"name" gorm:"type:varchar(100);not null"`
	NameAr   string `json:"nameAr" gorm:"type:varchar(100);not null"`
	Slug     string `json:"slug" gorm:"type:varchar(100);not null;uniqueIndex"`

	Region Region `json:"-" gorm:"foreignKey:RegionID"`
}

func (Locality) TableName() string {
	return "localities"
}
