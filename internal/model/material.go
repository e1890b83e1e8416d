package model

// Material is a downloadable learning resource (PDF) uploaded by an admin.
// swagger:model Material
type Material struct {
	UUIDBase
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	FileURL     string `gorm:"size:500;not null" json:"fileUrl"`
	FileName    string `gorm:"size:255;not null" json:"fileName"`
	UploadedBy  string `gorm:"index;type:varchar(36)" json:"uploadedBy"`
}

func (Material) TableName() string {
	return "materials"
}
