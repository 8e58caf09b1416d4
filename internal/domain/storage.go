package domain

import (
	"context"
	"time"
)

// StorageObject 上传文件的落库记录，文件本体存放在本地上传目录。
type StorageObject struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Key          string    `gorm:"uniqueIndex;size:191" json:"key"`
	OriginalName string    `gorm:"size:255" json:"originalName"`
	ContentType  string    `gorm:"size:128" json:"contentType"`
	Size         int64     `json:"size"`
	URL          string    `gorm:"size:255" json:"url"`
	CreatedBy    string    `gorm:"size:36;index" json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (StorageObject) TableName() string { return "storage_objects" }

type StorageObjectRepository interface {
	Create(ctx context.Context, o *StorageObject) error
	List(ctx context.Context, offset, limit int) ([]StorageObject, int64, error)
}
