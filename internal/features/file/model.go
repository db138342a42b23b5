package file

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StoredFile struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FileName   string             `json:"fileName" bson:"fileName"`
	StoredName string             `json:"storedName" bson:"storedName"`
	URL        string             `json:"url" bson:"url"`
	Size       int64              `json:"size" bson:"size"`
	MimeType   string             `json:"mimeType" bson:"mimeType"`
	UploadedBy string             `json:"uploadedBy" bson:"uploadedBy"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}
