package models

import (
	"time"

	"github.com/google/uuid"
)

type Lecture struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"_id"`
	CourseID    string    `gorm:"size:64;not null;index" json:"course_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	VideoURL    string    `gorm:"type:text" json:"video"`
	AudioURL    string    `gorm:"type:text" json:"audio_url"`
	Transcript  string    `gorm:"type:text" json:"transcript"`
	Language    string    `gorm:"size:10;default:'en'" json:"language"`
	DurationSec int       `json:"duration_sec"`
	Status      string    `gorm:"size:30;default:'Đang xử lý'" json:"status"` // Đang xử lý|Đang trích audio|Đang nhận dạng|Hoàn thành|Lỗi
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
