package controllers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/services"
	"github.com/vnkhanh/e-learning-backend/utils"
	"github.com/vnkhanh/e-learning-backend/ws"
)

// VideoTranscriber là collaborator Speech-to-Text cho video bài giảng.
type VideoTranscriber interface {
	ExtractAudio(videoPath, audioPath string) error
	TranscribeAudioFile(ctx context.Context, audioPath string) (string, error)
}

// LanguageIdentifier gắn nhãn ngôn ngữ cho transcript mới tạo.
type LanguageIdentifier interface {
	Detect(text string) string
}

type LectureController struct {
	Transcriber VideoTranscriber
	Detector    LanguageIdentifier
	TempDir     string
}

func NewLectureController(transcriber VideoTranscriber, detector LanguageIdentifier, tempDir string) *LectureController {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &LectureController{Transcriber: transcriber, Detector: detector, TempDir: tempDir}
}

// POST /transcribe_video
// Nhận video bài giảng (hoặc file transcript soạn sẵn), nhận dạng giọng
// nói và lưu bài giảng vào catalog theo course_id.
func (ctl *LectureController) TranscribeVideo(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	courseID := c.PostForm("course_id")
	title := c.DefaultPostForm("title", "Untitled Lecture")
	description := c.DefaultPostForm("description", "No description")

	videoFile, videoErr := c.FormFile("video")
	transcriptFile, transcriptErr := c.FormFile("transcript_file")

	if videoErr != nil && transcriptErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No video file provided"})
		return
	}

	lectureID := uuid.New()
	objectName := fmt.Sprintf("%s-%s", slug.Make(title), lectureID.String())

	lecture := models.Lecture{
		ID:          lectureID,
		CourseID:    courseID,
		Title:       title,
		Description: description,
		Status:      "Đang xử lý",
	}

	var transcript string

	if videoErr == nil {
		// === 1 Upload video gốc lên storage ===
		videoURL, err := utils.UploadVideoToSupabase(videoFile, objectName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi upload Supabase", "details": err.Error()})
			return
		}
		lecture.VideoURL = videoURL

		// === 2 Lưu video ra file tạm để ffmpeg xử lý ===
		videoPath := filepath.Join(ctl.TempDir, fmt.Sprintf("lecture-%s%s", lectureID, filepath.Ext(videoFile.Filename)))
		if err := c.SaveUploadedFile(videoFile, videoPath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không lưu được file video", "details": err.Error()})
			return
		}
		defer os.Remove(videoPath)

		// === 3 Tách audio ===
		ws.SendStatusUpdate(lectureID.String(), "Đang trích audio", 0.2, "")
		audioPath := filepath.Join(ctl.TempDir, fmt.Sprintf("lecture-%s.mp3", lectureID))
		if err := ctl.Transcriber.ExtractAudio(videoPath, audioPath); err != nil {
			ws.SendStatusUpdate(lectureID.String(), "Lỗi", 0, err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer os.Remove(audioPath)

		if dur, err := services.GetMP3DurationFromFile(audioPath); err == nil {
			lecture.DurationSec = int(dur)
		}

		// Upload luôn bản audio cho người học chỉ muốn nghe
		if audioData, err := os.ReadFile(audioPath); err == nil {
			if audioURL, err := utils.UploadBytesToSupabase(audioData, fmt.Sprintf("%s.mp3", objectName), "audio/mpeg"); err == nil {
				lecture.AudioURL = audioURL
			}
		}

		// === 4 Nhận dạng giọng nói ===
		ws.SendStatusUpdate(lectureID.String(), "Đang nhận dạng", 0.6, "")
		text, err := ctl.Transcriber.TranscribeAudioFile(c.Request.Context(), audioPath)
		if err != nil {
			ws.SendStatusUpdate(lectureID.String(), "Lỗi", 0, err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		transcript = services.NormalizeTranscript(text)
	} else {
		// Transcript soạn sẵn: trích text thay vì chạy nhận dạng
		fileType, err := services.TranscriptFileTypeFromExt(filepath.Ext(transcriptFile.Filename))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		text, err := services.ExtractTranscript(transcriptFile, fileType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể trích xuất nội dung", "details": err.Error()})
			return
		}
		transcript = text
	}

	lecture.Transcript = transcript
	lecture.Language = ctl.Detector.Detect(transcript)
	lecture.Status = "Hoàn thành"

	if err := db.Create(&lecture).Error; err != nil {
		ws.SendStatusUpdate(lectureID.String(), "Lỗi", 0, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không lưu được bài giảng", "details": err.Error()})
		return
	}

	ws.SendStatusUpdate(lectureID.String(), "Hoàn thành", 1.0, "")
	ws.BroadcastLectureListChanged()

	c.JSON(http.StatusOK, gin.H{
		"transcript": transcript,
		"lecture":    lecture,
	})
}

// GET /api/v1/lectures/:course_id
func (ctl *LectureController) GetLectures(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	courseID := c.Param("course_id")

	var lectures []models.Lecture
	if err := db.Where("course_id = ?", courseID).
		Order("created_at ASC").
		Find(&lectures).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách bài giảng"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lectures": lectures,
	})
}

// DELETE /api/v1/lectures/:course_id/:id
func (ctl *LectureController) DeleteLecture(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	lectureID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID bài giảng không hợp lệ"})
		return
	}

	var lecture models.Lecture
	if err := db.First(&lecture, "id = ?", lectureID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bài giảng"})
		return
	}

	// Xóa file trên storage trước, bản ghi sau
	if lecture.VideoURL != "" {
		if err := utils.DeleteFileFromSupabase(lecture.VideoURL); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa video", "details": err.Error()})
			return
		}
	}
	if lecture.AudioURL != "" {
		if err := utils.DeleteFileFromSupabase(lecture.AudioURL); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa audio", "details": err.Error()})
			return
		}
	}

	if err := db.Delete(&models.Lecture{}, "id = ?", lectureID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa bài giảng", "details": err.Error()})
		return
	}

	ws.BroadcastLectureListChanged()
	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa bài giảng thành công"})
}
