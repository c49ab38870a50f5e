package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/e-learning-backend/controllers"
	"github.com/vnkhanh/e-learning-backend/middleware"
	"github.com/vnkhanh/e-learning-backend/ws"
	"gorm.io/gorm"
)

func SetupRouter(
	r *gin.Engine,
	db *gorm.DB,
	doubtCtl *controllers.DoubtController,
	summaryCtl *controllers.SummaryController,
	lectureCtl *controllers.LectureController,
) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	// Route gốc liệt kê các endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "online",
			"message": "AI Learning Assistant API is running",
			"endpoints": []string{
				"/answer_doubt",
				"/process_audio_doubt",
				"/summarize",
				"/speak",
				"/transcribe_video",
				"/api/v1/lectures/:course_id",
			},
		})
	})

	// Pipeline hỏi đáp + tóm tắt
	r.POST("/answer_doubt", doubtCtl.AnswerDoubt)
	r.POST("/process_audio_doubt", doubtCtl.ProcessAudioDoubt)
	r.POST("/summarize", summaryCtl.Summarize)
	r.POST("/speak", controllers.SpeakHandler)

	// Bài giảng
	r.POST("/transcribe_video", middleware.DBMiddleware(db), lectureCtl.TranscribeVideo)

	api := r.Group("/api/v1")
	{
		api.Use(middleware.RequireToken(), middleware.DBMiddleware(db))
		api.GET("/lectures/:course_id", lectureCtl.GetLectures)
		api.DELETE("/lectures/:course_id/:id", lectureCtl.DeleteLecture)
	}

	r.GET("/ws/lecture/:id", ws.HandleLectureWebSocket)
	r.GET("/ws/status", ws.HandleGlobalWebSocket)

	return r
}
