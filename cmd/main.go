package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/vnkhanh/e-learning-backend/config"
	"github.com/vnkhanh/e-learning-backend/controllers"
	"github.com/vnkhanh/e-learning-backend/routes"
	"github.com/vnkhanh/e-learning-backend/services"
	"github.com/vnkhanh/e-learning-backend/utils"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("Không tìm thấy file .env")
	}

	config.InitDB()

	// Khởi tạo các service AI một lần, inject xuống controller
	ctx := context.Background()
	gemini, err := services.NewGeminiService(ctx)
	if err != nil {
		log.Fatal("Không khởi tạo được Gemini:", err)
	}
	defer gemini.Close()

	detector := services.NewLanguageDetector()
	translator := services.NewTranslator(detector)
	retriever := services.NewRetriever(services.NewGeminiEmbedder(gemini))
	pipeline := services.NewDoubtService(detector, translator, retriever, gemini)
	transcriber := services.NewTranscriber(gemini, os.TempDir())

	doubtCtl := controllers.NewDoubtController(pipeline, transcriber)
	summaryCtl := controllers.NewSummaryController(pipeline)
	lectureCtl := controllers.NewLectureController(transcriber, detector, transcriber.TempDir())

	// Dọn file video/audio tạm bị bỏ lại
	utils.StartCleanupJob(transcriber.TempDir())

	r := gin.Default()

	//Bật CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Gọi SetupRouter để đăng ký route
	r = routes.SetupRouter(r, config.DB, doubtCtl, summaryCtl, lectureCtl)

	// Lấy PORT từ env
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000" // mặc định nếu không có PORT
	}

	log.Println("Server running at Port:" + port)
	r.Run(":" + port)
}
