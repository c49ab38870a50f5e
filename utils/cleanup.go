package utils

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CleanupStaleTempFiles xóa file video/audio trung gian quá 6 tiếng chưa
// được dọn (request chết giữa chừng để lại file).
func CleanupStaleTempFiles(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("Lỗi đọc thư mục temp %s: %v", dir, err)
		return
	}

	cutoff := time.Now().Add(-6 * time.Hour)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, "lecture-") {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err == nil {
			removed++
		}
	}

	if removed > 0 {
		log.Printf("Đã xóa %d file tạm quá hạn", removed)
	}
}

// StartCleanupJob chạy cleanup job định kỳ
func StartCleanupJob(dir string) {
	// Chạy cleanup ngay lần đầu khi khởi động
	log.Println("Đang chạy cleanup lần đầu...")
	CleanupStaleTempFiles(dir)

	// Thiết lập ticker để chạy mỗi 6 giờ
	ticker := time.NewTicker(6 * time.Hour)

	go func() {
		defer ticker.Stop()
		for range ticker.C {
			CleanupStaleTempFiles(dir)
		}
	}()

	log.Println("Cleanup job đã được khởi động (chạy mỗi 6 giờ)")
}
