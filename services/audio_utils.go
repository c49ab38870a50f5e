package services

import (
	"io"
	"net/http"
	"os"

	tcmp3 "github.com/tcolgate/mp3"
)

// GetMP3Duration đọc stream MP3 và trả về thời lượng (giây).
func GetMP3Duration(r io.Reader) (float64, error) {
	var (
		dur     float64
		dec     = tcmp3.NewDecoder(r)
		frame   tcmp3.Frame
		skipped int
	)

	for {
		if err := dec.Decode(&frame, &skipped); err != nil {
			if err == io.EOF {
				break
			}
			return 0, err
		}
		dur += frame.Duration().Seconds()
	}

	return dur, nil
}

// GetMP3DurationFromFile tính thời lượng của file MP3 trên đĩa (audio vừa
// tách từ video bài giảng).
func GetMP3DurationFromFile(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return GetMP3Duration(f)
}

// GetMP3DurationFromURL tính thời lượng file MP3 đã upload lên storage.
func GetMP3DurationFromURL(url string) (float64, error) {
	resp, err := http.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return GetMP3Duration(resp.Body)
}
