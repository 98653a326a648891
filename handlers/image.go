package handlers

import (
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/nfnt/resize"
	"go.uber.org/zap"
)

const maxThumbnailHeight = 2000

// FetchImage handles GET /image?url=...&height=h: it fetches a recipe image,
// scales it to the requested height keeping the aspect ratio, and returns it
// in its original format.
func FetchImage(d Deps, w http.ResponseWriter, r *http.Request) {
	imageURL := r.URL.Query().Get("url")
	if imageURL == "" {
		d.writeFail(w, http.StatusBadRequest, "URL parameter is required")
		return
	}
	u, err := url.Parse(imageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		d.writeFail(w, http.StatusBadRequest, "URL must be http or https")
		return
	}

	newHeight := d.ThumbnailHeight
	if h := r.URL.Query().Get("height"); h != "" {
		n, err := strconv.ParseUint(h, 10, 32)
		if err != nil || n == 0 || n > maxThumbnailHeight {
			d.writeFail(w, http.StatusBadRequest, "height must be between 1 and 2000")
			return
		}
		newHeight = uint(n)
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, u.String(), nil)
	if err != nil {
		d.writeFail(w, http.StatusBadRequest, "Invalid image URL")
		return
	}
	resp, err := d.ImageClient.Do(req)
	if err != nil {
		d.Log.Warn("failed to fetch image", zap.String("url", imageURL), zap.Error(err))
		d.writeFail(w, http.StatusBadGateway, "Failed to fetch image")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		d.writeFail(w, http.StatusBadGateway, "Failed to fetch image")
		return
	}

	img, format, err := image.Decode(resp.Body)
	if err != nil {
		d.writeFail(w, http.StatusUnsupportedMediaType, "Failed to decode image")
		return
	}

	bounds := img.Bounds()
	aspectRatio := float64(bounds.Dx()) / float64(bounds.Dy())
	newWidth := uint(float64(newHeight) * aspectRatio)
	resized := resize.Resize(newWidth, newHeight, img, resize.Lanczos3)

	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		w.Header().Set("Content-Type", "image/jpeg")
		err = jpeg.Encode(w, resized, nil)
	case "png":
		w.Header().Set("Content-Type", "image/png")
		err = png.Encode(w, resized)
	default:
		d.writeFail(w, http.StatusUnsupportedMediaType, "Unsupported image format")
		return
	}
	if err != nil {
		d.Log.Warn("failed to encode image", zap.Error(err))
	}
}
