package uploadControllers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/korede-dotcom/beautybytasapi/apperr"
)

var unsafeChars = regexp.MustCompile(`[^\w\-.]`)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// UploadProductImage stores an uploaded image under uploadDir and returns
// its public URL. The URL is what admins pass as an image when creating or
// updating a product.
func UploadProductImage(uploadDir, publicBaseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			apperr.Respond(c, apperr.Validation("no file uploaded"))
			return
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedExtensions[ext] {
			apperr.Respond(c, apperr.Validation("unsupported file type"))
			return
		}

		cleanName := unsafeChars.ReplaceAllString(file.Filename, "_")
		filename := fmt.Sprintf("%d_%s", time.Now().Unix(), cleanName)

		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			apperr.Respond(c, err)
			return
		}
		if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
			apperr.Respond(c, err)
			return
		}

		url := fmt.Sprintf("%s/uploads/%s", strings.TrimRight(publicBaseURL, "/"), filename)
		log.Printf("✅ Image uploaded: %s", filename)

		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "File uploaded successfully",
			"url":     url,
		})
	}
}

// DeleteProductImage removes a previously uploaded file by name. Only bare
// filenames are accepted; path separators are rejected outright.
func DeleteProductImage(uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		filename := c.Param("filename")
		if filename == "" || filename != filepath.Base(filename) {
			apperr.Respond(c, apperr.Validation("invalid filename"))
			return
		}

		path := filepath.Join(uploadDir, filename)
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				apperr.Respond(c, apperr.NotFound("file not found"))
				return
			}
			apperr.Respond(c, err)
			return
		}

		log.Printf("🗑️ Image deleted: %s", filename)
		c.JSON(http.StatusOK, gin.H{"status": true, "message": "File deleted successfully"})
	}
}
