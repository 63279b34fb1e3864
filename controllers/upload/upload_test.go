package uploadControllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadRouter(dir string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/upload", UploadProductImage(dir, "http://localhost:8080"))
	r.DELETE("/admin/upload/:filename", DeleteProductImage(dir))
	return r
}

func postFile(t *testing.T, r *gin.Engine, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadProductImage(t *testing.T) {
	dir := t.TempDir()
	r := uploadRouter(dir)

	w := postFile(t, r, "shea butter!.jpg", []byte("fake image bytes"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status bool   `json:"status"`
		URL    string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, strings.HasPrefix(resp.URL, "http://localhost:8080/uploads/"))

	// The stored filename is sanitized and actually on disk.
	stored := filepath.Base(resp.URL)
	assert.NotContains(t, stored, "!")
	assert.NotContains(t, stored, " ")
	_, err := os.Stat(filepath.Join(dir, stored))
	require.NoError(t, err)

	// Delete removes it.
	req := httptest.NewRequest(http.MethodDelete, "/admin/upload/"+stored, nil)
	del := httptest.NewRecorder()
	r.ServeHTTP(del, req)
	require.Equal(t, http.StatusOK, del.Code)
	_, err = os.Stat(filepath.Join(dir, stored))
	assert.True(t, os.IsNotExist(err))
}

func TestUploadProductImage_RejectsUnsupportedType(t *testing.T) {
	r := uploadRouter(t.TempDir())

	w := postFile(t, r, "malware.exe", []byte("nope"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postFile(t, r, "script.php", []byte("nope"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProductImage_MissingFile(t *testing.T) {
	r := uploadRouter(t.TempDir())

	req := httptest.NewRequest(http.MethodDelete, "/admin/upload/ghost.jpg", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
