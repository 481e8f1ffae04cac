package infer

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/types"
)

// MaxImageBytes caps the total decoded size of all images in one request.
const MaxImageBytes = 32 << 20 // 32 MiB

// MaxBodyBytes caps the raw request body. Base64 inflates payloads by 4/3,
// so this sits above MaxImageBytes.
const MaxBodyBytes = 64 << 20 // 64 MiB

// Input validation errors.
var (
	ErrEmptyText      = errors.New("text is required")
	ErrInvalidBase64  = errors.New("one of the images is not valid base64")
	ErrImagesTooLarge = fmt.Errorf("decoded images exceed %d bytes in total", MaxImageBytes)
)

// BuildInput converts an inference request into the Responses API input:
// a single user message with one input_text part followed by one
// input_image part per usable image. Blank image entries are skipped.
// The returned count is the number of images actually attached.
func BuildInput(req *types.InferenceRequest) ([]types.InputItem, int, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, 0, ErrEmptyText
	}

	content := []types.InputContentPart{types.NewTextPart(req.Text)}

	totalBytes := 0
	imageCount := 0
	for _, img := range req.Images {
		b64 := strings.TrimSpace(img.ImageB64)
		if b64 == "" {
			continue
		}

		decoded, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, 0, ErrInvalidBase64
		}

		totalBytes += len(decoded)
		if totalBytes > MaxImageBytes {
			return nil, 0, ErrImagesTooLarge
		}

		mime := img.Mime
		if mime == "" {
			mime = sniffImageMime(decoded)
		}

		content = append(content, types.NewImagePart("data:"+mime+";base64,"+b64))
		imageCount++
	}

	input := []types.InputItem{
		{Role: types.RoleUser, Content: content},
	}
	return input, imageCount, nil
}

// sniffImageMime detects the MIME type of decoded image bytes.
func sniffImageMime(data []byte) string {
	mime := http.DetectContentType(data)
	if strings.HasPrefix(mime, "image/") {
		return mime
	}
	return "application/octet-stream"
}

// cacheKey derives a stable key for an inference request. The configured
// model is part of the key so a model change never serves stale output.
func cacheKey(model string, req *types.InferenceRequest) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(req.Text))
	for _, img := range req.Images {
		h.Write([]byte{0})
		h.Write([]byte(img.Mime))
		h.Write([]byte{0})
		h.Write([]byte(img.ImageB64))
	}
	return "infer:" + hex.EncodeToString(h.Sum(nil))
}
