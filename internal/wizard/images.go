package wizard

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	// webp is accepted for upload but only decodable with this codec registered
	_ "golang.org/x/image/webp"
	"github.com/hearthside/hearthside-api/pkg/logger"
	"go.uber.org/zap"
)

// Image intake limits for step 3.
const (
	MaxImages     = 10
	MaxImageBytes = 10 << 20 // 10 MB per file before compression

	// Compression target: longest side capped, re-encoded as JPEG.
	maxImageDimension = 1600
	jpegQuality       = 80
)

var acceptedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// ImageStatus tracks one queued file through its lifecycle.
type ImageStatus string

const (
	StatusCompressing ImageStatus = "compressing"
	StatusUploading   ImageStatus = "uploading"
	StatusComplete    ImageStatus = "complete"
	StatusFailed      ImageStatus = "failed"
)

// ImageFile is one file handed to the wizard by the UI layer.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ImageUpload is the observable state of one accepted file.
type ImageUpload struct {
	Name     string
	Status   ImageStatus
	Progress int // 0-100
	URL      string
	Err      error
}

// Uploader stores compressed image bytes and returns their URL.
type Uploader interface {
	UploadImage(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ProgressFunc receives per-file status updates as compression and
// upload proceed. Called from upload goroutines; implementations must
// be safe for concurrent use.
type ProgressFunc func(name string, status ImageStatus, progress int)

// ImageManager runs step 3's image pipeline: validate each file,
// compress it, upload it. Files are processed independently so one
// slow or failing file never blocks the rest of the batch.
type ImageManager struct {
	uploader   Uploader
	onProgress ProgressFunc

	mu      sync.Mutex
	uploads []*ImageUpload
	wg      sync.WaitGroup
}

// NewImageManager creates an image manager. onProgress may be nil.
func NewImageManager(uploader Uploader, onProgress ProgressFunc) *ImageManager {
	return &ImageManager{uploader: uploader, onProgress: onProgress}
}

// Add validates a batch of files and starts processing the accepted
// ones. Each rejection is returned as its own error naming the file;
// accepted files proceed regardless of rejected siblings.
func (m *ImageManager) Add(ctx context.Context, files []ImageFile) []error {
	var errs []error

	for _, f := range files {
		m.mu.Lock()
		count := len(m.uploads)
		m.mu.Unlock()

		if count >= MaxImages {
			errs = append(errs, fmt.Errorf("%s: maximum of %d photos reached", f.Name, MaxImages))
			continue
		}
		if len(f.Data) > MaxImageBytes {
			errs = append(errs, fmt.Errorf("%s: file exceeds %d MB limit", f.Name, MaxImageBytes>>20))
			continue
		}
		if !acceptedImageTypes[strings.ToLower(f.ContentType)] {
			errs = append(errs, fmt.Errorf("%s: unsupported format %q, use JPEG, PNG or WebP", f.Name, f.ContentType))
			continue
		}

		upload := &ImageUpload{Name: f.Name, Status: StatusCompressing}
		m.mu.Lock()
		m.uploads = append(m.uploads, upload)
		m.mu.Unlock()

		m.wg.Add(1)
		go m.process(ctx, f, upload)
	}

	return errs
}

func (m *ImageManager) process(ctx context.Context, f ImageFile, upload *ImageUpload) {
	defer m.wg.Done()

	m.report(upload, StatusCompressing, 10)

	compressed, err := compress(f.Data)
	if err != nil {
		m.fail(upload, fmt.Errorf("failed to process %s: %w", f.Name, err))
		return
	}

	m.report(upload, StatusUploading, 60)

	key := fmt.Sprintf("quotes/%s.jpg", uuid.New().String())
	url, err := m.uploader.UploadImage(ctx, key, compressed, "image/jpeg")
	if err != nil {
		m.fail(upload, fmt.Errorf("failed to upload %s: %w", f.Name, err))
		return
	}

	m.mu.Lock()
	upload.URL = url
	m.mu.Unlock()
	m.report(upload, StatusComplete, 100)

	logger.Debug("Quote photo uploaded",
		zap.String("file", f.Name),
		zap.String("key", key),
		zap.Int("original_bytes", len(f.Data)),
		zap.Int("compressed_bytes", len(compressed)),
	)
}

func (m *ImageManager) report(upload *ImageUpload, status ImageStatus, progress int) {
	m.mu.Lock()
	upload.Status = status
	upload.Progress = progress
	name := upload.Name
	m.mu.Unlock()

	if m.onProgress != nil {
		m.onProgress(name, status, progress)
	}
}

func (m *ImageManager) fail(upload *ImageUpload, err error) {
	m.mu.Lock()
	upload.Err = err
	m.mu.Unlock()
	m.report(upload, StatusFailed, 100)

	logger.Warn("Quote photo rejected during processing", zap.Error(err))
}

// Wait blocks until every queued file has completed or failed.
func (m *ImageManager) Wait() {
	m.wg.Wait()
}

// InFlight reports whether any file is still compressing or uploading.
func (m *ImageManager) InFlight() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.uploads {
		if u.Status == StatusCompressing || u.Status == StatusUploading {
			return true
		}
	}
	return false
}

// Uploads returns a snapshot of every queued file's state, in the order
// the files were added.
func (m *ImageManager) Uploads() []ImageUpload {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ImageUpload, len(m.uploads))
	for i, u := range m.uploads {
		out[i] = *u
	}
	return out
}

// URLs returns the stored URLs of every completed upload.
func (m *ImageManager) URLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var urls []string
	for _, u := range m.uploads {
		if u.Status == StatusComplete && u.URL != "" {
			urls = append(urls, u.URL)
		}
	}
	return urls
}

// Reset drops all queued uploads. In-flight goroutines finish against
// their own state and are no longer visible.
func (m *ImageManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.uploads = nil
}

// compress decodes, downscales to the dimension cap and re-encodes as
// JPEG. Images already within bounds are still re-encoded so every
// stored photo has a predictable format and size.
func compress(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageDimension || bounds.Dy() > maxImageDimension {
		img = imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	return buf.Bytes(), nil
}
