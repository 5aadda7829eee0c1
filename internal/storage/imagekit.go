package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"

	"github.com/thelivecure/admin-api/pkg/circuitbreaker"
)

const (
	uploadEndpoint = "https://upload.imagekit.io/api/v1/files/upload"
	filesEndpoint  = "https://api.imagekit.io/v1/files"
	rootFolder     = "liv_cure"
)

// ImageKitConfig is read from the environment
type ImageKitConfig struct {
	PrivateKey  string `envconfig:"IMAGEKIT_PRIVATE_KEY" required:"true"`
	PublicKey   string `envconfig:"IMAGEKIT_PUBLIC_KEY"`
	URLEndpoint string `envconfig:"IMAGEKIT_URL_ENDPOINT"`
}

// LoadImageKitConfig reads ImageKit credentials from the environment
func LoadImageKitConfig() (*ImageKitConfig, error) {
	var cfg ImageKitConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load imagekit config: %w", err)
	}
	return &cfg, nil
}

type imageKitService struct {
	cfg     *ImageKitConfig
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
}

// NewImageKitService creates a file storage backed by the ImageKit REST API
func NewImageKitService(cfg *ImageKitConfig) Service {
	return &imageKitService{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		breaker: circuitbreaker.New(circuitbreaker.Settings{
			Name:        "imagekit",
			MaxFailures: 5,
			Cooloff:     30 * time.Second,
		}),
	}
}

// do sends the request through the breaker so a flapping file host fails
// fast instead of tying up handlers.
func (s *imageKitService) do(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	err := s.breaker.Execute(func() error {
		var err error
		resp, err = s.client.Do(req)
		return err
	})
	return resp, err
}

type uploadResponse struct {
	FileID string `json:"fileId"`
	Name   string `json:"name"`
	URL    string `json:"url"`
}

func (s *imageKitService) Upload(ctx context.Context, data []byte, fileName, folder string) (*UploadResult, error) {
	// uuid suffix avoids collisions between identically named uploads
	ext := path.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	unique := fmt.Sprintf("%s_%s%s", base, uuid.NewString()[:8], ext)

	form := url.Values{}
	form.Set("file", base64.StdEncoding.EncodeToString(data))
	form.Set("fileName", unique)
	form.Set("folder", fmt.Sprintf("/%s/%s", rootFolder, folder))
	form.Set("useUniqueFileName", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.cfg.PrivateKey, "")

	resp, err := s.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("upload rejected with status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return &UploadResult{URL: out.URL, FileID: out.FileID}, nil
}

func (s *imageKitService) Delete(ctx context.Context, fileID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, filesEndpoint+"/"+fileID, nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	req.SetBasicAuth(s.cfg.PrivateKey, "")

	resp, err := s.do(req)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delete rejected with status %d", resp.StatusCode)
	}
	return nil
}

// DeleteByURL resolves a file id from the stored URL's file name and deletes
// the first match. Lookup misses are not errors.
func (s *imageKitService) DeleteByURL(ctx context.Context, fileURL string) error {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return fmt.Errorf("invalid file url: %w", err)
	}
	name := path.Base(parsed.Path)
	if name == "" || name == "/" || name == "." {
		return fmt.Errorf("file url has no name component: %s", fileURL)
	}

	listURL := fmt.Sprintf("%s?name=%s&limit=1", filesEndpoint, url.QueryEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build lookup request: %w", err)
	}
	req.SetBasicAuth(s.cfg.PrivateKey, "")

	resp, err := s.do(req)
	if err != nil {
		return fmt.Errorf("failed to look up file: %w", err)
	}
	defer resp.Body.Close()

	var files []uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return fmt.Errorf("failed to decode lookup response: %w", err)
	}
	if len(files) == 0 {
		return nil
	}
	return s.Delete(ctx, files[0].FileID)
}
