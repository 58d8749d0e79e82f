package geobooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// DefaultImageHostURL is the external image-hosting upload endpoint.
const DefaultImageHostURL = "https://api.imgbb.com/1/upload"

// ImageUploader posts cover images to the external hosting service and
// returns the public display URL stored on the book record.
type ImageUploader struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewImageUploader returns an uploader for the given API key. An empty
// endpoint selects DefaultImageHostURL.
func NewImageUploader(endpoint, apiKey string) *ImageUploader {
	if endpoint == "" {
		endpoint = DefaultImageHostURL
	}
	return &ImageUploader{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     http.DefaultClient,
	}
}

type imageHostResponse struct {
	Data struct {
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Success bool `json:"success"`
}

// Upload sends one image file as multipart form data and returns its hosted
// display URL.
func (u *ImageUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("image", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	target := u.endpoint + "?key=" + url.QueryEscape(u.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, pr)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := u.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", apiErrorFrom(res)
	}

	var out imageHostResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if out.Data.DisplayURL == "" {
		return "", fmt.Errorf("upload image: host returned no display URL")
	}
	return out.Data.DisplayURL, nil
}
