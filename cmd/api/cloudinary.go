package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

func (app *application) deleteImageFromCloudinary(imageURL string) error {
	// Extract the public ID from the image URL
	publicID, err := app.extractPublicIDFromURL(imageURL)
	if err != nil {
		return fmt.Errorf("failed to extract public ID: %w", err)
	}

	_, err = app.cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete image from Cloudinary: %w", err)
	}

	return nil
}

// Helper function to extract the public ID from the Cloudinary URL
func (app *application) extractPublicIDFromURL(imageURL string) (string, error) {
	parsedURL, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}

	pathParts := strings.Split(parsedURL.Path, "/")
	for i, part := range pathParts {
		if part == "upload" && i+1 < len(pathParts) {
			return strings.Join(pathParts[i+1:], "/"), nil
		}
	}

	return "", errors.New("failed to extract public ID from URL")
}

// uploadToCloudinaryWithID uploads a file to Cloudinary using a custom public ID.
func (app *application) uploadToCloudinaryWithID(file io.Reader, folder, publicID string) (string, error) {
	resp, err := app.cld.Upload.Upload(
		context.Background(), // using a background context for external call
		file,
		uploader.UploadParams{
			Folder:    folder,
			PublicID:  publicID,
			Overwrite: api.Bool(false),
		},
	)

	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.SecureURL, nil
}

// uploadFormImage validates and uploads the multipart file under the given
// folder, naming it with the entity kind and a timestamp.
func (app *application) uploadFormImage(fileHeader *multipart.FileHeader, folder, kind string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	if err := validateImageFile(file, fileHeader); err != nil {
		return "", err
	}

	publicID := fmt.Sprintf("%s_%d", kind, time.Now().UnixNano())
	return app.uploadToCloudinaryWithID(file, folder, publicID)
}

const maxImageSize = 10 << 20 // 10 MB

// validateImageFile sniffs the content type and rewinds the reader so the
// upload starts from the beginning.
func validateImageFile(file multipart.File, fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > maxImageSize {
		return fmt.Errorf("image exceeds %d bytes", maxImageSize)
	}

	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return fmt.Errorf("read file: %w", err)
	}

	mime := http.DetectContentType(buf[:n])
	switch mime {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
	default:
		return fmt.Errorf("unsupported image type %s", mime)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind file: %w", err)
	}
	return nil
}
