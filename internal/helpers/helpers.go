package helpers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const EventsFolder = "events"

// UploadImage pushes a single image to Cloudinary and returns its secure URL.
func UploadImage(ctx context.Context, cld *cloudinary.Cloudinary, file io.Reader, folder string) (string, error) {
	uploadResult, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: folder,
		Tags:   []string{"recyclewise"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %v", err)
	}
	if uploadResult.SecureURL == "" {
		return "", errors.New("upload returned no URL")
	}
	return uploadResult.SecureURL, nil
}
