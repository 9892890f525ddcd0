package controllers

import (
	"bytes"
	"errors"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pagebound/BookCrate/app/models"
	"github.com/pagebound/BookCrate/app/repository"
	"github.com/pagebound/BookCrate/internal/pkg/s3media"
	"github.com/pagebound/BookCrate/internal/pkg/upload"
)

const (
	maxMediaSize   = 10 * 1024 * 1024 // 10 MB
	maxMediaPerPkg = 12
	iconEdgePixels = 256
)

// HandleAdminUploadPackageMedia accepts a multipart image upload for a
// package and stores it in S3. When the "icon" form field is set, a square
// PNG thumbnail is additionally generated and saved as the package icon.
func HandleAdminUploadPackageMedia(c *fiber.Ctx) error {
	packageID, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}

	pkgRepo := repository.GetGlobalRepositories().Package
	pkg, err := pkgRepo.GetByID(packageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonNotFound(c, "package not found")
		}
		return jsonInternalError(c, "failed to load package")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return jsonBadRequest(c, "file is required")
	}
	if fileHeader.Size > maxMediaSize {
		return jsonError(c, fiber.StatusRequestEntityTooLarge, "too_large", "file exceeds the 10 MB limit")
	}

	mediaRepo := repository.GetGlobalRepositories().Media
	count, err := mediaRepo.CountByPackageID(packageID)
	if err != nil {
		return jsonInternalError(c, "failed to count media")
	}
	if count >= maxMediaPerPkg {
		return jsonBadRequest(c, "media limit reached for this package")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return jsonInternalError(c, "failed to open upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return jsonInternalError(c, "failed to read upload")
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	contentType, err := upload.ValidateImageBySniff(fileHeader.Filename, head)
	if err != nil {
		return jsonBadRequest(c, err.Error())
	}

	cfg, err := s3media.LoadConfig()
	if err != nil {
		return jsonInternalError(c, "media storage misconfigured")
	}
	if !cfg.IsEnabled() {
		return jsonError(c, fiber.StatusServiceUnavailable, "unavailable", "media storage is disabled")
	}
	client, err := s3media.NewClient(cfg)
	if err != nil {
		return jsonInternalError(c, "media storage unavailable")
	}

	mediaUUID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	objectKey := cfg.GetObjectKey(packageID, mediaUUID, ext)

	url, err := client.Upload(c.Context(), objectKey, data, contentType)
	if err != nil {
		return jsonInternalError(c, "failed to store media")
	}

	media := &models.PackageMedia{
		PackageID:   packageID,
		ObjectKey:   objectKey,
		URL:         url,
		ContentType: contentType,
		FileSize:    fileHeader.Size,
		SortOrder:   int(count),
	}
	if err := mediaRepo.Create(media); err != nil {
		// Roll back the stored object so the bucket does not accumulate orphans
		if delErr := client.Delete(c.Context(), objectKey); delErr != nil {
			fiberlog.Errorf("[Media] orphaned object %s after db failure: %v", objectKey, delErr)
		}
		return jsonInternalError(c, "failed to save media record")
	}

	if c.FormValue("icon") == "true" {
		if iconURL, err := generatePackageIcon(c, client, cfg, packageID, mediaUUID, data); err != nil {
			fiberlog.Errorf("[Media] icon generation failed for package %d: %v", packageID, err)
		} else {
			pkg.IconPath = iconURL
			if err := pkgRepo.Update(pkg); err != nil {
				fiberlog.Errorf("[Media] failed to persist icon path for package %d: %v", packageID, err)
			}
		}
	}

	return c.Status(fiber.StatusCreated).JSON(media)
}

// generatePackageIcon resizes the uploaded image into a square PNG
// thumbnail and uploads it next to the media files.
func generatePackageIcon(c *fiber.Ctx, client *s3media.Client, cfg *s3media.Config, packageID uint, mediaUUID string, data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", err
	}
	thumb := imaging.Fill(img, iconEdgePixels, iconEdgePixels, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return "", err
	}

	iconKey := cfg.GetIconKey(packageID, mediaUUID)
	return client.Upload(c.Context(), iconKey, buf.Bytes(), "image/png")
}

// HandleAdminListPackageMedia returns all media rows for a package.
func HandleAdminListPackageMedia(c *fiber.Ctx) error {
	packageID, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}

	media, err := repository.GetGlobalRepositories().Media.GetByPackageID(packageID, 0)
	if err != nil {
		return jsonInternalError(c, "failed to list media")
	}
	return c.JSON(fiber.Map{"media": media})
}

// HandleAdminDeletePackageMedia removes a media row and its S3 object.
func HandleAdminDeletePackageMedia(c *fiber.Ctx) error {
	mediaID, err := parseIDParam(c, "media_id")
	if err != nil {
		return jsonBadRequest(c, "invalid media_id")
	}

	mediaRepo := repository.GetGlobalRepositories().Media
	media, err := mediaRepo.GetByID(mediaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonNotFound(c, "media not found")
		}
		return jsonInternalError(c, "failed to load media")
	}

	cfg, err := s3media.LoadConfig()
	if err == nil && cfg.IsEnabled() {
		if client, err := s3media.NewClient(cfg); err == nil {
			if err := client.Delete(c.Context(), media.ObjectKey); err != nil {
				fiberlog.Errorf("[Media] failed to delete object %s: %v", media.ObjectKey, err)
			}
		}
	}

	if err := mediaRepo.Delete(mediaID); err != nil {
		return jsonInternalError(c, "failed to delete media record")
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
