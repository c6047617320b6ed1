package handlers

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"

	appconfig "github.com/Fuku-x/connect-app/internal/config"
	"github.com/Fuku-x/connect-app/pkg/utils"
)

const (
	maxThumbnailBytes = 2 << 20 // 2 MB
	maxGalleryBytes   = 4 << 20 // 4 MB per image
)

func getS3Client() (*s3.Client, error) {
	cfg := appconfig.AppConfig
	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID),
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(r2Resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

func isImageUpload(header *multipart.FileHeader) bool {
	return strings.HasPrefix(header.Header.Get("Content-Type"), "image/")
}

// putObject streams one multipart file into the bucket under folder/ and
// returns its public URL.
func putObject(file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	client, err := getS3Client()
	if err != nil {
		return "", err
	}

	cfg := appconfig.AppConfig
	key := fmt.Sprintf("%s/%s%s", folder, utils.GenerateID(), filepath.Ext(header.Filename))

	_, err = client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(cfg.R2BucketName),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(header.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", err
	}

	publicURL := cfg.R2PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.r2.dev", cfg.R2BucketName)
	}
	return fmt.Sprintf("%s/%s", publicURL, key), nil
}

func uploadSingleImage(c *gin.Context, field, folder string, maxBytes int64) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("File field %q is required", field)})
		return
	}
	defer file.Close()

	if !isImageUpload(header) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image uploads are allowed"})
		return
	}
	if header.Size > maxBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Image must be %d MB or smaller", maxBytes>>20)})
		return
	}

	url, err := putObject(file, header, folder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func UploadProfileImage(c *gin.Context) {
	uploadSingleImage(c, "image", "connect/profiles", maxThumbnailBytes)
}

func UploadPortfolioThumbnail(c *gin.Context) {
	uploadSingleImage(c, "thumbnail", "connect/portfolio/thumbnails", maxThumbnailBytes)
}

// UploadPortfolioGallery accepts up to 6 images in one multipart request
// under the "images" field.
func UploadPortfolioGallery(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart form required"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one image is required"})
		return
	}
	if len(files) > maxGalleryImages {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Gallery is limited to %d images", maxGalleryImages)})
		return
	}

	urls := make([]string, 0, len(files))
	for _, header := range files {
		if !isImageUpload(header) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only image uploads are allowed"})
			return
		}
		if header.Size > maxGalleryBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Gallery images must be 4 MB or smaller"})
			return
		}

		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
			return
		}

		url, err := putObject(file, header, "connect/portfolio/gallery")
		file.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
			return
		}
		urls = append(urls, url)
	}

	c.JSON(http.StatusOK, gin.H{"urls": urls})
}
