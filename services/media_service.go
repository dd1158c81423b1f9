package services

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MediaService issues presigned S3 URLs for gallery photo uploads and reads
type MediaService struct {
	Client *s3.Client
	Bucket string
}

// InitializeS3Client initializes the S3 client from the ambient AWS
// configuration
func InitializeS3Client() *s3.Client {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return s3.NewFromConfig(cfg)
}

// GenerateUploadURL generates a presigned URL for uploading a gallery photo
func (s *MediaService) GenerateUploadURL(fileName, fileType string) (string, string, error) {
	key := "profile-photos/" + time.Now().Format("20060102150405") + "-" + fileName
	params := &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	presigner := s3.NewPresignClient(s.Client)
	presignedURL, err := presigner.PresignPutObject(context.TODO(), params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", "", err
	}
	return presignedURL.URL, key, nil
}

// GenerateReadURL generates a presigned URL for reading a stored photo
func (s *MediaService) GenerateReadURL(key string) (string, error) {
	params := &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}
	presigner := s3.NewPresignClient(s.Client)
	presignedURL, err := presigner.PresignGetObject(context.TODO(), params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", err
	}
	return presignedURL.URL, nil
}
