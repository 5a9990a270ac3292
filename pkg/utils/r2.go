package utils

import (
	"context"
	"strings"

	"ecovoiceapi/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type PresignedUpload struct {
	UploadUrl string `json:"uploadUrl"`
	ImageUrl  string `json:"imageUrl"`
}

// PresignImageUpload returns a PUT url for key and the public url the
// object will be served from.
func PresignImageUpload(presignCli *s3.PresignClient, ctx context.Context, bucket string, publicBaseUrl string, key string, contentType string) (*PresignedUpload, error) {

	req, err := presignCli.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(config.IMAGE_UPLOAD_EXPIRES))
	if err != nil {
		return nil, err
	}

	return &PresignedUpload{
		UploadUrl: req.URL,
		ImageUrl:  strings.TrimSuffix(publicBaseUrl, "/") + "/" + key,
	}, nil

}
