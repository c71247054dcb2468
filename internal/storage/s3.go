// Package storage archives rendered invoice PDFs to an S3-compatible bucket
// (R2, MinIO or AWS).
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"asf-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const invoicePrefix = "invoices/"

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Archive struct {
	client objectPutter
	bucket string
}

// NewArchive builds an S3 client from cfg.Storage. It returns nil, nil when
// no bucket is configured; a nil *Archive ignores every upload.
func NewArchive(ctx context.Context, cfg *config.Config) (*Archive, error) {
	if !cfg.StorageEnabled() {
		return nil, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Storage.Region),
	}
	if cfg.Storage.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("configure object storage: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &Archive{client: client, bucket: cfg.Storage.Bucket}, nil
}

func newArchiveWithClient(client objectPutter, bucket string) *Archive {
	return &Archive{client: client, bucket: bucket}
}

func (a *Archive) Enabled() bool {
	return a != nil && a.client != nil
}

// InvoiceKey maps an invoice number to its object key. Slashes in the
// number would otherwise create nested prefixes.
func InvoiceKey(invoiceNumber string) string {
	return invoicePrefix + strings.ReplaceAll(invoiceNumber, "/", "-") + ".pdf"
}

// PutInvoicePDF uploads data and returns the object key. Re-rendering the
// same invoice overwrites the previous copy.
func (a *Archive) PutInvoicePDF(ctx context.Context, invoiceNumber string, data []byte) (string, error) {
	if !a.Enabled() {
		return "", nil
	}

	key := InvoiceKey(invoiceNumber)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("application/pdf"),
		ContentLength: aws.Int64(int64(len(data))),
		Metadata:      map[string]string{"invoice-number": invoiceNumber},
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}
