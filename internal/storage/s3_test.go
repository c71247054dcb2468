package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"asf-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (r *recordingPutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	r.input = in
	r.body, _ = io.ReadAll(in.Body)
	if r.err != nil {
		return nil, r.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestInvoiceKey(t *testing.T) {
	assert.Equal(t, "invoices/ASF-P-25-26-013.pdf", InvoiceKey("ASF/P/25-26/013"))
	assert.Equal(t, "invoices/INV7.pdf", InvoiceKey("INV7"))
}

func TestPutInvoicePDF(t *testing.T) {
	p := &recordingPutter{}
	a := newArchiveWithClient(p, "asf-invoices")

	key, err := a.PutInvoicePDF(context.Background(), "ASF/P/25-26/013", []byte("%PDF-1.3"))
	require.NoError(t, err)

	assert.Equal(t, "invoices/ASF-P-25-26-013.pdf", key)
	assert.Equal(t, "asf-invoices", aws.ToString(p.input.Bucket))
	assert.Equal(t, "application/pdf", aws.ToString(p.input.ContentType))
	assert.Equal(t, "ASF/P/25-26/013", p.input.Metadata["invoice-number"])
	assert.Equal(t, "%PDF-1.3", string(p.body))
}

func TestPutInvoicePDFError(t *testing.T) {
	a := newArchiveWithClient(&recordingPutter{err: errors.New("access denied")}, "b")

	_, err := a.PutInvoicePDF(context.Background(), "X/1", []byte("x"))
	assert.ErrorContains(t, err, "access denied")
}

func TestDisabledArchive(t *testing.T) {
	a, err := NewArchive(context.Background(), &config.Config{})
	require.NoError(t, err)
	assert.Nil(t, a)
	assert.False(t, a.Enabled())

	key, err := a.PutInvoicePDF(context.Background(), "X/1", []byte("x"))
	assert.NoError(t, err)
	assert.Empty(t, key)
}
