package services

import (
	"context"
	"testing"

	"asf-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettingsCreatesDefaultsOnce(t *testing.T) {
	store := &memCompany{}
	svc := NewCompanyService(store)
	ctx := context.Background()

	c, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Your Company Name", c.CompanyName)
	assert.Equal(t, models.DefaultPaymentTerms, c.PaymentTerms)

	_, err = svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.saves)
}

func TestUpdateSettings(t *testing.T) {
	store := &memCompany{}
	svc := NewCompanyService(store)
	ctx := context.Background()

	c, err := svc.UpdateSettings(ctx, &models.CompanyRequest{
		CompanyName: " ASF Facility Services ",
		GSTIN:       "27abcde1234f1z5",
		BankDetails: models.BankDetails{BankName: "HDFC", IFSCCode: "hdfc0001234"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
	assert.Equal(t, "ASF Facility Services", c.CompanyName)
	assert.Equal(t, "27ABCDE1234F1Z5", c.GSTIN)
	assert.Equal(t, "HDFC0001234", c.BankDetails.IFSCCode)
	assert.Equal(t, models.DefaultPaymentTerms, c.PaymentTerms)

	again, err := svc.UpdateSettings(ctx, &models.CompanyRequest{CompanyName: "ASF", PaymentTerms: "NEFT only"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.ID)
	assert.Equal(t, "NEFT only", again.PaymentTerms)

	_, err = svc.UpdateSettings(ctx, &models.CompanyRequest{CompanyName: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
