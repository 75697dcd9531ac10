package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCreateInput() CreateReturnRequestInput {
	return CreateReturnRequestInput{
		Items: []ReturnItemInput{
			{SkuID: "55", Quantity: 1, ReturnReason: ReturnReason{Reason: "damaged"}},
		},
		CustomerProfileData: CustomerProfileInput{
			Name:  "Jamie Buyer",
			Email: "buyer@example.com",
		},
		PickupReturnData: PickupReturnData{
			Address:     "Calle Mayor 1",
			City:        "Madrid",
			Country:     "ESP",
			AddressType: AddressTypeCustomerAddress,
		},
		RefundPaymentData: RefundPaymentDataInput{
			RefundPaymentMethod: PaymentMethodGiftCard,
		},
		Locale: "en",
	}
}

func TestCreateReturnRequestInputValidate(t *testing.T) {
	assert.NoError(t, validCreateInput().Validate())

	empty := validCreateInput()
	empty.Items = nil
	assert.Error(t, empty.Validate())

	noLocale := validCreateInput()
	noLocale.Locale = ""
	assert.Error(t, noLocale.Validate())

	noName := validCreateInput()
	noName.CustomerProfileData.Name = ""
	assert.Error(t, noName.Validate())

	badEmail := validCreateInput()
	badEmail.CustomerProfileData.Email = "not-an-email"
	assert.Error(t, badEmail.Validate())

	badAddressType := validCreateInput()
	badAddressType.PickupReturnData.AddressType = "HOME"
	assert.Error(t, badAddressType.Validate())
}

func TestRefundPaymentDataInputValidate(t *testing.T) {
	giftCard := RefundPaymentDataInput{RefundPaymentMethod: PaymentMethodGiftCard}
	assert.NoError(t, giftCard.Validate())

	unknown := RefundPaymentDataInput{RefundPaymentMethod: "cash"}
	assert.Error(t, unknown.Validate())

	// Bank refunds need account data up front
	bankIncomplete := RefundPaymentDataInput{RefundPaymentMethod: PaymentMethodBank}
	assert.Error(t, bankIncomplete.Validate())

	bankComplete := RefundPaymentDataInput{
		RefundPaymentMethod: PaymentMethodBank,
		IBAN:                "ES9121000418450200051332",
		AccountHolderName:   "Jamie Buyer",
	}
	assert.NoError(t, bankComplete.Validate())
}

func TestUpdateStatusInputValidate(t *testing.T) {
	assert.NoError(t, UpdateStatusInput{Status: "processing"}.Validate())
	assert.Error(t, UpdateStatusInput{}.Validate())
}

func TestVerifyItemsInputValidate(t *testing.T) {
	assert.NoError(t, VerifyItemsInput{
		Items: []ItemVerification{{SkuID: "55", Approved: true}},
	}.Validate())
	assert.Error(t, VerifyItemsInput{}.Validate())
}
