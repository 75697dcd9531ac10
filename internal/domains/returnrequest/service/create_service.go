package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ITGlobers/return-app-pmi-poc/internal/clients/catalog"
	"github.com/ITGlobers/return-app-pmi-poc/internal/clients/mail"
	"github.com/ITGlobers/return-app-pmi-poc/internal/clients/oms"
	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/orderhistory"
	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/returnrequest/model"
	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/returnrequest/repository"
	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/settings"
)

// =====================================================
// RETURN REQUEST SERVICE IMPLEMENTATION
// =====================================================

type returnRequestService struct {
	repo      repository.Repository
	settings  settings.Service
	history   orderhistory.Aggregator
	orders    oms.OrderClient
	catalog   catalog.CatalogClient
	mail      mail.MailClient
	sequences *SequenceGenerator

	now func() time.Time
}

func NewReturnRequestService(
	repo repository.Repository,
	settingsService settings.Service,
	history orderhistory.Aggregator,
	orders oms.OrderClient,
	catalogClient catalog.CatalogClient,
	mailClient mail.MailClient,
	sequences *SequenceGenerator,
) ReturnRequestService {
	return &returnRequestService{
		repo:      repo,
		settings:  settingsService,
		history:   history,
		orders:    orders,
		catalog:   catalogClient,
		mail:      mailClient,
		sequences: sequences,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *returnRequestService) GetReturnRequest(ctx context.Context, id string) (*model.ReturnRequest, error) {
	return s.repo.GetByID(ctx, id)
}

// =====================================================
// CREATE: INDEPENDENT RETURN
// =====================================================

// CreateIndependentReturnRequest validates the request against the
// customer's aggregate purchase history instead of a single order.
//
// Flow: shape validation → settings → policy validators (fail fast) →
// ownership via purchase history → catalog enrichment → refundable totals →
// sequence number → durable create → best-effort confirmation mail.
func (s *returnRequestService) CreateIndependentReturnRequest(
	ctx context.Context,
	caller Caller,
	input model.CreateReturnRequestInput,
) (*model.ReturnRequestCreated, error) {
	// Step 1: shape validation
	if err := input.Validate(); err != nil {
		return nil, model.NewInputError(model.ErrCodeEmptyItems, err.Error())
	}

	// Independent returns identify lines by SKU only
	for i, item := range input.Items {
		if item.SkuID == "" {
			return nil, model.NewItemInputError(
				model.ErrCodeMissingSkuID,
				fmt.Sprintf("Item index %d must have a skuId for independent returns", i),
				i,
			)
		}
	}

	// Step 2: tenant settings
	cfg, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	// Step 3: policy validators, in creation order, before any durable write
	if err := validateReturnReasons(input.Items, nil, cfg.CustomReturnReasons, s.now()); err != nil {
		return nil, err
	}

	if input.RefundPaymentData.RefundPaymentMethod == model.PaymentMethodSameAsPurchase {
		return nil, model.NewInputError(
			model.ErrCodeInvalidPaymentMethod,
			`Payment method "sameAsPurchase" is not allowed for independent returns`,
		)
	}
	if err := validatePaymentMethod(input.RefundPaymentData, cfg.PaymentOptions); err != nil {
		return nil, err
	}
	if err := validatePickupAddress(input.PickupReturnData, cfg.Options.EnablePickupPoints); err != nil {
		return nil, err
	}
	if err := validateItemConditions(input.Items, cfg.Options.EnableSelectItemCondition); err != nil {
		return nil, err
	}

	// Step 4: ownership check against the whole purchase history
	customerEmail := s.customerEmail(caller, input)
	if customerEmail == "" {
		return nil, model.NewInputError(model.ErrCodeOrderOwnership, "Unable to determine customer email")
	}

	history, err := s.history.CollectPurchaseHistory(ctx, customerEmail, orderhistory.AllTime())
	if err != nil {
		return nil, model.NewUpstreamError("Unable to verify purchase history, try again later", err)
	}

	for _, item := range input.Items {
		if !history.Has(item.SkuID) {
			return nil, model.NewInputError(
				model.ErrCodeSkuNotPurchased,
				fmt.Sprintf("SKU %s was not found in user's purchase history", item.SkuID),
			)
		}
	}

	// Step 5: catalog enrichment. Any missing SKU here is fatal: a return
	// line cannot exist without product identity.
	items, err := s.buildIndependentItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	// Step 6: refundable totals (no order-level totals to draw from)
	totals := computeRefundableTotals(items, nil, cfg.Options.EnableProportionalShippingValue)
	refundableAmount := sumTotals(totals)

	// Step 7: sequence number
	sequenceNumber, err := s.sequences.Next(ctx, NamespaceIndependent)
	if err != nil {
		return nil, model.NewUpstreamError("Unable to allocate a sequence number, try again later", err)
	}

	currencyCode := history.CurrencyCode
	if currencyCode == "" {
		currencyCode = "USD"
	}

	request := s.assembleRequest(caller, input, assembleParams{
		orderID:          nil,
		items:            items,
		totals:           totals,
		refundableAmount: refundableAmount,
		sequenceNumber:   sequenceNumber,
		currencyCode:     currencyCode,
		customerEmail:    customerEmail,
	})

	// Step 8: the single durable side effect of the flow
	documentID, err := s.repo.Create(ctx, request)
	if err != nil {
		return nil, model.NewUpstreamError("Unable to store the return request, try again later", err)
	}

	// Step 9: best-effort confirmation, isolated from the success contract
	s.sendConfirmationMail(ctx, request)

	return &model.ReturnRequestCreated{ReturnRequestID: documentID}, nil
}

// =====================================================
// CREATE: ORDER-BOUND RETURN
// =====================================================

func (s *returnRequestService) CreateOrderBoundReturnRequest(
	ctx context.Context,
	caller Caller,
	orderID string,
	input model.CreateReturnRequestInput,
) (*model.ReturnRequestCreated, error) {
	// Step 1: shape validation
	if err := input.Validate(); err != nil {
		return nil, model.NewInputError(model.ErrCodeEmptyItems, err.Error())
	}

	for i, item := range input.Items {
		if item.OrderItemIndex == nil {
			return nil, model.NewItemInputError(
				model.ErrCodeItemNotInOrder,
				fmt.Sprintf("Item index %d must have an orderItemIndex for order-bound returns", i),
				i,
			)
		}
	}

	// Step 2: tenant settings
	cfg, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	// Step 3: the order is the source of truth for ownership and dates
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, model.NewUpstreamError("Unable to fetch the order, try again later", err)
	}

	customerEmail := s.customerEmail(caller, input)
	if order.ClientProfileData == nil ||
		!strings.EqualFold(order.ClientProfileData.Email, customerEmail) {
		return nil, model.NewPolicyError(
			model.ErrCodeOrderOwnership,
			fmt.Sprintf("Order %s does not belong to the requesting customer", orderID),
		)
	}

	// Step 4: policy validators, now with the order creation date
	orderDate := order.CreationDate
	if err := validateReturnReasons(input.Items, &orderDate, cfg.CustomReturnReasons, s.now()); err != nil {
		return nil, err
	}
	if err := validatePaymentMethod(input.RefundPaymentData, cfg.PaymentOptions); err != nil {
		return nil, err
	}
	if err := validatePickupAddress(input.PickupReturnData, cfg.Options.EnablePickupPoints); err != nil {
		return nil, err
	}
	if err := validateItemConditions(input.Items, cfg.Options.EnableSelectItemCondition); err != nil {
		return nil, err
	}

	// Step 5: build lines from the purchased order items
	items, err := s.buildOrderBoundItems(ctx, input.Items, order)
	if err != nil {
		return nil, err
	}

	// Step 6: refundable totals with order-level shipping
	totals := computeRefundableTotals(items, orderLevelTotals(order), cfg.Options.EnableProportionalShippingValue)
	refundableAmount := sumTotals(totals)

	// Step 7: sequence number
	sequenceNumber, err := s.sequences.Next(ctx, NamespaceOrderBound)
	if err != nil {
		return nil, model.NewUpstreamError("Unable to allocate a sequence number, try again later", err)
	}

	currencyCode := "USD"
	if order.StorePreferencesData != nil && order.StorePreferencesData.CurrencyCode != "" {
		currencyCode = order.StorePreferencesData.CurrencyCode
	}

	request := s.assembleRequest(caller, input, assembleParams{
		orderID:          &order.OrderID,
		items:            items,
		totals:           totals,
		refundableAmount: refundableAmount,
		sequenceNumber:   sequenceNumber,
		currencyCode:     currencyCode,
		customerEmail:    customerEmail,
	})

	// Step 8: durable create
	documentID, err := s.repo.Create(ctx, request)
	if err != nil {
		return nil, model.NewUpstreamError("Unable to store the return request, try again later", err)
	}

	// Step 9: best-effort confirmation
	s.sendConfirmationMail(ctx, request)

	return &model.ReturnRequestCreated{ReturnRequestID: documentID}, nil
}

// =====================================================
// ITEM BUILDERS
// =====================================================

func (s *returnRequestService) buildIndependentItems(
	ctx context.Context,
	inputs []model.ReturnItemInput,
) ([]model.ReturnItem, error) {
	items := make([]model.ReturnItem, 0, len(inputs))

	for _, input := range inputs {
		line, err := s.resolveLine(ctx, input.SkuID)
		if err != nil {
			return nil, err
		}

		sellingPrice := line.PriceMinor
		if input.SellingPrice != nil {
			sellingPrice = *input.SellingPrice
		}

		items = append(items, model.ReturnItem{
			SkuID:          input.SkuID,
			OrderItemIndex: nil,
			Quantity:       input.Quantity,
			Name:           line.ProductName,
			LocalizedName:  line.LocalizedName,
			SellingPrice:   sellingPrice,
			Tax:            0, // no tax reference without an order
			ImageURL:       line.ImageURL,
			UnitMultiplier: 1,
			SellerID:       line.SellerID,
			SellerName:     line.SellerName,
			ProductID:      line.ProductID,
			RefID:          line.RefID,
			ReturnReason:   input.ReturnReason,
			Condition:      conditionOrUnspecified(input.Condition),
		})
	}

	return items, nil
}

func (s *returnRequestService) buildOrderBoundItems(
	ctx context.Context,
	inputs []model.ReturnItemInput,
	order *oms.OrderDetail,
) ([]model.ReturnItem, error) {
	items := make([]model.ReturnItem, 0, len(inputs))

	for i, input := range inputs {
		index := *input.OrderItemIndex
		if index < 0 || index >= len(order.Items) {
			return nil, model.NewItemInputError(
				model.ErrCodeItemNotInOrder,
				fmt.Sprintf("Item index %d references order item %d which does not exist", i, index),
				i,
			)
		}

		orderItem := order.Items[index]
		if input.SkuID != "" && input.SkuID != orderItem.ID {
			return nil, model.NewItemInputError(
				model.ErrCodeItemNotInOrder,
				fmt.Sprintf("Item index %d skuId %s does not match order item %d", i, input.SkuID, index),
				i,
			)
		}
		if input.Quantity > orderItem.Quantity {
			return nil, model.NewItemInputError(
				model.ErrCodeItemNotInOrder,
				fmt.Sprintf("Item index %d requests quantity %d but only %d was purchased", i, input.Quantity, orderItem.Quantity),
				i,
			)
		}

		line, err := s.resolveLine(ctx, orderItem.ID)
		if err != nil {
			return nil, err
		}

		itemIndex := index
		items = append(items, model.ReturnItem{
			SkuID:          orderItem.ID,
			OrderItemIndex: &itemIndex,
			Quantity:       input.Quantity,
			Name:           line.ProductName,
			LocalizedName:  line.LocalizedName,
			SellingPrice:   orderItem.SellingPrice,
			Tax:            orderItem.Tax,
			ImageURL:       line.ImageURL,
			UnitMultiplier: 1,
			SellerID:       line.SellerID,
			SellerName:     line.SellerName,
			ProductID:      line.ProductID,
			RefID:          line.RefID,
			ReturnReason:   input.ReturnReason,
			Condition:      conditionOrUnspecified(input.Condition),
		})
	}

	return items, nil
}

// resolveLine is the create-flow catalog lookup: nil is fatal here, unlike
// the listing flow which skips unresolvable SKUs.
func (s *returnRequestService) resolveLine(ctx context.Context, skuID string) (*catalog.ProductLine, error) {
	line, err := s.catalog.ResolveSku(ctx, skuID)
	if err != nil {
		return nil, model.NewUpstreamError(
			fmt.Sprintf("Unable to resolve SKU %s, try again later", skuID), err)
	}
	if line == nil {
		return nil, &model.ReturnError{
			Kind:      model.KindUpstream,
			Code:      model.ErrCodeSkuNotInCatalog,
			Message:   fmt.Sprintf("SKU %s not found in catalog", skuID),
			ItemIndex: -1,
			Err:       model.ErrSkuNotInCatalog,
		}
	}
	return line, nil
}

// =====================================================
// ASSEMBLY
// =====================================================

type assembleParams struct {
	orderID          *string
	items            []model.ReturnItem
	totals           []model.RefundableAmountTotal
	refundableAmount int64
	sequenceNumber   string
	currencyCode     string
	customerEmail    string
}

func (s *returnRequestService) assembleRequest(
	caller Caller,
	input model.CreateReturnRequestInput,
	p assembleParams,
) *model.ReturnRequest {
	requestDate := s.now()

	var comments []model.Comment
	if input.UserComment != "" {
		comments = append(comments, model.Comment{
			Comment:            input.UserComment,
			CreatedAt:          requestDate,
			SubmittedBy:        caller.ID,
			VisibleForCustomer: true,
			Role:               caller.Role,
		})
	}

	refundPayment := model.RefundPaymentData{
		RefundPaymentMethod:              input.RefundPaymentData.RefundPaymentMethod,
		AutomaticallyRefundPaymentMethod: false,
	}
	// Bank account data is kept only for bank refunds
	if input.RefundPaymentData.RefundPaymentMethod == model.PaymentMethodBank {
		refundPayment.IBAN = input.RefundPaymentData.IBAN
		refundPayment.AccountHolderName = input.RefundPaymentData.AccountHolderName
	}

	return &model.ReturnRequest{
		SequenceNumber:    p.sequenceNumber,
		OrderID:           p.orderID,
		IndependentReturn: p.orderID == nil,
		Status:            model.StatusNew,
		Items:             p.items,
		CustomerProfileData: model.CustomerProfileData{
			UserID:      caller.ID,
			Name:        input.CustomerProfileData.Name,
			Email:       p.customerEmail,
			PhoneNumber: input.CustomerProfileData.PhoneNumber,
		},
		PickupReturnData:       input.PickupReturnData,
		RefundPaymentData:      refundPayment,
		RefundableAmountTotals: p.totals,
		RefundableAmount:       p.refundableAmount,
		CultureInfoData: model.CultureInfoData{
			CurrencyCode: p.currencyCode,
			Locale:       input.Locale,
		},
		DateSubmitted: requestDate,
		RefundStatusData: []model.RefundStatusEntry{
			{
				Status:      model.StatusNew,
				SubmittedBy: caller.ID,
				CreatedAt:   requestDate,
				Comments:    comments,
			},
		},
		RefundData: nil,
	}
}

// =====================================================
// HELPERS
// =====================================================

func (s *returnRequestService) loadSettings(ctx context.Context) (*settings.ReturnAppSettings, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrNotConfigured) {
			return nil, model.NewConfigurationError("Return app settings is not configured", err)
		}
		return nil, model.NewUpstreamError("Unable to load return settings, try again later", err)
	}
	return cfg, nil
}

// customerEmail prefers the email in the request body, falling back to the
// authenticated caller's email.
func (s *returnRequestService) customerEmail(caller Caller, input model.CreateReturnRequestInput) string {
	if input.CustomerProfileData.Email != "" {
		return input.CustomerProfileData.Email
	}
	return caller.Email
}

func conditionOrUnspecified(condition string) string {
	if condition == "" {
		return model.ConditionUnspecified
	}
	return condition
}

func orderLevelTotals(order *oms.OrderDetail) *OrderLevelTotals {
	totals := &OrderLevelTotals{}
	for _, t := range order.Totals {
		switch strings.ToLower(t.ID) {
		case "items":
			totals.Items = t.Value
		case "shipping":
			totals.Shipping = t.Value
		}
	}
	return totals
}
