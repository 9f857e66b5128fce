package core

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-bakery/cart"
)

// SubmitInquiry turns the cart held by token into a stored inquiry and
// dispatches the shop notification. A notification failure is logged and
// reported on the receipt but never fails the checkout.
func (s *Service) SubmitInquiry(ctx context.Context, token string, form InquiryForm) (receipt InquiryReceipt, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		fields["inquiry_id"] = receipt.InquiryID
		fields["notification_status"] = receipt.Notification.Status
		s.observeOperation(ctx, startedAt, "submit_inquiry", err, fields)
	}()

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return InquiryReceipt{}, err
	}
	current := s.readCart(token, catalog)
	if current.IsEmpty() {
		return InquiryReceipt{}, badInput("cart is empty", ServiceErrorCartEmpty)
	}
	fields["items"] = current.Len()
	if form.Website != "" {
		return InquiryReceipt{}, badInput("spam detected", ServiceErrorSpamDetected)
	}

	form = trimForm(form)
	if err := form.Validate(); err != nil {
		return InquiryReceipt{}, validationError(err, "invalid inquiry")
	}
	if s.inquiryStore == nil {
		return InquiryReceipt{}, s.mapError(fmt.Errorf("inquiries: %w", ErrStoreUnavailable))
	}

	stored, err := s.inquiryStore.Create(ctx, buildInquiry(form, current, catalog))
	if err != nil {
		return InquiryReceipt{}, s.mapError(err)
	}

	return InquiryReceipt{
		InquiryID:    stored.ID,
		ClearCart:    true,
		Notification: s.dispatchNotification(ctx, stored),
	}, nil
}

func (s *Service) ListInquiries(ctx context.Context) ([]Inquiry, error) {
	if s == nil || s.inquiryStore == nil {
		return nil, s.mapError(fmt.Errorf("inquiries: %w", ErrStoreUnavailable))
	}
	inquiries, err := s.inquiryStore.List(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}
	return inquiries, nil
}

func (s *Service) GetInquiry(ctx context.Context, id string) (Inquiry, error) {
	if s == nil || s.inquiryStore == nil {
		return Inquiry{}, s.mapError(fmt.Errorf("inquiries: %w", ErrStoreUnavailable))
	}
	id = trimmed(id)
	if id == "" {
		return Inquiry{}, badInput("inquiry id is required", ServiceErrorBadInput)
	}
	inquiry, err := s.inquiryStore.Get(ctx, id)
	if err != nil {
		return Inquiry{}, s.mapError(err)
	}
	return inquiry, nil
}

func (s *Service) dispatchNotification(ctx context.Context, inquiry Inquiry) NotificationResult {
	fields := map[string]any{"inquiry_id": inquiry.ID}
	switch {
	case s.enqueuer != nil:
		if err := s.enqueuer.EnqueueInquiryNotification(ctx, inquiry.ID); err != nil {
			fields["error"] = err.Error()
			s.logWarn(ctx, "inquiry notification enqueue failed", fields)
			return NotificationResult{Status: NotificationStatusFailed, Reason: err.Error()}
		}
		return NotificationResult{Status: NotificationStatusQueued}
	case s.notifier != nil:
		result, err := s.notifier.NotifyInquiry(ctx, inquiry)
		if err != nil {
			fields["error"] = err.Error()
			s.logWarn(ctx, "inquiry notification failed", fields)
			return NotificationResult{Status: NotificationStatusFailed, Reason: err.Error()}
		}
		if result.Status == NotificationStatusSkipped {
			s.logWarn(ctx, "inquiry notification skipped", fields)
		}
		return result
	default:
		return NotificationResult{Status: NotificationStatusSkipped, Reason: "no notifier configured"}
	}
}

func trimForm(form InquiryForm) InquiryForm {
	return InquiryForm{
		Name:      trimmed(form.Name),
		Email:     trimmed(form.Email),
		Phone:     trimmed(form.Phone),
		Company:   trimmed(form.Company),
		Message:   trimmed(form.Message),
		Website:   trimmed(form.Website),
		SourceURL: trimmed(form.SourceURL),
	}
}

// buildInquiry snapshots name and price from the catalog. A sku missing from
// the catalog keeps the sku as its name and an empty price.
func buildInquiry(form InquiryForm, current cart.Cart, catalog Catalog) Inquiry {
	items := make([]InquiryItem, 0, len(current.Items))
	for _, item := range current.Items {
		snapshot := InquiryItem{SKU: item.SKU, Qty: item.Qty, NameSnapshot: item.SKU}
		if product, ok := catalog.Product(item.SKU); ok {
			if product.Name != "" {
				snapshot.NameSnapshot = product.Name
			}
			snapshot.PriceSnapshot = product.PriceDisplay
		}
		items = append(items, snapshot)
	}
	return Inquiry{
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		Company:   form.Company,
		Message:   form.Message,
		SourceURL: form.SourceURL,
		Status:    InquiryStatusNew,
		Items:     items,
	}
}
