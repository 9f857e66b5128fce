package command

import (
	"context"
	"testing"

	"github.com/goliatone/go-bakery/core"
	goerrors "github.com/goliatone/go-errors"
)

func TestAddCartItemMessage_ValidateReturnsRichError(t *testing.T) {
	err := (AddCartItemMessage{SKU: "  "}).Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryValidation {
		t.Fatalf("expected validation category, got %q", rich.Category)
	}
	if rich.TextCode != core.ServiceErrorBadInput {
		t.Fatalf("expected %q text code, got %q", core.ServiceErrorBadInput, rich.TextCode)
	}
}

func TestSubmitInquiryMessage_ValidateCarriesFieldErrors(t *testing.T) {
	err := (SubmitInquiryMessage{Form: core.InquiryForm{Name: "Ada", Email: "not-an-email"}}).Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Code != 400 || rich.TextCode != core.ServiceErrorBadInput {
		t.Fatalf("expected 400 %s, got %d %s", core.ServiceErrorBadInput, rich.Code, rich.TextCode)
	}
	found := false
	for _, fieldErr := range rich.ValidationErrors {
		if fieldErr.Field == "email" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected email field error, got %#v", rich.ValidationErrors)
	}
}

func TestProductMessages_Validate(t *testing.T) {
	if err := (CreateProductMessage{Input: core.ProductInput{SKU: "a", Name: "A"}}).Validate(); err != nil {
		t.Fatalf("expected valid create message, got %v", err)
	}
	if err := (CreateProductMessage{Input: core.ProductInput{Name: "A"}}).Validate(); err == nil {
		t.Fatalf("expected missing sku to fail")
	}
	if err := (UpdateProductMessage{Input: core.ProductInput{SKU: "a", Name: "A"}}).Validate(); err == nil {
		t.Fatalf("expected missing id to fail")
	}
	if err := (ToggleRecipePublishedMessage{}).Validate(); err == nil {
		t.Fatalf("expected missing recipe id to fail")
	}
}

func TestAddCartItemCommand_NilServiceReturnsRichError(t *testing.T) {
	var cmd *AddCartItemCommand
	err := cmd.Execute(context.Background(), AddCartItemMessage{})
	if err == nil {
		t.Fatalf("expected command dependency error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
}
