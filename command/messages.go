package command

import (
	"strings"

	"github.com/goliatone/go-bakery/core"
)

const (
	TypeAddCartItem           = "bakery.command.cart.add"
	TypeUpdateCartItem        = "bakery.command.cart.update"
	TypeRemoveCartItem        = "bakery.command.cart.remove"
	TypeSubmitInquiry         = "bakery.command.inquiry.submit"
	TypeCreateProduct         = "bakery.command.product.create"
	TypeUpdateProduct         = "bakery.command.product.update"
	TypeDeleteProduct         = "bakery.command.product.delete"
	TypeCreateRecipe          = "bakery.command.recipe.create"
	TypeUpdateRecipe          = "bakery.command.recipe.update"
	TypeToggleRecipePublished = "bakery.command.recipe.toggle_published"
	TypeDeleteRecipe          = "bakery.command.recipe.delete"
	TypeNotifyInquiry         = "bakery.inquiry.notify"
)

// AddCartItemMessage carries the current cart token; the result holds the
// re-signed token.
type AddCartItemMessage struct {
	Token string
	SKU   string
	Qty   int
}

func (AddCartItemMessage) Type() string { return TypeAddCartItem }

func (m AddCartItemMessage) Validate() error {
	return requireField("sku", m.SKU)
}

type UpdateCartItemMessage struct {
	Token string
	SKU   string
	Qty   int
}

func (UpdateCartItemMessage) Type() string { return TypeUpdateCartItem }

func (m UpdateCartItemMessage) Validate() error {
	return requireField("sku", m.SKU)
}

type RemoveCartItemMessage struct {
	Token string
	SKU   string
}

func (RemoveCartItemMessage) Type() string { return TypeRemoveCartItem }

func (m RemoveCartItemMessage) Validate() error {
	return requireField("sku", m.SKU)
}

type SubmitInquiryMessage struct {
	Token string
	Form  core.InquiryForm
}

func (SubmitInquiryMessage) Type() string { return TypeSubmitInquiry }

func (m SubmitInquiryMessage) Validate() error {
	if err := m.Form.Validate(); err != nil {
		return commandWrapValidation(err, "command: inquiry form is invalid")
	}
	return nil
}

type CreateProductMessage struct {
	Input core.ProductInput
}

func (CreateProductMessage) Type() string { return TypeCreateProduct }

func (m CreateProductMessage) Validate() error {
	if err := m.Input.Validate(); err != nil {
		return commandWrapValidation(err, "command: product input is invalid")
	}
	return nil
}

type UpdateProductMessage struct {
	ID    string
	Input core.ProductInput
}

func (UpdateProductMessage) Type() string { return TypeUpdateProduct }

func (m UpdateProductMessage) Validate() error {
	if err := requireField("id", m.ID); err != nil {
		return err
	}
	if err := m.Input.Validate(); err != nil {
		return commandWrapValidation(err, "command: product input is invalid")
	}
	return nil
}

type DeleteProductMessage struct {
	ID string
}

func (DeleteProductMessage) Type() string { return TypeDeleteProduct }

func (m DeleteProductMessage) Validate() error {
	return requireField("id", m.ID)
}

type CreateRecipeMessage struct {
	Input core.RecipeInput
}

func (CreateRecipeMessage) Type() string { return TypeCreateRecipe }

func (m CreateRecipeMessage) Validate() error {
	if err := m.Input.Validate(); err != nil {
		return commandWrapValidation(err, "command: recipe input is invalid")
	}
	return nil
}

type UpdateRecipeMessage struct {
	ID    string
	Input core.RecipeInput
}

func (UpdateRecipeMessage) Type() string { return TypeUpdateRecipe }

func (m UpdateRecipeMessage) Validate() error {
	if err := requireField("id", m.ID); err != nil {
		return err
	}
	if err := m.Input.Validate(); err != nil {
		return commandWrapValidation(err, "command: recipe input is invalid")
	}
	return nil
}

type ToggleRecipePublishedMessage struct {
	ID string
}

func (ToggleRecipePublishedMessage) Type() string { return TypeToggleRecipePublished }

func (m ToggleRecipePublishedMessage) Validate() error {
	return requireField("id", m.ID)
}

type DeleteRecipeMessage struct {
	ID string
}

func (DeleteRecipeMessage) Type() string { return TypeDeleteRecipe }

func (m DeleteRecipeMessage) Validate() error {
	return requireField("id", m.ID)
}

// NotifyInquiryMessage is the queued payload for an inquiry notification.
// Only the id travels; the worker reloads the inquiry before sending.
type NotifyInquiryMessage struct {
	InquiryID string `json:"inquiry_id"`
}

func (NotifyInquiryMessage) Type() string { return TypeNotifyInquiry }

func (m NotifyInquiryMessage) Validate() error {
	return requireField("inquiry_id", m.InquiryID)
}

func requireField(field string, value string) error {
	if strings.TrimSpace(value) == "" {
		return commandValidationError(field, field+" is required")
	}
	return nil
}
