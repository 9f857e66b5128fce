package command

import (
	"context"
	"strings"

	"github.com/goliatone/go-bakery/core"
	gocmd "github.com/goliatone/go-command"
)

type CartService interface {
	AddToCart(ctx context.Context, token string, sku string, qty int) (core.CartMutation, error)
	UpdateCartItem(ctx context.Context, token string, sku string, qty int) (core.CartMutation, error)
	RemoveCartItem(ctx context.Context, token string, sku string) (core.CartMutation, error)
}

type CheckoutService interface {
	SubmitInquiry(ctx context.Context, token string, form core.InquiryForm) (core.InquiryReceipt, error)
}

type CatalogAdminService interface {
	CreateProduct(ctx context.Context, in core.ProductInput) (core.Product, error)
	UpdateProduct(ctx context.Context, id string, in core.ProductInput) (core.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	CreateRecipe(ctx context.Context, in core.RecipeInput) (core.Recipe, error)
	UpdateRecipe(ctx context.Context, id string, in core.RecipeInput) (core.Recipe, error)
	ToggleRecipePublished(ctx context.Context, id string) (core.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
}

type InquiryReader interface {
	GetInquiry(ctx context.Context, id string) (core.Inquiry, error)
}

type MutatingService interface {
	CartService
	CheckoutService
	CatalogAdminService
}

type AddCartItemCommand struct {
	service CartService
}

func NewAddCartItemCommand(service CartService) *AddCartItemCommand {
	return &AddCartItemCommand{service: service}
}

func (c *AddCartItemCommand) Execute(ctx context.Context, msg AddCartItemMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: cart service is required")
	}
	out, err := c.service.AddToCart(ctx, msg.Token, msg.SKU, msg.Qty)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpdateCartItemCommand struct {
	service CartService
}

func NewUpdateCartItemCommand(service CartService) *UpdateCartItemCommand {
	return &UpdateCartItemCommand{service: service}
}

func (c *UpdateCartItemCommand) Execute(ctx context.Context, msg UpdateCartItemMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: cart service is required")
	}
	out, err := c.service.UpdateCartItem(ctx, msg.Token, msg.SKU, msg.Qty)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type RemoveCartItemCommand struct {
	service CartService
}

func NewRemoveCartItemCommand(service CartService) *RemoveCartItemCommand {
	return &RemoveCartItemCommand{service: service}
}

func (c *RemoveCartItemCommand) Execute(ctx context.Context, msg RemoveCartItemMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: cart service is required")
	}
	out, err := c.service.RemoveCartItem(ctx, msg.Token, msg.SKU)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type SubmitInquiryCommand struct {
	service CheckoutService
}

func NewSubmitInquiryCommand(service CheckoutService) *SubmitInquiryCommand {
	return &SubmitInquiryCommand{service: service}
}

func (c *SubmitInquiryCommand) Execute(ctx context.Context, msg SubmitInquiryMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: checkout service is required")
	}
	out, err := c.service.SubmitInquiry(ctx, msg.Token, msg.Form)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreateProductCommand struct {
	service CatalogAdminService
}

func NewCreateProductCommand(service CatalogAdminService) *CreateProductCommand {
	return &CreateProductCommand{service: service}
}

func (c *CreateProductCommand) Execute(ctx context.Context, msg CreateProductMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: catalog service is required")
	}
	out, err := c.service.CreateProduct(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpdateProductCommand struct {
	service CatalogAdminService
}

func NewUpdateProductCommand(service CatalogAdminService) *UpdateProductCommand {
	return &UpdateProductCommand{service: service}
}

func (c *UpdateProductCommand) Execute(ctx context.Context, msg UpdateProductMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: catalog service is required")
	}
	out, err := c.service.UpdateProduct(ctx, msg.ID, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type DeleteProductCommand struct {
	service CatalogAdminService
}

func NewDeleteProductCommand(service CatalogAdminService) *DeleteProductCommand {
	return &DeleteProductCommand{service: service}
}

func (c *DeleteProductCommand) Execute(ctx context.Context, msg DeleteProductMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: catalog service is required")
	}
	return c.service.DeleteProduct(ctx, msg.ID)
}

type CreateRecipeCommand struct {
	service CatalogAdminService
}

func NewCreateRecipeCommand(service CatalogAdminService) *CreateRecipeCommand {
	return &CreateRecipeCommand{service: service}
}

func (c *CreateRecipeCommand) Execute(ctx context.Context, msg CreateRecipeMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: recipe service is required")
	}
	out, err := c.service.CreateRecipe(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpdateRecipeCommand struct {
	service CatalogAdminService
}

func NewUpdateRecipeCommand(service CatalogAdminService) *UpdateRecipeCommand {
	return &UpdateRecipeCommand{service: service}
}

func (c *UpdateRecipeCommand) Execute(ctx context.Context, msg UpdateRecipeMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: recipe service is required")
	}
	out, err := c.service.UpdateRecipe(ctx, msg.ID, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ToggleRecipePublishedCommand struct {
	service CatalogAdminService
}

func NewToggleRecipePublishedCommand(service CatalogAdminService) *ToggleRecipePublishedCommand {
	return &ToggleRecipePublishedCommand{service: service}
}

func (c *ToggleRecipePublishedCommand) Execute(ctx context.Context, msg ToggleRecipePublishedMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: recipe service is required")
	}
	out, err := c.service.ToggleRecipePublished(ctx, msg.ID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type DeleteRecipeCommand struct {
	service CatalogAdminService
}

func NewDeleteRecipeCommand(service CatalogAdminService) *DeleteRecipeCommand {
	return &DeleteRecipeCommand{service: service}
}

func (c *DeleteRecipeCommand) Execute(ctx context.Context, msg DeleteRecipeMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: recipe service is required")
	}
	return c.service.DeleteRecipe(ctx, msg.ID)
}

// NotifyInquiryCommand sends the email for one stored inquiry. It runs on
// the notification queue, so errors are returned for the worker to retry.
type NotifyInquiryCommand struct {
	inquiries InquiryReader
	notifier  core.Notifier
}

func NewNotifyInquiryCommand(inquiries InquiryReader, notifier core.Notifier) *NotifyInquiryCommand {
	return &NotifyInquiryCommand{inquiries: inquiries, notifier: notifier}
}

func (c *NotifyInquiryCommand) Execute(ctx context.Context, msg NotifyInquiryMessage) error {
	if c == nil || c.inquiries == nil || c.notifier == nil {
		return commandDependencyError("command: inquiry reader and notifier are required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	inquiry, err := c.inquiries.GetInquiry(ctx, strings.TrimSpace(msg.InquiryID))
	if err != nil {
		return err
	}
	out, err := c.notifier.NotifyInquiry(ctx, inquiry)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
