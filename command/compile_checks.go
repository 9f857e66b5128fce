package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[AddCartItemMessage]           = (*AddCartItemCommand)(nil)
	_ gocmd.Commander[UpdateCartItemMessage]        = (*UpdateCartItemCommand)(nil)
	_ gocmd.Commander[RemoveCartItemMessage]        = (*RemoveCartItemCommand)(nil)
	_ gocmd.Commander[SubmitInquiryMessage]         = (*SubmitInquiryCommand)(nil)
	_ gocmd.Commander[CreateProductMessage]         = (*CreateProductCommand)(nil)
	_ gocmd.Commander[UpdateProductMessage]         = (*UpdateProductCommand)(nil)
	_ gocmd.Commander[DeleteProductMessage]         = (*DeleteProductCommand)(nil)
	_ gocmd.Commander[CreateRecipeMessage]          = (*CreateRecipeCommand)(nil)
	_ gocmd.Commander[UpdateRecipeMessage]          = (*UpdateRecipeCommand)(nil)
	_ gocmd.Commander[ToggleRecipePublishedMessage] = (*ToggleRecipePublishedCommand)(nil)
	_ gocmd.Commander[DeleteRecipeMessage]          = (*DeleteRecipeCommand)(nil)
	_ gocmd.Commander[NotifyInquiryMessage]         = (*NotifyInquiryCommand)(nil)
)
