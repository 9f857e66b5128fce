package bakery

import (
	"fmt"

	"github.com/goliatone/go-bakery/adapters/gocommand"
	bakerycommand "github.com/goliatone/go-bakery/command"
	"github.com/goliatone/go-bakery/core"
	bakeryquery "github.com/goliatone/go-bakery/query"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
)

type CommandQueryService interface {
	bakerycommand.MutatingService
	bakeryquery.CartReader
	bakeryquery.ProductReader
	bakeryquery.RecipeReader
	bakeryquery.InquiryReader
}

type Commands struct {
	AddCartItem           *bakerycommand.AddCartItemCommand
	UpdateCartItem        *bakerycommand.UpdateCartItemCommand
	RemoveCartItem        *bakerycommand.RemoveCartItemCommand
	SubmitInquiry         *bakerycommand.SubmitInquiryCommand
	CreateProduct         *bakerycommand.CreateProductCommand
	UpdateProduct         *bakerycommand.UpdateProductCommand
	DeleteProduct         *bakerycommand.DeleteProductCommand
	CreateRecipe          *bakerycommand.CreateRecipeCommand
	UpdateRecipe          *bakerycommand.UpdateRecipeCommand
	ToggleRecipePublished *bakerycommand.ToggleRecipePublishedCommand
	DeleteRecipe          *bakerycommand.DeleteRecipeCommand
}

type Queries struct {
	LoadCart      *bakeryquery.LoadCartQuery
	ListProducts  *bakeryquery.ListProductsQuery
	GetProduct    *bakeryquery.GetProductQuery
	ListRecipes   *bakeryquery.ListRecipesQuery
	GetRecipe     *bakeryquery.GetRecipeQuery
	ListInquiries *bakeryquery.ListInquiriesQuery
	GetInquiry    *bakeryquery.GetInquiryQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

func NewFacade(service CommandQueryService) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("bakery: command/query service is required")
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		AddCartItem:           bakerycommand.NewAddCartItemCommand(service),
		UpdateCartItem:        bakerycommand.NewUpdateCartItemCommand(service),
		RemoveCartItem:        bakerycommand.NewRemoveCartItemCommand(service),
		SubmitInquiry:         bakerycommand.NewSubmitInquiryCommand(service),
		CreateProduct:         bakerycommand.NewCreateProductCommand(service),
		UpdateProduct:         bakerycommand.NewUpdateProductCommand(service),
		DeleteProduct:         bakerycommand.NewDeleteProductCommand(service),
		CreateRecipe:          bakerycommand.NewCreateRecipeCommand(service),
		UpdateRecipe:          bakerycommand.NewUpdateRecipeCommand(service),
		ToggleRecipePublished: bakerycommand.NewToggleRecipePublishedCommand(service),
		DeleteRecipe:          bakerycommand.NewDeleteRecipeCommand(service),
	}
	facade.queries = Queries{
		LoadCart:      bakeryquery.NewLoadCartQuery(service),
		ListProducts:  bakeryquery.NewListProductsQuery(service),
		GetProduct:    bakeryquery.NewGetProductQuery(service),
		ListRecipes:   bakeryquery.NewListRecipesQuery(service),
		GetRecipe:     bakeryquery.NewGetRecipeQuery(service),
		ListInquiries: bakeryquery.NewListInquiriesQuery(service),
		GetInquiry:    bakeryquery.NewGetInquiryQuery(service),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}

// Register adds every command and query to the registry and subscribes them
// on the go-command dispatcher. On error the subscriptions made so far are
// released.
func (f *Facade) Register(adapter *gocommand.RegistryAdapter) (*gocommand.Subscriptions, error) {
	if f == nil {
		return nil, fmt.Errorf("bakery: facade is not configured")
	}
	subs := &gocommand.Subscriptions{}
	add := func(sub commanddispatcher.Subscription, err error) error {
		if err != nil {
			return err
		}
		subs.Add(sub)
		return nil
	}

	c, q := f.commands, f.queries
	steps := []func() error{
		func() error {
			return add(gocommand.RegisterAndSubscribe[bakerycommand.AddCartItemMessage](adapter, c.AddCartItem))
		},
		func() error {
			return add(gocommand.RegisterAndSubscribe[bakerycommand.UpdateCartItemMessage](adapter, c.UpdateCartItem))
		},
		func() error {
			return add(gocommand.RegisterAndSubscribe[bakerycommand.RemoveCartItemMessage](adapter, c.RemoveCartItem))
		},
		func() error {
			return add(gocommand.RegisterAndSubscribe[bakerycommand.SubmitInquiryMessage](adapter, c.SubmitInquiry))
		},
		func() error {
			return add(gocommand.RegisterAndSubscribe[bakerycommand.CreateProductMessage](adapter, c.CreateProduct))
		},
		func() error {
			return add(gocommand.RegisterAndSubscribe[bakerycommand.UpdateProductMessage](adapter, c.UpdateProduct))
		},
		func() error {
			return add(gocommand.RegisterAndSubscribe[bakerycommand.DeleteProductMessage](adapter, c.DeleteProduct))
		},
		func() error {
			return add(gocommand.RegisterAndSubscribe[bakerycommand.CreateRecipeMessage](adapter, c.CreateRecipe))
		},
		func() error {
			return add(gocommand.RegisterAndSubscribe[bakerycommand.UpdateRecipeMessage](adapter, c.UpdateRecipe))
		},
		func() error {
			return add(gocommand.RegisterAndSubscribe[bakerycommand.ToggleRecipePublishedMessage](adapter, c.ToggleRecipePublished))
		},
		func() error {
			return add(gocommand.RegisterAndSubscribe[bakerycommand.DeleteRecipeMessage](adapter, c.DeleteRecipe))
		},
		func() error {
			return add(gocommand.RegisterAndSubscribeQuery[bakeryquery.LoadCartMessage, core.CartView](adapter, q.LoadCart))
		},
		func() error {
			return add(gocommand.RegisterAndSubscribeQuery[bakeryquery.ListProductsMessage, []core.Product](adapter, q.ListProducts))
		},
		func() error {
			return add(gocommand.RegisterAndSubscribeQuery[bakeryquery.GetProductMessage, core.Product](adapter, q.GetProduct))
		},
		func() error {
			return add(gocommand.RegisterAndSubscribeQuery[bakeryquery.ListRecipesMessage, []core.Recipe](adapter, q.ListRecipes))
		},
		func() error {
			return add(gocommand.RegisterAndSubscribeQuery[bakeryquery.GetRecipeMessage, core.Recipe](adapter, q.GetRecipe))
		},
		func() error {
			return add(gocommand.RegisterAndSubscribeQuery[bakeryquery.ListInquiriesMessage, []core.Inquiry](adapter, q.ListInquiries))
		},
		func() error {
			return add(gocommand.RegisterAndSubscribeQuery[bakeryquery.GetInquiryMessage, core.Inquiry](adapter, q.GetInquiry))
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			subs.Unsubscribe()
			return nil, err
		}
	}
	return subs, nil
}

var _ CommandQueryService = (*core.Service)(nil)
