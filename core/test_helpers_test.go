package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"
)

const testSecret = "test-cookie-secret"

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Cart.Secret = testSecret
	return cfg
}

type memoryProductStore struct {
	mu       sync.Mutex
	next     int
	items    []Product
	listErr  error
	listHits int
}

func newMemoryProductStore(products ...Product) *memoryProductStore {
	store := &memoryProductStore{}
	for _, product := range products {
		store.next++
		if product.ID == "" {
			product.ID = fmt.Sprintf("prod_%d", store.next)
		}
		store.items = append(store.items, product)
	}
	return store
}

func (s *memoryProductStore) List(context.Context) ([]Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listHits++
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := append([]Product(nil), s.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memoryProductStore) find(match func(Product) bool) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, product := range s.items {
		if match(product) {
			return product, nil
		}
	}
	return Product{}, ErrNotFound
}

func (s *memoryProductStore) GetByID(_ context.Context, id string) (Product, error) {
	return s.find(func(p Product) bool { return p.ID == id })
}

func (s *memoryProductStore) GetBySlug(_ context.Context, slug string) (Product, error) {
	return s.find(func(p Product) bool { return p.Slug == slug })
}

func (s *memoryProductStore) GetBySKU(_ context.Context, sku string) (Product, error) {
	return s.find(func(p Product) bool { return p.SKU == sku })
}

func (s *memoryProductStore) conflict(candidate Product) error {
	for _, existing := range s.items {
		if existing.ID == candidate.ID {
			continue
		}
		if existing.SKU == candidate.SKU {
			return fmt.Errorf("product sku %q: %w", candidate.SKU, ErrConflict)
		}
		if existing.Slug == candidate.Slug {
			return fmt.Errorf("product slug %q: %w", candidate.Slug, ErrConflict)
		}
	}
	return nil
}

func (s *memoryProductStore) Create(_ context.Context, product Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conflict(product); err != nil {
		return Product{}, err
	}
	s.next++
	product.ID = fmt.Sprintf("prod_%d", s.next)
	product.CreatedAt = time.Now().UTC()
	product.UpdatedAt = product.CreatedAt
	s.items = append(s.items, product)
	return product, nil
}

func (s *memoryProductStore) Update(_ context.Context, product Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for index, existing := range s.items {
		if existing.ID != product.ID {
			continue
		}
		if err := s.conflict(product); err != nil {
			return Product{}, err
		}
		product.CreatedAt = existing.CreatedAt
		product.UpdatedAt = time.Now().UTC()
		s.items[index] = product
		return product, nil
	}
	return Product{}, ErrNotFound
}

func (s *memoryProductStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for index, existing := range s.items {
		if existing.ID == id {
			s.items = append(s.items[:index], s.items[index+1:]...)
			return nil
		}
	}
	return nil
}

type memoryRecipeStore struct {
	mu    sync.Mutex
	next  int
	items []Recipe
}

func (s *memoryRecipeStore) List(_ context.Context, includeDrafts bool) ([]Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Recipe{}
	for _, recipe := range s.items {
		if includeDrafts || recipe.Published {
			out = append(out, recipe)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memoryRecipeStore) GetByID(_ context.Context, id string) (Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, recipe := range s.items {
		if recipe.ID == id {
			return recipe, nil
		}
	}
	return Recipe{}, ErrNotFound
}

func (s *memoryRecipeStore) GetBySlug(_ context.Context, slug string, includeDrafts bool) (Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, recipe := range s.items {
		if recipe.Slug == slug && (includeDrafts || recipe.Published) {
			return recipe, nil
		}
	}
	return Recipe{}, ErrNotFound
}

func (s *memoryRecipeStore) Create(_ context.Context, recipe Recipe) (Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing.Slug == recipe.Slug {
			return Recipe{}, fmt.Errorf("recipe slug %q: %w", recipe.Slug, ErrConflict)
		}
	}
	s.next++
	recipe.ID = fmt.Sprintf("rec_%d", s.next)
	recipe.CreatedAt = time.Now().UTC().Add(time.Duration(s.next) * time.Second)
	recipe.UpdatedAt = recipe.CreatedAt
	s.items = append(s.items, recipe)
	return recipe, nil
}

func (s *memoryRecipeStore) Update(_ context.Context, recipe Recipe) (Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for index, existing := range s.items {
		if existing.ID == recipe.ID {
			recipe.CreatedAt = existing.CreatedAt
			recipe.UpdatedAt = time.Now().UTC()
			s.items[index] = recipe
			return recipe, nil
		}
	}
	return Recipe{}, ErrNotFound
}

func (s *memoryRecipeStore) TogglePublished(_ context.Context, id string) (Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for index, existing := range s.items {
		if existing.ID == id {
			existing.Published = !existing.Published
			s.items[index] = existing
			return existing, nil
		}
	}
	return Recipe{}, ErrNotFound
}

func (s *memoryRecipeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for index, existing := range s.items {
		if existing.ID == id {
			s.items = append(s.items[:index], s.items[index+1:]...)
			break
		}
	}
	return nil
}

type memoryInquiryStore struct {
	mu        sync.Mutex
	next      int
	items     []Inquiry
	createErr error
}

func (s *memoryInquiryStore) Create(_ context.Context, inquiry Inquiry) (Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return Inquiry{}, s.createErr
	}
	s.next++
	inquiry.ID = fmt.Sprintf("inq_%d", s.next)
	inquiry.CreatedAt = time.Now().UTC()
	items := make([]InquiryItem, len(inquiry.Items))
	for index, item := range inquiry.Items {
		item.ID = fmt.Sprintf("%s_item_%d", inquiry.ID, index+1)
		item.InquiryID = inquiry.ID
		items[index] = item
	}
	inquiry.Items = items
	s.items = append(s.items, inquiry)
	return inquiry, nil
}

func (s *memoryInquiryStore) Get(_ context.Context, id string) (Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inquiry := range s.items {
		if inquiry.ID == id {
			return inquiry, nil
		}
	}
	return Inquiry{}, ErrNotFound
}

func (s *memoryInquiryStore) List(context.Context) ([]Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Inquiry, 0, len(s.items))
	for index := len(s.items) - 1; index >= 0; index-- {
		out = append(out, s.items[index])
	}
	return out, nil
}

type stubNotifier struct {
	mu     sync.Mutex
	sent   []Inquiry
	result NotificationResult
	err    error
}

func (n *stubNotifier) NotifyInquiry(_ context.Context, inquiry Inquiry) (NotificationResult, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, inquiry)
	if n.err != nil {
		return NotificationResult{}, n.err
	}
	if n.result.Status == "" {
		return NotificationResult{Status: NotificationStatusSent}, nil
	}
	return n.result, nil
}

type stubEnqueuer struct {
	ids []string
	err error
}

func (e *stubEnqueuer) EnqueueInquiryNotification(_ context.Context, inquiryID string) error {
	if e.err != nil {
		return e.err
	}
	e.ids = append(e.ids, inquiryID)
	return nil
}

type stubStoreProvider struct {
	products ProductStore
	recipes  RecipeStore
	inquires InquiryStore
}

func (p stubStoreProvider) ProductStore() ProductStore { return p.products }
func (p stubStoreProvider) RecipeStore() RecipeStore   { return p.recipes }
func (p stubStoreProvider) InquiryStore() InquiryStore { return p.inquires }

type stubLoggerProvider struct {
	logger Logger
}

func (s stubLoggerProvider) GetLogger(string) Logger {
	return s.logger
}

var errStoreDown = errors.New("store down")

func sampleProducts() []Product {
	return []Product{
		{SKU: "muffin-01", Slug: "blueberry-muffin", Name: "Blueberry Muffin", PriceDisplay: "$3.50"},
		{SKU: "bread-01", Slug: "sourdough-loaf", Name: "Sourdough Loaf", PriceDisplay: "$8.00"},
		{SKU: "cookie-01", Slug: "chocolate-chip-cookie", Name: "Chocolate Chip Cookie"},
	}
}

type serviceFixture struct {
	svc       *Service
	products  *memoryProductStore
	recipes   *memoryRecipeStore
	inquiries *memoryInquiryStore
	notifier  *stubNotifier
}

func newServiceFixture(t *testing.T, opts ...Option) serviceFixture {
	t.Helper()
	fixture := serviceFixture{
		products:  newMemoryProductStore(sampleProducts()...),
		recipes:   &memoryRecipeStore{},
		inquiries: &memoryInquiryStore{},
		notifier:  &stubNotifier{},
	}
	base := []Option{
		WithProductStore(fixture.products),
		WithRecipeStore(fixture.recipes),
		WithInquiryStore(fixture.inquiries),
		WithNotifier(fixture.notifier),
	}
	svc, err := NewService(testConfig(), append(base, opts...)...)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	fixture.svc = svc
	return fixture
}
