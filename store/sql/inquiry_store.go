package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-bakery/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type InquiryStore struct {
	db   *bun.DB
	repo repository.Repository[*inquiryRecord]
}

func NewInquiryStore(db *bun.DB) (*InquiryStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*inquiryRecord](db, inquiryHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid inquiry repository wiring: %w", err)
		}
	}
	return &InquiryStore{db: db, repo: repo}, nil
}

// Create writes the inquiry and its item snapshots in one transaction.
func (s *InquiryStore) Create(ctx context.Context, inquiry core.Inquiry) (core.Inquiry, error) {
	if s == nil || s.db == nil || s.repo == nil {
		return core.Inquiry{}, fmt.Errorf("sqlstore: inquiry store is not configured")
	}
	record := newInquiryRecord(inquiry)
	record.ID = uuid.NewString()
	if strings.TrimSpace(record.Status) == "" {
		record.Status = core.InquiryStatusNew
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	items := make([]*inquiryItemRecord, 0, len(inquiry.Items))
	for idx, item := range inquiry.Items {
		items = append(items, &inquiryItemRecord{
			ID:            uuid.NewString(),
			InquiryID:     record.ID,
			SKU:           item.SKU,
			Qty:           item.Qty,
			NameSnapshot:  item.NameSnapshot,
			PriceSnapshot: item.PriceSnapshot,
			Position:      idx,
		})
	}

	var created core.Inquiry
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		inserted, err := s.repo.CreateTx(ctx, tx, record)
		if err != nil {
			return err
		}
		if len(items) > 0 {
			if _, err := tx.NewInsert().Model(&items).Exec(ctx); err != nil {
				return err
			}
		}
		created = inserted.toDomain(items)
		return nil
	})
	if err != nil {
		return core.Inquiry{}, err
	}
	return created, nil
}

func (s *InquiryStore) Get(ctx context.Context, id string) (core.Inquiry, error) {
	if s == nil || s.repo == nil {
		return core.Inquiry{}, fmt.Errorf("sqlstore: inquiry store is not configured")
	}
	id = strings.TrimSpace(id)
	if parseUUID(id) == uuid.Nil {
		return core.Inquiry{}, fmt.Errorf("sqlstore: inquiry %q: %w", id, core.ErrNotFound)
	}
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return core.Inquiry{}, notFound("inquiry", id, err)
	}
	items, err := s.loadItems(ctx, []string{record.ID})
	if err != nil {
		return core.Inquiry{}, err
	}
	return record.toDomain(items[record.ID]), nil
}

func (s *InquiryStore) List(ctx context.Context) ([]core.Inquiry, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: inquiry store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.OrderBy("created_at DESC"),
		repository.SelectPaginate(listLimit, 0),
	)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	items, err := s.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]core.Inquiry, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain(items[record.ID]))
	}
	return out, nil
}

func (s *InquiryStore) loadItems(ctx context.Context, ids []string) (map[string][]*inquiryItemRecord, error) {
	grouped := make(map[string][]*inquiryItemRecord, len(ids))
	if len(ids) == 0 {
		return grouped, nil
	}
	var rows []*inquiryItemRecord
	err := s.db.NewSelect().
		Model(&rows).
		Where("?TableAlias.inquiry_id IN (?)", bun.In(ids)).
		OrderExpr("?TableAlias.inquiry_id ASC, ?TableAlias.position ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		grouped[row.InquiryID] = append(grouped[row.InquiryID], row)
	}
	return grouped, nil
}
