package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/RuneterraShadow/site-encomendas-patos/internal/domain"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/viewport"
)

// DefaultCategory labels products whose snapshot entry carries none.
const DefaultCategory = "geral"

// Feed consumes full catalog snapshots from kafka and installs them
// into the store. Each message is a complete snapshot, never a delta.
type Feed struct {
	reader *kafka.Reader
	store  *Store
	log    zerolog.Logger
}

func NewFeed(brokers []string, topic, groupID string, store *Store, log zerolog.Logger) *Feed {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MaxBytes: 10e6, // 10MB
	})
	return &Feed{reader: reader, store: store, log: log}
}

// Run reads snapshots until ctx is cancelled. A snapshot that fails to
// decode as a whole is dropped; the previous snapshot keeps serving.
func (f *Feed) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		m, err := f.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() == nil {
				f.log.Error().Err(err).Msg("reading catalog snapshot")
			}
			continue
		}

		products, skipped, err := DecodeSnapshot(m.Value)
		if err != nil {
			f.log.Error().Err(err).Msg("malformed catalog snapshot dropped")
			continue
		}
		if skipped > 0 {
			f.log.Warn().Int("skipped", skipped).Msg("catalog entries without id skipped")
		}

		f.store.Install(products)
		f.log.Info().
			Int("products", len(products)).
			Int("snapshot", f.store.Snapshot()).
			Msg("catalog snapshot installed")
	}
}

func (f *Feed) Close() error {
	return f.reader.Close()
}

// productRecord is the wire shape of one catalog entry. Every field
// except id is optional; decoding fills the documented defaults.
type productRecord struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	PromoPrice  *decimal.Decimal `json:"promoPrice"`
	Stock       *int             `json:"stock"`
	Active      bool             `json:"active"`
	SortOrder   int              `json:"sortOrder"`
	ImageURL    string           `json:"imageUrl"`
	ImagePosX   *float64         `json:"imagePosX"`
	ImagePosY   *float64         `json:"imagePosY"`
	ImageZoom   *float64         `json:"imageZoom"`
	Category    string           `json:"category"`
	Featured    bool             `json:"featured"`
}

// DecodeSnapshot parses a full snapshot message. Malformed entries are
// never fatal: records without an id are skipped (their count is
// returned), missing stock means unlimited, missing category gets the
// fixed default label and absent crop parameters fall back to the
// neutral viewport.
func DecodeSnapshot(data []byte) ([]domain.Product, int, error) {
	var records []productRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, 0, fmt.Errorf("decode snapshot: %w", err)
	}

	products := make([]domain.Product, 0, len(records))
	skipped := 0
	for _, r := range records {
		if r.ID == "" {
			skipped++
			continue
		}
		products = append(products, normalize(r))
	}

	return products, skipped, nil
}

func normalize(r productRecord) domain.Product {
	p := domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		PromoPrice:  r.PromoPrice,
		Stock:       r.Stock,
		Active:      r.Active,
		SortOrder:   r.SortOrder,
		ImageURL:    r.ImageURL,
		ImagePosX:   viewport.DefaultPos,
		ImagePosY:   viewport.DefaultPos,
		ImageZoom:   viewport.DefaultZoom,
		Category:    r.Category,
		Featured:    r.Featured,
	}

	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.ImagePosX != nil {
		p.ImagePosX = *r.ImagePosX
	}
	if r.ImagePosY != nil {
		p.ImagePosY = *r.ImagePosY
	}
	if r.ImageZoom != nil {
		p.ImageZoom = *r.ImageZoom
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}

	return p
}
