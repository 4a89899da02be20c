// internal/export/reporter.go
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"github.com/suqpos/backend-go/internal/config"
	"github.com/suqpos/backend-go/internal/domain"
	"github.com/suqpos/backend-go/pkg/currency"
)

// Reporter renders a metrics snapshot as CSV and, when object storage is
// configured, uploads it. With storage disabled the CSV is still produced
// and served inline.
type Reporter struct {
	client *minio.Client
	bucket string
}

func NewReporter(cfg config.StorageConfig) (*Reporter, error) {
	if !cfg.Enabled {
		return &Reporter{}, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}

	return &Reporter{client: client, bucket: cfg.Bucket}, nil
}

// Export renders the snapshot and uploads it when storage is configured.
// Returns the stored object name, empty when the report was not uploaded.
func (r *Reporter) Export(ctx context.Context, snap *domain.MetricsSnapshot) (string, []byte, error) {
	payload, err := r.SnapshotCSV(snap)
	if err != nil {
		return "", nil, err
	}

	if r.client == nil {
		return "", payload, nil
	}

	objectName := fmt.Sprintf("metrics-%s-%s.csv", snap.Period, snap.GeneratedAt.UTC().Format("20060102T150405Z"))

	if err := r.ensureBucket(ctx); err != nil {
		return "", nil, err
	}

	_, err = r.client.PutObject(ctx, r.bucket, objectName, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return "", nil, fmt.Errorf("upload report: %w", err)
	}

	log.Info().Str("bucket", r.bucket).Str("object", objectName).Msg("metrics report uploaded")
	return objectName, payload, nil
}

// SnapshotCSV renders the headline metrics, the expense breakdown and the
// top products as one CSV document.
func (r *Reporter) SnapshotCSV(snap *domain.MetricsSnapshot) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"metric", "value"},
		{"period", string(snap.Period)},
		{"generated_at", snap.GeneratedAt.UTC().Format(time.RFC3339)},
		{"total_revenue", currency.FormatETB(snap.TotalRevenue)},
		{"total_profit", currency.FormatETB(snap.TotalProfit)},
		{"total_expenses", currency.FormatETB(snap.TotalExpenses)},
		{"net_profit", currency.FormatETB(snap.NetProfit)},
		{"sales_count", strconv.Itoa(snap.TotalSalesCount)},
		{"items_sold", strconv.Itoa(snap.TotalItemsSold)},
		{"average_order_value", currency.FormatETB(snap.AverageOrderValue)},
		{"gross_profit_margin", fmt.Sprintf("%.2f%%", snap.GrossProfitMargin)},
		{"net_profit_margin", fmt.Sprintf("%.2f%%", snap.NetProfitMargin)},
		{"inventory_value", currency.FormatETB(snap.TotalInventoryValue)},
		{"retail_value", currency.FormatETB(snap.TotalRetailValue)},
		{"potential_profit", currency.FormatETB(snap.PotentialProfit)},
		{"low_stock_count", strconv.Itoa(snap.LowStockCount)},
		{"total_purchases", currency.FormatETB(snap.TotalPurchases)},
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write metrics rows: %w", err)
	}

	if err := w.Write([]string{}); err != nil {
		return nil, err
	}
	if err := w.Write([]string{"expense_category", "amount"}); err != nil {
		return nil, err
	}
	for _, category := range []string{
		domain.CategoryRent, domain.CategorySalary, domain.CategoryUtilities,
		domain.CategoryMaintenance, domain.CategoryMarketing, domain.CategoryOther,
	} {
		amount, ok := snap.ExpensesByCategory[category]
		if !ok {
			continue
		}
		if err := w.Write([]string{category, currency.FormatETB(amount)}); err != nil {
			return nil, err
		}
	}

	if err := w.Write([]string{}); err != nil {
		return nil, err
	}
	if err := w.Write([]string{"product", "quantity", "revenue", "profit"}); err != nil {
		return nil, err
	}
	for _, p := range snap.TopProducts {
		row := []string{p.Name, strconv.Itoa(p.Quantity), currency.FormatETB(p.Revenue), currency.FormatETB(p.Profit)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush report csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Reporter) ensureBucket(ctx context.Context) error {
	exists, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return fmt.Errorf("check report bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create report bucket: %w", err)
	}
	return nil
}
