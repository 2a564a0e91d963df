package analytics

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Dashboard(ctx context.Context, now time.Time) (*Dashboard, error)
	MonthlyRevenue(ctx context.Context, from time.Time) ([]MonthlyRevenue, error)
	RevenueByMethod(ctx context.Context, from time.Time) ([]MethodRevenue, error)
	TopVenues(ctx context.Context, limit int) ([]VenuePerformance, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) count(ctx context.Context, table string, where ...interface{}) (int64, error) {
	var n int64
	query := r.db.WithContext(ctx).Table(table)
	if len(where) > 0 {
		query = query.Where(where[0], where[1:]...)
	}
	if err := query.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func (r *repository) statusCounts(ctx context.Context, table string) (map[string]int64, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Table(table).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count %s by status: %w", table, err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *repository) Dashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	d := &Dashboard{GeneratedAt: now}

	counts := []struct {
		dst   *int64
		table string
		where []interface{}
	}{
		{&d.Users, "users", nil},
		{&d.Organizers, "organizers", nil},
		{&d.Venues, "venues", nil},
		{&d.ActiveVenues, "venues", []interface{}{"is_active = ?", true}},
		{&d.Meals, "meals", nil},
		{&d.UpcomingTotal, "events", []interface{}{"status IN ? AND start_time > ?", []string{"pending", "confirmed"}, now}},
		{&d.PendingReconciliation, "payments", []interface{}{"needs_reconciliation = ?", true}},
	}
	for _, c := range counts {
		n, err := r.count(ctx, c.table, c.where...)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}

	var err error
	if d.EventsByStatus, err = r.statusCounts(ctx, "events"); err != nil {
		return nil, err
	}
	if d.PaymentsByStatus, err = r.statusCounts(ctx, "payments"); err != nil {
		return nil, err
	}

	var totals revenueTotals
	err = r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE status IN ('success', 'refunded')), 0) AS gross,
			COALESCE(SUM(amount) FILTER (WHERE status = 'refunded'), 0) AS refunded
		FROM payments
	`).Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	d.GrossRevenue = totals.Gross
	d.RefundedTotal = totals.Refunded
	d.NetRevenue = totals.Gross - totals.Refunded

	return d, nil
}

func (r *repository) MonthlyRevenue(ctx context.Context, from time.Time) ([]MonthlyRevenue, error) {
	var rows []MonthlyRevenue
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			to_char(date_trunc('month', processed_at AT TIME ZONE 'UTC'), 'YYYY-MM') AS month,
			COALESCE(SUM(amount) FILTER (WHERE status IN ('success', 'refunded')), 0) AS gross,
			COALESCE(SUM(amount) FILTER (WHERE status = 'refunded'), 0) AS refunded,
			COUNT(*) FILTER (WHERE status IN ('success', 'refunded')) AS payments
		FROM payments
		WHERE processed_at >= ?
		GROUP BY 1
		ORDER BY 1
	`, from).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}
	return rows, nil
}

func (r *repository) RevenueByMethod(ctx context.Context, from time.Time) ([]MethodRevenue, error) {
	var rows []MethodRevenue
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			method,
			COALESCE(SUM(amount), 0) AS gross,
			COUNT(*) AS payments
		FROM payments
		WHERE status IN ('success', 'refunded') AND processed_at >= ?
		GROUP BY method
		ORDER BY gross DESC
	`, from).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("revenue by method: %w", err)
	}
	return rows, nil
}

func (r *repository) TopVenues(ctx context.Context, limit int) ([]VenuePerformance, error) {
	var rows []VenuePerformance
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			v.id AS venue_id,
			v.name,
			v.city,
			COUNT(e.id) FILTER (WHERE e.status IN ('pending', 'confirmed')) AS bookings,
			COUNT(e.id) FILTER (WHERE e.status = 'cancelled') AS cancellations,
			COALESCE(SUM(e.total_amount) FILTER (WHERE e.status = 'confirmed'), 0) AS revenue,
			COALESCE(AVG(e.people_count) FILTER (WHERE e.status = 'confirmed'), 0) AS avg_people
		FROM venues v
		LEFT JOIN events e ON e.venue_id = v.id
		GROUP BY v.id, v.name, v.city
		ORDER BY revenue DESC, bookings DESC, v.name
		LIMIT ?
	`, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top venues: %w", err)
	}
	return rows, nil
}
