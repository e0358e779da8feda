package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/statistics"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StatisticsRefresher recomputes one customer's statistics row. Satisfied by
// the refresh statistics command handler.
type StatisticsRefresher interface {
	Handle(ctx context.Context, cmd commands.RefreshStatisticsCommand) error
}

// GetStatisticsQueryHandler serves a customer's cached statistics with the
// staleness policy applied on the read path: a row that is absent, or older
// than the staleness TTL, is recomputed synchronously before being returned.
// This is the one read that can block on an aggregate recomputation.
type GetStatisticsQueryHandler struct {
	db        *gorm.DB
	refresher StatisticsRefresher
	clock     ports.Clock
}

// NewGetStatisticsQueryHandler creates a handler for statistics reads.
func NewGetStatisticsQueryHandler(
	db *gorm.DB,
	refresher StatisticsRefresher,
	clock ports.Clock,
) GetStatisticsQueryHandler {
	return GetStatisticsQueryHandler{
		db:        db,
		refresher: refresher,
		clock:     clock,
	}
}

// Handle executes the query, refreshing the cached row first when needed.
func (h GetStatisticsQueryHandler) Handle(
	ctx context.Context,
	query GetStatisticsQuery,
) (GetStatisticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStatisticsQueryResponse{}, err
	}

	response, found, err := h.read(ctx, query)
	if err != nil {
		return GetStatisticsQueryResponse{}, err
	}
	if found && h.clock.Now().Sub(response.UpdatedAt) < statistics.StalenessTTL {
		return response, nil
	}

	cmd, err := commands.NewRefreshStatisticsCommand(query.StoreID(), query.CustomerID())
	if err != nil {
		return GetStatisticsQueryResponse{}, err
	}
	if err = h.refresher.Handle(ctx, cmd); err != nil {
		return GetStatisticsQueryResponse{}, err
	}

	response, found, err = h.read(ctx, query)
	if err != nil {
		return GetStatisticsQueryResponse{}, err
	}
	if !found {
		return GetStatisticsQueryResponse{},
			errs.NewObjectNotFoundError("statistics", query.CustomerID().String())
	}

	return response, nil
}

func (h GetStatisticsQueryHandler) read(
	ctx context.Context,
	query GetStatisticsQuery,
) (GetStatisticsQueryResponse, bool, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			s.average_lead_time,
			s.total_sales,
			s.updated_at
		FROM statistics s
		JOIN customers c ON c.id = s.customer_id
			AND c.deleted_at IS NULL AND c.store_id = ?
		WHERE s.customer_id = ?
	`, query.StoreID().String(), query.CustomerID().String()).Row()

	var averageLeadTime int
	var totalSales decimal.Decimal
	var updatedAt time.Time
	if err := row.Scan(&averageLeadTime, &totalSales, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetStatisticsQueryResponse{}, false, nil
		}
		return GetStatisticsQueryResponse{}, false, err
	}

	return GetStatisticsQueryResponse{
		CustomerID:      query.CustomerID(),
		AverageLeadTime: averageLeadTime,
		TotalSales:      totalSales,
		UpdatedAt:       updatedAt,
	}, true, nil
}
