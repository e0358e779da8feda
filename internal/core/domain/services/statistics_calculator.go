package services

import (
	"math"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/statistics"

	"github.com/shopspring/decimal"
)

// StatisticsCalculator recomputes a customer's cached statistics from their
// live orders and deliveries. Pure domain service; loading the inputs and
// upserting the result is the application layer's job.
//
// Lead time uses a customer-level nearest-delivery heuristic: the first
// qualifying delivery for an order is the customer's earliest delivery dated
// on or after the order date, regardless of which order lines that delivery
// actually fulfilled. Allocation-precise lead time would change reported
// values and is deliberately not what this computes.
type StatisticsCalculator struct{}

// NewStatisticsCalculator creates a statistics calculator.
func NewStatisticsCalculator() *StatisticsCalculator {
	return &StatisticsCalculator{}
}

// TotalSales sums unit price times quantity over the live lines of the given
// orders. Sales are recognized at order time, not delivery time.
func (c *StatisticsCalculator) TotalSales(orders []*order.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		for _, line := range o.Lines() {
			total = total.Add(line.Amount())
		}
	}
	return total
}

// AverageLeadTime returns the mean, in whole days rounded up per order, of
// the distance from each order's date to its first qualifying delivery.
// Orders without a qualifying delivery are excluded from the mean, not
// counted as zero. With no qualifying orders the result is 0.
func (c *StatisticsCalculator) AverageLeadTime(orders []*order.Order, deliveries []*delivery.Delivery) int {
	totalDays := 0
	qualifying := 0

	for _, o := range orders {
		first, ok := firstQualifyingDelivery(o.OrderDate(), deliveries)
		if !ok {
			continue
		}
		totalDays += leadTimeDays(o.OrderDate(), first)
		qualifying++
	}

	if qualifying == 0 {
		return 0
	}
	return int(math.Round(float64(totalDays) / float64(qualifying)))
}

// Calculate produces a fresh statistics row for the customer, stamped with now.
func (c *StatisticsCalculator) Calculate(
	customerID kernel.UUID,
	orders []*order.Order,
	deliveries []*delivery.Delivery,
	now time.Time,
) (*statistics.Statistics, error) {
	return statistics.NewStatistics(
		customerID,
		c.AverageLeadTime(orders, deliveries),
		c.TotalSales(orders),
		now,
	)
}

// firstQualifyingDelivery finds the earliest delivery dated on or after the
// order date.
func firstQualifyingDelivery(orderDate time.Time, deliveries []*delivery.Delivery) (time.Time, bool) {
	var first time.Time
	found := false
	for _, d := range deliveries {
		date := d.DeliveryDate()
		if date.Before(orderDate) {
			continue
		}
		if !found || date.Before(first) {
			first = date
			found = true
		}
	}
	return first, found
}

// leadTimeDays is ceil(daysBetween(orderDate, deliveryDate)).
func leadTimeDays(orderDate, deliveryDate time.Time) int {
	return int(math.Ceil(deliveryDate.Sub(orderDate).Hours() / 24))
}
