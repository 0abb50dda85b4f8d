package dashboard

import (
	"sort"

	"github.com/comandahq/comanda/internal/order"
	"github.com/comandahq/comanda/internal/window"
)

// Aggregations operate on an already window-filtered order sequence. They skip
// soft-deleted orders themselves, so the exclusion rule holds even when the
// input comes straight from memory.

type SalesSummary struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// Sales sums order totals and counts orders. An empty input yields zeroes,
// never an error.
func Sales(orders []*order.Order) SalesSummary {
	var summary SalesSummary
	for _, o := range orders {
		if o.IsDeleted() {
			continue
		}
		summary.Total += o.Total
		summary.Count++
	}
	return summary
}

type DishCount struct {
	Name  string `json:"_id"`
	Count int    `json:"count"`
}

// TopDish flattens order items and returns the dish with the highest summed
// quantity, or nil when no items match. Ties go to the lexically smallest
// name so results are stable.
func TopDish(orders []*order.Order) *DishCount {
	counts := make(map[string]int)
	for _, o := range orders {
		if o.IsDeleted() {
			continue
		}
		for _, item := range o.Items {
			counts[item.Name] += item.Qty
		}
	}

	var top *DishCount
	for name, count := range counts {
		if top == nil || count > top.Count || (count == top.Count && name < top.Name) {
			top = &DishCount{Name: name, Count: count}
		}
	}
	return top
}

type CustomerOrders struct {
	Name   string `json:"_id"`
	Orders int    `json:"orders"`
}

// RepeatCustomers groups orders by customer name and keeps customers with two
// or more orders, sorted by descending order count. A non-empty name restricts
// the grouping to that single customer.
func RepeatCustomers(orders []*order.Order, name string) []CustomerOrders {
	counts := make(map[string]int)
	for _, o := range orders {
		if o.IsDeleted() {
			continue
		}
		if name != "" && o.CustomerName != name {
			continue
		}
		counts[o.CustomerName]++
	}

	result := make([]CustomerOrders, 0, len(counts))
	for customer, n := range counts {
		if n >= 2 {
			result = append(result, CustomerOrders{Name: customer, Orders: n})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Orders != result[j].Orders {
			return result[i].Orders > result[j].Orders
		}
		return result[i].Name < result[j].Name
	})

	return result
}

type HourKey struct {
	Hour int `json:"hour"`
}

type HourCount struct {
	Hour  HourKey `json:"_id"`
	Count int     `json:"count"`
}

// PeakHour groups orders by the hour of day of their creation time in the
// restaurant's fixed offset and returns the busiest hour, or nil when no
// orders match. Ties go to the earliest hour.
func PeakHour(orders []*order.Order) *HourCount {
	counts := make(map[int]int)
	for _, o := range orders {
		if o.IsDeleted() {
			continue
		}
		counts[o.CreatedAt.In(window.Local).Hour()]++
	}

	var peak *HourCount
	for hour, count := range counts {
		if peak == nil || count > peak.Count || (count == peak.Count && hour < peak.Hour.Hour) {
			peak = &HourCount{Hour: HourKey{Hour: hour}, Count: count}
		}
	}
	return peak
}
