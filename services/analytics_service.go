package services

import (
	"sort"
	"time"

	"github.com/calloway-denim/atelier-ops-api/models"
)

// StageGroup is one column of the production board: the orders
// currently occupying a stage and how long they have sat there
type StageGroup struct {
	Stage          models.OrderStatus `json:"stage"`
	Orders         []models.Order     `json:"orders"`
	Count          int                `json:"count"`
	AvgDaysInStage float64            `json:"avg_days_in_stage"`
}

// ArtisanWorkload is the number of in-production orders assigned to one artisan
type ArtisanWorkload struct {
	Artisan      string `json:"artisan"`
	ActiveOrders int    `json:"active_orders"`
}

// PipelineMetrics summarizes the state of the whole pipeline
type PipelineMetrics struct {
	TotalActive       int     `json:"total_active"`
	ArtisansWorking   int     `json:"artisans_working"`
	AvgDaysInPipeline float64 `json:"avg_days_in_pipeline"`
	OrdersDueThisWeek int     `json:"orders_due_this_week"`
}

// OrdersByStage groups orders by their current stage, in pipeline
// order, with the average dwell time of the currently open entries.
// Orders must be loaded with their stage history.
func OrdersByStage(orders []models.Order, now time.Time) []StageGroup {
	groups := make([]StageGroup, 0, len(models.PipelineOrder))

	for _, stage := range models.PipelineOrder {
		var stageOrders []models.Order
		totalDays := 0
		occupied := 0

		for i := range orders {
			if orders[i].Status != stage {
				continue
			}
			stageOrders = append(stageOrders, orders[i])
			if open := CurrentOpenStage(&orders[i]); open != nil {
				totalDays += DwellDays(open, now)
				occupied++
			}
		}

		avg := 0.0
		if len(stageOrders) > 0 {
			avg = roundTenth(float64(totalDays) / float64(len(stageOrders)))
		}

		groups = append(groups, StageGroup{
			Stage:          stage,
			Orders:         stageOrders,
			Count:          len(stageOrders),
			AvgDaysInStage: avg,
		})
	}

	return groups
}

// ArtisanWorkloads counts in-production orders per assigned artisan,
// sorted busiest first. Only orders strictly between Order Received and
// Shipped count as load; ties keep first-seen order.
func ArtisanWorkloads(orders []models.Order) []ArtisanWorkload {
	counts := make(map[string]int)
	var seen []string

	for i := range orders {
		order := &orders[i]
		if order.Status == models.StageShipped || order.Status == models.StageOrderReceived {
			continue
		}
		if order.AssignedArtisan == nil {
			continue
		}
		name := *order.AssignedArtisan
		if _, ok := counts[name]; !ok {
			seen = append(seen, name)
		}
		counts[name]++
	}

	workloads := make([]ArtisanWorkload, 0, len(seen))
	for _, name := range seen {
		workloads = append(workloads, ArtisanWorkload{Artisan: name, ActiveOrders: counts[name]})
	}

	sort.SliceStable(workloads, func(i, j int) bool {
		return workloads[i].ActiveOrders > workloads[j].ActiveOrders
	})

	return workloads
}

// ComputePipelineMetrics derives the headline pipeline numbers: orders
// in production, distinct artisans working, mean days since order date,
// and orders promised within the next seven days (inclusive)
func ComputePipelineMetrics(orders []models.Order, now time.Time) PipelineMetrics {
	weekFromNow := now.Add(7 * 24 * time.Hour)

	metrics := PipelineMetrics{}
	artisans := make(map[string]struct{})
	totalDays := 0

	for i := range orders {
		order := &orders[i]
		if order.Status == models.StageShipped {
			continue
		}
		metrics.TotalActive++

		if order.AssignedArtisan != nil {
			artisans[*order.AssignedArtisan] = struct{}{}
		}

		totalDays += int(now.Sub(order.OrderDate).Hours() / 24)

		if !order.PromisedDate.Before(now) && !order.PromisedDate.After(weekFromNow) {
			metrics.OrdersDueThisWeek++
		}
	}

	metrics.ArtisansWorking = len(artisans)
	if metrics.TotalActive > 0 {
		metrics.AvgDaysInPipeline = roundTenth(float64(totalDays) / float64(metrics.TotalActive))
	}

	return metrics
}
