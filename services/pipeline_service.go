package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/calloway-denim/atelier-ops-api/config"
	"github.com/calloway-denim/atelier-ops-api/models"
	"gorm.io/gorm"
)

// PipelineService owns the production pipeline state machine: the
// append-only stage ledger, forward-only stage transitions, and the
// fabric deduction that fires when an order enters Cutting.
type PipelineService interface {
	// CreateOrder persists a new order together with its initial open
	// "Order Received" ledger entry in a single transaction
	CreateOrder(order *models.Order) (*models.Order, error)

	// AdvanceStage moves an order to the given stage. The returned
	// warning is non-empty when the transition committed but the coupled
	// fabric deduction could not be applied.
	AdvanceStage(orderID string, target models.OrderStatus, artisan *string) (*models.Order, string, error)

	// AdvanceToNext moves an order one stage forward in the pipeline
	AdvanceToNext(orderID string, artisan *string) (*models.Order, string, error)

	// GetOrder loads an order with its stage history in chronological order
	GetOrder(orderID string) (*models.Order, error)
}

type pipelineService struct {
	now func() time.Time
}

var pipelineServiceInstance PipelineService

// InitPipelineService initializes the pipeline service with the wall clock
func InitPipelineService() PipelineService {
	pipelineServiceInstance = &pipelineService{now: time.Now}
	return pipelineServiceInstance
}

// NewPipelineService creates a pipeline service with an injected clock
// (primarily for testing)
func NewPipelineService(now func() time.Time) PipelineService {
	return &pipelineService{now: now}
}

// GetPipelineService returns the initialized pipeline service instance
func GetPipelineService() PipelineService {
	return pipelineServiceInstance
}

// SetPipelineService sets the pipeline service instance (primarily for testing)
func SetPipelineService(service PipelineService) {
	pipelineServiceInstance = service
}

// CreateOrder writes the order row and opens its first ledger entry
// atomically, so a persisted order always has exactly one open stage
func (s *pipelineService) CreateOrder(order *models.Order) (*models.Order, error) {
	db := config.GetDB()
	now := s.now()

	order.Status = models.StageOrderReceived
	if order.OrderDate.IsZero() {
		order.OrderDate = now
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		// The first entry carries no artisan; work is assigned later
		entry := models.PipelineStage{
			OrderID:   order.ID,
			Stage:     models.StageOrderReceived,
			EnteredAt: now,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(order.ID)
}

// AdvanceStage validates and applies a stage transition. The target
// must be strictly forward of the current stage; Shipped is terminal
// because nothing in the sequence follows it.
func (s *pipelineService) AdvanceStage(orderID string, target models.OrderStatus, artisan *string) (*models.Order, string, error) {
	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}

	if models.StageIndex(target) < 0 {
		return nil, "", ErrUnknownStage
	}
	if !models.IsForwardTransition(order.Status, target) {
		return nil, "", ErrBackwardTransition
	}

	now := s.now()
	warning := ""

	err := db.Transaction(func(tx *gorm.DB) error {
		// Close the currently open ledger entry. Zero rows affected means
		// the at-most-one-open-entry invariant was already broken; abort
		// rather than fabricate an entry.
		res := tx.Model(&models.PipelineStage{}).
			Where("order_id = ? AND stage = ? AND exited_at IS NULL", order.ID, order.Status).
			Update("exited_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			log.Printf("ledger integrity error: order %s has no open entry for stage %q", order.ID, order.Status)
			return ErrNoOpenStage
		}

		stageArtisan := artisan
		if stageArtisan == nil {
			stageArtisan = order.AssignedArtisan
		}
		entry := models.PipelineStage{
			OrderID:   order.ID,
			Stage:     target,
			EnteredAt: now,
			Artisan:   stageArtisan,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"status": target}
		if target == models.StageShipped && order.CompletedDate == nil {
			updates["completed_date"] = now
		}

		// Entering Cutting consumes fabric. A shortfall does not block the
		// transition: the physical cut is already underway, so the
		// bookkeeping failure is surfaced as a warning instead.
		if target == models.StageCutting && order.FabricRollID != nil {
			yards, err := expectedYardage(tx, &order)
			if err != nil {
				return err
			}
			if _, err := deductYardageTx(tx, *order.FabricRollID, yards); err != nil {
				if errors.Is(err, ErrInsufficientStock) {
					warning = fmt.Sprintf("fabric roll %s has insufficient stock for %.1f yards; order advanced without deduction", *order.FabricRollID, yards)
					log.Printf("order %s: %s", order.ID, warning)
				} else {
					return err
				}
			} else {
				updates["yardage_used"] = yards
			}
		}

		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error
	})
	if err != nil {
		return nil, "", err
	}

	updated, err := s.GetOrder(order.ID)
	if err != nil {
		return nil, "", err
	}
	return updated, warning, nil
}

// AdvanceToNext moves the order one stage forward
func (s *pipelineService) AdvanceToNext(orderID string, artisan *string) (*models.Order, string, error) {
	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}

	next, ok := models.NextStage(order.Status)
	if !ok {
		// Shipped has no successor, so the order can never advance again
		return nil, "", ErrBackwardTransition
	}
	return s.AdvanceStage(orderID, next, artisan)
}

// GetOrder loads an order with its stage ledger sorted chronologically
func (s *pipelineService) GetOrder(orderID string) (*models.Order, error) {
	db := config.GetDB()

	var order models.Order
	err := db.Preload("PipelineStages", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("entered_at ASC")
	}).First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// expectedYardage resolves how much fabric the order should consume at
// Cutting: a pre-planned yardage on the order wins, otherwise the
// product's standard yardage times quantity
func expectedYardage(tx *gorm.DB, order *models.Order) (float64, error) {
	if order.YardageUsed != nil {
		return *order.YardageUsed, nil
	}
	var product models.Product
	if err := tx.First(&product, "id = ?", order.ProductID).Error; err != nil {
		return 0, fmt.Errorf("failed to resolve product for yardage: %w", err)
	}
	return roundTenth(product.StandardYards * float64(order.Quantity)), nil
}

// CurrentOpenStage returns the order's open ledger entry, or nil when
// none exists
func CurrentOpenStage(order *models.Order) *models.PipelineStage {
	for i := range order.PipelineStages {
		entry := &order.PipelineStages[i]
		if entry.ExitedAt == nil && entry.Stage == order.Status {
			return entry
		}
	}
	return nil
}

// DwellDays returns the whole days an order spent in a stage entry.
// Open entries are measured against the reference time.
func DwellDays(entry *models.PipelineStage, reference time.Time) int {
	end := reference
	if entry.ExitedAt != nil {
		end = *entry.ExitedAt
	}
	return int(math.Floor(end.Sub(entry.EnteredAt).Hours() / 24))
}
