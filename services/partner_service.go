package services

import (
	"github.com/calloway-denim/atelier-ops-api/config"
	"github.com/calloway-denim/atelier-ops-api/models"
	"gorm.io/gorm"
)

// RecomputePartnerTotals rebuilds the aggregate order counts and
// revenue on every partner and partner rep from the orders table. The
// totals are always recomputed from scratch, never incremented, so the
// job is idempotent and can run after any batch of order mutations.
func RecomputePartnerTotals() error {
	db := config.GetDB()

	return db.Transaction(func(tx *gorm.DB) error {
		var orders []models.Order
		if err := tx.Where("partner_id IS NOT NULL").Find(&orders).Error; err != nil {
			return err
		}

		type totals struct {
			orders  int
			revenue float64
			active  int
		}
		byPartner := make(map[string]*totals)
		byRep := make(map[string]*totals)

		accumulate := func(m map[string]*totals, id string, order *models.Order) {
			t, ok := m[id]
			if !ok {
				t = &totals{}
				m[id] = t
			}
			t.orders++
			t.revenue += order.TotalPrice
			if order.Status != models.StageShipped {
				t.active++
			}
		}

		for i := range orders {
			order := &orders[i]
			accumulate(byPartner, *order.PartnerID, order)
			if order.PartnerRepID != nil {
				accumulate(byRep, *order.PartnerRepID, order)
			}
		}

		var partners []models.Partner
		if err := tx.Find(&partners).Error; err != nil {
			return err
		}
		for _, partner := range partners {
			t := byPartner[partner.ID]
			if t == nil {
				t = &totals{}
			}
			err := tx.Model(&models.Partner{}).Where("id = ?", partner.ID).Updates(map[string]interface{}{
				"total_orders":  t.orders,
				"total_revenue": t.revenue,
				"active_orders": t.active,
			}).Error
			if err != nil {
				return err
			}
		}

		var reps []models.PartnerRep
		if err := tx.Find(&reps).Error; err != nil {
			return err
		}
		for _, rep := range reps {
			t := byRep[rep.ID]
			if t == nil {
				t = &totals{}
			}
			err := tx.Model(&models.PartnerRep{}).Where("id = ?", rep.ID).Updates(map[string]interface{}{
				"total_orders":  t.orders,
				"total_revenue": t.revenue,
			}).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}
