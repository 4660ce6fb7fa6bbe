// Package aggregate keeps room and quotation totals consistent with the set
// of line items placed into rooms. Every ledger mutation runs inside one
// transaction together with a full re-sum of the parent aggregates, so a
// committed mutation is always observable with fresh totals and a crash
// mid-operation never leaves totals stale relative to the ledger.
//
// Totals are recomputed with SUM queries rather than incremental deltas.
// Concurrent edits to the same room may race, but each commit re-derives the
// aggregates from the ledger, so the end state converges once all in-flight
// requests finish.
package aggregate

import (
	"errors"

	"gorm.io/gorm"

	"studiodesk/internal/model"
)

// AddInput carries the fields accepted when placing an item into a room.
// Either CatalogItemID is set (name/unit/rate are snapshotted from the
// catalog) or the custom fields Name, Unit and Rate are required.
type AddInput struct {
	CatalogItemID *uint
	Name          string
	Specification string
	Unit          string
	Rate          float64
	Quantity      float64
	SaveToCatalog bool
}

// UpdatePatch carries a partial line-item update. Nil fields keep their
// prior value.
type UpdatePatch struct {
	Quantity      *float64
	Rate          *float64
	Name          *string
	Specification *string
}

// AddLineItem validates the input, inserts a line item into the room and
// recomputes the room and quotation totals in the same transaction.
func AddLineItem(db *gorm.DB, roomID uint, in AddInput) (*model.RoomLineItem, error) {
	if in.Quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}

	var item model.RoomLineItem
	err := db.Transaction(func(tx *gorm.DB) error {
		var room model.Room
		if err := tx.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}

		if in.CatalogItemID != nil {
			var count int64
			if err := tx.Model(&model.RoomLineItem{}).
				Where("room_id = ? AND catalog_item_id = ?", roomID, *in.CatalogItemID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateCatalogItem
			}

			var catalogItem model.CatalogItem
			if err := tx.First(&catalogItem, *in.CatalogItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCatalogItemNotFound
				}
				return err
			}

			// Snapshot the catalog fields; later catalog edits must not
			// affect this row.
			item = model.RoomLineItem{
				RoomID:        roomID,
				CatalogItemID: in.CatalogItemID,
				Name:          catalogItem.Name,
				Specification: catalogItem.DefaultDescription,
				Unit:          catalogItem.Unit,
				Rate:          catalogItem.DefaultRate,
				Quantity:      in.Quantity,
			}
			if in.Specification != "" {
				item.Specification = in.Specification
			}
		} else {
			if in.Name == "" {
				return &ValidationError{Field: "description", Reason: "required for custom items"}
			}
			if in.Unit == "" {
				return &ValidationError{Field: "unit", Reason: "required for custom items"}
			}
			if in.Rate <= 0 {
				return &ValidationError{Field: "rate", Reason: "must be greater than zero"}
			}

			item = model.RoomLineItem{
				RoomID:        roomID,
				Name:          in.Name,
				Specification: in.Specification,
				Unit:          in.Unit,
				Rate:          in.Rate,
				Quantity:      in.Quantity,
			}

			if in.SaveToCatalog {
				catalogItem := model.CatalogItem{
					Name:               in.Name,
					Unit:               in.Unit,
					DefaultRate:        in.Rate,
					DefaultDescription: in.Specification,
				}
				if err := tx.Create(&catalogItem).Error; err != nil {
					return err
				}
				// Traceability only; the line item keeps its own copy.
				item.CatalogItemID = &catalogItem.ID
			}
		}

		item.Total = item.Rate * item.Quantity
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		return recomputeTotals(tx, roomID)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateLineItem merges the patch onto an existing line item, recomputes its
// total and the parent aggregates.
func UpdateLineItem(db *gorm.DB, id uint, patch UpdatePatch) (*model.RoomLineItem, error) {
	if patch.Quantity != nil && *patch.Quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if patch.Rate != nil && *patch.Rate <= 0 {
		return nil, &ValidationError{Field: "rate", Reason: "must be greater than zero"}
	}

	var item model.RoomLineItem
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLineItemNotFound
			}
			return err
		}

		if patch.Quantity != nil {
			item.Quantity = *patch.Quantity
		}
		if patch.Rate != nil {
			item.Rate = *patch.Rate
		}
		if patch.Name != nil {
			item.Name = *patch.Name
		}
		if patch.Specification != nil {
			item.Specification = *patch.Specification
		}

		item.Total = item.Rate * item.Quantity
		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		return recomputeTotals(tx, item.RoomID)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteLineItem removes a line item and recomputes the totals of its former
// room. Deleting an absent id reports ErrLineItemNotFound and leaves sibling
// totals untouched.
func DeleteLineItem(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var item model.RoomLineItem
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLineItemNotFound
			}
			return err
		}

		if err := tx.Delete(&model.RoomLineItem{}, id).Error; err != nil {
			return err
		}

		return recomputeTotals(tx, item.RoomID)
	})
}

// recomputeTotals re-derives room_total from the room's line items and the
// quotation's total_amount from its rooms. Always a full SUM over the ledger,
// never a delta.
func recomputeTotals(tx *gorm.DB, roomID uint) error {
	var room model.Room
	if err := tx.First(&room, roomID).Error; err != nil {
		return err
	}

	var roomTotal float64
	if err := tx.Model(&model.RoomLineItem{}).
		Where("room_id = ?", roomID).
		Select("COALESCE(SUM(total), 0)").
		Scan(&roomTotal).Error; err != nil {
		return err
	}
	if err := tx.Model(&model.Room{}).
		Where("id = ?", roomID).
		Update("room_total", roomTotal).Error; err != nil {
		return err
	}

	return RecomputeQuotationTotal(tx, room.QuotationID)
}

// RecomputeQuotationTotal re-sums room totals onto the quotation's live
// total_amount. Also used when a room itself is added or removed.
func RecomputeQuotationTotal(tx *gorm.DB, quotationID uint) error {
	var quotationTotal float64
	if err := tx.Model(&model.Room{}).
		Where("quotation_id = ?", quotationID).
		Select("COALESCE(SUM(room_total), 0)").
		Scan(&quotationTotal).Error; err != nil {
		return err
	}
	return tx.Model(&model.Quotation{}).
		Where("id = ?", quotationID).
		Update("total_amount", quotationTotal).Error
}

// MaterialsTotal re-sums the room totals of a quotation directly from the
// rooms table. Read paths that present pricing use this instead of trusting
// the quotation's total_amount, which may hold a saved grand total.
func MaterialsTotal(db *gorm.DB, quotationID uint) (float64, error) {
	var total float64
	err := db.Model(&model.Room{}).
		Where("quotation_id = ?", quotationID).
		Select("COALESCE(SUM(room_total), 0)").
		Scan(&total).Error
	return total, err
}
