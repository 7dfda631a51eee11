package mockapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/THANGADHIWAN/focal/internal/errors"
	"github.com/THANGADHIWAN/focal/internal/model"
)

var errInsufficientQuantity = errors.Newf("used quantity exceeds current lot quantity").
	Component("mockapi").
	Category(errors.CategoryValidation).
	Build()

func parseSkipLimit(c echo.Context, defaultLimit int) (skip, limit int) {
	skip, _ = strconv.Atoi(c.QueryParam("skip"))
	if skip < 0 {
		skip = 0
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = defaultLimit
	}
	return skip, limit
}

func materialToModel(row materialRow) model.Material {
	updated := row.UpdatedAt
	return model.Material{
		ID:            row.ID,
		Name:          row.Name,
		MaterialType:  row.MaterialType,
		CASNumber:     row.CASNumber,
		Manufacturer:  row.Manufacturer,
		Grade:         row.Grade,
		UnitOfMeasure: row.UnitOfMeasure,
		ShelfLifeDays: row.ShelfLifeDays,
		IsControlled:  row.IsControlled,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     &updated,
	}
}

func lotToModel(row lotRow) model.MaterialLot {
	return model.MaterialLot{
		ID:                row.ID,
		MaterialID:        row.MaterialID,
		LotNumber:         row.LotNumber,
		ReceivedDate:      row.ReceivedDate,
		ExpiryDate:        row.ExpiryDate,
		ReceivedQuantity:  row.ReceivedQuantity,
		CurrentQuantity:   row.CurrentQuantity,
		StorageLocationID: row.StorageLocationID,
		Status:            row.Status,
		Remarks:           row.Remarks,
	}
}

func usageLogToModel(row usageLogRow) model.MaterialUsageLog {
	return model.MaterialUsageLog{
		ID:                 row.ID,
		MaterialLotID:      row.MaterialLotID,
		UsedBy:             row.UsedBy,
		UsedOn:             row.UsedOn,
		UsedQuantity:       row.UsedQuantity,
		Purpose:            row.Purpose,
		AssociatedSampleID: row.AssociatedSampleID,
		Remarks:            row.Remarks,
	}
}

func adjustmentToModel(row adjustmentRow) model.MaterialInventoryAdjustment {
	return model.MaterialInventoryAdjustment{
		ID:             row.ID,
		MaterialLotID:  row.MaterialLotID,
		AdjustedBy:     row.AdjustedBy,
		AdjustedOn:     row.AdjustedOn,
		AdjustmentType: row.AdjustmentType,
		Quantity:       row.Quantity,
		Reason:         row.Reason,
		Remarks:        row.Remarks,
	}
}

func (s *Server) listMaterials(c echo.Context) error {
	skip, limit := parseSkipLimit(c, 50)

	q := s.db.Model(&materialRow{})
	if types := c.QueryParams()["material_type"]; len(types) > 0 {
		q = q.Where("material_type IN ?", types)
	}
	if search := c.QueryParam("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR manufacturer LIKE ?", like, like)
	}

	var rows []materialRow
	if err := q.Order("name").Offset(skip).Limit(limit).Find(&rows).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	materials := make([]model.Material, 0, len(rows))
	for _, row := range rows {
		materials = append(materials, materialToModel(row))
	}
	return respond(c, http.StatusOK, materials)
}

func (s *Server) getMaterial(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "material id must be an integer")
	}
	var row materialRow
	if err := s.db.First(&row, id).Error; err != nil {
		return respondErr(c, http.StatusNotFound, "material not found")
	}
	return respond(c, http.StatusOK, materialToModel(row))
}

func (s *Server) createMaterial(c echo.Context) error {
	var in model.MaterialCreate
	if err := c.Bind(&in); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}
	if in.Name == "" {
		return respondErr(c, http.StatusUnprocessableEntity, "name is required")
	}

	now := time.Now().UTC()
	row := materialRow{
		Name:          in.Name,
		MaterialType:  in.MaterialType,
		CASNumber:     in.CASNumber,
		Manufacturer:  in.Manufacturer,
		Grade:         in.Grade,
		UnitOfMeasure: in.UnitOfMeasure,
		ShelfLifeDays: in.ShelfLifeDays,
		IsControlled:  in.IsControlled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	return respond(c, http.StatusCreated, materialToModel(row))
}

func (s *Server) updateMaterial(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "material id must be an integer")
	}
	var row materialRow
	if err := s.db.First(&row, id).Error; err != nil {
		return respondErr(c, http.StatusNotFound, "material not found")
	}

	var patch model.MaterialUpdate
	if err := c.Bind(&patch); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}
	if patch.Name != nil {
		row.Name = *patch.Name
	}
	if patch.Manufacturer != nil {
		row.Manufacturer = *patch.Manufacturer
	}
	if patch.Grade != nil {
		row.Grade = *patch.Grade
	}
	if patch.UnitOfMeasure != nil {
		row.UnitOfMeasure = *patch.UnitOfMeasure
	}
	if patch.ShelfLifeDays != nil {
		row.ShelfLifeDays = *patch.ShelfLifeDays
	}
	if patch.IsControlled != nil {
		row.IsControlled = *patch.IsControlled
	}
	row.UpdatedAt = time.Now().UTC()

	if err := s.db.Save(&row).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	return respond(c, http.StatusOK, materialToModel(row))
}

func (s *Server) deleteMaterial(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "material id must be an integer")
	}
	res := s.db.Delete(&materialRow{}, id)
	if res.Error != nil {
		return respondErr(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return respondErr(c, http.StatusNotFound, "material not found")
	}
	return respond(c, http.StatusOK, nil)
}

func (s *Server) listLots(c echo.Context) error {
	skip, limit := parseSkipLimit(c, 50)

	q := s.db.Model(&lotRow{})
	if materialID := c.QueryParam("material_id"); materialID != "" {
		q = q.Where("material_id = ?", materialID)
	}

	var rows []lotRow
	if err := q.Order("id").Offset(skip).Limit(limit).Find(&rows).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	lots := make([]model.MaterialLot, 0, len(rows))
	for _, row := range rows {
		lots = append(lots, lotToModel(row))
	}
	return respond(c, http.StatusOK, lots)
}

func (s *Server) getLot(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "lot id must be an integer")
	}
	var row lotRow
	if err := s.db.First(&row, id).Error; err != nil {
		return respondErr(c, http.StatusNotFound, "material lot not found")
	}
	return respond(c, http.StatusOK, lotToModel(row))
}

func (s *Server) createLot(c echo.Context) error {
	var in model.MaterialLotCreate
	if err := c.Bind(&in); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}
	var material materialRow
	if err := s.db.First(&material, in.MaterialID).Error; err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "material does not exist")
	}
	if in.ReceivedQuantity <= 0 {
		return respondErr(c, http.StatusUnprocessableEntity, "received_quantity must be positive")
	}

	row := lotRow{
		MaterialID:        in.MaterialID,
		LotNumber:         in.LotNumber,
		ReceivedDate:      in.ReceivedDate,
		ExpiryDate:        in.ExpiryDate,
		ReceivedQuantity:  in.ReceivedQuantity,
		CurrentQuantity:   in.ReceivedQuantity,
		StorageLocationID: in.StorageLocationID,
		Status:            "Available",
		Remarks:           in.Remarks,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	return respond(c, http.StatusCreated, lotToModel(row))
}

func (s *Server) updateLot(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "lot id must be an integer")
	}
	var row lotRow
	if err := s.db.First(&row, id).Error; err != nil {
		return respondErr(c, http.StatusNotFound, "material lot not found")
	}

	var patch model.MaterialLotUpdate
	if err := c.Bind(&patch); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}
	if patch.ExpiryDate != nil {
		row.ExpiryDate = patch.ExpiryDate
	}
	if patch.StorageLocationID != nil {
		row.StorageLocationID = *patch.StorageLocationID
	}
	if patch.Status != nil {
		row.Status = *patch.Status
	}
	if patch.Remarks != nil {
		row.Remarks = *patch.Remarks
	}

	if err := s.db.Save(&row).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	return respond(c, http.StatusOK, lotToModel(row))
}

func (s *Server) deleteLot(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "lot id must be an integer")
	}
	res := s.db.Delete(&lotRow{}, id)
	if res.Error != nil {
		return respondErr(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return respondErr(c, http.StatusNotFound, "material lot not found")
	}
	return respond(c, http.StatusOK, nil)
}

func (s *Server) listUsageLogs(c echo.Context) error {
	skip, limit := parseSkipLimit(c, 50)

	q := s.db.Model(&usageLogRow{})
	if lotID := c.QueryParam("material_lot_id"); lotID != "" {
		q = q.Where("material_lot_id = ?", lotID)
	}

	var rows []usageLogRow
	if err := q.Order("used_on DESC").Offset(skip).Limit(limit).Find(&rows).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	logs := make([]model.MaterialUsageLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, usageLogToModel(row))
	}
	return respond(c, http.StatusOK, logs)
}

func (s *Server) createUsageLog(c echo.Context) error {
	var in model.UsageLogCreate
	if err := c.Bind(&in); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}
	if in.UsedQuantity <= 0 {
		return respondErr(c, http.StatusUnprocessableEntity, "used_quantity must be positive")
	}

	var row usageLogRow
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var lot lotRow
		if err := tx.First(&lot, in.MaterialLotID).Error; err != nil {
			return err
		}
		if in.UsedQuantity > lot.CurrentQuantity {
			return errInsufficientQuantity
		}

		lot.CurrentQuantity -= in.UsedQuantity
		if err := tx.Save(&lot).Error; err != nil {
			return err
		}

		row = usageLogRow{
			MaterialLotID:      in.MaterialLotID,
			UsedBy:             in.UsedBy,
			UsedOn:             time.Now().UTC(),
			UsedQuantity:       in.UsedQuantity,
			Purpose:            in.Purpose,
			AssociatedSampleID: in.AssociatedSampleID,
			Remarks:            in.Remarks,
		}
		return tx.Create(&row).Error
	})
	if err == errInsufficientQuantity {
		return respondErr(c, http.StatusUnprocessableEntity, "used_quantity exceeds current lot quantity")
	}
	if err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "material lot does not exist")
	}
	return respond(c, http.StatusCreated, usageLogToModel(row))
}

func (s *Server) deleteUsageLog(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "usage log id must be an integer")
	}
	res := s.db.Delete(&usageLogRow{}, id)
	if res.Error != nil {
		return respondErr(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return respondErr(c, http.StatusNotFound, "usage log not found")
	}
	return respond(c, http.StatusOK, nil)
}

func (s *Server) listAdjustments(c echo.Context) error {
	skip, limit := parseSkipLimit(c, 50)

	q := s.db.Model(&adjustmentRow{})
	if lotID := c.QueryParam("material_lot_id"); lotID != "" {
		q = q.Where("material_lot_id = ?", lotID)
	}

	var rows []adjustmentRow
	if err := q.Order("adjusted_on DESC").Offset(skip).Limit(limit).Find(&rows).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	adjustments := make([]model.MaterialInventoryAdjustment, 0, len(rows))
	for _, row := range rows {
		adjustments = append(adjustments, adjustmentToModel(row))
	}
	return respond(c, http.StatusOK, adjustments)
}

func (s *Server) createAdjustment(c echo.Context) error {
	var in model.AdjustmentCreate
	if err := c.Bind(&in); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}

	var row adjustmentRow
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var lot lotRow
		if err := tx.First(&lot, in.MaterialLotID).Error; err != nil {
			return err
		}

		lot.CurrentQuantity += in.Quantity
		if lot.CurrentQuantity < 0 {
			lot.CurrentQuantity = 0
		}
		if err := tx.Save(&lot).Error; err != nil {
			return err
		}

		row = adjustmentRow{
			MaterialLotID:  in.MaterialLotID,
			AdjustedBy:     in.AdjustedBy,
			AdjustedOn:     time.Now().UTC(),
			AdjustmentType: in.AdjustmentType,
			Quantity:       in.Quantity,
			Reason:         in.Reason,
			Remarks:        in.Remarks,
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "material lot does not exist")
	}
	return respond(c, http.StatusCreated, adjustmentToModel(row))
}
