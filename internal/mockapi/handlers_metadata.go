package mockapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/THANGADHIWAN/focal/internal/model"
)

var lookupCategories = map[string]bool{
	"sample_types":       true,
	"sample_statuses":    true,
	"lab_locations":      true,
	"equipment_types":    true,
	"equipment_statuses": true,
}

func (s *Server) lookups(category string) []model.LookupValue {
	var rows []lookupRow
	s.db.Where("category = ?", category).Order("id").Find(&rows)
	values := make([]model.LookupValue, 0, len(rows))
	for _, row := range rows {
		values = append(values, model.LookupValue{
			ID:          row.ID,
			Value:       row.Value,
			Description: row.Description,
		})
	}
	return values
}

func (s *Server) userList() []model.User {
	var rows []userRow
	s.db.Order("id").Find(&rows)
	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, model.User{ID: row.ID, Name: row.Name, Email: row.Email, Role: row.Role})
	}
	return users
}

func (s *Server) storageLocationList() []model.StorageLocation {
	var rows []storageLocationRow
	s.db.Order("id").Find(&rows)
	locations := make([]model.StorageLocation, 0, len(rows))
	for _, row := range rows {
		locations = append(locations, model.StorageLocation{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			FreezerID:   row.FreezerID,
		})
	}
	return locations
}

func (s *Server) equipmentList() []model.Equipment {
	var rows []equipmentRow
	s.db.Order("id").Find(&rows)
	equipment := make([]model.Equipment, 0, len(rows))
	for _, row := range rows {
		equipment = append(equipment, equipmentToModel(row))
	}
	return equipment
}

func equipmentToModel(row equipmentRow) model.Equipment {
	return model.Equipment{
		ID:           row.ID,
		Name:         row.Name,
		TypeID:       row.TypeID,
		StatusID:     row.StatusID,
		SerialNumber: row.SerialNumber,
		Location:     row.Location,
	}
}

func (s *Server) metadataCategory(c echo.Context) error {
	category := c.Param("category")
	switch {
	case lookupCategories[category]:
		return respond(c, http.StatusOK, s.lookups(category))
	case category == "users":
		return respond(c, http.StatusOK, s.userList())
	case category == "storage_locations":
		return respond(c, http.StatusOK, s.storageLocationList())
	case category == "equipment":
		return respond(c, http.StatusOK, s.equipmentList())
	default:
		return respondErr(c, http.StatusNotFound, "unknown metadata category: "+category)
	}
}

func (s *Server) metadataAll(c echo.Context) error {
	return respond(c, http.StatusOK, model.MetadataBundle{
		SampleTypes:       s.lookups("sample_types"),
		SampleStatuses:    s.lookups("sample_statuses"),
		LabLocations:      s.lookups("lab_locations"),
		Users:             s.userList(),
		StorageLocations:  s.storageLocationList(),
		EquipmentTypes:    s.lookups("equipment_types"),
		EquipmentStatuses: s.lookups("equipment_statuses"),
		Equipment:         s.equipmentList(),
	})
}

func (s *Server) createEquipment(c echo.Context) error {
	var in model.EquipmentCreate
	if err := c.Bind(&in); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}
	if in.Name == "" {
		return respondErr(c, http.StatusUnprocessableEntity, "name is required")
	}

	row := equipmentRow{
		Name:         in.Name,
		TypeID:       in.TypeID,
		StatusID:     in.StatusID,
		SerialNumber: in.SerialNumber,
		Location:     in.Location,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	return respond(c, http.StatusCreated, equipmentToModel(row))
}

func (s *Server) updateEquipment(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "equipment id must be an integer")
	}
	var row equipmentRow
	if err := s.db.First(&row, id).Error; err != nil {
		return respondErr(c, http.StatusNotFound, "equipment not found")
	}

	var patch model.EquipmentUpdate
	if err := c.Bind(&patch); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}
	if patch.Name != nil {
		row.Name = *patch.Name
	}
	if patch.StatusID != nil {
		row.StatusID = *patch.StatusID
	}
	if patch.Location != nil {
		row.Location = *patch.Location
	}

	if err := s.db.Save(&row).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	return respond(c, http.StatusOK, equipmentToModel(row))
}

func (s *Server) deleteEquipment(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "equipment id must be an integer")
	}
	res := s.db.Delete(&equipmentRow{}, id)
	if res.Error != nil {
		return respondErr(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return respondErr(c, http.StatusNotFound, "equipment not found")
	}
	return respond(c, http.StatusOK, nil)
}

func (s *Server) createStorageLocation(c echo.Context) error {
	var in model.StorageLocationCreate
	if err := c.Bind(&in); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}
	if in.Name == "" {
		return respondErr(c, http.StatusUnprocessableEntity, "name is required")
	}

	row := storageLocationRow{Name: in.Name, Description: in.Description, FreezerID: in.FreezerID}
	if err := s.db.Create(&row).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	return respond(c, http.StatusCreated, model.StorageLocation{
		ID: row.ID, Name: row.Name, Description: row.Description, FreezerID: row.FreezerID,
	})
}

func (s *Server) updateStorageLocation(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "storage location id must be an integer")
	}
	var row storageLocationRow
	if err := s.db.First(&row, id).Error; err != nil {
		return respondErr(c, http.StatusNotFound, "storage location not found")
	}

	var patch model.StorageLocationUpdate
	if err := c.Bind(&patch); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}
	if patch.Name != nil {
		row.Name = *patch.Name
	}
	if patch.Description != nil {
		row.Description = *patch.Description
	}

	if err := s.db.Save(&row).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	return respond(c, http.StatusOK, model.StorageLocation{
		ID: row.ID, Name: row.Name, Description: row.Description, FreezerID: row.FreezerID,
	})
}

func (s *Server) deleteStorageLocation(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "storage location id must be an integer")
	}
	res := s.db.Delete(&storageLocationRow{}, id)
	if res.Error != nil {
		return respondErr(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return respondErr(c, http.StatusNotFound, "storage location not found")
	}
	return respond(c, http.StatusOK, nil)
}
