package mockapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/THANGADHIWAN/focal/internal/model"
)

func (s *Server) boxToModel(row boxRow) model.StorageBox {
	var used int64
	s.db.Model(&aliquotRow{}).Where("location LIKE ?", "%"+row.Label+"%").Count(&used)
	return model.StorageBox{
		ID:        row.ID,
		Label:     row.Label,
		FreezerID: row.FreezerID,
		Rows:      row.Rows,
		Columns:   row.Columns,
		UsedSlots: int(used),
		CreatedAt: row.CreatedAt,
	}
}

func freezerToModel(row freezerRow) model.Freezer {
	return model.Freezer{
		ID:          row.ID,
		Name:        row.Name,
		Location:    row.Location,
		Temperature: row.Temperature,
	}
}

func (s *Server) listBoxes(c echo.Context) error {
	q := s.db.Model(&boxRow{})
	if freezerID := c.QueryParam("freezer_id"); freezerID != "" {
		q = q.Where("freezer_id = ?", freezerID)
	}
	var rows []boxRow
	if err := q.Order("label").Find(&rows).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	boxes := make([]model.StorageBox, 0, len(rows))
	for _, row := range rows {
		boxes = append(boxes, s.boxToModel(row))
	}
	return respond(c, http.StatusOK, boxes)
}

func (s *Server) createBox(c echo.Context) error {
	var in model.StorageBoxCreate
	if err := c.Bind(&in); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}
	if in.Label == "" || in.Rows <= 0 || in.Columns <= 0 {
		return respondErr(c, http.StatusUnprocessableEntity, "label and a positive grid are required")
	}
	var freezer freezerRow
	if err := s.db.First(&freezer, "id = ?", in.FreezerID).Error; err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "freezer does not exist")
	}

	row := boxRow{
		ID:        uuid.NewString(),
		Label:     in.Label,
		FreezerID: in.FreezerID,
		Rows:      in.Rows,
		Columns:   in.Columns,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&row).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	return respond(c, http.StatusCreated, s.boxToModel(row))
}

func (s *Server) listFreezers(c echo.Context) error {
	var rows []freezerRow
	if err := s.db.Order("name").Find(&rows).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	freezers := make([]model.Freezer, 0, len(rows))
	for _, row := range rows {
		freezers = append(freezers, freezerToModel(row))
	}
	return respond(c, http.StatusOK, freezers)
}

func (s *Server) createFreezer(c echo.Context) error {
	var in model.FreezerCreate
	if err := c.Bind(&in); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}
	if in.Name == "" {
		return respondErr(c, http.StatusUnprocessableEntity, "name is required")
	}

	row := freezerRow{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Location:    in.Location,
		Temperature: in.Temperature,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	return respond(c, http.StatusCreated, freezerToModel(row))
}

func (s *Server) storageHierarchy(c echo.Context) error {
	var freezers []freezerRow
	if err := s.db.Order("name").Find(&freezers).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}

	tree := model.StorageHierarchy{Freezers: []model.FreezerNode{}}
	for _, f := range freezers {
		var boxes []boxRow
		s.db.Where("freezer_id = ?", f.ID).Order("label").Find(&boxes)
		node := model.FreezerNode{Freezer: freezerToModel(f), Boxes: []model.StorageBox{}}
		for _, b := range boxes {
			node.Boxes = append(node.Boxes, s.boxToModel(b))
		}
		tree.Freezers = append(tree.Freezers, node)
	}
	return respond(c, http.StatusOK, tree)
}

func (s *Server) availableSlots(c echo.Context) error {
	boxID := c.QueryParam("box_id")
	if boxID == "" {
		return respondErr(c, http.StatusUnprocessableEntity, "box_id is required")
	}
	var box boxRow
	if err := s.db.First(&box, "id = ?", boxID).Error; err != nil {
		return respondErr(c, http.StatusNotFound, "box not found")
	}

	// Slot positions are letters for rows, numbers for columns (A1..).
	slots := make([]model.AvailableSlot, 0, box.Rows*box.Columns)
	for r := 0; r < box.Rows; r++ {
		for col := 1; col <= box.Columns; col++ {
			position := fmt.Sprintf("%c%d", 'A'+r, col)
			var taken int64
			s.db.Model(&aliquotRow{}).
				Where("location = ?", box.Label+" / "+position).
				Count(&taken)
			if taken == 0 {
				slots = append(slots, model.AvailableSlot{BoxID: box.ID, Position: position})
			}
		}
	}
	return respond(c, http.StatusOK, slots)
}
