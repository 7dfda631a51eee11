package mockapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/THANGADHIWAN/focal/internal/model"
)

func (s *Server) productToModel(row productRow) model.Product {
	var sampleCount, testCount int64
	// Sample association is by matching product code prefix in the notes
	// field on real data; the mock just counts everything for the badges.
	s.db.Model(&sampleRow{}).Count(&sampleCount)
	s.db.Model(&testRow{}).Count(&testCount)

	return model.Product{
		ID:          row.ID,
		Code:        row.Code,
		Name:        row.Name,
		Description: row.Description,
		Status:      model.ProductStatus(row.Status),
		SampleCount: int(sampleCount),
		TestCount:   int(testCount),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func (s *Server) productQuery(c echo.Context) *gorm.DB {
	q := s.db.Model(&productRow{})
	if statuses := c.QueryParams()["status"]; len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if search := c.QueryParam("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR code LIKE ? OR description LIKE ?", like, like, like)
	}
	return q
}

func (s *Server) listProducts(c echo.Context) error {
	page, limit := parsePageLimit(c, 20)

	var total int64
	if err := s.productQuery(c).Count(&total).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}

	var rows []productRow
	if err := s.productQuery(c).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}

	items := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		items = append(items, s.productToModel(row))
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return respond(c, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
		"page":  page,
		"size":  limit,
		"pages": pages,
	})
}

func (s *Server) getProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "product id must be an integer")
	}
	var row productRow
	if err := s.db.First(&row, id).Error; err != nil {
		return respondErr(c, http.StatusNotFound, "product not found")
	}
	return respond(c, http.StatusOK, s.productToModel(row))
}

func (s *Server) createProduct(c echo.Context) error {
	var in model.ProductCreate
	if err := c.Bind(&in); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}
	if in.Name == "" {
		return respondErr(c, http.StatusUnprocessableEntity, "product_name is required")
	}

	var count int64
	s.db.Model(&productRow{}).Count(&count)
	now := time.Now().UTC()
	row := productRow{
		Code:        "PRD-" + pad3(int(count)+1),
		Name:        in.Name,
		Description: in.Description,
		Status:      string(in.Status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if row.Status == "" {
		row.Status = string(model.ProductNotStarted)
	}

	if err := s.db.Create(&row).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	return respond(c, http.StatusCreated, s.productToModel(row))
}

func (s *Server) updateProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "product id must be an integer")
	}
	var row productRow
	if err := s.db.First(&row, id).Error; err != nil {
		return respondErr(c, http.StatusNotFound, "product not found")
	}

	var patch model.ProductUpdate
	if err := c.Bind(&patch); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}
	if patch.Name != nil {
		row.Name = *patch.Name
	}
	if patch.Description != nil {
		row.Description = *patch.Description
	}
	if patch.Status != nil {
		row.Status = string(*patch.Status)
	}
	row.UpdatedAt = time.Now().UTC()

	if err := s.db.Save(&row).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	return respond(c, http.StatusOK, s.productToModel(row))
}

func (s *Server) deleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "product id must be an integer")
	}
	res := s.db.Delete(&productRow{}, id)
	if res.Error != nil {
		return respondErr(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return respondErr(c, http.StatusNotFound, "product not found")
	}
	return respond(c, http.StatusOK, nil)
}

func (s *Server) productSummaries(c echo.Context) error {
	var rows []productRow
	if err := s.db.Order("name").Find(&rows).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	summaries := make([]model.ProductSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, model.ProductSummary{
			ID:     row.ID,
			Code:   row.Code,
			Name:   row.Name,
			Status: model.ProductStatus(row.Status),
		})
	}
	return respond(c, http.StatusOK, summaries)
}

func (s *Server) productSamples(c echo.Context) error {
	if _, err := strconv.Atoi(c.Param("id")); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "product id must be an integer")
	}
	var rows []sampleRow
	if err := s.db.Order("created_at DESC").Find(&rows).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	samples := make([]model.Sample, 0, len(rows))
	for _, row := range rows {
		samples = append(samples, s.sampleToModel(row))
	}
	return respond(c, http.StatusOK, samples)
}

func (s *Server) productTests(c echo.Context) error {
	if _, err := strconv.Atoi(c.Param("id")); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, "product id must be an integer")
	}
	var rows []testRow
	if err := s.db.Order("created_at DESC").Find(&rows).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	tests := make([]model.Test, 0, len(rows))
	for _, row := range rows {
		tests = append(tests, testToModel(row))
	}
	return respond(c, http.StatusOK, tests)
}

func pad3(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
