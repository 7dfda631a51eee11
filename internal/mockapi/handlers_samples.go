package mockapi

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/THANGADHIWAN/focal/internal/model"
)

func parsePageLimit(c echo.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = defaultLimit
	}
	return page, limit
}

// sampleQuery applies the repeated-key multi-select filters plus search
// and the created date range.
func (s *Server) sampleQuery(c echo.Context) *gorm.DB {
	q := s.db.Model(&sampleRow{})
	params := c.QueryParams()

	if types := params["type"]; len(types) > 0 {
		q = q.Where("type_name IN ?", types)
	}
	if statuses := params["status"]; len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if locations := params["location"]; len(locations) > 0 {
		q = q.Where("location IN ?", locations)
	}
	if owners := params["owner"]; len(owners) > 0 {
		q = q.Where("created_by IN ?", owners)
	}
	if search := c.QueryParam("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR code LIKE ? OR notes LIKE ?", like, like, like)
	}
	if from := c.QueryParam("created_from"); from != "" {
		if ts, err := time.Parse("2006-01-02", from); err == nil {
			q = q.Where("created_at >= ?", ts)
		}
	}
	if to := c.QueryParam("created_to"); to != "" {
		if ts, err := time.Parse("2006-01-02", to); err == nil {
			q = q.Where("created_at < ?", ts.Add(24*time.Hour))
		}
	}
	return q
}

func (s *Server) sampleToModel(row sampleRow) model.Sample {
	updated := row.UpdatedAt
	smp := model.Sample{
		ID:        row.ID,
		Code:      row.Code,
		Name:      row.Name,
		TypeID:    row.TypeID,
		TypeName:  row.TypeName,
		Status:    row.Status,
		VolumeML:  row.VolumeML,
		CreatedBy: row.CreatedBy,
		BoxID:     row.BoxID,
		Location:  row.Location,
		Notes:     row.Notes,
		Aliquots:  []model.Aliquot{},
		CreatedAt: row.CreatedAt,
		UpdatedAt: &updated,
	}

	var aliquots []aliquotRow
	s.db.Where("sample_id = ?", row.ID).Order("created_at").Find(&aliquots)
	for _, a := range aliquots {
		smp.Aliquots = append(smp.Aliquots, s.aliquotToModel(a))
	}
	return smp
}

func (s *Server) aliquotToModel(row aliquotRow) model.Aliquot {
	updated := row.UpdatedAt
	alq := model.Aliquot{
		ID:        row.ID,
		Code:      row.Code,
		SampleID:  row.SampleID,
		VolumeML:  row.VolumeML,
		Status:    row.Status,
		Location:  row.Location,
		Purpose:   row.Purpose,
		CreatedBy: row.CreatedBy,
		Tests:     []model.Test{},
		CreatedAt: row.CreatedAt,
		UpdatedAt: &updated,
	}

	var tests []testRow
	s.db.Where("aliquot_id = ?", row.ID).Order("created_at").Find(&tests)
	for _, tr := range tests {
		alq.Tests = append(alq.Tests, testToModel(tr))
	}
	return alq
}

func testToModel(row testRow) model.Test {
	return model.Test{
		ID:         row.ID,
		Name:       row.Name,
		Method:     row.Method,
		SampleID:   row.SampleID,
		AliquotID:  row.AliquotID,
		Status:     row.Status,
		AssignedTo: row.AssignedTo,
		Notes:      row.Notes,
		CreatedAt:  row.CreatedAt,
	}
}

func (s *Server) recordEvent(sampleID, aliquotID, testID, eventType, description string) {
	s.db.Create(&timelineRow{
		ID:          uuid.NewString(),
		SampleID:    sampleID,
		AliquotID:   aliquotID,
		TestID:      testID,
		EventType:   eventType,
		Description: description,
		OccurredAt:  time.Now().UTC(),
	})
}

func (s *Server) nextSampleCode() string {
	var count int64
	s.db.Model(&sampleRow{}).Count(&count)
	return fmt.Sprintf("SMP-%03d", count+1)
}

func (s *Server) listSamples(c echo.Context) error {
	page, limit := parsePageLimit(c, 20)

	var total int64
	if err := s.sampleQuery(c).Count(&total).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}

	var rows []sampleRow
	if err := s.sampleQuery(c).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}

	samples := make([]model.Sample, 0, len(rows))
	for _, row := range rows {
		samples = append(samples, s.sampleToModel(row))
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return respond(c, http.StatusOK, map[string]any{
		"data":        samples,
		"totalCount":  total,
		"totalPages":  pages,
		"currentPage": page,
		"pageSize":    limit,
		"hasMore":     page < pages,
	})
}

func (s *Server) exportSamplesCSV(c echo.Context) error {
	var rows []sampleRow
	if err := s.sampleQuery(c).Order("created_at DESC").Find(&rows).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "sample_code", "name", "type", "status", "volume_ml", "created_by", "created_at"})
	for _, row := range rows {
		_ = w.Write([]string{
			row.ID, row.Code, row.Name, row.TypeName, row.Status,
			strconv.FormatFloat(row.VolumeML, 'f', -1, 64),
			row.CreatedBy, row.CreatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()

	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

func (s *Server) getSample(c echo.Context) error {
	var row sampleRow
	if err := s.db.First(&row, "id = ?", c.Param("id")).Error; err != nil {
		return respondErr(c, http.StatusNotFound, "sample not found")
	}
	return respond(c, http.StatusOK, s.sampleToModel(row))
}

func (s *Server) createSample(c echo.Context) error {
	var in model.SampleCreate
	if err := c.Bind(&in); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}
	if in.Name == "" {
		return respondErr(c, http.StatusUnprocessableEntity, "name is required")
	}

	now := time.Now().UTC()
	row := sampleRow{
		ID:        uuid.NewString(),
		Code:      s.nextSampleCode(),
		Name:      in.Name,
		TypeID:    in.TypeID,
		Status:    in.Status,
		VolumeML:  in.VolumeML,
		CreatedBy: in.CreatedBy,
		BoxID:     in.BoxID,
		Location:  in.Location,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if row.Status == "" {
		row.Status = "Received"
	}
	var lookup lookupRow
	if err := s.db.First(&lookup, "category = ? AND id = ?", "sample_types", in.TypeID).Error; err == nil {
		row.TypeName = lookup.Value
	}

	if err := s.db.Create(&row).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	s.recordEvent(row.ID, "", "", "created", "Sample registered")
	return respond(c, http.StatusCreated, s.sampleToModel(row))
}

func (s *Server) updateSample(c echo.Context) error {
	var row sampleRow
	if err := s.db.First(&row, "id = ?", c.Param("id")).Error; err != nil {
		return respondErr(c, http.StatusNotFound, "sample not found")
	}

	var patch model.SampleUpdate
	if err := c.Bind(&patch); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}

	if patch.Name != nil {
		row.Name = *patch.Name
	}
	if patch.Status != nil {
		row.Status = *patch.Status
	}
	if patch.VolumeML != nil {
		row.VolumeML = *patch.VolumeML
	}
	if patch.BoxID != nil {
		row.BoxID = *patch.BoxID
	}
	if patch.Location != nil {
		row.Location = *patch.Location
	}
	if patch.Notes != nil {
		row.Notes = *patch.Notes
	}
	row.UpdatedAt = time.Now().UTC()

	if err := s.db.Save(&row).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	s.recordEvent(row.ID, "", "", "updated", "Sample updated")
	return respond(c, http.StatusOK, s.sampleToModel(row))
}

func (s *Server) deleteSample(c echo.Context) error {
	id := c.Param("id")
	res := s.db.Delete(&sampleRow{}, "id = ?", id)
	if res.Error != nil {
		return respondErr(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return respondErr(c, http.StatusNotFound, "sample not found")
	}
	s.db.Delete(&aliquotRow{}, "sample_id = ?", id)
	s.db.Delete(&testRow{}, "sample_id = ?", id)
	return respond(c, http.StatusOK, nil)
}

func (s *Server) listAliquots(c echo.Context) error {
	var rows []aliquotRow
	if err := s.db.Where("sample_id = ?", c.Param("id")).Order("created_at").Find(&rows).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	aliquots := make([]model.Aliquot, 0, len(rows))
	for _, row := range rows {
		aliquots = append(aliquots, s.aliquotToModel(row))
	}
	return respond(c, http.StatusOK, aliquots)
}

func (s *Server) getAliquot(c echo.Context) error {
	var row aliquotRow
	err := s.db.First(&row, "id = ? AND sample_id = ?", c.Param("aliquotID"), c.Param("id")).Error
	if err != nil {
		return respondErr(c, http.StatusNotFound, "aliquot not found")
	}
	return respond(c, http.StatusOK, s.aliquotToModel(row))
}

func (s *Server) createAliquot(c echo.Context) error {
	sampleID := c.Param("id")
	var sample sampleRow
	if err := s.db.First(&sample, "id = ?", sampleID).Error; err != nil {
		return respondErr(c, http.StatusNotFound, "sample not found")
	}

	var in model.AliquotCreate
	if err := c.Bind(&in); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}

	// Splitting more volume than the sample has left is rejected here the
	// same way the real backend does.
	var used float64
	s.db.Model(&aliquotRow{}).Where("sample_id = ?", sampleID).
		Select("COALESCE(SUM(volume_ml), 0)").Scan(&used)
	if in.VolumeML > sample.VolumeML-used {
		return respondErr(c, http.StatusUnprocessableEntity, "aliquot volume exceeds remaining sample volume")
	}

	var count int64
	s.db.Model(&aliquotRow{}).Count(&count)
	now := time.Now().UTC()
	row := aliquotRow{
		ID:        uuid.NewString(),
		Code:      fmt.Sprintf("ALQ-%03d", count+1),
		SampleID:  sampleID,
		VolumeML:  in.VolumeML,
		Status:    in.Status,
		Location:  in.Location,
		Purpose:   in.Purpose,
		CreatedBy: in.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if row.Status == "" {
		row.Status = "Available"
	}

	if err := s.db.Create(&row).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	s.recordEvent(sampleID, row.ID, "", "aliquot_created", "Aliquot "+row.Code+" split")
	return respond(c, http.StatusCreated, s.aliquotToModel(row))
}

func (s *Server) updateAliquot(c echo.Context) error {
	var row aliquotRow
	err := s.db.First(&row, "id = ? AND sample_id = ?", c.Param("aliquotID"), c.Param("id")).Error
	if err != nil {
		return respondErr(c, http.StatusNotFound, "aliquot not found")
	}

	var patch model.AliquotUpdate
	if err := c.Bind(&patch); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}
	if patch.VolumeML != nil {
		row.VolumeML = *patch.VolumeML
	}
	if patch.Status != nil {
		row.Status = *patch.Status
	}
	if patch.Purpose != nil {
		row.Purpose = *patch.Purpose
	}
	row.UpdatedAt = time.Now().UTC()

	if err := s.db.Save(&row).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	s.recordEvent(row.SampleID, row.ID, "", "aliquot_updated", "Aliquot updated")
	return respond(c, http.StatusOK, s.aliquotToModel(row))
}

func (s *Server) updateAliquotLocation(c echo.Context) error {
	var row aliquotRow
	err := s.db.First(&row, "id = ? AND sample_id = ?", c.Param("aliquotID"), c.Param("id")).Error
	if err != nil {
		return respondErr(c, http.StatusNotFound, "aliquot not found")
	}

	var body struct {
		Location string `json:"location"`
	}
	if err := c.Bind(&body); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}

	row.Location = body.Location
	row.UpdatedAt = time.Now().UTC()
	if err := s.db.Save(&row).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	s.recordEvent(row.SampleID, row.ID, "", "aliquot_moved", "Aliquot moved to "+body.Location)
	return respond(c, http.StatusOK, s.aliquotToModel(row))
}

func (s *Server) deleteAliquot(c echo.Context) error {
	res := s.db.Delete(&aliquotRow{}, "id = ? AND sample_id = ?", c.Param("aliquotID"), c.Param("id"))
	if res.Error != nil {
		return respondErr(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return respondErr(c, http.StatusNotFound, "aliquot not found")
	}
	s.db.Delete(&testRow{}, "aliquot_id = ?", c.Param("aliquotID"))
	return respond(c, http.StatusOK, nil)
}

func (s *Server) listTests(c echo.Context) error {
	var rows []testRow
	err := s.db.Where("aliquot_id = ? AND sample_id = ?", c.Param("aliquotID"), c.Param("id")).
		Order("created_at").Find(&rows).Error
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	tests := make([]model.Test, 0, len(rows))
	for _, row := range rows {
		tests = append(tests, testToModel(row))
	}
	return respond(c, http.StatusOK, tests)
}

func (s *Server) getTest(c echo.Context) error {
	var row testRow
	err := s.db.First(&row, "id = ? AND aliquot_id = ?", c.Param("testID"), c.Param("aliquotID")).Error
	if err != nil {
		return respondErr(c, http.StatusNotFound, "test not found")
	}
	return respond(c, http.StatusOK, testToModel(row))
}

func (s *Server) createTest(c echo.Context) error {
	sampleID, aliquotID := c.Param("id"), c.Param("aliquotID")
	var aliquot aliquotRow
	if err := s.db.First(&aliquot, "id = ? AND sample_id = ?", aliquotID, sampleID).Error; err != nil {
		return respondErr(c, http.StatusNotFound, "aliquot not found")
	}

	var in model.TestCreate
	if err := c.Bind(&in); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}
	if in.Name == "" {
		return respondErr(c, http.StatusUnprocessableEntity, "name is required")
	}

	row := testRow{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Method:     in.Method,
		SampleID:   sampleID,
		AliquotID:  aliquotID,
		Status:     model.TestStatusPending,
		AssignedTo: in.AssignedTo,
		Notes:      in.Notes,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.db.Create(&row).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	s.recordEvent(sampleID, aliquotID, row.ID, "test_scheduled", "Test "+row.Name+" scheduled")
	return respond(c, http.StatusCreated, testToModel(row))
}

func (s *Server) updateTest(c echo.Context) error {
	var row testRow
	err := s.db.First(&row, "id = ? AND aliquot_id = ?", c.Param("testID"), c.Param("aliquotID")).Error
	if err != nil {
		return respondErr(c, http.StatusNotFound, "test not found")
	}

	var patch model.TestUpdate
	if err := c.Bind(&patch); err != nil {
		return respondErr(c, http.StatusUnprocessableEntity, err.Error())
	}
	if patch.Status != nil {
		row.Status = *patch.Status
	}
	if patch.Notes != nil {
		row.Notes = *patch.Notes
	}

	if err := s.db.Save(&row).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	s.recordEvent(row.SampleID, row.AliquotID, row.ID, "test_updated", "Test "+row.Name+" updated")
	return respond(c, http.StatusOK, testToModel(row))
}

func (s *Server) deleteTest(c echo.Context) error {
	res := s.db.Delete(&testRow{}, "id = ? AND aliquot_id = ?", c.Param("testID"), c.Param("aliquotID"))
	if res.Error != nil {
		return respondErr(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return respondErr(c, http.StatusNotFound, "test not found")
	}
	return respond(c, http.StatusOK, nil)
}

func timelineToModel(rows []timelineRow) []model.TimelineEvent {
	events := make([]model.TimelineEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, model.TimelineEvent{
			ID:          row.ID,
			SampleID:    row.SampleID,
			AliquotID:   row.AliquotID,
			TestID:      row.TestID,
			EventType:   row.EventType,
			Description: row.Description,
			PerformedBy: row.PerformedBy,
			OccurredAt:  row.OccurredAt,
		})
	}
	return events
}

func (s *Server) sampleTimeline(c echo.Context) error {
	q := s.db.Where("sample_id = ?", c.Param("id")).Order("occurred_at DESC")
	if limit, _ := strconv.Atoi(c.QueryParam("limit")); limit > 0 {
		q = q.Limit(limit)
	}
	var rows []timelineRow
	if err := q.Find(&rows).Error; err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	return respond(c, http.StatusOK, timelineToModel(rows))
}

func (s *Server) aliquotTimeline(c echo.Context) error {
	var rows []timelineRow
	err := s.db.Where("sample_id = ? AND aliquot_id = ?", c.Param("id"), c.Param("aliquotID")).
		Order("occurred_at DESC").Find(&rows).Error
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	return respond(c, http.StatusOK, timelineToModel(rows))
}

func (s *Server) testTimeline(c echo.Context) error {
	var rows []timelineRow
	err := s.db.Where("sample_id = ? AND test_id = ?", c.Param("id"), c.Param("testID")).
		Order("occurred_at DESC").Find(&rows).Error
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, err.Error())
	}
	return respond(c, http.StatusOK, timelineToModel(rows))
}
