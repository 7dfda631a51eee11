// Package mockapi implements an in-process LIMS backend with the same
// envelope, pagination shapes, and status semantics as the real service.
// It backs local development and end-to-end tests without a deployment.
package mockapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/THANGADHIWAN/focal/internal/logging"
)

// Version reported by the health endpoint.
const Version = "mock-1.0.0"

// Options configures the mock server.
type Options struct {
	// Seed populates the datastore with a small coherent dataset.
	Seed bool

	// Logger receives request diagnostics. Defaults to the process logger.
	Logger *slog.Logger
}

// Server is the mock backend. All state lives in an in-memory SQLite
// database and is lost on shutdown.
type Server struct {
	echo *echo.Echo
	db   *gorm.DB
	log  *slog.Logger
}

// New creates a mock server with a fresh in-memory datastore.
func New(opts Options) (*Server, error) {
	db, err := openDB()
	if err != nil {
		return nil, err
	}
	if opts.Seed {
		if err := seed(db); err != nil {
			return nil, err
		}
	}

	log := opts.Logger
	if log == nil {
		if log = logging.ForService("mockapi"); log == nil {
			log = slog.Default().With("service", "mockapi")
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{echo: e, db: db, log: log}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	g := s.echo.Group("/api/v1")

	g.GET("/samples", s.listSamples)
	g.GET("/samples/export_csv", s.exportSamplesCSV)
	g.POST("/samples", s.createSample)
	g.GET("/samples/:id", s.getSample)
	g.PATCH("/samples/:id", s.updateSample)
	g.DELETE("/samples/:id", s.deleteSample)

	g.GET("/samples/:id/aliquots", s.listAliquots)
	g.POST("/samples/:id/aliquots", s.createAliquot)
	g.GET("/samples/:id/aliquots/:aliquotID", s.getAliquot)
	g.PATCH("/samples/:id/aliquots/:aliquotID", s.updateAliquot)
	g.PATCH("/samples/:id/aliquots/:aliquotID/location", s.updateAliquotLocation)
	g.DELETE("/samples/:id/aliquots/:aliquotID", s.deleteAliquot)

	g.GET("/samples/:id/aliquots/:aliquotID/tests", s.listTests)
	g.POST("/samples/:id/aliquots/:aliquotID/tests", s.createTest)
	g.GET("/samples/:id/aliquots/:aliquotID/tests/:testID", s.getTest)
	g.PATCH("/samples/:id/aliquots/:aliquotID/tests/:testID", s.updateTest)
	g.DELETE("/samples/:id/aliquots/:aliquotID/tests/:testID", s.deleteTest)

	g.GET("/samples/:id/timeline", s.sampleTimeline)
	g.GET("/samples/:id/timeline/aliquots/:aliquotID", s.aliquotTimeline)
	g.GET("/samples/:id/timeline/tests/:testID", s.testTimeline)

	g.GET("/products", s.listProducts)
	g.POST("/products", s.createProduct)
	g.GET("/products/summaries", s.productSummaries)
	g.GET("/products/:id", s.getProduct)
	g.PUT("/products/:id", s.updateProduct)
	g.DELETE("/products/:id", s.deleteProduct)
	g.GET("/products/:id/samples", s.productSamples)
	g.GET("/products/:id/tests", s.productTests)

	g.GET("/metadata/health", s.health)
	g.GET("/metadata/all", s.metadataAll)
	g.GET("/metadata/:category", s.metadataCategory)
	g.POST("/metadata/equipment", s.createEquipment)
	g.PATCH("/metadata/equipment/:id", s.updateEquipment)
	g.DELETE("/metadata/equipment/:id", s.deleteEquipment)
	g.POST("/metadata/storage_locations", s.createStorageLocation)
	g.PATCH("/metadata/storage_locations/:id", s.updateStorageLocation)
	g.DELETE("/metadata/storage_locations/:id", s.deleteStorageLocation)

	g.GET("/storage/boxes", s.listBoxes)
	g.POST("/storage/boxes", s.createBox)
	g.GET("/storage/freezers", s.listFreezers)
	g.POST("/storage/freezers", s.createFreezer)
	g.GET("/storage/hierarchy", s.storageHierarchy)
	g.GET("/storage/available_slots", s.availableSlots)

	g.GET("/inventory/materials", s.listMaterials)
	g.POST("/inventory/materials", s.createMaterial)
	g.GET("/inventory/materials/:id", s.getMaterial)
	g.PUT("/inventory/materials/:id", s.updateMaterial)
	g.DELETE("/inventory/materials/:id", s.deleteMaterial)
	g.GET("/inventory/material-lots", s.listLots)
	g.POST("/inventory/material-lots", s.createLot)
	g.GET("/inventory/material-lots/:id", s.getLot)
	g.PUT("/inventory/material-lots/:id", s.updateLot)
	g.DELETE("/inventory/material-lots/:id", s.deleteLot)
	g.GET("/inventory/usage-logs", s.listUsageLogs)
	g.POST("/inventory/usage-logs", s.createUsageLog)
	g.DELETE("/inventory/usage-logs/:id", s.deleteUsageLog)
	g.GET("/inventory/inventory-adjustments", s.listAdjustments)
	g.POST("/inventory/inventory-adjustments", s.createAdjustment)
	g.DELETE("/inventory/inventory-adjustments/:id", s.deleteAdjustment)
}

// Handler exposes the router for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown or a listener error.
func (s *Server) Start(addr string) error {
	s.log.Info("mock backend listening", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

type envelope struct {
	Data    any    `json:"data"`
	Status  int    `json:"status"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Data: data, Status: status, Success: status < 400})
}

func respondErr(c echo.Context, status int, message string) error {
	return c.JSON(status, envelope{Status: status, Success: false, Message: message})
}

func (s *Server) health(c echo.Context) error {
	return respond(c, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": Version,
	})
}
