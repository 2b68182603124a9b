package services

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/kerbaras/guya/pkg/config"
	"github.com/kerbaras/guya/pkg/data"
	"github.com/kerbaras/guya/pkg/integrations"
	"github.com/kerbaras/guya/pkg/preferences"
	"github.com/kerbaras/guya/pkg/sources"
)

// Controller wires the reader's services for one process.
type Controller struct {
	Config   *config.Config
	Log      *zap.SugaredLogger
	Repo     *data.Repository
	Prefs    *preferences.Store
	Catalog  *Catalog
	Images   *sources.ImageFetcher
	Links    sources.Links
	Exporter *Exporter
}

func NewController(cfg *config.Config, log *zap.SugaredLogger) (*Controller, error) {
	repo, err := data.NewDuckDBRepository(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	weights, err := sources.LoadWeights(cfg.WeightsFile)
	if err != nil {
		repo.Close()
		return nil, err
	}

	newWriter, err := integrations.WriterFactory(cfg.ExportFormat, cfg.ExportDir)
	if err != nil {
		repo.Close()
		return nil, err
	}

	client := http.DefaultClient
	prefs := preferences.NewStore(repo, cfg.DefaultGroup, log)
	images := sources.NewImageFetcher(client, log)
	links := sources.NewLinks(cfg.MediaURL, cfg.APIURL)
	catalog := NewCatalog(sources.NewGuya(cfg.APIURL, client, log), weights, log)

	exporter := NewExporter(images, links, prefs, newWriter,
		ExporterOptions{
			Concurrency: cfg.ExportConcurrency,
			RPS:         cfg.ExportRPS,
		}, log)

	return &Controller{
		Config:   cfg,
		Log:      log,
		Repo:     repo,
		Prefs:    prefs,
		Catalog:  catalog,
		Images:   images,
		Links:    links,
		Exporter: exporter,
	}, nil
}

// NewSession opens book for reading.
func (c *Controller) NewSession(book *data.Book) *Session {
	return NewSession(book, c.Prefs, c.Repo, c.Log)
}

func (c *Controller) Close() error {
	return c.Repo.Close()
}
