package cli

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/Makepad-fr/wegive/internal/app"
	"github.com/Makepad-fr/wegive/internal/catalog"
	"github.com/Makepad-fr/wegive/internal/config"
	"github.com/Makepad-fr/wegive/internal/geocode"
	"github.com/Makepad-fr/wegive/internal/report"
	"github.com/Makepad-fr/wegive/internal/store"
	"github.com/Makepad-fr/wegive/internal/view"
)

// session is an opened catalog behind a controller.
type session struct {
	backend store.Backend
	ctl     *app.Controller
}

func (s *session) Close() error { return s.backend.Close() }

func (e *env) open(ctx context.Context, sink report.Sink) (*session, error) {
	backend, err := store.Open(e.cfg.Store.Driver, e.cfg.Data.Dir, e.cfg.Store.File)
	if err != nil {
		return nil, err
	}
	gw, err := buildGateway(e.cfg.Geocoding)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	cat, err := catalog.New(ctx, store.NewItemStore(backend), gw)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	mv := view.NewMapView(nil, e.cfg.Map.SingleZoom)
	return &session{
		backend: backend,
		ctl:     app.New(cat, mv, sink, app.WithClock(e.now)),
	}, nil
}

// buildGateway asks the configured address table first, then Google.
func buildGateway(cfg config.GeocodingConfig) (geocode.Gateway, error) {
	var gs []geocode.Gateway
	if len(cfg.Static) > 0 {
		gs = append(gs, geocode.NewStaticGateway(cfg.Static))
	}
	if cfg.Google.APIKey != "" {
		var opts []geocode.GoogleOption
		if cfg.Google.Region != "" {
			opts = append(opts, geocode.WithRegion(cfg.Google.Region))
		}
		if cfg.Timeout > 0 {
			opts = append(opts, geocode.WithTimeout(cfg.Timeout))
		}
		g, err := geocode.NewGoogleGatewayFromKey(cfg.Google.APIKey, nil, opts...)
		if err != nil {
			return nil, err
		}
		gs = append(gs, g)
	}
	if len(gs) == 0 {
		log.WithField("prefix", "cli").Warn("no geocoder configured, submissions will fail")
	}
	return geocode.NewChainGateway(gs...), nil
}

// reportSink picks S3 when asked, the local directory otherwise.
func (e *env) reportSink(ctx context.Context, dir string, toS3 bool) (report.Sink, error) {
	if toS3 {
		s3cfg := e.cfg.Report.S3
		return report.NewS3SinkFromConfig(ctx, report.S3Config{
			Bucket:    s3cfg.Bucket,
			Prefix:    s3cfg.Prefix,
			Region:    s3cfg.Region,
			AccessKey: s3cfg.AccessKey,
			SecretKey: s3cfg.SecretKey,
		})
	}
	if dir == "" {
		dir = e.cfg.Report.Dir
	}
	return report.DirSink{Dir: dir}, nil
}
