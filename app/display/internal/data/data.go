package data

import (
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/aura/app/aura/pkg/archive"
	"github.com/iWorld-y/aura/app/aura/pkg/config"
	"github.com/iWorld-y/aura/app/aura/pkg/storage"
)

type Data struct {
	archive *archive.Store
}

func NewData(c *config.Config, logger log.Logger) (*Data, func(), error) {
	blob, err := storage.Open(c.Archive)
	if err != nil {
		return nil, nil, err
	}
	log.NewHelper(logger).Infof("archive backend %q ready", c.Archive.Backend)

	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		if err := blob.Close(); err != nil {
			log.NewHelper(logger).Errorf("close archive: %v", err)
		}
	}
	return &Data{archive: archive.NewStore(blob, archive.WithKey(c.Archive.Key))}, cleanup, nil
}
