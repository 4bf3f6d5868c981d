// Package cache contains persistent accessory cache.
package cache

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/plugins/platform"
	"github.com/go-home-io/sip-bridge/providers"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// Logger system.
	logSystem = "cache"
	// Cache folder inside storage.
	cacheDir = "accessories"
	// Cache file name.
	cacheFile = "cachedAccessories.yaml"
	// Cache flush schedule.
	flushSpec = "@every 1m"
)

// File-based accessory cache.
type provider struct {
	sync.Mutex
	logger common.ILoggerProvider
	file   string

	records map[uuid.UUID]*platform.SerializedAccessory
	dirty   bool
}

// ConstructCache has data required for a new cache provider.
type ConstructCache struct {
	Logger      common.ILoggerProvider
	Cron        providers.ICronProvider
	StoragePath string
}

// NewCacheProvider creates a new accessory cache, stored under storage path.
// Pending changes are flushed periodically.
func NewCacheProvider(ctor *ConstructCache) providers.IAccessoryCacheProvider {
	p := &provider{
		logger:  ctor.Logger,
		file:    filepath.Join(ctor.StoragePath, cacheDir, cacheFile),
		records: make(map[uuid.UUID]*platform.SerializedAccessory),
	}

	if nil != ctor.Cron {
		_, err := ctor.Cron.AddFunc(flushSpec, p.flush)
		if err != nil {
			p.logger.Error("Failed to register cache flush", err, common.LogSystemToken, logSystem)
		}
	}

	return p
}

// Load reads cached accessories from disk.
// Missing file means empty cache.
func (p *provider) Load() ([]*platform.SerializedAccessory, error) {
	p.Lock()
	defer p.Unlock()

	data, err := ioutil.ReadFile(p.file)
	if os.IsNotExist(err) {
		p.logger.Info("Accessory cache is empty", common.LogSystemToken, logSystem, common.LogFileToken, p.file)
		return []*platform.SerializedAccessory{}, nil
	}

	if err != nil {
		return nil, errors.Wrap(err, "read accessory cache")
	}

	records := make([]*platform.SerializedAccessory, 0)
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "parse accessory cache")
	}

	p.records = make(map[uuid.UUID]*platform.SerializedAccessory, len(records))
	out := make([]*platform.SerializedAccessory, 0, len(records))
	for _, v := range records {
		id, err := uuid.Parse(v.UUID)
		if err != nil {
			p.logger.Warn("Skipping cached accessory with broken uuid", common.LogSystemToken, logSystem,
				common.LogUUIDToken, v.UUID)
			p.dirty = true
			continue
		}

		p.records[id] = v
		out = append(out, v)
	}

	return out, nil
}

// Put adds or replaces cached accessory.
func (p *provider) Put(a *platform.PlatformAccessory) {
	p.Lock()
	defer p.Unlock()

	p.records[a.UUID] = a.Serialize()
	p.dirty = true
}

// Delete drops cached accessory.
func (p *provider) Delete(id uuid.UUID) {
	p.Lock()
	defer p.Unlock()

	if _, ok := p.records[id]; !ok {
		return
	}

	delete(p.records, id)
	p.dirty = true
}

// Save writes cache to disk if anything changed.
func (p *provider) Save() error {
	p.Lock()
	defer p.Unlock()

	if !p.dirty {
		return nil
	}

	records := make([]*platform.SerializedAccessory, 0, len(p.records))
	for _, v := range p.records {
		records = append(records, v)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].AID != records[j].AID {
			return records[i].AID < records[j].AID
		}

		return records[i].UUID < records[j].UUID
	})

	data, err := yaml.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "marshal accessory cache")
	}

	if err := os.MkdirAll(filepath.Dir(p.file), 0700); err != nil {
		return errors.Wrap(err, "create cache folder")
	}

	tmp := p.file + ".tmp"
	if err := ioutil.WriteFile(tmp, data, 0600); err != nil {
		return errors.Wrap(err, "write accessory cache")
	}

	if err := os.Rename(tmp, p.file); err != nil {
		return errors.Wrap(err, "replace accessory cache")
	}

	p.dirty = false
	p.logger.Debug("Saved accessory cache", common.LogSystemToken, logSystem, common.LogFileToken, p.file)
	return nil
}

// Cron job.
func (p *provider) flush() {
	if err := p.Save(); err != nil {
		p.logger.Error("Failed to flush accessory cache", err, common.LogSystemToken, logSystem)
	}
}
