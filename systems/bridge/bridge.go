// Package bridge publishes registered accessories over HomeKit Accessory Protocol.
package bridge

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/brutella/hap"
	"github.com/brutella/hap/accessory"
	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/plugins/platform"
	"github.com/go-home-io/sip-bridge/providers"
	"github.com/pkg/errors"
)

const (
	// Logger system.
	logSystem = "hap"
	// HAP pairing storage folder inside storage.
	hapDir = "hap"
)

// HAP bridge provider.
type provider struct {
	logger   common.ILoggerProvider
	settings *providers.BridgeSettings
	store    string
}

// ConstructBridge has data required for a new bridge.
type ConstructBridge struct {
	Logger      common.ILoggerProvider
	Settings    *providers.BridgeSettings
	StoragePath string
}

// NewBridgeProvider constructs a new HAP bridge.
func NewBridgeProvider(ctor *ConstructBridge) providers.IBridgeProvider {
	return &provider{
		logger:   ctor.Logger,
		settings: ctor.Settings,
		store:    filepath.Join(ctor.StoragePath, hapDir),
	}
}

// Publish serves the bridge and accessories until context is cancelled.
func (p *provider) Publish(ctx context.Context, accessories []*platform.PlatformAccessory) error {
	root := p.root()
	published := collect(accessories)

	srv, err := hap.NewServer(hap.NewFsStore(p.store), root.A, published...)
	if err != nil {
		return errors.Wrap(err, "create hap server")
	}

	srv.Pin = p.settings.Pin
	if p.settings.Port > 0 {
		srv.Addr = fmt.Sprintf(":%d", p.settings.Port)
	}

	p.logger.Info("Publishing HomeKit bridge", common.LogSystemToken, logSystem,
		"bridge", p.settings.Name, "accessories", fmt.Sprintf("%d", len(published)), "pin", p.settings.Pin)

	err = srv.ListenAndServe(ctx)
	if err != nil && ctx.Err() == nil {
		return errors.Wrap(err, "serve hap")
	}

	return nil
}

// Bridge accessory.
func (p *provider) root() *accessory.Bridge {
	b := accessory.NewBridge(accessory.Info{
		Name:         p.settings.Name,
		Manufacturer: p.settings.Manufacturer,
	})
	b.Id = 1

	return b
}

// Collects HAP accessories, skipping the ones without identifiers.
func collect(accessories []*platform.PlatformAccessory) []*accessory.A {
	out := make([]*accessory.A, 0, len(accessories))
	for _, v := range accessories {
		if v.AID <= 1 {
			continue
		}

		out = append(out, v.HAP())
	}

	return out
}
