// Package platform contains the contract between the bridge host and dynamic platform plugins.
package platform

import (
	"github.com/brutella/hap/accessory"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// PlatformAccessory is a host-owned handle of a single exposed accessory.
// Plugins never construct it directly, they ask IAPI for a new one.
type PlatformAccessory struct {
	UUID         uuid.UUID
	DisplayName  string
	Category     byte
	AID          uint64
	PluginName   string
	PlatformName string

	// Context is persisted by the host between restarts.
	Context map[string]interface{}

	hap *accessory.A
}

// SerializedAccessory is a cache record of a platform accessory.
type SerializedAccessory struct {
	UUID         string                 `yaml:"uuid"`
	DisplayName  string                 `yaml:"displayName"`
	Category     byte                   `yaml:"category"`
	AID          uint64                 `yaml:"aid"`
	PluginName   string                 `yaml:"plugin"`
	PlatformName string                 `yaml:"platform"`
	Context      map[string]interface{} `yaml:"context,omitempty"`
}

// NewPlatformAccessory constructs a new accessory handle.
func NewPlatformAccessory(displayName string, id uuid.UUID, category byte) *PlatformAccessory {
	return &PlatformAccessory{
		UUID:        id,
		DisplayName: displayName,
		Category:    category,
		Context:     make(map[string]interface{}),
		hap: accessory.New(accessory.Info{
			Name:         displayName,
			SerialNumber: id.String(),
		}, category),
	}
}

// HAP returns underlying HomeKit accessory.
func (a *PlatformAccessory) HAP() *accessory.A {
	if a.AID > 0 {
		a.hap.Id = a.AID
	}

	return a.hap
}

// Serialize converts accessory into a cache record.
func (a *PlatformAccessory) Serialize() *SerializedAccessory {
	ctx := make(map[string]interface{}, len(a.Context))
	for k, v := range a.Context {
		ctx[k] = v
	}

	return &SerializedAccessory{
		UUID:         a.UUID.String(),
		DisplayName:  a.DisplayName,
		Category:     a.Category,
		AID:          a.AID,
		PluginName:   a.PluginName,
		PlatformName: a.PlatformName,
		Context:      ctx,
	}
}

// Deserialize restores accessory from a cache record.
func Deserialize(rec *SerializedAccessory) (*PlatformAccessory, error) {
	id, err := uuid.Parse(rec.UUID)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid accessory uuid %q", rec.UUID)
	}

	a := NewPlatformAccessory(rec.DisplayName, id, rec.Category)
	a.AID = rec.AID
	a.PluginName = rec.PluginName
	a.PlatformName = rec.PlatformName
	for k, v := range rec.Context {
		a.Context[k] = v
	}

	return a, nil
}
