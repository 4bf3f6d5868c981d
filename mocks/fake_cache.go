//+build !release

package mocks

import (
	"sync"

	"github.com/go-home-io/sip-bridge/plugins/platform"
	"github.com/google/uuid"
)

// IFakeCache adds additional capabilities to a fake cache provider.
type IFakeCache interface {
	Records() map[uuid.UUID]*platform.SerializedAccessory
	Saved() int
}

type fakeCache struct {
	sync.Mutex
	initial []*platform.SerializedAccessory
	loadErr error
	records map[uuid.UUID]*platform.SerializedAccessory
	saved   int
}

func (f *fakeCache) Load() ([]*platform.SerializedAccessory, error) {
	return f.initial, f.loadErr
}

func (f *fakeCache) Put(a *platform.PlatformAccessory) {
	f.Lock()
	defer f.Unlock()
	f.records[a.UUID] = a.Serialize()
}

func (f *fakeCache) Delete(id uuid.UUID) {
	f.Lock()
	defer f.Unlock()
	delete(f.records, id)
}

func (f *fakeCache) Save() error {
	f.Lock()
	defer f.Unlock()
	f.saved++
	return nil
}

func (f *fakeCache) Records() map[uuid.UUID]*platform.SerializedAccessory {
	f.Lock()
	defer f.Unlock()

	out := make(map[uuid.UUID]*platform.SerializedAccessory, len(f.records))
	for k, v := range f.records {
		out[k] = v
	}

	return out
}

func (f *fakeCache) Saved() int {
	f.Lock()
	defer f.Unlock()
	return f.saved
}

// FakeNewCache creates a fake accessory cache pre-populated with records.
func FakeNewCache(loadErr error, records ...*platform.SerializedAccessory) *fakeCache {
	return &fakeCache{
		initial: records,
		loadErr: loadErr,
		records: make(map[uuid.UUID]*platform.SerializedAccessory),
	}
}
