package server

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/providers"
	"github.com/patrickmn/go-cache"
)

// Last reported accessories state.
type serverState struct {
	logger common.ILoggerProvider
	fanOut providers.IInternalFanOutProvider
	states *cache.Cache

	stop chan struct{}
	once sync.Once
}

// Constructs a new server state.
func newServerState(logger common.ILoggerProvider, fanOut providers.IInternalFanOutProvider) *serverState {
	return &serverState{
		logger: logger,
		fanOut: fanOut,
		states: cache.New(cache.NoExpiration, cache.NoExpiration),
		stop:   make(chan struct{}),
	}
}

// Subscribes to accessory updates.
func (s *serverState) start() {
	if nil == s.fanOut {
		return
	}

	id, updates := s.fanOut.SubscribeAccessoryUpdates()
	go s.listen(id, updates)
}

// Listens for accessory updates until stopped.
func (s *serverState) listen(id int64, updates chan *common.MsgAccessoryUpdate) {
	defer s.fanOut.UnSubscribeAccessoryUpdates(id)

	for {
		select {
		case <-s.stop:
			return
		case msg, ok := <-updates:
			if !ok {
				return
			}

			s.Update(msg)
		}
	}
}

// Stops listening.
func (s *serverState) close() {
	s.once.Do(func() {
		close(s.stop)
	})
}

// Update stores service state.
func (s *serverState) Update(msg *common.MsgAccessoryUpdate) {
	s.logger.Debug("Received accessory update", common.LogSystemToken, logSystem,
		common.LogUUIDToken, msg.UUID, common.LogServiceToken, msg.Service)
	s.states.Set(stateKey(msg.UUID, msg.Service, msg.Index), msg, cache.NoExpiration)
}

// GetAccessory returns last known state of every accessory service.
func (s *serverState) GetAccessory(id string) []*common.MsgAccessoryUpdate {
	prefix := id + "/"
	out := make([]*common.MsgAccessoryUpdate, 0)
	for k, v := range s.states.Items() {
		if !strings.HasPrefix(k, prefix) {
			continue
		}

		out = append(out, v.Object.(*common.MsgAccessoryUpdate))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Service == out[j].Service {
			return out[i].Index < out[j].Index
		}

		return out[i].Service < out[j].Service
	})

	return out
}

func stateKey(id string, service string, index int) string {
	return fmt.Sprintf("%s/%s/%d", id, service, index)
}
