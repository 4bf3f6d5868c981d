// Package fanout contains implementation of pub-sub fanout channels.
package fanout

import (
	"sync"

	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/providers"
)

// Implements IInternalFanOutProvider.
type provider struct {
	sync.Mutex

	lastID int64
	stop   chan struct{}
	once   sync.Once

	inAccessoryUpdates  chan *common.MsgAccessoryUpdate
	outAccessoryUpdates map[int64]chan *common.MsgAccessoryUpdate
}

// NewFanOut constructs new FanOut provider.
func NewFanOut() providers.IInternalFanOutProvider {
	p := &provider{
		stop:                make(chan struct{}),
		inAccessoryUpdates:  make(chan *common.MsgAccessoryUpdate, 10),
		outAccessoryUpdates: make(map[int64]chan *common.MsgAccessoryUpdate),
	}

	go p.internalCycle()
	return p
}

// SubscribeAccessoryUpdates allows to subscribe to the accessory updates.
// Once stopped, returns an already closed channel.
func (p *provider) SubscribeAccessoryUpdates() (int64, chan *common.MsgAccessoryUpdate) {
	p.Lock()
	defer p.Unlock()

	c := make(chan *common.MsgAccessoryUpdate, 10)
	select {
	case <-p.stop:
		close(c)
		return 0, c
	default:
	}

	p.lastID++
	p.outAccessoryUpdates[p.lastID] = c
	return p.lastID, c
}

// UnSubscribeAccessoryUpdates allows to un-subscribe from the accessory updates.
func (p *provider) UnSubscribeAccessoryUpdates(id int64) {
	p.Lock()
	defer p.Unlock()

	c, ok := p.outAccessoryUpdates[id]
	if !ok {
		return
	}

	close(c)
	delete(p.outAccessoryUpdates, id)
}

// ChannelInAccessoryUpdates returns input channel for the accessory updates.
func (p *provider) ChannelInAccessoryUpdates() chan *common.MsgAccessoryUpdate {
	return p.inAccessoryUpdates
}

// Stop terminates broadcasting and closes all subscribers.
func (p *provider) Stop() {
	p.once.Do(func() {
		close(p.stop)

		p.Lock()
		defer p.Unlock()
		for k, v := range p.outAccessoryUpdates {
			close(v)
			delete(p.outAccessoryUpdates, k)
		}
	})
}

func (p *provider) internalCycle() {
	for {
		select {
		case u := <-p.inAccessoryUpdates:
			p.accessoryUpdates(u)
		case <-p.stop:
			return
		}
	}
}

// Broadcasts accessory updates.
// Subscribers with a full buffer miss the update.
func (p *provider) accessoryUpdates(update *common.MsgAccessoryUpdate) {
	p.Lock()
	defer p.Unlock()

	for _, v := range p.outAccessoryUpdates {
		select {
		case v <- update:
		default:
		}
	}
}
