package providers

import "github.com/go-home-io/sip-bridge/plugins/common"

// IInternalFanOutProvider defines internal interface for the fan-out channel.
type IInternalFanOutProvider interface {
	SubscribeAccessoryUpdates() (int64, chan *common.MsgAccessoryUpdate)
	UnSubscribeAccessoryUpdates(int64)
	ChannelInAccessoryUpdates() chan *common.MsgAccessoryUpdate
	Stop()
}
