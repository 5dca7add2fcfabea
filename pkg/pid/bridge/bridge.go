// Package bridge forwards display and ping requests from MQTT topics to
// a PID session.
package bridge

import (
	"context"
	"strings"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
)

// Sender is the session surface the bridge drives.
type Sender interface {
	SendText(ctx context.Context, text string) error
	Ping(ctx context.Context) error
}

// Bridge subscribes to <prefix>/display and <prefix>/ping and forwards
// the payloads to the sign. Requests are funneled through a single worker
// because the session requires serialized calls.
type Bridge struct {
	Config  *Config
	Session Sender

	client paho.Client
	reqCh  chan request
}

type request struct {
	topic string
	text  string
}

// New creates a bridge.
func New(conf *Config, session Sender) *Bridge {
	return &Bridge{
		Config:  conf,
		Session: session,
		reqCh:   make(chan request, 16),
	}
}

// Run connects to the broker and processes requests until the context is
// canceled.
func (b *Bridge) Run(ctx context.Context) error {
	opts, err := clientOptions(b.Config.Broker, b.Config.ClientID)
	if err != nil {
		return err
	}
	b.client = paho.NewClient(opts)
	token := b.client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return err
	}
	defer b.client.Disconnect(250)

	enqueue := func(c paho.Client, m paho.Message) {
		select {
		case b.reqCh <- request{topic: m.Topic(), text: string(m.Payload())}:
		default:
			glog.Warningf("dropping %q, request queue full", m.Topic())
		}
	}
	prefix := b.Config.TopicPrefix
	for _, topic := range []string{prefix + "/display", prefix + "/ping"} {
		if err := subscribe(b.client, topic, enqueue); err != nil {
			return err
		}
	}

	glog.Infof("bridging %q to PID %d on %s", prefix, b.Config.Address, b.Config.Device)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-b.reqCh:
			b.handle(ctx, req)
		}
	}
}

func (b *Bridge) handle(ctx context.Context, req request) {
	var err error
	if strings.HasSuffix(req.topic, "/ping") {
		err = b.Session.Ping(ctx)
	} else {
		err = b.Session.SendText(ctx, req.text)
	}
	if err != nil {
		glog.Errorf("%s: %v", req.topic, err)
		return
	}
	glog.V(1).Infof("%s ok", req.topic)
}
