// Package monitor is the seam where the STOMP frame codec, the
// WebSocket transport, and the transport-network graph meet. It owns
// one wsclient.Client and one transportnetwork.Network, sends the STOMP
// CONNECT frame followed at once by SUBSCRIBE (it does not wait for the
// server's CONNECTED first), and applies each incoming passenger event
// to the graph.
package monitor

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tubenet/networkmonitor/internal/config"
	"github.com/tubenet/networkmonitor/stompframe"
	"github.com/tubenet/networkmonitor/transportnetwork"
	"github.com/tubenet/networkmonitor/wsclient"
)

const stompVersion = "1.2"
const subscriptionID = "networkmonitor-0"

// Monitor connects to a single STOMP-over-WebSocket feed and applies
// every passenger event it carries to a transportnetwork.Network.
type Monitor struct {
	cfg  config.Config
	net  *transportnetwork.Network
	log  *logrus.Entry
	done chan error
}

// NewMonitor constructs a Monitor. It does not connect; call Run.
func NewMonitor(cfg config.Config, net *transportnetwork.Network, log *logrus.Entry) *Monitor {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Monitor{cfg: cfg, net: net, log: log, done: make(chan error, 1)}
}

// Run connects, performs the STOMP handshake, subscribes to the
// configured destination, and applies every MESSAGE frame's decoded
// event to the network until ctx is canceled, the transport
// disconnects, or an ERROR frame arrives.
func (m *Monitor) Run(ctx context.Context) error {
	wsCfg := wsclient.Config{
		Endpoint: wsclient.Endpoint{
			Host: m.cfg.Host,
			Path: m.cfg.Path,
			Port: m.cfg.Port,
		},
		CACertPath:     m.cfg.CACertPath,
		ConnectTimeout: m.cfg.ConnectTimeout,
	}

	client, err := wsclient.NewClient(wsCfg, m.log.WithField("component", "wsclient"))
	if err != nil {
		return errors.Wrap(err, "monitor: construct transport")
	}

	connected := make(chan error, 1)
	client.Connect(
		func(err error) { connected <- err },
		func(err error, payload string) { m.onMessage(client, err, payload) },
		func(err error) { m.onDisconnect(err) },
	)

	select {
	case <-ctx.Done():
		client.Close(nil)
		return ctx.Err()
	case err := <-connected:
		if err != nil {
			return errors.Wrap(err, "monitor: connect")
		}
	}

	if err := m.handshake(client); err != nil {
		client.Close(nil)
		return err
	}

	select {
	case <-ctx.Done():
		client.Close(nil)
		return ctx.Err()
	case err := <-m.done:
		return err
	}
}

func (m *Monitor) handshake(client *wsclient.Client) error {
	connect := stompframe.NewFrame(stompframe.CommandConnect, nil)
	connect.SetHeader(stompframe.HeaderAcceptVersion, stompVersion)
	connect.SetHeader(stompframe.HeaderHost, m.cfg.Host)
	if m.cfg.Login != "" {
		connect.SetHeader(stompframe.HeaderLogin, m.cfg.Login)
	}
	if m.cfg.Passcode != "" {
		connect.SetHeader(stompframe.HeaderPasscode, m.cfg.Passcode)
	}
	if err := m.sendFrame(client, connect); err != nil {
		return errors.Wrap(err, "monitor: send CONNECT")
	}

	subscribe := stompframe.NewFrame(stompframe.CommandSubscribe, nil)
	subscribe.SetHeader(stompframe.HeaderID, subscriptionID)
	subscribe.SetHeader(stompframe.HeaderDestination, m.cfg.Destination)
	if err := m.sendFrame(client, subscribe); err != nil {
		return errors.Wrap(err, "monitor: send SUBSCRIBE")
	}
	return nil
}

func (m *Monitor) sendFrame(client *wsclient.Client, f *stompframe.Frame) error {
	data, err := stompframe.Serialize(f)
	if err != nil {
		return err
	}
	sent := make(chan error, 1)
	client.Send(string(data), func(err error, n int) { sent <- err })
	return <-sent
}

func (m *Monitor) onMessage(client *wsclient.Client, err error, payload string) {
	if err != nil {
		m.finish(errors.Wrap(err, "monitor: transport read"))
		return
	}

	frame, err := stompframe.Parse([]byte(payload))
	if err != nil {
		m.log.WithError(err).Warn("monitor: dropping unparseable frame")
		return
	}

	switch frame.Command {
	case stompframe.CommandConnected:
		m.log.Info("monitor: STOMP session established")
	case stompframe.CommandMessage:
		ev, err := decodePassengerEvent(frame.Body)
		if err != nil {
			m.log.WithError(err).Warn("monitor: dropping undecodable event")
			return
		}
		if err := m.net.RecordPassengerEvent(ev); err != nil {
			m.log.WithError(err).Warn("monitor: dropping event for unknown station")
		}
	case stompframe.CommandError:
		msg, _ := frame.Header(stompframe.HeaderMessage)
		m.finish(errors.Errorf("monitor: feed sent ERROR: %s", msg))
	case stompframe.CommandReceipt:
	default:
		m.log.WithField("command", frame.Command).Warn("monitor: unexpected frame")
	}
}

func (m *Monitor) onDisconnect(err error) {
	if err != nil {
		m.finish(errors.Wrap(err, "monitor: transport disconnected"))
		return
	}
	m.finish(nil)
}

func (m *Monitor) finish(err error) {
	select {
	case m.done <- err:
	default:
	}
}
