// internal/mqtt/publisher_test.go
package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/tamzrod/servo-telemetry/internal/drive"
	"github.com/tamzrod/servo-telemetry/internal/poller"
)

type fakeToken struct{ err error }

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

// fakeClient records publishes and satisfies the rest of the interface
// with no-ops.
type fakeClient struct {
	published  []published
	publishErr error
}

func (f *fakeClient) IsConnected() bool      { return true }
func (f *fakeClient) IsConnectionOpen() bool { return true }
func (f *fakeClient) Connect() paho.Token    { return &fakeToken{} }
func (f *fakeClient) Disconnect(uint)        {}
func (f *fakeClient) Publish(topic string, qos byte, _ bool, payload interface{}) paho.Token {
	f.published = append(f.published, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return &fakeToken{err: f.publishErr}
}
func (f *fakeClient) Subscribe(string, byte, paho.MessageHandler) paho.Token {
	return &fakeToken{}
}
func (f *fakeClient) SubscribeMultiple(map[string]byte, paho.MessageHandler) paho.Token {
	return &fakeToken{}
}
func (f *fakeClient) Unsubscribe(...string) paho.Token        { return &fakeToken{} }
func (f *fakeClient) AddRoute(string, paho.MessageHandler)    {}
func (f *fakeClient) OptionsReader() paho.ClientOptionsReader { return paho.ClientOptionsReader{} }

func testPublisher(f *fakeClient) *Publisher {
	return &Publisher{cli: f, prefix: "servo", qos: 1, log: zerolog.Nop()}
}

func sampleUpdate() poller.Update {
	tel := drive.Telemetry{
		FeedbackSpeed:  98,
		FeedbackTorque: 5.0,
		DCBusVolt:      310,
		ErrorCode:      drive.NoError,
	}
	tel.DigitalOut[drive.OutServoReady] = true
	return poller.Update{
		Drive:     "axis-x",
		At:        time.Unix(1724400000, 0).UTC(),
		Telemetry: tel,
		Failures:  2,
	}
}

// ---- tests ----

func TestPublishUpdate(t *testing.T) {
	f := &fakeClient{}
	p := testPublisher(f)

	err := p.PublishUpdate(sampleUpdate())
	assert.NoError(t, err)
	assert.Len(t, f.published, 1)
	assert.Equal(t, "servo/axis-x/telemetry", f.published[0].topic)
	assert.Equal(t, byte(1), f.published[0].qos)

	var msg telemetryMessage
	assert.NoError(t, json.Unmarshal(f.published[0].payload, &msg))
	assert.Equal(t, "axis-x", msg.Drive)
	assert.Equal(t, 98.0, msg.FeedbackSpeed)
	assert.Equal(t, 5.0, msg.FeedbackTorque)
	assert.Equal(t, uint32(2), msg.Failures)
	assert.Len(t, msg.DigitalIn, drive.NumDigitalIn)
	assert.Len(t, msg.DigitalOut, drive.NumDigitalOut)
	assert.True(t, msg.DigitalOut[drive.OutServoReady])
}

func TestPublishUpdateError(t *testing.T) {
	f := &fakeClient{publishErr: errors.New("broker gone")}
	p := testPublisher(f)

	err := p.PublishUpdate(sampleUpdate())
	assert.ErrorContains(t, err, "broker gone")
}

func TestAlarmRaised(t *testing.T) {
	f := &fakeClient{}
	p := testPublisher(f)

	p.AlarmRaised("axis-x", drive.Overvoltage)

	assert.Len(t, f.published, 1)
	assert.Equal(t, "servo/axis-x/alarm", f.published[0].topic)

	var msg alarmMessage
	assert.NoError(t, json.Unmarshal(f.published[0].payload, &msg))
	assert.Equal(t, uint16(drive.Overvoltage), msg.Code)
	assert.Equal(t, "overvoltage", msg.Message)
}

func TestAlarmRaisedUnknownCode(t *testing.T) {
	f := &fakeClient{}
	p := testPublisher(f)

	p.AlarmRaised("axis-x", drive.ErrorCode(7))

	var msg alarmMessage
	assert.NoError(t, json.Unmarshal(f.published[0].payload, &msg))
	assert.Equal(t, "unknown error code", msg.Message)
}

func TestGenerateClientID(t *testing.T) {
	a := generateClientID("servotel")
	b := generateClientID("servotel")
	assert.Regexp(t, `^servotel-[0-9a-f]{8}$`, a)
	assert.NotEqual(t, a, b)
}
