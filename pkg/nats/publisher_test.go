package nats

import (
	"context"
	"errors"
	"testing"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockJetStream embeds the interface so only Publish has to be provided.
type mockJetStream struct {
	jetstream.JetStream
	mock.Mock
}

func (m *mockJetStream) Publish(ctx context.Context, subject string, data []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	args := m.Called(ctx, subject, data)
	ack, _ := args.Get(0).(*jetstream.PubAck)
	return ack, args.Error(1)
}

type testEvent struct {
	payloadErr error
}

func (e testEvent) Subject() string { return "products.created" }

func (e testEvent) Payload() ([]byte, error) {
	if e.payloadErr != nil {
		return nil, e.payloadErr
	}
	return []byte(`{"id":1}`), nil
}

func TestPublisher_Publish(t *testing.T) {
	errBroker := errors.New("broker down")
	errPayload := errors.New("bad payload")

	testCases := []struct {
		name      string
		event     testEvent
		setupMock func(m *mockJetStream)
		wantErr   error
	}{
		{
			name:  "published",
			event: testEvent{},
			setupMock: func(m *mockJetStream) {
				m.On("Publish", mock.Anything, "products.created", []byte(`{"id":1}`)).
					Return(&jetstream.PubAck{Stream: "PRODUCTS", Sequence: 1}, nil).Once()
			},
		},
		{
			name:  "broker error is wrapped",
			event: testEvent{},
			setupMock: func(m *mockJetStream) {
				m.On("Publish", mock.Anything, "products.created", []byte(`{"id":1}`)).
					Return(nil, errBroker).Once()
			},
			wantErr: errBroker,
		},
		{
			name:      "payload error stops publishing",
			event:     testEvent{payloadErr: errPayload},
			setupMock: func(m *mockJetStream) {},
			wantErr:   errPayload,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			js := &mockJetStream{}
			tc.setupMock(js)
			publisher := NewPublisher(js)

			// when
			err := publisher.Publish(context.Background(), tc.event)

			// then
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			js.AssertExpectations(t)
			if tc.event.payloadErr != nil {
				js.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
