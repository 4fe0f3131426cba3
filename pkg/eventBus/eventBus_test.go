package eventBus

import (
	"context"
	"testing"

	"github.com/ledgerscope/txdecoder/internal/tests"
	"github.com/ledgerscope/txdecoder/pkg/eventBus/eventBusTypes"
	"github.com/ledgerscope/txdecoder/pkg/historyEvents"
	"github.com/stretchr/testify/assert"
)

func Test_PublishReachesSubscribedConsumers(t *testing.T) {
	bus := NewEventBus(tests.GetLogger())

	consumer := &eventBusTypes.Consumer{
		Id:      "test-consumer",
		Context: context.Background(),
		Channel: make(chan *eventBusTypes.Event, 1),
	}
	bus.Subscribe(consumer)

	payload := &eventBusTypes.TransactionDecodedData{
		Events: []*historyEvents.HistoryEvent{{SequenceIndex: 0}},
	}
	bus.Publish(&eventBusTypes.Event{
		Name: eventBusTypes.Event_TransactionDecoded,
		Data: payload,
	})

	received := <-consumer.Channel
	assert.Equal(t, eventBusTypes.Event_TransactionDecoded, received.Name)
	assert.Equal(t, payload, received.Data)
}

func Test_PublishSkipsFullChannelAndUnsubscribed(t *testing.T) {
	bus := NewEventBus(tests.GetLogger())

	full := &eventBusTypes.Consumer{
		Id:      "full",
		Context: context.Background(),
		Channel: make(chan *eventBusTypes.Event),
	}
	gone := &eventBusTypes.Consumer{
		Id:      "gone",
		Context: context.Background(),
		Channel: make(chan *eventBusTypes.Event, 1),
	}
	bus.Subscribe(full)
	bus.Subscribe(gone)
	bus.Unsubscribe(gone)

	// Neither consumer can receive; publish must not block.
	bus.Publish(&eventBusTypes.Event{Name: eventBusTypes.Event_TransactionDecoded})
	assert.Equal(t, 0, len(gone.Channel))
}
