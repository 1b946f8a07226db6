package byke

import (
	"fmt"
	"reflect"
)

// AddMessage registers the message type E. Messages written in one frame
// can be read until the end of the next frame.
func AddMessage[E any](app *App) {
	app.InsertResource(Messages[E]{})
	app.AddSystems(Last, updateMessagesSystem[E])
}

func updateMessagesSystem[E any](messages *Messages[E]) {
	messages.Update()
}

type MessageId uint64

type messageWithId[E any] struct {
	Id      MessageId
	Message E
}

// Messages is the resource holding the messages of type E of the
// current and the previous frame.
type Messages[E any] struct {
	lastId MessageId
	curr   []messageWithId[E]
	prev   []messageWithId[E]
}

func (m *Messages[E]) Send(message E) {
	m.lastId += 1
	m.curr = append(m.curr, messageWithId[E]{Id: m.lastId, Message: message})
}

// Update drops the messages of the previous frame.
func (m *Messages[E]) Update() {
	m.curr, m.prev = m.prev, m.curr

	clear(m.curr)
	m.curr = m.curr[:0]
}

func messagesOf[E any](world *World) *Messages[E] {
	messages, ok := ResourceOf[Messages[E]](world)
	if !ok {
		panic(fmt.Sprintf("message type %s not registered", reflect.TypeFor[E]()))
	}

	return messages
}

// MessageWriter is a SystemParam to send messages of type E.
// It must be injected as a pointer.
type MessageWriter[E any] struct {
	messages *Messages[E]
}

func (*MessageWriter[E]) init(world *World) SystemParamState {
	writer := &MessageWriter[E]{messages: messagesOf[E](world)}
	return valueSystemParamState(reflect.ValueOf(writer))
}

func (w *MessageWriter[E]) Write(message E) {
	w.messages.Send(message)
}

// MessageReader is a SystemParam to read messages of type E. Each system has its
// own reader and sees every message once. It must be injected as a pointer.
type MessageReader[E any] struct {
	messages *Messages[E]
	lastId   MessageId
	scratch  []E
}

func (*MessageReader[E]) init(world *World) SystemParamState {
	reader := &MessageReader[E]{messages: messagesOf[E](world)}
	return valueSystemParamState(reflect.ValueOf(reader))
}

// Read returns all messages not yet read by this reader. The returned slice
// is reused by the next call to Read.
func (r *MessageReader[E]) Read() []E {
	messages := r.scratch[:0]

	for _, buffer := range [][]messageWithId[E]{r.messages.prev, r.messages.curr} {
		for _, message := range buffer {
			if message.Id <= r.lastId {
				continue
			}

			messages = append(messages, message.Message)
			r.lastId = message.Id
		}
	}

	r.scratch = messages

	return messages
}
