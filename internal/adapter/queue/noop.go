package queue

// NoopQueue drops published messages. Used when no broker is configured.
type NoopQueue struct{}

func NewNoopQueue() *NoopQueue { return &NoopQueue{} }

func (NoopQueue) Publish(string, []byte) error { return nil }

func (NoopQueue) Subscribe(string, func([]byte) error) error { return nil }

func (NoopQueue) Close() error { return nil }
