package pubsub

type Publisher interface {
	Publish(ev Event)
}

type applier interface {
	Apply(ev Event) error
}
