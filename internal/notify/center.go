package notify

import "sync"

// Center dispatches notifications to registered observers.
//
// Publish* delivers synchronously on the calling goroutine and must only be
// used from the render loop thread. Goroutines outside the loop use Enqueue;
// queued notifications are delivered by the next Flush, which the loop calls
// once per frame.
type Center struct {
	mu       sync.Mutex
	nextID   int
	toast    map[int]func(Toast)
	playback map[int]func(PlaybackControl)
	quit     map[int]func(Quit)

	queue chan any
}

const queueSize = 64

func NewCenter() *Center {
	return &Center{
		toast:    map[int]func(Toast){},
		playback: map[int]func(PlaybackControl){},
		quit:     map[int]func(Quit){},
		queue:    make(chan any, queueSize),
	}
}

func (c *Center) id() int {
	c.nextID++
	return c.nextID
}

// OnToast registers fn and returns a function removing it again.
func (c *Center) OnToast(fn func(Toast)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.id()
	c.toast[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.toast, id)
		c.mu.Unlock()
	}
}

func (c *Center) OnPlayback(fn func(PlaybackControl)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.id()
	c.playback[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.playback, id)
		c.mu.Unlock()
	}
}

func (c *Center) OnQuit(fn func(Quit)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.id()
	c.quit[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.quit, id)
		c.mu.Unlock()
	}
}

func (c *Center) PublishToast(t Toast) {
	for _, fn := range snapshot(c, c.toast) {
		fn(t)
	}
}

func (c *Center) PublishPlayback(p PlaybackControl) {
	for _, fn := range snapshot(c, c.playback) {
		fn(p)
	}
}

func (c *Center) PublishQuit(q Quit) {
	for _, fn := range snapshot(c, c.quit) {
		fn(q)
	}
}

// Enqueue schedules n for delivery on the next Flush. It never blocks;
// when the queue is full the notification is dropped and false returned.
func (c *Center) Enqueue(n any) bool {
	select {
	case c.queue <- n:
		return true
	default:
		return false
	}
}

// Flush delivers every queued notification and returns how many were handled.
func (c *Center) Flush() int {
	handled := 0
	for {
		select {
		case n := <-c.queue:
			c.publish(n)
			handled++
		default:
			return handled
		}
	}
}

func (c *Center) publish(n any) {
	switch v := n.(type) {
	case Toast:
		c.PublishToast(v)
	case PlaybackControl:
		c.PublishPlayback(v)
	case Quit:
		c.PublishQuit(v)
	}
}

// snapshot copies the observer set so observers may (un)register while being
// notified.
func snapshot[T any](c *Center, m map[int]func(T)) []func(T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]func(T), 0, len(m))
	for _, fn := range m {
		out = append(out, fn)
	}
	return out
}
