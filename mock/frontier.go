package mock

import (
	"searchlite"
)

var _ searchlite.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of searchlite.Frontier.
type Frontier struct {
	EnqueueFn     func(url string, priority searchlite.LinkPriority) bool
	DequeueFn     func() (string, bool)
	MarkIndexedFn func(url string)
	IndexedFn     func(url string) bool
	LenFn         func() int
}

func (f *Frontier) Enqueue(url string, priority searchlite.LinkPriority) bool {
	return f.EnqueueFn(url, priority)
}

func (f *Frontier) Dequeue() (string, bool) {
	return f.DequeueFn()
}

func (f *Frontier) MarkIndexed(url string) {
	f.MarkIndexedFn(url)
}

func (f *Frontier) Indexed(url string) bool {
	return f.IndexedFn(url)
}

func (f *Frontier) Len() int {
	return f.LenFn()
}
