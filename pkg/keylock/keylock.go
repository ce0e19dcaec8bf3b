package keylock

import (
	"context"
	"sync"
)

// KeyLock сериализует работу по ключу: один держатель на ключ в пределах процесса.
// Записи удаляются, когда у ключа не остается ни держателя, ни ожидающих.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	ch      chan struct{}
	waiters int
}

// New создает пустой KeyLock
func New() *KeyLock {
	return &KeyLock{locks: make(map[string]*entry)}
}

// Lock захватывает ключ, ожидая освобождения или отмены контекста.
// Возвращает функцию освобождения.
func (l *KeyLock) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.waiters++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e, false)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.release(key, e, true) })
	}, nil
}

func (l *KeyLock) release(key string, e *entry, held bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if held {
		<-e.ch
	}
	e.waiters--
	if e.waiters == 0 {
		delete(l.locks, key)
	}
}

// Len возвращает количество ключей, по которым есть держатель или ожидающие
func (l *KeyLock) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
