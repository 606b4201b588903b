package closer

import (
	"sync"

	"github.com/hogfinance/hogpool/common/rlog"
)

var log = rlog.New("closer")

// Closer is Closer inferface
type Closer interface {
	Close()
}

// Func adapts a function to a Closer
type Func func()

func (f Func) Close() {
	f()
}

// Manager closes the registered closers once, in reverse order of registration
type Manager struct {
	sync.Mutex
	isClosed bool
	names    []string
	closers  []Closer
	wg       sync.WaitGroup
}

// NewManager returns a Manager
func NewManager() *Manager {
	cm := &Manager{
		names:   []string{},
		closers: []Closer{},
	}
	cm.wg.Add(1)
	return cm
}

// IsClosed returns it is closed or not
func (cm *Manager) IsClosed() bool {
	cm.Lock()
	defer cm.Unlock()
	return cm.isClosed
}

// Add adds a closer with a name
func (cm *Manager) Add(Name string, c Closer) {
	cm.Lock()
	defer cm.Unlock()
	cm.names = append(cm.names, Name)
	cm.closers = append(cm.closers, c)
}

// CloseAll closers all closers
func (cm *Manager) CloseAll() {
	cm.Lock()
	defer cm.Unlock()
	if cm.isClosed {
		return
	}
	cm.isClosed = true
	for i := len(cm.closers) - 1; i >= 0; i-- {
		log.Info("Close", "name", cm.names[i])
		cm.closers[i].Close()
	}
	cm.wg.Done()
}

// Wait waits close all
func (cm *Manager) Wait() {
	cm.wg.Wait()
}
