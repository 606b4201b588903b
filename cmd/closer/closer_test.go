package closer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloseAllReverseOnce(t *testing.T) {
	cm := NewManager()
	order := []string{}
	cm.Add("store", Func(func() { order = append(order, "store") }))
	cm.Add("server", Func(func() { order = append(order, "server") }))

	assert.False(t, cm.IsClosed())
	cm.CloseAll()
	cm.CloseAll()
	cm.Wait()

	assert.True(t, cm.IsClosed())
	assert.Equal(t, []string{"server", "store"}, order)
}
