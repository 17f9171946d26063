package retain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapPresenter is a minimal Snapshotter for factory tests.
type snapPresenter struct {
	stubPresenter
	state []byte
}

func (p *snapPresenter) Kind() string { return "snap" }

func (p *snapPresenter) Snapshot() ([]byte, error) { return p.state, nil }

func (p *snapPresenter) Restore(state []byte) error {
	p.state = state
	return nil
}

func TestFactoriesRegisterAndLookup(t *testing.T) {
	f := NewFactories()

	require.NoError(t, f.Register("snap", func() Snapshotter { return &snapPresenter{} }))

	factory, ok := f.Lookup("snap")
	require.True(t, ok)
	assert.NotNil(t, factory())

	_, ok = f.Lookup("unknown")
	assert.False(t, ok)
}

func TestFactoriesRegisterEmptyKind(t *testing.T) {
	f := NewFactories()
	err := f.Register("", func() Snapshotter { return &snapPresenter{} })
	assert.ErrorIs(t, err, ErrEmptyKind)
}

func TestFactoriesRegisterNilFactory(t *testing.T) {
	f := NewFactories()
	err := f.Register("snap", nil)
	assert.ErrorIs(t, err, ErrNilFactory)
}

func TestFactoriesRegisterDuplicate(t *testing.T) {
	f := NewFactories()
	require.NoError(t, f.Register("snap", func() Snapshotter { return &snapPresenter{} }))

	err := f.Register("snap", func() Snapshotter { return &snapPresenter{} })
	assert.ErrorIs(t, err, ErrDuplicateKind)
}

func TestFactoriesMustRegisterPanics(t *testing.T) {
	f := NewFactories()
	f.MustRegister("snap", func() Snapshotter { return &snapPresenter{} })

	assert.Panics(t, func() {
		f.MustRegister("snap", func() Snapshotter { return &snapPresenter{} })
	})
}

func TestFactoriesHasAndKinds(t *testing.T) {
	f := NewFactories()
	require.NoError(t, f.Register("a", func() Snapshotter { return &snapPresenter{} }))
	require.NoError(t, f.Register("b", func() Snapshotter { return &snapPresenter{} }))

	assert.True(t, f.Has("a"))
	assert.False(t, f.Has("c"))
	assert.ElementsMatch(t, []string{"a", "b"}, f.Kinds())
}
