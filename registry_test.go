package toolschema

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietRegistry(opts ...RegistryOption) *Registry {
	return NewRegistry(append([]RegistryOption{WithRegistryLogger(slog.New(slog.DiscardHandler))}, opts...)...)
}

func TestRegistry_Register_Aggregate(t *testing.T) {
	reg := quietRegistry(WithMaxConcurrency(2))
	reg.Register(NewClass("Zed").Method("z", ""))
	reg.Register(exampleClass())
	reg.Register(NewClass("Alpha").Method("a", ""))

	s, err := reg.Aggregate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Zed", "ExampleClass", "Alpha"}, s.Keys())

	direct, err := Aggregate(NewClass("Zed").Method("z", ""), exampleClass(), NewClass("Alpha").Method("a", ""))
	require.NoError(t, err)
	a, _ := MarshalIndent(s)
	b, _ := MarshalIndent(direct)
	assert.Equal(t, string(b), string(a))
}

func TestRegistry_ReRegisterKeepsPosition(t *testing.T) {
	reg := quietRegistry()
	reg.Register(NewClass("A").Method("old", ""))
	reg.Register(NewClass("B"))
	reg.Register(NewClass("A").Method("new", ""))

	classes := reg.Classes()
	require.Len(t, classes, 2)
	assert.Equal(t, "A", classes[0].Name())
	s, err := reg.Aggregate(context.Background())
	require.NoError(t, err)
	cls, _ := s.Class("A")
	assert.Equal(t, []string{"new"}, cls.Keys())
}

func TestRegistry_GetClass(t *testing.T) {
	reg := quietRegistry()
	c := NewClass("Calc")
	reg.Register(c)
	got, ok := reg.GetClass("Calc")
	require.True(t, ok)
	require.Same(t, c, got)
	_, ok = reg.GetClass("missing")
	require.False(t, ok)
}

func TestRegistry_Aggregate_Empty(t *testing.T) {
	s, err := quietRegistry().Aggregate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestRegistry_Aggregate_FailFast(t *testing.T) {
	boom := errors.New("boom")
	reg := quietRegistry(WithMaxConcurrency(1))
	reg.Register(exampleClass())
	reg.Register(&stubClass{name: "Broken", err: boom})
	reg.Register(NewClass("After"))

	s, err := reg.Aggregate(context.Background())
	require.Error(t, err)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, boom)
	var ie *IntrospectionError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "Broken", ie.Class)
}

func TestRegistry_Aggregate_PanicRecovery(t *testing.T) {
	reg := quietRegistry(WithRecoverPanics(true))
	reg.Register(&panicClass{name: "Panics"})
	_, err := reg.Aggregate(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIntrospection)
	assert.Contains(t, err.Error(), "panic")
}

func TestRegistry_Aggregate_ContextCanceled(t *testing.T) {
	reg := quietRegistry(WithMaxConcurrency(1))
	reg.Register(NewClass("A"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := reg.Aggregate(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistry_Aggregate_BoundedConcurrency(t *testing.T) {
	const limit = 2
	var inFlight, peak atomic.Int32
	reg := quietRegistry(WithMaxConcurrency(limit))
	for _, name := range []string{"A", "B", "C", "D", "E", "F"} {
		reg.Register(&slowClass{name: name, enter: func() {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
		}})
	}
	s, err := reg.Aggregate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F"}, s.Keys())
	assert.LessOrEqual(t, peak.Load(), int32(limit))
}

func TestRegistry_ConcurrentRegisterAndAggregate(t *testing.T) {
	reg := quietRegistry()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Go(func() {
			reg.Register(NewClass(string(rune('A' + i))).Method("m", ""))
			_, err := reg.Aggregate(context.Background())
			assert.NoError(t, err)
		})
	}
	wg.Wait()
	assert.Len(t, reg.Classes(), 8)
}

func TestRegistry_Shutdown(t *testing.T) {
	reg := quietRegistry()
	reg.Register(NewClass("A"))
	require.NoError(t, reg.Shutdown(context.Background()))
	require.NoError(t, reg.Shutdown(context.Background()))
	_, err := reg.Aggregate(context.Background())
	assert.ErrorIs(t, err, ErrShutdown)
}

func TestRegistry_ShutdownWaitsForInFlight(t *testing.T) {
	reg := quietRegistry()
	started := make(chan struct{})
	release := make(chan struct{})
	reg.Register(&slowClass{name: "Slow", enter: func() {
		close(started)
		<-release
	}})
	done := make(chan error, 1)
	go func() {
		_, err := reg.Aggregate(context.Background())
		done <- err
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, reg.Shutdown(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, <-done)
	require.NoError(t, reg.Shutdown(context.Background()))
}

func TestRegistry_Use(t *testing.T) {
	reg := quietRegistry()
	reg.Register(&panicClass{name: "P"})
	var calls atomic.Int32
	counting := func(next Class) Class {
		calls.Add(1)
		return next
	}
	reg.Use(counting, WithRecovery())
	reg.Use(counting, WithRecovery())
	assert.Equal(t, int32(2), calls.Load())

	reg2 := quietRegistry(WithRecoverPanics(false))
	reg2.Use(WithRecovery())
	reg2.Register(&panicClass{name: "P"})
	_, err := reg2.Aggregate(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIntrospection)
}

type panicClass struct{ name string }

func (p *panicClass) Name() string               { return p.name }
func (p *panicClass) Methods() ([]Method, error) { panic("metaclass exploded") }

type slowClass struct {
	name  string
	enter func()
}

func (s *slowClass) Name() string { return s.name }
func (s *slowClass) Methods() ([]Method, error) {
	s.enter()
	return nil, nil
}
