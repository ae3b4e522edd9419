package engine

import (
	"testing"
)

const (
	width  = 200
	height = 200
)

func newBenchEngine(b *testing.B) *Engine {
	o := DefaultOptions
	o.Interval = 0
	o.Width = width
	o.Height = height
	o.Seed = 1
	e, err := New(&o, make(chan Status, 10))
	if err != nil {
		b.Fatal(err)
	}
	return e
}

func Benchmark_Step(b *testing.B) {
	e := newBenchEngine(b)
	stateCh := e.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		e.Clear()
		<-stateCh //wait for finish
		if err := e.SettleTemplate("testSample1"); err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		e.Step()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateManual || st.RunningMode == RunningStateFinished {
				break
			}
		}
	}
	e.Close()
}

func Benchmark_Run(b *testing.B) {
	e := newBenchEngine(b)
	stateCh := e.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		e.Clear()
		<-stateCh //wait for finish
		if err := e.SettleTemplate("testSample1"); err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		e.Run()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateFinished {
				break
			}
		}
	}
	e.Close()
}
