// Package engine runs the LED render loop.
//
// The engine owns the live [lights.ParameterSet]. Other goroutines never
// touch it directly; they send [Command] values through [Engine.Notify],
// a bounded channel that the engine drains at the start of every tick:
//
//	eng := engine.New(engine.Options{Driver: strip, PixelCount: 24})
//	go eng.Run(ctx)
//	eng.Notify(engine.Command{Kind: engine.SetScheme, Value: lights.SchemeChristmas})
//
// A render in progress is never interrupted; commands sent while a frame is
// being drawn take effect on the following tick, in the order they were sent.
//
// States move idle → running → stopping → stopped. A Stop command (or
// cancelling the context passed to Run) clears the strip and ends the loop
// permanently.
package engine
