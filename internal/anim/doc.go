// Package anim drives a frame loop from a host-provided scheduler.
//
// A [Driver] is the single place wall-clock time enters the simulation:
// every tick it measures the elapsed milliseconds since the previous tick,
// advances its [Stepper] by that amount and asks the [Scheduler] for the
// next frame. The loop is delta-time based, so integration error depends
// on frame rate.
//
// Hosts with their own repaint loop (terminal, windows) own a [FrameQueue]
// and drain it once per repaint. Headless hosts hand the queue to [Pump].
package anim
