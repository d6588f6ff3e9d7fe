package port

// FramePoster schedules fn to run on the next render frame of the host.
type FramePoster func(fn func())

// FrameScheduler merges same-key work into the next frame: only the most
// recent fn posted under a key runs.
type FrameScheduler interface {
	Post(key string, fn func())
}
