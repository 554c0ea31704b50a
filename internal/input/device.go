package input

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"os"

	"git.lost.host/meutraa/keyfall/internal/game"
)

// https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
const (
	evKey = 0x01

	keyReleased = 0
	keyPressed  = 1
	keyRepeated = 2

	KeyEsc uint16 = 1
	KeyD   uint16 = 32
	KeyF   uint16 = 33
	KeyJ   uint16 = 36
	KeyK   uint16 = 37
)

// struct input_event on 64 bit platforms
type keyEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// DeviceKeys reads a Linux evdev keyboard, e.g. /dev/input/event3. Unlike a
// terminal the kernel reports presses, releases and repeats separately, so
// only real presses become actions.
type DeviceKeys struct {
	Path  string
	Lanes []uint16 // One key code per lane, in lane order
	Pause uint16
}

func (d *DeviceKeys) Map(code uint16) (game.Action, bool) {
	if code == d.Pause {
		return game.ActionPause, true
	}
	for i, c := range d.Lanes {
		if i < game.NLanes && code == c {
			return game.LaneAction(i), true
		}
	}
	return "", false
}

func (d *DeviceKeys) Run(ctx context.Context, out chan<- game.Action) error {
	file, err := os.Open(d.Path)
	if err != nil {
		return err
	}
	// Closing the file is the only way to interrupt the blocking read
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
		}
		file.Close()
	}()

	err = d.pump(ctx, file, out)
	if nil != ctx.Err() {
		return nil
	}
	return err
}

func (d *DeviceKeys) pump(ctx context.Context, r io.Reader, out chan<- game.Action) error {
	var ev keyEvent
	for {
		if err := binary.Read(r, binary.LittleEndian, &ev); nil != err {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if ev.Type != evKey || ev.Value != keyPressed {
			continue
		}
		a, ok := d.Map(ev.Code)
		if !ok {
			continue
		}
		if !send(ctx, out, a) {
			return nil
		}
	}
}
