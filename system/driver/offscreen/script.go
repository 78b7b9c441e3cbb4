// Copyright 2024 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package offscreen

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"
	"time"

	"cogentcore.org/multiwin/events"
	"cogentcore.org/multiwin/events/key"
	"cogentcore.org/multiwin/system"
)

// Step is one line of an event script.
type Step struct {
	// ID is the window the event is for.
	ID system.WindowID

	// Event is the event to post; nil for a pure wait.
	Event events.Event

	// Wait is how long to wait before posting the event.
	Wait time.Duration
}

// ParseScript reads an event script. Each non-empty line that does not
// start with # is one of:
//
//	resize <id> <width> <height>
//	paint <id>
//	key <id> <name>     (a press followed by a release)
//	close <id>
//	wait <duration>
func ParseScript(r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		fs := strings.Fields(sc.Text())
		if len(fs) == 0 || strings.HasPrefix(fs[0], "#") {
			continue
		}
		st, err := parseStep(fs)
		if err != nil {
			return nil, fmt.Errorf("offscreen: script line %d: %w", ln, err)
		}
		steps = append(steps, st...)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return steps, nil
}

func parseStep(fs []string) ([]Step, error) {
	nargs := map[string]int{"resize": 4, "paint": 2, "key": 3, "close": 2, "wait": 2}
	n, ok := nargs[fs[0]]
	if !ok {
		return nil, fmt.Errorf("unknown command %q", fs[0])
	}
	if len(fs) != n {
		return nil, fmt.Errorf("%s takes %d arguments, got %d", fs[0], n-1, len(fs)-1)
	}
	if fs[0] == "wait" {
		d, err := time.ParseDuration(fs[1])
		if err != nil {
			return nil, err
		}
		return []Step{{Wait: d}}, nil
	}
	id64, err := strconv.ParseUint(fs[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad window id %q", fs[1])
	}
	id := system.WindowID(id64)
	switch fs[0] {
	case "resize":
		w, err1 := strconv.Atoi(fs[2])
		h, err2 := strconv.Atoi(fs[3])
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("bad size %s %s", fs[2], fs[3])
		}
		return []Step{{ID: id, Event: events.NewResize(image.Pt(w, h))}}, nil
	case "paint":
		return []Step{{ID: id, Event: events.NewPaint()}}, nil
	case "key":
		var code key.Codes
		if !code.SetString(fs[2]) {
			return nil, fmt.Errorf("unknown key %q", fs[2])
		}
		return []Step{
			{ID: id, Event: events.NewKey(events.KeyDown, code)},
			{ID: id, Event: events.NewKey(events.KeyUp, code)},
		}, nil
	default: // close
		return []Step{{ID: id, Event: events.NewClose()}}, nil
	}
}

// Play posts the steps in order from a new goroutine, honoring waits.
// Resize steps also update the window size, as a real platform would.
func (a *App) Play(steps []Step) {
	go func() {
		for _, st := range steps {
			if st.Wait > 0 {
				time.Sleep(st.Wait)
			}
			if st.Event == nil {
				continue
			}
			if rs, ok := st.Event.(*events.Resize); ok {
				a.Resize(st.ID, rs.Size)
				continue
			}
			a.Post(st.ID, st.Event)
		}
	}()
}
