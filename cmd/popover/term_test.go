package main

import (
	"bytes"
	"log"
	"os"
	"testing"
	"time"

	"gioui.org/f32"
	"github.com/esimov/popover"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestTerm_PumpEventsStopsWhenDone(t *testing.T) {
	scr := tcell.NewSimulationScreen("UTF-8")
	assert.NoError(t, scr.Init())
	defer scr.Fini()
	scr.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)

	events := make(chan tcell.Event)
	done := make(chan struct{})
	close(done)

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		pumpEvents(scr, events, done)
	}()

	// Nothing receives the injected event, the pump must still return.
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("event pump blocked after done was closed")
	}
	_, ok := <-events
	assert.False(t, ok)
}

func TestTerm_PumpEventsForwards(t *testing.T) {
	scr := tcell.NewSimulationScreen("UTF-8")
	assert.NoError(t, scr.Init())
	scr.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(scr, events, done)

	var key *tcell.EventKey
	for ev := range events {
		if k, ok := ev.(*tcell.EventKey); ok {
			key = k
			break
		}
	}
	if assert.NotNil(t, key) {
		assert.Equal(t, 'q', key.Rune())
	}

	scr.Fini()
	for range events {
	}
}

func TestTerm_ShowFromLogsErrors(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	stage := popover.NewStage(f32.Pt(400, 300))
	btn := &popover.Box{W: 40, H: 20}
	content := &popover.Box{W: 100, H: 50}

	p := popover.New(nil)
	assert.False(showFrom(p, content, btn, stage))
	assert.Contains(buf.String(), popover.ErrUnknownView.Error())

	buf.Reset()
	stage.Track(btn, popover.MakeRect(180, 20, 220, 40))
	assert.True(showFrom(p, content, btn, stage))
	assert.Empty(buf.String())

	assert.False(showFrom(p, content, btn, stage))
	assert.Contains(buf.String(), popover.ErrAlreadyShown.Error())
}
