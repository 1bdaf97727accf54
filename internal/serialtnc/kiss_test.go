package serialtnc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_encodeKISSFrame_plainPayload(t *testing.T) {
	framed := encodeKISSFrame([]byte{0x01, 0x02, 0x03})
	assert.Equal(t, []byte{fend, kissCmdDataFrame, 0x01, 0x02, 0x03, fend}, framed)
}

func Test_encodeKISSFrame_escapesFendAndFesc(t *testing.T) {
	framed := encodeKISSFrame([]byte{fend, fesc, 0x42})
	assert.Equal(t, []byte{
		fend, kissCmdDataFrame,
		fesc, tfend,
		fesc, tfesc,
		0x42,
		fend,
	}, framed)
}

func Test_kissDecoder_roundTripsEncodedFrame(t *testing.T) {
	payload := []byte{0xC0, 0xDB, 0x11, 0x22, 0x7E}
	framed := encodeKISSFrame(payload)

	var dec kissDecoder
	var got []byte
	var ok bool
	for _, b := range framed {
		if out, closed := dec.push(b); closed {
			got, ok = out, true
		}
	}
	assert.True(t, ok)
	assert.Equal(t, payload, got)
}

func Test_kissDecoder_ignoresNoiseBeforeFirstFend(t *testing.T) {
	var dec kissDecoder
	for _, b := range []byte{0xAA, 0xBB, 0xCC} {
		_, ok := dec.push(b)
		assert.False(t, ok)
	}
}

func Test_kissDecoder_dropsNonDataFrameCommand(t *testing.T) {
	var dec kissDecoder
	// SetHardware command (_6), not a data frame: should not surface a payload.
	frame := []byte{fend, 0x06, 0x01, 0x02, fend}
	var sawFrame bool
	for _, b := range frame {
		if _, ok := dec.push(b); ok {
			sawFrame = true
		}
	}
	assert.False(t, sawFrame)
}

func Test_kissDecoder_emptyFrameBetweenFendsNotDelivered(t *testing.T) {
	var dec kissDecoder
	for _, b := range []byte{fend, fend} {
		_, ok := dec.push(b)
		assert.False(t, ok)
	}
}

func Test_kissDecoder_multipleFramesBackToBack(t *testing.T) {
	var dec kissDecoder
	var frames [][]byte
	stream := append(encodeKISSFrame([]byte{0x01}), encodeKISSFrame([]byte{0x02, 0x03})...)
	for _, b := range stream {
		if out, ok := dec.push(b); ok {
			frames = append(frames, out)
		}
	}
	assert.Equal(t, [][]byte{{0x01}, {0x02, 0x03}}, frames)
}
