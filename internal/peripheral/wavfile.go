package peripheral

import (
	"bufio"
	"io"
	"os"
	"sync/atomic"

	"github.com/kb9vln/afsk1200/internal/afsk"
)

// FileSource replays a raw stream of signed 8-bit samples from a file as
// an ADCSource, mirroring the teacher's atest.go practice of feeding a
// captured recording through the demodulator instead of a live sound
// device.
type FileSource struct {
	f *os.File
	r *bufio.Reader
}

// OpenFileSource opens path as a headerless stream of signed 8-bit PCM
// samples at afsk.SampleRate.
func OpenFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &FileSource{f: f, r: bufio.NewReader(f)}, nil
}

// Run feeds every sample in the file to onSample, in order, stopping at
// end of file.
func (s *FileSource) Run(onSample func(x int8)) error {
	buf := make([]byte, 4096)
	for {
		n, err := s.r.Read(buf)
		for i := 0; i < n; i++ {
			onSample(int8(buf[i]))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *FileSource) Close() error { return s.f.Close() }

// FileSink is a DACDriver that appends every sample DACSample produces to
// a file as a raw signed-8-bit stream, for generating test fixtures or
// recording a transmission for offline inspection.
type FileSink struct {
	modem *afsk.Modem
	w     *bufio.Writer
	f     *os.File

	enabled atomic.Bool
	done    chan struct{}
}

// CreateFileSink creates (or truncates) path and returns a sink that, once
// Enable is called, pulls samples from modem on its own goroutine until
// Disable is called by the modem itself (transmission finished).
func CreateFileSink(path string, modem *afsk.Modem) (*FileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &FileSink{modem: modem, w: bufio.NewWriter(f), f: f}, nil
}

func (s *FileSink) Enable() {
	if !s.enabled.CompareAndSwap(false, true) {
		return
	}
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		for s.enabled.Load() {
			sample := s.modem.DACSample()
			s.w.WriteByte(byte(int8(int(sample) - 128)))
		}
	}()
}

func (s *FileSink) Disable() {
	s.enabled.Store(false)
}

func (s *FileSink) Close() error {
	if s.done != nil {
		<-s.done
	}
	if err := s.w.Flush(); err != nil {
		return err
	}
	return s.f.Close()
}
