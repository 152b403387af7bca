package clipboard

import (
	"errors"
	"testing"

	pkgerrors "github.com/zhubert/scholar/internal/errors"
)

type fakeBackend struct {
	initErr  error
	writeErr error
	inits    int
	written  []string
}

func (f *fakeBackend) Init() error {
	f.inits++
	return f.initErr
}

func (f *fakeBackend) WriteText(text string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = append(f.written, text)
	return nil
}

func TestWriteText(t *testing.T) {
	fake := &fakeBackend{}
	SetBackend(fake)
	defer ResetBackend()

	if err := WriteText("https://doi.org/10.1000/1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := WriteText("second"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fake.inits != 1 {
		t.Errorf("expected a single init, got %d", fake.inits)
	}
	if len(fake.written) != 2 || fake.written[0] != "https://doi.org/10.1000/1" {
		t.Errorf("unexpected writes: %v", fake.written)
	}
}

func TestWriteText_InitFailure(t *testing.T) {
	fake := &fakeBackend{initErr: errors.New("no display")}
	SetBackend(fake)
	defer ResetBackend()

	err := WriteText("text")

	if !pkgerrors.Is(err, pkgerrors.KindClipboard) {
		t.Errorf("expected clipboard error, got %v", err)
	}
	if len(fake.written) != 0 {
		t.Error("nothing should be written when init fails")
	}

	// Init is retried once the backend recovers
	fake.initErr = nil
	if err := WriteText("text"); err != nil {
		t.Errorf("expected retry to succeed, got %v", err)
	}
	if fake.inits != 2 {
		t.Errorf("expected 2 init attempts, got %d", fake.inits)
	}
}

func TestWriteText_WriteFailure(t *testing.T) {
	SetBackend(&fakeBackend{writeErr: errors.New("denied")})
	defer ResetBackend()

	err := WriteText("text")

	if !pkgerrors.Is(err, pkgerrors.KindClipboard) {
		t.Errorf("expected clipboard error, got %v", err)
	}
}
