package rayxerr

import "testing"

func TestNewConfigurationFormatsElementAndMessage(t *testing.T) {
	err := NewConfiguration("M1", "grazing angle %.3f out of range", 2.5)
	want := `configuration error in element "M1": grazing angle 2.500 out of range`
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestNewResourceFormatsAtomicNumber(t *testing.T) {
	err := NewResource(79, "missing (n,k) table")
	want := "resource error for atomic number 79: missing (n,k) table"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestNewHostFormatsMessage(t *testing.T) {
	err := NewHost("device lost mid-dispatch")
	want := "host error: device lost mid-dispatch"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}
