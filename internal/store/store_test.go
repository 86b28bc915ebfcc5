package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/navboard/internal/domain"
)

func TestEncodeNormalizesNilSlices(t *testing.T) {
	data, err := Encode(&domain.Document{Categories: []domain.Category{{Name: "Work"}}})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := `{"categories":[{"name":"Work","sites":[]}]}`
	if string(data) != want {
		t.Errorf("Encode() = %s, want %s", data, want)
	}

	data, err = Encode(&domain.Document{})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if string(data) != `{"categories":[]}` {
		t.Errorf("Encode(empty) = %s", data)
	}
}

func TestDecode(t *testing.T) {
	doc, err := Decode("data", []byte(`{"categories":[{"name":"Work"}]}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if doc.Categories[0].Sites == nil {
		t.Error("Decode() left nil sites")
	}

	_, err = Decode("data", []byte(`{"categories":`))
	if !errors.Is(err, domain.ErrStorageCorruption) {
		t.Fatalf("Decode(invalid) error = %v, want ErrStorageCorruption", err)
	}
	var ce *CorruptionError
	if !errors.As(err, &ce) || ce.Key != "data" {
		t.Errorf("Decode(invalid) error = %#v, want *CorruptionError for key data", err)
	}
	if !strings.Contains(err.Error(), `"data"`) {
		t.Errorf("error message %q does not name the key", err.Error())
	}
}

func TestDecodeDropsUnknownFields(t *testing.T) {
	stored := []byte(`{"categories":[{"name":"Work","color":"red","sites":[{"name":"Mail","url":"https://mail.example","icon":"","pinned":true}]}],"theme":"dark"}`)

	doc, err := Decode("data", stored)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	data, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := `{"categories":[{"name":"Work","sites":[{"name":"Mail","url":"https://mail.example","icon":""}]}]}`
	if string(data) != want {
		t.Errorf("re-encoded = %s, want %s", data, want)
	}
}
