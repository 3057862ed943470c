package storm

import (
	"testing"

	"github.com/libprohq/libpro"
)

func TestRoundTrip(t *testing.T) {
	kv, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer kv.Close()

	books := libpro.BookList{
		{ID: 1700000000000, Title: "Stored", Uploaded: true},
	}
	if err := kv.Save(libpro.KeyUploadedBooks, books); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	var got libpro.BookList
	found, err := kv.Load(libpro.KeyUploadedBooks, &got)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !found {
		t.Fatal("Load() did not find the saved key")
	}
	if len(got) != 1 || got[0] != books[0] {
		t.Errorf("Load() = %+v, want %+v", got, books)
	}
}

func TestLoadMissingKey(t *testing.T) {
	kv, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer kv.Close()

	var count int
	found, err := kv.Load(libpro.KeyTodayCount, &count)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if found {
		t.Error("Load() found a key that was never saved")
	}
}

func TestDelete(t *testing.T) {
	kv, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer kv.Close()

	if err := kv.Save(libpro.KeyTheme, "dark"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := kv.Delete(libpro.KeyTheme); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	var theme string
	if found, _ := kv.Load(libpro.KeyTheme, &theme); found {
		t.Error("key still present after Delete()")
	}

	// deleting a missing key is not an error
	if err := kv.Delete("never-there"); err != nil {
		t.Errorf("Delete() on missing key error = %v", err)
	}
}
