package multipart_test

import (
	"reflect"
	"testing"

	"baldr/internal/multipart"
)

func TestSelectionPartitur(t *testing.T) {
	sel, err := multipart.NewSelection("http://localhost/media/Partitur.png", 12, "7-9,10-11")
	if err != nil {
		t.Fatalf("NewSelection returned error: %v", err)
	}
	if !reflect.DeepEqual(sel.Parts(), []int{7, 8, 9, 10, 11}) {
		t.Fatalf("Parts() = %v", sel.Parts())
	}
	if sel.Count() != 5 {
		t.Fatalf("Count() = %d", sel.Count())
	}
	first, err := sel.HTTPURLByNo(1)
	if err != nil || first != "http://localhost/media/Partitur_no007.png" {
		t.Fatalf("HTTPURLByNo(1) = %q, %v", first, err)
	}
	last, err := sel.HTTPURLByNo(5)
	if err != nil || last != "http://localhost/media/Partitur_no011.png" {
		t.Fatalf("HTTPURLByNo(5) = %q, %v", last, err)
	}
	if _, err := sel.HTTPURLByNo(6); err == nil {
		t.Fatal("expected error beyond selection")
	}
}

func TestSelectionWithoutFragmentSelectsAll(t *testing.T) {
	sel, err := multipart.NewSelection("http://x/Score.png", 3, "")
	if err != nil {
		t.Fatalf("NewSelection returned error: %v", err)
	}
	urls, err := sel.HTTPURLs()
	if err != nil {
		t.Fatalf("HTTPURLs returned error: %v", err)
	}
	want := []string{"http://x/Score.png", "http://x/Score_no002.png", "http://x/Score_no003.png"}
	if !reflect.DeepEqual(urls, want) {
		t.Fatalf("HTTPURLs() = %v", urls)
	}
}

func TestSelectionBeyondPartCount(t *testing.T) {
	if _, err := multipart.NewSelection("http://x/Score.png", 5, "20"); err == nil {
		t.Fatal("expected InvalidRangeError for part beyond asset part count")
	}
}

func TestSelectionSinglePartAsset(t *testing.T) {
	sel, err := multipart.NewSelection("http://x/Image.jpg", 1, "")
	if err != nil {
		t.Fatalf("NewSelection returned error: %v", err)
	}
	url, err := sel.HTTPURLByNo(1)
	if err != nil || url != "http://x/Image.jpg" {
		t.Fatalf("HTTPURLByNo(1) = %q, %v", url, err)
	}
}
