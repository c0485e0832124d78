package catalog

import (
	"reflect"
	"testing"
	"time"
)

func TestNormalizeDateZeroMeansUnknown(t *testing.T) {
	if got := NormalizeDate(time.Time{}); got != nil {
		t.Fatalf("expected nil for zero date, got %v", got)
	}

	when := time.Date(2010, 5, 1, 0, 0, 0, 0, time.UTC)
	got := NormalizeDate(when)
	if got == nil || !got.Equal(when) {
		t.Fatalf("expected %v unchanged, got %v", when, got)
	}
}

func TestNormalizeAuthor(t *testing.T) {
	if got := NormalizeAuthor("Alice Bob", true); !reflect.DeepEqual(got, []string{"Alice", "Bob"}) {
		t.Fatalf("collab split: got %v", got)
	}
	if got := NormalizeAuthor("Alice Bob", false); !reflect.DeepEqual(got, []string{"Alice Bob"}) {
		t.Fatalf("solo verbatim: got %v", got)
	}
	if got := NormalizeAuthor("", true); !reflect.DeepEqual(got, []string{}) {
		t.Fatalf("empty collab: got %v", got)
	}
	if got := NormalizeAuthor("", false); !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("empty solo: got %v", got)
	}
}

func TestNormalizeAuthorPreservesOrderAndDuplicates(t *testing.T) {
	got := NormalizeAuthor("Bob Alice Bob", true)
	if !reflect.DeepEqual(got, []string{"Bob", "Alice", "Bob"}) {
		t.Fatalf("got %v", got)
	}
}
