package report

import (
	"testing"
	"time"

	"github.com/lumipallolabs/filesearch/internal/core"
	"github.com/lumipallolabs/filesearch/internal/model"
)

func TestCompare(t *testing.T) {
	prev := &core.ResultSet{Matches: []model.Match{
		{Path: "/old", Size: 100},
		{Path: "/same", Size: 200},
		{Path: "/smaller", Size: 500},
	}}
	curr := &core.ResultSet{Matches: []model.Match{
		{Path: "/same", Size: 250}, // grew
		{Path: "/new", Size: 300},
		{Path: "/smaller", Size: 10},
	}}

	d := Compare(prev, curr)

	if len(d.Added) != 1 || d.Added[0].Path != "/new" {
		t.Errorf("Added = %+v", d.Added)
	}
	if len(d.Removed) != 1 || d.Removed[0].Path != "/old" {
		t.Errorf("Removed = %+v", d.Removed)
	}
	if len(d.Grew) != 1 || d.Grew[0].Path != "/same" {
		t.Errorf("Grew = %+v", d.Grew)
	}
	if len(d.Shrunk) != 1 || d.Shrunk[0].Path != "/smaller" {
		t.Errorf("Shrunk = %+v", d.Shrunk)
	}
	if d.IsEmpty() {
		t.Error("expected non-empty diff")
	}
}

func TestCompareNoPrevious(t *testing.T) {
	curr := testSet(time.Now(), "/a", "/b")

	d := Compare(nil, curr)
	if len(d.Added) != 2 {
		t.Errorf("expected all matches new, got %d", len(d.Added))
	}
}

func TestCompareIdentical(t *testing.T) {
	set := testSet(time.Now(), "/a", "/b")
	if d := Compare(set, set); !d.IsEmpty() {
		t.Errorf("expected empty diff, got %+v", d)
	}
}
