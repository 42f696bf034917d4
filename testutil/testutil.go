// Package testutil provides in-memory repository fixtures shared by
// the package tests. Repositories are built over memfs so tests never
// touch the disk.
package testutil

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

// NewRepo creates an empty in-memory repository.
func NewRepo(t *testing.T) *git.Repository {
	t.Helper()

	repo, err := git.Init(memory.NewStorage(), memfs.New())
	if err != nil {
		t.Fatalf("failed to init in-memory repo: %v", err)
	}
	return repo
}

// clock makes successive signatures strictly ordered in time.
var clock atomic.Int64

// When returns a strictly increasing timestamp.
func When() time.Time {
	return time.Date(2017, 3, 1, 12, 0, 0, 0, time.UTC).
		Add(time.Duration(clock.Add(1)) * time.Second)
}

// Signature returns a test signature with a strictly increasing
// timestamp, so commit order follows creation order.
func Signature() object.Signature {
	return object.Signature{
		Name:  "Foo Bar",
		Email: "foo.bar@example.com",
		When:  When(),
	}
}

// SetRef writes an arbitrary hash ref, e.g. to simulate a remote
// tracking ref created by transport.
func SetRef(t *testing.T, repo *git.Repository, name string, target plumbing.Hash) {
	t.Helper()

	ref := plumbing.NewHashReference(plumbing.ReferenceName(name), target)
	if err := repo.Storer.SetReference(ref); err != nil {
		t.Fatalf("failed to set reference %s: %v", name, err)
	}
}
