package typegen

import (
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/teranos/taxogen/errors"
)

// Header line prefixes that change on every commit. CompareDirectories
// ignores lines starting with them.
const (
	ProvenanceVersionPrefix  = "Source version: "
	ProvenanceModifiedPrefix = "Source last modified: "
)

// Provenance identifies the commit that last touched the schema file.
type Provenance struct {
	Commit   string
	Modified time.Time
}

// IsZero reports whether no provenance was found.
func (p Provenance) IsZero() bool {
	return p.Commit == "" && p.Modified.IsZero()
}

// LookupProvenance finds the last commit touching path. Outside a git
// repository, or for an uncommitted file, it returns a zero Provenance.
func LookupProvenance(path string) (Provenance, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Provenance{}, errors.Wrapf(err, "failed to resolve %s", path)
	}

	repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return Provenance{}, nil
		}
		return Provenance{}, errors.Wrap(err, "failed to open repository")
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no files to attribute
		return Provenance{}, nil
	}
	rel, err := filepath.Rel(wt.Filesystem.Root(), abs)
	if err != nil {
		return Provenance{}, errors.Wrapf(err, "failed to relativize %s", abs)
	}
	rel = filepath.ToSlash(rel)

	iter, err := repo.Log(&git.LogOptions{FileName: &rel})
	if err != nil {
		// Empty repository: no HEAD yet
		return Provenance{}, nil
	}
	defer iter.Close()

	commit, err := iter.Next()
	if err != nil || commit == nil {
		return Provenance{}, nil
	}
	return provenanceOf(commit), nil
}

func provenanceOf(c *object.Commit) Provenance {
	hash := c.Hash.String()
	if len(hash) > 12 {
		hash = hash[:12]
	}
	return Provenance{Commit: hash, Modified: c.Committer.When}
}
