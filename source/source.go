// Package source supplies item lists for the lab's dropdowns.
package source

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Numbered returns n labels "<prefix>0" … "<prefix>n-1".
func Numbered(prefix string, n int) []string {
	out := make([]string, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("%s%d", prefix, i))
	}
	return out
}

// Branches lists the local branches of the repository containing path,
// sorted by name, plus the branch HEAD points at ("" when HEAD is detached or
// the repository has no commits).
func Branches(path string) (names []string, current string, err error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, "", fmt.Errorf("open repo %s: %w", path, err)
	}

	iter, err := repo.Branches()
	if err != nil {
		return nil, "", fmt.Errorf("list branches: %w", err)
	}
	defer iter.Close()
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("list branches: %w", err)
	}
	sort.Strings(names)

	head, err := repo.Head()
	switch {
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		return names, "", nil
	case err != nil:
		return nil, "", fmt.Errorf("read HEAD: %w", err)
	}
	if head.Name().IsBranch() {
		current = head.Name().Short()
	}
	return names, current, nil
}
