package gitinfo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// GitInfoAdapter implements domain.CommitLog using go-git.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

func open(projectPath string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}
	return repo, nil
}

func (g *GitInfoAdapter) IsGitRepo(projectPath string) bool {
	_, err := open(projectPath)
	return err == nil
}

func (g *GitInfoAdapter) CommitHash(projectPath string) (string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

// RecentSubjects returns the first line of the last n commit messages,
// HEAD first. A repository without commits yields no subjects.
func (g *GitInfoAdapter) RecentSubjects(projectPath string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	repo, err := open(projectPath)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}
	defer iter.Close()

	subjects := make([]string, 0, n)
	err = iter.ForEach(func(c *object.Commit) error {
		subject, _, _ := strings.Cut(c.Message, "\n")
		subjects = append(subjects, strings.TrimSpace(subject))
		if len(subjects) >= n {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}
	return subjects, nil
}
