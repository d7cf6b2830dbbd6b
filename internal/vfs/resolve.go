package vfs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is matching against a *NavigationError.
var (
	ErrNoParentOfRoot   = errors.New("no parent of root")
	ErrNotFound         = errors.New("not found")
	ErrTraverseIntoFile = errors.New("traverse into file")
)

// NavigationError reports why a path could not be resolved. Reason is one of
// the package sentinels; Segment is set for ErrNotFound.
type NavigationError struct {
	Reason  error
	Segment string
}

func (e *NavigationError) Error() string {
	switch e.Reason {
	case ErrNoParentOfRoot:
		return "You tried to go above the root directory."
	case ErrNotFound:
		return fmt.Sprintf("cannot access '%s': No such file or directory.", e.Segment)
	case ErrTraverseIntoFile:
		return "Tried to traverse into a file, not a folder."
	default:
		return fmt.Sprintf("navigation failed: %v", e.Reason)
	}
}

func (e *NavigationError) Unwrap() error {
	return e.Reason
}

// Resolve walks path from root and returns the node it names.
//
// Segments are literal child names, "." (stay) or ".." (go up). The walk keeps
// the chain of ancestors on a stack so ".." is a pop; going above the root, a
// missing name and descending into a file all fail the whole resolution.
// Callers normalize away empty segments before calling.
func Resolve(root *Node, path string) (*Node, error) {
	stack := []*Node{root}

	for _, segment := range strings.Split(path, "/") {
		switch segment {
		case ".":
		case "..":
			if len(stack) == 0 {
				return nil, &NavigationError{Reason: ErrNoParentOfRoot}
			}
			stack = stack[:len(stack)-1]
		default:
			if len(stack) == 0 {
				return nil, &NavigationError{Reason: ErrNoParentOfRoot}
			}
			top := stack[len(stack)-1]
			switch top.kind {
			case KindRoot, KindFolder:
				child, ok := top.children[segment]
				if !ok {
					return nil, &NavigationError{Reason: ErrNotFound, Segment: segment}
				}
				stack = append(stack, child)
			case KindFile:
				return nil, &NavigationError{Reason: ErrTraverseIntoFile}
			}
		}
	}

	if len(stack) == 0 {
		return nil, &NavigationError{Reason: ErrNoParentOfRoot}
	}
	return stack[len(stack)-1], nil
}
