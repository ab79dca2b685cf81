package form

import (
	"strings"
	"sync"
)

// ClassList is an ordered set of CSS class names attached to an element.
type ClassList struct {
	mu      sync.RWMutex
	classes []string
}

// NewClassList creates a class list from a space separated class attribute.
func NewClassList(className string) *ClassList {
	cl := &ClassList{}
	cl.Set(className)
	return cl
}

func (cl *ClassList) Add(name string) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	for _, c := range cl.classes {
		if c == name {
			return
		}
	}
	cl.classes = append(cl.classes, name)
}

func (cl *ClassList) Remove(name string) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	for i, c := range cl.classes {
		if c == name {
			cl.classes = append(cl.classes[:i], cl.classes[i+1:]...)
			return
		}
	}
}

func (cl *ClassList) Contains(name string) bool {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	for _, c := range cl.classes {
		if c == name {
			return true
		}
	}
	return false
}

// Set replaces the whole class attribute.
func (cl *ClassList) Set(className string) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.classes = cl.classes[:0]
	for _, c := range strings.Fields(className) {
		dup := false
		for _, existing := range cl.classes {
			if existing == c {
				dup = true
				break
			}
		}
		if !dup {
			cl.classes = append(cl.classes, c)
		}
	}
}

// String renders the class attribute.
func (cl *ClassList) String() string {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return strings.Join(cl.classes, " ")
}
