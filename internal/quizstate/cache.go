package quizstate

import (
	"sort"
	"strings"
	"sync"

	"coursecheck/internal/quiz"
)

// Cache holds lesson states in memory, keyed case-insensitively by lesson
// path, and loads from and flushes to a Store.
type Cache struct {
	mu      sync.RWMutex
	store   *Store
	lessons map[string]*quiz.LessonState
}

// NewCache creates an empty cache backed by store.
func NewCache(store *Store) *Cache {
	return &Cache{store: store, lessons: map[string]*quiz.LessonState{}}
}

func cacheKey(lessonPath string) string {
	return strings.ToLower(strings.TrimSpace(lessonPath))
}

// Get returns the state for lessonPath, loading it from the store on a miss
// and creating an empty one when nothing is stored.
func (c *Cache) Get(lessonPath string) *quiz.LessonState {
	key := cacheKey(lessonPath)
	c.mu.RLock()
	lesson, ok := c.lessons[key]
	c.mu.RUnlock()
	if ok {
		return lesson
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if lesson, ok := c.lessons[key]; ok {
		return lesson
	}
	lesson = c.store.Load(lessonPath)
	if lesson == nil {
		lesson = quiz.NewLessonState(lessonPath)
	}
	c.lessons[key] = lesson
	return lesson
}

// Flush writes the cached state for lessonPath to the store.
func (c *Cache) Flush(lessonPath string) error {
	c.mu.RLock()
	lesson, ok := c.lessons[cacheKey(lessonPath)]
	c.mu.RUnlock()
	if !ok {
		return nil
	}
	return c.store.Save(lesson)
}

// SwitchLesson flushes the outgoing lesson and, when persistence is off,
// forgets it so reopening starts fresh. It returns the incoming lesson state.
func (c *Cache) SwitchLesson(from, to string) (*quiz.LessonState, error) {
	var flushErr error
	if strings.TrimSpace(from) != "" && cacheKey(from) != cacheKey(to) {
		flushErr = c.Flush(from)
		if !c.store.Enabled() {
			c.mu.Lock()
			delete(c.lessons, cacheKey(from))
			c.mu.Unlock()
		}
	}
	return c.Get(to), flushErr
}

// Reset clears every cached lesson. Stored files are untouched.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lessons = map[string]*quiz.LessonState{}
}

// Lessons returns the cached lesson paths sorted.
func (c *Cache) Lessons() []string {
	c.mu.RLock()
	paths := make([]string, 0, len(c.lessons))
	for _, lesson := range c.lessons {
		paths = append(paths, lesson.LessonPath)
	}
	c.mu.RUnlock()
	sort.Strings(paths)
	return paths
}
