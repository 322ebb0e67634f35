package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// CourseAverages returns the cache key for a student's computed course
// averages in a grading period.
func (r *CacheKeyStruct) CourseAverages(studentID string, runID int) string {
	return fmt.Sprintf("student:%s:run:%d:averages", studentID, runID)
}

// PrewarmStamp returns the key recording when the prewarm worker last
// completed a full pass.
func (r *CacheKeyStruct) PrewarmStamp() string {
	return "prewarm:last_completed"
}

var CacheKey = NewCacheKeyStruct()
