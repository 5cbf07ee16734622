package model

import "errors"

var ErrNoRecord = errors.New("no record")

var (
	ErrRuleChangedConcurrently = errors.New("recurrence changed concurrently")
	ErrRecurringTask           = errors.New("task is recurring, disable the recurrence first")
	ErrNotRecurring            = errors.New("task is not recurring")
	ErrLocked                  = errors.New("resource is locked")
)
