package service

import "time"

// Scheduler runs f once after d. Callbacks may run on any goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// Notifier pushes an update the player did not ask for, such as a delayed AI move.
type Notifier interface {
	Notify(playerID, action string, payload any)
}

type timerScheduler struct{}

func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

type nopNotifier struct{}

// NewNopNotifier drops every notification.
func NewNopNotifier() Notifier {
	return nopNotifier{}
}

func (nopNotifier) Notify(string, string, any) {}
